package services

import (
	"context"

	"github.com/maheshvali1990/Society-maintenance-tracker/config"
	"github.com/maheshvali1990/Society-maintenance-tracker/utils"
)

// ReceiptExtraction 收据图片的提取结果
// 字段仅是候选值，用于预填缴费表单，最终以人工确认为准
type ReceiptExtraction struct {
	Fields  utils.ReceiptFields `json:"fields"`
	RawText string              `json:"raw_text"`
}

// InterfaceReceiptService 定义收据提取服务接口
type InterfaceReceiptService interface {
	ExtractFromImage(ctx context.Context, imagePath string) (*ReceiptExtraction, error)
}

// ReceiptService 串联OCR识别与字段提取
type ReceiptService struct {
	Config *config.Config
	OCR    InterfaceOCRService
}

// NewReceiptService 创建一个新的收据提取服务
func NewReceiptService(cfg *config.Config, ocr InterfaceOCRService) InterfaceReceiptService {
	return &ReceiptService{
		Config: cfg,
		OCR:    ocr,
	}
}

// ExtractFromImage 对收据图片做OCR并提取金额、交易号、日期
// OCR引擎不可用或超时会返回错误；字段识别不出只产生提示，不算失败
func (s *ReceiptService) ExtractFromImage(ctx context.Context, imagePath string) (*ReceiptExtraction, error) {
	text, err := s.OCR.ImageToText(ctx, imagePath)
	if err != nil {
		return nil, err
	}

	return &ReceiptExtraction{
		Fields:  utils.ExtractReceiptFields(text),
		RawText: text,
	}, nil
}
