package services

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"time"

	"github.com/maheshvali1990/Society-maintenance-tracker/config"
)

// OCR引擎错误
var (
	// ErrOCREngineUnavailable 底层 tesseract 命令不存在或无法启动
	ErrOCREngineUnavailable = errors.New("OCR engine is not available")
	// ErrOCRTimeout OCR处理超时，可重试
	ErrOCRTimeout = errors.New("OCR processing timed out")
)

// InterfaceOCRService 定义图像转文字服务接口
type InterfaceOCRService interface {
	ImageToText(ctx context.Context, imagePath string) (string, error)
}

// OCRService 通过外部 tesseract 进程做收据图片的文字识别
type OCRService struct {
	Config *config.Config
}

// NewOCRService 创建一个新的OCR服务
func NewOCRService(cfg *config.Config) InterfaceOCRService {
	return &OCRService{Config: cfg}
}

// ImageToText 调用 tesseract 把图片转成文本
// 外部进程可能很慢，这里强制加超时；超时返回可恢复错误而不是挂起
func (s *OCRService) ImageToText(ctx context.Context, imagePath string) (string, error) {
	timeout := time.Duration(s.Config.OCRTimeoutSeconds) * time.Second
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	// "stdout" 参数让 tesseract 把识别结果写到标准输出
	cmd := exec.CommandContext(ctx, s.Config.TesseractCmd, imagePath, "stdout")

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	if ctx.Err() == context.DeadlineExceeded {
		return "", ErrOCRTimeout
	}
	if err != nil {
		var execErr *exec.Error
		if errors.As(err, &execErr) {
			// 找不到可执行文件，按"引擎不可用"上报
			return "", ErrOCREngineUnavailable
		}
		return "", fmt.Errorf("tesseract failed: %v: %s", err, stderr.String())
	}

	return stdout.String(), nil
}
