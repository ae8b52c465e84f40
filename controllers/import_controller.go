package controllers

import (
	"errors"
	"os"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/maheshvali1990/Society-maintenance-tracker/config"
	"github.com/maheshvali1990/Society-maintenance-tracker/internal/error/code"
	"github.com/maheshvali1990/Society-maintenance-tracker/internal/error/response"
	"github.com/maheshvali1990/Society-maintenance-tracker/services"
	"github.com/maheshvali1990/Society-maintenance-tracker/services/container"
	"github.com/maheshvali1990/Society-maintenance-tracker/utils"
)

// InterfaceImportController 定义导入控制器接口
type InterfaceImportController interface {
	ImportChatLog()
	ImportReceipt()
}

// ImportController 处理聊天记录和收据图片的导入请求
type ImportController struct {
	Ctx       *gin.Context
	Container *container.ServiceContainer
}

// NewImportController 创建一个新的导入控制器
func NewImportController(ctx *gin.Context, container *container.ServiceContainer) *ImportController {
	return &ImportController{
		Ctx:       ctx,
		Container: container,
	}
}

// HandleImportFunc 返回一个处理导入请求的Gin处理函数
func HandleImportFunc(container *container.ServiceContainer, method string) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		controller := NewImportController(ctx, container)

		switch method {
		case "importChatLog":
			controller.ImportChatLog()
		case "importReceipt":
			controller.ImportReceipt()
		default:
			response.FailWithMessage(ctx, code.ErrBind, "invalid method", nil)
		}
	}
}

// 1. ImportChatLog 上传群聊导出文件并提取缴费凭证
// @Summary 导入聊天记录
// @Description 扫描群聊导出文本，识别附件消息并匹配住户，为匹配到的账期预建缴费记录
// @Tags Import
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param file formData file true "聊天导出 txt 文件"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /imports/chat [post]
func (c *ImportController) ImportChatLog() {
	fileHeader, err := c.Ctx.FormFile("file")
	if err != nil {
		response.Fail(c.Ctx, code.ErrUploadInvalid, nil)
		return
	}

	src, err := fileHeader.Open()
	if err != nil {
		response.Fail(c.Ctx, code.ErrUploadInvalid, nil)
		return
	}
	defer src.Close()

	chatService := c.Container.GetService("chat").(services.InterfaceChatService)
	result, err := chatService.ExtractReceipts(src)
	if err != nil {
		// 读不动整个文件才算失败，单条消息的问题都在 result.Errors 里
		response.Fail(c.Ctx, code.ErrChatParseFailed, nil)
		return
	}

	config.Info("chat import %q: %d matches, %d errors", fileHeader.Filename, len(result.Matches), len(result.Errors))

	response.Success(c.Ctx, gin.H{
		"matched": len(result.Matches),
		"matches": result.Matches,
		"errors":  result.Errors,
	})
}

// 2. ImportReceipt 上传收据图片并提取候选字段
// @Summary 导入收据图片
// @Description 对收据图片做OCR并提取金额、交易号、日期，用于预填缴费表单
// @Tags Import
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param household_id path int true "住户ID"
// @Param year path int true "年份"
// @Param month path int true "月份(1-12)"
// @Param file formData file true "收据图片"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 503 {object} ErrorResponse
// @Router /imports/receipt/{household_id}/{year}/{month} [post]
func (c *ImportController) ImportReceipt() {
	householdID, err := strconv.Atoi(c.Ctx.Param("household_id"))
	if err != nil || householdID < 1 {
		response.ParamError(c.Ctx, "invalid household id")
		return
	}
	year, err := strconv.Atoi(c.Ctx.Param("year"))
	if err != nil {
		response.ParamError(c.Ctx, "invalid year")
		return
	}
	month, err := strconv.Atoi(c.Ctx.Param("month"))
	if err != nil {
		response.ParamError(c.Ctx, "invalid month")
		return
	}

	householdService := c.Container.GetService("household").(services.InterfaceHouseholdService)
	household, err := householdService.GetHouseholdByID(uint(householdID))
	if err != nil {
		if errors.Is(err, services.ErrHouseholdNotFound) {
			response.Fail(c.Ctx, code.ErrHouseholdNotFound, nil)
			return
		}
		response.Fail(c.Ctx, code.ErrDatabase, nil)
		return
	}

	// 预建该账期的缴费记录，提取出的字段用于预填它的表单
	paymentService := c.Container.GetService("payment").(services.InterfacePaymentService)
	payment, err := paymentService.GetOrCreatePayment(household.ID, month, year)
	if err != nil {
		if errors.Is(err, services.ErrInvalidPeriod) {
			response.Fail(c.Ctx, code.ErrInvalidPeriod, nil)
			return
		}
		response.Fail(c.Ctx, code.ErrDatabase, nil)
		return
	}

	fileHeader, err := c.Ctx.FormFile("file")
	if err != nil {
		response.Fail(c.Ctx, code.ErrUploadInvalid, nil)
		return
	}

	// 文件名不可信，落盘前清洗；临时文件在所有出口都会被删掉
	cfg := c.Container.GetService("config").(*config.Config)
	tmpPath := utils.TempUploadPath(cfg.UploadTmpDir, fileHeader.Filename)
	if err := c.Ctx.SaveUploadedFile(fileHeader, tmpPath); err != nil {
		response.Fail(c.Ctx, code.ErrUploadInvalid, nil)
		return
	}
	defer os.Remove(tmpPath)

	receiptService := c.Container.GetService("receipt").(services.InterfaceReceiptService)
	extraction, err := receiptService.ExtractFromImage(c.Ctx.Request.Context(), tmpPath)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrOCREngineUnavailable):
			response.Fail(c.Ctx, code.ErrOCRUnavailable, nil)
		case errors.Is(err, services.ErrOCRTimeout):
			response.Fail(c.Ctx, code.ErrOCRTimeout, nil)
		default:
			config.Error("OCR failed for %q: %v", fileHeader.Filename, err)
			response.Fail(c.Ctx, code.ErrOCRFailed, nil)
		}
		return
	}

	response.Success(c.Ctx, gin.H{
		"household": household,
		"payment":   payment,
		"fields":    extraction.Fields,
		"raw_text":  extraction.RawText,
	})
}
