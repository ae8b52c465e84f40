package controllers

import (
	"errors"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/maheshvali1990/Society-maintenance-tracker/internal/error/code"
	"github.com/maheshvali1990/Society-maintenance-tracker/internal/error/response"
	"github.com/maheshvali1990/Society-maintenance-tracker/services"
	"github.com/maheshvali1990/Society-maintenance-tracker/services/container"
)

// InterfacePaymentController 定义缴费控制器接口
type InterfacePaymentController interface {
	GetMonthlyStatement()
	GetPayment()
	RecordPayment()
}

// PaymentController 处理缴费相关的请求
type PaymentController struct {
	Ctx       *gin.Context
	Container *container.ServiceContainer
}

// NewPaymentController 创建一个新的缴费控制器
func NewPaymentController(ctx *gin.Context, container *container.ServiceContainer) *PaymentController {
	return &PaymentController{
		Ctx:       ctx,
		Container: container,
	}
}

// PaymentRequest 表示缴费录入请求，字段均为字符串，空串表示未填写
type PaymentRequest struct {
	AmountPaid  string `json:"amount_paid" example:"2500"`
	PaymentDate string `json:"payment_date" example:"2025-01-15"` // YYYY-MM-DD
	Status      string `json:"status" example:"Paid"`             // Pending / Paid / Partial
	ReceiptID   string `json:"receipt_id" example:"405512345678"`
	Notes       string `json:"notes" example:"paid via UPI"`
}

// HandlePaymentFunc 返回一个处理缴费请求的Gin处理函数
func HandlePaymentFunc(container *container.ServiceContainer, method string) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		controller := NewPaymentController(ctx, container)

		switch method {
		case "getMonthlyStatement":
			controller.GetMonthlyStatement()
		case "getPayment":
			controller.GetPayment()
		case "recordPayment":
			controller.RecordPayment()
		default:
			response.FailWithMessage(ctx, code.ErrBind, "invalid method", nil)
		}
	}
}

// periodParams 从路径参数解析 (household_id, year, month)
func (c *PaymentController) periodParams() (uint, int, int, bool) {
	householdID, err := strconv.Atoi(c.Ctx.Param("household_id"))
	if err != nil || householdID < 1 {
		response.ParamError(c.Ctx, "invalid household id")
		return 0, 0, 0, false
	}
	year, err := strconv.Atoi(c.Ctx.Param("year"))
	if err != nil {
		response.ParamError(c.Ctx, "invalid year")
		return 0, 0, 0, false
	}
	month, err := strconv.Atoi(c.Ctx.Param("month"))
	if err != nil {
		response.ParamError(c.Ctx, "invalid month")
		return 0, 0, 0, false
	}
	return uint(householdID), year, month, true
}

// 1. GetMonthlyStatement 获取月度账单
// @Summary 获取月度账单
// @Description 返回指定月份所有住户及其缴费状态，首次访问会惰性创建 Pending 记录
// @Tags Payment
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param month query int false "月份(1-12)，默认当月"
// @Param year query int false "年份，默认当年"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /statement [get]
func (c *PaymentController) GetMonthlyStatement() {
	today := time.Now()
	month, _ := strconv.Atoi(c.Ctx.DefaultQuery("month", strconv.Itoa(int(today.Month()))))
	year, _ := strconv.Atoi(c.Ctx.DefaultQuery("year", strconv.Itoa(today.Year())))

	paymentService := c.Container.GetService("payment").(services.InterfacePaymentService)
	entries, err := paymentService.GetMonthlyStatement(month, year)
	if err != nil {
		if errors.Is(err, services.ErrInvalidPeriod) {
			response.Fail(c.Ctx, code.ErrInvalidPeriod, nil)
			return
		}
		response.Fail(c.Ctx, code.ErrDatabase, nil)
		return
	}

	// 月份下拉选项：当年前后各两年
	years := []int{}
	for y := today.Year() - 2; y < today.Year()+2; y++ {
		years = append(years, y)
	}

	response.Success(c.Ctx, gin.H{
		"month":      month,
		"year":       year,
		"month_name": time.Month(month).String(),
		"years":      years,
		"entries":    entries,
	})
}

// 2. GetPayment 获取单个账期的缴费记录（不存在则创建）
// @Summary 获取缴费记录
// @Description 查找或创建某住户某账期的缴费记录，用于渲染缴费表单
// @Tags Payment
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param household_id path int true "住户ID"
// @Param year path int true "年份"
// @Param month path int true "月份(1-12)"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /payments/{household_id}/{year}/{month} [get]
func (c *PaymentController) GetPayment() {
	householdID, year, month, ok := c.periodParams()
	if !ok {
		return
	}

	householdService := c.Container.GetService("household").(services.InterfaceHouseholdService)
	household, err := householdService.GetHouseholdByID(householdID)
	if err != nil {
		if errors.Is(err, services.ErrHouseholdNotFound) {
			response.Fail(c.Ctx, code.ErrHouseholdNotFound, nil)
			return
		}
		response.Fail(c.Ctx, code.ErrDatabase, nil)
		return
	}

	paymentService := c.Container.GetService("payment").(services.InterfacePaymentService)
	payment, err := paymentService.GetOrCreatePayment(householdID, month, year)
	if err != nil {
		if errors.Is(err, services.ErrInvalidPeriod) {
			response.Fail(c.Ctx, code.ErrInvalidPeriod, nil)
			return
		}
		response.Fail(c.Ctx, code.ErrDatabase, nil)
		return
	}

	response.Success(c.Ctx, gin.H{
		"household":  household,
		"payment":    payment,
		"month_name": time.Month(month).String(),
	})
}

// 3. RecordPayment 录入缴费
// @Summary 录入缴费
// @Description 更新某账期的缴费信息，任一字段校验失败则整体放弃
// @Tags Payment
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param household_id path int true "住户ID"
// @Param year path int true "年份"
// @Param month path int true "月份(1-12)"
// @Param request body PaymentRequest true "缴费信息"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /payments/{household_id}/{year}/{month} [post]
func (c *PaymentController) RecordPayment() {
	householdID, year, month, ok := c.periodParams()
	if !ok {
		return
	}

	var req PaymentRequest
	if err := c.Ctx.ShouldBindJSON(&req); err != nil {
		response.Fail(c.Ctx, code.ErrBind, nil)
		return
	}

	paymentService := c.Container.GetService("payment").(services.InterfacePaymentService)
	payment, err := paymentService.RecordPayment(householdID, year, month, services.RecordPaymentInput{
		AmountPaid:  req.AmountPaid,
		PaymentDate: req.PaymentDate,
		Status:      req.Status,
		ReceiptID:   req.ReceiptID,
		Notes:       req.Notes,
	})
	if err != nil {
		switch {
		case errors.Is(err, services.ErrHouseholdNotFound):
			response.Fail(c.Ctx, code.ErrHouseholdNotFound, nil)
		case errors.Is(err, services.ErrInvalidAmount):
			response.Fail(c.Ctx, code.ErrInvalidAmount, nil)
		case errors.Is(err, services.ErrInvalidDate):
			response.Fail(c.Ctx, code.ErrInvalidDate, nil)
		case errors.Is(err, services.ErrInvalidStatus):
			response.Fail(c.Ctx, code.ErrInvalidStatus, nil)
		case errors.Is(err, services.ErrInvalidPeriod):
			response.Fail(c.Ctx, code.ErrInvalidPeriod, nil)
		default:
			response.Fail(c.Ctx, code.ErrDatabase, nil)
		}
		return
	}

	response.Success(c.Ctx, payment)
}
