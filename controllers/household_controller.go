package controllers

import (
	"errors"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/maheshvali1990/Society-maintenance-tracker/internal/error/code"
	"github.com/maheshvali1990/Society-maintenance-tracker/internal/error/response"
	"github.com/maheshvali1990/Society-maintenance-tracker/services"
	"github.com/maheshvali1990/Society-maintenance-tracker/services/container"
)

// InterfaceHouseholdController 定义住户控制器接口
type InterfaceHouseholdController interface {
	GetHouseholds()
	GetHousehold()
	CreateHousehold()
	UpdateHousehold()
	DeleteHousehold()
}

// HouseholdController 处理住户相关的请求
type HouseholdController struct {
	Ctx       *gin.Context
	Container *container.ServiceContainer
}

// NewHouseholdController 创建一个新的住户控制器
func NewHouseholdController(ctx *gin.Context, container *container.ServiceContainer) *HouseholdController {
	return &HouseholdController{
		Ctx:       ctx,
		Container: container,
	}
}

// HouseholdRequest 表示住户请求
type HouseholdRequest struct {
	FlatNumber      string `json:"flat_number" binding:"required" example:"101"`
	Wing            string `json:"wing" example:"A"` // 可为空表示无翼楼
	OwnerRenterName string `json:"owner_renter_name" binding:"required" example:"Ramesh Kumar"`
}

// HandleHouseholdFunc 返回一个处理住户请求的Gin处理函数
func HandleHouseholdFunc(container *container.ServiceContainer, method string) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		controller := NewHouseholdController(ctx, container)

		switch method {
		case "getHouseholds":
			controller.GetHouseholds()
		case "getHousehold":
			controller.GetHousehold()
		case "createHousehold":
			controller.CreateHousehold()
		case "updateHousehold":
			controller.UpdateHousehold()
		case "deleteHousehold":
			controller.DeleteHousehold()
		default:
			response.FailWithMessage(ctx, code.ErrBind, "invalid method", nil)
		}
	}
}

// 1. GetHouseholds 获取所有住户列表
// @Summary 获取住户列表
// @Description 获取全部住户，按 (翼楼, 门牌号) 排序，支持分页
// @Tags Household
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param page query int false "页码，默认为1"
// @Param page_size query int false "每页条数，默认为10"
// @Success 200 {object} map[string]interface{}
// @Failure 401 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /households [get]
func (c *HouseholdController) GetHouseholds() {
	// 获取分页参数
	page, _ := strconv.Atoi(c.Ctx.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.Ctx.DefaultQuery("page_size", "10"))
	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > 100 {
		pageSize = 10
	}

	householdService := c.Container.GetService("household").(services.InterfaceHouseholdService)
	households, total, err := householdService.GetAllHouseholds(page, pageSize)
	if err != nil {
		response.Fail(c.Ctx, code.ErrDatabase, nil)
		return
	}

	response.Success(c.Ctx, gin.H{
		"total":       total,
		"page":        page,
		"page_size":   pageSize,
		"total_pages": (total + int64(pageSize) - 1) / int64(pageSize),
		"data":        households,
	})
}

// 2. GetHousehold 获取单个住户详情
// @Summary 获取住户详情
// @Description 根据ID获取住户详细信息
// @Tags Household
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "住户ID"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /households/{id} [get]
func (c *HouseholdController) GetHousehold() {
	id, err := strconv.Atoi(c.Ctx.Param("id"))
	if err != nil {
		response.ParamError(c.Ctx, "invalid household id")
		return
	}

	householdService := c.Container.GetService("household").(services.InterfaceHouseholdService)
	household, err := householdService.GetHouseholdByID(uint(id))
	if err != nil {
		if errors.Is(err, services.ErrHouseholdNotFound) {
			response.Fail(c.Ctx, code.ErrHouseholdNotFound, nil)
			return
		}
		response.Fail(c.Ctx, code.ErrDatabase, nil)
		return
	}

	response.Success(c.Ctx, household)
}

// 3. CreateHousehold 创建新住户
// @Summary 创建住户
// @Description 创建住户，(门牌号, 翼楼) 组合必须唯一
// @Tags Household
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body HouseholdRequest true "住户信息"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} ErrorResponse
// @Router /households [post]
func (c *HouseholdController) CreateHousehold() {
	var req HouseholdRequest
	if err := c.Ctx.ShouldBindJSON(&req); err != nil {
		response.Fail(c.Ctx, code.ErrHouseholdInvalid, nil)
		return
	}

	householdService := c.Container.GetService("household").(services.InterfaceHouseholdService)
	household, err := householdService.CreateHousehold(req.FlatNumber, req.Wing, req.OwnerRenterName)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrHouseholdInvalid):
			response.Fail(c.Ctx, code.ErrHouseholdInvalid, nil)
		case errors.Is(err, services.ErrHouseholdAlreadyExist):
			response.FailWithMessage(c.Ctx, code.ErrHouseholdAlreadyExist, "household "+req.Wing+"-"+req.FlatNumber+" already exists", nil)
		default:
			response.Fail(c.Ctx, code.ErrDatabase, nil)
		}
		return
	}

	// 新住户会出现在所有月份的账单里
	redisService := c.Container.GetService("redis").(services.InterfaceRedisService)
	_ = redisService.InvalidateAllStatements()

	response.Success(c.Ctx, household)
}

// 4. UpdateHousehold 编辑住户
// @Summary 编辑住户
// @Description 编辑住户信息，(门牌号, 翼楼) 组合查重时排除自身
// @Tags Household
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "住户ID"
// @Param request body HouseholdRequest true "住户信息"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /households/{id} [put]
func (c *HouseholdController) UpdateHousehold() {
	id, err := strconv.Atoi(c.Ctx.Param("id"))
	if err != nil {
		response.ParamError(c.Ctx, "invalid household id")
		return
	}

	var req HouseholdRequest
	if err := c.Ctx.ShouldBindJSON(&req); err != nil {
		response.Fail(c.Ctx, code.ErrHouseholdInvalid, nil)
		return
	}

	householdService := c.Container.GetService("household").(services.InterfaceHouseholdService)
	household, err := householdService.UpdateHousehold(uint(id), req.FlatNumber, req.Wing, req.OwnerRenterName)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrHouseholdNotFound):
			response.Fail(c.Ctx, code.ErrHouseholdNotFound, nil)
		case errors.Is(err, services.ErrHouseholdInvalid):
			response.Fail(c.Ctx, code.ErrHouseholdInvalid, nil)
		case errors.Is(err, services.ErrHouseholdAlreadyExist):
			response.FailWithMessage(c.Ctx, code.ErrHouseholdAlreadyExist, "another household with flat "+req.Wing+"-"+req.FlatNumber+" already exists", nil)
		default:
			response.Fail(c.Ctx, code.ErrDatabase, nil)
		}
		return
	}

	redisService := c.Container.GetService("redis").(services.InterfaceRedisService)
	_ = redisService.InvalidateAllStatements()

	response.Success(c.Ctx, household)
}

// 5. DeleteHousehold 删除住户
// @Summary 删除住户
// @Description 删除住户并级联删除其全部缴费记录
// @Tags Household
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "住户ID"
// @Success 200 {object} map[string]interface{}
// @Failure 404 {object} ErrorResponse
// @Router /households/{id} [delete]
func (c *HouseholdController) DeleteHousehold() {
	id, err := strconv.Atoi(c.Ctx.Param("id"))
	if err != nil {
		response.ParamError(c.Ctx, "invalid household id")
		return
	}

	householdService := c.Container.GetService("household").(services.InterfaceHouseholdService)
	if err := householdService.DeleteHousehold(uint(id)); err != nil {
		if errors.Is(err, services.ErrHouseholdNotFound) {
			response.Fail(c.Ctx, code.ErrHouseholdNotFound, nil)
			return
		}
		response.Fail(c.Ctx, code.ErrDatabase, nil)
		return
	}

	// 住户变动影响所有月份的账单缓存
	redisService := c.Container.GetService("redis").(services.InterfaceRedisService)
	_ = redisService.InvalidateAllStatements()

	response.Success(c.Ctx, gin.H{"deleted": id})
}
