package handlers

import (
	"github.com/FiestaEvents/fiesta-backend-sub002/internal/middleware"
	"github.com/FiestaEvents/fiesta-backend-sub002/internal/services"
	"github.com/FiestaEvents/fiesta-backend-sub002/pkg/pagination"
	"github.com/FiestaEvents/fiesta-backend-sub002/pkg/response"

	"github.com/gin-gonic/gin"
)

// BusinessHandler 商家处理器（平台级管理）
type BusinessHandler struct {
	businessService *services.BusinessService
}

func NewBusinessHandler(businessService *services.BusinessService) *BusinessHandler {
	return &BusinessHandler{businessService: businessService}
}

type BusinessRequest struct {
	Name    string  `json:"name" binding:"required"`
	Email   string  `json:"email" binding:"required,email"`
	Address string  `json:"address"`
	Phone   *string `json:"phone"`
}

// Create 创建商家
func (h *BusinessHandler) Create(c *gin.Context) {
	var req BusinessRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "请求参数错误: "+err.Error())
		return
	}

	business, err := h.businessService.Create(req.Name, req.Email, req.Address, req.Phone)
	if err != nil {
		response.FromError(c, err)
		return
	}

	response.Success(c, business)
}

// List 分页获取商家列表
func (h *BusinessHandler) List(c *gin.Context) {
	params := pagination.ParsePageParams(c)

	businesses, total, err := h.businessService.GetWithPage(
		c.Query("keyword"), parseListQuery(c), params.Page, params.PageSize)
	if err != nil {
		response.FromError(c, err)
		return
	}

	response.SuccessWithPage(c, businesses, pagination.NewPageInfo(params.Page, params.PageSize, total))
}

// GetByID 获取商家详情
func (h *BusinessHandler) GetByID(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		response.BadRequest(c, "无效的ID")
		return
	}

	business, err := h.businessService.GetByID(id)
	if err != nil {
		response.FromError(c, err)
		return
	}

	response.Success(c, business)
}

// Update 更新商家
func (h *BusinessHandler) Update(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		response.BadRequest(c, "无效的ID")
		return
	}

	var req BusinessRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "请求参数错误: "+err.Error())
		return
	}

	business, err := h.businessService.Update(id, req.Name, req.Email, req.Address, req.Phone)
	if err != nil {
		response.FromError(c, err)
		return
	}

	response.Success(c, business)
}

// Archive 归档商家
func (h *BusinessHandler) Archive(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		response.BadRequest(c, "无效的ID")
		return
	}

	business, err := h.businessService.Archive(id, middleware.CurrentUserID(c))
	if err != nil {
		response.FromError(c, err)
		return
	}

	response.Success(c, business)
}

// Restore 恢复商家
func (h *BusinessHandler) Restore(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		response.BadRequest(c, "无效的ID")
		return
	}

	business, err := h.businessService.Restore(id, middleware.CurrentUserID(c))
	if err != nil {
		response.FromError(c, err)
		return
	}

	response.Success(c, business)
}
