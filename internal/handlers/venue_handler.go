package handlers

import (
	"github.com/FiestaEvents/fiesta-backend-sub002/internal/middleware"
	"github.com/FiestaEvents/fiesta-backend-sub002/internal/services"
	"github.com/FiestaEvents/fiesta-backend-sub002/pkg/pagination"
	"github.com/FiestaEvents/fiesta-backend-sub002/pkg/response"

	"github.com/gin-gonic/gin"
)

// VenueHandler 场地处理器
type VenueHandler struct {
	venueService *services.VenueService
}

func NewVenueHandler(venueService *services.VenueService) *VenueHandler {
	return &VenueHandler{venueService: venueService}
}

type VenueRequest struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
	Capacity    int    `json:"capacity" binding:"min=0"`
}

// Create 创建场地
func (h *VenueHandler) Create(c *gin.Context) {
	var req VenueRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "请求参数错误: "+err.Error())
		return
	}

	venue, err := h.venueService.Create(middleware.CurrentBusinessID(c), req.Name, req.Description, req.Capacity)
	if err != nil {
		response.FromError(c, err)
		return
	}

	response.Success(c, venue)
}

// List 分页获取场地列表
func (h *VenueHandler) List(c *gin.Context) {
	params := pagination.ParsePageParams(c)

	venues, total, err := h.venueService.GetWithPage(
		middleware.CurrentBusinessID(c), c.Query("keyword"), parseListQuery(c), params.Page, params.PageSize)
	if err != nil {
		response.FromError(c, err)
		return
	}

	response.SuccessWithPage(c, venues, pagination.NewPageInfo(params.Page, params.PageSize, total))
}

// GetByID 获取场地详情
func (h *VenueHandler) GetByID(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		response.BadRequest(c, "无效的ID")
		return
	}

	venue, err := h.venueService.GetByID(middleware.CurrentBusinessID(c), id)
	if err != nil {
		response.FromError(c, err)
		return
	}

	response.Success(c, venue)
}

// Update 更新场地
func (h *VenueHandler) Update(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		response.BadRequest(c, "无效的ID")
		return
	}

	var req VenueRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "请求参数错误: "+err.Error())
		return
	}

	venue, err := h.venueService.Update(middleware.CurrentBusinessID(c), id, req.Name, req.Description, req.Capacity)
	if err != nil {
		response.FromError(c, err)
		return
	}

	response.Success(c, venue)
}

// Archive 归档场地
func (h *VenueHandler) Archive(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		response.BadRequest(c, "无效的ID")
		return
	}

	venue, err := h.venueService.Archive(middleware.CurrentBusinessID(c), id, middleware.CurrentUserID(c))
	if err != nil {
		response.FromError(c, err)
		return
	}

	response.Success(c, venue)
}

// Restore 恢复场地
func (h *VenueHandler) Restore(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		response.BadRequest(c, "无效的ID")
		return
	}

	venue, err := h.venueService.Restore(middleware.CurrentBusinessID(c), id, middleware.CurrentUserID(c))
	if err != nil {
		response.FromError(c, err)
		return
	}

	response.Success(c, venue)
}
