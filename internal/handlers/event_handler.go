package handlers

import (
	"time"

	"github.com/FiestaEvents/fiesta-backend-sub002/internal/middleware"
	"github.com/FiestaEvents/fiesta-backend-sub002/internal/services"
	"github.com/FiestaEvents/fiesta-backend-sub002/pkg/pagination"
	"github.com/FiestaEvents/fiesta-backend-sub002/pkg/response"

	"github.com/gin-gonic/gin"
)

// EventHandler 活动处理器
type EventHandler struct {
	eventService *services.EventService
}

func NewEventHandler(eventService *services.EventService) *EventHandler {
	return &EventHandler{eventService: eventService}
}

type EventRequest struct {
	Title      string    `json:"title" binding:"required"`
	StartTime  time.Time `json:"start_time" binding:"required"`
	EndTime    time.Time `json:"end_time" binding:"required"`
	VenueID    *uint     `json:"venue_id"`
	PartnerID  *uint     `json:"partner_id"`
	GuestCount int       `json:"guest_count" binding:"min=0"`
	Notes      string    `json:"notes"`
}

type EventStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// Create 创建活动
func (h *EventHandler) Create(c *gin.Context) {
	var req EventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "请求参数错误: "+err.Error())
		return
	}

	event, err := h.eventService.Create(
		middleware.CurrentBusinessID(c), req.Title, req.StartTime, req.EndTime,
		req.VenueID, req.PartnerID, req.GuestCount, req.Notes)
	if err != nil {
		response.FromError(c, err)
		return
	}

	response.Success(c, event)
}

// List 分页获取活动列表
func (h *EventHandler) List(c *gin.Context) {
	params := pagination.ParsePageParams(c)

	events, total, err := h.eventService.GetWithPage(
		middleware.CurrentBusinessID(c), c.Query("status"), parseOptionalUint(c, "venue_id"),
		parseListQuery(c), params.Page, params.PageSize)
	if err != nil {
		response.FromError(c, err)
		return
	}

	response.SuccessWithPage(c, events, pagination.NewPageInfo(params.Page, params.PageSize, total))
}

// GetByID 获取活动详情
func (h *EventHandler) GetByID(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		response.BadRequest(c, "无效的ID")
		return
	}

	event, err := h.eventService.GetByID(middleware.CurrentBusinessID(c), id)
	if err != nil {
		response.FromError(c, err)
		return
	}

	response.Success(c, event)
}

// Update 更新活动
func (h *EventHandler) Update(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		response.BadRequest(c, "无效的ID")
		return
	}

	var req EventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "请求参数错误: "+err.Error())
		return
	}

	event, err := h.eventService.Update(
		middleware.CurrentBusinessID(c), id, req.Title, req.StartTime, req.EndTime,
		req.VenueID, req.PartnerID, req.GuestCount, req.Notes)
	if err != nil {
		response.FromError(c, err)
		return
	}

	response.Success(c, event)
}

// UpdateStatus 更新活动状态
func (h *EventHandler) UpdateStatus(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		response.BadRequest(c, "无效的ID")
		return
	}

	var req EventStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "请求参数错误: "+err.Error())
		return
	}

	event, err := h.eventService.UpdateStatus(middleware.CurrentBusinessID(c), id, req.Status)
	if err != nil {
		response.FromError(c, err)
		return
	}

	response.Success(c, event)
}

// Archive 归档活动
func (h *EventHandler) Archive(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		response.BadRequest(c, "无效的ID")
		return
	}

	event, err := h.eventService.Archive(middleware.CurrentBusinessID(c), id, middleware.CurrentUserID(c))
	if err != nil {
		response.FromError(c, err)
		return
	}

	response.Success(c, event)
}

// Restore 恢复活动
func (h *EventHandler) Restore(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		response.BadRequest(c, "无效的ID")
		return
	}

	event, err := h.eventService.Restore(middleware.CurrentBusinessID(c), id, middleware.CurrentUserID(c))
	if err != nil {
		response.FromError(c, err)
		return
	}

	response.Success(c, event)
}
