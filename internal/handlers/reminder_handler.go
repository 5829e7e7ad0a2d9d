package handlers

import (
	"time"

	"github.com/FiestaEvents/fiesta-backend-sub002/internal/middleware"
	"github.com/FiestaEvents/fiesta-backend-sub002/internal/services"
	"github.com/FiestaEvents/fiesta-backend-sub002/pkg/pagination"
	"github.com/FiestaEvents/fiesta-backend-sub002/pkg/response"

	"github.com/gin-gonic/gin"
)

// ReminderHandler 提醒处理器
type ReminderHandler struct {
	reminderService *services.ReminderService
}

func NewReminderHandler(reminderService *services.ReminderService) *ReminderHandler {
	return &ReminderHandler{reminderService: reminderService}
}

type CreateReminderRequest struct {
	UserID      uint                   `json:"user_id" binding:"required"`
	Title       string                 `json:"title" binding:"required"`
	Description string                 `json:"description"`
	RemindAt    time.Time              `json:"remind_at" binding:"required"`
	Metadata    map[string]interface{} `json:"metadata"`
}

type UpdateReminderRequest struct {
	Title       string    `json:"title" binding:"required"`
	Description string    `json:"description"`
	RemindAt    time.Time `json:"remind_at" binding:"required"`
}

type SnoozeRequest struct {
	Until time.Time `json:"until" binding:"required"`
}

// Create 创建提醒
func (h *ReminderHandler) Create(c *gin.Context) {
	var req CreateReminderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "请求参数错误: "+err.Error())
		return
	}

	reminder, err := h.reminderService.Create(
		middleware.CurrentBusinessID(c), req.UserID, req.Title, req.Description, req.RemindAt, req.Metadata)
	if err != nil {
		response.FromError(c, err)
		return
	}

	response.Success(c, reminder)
}

// List 分页获取提醒列表
func (h *ReminderHandler) List(c *gin.Context) {
	params := pagination.ParsePageParams(c)

	reminders, total, err := h.reminderService.GetWithPage(
		middleware.CurrentBusinessID(c), c.Query("status"), parseOptionalUint(c, "user_id"),
		parseListQuery(c), params.Page, params.PageSize)
	if err != nil {
		response.FromError(c, err)
		return
	}

	response.SuccessWithPage(c, reminders, pagination.NewPageInfo(params.Page, params.PageSize, total))
}

// GetByID 获取提醒详情
func (h *ReminderHandler) GetByID(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		response.BadRequest(c, "无效的ID")
		return
	}

	reminder, err := h.reminderService.GetByID(middleware.CurrentBusinessID(c), id)
	if err != nil {
		response.FromError(c, err)
		return
	}

	response.Success(c, reminder)
}

// Update 更新提醒
func (h *ReminderHandler) Update(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		response.BadRequest(c, "无效的ID")
		return
	}

	var req UpdateReminderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "请求参数错误: "+err.Error())
		return
	}

	reminder, err := h.reminderService.Update(
		middleware.CurrentBusinessID(c), id, req.Title, req.Description, req.RemindAt)
	if err != nil {
		response.FromError(c, err)
		return
	}

	response.Success(c, reminder)
}

// Complete 完成提醒
func (h *ReminderHandler) Complete(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		response.BadRequest(c, "无效的ID")
		return
	}

	reminder, err := h.reminderService.Complete(middleware.CurrentBusinessID(c), id)
	if err != nil {
		response.FromError(c, err)
		return
	}

	response.Success(c, reminder)
}

// Snooze 延后提醒
func (h *ReminderHandler) Snooze(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		response.BadRequest(c, "无效的ID")
		return
	}

	var req SnoozeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "请求参数错误: "+err.Error())
		return
	}

	reminder, err := h.reminderService.Snooze(middleware.CurrentBusinessID(c), id, req.Until)
	if err != nil {
		response.FromError(c, err)
		return
	}

	response.Success(c, reminder)
}

// Cancel 取消提醒
func (h *ReminderHandler) Cancel(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		response.BadRequest(c, "无效的ID")
		return
	}

	reminder, err := h.reminderService.Cancel(middleware.CurrentBusinessID(c), id)
	if err != nil {
		response.FromError(c, err)
		return
	}

	response.Success(c, reminder)
}

// Archive 归档提醒
func (h *ReminderHandler) Archive(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		response.BadRequest(c, "无效的ID")
		return
	}

	reminder, err := h.reminderService.Archive(middleware.CurrentBusinessID(c), id, middleware.CurrentUserID(c))
	if err != nil {
		response.FromError(c, err)
		return
	}

	response.Success(c, reminder)
}

// Restore 恢复提醒
func (h *ReminderHandler) Restore(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		response.BadRequest(c, "无效的ID")
		return
	}

	reminder, err := h.reminderService.Restore(middleware.CurrentBusinessID(c), id, middleware.CurrentUserID(c))
	if err != nil {
		response.FromError(c, err)
		return
	}

	response.Success(c, reminder)
}
