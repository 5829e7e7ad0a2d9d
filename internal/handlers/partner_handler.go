package handlers

import (
	"github.com/FiestaEvents/fiesta-backend-sub002/internal/middleware"
	"github.com/FiestaEvents/fiesta-backend-sub002/internal/services"
	"github.com/FiestaEvents/fiesta-backend-sub002/pkg/pagination"
	"github.com/FiestaEvents/fiesta-backend-sub002/pkg/response"

	"github.com/gin-gonic/gin"
)

// PartnerHandler 合作伙伴处理器
type PartnerHandler struct {
	partnerService *services.PartnerService
}

func NewPartnerHandler(partnerService *services.PartnerService) *PartnerHandler {
	return &PartnerHandler{partnerService: partnerService}
}

type PartnerRequest struct {
	Name    string  `json:"name" binding:"required"`
	Email   string  `json:"email" binding:"required,email"`
	Company string  `json:"company"`
	Notes   string  `json:"notes"`
	Phone   *string `json:"phone"`
}

// Create 创建伙伴
func (h *PartnerHandler) Create(c *gin.Context) {
	var req PartnerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "请求参数错误: "+err.Error())
		return
	}

	partner, err := h.partnerService.Create(
		middleware.CurrentBusinessID(c), req.Name, req.Email, req.Company, req.Notes, req.Phone)
	if err != nil {
		response.FromError(c, err)
		return
	}

	response.Success(c, partner)
}

// List 分页获取伙伴列表
func (h *PartnerHandler) List(c *gin.Context) {
	params := pagination.ParsePageParams(c)

	partners, total, err := h.partnerService.GetWithPage(
		middleware.CurrentBusinessID(c), c.Query("keyword"), parseListQuery(c), params.Page, params.PageSize)
	if err != nil {
		response.FromError(c, err)
		return
	}

	response.SuccessWithPage(c, partners, pagination.NewPageInfo(params.Page, params.PageSize, total))
}

// GetByID 获取伙伴详情
func (h *PartnerHandler) GetByID(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		response.BadRequest(c, "无效的ID")
		return
	}

	partner, err := h.partnerService.GetByID(middleware.CurrentBusinessID(c), id)
	if err != nil {
		response.FromError(c, err)
		return
	}

	response.Success(c, partner)
}

// Update 更新伙伴
func (h *PartnerHandler) Update(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		response.BadRequest(c, "无效的ID")
		return
	}

	var req PartnerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "请求参数错误: "+err.Error())
		return
	}

	partner, err := h.partnerService.Update(
		middleware.CurrentBusinessID(c), id, req.Name, req.Email, req.Company, req.Notes, req.Phone)
	if err != nil {
		response.FromError(c, err)
		return
	}

	response.Success(c, partner)
}

// Delete 物理删除伙伴（仅限无关联活动的伙伴）
func (h *PartnerHandler) Delete(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		response.BadRequest(c, "无效的ID")
		return
	}

	if err := h.partnerService.Delete(middleware.CurrentBusinessID(c), id, middleware.CurrentUserID(c)); err != nil {
		response.FromError(c, err)
		return
	}

	response.SuccessWithMessage(c, "伙伴已删除", nil)
}

// Archive 归档伙伴
func (h *PartnerHandler) Archive(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		response.BadRequest(c, "无效的ID")
		return
	}

	partner, err := h.partnerService.Archive(middleware.CurrentBusinessID(c), id, middleware.CurrentUserID(c))
	if err != nil {
		response.FromError(c, err)
		return
	}

	response.Success(c, partner)
}

// Restore 恢复伙伴
func (h *PartnerHandler) Restore(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		response.BadRequest(c, "无效的ID")
		return
	}

	partner, err := h.partnerService.Restore(middleware.CurrentBusinessID(c), id, middleware.CurrentUserID(c))
	if err != nil {
		response.FromError(c, err)
		return
	}

	response.Success(c, partner)
}
