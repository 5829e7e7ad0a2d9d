package handlers

import (
	"github.com/FiestaEvents/fiesta-backend-sub002/internal/middleware"
	"github.com/FiestaEvents/fiesta-backend-sub002/internal/services"
	"github.com/FiestaEvents/fiesta-backend-sub002/pkg/pagination"
	"github.com/FiestaEvents/fiesta-backend-sub002/pkg/response"

	"github.com/gin-gonic/gin"
)

// SupplyHandler 物料处理器
type SupplyHandler struct {
	supplyService *services.SupplyService
}

func NewSupplyHandler(supplyService *services.SupplyService) *SupplyHandler {
	return &SupplyHandler{supplyService: supplyService}
}

type SupplyRequest struct {
	Name         string `json:"name" binding:"required"`
	Category     string `json:"category"`
	Unit         string `json:"unit"`
	Quantity     int    `json:"quantity" binding:"min=0"`
	ReorderLevel int    `json:"reorder_level" binding:"min=0"`
}

type AdjustQuantityRequest struct {
	Delta int `json:"delta" binding:"required"`
}

// Create 创建物料
func (h *SupplyHandler) Create(c *gin.Context) {
	var req SupplyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "请求参数错误: "+err.Error())
		return
	}

	supply, err := h.supplyService.Create(
		middleware.CurrentBusinessID(c), req.Name, req.Category, req.Unit, req.Quantity, req.ReorderLevel)
	if err != nil {
		response.FromError(c, err)
		return
	}

	response.Success(c, supply)
}

// List 分页获取物料列表
func (h *SupplyHandler) List(c *gin.Context) {
	params := pagination.ParsePageParams(c)

	supplies, total, err := h.supplyService.GetWithPage(
		middleware.CurrentBusinessID(c), c.Query("category"), c.Query("keyword"),
		parseListQuery(c), params.Page, params.PageSize)
	if err != nil {
		response.FromError(c, err)
		return
	}

	response.SuccessWithPage(c, supplies, pagination.NewPageInfo(params.Page, params.PageSize, total))
}

// GetByID 获取物料详情
func (h *SupplyHandler) GetByID(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		response.BadRequest(c, "无效的ID")
		return
	}

	supply, err := h.supplyService.GetByID(middleware.CurrentBusinessID(c), id)
	if err != nil {
		response.FromError(c, err)
		return
	}

	response.Success(c, supply)
}

// Update 更新物料
func (h *SupplyHandler) Update(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		response.BadRequest(c, "无效的ID")
		return
	}

	var req SupplyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "请求参数错误: "+err.Error())
		return
	}

	supply, err := h.supplyService.Update(
		middleware.CurrentBusinessID(c), id, req.Name, req.Category, req.Unit, req.Quantity, req.ReorderLevel)
	if err != nil {
		response.FromError(c, err)
		return
	}

	response.Success(c, supply)
}

// AdjustQuantity 调整物料库存
func (h *SupplyHandler) AdjustQuantity(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		response.BadRequest(c, "无效的ID")
		return
	}

	var req AdjustQuantityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "请求参数错误: "+err.Error())
		return
	}

	supply, err := h.supplyService.AdjustQuantity(middleware.CurrentBusinessID(c), id, req.Delta)
	if err != nil {
		response.FromError(c, err)
		return
	}

	response.Success(c, supply)
}

// Archive 归档物料
func (h *SupplyHandler) Archive(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		response.BadRequest(c, "无效的ID")
		return
	}

	supply, err := h.supplyService.Archive(middleware.CurrentBusinessID(c), id, middleware.CurrentUserID(c))
	if err != nil {
		response.FromError(c, err)
		return
	}

	response.Success(c, supply)
}

// Restore 恢复物料
func (h *SupplyHandler) Restore(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		response.BadRequest(c, "无效的ID")
		return
	}

	supply, err := h.supplyService.Restore(middleware.CurrentBusinessID(c), id, middleware.CurrentUserID(c))
	if err != nil {
		response.FromError(c, err)
		return
	}

	response.Success(c, supply)
}
