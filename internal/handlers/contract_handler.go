package handlers

import (
	"time"

	"github.com/FiestaEvents/fiesta-backend-sub002/internal/middleware"
	"github.com/FiestaEvents/fiesta-backend-sub002/internal/services"
	"github.com/FiestaEvents/fiesta-backend-sub002/pkg/pagination"
	"github.com/FiestaEvents/fiesta-backend-sub002/pkg/response"

	"github.com/gin-gonic/gin"
)

// ContractHandler 合同处理器
type ContractHandler struct {
	contractService *services.ContractService
}

func NewContractHandler(contractService *services.ContractService) *ContractHandler {
	return &ContractHandler{contractService: contractService}
}

type CreateContractRequest struct {
	PartnerID *uint      `json:"partner_id"`
	Title     string     `json:"title" binding:"required"`
	StartDate time.Time  `json:"start_date" binding:"required"`
	EndDate   *time.Time `json:"end_date"`
	Notes     string     `json:"notes"`
}

type ContractStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// Create 创建合同
func (h *ContractHandler) Create(c *gin.Context) {
	var req CreateContractRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "请求参数错误: "+err.Error())
		return
	}

	contract, err := h.contractService.Create(
		middleware.CurrentBusinessID(c), req.PartnerID, req.Title, req.StartDate, req.EndDate, req.Notes)
	if err != nil {
		response.FromError(c, err)
		return
	}

	response.Success(c, contract)
}

// List 分页获取合同列表
func (h *ContractHandler) List(c *gin.Context) {
	params := pagination.ParsePageParams(c)

	contracts, total, err := h.contractService.GetWithPage(
		middleware.CurrentBusinessID(c), c.Query("status"), parseOptionalUint(c, "partner_id"),
		parseListQuery(c), params.Page, params.PageSize)
	if err != nil {
		response.FromError(c, err)
		return
	}

	response.SuccessWithPage(c, contracts, pagination.NewPageInfo(params.Page, params.PageSize, total))
}

// GetByID 获取合同详情
func (h *ContractHandler) GetByID(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		response.BadRequest(c, "无效的ID")
		return
	}

	contract, err := h.contractService.GetByID(middleware.CurrentBusinessID(c), id)
	if err != nil {
		response.FromError(c, err)
		return
	}

	response.Success(c, contract)
}

// UpdateStatus 更新合同状态
func (h *ContractHandler) UpdateStatus(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		response.BadRequest(c, "无效的ID")
		return
	}

	var req ContractStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "请求参数错误: "+err.Error())
		return
	}

	contract, err := h.contractService.UpdateStatus(middleware.CurrentBusinessID(c), id, req.Status)
	if err != nil {
		response.FromError(c, err)
		return
	}

	response.Success(c, contract)
}

// Archive 归档合同
func (h *ContractHandler) Archive(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		response.BadRequest(c, "无效的ID")
		return
	}

	contract, err := h.contractService.Archive(middleware.CurrentBusinessID(c), id, middleware.CurrentUserID(c))
	if err != nil {
		response.FromError(c, err)
		return
	}

	response.Success(c, contract)
}

// Restore 恢复合同
func (h *ContractHandler) Restore(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		response.BadRequest(c, "无效的ID")
		return
	}

	contract, err := h.contractService.Restore(middleware.CurrentBusinessID(c), id, middleware.CurrentUserID(c))
	if err != nil {
		response.FromError(c, err)
		return
	}

	response.Success(c, contract)
}
