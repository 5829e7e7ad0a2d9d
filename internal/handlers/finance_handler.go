package handlers

import (
	"time"

	"github.com/FiestaEvents/fiesta-backend-sub002/internal/middleware"
	"github.com/FiestaEvents/fiesta-backend-sub002/internal/services"
	"github.com/FiestaEvents/fiesta-backend-sub002/pkg/pagination"
	"github.com/FiestaEvents/fiesta-backend-sub002/pkg/response"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

// FinanceHandler 财务流水处理器
type FinanceHandler struct {
	financeService *services.FinanceService
}

func NewFinanceHandler(financeService *services.FinanceService) *FinanceHandler {
	return &FinanceHandler{financeService: financeService}
}

type CreateFinanceRequest struct {
	Kind       string          `json:"kind" binding:"required"`
	Category   string          `json:"category"`
	Amount     decimal.Decimal `json:"amount" binding:"required"`
	Currency   string          `json:"currency"`
	OccurredAt time.Time       `json:"occurred_at" binding:"required"`
	PartnerID  *uint           `json:"partner_id"`
	InvoiceID  *uint           `json:"invoice_id"`
	Notes      string          `json:"notes"`
}

type UpdateFinanceRequest struct {
	Category string           `json:"category"`
	Amount   *decimal.Decimal `json:"amount"`
	Notes    *string          `json:"notes"`
}

// Create 创建财务流水
func (h *FinanceHandler) Create(c *gin.Context) {
	var req CreateFinanceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "请求参数错误: "+err.Error())
		return
	}

	record, err := h.financeService.Create(
		middleware.CurrentBusinessID(c), req.Kind, req.Category, req.Amount, req.Currency,
		req.OccurredAt, req.PartnerID, req.InvoiceID, req.Notes)
	if err != nil {
		response.FromError(c, err)
		return
	}

	response.Success(c, record)
}

// List 分页获取财务流水列表
func (h *FinanceHandler) List(c *gin.Context) {
	params := pagination.ParsePageParams(c)

	records, total, err := h.financeService.GetWithPage(
		middleware.CurrentBusinessID(c), c.Query("kind"), c.Query("category"),
		parseListQuery(c), params.Page, params.PageSize)
	if err != nil {
		response.FromError(c, err)
		return
	}

	response.SuccessWithPage(c, records, pagination.NewPageInfo(params.Page, params.PageSize, total))
}

// GetByID 获取财务流水详情
func (h *FinanceHandler) GetByID(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		response.BadRequest(c, "无效的ID")
		return
	}

	record, err := h.financeService.GetByID(middleware.CurrentBusinessID(c), id)
	if err != nil {
		response.FromError(c, err)
		return
	}

	response.Success(c, record)
}

// Update 更新财务流水
func (h *FinanceHandler) Update(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		response.BadRequest(c, "无效的ID")
		return
	}

	var req UpdateFinanceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "请求参数错误: "+err.Error())
		return
	}

	record, err := h.financeService.Update(
		middleware.CurrentBusinessID(c), id, req.Category, req.Amount, req.Notes)
	if err != nil {
		response.FromError(c, err)
		return
	}

	response.Success(c, record)
}

// Summary 按类型汇总时间范围内的流水
func (h *FinanceHandler) Summary(c *gin.Context) {
	var from, to time.Time
	if raw := c.Query("from"); raw != "" {
		parsed, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			response.BadRequest(c, "from参数格式错误，需要RFC3339时间")
			return
		}
		from = parsed
	}
	if raw := c.Query("to"); raw != "" {
		parsed, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			response.BadRequest(c, "to参数格式错误，需要RFC3339时间")
			return
		}
		to = parsed
	}

	income, expense, err := h.financeService.Summarize(middleware.CurrentBusinessID(c), from, to)
	if err != nil {
		response.FromError(c, err)
		return
	}

	response.Success(c, gin.H{
		"income":  income,
		"expense": expense,
		"net":     income.Sub(expense),
	})
}

// Archive 归档财务流水
func (h *FinanceHandler) Archive(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		response.BadRequest(c, "无效的ID")
		return
	}

	record, err := h.financeService.Archive(middleware.CurrentBusinessID(c), id, middleware.CurrentUserID(c))
	if err != nil {
		response.FromError(c, err)
		return
	}

	response.Success(c, record)
}

// Restore 恢复财务流水
func (h *FinanceHandler) Restore(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		response.BadRequest(c, "无效的ID")
		return
	}

	record, err := h.financeService.Restore(middleware.CurrentBusinessID(c), id, middleware.CurrentUserID(c))
	if err != nil {
		response.FromError(c, err)
		return
	}

	response.Success(c, record)
}
