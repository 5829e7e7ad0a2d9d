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

// InvoiceHandler 发票处理器
type InvoiceHandler struct {
	invoiceService *services.InvoiceService
}

func NewInvoiceHandler(invoiceService *services.InvoiceService) *InvoiceHandler {
	return &InvoiceHandler{invoiceService: invoiceService}
}

type CreateInvoiceRequest struct {
	PartnerID *uint           `json:"partner_id"`
	EventID   *uint           `json:"event_id"`
	Amount    decimal.Decimal `json:"amount" binding:"required"`
	TaxAmount decimal.Decimal `json:"tax_amount"`
	Currency  string          `json:"currency"`
	DueDate   *time.Time      `json:"due_date"`
	Notes     string          `json:"notes"`
}

type InvoiceStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// Create 创建发票
func (h *InvoiceHandler) Create(c *gin.Context) {
	var req CreateInvoiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "请求参数错误: "+err.Error())
		return
	}

	invoice, err := h.invoiceService.Create(
		middleware.CurrentBusinessID(c), req.PartnerID, req.EventID,
		req.Amount, req.TaxAmount, req.Currency, req.DueDate, req.Notes)
	if err != nil {
		response.FromError(c, err)
		return
	}

	response.Success(c, invoice)
}

// List 分页获取发票列表
func (h *InvoiceHandler) List(c *gin.Context) {
	params := pagination.ParsePageParams(c)

	invoices, total, err := h.invoiceService.GetWithPage(
		middleware.CurrentBusinessID(c), c.Query("status"), parseOptionalUint(c, "partner_id"),
		parseListQuery(c), params.Page, params.PageSize)
	if err != nil {
		response.FromError(c, err)
		return
	}

	response.SuccessWithPage(c, invoices, pagination.NewPageInfo(params.Page, params.PageSize, total))
}

// GetByID 获取发票详情
func (h *InvoiceHandler) GetByID(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		response.BadRequest(c, "无效的ID")
		return
	}

	invoice, err := h.invoiceService.GetByID(middleware.CurrentBusinessID(c), id)
	if err != nil {
		response.FromError(c, err)
		return
	}

	response.Success(c, invoice)
}

// UpdateStatus 更新发票状态
func (h *InvoiceHandler) UpdateStatus(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		response.BadRequest(c, "无效的ID")
		return
	}

	var req InvoiceStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "请求参数错误: "+err.Error())
		return
	}

	invoice, err := h.invoiceService.UpdateStatus(middleware.CurrentBusinessID(c), id, req.Status)
	if err != nil {
		response.FromError(c, err)
		return
	}

	response.Success(c, invoice)
}

// Archive 归档发票
func (h *InvoiceHandler) Archive(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		response.BadRequest(c, "无效的ID")
		return
	}

	invoice, err := h.invoiceService.Archive(middleware.CurrentBusinessID(c), id, middleware.CurrentUserID(c))
	if err != nil {
		response.FromError(c, err)
		return
	}

	response.Success(c, invoice)
}

// Restore 恢复发票
func (h *InvoiceHandler) Restore(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		response.BadRequest(c, "无效的ID")
		return
	}

	invoice, err := h.invoiceService.Restore(middleware.CurrentBusinessID(c), id, middleware.CurrentUserID(c))
	if err != nil {
		response.FromError(c, err)
		return
	}

	response.Success(c, invoice)
}
