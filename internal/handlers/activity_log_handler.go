package handlers

import (
	"github.com/FiestaEvents/fiesta-backend-sub002/internal/middleware"
	"github.com/FiestaEvents/fiesta-backend-sub002/internal/services"
	"github.com/FiestaEvents/fiesta-backend-sub002/pkg/pagination"
	"github.com/FiestaEvents/fiesta-backend-sub002/pkg/response"

	"github.com/gin-gonic/gin"
)

// ActivityLogHandler 审计日志处理器
type ActivityLogHandler struct {
	activityService *services.ActivityLogService
}

func NewActivityLogHandler(activityService *services.ActivityLogService) *ActivityLogHandler {
	return &ActivityLogHandler{activityService: activityService}
}

// List 分页获取审计日志
func (h *ActivityLogHandler) List(c *gin.Context) {
	params := pagination.ParsePageParams(c)

	logs, total, err := h.activityService.GetWithPage(
		middleware.CurrentBusinessID(c), c.Query("entity_type"), params.Page, params.PageSize)
	if err != nil {
		response.FromError(c, err)
		return
	}

	response.SuccessWithPage(c, logs, pagination.NewPageInfo(params.Page, params.PageSize, total))
}
