package handlers

import (
	"strconv"

	"github.com/FiestaEvents/fiesta-backend-sub002/internal/services"

	"github.com/gin-gonic/gin"
)

// parseIDParam 解析路径中的ID参数
func parseIDParam(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil || id == 0 {
		return 0, false
	}
	return uint(id), true
}

// parseListQuery 解析列表可见性参数；归档记录默认不出现在列表中
func parseListQuery(c *gin.Context) services.ListQuery {
	return services.ListQuery{
		IncludeArchived: c.Query("include_archived") == "true",
	}
}

// parseOptionalUint 解析可选的uint查询参数，缺省返回nil
func parseOptionalUint(c *gin.Context, key string) *uint {
	raw := c.Query(key)
	if raw == "" {
		return nil
	}
	value, err := strconv.ParseUint(raw, 10, 32)
	if err != nil {
		return nil
	}
	id := uint(value)
	return &id
}
