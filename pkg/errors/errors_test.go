package errors

import (
	stderrors "errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCodeOf(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"未登录", ErrUnauthenticated, CodeUnauthorized},
		{"权限不足", ErrForbidden, CodeForbidden},
		{"记录不存在", ErrNotFound, CodeNotFound},
		{"记录冲突", ErrConflict, CodeConflict},
		{"已归档", ErrAlreadyArchived, CodeInvalidParam},
		{"未归档", ErrNotArchived, CodeInvalidParam},
		{"校验失败", ErrValidation, CodeInvalidParam},
		{"未知错误", stderrors.New("boom"), CodeServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CodeOf(tt.err))
		})
	}
}

func TestCodeOf_WrappedSentinel(t *testing.T) {
	wrapped := fmt.Errorf("场地归档失败: %w", ErrAlreadyArchived)
	assert.Equal(t, CodeInvalidParam, CodeOf(wrapped))
}

func TestAppError_CarriesCodeAndUnwraps(t *testing.T) {
	err := NewConflict("已有同名的活跃角色")

	assert.Equal(t, CodeConflict, CodeOf(err))
	assert.Equal(t, "已有同名的活跃角色", err.Error())
	assert.True(t, stderrors.Is(err, ErrConflict))
}

func TestAppError_NotFoundIndistinguishableMessage(t *testing.T) {
	err := NewNotFound("记录不存在")
	assert.Equal(t, CodeNotFound, CodeOf(err))
	assert.True(t, stderrors.Is(err, ErrNotFound))
}
