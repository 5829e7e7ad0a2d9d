package errors

import "errors"

// ========== 错误码常量定义 ==========

// CodeSuccess 成功码
const (
	CodeSuccess = 200
)

// HTTP层错误码 (400-599)
const (
	CodeInvalidParam = 400
	CodeUnauthorized = 401
	CodeForbidden    = 403
	CodeNotFound     = 404
	CodeConflict     = 409
	CodeServerError  = 500
)

// ========== 业务错误类型定义 ==========

// 核心业务错误：权限检查和归档生命周期统一返回这些类型化错误，
// 由handler层翻译为响应码
var (
	ErrUnauthenticated = errors.New("未登录或登录已过期")
	ErrForbidden       = errors.New("权限不足")
	ErrNotFound        = errors.New("记录不存在")
	ErrConflict        = errors.New("记录冲突")
	ErrAlreadyArchived = errors.New("记录已归档")
	ErrNotArchived     = errors.New("记录未归档")
	ErrValidation      = errors.New("参数校验失败")
)

// AppError 带响应码的业务错误
type AppError struct {
	Code    int
	Message string
	Err     error
}

func (e *AppError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return "未知错误"
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// NewValidation 参数校验错误
func NewValidation(message string) *AppError {
	return &AppError{Code: CodeInvalidParam, Message: message, Err: ErrValidation}
}

// NewConflict 唯一性冲突错误
func NewConflict(message string) *AppError {
	return &AppError{Code: CodeConflict, Message: message, Err: ErrConflict}
}

// NewNotFound 记录不存在（含跨租户访问，对调用方不可区分）
func NewNotFound(message string) *AppError {
	return &AppError{Code: CodeNotFound, Message: message, Err: ErrNotFound}
}

// CodeOf 根据错误类型返回响应码
func CodeOf(err error) int {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Code
	}
	switch {
	case errors.Is(err, ErrUnauthenticated):
		return CodeUnauthorized
	case errors.Is(err, ErrForbidden):
		return CodeForbidden
	case errors.Is(err, ErrNotFound):
		return CodeNotFound
	case errors.Is(err, ErrConflict):
		return CodeConflict
	case errors.Is(err, ErrAlreadyArchived), errors.Is(err, ErrNotArchived), errors.Is(err, ErrValidation):
		return CodeInvalidParam
	default:
		return CodeServerError
	}
}

// Is 透传标准库errors.Is，避免调用方同时导入两个errors包
func Is(err, target error) bool {
	return errors.Is(err, target)
}
