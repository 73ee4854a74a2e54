package errors

import (
	"context"
	"errors"
	"fmt"
	"net/http"
)

// AppError 自定义应用错误
// 设计说明：
// 1. Code用于区分错误类别，HTTP状态码由HTTPStatus统一映射
// 2. Message是返回给客户端的提示信息
// 3. Err是内部错误，仅记录到日志，不返回给客户端
type AppError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Err     error  `json:"-"`
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("[%d] %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("[%d] %s", e.Code, e.Message)
}

// Unwrap 支持errors.Is和errors.As
func (e *AppError) Unwrap() error {
	return e.Err
}

// Is 按错误码比较，预定义错误被Wrap后仍可用errors.Is判断
func (e *AppError) Is(target error) bool {
	var t *AppError
	if !errors.As(target, &t) {
		return false
	}
	return t.Code == e.Code && t.Err == nil
}

// New 创建新的AppError
func New(code int, message string) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
	}
}

// Wrap 包装系统错误（内部错误）
func Wrap(err error, message string) *AppError {
	return &AppError{
		Code:    ErrCodeInternal,
		Message: message,
		Err:     err,
	}
}

// Wrapf 格式化包装错误
func Wrapf(err error, format string, args ...interface{}) *AppError {
	return &AppError{
		Code:    ErrCodeInternal,
		Message: fmt.Sprintf(format, args...),
		Err:     err,
	}
}

// WrapStorage 包装存储层错误
// 数据库不可达、超时、请求被取消都归为瞬时存储错误(TransientStorageError)，
// 本层不做重试，重试策略由调用方决定
func WrapStorage(err error, message string) *AppError {
	code := ErrCodeDatabaseError
	if errors.Is(err, context.Canceled) {
		code = ErrCodeCanceled
	}
	return &AppError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

// Validation 创建参数校验错误
func Validation(message string) *AppError {
	return New(ErrCodeInvalidParams, message)
}

// =========================================
// 错误码定义
// =========================================
// 规范：
// - 4xxxx: 客户端错误（参数错误、资源不存在、限流）
// - 5xxxx: 服务端错误（数据库异常、外部服务调用失败）

const (
	// 系统级错误码（50000-50099）
	ErrCodeInternal      = 50000 // 内部错误
	ErrCodeDatabaseError = 50001 // 数据库错误(不可达/超时)
	ErrCodeRedisError    = 50002 // Redis错误
	ErrCodeCanceled      = 50003 // 请求已被调用方取消

	// 资源错误（40400-40499）
	ErrCodeNotFound     = 40400 // 资源不存在(通用)
	ErrCodeBookNotFound = 40402 // 图书不存在

	// 限流（42900-42999）
	ErrCodeTooManyRequests = 42900

	// 参数错误（40900-40999）
	ErrCodeInvalidParams = 40900 // 参数错误
	ErrCodeBindError     = 40901 // 参数绑定失败
)

// 预定义错误
var (
	ErrInternal        = New(ErrCodeInternal, "Internal server error.")
	ErrDatabaseError   = New(ErrCodeDatabaseError, "Storage is temporarily unavailable.")
	ErrNotFound        = New(ErrCodeNotFound, "Resource not found.")
	ErrInvalidParams   = New(ErrCodeInvalidParams, "Invalid parameters.")
	ErrBindError       = New(ErrCodeBindError, "Malformed request body.")
	ErrTooManyRequests = New(ErrCodeTooManyRequests, "Too many requests.")
)

// =========================================
// 辅助函数
// =========================================

// IsAppError 判断是否为AppError
func IsAppError(err error) bool {
	var appErr *AppError
	return errors.As(err, &appErr)
}

// GetAppError 提取AppError（如果不是AppError则包装成Internal错误）
func GetAppError(err error) *AppError {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr
	}
	return Wrap(err, ErrInternal.Message)
}

// IsNotFound 是否为资源不存在错误
func IsNotFound(err error) bool {
	var appErr *AppError
	return errors.As(err, &appErr) && appErr.Code/100 == ErrCodeNotFound/100
}

// IsValidation 是否为参数校验错误
func IsValidation(err error) bool {
	var appErr *AppError
	return errors.As(err, &appErr) && appErr.Code/100 == ErrCodeInvalidParams/100
}

// IsTransient 是否为瞬时存储错误
func IsTransient(err error) bool {
	var appErr *AppError
	return errors.As(err, &appErr) &&
		(appErr.Code == ErrCodeDatabaseError || appErr.Code == ErrCodeRedisError || appErr.Code == ErrCodeCanceled)
}

// HTTPStatus 错误码 → HTTP状态码
func HTTPStatus(err error) int {
	appErr := GetAppError(err)
	switch appErr.Code / 100 {
	case ErrCodeNotFound / 100:
		return http.StatusNotFound
	case ErrCodeInvalidParams / 100:
		return http.StatusBadRequest
	case ErrCodeTooManyRequests / 100:
		return http.StatusTooManyRequests
	}
	switch appErr.Code {
	case ErrCodeDatabaseError, ErrCodeRedisError, ErrCodeCanceled:
		return http.StatusServiceUnavailable
	}
	return http.StatusInternalServerError
}
