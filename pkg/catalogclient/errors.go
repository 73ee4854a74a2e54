package catalogclient

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/sony/gobreaker"
)

// APIError 目录服务返回的非2xx响应
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("catalog: %d %s", e.Status, e.Message)
}

// IsNotFound 图书不存在(404)
func IsNotFound(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.Status == http.StatusNotFound
}

// IsValidation 请求参数被拒绝(400)
func IsValidation(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.Status == http.StatusBadRequest
}

// IsTransient 可重试的错误：5xx、429、网络错误、熔断器打开
func IsTransient(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
		return true
	}
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.Status >= http.StatusInternalServerError || apiErr.Status == http.StatusTooManyRequests
	}
	// 非APIError即传输层错误(连接失败、超时)
	return true
}
