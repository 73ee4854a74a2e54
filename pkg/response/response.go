package response

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	apperrors "github.com/xiebiao/storefront/pkg/errors"
)

// ErrorBody 统一错误响应结构
// 设计说明：
// 目录接口与浏览器端约定的是"裸"JSON（不包统一信封），
// 失败时只返回 {"message": "..."}，错误类别由HTTP状态码表达
type ErrorBody struct {
	Message string `json:"message" example:"Book not found."`
}

// Success 200 + JSON
func Success(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, data)
}

// NoContent 204
func NoContent(c *gin.Context) {
	c.Status(http.StatusNoContent)
}

// Error 错误响应（自动处理AppError）
// 用法：
//
//	book, err := uc.Execute(...)
//	if err != nil {
//	    response.Error(c, err)
//	    return
//	}
func Error(c *gin.Context, err error) {
	appErr := apperrors.GetAppError(err)
	status := apperrors.HTTPStatus(appErr)

	// 内部错误只写日志，不返回给客户端
	if appErr.Err != nil || status >= http.StatusInternalServerError {
		log.Ctx(c.Request.Context()).Error().
			Err(appErr).
			Int("status", status).
			Str("path", c.FullPath()).
			Msg("request failed")
	}

	c.AbortWithStatusJSON(status, ErrorBody{Message: appErr.Message})
}

// ErrorWithCode 自定义错误码和消息
func ErrorWithCode(c *gin.Context, code int, message string) {
	Error(c, apperrors.New(code, message))
}
