package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/cors"

	"github.com/xiebiao/storefront/internal/infrastructure/config"
)

// CORS 跨域资源共享中间件
// 浏览器端店面与目录API不同源（如 http://localhost:5173 → http://localhost:8080），
// PUT/DELETE与JSON请求体都会触发预检请求（OPTIONS）
//
// 注意：allow_credentials=true时不能使用"*"
func CORS(cfg config.CORSConfig) gin.HandlerFunc {
	handler := cors.New(cors.Options{
		AllowedOrigins:       cfg.AllowOrigins,
		AllowedMethods:       []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowedHeaders:       []string{"Content-Type", HeaderRequestID},
		ExposedHeaders:       []string{HeaderRequestID},
		AllowCredentials:     cfg.AllowCredentials,
		MaxAge:               cfg.MaxAge,
		OptionsSuccessStatus: http.StatusNoContent,
	})

	return func(c *gin.Context) {
		handler.HandlerFunc(c.Writer, c.Request)

		// 预检请求到此为止，不进入路由
		if c.Request.Method == http.MethodOptions && c.GetHeader("Access-Control-Request-Method") != "" {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}
		c.Next()
	}
}
