package router

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "github.com/xiebiao/storefront/docs" // Swagger文档(swag init生成)
	"github.com/xiebiao/storefront/internal/infrastructure/config"
	"github.com/xiebiao/storefront/internal/interface/http/handler"
	"github.com/xiebiao/storefront/internal/interface/http/middleware"
)

// New 创建并配置Gin引擎
// 中间件顺序：Recovery → Logger → Tracing → Metrics → CORS → Timeout
// 限流只挂在写接口上，读接口不受影响
func New(cfg *config.Config, bookHandler *handler.BookHandler, limiter middleware.Limiter) *gin.Engine {
	switch cfg.Server.Mode {
	case gin.ReleaseMode, gin.TestMode, gin.DebugMode:
		gin.SetMode(cfg.Server.Mode)
	}

	r := gin.New()
	r.Use(
		middleware.Recovery(),
		middleware.Logger(),
		middleware.Tracing(cfg.Tracing.ServiceName),
		middleware.Metrics(),
		middleware.CORS(cfg.CORS),
		middleware.Timeout(cfg.Server.RequestTimeout),
	)

	// 健康检查
	r.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"message": "pong",
			"status":  "healthy",
		})
	})

	// Prometheus抓取端点
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// Swagger文档：http://localhost:8080/swagger/index.html
	// 生产环境不暴露
	if cfg.Server.Mode != gin.ReleaseMode {
		r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	// 图书模块
	writeLimit := middleware.RateLimit(limiter)
	books := r.Group("/books")
	{
		books.GET("", bookHandler.ListBooks)
		books.GET("/categories", bookHandler.ListCategories)
		books.GET("/:id", bookHandler.GetBook)

		books.POST("", writeLimit, bookHandler.CreateBook)
		books.PUT("/:id", writeLimit, bookHandler.UpdateBook)
		books.DELETE("/:id", writeLimit, bookHandler.DeleteBook)
	}

	return r
}
