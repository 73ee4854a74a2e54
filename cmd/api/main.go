package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/xiebiao/storefront/internal/infrastructure/config"
	"github.com/xiebiao/storefront/internal/infrastructure/logger"
	"github.com/xiebiao/storefront/pkg/metrics"
	"github.com/xiebiao/storefront/pkg/tracing"
)

// @title           Bookstore Catalog API
// @version         1.0
// @description     图书目录服务：分页、分类过滤、增删改查
// @host            localhost:8080
// @BasePath        /
func main() {
	// 1. 加载配置
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("加载配置失败")
	}

	// 2. 初始化日志
	_, closeLog, err := logger.New(cfg.Log)
	if err != nil {
		log.Fatal().Err(err).Msg("初始化日志失败")
	}
	defer closeLog()

	log.Info().
		Int("port", cfg.Server.Port).
		Str("mode", cfg.Server.Mode).
		Str("db_driver", cfg.Database.Driver).
		Bool("redis", cfg.Redis.Enabled).
		Bool("mq", cfg.MQ.Enabled).
		Msg("配置加载成功")

	// 3. 初始化可观测性
	shutdownTracer, err := tracing.InitTracer(tracing.Options{
		Enabled:     cfg.Tracing.Enabled,
		ServiceName: cfg.Tracing.ServiceName,
		Endpoint:    cfg.Tracing.Endpoint,
		SampleRatio: cfg.Tracing.SampleRatio,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("初始化Tracer失败")
	}
	metrics.InitMetrics()

	// 4. 依赖注入（Wire生成）
	engine, cleanup, err := InitializeApp(cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("初始化应用失败")
	}

	srv := &http.Server{
		Addr:         cfg.Server.Addr(),
		Handler:      engine,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	// 5. 启动服务
	go func() {
		log.Info().Str("addr", srv.Addr).Msg("服务启动成功")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("启动服务失败")
		}
	}()

	// 6. 优雅退出：等待进行中的请求处理完，再释放数据库/Redis/MQ连接
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	<-ctx.Done()
	log.Info().Msg("收到退出信号，正在关闭服务")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("关闭HTTP服务失败")
	}
	cleanup()
	if err := shutdownTracer(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("关闭Tracer失败")
	}
	log.Info().Msg("服务已退出")
}
