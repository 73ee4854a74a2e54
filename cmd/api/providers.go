package main

import (
	goredis "github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"

	"github.com/xiebiao/storefront/internal/infrastructure/config"
	"github.com/xiebiao/storefront/internal/infrastructure/persistence/redis"
	"github.com/xiebiao/storefront/internal/interface/http/middleware"
	"github.com/xiebiao/storefront/pkg/mq"
)

// ========================================
// Custom Providers (自定义Provider)
// ========================================
// 有些依赖需要从Config中提取参数或按开关选择实现，Wire无法自动推断，
// 这里手动编写Provider函数

// provideLimiter 按配置选择限流实现
// 1. rate_limit.enabled=false：不限流
// 2. Redis可用：分布式固定窗口，多实例共享配额
// 3. 否则：进程内令牌桶
func provideLimiter(cfg *config.Config, client *goredis.Client) (middleware.Limiter, error) {
	if !cfg.RateLimit.Enabled {
		return nil, nil
	}
	if client != nil {
		return redis.NewRateLimiter(client, cfg.RateLimit.Prefix, cfg.RateLimit.Requests, cfg.RateLimit.Window)
	}
	log.Info().Msg("Redis未启用，使用进程内限流")
	return middleware.NewLocalLimiter(cfg.RateLimit.Requests, cfg.RateLimit.Window), nil
}

// providePublisher 创建图书事件发布者
// 事件不是关键路径：连接RabbitMQ失败时降级为丢弃事件，不阻止服务启动
func providePublisher(cfg *config.Config) (mq.Publisher, func(), error) {
	if !cfg.MQ.Enabled {
		return mq.NoopPublisher{}, func() {}, nil
	}

	publisher, err := mq.NewPublisher(cfg.MQ.URL, cfg.MQ.Exchange, "topic")
	if err != nil {
		log.Warn().Err(err).Msg("消息队列不可用，图书事件将被丢弃")
		return mq.NoopPublisher{}, func() {}, nil
	}

	cleanup := func() {
		if err := publisher.Close(); err != nil {
			log.Error().Err(err).Msg("关闭消息发布者失败")
		}
	}
	return publisher, cleanup, nil
}
