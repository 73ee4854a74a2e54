package middleware

import (
	"context"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/hashicorp/golang-lru/v2/expirable"
	"golang.org/x/time/rate"

	apperrors "github.com/xiebiao/storefront/pkg/errors"
	"github.com/xiebiao/storefront/pkg/metrics"
	"github.com/xiebiao/storefront/pkg/response"
)

// Limiter 限流器
// Redis启用时为分布式固定窗口(redis.RateLimiter)，否则为进程内令牌桶(LocalLimiter)
type Limiter interface {
	Allow(ctx context.Context, key string) (bool, error)
}

// RateLimit 按客户端IP限流，只挂在写接口上
// 限流器出错时拒绝请求(fail closed)
func RateLimit(limiter Limiter) gin.HandlerFunc {
	metrics.InitMetrics()

	return func(c *gin.Context) {
		if limiter == nil {
			c.Next()
			return
		}

		ok, err := limiter.Allow(c.Request.Context(), c.ClientIP())
		if err != nil {
			response.Error(c, err)
			return
		}
		if !ok {
			metrics.RateLimitedTotal.Inc()
			response.Error(c, apperrors.ErrTooManyRequests)
			return
		}
		c.Next()
	}
}

// localLimiterSize 进程内最多跟踪的客户端数，超出时淘汰最久未访问的
const localLimiterSize = 10000

// LocalLimiter 进程内令牌桶限流器（每个key一个rate.Limiter）
// 窗口内允许requests次请求，突发上限同为requests
// 空闲超过一个窗口的key被淘汰：此时令牌桶已经回满，重建与保留等价
type LocalLimiter struct {
	mu       sync.Mutex
	limiters *expirable.LRU[string, *rate.Limiter]
	every    rate.Limit
	burst    int
}

// NewLocalLimiter 创建进程内限流器
func NewLocalLimiter(requests int, window time.Duration) *LocalLimiter {
	return newLocalLimiter(requests, window, localLimiterSize)
}

func newLocalLimiter(requests int, window time.Duration, size int) *LocalLimiter {
	return &LocalLimiter{
		limiters: expirable.NewLRU[string, *rate.Limiter](size, nil, window),
		every:    rate.Every(window / time.Duration(requests)),
		burst:    requests,
	}
}

// Allow 从key对应的令牌桶取一个令牌
func (l *LocalLimiter) Allow(_ context.Context, key string) (bool, error) {
	l.mu.Lock()
	limiter, ok := l.limiters.Get(key)
	if !ok {
		limiter = rate.NewLimiter(l.every, l.burst)
	}
	// 每次访问都重新Add，刷新过期时间
	l.limiters.Add(key, limiter)
	l.mu.Unlock()
	return limiter.Allow(), nil
}

// Len 当前跟踪的key数
func (l *LocalLimiter) Len() int {
	return l.limiters.Len()
}
