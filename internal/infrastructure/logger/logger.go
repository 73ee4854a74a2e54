package logger

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/xiebiao/storefront/internal/infrastructure/config"
)

// New 根据配置创建zerolog日志器，并设置为全局log.Logger
// 返回的close函数用于关闭日志文件（输出到stdout/stderr时为空操作）
//
// 设计说明：
// 1. format=json 输出结构化日志，便于ELK/Loki采集
// 2. format=console 输出带颜色的人类可读格式（开发环境）
// 3. 请求级日志通过log.Ctx(ctx)获取（中间件会注入request_id字段）
func New(cfg config.LogConfig) (zerolog.Logger, func() error, error) {
	out, closeFn, err := openOutput(cfg.Output)
	if err != nil {
		return zerolog.Nop(), nil, err
	}

	if strings.EqualFold(cfg.Format, "console") {
		out = zerolog.ConsoleWriter{Out: out, TimeFormat: time.DateTime}
	}

	level, err := zerolog.ParseLevel(strings.ToLower(cfg.Level))
	if err != nil || level == zerolog.NoLevel {
		level = zerolog.InfoLevel
	}

	l := zerolog.New(out).Level(level).With().Timestamp().Logger()

	log.Logger = l
	zerolog.DefaultContextLogger = &log.Logger
	return l, closeFn, nil
}

func openOutput(output string) (io.Writer, func() error, error) {
	noop := func() error { return nil }
	switch strings.ToLower(output) {
	case "", "stdout":
		return os.Stdout, noop, nil
	case "stderr":
		return os.Stderr, noop, nil
	}

	f, err := os.OpenFile(output, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("打开日志文件失败: %w", err)
	}
	return f, f.Close, nil
}
