package database

import (
	"github.com/xiebiao/storefront/internal/infrastructure/config"
)

// MemoryConfig 内存SQLite配置,测试和本地演示使用
// 连接池只保留一个连接,每次调用NewDB都得到一个独立的空库
func MemoryConfig() *config.Config {
	return &config.Config{
		Server: config.ServerConfig{Mode: "test"},
		Database: config.DatabaseConfig{
			Driver:      config.DriverSQLite,
			Path:        ":memory:",
			AutoMigrate: true,
		},
	}
}
