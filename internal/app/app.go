package app

import (
	"context"
	"database/sql"
	"errors"

	"go-leave/internal/shared/config"
	"go-leave/internal/shared/connection"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// BuildApp connects the infrastructure, migrates the schema when asked to and
// registers every HTTP module on the router. The returned func releases the
// connections.
func BuildApp(router *gin.Engine, cfg config.Config) (func(), error) {
	logger := zap.L().Named("app.api")

	gormDB, sqlDB, err := connectDatabase(cfg)
	if err != nil {
		return nil, err
	}
	logger.Info("database connection established")

	if cfg.RunMigrations {
		if err := migrate(gormDB); err != nil {
			_ = sqlDB.Close()
			return nil, err
		}
		logger.Info("database schema migrated")
	}

	var rdb *redis.Client
	if cfg.RedisAddr != "" {
		rdb, err = connection.ConnectRedisWithRetry(cfg.RedisAddr, cfg.ConnectRetries)
		if err != nil {
			_ = sqlDB.Close()
			return nil, err
		}
		logger.Info("redis connection established")
	} else {
		logger.Warn("REDIS_ADDR not set, leave type cache and idempotency disabled")
	}

	cleanup := func() {
		if rdb != nil {
			_ = rdb.Close()
		}
		_ = sqlDB.Close()
	}

	if err := registerModules(context.Background(), router, cfg, sqlDB, gormDB, rdb); err != nil {
		cleanup()
		return nil, err
	}

	return cleanup, nil
}

func connectDatabase(cfg config.Config) (*gorm.DB, *sql.DB, error) {
	gormDB, err := connection.ConnectGORMWithRetry(
		cfg.DBHost,
		cfg.DBUser,
		cfg.DBPassword,
		cfg.DBName,
		cfg.DBPort,
		cfg.DBSSLMode,
		cfg.ConnectRetries,
	)
	if err != nil {
		return nil, nil, err
	}

	sqlDB, err := gormDB.DB()
	if err != nil {
		return nil, nil, err
	}
	return gormDB, sqlDB, nil
}

var errKafkaBrokerRequired = errors.New("KAFKA_BROKER is required")
