package main

import (
	"time"

	"github.com/hayuwidyas/commerce-api/internal/config"
	"github.com/hayuwidyas/commerce-api/internal/fallback"
	"github.com/hayuwidyas/commerce-api/internal/logger"
	"github.com/hayuwidyas/commerce-api/internal/models"
	"github.com/hayuwidyas/commerce-api/internal/repository"
)

// 用兜底目录灌入商品缓存，让服务首次离线启动时就有数据可查。
// 通过 upsert 写入，可重复执行。
func main() {
	cfg := config.Load()
	logger.Init(cfg.Server.Mode, cfg.Log.ToLoggerOptions())
	stdLog := logger.StdLogger()

	if err := models.InitDB(cfg.Database.Driver, cfg.Database.DSN, models.DBPoolConfig{
		MaxOpenConns:           cfg.Database.Pool.MaxOpenConns,
		MaxIdleConns:           cfg.Database.Pool.MaxIdleConns,
		ConnMaxLifetimeSeconds: cfg.Database.Pool.ConnMaxLifetimeSeconds,
		ConnMaxIdleTimeSeconds: cfg.Database.Pool.ConnMaxIdleTimeSeconds,
	}); err != nil {
		stdLog.Fatalf("Failed to connect database: %v", err)
	}

	if err := models.AutoMigrate(); err != nil {
		stdLog.Fatalf("Failed to migrate database: %v", err)
	}

	repo := repository.NewProductCacheRepository(models.DB)
	products := fallback.Products()
	if err := repo.UpsertMany(products, time.Now()); err != nil {
		stdLog.Fatalf("Failed to seed product cache: %v", err)
	}

	count, err := repo.Count()
	if err != nil {
		stdLog.Fatalf("Failed to count product cache: %v", err)
	}
	stdLog.Printf("Seed complete: %d products seeded, %d rows in cache", len(products), count)
}
