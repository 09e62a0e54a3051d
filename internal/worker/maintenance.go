package worker

import (
	"context"
	"errors"
	"time"

	"github.com/hayuwidyas/commerce-api/internal/logger"
	"github.com/hayuwidyas/commerce-api/internal/service"
)

// MaintenanceService 队列未启用时的进程内维护服务：
// 按老化窗口周期直接执行缓存清理
type MaintenanceService struct {
	name     string
	catalog  *service.CatalogService
	interval time.Duration
}

// NewMaintenanceService 创建进程内维护服务
func NewMaintenanceService(catalog *service.CatalogService, interval time.Duration) *MaintenanceService {
	if interval <= 0 {
		interval = 30 * time.Minute
	}
	return &MaintenanceService{
		name:     "maintenance",
		catalog:  catalog,
		interval: interval,
	}
}

// Name 服务名称
func (s *MaintenanceService) Name() string {
	if s == nil || s.name == "" {
		return "maintenance"
	}
	return s.name
}

// Start 启动服务
func (s *MaintenanceService) Start(ctx context.Context) error {
	if s == nil || s.catalog == nil {
		return errors.New("maintenance not initialized")
	}
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			if _, err := s.catalog.EvictExpired(time.Now()); err != nil {
				logger.Warnw("maintenance_evict_failed", "error", err)
			}
		}
	}
}

// Stop 停止服务
func (s *MaintenanceService) Stop(ctx context.Context) error {
	_ = ctx
	return nil
}
