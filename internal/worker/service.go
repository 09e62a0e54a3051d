package worker

import (
	"context"
	"errors"
	"time"

	"github.com/hayuwidyas/commerce-api/internal/config"
	"github.com/hayuwidyas/commerce-api/internal/logger"
	"github.com/hayuwidyas/commerce-api/internal/queue"

	"github.com/hibiken/asynq"
)

// Service 异步队列服务
type Service struct {
	name            string
	server          *asynq.Server
	mux             *asynq.ServeMux
	consumer        *Consumer
	evictInterval   time.Duration
	refreshInterval time.Duration
}

// NewService 创建异步队列服务
func NewService(cfg *config.Config, consumer *Consumer) (*Service, error) {
	if cfg == nil || !cfg.Queue.Enabled {
		return nil, errors.New("queue disabled")
	}
	if consumer == nil {
		return nil, errors.New("consumer is nil")
	}
	opt, serverCfg := queue.BuildServerConfig(&cfg.Queue)
	server := asynq.NewServer(opt, serverCfg)
	mux := asynq.NewServeMux()
	consumer.Register(mux)

	refreshInterval := time.Duration(cfg.Catalog.RefreshIntervalMinutes) * time.Minute
	return &Service{
		name:            "worker",
		server:          server,
		mux:             mux,
		consumer:        consumer,
		evictInterval:   cfg.Catalog.EvictionWindow(),
		refreshInterval: refreshInterval,
	}, nil
}

// Name 服务名称
func (s *Service) Name() string {
	if s == nil || s.name == "" {
		return "worker"
	}
	return s.name
}

// Start 启动服务
func (s *Service) Start(ctx context.Context) error {
	if s == nil || s.server == nil || s.mux == nil {
		return errors.New("worker not initialized")
	}
	if s.consumer != nil && s.consumer.CatalogService != nil {
		go s.runMaintenanceLoop(ctx)
	}
	return s.server.Run(s.mux)
}

// Stop 停止服务
func (s *Service) Stop(ctx context.Context) error {
	if s == nil || s.server == nil {
		return nil
	}
	_ = ctx
	s.server.Shutdown()
	return nil
}

// runMaintenanceLoop 周期性投递老化清理与预热刷新任务
func (s *Service) runMaintenanceLoop(ctx context.Context) {
	if s == nil || s.consumer == nil || s.consumer.QueueClient == nil {
		return
	}
	enqueueEvict := func() {
		payload := queue.CatalogEvictPayload{RequestedAt: time.Now().UnixMilli()}
		if err := s.consumer.QueueClient.EnqueueCatalogEvict(payload); err != nil {
			logger.Warnw("worker_evict_enqueue_failed", "error", err)
		}
	}
	enqueueRefresh := func() {
		payload := queue.CatalogRefreshPayload{RequestedAt: time.Now().UnixMilli()}
		if err := s.consumer.QueueClient.EnqueueCatalogRefresh(payload); err != nil {
			logger.Warnw("worker_refresh_enqueue_failed", "error", err)
		}
	}

	evictTicker := time.NewTicker(s.evictInterval)
	defer evictTicker.Stop()

	var refreshCh <-chan time.Time
	if s.refreshInterval > 0 {
		refreshTicker := time.NewTicker(s.refreshInterval)
		defer refreshTicker.Stop()
		refreshCh = refreshTicker.C
		enqueueRefresh()
	}

	for {
		select {
		case <-ctx.Done():
			return
		case <-evictTicker.C:
			enqueueEvict()
		case <-refreshCh:
			enqueueRefresh()
		}
	}
}
