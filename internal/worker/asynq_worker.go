package worker

import (
	"context"
	"encoding/json"
	"time"

	"github.com/hayuwidyas/commerce-api/internal/logger"
	"github.com/hayuwidyas/commerce-api/internal/provider"
	"github.com/hayuwidyas/commerce-api/internal/queue"

	"github.com/hibiken/asynq"
)

// Consumer 异步任务消费者
type Consumer struct {
	*provider.Container
}

// NewConsumer 创建消费者
func NewConsumer(c *provider.Container) *Consumer {
	return &Consumer{
		Container: c,
	}
}

// Register 注册消费者
func (c *Consumer) Register(mux *asynq.ServeMux) {
	if c == nil || mux == nil {
		logger.Debugw("worker_register_skip_nil", "consumer_nil", c == nil, "mux_nil", mux == nil)
		return
	}
	mux.HandleFunc(queue.TaskCatalogEvict, c.handleCatalogEvict)
	mux.HandleFunc(queue.TaskCatalogRefresh, c.handleCatalogRefresh)
}

func (c *Consumer) handleCatalogEvict(_ context.Context, task *asynq.Task) error {
	if c == nil || task == nil {
		return nil
	}
	var payload queue.CatalogEvictPayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		logger.Warnw("worker_catalog_evict_unmarshal_failed", "error", err)
		return err
	}
	evicted, err := c.CatalogService.EvictExpired(time.Now())
	if err != nil {
		logger.Warnw("worker_catalog_evict_failed", "error", err)
		return err
	}
	logger.Infow("worker_catalog_evict_done", "evicted", evicted, "requested_at", payload.RequestedAt)
	return nil
}

func (c *Consumer) handleCatalogRefresh(ctx context.Context, task *asynq.Task) error {
	if c == nil || task == nil {
		return nil
	}
	var payload queue.CatalogRefreshPayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		logger.Warnw("worker_catalog_refresh_unmarshal_failed", "error", err)
		return err
	}
	refreshed, err := c.CatalogService.RefreshCatalog(ctx)
	if err != nil {
		logger.Warnw("worker_catalog_refresh_failed", "refreshed", refreshed, "error", err)
		return err
	}
	logger.Infow("worker_catalog_refresh_done", "refreshed", refreshed, "requested_at", payload.RequestedAt)
	return nil
}
