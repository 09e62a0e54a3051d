package queue

import (
	"encoding/json"

	"github.com/hayuwidyas/commerce-api/internal/constants"

	"github.com/hibiken/asynq"
)

const (
	// TaskCatalogEvict 缓存老化清理任务
	TaskCatalogEvict = constants.TaskCatalogEvict
	// TaskCatalogRefresh 目录预热刷新任务
	TaskCatalogRefresh = constants.TaskCatalogRefresh
)

// CatalogEvictPayload 老化清理任务载荷
type CatalogEvictPayload struct {
	RequestedAt int64 `json:"requested_at"` // epoch 毫秒
}

// CatalogRefreshPayload 预热刷新任务载荷
type CatalogRefreshPayload struct {
	RequestedAt int64 `json:"requested_at"` // epoch 毫秒
}

// NewCatalogEvictTask 创建老化清理任务
func NewCatalogEvictTask(payload CatalogEvictPayload) (*asynq.Task, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskCatalogEvict, body), nil
}

// NewCatalogRefreshTask 创建预热刷新任务
func NewCatalogRefreshTask(payload CatalogRefreshPayload) (*asynq.Task, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskCatalogRefresh, body), nil
}
