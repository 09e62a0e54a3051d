package admin

import (
	"time"

	"github.com/hayuwidyas/commerce-api/internal/http/response"
	"github.com/hayuwidyas/commerce-api/internal/logger"
	"github.com/hayuwidyas/commerce-api/internal/queue"

	"github.com/gin-gonic/gin"
)

// GetCacheStats 缓存统计
func (h *Handler) GetCacheStats(c *gin.Context) {
	stats, err := h.CatalogService.Stats()
	if err != nil {
		response.Error(c, response.CodeInternal, "cache stats failed")
		return
	}
	response.Success(c, stats)
}

// EvictCache 触发缓存老化清理。队列可用时投递异步任务，否则就地执行
func (h *Handler) EvictCache(c *gin.Context) {
	if h.QueueClient.Enabled() {
		payload := queue.CatalogEvictPayload{RequestedAt: time.Now().UnixMilli()}
		if err := h.QueueClient.EnqueueCatalogEvict(payload); err != nil {
			logger.Warnw("admin_evict_enqueue_failed", "error", err)
			response.Error(c, response.CodeInternal, "evict enqueue failed")
			return
		}
		response.Success(c, gin.H{"enqueued": true})
		return
	}
	evicted, err := h.CatalogService.EvictExpired(time.Now())
	if err != nil {
		response.Error(c, response.CodeInternal, "evict failed")
		return
	}
	response.Success(c, gin.H{"enqueued": false, "evicted": evicted})
}

// RefreshCache 触发目录预热刷新
func (h *Handler) RefreshCache(c *gin.Context) {
	if h.QueueClient.Enabled() {
		payload := queue.CatalogRefreshPayload{RequestedAt: time.Now().UnixMilli()}
		if err := h.QueueClient.EnqueueCatalogRefresh(payload); err != nil {
			logger.Warnw("admin_refresh_enqueue_failed", "error", err)
			response.Error(c, response.CodeInternal, "refresh enqueue failed")
			return
		}
		response.Success(c, gin.H{"enqueued": true})
		return
	}
	refreshed, err := h.CatalogService.RefreshCatalog(c.Request.Context())
	if err != nil {
		response.Error(c, response.CodeInternal, "refresh failed")
		return
	}
	response.Success(c, gin.H{"enqueued": false, "refreshed": refreshed})
}

// ClearCache 清空商品缓存
func (h *Handler) ClearCache(c *gin.Context) {
	if err := h.CatalogService.ClearCache(c.Request.Context()); err != nil {
		response.Error(c, response.CodeInternal, "cache clear failed")
		return
	}
	response.Success(c, nil)
}
