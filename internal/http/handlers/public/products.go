package public

import (
	"io"
	"strconv"
	"strings"

	"github.com/hayuwidyas/commerce-api/internal/http/response"
	"github.com/hayuwidyas/commerce-api/internal/models"
	"github.com/hayuwidyas/commerce-api/internal/service"

	"github.com/gin-gonic/gin"
)

// catalogQueryFromRequest 从请求参数组装目录查询，参数非法时已写入响应
func catalogQueryFromRequest(c *gin.Context) (service.CatalogQuery, bool) {
	query := service.CatalogQuery{
		Page:         parseInt(c.Query("page"), 1),
		PageSize:     parseInt(c.DefaultQuery("page_size", c.Query("per_page")), 0),
		Search:       strings.TrimSpace(c.Query("search")),
		Category:     strings.TrimSpace(c.Query("category")),
		Featured:     parseBoolPtr(c.Query("featured")),
		OnSale:       parseBoolPtr(c.Query("on_sale")),
		SortBy:       strings.TrimSpace(c.DefaultQuery("sort_by", c.Query("orderby"))),
		Order:        strings.TrimSpace(c.Query("order")),
		ForceRefresh: parseBool(c.Query("refresh")),
	}
	var err error
	if query.MinPrice, err = parseMoneyPtr(c.Query("min_price")); err != nil {
		response.BadRequest(c, "min_price invalid")
		return query, false
	}
	if query.MaxPrice, err = parseMoneyPtr(c.Query("max_price")); err != nil {
		response.BadRequest(c, "max_price invalid")
		return query, false
	}
	return query, true
}

// GetProducts 商品列表：条件过滤、排序、分页，响应携带数据来源与过期标记
func (h *Handler) GetProducts(c *gin.Context) {
	query, ok := catalogQueryFromRequest(c)
	if !ok {
		return
	}

	snap := resolveSnapshot(h.CatalogService.QueryProducts(c.Request.Context(), query))
	if !snap.IsSuccess() {
		response.ErrorFromSnapshot(c, snap.Err)
		return
	}
	response.SuccessWithMeta(c, snap.Value, response.MetaFromSnapshot(snap.Provenance))
}

// WatchProducts 商品列表 SSE 订阅：连接后先推当前缓存命中集，
// 之后每次缓存写入或老化清理都会推送重新求值的新页
func (h *Handler) WatchProducts(c *gin.Context) {
	query, ok := catalogQueryFromRequest(c)
	if !ok {
		return
	}
	c.Writer.Header().Set("Content-Type", "text/event-stream")
	c.Writer.Header().Set("Cache-Control", "no-cache")
	c.Writer.Header().Set("Connection", "keep-alive")

	ch := h.CatalogService.WatchProducts(c.Request.Context(), query)
	c.Stream(func(w io.Writer) bool {
		snap, open := <-ch
		if !open {
			return false
		}
		c.SSEvent("products", snap.Value)
		return true
	})
}

// GetProduct 商品详情
func (h *Handler) GetProduct(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil || id == 0 {
		response.BadRequest(c, "product id invalid")
		return
	}
	forceRefresh := parseBool(c.Query("refresh"))

	snap := resolveSnapshot(h.CatalogService.GetProduct(c.Request.Context(), uint(id), forceRefresh))
	if !snap.IsSuccess() {
		response.ErrorFromSnapshot(c, snap.Err)
		return
	}
	response.SuccessWithMeta(c, snap.Value, response.MetaFromSnapshot(snap.Provenance))
}

// GetCategories 分类列表
func (h *Handler) GetCategories(c *gin.Context) {
	snap := resolveSnapshot(h.CatalogService.QueryCategories(c.Request.Context()))
	if !snap.IsSuccess() {
		response.ErrorFromSnapshot(c, snap.Err)
		return
	}
	response.SuccessWithMeta(c, snap.Value, response.MetaFromSnapshot(snap.Provenance))
}

func parseInt(raw string, fallback int) int {
	value, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return fallback
	}
	return value
}

func parseBool(raw string) bool {
	value, err := strconv.ParseBool(strings.TrimSpace(raw))
	return err == nil && value
}

func parseBoolPtr(raw string) *bool {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return nil
	}
	value, err := strconv.ParseBool(trimmed)
	if err != nil {
		return nil
	}
	return &value
}

func parseMoneyPtr(raw string) (*models.Money, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return nil, nil
	}
	money, err := models.NewMoneyFromString(trimmed)
	if err != nil {
		return nil, err
	}
	return &money, nil
}
