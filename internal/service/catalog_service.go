package service

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/hayuwidyas/commerce-api/internal/cache"
	"github.com/hayuwidyas/commerce-api/internal/constants"
	"github.com/hayuwidyas/commerce-api/internal/fallback"
	"github.com/hayuwidyas/commerce-api/internal/logger"
	"github.com/hayuwidyas/commerce-api/internal/models"
	"github.com/hayuwidyas/commerce-api/internal/repository"
	"github.com/hayuwidyas/commerce-api/internal/result"
	"github.com/hayuwidyas/commerce-api/internal/woocommerce"
)

const categoriesCacheKey = "catalog:categories"

// RemoteCatalog 远端目录接口，生产环境由 woocommerce.Client 实现
type RemoteCatalog interface {
	ListProducts(ctx context.Context, query woocommerce.ProductQuery) ([]models.Product, woocommerce.PageMeta, error)
	GetProduct(ctx context.Context, id uint) (*models.Product, error)
	ListCategories(ctx context.Context, query woocommerce.CategoryQuery) ([]models.Category, woocommerce.PageMeta, error)
}

// CatalogQuery 商品目录查询：同一组条件同时作用于缓存、远端与兜底三个来源
type CatalogQuery struct {
	Page         int
	PageSize     int
	Search       string
	Category     string
	Featured     *bool
	OnSale       *bool
	MinPrice     *models.Money
	MaxPrice     *models.Money
	SortBy       string
	Order        string
	ForceRefresh bool // 跳过缓存直连远端
}

// ProductPage 商品列表页
type ProductPage struct {
	Products   []models.Product `json:"products"`
	Page       int              `json:"page"`
	PageSize   int              `json:"page_size"`
	Total      int64            `json:"total"`
	TotalPages int64            `json:"total_pages"`
}

// CacheStats 缓存统计（管理端用）
type CacheStats struct {
	Count           int64 `json:"count"`
	OldestUpdatedAt int64 `json:"oldest_updated_at"` // epoch 毫秒，0 表示空缓存
}

// CatalogService 商品目录调和服务。
// 对上提供统一的快照序列：loading 先行，随后零或多个成功快照，
// 终态为带来源标记的 success 或带分类的 error。
type CatalogService struct {
	cacheRepo       repository.ProductCacheRepository
	remote          RemoteCatalog
	evictionWindow  time.Duration
	defaultPageSize int
	categoryTTL     time.Duration
}

// NewCatalogService 创建目录服务
func NewCatalogService(cacheRepo repository.ProductCacheRepository, remote RemoteCatalog, evictionWindow time.Duration, defaultPageSize int, categoryTTL time.Duration) *CatalogService {
	if evictionWindow <= 0 {
		evictionWindow = 30 * time.Minute
	}
	if defaultPageSize <= 0 {
		defaultPageSize = constants.DefaultPageSize
	}
	return &CatalogService{
		cacheRepo:       cacheRepo,
		remote:          remote,
		evictionWindow:  evictionWindow,
		defaultPageSize: defaultPageSize,
		categoryTTL:     categoryTTL,
	}
}

// QueryProducts 查询商品列表，返回快照序列。
// 顺序：loading → 缓存快照（命中且未强制刷新时）→ 远端快照；
// 远端失败时缓存为空则降级兜底数据，否则以错误快照收尾。
// ctx 取消后序列停止，通道关闭。
func (s *CatalogService) QueryProducts(ctx context.Context, query CatalogQuery) <-chan result.Snapshot[ProductPage] {
	out := make(chan result.Snapshot[ProductPage], 3)
	query = s.normalizeQuery(query)

	go func() {
		defer close(out)
		if !send(ctx, out, result.Loading[ProductPage]()) {
			return
		}

		filter := query.toCacheFilter()
		if !query.ForceRefresh {
			cached, err := s.cacheRepo.List(filter)
			if err != nil {
				logger.Warnw("catalog_cache_read_failed", "error", err)
			} else if len(cached) > 0 {
				if !send(ctx, out, result.Success(s.cachePage(query, filter, cached), result.ProvenanceCache)) {
					return
				}
			}
		}

		products, meta, err := s.remote.ListProducts(ctx, query.toRemoteQuery())
		if err == nil {
			if upsertErr := s.cacheRepo.UpsertMany(products, time.Now()); upsertErr != nil {
				logger.Errorw("catalog_cache_write_failed", "error", upsertErr, "count", len(products))
			}
			page := ProductPage{
				Products:   products,
				Page:       query.Page,
				PageSize:   query.PageSize,
				Total:      meta.Total,
				TotalPages: meta.TotalPages,
			}
			send(ctx, out, result.Success(page, result.ProvenanceRemote))
			return
		}
		if ctx.Err() != nil {
			return
		}
		kind := classifyRemoteError(err)
		logger.Warnw("catalog_remote_failed", "kind", string(kind), "error", err)
		// 远端失败顺带触发一次老化清理，不阻塞本次查询
		go func() {
			if _, evictErr := s.EvictExpired(time.Now()); evictErr != nil {
				logger.Warnw("catalog_evict_failed", "error", evictErr)
			}
		}()

		count, countErr := s.cacheRepo.Count()
		if countErr != nil {
			logger.Warnw("catalog_cache_count_failed", "error", countErr)
		}
		if countErr == nil && count == 0 {
			send(ctx, out, result.Success(s.fallbackPage(query, filter), result.ProvenanceFallback))
			return
		}
		send(ctx, out, result.Failure[ProductPage](kind, err.Error()))
	}()
	return out
}

// GetProduct 查询单个商品，快照序列语义与列表一致
func (s *CatalogService) GetProduct(ctx context.Context, id uint, forceRefresh bool) <-chan result.Snapshot[models.Product] {
	out := make(chan result.Snapshot[models.Product], 3)

	go func() {
		defer close(out)
		if !send(ctx, out, result.Loading[models.Product]()) {
			return
		}

		emittedCache := false
		if !forceRefresh {
			cached, err := s.cacheRepo.Get(id)
			if err != nil {
				logger.Warnw("catalog_cache_read_failed", "product_id", id, "error", err)
			} else if cached != nil {
				if !send(ctx, out, result.Success(cached.Product, result.ProvenanceCache)) {
					return
				}
				emittedCache = true
			}
		}

		product, err := s.remote.GetProduct(ctx, id)
		if err == nil && product != nil {
			if upsertErr := s.cacheRepo.Upsert(*product, time.Now()); upsertErr != nil {
				logger.Errorw("catalog_cache_write_failed", "product_id", id, "error", upsertErr)
			}
			send(ctx, out, result.Success(*product, result.ProvenanceRemote))
			return
		}
		if ctx.Err() != nil {
			return
		}
		if err == nil {
			err = &woocommerce.APIError{Status: http.StatusNotFound, Body: "product not found"}
		}
		kind := classifyRemoteError(err)
		logger.Warnw("catalog_remote_failed", "product_id", id, "kind", string(kind), "error", err)

		if kind == result.KindNotFound {
			send(ctx, out, result.Failure[models.Product](result.KindNotFound, "product not found"))
			return
		}
		if !emittedCache {
			cached, cacheErr := s.cacheRepo.Get(id)
			if cacheErr != nil {
				logger.Warnw("catalog_cache_read_failed", "product_id", id, "error", cacheErr)
			}
			if cacheErr == nil && cached != nil {
				if !send(ctx, out, result.Success(cached.Product, result.ProvenanceCache)) {
					return
				}
			} else if fb, ok := fallback.ProductByID(id); ok {
				send(ctx, out, result.Success(*fb, result.ProvenanceFallback))
				return
			}
		}
		send(ctx, out, result.Failure[models.Product](kind, err.Error()))
	}()
	return out
}

// QueryCategories 查询分类列表：Redis 短缓存 → 远端 → 兜底
func (s *CatalogService) QueryCategories(ctx context.Context) <-chan result.Snapshot[[]models.Category] {
	out := make(chan result.Snapshot[[]models.Category], 3)

	go func() {
		defer close(out)
		if !send(ctx, out, result.Loading[[]models.Category]()) {
			return
		}

		var cached []models.Category
		hit, err := cache.GetJSON(ctx, categoriesCacheKey, &cached)
		if err != nil {
			logger.Warnw("category_cache_read_failed", "error", err)
		}
		if hit && len(cached) > 0 {
			if !send(ctx, out, result.Success(cached, result.ProvenanceCache)) {
				return
			}
		}

		categories, _, err := s.remote.ListCategories(ctx, woocommerce.CategoryQuery{
			PageSize:  constants.MaxPageSize,
			HideEmpty: true,
		})
		if err == nil {
			if cacheErr := cache.SetJSON(ctx, categoriesCacheKey, categories, s.categoryTTL); cacheErr != nil {
				logger.Warnw("category_cache_write_failed", "error", cacheErr)
			}
			send(ctx, out, result.Success(categories, result.ProvenanceRemote))
			return
		}
		if ctx.Err() != nil {
			return
		}
		kind := classifyRemoteError(err)
		logger.Warnw("category_remote_failed", "kind", string(kind), "error", err)

		if hit && len(cached) > 0 {
			send(ctx, out, result.Failure[[]models.Category](kind, err.Error()))
			return
		}
		send(ctx, out, result.Success(fallback.Categories(), result.ProvenanceFallback))
	}()
	return out
}

// WatchProducts 订阅缓存中命中条件的商品集合：
// 先下发当前内容，之后每次缓存写入或老化清理触发重新下发
func (s *CatalogService) WatchProducts(ctx context.Context, query CatalogQuery) <-chan result.Snapshot[ProductPage] {
	out := make(chan result.Snapshot[ProductPage], 1)
	query = s.normalizeQuery(query)
	filter := query.toCacheFilter()

	go func() {
		defer close(out)
		for rows := range s.cacheRepo.Watch(ctx, filter) {
			snap := result.Success(s.cachePage(query, filter, rows), result.ProvenanceCache)
			select {
			case out <- snap:
			case <-ctx.Done():
				return
			default:
				select {
				case <-out:
				default:
				}
				out <- snap
			}
		}
	}()
	return out
}

// EvictExpired 删除超过老化窗口的缓存行，返回删除数
func (s *CatalogService) EvictExpired(now time.Time) (int64, error) {
	cutoff := now.Add(-s.evictionWindow).UnixMilli()
	evicted, err := s.cacheRepo.DeleteOlderThan(cutoff)
	if err != nil {
		return 0, err
	}
	if evicted > 0 {
		logger.Infow("catalog_cache_evicted", "count", evicted, "cutoff", cutoff)
	}
	return evicted, nil
}

// RefreshCatalog 逐页拉取远端目录预热缓存（定时任务与管理端手动刷新共用）
func (s *CatalogService) RefreshCatalog(ctx context.Context) (int, error) {
	refreshed := 0
	for page := 1; ; page++ {
		products, meta, err := s.remote.ListProducts(ctx, woocommerce.ProductQuery{
			Page:     page,
			PageSize: constants.MaxPageSize,
		})
		if err != nil {
			return refreshed, err
		}
		if len(products) == 0 {
			break
		}
		if err := s.cacheRepo.UpsertMany(products, time.Now()); err != nil {
			return refreshed, err
		}
		refreshed += len(products)
		if meta.TotalPages > 0 && int64(page) >= meta.TotalPages {
			break
		}
	}
	_ = cache.Del(ctx, categoriesCacheKey)
	return refreshed, nil
}

// ClearCache 清空商品缓存与分类缓存（管理端用）
func (s *CatalogService) ClearCache(ctx context.Context) error {
	if err := s.cacheRepo.DeleteAll(); err != nil {
		return err
	}
	return cache.Del(ctx, categoriesCacheKey)
}

// Stats 缓存统计
func (s *CatalogService) Stats() (CacheStats, error) {
	count, err := s.cacheRepo.Count()
	if err != nil {
		return CacheStats{}, err
	}
	oldest, err := s.cacheRepo.OldestUpdatedAt()
	if err != nil {
		return CacheStats{}, err
	}
	return CacheStats{Count: count, OldestUpdatedAt: oldest}, nil
}

func (s *CatalogService) normalizeQuery(query CatalogQuery) CatalogQuery {
	if query.Page < 1 {
		query.Page = constants.DefaultPage
	}
	if query.PageSize <= 0 {
		query.PageSize = s.defaultPageSize
	}
	if query.PageSize > constants.MaxPageSize {
		query.PageSize = constants.MaxPageSize
	}
	if !constants.ValidSortField(query.SortBy) {
		query.SortBy = constants.SortByDate
	}
	return query
}

func (q CatalogQuery) toCacheFilter() repository.ProductCacheFilter {
	return repository.ProductCacheFilter{
		Search:   q.Search,
		Category: q.Category,
		Featured: q.Featured,
		OnSale:   q.OnSale,
		MinPrice: q.MinPrice,
		MaxPrice: q.MaxPrice,
		SortBy:   q.SortBy,
		Order:    q.Order,
		Page:     q.Page,
		PageSize: q.PageSize,
	}
}

func (q CatalogQuery) toRemoteQuery() woocommerce.ProductQuery {
	remote := woocommerce.ProductQuery{
		Page:     q.Page,
		PageSize: q.PageSize,
		Search:   q.Search,
		Category: q.Category,
		Featured: q.Featured,
		OnSale:   q.OnSale,
		SortBy:   q.SortBy,
		Order:    q.Order,
	}
	if q.MinPrice != nil {
		remote.MinPrice = q.MinPrice.String()
	}
	if q.MaxPrice != nil {
		remote.MaxPrice = q.MaxPrice.String()
	}
	return remote
}

// cachePage 缓存行转列表页。总数以同条件不分页的计数为准，
// 计数失败时退化为当前页行数，只影响分页元数据不影响内容。
func (s *CatalogService) cachePage(query CatalogQuery, filter repository.ProductCacheFilter, rows []models.CachedProduct) ProductPage {
	products := make([]models.Product, 0, len(rows))
	for _, row := range rows {
		products = append(products, row.Product)
	}
	countFilter := filter
	countFilter.Page = 0
	countFilter.PageSize = 0
	total := int64(len(products))
	if all, err := s.cacheRepo.List(countFilter); err == nil {
		total = int64(len(all))
	}
	return ProductPage{
		Products:   products,
		Page:       query.Page,
		PageSize:   query.PageSize,
		Total:      total,
		TotalPages: totalPages(total, query.PageSize),
	}
}

// fallbackPage 兜底数据经同一过滤契约得到的列表页
func (s *CatalogService) fallbackPage(query CatalogQuery, filter repository.ProductCacheFilter) ProductPage {
	matched := FilterProducts(fallback.Products(), filter)
	SortProducts(matched, query.SortBy, query.Order)
	total := int64(len(matched))
	return ProductPage{
		Products:   PaginateProducts(matched, query.Page, query.PageSize),
		Page:       query.Page,
		PageSize:   query.PageSize,
		Total:      total,
		TotalPages: totalPages(total, query.PageSize),
	}
}

func totalPages(total int64, pageSize int) int64 {
	if pageSize <= 0 {
		if total > 0 {
			return 1
		}
		return 0
	}
	return (total + int64(pageSize) - 1) / int64(pageSize)
}

// classifyRemoteError 远端错误归类
func classifyRemoteError(err error) result.ErrorKind {
	var apiErr *woocommerce.APIError
	switch {
	case err == nil:
		return result.KindServerError
	case errors.Is(err, woocommerce.ErrTimeout):
		return result.KindTimeout
	case errors.Is(err, woocommerce.ErrUnreachable):
		return result.KindNetworkUnreachable
	case errors.Is(err, woocommerce.ErrDecode):
		return result.KindDecodeError
	case errors.As(err, &apiErr):
		if apiErr.Status == http.StatusNotFound {
			return result.KindNotFound
		}
		return result.KindServerError
	default:
		return result.KindServerError
	}
}

// send 带取消保护的快照下发
func send[T any](ctx context.Context, out chan<- result.Snapshot[T], snap result.Snapshot[T]) bool {
	select {
	case out <- snap:
		return true
	case <-ctx.Done():
		return false
	}
}
