package repository

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/hayuwidyas/commerce-api/internal/constants"
	"github.com/hayuwidyas/commerce-api/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ProductCacheRepository 商品缓存数据访问接口
type ProductCacheRepository interface {
	Get(id uint) (*models.CachedProduct, error)
	GetMany(ids []uint) ([]models.CachedProduct, error)
	Upsert(product models.Product, now time.Time) error
	UpsertMany(products []models.Product, now time.Time) error
	DeleteByID(id uint) error
	DeleteOlderThan(cutoffMillis int64) (int64, error)
	DeleteAll() error
	Count() (int64, error)
	OldestUpdatedAt() (int64, error)
	ListAll() ([]models.CachedProduct, error)
	List(filter ProductCacheFilter) ([]models.CachedProduct, error)
	Watch(ctx context.Context, filter ProductCacheFilter) <-chan []models.CachedProduct
}

// GormProductCacheRepository GORM 实现，附带变更广播：
// 任何写操作都会推送失效信号，活跃的 Watch 订阅随即重新求值并下发新快照
type GormProductCacheRepository struct {
	db       *gorm.DB
	notifier *changeNotifier
}

// NewProductCacheRepository 创建商品缓存仓库
func NewProductCacheRepository(db *gorm.DB) *GormProductCacheRepository {
	return &GormProductCacheRepository{
		db:       db,
		notifier: newChangeNotifier(),
	}
}

// Get 按 ID 获取缓存行
func (r *GormProductCacheRepository) Get(id uint) (*models.CachedProduct, error) {
	var row models.CachedProduct
	if err := r.db.First(&row, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &row, nil
}

// GetMany 批量获取缓存行
func (r *GormProductCacheRepository) GetMany(ids []uint) ([]models.CachedProduct, error) {
	if len(ids) == 0 {
		return []models.CachedProduct{}, nil
	}
	var rows []models.CachedProduct
	if err := r.db.Where("id IN ?", ids).Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

// Upsert 写入或替换缓存行（以 id 为唯一键，冲突即整行替换）
func (r *GormProductCacheRepository) Upsert(product models.Product, now time.Time) error {
	return r.UpsertMany([]models.Product{product}, now)
}

// UpsertMany 批量写入缓存行，同一批次共享写入时间
func (r *GormProductCacheRepository) UpsertMany(products []models.Product, now time.Time) error {
	if len(products) == 0 {
		return nil
	}
	rows := make([]models.CachedProduct, 0, len(products))
	lastUpdated := now.UnixMilli()
	for _, product := range products {
		rows = append(rows, models.CachedProduct{Product: product, LastUpdated: lastUpdated})
	}
	err := r.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "id"}},
		UpdateAll: true,
	}).Create(&rows).Error
	if err != nil {
		return err
	}
	r.notifier.broadcast()
	return nil
}

// DeleteByID 删除单行
func (r *GormProductCacheRepository) DeleteByID(id uint) error {
	if err := r.db.Delete(&models.CachedProduct{}, id).Error; err != nil {
		return err
	}
	r.notifier.broadcast()
	return nil
}

// DeleteOlderThan 老化清理：删除 last_updated 早于阈值的行，返回删除数
func (r *GormProductCacheRepository) DeleteOlderThan(cutoffMillis int64) (int64, error) {
	result := r.db.Where("last_updated < ?", cutoffMillis).Delete(&models.CachedProduct{})
	if result.Error != nil {
		return 0, result.Error
	}
	if result.RowsAffected > 0 {
		r.notifier.broadcast()
	}
	return result.RowsAffected, nil
}

// DeleteAll 清空缓存表
func (r *GormProductCacheRepository) DeleteAll() error {
	if err := r.db.Where("1 = 1").Delete(&models.CachedProduct{}).Error; err != nil {
		return err
	}
	r.notifier.broadcast()
	return nil
}

// Count 缓存行总数
func (r *GormProductCacheRepository) Count() (int64, error) {
	var count int64
	if err := r.db.Model(&models.CachedProduct{}).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// OldestUpdatedAt 最旧一行的写入时间（空表返回 0）
func (r *GormProductCacheRepository) OldestUpdatedAt() (int64, error) {
	var row models.CachedProduct
	err := r.db.Order("last_updated ASC").First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}
	return row.LastUpdated, nil
}

// ListAll 返回全部缓存行（按写入时间倒序）
func (r *GormProductCacheRepository) ListAll() ([]models.CachedProduct, error) {
	var rows []models.CachedProduct
	if err := r.db.Order("last_updated DESC, id ASC").Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

// List 按过滤条件列出缓存行
func (r *GormProductCacheRepository) List(filter ProductCacheFilter) ([]models.CachedProduct, error) {
	query := r.db.Model(&models.CachedProduct{})

	if search := strings.ToLower(strings.TrimSpace(filter.Search)); search != "" {
		like := "%" + search + "%"
		query = query.Where(
			"LOWER(name) LIKE ? OR LOWER(description) LIKE ? OR LOWER(short_description) LIKE ?",
			like, like, like,
		)
	}
	if category := strings.ToLower(strings.TrimSpace(filter.Category)); category != "" {
		// 分类名以 JSON 数组文本存储，子串匹配即覆盖"任一分类名包含给定片段"的契约
		query = query.Where("LOWER(categories) LIKE ?", "%"+category+"%")
	}
	if filter.Featured != nil {
		query = query.Where("featured = ?", *filter.Featured)
	}
	if filter.OnSale != nil {
		query = query.Where("on_sale = ?", *filter.OnSale)
	}
	if filter.MinPrice != nil {
		query = query.Where(effectivePriceExpr+" >= ?", filter.MinPrice.Decimal)
	}
	if filter.MaxPrice != nil {
		query = query.Where(effectivePriceExpr+" <= ?", filter.MaxPrice.Decimal)
	}

	query = query.Order(orderClause(filter.SortBy, filter.Order))
	query = applyPagination(query, filter.Page, filter.PageSize)

	var rows []models.CachedProduct
	if err := query.Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

// Watch 订阅过滤结果：先下发当前快照，之后每次缓存变更重新求值再下发。
// ctx 取消后通道关闭，订阅自动注销。
func (r *GormProductCacheRepository) Watch(ctx context.Context, filter ProductCacheFilter) <-chan []models.CachedProduct {
	out := make(chan []models.CachedProduct, 1)
	id, signal := r.notifier.subscribe()

	go func() {
		defer close(out)
		defer r.notifier.unsubscribe(id)

		emit := func() bool {
			rows, err := r.List(filter)
			if err != nil {
				return true // 存储故障不终止订阅，等待下一次变更
			}
			// 只保留最新快照，慢消费者不阻塞广播
			select {
			case out <- rows:
			default:
				select {
				case <-out:
				default:
				}
				out <- rows
			}
			return true
		}

		emit()
		for {
			select {
			case <-ctx.Done():
				return
			case <-signal:
				emit()
			}
		}
	}()
	return out
}

// effectivePriceExpr 有效价格：促销中且有促销价时取促销价，与模型层 EffectivePrice 同一规则
const effectivePriceExpr = "(CASE WHEN on_sale AND sale_price IS NOT NULL THEN sale_price ELSE price END)"

func orderClause(sortBy, order string) string {
	direction := "DESC"
	if strings.EqualFold(strings.TrimSpace(order), constants.OrderAsc) {
		direction = "ASC"
	}
	switch strings.ToLower(strings.TrimSpace(sortBy)) {
	case constants.SortByPrice:
		return effectivePriceExpr + " " + direction + ", id ASC"
	case constants.SortByRating:
		return "average_rating " + direction + ", rating_count " + direction + ", id ASC"
	case constants.SortByPopularity:
		return "rating_count " + direction + ", average_rating " + direction + ", id ASC"
	case constants.SortByName:
		return "LOWER(name) " + direction + ", id ASC"
	default:
		return "last_updated " + direction + ", id ASC"
	}
}

// changeNotifier 进程内变更广播：每个订阅者持有容量 1 的信号通道，
// 广播时已有未消费信号则跳过（订阅者反正会重新求值一次）
type changeNotifier struct {
	mu   sync.Mutex
	subs map[uint64]chan struct{}
	next uint64
}

func newChangeNotifier() *changeNotifier {
	return &changeNotifier{subs: make(map[uint64]chan struct{})}
}

func (n *changeNotifier) subscribe() (uint64, chan struct{}) {
	n.mu.Lock()
	defer n.mu.Unlock()
	id := n.next
	n.next++
	signal := make(chan struct{}, 1)
	n.subs[id] = signal
	return id, signal
}

func (n *changeNotifier) unsubscribe(id uint64) {
	n.mu.Lock()
	defer n.mu.Unlock()
	delete(n.subs, id)
}

func (n *changeNotifier) broadcast() {
	n.mu.Lock()
	defer n.mu.Unlock()
	for _, signal := range n.subs {
		select {
		case signal <- struct{}{}:
		default:
		}
	}
}
