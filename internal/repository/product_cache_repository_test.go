package repository

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/hayuwidyas/commerce-api/internal/constants"
	"github.com/hayuwidyas/commerce-api/internal/models"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
)

func newTestDB(t *testing.T, tables ...interface{}) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := db.AutoMigrate(tables...); err != nil {
		t.Fatalf("auto migrate failed: %v", err)
	}
	return db
}

func setupProductCacheRepo(t *testing.T) *GormProductCacheRepository {
	t.Helper()
	db := newTestDB(t, &models.CachedProduct{})
	return NewProductCacheRepository(db)
}

func testProduct(id uint, name string, price int64) models.Product {
	return models.Product{
		ID:           id,
		Name:         name,
		Slug:         fmt.Sprintf("product-%d", id),
		Price:        models.NewMoneyFromInt(price),
		RegularPrice: models.NewMoneyFromInt(price),
		StockStatus:  constants.StockStatusInStock,
		Categories:   models.StringArray{"Bags"},
	}
}

func TestUpsertIsIdempotent(t *testing.T) {
	repo := setupProductCacheRepo(t)
	now := time.Now()

	if err := repo.Upsert(testProduct(1, "Calais", 18000000), now); err != nil {
		t.Fatalf("first upsert failed: %v", err)
	}
	updated := testProduct(1, "Calais Crocodile", 18500000)
	if err := repo.Upsert(updated, now.Add(time.Minute)); err != nil {
		t.Fatalf("second upsert failed: %v", err)
	}

	count, err := repo.Count()
	if err != nil {
		t.Fatalf("count failed: %v", err)
	}
	if count != 1 {
		t.Fatalf("expected single row after repeated upsert, got %d", count)
	}
	row, err := repo.Get(1)
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	if row == nil || row.Name != "Calais Crocodile" {
		t.Fatalf("expected replaced row content, got %+v", row)
	}
	if row.LastUpdated != now.Add(time.Minute).UnixMilli() {
		t.Fatalf("expected refreshed last_updated, got %d", row.LastUpdated)
	}
}

func TestUpsertManySharesTimestamp(t *testing.T) {
	repo := setupProductCacheRepo(t)
	now := time.Now()
	products := []models.Product{
		testProduct(1, "Calais", 18000000),
		testProduct(2, "Kale", 14650000),
	}
	if err := repo.UpsertMany(products, now); err != nil {
		t.Fatalf("upsert many failed: %v", err)
	}
	rows, err := repo.ListAll()
	if err != nil {
		t.Fatalf("list all failed: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(rows))
	}
	for _, row := range rows {
		if row.LastUpdated != now.UnixMilli() {
			t.Fatalf("expected batch timestamp %d, got %d", now.UnixMilli(), row.LastUpdated)
		}
	}
}

func TestDeleteOlderThanBoundary(t *testing.T) {
	repo := setupProductCacheRepo(t)
	base := time.Now()

	if err := repo.Upsert(testProduct(1, "Old", 100), base.Add(-31*time.Minute)); err != nil {
		t.Fatalf("upsert old failed: %v", err)
	}
	if err := repo.Upsert(testProduct(2, "Boundary", 200), base.Add(-30*time.Minute)); err != nil {
		t.Fatalf("upsert boundary failed: %v", err)
	}
	if err := repo.Upsert(testProduct(3, "Fresh", 300), base); err != nil {
		t.Fatalf("upsert fresh failed: %v", err)
	}

	cutoff := base.Add(-30 * time.Minute).UnixMilli()
	evicted, err := repo.DeleteOlderThan(cutoff)
	if err != nil {
		t.Fatalf("delete older than failed: %v", err)
	}
	if evicted != 1 {
		t.Fatalf("expected exactly one evicted row, got %d", evicted)
	}

	// 恰好等于阈值的行保留
	boundary, err := repo.Get(2)
	if err != nil {
		t.Fatalf("get boundary failed: %v", err)
	}
	if boundary == nil {
		t.Fatalf("row at exact cutoff must survive eviction")
	}
	old, err := repo.Get(1)
	if err != nil {
		t.Fatalf("get old failed: %v", err)
	}
	if old != nil {
		t.Fatalf("row older than cutoff must be evicted")
	}
}

func TestListFiltersAndSorts(t *testing.T) {
	repo := setupProductCacheRepo(t)
	now := time.Now()

	calais := testProduct(1, "Calais Crocodile", 18000000)
	calais.Featured = true
	calais.Description = "handcrafted crocodile leather"
	kale := testProduct(2, "Kale Landscape", 14650000)
	kale.Featured = true
	lizard := testProduct(3, "Lizard Clutch", 20000000)
	sale := models.NewMoneyFromInt(15000000)
	lizard.SalePrice = &sale
	lizard.OnSale = true
	lizard.Categories = models.StringArray{"Clutch Bags"}

	if err := repo.UpsertMany([]models.Product{calais, kale, lizard}, now); err != nil {
		t.Fatalf("seed failed: %v", err)
	}

	// 大小写不敏感的子串搜索，覆盖描述字段
	rows, err := repo.List(ProductCacheFilter{Search: "CROCODILE"})
	if err != nil {
		t.Fatalf("search failed: %v", err)
	}
	if len(rows) != 1 || rows[0].ID != 1 {
		t.Fatalf("expected search to hit product 1, got %+v", rows)
	}

	// 分类子串匹配
	rows, err = repo.List(ProductCacheFilter{Category: "clutch"})
	if err != nil {
		t.Fatalf("category filter failed: %v", err)
	}
	if len(rows) != 1 || rows[0].ID != 3 {
		t.Fatalf("expected category filter to hit product 3, got %+v", rows)
	}

	// 精选过滤
	featured := true
	rows, err = repo.List(ProductCacheFilter{Featured: &featured, SortBy: constants.SortByPrice, Order: constants.OrderAsc})
	if err != nil {
		t.Fatalf("featured filter failed: %v", err)
	}
	if len(rows) != 2 || rows[0].ID != 2 || rows[1].ID != 1 {
		t.Fatalf("expected featured rows sorted by price asc, got %+v", rows)
	}

	// 价格区间按有效价格（促销价）过滤
	min := models.NewMoneyFromInt(14800000)
	max := models.NewMoneyFromInt(15200000)
	rows, err = repo.List(ProductCacheFilter{MinPrice: &min, MaxPrice: &max})
	if err != nil {
		t.Fatalf("price range failed: %v", err)
	}
	if len(rows) != 1 || rows[0].ID != 3 {
		t.Fatalf("expected effective price to hit discounted product 3, got %+v", rows)
	}
}

func TestListPriceSortUsesEffectivePrice(t *testing.T) {
	repo := setupProductCacheRepo(t)
	now := time.Now()

	plain := testProduct(1, "Plain", 10000000)
	discounted := testProduct(2, "Discounted", 30000000)
	sale := models.NewMoneyFromInt(5000000)
	discounted.SalePrice = &sale
	discounted.OnSale = true

	if err := repo.UpsertMany([]models.Product{plain, discounted}, now); err != nil {
		t.Fatalf("seed failed: %v", err)
	}
	rows, err := repo.List(ProductCacheFilter{SortBy: constants.SortByPrice, Order: constants.OrderAsc})
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(rows) != 2 || rows[0].ID != 2 {
		t.Fatalf("expected discounted product first by effective price, got %+v", rows)
	}
}

func TestListPagination(t *testing.T) {
	repo := setupProductCacheRepo(t)
	now := time.Now()
	for i := uint(1); i <= 5; i++ {
		if err := repo.Upsert(testProduct(i, fmt.Sprintf("P%d", i), int64(i)*1000), now); err != nil {
			t.Fatalf("seed failed: %v", err)
		}
	}
	rows, err := repo.List(ProductCacheFilter{SortBy: constants.SortByPrice, Order: constants.OrderAsc, Page: 2, PageSize: 2})
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(rows) != 2 || rows[0].ID != 3 || rows[1].ID != 4 {
		t.Fatalf("expected page 2 to hold products 3 and 4, got %+v", rows)
	}
}

func TestWatchEmitsOnChange(t *testing.T) {
	repo := setupProductCacheRepo(t)
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	watch := repo.Watch(ctx, ProductCacheFilter{})

	// 首次求值：空集
	select {
	case rows := <-watch:
		if len(rows) != 0 {
			t.Fatalf("expected empty initial snapshot, got %d rows", len(rows))
		}
	case <-ctx.Done():
		t.Fatalf("timed out waiting for initial snapshot")
	}

	if err := repo.Upsert(testProduct(1, "Calais", 18000000), time.Now()); err != nil {
		t.Fatalf("upsert failed: %v", err)
	}

	// 写入触发重新求值
	deadline := time.After(3 * time.Second)
	for {
		select {
		case rows, ok := <-watch:
			if !ok {
				t.Fatalf("watch closed before delivering update")
			}
			if len(rows) == 1 && rows[0].ID == 1 {
				cancel()
				return
			}
		case <-deadline:
			t.Fatalf("timed out waiting for change notification")
		}
	}
}

func TestWatchClosesOnCancel(t *testing.T) {
	repo := setupProductCacheRepo(t)
	ctx, cancel := context.WithCancel(context.Background())
	watch := repo.Watch(ctx, ProductCacheFilter{})

	<-watch // 首次快照
	cancel()

	deadline := time.After(3 * time.Second)
	for {
		select {
		case _, ok := <-watch:
			if !ok {
				return
			}
		case <-deadline:
			t.Fatalf("watch channel not closed after cancel")
		}
	}
}
