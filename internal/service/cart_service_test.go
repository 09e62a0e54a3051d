package service

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/hayuwidyas/commerce-api/internal/models"
	"github.com/hayuwidyas/commerce-api/internal/repository"

	"github.com/glebarez/sqlite"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

func newServiceDB(t *testing.T, tables ...any) *gorm.DB {
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

func newCartTest(t *testing.T) (*CartService, repository.ProductCacheRepository) {
	t.Helper()
	db := newServiceDB(t, &models.CachedProduct{}, &models.CartItem{})
	productRepo := repository.NewProductCacheRepository(db)
	return NewCartService(repository.NewCartRepository(db), productRepo), productRepo
}

func seedCartProduct(t *testing.T, repo repository.ProductCacheRepository, id uint, name string, price int64) {
	t.Helper()
	if err := repo.Upsert(cachedProduct(id, name, price), time.Now()); err != nil {
		t.Fatalf("seed product %d failed: %v", id, err)
	}
}

func strPtr(s string) *string { return &s }

func TestAddToCartMergesSameVariation(t *testing.T) {
	svc, productRepo := newCartTest(t)
	seedCartProduct(t, productRepo, 1, "Calais", 18000000)

	variation := models.VariationMap{"Color": "Black", "Size": "M"}
	first, err := svc.AddToCart(nil, AddToCartInput{ProductID: 1, Variation: variation, Quantity: 1})
	if err != nil {
		t.Fatalf("first add failed: %v", err)
	}
	// 同一变体换个键序重复加购，应合并到同一行
	again, err := svc.AddToCart(nil, AddToCartInput{ProductID: 1, Variation: models.VariationMap{"Size": "M", "Color": "Black"}, Quantity: 2})
	if err != nil {
		t.Fatalf("second add failed: %v", err)
	}
	if again.ID != first.ID {
		t.Fatalf("same product and variation must merge into one row, got %s and %s", first.ID, again.ID)
	}
	if again.Quantity != 3 {
		t.Fatalf("merged quantity should be 3, got %d", again.Quantity)
	}

	summary, err := svc.Summary(nil)
	if err != nil {
		t.Fatalf("summary failed: %v", err)
	}
	if len(summary.Items) != 1 {
		t.Fatalf("expected a single cart row, got %d", len(summary.Items))
	}
}

func TestAddToCartDifferentVariationCreatesNewRow(t *testing.T) {
	svc, productRepo := newCartTest(t)
	seedCartProduct(t, productRepo, 1, "Calais", 18000000)

	if _, err := svc.AddToCart(nil, AddToCartInput{ProductID: 1, Variation: models.VariationMap{"Color": "Black"}, Quantity: 1}); err != nil {
		t.Fatalf("add failed: %v", err)
	}
	if _, err := svc.AddToCart(nil, AddToCartInput{ProductID: 1, Variation: models.VariationMap{"Color": "Tan"}, Quantity: 1}); err != nil {
		t.Fatalf("add failed: %v", err)
	}

	summary, err := svc.Summary(nil)
	if err != nil {
		t.Fatalf("summary failed: %v", err)
	}
	if len(summary.Items) != 2 {
		t.Fatalf("different variations must stay on separate rows, got %d", len(summary.Items))
	}
}

func TestAddToCartValidation(t *testing.T) {
	svc, productRepo := newCartTest(t)
	seedCartProduct(t, productRepo, 1, "Calais", 18000000)

	if _, err := svc.AddToCart(nil, AddToCartInput{ProductID: 0, Quantity: 1}); !errors.Is(err, ErrInvalidProduct) {
		t.Errorf("zero product id should fail with ErrInvalidProduct, got %v", err)
	}
	if _, err := svc.AddToCart(nil, AddToCartInput{ProductID: 1, Quantity: 0}); !errors.Is(err, ErrInvalidQuantity) {
		t.Errorf("zero quantity should fail with ErrInvalidQuantity, got %v", err)
	}
	if _, err := svc.AddToCart(nil, AddToCartInput{ProductID: 424242, Quantity: 1}); !errors.Is(err, ErrProductNotListed) {
		t.Errorf("unknown product should fail with ErrProductNotListed, got %v", err)
	}
}

func TestAddToCartSnapshotsEffectivePrice(t *testing.T) {
	svc, productRepo := newCartTest(t)
	sale := models.NewMoneyFromInt(12000000)
	p := cachedProduct(3, "Kale", 18000000)
	p.SalePrice = &sale
	p.OnSale = true
	if err := productRepo.Upsert(p, time.Now()); err != nil {
		t.Fatalf("seed product failed: %v", err)
	}

	item, err := svc.AddToCart(nil, AddToCartInput{ProductID: 3, Quantity: 2})
	if err != nil {
		t.Fatalf("add failed: %v", err)
	}
	if !item.ProductPrice.Decimal.Equal(sale.Decimal) {
		t.Fatalf("cart row should snapshot the sale price, got %s", item.ProductPrice.Decimal)
	}

	summary, err := svc.Summary(nil)
	if err != nil {
		t.Fatalf("summary failed: %v", err)
	}
	want := sale.Decimal.Mul(decimal.NewFromInt(2))
	if !summary.Subtotal.Decimal.Equal(want) {
		t.Fatalf("subtotal should be price*quantity, got %s want %s", summary.Subtotal.Decimal, want)
	}
	if summary.TotalQuantity != 2 {
		t.Fatalf("expected total quantity 2, got %d", summary.TotalQuantity)
	}
}

func TestAddToCartFallsBackForUncachedProduct(t *testing.T) {
	svc, _ := newCartTest(t)

	// 缓存为空时用兜底目录里的商品快照加购
	item, err := svc.AddToCart(nil, AddToCartInput{ProductID: 1, Quantity: 1})
	if err != nil {
		t.Fatalf("add from fallback failed: %v", err)
	}
	if item.ProductName == "" {
		t.Fatalf("fallback snapshot must carry the product name")
	}
}

func TestUpdateQuantityToZeroRemovesRow(t *testing.T) {
	svc, productRepo := newCartTest(t)
	seedCartProduct(t, productRepo, 1, "Calais", 18000000)

	item, err := svc.AddToCart(nil, AddToCartInput{ProductID: 1, Quantity: 3})
	if err != nil {
		t.Fatalf("add failed: %v", err)
	}
	if err := svc.UpdateQuantity(nil, item.ID, 0); err != nil {
		t.Fatalf("update to zero failed: %v", err)
	}

	summary, err := svc.Summary(nil)
	if err != nil {
		t.Fatalf("summary failed: %v", err)
	}
	if len(summary.Items) != 0 {
		t.Fatalf("quantity zero must remove the row, got %d rows", len(summary.Items))
	}
	if err := svc.UpdateQuantity(nil, item.ID, 1); !errors.Is(err, ErrNotFound) {
		t.Fatalf("updating a removed row should fail with ErrNotFound, got %v", err)
	}
}

func TestCartOwnershipIsEnforced(t *testing.T) {
	svc, productRepo := newCartTest(t)
	seedCartProduct(t, productRepo, 1, "Calais", 18000000)

	item, err := svc.AddToCart(strPtr("user-a"), AddToCartInput{ProductID: 1, Quantity: 1})
	if err != nil {
		t.Fatalf("add failed: %v", err)
	}
	if err := svc.UpdateQuantity(strPtr("user-b"), item.ID, 2); !errors.Is(err, ErrItemNotOwned) {
		t.Errorf("foreign user update should fail with ErrItemNotOwned, got %v", err)
	}
	if err := svc.RemoveItem(nil, item.ID); !errors.Is(err, ErrItemNotOwned) {
		t.Errorf("guest removing a user row should fail with ErrItemNotOwned, got %v", err)
	}
}

func TestCartMigrateGuestToUser(t *testing.T) {
	svc, productRepo := newCartTest(t)
	seedCartProduct(t, productRepo, 1, "Calais", 18000000)
	seedCartProduct(t, productRepo, 2, "Kale", 14650000)

	if _, err := svc.AddToCart(nil, AddToCartInput{ProductID: 1, Quantity: 1}); err != nil {
		t.Fatalf("guest add failed: %v", err)
	}
	if _, err := svc.AddToCart(nil, AddToCartInput{ProductID: 2, Quantity: 1}); err != nil {
		t.Fatalf("guest add failed: %v", err)
	}

	migrated, err := svc.MigrateGuestToUser("user-a")
	if err != nil {
		t.Fatalf("migrate failed: %v", err)
	}
	if migrated != 2 {
		t.Fatalf("expected 2 migrated rows, got %d", migrated)
	}

	guest, err := svc.Summary(nil)
	if err != nil {
		t.Fatalf("guest summary failed: %v", err)
	}
	if len(guest.Items) != 0 {
		t.Fatalf("guest cart must be empty after migration, got %d rows", len(guest.Items))
	}
	user, err := svc.Summary(strPtr("user-a"))
	if err != nil {
		t.Fatalf("user summary failed: %v", err)
	}
	if len(user.Items) != 2 {
		t.Fatalf("user cart should hold the migrated rows, got %d", len(user.Items))
	}

	if _, err := svc.MigrateGuestToUser("  "); !errors.Is(err, ErrInvalidUser) {
		t.Errorf("blank user id should fail with ErrInvalidUser, got %v", err)
	}
}
