package service

import (
	"errors"
	"testing"
	"time"

	"github.com/hayuwidyas/commerce-api/internal/models"
	"github.com/hayuwidyas/commerce-api/internal/repository"
)

func newWishlistTest(t *testing.T) (*WishlistService, *CartService, repository.ProductCacheRepository) {
	t.Helper()
	db := newServiceDB(t, &models.CachedProduct{}, &models.CartItem{}, &models.WishlistItem{})
	productRepo := repository.NewProductCacheRepository(db)
	cartSvc := NewCartService(repository.NewCartRepository(db), productRepo)
	wishlistSvc := NewWishlistService(repository.NewWishlistRepository(db), productRepo, cartSvc)
	return wishlistSvc, cartSvc, productRepo
}

func TestWishlistToggleAlternates(t *testing.T) {
	svc, _, productRepo := newWishlistTest(t)
	if err := productRepo.Upsert(cachedProduct(1, "Calais", 18000000), time.Now()); err != nil {
		t.Fatalf("seed product failed: %v", err)
	}

	wishlisted, err := svc.Toggle(nil, 1)
	if err != nil {
		t.Fatalf("first toggle failed: %v", err)
	}
	if !wishlisted {
		t.Fatalf("first toggle should add the product")
	}
	items, err := svc.List(nil)
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(items) != 1 {
		t.Fatalf("expected one wishlist row, got %d", len(items))
	}

	wishlisted, err = svc.Toggle(nil, 1)
	if err != nil {
		t.Fatalf("second toggle failed: %v", err)
	}
	if wishlisted {
		t.Fatalf("second toggle should remove the product")
	}
	items, err = svc.List(nil)
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(items) != 0 {
		t.Fatalf("expected empty wishlist after second toggle, got %d rows", len(items))
	}

	if _, err := svc.Toggle(nil, 0); !errors.Is(err, ErrInvalidProduct) {
		t.Errorf("zero product id should fail with ErrInvalidProduct, got %v", err)
	}
}

func TestWishlistIsScopedByOwner(t *testing.T) {
	svc, _, productRepo := newWishlistTest(t)
	if err := productRepo.Upsert(cachedProduct(1, "Calais", 18000000), time.Now()); err != nil {
		t.Fatalf("seed product failed: %v", err)
	}

	if _, err := svc.Toggle(strPtr("user-a"), 1); err != nil {
		t.Fatalf("toggle failed: %v", err)
	}
	got, err := svc.IsWishlisted(nil, 1)
	if err != nil {
		t.Fatalf("is wishlisted failed: %v", err)
	}
	if got {
		t.Fatalf("a user wishlist row must not be visible to guests")
	}
}

func TestWishlistMoveToCart(t *testing.T) {
	svc, cartSvc, productRepo := newWishlistTest(t)
	if err := productRepo.Upsert(cachedProduct(1, "Calais", 18000000), time.Now()); err != nil {
		t.Fatalf("seed product failed: %v", err)
	}
	if _, err := svc.Toggle(nil, 1); err != nil {
		t.Fatalf("toggle failed: %v", err)
	}

	item, err := svc.MoveToCart(nil, 1, models.VariationMap{"Color": "Black"})
	if err != nil {
		t.Fatalf("move to cart failed: %v", err)
	}
	if item.Quantity != 1 {
		t.Fatalf("moved item should have quantity 1, got %d", item.Quantity)
	}

	wishlisted, err := svc.IsWishlisted(nil, 1)
	if err != nil {
		t.Fatalf("is wishlisted failed: %v", err)
	}
	if wishlisted {
		t.Fatalf("product must leave the wishlist after moving to cart")
	}
	summary, err := cartSvc.Summary(nil)
	if err != nil {
		t.Fatalf("summary failed: %v", err)
	}
	if len(summary.Items) != 1 {
		t.Fatalf("cart should hold the moved item, got %d rows", len(summary.Items))
	}
}

func TestWishlistMigrateGuestToUser(t *testing.T) {
	svc, _, productRepo := newWishlistTest(t)
	if err := productRepo.Upsert(cachedProduct(1, "Calais", 18000000), time.Now()); err != nil {
		t.Fatalf("seed product failed: %v", err)
	}
	if err := productRepo.Upsert(cachedProduct(2, "Kale", 14650000), time.Now()); err != nil {
		t.Fatalf("seed product failed: %v", err)
	}
	if _, err := svc.Toggle(nil, 1); err != nil {
		t.Fatalf("toggle failed: %v", err)
	}
	if _, err := svc.Toggle(nil, 2); err != nil {
		t.Fatalf("toggle failed: %v", err)
	}
	// 用户侧已有商品 1，迁移时游客的重复行被丢弃
	if _, err := svc.Toggle(strPtr("user-a"), 1); err != nil {
		t.Fatalf("toggle failed: %v", err)
	}

	migrated, err := svc.MigrateGuestToUser("user-a")
	if err != nil {
		t.Fatalf("migrate failed: %v", err)
	}
	if migrated != 1 {
		t.Fatalf("expected 1 migrated row, got %d", migrated)
	}
	items, err := svc.List(strPtr("user-a"))
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(items) != 2 {
		t.Fatalf("user wishlist should hold both products once, got %d rows", len(items))
	}
	guest, err := svc.List(nil)
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(guest) != 0 {
		t.Fatalf("guest wishlist must be empty after migration, got %d rows", len(guest))
	}
}
