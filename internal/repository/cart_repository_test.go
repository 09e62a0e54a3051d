package repository

import (
	"testing"
	"time"

	"github.com/hayuwidyas/commerce-api/internal/models"

	"github.com/google/uuid"
)

func setupCartRepo(t *testing.T) *GormCartRepository {
	t.Helper()
	db := newTestDB(t, &models.CartItem{})
	return NewCartRepository(db)
}

func newCartItem(userID *string, productID uint, variation models.VariationMap, quantity int) *models.CartItem {
	return &models.CartItem{
		ID:           uuid.NewString(),
		UserID:       userID,
		ProductID:    productID,
		VariationKey: models.BuildVariationKey(variation),
		Variation:    variation,
		Quantity:     quantity,
		ProductName:  "Calais",
		ProductPrice: models.NewMoneyFromInt(18000000),
		AddedAt:      time.Now().UnixMilli(),
	}
}

func TestFindByProductVariationScopesOwner(t *testing.T) {
	repo := setupCartRepo(t)
	user := "user-1"
	variation := models.VariationMap{"Color": "Black"}

	if err := repo.Create(newCartItem(nil, 1, variation, 1)); err != nil {
		t.Fatalf("create guest item failed: %v", err)
	}
	if err := repo.Create(newCartItem(&user, 1, variation, 2)); err != nil {
		t.Fatalf("create user item failed: %v", err)
	}

	guestItem, err := repo.FindByProductVariation(nil, 1, models.BuildVariationKey(variation))
	if err != nil {
		t.Fatalf("find guest item failed: %v", err)
	}
	if guestItem == nil || guestItem.UserID != nil {
		t.Fatalf("expected guest-owned item, got %+v", guestItem)
	}
	userItem, err := repo.FindByProductVariation(&user, 1, models.BuildVariationKey(variation))
	if err != nil {
		t.Fatalf("find user item failed: %v", err)
	}
	if userItem == nil || userItem.UserID == nil || *userItem.UserID != user {
		t.Fatalf("expected user-owned item, got %+v", userItem)
	}
}

func TestMigrateGuestToUserMovesRows(t *testing.T) {
	repo := setupCartRepo(t)
	user := "user-1"

	if err := repo.Create(newCartItem(nil, 1, models.VariationMap{"Color": "Black"}, 1)); err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if err := repo.Create(newCartItem(nil, 2, nil, 3)); err != nil {
		t.Fatalf("create failed: %v", err)
	}

	migrated, err := repo.MigrateGuestToUser(user)
	if err != nil {
		t.Fatalf("migrate failed: %v", err)
	}
	if migrated != 2 {
		t.Fatalf("expected 2 migrated rows, got %d", migrated)
	}

	guestItems, err := repo.ListByOwner(nil)
	if err != nil {
		t.Fatalf("list guest failed: %v", err)
	}
	if len(guestItems) != 0 {
		t.Fatalf("expected empty guest cart, got %d rows", len(guestItems))
	}
	userItems, err := repo.ListByOwner(&user)
	if err != nil {
		t.Fatalf("list user failed: %v", err)
	}
	if len(userItems) != 2 {
		t.Fatalf("expected 2 user rows, got %d", len(userItems))
	}
}

func TestMigrateGuestToUserIsIdempotent(t *testing.T) {
	repo := setupCartRepo(t)
	user := "user-1"

	if err := repo.Create(newCartItem(nil, 1, nil, 1)); err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if _, err := repo.MigrateGuestToUser(user); err != nil {
		t.Fatalf("first migrate failed: %v", err)
	}
	migrated, err := repo.MigrateGuestToUser(user)
	if err != nil {
		t.Fatalf("second migrate failed: %v", err)
	}
	if migrated != 0 {
		t.Fatalf("repeated migration must be a no-op, moved %d rows", migrated)
	}
	userItems, err := repo.ListByOwner(&user)
	if err != nil {
		t.Fatalf("list user failed: %v", err)
	}
	if len(userItems) != 1 {
		t.Fatalf("expected single user row, got %d", len(userItems))
	}
}

func TestMigrateGuestToUserDropsCollidingGuestRows(t *testing.T) {
	repo := setupCartRepo(t)
	user := "user-1"
	variation := models.VariationMap{"Color": "Black"}

	owned := newCartItem(&user, 1, variation, 5)
	if err := repo.Create(owned); err != nil {
		t.Fatalf("create owned failed: %v", err)
	}
	if err := repo.Create(newCartItem(nil, 1, variation, 2)); err != nil {
		t.Fatalf("create colliding guest failed: %v", err)
	}
	if err := repo.Create(newCartItem(nil, 2, nil, 1)); err != nil {
		t.Fatalf("create plain guest failed: %v", err)
	}

	migrated, err := repo.MigrateGuestToUser(user)
	if err != nil {
		t.Fatalf("migrate failed: %v", err)
	}
	if migrated != 1 {
		t.Fatalf("expected only the non-colliding row migrated, got %d", migrated)
	}

	userItems, err := repo.ListByOwner(&user)
	if err != nil {
		t.Fatalf("list user failed: %v", err)
	}
	if len(userItems) != 2 {
		t.Fatalf("expected 2 user rows, got %d", len(userItems))
	}
	// 撞键时以用户已有数据为准，游客行被丢弃
	kept, err := repo.FindByProductVariation(&user, 1, models.BuildVariationKey(variation))
	if err != nil {
		t.Fatalf("find kept row failed: %v", err)
	}
	if kept == nil || kept.Quantity != 5 {
		t.Fatalf("expected user row to survive with quantity 5, got %+v", kept)
	}
	guestItems, err := repo.ListByOwner(nil)
	if err != nil {
		t.Fatalf("list guest failed: %v", err)
	}
	if len(guestItems) != 0 {
		t.Fatalf("expected colliding guest row dropped, got %d rows", len(guestItems))
	}
}
