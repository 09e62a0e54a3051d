package repository

import (
	"errors"

	"github.com/hayuwidyas/commerce-api/internal/models"

	"gorm.io/gorm"
)

// WishlistRepository 心愿单数据访问接口
type WishlistRepository interface {
	ListByOwner(userID *string) ([]models.WishlistItem, error)
	FindByProduct(userID *string, productID uint) (*models.WishlistItem, error)
	Create(item *models.WishlistItem) error
	DeleteByProduct(userID *string, productID uint) error
	ClearByOwner(userID *string) error
	MigrateGuestToUser(userID string) (int64, error)
}

// GormWishlistRepository GORM 实现
type GormWishlistRepository struct {
	db *gorm.DB
}

// NewWishlistRepository 创建心愿单仓库
func NewWishlistRepository(db *gorm.DB) *GormWishlistRepository {
	return &GormWishlistRepository{db: db}
}

// ListByOwner 获取归属者的心愿单（按加入时间倒序）
func (r *GormWishlistRepository) ListByOwner(userID *string) ([]models.WishlistItem, error) {
	var items []models.WishlistItem
	if err := ownerScope(r.db, userID).Order("added_at DESC").Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

// FindByProduct 按商品查找心愿单项（心愿单按商品维度去重）
func (r *GormWishlistRepository) FindByProduct(userID *string, productID uint) (*models.WishlistItem, error) {
	var item models.WishlistItem
	if err := ownerScope(r.db, userID).Where("product_id = ?", productID).First(&item).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &item, nil
}

// Create 新增心愿单项
func (r *GormWishlistRepository) Create(item *models.WishlistItem) error {
	if item == nil {
		return nil
	}
	return r.db.Create(item).Error
}

// DeleteByProduct 按商品删除心愿单项
func (r *GormWishlistRepository) DeleteByProduct(userID *string, productID uint) error {
	return ownerScope(r.db, userID).Where("product_id = ?", productID).Delete(&models.WishlistItem{}).Error
}

// ClearByOwner 清空归属者的心愿单
func (r *GormWishlistRepository) ClearByOwner(userID *string) error {
	return ownerScope(r.db, userID).Delete(&models.WishlistItem{}).Error
}

// MigrateGuestToUser 游客心愿单迁移，语义同购物车：批量、幂等、撞键即弃
func (r *GormWishlistRepository) MigrateGuestToUser(userID string) (int64, error) {
	var migrated int64
	err := r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Exec(
			`DELETE FROM wishlist_items WHERE user_id IS NULL AND EXISTS (
				SELECT 1 FROM wishlist_items owned
				WHERE owned.user_id = ?
				  AND owned.product_id = wishlist_items.product_id)`,
			userID,
		).Error; err != nil {
			return err
		}
		result := tx.Model(&models.WishlistItem{}).Where("user_id IS NULL").
			Update("user_id", userID)
		if result.Error != nil {
			return result.Error
		}
		migrated = result.RowsAffected
		return nil
	})
	return migrated, err
}
