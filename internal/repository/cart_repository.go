package repository

import (
	"errors"

	"github.com/hayuwidyas/commerce-api/internal/models"

	"gorm.io/gorm"
)

// CartRepository 购物车数据访问接口
type CartRepository interface {
	ListByOwner(userID *string) ([]models.CartItem, error)
	GetByID(id string) (*models.CartItem, error)
	FindByProductVariation(userID *string, productID uint, variationKey string) (*models.CartItem, error)
	Create(item *models.CartItem) error
	UpdateQuantity(id string, quantity int) error
	DeleteByID(id string) error
	ClearByOwner(userID *string) error
	MigrateGuestToUser(userID string) (int64, error)
}

// GormCartRepository GORM 实现
type GormCartRepository struct {
	db *gorm.DB
}

// NewCartRepository 创建购物车仓库
func NewCartRepository(db *gorm.DB) *GormCartRepository {
	return &GormCartRepository{db: db}
}

// ListByOwner 获取归属者的购物车项（按加入时间倒序）
func (r *GormCartRepository) ListByOwner(userID *string) ([]models.CartItem, error) {
	var items []models.CartItem
	if err := ownerScope(r.db, userID).Order("added_at DESC").Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

// GetByID 按行 ID 获取购物车项
func (r *GormCartRepository) GetByID(id string) (*models.CartItem, error) {
	var item models.CartItem
	if err := r.db.Where("id = ?", id).First(&item).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &item, nil
}

// FindByProductVariation 按去重键（商品 + 变体选择）查找既有行
func (r *GormCartRepository) FindByProductVariation(userID *string, productID uint, variationKey string) (*models.CartItem, error) {
	var item models.CartItem
	query := ownerScope(r.db, userID).Where("product_id = ? AND variation_key = ?", productID, variationKey)
	if err := query.First(&item).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &item, nil
}

// Create 新增购物车项
func (r *GormCartRepository) Create(item *models.CartItem) error {
	if item == nil {
		return nil
	}
	return r.db.Create(item).Error
}

// UpdateQuantity 更新数量（调用方保证 quantity ≥ 1）
func (r *GormCartRepository) UpdateQuantity(id string, quantity int) error {
	return r.db.Model(&models.CartItem{}).Where("id = ?", id).
		Update("quantity", quantity).Error
}

// DeleteByID 删除购物车项
func (r *GormCartRepository) DeleteByID(id string) error {
	return r.db.Where("id = ?", id).Delete(&models.CartItem{}).Error
}

// ClearByOwner 清空归属者的购物车
func (r *GormCartRepository) ClearByOwner(userID *string) error {
	return ownerScope(r.db, userID).Delete(&models.CartItem{}).Error
}

// MigrateGuestToUser 游客数据迁移：把 user_id 为空的行整体改挂到新登录用户。
// 单个批量操作完成，幂等：第二次执行时已无游客行，不产生任何改动。
// 用户名下已存在同去重键的行时，直接丢弃游客行而不是制造键冲突。
func (r *GormCartRepository) MigrateGuestToUser(userID string) (int64, error) {
	var migrated int64
	err := r.db.Transaction(func(tx *gorm.DB) error {
		// 先清掉会与用户既有行撞键的游客行
		if err := tx.Exec(
			`DELETE FROM cart_items WHERE user_id IS NULL AND EXISTS (
				SELECT 1 FROM cart_items owned
				WHERE owned.user_id = ?
				  AND owned.product_id = cart_items.product_id
				  AND owned.variation_key = cart_items.variation_key)`,
			userID,
		).Error; err != nil {
			return err
		}
		result := tx.Model(&models.CartItem{}).Where("user_id IS NULL").
			Update("user_id", userID)
		if result.Error != nil {
			return result.Error
		}
		migrated = result.RowsAffected
		return nil
	})
	return migrated, err
}
