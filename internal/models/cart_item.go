package models

import (
	"sort"
	"strings"
)

// CartItem 购物车项：同一商品+同一变体选择合并为一行，仅增减数量
type CartItem struct {
	ID           string       `gorm:"type:varchar(36);primarykey" json:"id"`                              // UUID
	UserID       *string      `gorm:"type:varchar(64);index:idx_cart_owner_key" json:"user_id,omitempty"` // 为空表示游客
	ProductID    uint         `gorm:"not null;index:idx_cart_owner_key" json:"product_id"`
	VariationKey string       `gorm:"type:varchar(500);not null;index:idx_cart_owner_key" json:"-"` // 变体选择的规范化键
	Variation    VariationMap `gorm:"type:json" json:"variation"`                                   // 变体选择（如 Color → Black）
	Quantity     int          `gorm:"not null" json:"quantity"`
	ProductName  string       `gorm:"type:varchar(500);not null" json:"product_name"` // 加购瞬间的名称快照
	ProductPrice Money        `gorm:"type:decimal(20,2);not null" json:"product_price"`
	ProductImage string       `gorm:"type:varchar(1000)" json:"product_image"`
	AddedAt      int64        `gorm:"not null;index" json:"added_at"` // epoch 毫秒
}

// TableName 指定表名
func (CartItem) TableName() string {
	return "cart_items"
}

// BuildVariationKey 规范化变体选择：按属性名排序后拼接，保证同一选择得到同一键
func BuildVariationKey(variation VariationMap) string {
	if len(variation) == 0 {
		return ""
	}
	names := make([]string, 0, len(variation))
	for name := range variation {
		names = append(names, name)
	}
	sort.Strings(names)
	parts := make([]string, 0, len(names))
	for _, name := range names {
		parts = append(parts, strings.ToLower(strings.TrimSpace(name))+"="+strings.ToLower(strings.TrimSpace(variation[name])))
	}
	return strings.Join(parts, ";")
}
