package models

// WishlistItem 心愿单项：按商品维度去重，不区分变体
type WishlistItem struct {
	ID           string  `gorm:"type:varchar(36);primarykey" json:"id"`                                  // UUID
	UserID       *string `gorm:"type:varchar(64);index:idx_wishlist_owner" json:"user_id,omitempty"`     // 为空表示游客
	ProductID    uint    `gorm:"not null;index:idx_wishlist_owner" json:"product_id"`
	ProductName  string  `gorm:"type:varchar(500);not null" json:"product_name"` // 加入瞬间的快照
	ProductImage string  `gorm:"type:varchar(1000)" json:"product_image"`
	Price        Money   `gorm:"type:decimal(20,2);not null" json:"price"`
	RegularPrice Money   `gorm:"type:decimal(20,2);not null" json:"regular_price"`
	SalePrice    *Money  `gorm:"type:decimal(20,2)" json:"sale_price,omitempty"`
	OnSale       bool    `gorm:"default:false" json:"on_sale"`
	AddedAt      int64   `gorm:"not null;index" json:"added_at"` // epoch 毫秒
}

// TableName 指定表名
func (WishlistItem) TableName() string {
	return "wishlist_items"
}

// EffectivePrice 有效价格（与商品模型同一规则）
func (w WishlistItem) EffectivePrice() Money {
	if w.OnSale && w.SalePrice != nil {
		return *w.SalePrice
	}
	return w.Price
}
