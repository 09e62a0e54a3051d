package models

import "github.com/hayuwidyas/commerce-api/internal/constants"

// Product 商品规范模型：缓存、远端、兜底三个来源统一映射到此结构
type Product struct {
	ID               uint         `gorm:"primarykey;autoIncrement:false" json:"id"` // 远端目录分配的稳定 ID
	Name             string       `gorm:"type:varchar(500);not null" json:"name"`   // 名称
	Slug             string       `gorm:"type:varchar(500)" json:"slug"`            // 唯一标识
	Description      string       `gorm:"type:text" json:"description"`             // 描述
	ShortDescription string       `gorm:"type:text" json:"short_description"`       // 简短描述
	SKU              string       `gorm:"type:varchar(100);index" json:"sku"`       // 货号
	Price            Money        `gorm:"type:decimal(20,2);not null;default:0" json:"price"`
	RegularPrice     Money        `gorm:"type:decimal(20,2);not null;default:0" json:"regular_price"`
	SalePrice        *Money       `gorm:"type:decimal(20,2)" json:"sale_price,omitempty"` // 促销价（可缺省）
	OnSale           bool         `gorm:"default:false;index" json:"on_sale"`             // 是否促销
	StockStatus      string       `gorm:"type:varchar(20);not null;default:'instock'" json:"stock_status"`
	StockQuantity    *int         `gorm:"" json:"stock_quantity,omitempty"` // 缺省表示不管理库存
	Categories       StringArray  `gorm:"type:json" json:"categories"`      // 分类名数组（反范式化，非外键）
	Tags             StringArray  `gorm:"type:json" json:"tags"`            // 标签数组
	Images           StringArray  `gorm:"type:json" json:"images"`          // 图片地址数组，首张为主图
	Featured         bool         `gorm:"default:false;index" json:"featured"`
	AverageRating    float64      `gorm:"type:decimal(3,2);default:0" json:"average_rating"` // 平均评分 0–5
	RatingCount      int          `gorm:"default:0" json:"rating_count"`
	Attributes       AttributeMap `gorm:"type:json" json:"attributes"` // 可变属性：属性名 → 选项列表
}

// EffectivePrice 有效价格：促销中且有促销价时取促销价，否则取原价
func (p Product) EffectivePrice() Money {
	if p.OnSale && p.SalePrice != nil {
		return *p.SalePrice
	}
	return p.Price
}

// InStock 是否可购买
func (p Product) InStock() bool {
	return p.StockStatus != constants.StockStatusOutOfStock
}

// PrimaryImage 主图地址，无图时返回空串
func (p Product) PrimaryImage() string {
	if len(p.Images) == 0 {
		return ""
	}
	return p.Images[0]
}

// CachedProduct 商品缓存行 = 规范模型 + 最后写入时间
type CachedProduct struct {
	Product     `gorm:"embedded"`
	LastUpdated int64 `gorm:"not null;index" json:"last_updated"` // epoch 毫秒
}

// TableName 指定表名
func (CachedProduct) TableName() string {
	return "cached_products"
}

// Category 分类模型（不落库，随查询实时获取或取兜底数据）
type Category struct {
	ID          uint   `json:"id"`
	Name        string `json:"name"`
	Slug        string `json:"slug"`
	Description string `json:"description,omitempty"`
	Image       string `json:"image,omitempty"`
	Count       int    `json:"count"` // 商品数
}
