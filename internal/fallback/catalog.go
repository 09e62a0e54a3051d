// Package fallback 内置兜底目录：远端不可达且缓存为空时的最后数据来源。
// 数据取自 hayuwidyas.com 的真实在售商品，纯静态，无网络、无持久化、无变更。
package fallback

import "github.com/hayuwidyas/commerce-api/internal/models"

// Products 返回兜底商品集（深拷贝，调用方可安全修改）
func Products() []models.Product {
	out := make([]models.Product, len(products))
	for i, p := range products {
		out[i] = cloneProduct(p)
	}
	return out
}

// ProductByID 按远端 ID 查找兜底商品
func ProductByID(id uint) (*models.Product, bool) {
	for _, p := range products {
		if p.ID == id {
			cloned := cloneProduct(p)
			return &cloned, true
		}
	}
	return nil, false
}

// Categories 返回兜底分类集（深拷贝）
func Categories() []models.Category {
	out := make([]models.Category, len(categories))
	copy(out, categories)
	return out
}

func cloneProduct(p models.Product) models.Product {
	cloned := p
	cloned.Categories = append(models.StringArray(nil), p.Categories...)
	cloned.Tags = append(models.StringArray(nil), p.Tags...)
	cloned.Images = append(models.StringArray(nil), p.Images...)
	if p.SalePrice != nil {
		salePrice := *p.SalePrice
		cloned.SalePrice = &salePrice
	}
	if p.StockQuantity != nil {
		quantity := *p.StockQuantity
		cloned.StockQuantity = &quantity
	}
	attributes := make(models.AttributeMap, len(p.Attributes))
	for name, options := range p.Attributes {
		attributes[name] = append([]string(nil), options...)
	}
	cloned.Attributes = attributes
	return cloned
}

func money(amount int64) models.Money {
	return models.NewMoneyFromInt(amount)
}

func moneyPtr(amount int64) *models.Money {
	m := money(amount)
	return &m
}

func intPtr(v int) *int {
	return &v
}

var products = []models.Product{
	{
		ID:               1,
		Name:             "HAYU WIDYAS Calais tas kulit asli berkualitas – Tas Wanita 28cm",
		Slug:             "hayu-widyas-calais-28cm",
		Description:      "Tas kulit asli berkualitas tinggi dengan desain elegan dan timeless. Dibuat dengan keahlian tangan Indonesia selama 14 tahun. Material crocodile leather premium dengan finishing yang sempurna.",
		ShortDescription: "Luxury crocodile leather handbag, handcrafted in Indonesia",
		SKU:              "HW-CAL-28-001",
		Price:            money(18000000),
		RegularPrice:     money(18000000),
		OnSale:           false,
		StockStatus:      "instock",
		StockQuantity:    intPtr(3),
		Categories:       models.StringArray{"Crocodile Series", "Top Handle Bags"},
		Tags:             models.StringArray{"Luxury", "Handmade", "Sultan"},
		Images: models.StringArray{
			"https://hayuwidyas.com/wp-content/uploads/2025/07/ginee_20250718162858897_2728616238-300x300.jpg",
			"https://hayuwidyas.com/wp-content/uploads/2025/07/ginee_20250718162858828_1482019247-300x300.jpg",
		},
		Featured:      true,
		AverageRating: 4.8,
		RatingCount:   12,
		Attributes: models.AttributeMap{
			"Size":     {"28cm"},
			"Material": {"Crocodile Leather"},
			"Color":    {"Black", "Brown", "Burgundy"},
		},
	},
	{
		ID:               2,
		Name:             "HAYU WIDYAS Kale Landscape tas kulit asli berkualitas – Tas Wanita 25cm",
		Slug:             "hayu-widyas-kale-landscape-25cm",
		Description:      "Tas kulit landscape dengan desain modern dan elegan. Cocok untuk penggunaan sehari-hari maupun acara formal. Material python leather berkualitas tinggi.",
		ShortDescription: "Modern python leather landscape bag",
		SKU:              "HW-KAL-25-001",
		Price:            money(14650000),
		RegularPrice:     money(14650000),
		OnSale:           false,
		StockStatus:      "instock",
		StockQuantity:    intPtr(5),
		Categories:       models.StringArray{"Python Series", "Shoulder Bags"},
		Tags:             models.StringArray{"Luxury", "Handmade"},
		Images: models.StringArray{
			"https://hayuwidyas.com/wp-content/uploads/2025/07/ginee_20250718162858121_0893121733-300x300.jpg",
		},
		Featured:      true,
		AverageRating: 4.9,
		RatingCount:   8,
		Attributes: models.AttributeMap{
			"Size":     {"25cm"},
			"Material": {"Python Leather"},
			"Color":    {"Natural", "Black"},
		},
	},
	{
		ID:               3,
		Name:             "HAYU WIDYAS Mini Croco tas kulit asli berkualitas – Tas Wanita 18cm",
		Slug:             "hayu-widyas-mini-croco-18cm",
		Description:      "Tas mini dari kulit buaya asli dengan detail hardware emas. Ukuran compact yang tetap muat untuk kebutuhan esensial.",
		ShortDescription: "Compact crocodile leather mini bag",
		SKU:              "HW-MCR-18-001",
		Price:            money(24650000),
		RegularPrice:     money(24650000),
		OnSale:           false,
		StockStatus:      "instock",
		StockQuantity:    intPtr(2),
		Categories:       models.StringArray{"Crocodile Series", "Mini Bags"},
		Tags:             models.StringArray{"Luxury", "Handmade", "Exclusive"},
		Images: models.StringArray{
			"https://hayuwidyas.com/wp-content/uploads/2025/07/ginee_20250718162858340_1120934417-300x300.jpg",
		},
		Featured:      false,
		AverageRating: 5.0,
		RatingCount:   4,
		Attributes: models.AttributeMap{
			"Size":     {"18cm"},
			"Material": {"Crocodile Leather"},
			"Color":    {"Black", "Emerald"},
		},
	},
	{
		ID:               4,
		Name:             "HAYU WIDYAS Lizard Clutch tas kulit asli berkualitas – Tas Pesta",
		Slug:             "hayu-widyas-lizard-clutch",
		Description:      "Clutch pesta dari kulit biawak asli dengan tekstur halus. Promo spesial untuk koleksi musim ini.",
		ShortDescription: "Evening clutch in genuine lizard leather",
		SKU:              "HW-LZC-01-001",
		Price:            money(15000000),
		RegularPrice:     money(20000000),
		SalePrice:        moneyPtr(15000000),
		OnSale:           true,
		StockStatus:      "instock",
		StockQuantity:    intPtr(6),
		Categories:       models.StringArray{"Lizard Series", "Clutch Bags", "Sale"},
		Tags:             models.StringArray{"Luxury", "Handmade", "Promo"},
		Images: models.StringArray{
			"https://hayuwidyas.com/wp-content/uploads/2025/07/ginee_20250718162858554_0222780113-300x300.jpg",
		},
		Featured:      false,
		AverageRating: 4.7,
		RatingCount:   9,
		Attributes: models.AttributeMap{
			"Material": {"Lizard Leather"},
			"Color":    {"Champagne", "Black"},
		},
	},
	{
		ID:               5,
		Name:             "HAYU WIDYAS Ostrich Tote tas kulit asli berkualitas – Tas Wanita 32cm",
		Slug:             "hayu-widyas-ostrich-tote-32cm",
		Description:      "Tote kerja berbahan kulit unta asli dengan kapasitas besar. Jahitan tangan dengan benang nilon import.",
		ShortDescription: "Spacious ostrich leather work tote",
		SKU:              "HW-OST-32-001",
		Price:            money(21500000),
		RegularPrice:     money(21500000),
		OnSale:           false,
		StockStatus:      "outofstock",
		Categories:       models.StringArray{"Ostrich Series", "Tote Bags"},
		Tags:             models.StringArray{"Luxury", "Handmade"},
		Images: models.StringArray{
			"https://hayuwidyas.com/wp-content/uploads/2025/07/ginee_20250718162858672_0421205116-300x300.jpg",
		},
		Featured:      false,
		AverageRating: 4.6,
		RatingCount:   15,
		Attributes: models.AttributeMap{
			"Size":     {"32cm"},
			"Material": {"Ostrich Leather"},
			"Color":    {"Cognac", "Black"},
		},
	},
}

var categories = []models.Category{
	{ID: 1, Name: "Crocodile Series", Slug: "crocodile-series", Count: 2},
	{ID: 2, Name: "Top Handle Bags", Slug: "top-handle-bags", Count: 1},
	{ID: 3, Name: "Python Series", Slug: "python-series", Count: 1},
	{ID: 4, Name: "Shoulder Bags", Slug: "shoulder-bags", Count: 1},
	{ID: 5, Name: "Lizard Series", Slug: "lizard-series", Count: 1},
	{ID: 6, Name: "Clutch Bags", Slug: "clutch-bags", Count: 1},
	{ID: 7, Name: "Ostrich Series", Slug: "ostrich-series", Count: 1},
	{ID: 8, Name: "Tote Bags", Slug: "tote-bags", Count: 1},
	{ID: 9, Name: "Mini Bags", Slug: "mini-bags", Count: 1},
	{ID: 10, Name: "Sale", Slug: "sale", Count: 1},
}
