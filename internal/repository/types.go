package repository

import "github.com/hayuwidyas/commerce-api/internal/models"

// ProductCacheFilter 缓存商品列表的过滤与排序条件。
// 谓词语义与远端查询契约一致：搜索与分类均为大小写不敏感的子串匹配。
type ProductCacheFilter struct {
	Search   string
	Category string
	Featured *bool
	OnSale   *bool
	MinPrice *models.Money
	MaxPrice *models.Money
	SortBy   string // date / price / rating / popularity / name
	Order    string // asc / desc
	Page     int    // 0 表示不分页
	PageSize int
}
