package constants

// 库存状态（与远端目录的取值保持一致）
const (
	StockStatusInStock    = "instock"
	StockStatusOutOfStock = "outofstock"
	StockStatusBackorder  = "onbackorder"
)

// 排序字段
const (
	SortByDate       = "date"
	SortByPrice      = "price"
	SortByRating     = "rating"
	SortByPopularity = "popularity"
	SortByName       = "name"
)

// 排序方向
const (
	OrderAsc  = "asc"
	OrderDesc = "desc"
)

// 队列名称
const (
	QueueDefault = "default"
)

// 异步任务类型
const (
	TaskCatalogEvict   = "catalog:evict"
	TaskCatalogRefresh = "catalog:refresh"
)

// 分页默认值
const (
	DefaultPage     = 1
	DefaultPageSize = 20
	MaxPageSize     = 100
)

// ValidSortField 校验排序字段
func ValidSortField(field string) bool {
	switch field {
	case SortByDate, SortByPrice, SortByRating, SortByPopularity, SortByName:
		return true
	}
	return false
}
