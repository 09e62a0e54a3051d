package service

import (
	"sort"
	"strings"

	"github.com/hayuwidyas/commerce-api/internal/constants"
	"github.com/hayuwidyas/commerce-api/internal/models"
	"github.com/hayuwidyas/commerce-api/internal/repository"
)

// MatchProduct 判断商品是否命中查询条件。
// 谓词与缓存层的 SQL 过滤保持同一契约，兜底数据走内存过滤时结果一致：
// 搜索在名称、描述、简短描述上做大小写不敏感子串匹配；
// 分类对任一分类名做大小写不敏感子串匹配；
// 价格区间按有效价格（促销价优先）闭区间比较。
func MatchProduct(p models.Product, filter repository.ProductCacheFilter) bool {
	if search := strings.ToLower(strings.TrimSpace(filter.Search)); search != "" {
		if !strings.Contains(strings.ToLower(p.Name), search) &&
			!strings.Contains(strings.ToLower(p.Description), search) &&
			!strings.Contains(strings.ToLower(p.ShortDescription), search) {
			return false
		}
	}
	if category := strings.ToLower(strings.TrimSpace(filter.Category)); category != "" {
		matched := false
		for _, name := range p.Categories {
			if strings.Contains(strings.ToLower(name), category) {
				matched = true
				break
			}
		}
		if !matched {
			return false
		}
	}
	if filter.Featured != nil && p.Featured != *filter.Featured {
		return false
	}
	if filter.OnSale != nil && p.OnSale != *filter.OnSale {
		return false
	}
	effective := p.EffectivePrice()
	if filter.MinPrice != nil && effective.Decimal.LessThan(filter.MinPrice.Decimal) {
		return false
	}
	if filter.MaxPrice != nil && effective.Decimal.GreaterThan(filter.MaxPrice.Decimal) {
		return false
	}
	return true
}

// FilterProducts 过滤商品列表
func FilterProducts(products []models.Product, filter repository.ProductCacheFilter) []models.Product {
	matched := make([]models.Product, 0, len(products))
	for _, p := range products {
		if MatchProduct(p, filter) {
			matched = append(matched, p)
		}
	}
	return matched
}

// SortProducts 原地排序。键序与缓存层的 SQL 排序逐项一致：
// 缺省方向为降序（与远端目录的 order 缺省一致），仅显式 asc 升序；
// 评分与热度互为次键，末尾一律按 ID 升序定序，翻页时结果不跳动。
func SortProducts(products []models.Product, sortBy, order string) {
	if !constants.ValidSortField(sortBy) {
		sortBy = constants.SortByDate
	}
	desc := !strings.EqualFold(strings.TrimSpace(order), constants.OrderAsc)

	compare := func(a, b models.Product) int {
		switch sortBy {
		case constants.SortByPrice:
			return a.EffectivePrice().Decimal.Cmp(b.EffectivePrice().Decimal)
		case constants.SortByRating:
			if c := compareFloat(a.AverageRating, b.AverageRating); c != 0 {
				return c
			}
			return a.RatingCount - b.RatingCount
		case constants.SortByPopularity:
			if c := a.RatingCount - b.RatingCount; c != 0 {
				return c
			}
			return compareFloat(a.AverageRating, b.AverageRating)
		case constants.SortByName:
			return strings.Compare(strings.ToLower(a.Name), strings.ToLower(b.Name))
		default:
			// 兜底数据没有时间戳，按 ID 近似发布顺序
			return compareID(a.ID, b.ID)
		}
	}
	sort.SliceStable(products, func(i, j int) bool {
		c := compare(products[i], products[j])
		if desc {
			c = -c
		}
		if c != 0 {
			return c < 0
		}
		// 同键按 ID 升序收尾，方向无关
		return products[i].ID < products[j].ID
	})
}

func compareFloat(a, b float64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

func compareID(a, b uint) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

// PaginateProducts 内存分页，语义与缓存层 SQL 分页一致
func PaginateProducts(products []models.Product, page, pageSize int) []models.Product {
	if pageSize <= 0 {
		return products
	}
	if page < 1 {
		page = 1
	}
	start := (page - 1) * pageSize
	if start >= len(products) {
		return []models.Product{}
	}
	end := start + pageSize
	if end > len(products) {
		end = len(products)
	}
	return products[start:end]
}
