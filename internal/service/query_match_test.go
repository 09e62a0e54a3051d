package service

import (
	"testing"
	"time"

	"github.com/hayuwidyas/commerce-api/internal/constants"
	"github.com/hayuwidyas/commerce-api/internal/models"
	"github.com/hayuwidyas/commerce-api/internal/repository"
)

func matchProduct() models.Product {
	sale := models.NewMoneyFromInt(12000000)
	return models.Product{
		ID:               1,
		Name:             "Calais Crocodile Bag",
		Description:      "Handcrafted from genuine crocodile leather",
		ShortDescription: "Signature tote",
		Price:            models.NewMoneyFromInt(18000000),
		RegularPrice:     models.NewMoneyFromInt(18000000),
		SalePrice:        &sale,
		OnSale:           true,
		Featured:         true,
		Categories:       []string{"Crocodile Series", "Tote Bags"},
	}
}

func TestMatchProductSearch(t *testing.T) {
	p := matchProduct()
	cases := []struct {
		search string
		want   bool
	}{
		{"CROCODILE", true},  // 名称大小写不敏感
		{"genuine", true},    // 命中描述
		{"signature", true},  // 命中简短描述
		{"  calais  ", true}, // 前后空白忽略
		{"ostrich", false},
		{"", true},
	}
	for _, c := range cases {
		got := MatchProduct(p, repository.ProductCacheFilter{Search: c.search})
		if got != c.want {
			t.Errorf("search %q: got %v, want %v", c.search, got, c.want)
		}
	}
}

func TestMatchProductCategory(t *testing.T) {
	p := matchProduct()
	if !MatchProduct(p, repository.ProductCacheFilter{Category: "tote"}) {
		t.Errorf("category substring should match any category name")
	}
	if MatchProduct(p, repository.ProductCacheFilter{Category: "clutch"}) {
		t.Errorf("unknown category should not match")
	}
}

func TestMatchProductFlags(t *testing.T) {
	p := matchProduct()
	yes, no := true, false
	if !MatchProduct(p, repository.ProductCacheFilter{Featured: &yes, OnSale: &yes}) {
		t.Errorf("featured on-sale product should match both flags")
	}
	if MatchProduct(p, repository.ProductCacheFilter{Featured: &no}) {
		t.Errorf("featured product must not match featured=false")
	}
	if MatchProduct(p, repository.ProductCacheFilter{OnSale: &no}) {
		t.Errorf("on-sale product must not match on_sale=false")
	}
}

func TestMatchProductUsesEffectivePrice(t *testing.T) {
	p := matchProduct() // 原价 1800 万，促销价 1200 万
	exact := models.NewMoneyFromInt(12000000)
	above := models.NewMoneyFromInt(12000001)
	regular := models.NewMoneyFromInt(18000000)

	// 区间为闭区间，落在促销价上应命中
	if !MatchProduct(p, repository.ProductCacheFilter{MinPrice: &exact, MaxPrice: &exact}) {
		t.Errorf("effective price must satisfy an inclusive range on the sale price")
	}
	if MatchProduct(p, repository.ProductCacheFilter{MinPrice: &above}) {
		t.Errorf("min_price above the sale price must not match")
	}
	// 按原价筛选不应命中在售促销商品
	if MatchProduct(p, repository.ProductCacheFilter{MinPrice: &regular}) {
		t.Errorf("range checks must use the sale price, not the regular price")
	}
}

func TestSortProductsDefaultsAndStability(t *testing.T) {
	sale := models.NewMoneyFromInt(500)
	products := []models.Product{
		{ID: 3, Name: "bravo", Price: models.NewMoneyFromInt(1000), RegularPrice: models.NewMoneyFromInt(1000)},
		{ID: 1, Name: "Alpha", Price: models.NewMoneyFromInt(1000), RegularPrice: models.NewMoneyFromInt(1000)},
		{ID: 2, Name: "charlie", Price: models.NewMoneyFromInt(900), RegularPrice: models.NewMoneyFromInt(900), SalePrice: &sale, OnSale: true},
	}

	// 缺省按时间降序，兜底数据以 ID 近似
	SortProducts(products, "", "")
	if products[0].ID != 3 || products[2].ID != 1 {
		t.Fatalf("default sort should be newest first, got %v %v %v", products[0].ID, products[1].ID, products[2].ID)
	}

	// 方向缺省一律降序，仅显式 asc 升序；名称比较大小写不敏感
	SortProducts(products, constants.SortByName, "")
	if products[0].Name != "charlie" || products[2].Name != "Alpha" {
		t.Fatalf("name sort should default to descending, got %q first", products[0].Name)
	}
	SortProducts(products, constants.SortByName, constants.OrderAsc)
	if products[0].Name != "Alpha" || products[2].Name != "charlie" {
		t.Fatalf("explicit asc should sort names ascending, got %q first", products[0].Name)
	}

	// 价格排序使用有效价格：促销中的 charlie 最便宜
	SortProducts(products, constants.SortByPrice, constants.OrderAsc)
	if products[0].ID != 2 {
		t.Fatalf("price sort must use the effective price, got product %d first", products[0].ID)
	}

	// 同键按 ID 升序收尾，与降序主键组合时也不受方向影响
	equal := []models.Product{
		{ID: 11, Name: "second", Price: models.NewMoneyFromInt(100), RegularPrice: models.NewMoneyFromInt(100)},
		{ID: 10, Name: "first", Price: models.NewMoneyFromInt(100), RegularPrice: models.NewMoneyFromInt(100)},
	}
	SortProducts(equal, constants.SortByPrice, "")
	if equal[0].ID != 10 || equal[1].ID != 11 {
		t.Fatalf("equal keys must order by id ascending, got %d %d", equal[0].ID, equal[1].ID)
	}
}

func TestSortContractMatchesCacheOrdering(t *testing.T) {
	db := newServiceDB(t, &models.CachedProduct{})
	repo := repository.NewProductCacheRepository(db)
	products := []models.Product{
		cachedProduct(1, "Alpha", 1000),
		cachedProduct(2, "Zulu", 2000),
		cachedProduct(3, "mika", 1500),
	}
	if err := repo.UpsertMany(products, time.Now()); err != nil {
		t.Fatalf("seed cache failed: %v", err)
	}

	// 同一查询从缓存切到兜底来源时顺序不得改变
	for _, order := range []string{"", constants.OrderAsc, constants.OrderDesc} {
		rows, err := repo.List(repository.ProductCacheFilter{SortBy: constants.SortByName, Order: order})
		if err != nil {
			t.Fatalf("order %q: list failed: %v", order, err)
		}
		if len(rows) != len(products) {
			t.Fatalf("order %q: expected %d rows, got %d", order, len(products), len(rows))
		}
		inMemory := append([]models.Product(nil), products...)
		SortProducts(inMemory, constants.SortByName, order)
		for i := range rows {
			if rows[i].ID != inMemory[i].ID {
				t.Errorf("order %q: sources disagree at position %d: sql=%d in-memory=%d", order, i, rows[i].ID, inMemory[i].ID)
			}
		}
	}
}

func TestPaginateProducts(t *testing.T) {
	products := make([]models.Product, 5)
	for i := range products {
		products[i].ID = uint(i + 1)
	}

	page := PaginateProducts(products, 2, 2)
	if len(page) != 2 || page[0].ID != 3 || page[1].ID != 4 {
		t.Fatalf("page 2 size 2 should hold products 3 and 4, got %v", page)
	}
	if got := PaginateProducts(products, 3, 2); len(got) != 1 || got[0].ID != 5 {
		t.Fatalf("final partial page should hold the remainder, got %v", got)
	}
	if got := PaginateProducts(products, 9, 2); len(got) != 0 {
		t.Fatalf("page past the end should be empty, got %v", got)
	}
	if got := PaginateProducts(products, 1, 0); len(got) != 5 {
		t.Fatalf("non-positive page size should return everything, got %d", len(got))
	}
}
