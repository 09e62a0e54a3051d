package models

import (
	"testing"

	"github.com/hayuwidyas/commerce-api/internal/constants"
)

func TestEffectivePriceUsesSalePriceWhenOnSale(t *testing.T) {
	sale := NewMoneyFromInt(15000000)
	product := Product{
		Price:        NewMoneyFromInt(20000000),
		RegularPrice: NewMoneyFromInt(20000000),
		SalePrice:    &sale,
		OnSale:       true,
	}
	if !product.EffectivePrice().Decimal.Equal(sale.Decimal) {
		t.Fatalf("expected sale price %s, got %s", sale, product.EffectivePrice())
	}
}

func TestEffectivePriceIgnoresSalePriceWhenNotOnSale(t *testing.T) {
	sale := NewMoneyFromInt(15000000)
	product := Product{
		Price:     NewMoneyFromInt(20000000),
		SalePrice: &sale,
		OnSale:    false,
	}
	if !product.EffectivePrice().Decimal.Equal(product.Price.Decimal) {
		t.Fatalf("expected regular price %s, got %s", product.Price, product.EffectivePrice())
	}
}

func TestEffectivePriceOnSaleWithoutSalePrice(t *testing.T) {
	product := Product{
		Price:  NewMoneyFromInt(18000000),
		OnSale: true,
	}
	if !product.EffectivePrice().Decimal.Equal(product.Price.Decimal) {
		t.Fatalf("expected regular price %s, got %s", product.Price, product.EffectivePrice())
	}
}

func TestInStock(t *testing.T) {
	cases := []struct {
		status string
		want   bool
	}{
		{constants.StockStatusInStock, true},
		{constants.StockStatusBackorder, true},
		{constants.StockStatusOutOfStock, false},
	}
	for _, tc := range cases {
		product := Product{StockStatus: tc.status}
		if product.InStock() != tc.want {
			t.Fatalf("stock status %q: expected %v", tc.status, tc.want)
		}
	}
}

func TestPrimaryImage(t *testing.T) {
	product := Product{Images: StringArray{"first.jpg", "second.jpg"}}
	if product.PrimaryImage() != "first.jpg" {
		t.Fatalf("expected first image, got %q", product.PrimaryImage())
	}
	empty := Product{}
	if empty.PrimaryImage() != "" {
		t.Fatalf("expected empty image for product without images")
	}
}
