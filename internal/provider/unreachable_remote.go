package provider

import (
	"context"
	"fmt"

	"github.com/hayuwidyas/commerce-api/internal/models"
	"github.com/hayuwidyas/commerce-api/internal/woocommerce"
)

// unreachableRemote 远端未配置时的占位实现：所有请求按不可达处理，
// 目录服务据此走缓存与兜底数据路径
type unreachableRemote struct{}

func (unreachableRemote) ListProducts(context.Context, woocommerce.ProductQuery) ([]models.Product, woocommerce.PageMeta, error) {
	return nil, woocommerce.PageMeta{}, fmt.Errorf("%w: remote catalog not configured", woocommerce.ErrUnreachable)
}

func (unreachableRemote) GetProduct(context.Context, uint) (*models.Product, error) {
	return nil, fmt.Errorf("%w: remote catalog not configured", woocommerce.ErrUnreachable)
}

func (unreachableRemote) ListCategories(context.Context, woocommerce.CategoryQuery) ([]models.Category, woocommerce.PageMeta, error) {
	return nil, woocommerce.PageMeta{}, fmt.Errorf("%w: remote catalog not configured", woocommerce.ErrUnreachable)
}
