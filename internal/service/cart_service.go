package service

import (
	"strings"
	"time"

	"github.com/hayuwidyas/commerce-api/internal/fallback"
	"github.com/hayuwidyas/commerce-api/internal/models"
	"github.com/hayuwidyas/commerce-api/internal/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// AddToCartInput 加购输入
type AddToCartInput struct {
	ProductID uint
	Variation models.VariationMap
	Quantity  int
}

// CartSummary 购物车汇总
type CartSummary struct {
	Items         []models.CartItem `json:"items"`
	TotalQuantity int               `json:"total_quantity"`
	Subtotal      models.Money      `json:"subtotal"`
}

// CartService 购物车服务。购物车是本地聚合：行内容以加购瞬间的商品快照为准，
// 不随目录刷新回写
type CartService struct {
	cartRepo    repository.CartRepository
	productRepo repository.ProductCacheRepository
}

// NewCartService 创建购物车服务
func NewCartService(cartRepo repository.CartRepository, productRepo repository.ProductCacheRepository) *CartService {
	return &CartService{cartRepo: cartRepo, productRepo: productRepo}
}

// AddToCart 加入购物车。同一商品同一变体选择合并数量，否则新建一行
func (s *CartService) AddToCart(userID *string, input AddToCartInput) (*models.CartItem, error) {
	if input.ProductID == 0 {
		return nil, ErrInvalidProduct
	}
	if input.Quantity <= 0 {
		return nil, ErrInvalidQuantity
	}
	product, err := resolveProduct(s.productRepo, input.ProductID)
	if err != nil {
		return nil, err
	}

	key := models.BuildVariationKey(input.Variation)
	existing, err := s.cartRepo.FindByProductVariation(userID, input.ProductID, key)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		existing.Quantity += input.Quantity
		if err := s.cartRepo.UpdateQuantity(existing.ID, existing.Quantity); err != nil {
			return nil, err
		}
		return existing, nil
	}

	item := &models.CartItem{
		ID:           uuid.NewString(),
		UserID:       userID,
		ProductID:    input.ProductID,
		VariationKey: key,
		Variation:    input.Variation,
		Quantity:     input.Quantity,
		ProductName:  product.Name,
		ProductPrice: product.EffectivePrice(),
		ProductImage: product.PrimaryImage(),
		AddedAt:      time.Now().UnixMilli(),
	}
	if err := s.cartRepo.Create(item); err != nil {
		return nil, err
	}
	return item, nil
}

// UpdateQuantity 修改购物车项数量。数量降到 0 及以下等价于删除该行
func (s *CartService) UpdateQuantity(userID *string, itemID string, quantity int) error {
	item, err := s.ownedItem(userID, itemID)
	if err != nil {
		return err
	}
	if quantity <= 0 {
		return s.cartRepo.DeleteByID(item.ID)
	}
	return s.cartRepo.UpdateQuantity(item.ID, quantity)
}

// RemoveItem 删除购物车项
func (s *CartService) RemoveItem(userID *string, itemID string) error {
	item, err := s.ownedItem(userID, itemID)
	if err != nil {
		return err
	}
	return s.cartRepo.DeleteByID(item.ID)
}

// Clear 清空购物车
func (s *CartService) Clear(userID *string) error {
	return s.cartRepo.ClearByOwner(userID)
}

// Summary 获取购物车汇总：行列表、总件数、小计
func (s *CartService) Summary(userID *string) (*CartSummary, error) {
	items, err := s.cartRepo.ListByOwner(userID)
	if err != nil {
		return nil, err
	}
	totalQuantity := 0
	subtotal := decimal.Zero
	for _, item := range items {
		totalQuantity += item.Quantity
		subtotal = subtotal.Add(item.ProductPrice.Decimal.Mul(decimal.NewFromInt(int64(item.Quantity))))
	}
	return &CartSummary{
		Items:         items,
		TotalQuantity: totalQuantity,
		Subtotal:      models.NewMoneyFromDecimal(subtotal),
	}, nil
}

// MigrateGuestToUser 登录后把游客购物车迁给用户。
// 可重复调用：游客侧已空时再次迁移是空操作；
// 用户侧已有同商品同变体的行时丢弃游客行，以用户数据为准
func (s *CartService) MigrateGuestToUser(userID string) (int64, error) {
	if strings.TrimSpace(userID) == "" {
		return 0, ErrInvalidUser
	}
	return s.cartRepo.MigrateGuestToUser(userID)
}

// resolveProduct 解析商品快照：优先取缓存，缓存未命中时查兜底数据
func resolveProduct(productRepo repository.ProductCacheRepository, productID uint) (*models.Product, error) {
	cached, err := productRepo.Get(productID)
	if err != nil {
		return nil, err
	}
	if cached != nil {
		return &cached.Product, nil
	}
	if fb, ok := fallback.ProductByID(productID); ok {
		return fb, nil
	}
	return nil, ErrProductNotListed
}

// ownedItem 取出购物车项并校验归属
func (s *CartService) ownedItem(userID *string, itemID string) (*models.CartItem, error) {
	if strings.TrimSpace(itemID) == "" {
		return nil, ErrNotFound
	}
	item, err := s.cartRepo.GetByID(itemID)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, ErrNotFound
	}
	if !sameOwner(item.UserID, userID) {
		return nil, ErrItemNotOwned
	}
	return item, nil
}

func sameOwner(a, b *string) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return *a == *b
}
