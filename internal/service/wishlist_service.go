package service

import (
	"strings"
	"sync"
	"time"

	"github.com/hayuwidyas/commerce-api/internal/models"
	"github.com/hayuwidyas/commerce-api/internal/repository"

	"github.com/google/uuid"
)

// WishlistService 心愿单服务。切换操作需要原子性：
// 同一归属者的并发切换串行化，避免查删竞态下产生重复行
type WishlistService struct {
	repo        repository.WishlistRepository
	productRepo repository.ProductCacheRepository
	cartService *CartService

	mu sync.Mutex
}

// NewWishlistService 创建心愿单服务。cartService 供"移入购物车"复用加购合并逻辑
func NewWishlistService(repo repository.WishlistRepository, productRepo repository.ProductCacheRepository, cartService *CartService) *WishlistService {
	return &WishlistService{repo: repo, productRepo: productRepo, cartService: cartService}
}

// List 获取心愿单
func (s *WishlistService) List(userID *string) ([]models.WishlistItem, error) {
	return s.repo.ListByOwner(userID)
}

// IsWishlisted 商品是否在心愿单中
func (s *WishlistService) IsWishlisted(userID *string, productID uint) (bool, error) {
	item, err := s.repo.FindByProduct(userID, productID)
	if err != nil {
		return false, err
	}
	return item != nil, nil
}

// Toggle 切换商品的心愿单状态，返回切换后是否在心愿单中。
// 在 → 移除；不在 → 加入
func (s *WishlistService) Toggle(userID *string, productID uint) (bool, error) {
	if productID == 0 {
		return false, ErrInvalidProduct
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	existing, err := s.repo.FindByProduct(userID, productID)
	if err != nil {
		return false, err
	}
	if existing != nil {
		if err := s.repo.DeleteByProduct(userID, productID); err != nil {
			return false, err
		}
		return false, nil
	}

	product, err := resolveProduct(s.productRepo, productID)
	if err != nil {
		return false, err
	}
	item := &models.WishlistItem{
		ID:           uuid.NewString(),
		UserID:       userID,
		ProductID:    productID,
		ProductName:  product.Name,
		ProductImage: product.PrimaryImage(),
		Price:        product.Price,
		RegularPrice: product.RegularPrice,
		SalePrice:    product.SalePrice,
		OnSale:       product.OnSale,
		AddedAt:      time.Now().UnixMilli(),
	}
	if err := s.repo.Create(item); err != nil {
		return false, err
	}
	return true, nil
}

// Remove 从心愿单移除商品
func (s *WishlistService) Remove(userID *string, productID uint) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.repo.DeleteByProduct(userID, productID)
}

// Clear 清空心愿单
func (s *WishlistService) Clear(userID *string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.repo.ClearByOwner(userID)
}

// MoveToCart 把心愿单商品移入购物车：加购成功后从心愿单移除
func (s *WishlistService) MoveToCart(userID *string, productID uint, variation models.VariationMap) (*models.CartItem, error) {
	item, err := s.cartService.AddToCart(userID, AddToCartInput{
		ProductID: productID,
		Variation: variation,
		Quantity:  1,
	})
	if err != nil {
		return nil, err
	}
	if err := s.Remove(userID, productID); err != nil {
		return nil, err
	}
	return item, nil
}

// MigrateGuestToUser 登录后把游客心愿单迁给用户，语义与购物车迁移一致
func (s *WishlistService) MigrateGuestToUser(userID string) (int64, error) {
	if strings.TrimSpace(userID) == "" {
		return 0, ErrInvalidUser
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.repo.MigrateGuestToUser(userID)
}
