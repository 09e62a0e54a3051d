package public

import (
	"strconv"

	"github.com/hayuwidyas/commerce-api/internal/http/response"
	"github.com/hayuwidyas/commerce-api/internal/models"

	"github.com/gin-gonic/gin"
)

type wishlistToggleRequest struct {
	ProductID uint `json:"product_id" binding:"required"`
}

type moveToCartRequest struct {
	Variation models.VariationMap `json:"variation"`
}

// GetWishlist 获取心愿单
func (h *Handler) GetWishlist(c *gin.Context) {
	items, err := h.WishlistService.List(getUserID(c))
	if err != nil {
		response.Error(c, response.CodeInternal, "wishlist query failed")
		return
	}
	response.Success(c, items)
}

// ToggleWishlist 切换商品的心愿单状态
func (h *Handler) ToggleWishlist(c *gin.Context) {
	var req wishlistToggleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "request body invalid")
		return
	}
	wishlisted, err := h.WishlistService.Toggle(getUserID(c), req.ProductID)
	if err != nil {
		respondCartError(c, err)
		return
	}
	response.Success(c, gin.H{"product_id": req.ProductID, "wishlisted": wishlisted})
}

// RemoveWishlistItem 从心愿单移除商品
func (h *Handler) RemoveWishlistItem(c *gin.Context) {
	productID, err := strconv.ParseUint(c.Param("product_id"), 10, 32)
	if err != nil || productID == 0 {
		response.BadRequest(c, "product id invalid")
		return
	}
	if err := h.WishlistService.Remove(getUserID(c), uint(productID)); err != nil {
		response.Error(c, response.CodeInternal, "wishlist operation failed")
		return
	}
	response.Success(c, nil)
}

// MoveWishlistItemToCart 把心愿单商品移入购物车
func (h *Handler) MoveWishlistItemToCart(c *gin.Context) {
	productID, err := strconv.ParseUint(c.Param("product_id"), 10, 32)
	if err != nil || productID == 0 {
		response.BadRequest(c, "product id invalid")
		return
	}
	var req moveToCartRequest
	if err := c.ShouldBindJSON(&req); err != nil && c.Request.ContentLength > 0 {
		response.BadRequest(c, "request body invalid")
		return
	}
	item, err := h.WishlistService.MoveToCart(getUserID(c), uint(productID), req.Variation)
	if err != nil {
		respondCartError(c, err)
		return
	}
	response.Success(c, item)
}
