package public

import (
	"errors"

	"github.com/hayuwidyas/commerce-api/internal/http/response"
	"github.com/hayuwidyas/commerce-api/internal/models"
	"github.com/hayuwidyas/commerce-api/internal/service"

	"github.com/gin-gonic/gin"
)

type addToCartRequest struct {
	ProductID uint                `json:"product_id" binding:"required"`
	Variation models.VariationMap `json:"variation"`
	Quantity  int                 `json:"quantity" binding:"required"`
}

type updateQuantityRequest struct {
	Quantity int `json:"quantity"`
}

// GetCart 获取购物车汇总
func (h *Handler) GetCart(c *gin.Context) {
	summary, err := h.CartService.Summary(getUserID(c))
	if err != nil {
		respondCartError(c, err)
		return
	}
	response.Success(c, summary)
}

// AddCartItem 加入购物车
func (h *Handler) AddCartItem(c *gin.Context) {
	var req addToCartRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "request body invalid")
		return
	}
	item, err := h.CartService.AddToCart(getUserID(c), service.AddToCartInput{
		ProductID: req.ProductID,
		Variation: req.Variation,
		Quantity:  req.Quantity,
	})
	if err != nil {
		respondCartError(c, err)
		return
	}
	response.Success(c, item)
}

// UpdateCartItem 修改购物车项数量。数量为 0 及以下等价于删除
func (h *Handler) UpdateCartItem(c *gin.Context) {
	var req updateQuantityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "request body invalid")
		return
	}
	if err := h.CartService.UpdateQuantity(getUserID(c), c.Param("id"), req.Quantity); err != nil {
		respondCartError(c, err)
		return
	}
	response.Success(c, nil)
}

// DeleteCartItem 删除购物车项
func (h *Handler) DeleteCartItem(c *gin.Context) {
	if err := h.CartService.RemoveItem(getUserID(c), c.Param("id")); err != nil {
		respondCartError(c, err)
		return
	}
	response.Success(c, nil)
}

// ClearCart 清空购物车
func (h *Handler) ClearCart(c *gin.Context) {
	if err := h.CartService.Clear(getUserID(c)); err != nil {
		respondCartError(c, err)
		return
	}
	response.Success(c, nil)
}

func respondCartError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrNotFound):
		response.NotFound(c, "cart item not found")
	case errors.Is(err, service.ErrItemNotOwned):
		response.Error(c, response.CodeForbidden, "cart item not owned")
	case errors.Is(err, service.ErrInvalidProduct),
		errors.Is(err, service.ErrInvalidQuantity),
		errors.Is(err, service.ErrProductNotListed):
		response.BadRequest(c, err.Error())
	default:
		response.Error(c, response.CodeInternal, "cart operation failed")
	}
}
