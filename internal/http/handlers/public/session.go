package public

import (
	"github.com/hayuwidyas/commerce-api/internal/http/response"
	"github.com/hayuwidyas/commerce-api/internal/logger"

	"github.com/gin-gonic/gin"
)

// ClaimSession 登录后认领游客数据：把游客购物车与心愿单迁给当前用户。
// 可重复调用，游客侧已空时是空操作
func (h *Handler) ClaimSession(c *gin.Context) {
	userID := getUserID(c)
	if userID == nil {
		response.Unauthorized(c, "login required")
		return
	}

	cartMigrated, err := h.CartService.MigrateGuestToUser(*userID)
	if err != nil {
		logger.Errorw("session_claim_cart_failed", "user_id", *userID, "error", err)
		response.Error(c, response.CodeInternal, "cart migration failed")
		return
	}
	wishlistMigrated, err := h.WishlistService.MigrateGuestToUser(*userID)
	if err != nil {
		logger.Errorw("session_claim_wishlist_failed", "user_id", *userID, "error", err)
		response.Error(c, response.CodeInternal, "wishlist migration failed")
		return
	}

	logger.Infow("session_claimed", "user_id", *userID,
		"cart_migrated", cartMigrated, "wishlist_migrated", wishlistMigrated)
	response.Success(c, gin.H{
		"cart_migrated":     cartMigrated,
		"wishlist_migrated": wishlistMigrated,
	})
}
