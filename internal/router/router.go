package router

import (
	"github.com/hayuwidyas/commerce-api/internal/config"
	adminhandlers "github.com/hayuwidyas/commerce-api/internal/http/handlers/admin"
	publichandlers "github.com/hayuwidyas/commerce-api/internal/http/handlers/public"
	"github.com/hayuwidyas/commerce-api/internal/logger"
	"github.com/hayuwidyas/commerce-api/internal/provider"

	"github.com/gin-gonic/gin"
)

// SetupRouter 初始化路由
func SetupRouter(cfg *config.Config, c *provider.Container) *gin.Engine {
	log := logger.L
	if log == nil {
		log = logger.Init(cfg.Server.Mode, cfg.Log.ToLoggerOptions())
	}
	r := gin.New()

	publicHandler := publichandlers.New(c)
	adminHandler := adminhandlers.New(c)

	r.Use(gin.Recovery())
	r.Use(RequestIDMiddleware())
	r.Use(LoggerMiddleware(log))
	r.Use(CORSMiddleware(cfg.CORS))

	apiV1 := r.Group("/api/v1")
	apiV1.Use(UserIdentityMiddleware(cfg.Auth.UserJWTSecret))
	{
		// 目录接口（游客可用）
		apiV1.GET("/products", publicHandler.GetProducts)
		apiV1.GET("/products/watch", publicHandler.WatchProducts)
		apiV1.GET("/products/:id", publicHandler.GetProduct)
		apiV1.GET("/categories", publicHandler.GetCategories)

		// 购物车（游客与用户共用，身份由 token 区分）
		apiV1.GET("/cart", publicHandler.GetCart)
		apiV1.POST("/cart/items", publicHandler.AddCartItem)
		apiV1.PUT("/cart/items/:id", publicHandler.UpdateCartItem)
		apiV1.DELETE("/cart/items/:id", publicHandler.DeleteCartItem)
		apiV1.DELETE("/cart", publicHandler.ClearCart)

		// 心愿单
		apiV1.GET("/wishlist", publicHandler.GetWishlist)
		apiV1.POST("/wishlist/toggle", publicHandler.ToggleWishlist)
		apiV1.DELETE("/wishlist/:product_id", publicHandler.RemoveWishlistItem)
		apiV1.POST("/wishlist/:product_id/move-to-cart", publicHandler.MoveWishlistItemToCart)

		// 登录后认领游客数据
		session := apiV1.Group("/session")
		session.Use(RequireUserMiddleware())
		{
			session.POST("/claim", publicHandler.ClaimSession)
		}

		// 管理端缓存运维
		admin := apiV1.Group("/admin")
		{
			admin.GET("/cache/stats", adminHandler.GetCacheStats)
			admin.POST("/cache/evict", adminHandler.EvictCache)
			admin.POST("/cache/refresh", adminHandler.RefreshCache)
			admin.DELETE("/cache", adminHandler.ClearCache)
		}
	}

	return r
}
