package router

import (
	"fmt"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/rarebeats-player/internal/config"
	publichandlers "github.com/rarebeats-player/internal/http/handlers/public"
	"github.com/rarebeats-player/internal/http/response"
	"github.com/rarebeats-player/internal/logger"
	"github.com/rarebeats-player/internal/provider"

	"github.com/gin-gonic/gin"
)

// SetupRouter 初始化路由
func SetupRouter(cfg *config.Config, c *provider.Container) *gin.Engine {
	log := logger.L
	if log == nil {
		log = logger.Init(cfg.Server.Mode, cfg.Log.ToLoggerOptions())
	}
	r := gin.New()

	handler := publichandlers.New(c)
	redisPrefix := strings.TrimSpace(cfg.Redis.Prefix)
	if redisPrefix == "" {
		redisPrefix = "rb"
	}
	addToCartRule := RateLimitRule{
		Prefix:        fmt.Sprintf("%s:rate:add_to_cart", redisPrefix),
		WindowSeconds: cfg.RateLimit.AddToCart.WindowSeconds,
		MaxRequests:   cfg.RateLimit.AddToCart.MaxRequests,
	}
	checkoutRule := RateLimitRule{
		Prefix:        fmt.Sprintf("%s:rate:checkout", redisPrefix),
		WindowSeconds: cfg.RateLimit.Checkout.WindowSeconds,
		MaxRequests:   cfg.RateLimit.Checkout.MaxRequests,
	}

	// 中间件
	r.Use(gin.Recovery())
	r.Use(RequestIDMiddleware())
	r.Use(LoggerMiddleware(log))
	r.Use(CORSMiddleware(cfg.CORS))

	// 播放器构建产物
	assetPrefix := "/" + strings.Trim(cfg.Storefront.AssetURLPrefix, "/")
	r.Static(assetPrefix+"/static", filepath.Join(cfg.Storefront.AssetDir, "static"))

	// 嵌入页
	r.GET("/embed", handler.GetEmbed)
	r.GET("/embed/page", handler.GetEmbedPage)

	// REST 命名空间
	api := r.Group(config.NormalizeNamespace(cfg.Storefront.Namespace))
	api.Use(NonceMiddleware(c.NonceService, cfg.Nonce))
	api.Use(AccessMiddleware(c.AuthzService))
	{
		api.GET("", handler.GetIndex)
		api.GET("/products", handler.GetProducts)
		api.GET("/products/:id", handler.GetProduct)
		api.GET("/filters", handler.GetFilters)
		api.GET("/cart", handler.GetCart)
		api.POST("/cart", RateLimitMiddleware(c.RedisClient, addToCartRule, KeyByIP), handler.AddToCart)
		api.DELETE("/cart", handler.ClearCart)
		api.DELETE("/cart/:id", handler.RemoveCartItem)
		api.POST("/checkout", RateLimitMiddleware(c.RedisClient, checkoutRule, KeyByIP), handler.CreateCheckout)
	}

	// 健康检查
	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	r.NoRoute(func(c *gin.Context) {
		response.Error(c, http.StatusNotFound, response.CodeNoRoute, "No route was found matching the URL and request method.")
	})

	return r
}
