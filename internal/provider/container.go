package provider

import (
	"net/http"
	"strings"
	"time"

	"github.com/rarebeats-player/internal/authz"
	"github.com/rarebeats-player/internal/cache"
	"github.com/rarebeats-player/internal/config"
	"github.com/rarebeats-player/internal/constants"
	"github.com/rarebeats-player/internal/embed"
	"github.com/rarebeats-player/internal/logger"
	"github.com/rarebeats-player/internal/models"
	"github.com/rarebeats-player/internal/platform/woocommerce"
	"github.com/rarebeats-player/internal/queue"
	"github.com/rarebeats-player/internal/repository"
	"github.com/rarebeats-player/internal/service"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// Container 依赖容器
type Container struct {
	Config      *config.Config
	QueueClient *queue.Client
	RedisClient *redis.Client

	// Repositories
	ProductStore   repository.ProductStore
	CartRepo       repository.CartRepository
	NativeCartRepo repository.NativeCartRepository

	// Services
	NativeCart      service.NativeCart
	CatalogService  *service.CatalogService
	CartService     *service.CartService
	CheckoutService *service.CheckoutService
	NonceService    *service.NonceService
	AuthzService    *authz.Service
	EmbedRenderer   *embed.Renderer
}

// NewContainer 初始化容器
func NewContainer(cfg *config.Config) *Container {
	// 初始化缓存（限流）
	if err := cache.InitRedis(&cfg.Redis); err != nil {
		logger.Warnw("provider_init_redis_failed", "error", err)
	}

	// 初始化队列客户端
	var queueClient *queue.Client
	if cfg.Queue.Enabled {
		qc, err := queue.NewClient(&cfg.Queue)
		if err != nil {
			logger.Errorw("provider_init_queue_client_failed", "error", err)
		} else {
			queueClient = qc
		}
	}

	c := &Container{
		Config:      cfg,
		QueueClient: queueClient,
		RedisClient: cache.Client(),
	}

	// 1. 初始化 Repositories
	c.initRepositories(models.DB)

	// 2. 初始化 Services
	c.initServices(models.DB)

	return c
}

func (c *Container) initRepositories(db *gorm.DB) {
	c.CartRepo = repository.NewCartRepository(db)
	c.NativeCartRepo = repository.NewNativeCartRepository(db)

	switch strings.ToLower(strings.TrimSpace(c.Config.Catalog.Source)) {
	case constants.CatalogSourceWooCommerce:
		c.ProductStore = c.newWooCommerceClient()
	default:
		c.ProductStore = repository.NewProductStore(db)
	}
}

func (c *Container) initServices(db *gorm.DB) {
	authzService, err := authz.NewService(db, c.Config.Storefront.Namespace)
	if err != nil {
		logger.Errorw("provider_init_authz_failed", "error", err)
		panic(err)
	}
	c.AuthzService = authzService
	if err := c.AuthzService.BootstrapBuiltinRoles(); err != nil {
		logger.Errorw("provider_bootstrap_builtin_roles_failed", "error", err)
		panic(err)
	}

	switch strings.ToLower(strings.TrimSpace(c.Config.Checkout.NativeCart)) {
	case constants.NativeCartLink:
		c.NativeCart = woocommerce.NewLinkCart(c.Config.CartURL())
	default:
		c.NativeCart = service.NewDatabaseNativeCart(c.NativeCartRepo, c.Config.CartURL())
	}

	c.CatalogService = service.NewCatalogService(c.ProductStore, service.CatalogOptions{
		DefaultPerPage: c.Config.Catalog.DefaultPerPage,
		MaxPerPage:     c.Config.Catalog.MaxPerPage,
	})
	c.CartService = service.NewCartService(c.CartRepo)
	c.CheckoutService = service.NewCheckoutService(c.CartRepo, c.NativeCart, c.QueueClient)
	c.NonceService = service.NewNonceService(c.Config.Nonce)
	c.EmbedRenderer = c.newEmbedRenderer()
}

func (c *Container) newWooCommerceClient() *woocommerce.Client {
	timeout := c.Config.WooCommerce.TimeoutSeconds
	if timeout <= 0 {
		timeout = 30
	}
	return woocommerce.NewClient(
		&http.Client{Timeout: time.Duration(timeout) * time.Second},
		c.Config.WooCommerce.BaseURL,
		c.Config.WooCommerce.ConsumerKey,
		c.Config.WooCommerce.ConsumerSecret,
	)
}

func (c *Container) newEmbedRenderer() *embed.Renderer {
	assets, err := embed.Locate(c.Config.Storefront.AssetDir)
	if err != nil {
		logger.Warnw("provider_locate_player_assets_failed", "dir", c.Config.Storefront.AssetDir, "error", err)
	}
	if assets.Empty() {
		logger.Warnw("provider_player_bundle_missing", "dir", c.Config.Storefront.AssetDir)
	}
	return embed.NewRenderer(embed.Options{
		APIURL:         c.Config.Storefront.APIURL(),
		AssetURLPrefix: c.Config.Storefront.AssetURLPrefix,
		DefaultHeight:  c.Config.Storefront.EmbedHeight,
		MountRetry:     time.Duration(c.Config.Storefront.MountRetryMS) * time.Millisecond,
	}, assets)
}
