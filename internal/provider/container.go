package provider

import (
	"github.com/hayuwidyas/commerce-api/internal/cache"
	"github.com/hayuwidyas/commerce-api/internal/config"
	"github.com/hayuwidyas/commerce-api/internal/logger"
	"github.com/hayuwidyas/commerce-api/internal/models"
	"github.com/hayuwidyas/commerce-api/internal/queue"
	"github.com/hayuwidyas/commerce-api/internal/repository"
	"github.com/hayuwidyas/commerce-api/internal/service"
	"github.com/hayuwidyas/commerce-api/internal/woocommerce"
)

// Container 依赖注入容器
type Container struct {
	Config      *config.Config
	QueueClient *queue.Client

	// Repositories
	ProductCacheRepo repository.ProductCacheRepository
	CartRepo         repository.CartRepository
	WishlistRepo     repository.WishlistRepository

	// Remote
	WooClient *woocommerce.Client

	// Services
	CatalogService  *service.CatalogService
	CartService     *service.CartService
	WishlistService *service.WishlistService
}

// NewContainer 初始化容器
func NewContainer(cfg *config.Config) *Container {
	if err := cache.InitRedis(&cfg.Redis); err != nil {
		logger.Warnw("provider_init_redis_failed", "error", err)
	}

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
	}

	c.initRepositories()
	c.initRemote()
	c.initServices()

	return c
}

func (c *Container) initRepositories() {
	db := models.DB
	c.ProductCacheRepo = repository.NewProductCacheRepository(db)
	c.CartRepo = repository.NewCartRepository(db)
	c.WishlistRepo = repository.NewWishlistRepository(db)
}

func (c *Container) initRemote() {
	client, err := woocommerce.NewClient(woocommerce.Config{
		BaseURL:        c.Config.Woo.BaseURL,
		ConsumerKey:    c.Config.Woo.ConsumerKey,
		ConsumerSecret: c.Config.Woo.ConsumerSecret,
		Timeout:        c.Config.Woo.Timeout(),
	})
	if err != nil {
		// 远端不可配置时服务仍可启动，查询走缓存与兜底数据
		logger.Errorw("provider_init_woo_client_failed", "error", err)
		return
	}
	c.WooClient = client
}

func (c *Container) initServices() {
	var remote service.RemoteCatalog
	if c.WooClient != nil {
		remote = c.WooClient
	} else {
		remote = unreachableRemote{}
	}
	c.CatalogService = service.NewCatalogService(
		c.ProductCacheRepo,
		remote,
		c.Config.Catalog.EvictionWindow(),
		c.Config.Catalog.DefaultPageSize,
		c.Config.Catalog.CategoryCacheTTL(),
	)
	c.CartService = service.NewCartService(c.CartRepo, c.ProductCacheRepo)
	c.WishlistService = service.NewWishlistService(c.WishlistRepo, c.ProductCacheRepo, c.CartService)
}
