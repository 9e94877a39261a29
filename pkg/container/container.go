package container

import (
	"context"
	"fmt"
	"log"
	"time"

	"storefront-backend/internal/config"
	infraCache "storefront-backend/internal/infrastructure/cache"
	"storefront-backend/internal/infrastructure/commerce"
	"storefront-backend/internal/infrastructure/database"
	"storefront-backend/internal/infrastructure/queue"
	"storefront-backend/pkg/cache"
	"storefront-backend/pkg/jwt"

	addressGateway "storefront-backend/internal/domains/address/gateway"
	addressHandler "storefront-backend/internal/domains/address/handler"
	addressService "storefront-backend/internal/domains/address/service"

	adminHandler "storefront-backend/internal/domains/admin/handler"
	adminService "storefront-backend/internal/domains/admin/service"

	cartHandler "storefront-backend/internal/domains/cart/handler"
	cartRepo "storefront-backend/internal/domains/cart/repository"
	cartService "storefront-backend/internal/domains/cart/service"

	catalogHandler "storefront-backend/internal/domains/catalog/handler"
	catalogService "storefront-backend/internal/domains/catalog/service"

	checkoutHandler "storefront-backend/internal/domains/checkout/handler"
	checkoutRepo "storefront-backend/internal/domains/checkout/repository"
	checkoutService "storefront-backend/internal/domains/checkout/service"

	orderHandler "storefront-backend/internal/domains/order/handler"
	orderRepo "storefront-backend/internal/domains/order/repository"
	orderService "storefront-backend/internal/domains/order/service"

	paymentGateway "storefront-backend/internal/domains/payment/gateway"
	paymentMock "storefront-backend/internal/domains/payment/gateway/mock"
	paymentProxy "storefront-backend/internal/domains/payment/gateway/proxy"
	paymentHandler "storefront-backend/internal/domains/payment/handler"
	paymentService "storefront-backend/internal/domains/payment/service"

	pricingService "storefront-backend/internal/domains/pricing/service"
	promotionModel "storefront-backend/internal/domains/promotion/model"
	promotionService "storefront-backend/internal/domains/promotion/service"
	shippingModel "storefront-backend/internal/domains/shipping/model"

	"github.com/hibiken/asynq"
)

// pixWatcherRetention keeps finished watchers readable for late status polls
const pixWatcherRetention = 10 * time.Minute

// ========================================
// CONTAINER STRUCT
// ========================================

// Container is the root of the dependency graph
type Container struct {
	// ========================================
	// INFRASTRUCTURE LAYER
	// ========================================
	Config      *config.Config
	DB          *database.PostgresDB // nil when Postgres is unreachable
	Redis       *infraCache.RedisClient
	Cache       cache.Cache
	AsynqClient *asynq.Client
	JWTManager  *jwt.Manager
	Commerce    *commerce.Client
	Gateway     paymentGateway.Gateway

	// baseCtx outlives requests; PIX watchers derive from it
	baseCtx    context.Context
	cancelBase context.CancelFunc

	// ========================================
	// REPOSITORY LAYER
	// ========================================
	CartRepo     cartRepo.RepositoryInterface
	CheckoutRepo checkoutRepo.RepositoryInterface
	SnapshotRepo orderRepo.SnapshotRepositoryInterface
	OrderRepo    orderRepo.OrderRepositoryInterface // nil without Postgres

	// ========================================
	// SERVICE LAYER
	// ========================================
	CartService     *cartService.CartService
	CouponService   *promotionService.CouponService
	Calculator      *pricingService.Calculator
	CheckoutService *checkoutService.CheckoutService
	LookupService   *addressService.LookupService
	OrderService    *orderService.OrderService
	PixWatchers     *paymentService.Registry
	PaymentService  *paymentService.PaymentService
	CatalogService  *catalogService.CatalogService
	AdminService    *adminService.AdminService

	// ========================================
	// HANDLER LAYER
	// ========================================
	CartHandler     *cartHandler.Handler
	CheckoutHandler *checkoutHandler.Handler
	AddressHandler  *addressHandler.Handler
	PaymentHandler  *paymentHandler.Handler
	OrderHandler    *orderHandler.Handler
	CatalogHandler  *catalogHandler.Handler
	AdminHandler    *adminHandler.Handler
}

// ========================================
// CONSTRUCTOR: BUILD CONTAINER
// ========================================

// NewContainer builds the dependency graph in order:
// config → infrastructure → repositories → services → handlers
func NewContainer() (*Container, error) {
	log.Println("🔧 Initializing DI Container...")

	c := &Container{}

	// ========================================
	// STEP 1: LOAD CONFIGURATION
	// ========================================
	log.Println("📋 Loading configuration...")

	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	c.Config = cfg
	log.Printf("✅ Config loaded (Environment: %s)", cfg.App.Environment)

	// ========================================
	// STEP 2: INITIALIZE REDIS
	// ========================================
	// Sessions, carts and checkout state live here: Redis is required
	log.Println("🔴 Connecting to Redis...")

	c.Redis = infraCache.NewRedisClient(cfg.Redis.Host, cfg.Redis.Password, cfg.Redis.DB)
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := c.Redis.Connect(ctx); err != nil {
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}
	c.Cache = infraCache.NewRedisCache(c.Redis.Client)
	log.Println("✅ Redis connected")

	// ========================================
	// STEP 3: INITIALIZE DATABASE (OPTIONAL)
	// ========================================
	// Only the admin dashboard needs Postgres; checkout keeps working without it
	log.Println("🗄️  Connecting to PostgreSQL...")

	if err := c.initDatabase(); err != nil {
		log.Printf("⚠️  PostgreSQL unavailable, admin reporting disabled: %v", err)
	} else {
		log.Println("✅ Database connected")
	}

	// ========================================
	// STEP 4: EXTERNAL CLIENTS
	// ========================================
	c.AsynqClient = queue.NewClient(cfg.Redis.Host, cfg.Redis.Password, cfg.Redis.DB)
	c.JWTManager = jwt.NewManager(cfg.JWT.Secret, time.Duration(cfg.JWT.AccessTokenExpiry)*time.Minute)
	c.Commerce = commerce.NewClient(commerce.Config{
		StorefrontURL:   cfg.Commerce.StorefrontURL,
		StorefrontToken: cfg.Commerce.StorefrontToken,
		OrderProxyURL:   cfg.Commerce.OrderProxyURL,
		Timeout:         cfg.Commerce.Timeout,
	})

	if cfg.Payment.UseMockGateway {
		log.Println("⚠️  Using mock payment gateway")
		c.Gateway = paymentMock.NewMockGateway()
	} else {
		c.Gateway = paymentProxy.NewClient(paymentProxy.Config{
			BaseURL:         cfg.Payment.ProxyURL,
			Timeout:         cfg.Payment.Timeout,
			BreakerFailures: cfg.Payment.BreakerFailures,
			BreakerTimeout:  cfg.Payment.BreakerTimeout,
		})
	}

	c.baseCtx, c.cancelBase = context.WithCancel(context.Background())

	// ========================================
	// STEP 5: INITIALIZE REPOSITORIES
	// ========================================
	log.Println("📦 Initializing repositories...")
	c.initRepositories()
	log.Println("✅ Repositories initialized")

	// ========================================
	// STEP 6: INITIALIZE SERVICES
	// ========================================
	log.Println("⚙️  Initializing services...")
	if err := c.initServices(); err != nil {
		return nil, fmt.Errorf("failed to init services: %w", err)
	}
	log.Println("✅ Services initialized")

	// ========================================
	// STEP 7: INITIALIZE HANDLERS
	// ========================================
	log.Println("🎯 Initializing handlers...")
	c.initHandlers()
	log.Println("✅ Handlers initialized")

	log.Println("🎉 DI Container initialized successfully")
	return c, nil
}

// ========================================
// PRIVATE INITIALIZATION METHODS
// ========================================

func (c *Container) initDatabase() error {
	dbConfig, err := config.LoadDatabaseConfig()
	if err != nil {
		return fmt.Errorf("failed to load database config: %w", err)
	}

	db := database.NewPostgresDB(dbConfig)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := db.Connect(ctx); err != nil {
		return err
	}
	if err := db.HealthCheck(ctx); err != nil {
		db.Close()
		return err
	}

	repo := orderRepo.NewPostgresRepository(db.Pool)
	if err := repo.EnsureSchema(ctx); err != nil {
		db.Close()
		return fmt.Errorf("failed to prepare order schema: %w", err)
	}

	c.DB = db
	c.OrderRepo = repo
	return nil
}

func (c *Container) initRepositories() {
	sessionTTL := c.Config.Session.TTL

	c.CartRepo = cartRepo.NewRedisRepository(c.Cache, sessionTTL)
	c.CheckoutRepo = checkoutRepo.NewRedisRepository(c.Cache, sessionTTL)
	c.SnapshotRepo = orderRepo.NewRedisSnapshotRepository(c.Cache, c.Config.Checkout.OrderSnapshotTTL)
}

func (c *Container) initServices() error {
	cfg := c.Config

	// ----------------------------------------
	// CART, COUPONS, PRICING
	// ----------------------------------------
	c.CartService = cartService.NewCartService(c.CartRepo, c.Commerce)

	policy, err := promotionModel.ParsePolicy(cfg.Checkout.CouponPolicy)
	if err != nil {
		return err
	}
	c.CouponService = promotionService.NewCouponService(promotionService.NewRegistryFromConfig(cfg.Checkout), policy)

	shipping := shippingModel.NewPolicy(cfg.Checkout.FreeShippingThreshold)
	c.Calculator = pricingService.NewCalculator(shipping)

	// ----------------------------------------
	// CHECKOUT + ADDRESS
	// ----------------------------------------
	c.CheckoutService = checkoutService.NewCheckoutService(
		c.CheckoutRepo,
		c.CartService,
		c.CouponService,
		c.Calculator,
		shipping,
	)

	c.LookupService = addressService.NewLookupService(
		addressGateway.NewViaCEPClient(cfg.PostalLookup.BaseURL, cfg.PostalLookup.Timeout),
		c.Cache,
		cfg.PostalLookup.CacheTTL,
		cfg.Session.TTL,
	)

	// ----------------------------------------
	// ORDER
	// ----------------------------------------
	c.OrderService = orderService.NewOrderService(
		c.SnapshotRepo,
		c.OrderRepo,
		c.CheckoutService,
		c.CartService,
		c.AsynqClient,
	)

	// ----------------------------------------
	// PAYMENT
	// ----------------------------------------
	c.PixWatchers = paymentService.NewRegistry(c.baseCtx, pixWatcherRetention)
	c.PaymentService = paymentService.NewPaymentService(
		c.Gateway,
		c.CheckoutService,
		c.OrderService,
		c.PixWatchers,
		paymentService.Config{
			PollInterval: cfg.Payment.PixPollInterval,
			PixExpiry:    cfg.Payment.PixExpiry,
		},
	)

	// ----------------------------------------
	// CATALOG + ADMIN
	// ----------------------------------------
	c.CatalogService = catalogService.NewCatalogService(c.Commerce, c.Cache, cfg.Commerce.CatalogCacheTTL)
	c.AdminService = adminService.NewAdminService(adminService.Credentials{
		Email:        cfg.Admin.Email,
		PasswordHash: cfg.Admin.PasswordHash,
	}, c.JWTManager)

	return nil
}

func (c *Container) initHandlers() {
	c.CartHandler = cartHandler.NewHandler(c.CartService)
	c.CheckoutHandler = checkoutHandler.NewHandler(c.CheckoutService)
	c.AddressHandler = addressHandler.NewHandler(c.LookupService)
	c.PaymentHandler = paymentHandler.NewHandler(c.PaymentService)
	c.OrderHandler = orderHandler.NewHandler(c.OrderService)
	c.CatalogHandler = catalogHandler.NewHandler(c.CatalogService)
	c.AdminHandler = adminHandler.NewHandler(c.AdminService)
}

// ========================================
// CLEANUP
// ========================================

// Cleanup stops PIX watchers and closes connections; call during graceful shutdown
func (c *Container) Cleanup() {
	log.Println("🧹 Cleaning up container resources...")

	if c.PixWatchers != nil {
		c.PixWatchers.Shutdown()
		log.Println("✅ PIX watchers stopped")
	}
	if c.cancelBase != nil {
		c.cancelBase()
	}

	if c.AsynqClient != nil {
		if err := c.AsynqClient.Close(); err != nil {
			log.Printf("⚠️  Failed to close task client: %v", err)
		}
	}

	if c.DB != nil {
		c.DB.Close()
		log.Println("✅ Database connections closed")
	}

	if c.Redis != nil {
		if err := c.Redis.Close(); err != nil {
			log.Printf("⚠️  Failed to close Redis: %v", err)
		} else {
			log.Println("✅ Redis connections closed")
		}
	}

	log.Println("✅ Container cleanup completed")
}
