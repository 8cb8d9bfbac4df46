// internal/router/router.go
package router

import (
	"context"
	"net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/web-prodavnica/backend/internal/config"
	"github.com/web-prodavnica/backend/internal/database"
	"github.com/web-prodavnica/backend/internal/handlers"
	"github.com/web-prodavnica/backend/internal/metrics"
	"github.com/web-prodavnica/backend/internal/middleware"
	"github.com/web-prodavnica/backend/internal/orders"
	"github.com/web-prodavnica/backend/internal/repository"
	"github.com/web-prodavnica/backend/internal/repository/memory"
	"github.com/web-prodavnica/backend/internal/services"
)

// Backend is the persistence the API is served from.
type Backend struct {
	Products   repository.ProductRepository
	Carts      repository.CartRepository
	Favorites  repository.FavoriteRepository
	Orders     repository.OrderRepository
	Users      repository.UserRepository
	OrderStore orders.Store
	Ping       func() error
}

func GormBackend(db *gorm.DB) Backend {
	return Backend{
		Products:   repository.NewProductRepository(db),
		Carts:      repository.NewCartRepository(db),
		Favorites:  repository.NewFavoriteRepository(db),
		Orders:     repository.NewOrderRepository(db),
		Users:      repository.NewUserRepository(db),
		OrderStore: repository.NewOrderStore(db),
		Ping:       func() error { return database.Ping(db) },
	}
}

func MemoryBackend(store *memory.Store) Backend {
	return Backend{
		Products:   store.Products(),
		Carts:      store.Carts(),
		Favorites:  store.Favorites(),
		Orders:     store.Orders(),
		Users:      store.Users(),
		OrderStore: store,
	}
}

// Services bundles everything the handlers are built from.
type Services struct {
	Notification *services.NotificationService
	Product      *services.ProductService
	Cart         *services.CartService
	Favorite     *services.FavoriteService
	Order        *services.OrderService
	Payment      *services.PaymentService
	Auth         *services.AuthService
	User         *services.UserService
	Admin        *services.AdminService
}

// NewServices wires the order placer with its post-commit hooks and every
// service on top of b.
func NewServices(b Backend, cfg *config.Config, m *metrics.Metrics, notification *services.NotificationService) *Services {
	if notification == nil {
		notification = services.NewNotificationService(cfg)
	}

	placer := orders.NewPlacer(b.OrderStore,
		orders.WithCarts(b.Carts),
		orders.WithHooks(orders.ClearCartHook(b.Carts), orders.NotifyHook(notification)),
		orders.WithDefaultStatus(cfg.Orders.DefaultStatus),
		orders.WithHookTimeout(cfg.Orders.HookTimeout),
	)

	cartService := services.NewCartService(b.Carts, b.Products)
	orderService := services.NewOrderService(placer, b.Orders, b.Users, m)

	return &Services{
		Notification: notification,
		Product:      services.NewProductService(b.Products),
		Cart:         cartService,
		Favorite:     services.NewFavoriteService(b.Favorites, b.Products),
		Order:        orderService,
		Payment:      services.NewPaymentService(cfg, cartService, orderService),
		Auth:         services.NewAuthService(b.Users, cfg, notification),
		User:         services.NewUserService(b.Users, b.Orders),
		Admin:        services.NewAdminService(b.Users, b.Orders),
	}
}

// Initialize builds the gin engine. The rate limiter cleanup goroutines
// stop when ctx is done.
func Initialize(ctx context.Context, b Backend, svc *Services, cfg *config.Config, m *metrics.Metrics) *gin.Engine {
	// Initialize handlers
	authHandler := handlers.NewAuthHandler(svc.Auth)
	userHandler := handlers.NewUserHandler(svc.User)
	productHandler := handlers.NewProductHandler(svc.Product)
	cartHandler := handlers.NewCartHandler(svc.Cart)
	favoriteHandler := handlers.NewFavoriteHandler(svc.Favorite)
	orderHandler := handlers.NewOrderHandler(svc.Order)
	paymentHandler := handlers.NewPaymentHandler(svc.Payment)
	adminHandler := handlers.NewAdminHandler(svc.Admin)

	generalLimit := middleware.PerMinute(cfg.RateLimit.RequestsPerMinute)
	strictLimit := middleware.PerMinute(cfg.RateLimit.CheckoutPerMinute)
	go generalLimit.Cleanup(ctx)
	go strictLimit.Cleanup(ctx)

	// Initialize Gin router
	r := gin.New()

	// Global middleware
	r.Use(middleware.RequestID())
	r.Use(middleware.Recovery())
	r.Use(middleware.RequestLogger())
	r.Use(m.Middleware())
	r.Use(cors.New(corsConfig(cfg)))
	r.Use(middleware.I18nMiddleware(cfg.I18n.DefaultLocale))

	// Health check
	r.GET("/health", func(c *gin.Context) {
		status, code := "healthy", http.StatusOK
		if b.Ping != nil {
			if err := b.Ping(); err != nil {
				status, code = "unhealthy", http.StatusServiceUnavailable
			}
		}
		c.JSON(code, gin.H{
			"status":  status,
			"version": "1.0.0",
		})
	})
	r.GET("/metrics", gin.WrapH(m.Handler()))

	// API v1 routes
	v1 := r.Group("/v1")
	v1.Use(generalLimit.Middleware())
	{
		// Authentication routes
		auth := v1.Group("/auth")
		{
			auth.POST("/register", strictLimit.Middleware(), authHandler.Register)
			auth.POST("/login", strictLimit.Middleware(), authHandler.Login)
			auth.POST("/refresh", authHandler.RefreshToken)
			auth.GET("/me", middleware.AuthRequired(), authHandler.GetCurrentUser)
		}

		// User routes
		users := v1.Group("/users")
		users.Use(middleware.AuthRequired())
		{
			users.PUT("/profile", userHandler.UpdateProfile)
			users.DELETE("/account", userHandler.DeleteAccount)
			users.GET("/delivery", userHandler.GetDelivery)
			users.PUT("/delivery", userHandler.SaveDelivery)
			users.DELETE("/delivery", userHandler.DeleteDelivery)
		}

		// Product routes
		products := v1.Group("/products")
		{
			products.GET("", middleware.OptionalAuth(), productHandler.GetProducts)
			products.GET("/:id", middleware.OptionalAuth(), productHandler.GetProduct)
		}

		// Cart routes
		cart := v1.Group("/cart")
		cart.Use(middleware.AuthRequired())
		{
			cart.GET("", cartHandler.GetCart)
			cart.POST("", cartHandler.AddItem)
			cart.DELETE("", cartHandler.Clear)
			cart.PUT("/:itemId", cartHandler.UpdateItem)
			cart.DELETE("/:itemId", cartHandler.RemoveItem)
		}

		// Favorite routes
		favorites := v1.Group("/favorites")
		favorites.Use(middleware.AuthRequired())
		{
			favorites.GET("", favoriteHandler.List)
			favorites.GET("/:productId", favoriteHandler.Check)
			favorites.POST("/:productId", favoriteHandler.Add)
			favorites.DELETE("/:productId", favoriteHandler.Remove)
		}

		// Order routes
		ordersGroup := v1.Group("/orders")
		ordersGroup.Use(middleware.AuthRequired())
		{
			ordersGroup.POST("", orderHandler.PlaceOrder)
			ordersGroup.GET("", orderHandler.ListMyOrders)
			ordersGroup.GET("/:id", orderHandler.GetOrder)
		}

		// Checkout routes
		checkout := v1.Group("/checkout")
		checkout.Use(middleware.AuthRequired(), strictLimit.Middleware())
		{
			checkout.POST("", paymentHandler.CreateCheckout)
			checkout.POST("/complete", paymentHandler.CompleteCheckout)
		}

		// Admin routes
		admin := v1.Group("/admin")
		admin.Use(middleware.AuthRequired(), middleware.AdminRequired())
		{
			adminProducts := admin.Group("/products")
			{
				adminProducts.GET("", productHandler.AdminGetProducts)
				adminProducts.POST("", productHandler.CreateProduct)
				adminProducts.PUT("/:id", productHandler.UpdateProduct)
				adminProducts.PUT("/:id/stock", productHandler.UpdateStock)
				adminProducts.DELETE("/:id", productHandler.DeleteProduct)
			}

			adminOrders := admin.Group("/orders")
			{
				adminOrders.GET("", orderHandler.ListOrders)
				adminOrders.POST("", orderHandler.AdminCreateOrder)
				adminOrders.PUT("/:id/status", orderHandler.UpdateStatus)
				adminOrders.DELETE("/:id", orderHandler.DeleteOrder)
			}

			adminUsers := admin.Group("/users")
			{
				adminUsers.GET("", adminHandler.GetUsers)
				adminUsers.POST("", adminHandler.CreateUser)
				adminUsers.DELETE("/:id", adminHandler.DeleteUser)
			}
		}
	}

	return r
}

func corsConfig(cfg *config.Config) cors.Config {
	corsCfg := cors.DefaultConfig()
	corsCfg.AllowOrigins = cfg.Server.AllowedOrigins
	corsCfg.AllowMethods = []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"}
	corsCfg.AllowHeaders = []string{"Origin", "Content-Type", "Accept", "Authorization", "Accept-Language", "X-Request-ID"}
	corsCfg.ExposeHeaders = []string{"Content-Length", "X-Request-ID", "X-Total-Count"}
	corsCfg.AllowCredentials = true
	if len(corsCfg.AllowOrigins) == 0 {
		corsCfg.AllowOrigins = nil
		corsCfg.AllowAllOrigins = true
		corsCfg.AllowCredentials = false
	}
	return corsCfg
}
