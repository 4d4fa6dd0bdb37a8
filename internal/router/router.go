// internal/router/router.go
package router

import (
	"net/http"
	"os"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/webstore/backend/internal/config"
	"github.com/webstore/backend/internal/handlers"
	"github.com/webstore/backend/internal/middleware"
	"github.com/webstore/backend/internal/services"
	"github.com/webstore/backend/internal/store"
	"github.com/webstore/backend/internal/utils"
)

// Initialize wires stores, services and handlers onto a gin engine.
func Initialize(db *gorm.DB, cfg *config.Config) *gin.Engine {
	// Initialize stores
	productStore := store.NewGormProductStore(db)
	userStore := store.NewGormUserStore(db)
	commentStore := store.NewGormCommentStore(db)

	return initializeWithStores(productStore, userStore, commentStore, cfg)
}

// InitializeInMemory wires the same routes against in-memory stores,
// used for local runs without Postgres and by the handler tests.
func InitializeInMemory(cfg *config.Config) *gin.Engine {
	return initializeWithStores(
		store.NewMemoryProductStore(),
		store.NewMemoryUserStore(),
		store.NewMemoryCommentStore(),
		cfg,
	)
}

func initializeWithStores(products store.ProductStore, users store.UserStore, comments store.CommentStore, cfg *config.Config) *gin.Engine {
	jwtManager := utils.NewJWTManager(cfg.JWT.SecretKey, cfg.JWT.AccessTokenTTL)

	// Initialize services
	authService := services.NewAuthService(users, jwtManager)
	catalogService := services.NewCatalogService(products)
	cartService := services.NewCartService(users, products, cfg.Cart.LegacySoftFail)
	aggregator := services.NewRatingAggregator(products, comments)
	commentService := services.NewCommentService(comments, products, aggregator)

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(authService)
	productHandler := handlers.NewProductHandler(catalogService)
	cartHandler := handlers.NewCartHandler(cartService)
	commentHandler := handlers.NewCommentHandler(commentService, authService)

	// Initialize Gin router
	r := gin.New()

	// Global middleware
	r.Use(gin.Recovery())
	r.Use(middleware.CORS())
	if cfg.Server.RateLimitEnabled {
		r.Use(middleware.GeneralRateLimit())
	}
	r.Use(middleware.RequestLogger())

	// Health check
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "healthy",
			"version": "1.0.0",
		})
	})

	// Built frontend, when present
	if cfg.Server.StaticDir != "" {
		if _, err := os.Stat(cfg.Server.StaticDir); err == nil {
			r.Static("/app", cfg.Server.StaticDir)
		}
	}

	// API v1 routes
	v1 := r.Group("/v1")
	{
		// Authentication routes
		auth := v1.Group("/auth")
		if cfg.Server.RateLimitEnabled {
			auth.Use(middleware.AuthRateLimit())
		}
		{
			auth.POST("/register", authHandler.Register)
			auth.POST("/login", authHandler.Login)
			auth.POST("/change-password", middleware.AuthRequired(jwtManager), authHandler.ChangePassword)
			auth.GET("/me", middleware.AuthRequired(jwtManager), authHandler.Me)
		}

		// Catalog routes
		products := v1.Group("/products")
		{
			products.GET("", productHandler.GetProducts)
			products.GET("/categories", productHandler.GetCategories)
			products.GET("/count", productHandler.GetProductCount)
			products.GET("/:name", productHandler.GetProduct)

			// Admin routes
			admin := products.Group("")
			admin.Use(middleware.AuthRequired(jwtManager), middleware.AdminRequired())
			{
				admin.POST("", productHandler.CreateProduct)
				admin.POST("/:name/increase", productHandler.IncreaseQuantity)
				admin.POST("/:name/decrease", productHandler.DecreaseQuantity)
			}
		}

		// Comment routes
		comments := v1.Group("/comments")
		{
			comments.GET("", commentHandler.GetComments)

			protected := comments.Group("")
			protected.Use(middleware.AuthRequired(jwtManager))
			{
				protected.POST("", commentHandler.CreateComment)
				protected.DELETE("/:id", commentHandler.DeleteComment)
			}
		}

		// Cart routes
		cart := v1.Group("/cart")
		cart.Use(middleware.AuthRequired(jwtManager))
		{
			cart.POST("/items", cartHandler.AddToCart)
			cart.DELETE("/items/:productName", cartHandler.RemoveFromCart)
			cart.POST("/checkout", cartHandler.Checkout)
			cart.GET("/total", cartHandler.CartTotal)
		}
	}

	return r
}
