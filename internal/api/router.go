package api

import (
	"context"
	"net/http"
	"slices"
	"time"

	"github.com/cyberfanta/shopping-exercise/internal/domain"
	"github.com/cyberfanta/shopping-exercise/internal/middleware"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const healthTimeout = 2 * time.Second

type Services struct {
	Auth    AuthService
	Catalog CatalogService
	Carts   CartService
	Orders  OrderService
	Admin   AdminService
	Users   UserService
}

type Options struct {
	Log            *zap.Logger
	Tokens         middleware.TokenParser
	DB             Pinger
	AllowedOrigins []string
	// RateLimiter is optional; nil disables rate limiting.
	RateLimiter *middleware.RateLimiter
}

func NewRouter(services Services, opts Options) *gin.Engine {
	r := gin.New()

	r.Use(
		gin.Recovery(),
		middleware.RequestLogger(opts.Log),
		middleware.SecurityHeaders(),
		cors.New(corsConfig(opts.AllowedOrigins)),
		middleware.ErrorHandler(opts.Log),
	)
	if opts.RateLimiter != nil {
		r.Use(opts.RateLimiter.Middleware())
	}

	r.NoRoute(func(c *gin.Context) {
		fail(c, domain.ErrRouteNotFound)
	})

	r.GET("/healthz", health(opts.DB))

	authenticated := middleware.Authenticate(opts.Tokens)
	requireAdmin := middleware.RequireAdmin()
	adminOnly := func(h gin.HandlerFunc) []gin.HandlerFunc {
		return []gin.HandlerFunc{authenticated, requireAdmin, h}
	}

	apiGroup := r.Group("/api")

	auth := &authHandler{auth: services.Auth}
	authGroup := apiGroup.Group("/auth")
	{
		authGroup.POST("/register", auth.register)
		authGroup.POST("/login", auth.login)
		authGroup.POST("/forgot-password", auth.forgotPassword)
		authGroup.POST("/reset-password", auth.resetPassword)
		authGroup.GET("/me", authenticated, auth.me)
		authGroup.PUT("/profile", authenticated, auth.updateProfile)
		authGroup.POST("/change-password", authenticated, auth.changePassword)
	}

	catalog := &catalogHandler{catalog: services.Catalog}
	products := apiGroup.Group("/products")
	{
		products.GET("", catalog.listProducts)
		products.GET("/:id", catalog.getProduct)
		products.POST("", adminOnly(catalog.createProduct)...)
		products.POST("/bulk", adminOnly(catalog.createProducts)...)
		products.PUT("/:id", adminOnly(catalog.updateProduct)...)
		products.DELETE("/:id", adminOnly(catalog.deleteProduct)...)
	}

	categories := apiGroup.Group("/categories")
	{
		categories.GET("", catalog.listCategories)
		categories.GET("/:id", catalog.getCategory)
		categories.POST("", adminOnly(catalog.createCategory)...)
		categories.PUT("/:id", adminOnly(catalog.updateCategory)...)
		categories.DELETE("/:id", adminOnly(catalog.deleteCategory)...)
	}

	cart := &cartHandler{carts: services.Carts}
	cartGroup := apiGroup.Group("/cart", authenticated)
	{
		cartGroup.GET("", cart.get)
		cartGroup.POST("/items", cart.addItem)
		cartGroup.PUT("/items/:item_id", cart.updateItem)
		cartGroup.DELETE("/items/:item_id", cart.removeItem)
		cartGroup.DELETE("", cart.clear)
	}

	orders := &orderHandler{orders: services.Orders}
	orderGroup := apiGroup.Group("/orders", authenticated)
	{
		orderGroup.GET("", orders.list)
		orderGroup.GET("/:id", orders.get)
		orderGroup.POST("", orders.checkout)
		orderGroup.POST("/:id/pay", orders.pay)
		orderGroup.POST("/:id/cancel", orders.cancel)
	}

	admin := &adminHandler{admin: services.Admin, users: services.Users}
	adminGroup := apiGroup.Group("/admin", authenticated, requireAdmin)
	{
		adminGroup.GET("/carts", admin.listCarts)
		adminGroup.GET("/carts/:userId", admin.getCart)
		adminGroup.DELETE("/carts/:userId", admin.clearCart)
		adminGroup.GET("/carts-stats", admin.cartStats)
		adminGroup.GET("/orders", admin.listOrders)
		adminGroup.GET("/orders/:orderId", admin.getOrder)
		adminGroup.DELETE("/orders/:orderId", admin.cancelOrder)
		adminGroup.PATCH("/orders/:orderId/status", admin.advanceOrder)
	}

	users := apiGroup.Group("/users", authenticated, requireAdmin)
	{
		users.GET("", admin.listUsers)
		users.GET("/:id", admin.getUser)
		users.PUT("/:id", admin.updateUser)
		users.DELETE("/:id", admin.deleteUser)
	}

	return r
}

func corsConfig(origins []string) cors.Config {
	config := cors.Config{
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", middleware.RequestIDHeader},
		ExposeHeaders:    []string{"Content-Length", middleware.RequestIDHeader},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}

	if len(origins) == 0 || slices.Contains(origins, "*") {
		config.AllowAllOrigins = true
		config.AllowCredentials = false
	} else {
		config.AllowOrigins = origins
	}

	return config
}

func health(db Pinger) gin.HandlerFunc {
	return func(c *gin.Context) {
		if db != nil {
			ctx, cancel := context.WithTimeout(c.Request.Context(), healthTimeout)
			defer cancel()

			if err := db.Ping(ctx); err != nil {
				c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable", "database": "down"})
				return
			}
		}

		c.JSON(http.StatusOK, gin.H{"status": "OK", "database": "up"})
	}
}
