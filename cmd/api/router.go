package main

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"storefront-backend/internal/shared/middleware"
	"storefront-backend/pkg/container"

	"github.com/gin-gonic/gin"
)

func SetupRouter(c *container.Container) *gin.Engine {
	router := gin.New()

	// Global middlewares
	router.Use(
		middleware.Recovery(),
		middleware.RequestID(),
		middleware.Logger(),
		middleware.CORS(c.Config.App.AllowedOrigins...),
	)

	// Shopper session cookie
	sessionConfig := middleware.DefaultSessionMiddlewareConfig()
	sessionConfig.CookieDomain = c.Config.Session.CookieDomain
	sessionConfig.CookieSecure = c.Config.Session.CookieSecure
	sessionConfig.MaxAge = int(c.Config.Session.TTL.Seconds())
	session := middleware.SessionMiddleware(sessionConfig)

	v1 := router.Group("/api/v1")
	{
		v1.GET("/health", healthCheckHandler(c))

		setupCatalogRoutes(v1, c)
		setupCartRoutes(v1, c, session)
		setupAddressRoutes(v1, c, session)
		setupCheckoutRoutes(v1, c, session)
		setupOrderRoutes(v1, c, session)
		setupAdminRoutes(v1, c)
	}

	return router
}

// ========================================
// CATALOG ROUTES
// ========================================
func setupCatalogRoutes(v1 *gin.RouterGroup, c *container.Container) {
	v1.GET("/products", c.CatalogHandler.ListProducts)
}

// ========================================
// CART ROUTES
// ========================================
func setupCartRoutes(v1 *gin.RouterGroup, c *container.Container, session gin.HandlerFunc) {
	cart := v1.Group("/cart")
	cart.Use(session)
	{
		cart.GET("", c.CartHandler.GetCart)
		cart.POST("/items", c.CartHandler.AddItem)
		cart.PUT("/items/:variant_id", c.CartHandler.UpdateQuantity)
		cart.DELETE("/items/:variant_id", c.CartHandler.RemoveItem)
		cart.DELETE("", c.CartHandler.ClearCart)
		cart.POST("/checkout-url", c.CartHandler.CreateHostedCheckout)
	}
}

// ========================================
// ADDRESS ROUTES
// ========================================
func setupAddressRoutes(v1 *gin.RouterGroup, c *container.Container, session gin.HandlerFunc) {
	address := v1.Group("/address")
	address.Use(session)
	{
		address.GET("/lookup/:postal_code", c.AddressHandler.Lookup)
		address.GET("/delivery-location", c.AddressHandler.GetDeliveryLocation)
	}
}

// ========================================
// CHECKOUT + PAYMENT ROUTES
// ========================================
func setupCheckoutRoutes(v1 *gin.RouterGroup, c *container.Container, session gin.HandlerFunc) {
	checkout := v1.Group("/checkout")
	checkout.Use(session)
	{
		checkout.GET("", c.CheckoutHandler.GetCheckout)
		checkout.POST("/identification", c.CheckoutHandler.SubmitIdentification)
		checkout.POST("/shipping", c.CheckoutHandler.SubmitShipping)
		checkout.POST("/back", c.CheckoutHandler.GoBack)
		checkout.POST("/coupon", c.CheckoutHandler.ApplyCoupon)
		checkout.DELETE("/coupon", c.CheckoutHandler.RemoveCoupon)
		checkout.PUT("/shipping-option", c.CheckoutHandler.SelectShipping)

		checkout.POST("/payment", c.PaymentHandler.Submit)
		checkout.GET("/payment/:sale_id", c.PaymentHandler.Status)
		checkout.POST("/payment/:sale_id/check", c.PaymentHandler.Check)
		checkout.DELETE("/payment/:sale_id", c.PaymentHandler.Cancel)
	}
}

// ========================================
// ORDER ROUTES
// ========================================
func setupOrderRoutes(v1 *gin.RouterGroup, c *container.Container, session gin.HandlerFunc) {
	orders := v1.Group("/orders")
	orders.Use(session)
	{
		orders.GET("/confirmation", c.OrderHandler.GetConfirmation)
	}
}

// ========================================
// ADMIN ROUTES
// ========================================
func setupAdminRoutes(v1 *gin.RouterGroup, c *container.Container) {
	v1.POST("/admin/login", c.AdminHandler.Login)

	admin := v1.Group("/admin")
	admin.Use(
		middleware.AuthMiddleware(c.JWTManager),
		middleware.AdminMiddleware(),
	)
	{
		admin.GET("/orders", c.OrderHandler.ListOrders)
		admin.GET("/orders/summary", c.OrderHandler.GetSummary)
		admin.GET("/orders/export", c.OrderHandler.ExportOrders)
	}
}

// ========================================
// HEALTH CHECK HANDLER
// ========================================
func healthCheckHandler(appCtx *container.Container) gin.HandlerFunc {
	return func(c *gin.Context) {
		health := gin.H{
			"status":    "ok",
			"timestamp": time.Now().Format(time.RFC3339),
			"version":   appCtx.Config.App.Version,
			"services":  gin.H{},
		}

		// Redis holds every session: without it the storefront is down
		redisStatus := "ok"
		if appCtx.Cache == nil {
			redisStatus = "disconnected"
		} else {
			ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
			defer cancel()

			if err := appCtx.Cache.Ping(ctx); err != nil {
				redisStatus = fmt.Sprintf("error: %v", err)
			}
		}

		// Postgres only backs the admin dashboard
		dbStatus := "ok"
		if appCtx.DB == nil || appCtx.DB.Pool == nil {
			dbStatus = "disabled"
		} else {
			ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
			defer cancel()

			if err := appCtx.DB.HealthCheck(ctx); err != nil {
				dbStatus = fmt.Sprintf("error: %v", err)
			}
		}
		if dbStatus != "ok" {
			health["status"] = "degraded"
		}

		health["services"] = gin.H{
			"redis":        redisStatus,
			"database":     dbStatus,
			"pix_watchers": appCtx.PixWatchers.Active(),
		}

		statusCode := http.StatusOK
		if redisStatus != "ok" {
			health["status"] = "down"
			statusCode = http.StatusServiceUnavailable
		}

		c.JSON(statusCode, health)
	}
}
