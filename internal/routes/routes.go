package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/shopsy-platform/service-analytics/internal/handlers"
	"github.com/shopsy-platform/service-analytics/internal/middleware"
)

// RouteConfig holds configuration for routes
type RouteConfig struct {
	AnalyticsHandler    *handlers.AnalyticsHandler
	OrderHandler        *handlers.OrderHandler
	NotificationHandler *handlers.NotificationHandler
	JWTSecret           string
}

// SetupRoutes configures all API routes
func SetupRoutes(router *gin.Engine, cfg *RouteConfig) {
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// API v1 routes (require authentication)
	v1 := router.Group("/api/v1")
	v1.Use(middleware.Auth(cfg.JWTSecret))
	{
		// Sales analytics routes
		analytics := v1.Group("/analytics/sales")
		{
			analytics.GET("", cfg.AnalyticsHandler.GetSalesReport)
			analytics.GET("/summary", cfg.AnalyticsHandler.GetSummary)
			analytics.GET("/weekly", cfg.AnalyticsHandler.GetWeekly)
			analytics.GET("/top-products", cfg.AnalyticsHandler.GetTopProducts)
			analytics.GET("/table", cfg.AnalyticsHandler.GetTable)
			analytics.GET("/export", cfg.AnalyticsHandler.ExportCSV)
		}

		// Order proxy routes
		orders := v1.Group("/orders")
		{
			orders.GET("", cfg.OrderHandler.GetOrders)
			orders.PUT("/:id/status", cfg.OrderHandler.UpdateOrderStatus)
		}

		// Notification routes
		notifications := v1.Group("/notifications")
		{
			notifications.GET("", cfg.NotificationHandler.GetNotifications)
			notifications.POST("/:id/read", cfg.NotificationHandler.MarkRead)
			notifications.POST("/read-all", cfg.NotificationHandler.MarkAllRead)
			notifications.POST("/unread-all", cfg.NotificationHandler.MarkAllUnread)
		}
	}
}
