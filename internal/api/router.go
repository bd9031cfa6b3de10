package api

import (
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/jafarshop/myorders/internal/api/handlers"
	"github.com/jafarshop/myorders/internal/api/middleware"
	"github.com/jafarshop/myorders/internal/config"
	"github.com/jafarshop/myorders/internal/metrics"
	"github.com/jafarshop/myorders/internal/session"
)

// NewRouter creates and configures the Gin router
func NewRouter(cfg *config.Config, orders handlers.OrdersService, sessions session.Store, reg *metrics.Registry, logger *zap.Logger) *gin.Engine {
	if cfg.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()

	// Middleware
	router.Use(gin.Recovery())
	router.Use(middleware.RequestID())
	router.Use(loggingMiddleware(logger))

	// Health check
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})
	router.GET("/metrics", gin.WrapH(reg.Handler()))

	// API v1 routes
	v1 := router.Group("/v1")
	v1.Use(middleware.SessionMiddleware(sessions, cfg.Orders.SessionCookie, logger))
	{
		v1.GET("/orders", handlers.HandleListOrders(orders, cfg.Orders, logger))
		v1.GET("/orders/:order_id/states", handlers.HandleGetOrderStates(orders, logger))
	}

	return router
}

// loggingMiddleware logs HTTP requests
func loggingMiddleware(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		path := c.Request.URL.Path
		method := c.Request.Method
		start := time.Now()

		c.Next()

		status := c.Writer.Status()
		logger.Info("HTTP request",
			zap.String("method", method),
			zap.String("path", path),
			zap.Int("status", status),
			zap.Duration("latency", time.Since(start)),
			zap.String("request_id", middleware.GetRequestID(c)),
		)
	}
}
