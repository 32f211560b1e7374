package router

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"user-directory/internal/adapter/gin/handler"
	"user-directory/internal/adapter/gin/middleware"
	"user-directory/pkg/logger"
	"user-directory/pkg/metrics"
	redisclient "user-directory/pkg/redis"
)

// Dependencies carries everything the router wires into routes.
// RateLimiter, Metrics and Redis may be nil.
type Dependencies struct {
	Pages       *handler.PageHandler
	Users       *handler.UserHandler
	RateLimiter *middleware.RateLimiter
	Metrics     *metrics.Collectors
	Gatherer    prometheus.Gatherer
	Redis       *redisclient.Client
	ServiceName string
	Log         *zap.Logger
}

// SetupRouter configures and returns a Gin router with all routes and middleware
func SetupRouter(d Dependencies) *gin.Engine {
	router := gin.New()

	// Global middleware
	router.Use(middleware.Recovery(d.Log))
	router.Use(logger.RequestIDMiddleware())
	router.Use(middleware.Tracing())
	router.Use(middleware.Logger(d.Log))
	router.Use(middleware.Metrics(d.Metrics))

	router.GET("/health", healthHandler(d))
	if d.Gatherer != nil {
		router.GET("/metrics", gin.WrapH(promhttp.HandlerFor(d.Gatherer, promhttp.HandlerOpts{})))
	}

	limited := router.Group("")
	limited.Use(d.RateLimiter.Middleware())
	{
		limited.GET("/", d.Pages.List)
		limited.GET("/search", d.Pages.Search)
		limited.GET("/user/:id", d.Pages.Detail)

		v1 := limited.Group("/api/v1")
		{
			users := v1.Group("/users")
			{
				users.GET("", d.Users.ListUsers)
				users.GET("/:id", d.Users.GetUser)
			}
		}
	}

	router.NoRoute(d.Pages.NotFound)

	return router
}

func healthHandler(d Dependencies) gin.HandlerFunc {
	return func(c *gin.Context) {
		body := gin.H{
			"status":  "healthy",
			"service": d.ServiceName,
		}
		if d.Redis != nil {
			if !d.Redis.Healthy(c.Request.Context()) {
				body["status"] = "unhealthy"
				body["redis"] = "down"
				c.JSON(http.StatusServiceUnavailable, body)
				return
			}
			body["redis"] = "up"
		}
		c.JSON(http.StatusOK, body)
	}
}
