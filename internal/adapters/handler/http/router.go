package http

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "github.com/comitanigiacomo/kanso-planner/docs"
	"github.com/comitanigiacomo/kanso-planner/internal/adapters/handler/http/middleware"
	"github.com/comitanigiacomo/kanso-planner/internal/core/services"
)

// Pinger reports whether a backing service is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

type RouterDependencies struct {
	AuthHandler     *AuthHandler
	ListHandler     *ListHandler
	ScheduleHandler *ScheduleHandler
	LibraryHandler  *LibraryHandler
	AuthService     *services.AuthService
	TokenService    *services.TokenService
	ChangeFeed      http.Handler

	Store      Pinger
	Redis      *redis.Client
	KeyPrefix  string
	RateLimit  int
	RateWindow time.Duration

	StartTime time.Time
	Logger    *slog.Logger
}

func NewRouter(deps RouterDependencies) *gin.Engine {
	router := gin.Default()

	router.Use(func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, GET, OPTIONS, PUT, DELETE")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, X-CSRF-Token, Authorization")
		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}
		c.Next()
	})

	if deps.Redis != nil && deps.RateLimit > 0 {
		router.Use(middleware.RateLimiterMiddleware(deps.Redis, deps.KeyPrefix, deps.RateLimit, deps.RateWindow, deps.Logger))
	}

	router.GET("/health", func(c *gin.Context) {
		storeStatus := "connected"
		if deps.Store == nil || deps.Store.Ping(c.Request.Context()) != nil {
			storeStatus = "unreachable"
		}

		redisStatus := "disabled"
		if deps.Redis != nil {
			redisStatus = "connected"
			if deps.Redis.Ping(c.Request.Context()).Err() != nil {
				redisStatus = "unreachable"
			}
		}

		status, code := "ok", http.StatusOK
		if storeStatus == "unreachable" || redisStatus == "unreachable" {
			status, code = "error", http.StatusServiceUnavailable
		}

		c.JSON(code, gin.H{
			"status": status,
			"store":  storeStatus,
			"redis":  redisStatus,
			"uptime": time.Since(deps.StartTime).String(),
		})
	})

	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	apiV1 := router.Group("/api/v1")

	deps.AuthHandler.RegisterRoutes(apiV1)

	protected := apiV1.Group("")
	if deps.AuthService != nil && deps.AuthService.Enabled() {
		protected.Use(middleware.AuthMiddleware(deps.TokenService))
	}
	{
		deps.ListHandler.RegisterRoutes(protected)
		deps.ScheduleHandler.RegisterRoutes(protected)
		deps.LibraryHandler.RegisterRoutes(protected)
		if deps.ChangeFeed != nil {
			protected.GET("/ws", gin.WrapH(deps.ChangeFeed))
		}
	}

	return router
}
