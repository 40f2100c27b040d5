package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/liliang-cn/closet/internal/api/clothing"
	"github.com/liliang-cn/closet/internal/api/middleware"
	"github.com/liliang-cn/closet/internal/observability"
	"github.com/liliang-cn/closet/internal/service"
	"go.uber.org/zap"
)

// RouterConfig holds configuration for the router
type RouterConfig struct {
	JWTSecret    string
	DefaultUser  string
	AllowOrigins []string
	Logger       *zap.Logger
	// Metrics is optional; nil disables /metrics.
	Metrics *observability.Collector
}

// SetupRouter sets up the Gin router
func SetupRouter(wardrobeService *service.WardrobeService, cfg RouterConfig) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestLogger(cfg.Logger))
	r.Use(middleware.Metrics(cfg.Metrics))
	r.Use(middleware.CORS(cfg.AllowOrigins))

	// Health check
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	if cfg.Metrics != nil {
		r.GET("/metrics", gin.WrapH(cfg.Metrics.Handler()))
	}

	clothingHandler := clothing.NewHandler(wardrobeService)
	apiGroup := r.Group("/api")
	apiGroup.Use(middleware.Auth(cfg.JWTSecret, cfg.DefaultUser))
	clothingHandler.RegisterRoutes(apiGroup)

	return r
}
