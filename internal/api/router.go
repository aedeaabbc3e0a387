package api

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/shouni/astoria-image-kit/pkg/export"
	"github.com/shouni/astoria-image-kit/pkg/generator"
	"github.com/shouni/astoria-image-kit/pkg/metrics"
	"github.com/shouni/astoria-image-kit/pkg/prompt"
	"github.com/shouni/astoria-image-kit/pkg/studio"
)

// DefaultMaxBodyBytes は data URL で送られる画像を含むリクエストボディの既定の上限です。
const DefaultMaxBodyBytes = 32 << 20

type RouterConfig struct {
	Loader     *generator.SourceLoader
	Hairstyles *studio.HairstyleStudio
	Characters *studio.CharacterStudio
	Catalog    *prompt.Catalog
	Exporter   *export.Exporter
	Metrics    *metrics.Recorder
	// Gatherer が nil の場合は prometheus.DefaultGatherer を公開します。
	Gatherer    prometheus.Gatherer
	CORSOrigins []string
	// MaxBodyBytes が 0 以下の場合は DefaultMaxBodyBytes を使います。
	MaxBodyBytes int64
}

func NewRouter(cfg RouterConfig) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(LoggingMiddleware(cfg.Metrics))
	r.Use(corsMiddleware(cfg.CORSOrigins))
	maxBody := cfg.MaxBodyBytes
	if maxBody <= 0 {
		maxBody = DefaultMaxBodyBytes
	}
	r.Use(BodyLimitMiddleware(maxBody))

	gatherer := cfg.Gatherer
	if gatherer == nil {
		gatherer = prometheus.DefaultGatherer
	}
	r.GET("/healthz", Healthz)
	r.GET("/metrics", gin.WrapH(promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})))

	v1 := r.Group("/api")

	hairH := NewHairstyleHandler(cfg.Loader, cfg.Hairstyles)
	v1.POST("/enhance", hairH.Enhance)
	v1.POST("/hairstyles", hairH.Generate)
	v1.GET("/history", hairH.History)
	v1.DELETE("/history", hairH.ClearHistory)
	v1.GET("/favorites", hairH.Favorites)
	v1.POST("/favorites/:id/toggle", hairH.ToggleFavorite)
	v1.DELETE("/favorites", hairH.ClearFavorites)

	charH := NewCharacterHandler(cfg.Characters)
	v1.POST("/characters", charH.Create)
	v1.GET("/characters", charH.List)
	v1.DELETE("/characters", charH.Reset)
	v1.DELETE("/characters/:id", charH.Remove)
	v1.POST("/characters/:id/scenes", charH.CreateScene)
	v1.GET("/characters/:id/scenes", charH.Scenes)

	v1.GET("/catalog", CatalogHandler(cfg.Catalog))
	v1.POST("/share", NewShareHandler(cfg.Loader, cfg.Exporter).Share)

	return r
}

func corsMiddleware(origins []string) gin.HandlerFunc {
	if len(origins) == 0 {
		return cors.Default()
	}
	cfg := cors.DefaultConfig()
	cfg.AllowOrigins = origins
	return cors.New(cfg)
}
