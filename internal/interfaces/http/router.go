// Package http assembles the gin engine and HTTP server of the descriptor
// API.
package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/turtacn/ChemDesc-Engine/internal/infrastructure/monitoring/logging"
	"github.com/turtacn/ChemDesc-Engine/internal/infrastructure/monitoring/prometheus"
	"github.com/turtacn/ChemDesc-Engine/internal/interfaces/http/handlers"
	"github.com/turtacn/ChemDesc-Engine/internal/interfaces/http/middleware"
)

// RouterConfig carries everything the router mounts.
type RouterConfig struct {
	Mode           string // gin mode: "debug" | "release" | "test"
	Logger         logging.Logger
	Metrics        *prometheus.AppMetrics
	MetricsHandler http.Handler // /metrics; omitted when nil
	CORS           middleware.CORSConfig

	Descriptors *handlers.DescriptorHandler
	Jobs        *handlers.JobHandler // /api/v1/jobs; omitted when nil
	Health      *handlers.HealthHandler
}

// NewRouter builds the full middleware chain and route table.
func NewRouter(cfg RouterConfig) *gin.Engine {
	if cfg.Mode != "" {
		gin.SetMode(cfg.Mode)
	}
	logger := cfg.Logger
	if logger == nil {
		logger = logging.NewNopLogger()
	}

	r := gin.New()
	r.Use(middleware.RequestID())
	r.Use(middleware.Recovery(logger, cfg.Metrics))
	r.Use(middleware.Logging(logger))
	r.Use(middleware.Metrics(cfg.Metrics))
	r.Use(middleware.CORS(cfg.CORS))

	r.GET("/healthz", cfg.Health.Healthz)
	r.GET("/readyz", cfg.Health.Readyz)
	r.GET("/version", cfg.Health.Version)
	if cfg.MetricsHandler != nil {
		r.GET("/metrics", gin.WrapH(cfg.MetricsHandler))
	}

	v1 := r.Group("/api/v1")
	{
		descriptors := v1.Group("/descriptors")
		{
			descriptors.POST("/profile", cfg.Descriptors.Profile)
			descriptors.POST("/profile/batch", cfg.Descriptors.ProfileBatch)
			descriptors.POST("/acceptors", cfg.Descriptors.Acceptors)
			descriptors.POST("/whim", cfg.Descriptors.Whim)
		}
		v1.POST("/similarity", cfg.Descriptors.Similarity)
		if cfg.Jobs != nil {
			v1.POST("/jobs", cfg.Jobs.Enqueue)
		}
	}
	return r
}
