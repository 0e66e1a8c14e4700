package api

import (
	"github.com/gin-gonic/gin"

	"github.com/satyanetra/trust_go_server/config"
	"github.com/satyanetra/trust_go_server/internal/api/handler"
	"github.com/satyanetra/trust_go_server/internal/api/middleware"
	"github.com/satyanetra/trust_go_server/internal/ratelimit"
)

type Router struct {
	healthHandler    *handler.HealthHandler
	ingestHandler    *handler.IngestHandler
	scoreHandler     *handler.ScoreHandler
	websocketHandler *handler.WebSocketHandler
	limiter          *ratelimit.Limiter
	cfg              *config.Config
}

func NewRouter(
	ingestHandler *handler.IngestHandler,
	scoreHandler *handler.ScoreHandler,
	websocketHandler *handler.WebSocketHandler,
	limiter *ratelimit.Limiter,
	cfg *config.Config,
) *Router {
	return &Router{
		healthHandler:    handler.NewHealthHandler(),
		ingestHandler:    ingestHandler,
		scoreHandler:     scoreHandler,
		websocketHandler: websocketHandler,
		limiter:          limiter,
		cfg:              cfg,
	}
}

func (r *Router) Setup() *gin.Engine {
	if r.cfg.Server.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	engine := gin.New()
	engine.Use(gin.Recovery())
	engine.Use(middleware.CORS(r.cfg.CORS))

	engine.GET("/health", r.healthHandler.Check)

	api := engine.Group("/api")
	{
		// 提交接口单独限流，查询接口不受影响
		api.POST("/ingest", middleware.RateLimit(r.limiter), r.ingestHandler.Submit)

		api.GET("/score/status/:jobId", r.scoreHandler.Status)
		api.GET("/score/:productId", r.scoreHandler.Score)

		api.GET("/ws/:jobId", r.websocketHandler.Watch)
	}

	return engine
}
