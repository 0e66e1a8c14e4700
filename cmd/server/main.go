package main

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/satyanetra/trust_go_server/config"
	"github.com/satyanetra/trust_go_server/internal/api"
	"github.com/satyanetra/trust_go_server/internal/api/handler"
	"github.com/satyanetra/trust_go_server/internal/cache"
	"github.com/satyanetra/trust_go_server/internal/database"
	"github.com/satyanetra/trust_go_server/internal/pkg/cron"
	"github.com/satyanetra/trust_go_server/internal/pkg/pubsub"
	"github.com/satyanetra/trust_go_server/internal/pkg/queue"
	"github.com/satyanetra/trust_go_server/internal/pkg/ws"
	"github.com/satyanetra/trust_go_server/internal/ratelimit"
	"github.com/satyanetra/trust_go_server/internal/repository"
	"github.com/satyanetra/trust_go_server/internal/service"
)

func main() {
	// 加载配置
	cfg, err := config.Load("config.yaml")
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// 初始化数据库
	db, err := database.NewMySQL(&cfg.Database)
	if err != nil {
		log.Fatalf("Failed to connect database: %v", err)
	}
	log.Println("Database connected")

	// 初始化 Redis
	rdb, err := database.NewRedis(&cfg.Redis)
	if err != nil {
		log.Fatalf("Failed to connect redis: %v", err)
	}
	log.Println("Redis connected")

	// 初始化 Queue 和缓存
	jobQueue := queue.NewQueue(rdb, cfg.Queue.AnalysisQueue)
	scoreCache := cache.NewScoreCache(rdb, time.Duration(cfg.Cache.ScoreTTLSeconds)*time.Second)

	// 初始化 WebSocket Hub，并把 Redis 进度事件转发给订阅的连接
	wsHub := ws.NewHub()
	go func() {
		subscriber := pubsub.NewSubscriber(rdb)
		err := subscriber.Subscribe(context.Background(), func(msg *pubsub.ProgressMessage) {
			if err := wsHub.SendToJob(msg.JobID, &ws.Message{Type: msg.Type, Data: msg}); err != nil {
				log.Printf("Failed to forward progress for job %s: %v", msg.JobID, err)
			}
		})
		if err != nil {
			log.Printf("Progress subscriber stopped: %v", err)
		}
	}()
	log.Println("WebSocket hub started")

	// 初始化限流器及其后台清理
	limiter := ratelimit.NewLimiter(cfg.RateLimit.PerMinute)
	cronService := cron.NewService(limiter, cfg.RateLimit.SweepMinutes)
	cronService.Start()
	defer cronService.Stop()

	// 初始化 Repository
	productRepo := repository.NewProductRepository(db)
	jobRepo := repository.NewJobRepository(db)
	jobLogRepo := repository.NewJobLogRepository(db)
	scoreRepo := repository.NewScoreRepository(db)

	// 初始化 Service
	ingestService := service.NewIngestService(productRepo, jobRepo, jobLogRepo, jobQueue)
	scoreService := service.NewScoreService(jobRepo, jobLogRepo, scoreRepo, scoreCache)

	// 初始化 Handler
	ingestHandler := handler.NewIngestHandler(ingestService)
	scoreHandler := handler.NewScoreHandler(scoreService)
	websocketHandler := handler.NewWebSocketHandler(wsHub)

	// 初始化 Router
	router := api.NewRouter(
		ingestHandler,
		scoreHandler,
		websocketHandler,
		limiter,
		cfg,
	)
	engine := router.Setup()

	// 启动服务器
	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	log.Printf("Server starting on %s", addr)
	if err := engine.Run(addr); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
