package cron

import (
	"log"
	"time"

	"github.com/satyanetra/trust_go_server/internal/ratelimit"
)

// Service 后台定时任务：周期清理限流器里长期不活跃的计数器，
// 防止按 IP 建的计数器无限增长
type Service struct {
	limiter      *ratelimit.Limiter
	sweepMinutes int
	interval     time.Duration
	stopChan     chan struct{}
}

func NewService(limiter *ratelimit.Limiter, sweepMinutes int) *Service {
	interval := time.Duration(sweepMinutes) * time.Minute
	if interval <= 0 {
		interval = 10 * time.Minute
	}
	return &Service{
		limiter:      limiter,
		sweepMinutes: sweepMinutes,
		interval:     interval,
		stopChan:     make(chan struct{}),
	}
}

// Start 启动定时任务
func (s *Service) Start() {
	go s.runSweep()
	log.Println("Cron service started (rate limiter sweep)")
}

// Stop 停止定时任务
func (s *Service) Stop() {
	close(s.stopChan)
	log.Println("Cron service stopped")
}

func (s *Service) runSweep() {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-s.stopChan:
			return
		case <-ticker.C:
			removed := s.limiter.Sweep(int64(s.sweepMinutes))
			if removed > 0 {
				log.Printf("Rate limiter sweep removed %d stale counters, %d remain", removed, s.limiter.Size())
			}
		}
	}
}
