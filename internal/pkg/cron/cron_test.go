package cron

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/satyanetra/trust_go_server/internal/ratelimit"
)

func TestNewService_DefaultsInterval(t *testing.T) {
	svc := NewService(ratelimit.NewLimiter(3), 0)
	assert.Equal(t, 10*time.Minute, svc.interval)

	svc = NewService(ratelimit.NewLimiter(3), 5)
	assert.Equal(t, 5*time.Minute, svc.interval)
}

func TestService_StartStop(t *testing.T) {
	svc := NewService(ratelimit.NewLimiter(3), 1)

	svc.Start()
	// Stop 应当立刻返回，不会卡住
	done := make(chan struct{})
	go func() {
		svc.Stop()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Stop did not return")
	}
}

func TestService_SweepRemovesStaleCounters(t *testing.T) {
	base := time.Now()
	now := base
	limiter := ratelimit.NewLimiterWithClock(3, func() time.Time { return now })

	limiter.Allow("10.0.0.1")
	limiter.Allow("10.0.0.2")
	assert.Equal(t, 2, limiter.Size())

	// 计数器闲置超过清理窗口后被移除
	now = base.Add(30 * time.Minute)
	limiter.Allow("10.0.0.3")

	removed := limiter.Sweep(10)
	assert.Equal(t, 2, removed)
	assert.Equal(t, 1, limiter.Size())
}
