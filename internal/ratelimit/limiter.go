package ratelimit

import (
	"sync"
	"time"
)

// Limiter 按 key 做固定窗口限流，守住 ingest 入口
// 窗口是 epoch 分钟，跨窗自动清零，limit<=0 时全部拒绝
type Limiter struct {
	mu       sync.Mutex
	counters map[string]*counter
	limit    int
	now      func() time.Time
}

type counter struct {
	mu           sync.Mutex
	windowMinute int64
	count        int
}

func NewLimiter(limitPerMinute int) *Limiter {
	return &Limiter{
		counters: make(map[string]*counter),
		limit:    limitPerMinute,
		now:      time.Now,
	}
}

// NewLimiterWithClock 注入时钟，测试用
func NewLimiterWithClock(limitPerMinute int, now func() time.Time) *Limiter {
	l := NewLimiter(limitPerMinute)
	l.now = now
	return l
}

// Allow 判断该 key 在当前分钟窗口内是否还有额度
// 拒绝时不累加计数，同一 key 的并发调用不会重复放行
func (l *Limiter) Allow(key string) bool {
	if l.limit <= 0 {
		return false
	}

	minute := l.now().Unix() / 60

	l.mu.Lock()
	c, ok := l.counters[key]
	if !ok {
		c = &counter{windowMinute: minute}
		l.counters[key] = c
	}
	l.mu.Unlock()

	c.mu.Lock()
	defer c.mu.Unlock()

	if c.windowMinute != minute {
		c.windowMinute = minute
		c.count = 0
	}
	if c.count >= l.limit {
		return false
	}
	c.count++
	return true
}

// Sweep 清理窗口早于 olderThanMinutes 的计数器，返回清理数量
// 不清理不影响正确性，只是防止 key 无限增长
func (l *Limiter) Sweep(olderThanMinutes int64) int {
	minute := l.now().Unix() / 60

	l.mu.Lock()
	defer l.mu.Unlock()

	removed := 0
	for key, c := range l.counters {
		c.mu.Lock()
		stale := minute-c.windowMinute > olderThanMinutes
		c.mu.Unlock()
		if stale {
			delete(l.counters, key)
			removed++
		}
	}
	return removed
}

// Size 当前跟踪的 key 数量
func (l *Limiter) Size() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.counters)
}
