package cache

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"github.com/go-redis/redis/v8"

	"github.com/satyanetra/trust_go_server/internal/model/dto"
)

const scoreKeyPrefix = "score:"

// ScoreCache 评分响应的 Redis 缓存
// 缓存读写失败只记日志，绝不影响请求本身
type ScoreCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewScoreCache(client *redis.Client, ttl time.Duration) *ScoreCache {
	return &ScoreCache{client: client, ttl: ttl}
}

// Get 命中返回缓存的响应，未命中或出错返回 nil
func (c *ScoreCache) Get(ctx context.Context, productID string) *dto.ScoreResponse {
	if c == nil || c.client == nil {
		return nil
	}

	data, err := c.client.Get(ctx, scoreKeyPrefix+productID).Result()
	if err != nil {
		if err != redis.Nil {
			log.Printf("Score cache read error for %s: %v", productID, err)
		}
		return nil
	}

	var resp dto.ScoreResponse
	if err := json.Unmarshal([]byte(data), &resp); err != nil {
		log.Printf("Score cache decode error for %s: %v", productID, err)
		return nil
	}
	return &resp
}

// Set 写入缓存
func (c *ScoreCache) Set(ctx context.Context, productID string, resp *dto.ScoreResponse) {
	if c == nil || c.client == nil {
		return
	}

	data, err := json.Marshal(resp)
	if err != nil {
		log.Printf("Score cache encode error for %s: %v", productID, err)
		return
	}
	if err := c.client.Set(ctx, scoreKeyPrefix+productID, data, c.ttl).Err(); err != nil {
		log.Printf("Score cache write error for %s: %v", productID, err)
	}
}

// Invalidate 删除缓存，重新分析完成后调用
func (c *ScoreCache) Invalidate(ctx context.Context, productID string) {
	if c == nil || c.client == nil {
		return
	}

	if err := c.client.Del(ctx, scoreKeyPrefix+productID).Err(); err != nil {
		log.Printf("Score cache invalidate error for %s: %v", productID, err)
	}
}
