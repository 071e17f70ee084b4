package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
)

const resultKeyPrefix = "fsat:last_result:"

// ResultCache 最近一次测试结果的 Redis 缓存,
// 数据库短暂不可用时仍能向学生返回成绩
type ResultCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewResultCache(client *redis.Client, ttl time.Duration) *ResultCache {
	return &ResultCache{client: client, ttl: ttl}
}

func (c *ResultCache) key(userID uint) string {
	return fmt.Sprintf("%s%d", resultKeyPrefix, userID)
}

func (c *ResultCache) Put(ctx context.Context, userID uint, result *TestResult) error {
	if c.client == nil {
		return nil
	}
	data, err := json.Marshal(result)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, c.key(userID), data, c.ttl).Err()
}

// Get 缓存未命中时返回 (nil, nil)
func (c *ResultCache) Get(ctx context.Context, userID uint) (*TestResult, error) {
	if c.client == nil {
		return nil, nil
	}
	data, err := c.client.Get(ctx, c.key(userID)).Bytes()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var result TestResult
	if err := json.Unmarshal(data, &result); err != nil {
		return nil, err
	}
	return &result, nil
}
