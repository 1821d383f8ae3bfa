package cache

import (
	"context"
	"encoding/json"
	"time"

	"meetsync/core/config"
	"meetsync/core/logger"

	"github.com/redis/go-redis/v9"
)

// Cache is a thin JSON get/set layer over redis
type Cache struct {
	client *redis.Client
}

var instance *Cache

func Init(cfg config.RedisConfig) (*Cache, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, err
	}

	instance = &Cache{client: client}
	logger.Info("Redis initialized", "addr", cfg.Addr, "db", cfg.DB)
	return instance, nil
}

func Get() *Cache {
	return instance
}

// GetJSON loads a cached value into dest; returns false on miss
func (c *Cache) GetJSON(ctx context.Context, key string, dest any) (bool, error) {
	data, err := c.client.Get(ctx, key).Bytes()
	if err == redis.Nil {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	if err := json.Unmarshal(data, dest); err != nil {
		return false, err
	}
	return true, nil
}

// SetJSON stores a value as JSON with a TTL
func (c *Cache) SetJSON(ctx context.Context, key string, value any, ttl time.Duration) error {
	data, err := json.Marshal(value)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, key, data, ttl).Err()
}

func (c *Cache) Delete(ctx context.Context, keys ...string) error {
	return c.client.Del(ctx, keys...).Err()
}
