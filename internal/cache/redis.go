package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rarebeats-player/internal/config"

	"github.com/redis/go-redis/v9"
)

const (
	defaultRedisHost   = "127.0.0.1"
	defaultRedisPort   = 6379
	defaultRedisPrefix = "rb"
)

// store 进程内唯一的 Redis 连接，未启用时为 nil
type store struct {
	client *redis.Client
	prefix string
}

var current *store

// InitRedis 按配置建立连接；未启用时清空已有连接
func InitRedis(cfg *config.RedisConfig) error {
	if cfg == nil || !cfg.Enabled {
		current = nil
		return nil
	}
	host := strings.TrimSpace(cfg.Host)
	if host == "" {
		host = defaultRedisHost
	}
	port := cfg.Port
	if port <= 0 {
		port = defaultRedisPort
	}
	prefix := strings.TrimSpace(cfg.Prefix)
	if prefix == "" {
		prefix = defaultRedisPrefix
	}

	current = &store{
		client: redis.NewClient(&redis.Options{
			Addr:     fmt.Sprintf("%s:%d", host, port),
			Password: cfg.Password,
			DB:       cfg.DB,
		}),
		prefix: prefix,
	}
	return nil
}

// Enabled 判断缓存是否启用
func Enabled() bool {
	return current != nil && current.client != nil
}

// Client 返回限流使用的 Redis 客户端，未启用时为 nil
func Client() *redis.Client {
	if !Enabled() {
		return nil
	}
	return current.client
}

// Close 关闭连接
func Close() error {
	if !Enabled() {
		return nil
	}
	err := current.client.Close()
	current = nil
	return err
}

func getJSON(ctx context.Context, key string, dest interface{}) (bool, error) {
	if !Enabled() {
		return false, nil
	}
	val, err := current.client.Get(ctx, current.key(key)).Bytes()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	if err := json.Unmarshal(val, dest); err != nil {
		return false, fmt.Errorf("decode cached %s: %w", key, err)
	}
	return true, nil
}

func setJSON(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	if !Enabled() {
		return nil
	}
	payload, err := json.Marshal(value)
	if err != nil {
		return err
	}
	return current.client.Set(ctx, current.key(key), payload, ttl).Err()
}

func del(ctx context.Context, key string) error {
	if !Enabled() {
		return nil
	}
	return current.client.Del(ctx, current.key(key)).Err()
}

func (s *store) key(key string) string {
	trimmed := strings.TrimSpace(key)
	if trimmed == "" {
		return s.prefix
	}
	return s.prefix + ":" + trimmed
}
