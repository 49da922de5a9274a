package methods

import (
	"context"
	"time"

	"github.com/allegro/bigcache/v3"
	apiconfig "github.com/weisyn/slotlayout/internal/config/api"
	"go.uber.org/zap"
)

// ResponseCache 缓存已编码的解析结果
//
// 声明表在服务生命周期内不变，因此同一类型字符串的结果可以直接复用。
// 只缓存成功结果；nil 表示禁用缓存。
type ResponseCache struct {
	cache  *bigcache.BigCache
	logger *zap.Logger
}

// NewResponseCache 根据配置创建缓存；上限为 0 时返回 nil
func NewResponseCache(ctx context.Context, cfg apiconfig.LayoutCacheConfig, logger *zap.Logger) (*ResponseCache, error) {
	if cfg.HardMaxCacheSizeMB <= 0 {
		return nil, nil
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	lifeWindow := cfg.LifeWindow
	if lifeWindow <= 0 {
		lifeWindow = 10 * time.Minute
	}

	bigCacheConfig := bigcache.DefaultConfig(lifeWindow)
	bigCacheConfig.Shards = 64
	bigCacheConfig.HardMaxCacheSize = cfg.HardMaxCacheSizeMB
	bigCacheConfig.MaxEntrySize = 4096
	bigCacheConfig.Verbose = false

	cache, err := bigcache.New(ctx, bigCacheConfig)
	if err != nil {
		return nil, err
	}
	return &ResponseCache{cache: cache, logger: logger}, nil
}

// Get 命中时返回缓存内容
func (c *ResponseCache) Get(key string) ([]byte, bool) {
	if c == nil {
		return nil, false
	}
	value, err := c.cache.Get(key)
	if err != nil {
		return nil, false
	}
	return value, true
}

// Set 写入缓存；失败只影响命中率
func (c *ResponseCache) Set(key string, value []byte) {
	if c == nil {
		return
	}
	if err := c.cache.Set(key, value); err != nil {
		c.logger.Debug("布局结果写入缓存失败",
			zap.String("type", key),
			zap.Int("size", len(value)),
			zap.Error(err))
	}
}

// Len 当前条目数
func (c *ResponseCache) Len() int {
	if c == nil {
		return 0
	}
	return c.cache.Len()
}

// Stats 命中统计
func (c *ResponseCache) Stats() bigcache.Stats {
	if c == nil {
		return bigcache.Stats{}
	}
	return c.cache.Stats()
}

// Close 释放缓存
func (c *ResponseCache) Close() error {
	if c == nil {
		return nil
	}
	return c.cache.Close()
}
