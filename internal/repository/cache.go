package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/spm-engineering/billing-service/internal/config"
	"github.com/spm-engineering/billing-service/internal/logging"
	"github.com/spm-engineering/billing-service/internal/models"
)

const (
	invoiceKeyPrefix = "invoice:"
	statsKey         = "dashboard:stats"
	defaultCacheTTL  = 5 * time.Minute
	defaultStatsTTL  = time.Minute
)

// NewRedisClient builds the client shared by the cache, the rate limiter and the lock.
func NewRedisClient(cfg config.RedisConfig) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
		Password: cfg.Password,
		DB:       cfg.DB,
	})
}

// RedisInvoiceCache implements InvoiceCache on Redis.
type RedisInvoiceCache struct {
	client   redis.Cmdable
	ttl      time.Duration
	statsTTL time.Duration
	logger   *logging.Logger
}

func NewRedisInvoiceCache(client redis.Cmdable, cfg config.RedisConfig) *RedisInvoiceCache {
	ttl := cfg.TTL
	if ttl == 0 {
		ttl = defaultCacheTTL
	}
	statsTTL := cfg.StatsTTL
	if statsTTL == 0 {
		statsTTL = defaultStatsTTL
	}

	return &RedisInvoiceCache{
		client:   client,
		ttl:      ttl,
		statsTTL: statsTTL,
		logger:   logging.NewLogger("invoice-cache"),
	}
}

func (c *RedisInvoiceCache) Get(ctx context.Context, id string) (*models.Invoice, error) {
	var inv models.Invoice
	ok, err := c.getJSON(ctx, invoiceKeyPrefix+id, &inv)
	if err != nil || !ok {
		return nil, err
	}
	c.logger.Debug("Cache hit", logging.Fields{"invoice_id": id})
	return &inv, nil
}

func (c *RedisInvoiceCache) Set(ctx context.Context, inv *models.Invoice) error {
	return c.setJSON(ctx, invoiceKeyPrefix+inv.ID, inv, c.ttl)
}

func (c *RedisInvoiceCache) Delete(ctx context.Context, id string) error {
	if err := c.client.Del(ctx, invoiceKeyPrefix+id).Err(); err != nil {
		c.logger.Error("Cache delete error", logging.Fields{
			"invoice_id": id,
			"error":      err.Error(),
		})
		return err
	}
	return nil
}

func (c *RedisInvoiceCache) GetStats(ctx context.Context) (*models.DashboardStats, error) {
	var stats models.DashboardStats
	ok, err := c.getJSON(ctx, statsKey, &stats)
	if err != nil || !ok {
		return nil, err
	}
	return &stats, nil
}

func (c *RedisInvoiceCache) SetStats(ctx context.Context, stats *models.DashboardStats) error {
	return c.setJSON(ctx, statsKey, stats, c.statsTTL)
}

func (c *RedisInvoiceCache) InvalidateStats(ctx context.Context) error {
	return c.client.Del(ctx, statsKey).Err()
}

func (c *RedisInvoiceCache) getJSON(ctx context.Context, key string, dst interface{}) (bool, error) {
	data, err := c.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		c.logger.Debug("Cache miss", logging.Fields{"key": key})
		return false, nil
	}
	if err != nil {
		c.logger.Error("Cache get error", logging.Fields{
			"key":   key,
			"error": err.Error(),
		})
		return false, err
	}
	if err := json.Unmarshal(data, dst); err != nil {
		return false, err
	}
	return true, nil
}

func (c *RedisInvoiceCache) setJSON(ctx context.Context, key string, v interface{}, ttl time.Duration) error {
	data, err := json.Marshal(v)
	if err != nil {
		return err
	}
	if err := c.client.Set(ctx, key, data, ttl).Err(); err != nil {
		c.logger.Error("Cache set error", logging.Fields{
			"key":   key,
			"error": err.Error(),
		})
		return err
	}
	return nil
}
