package cache

import (
	"context"
	"encoding/json"
	"time"

	"github.com/pkg/errors"
	"github.com/redis/go-redis/v9"

	"ayana_shop/internal/models"
)

const DiscountCacheTTL = 5 * time.Minute

// DiscountCache copie courte durée des codes de réduction
type DiscountCache struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewDiscountCache(rdb *redis.Client) *DiscountCache {
	return &DiscountCache{rdb: rdb, ttl: DiscountCacheTTL}
}

func discountKey(code string) string {
	return "discount:" + code
}

func (c *DiscountCache) Get(ctx context.Context, code string) (*models.Discount, bool) {
	data, err := c.rdb.Get(ctx, discountKey(code)).Bytes()
	if err != nil {
		return nil, false
	}
	var d models.Discount
	if err := json.Unmarshal(data, &d); err != nil {
		return nil, false
	}
	return &d, true
}

func (c *DiscountCache) Set(ctx context.Context, d models.Discount) error {
	data, err := json.Marshal(d)
	if err != nil {
		return err
	}
	return errors.Wrap(c.rdb.Set(ctx, discountKey(d.Code), data, c.ttl).Err(), "cache réduction")
}
