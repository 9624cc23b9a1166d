package repository

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"

	"bizchess/internal/domain/analysis"
)

const resultKeyPrefix = "bizchess:result:"

// ResultCache keeps finished search results keyed by position and depth so
// repeated questions skip the search.
type ResultCache struct {
	client *redis.Client
}

func NewResultCache(client *redis.Client) *ResultCache {
	return &ResultCache{client: client}
}

func (c *ResultCache) GetResult(ctx context.Context, key string) (analysis.Result, bool, error) {
	raw, err := c.client.Get(ctx, resultKeyPrefix+key).Bytes()
	if errors.Is(err, redis.Nil) {
		return analysis.Result{}, false, nil
	} else if err != nil {
		return analysis.Result{}, false, err
	}

	var result analysis.Result
	if err := json.Unmarshal(raw, &result); err != nil {
		return analysis.Result{}, false, err
	}
	return result, true, nil
}

func (c *ResultCache) PutResult(ctx context.Context, key string, result analysis.Result, ttl time.Duration) error {
	raw, err := json.Marshal(result)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, resultKeyPrefix+key, raw, ttl).Err()
}
