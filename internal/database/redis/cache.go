package redis

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	repository "github.com/ds124wfegd/boxoffice/internal/database/postgres"
	"github.com/ds124wfegd/boxoffice/internal/entity"

	"github.com/redis/go-redis/v9"
)

const (
	statsKey   = "boxoffice:stats"
	reportKey  = "boxoffice:report"
	popularKey = "boxoffice:popular_items"
)

type CacheRepository struct {
	client *redis.Client
}

func NewCacheRepository(client *redis.Client) repository.CacheRepository {
	return &CacheRepository{client: client}
}

func (r *CacheRepository) SetStats(ctx context.Context, stats *entity.CatalogStats, ttl time.Duration) error {
	data, err := json.Marshal(stats)
	if err != nil {
		return err
	}

	return r.client.Set(ctx, statsKey, data, ttl).Err()
}

func (r *CacheRepository) GetStats(ctx context.Context) (*entity.CatalogStats, error) {
	data, err := r.client.Get(ctx, statsKey).Result()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var stats entity.CatalogStats
	if err := json.Unmarshal([]byte(data), &stats); err != nil {
		return nil, err
	}

	return &stats, nil
}

func (r *CacheRepository) SetReport(ctx context.Context, report string, ttl time.Duration) error {
	return r.client.Set(ctx, reportKey, report, ttl).Err()
}

func (r *CacheRepository) GetReport(ctx context.Context) (*string, error) {
	report, err := r.client.Get(ctx, reportKey).Result()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &report, nil
}

func (r *CacheRepository) Invalidate(ctx context.Context) error {
	return r.client.Del(ctx, statsKey, reportKey).Err()
}

func (r *CacheRepository) IncrementPopularity(ctx context.Context, itemCode string, tickets int) error {
	return r.client.ZIncrBy(ctx, popularKey, float64(tickets), itemCode).Err()
}

func (r *CacheRepository) GetPopularItems(ctx context.Context, limit int) ([]entity.PopularItem, error) {
	result, err := r.client.ZRevRangeWithScores(ctx, popularKey, 0, int64(limit-1)).Result()
	if err != nil {
		return nil, err
	}

	items := make([]entity.PopularItem, 0, len(result))
	for _, z := range result {
		code, ok := z.Member.(string)
		if !ok {
			continue
		}
		items = append(items, entity.PopularItem{Code: code, TicketsSold: int64(z.Score)})
	}
	return items, nil
}

func (r *CacheRepository) ResetPopularity(ctx context.Context, items []entity.PopularItem) error {
	_, err := r.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Del(ctx, popularKey)
		for _, item := range items {
			pipe.ZAdd(ctx, popularKey, redis.Z{Score: float64(item.TicketsSold), Member: item.Code})
		}
		return nil
	})
	return err
}
