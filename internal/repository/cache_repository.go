package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"volunteer-match-server/config"
	"volunteer-match-server/internal/model"
	"volunteer-match-server/internal/util"

	"github.com/redis/go-redis/v9"
)

const analyticsCacheKey = "analytics:summary"

type CacheRepository struct {
	client *config.RedisClient
	ttl    time.Duration
}

func NewCacheRepository(rdb *config.RedisClient, ttl time.Duration) *CacheRepository {
	return &CacheRepository{rdb, ttl}
}

func (r *CacheRepository) SetOpportunity(ctx context.Context, opportunity *model.Opportunity) error {
	data, err := json.Marshal(opportunity)
	if err != nil {
		return util.LogError("ошибка сериализации вакансии", err)
	}

	cmd := r.client.Client.Set(ctx, r.opportunityKey(opportunity.UUID), data, r.ttl)
	if err = cmd.Err(); err != nil {
		return util.LogError("ошибка сохранения в Redis", err)
	}
	if cmd.Val() != "OK" {
		return fmt.Errorf("неожиданный ответ Redis: %s", cmd.Val())
	}

	return nil
}

func (r *CacheRepository) GetOpportunity(ctx context.Context, uuid string) (*model.Opportunity, error) {
	val, err := r.client.Client.Get(ctx, r.opportunityKey(uuid)).Result()
	if errors.Is(err, redis.Nil) {
		return nil, nil // нет в кэше
	} else if err != nil {
		return nil, util.LogError("ошибка получения вакансии из Redis", err)
	}

	var opportunity model.Opportunity
	if err := json.Unmarshal([]byte(val), &opportunity); err != nil {
		return nil, util.LogError("ошибка десериализации вакансии из кэша", err)
	}
	return &opportunity, nil
}

func (r *CacheRepository) DeleteOpportunity(ctx context.Context, uuid string) error {
	if err := r.client.Client.Del(ctx, r.opportunityKey(uuid)).Err(); err != nil {
		return util.LogError("ошибка удаления вакансии из Redis", err)
	}
	return nil
}

func (r *CacheRepository) SetAnalytics(ctx context.Context, summary *model.AnalyticsSummary) error {
	data, err := json.Marshal(summary)
	if err != nil {
		return util.LogError("ошибка сериализации аналитики", err)
	}

	if err := r.client.Client.Set(ctx, analyticsCacheKey, data, r.ttl).Err(); err != nil {
		return util.LogError("ошибка сохранения аналитики в Redis", err)
	}
	return nil
}

func (r *CacheRepository) GetAnalytics(ctx context.Context) (*model.AnalyticsSummary, error) {
	val, err := r.client.Client.Get(ctx, analyticsCacheKey).Result()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	} else if err != nil {
		return nil, util.LogError("ошибка получения аналитики из Redis", err)
	}

	var summary model.AnalyticsSummary
	if err := json.Unmarshal([]byte(val), &summary); err != nil {
		return nil, util.LogError("ошибка десериализации аналитики из кэша", err)
	}
	return &summary, nil
}

func (r *CacheRepository) DeleteAnalytics(ctx context.Context) error {
	if err := r.client.Client.Del(ctx, analyticsCacheKey).Err(); err != nil {
		return util.LogError("ошибка удаления аналитики из Redis", err)
	}
	return nil
}

func (r *CacheRepository) opportunityKey(uuid string) string {
	return fmt.Sprintf("opportunity:%s", uuid)
}
