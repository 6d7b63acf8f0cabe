package service

import (
	"context"
	"fmt"
	"log"

	"volunteer-match-server/config"
	"volunteer-match-server/internal/model"
	"volunteer-match-server/internal/ports"
	"volunteer-match-server/internal/util"
)

type AnalyticsService struct {
	analyticsRepository ports.AnalyticsRepository
	cacheRepository     ports.CacheRepository
}

func NewAnalyticsService(
	analyticsRepository ports.AnalyticsRepository,
	cacheRepository ports.CacheRepository,
) *AnalyticsService {
	return &AnalyticsService{
		analyticsRepository: analyticsRepository,
		cacheRepository:     cacheRepository,
	}
}

// Summary : сводные счётчики по системе, сначала кэш, при промахе БД
func (s *AnalyticsService) Summary(ctx context.Context) (*model.AnalyticsSummary, error) {
	summary, err := s.cacheRepository.GetAnalytics(ctx)
	if err != nil {
		log.Printf("[AnalyticsService] ошибка чтения кэша: %v", err)
	}

	if summary != nil {
		log.Printf("[AnalyticsService] сводка взята из кэша Redis")
		return summary, nil
	}

	db, ok := ctx.Value("db").(*config.Database)
	if !ok {
		return nil, fmt.Errorf("[AnalyticsService] database connection не найден в context")
	}

	usersByRole, err := s.analyticsRepository.CountUsersByRole(ctx, db)
	if err != nil {
		return nil, util.LogError("[AnalyticsService] ошибка подсчёта пользователей", err)
	}

	organizations, err := s.analyticsRepository.CountOrganizations(ctx, db)
	if err != nil {
		return nil, util.LogError("[AnalyticsService] ошибка подсчёта организаций", err)
	}

	opportunitiesByStatus, err := s.analyticsRepository.CountOpportunitiesByStatus(ctx, db)
	if err != nil {
		return nil, util.LogError("[AnalyticsService] ошибка подсчёта вакансий", err)
	}

	applicationsByStatus, err := s.analyticsRepository.CountApplicationsByStatus(ctx, db)
	if err != nil {
		return nil, util.LogError("[AnalyticsService] ошибка подсчёта заявок", err)
	}

	summary = &model.AnalyticsSummary{
		UsersByRole:          usersByRole,
		Organizations:        organizations,
		OpportunitiesByState: opportunitiesByStatus,
		ApplicationsByState:  applicationsByStatus,
	}

	if err := s.cacheRepository.SetAnalytics(ctx, summary); err != nil {
		log.Printf("[AnalyticsService] ошибка кэширования сводки: %v", err)
	}

	return summary, nil
}
