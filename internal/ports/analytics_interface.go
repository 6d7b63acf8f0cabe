package ports

import (
	"context"

	"volunteer-match-server/internal/model"

	"github.com/jmoiron/sqlx"
)

type AnalyticsRepository interface {
	CountUsersByRole(ctx context.Context, exec sqlx.ExtContext) (map[string]int, error)
	CountOrganizations(ctx context.Context, exec sqlx.ExtContext) (int, error)
	CountOpportunitiesByStatus(ctx context.Context, exec sqlx.ExtContext) (map[string]int, error)
	CountApplicationsByStatus(ctx context.Context, exec sqlx.ExtContext) (map[string]int, error)
}

type AnalyticsService interface {
	Summary(ctx context.Context) (*model.AnalyticsSummary, error)
}
