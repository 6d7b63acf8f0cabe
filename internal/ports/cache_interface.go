package ports

import (
	"context"

	"volunteer-match-server/internal/model"
)

// CacheRepository : Redis слой
type CacheRepository interface {
	SetOpportunity(ctx context.Context, opportunity *model.Opportunity) error
	GetOpportunity(ctx context.Context, uuid string) (*model.Opportunity, error)
	DeleteOpportunity(ctx context.Context, uuid string) error
	SetAnalytics(ctx context.Context, summary *model.AnalyticsSummary) error
	GetAnalytics(ctx context.Context) (*model.AnalyticsSummary, error)
	DeleteAnalytics(ctx context.Context) error
}
