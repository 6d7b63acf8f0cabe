package ports

import (
	"context"

	"volunteer-match-server/internal/model"

	"github.com/jmoiron/sqlx"
)

// OpportunityRepository : SQL слой
type OpportunityRepository interface {
	Create(ctx context.Context, exec sqlx.ExtContext, opportunity *model.Opportunity) error
	GetByUUID(ctx context.Context, exec sqlx.ExtContext, uuid string) (*model.Opportunity, error)
	Update(ctx context.Context, exec sqlx.ExtContext, opportunity *model.Opportunity) error
	Delete(ctx context.Context, exec sqlx.ExtContext, uuid string) error
	List(ctx context.Context, exec sqlx.ExtContext, filterKey, filterValue, cursor string, limit int) ([]model.Opportunity, string, error)
}

type OpportunityService interface {
	CreateOpportunity(ctx context.Context, opportunity *model.Opportunity) (*model.Opportunity, error)
	GetOpportunity(ctx context.Context, uuid string) (*model.Opportunity, error)
	UpdateOpportunity(ctx context.Context, opportunity *model.Opportunity) error
	DeleteOpportunity(ctx context.Context, uuid string) error
	ListOpportunities(ctx context.Context, filterKey, filterValue, cursor string, limit int) ([]model.Opportunity, string, error)
}
