package ports

import (
	"context"

	"volunteer-match-server/internal/model"

	"github.com/jmoiron/sqlx"
)

type ApplicationRepository interface {
	Create(ctx context.Context, exec sqlx.ExtContext, application *model.Application) error
	GetByUUID(ctx context.Context, exec sqlx.ExtContext, uuid string) (*model.Application, error)
	UpdateStatus(ctx context.Context, exec sqlx.ExtContext, uuid, status string) error
	ListByOpportunity(ctx context.Context, exec sqlx.ExtContext, opportunityUUID string) ([]model.Application, error)
	ListByVolunteer(ctx context.Context, exec sqlx.ExtContext, volunteerUUID string) ([]model.Application, error)
	CountByStatus(ctx context.Context, exec sqlx.ExtContext, opportunityUUID, status string) (int, error)
	ExistsForVolunteer(ctx context.Context, exec sqlx.ExtContext, opportunityUUID, volunteerUUID string) (bool, error)
	BeginTX(ctx context.Context) (sqlx.ExtContext, func() error, func() error, error)
}

type ApplicationService interface {
	Apply(ctx context.Context, opportunityUUID, message string) (*model.Application, error)
	Withdraw(ctx context.Context, applicationUUID string) error
	Decide(ctx context.Context, applicationUUID, status string) error
	ListForOpportunity(ctx context.Context, opportunityUUID string) ([]model.Application, error)
	ListForVolunteer(ctx context.Context) ([]model.Application, error)
}
