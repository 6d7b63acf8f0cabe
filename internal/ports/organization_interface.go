package ports

import (
	"context"

	"volunteer-match-server/internal/model"

	"github.com/jmoiron/sqlx"
)

type OrganizationRepository interface {
	Create(ctx context.Context, exec sqlx.ExtContext, organization *model.Organization) error
	GetByUUID(ctx context.Context, exec sqlx.ExtContext, uuid string) (*model.Organization, error)
	GetByOwner(ctx context.Context, exec sqlx.ExtContext, ownerUUID string) (*model.Organization, error)
	Update(ctx context.Context, exec sqlx.ExtContext, organization *model.Organization) error
	Delete(ctx context.Context, exec sqlx.ExtContext, uuid string) error
	List(ctx context.Context, exec sqlx.ExtContext, cursor string, limit int) ([]*model.Organization, string, error)
}

type OrganizationService interface {
	CreateOrganization(ctx context.Context, organization *model.Organization) (*model.Organization, error)
	GetOrganization(ctx context.Context, uuid string) (*model.Organization, error)
	UpdateOrganization(ctx context.Context, organization *model.Organization) error
	DeleteOrganization(ctx context.Context, uuid string) error
	ListOrganizations(ctx context.Context, cursor string, limit int) ([]*model.Organization, string, error)
}
