package ports

import (
	"context"

	"volunteer-match-server/internal/model"

	"github.com/jmoiron/sqlx"
)

type VolunteerRepository interface {
	Create(ctx context.Context, exec sqlx.ExtContext, profile *model.VolunteerProfile) error
	GetByUUID(ctx context.Context, exec sqlx.ExtContext, uuid string) (*model.VolunteerProfile, error)
	GetByUser(ctx context.Context, exec sqlx.ExtContext, userUUID string) (*model.VolunteerProfile, error)
	Update(ctx context.Context, exec sqlx.ExtContext, profile *model.VolunteerProfile) error
	Delete(ctx context.Context, exec sqlx.ExtContext, uuid string) error
}

type VolunteerService interface {
	CreateProfile(ctx context.Context, profile *model.VolunteerProfile) (*model.VolunteerProfile, error)
	GetProfile(ctx context.Context, uuid string) (*model.VolunteerProfile, error)
	UpdateProfile(ctx context.Context, profile *model.VolunteerProfile) error
	DeleteProfile(ctx context.Context, uuid string) error
}
