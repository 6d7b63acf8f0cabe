package ports

import (
	"context"

	"volunteer-match-server/internal/model"

	"github.com/jmoiron/sqlx"
)

type UserRepository interface {
	CreateUser(ctx context.Context, exec sqlx.ExtContext, user *model.User) (*model.User, error)
	FindByUUID(ctx context.Context, exec sqlx.ExtContext, uuid string) (*model.User, error)
	FindByEmail(ctx context.Context, exec sqlx.ExtContext, email string) (*model.User, error)
	UpdateUser(ctx context.Context, exec sqlx.ExtContext, user *model.User) error
	UpdatePassword(ctx context.Context, exec sqlx.ExtContext, uuid, newPasswordHash string) error
	DeleteUser(ctx context.Context, exec sqlx.ExtContext, uuid string) error
	ListUsers(ctx context.Context, exec sqlx.ExtContext, cursor string, limit int) ([]*model.User, string, error)
	Exists(ctx context.Context, exec sqlx.ExtContext, uuid string) (bool, error)
}

type UserService interface {
	Register(ctx context.Context, email string, password string, role string) (*model.User, error)
	GetUser(ctx context.Context, uuid string) (*model.User, error)
	UpdateUser(ctx context.Context, updatedUser *model.User) error
	UpdatePassword(ctx context.Context, uuid string, newPassword string) error
	DeleteUser(ctx context.Context, uuid string) error
	ListUsers(ctx context.Context, cursor string, limit int) ([]*model.User, string, error)
}
