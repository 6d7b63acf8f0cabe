package ports

import (
	"context"

	"volunteer-match-server/internal/model"

	"github.com/jmoiron/sqlx"
)

type UploadRepository interface {
	Create(ctx context.Context, exec sqlx.ExtContext, upload *model.Upload) error
	GetByUUID(ctx context.Context, exec sqlx.ExtContext, uuid string) (*model.Upload, error)
	ListByOwner(ctx context.Context, exec sqlx.ExtContext, ownerUUID string) ([]model.Upload, error)
	Delete(ctx context.Context, exec sqlx.ExtContext, uuid, ownerUUID string) error
}

type UploadService interface {
	CreateUpload(ctx context.Context, upload *model.Upload) (*model.CreateUploadResult, error)
	GetUpload(ctx context.Context, uuid string) (*model.UploadResponse, error)
	ListUploads(ctx context.Context) ([]model.UploadResponse, error)
	DeleteUpload(ctx context.Context, uuid string) error
}
