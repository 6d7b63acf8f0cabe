package repository

import (
	"context"

	"volunteer-match-server/config"
	"volunteer-match-server/internal/model"
	"volunteer-match-server/internal/util"

	"github.com/jmoiron/sqlx"
)

type UploadRepository struct {
	*config.Database
}

func NewUploadRepository(database *config.Database) *UploadRepository {
	return &UploadRepository{database}
}

// Create : сохраняет метаданные нового файла
func (r *UploadRepository) Create(ctx context.Context, exec sqlx.ExtContext, upload *model.Upload) error {
	query := `
		INSERT INTO uploads (uuid, owner_uuid, filename_original, size_bytes, mime_type, storage_path)
		VALUES ($1, $2, $3, $4, $5, $6)
	`
	_, err := exec.ExecContext(ctx, query,
		upload.UUID,
		upload.OwnerUUID,
		upload.FilenameOriginal,
		upload.SizeBytes,
		upload.MimeType,
		upload.StoragePath)
	if err != nil {
		return util.LogError("[UploadRepo] ошибка вставки данных в БД", err)
	}
	return nil
}

// GetByUUID : ищет файл по UUID
func (r *UploadRepository) GetByUUID(ctx context.Context, exec sqlx.ExtContext, uuid string) (*model.Upload, error) {
	query := `
		SELECT uuid, owner_uuid, filename_original, size_bytes, mime_type, storage_path, created_at
		FROM uploads WHERE uuid = $1
	`
	var upload model.Upload
	err := sqlx.GetContext(ctx, exec, &upload, query, uuid)
	if err != nil {
		return nil, util.LogError("[UploadRepo] файл не найден", err)
	}
	return &upload, nil
}

// ListByOwner : файлы владельца
func (r *UploadRepository) ListByOwner(ctx context.Context, exec sqlx.ExtContext, ownerUUID string) ([]model.Upload, error) {
	query := `
		SELECT uuid, owner_uuid, filename_original, size_bytes, mime_type, storage_path, created_at
		FROM uploads
		WHERE owner_uuid = $1
		ORDER BY created_at ASC
	`
	var uploads []model.Upload
	err := sqlx.SelectContext(ctx, exec, &uploads, query, ownerUUID)
	if err != nil {
		return nil, util.LogError("[UploadRepo] не удалось получить список файлов", err)
	}
	return uploads, nil
}

// Delete : удаляет запись о файле, доступно только владельцу
func (r *UploadRepository) Delete(ctx context.Context, exec sqlx.ExtContext, uuid, ownerUUID string) error {
	query := `DELETE FROM uploads WHERE uuid = $1 AND owner_uuid = $2`

	result, err := exec.ExecContext(ctx, query, uuid, ownerUUID)
	if err != nil {
		return util.LogError("[UploadRepo] не удалось удалить файл", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return util.LogError("[UploadRepo] не удалось проверить, удален ли файл", err)
	}
	if rowsAffected == 0 {
		return util.LogError("[UploadRepo] файл для удаления не найден", err)
	}

	return nil
}
