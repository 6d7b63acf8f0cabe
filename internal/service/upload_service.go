package service

import (
	"context"
	"fmt"
	"log"
	"time"

	"volunteer-match-server/config"
	"volunteer-match-server/internal/model"
	"volunteer-match-server/internal/ports"
	"volunteer-match-server/internal/security"
	"volunteer-match-server/internal/util"

	"github.com/google/uuid"
)

type UploadService struct {
	uploadRepository ports.UploadRepository
	storageInterface ports.S3Storage
	ttl              time.Duration
}

func NewUploadService(
	uploadRepository ports.UploadRepository,
	storageInterface ports.S3Storage,
	ttl time.Duration,
) *UploadService {
	return &UploadService{
		uploadRepository: uploadRepository,
		storageInterface: storageInterface,
		ttl:              ttl,
	}
}

// CreateUpload : регистрирует файл и возвращает pre-signed PUT URL для загрузки.
// Сам файл клиент кладёт в S3 напрямую, через сервер он не проходит.
func (s *UploadService) CreateUpload(ctx context.Context, upload *model.Upload) (*model.CreateUploadResult, error) {
	claims, err := security.GetClaimsFromContext(ctx)
	if err != nil || claims == nil {
		return nil, fmt.Errorf("[UploadService] пользователь не авторизован")
	}

	db, ok := ctx.Value("db").(*config.Database)
	if !ok {
		return nil, fmt.Errorf("[UploadService] database connection не найден в context")
	}

	if upload.FilenameOriginal == "" {
		return nil, fmt.Errorf("[UploadService] имя файла обязательно")
	}

	upload.UUID = uuid.New().String()
	upload.OwnerUUID = claims.UserUUID
	upload.StoragePath = fmt.Sprintf("uploads/%s/%s", upload.OwnerUUID, upload.UUID)

	putURL, err := s.storageInterface.GeneratePresignedPutURL(ctx, upload.StoragePath, s.ttl)
	if err != nil {
		return nil, util.LogError("[UploadService] не удалось сгенерировать pre-signed PUT URL", err)
	}

	if err := s.uploadRepository.Create(ctx, db, upload); err != nil {
		return nil, util.LogError("[UploadService] не удалось сохранить файл в БД", err)
	}

	log.Printf("[UploadService] файл %s успешно зарегистрирован", upload.FilenameOriginal)

	return &model.CreateUploadResult{
		Upload: upload,
		PutURL: putURL,
	}, nil
}

// GetUpload : возвращает метаданные файла с pre-signed GET URL.
// Доступ имеют владелец и админ.
func (s *UploadService) GetUpload(ctx context.Context, uploadUUID string) (*model.UploadResponse, error) {
	claims, err := security.GetClaimsFromContext(ctx)
	if err != nil || claims == nil {
		return nil, fmt.Errorf("[UploadService] пользователь не авторизован")
	}

	db, ok := ctx.Value("db").(*config.Database)
	if !ok {
		return nil, fmt.Errorf("[UploadService] database connection не найден в context")
	}

	upload, err := s.uploadRepository.GetByUUID(ctx, db, uploadUUID)
	if err != nil || upload == nil {
		return nil, fmt.Errorf("[UploadService] файл не найден")
	}

	if claims.IsAdmin == false && upload.OwnerUUID != claims.UserUUID {
		return nil, fmt.Errorf("[UploadService] доступ запрещён")
	}

	getURL, err := s.storageInterface.GeneratePresignedGetURL(ctx, upload.StoragePath, s.ttl)
	if err != nil {
		return nil, util.LogError("[UploadService] не удалось сгенерировать pre-signed GET URL", err)
	}

	return &model.UploadResponse{
		UUID:             upload.UUID,
		FilenameOriginal: upload.FilenameOriginal,
		MimeType:         upload.MimeType,
		PresignedURL:     getURL,
		CreatedAt:        upload.CreatedAt,
	}, nil
}

// ListUploads : файлы текущего пользователя с pre-signed GET URL
func (s *UploadService) ListUploads(ctx context.Context) ([]model.UploadResponse, error) {
	claims, err := security.GetClaimsFromContext(ctx)
	if err != nil || claims == nil {
		return nil, fmt.Errorf("[UploadService] пользователь не авторизован")
	}

	db, ok := ctx.Value("db").(*config.Database)
	if !ok {
		return nil, fmt.Errorf("[UploadService] database connection не найден в context")
	}

	uploads, err := s.uploadRepository.ListByOwner(ctx, db, claims.UserUUID)
	if err != nil {
		return nil, util.LogError("[UploadService] не удалось получить список файлов", err)
	}

	responses := make([]model.UploadResponse, 0, len(uploads))

	for _, upload := range uploads {
		url, err := s.storageInterface.GeneratePresignedGetURL(ctx, upload.StoragePath, s.ttl)
		if err != nil {
			log.Printf("[UploadService] ошибка генерации pre-signed URL для файла %s: %v", upload.UUID, err)
			url = ""
		}

		responses = append(responses, model.UploadResponse{
			UUID:             upload.UUID,
			FilenameOriginal: upload.FilenameOriginal,
			MimeType:         upload.MimeType,
			PresignedURL:     url,
			CreatedAt:        upload.CreatedAt,
		})
	}

	return responses, nil
}

// DeleteUpload : удаляет запись из БД, затем объект из S3.
// Порядок важен: если запись удалить не удалось, файл остаётся на месте.
func (s *UploadService) DeleteUpload(ctx context.Context, uploadUUID string) error {
	claims, err := security.GetClaimsFromContext(ctx)
	if err != nil || claims == nil {
		return fmt.Errorf("[UploadService] пользователь не авторизован")
	}

	db, ok := ctx.Value("db").(*config.Database)
	if !ok {
		return fmt.Errorf("[UploadService] database connection не найден в context")
	}

	upload, err := s.uploadRepository.GetByUUID(ctx, db, uploadUUID)
	if err != nil || upload == nil {
		return fmt.Errorf("[UploadService] файл не найден")
	}

	if claims.IsAdmin == false && upload.OwnerUUID != claims.UserUUID {
		return fmt.Errorf("[UploadService] доступ запрещён")
	}

	if err := s.uploadRepository.Delete(ctx, db, uploadUUID, upload.OwnerUUID); err != nil {
		return util.LogError("[UploadService] ошибка удаления файла из БД", err)
	}

	if err := s.storageInterface.DeleteObject(ctx, upload.StoragePath); err != nil {
		return util.LogError("[UploadService] ошибка удаления файла из S3", err)
	}

	log.Printf("[UploadService] файл %s успешно удален", upload.FilenameOriginal)

	return nil
}
