package repository

import (
	"context"

	"volunteer-match-server/config"
	"volunteer-match-server/internal/model"
	"volunteer-match-server/internal/util"

	"github.com/jmoiron/sqlx"
)

type OrganizationRepository struct {
	*config.Database
}

func NewOrganizationRepository(database *config.Database) *OrganizationRepository {
	return &OrganizationRepository{database}
}

// Create : сохраняет новую организацию
func (r *OrganizationRepository) Create(ctx context.Context, exec sqlx.ExtContext, organization *model.Organization) error {
	query := `
		INSERT INTO organizations (uuid, owner_uuid, name, description, website, city)
		VALUES ($1, $2, $3, $4, $5, $6)
	`
	_, err := exec.ExecContext(
		ctx,
		query,
		organization.UUID,
		organization.OwnerUUID,
		organization.Name,
		organization.Description,
		organization.Website,
		organization.City)

	if err != nil {
		return util.LogError("[OrganizationRepo] ошибка вставки данных в БД", err)
	}

	return nil
}

// GetByUUID : ищет организацию по UUID
func (r *OrganizationRepository) GetByUUID(ctx context.Context, exec sqlx.ExtContext, uuid string) (*model.Organization, error) {
	query := `
		SELECT uuid, owner_uuid, name, description, website, city, created_at, updated_at
		FROM organizations WHERE uuid = $1
	`
	var organization model.Organization
	err := sqlx.GetContext(ctx, exec, &organization, query, uuid)
	if err != nil {
		return nil, util.LogError("[OrganizationRepo] организация не найдена", err)
	}
	return &organization, nil
}

// GetByOwner : ищет организацию по UUID владельца
func (r *OrganizationRepository) GetByOwner(ctx context.Context, exec sqlx.ExtContext, ownerUUID string) (*model.Organization, error) {
	query := `
		SELECT uuid, owner_uuid, name, description, website, city, created_at, updated_at
		FROM organizations WHERE owner_uuid = $1
	`
	var organization model.Organization
	err := sqlx.GetContext(ctx, exec, &organization, query, ownerUUID)
	if err != nil {
		return nil, util.LogError("[OrganizationRepo] организация владельца не найдена", err)
	}
	return &organization, nil
}

// Update : обновляет данные организации
func (r *OrganizationRepository) Update(ctx context.Context, exec sqlx.ExtContext, organization *model.Organization) error {
	query := `
		UPDATE organizations
		SET name = $2, description = $3, website = $4, city = $5, updated_at = NOW()
		WHERE uuid = $1
	`
	_, err := exec.ExecContext(ctx, query,
		organization.UUID,
		organization.Name,
		organization.Description,
		organization.Website,
		organization.City)
	if err != nil {
		return util.LogError("[OrganizationRepo] не удалось обновить организацию", err)
	}
	return nil
}

// Delete : удаляет организацию по UUID
func (r *OrganizationRepository) Delete(ctx context.Context, exec sqlx.ExtContext, uuid string) error {
	query := `DELETE FROM organizations WHERE uuid = $1`
	_, err := exec.ExecContext(ctx, query, uuid)
	if err != nil {
		return util.LogError("[OrganizationRepo] не удалось удалить организацию", err)
	}
	return nil
}

// List : список организаций с cursor-based пагинацией
// по составному ключу (created_at, uuid)
func (r *OrganizationRepository) List(ctx context.Context, exec sqlx.ExtContext, cursor string, limit int) ([]*model.Organization, string, error) {
	query := `
		SELECT uuid, owner_uuid, name, description, website, city, created_at, updated_at
		FROM organizations
		WHERE (created_at, uuid) > ($1, $2)
		ORDER BY created_at ASC, uuid ASC
		LIMIT $3
	`

	cursorTime, cursorUUID, err := parseCursor(cursor)
	if err != nil {
		return nil, "", err
	}

	var organizations []*model.Organization
	err = sqlx.SelectContext(ctx, exec, &organizations, query, cursorTime, cursorUUID, limit+1)
	if err != nil {
		return nil, "", util.LogError("[OrganizationRepo] не удалось получить список организаций", err)
	}

	var nextCursor string
	if len(organizations) > limit {
		organizations = organizations[:limit]
		last := organizations[len(organizations)-1]
		nextCursor = formatCursor(last.CreatedAt, last.UUID)
	}

	return organizations, nextCursor, nil
}
