package repository

import (
	"context"
	"fmt"

	"volunteer-match-server/config"
	"volunteer-match-server/internal/model"
	"volunteer-match-server/internal/util"

	"github.com/jmoiron/sqlx"
)

type OpportunityRepository struct {
	*config.Database
}

func NewOpportunityRepository(database *config.Database) *OpportunityRepository {
	return &OpportunityRepository{database}
}

// допустимые ключи фильтрации, всё остальное отбрасывается
var opportunityFilterColumns = map[string]string{
	"category": "category",
	"city":     "city",
	"status":   "status",
}

// Create : сохраняет новую вакансию
func (r *OpportunityRepository) Create(ctx context.Context, exec sqlx.ExtContext, opportunity *model.Opportunity) error {
	query := `
		INSERT INTO opportunities (uuid, organization_uuid, title, description, category, city, starts_at, ends_at, capacity, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`
	_, err := exec.ExecContext(ctx, query,
		opportunity.UUID,
		opportunity.OrganizationUUID,
		opportunity.Title,
		opportunity.Description,
		opportunity.Category,
		opportunity.City,
		opportunity.StartsAt,
		opportunity.EndsAt,
		opportunity.Capacity,
		opportunity.Status)
	if err != nil {
		return util.LogError("[OpportunityRepo] ошибка вставки данных в БД", err)
	}
	return nil
}

// GetByUUID : ищет вакансию по UUID
func (r *OpportunityRepository) GetByUUID(ctx context.Context, exec sqlx.ExtContext, uuid string) (*model.Opportunity, error) {
	query := `
		SELECT uuid, organization_uuid, title, description, category, city, starts_at, ends_at, capacity, status, created_at, updated_at
		FROM opportunities WHERE uuid = $1
	`
	var opportunity model.Opportunity
	err := sqlx.GetContext(ctx, exec, &opportunity, query, uuid)
	if err != nil {
		return nil, util.LogError("[OpportunityRepo] вакансия не найдена", err)
	}
	return &opportunity, nil
}

// Update : обновляет вакансию
func (r *OpportunityRepository) Update(ctx context.Context, exec sqlx.ExtContext, opportunity *model.Opportunity) error {
	query := `
		UPDATE opportunities
		SET title = $2, description = $3, category = $4, city = $5, starts_at = $6, ends_at = $7, capacity = $8, status = $9, updated_at = NOW()
		WHERE uuid = $1
	`
	_, err := exec.ExecContext(ctx, query,
		opportunity.UUID,
		opportunity.Title,
		opportunity.Description,
		opportunity.Category,
		opportunity.City,
		opportunity.StartsAt,
		opportunity.EndsAt,
		opportunity.Capacity,
		opportunity.Status)
	if err != nil {
		return util.LogError("[OpportunityRepo] не удалось обновить вакансию", err)
	}
	return nil
}

// Delete : удаляет вакансию по UUID
func (r *OpportunityRepository) Delete(ctx context.Context, exec sqlx.ExtContext, uuid string) error {
	query := `DELETE FROM opportunities WHERE uuid = $1`
	_, err := exec.ExecContext(ctx, query, uuid)
	if err != nil {
		return util.LogError("[OpportunityRepo] не удалось удалить вакансию", err)
	}
	return nil
}

// List : список вакансий с фильтром и cursor-based пагинацией
func (r *OpportunityRepository) List(ctx context.Context, exec sqlx.ExtContext, filterKey, filterValue, cursor string, limit int) ([]model.Opportunity, string, error) {
	cursorTime, cursorUUID, err := parseCursor(cursor)
	if err != nil {
		return nil, "", err
	}

	query := `
		SELECT uuid, organization_uuid, title, description, category, city, starts_at, ends_at, capacity, status, created_at, updated_at
		FROM opportunities
		WHERE (created_at, uuid) > ($1, $2)
	`
	args := []interface{}{cursorTime, cursorUUID}

	if filterKey != "" {
		column, ok := opportunityFilterColumns[filterKey]
		if !ok {
			return nil, "", fmt.Errorf("[OpportunityRepo] недопустимый ключ фильтрации: %s", filterKey)
		}
		query += fmt.Sprintf(" AND %s = $3", column)
		args = append(args, filterValue)
	}

	query += fmt.Sprintf(" ORDER BY created_at ASC, uuid ASC LIMIT $%d", len(args)+1)
	args = append(args, limit+1)

	var opportunities []model.Opportunity
	err = sqlx.SelectContext(ctx, exec, &opportunities, query, args...)
	if err != nil {
		return nil, "", util.LogError("[OpportunityRepo] не удалось получить список вакансий", err)
	}

	var nextCursor string
	if len(opportunities) > limit {
		opportunities = opportunities[:limit]
		last := opportunities[len(opportunities)-1]
		nextCursor = formatCursor(last.CreatedAt, last.UUID)
	}

	return opportunities, nextCursor, nil
}
