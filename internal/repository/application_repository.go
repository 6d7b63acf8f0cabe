package repository

import (
	"context"
	"database/sql"
	"errors"

	"volunteer-match-server/config"
	"volunteer-match-server/internal/model"
	"volunteer-match-server/internal/util"

	"github.com/jmoiron/sqlx"
)

type ApplicationRepository struct {
	*config.Database
}

func NewApplicationRepository(database *config.Database) *ApplicationRepository {
	return &ApplicationRepository{database}
}

// BeginTX : открывает транзакцию, возвращает exec, rollback и commit
func (r *ApplicationRepository) BeginTX(ctx context.Context) (sqlx.ExtContext, func() error, func() error, error) {
	tx, err := r.DB.BeginTxx(ctx, nil)
	if err != nil {
		return nil, nil, nil, util.LogError("[ApplicationRepo] не удалось начать транзакцию", err)
	}

	rollback := func() error {
		if err := tx.Rollback(); err != nil && !errors.Is(err, sql.ErrTxDone) {
			return err
		}
		return nil
	}

	return tx, rollback, tx.Commit, nil
}

// Create : сохраняет новую заявку
func (r *ApplicationRepository) Create(ctx context.Context, exec sqlx.ExtContext, application *model.Application) error {
	query := `
		INSERT INTO applications (uuid, opportunity_uuid, volunteer_uuid, message, status)
		VALUES ($1, $2, $3, $4, $5)
	`
	_, err := exec.ExecContext(ctx, query,
		application.UUID,
		application.OpportunityUUID,
		application.VolunteerUUID,
		application.Message,
		application.Status)
	if err != nil {
		return util.LogError("[ApplicationRepo] ошибка вставки данных в БД", err)
	}
	return nil
}

// GetByUUID : ищет заявку по UUID
func (r *ApplicationRepository) GetByUUID(ctx context.Context, exec sqlx.ExtContext, uuid string) (*model.Application, error) {
	query := `
		SELECT uuid, opportunity_uuid, volunteer_uuid, message, status, created_at, updated_at
		FROM applications WHERE uuid = $1
	`
	var application model.Application
	err := sqlx.GetContext(ctx, exec, &application, query, uuid)
	if err != nil {
		return nil, util.LogError("[ApplicationRepo] заявка не найдена", err)
	}
	return &application, nil
}

// UpdateStatus : меняет статус заявки
func (r *ApplicationRepository) UpdateStatus(ctx context.Context, exec sqlx.ExtContext, uuid, status string) error {
	query := `UPDATE applications SET status = $2, updated_at = NOW() WHERE uuid = $1`

	result, err := exec.ExecContext(ctx, query, uuid, status)
	if err != nil {
		return util.LogError("[ApplicationRepo] не удалось обновить статус заявки", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return util.LogError("[ApplicationRepo] не удалось проверить, обновлена ли заявка", err)
	}
	if rowsAffected == 0 {
		return util.LogError("[ApplicationRepo] заявка для обновления не найдена", err)
	}

	return nil
}

// ListByOpportunity : заявки на конкретную вакансию
func (r *ApplicationRepository) ListByOpportunity(ctx context.Context, exec sqlx.ExtContext, opportunityUUID string) ([]model.Application, error) {
	query := `
		SELECT uuid, opportunity_uuid, volunteer_uuid, message, status, created_at, updated_at
		FROM applications
		WHERE opportunity_uuid = $1
		ORDER BY created_at ASC
	`
	var applications []model.Application
	err := sqlx.SelectContext(ctx, exec, &applications, query, opportunityUUID)
	if err != nil {
		return nil, util.LogError("[ApplicationRepo] не удалось получить заявки вакансии", err)
	}
	return applications, nil
}

// ListByVolunteer : заявки конкретного волонтёра
func (r *ApplicationRepository) ListByVolunteer(ctx context.Context, exec sqlx.ExtContext, volunteerUUID string) ([]model.Application, error) {
	query := `
		SELECT uuid, opportunity_uuid, volunteer_uuid, message, status, created_at, updated_at
		FROM applications
		WHERE volunteer_uuid = $1
		ORDER BY created_at ASC
	`
	var applications []model.Application
	err := sqlx.SelectContext(ctx, exec, &applications, query, volunteerUUID)
	if err != nil {
		return nil, util.LogError("[ApplicationRepo] не удалось получить заявки волонтёра", err)
	}
	return applications, nil
}

// CountByStatus : количество заявок вакансии в заданном статусе
func (r *ApplicationRepository) CountByStatus(ctx context.Context, exec sqlx.ExtContext, opportunityUUID, status string) (int, error) {
	var count int
	query := `SELECT COUNT(*) FROM applications WHERE opportunity_uuid = $1 AND status = $2`
	err := sqlx.GetContext(ctx, exec, &count, query, opportunityUUID, status)
	if err != nil {
		return 0, util.LogError("[ApplicationRepo] ошибка подсчёта заявок", err)
	}
	return count, nil
}

// ExistsForVolunteer : есть ли уже активная заявка волонтёра на вакансию
func (r *ApplicationRepository) ExistsForVolunteer(ctx context.Context, exec sqlx.ExtContext, opportunityUUID, volunteerUUID string) (bool, error) {
	var exists bool
	query := `
		SELECT EXISTS (
			SELECT 1 FROM applications
			WHERE opportunity_uuid = $1 AND volunteer_uuid = $2 AND status != $3
		)
	`
	err := sqlx.GetContext(ctx, exec, &exists, query, opportunityUUID, volunteerUUID, model.ApplicationStatusWithdrawn)
	if err != nil {
		return false, util.LogError("[ApplicationRepo] ошибка проверки существования заявки", err)
	}
	return exists, nil
}
