package repository

import (
	"context"

	"volunteer-match-server/config"
	"volunteer-match-server/internal/model"
	"volunteer-match-server/internal/util"

	"github.com/jmoiron/sqlx"
)

type VolunteerRepository struct {
	*config.Database
}

func NewVolunteerRepository(database *config.Database) *VolunteerRepository {
	return &VolunteerRepository{database}
}

// Create : сохраняет новый профиль волонтёра
func (r *VolunteerRepository) Create(ctx context.Context, exec sqlx.ExtContext, profile *model.VolunteerProfile) error {
	query := `
		INSERT INTO volunteer_profiles (uuid, user_uuid, full_name, bio, skills, city)
		VALUES ($1, $2, $3, $4, $5, $6)
	`
	_, err := exec.ExecContext(ctx, query,
		profile.UUID,
		profile.UserUUID,
		profile.FullName,
		profile.Bio,
		profile.Skills,
		profile.City)
	if err != nil {
		return util.LogError("[VolunteerRepo] ошибка вставки данных в БД", err)
	}
	return nil
}

// GetByUUID : ищет профиль по UUID
func (r *VolunteerRepository) GetByUUID(ctx context.Context, exec sqlx.ExtContext, uuid string) (*model.VolunteerProfile, error) {
	query := `
		SELECT uuid, user_uuid, full_name, bio, skills, city, created_at, updated_at
		FROM volunteer_profiles WHERE uuid = $1
	`
	var profile model.VolunteerProfile
	err := sqlx.GetContext(ctx, exec, &profile, query, uuid)
	if err != nil {
		return nil, util.LogError("[VolunteerRepo] профиль не найден", err)
	}
	return &profile, nil
}

// GetByUser : ищет профиль по UUID пользователя
func (r *VolunteerRepository) GetByUser(ctx context.Context, exec sqlx.ExtContext, userUUID string) (*model.VolunteerProfile, error) {
	query := `
		SELECT uuid, user_uuid, full_name, bio, skills, city, created_at, updated_at
		FROM volunteer_profiles WHERE user_uuid = $1
	`
	var profile model.VolunteerProfile
	err := sqlx.GetContext(ctx, exec, &profile, query, userUUID)
	if err != nil {
		return nil, util.LogError("[VolunteerRepo] профиль пользователя не найден", err)
	}
	return &profile, nil
}

// Update : обновляет профиль волонтёра
func (r *VolunteerRepository) Update(ctx context.Context, exec sqlx.ExtContext, profile *model.VolunteerProfile) error {
	query := `
		UPDATE volunteer_profiles
		SET full_name = $2, bio = $3, skills = $4, city = $5, updated_at = NOW()
		WHERE uuid = $1
	`
	_, err := exec.ExecContext(ctx, query,
		profile.UUID,
		profile.FullName,
		profile.Bio,
		profile.Skills,
		profile.City)
	if err != nil {
		return util.LogError("[VolunteerRepo] не удалось обновить профиль", err)
	}
	return nil
}

// Delete : удаляет профиль по UUID
func (r *VolunteerRepository) Delete(ctx context.Context, exec sqlx.ExtContext, uuid string) error {
	query := `DELETE FROM volunteer_profiles WHERE uuid = $1`
	_, err := exec.ExecContext(ctx, query, uuid)
	if err != nil {
		return util.LogError("[VolunteerRepo] не удалось удалить профиль", err)
	}
	return nil
}
