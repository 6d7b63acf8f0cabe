package repository

import (
	"context"

	"volunteer-match-server/config"
	"volunteer-match-server/internal/util"

	"github.com/jmoiron/sqlx"
)

type AnalyticsRepository struct {
	*config.Database
}

func NewAnalyticsRepository(database *config.Database) *AnalyticsRepository {
	return &AnalyticsRepository{database}
}

type countRow struct {
	Key   string `db:"key"`
	Count int    `db:"count"`
}

// CountUsersByRole : количество пользователей по ролям
func (r *AnalyticsRepository) CountUsersByRole(ctx context.Context, exec sqlx.ExtContext) (map[string]int, error) {
	query := `SELECT role AS key, COUNT(*) AS count FROM users GROUP BY role`
	return r.countGrouped(ctx, exec, query, "[AnalyticsRepo] ошибка подсчёта пользователей")
}

// CountOrganizations : общее количество организаций
func (r *AnalyticsRepository) CountOrganizations(ctx context.Context, exec sqlx.ExtContext) (int, error) {
	var count int
	query := `SELECT COUNT(*) FROM organizations`
	err := sqlx.GetContext(ctx, exec, &count, query)
	if err != nil {
		return 0, util.LogError("[AnalyticsRepo] ошибка подсчёта организаций", err)
	}
	return count, nil
}

// CountOpportunitiesByStatus : количество вакансий по статусам
func (r *AnalyticsRepository) CountOpportunitiesByStatus(ctx context.Context, exec sqlx.ExtContext) (map[string]int, error) {
	query := `SELECT status AS key, COUNT(*) AS count FROM opportunities GROUP BY status`
	return r.countGrouped(ctx, exec, query, "[AnalyticsRepo] ошибка подсчёта вакансий")
}

// CountApplicationsByStatus : количество заявок по статусам
func (r *AnalyticsRepository) CountApplicationsByStatus(ctx context.Context, exec sqlx.ExtContext) (map[string]int, error) {
	query := `SELECT status AS key, COUNT(*) AS count FROM applications GROUP BY status`
	return r.countGrouped(ctx, exec, query, "[AnalyticsRepo] ошибка подсчёта заявок")
}

func (r *AnalyticsRepository) countGrouped(ctx context.Context, exec sqlx.ExtContext, query string, errMessage string) (map[string]int, error) {
	var rows []countRow
	if err := sqlx.SelectContext(ctx, exec, &rows, query); err != nil {
		return nil, util.LogError(errMessage, err)
	}

	counts := make(map[string]int, len(rows))
	for _, row := range rows {
		counts[row.Key] = row.Count
	}
	return counts, nil
}
