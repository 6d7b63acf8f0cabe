package repository_test

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"volunteer-match-server/config"
	"volunteer-match-server/internal/model"
	"volunteer-match-server/internal/repository"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
)

func newMockDatabase(t *testing.T) (*config.Database, sqlmock.Sqlmock) {
	t.Helper()

	mockDB, mock, err := sqlmock.New()
	assert.NoError(t, err)
	t.Cleanup(func() { mockDB.Close() })

	db := sqlx.NewDb(mockDB, "sqlmock")
	return &config.Database{DB: db}, mock
}

func TestUserRepository_CreateUser(t *testing.T) {
	db, mock := newMockDatabase(t)
	repo := repository.NewUserRepository(db)

	createdAt := time.Now()
	rows := sqlmock.NewRows([]string{"uuid", "email", "role", "created_at"}).
		AddRow("user-123", "user@example.com", model.RoleVolunteer, createdAt)

	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO users")).
		WithArgs("user-123", "user@example.com", "hash", model.RoleVolunteer).
		WillReturnRows(rows)

	user := &model.User{
		UUID:         "user-123",
		Email:        "user@example.com",
		PasswordHash: "hash",
		Role:         model.RoleVolunteer,
	}

	created, err := repo.CreateUser(context.Background(), db, user)

	assert.NoError(t, err)
	assert.Equal(t, "user-123", created.UUID)
	assert.Equal(t, "user@example.com", created.Email)
	assert.Equal(t, model.RoleVolunteer, created.Role)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepository_CreateUser_DuplicateEmail(t *testing.T) {
	db, mock := newMockDatabase(t)
	repo := repository.NewUserRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO users")).
		WithArgs("user-123", "user@example.com", "hash", model.RoleVolunteer).
		WillReturnError(errors.New("duplicate key value violates unique constraint"))

	user := &model.User{
		UUID:         "user-123",
		Email:        "user@example.com",
		PasswordHash: "hash",
		Role:         model.RoleVolunteer,
	}

	created, err := repo.CreateUser(context.Background(), db, user)

	assert.Error(t, err)
	assert.Nil(t, created)
	assert.Contains(t, err.Error(), "[UserRepo]")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepository_FindByEmail(t *testing.T) {
	db, mock := newMockDatabase(t)
	repo := repository.NewUserRepository(db)

	rows := sqlmock.NewRows([]string{"uuid", "email", "password_hash", "role", "created_at"}).
		AddRow("user-123", "user@example.com", "hash", model.RoleVolunteer, time.Now())

	mock.ExpectQuery(regexp.QuoteMeta("SELECT uuid, email, password_hash, role, created_at FROM users WHERE email = $1")).
		WithArgs("user@example.com").
		WillReturnRows(rows)

	user, err := repo.FindByEmail(context.Background(), db, "user@example.com")

	assert.NoError(t, err)
	assert.Equal(t, "user-123", user.UUID)
	assert.Equal(t, "hash", user.PasswordHash)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepository_FindByUUID_NotFound(t *testing.T) {
	db, mock := newMockDatabase(t)
	repo := repository.NewUserRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT uuid, email, password_hash, role, created_at FROM users WHERE uuid = $1")).
		WithArgs("missing").
		WillReturnError(errors.New("sql: no rows in result set"))

	user, err := repo.FindByUUID(context.Background(), db, "missing")

	assert.Error(t, err)
	assert.Nil(t, user)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepository_UpdatePassword(t *testing.T) {
	db, mock := newMockDatabase(t)
	repo := repository.NewUserRepository(db)

	mock.ExpectExec(regexp.QuoteMeta("UPDATE users SET password_hash = $2 WHERE uuid = $1")).
		WithArgs("user-123", "new-hash").
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := repo.UpdatePassword(context.Background(), db, "user-123", "new-hash")

	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepository_DeleteUser(t *testing.T) {
	db, mock := newMockDatabase(t)
	repo := repository.NewUserRepository(db)

	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM users WHERE uuid = $1")).
		WithArgs("user-123").
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := repo.DeleteUser(context.Background(), db, "user-123")

	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepository_Exists(t *testing.T) {
	db, mock := newMockDatabase(t)
	repo := repository.NewUserRepository(db)

	rows := sqlmock.NewRows([]string{"exists"}).AddRow(true)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT EXISTS (SELECT 1 FROM users WHERE uuid = $1)")).
		WithArgs("user-123").
		WillReturnRows(rows)

	exists, err := repo.Exists(context.Background(), db, "user-123")

	assert.NoError(t, err)
	assert.True(t, exists)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepository_ListUsers_Pagination(t *testing.T) {
	db, mock := newMockDatabase(t)
	repo := repository.NewUserRepository(db)

	first := time.Now().Add(-2 * time.Hour)
	second := time.Now().Add(-1 * time.Hour)
	third := time.Now()

	// limit=2, репозиторий запрашивает limit+1 строку для определения next cursor
	rows := sqlmock.NewRows([]string{"uuid", "email", "password_hash", "role", "created_at"}).
		AddRow("u1", "a@example.com", "hash", model.RoleVolunteer, first).
		AddRow("u2", "b@example.com", "hash", model.RoleVolunteer, second).
		AddRow("u3", "c@example.com", "hash", model.RoleOrganization, third)

	mock.ExpectQuery("SELECT uuid, email, password_hash, role, created_at").
		WithArgs(time.Time{}, "", 3).
		WillReturnRows(rows)

	users, nextCursor, err := repo.ListUsers(context.Background(), db, "", 2)

	assert.NoError(t, err)
	assert.Len(t, users, 2)
	assert.Equal(t, second.Format(time.RFC3339Nano)+",u2", nextCursor)
	assert.NoError(t, mock.ExpectationsWereMet())
}

// курсор несёт UUID как tiebreaker: строки с одинаковым created_at
// на границе страницы попадают на следующую страницу, а не теряются
func TestUserRepository_ListUsers_SameCreatedAtBoundary(t *testing.T) {
	db, mock := newMockDatabase(t)
	repo := repository.NewUserRepository(db)

	shared, err := time.Parse(time.RFC3339Nano, "2026-08-01T10:00:00.000000001Z")
	assert.NoError(t, err)

	firstPage := sqlmock.NewRows([]string{"uuid", "email", "password_hash", "role", "created_at"}).
		AddRow("u1", "a@example.com", "hash", model.RoleVolunteer, shared).
		AddRow("u2", "b@example.com", "hash", model.RoleVolunteer, shared).
		AddRow("u3", "c@example.com", "hash", model.RoleVolunteer, shared)

	mock.ExpectQuery("SELECT uuid, email, password_hash, role, created_at").
		WithArgs(time.Time{}, "", 3).
		WillReturnRows(firstPage)

	users, nextCursor, err := repo.ListUsers(context.Background(), db, "", 2)
	assert.NoError(t, err)
	assert.Len(t, users, 2)
	assert.Equal(t, shared.Format(time.RFC3339Nano)+",u2", nextCursor)

	// следующая страница запрашивается по паре (created_at, uuid)
	secondPage := sqlmock.NewRows([]string{"uuid", "email", "password_hash", "role", "created_at"}).
		AddRow("u3", "c@example.com", "hash", model.RoleVolunteer, shared)

	mock.ExpectQuery("SELECT uuid, email, password_hash, role, created_at").
		WithArgs(shared, "u2", 3).
		WillReturnRows(secondPage)

	users, nextCursor, err = repo.ListUsers(context.Background(), db, nextCursor, 2)
	assert.NoError(t, err)
	assert.Len(t, users, 1)
	assert.Equal(t, "u3", users[0].UUID)
	assert.Empty(t, nextCursor)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepository_ListUsers_BadCursor(t *testing.T) {
	db, _ := newMockDatabase(t)
	repo := repository.NewUserRepository(db)

	users, nextCursor, err := repo.ListUsers(context.Background(), db, "не дата", 10)

	assert.Error(t, err)
	assert.Nil(t, users)
	assert.Empty(t, nextCursor)
}
