package service_test

import (
	"context"
	"errors"
	"testing"

	"volunteer-match-server/config"
	"volunteer-match-server/internal/model"
	"volunteer-match-server/internal/security"
	"volunteer-match-server/internal/service"

	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// ===== MOCKS =====

// MockUserRepository
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) CreateUser(ctx context.Context, exec sqlx.ExtContext, user *model.User) (*model.User, error) {
	args := m.Called(ctx, exec, user)
	if u, ok := args.Get(0).(*model.User); ok {
		return u, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockUserRepository) FindByUUID(ctx context.Context, exec sqlx.ExtContext, uuid string) (*model.User, error) {
	args := m.Called(ctx, exec, uuid)
	if u, ok := args.Get(0).(*model.User); ok {
		return u, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockUserRepository) FindByEmail(ctx context.Context, exec sqlx.ExtContext, email string) (*model.User, error) {
	args := m.Called(ctx, exec, email)
	if u, ok := args.Get(0).(*model.User); ok {
		return u, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockUserRepository) UpdateUser(ctx context.Context, exec sqlx.ExtContext, user *model.User) error {
	args := m.Called(ctx, exec, user)
	return args.Error(0)
}

func (m *MockUserRepository) UpdatePassword(ctx context.Context, exec sqlx.ExtContext, uuid string, newPasswordHash string) error {
	args := m.Called(ctx, exec, uuid, newPasswordHash)
	return args.Error(0)
}

func (m *MockUserRepository) DeleteUser(ctx context.Context, exec sqlx.ExtContext, uuid string) error {
	args := m.Called(ctx, exec, uuid)
	return args.Error(0)
}

func (m *MockUserRepository) ListUsers(ctx context.Context, exec sqlx.ExtContext, cursor string, limit int) ([]*model.User, string, error) {
	args := m.Called(ctx, exec, cursor, limit)
	if users, ok := args.Get(0).([]*model.User); ok {
		return users, args.String(1), args.Error(2)
	}
	return nil, "", args.Error(2)
}

func (m *MockUserRepository) Exists(ctx context.Context, exec sqlx.ExtContext, uuid string) (bool, error) {
	args := m.Called(ctx, exec, uuid)
	return args.Bool(0), args.Error(1)
}

// MockJWTService
type MockJWTService struct {
	mock.Mock
}

func (m *MockJWTService) IssueAccessToken(userUUID string) (string, error) {
	args := m.Called(userUUID)
	return args.String(0), args.Error(1)
}

func (m *MockJWTService) IssueRefreshToken(userUUID string) (string, error) {
	args := m.Called(userUUID)
	return args.String(0), args.Error(1)
}

func (m *MockJWTService) GenerateTokensPair(userUUID string) (*model.TokensPair, error) {
	args := m.Called(userUUID)
	if tokens, ok := args.Get(0).(*model.TokensPair); ok {
		return tokens, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockJWTService) VerifyToken(tokenString string, expectedType security.TokenType) (*security.Claims, error) {
	args := m.Called(tokenString, expectedType)
	if claims, ok := args.Get(0).(*security.Claims); ok {
		return claims, args.Error(1)
	}
	return nil, args.Error(1)
}

// ===== HELPERS =====

func newTestAuthService() (*service.AuthenticationService, *MockUserRepository, *MockJWTService) {
	mockUserRepo := new(MockUserRepository)
	mockJWTService := new(MockJWTService)

	svc := service.NewAuthenticationService(mockJWTService, mockUserRepo)

	return svc, mockUserRepo, mockJWTService
}

// ===== TESTS =====

// 1. Нет БД в контексте
func TestLogin_NoDBInContext(t *testing.T) {
	svc, _, _ := newTestAuthService()

	_, err := svc.Login(context.Background(), "test@example.com", "pass")

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "database connection не найден")
}

// 2. Пользователь не найден: тот же ответ, что и при неверном пароле
func TestLogin_UnknownEmail(t *testing.T) {
	svc, mockUserRepo, _ := newTestAuthService()
	ctx := context.WithValue(context.Background(), "db", &config.Database{})

	mockUserRepo.On("FindByEmail", ctx, mock.Anything, "unknown@example.com").
		Return(nil, errors.New("not found"))

	_, err := svc.Login(ctx, "unknown@example.com", "pass")

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "неверный логин или пароль")
	mockUserRepo.AssertExpectations(t)
}

// 3. Неверный пароль
func TestLogin_WrongPassword(t *testing.T) {
	svc, mockUserRepo, _ := newTestAuthService()
	ctx := context.WithValue(context.Background(), "db", &config.Database{})

	hash, _ := security.HashPassword("goodpass")
	user := &model.User{UUID: "u1", PasswordHash: hash}

	mockUserRepo.On("FindByEmail", ctx, mock.Anything, "test@example.com").
		Return(user, nil)

	_, err := svc.Login(ctx, "test@example.com", "badpass")

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "неверный логин или пароль")
	mockUserRepo.AssertExpectations(t)
}

// 4. Неизвестный email и неверный пароль дают неотличимые ошибки
func TestLogin_UniformFailureMessage(t *testing.T) {
	svc, mockUserRepo, _ := newTestAuthService()
	ctx := context.WithValue(context.Background(), "db", &config.Database{})

	hash, _ := security.HashPassword("goodpass")
	user := &model.User{UUID: "u1", PasswordHash: hash}

	mockUserRepo.On("FindByEmail", ctx, mock.Anything, "known@example.com").
		Return(user, nil)
	mockUserRepo.On("FindByEmail", ctx, mock.Anything, "unknown@example.com").
		Return(nil, errors.New("not found"))

	_, wrongPasswordErr := svc.Login(ctx, "known@example.com", "badpass")
	_, unknownEmailErr := svc.Login(ctx, "unknown@example.com", "badpass")

	assert.Error(t, wrongPasswordErr)
	assert.Error(t, unknownEmailErr)
	assert.Equal(t, wrongPasswordErr.Error(), unknownEmailErr.Error())
}

// 5. Ошибка генерации токенов
func TestLogin_GenerateTokensError(t *testing.T) {
	svc, mockUserRepo, mockJWTService := newTestAuthService()
	ctx := context.WithValue(context.Background(), "db", &config.Database{})

	hash, _ := security.HashPassword("goodpass")
	user := &model.User{UUID: "u1", PasswordHash: hash}

	mockUserRepo.On("FindByEmail", ctx, mock.Anything, "test@example.com").
		Return(user, nil)
	mockJWTService.On("GenerateTokensPair", "u1").
		Return(nil, errors.New("token error"))

	_, err := svc.Login(ctx, "test@example.com", "goodpass")

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "ошибка генерации токенов")
	mockUserRepo.AssertExpectations(t)
	mockJWTService.AssertExpectations(t)
}

// 6. Успешный логин
func TestLogin_Success(t *testing.T) {
	svc, mockUserRepo, mockJWTService := newTestAuthService()
	ctx := context.WithValue(context.Background(), "db", &config.Database{})

	hash, _ := security.HashPassword("goodpass")
	user := &model.User{UUID: "u1", Email: "test@example.com", PasswordHash: hash}
	tokens := &model.TokensPair{AccessToken: "acc", RefreshToken: "ref"}

	mockUserRepo.On("FindByEmail", ctx, mock.Anything, "test@example.com").
		Return(user, nil)
	mockJWTService.On("GenerateTokensPair", "u1").
		Return(tokens, nil)

	result, err := svc.Login(ctx, "test@example.com", "goodpass")

	assert.NoError(t, err)
	assert.Equal(t, tokens, result)
	assert.NotEqual(t, result.AccessToken, result.RefreshToken)

	mockUserRepo.AssertExpectations(t)
	mockJWTService.AssertExpectations(t)
}

func TestRefreshSession_InvalidToken(t *testing.T) {
	svc, _, mockJWTService := newTestAuthService()
	ctx := context.WithValue(context.Background(), "db", &config.Database{})

	mockJWTService.On("VerifyToken", "badtoken", security.TokenTypeRefresh).
		Return(nil, security.ErrInvalidToken)

	tokens, err := svc.RefreshSession(ctx, "badtoken")

	assert.Nil(t, tokens)
	assert.ErrorIs(t, err, security.ErrInvalidToken)
	mockJWTService.AssertExpectations(t)
}

// refresh не проходит, если аккаунт удалён после выдачи токена
func TestRefreshSession_DeletedUser(t *testing.T) {
	svc, mockUserRepo, mockJWTService := newTestAuthService()
	ctx := context.WithValue(context.Background(), "db", &config.Database{})

	claims := &security.Claims{UserUUID: "u1", TokenType: security.TokenTypeRefresh}

	mockJWTService.On("VerifyToken", "token", security.TokenTypeRefresh).
		Return(claims, nil)
	mockUserRepo.On("FindByUUID", ctx, mock.Anything, "u1").
		Return(nil, errors.New("not found"))

	tokens, err := svc.RefreshSession(ctx, "token")

	assert.Nil(t, tokens)
	assert.ErrorIs(t, err, security.ErrInvalidToken)
	mockJWTService.AssertExpectations(t)
	mockUserRepo.AssertExpectations(t)
}

func TestRefreshSession_Success(t *testing.T) {
	svc, mockUserRepo, mockJWTService := newTestAuthService()
	ctx := context.WithValue(context.Background(), "db", &config.Database{})

	claims := &security.Claims{UserUUID: "u1", TokenType: security.TokenTypeRefresh}
	user := &model.User{UUID: "u1"}
	tokens := &model.TokensPair{AccessToken: "new-acc", RefreshToken: "new-ref"}

	mockJWTService.On("VerifyToken", "token", security.TokenTypeRefresh).
		Return(claims, nil)
	mockUserRepo.On("FindByUUID", ctx, mock.Anything, "u1").
		Return(user, nil)
	mockJWTService.On("GenerateTokensPair", "u1").
		Return(tokens, nil)

	result, err := svc.RefreshSession(ctx, "token")

	assert.NoError(t, err)
	assert.Equal(t, tokens, result)
	mockJWTService.AssertExpectations(t)
	mockUserRepo.AssertExpectations(t)
}

func TestCurrentUser_NotAuthorized(t *testing.T) {
	svc, _, _ := newTestAuthService()
	ctx := context.WithValue(context.Background(), "db", &config.Database{})

	user, err := svc.CurrentUser(ctx)

	assert.Nil(t, user)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "не авторизован")
}

func TestCurrentUser_Success(t *testing.T) {
	svc, mockUserRepo, _ := newTestAuthService()

	ctx := context.WithValue(context.Background(), "db", &config.Database{})
	ctx = context.WithValue(ctx, security.UserContextKey, &security.Claims{UserUUID: "u1"})

	user := &model.User{UUID: "u1", Email: "test@example.com", Role: model.RoleVolunteer}
	mockUserRepo.On("FindByUUID", ctx, mock.Anything, "u1").
		Return(user, nil)

	result, err := svc.CurrentUser(ctx)

	assert.NoError(t, err)
	assert.Equal(t, user, result)
	mockUserRepo.AssertExpectations(t)
}
