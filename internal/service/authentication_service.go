package service

import (
	"context"
	"fmt"

	"volunteer-match-server/config"
	"volunteer-match-server/internal/model"
	"volunteer-match-server/internal/ports"
	"volunteer-match-server/internal/security"
	"volunteer-match-server/internal/util"
)

// dummyPasswordHash используется для выравнивания времени ответа, когда
// пользователь не найден: bcrypt выполняется в любом случае, чтобы по
// времени ответа нельзя было перебирать зарегистрированные email
const dummyPasswordHash = "$2a$10$N9qo8uLOickgx2ZMRZoMyeIjZAgcfl7p92ldGxad68LJZdL17lhWy"

type AuthenticationService struct {
	jwtServiceInterface ports.JWTServiceInterface
	userRepository      ports.UserRepository
}

func NewAuthenticationService(
	jwtServiceInterface ports.JWTServiceInterface,
	userRepository ports.UserRepository,
) *AuthenticationService {
	return &AuthenticationService{
		jwtServiceInterface,
		userRepository,
	}
}

// Login проверяет пару email/пароль и выдаёт пару токенов.
// Неизвестный email и неверный пароль дают одинаковый ответ.
func (s *AuthenticationService) Login(ctx context.Context, email, password string) (*model.TokensPair, error) {
	db, ok := ctx.Value("db").(*config.Database)
	if !ok {
		return nil, fmt.Errorf("[AuthService] database connection не найден в context")
	}

	user, err := s.userRepository.FindByEmail(ctx, db, email)
	if err != nil || user == nil {
		security.CheckPassword(password, dummyPasswordHash)
		return nil, fmt.Errorf("[AuthService] неверный логин или пароль")
	}

	if !security.CheckPassword(password, user.PasswordHash) {
		return nil, fmt.Errorf("[AuthService] неверный логин или пароль")
	}

	tokens, err := s.jwtServiceInterface.GenerateTokensPair(user.UUID)
	if err != nil {
		return nil, fmt.Errorf("[AuthService] ошибка генерации токенов: %w", err)
	}

	return tokens, nil
}

// RefreshSession выдаёт новую пару токенов по действующему refresh-токену.
// Refresh-токен самодостаточен: проверяются только подпись, срок и тип,
// сервер ничего не хранит.
func (s *AuthenticationService) RefreshSession(ctx context.Context, refreshToken string) (*model.TokensPair, error) {
	claims, err := s.jwtServiceInterface.VerifyToken(refreshToken, security.TokenTypeRefresh)
	if err != nil {
		return nil, security.ErrInvalidToken
	}

	db, ok := ctx.Value("db").(*config.Database)
	if !ok {
		return nil, fmt.Errorf("[AuthService] database connection не найден в context")
	}

	// аккаунт мог быть удалён после выдачи токена
	user, err := s.userRepository.FindByUUID(ctx, db, claims.UserUUID)
	if err != nil || user == nil {
		return nil, security.ErrInvalidToken
	}

	tokensPair, err := s.jwtServiceInterface.GenerateTokensPair(user.UUID)
	if err != nil {
		return nil, util.LogError("[AuthService] ошибка генерации токенов", err)
	}

	return tokensPair, nil
}

// CurrentUser возвращает пользователя, чей access-токен пришёл в запросе
func (s *AuthenticationService) CurrentUser(ctx context.Context) (*model.User, error) {
	claims, err := security.GetClaimsFromContext(ctx)
	if err != nil || claims == nil {
		return nil, fmt.Errorf("[AuthService] пользователь не авторизован")
	}

	db, ok := ctx.Value("db").(*config.Database)
	if !ok {
		return nil, fmt.Errorf("[AuthService] database connection не найден в context")
	}

	user, err := s.userRepository.FindByUUID(ctx, db, claims.UserUUID)
	if err != nil || user == nil {
		return nil, fmt.Errorf("[AuthService] пользователь не найден")
	}

	return user, nil
}
