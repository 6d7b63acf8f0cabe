package service

import (
	"context"
	"fmt"
	"strings"
	"unicode"

	"volunteer-match-server/config"
	"volunteer-match-server/internal/model"
	"volunteer-match-server/internal/ports"
	"volunteer-match-server/internal/security"

	"github.com/google/uuid"
)

type UserService struct {
	userRepository ports.UserRepository
	securityConfig *config.SecurityConfig
}

func NewUserService(
	userRepository ports.UserRepository,
	securityConfig *config.SecurityConfig,
) *UserService {
	return &UserService{
		userRepository: userRepository,
		securityConfig: securityConfig,
	}
}

// Register создаёт нового пользователя с ролью volunteer или organization.
// Роль admin через регистрацию получить нельзя.
func (s *UserService) Register(ctx context.Context, email string, password string, role string) (*model.User, error) {
	if err := validateEmail(email); err != nil {
		return nil, fmt.Errorf("[UserService] %w", err)
	}

	if role != model.RoleVolunteer && role != model.RoleOrganization {
		return nil, fmt.Errorf("[UserService] недопустимая роль: %s", role)
	}

	if err := validatePassword(password); err != nil {
		return nil, fmt.Errorf("[UserService] %w", err)
	}

	hash, err := security.HashPasswordWithCost(password, s.securityConfig.BcryptCost)
	if err != nil {
		return nil, fmt.Errorf("[UserService] не удалось создать хэш пароля: %w", err)
	}

	user := &model.User{
		UUID:         uuid.New().String(),
		Email:        email,
		PasswordHash: hash,
		Role:         role,
	}

	db, ok := ctx.Value("db").(*config.Database)
	if !ok {
		return nil, fmt.Errorf("[UserService] database connection не найден в context")
	}

	created, err := s.userRepository.CreateUser(ctx, db, user)
	if err != nil {
		return nil, fmt.Errorf("[UserService] ошибка создания пользователя: %w", err)
	}

	return created, nil
}

func validateEmail(email string) error {
	if len(email) < 5 || !strings.Contains(email, "@") || strings.HasPrefix(email, "@") || strings.HasSuffix(email, "@") {
		return fmt.Errorf("некорректный email")
	}
	return nil
}

func validatePassword(password string) error {
	if len(password) < 8 {
		return fmt.Errorf("пароль должен содержать минимум 8 символов")
	}

	var upperCount, lowerCount, digitCount, specialCount int

	for _, c := range password {
		switch {
		case unicode.IsUpper(c):
			upperCount++
		case unicode.IsLower(c):
			lowerCount++
		case unicode.IsDigit(c):
			digitCount++
		case unicode.IsPunct(c) || unicode.IsSymbol(c):
			specialCount++
		}
	}

	if upperCount == 0 || lowerCount == 0 || (upperCount+lowerCount) < 2 {
		return fmt.Errorf("пароль должен содержать минимум 2 буквы в разных регистрах")
	}
	if digitCount < 1 {
		return fmt.Errorf("пароль должен содержать хотя бы одну цифру")
	}
	if specialCount < 1 {
		return fmt.Errorf("пароль должен содержать хотя бы один специальный символ")
	}

	return nil
}

func (s *UserService) GetUser(ctx context.Context, uuid string) (*model.User, error) {
	db, ok := ctx.Value("db").(*config.Database)
	if !ok {
		return nil, fmt.Errorf("[UserService] database connection не найден в context")
	}

	claims, err := security.GetClaimsFromContext(ctx)
	if err != nil || claims == nil {
		return nil, fmt.Errorf("[UserService] пользователь не авторизован")
	}

	if claims.IsAdmin == false && claims.UserUUID != uuid {
		return nil, fmt.Errorf("[UserService] доступ запрещён")
	}

	user, err := s.userRepository.FindByUUID(ctx, db, uuid)
	if err != nil || user == nil {
		return nil, fmt.Errorf("[UserService] пользователь не найден")
	}

	return user, nil
}

func (s *UserService) UpdateUser(ctx context.Context, updatedUser *model.User) error {
	claims, err := security.GetClaimsFromContext(ctx)
	if err != nil || claims == nil {
		return fmt.Errorf("[UserService] пользователь не авторизован")
	}

	db, ok := ctx.Value("db").(*config.Database)
	if ok == false {
		return fmt.Errorf("[UserService] database connection не найден в context")
	}

	if claims.UserUUID != updatedUser.UUID {
		return fmt.Errorf("[UserService] доступ запрещён")
	}

	if err := validateEmail(updatedUser.Email); err != nil {
		return fmt.Errorf("[UserService] %w", err)
	}

	return s.userRepository.UpdateUser(ctx, db, updatedUser)
}

func (s *UserService) UpdatePassword(ctx context.Context, uuid, newPassword string) error {
	claims, err := security.GetClaimsFromContext(ctx)
	if err != nil || claims == nil {
		return fmt.Errorf("[UserService] пользователь не авторизован")
	}

	db, ok := ctx.Value("db").(*config.Database)
	if ok == false {
		return fmt.Errorf("[UserService] database connection не найден в context")
	}

	if claims.UserUUID != uuid {
		return fmt.Errorf("[UserService] доступ запрещён")
	}

	if err := validatePassword(newPassword); err != nil {
		return fmt.Errorf("[UserService] %w", err)
	}

	hash, err := security.HashPasswordWithCost(newPassword, s.securityConfig.BcryptCost)
	if err != nil {
		return fmt.Errorf("[UserService] не удалось создать хэш пароля: %w", err)
	}

	return s.userRepository.UpdatePassword(ctx, db, uuid, hash)
}

func (s *UserService) DeleteUser(ctx context.Context, uuid string) error {
	claims, err := security.GetClaimsFromContext(ctx)
	if err != nil || claims == nil {
		return fmt.Errorf("[UserService] пользователь не авторизован")
	}

	db, ok := ctx.Value("db").(*config.Database)
	if !ok {
		return fmt.Errorf("[UserService] database connection не найден в context")
	}

	if claims.IsAdmin == false && claims.UserUUID != uuid {
		return fmt.Errorf("[UserService] доступ запрещён")
	}

	if err := s.userRepository.DeleteUser(ctx, db, uuid); err != nil {
		return fmt.Errorf("[UserService] пользователь не найден")
	}

	return nil
}

func (s *UserService) ListUsers(ctx context.Context, cursor string, limit int) ([]*model.User, string, error) {
	claims, err := security.GetClaimsFromContext(ctx)
	if err != nil || claims == nil {
		return nil, "", fmt.Errorf("[UserService] доступ запрещён: нужна авторизация")
	}

	db, ok := ctx.Value("db").(*config.Database)
	if !ok {
		return nil, "", fmt.Errorf("[UserService] database connection не найден в context")
	}

	users, nextCursor, err := s.userRepository.ListUsers(ctx, db, cursor, limit)
	if err != nil {
		return nil, "", err
	}

	return users, nextCursor, nil
}
