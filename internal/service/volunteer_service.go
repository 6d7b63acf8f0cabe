package service

import (
	"context"
	"fmt"

	"volunteer-match-server/config"
	"volunteer-match-server/internal/model"
	"volunteer-match-server/internal/ports"
	"volunteer-match-server/internal/security"
	"volunteer-match-server/internal/util"

	"github.com/google/uuid"
)

type VolunteerService struct {
	volunteerRepository ports.VolunteerRepository
	userRepository      ports.UserRepository
}

func NewVolunteerService(
	volunteerRepository ports.VolunteerRepository,
	userRepository ports.UserRepository,
) *VolunteerService {
	return &VolunteerService{
		volunteerRepository: volunteerRepository,
		userRepository:      userRepository,
	}
}

// CreateProfile : создаёт профиль волонтёра для текущего пользователя
func (s *VolunteerService) CreateProfile(ctx context.Context, profile *model.VolunteerProfile) (*model.VolunteerProfile, error) {
	claims, err := security.GetClaimsFromContext(ctx)
	if err != nil || claims == nil {
		return nil, fmt.Errorf("[VolunteerService] пользователь не авторизован")
	}

	db, ok := ctx.Value("db").(*config.Database)
	if !ok {
		return nil, fmt.Errorf("[VolunteerService] database connection не найден в context")
	}

	user, err := s.userRepository.FindByUUID(ctx, db, claims.UserUUID)
	if err != nil || user == nil {
		return nil, fmt.Errorf("[VolunteerService] пользователь не найден")
	}
	if user.Role != model.RoleVolunteer {
		return nil, fmt.Errorf("[VolunteerService] доступ запрещён: требуется роль volunteer")
	}

	if existing, err := s.volunteerRepository.GetByUser(ctx, db, claims.UserUUID); err == nil && existing != nil {
		return nil, fmt.Errorf("[VolunteerService] профиль уже создан")
	}

	if profile.FullName == "" {
		return nil, fmt.Errorf("[VolunteerService] имя волонтёра обязательно")
	}

	profile.UUID = uuid.New().String()
	profile.UserUUID = claims.UserUUID

	if err := s.volunteerRepository.Create(ctx, db, profile); err != nil {
		return nil, util.LogError("[VolunteerService] не удалось создать профиль", err)
	}

	return s.volunteerRepository.GetByUUID(ctx, db, profile.UUID)
}

// GetProfile : возвращает профиль по UUID
func (s *VolunteerService) GetProfile(ctx context.Context, uuid string) (*model.VolunteerProfile, error) {
	db, ok := ctx.Value("db").(*config.Database)
	if !ok {
		return nil, fmt.Errorf("[VolunteerService] database connection не найден в context")
	}

	profile, err := s.volunteerRepository.GetByUUID(ctx, db, uuid)
	if err != nil || profile == nil {
		return nil, fmt.Errorf("[VolunteerService] профиль не найден")
	}

	return profile, nil
}

// UpdateProfile : обновить профиль может только его владелец
func (s *VolunteerService) UpdateProfile(ctx context.Context, profile *model.VolunteerProfile) error {
	claims, err := security.GetClaimsFromContext(ctx)
	if err != nil || claims == nil {
		return fmt.Errorf("[VolunteerService] пользователь не авторизован")
	}

	db, ok := ctx.Value("db").(*config.Database)
	if !ok {
		return fmt.Errorf("[VolunteerService] database connection не найден в context")
	}

	stored, err := s.volunteerRepository.GetByUUID(ctx, db, profile.UUID)
	if err != nil || stored == nil {
		return fmt.Errorf("[VolunteerService] профиль не найден")
	}

	if claims.IsAdmin == false && stored.UserUUID != claims.UserUUID {
		return fmt.Errorf("[VolunteerService] доступ запрещён")
	}

	return s.volunteerRepository.Update(ctx, db, profile)
}

// DeleteProfile : удалить профиль может только его владелец или админ
func (s *VolunteerService) DeleteProfile(ctx context.Context, uuid string) error {
	claims, err := security.GetClaimsFromContext(ctx)
	if err != nil || claims == nil {
		return fmt.Errorf("[VolunteerService] пользователь не авторизован")
	}

	db, ok := ctx.Value("db").(*config.Database)
	if !ok {
		return fmt.Errorf("[VolunteerService] database connection не найден в context")
	}

	stored, err := s.volunteerRepository.GetByUUID(ctx, db, uuid)
	if err != nil || stored == nil {
		return fmt.Errorf("[VolunteerService] профиль не найден")
	}

	if claims.IsAdmin == false && stored.UserUUID != claims.UserUUID {
		return fmt.Errorf("[VolunteerService] доступ запрещён")
	}

	return s.volunteerRepository.Delete(ctx, db, uuid)
}
