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

type OrganizationService struct {
	organizationRepository ports.OrganizationRepository
	userRepository         ports.UserRepository
}

func NewOrganizationService(
	organizationRepository ports.OrganizationRepository,
	userRepository ports.UserRepository,
) *OrganizationService {
	return &OrganizationService{
		organizationRepository: organizationRepository,
		userRepository:         userRepository,
	}
}

// CreateOrganization : создаёт организацию для текущего пользователя.
// У пользователя может быть только одна организация.
func (s *OrganizationService) CreateOrganization(ctx context.Context, organization *model.Organization) (*model.Organization, error) {
	claims, err := security.GetClaimsFromContext(ctx)
	if err != nil || claims == nil {
		return nil, fmt.Errorf("[OrganizationService] пользователь не авторизован")
	}

	db, ok := ctx.Value("db").(*config.Database)
	if !ok {
		return nil, fmt.Errorf("[OrganizationService] database connection не найден в context")
	}

	user, err := s.userRepository.FindByUUID(ctx, db, claims.UserUUID)
	if err != nil || user == nil {
		return nil, fmt.Errorf("[OrganizationService] пользователь не найден")
	}
	if user.Role != model.RoleOrganization {
		return nil, fmt.Errorf("[OrganizationService] доступ запрещён: требуется роль organization")
	}

	if existing, err := s.organizationRepository.GetByOwner(ctx, db, claims.UserUUID); err == nil && existing != nil {
		return nil, fmt.Errorf("[OrganizationService] организация уже создана")
	}

	if organization.Name == "" {
		return nil, fmt.Errorf("[OrganizationService] название организации обязательно")
	}

	organization.UUID = uuid.New().String()
	organization.OwnerUUID = claims.UserUUID

	if err := s.organizationRepository.Create(ctx, db, organization); err != nil {
		return nil, util.LogError("[OrganizationService] не удалось создать организацию", err)
	}

	return s.organizationRepository.GetByUUID(ctx, db, organization.UUID)
}

// GetOrganization : возвращает организацию по UUID, доступно всем авторизованным
func (s *OrganizationService) GetOrganization(ctx context.Context, uuid string) (*model.Organization, error) {
	db, ok := ctx.Value("db").(*config.Database)
	if !ok {
		return nil, fmt.Errorf("[OrganizationService] database connection не найден в context")
	}

	organization, err := s.organizationRepository.GetByUUID(ctx, db, uuid)
	if err != nil || organization == nil {
		return nil, fmt.Errorf("[OrganizationService] организация не найдена")
	}

	return organization, nil
}

// UpdateOrganization : обновить организацию может только владелец или админ
func (s *OrganizationService) UpdateOrganization(ctx context.Context, organization *model.Organization) error {
	claims, err := security.GetClaimsFromContext(ctx)
	if err != nil || claims == nil {
		return fmt.Errorf("[OrganizationService] пользователь не авторизован")
	}

	db, ok := ctx.Value("db").(*config.Database)
	if !ok {
		return fmt.Errorf("[OrganizationService] database connection не найден в context")
	}

	stored, err := s.organizationRepository.GetByUUID(ctx, db, organization.UUID)
	if err != nil || stored == nil {
		return fmt.Errorf("[OrganizationService] организация не найдена")
	}

	if claims.IsAdmin == false && stored.OwnerUUID != claims.UserUUID {
		return fmt.Errorf("[OrganizationService] доступ запрещён")
	}

	return s.organizationRepository.Update(ctx, db, organization)
}

// DeleteOrganization : удалить организацию может только владелец или админ
func (s *OrganizationService) DeleteOrganization(ctx context.Context, uuid string) error {
	claims, err := security.GetClaimsFromContext(ctx)
	if err != nil || claims == nil {
		return fmt.Errorf("[OrganizationService] пользователь не авторизован")
	}

	db, ok := ctx.Value("db").(*config.Database)
	if !ok {
		return fmt.Errorf("[OrganizationService] database connection не найден в context")
	}

	stored, err := s.organizationRepository.GetByUUID(ctx, db, uuid)
	if err != nil || stored == nil {
		return fmt.Errorf("[OrganizationService] организация не найдена")
	}

	if claims.IsAdmin == false && stored.OwnerUUID != claims.UserUUID {
		return fmt.Errorf("[OrganizationService] доступ запрещён")
	}

	return s.organizationRepository.Delete(ctx, db, uuid)
}

// ListOrganizations : список организаций с cursor-based пагинацией
func (s *OrganizationService) ListOrganizations(ctx context.Context, cursor string, limit int) ([]*model.Organization, string, error) {
	db, ok := ctx.Value("db").(*config.Database)
	if !ok {
		return nil, "", fmt.Errorf("[OrganizationService] database connection не найден в context")
	}

	return s.organizationRepository.List(ctx, db, cursor, limit)
}
