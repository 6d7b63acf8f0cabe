package service

import (
	"context"
	"fmt"
	"log"
	"time"

	"volunteer-match-server/config"
	"volunteer-match-server/internal/model"
	"volunteer-match-server/internal/ports"
	"volunteer-match-server/internal/security"
	"volunteer-match-server/internal/util"

	"github.com/google/uuid"
)

type OpportunityService struct {
	opportunityRepository  ports.OpportunityRepository
	organizationRepository ports.OrganizationRepository
	cacheRepository        ports.CacheRepository
}

func NewOpportunityService(
	opportunityRepository ports.OpportunityRepository,
	organizationRepository ports.OrganizationRepository,
	cacheRepository ports.CacheRepository,
) *OpportunityService {
	return &OpportunityService{
		opportunityRepository:  opportunityRepository,
		organizationRepository: organizationRepository,
		cacheRepository:        cacheRepository,
	}
}

// ownedOrganization возвращает организацию текущего пользователя.
// Админ может управлять любой вакансией, поэтому для него проверка пропускается.
func (s *OpportunityService) ownedOrganization(ctx context.Context, db *config.Database, claims *security.Claims) (*model.Organization, error) {
	organization, err := s.organizationRepository.GetByOwner(ctx, db, claims.UserUUID)
	if err != nil || organization == nil {
		return nil, fmt.Errorf("[OpportunityService] организация не найдена: сначала создайте организацию")
	}
	return organization, nil
}

// CreateOpportunity : создаёт вакансию от имени организации текущего пользователя
func (s *OpportunityService) CreateOpportunity(ctx context.Context, opportunity *model.Opportunity) (*model.Opportunity, error) {
	claims, err := security.GetClaimsFromContext(ctx)
	if err != nil || claims == nil {
		return nil, fmt.Errorf("[OpportunityService] пользователь не авторизован")
	}

	db, ok := ctx.Value("db").(*config.Database)
	if !ok {
		return nil, fmt.Errorf("[OpportunityService] database connection не найден в context")
	}

	organization, err := s.ownedOrganization(ctx, db, claims)
	if err != nil {
		return nil, err
	}

	if opportunity.Title == "" {
		return nil, fmt.Errorf("[OpportunityService] заголовок вакансии обязателен")
	}
	if opportunity.Capacity < 1 {
		return nil, fmt.Errorf("[OpportunityService] вместимость должна быть не меньше 1")
	}
	if !opportunity.EndsAt.IsZero() && opportunity.EndsAt.Before(opportunity.StartsAt) {
		return nil, fmt.Errorf("[OpportunityService] дата окончания раньше даты начала")
	}

	opportunity.UUID = uuid.New().String()
	opportunity.OrganizationUUID = organization.UUID
	opportunity.Status = model.OpportunityStatusOpen

	if err := s.opportunityRepository.Create(ctx, db, opportunity); err != nil {
		return nil, util.LogError("[OpportunityService] не удалось создать вакансию", err)
	}

	return s.opportunityRepository.GetByUUID(ctx, db, opportunity.UUID)
}

// GetOpportunity : сначала смотрим кэш, при промахе читаем БД и кэшируем
func (s *OpportunityService) GetOpportunity(ctx context.Context, opportunityUUID string) (*model.Opportunity, error) {
	db, ok := ctx.Value("db").(*config.Database)
	if !ok {
		return nil, fmt.Errorf("[OpportunityService] database connection не найден в context")
	}

	opportunity, err := s.cacheRepository.GetOpportunity(ctx, opportunityUUID)
	if err != nil {
		log.Printf("[OpportunityService] ошибка чтения кэша: %v", err)
	}

	if opportunity != nil {
		log.Printf("[OpportunityService] вакансия %s взята из кэша Redis", opportunity.UUID)
		return opportunity, nil
	}

	opportunity, err = s.opportunityRepository.GetByUUID(ctx, db, opportunityUUID)
	if err != nil || opportunity == nil {
		return nil, fmt.Errorf("[OpportunityService] вакансия не найдена")
	}

	if err := s.cacheRepository.SetOpportunity(ctx, opportunity); err != nil {
		log.Printf("[OpportunityService] ошибка кэширования вакансии: %v", err)
	}

	return opportunity, nil
}

// UpdateOpportunity : обновляет вакансию и инвалидирует её кэш
func (s *OpportunityService) UpdateOpportunity(ctx context.Context, opportunity *model.Opportunity) error {
	claims, err := security.GetClaimsFromContext(ctx)
	if err != nil || claims == nil {
		return fmt.Errorf("[OpportunityService] пользователь не авторизован")
	}

	db, ok := ctx.Value("db").(*config.Database)
	if !ok {
		return fmt.Errorf("[OpportunityService] database connection не найден в context")
	}

	stored, err := s.opportunityRepository.GetByUUID(ctx, db, opportunity.UUID)
	if err != nil || stored == nil {
		return fmt.Errorf("[OpportunityService] вакансия не найдена")
	}

	if claims.IsAdmin == false {
		organization, err := s.ownedOrganization(ctx, db, claims)
		if err != nil {
			return err
		}
		if stored.OrganizationUUID != organization.UUID {
			return fmt.Errorf("[OpportunityService] доступ запрещён")
		}
	}

	if opportunity.Status != model.OpportunityStatusOpen && opportunity.Status != model.OpportunityStatusClosed {
		return fmt.Errorf("[OpportunityService] недопустимый статус: %s", opportunity.Status)
	}
	if opportunity.Capacity < 1 {
		return fmt.Errorf("[OpportunityService] вместимость должна быть не меньше 1")
	}

	opportunity.OrganizationUUID = stored.OrganizationUUID
	opportunity.UpdatedAt = time.Now().UTC()

	if err := s.opportunityRepository.Update(ctx, db, opportunity); err != nil {
		return util.LogError("[OpportunityService] не удалось обновить вакансию", err)
	}

	if err := s.cacheRepository.DeleteOpportunity(ctx, opportunity.UUID); err != nil {
		log.Printf("[OpportunityService] ошибка удаления вакансии из кэша: %v", err)
	}

	return nil
}

// DeleteOpportunity : удаляет вакансию и инвалидирует её кэш
func (s *OpportunityService) DeleteOpportunity(ctx context.Context, opportunityUUID string) error {
	claims, err := security.GetClaimsFromContext(ctx)
	if err != nil || claims == nil {
		return fmt.Errorf("[OpportunityService] пользователь не авторизован")
	}

	db, ok := ctx.Value("db").(*config.Database)
	if !ok {
		return fmt.Errorf("[OpportunityService] database connection не найден в context")
	}

	stored, err := s.opportunityRepository.GetByUUID(ctx, db, opportunityUUID)
	if err != nil || stored == nil {
		return fmt.Errorf("[OpportunityService] вакансия не найдена")
	}

	if claims.IsAdmin == false {
		organization, err := s.ownedOrganization(ctx, db, claims)
		if err != nil {
			return err
		}
		if stored.OrganizationUUID != organization.UUID {
			return fmt.Errorf("[OpportunityService] доступ запрещён")
		}
	}

	if err := s.opportunityRepository.Delete(ctx, db, opportunityUUID); err != nil {
		return util.LogError("[OpportunityService] не удалось удалить вакансию", err)
	}

	if err := s.cacheRepository.DeleteOpportunity(ctx, opportunityUUID); err != nil {
		log.Printf("[OpportunityService] ошибка удаления вакансии из кэша: %v", err)
	}

	return nil
}

// ListOpportunities : список вакансий с фильтром и cursor-based пагинацией.
// Список не кэшируется: фильтры и курсор дают слишком много вариантов ключей.
func (s *OpportunityService) ListOpportunities(ctx context.Context, filterKey, filterValue, cursor string, limit int) ([]model.Opportunity, string, error) {
	db, ok := ctx.Value("db").(*config.Database)
	if !ok {
		return nil, "", fmt.Errorf("[OpportunityService] database connection не найден в context")
	}

	return s.opportunityRepository.List(ctx, db, filterKey, filterValue, cursor, limit)
}
