package service

import (
	"context"
	"fmt"
	"log"

	"volunteer-match-server/config"
	"volunteer-match-server/internal/model"
	"volunteer-match-server/internal/ports"
	"volunteer-match-server/internal/security"
	"volunteer-match-server/internal/util"

	"github.com/google/uuid"
)

type ApplicationService struct {
	applicationRepository  ports.ApplicationRepository
	opportunityRepository  ports.OpportunityRepository
	organizationRepository ports.OrganizationRepository
	userRepository         ports.UserRepository
	cacheRepository        ports.CacheRepository
}

func NewApplicationService(
	applicationRepository ports.ApplicationRepository,
	opportunityRepository ports.OpportunityRepository,
	organizationRepository ports.OrganizationRepository,
	userRepository ports.UserRepository,
	cacheRepository ports.CacheRepository,
) *ApplicationService {
	return &ApplicationService{
		applicationRepository:  applicationRepository,
		opportunityRepository:  opportunityRepository,
		organizationRepository: organizationRepository,
		userRepository:         userRepository,
		cacheRepository:        cacheRepository,
	}
}

// Apply : волонтёр подаёт заявку на открытую вакансию.
// Повторная заявка на ту же вакансию запрещена, пока прошлая не отозвана.
func (s *ApplicationService) Apply(ctx context.Context, opportunityUUID, message string) (*model.Application, error) {
	claims, err := security.GetClaimsFromContext(ctx)
	if err != nil || claims == nil {
		return nil, fmt.Errorf("[ApplicationService] пользователь не авторизован")
	}

	db, ok := ctx.Value("db").(*config.Database)
	if !ok {
		return nil, fmt.Errorf("[ApplicationService] database connection не найден в context")
	}

	user, err := s.userRepository.FindByUUID(ctx, db, claims.UserUUID)
	if err != nil || user == nil {
		return nil, fmt.Errorf("[ApplicationService] пользователь не найден")
	}
	if user.Role != model.RoleVolunteer {
		return nil, fmt.Errorf("[ApplicationService] доступ запрещён: требуется роль volunteer")
	}

	exec, rollback, commit, err := s.applicationRepository.BeginTX(ctx)
	if err != nil {
		return nil, util.LogError("[ApplicationService] не удалось начать транзакцию", err)
	}
	defer rollback()

	opportunity, err := s.opportunityRepository.GetByUUID(ctx, exec, opportunityUUID)
	if err != nil || opportunity == nil {
		return nil, fmt.Errorf("[ApplicationService] вакансия не найдена")
	}
	if opportunity.Status != model.OpportunityStatusOpen {
		return nil, fmt.Errorf("[ApplicationService] вакансия закрыта")
	}

	exists, err := s.applicationRepository.ExistsForVolunteer(ctx, exec, opportunityUUID, claims.UserUUID)
	if err != nil {
		return nil, util.LogError("[ApplicationService] ошибка проверки заявки", err)
	}
	if exists {
		return nil, fmt.Errorf("[ApplicationService] заявка уже подана")
	}

	application := &model.Application{
		UUID:            uuid.New().String(),
		OpportunityUUID: opportunityUUID,
		VolunteerUUID:   claims.UserUUID,
		Message:         message,
		Status:          model.ApplicationStatusPending,
	}

	if err := s.applicationRepository.Create(ctx, exec, application); err != nil {
		return nil, util.LogError("[ApplicationService] не удалось создать заявку", err)
	}

	if err := commit(); err != nil {
		return nil, util.LogError("[ApplicationService] ошибка коммита транзакции", err)
	}

	s.invalidateAnalytics(ctx)

	log.Printf("[ApplicationService] заявка %s на вакансию %s создана", application.UUID, opportunityUUID)

	return s.applicationRepository.GetByUUID(ctx, db, application.UUID)
}

// Withdraw : волонтёр отзывает собственную заявку
func (s *ApplicationService) Withdraw(ctx context.Context, applicationUUID string) error {
	claims, err := security.GetClaimsFromContext(ctx)
	if err != nil || claims == nil {
		return fmt.Errorf("[ApplicationService] пользователь не авторизован")
	}

	exec, rollback, commit, err := s.applicationRepository.BeginTX(ctx)
	if err != nil {
		return util.LogError("[ApplicationService] не удалось начать транзакцию", err)
	}
	defer rollback()

	application, err := s.applicationRepository.GetByUUID(ctx, exec, applicationUUID)
	if err != nil || application == nil {
		return fmt.Errorf("[ApplicationService] заявка не найдена")
	}

	if application.VolunteerUUID != claims.UserUUID {
		return fmt.Errorf("[ApplicationService] доступ запрещён")
	}

	if application.Status == model.ApplicationStatusWithdrawn {
		return fmt.Errorf("[ApplicationService] заявка уже отозвана")
	}
	if application.Status == model.ApplicationStatusRejected {
		return fmt.Errorf("[ApplicationService] отклонённую заявку нельзя отозвать")
	}

	if err := s.applicationRepository.UpdateStatus(ctx, exec, applicationUUID, model.ApplicationStatusWithdrawn); err != nil {
		return util.LogError("[ApplicationService] не удалось отозвать заявку", err)
	}

	if err := commit(); err != nil {
		return util.LogError("[ApplicationService] ошибка коммита транзакции", err)
	}

	s.invalidateAnalytics(ctx)

	return nil
}

// Decide : организация принимает или отклоняет заявку на свою вакансию.
// Принятие проверяет вместимость внутри транзакции, чтобы две параллельные
// заявки не заняли последнее место одновременно.
func (s *ApplicationService) Decide(ctx context.Context, applicationUUID, status string) error {
	claims, err := security.GetClaimsFromContext(ctx)
	if err != nil || claims == nil {
		return fmt.Errorf("[ApplicationService] пользователь не авторизован")
	}

	if status != model.ApplicationStatusAccepted && status != model.ApplicationStatusRejected {
		return fmt.Errorf("[ApplicationService] недопустимый статус: %s", status)
	}

	exec, rollback, commit, err := s.applicationRepository.BeginTX(ctx)
	if err != nil {
		return util.LogError("[ApplicationService] не удалось начать транзакцию", err)
	}
	defer rollback()

	application, err := s.applicationRepository.GetByUUID(ctx, exec, applicationUUID)
	if err != nil || application == nil {
		return fmt.Errorf("[ApplicationService] заявка не найдена")
	}

	if application.Status != model.ApplicationStatusPending {
		return fmt.Errorf("[ApplicationService] решение уже принято")
	}

	opportunity, err := s.opportunityRepository.GetByUUID(ctx, exec, application.OpportunityUUID)
	if err != nil || opportunity == nil {
		return fmt.Errorf("[ApplicationService] вакансия не найдена")
	}

	if claims.IsAdmin == false {
		organization, err := s.organizationRepository.GetByOwner(ctx, exec, claims.UserUUID)
		if err != nil || organization == nil {
			return fmt.Errorf("[ApplicationService] доступ запрещён")
		}
		if opportunity.OrganizationUUID != organization.UUID {
			return fmt.Errorf("[ApplicationService] доступ запрещён")
		}
	}

	if status == model.ApplicationStatusAccepted {
		accepted, err := s.applicationRepository.CountByStatus(ctx, exec, opportunity.UUID, model.ApplicationStatusAccepted)
		if err != nil {
			return util.LogError("[ApplicationService] ошибка подсчёта принятых заявок", err)
		}
		if accepted >= opportunity.Capacity {
			return fmt.Errorf("[ApplicationService] мест больше нет")
		}
	}

	if err := s.applicationRepository.UpdateStatus(ctx, exec, applicationUUID, status); err != nil {
		return util.LogError("[ApplicationService] не удалось обновить статус заявки", err)
	}

	if err := commit(); err != nil {
		return util.LogError("[ApplicationService] ошибка коммита транзакции", err)
	}

	s.invalidateAnalytics(ctx)

	log.Printf("[ApplicationService] заявка %s переведена в статус %s", applicationUUID, status)

	return nil
}

// ListForOpportunity : заявки на вакансию, доступно владельцу организации и админу
func (s *ApplicationService) ListForOpportunity(ctx context.Context, opportunityUUID string) ([]model.Application, error) {
	claims, err := security.GetClaimsFromContext(ctx)
	if err != nil || claims == nil {
		return nil, fmt.Errorf("[ApplicationService] пользователь не авторизован")
	}

	db, ok := ctx.Value("db").(*config.Database)
	if !ok {
		return nil, fmt.Errorf("[ApplicationService] database connection не найден в context")
	}

	opportunity, err := s.opportunityRepository.GetByUUID(ctx, db, opportunityUUID)
	if err != nil || opportunity == nil {
		return nil, fmt.Errorf("[ApplicationService] вакансия не найдена")
	}

	if claims.IsAdmin == false {
		organization, err := s.organizationRepository.GetByOwner(ctx, db, claims.UserUUID)
		if err != nil || organization == nil || opportunity.OrganizationUUID != organization.UUID {
			return nil, fmt.Errorf("[ApplicationService] доступ запрещён")
		}
	}

	return s.applicationRepository.ListByOpportunity(ctx, db, opportunityUUID)
}

// ListForVolunteer : собственные заявки текущего волонтёра
func (s *ApplicationService) ListForVolunteer(ctx context.Context) ([]model.Application, error) {
	claims, err := security.GetClaimsFromContext(ctx)
	if err != nil || claims == nil {
		return nil, fmt.Errorf("[ApplicationService] пользователь не авторизован")
	}

	db, ok := ctx.Value("db").(*config.Database)
	if !ok {
		return nil, fmt.Errorf("[ApplicationService] database connection не найден в context")
	}

	return s.applicationRepository.ListByVolunteer(ctx, db, claims.UserUUID)
}

// изменение заявок меняет счётчики, сбрасываем сводку
func (s *ApplicationService) invalidateAnalytics(ctx context.Context) {
	if err := s.cacheRepository.DeleteAnalytics(ctx); err != nil {
		log.Printf("[ApplicationService] ошибка сброса кэша аналитики: %v", err)
	}
}
