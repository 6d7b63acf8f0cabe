package service_test

import (
	"context"
	"testing"

	"volunteer-match-server/config"
	"volunteer-match-server/internal/model"
	"volunteer-match-server/internal/security"
	"volunteer-match-server/internal/service"

	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// MockApplicationRepository
type MockApplicationRepository struct {
	mock.Mock
}

func (m *MockApplicationRepository) Create(ctx context.Context, exec sqlx.ExtContext, application *model.Application) error {
	args := m.Called(ctx, exec, application)
	return args.Error(0)
}

func (m *MockApplicationRepository) GetByUUID(ctx context.Context, exec sqlx.ExtContext, uuid string) (*model.Application, error) {
	args := m.Called(ctx, exec, uuid)
	if application, ok := args.Get(0).(*model.Application); ok {
		return application, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockApplicationRepository) UpdateStatus(ctx context.Context, exec sqlx.ExtContext, uuid, status string) error {
	args := m.Called(ctx, exec, uuid, status)
	return args.Error(0)
}

func (m *MockApplicationRepository) ListByOpportunity(ctx context.Context, exec sqlx.ExtContext, opportunityUUID string) ([]model.Application, error) {
	args := m.Called(ctx, exec, opportunityUUID)
	if applications, ok := args.Get(0).([]model.Application); ok {
		return applications, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockApplicationRepository) ListByVolunteer(ctx context.Context, exec sqlx.ExtContext, volunteerUUID string) ([]model.Application, error) {
	args := m.Called(ctx, exec, volunteerUUID)
	if applications, ok := args.Get(0).([]model.Application); ok {
		return applications, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockApplicationRepository) CountByStatus(ctx context.Context, exec sqlx.ExtContext, opportunityUUID, status string) (int, error) {
	args := m.Called(ctx, exec, opportunityUUID, status)
	return args.Int(0), args.Error(1)
}

func (m *MockApplicationRepository) ExistsForVolunteer(ctx context.Context, exec sqlx.ExtContext, opportunityUUID, volunteerUUID string) (bool, error) {
	args := m.Called(ctx, exec, opportunityUUID, volunteerUUID)
	return args.Bool(0), args.Error(1)
}

func (m *MockApplicationRepository) BeginTX(ctx context.Context) (sqlx.ExtContext, func() error, func() error, error) {
	args := m.Called(ctx)
	exec, _ := args.Get(0).(sqlx.ExtContext)
	rollback, _ := args.Get(1).(func() error)
	commit, _ := args.Get(2).(func() error)
	return exec, rollback, commit, args.Error(3)
}

// MockOpportunityRepository
type MockOpportunityRepository struct {
	mock.Mock
}

func (m *MockOpportunityRepository) Create(ctx context.Context, exec sqlx.ExtContext, opportunity *model.Opportunity) error {
	args := m.Called(ctx, exec, opportunity)
	return args.Error(0)
}

func (m *MockOpportunityRepository) GetByUUID(ctx context.Context, exec sqlx.ExtContext, uuid string) (*model.Opportunity, error) {
	args := m.Called(ctx, exec, uuid)
	if opportunity, ok := args.Get(0).(*model.Opportunity); ok {
		return opportunity, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockOpportunityRepository) Update(ctx context.Context, exec sqlx.ExtContext, opportunity *model.Opportunity) error {
	args := m.Called(ctx, exec, opportunity)
	return args.Error(0)
}

func (m *MockOpportunityRepository) Delete(ctx context.Context, exec sqlx.ExtContext, uuid string) error {
	args := m.Called(ctx, exec, uuid)
	return args.Error(0)
}

func (m *MockOpportunityRepository) List(ctx context.Context, exec sqlx.ExtContext, filterKey, filterValue, cursor string, limit int) ([]model.Opportunity, string, error) {
	args := m.Called(ctx, exec, filterKey, filterValue, cursor, limit)
	if opportunities, ok := args.Get(0).([]model.Opportunity); ok {
		return opportunities, args.String(1), args.Error(2)
	}
	return nil, "", args.Error(2)
}

// MockOrganizationRepository
type MockOrganizationRepository struct {
	mock.Mock
}

func (m *MockOrganizationRepository) Create(ctx context.Context, exec sqlx.ExtContext, organization *model.Organization) error {
	args := m.Called(ctx, exec, organization)
	return args.Error(0)
}

func (m *MockOrganizationRepository) GetByUUID(ctx context.Context, exec sqlx.ExtContext, uuid string) (*model.Organization, error) {
	args := m.Called(ctx, exec, uuid)
	if organization, ok := args.Get(0).(*model.Organization); ok {
		return organization, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockOrganizationRepository) GetByOwner(ctx context.Context, exec sqlx.ExtContext, ownerUUID string) (*model.Organization, error) {
	args := m.Called(ctx, exec, ownerUUID)
	if organization, ok := args.Get(0).(*model.Organization); ok {
		return organization, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockOrganizationRepository) Update(ctx context.Context, exec sqlx.ExtContext, organization *model.Organization) error {
	args := m.Called(ctx, exec, organization)
	return args.Error(0)
}

func (m *MockOrganizationRepository) Delete(ctx context.Context, exec sqlx.ExtContext, uuid string) error {
	args := m.Called(ctx, exec, uuid)
	return args.Error(0)
}

func (m *MockOrganizationRepository) List(ctx context.Context, exec sqlx.ExtContext, cursor string, limit int) ([]*model.Organization, string, error) {
	args := m.Called(ctx, exec, cursor, limit)
	if organizations, ok := args.Get(0).([]*model.Organization); ok {
		return organizations, args.String(1), args.Error(2)
	}
	return nil, "", args.Error(2)
}

// MockCacheRepository
type MockCacheRepository struct {
	mock.Mock
}

func (m *MockCacheRepository) SetOpportunity(ctx context.Context, opportunity *model.Opportunity) error {
	args := m.Called(ctx, opportunity)
	return args.Error(0)
}

func (m *MockCacheRepository) GetOpportunity(ctx context.Context, uuid string) (*model.Opportunity, error) {
	args := m.Called(ctx, uuid)
	if opportunity, ok := args.Get(0).(*model.Opportunity); ok {
		return opportunity, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockCacheRepository) DeleteOpportunity(ctx context.Context, uuid string) error {
	args := m.Called(ctx, uuid)
	return args.Error(0)
}

func (m *MockCacheRepository) SetAnalytics(ctx context.Context, summary *model.AnalyticsSummary) error {
	args := m.Called(ctx, summary)
	return args.Error(0)
}

func (m *MockCacheRepository) GetAnalytics(ctx context.Context) (*model.AnalyticsSummary, error) {
	args := m.Called(ctx)
	if summary, ok := args.Get(0).(*model.AnalyticsSummary); ok {
		return summary, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockCacheRepository) DeleteAnalytics(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

type applicationServiceMocks struct {
	applicationRepo  *MockApplicationRepository
	opportunityRepo  *MockOpportunityRepository
	organizationRepo *MockOrganizationRepository
	userRepo         *MockUserRepository
	cacheRepo        *MockCacheRepository
}

func newTestApplicationService() (*service.ApplicationService, *applicationServiceMocks) {
	mocks := &applicationServiceMocks{
		applicationRepo:  new(MockApplicationRepository),
		opportunityRepo:  new(MockOpportunityRepository),
		organizationRepo: new(MockOrganizationRepository),
		userRepo:         new(MockUserRepository),
		cacheRepo:        new(MockCacheRepository),
	}

	svc := service.NewApplicationService(
		mocks.applicationRepo,
		mocks.opportunityRepo,
		mocks.organizationRepo,
		mocks.userRepo,
		mocks.cacheRepo,
	)

	return svc, mocks
}

func volunteerContext(userUUID string) context.Context {
	ctx := context.WithValue(context.Background(), "db", &config.Database{})
	return context.WithValue(ctx, security.UserContextKey, &security.Claims{UserUUID: userUUID})
}

// транзакция-заглушка: rollback после commit безвреден
func expectTX(repo *MockApplicationRepository, db *config.Database) {
	repo.On("BeginTX", mock.Anything).
		Return(db, func() error { return nil }, func() error { return nil }, nil)
}

func TestApply_ClosedOpportunity(t *testing.T) {
	svc, mocks := newTestApplicationService()
	ctx := volunteerContext("vol-1")
	db := ctx.Value("db").(*config.Database)

	mocks.userRepo.On("FindByUUID", ctx, mock.Anything, "vol-1").
		Return(&model.User{UUID: "vol-1", Role: model.RoleVolunteer}, nil)
	expectTX(mocks.applicationRepo, db)
	mocks.opportunityRepo.On("GetByUUID", ctx, mock.Anything, "opp-1").
		Return(&model.Opportunity{UUID: "opp-1", Status: model.OpportunityStatusClosed}, nil)

	application, err := svc.Apply(ctx, "opp-1", "хочу участвовать")

	assert.Nil(t, application)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "вакансия закрыта")
}

func TestApply_Duplicate(t *testing.T) {
	svc, mocks := newTestApplicationService()
	ctx := volunteerContext("vol-1")
	db := ctx.Value("db").(*config.Database)

	mocks.userRepo.On("FindByUUID", ctx, mock.Anything, "vol-1").
		Return(&model.User{UUID: "vol-1", Role: model.RoleVolunteer}, nil)
	expectTX(mocks.applicationRepo, db)
	mocks.opportunityRepo.On("GetByUUID", ctx, mock.Anything, "opp-1").
		Return(&model.Opportunity{UUID: "opp-1", Status: model.OpportunityStatusOpen}, nil)
	mocks.applicationRepo.On("ExistsForVolunteer", ctx, mock.Anything, "opp-1", "vol-1").
		Return(true, nil)

	application, err := svc.Apply(ctx, "opp-1", "хочу участвовать")

	assert.Nil(t, application)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "заявка уже подана")
}

func TestApply_OrganizationRoleRejected(t *testing.T) {
	svc, mocks := newTestApplicationService()
	ctx := volunteerContext("org-user")

	mocks.userRepo.On("FindByUUID", ctx, mock.Anything, "org-user").
		Return(&model.User{UUID: "org-user", Role: model.RoleOrganization}, nil)

	application, err := svc.Apply(ctx, "opp-1", "")

	assert.Nil(t, application)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "требуется роль volunteer")
}

func TestApply_Success(t *testing.T) {
	svc, mocks := newTestApplicationService()
	ctx := volunteerContext("vol-1")
	db := ctx.Value("db").(*config.Database)

	mocks.userRepo.On("FindByUUID", ctx, mock.Anything, "vol-1").
		Return(&model.User{UUID: "vol-1", Role: model.RoleVolunteer}, nil)
	expectTX(mocks.applicationRepo, db)
	mocks.opportunityRepo.On("GetByUUID", ctx, mock.Anything, "opp-1").
		Return(&model.Opportunity{UUID: "opp-1", Status: model.OpportunityStatusOpen}, nil)
	mocks.applicationRepo.On("ExistsForVolunteer", ctx, mock.Anything, "opp-1", "vol-1").
		Return(false, nil)
	mocks.applicationRepo.On("Create", ctx, mock.Anything, mock.Anything).
		Return(nil)
	mocks.cacheRepo.On("DeleteAnalytics", ctx).Return(nil)
	mocks.applicationRepo.On("GetByUUID", ctx, mock.Anything, mock.Anything).
		Return(&model.Application{UUID: "app-1", OpportunityUUID: "opp-1", VolunteerUUID: "vol-1", Status: model.ApplicationStatusPending}, nil)

	application, err := svc.Apply(ctx, "opp-1", "хочу участвовать")

	assert.NoError(t, err)
	assert.NotNil(t, application)
	assert.Equal(t, model.ApplicationStatusPending, application.Status)
	mocks.applicationRepo.AssertExpectations(t)
	mocks.cacheRepo.AssertExpectations(t)
}

func TestDecide_InvalidStatus(t *testing.T) {
	svc, _ := newTestApplicationService()
	ctx := volunteerContext("org-owner")

	err := svc.Decide(ctx, "app-1", model.ApplicationStatusWithdrawn)

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "недопустимый статус")
}

func TestDecide_AlreadyDecided(t *testing.T) {
	svc, mocks := newTestApplicationService()
	ctx := volunteerContext("org-owner")
	db := ctx.Value("db").(*config.Database)

	expectTX(mocks.applicationRepo, db)
	mocks.applicationRepo.On("GetByUUID", ctx, mock.Anything, "app-1").
		Return(&model.Application{UUID: "app-1", Status: model.ApplicationStatusAccepted}, nil)

	err := svc.Decide(ctx, "app-1", model.ApplicationStatusRejected)

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "решение уже принято")
}

func TestDecide_ForeignOrganization(t *testing.T) {
	svc, mocks := newTestApplicationService()
	ctx := volunteerContext("other-owner")
	db := ctx.Value("db").(*config.Database)

	expectTX(mocks.applicationRepo, db)
	mocks.applicationRepo.On("GetByUUID", ctx, mock.Anything, "app-1").
		Return(&model.Application{UUID: "app-1", OpportunityUUID: "opp-1", Status: model.ApplicationStatusPending}, nil)
	mocks.opportunityRepo.On("GetByUUID", ctx, mock.Anything, "opp-1").
		Return(&model.Opportunity{UUID: "opp-1", OrganizationUUID: "org-1", Capacity: 5}, nil)
	mocks.organizationRepo.On("GetByOwner", ctx, mock.Anything, "other-owner").
		Return(&model.Organization{UUID: "org-2", OwnerUUID: "other-owner"}, nil)

	err := svc.Decide(ctx, "app-1", model.ApplicationStatusAccepted)

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "доступ запрещён")
}

// принятие сверх вместимости отклоняется
func TestDecide_CapacityFull(t *testing.T) {
	svc, mocks := newTestApplicationService()
	ctx := volunteerContext("org-owner")
	db := ctx.Value("db").(*config.Database)

	expectTX(mocks.applicationRepo, db)
	mocks.applicationRepo.On("GetByUUID", ctx, mock.Anything, "app-1").
		Return(&model.Application{UUID: "app-1", OpportunityUUID: "opp-1", Status: model.ApplicationStatusPending}, nil)
	mocks.opportunityRepo.On("GetByUUID", ctx, mock.Anything, "opp-1").
		Return(&model.Opportunity{UUID: "opp-1", OrganizationUUID: "org-1", Capacity: 2}, nil)
	mocks.organizationRepo.On("GetByOwner", ctx, mock.Anything, "org-owner").
		Return(&model.Organization{UUID: "org-1", OwnerUUID: "org-owner"}, nil)
	mocks.applicationRepo.On("CountByStatus", ctx, mock.Anything, "opp-1", model.ApplicationStatusAccepted).
		Return(2, nil)

	err := svc.Decide(ctx, "app-1", model.ApplicationStatusAccepted)

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "мест больше нет")
	mocks.applicationRepo.AssertNotCalled(t, "UpdateStatus", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestDecide_AcceptSuccess(t *testing.T) {
	svc, mocks := newTestApplicationService()
	ctx := volunteerContext("org-owner")
	db := ctx.Value("db").(*config.Database)

	expectTX(mocks.applicationRepo, db)
	mocks.applicationRepo.On("GetByUUID", ctx, mock.Anything, "app-1").
		Return(&model.Application{UUID: "app-1", OpportunityUUID: "opp-1", Status: model.ApplicationStatusPending}, nil)
	mocks.opportunityRepo.On("GetByUUID", ctx, mock.Anything, "opp-1").
		Return(&model.Opportunity{UUID: "opp-1", OrganizationUUID: "org-1", Capacity: 2}, nil)
	mocks.organizationRepo.On("GetByOwner", ctx, mock.Anything, "org-owner").
		Return(&model.Organization{UUID: "org-1", OwnerUUID: "org-owner"}, nil)
	mocks.applicationRepo.On("CountByStatus", ctx, mock.Anything, "opp-1", model.ApplicationStatusAccepted).
		Return(1, nil)
	mocks.applicationRepo.On("UpdateStatus", ctx, mock.Anything, "app-1", model.ApplicationStatusAccepted).
		Return(nil)
	mocks.cacheRepo.On("DeleteAnalytics", ctx).Return(nil)

	err := svc.Decide(ctx, "app-1", model.ApplicationStatusAccepted)

	assert.NoError(t, err)
	mocks.applicationRepo.AssertExpectations(t)
	mocks.cacheRepo.AssertExpectations(t)
}

func TestWithdraw_RejectedApplication(t *testing.T) {
	svc, mocks := newTestApplicationService()
	ctx := volunteerContext("vol-1")
	db := ctx.Value("db").(*config.Database)

	expectTX(mocks.applicationRepo, db)
	mocks.applicationRepo.On("GetByUUID", ctx, mock.Anything, "app-1").
		Return(&model.Application{UUID: "app-1", VolunteerUUID: "vol-1", Status: model.ApplicationStatusRejected}, nil)

	err := svc.Withdraw(ctx, "app-1")

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "отклонённую заявку нельзя отозвать")
}

func TestWithdraw_ForeignApplication(t *testing.T) {
	svc, mocks := newTestApplicationService()
	ctx := volunteerContext("vol-2")
	db := ctx.Value("db").(*config.Database)

	expectTX(mocks.applicationRepo, db)
	mocks.applicationRepo.On("GetByUUID", ctx, mock.Anything, "app-1").
		Return(&model.Application{UUID: "app-1", VolunteerUUID: "vol-1", Status: model.ApplicationStatusPending}, nil)

	err := svc.Withdraw(ctx, "app-1")

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "доступ запрещён")
}

func TestWithdraw_Success(t *testing.T) {
	svc, mocks := newTestApplicationService()
	ctx := volunteerContext("vol-1")
	db := ctx.Value("db").(*config.Database)

	expectTX(mocks.applicationRepo, db)
	mocks.applicationRepo.On("GetByUUID", ctx, mock.Anything, "app-1").
		Return(&model.Application{UUID: "app-1", VolunteerUUID: "vol-1", Status: model.ApplicationStatusPending}, nil)
	mocks.applicationRepo.On("UpdateStatus", ctx, mock.Anything, "app-1", model.ApplicationStatusWithdrawn).
		Return(nil)
	mocks.cacheRepo.On("DeleteAnalytics", ctx).Return(nil)

	err := svc.Withdraw(ctx, "app-1")

	assert.NoError(t, err)
	mocks.applicationRepo.AssertExpectations(t)
}
