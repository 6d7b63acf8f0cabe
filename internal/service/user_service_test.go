package service_test

import (
	"context"
	"errors"
	"testing"

	"volunteer-match-server/config"
	"volunteer-match-server/internal/model"
	"volunteer-match-server/internal/security"
	srv "volunteer-match-server/internal/service"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func TestUserService_Register(t *testing.T) {
	ctx := context.Background()
	db := &config.Database{}
	ctx = context.WithValue(ctx, "db", db)

	securityConfig := &config.SecurityConfig{}

	tests := []struct {
		name        string
		email       string
		password    string
		role        string
		setupMocks  func(u *MockUserRepository)
		expectError string
	}{
		{
			name:        "invalid email",
			email:       "bad",
			password:    "StrongPass123!",
			role:        model.RoleVolunteer,
			expectError: "[UserService] некорректный email",
		},
		{
			name:        "admin role not allowed",
			email:       "user@example.com",
			password:    "StrongPass123!",
			role:        model.RoleAdmin,
			expectError: "[UserService] недопустимая роль",
		},
		{
			name:        "unknown role",
			email:       "user@example.com",
			password:    "StrongPass123!",
			role:        "superhero",
			expectError: "[UserService] недопустимая роль",
		},
		{
			name:        "weak password",
			email:       "user@example.com",
			password:    "short",
			role:        model.RoleVolunteer,
			expectError: "[UserService] пароль должен содержать минимум 8 символов",
		},
		{
			name:        "no digit in password",
			email:       "user@example.com",
			password:    "StrongPass!",
			role:        model.RoleVolunteer,
			expectError: "[UserService] пароль должен содержать хотя бы одну цифру",
		},
		{
			name:     "repository error",
			email:    "user@example.com",
			password: "StrongPass123!",
			role:     model.RoleVolunteer,
			setupMocks: func(u *MockUserRepository) {
				u.On("CreateUser", ctx, db, mock.Anything).Return(nil, errors.New("db error"))
			},
			expectError: "[UserService] ошибка создания пользователя: db error",
		},
		{
			name:     "success volunteer",
			email:    "user@example.com",
			password: "StrongPass123!",
			role:     model.RoleVolunteer,
			setupMocks: func(u *MockUserRepository) {
				createdUser := &model.User{UUID: "user-123", Email: "user@example.com", Role: model.RoleVolunteer}
				u.On("CreateUser", mock.Anything, mock.Anything, mock.Anything).Return(createdUser, nil)
			},
		},
		{
			name:     "success organization",
			email:    "org@example.com",
			password: "StrongPass123!",
			role:     model.RoleOrganization,
			setupMocks: func(u *MockUserRepository) {
				createdUser := &model.User{UUID: "user-456", Email: "org@example.com", Role: model.RoleOrganization}
				u.On("CreateUser", mock.Anything, mock.Anything, mock.Anything).Return(createdUser, nil)
			},
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			mockUserRepo := new(MockUserRepository)
			service := srv.NewUserService(mockUserRepo, securityConfig)

			if tt.setupMocks != nil {
				tt.setupMocks(mockUserRepo)
			}

			user, err := service.Register(ctx, tt.email, tt.password, tt.role)

			if tt.expectError != "" {
				assert.Error(t, err)
				assert.Contains(t, err.Error(), tt.expectError)
				assert.Nil(t, user)
			} else {
				assert.NoError(t, err)
				assert.NotNil(t, user)
				assert.Equal(t, tt.email, user.Email)
				assert.Equal(t, tt.role, user.Role)
			}

			mockUserRepo.AssertExpectations(t)
		})
	}
}

func TestUserService_GetUser(t *testing.T) {
	db := &config.Database{}
	securityConfig := &config.SecurityConfig{}

	tests := []struct {
		name        string
		claims      *security.Claims
		uuid        string
		setupMocks  func(mockRepo *MockUserRepository)
		expectError string
	}{
		{
			name:        "user not authorized",
			claims:      nil,
			uuid:        "user-123",
			expectError: "[UserService] пользователь не авторизован",
		},
		{
			name:        "access denied",
			claims:      &security.Claims{IsAdmin: false, UserUUID: "user-999"},
			uuid:        "user-123",
			expectError: "[UserService] доступ запрещён",
		},
		{
			name:   "user not found",
			claims: &security.Claims{IsAdmin: true},
			uuid:   "user-123",
			setupMocks: func(mockRepo *MockUserRepository) {
				mockRepo.On("FindByUUID", mock.Anything, mock.Anything, "user-123").
					Return(nil, errors.New("db error"))
			},
			expectError: "[UserService] пользователь не найден",
		},
		{
			name:   "user found",
			claims: &security.Claims{IsAdmin: false, UserUUID: "user-123"},
			uuid:   "user-123",
			setupMocks: func(mockRepo *MockUserRepository) {
				mockRepo.On("FindByUUID", mock.Anything, mock.Anything, "user-123").
					Return(&model.User{UUID: "user-123", Email: "user@example.com"}, nil)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo := new(MockUserRepository)
			service := srv.NewUserService(mockRepo, securityConfig)

			ctx := context.WithValue(context.Background(), "db", db)
			if tt.claims != nil {
				ctx = context.WithValue(ctx, security.UserContextKey, tt.claims)
			}

			if tt.setupMocks != nil {
				tt.setupMocks(mockRepo)
			}

			user, err := service.GetUser(ctx, tt.uuid)

			if tt.expectError != "" {
				assert.Error(t, err)
				assert.Contains(t, err.Error(), tt.expectError)
				assert.Nil(t, user)
			} else {
				assert.NoError(t, err)
				assert.NotNil(t, user)
				assert.Equal(t, tt.uuid, user.UUID)
			}

			mockRepo.AssertExpectations(t)
		})
	}
}

func TestUserService_UpdatePassword(t *testing.T) {
	db := &config.Database{}
	securityConfig := &config.SecurityConfig{}

	tests := []struct {
		name        string
		claims      *security.Claims
		uuid        string
		newPassword string
		setupMocks  func(mockRepo *MockUserRepository)
		expectError string
	}{
		{
			name:        "not authorized",
			claims:      nil,
			uuid:        "user-123",
			newPassword: "NewStrongPass123!",
			expectError: "[UserService] пользователь не авторизован",
		},
		{
			name:        "access denied",
			claims:      &security.Claims{UserUUID: "user-999"},
			uuid:        "user-123",
			newPassword: "NewStrongPass123!",
			expectError: "[UserService] доступ запрещён",
		},
		{
			name:        "weak new password",
			claims:      &security.Claims{UserUUID: "user-123"},
			uuid:        "user-123",
			newPassword: "weak",
			expectError: "[UserService] пароль должен содержать минимум 8 символов",
		},
		{
			name:        "success",
			claims:      &security.Claims{UserUUID: "user-123"},
			uuid:        "user-123",
			newPassword: "NewStrongPass123!",
			setupMocks: func(mockRepo *MockUserRepository) {
				mockRepo.On("UpdatePassword", mock.Anything, mock.Anything, "user-123", mock.Anything).
					Return(nil)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo := new(MockUserRepository)
			service := srv.NewUserService(mockRepo, securityConfig)

			ctx := context.WithValue(context.Background(), "db", db)
			if tt.claims != nil {
				ctx = context.WithValue(ctx, security.UserContextKey, tt.claims)
			}

			if tt.setupMocks != nil {
				tt.setupMocks(mockRepo)
			}

			err := service.UpdatePassword(ctx, tt.uuid, tt.newPassword)

			if tt.expectError != "" {
				assert.Error(t, err)
				assert.Contains(t, err.Error(), tt.expectError)
			} else {
				assert.NoError(t, err)
			}

			mockRepo.AssertExpectations(t)
		})
	}
}

func TestUserService_DeleteUser(t *testing.T) {
	db := &config.Database{}
	securityConfig := &config.SecurityConfig{}

	tests := []struct {
		name        string
		claims      *security.Claims
		uuid        string
		setupMocks  func(mockRepo *MockUserRepository)
		expectError string
	}{
		{
			name:        "access denied",
			claims:      &security.Claims{UserUUID: "user-999", IsAdmin: false},
			uuid:        "user-123",
			expectError: "[UserService] доступ запрещён",
		},
		{
			name:   "admin can delete anyone",
			claims: &security.Claims{UserUUID: "admin", IsAdmin: true},
			uuid:   "user-123",
			setupMocks: func(mockRepo *MockUserRepository) {
				mockRepo.On("DeleteUser", mock.Anything, mock.Anything, "user-123").
					Return(nil)
			},
		},
		{
			name:   "owner deletes self",
			claims: &security.Claims{UserUUID: "user-123", IsAdmin: false},
			uuid:   "user-123",
			setupMocks: func(mockRepo *MockUserRepository) {
				mockRepo.On("DeleteUser", mock.Anything, mock.Anything, "user-123").
					Return(nil)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo := new(MockUserRepository)
			service := srv.NewUserService(mockRepo, securityConfig)

			ctx := context.WithValue(context.Background(), "db", db)
			if tt.claims != nil {
				ctx = context.WithValue(ctx, security.UserContextKey, tt.claims)
			}

			if tt.setupMocks != nil {
				tt.setupMocks(mockRepo)
			}

			err := service.DeleteUser(ctx, tt.uuid)

			if tt.expectError != "" {
				assert.Error(t, err)
				assert.Contains(t, err.Error(), tt.expectError)
			} else {
				assert.NoError(t, err)
			}

			mockRepo.AssertExpectations(t)
		})
	}
}
