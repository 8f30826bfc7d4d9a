// Package mocks provides testify mocks for the service interfaces.
package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/JayL96/user-management/models"
)

// MockUserService is a testify mock of services.UserService
type MockUserService struct {
	mock.Mock
}

func (m *MockUserService) GetAll(ctx context.Context) ([]models.User, error) {
	args := m.Called(ctx)
	users, _ := args.Get(0).([]models.User)
	return users, args.Error(1)
}

func (m *MockUserService) FilterByActive(ctx context.Context, isActive bool) ([]models.User, error) {
	args := m.Called(ctx, isActive)
	users, _ := args.Get(0).([]models.User)
	return users, args.Error(1)
}

func (m *MockUserService) GetByID(ctx context.Context, id int64) (*models.User, error) {
	args := m.Called(ctx, id)
	user, _ := args.Get(0).(*models.User)
	return user, args.Error(1)
}

func (m *MockUserService) Create(ctx context.Context, user *models.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserService) Update(ctx context.Context, user *models.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserService) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockUserService) Count(ctx context.Context) (int, error) {
	args := m.Called(ctx)
	return args.Int(0), args.Error(1)
}

// MockLogService is a testify mock of services.LogService
type MockLogService struct {
	mock.Mock
}

func (m *MockLogService) Append(ctx context.Context, userID int64, action models.LogAction, details string) (*models.LogEntry, error) {
	args := m.Called(ctx, userID, action, details)
	entry, _ := args.Get(0).(*models.LogEntry)
	return entry, args.Error(1)
}

func (m *MockLogService) ListForUser(ctx context.Context, userID int64, page, pageSize int) ([]models.LogEntry, error) {
	args := m.Called(ctx, userID, page, pageSize)
	entries, _ := args.Get(0).([]models.LogEntry)
	return entries, args.Error(1)
}

func (m *MockLogService) CountForUser(ctx context.Context, userID int64) (int, error) {
	args := m.Called(ctx, userID)
	return args.Int(0), args.Error(1)
}

func (m *MockLogService) ListPaged(ctx context.Context, page, pageSize int, action *models.LogAction, search string) ([]models.LogEntry, error) {
	args := m.Called(ctx, page, pageSize, action, search)
	entries, _ := args.Get(0).([]models.LogEntry)
	return entries, args.Error(1)
}

func (m *MockLogService) Count(ctx context.Context, action *models.LogAction, search string) (int, error) {
	args := m.Called(ctx, action, search)
	return args.Int(0), args.Error(1)
}

func (m *MockLogService) GetByID(ctx context.Context, id int64) (*models.LogEntry, error) {
	args := m.Called(ctx, id)
	entry, _ := args.Get(0).(*models.LogEntry)
	return entry, args.Error(1)
}
