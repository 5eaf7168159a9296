package testhelpers

import (
	"context"
	"io"

	"github.com/stretchr/testify/mock"

	"github.com/mealmate/backend/internal/model"
	"github.com/mealmate/backend/internal/types"
)

// MockNotificationService is a mock implementation of the
// INotificationService interface.
type MockNotificationService struct {
	mock.Mock
}

func (m *MockNotificationService) ScheduleMealNotification(ctx context.Context, meal *model.Meal) (string, error) {
	args := m.Called(ctx, meal)
	return args.String(0), args.Error(1)
}

func (m *MockNotificationService) UpdateMealNotification(ctx context.Context, meal *model.Meal) (string, error) {
	args := m.Called(ctx, meal)
	return args.String(0), args.Error(1)
}

func (m *MockNotificationService) CancelMealNotification(ctx context.Context, mealID string) error {
	args := m.Called(ctx, mealID)
	return args.Error(0)
}

func (m *MockNotificationService) CancelAllMealNotifications(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockNotificationService) SchedulePlanningReminders(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockNotificationService) CancelPlanningReminders(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockNotificationService) MealReminders(ctx context.Context, mealID string) ([]model.ScheduledReminder, error) {
	args := m.Called(ctx, mealID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.ScheduledReminder), args.Error(1)
}

func (m *MockNotificationService) SendTestPlanningReminder(ctx context.Context, t model.MealType) error {
	args := m.Called(ctx, t)
	return args.Error(0)
}

func (m *MockNotificationService) Settings(ctx context.Context) (model.NotificationSettings, error) {
	args := m.Called(ctx)
	return args.Get(0).(model.NotificationSettings), args.Error(1)
}

func (m *MockNotificationService) SaveSettings(ctx context.Context, settings model.NotificationSettings) error {
	args := m.Called(ctx, settings)
	return args.Error(0)
}

// MockUploader is a mock implementation of the ImageUploader interface.
type MockUploader struct {
	mock.Mock
}

func (m *MockUploader) UploadImage(ctx context.Context, file io.Reader, name string) (string, error) {
	args := m.Called(ctx, file, name)
	return args.String(0), args.Error(1)
}

// MockAuthService is a mock implementation of the IAuthService
// interface.
type MockAuthService struct {
	mock.Mock
}

func (m *MockAuthService) Register(ctx context.Context, username, email, password string) (*model.User, string, error) {
	args := m.Called(ctx, username, email, password)
	if args.Get(0) == nil {
		return nil, "", args.Error(2)
	}
	return args.Get(0).(*model.User), args.String(1), args.Error(2)
}

func (m *MockAuthService) Login(ctx context.Context, email, password string) (*model.User, string, error) {
	args := m.Called(ctx, email, password)
	if args.Get(0) == nil {
		return nil, "", args.Error(2)
	}
	return args.Get(0).(*model.User), args.String(1), args.Error(2)
}

func (m *MockAuthService) ValidateToken(token string) (*types.TokenClaims, error) {
	args := m.Called(token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*types.TokenClaims), args.Error(1)
}
