package notify_test

import (
	"hostelhub/backend/internal/models"
	"hostelhub/backend/internal/storage"

	"github.com/stretchr/testify/mock"
)

// MockStorage implements the subset of storage.Storage the notification
// service touches. The embedded interface satisfies the rest; calling an
// unmocked method panics.
type MockStorage struct {
	mock.Mock
	storage.Storage
}

func (m *MockStorage) CreateNotification(n *models.Notification) error {
	args := m.Called(n)
	return args.Error(0)
}

func (m *MockStorage) PublishNotification(n *models.Notification) error {
	args := m.Called(n)
	return args.Error(0)
}

func (m *MockStorage) GetNotificationByID(id string) (*models.Notification, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Notification), args.Error(1)
}

func (m *MockStorage) SaveNotification(n *models.Notification) error {
	args := m.Called(n)
	return args.Error(0)
}

func (m *MockStorage) ListNotificationsForUser(userID, role string) ([]models.Notification, error) {
	args := m.Called(userID, role)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Notification), args.Error(1)
}

func (m *MockStorage) CountUnreadForUser(userID, role string) (int64, error) {
	args := m.Called(userID, role)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockStorage) MarkNotificationsRead(userID, role string) error {
	args := m.Called(userID, role)
	return args.Error(0)
}
