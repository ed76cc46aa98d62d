package occupancy_test

import (
	"hostelhub/backend/internal/models"
	"hostelhub/backend/internal/notify"
	"hostelhub/backend/internal/storage"

	"github.com/stretchr/testify/mock"
)

// MockStorage implements the subset of storage.Storage the occupancy
// ledger touches. The embedded interface satisfies the rest; calling an
// unmocked method panics, which is exactly what a test should do.
type MockStorage struct {
	mock.Mock
	storage.Storage
}

// Transaction runs fn directly against the mock; commit/rollback semantics
// are the real Service's concern, not the ledger's.
func (m *MockStorage) Transaction(fn func(tx storage.Storage) error) error {
	return fn(m)
}

func (m *MockStorage) GetRoomForUpdate(id string) (*models.Room, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Room), args.Error(1)
}

func (m *MockStorage) GetUserByID(id string) (*models.User, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockStorage) SaveRoom(room *models.Room) error {
	args := m.Called(room)
	return args.Error(0)
}

func (m *MockStorage) SaveUser(user *models.User) error {
	args := m.Called(user)
	return args.Error(0)
}

func (m *MockStorage) DeleteRoom(id string) error {
	args := m.Called(id)
	return args.Error(0)
}

// MockNotifier records assignment notifications.
type MockNotifier struct {
	mock.Mock
}

func (m *MockNotifier) NotifyUser(userID string, p notify.Payload) (*models.Notification, error) {
	args := m.Called(userID, p)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Notification), args.Error(1)
}
