package complaints_test

import (
	"hostelhub/backend/internal/models"
	"hostelhub/backend/internal/notify"
	"hostelhub/backend/internal/storage"

	"github.com/stretchr/testify/mock"
)

// MockStorage implements the subset of storage.Storage the complaint
// workflow touches. The embedded interface satisfies the rest; calling an
// unmocked method panics.
type MockStorage struct {
	mock.Mock
	storage.Storage
}

func (m *MockStorage) Transaction(fn func(tx storage.Storage) error) error {
	return fn(m)
}

func (m *MockStorage) CreateComplaint(c *models.Complaint) error {
	args := m.Called(c)
	return args.Error(0)
}

func (m *MockStorage) GetComplaintForUpdate(id string) (*models.Complaint, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Complaint), args.Error(1)
}

func (m *MockStorage) SaveComplaint(c *models.Complaint) error {
	args := m.Called(c)
	return args.Error(0)
}

func (m *MockStorage) ListComplaints() ([]models.Complaint, error) {
	args := m.Called()
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Complaint), args.Error(1)
}

func (m *MockStorage) ListComplaintsByStudent(studentID string) ([]models.Complaint, error) {
	args := m.Called(studentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Complaint), args.Error(1)
}

// MockNotifier records user and role notifications.
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

func (m *MockNotifier) NotifyRole(role string, p notify.Payload) (*models.Notification, error) {
	args := m.Called(role, p)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Notification), args.Error(1)
}

// MockAlerter records staff alerts.
type MockAlerter struct {
	mock.Mock
}

func (m *MockAlerter) Alert(text string) {
	m.Called(text)
}
