package fees_test

import (
	"time"

	"hostelhub/backend/internal/models"
	"hostelhub/backend/internal/notify"
	"hostelhub/backend/internal/storage"

	"github.com/stretchr/testify/mock"
)

// MockStorage implements the subset of storage.Storage the fee ledger
// touches. The embedded interface satisfies the rest; calling an unmocked
// method panics.
type MockStorage struct {
	mock.Mock
	storage.Storage
}

func (m *MockStorage) Transaction(fn func(tx storage.Storage) error) error {
	return fn(m)
}

func (m *MockStorage) GetUserByID(id string) (*models.User, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockStorage) CreateFee(fee *models.Fee) error {
	args := m.Called(fee)
	return args.Error(0)
}

func (m *MockStorage) GetFeeForUpdate(id string) (*models.Fee, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Fee), args.Error(1)
}

func (m *MockStorage) SaveFee(fee *models.Fee) error {
	args := m.Called(fee)
	return args.Error(0)
}

func (m *MockStorage) CreatePayment(p *models.Payment) error {
	args := m.Called(p)
	return args.Error(0)
}

func (m *MockStorage) ListFees() ([]models.Fee, error) {
	args := m.Called()
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Fee), args.Error(1)
}

func (m *MockStorage) ListFeesByStudent(studentID string) ([]models.Fee, error) {
	args := m.Called(studentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Fee), args.Error(1)
}

func (m *MockStorage) ListPaymentsByStudent(studentID string) ([]models.Payment, error) {
	args := m.Called(studentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Payment), args.Error(1)
}

func (m *MockStorage) ListPendingFeesDueBefore(cutoff time.Time) ([]models.Fee, error) {
	args := m.Called(cutoff)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Fee), args.Error(1)
}

// MockNotifier records student notifications.
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

// MockAlerter records staff alerts.
type MockAlerter struct {
	mock.Mock
}

func (m *MockAlerter) Alert(text string) {
	m.Called(text)
}
