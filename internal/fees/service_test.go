package fees_test

import (
	"regexp"
	"testing"
	"time"

	"hostelhub/backend/internal/fees"
	"hostelhub/backend/internal/models"
	"hostelhub/backend/internal/storage"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

var txnPattern = regexp.MustCompile(`^TXN\d+$`)

func TestCreateFee_Validation(t *testing.T) {
	svc := fees.NewService(new(MockStorage), nil, nil)
	due := time.Now().AddDate(0, 1, 0)

	_, err := svc.CreateFee("", 5000, due)
	assert.ErrorIs(t, err, storage.ErrValidation)

	_, err = svc.CreateFee("s1", 0, due)
	assert.ErrorIs(t, err, storage.ErrValidation)

	_, err = svc.CreateFee("s1", -100, due)
	assert.ErrorIs(t, err, storage.ErrValidation)

	_, err = svc.CreateFee("s1", 5000, time.Time{})
	assert.ErrorIs(t, err, storage.ErrValidation)
}

func TestCreateFee_UnknownStudent(t *testing.T) {
	storageMock := new(MockStorage)
	svc := fees.NewService(storageMock, nil, nil)

	storageMock.On("GetUserByID", "ghost").Return(nil, storage.ErrNotFound)

	_, err := svc.CreateFee("ghost", 5000, time.Now().AddDate(0, 1, 0))

	assert.ErrorIs(t, err, storage.ErrNotFound)
	storageMock.AssertNotCalled(t, "CreateFee", mock.Anything)
}

func TestCreateFee_OpensPending(t *testing.T) {
	storageMock := new(MockStorage)
	svc := fees.NewService(storageMock, nil, nil)

	storageMock.On("GetUserByID", "s1").Return(&models.User{ID: "s1"}, nil)
	storageMock.On("CreateFee", mock.AnythingOfType("*models.Fee")).Return(nil)

	fee, err := svc.CreateFee("s1", 5000, time.Now().AddDate(0, 1, 0))

	assert.NoError(t, err)
	assert.Equal(t, models.FeePending, fee.Status)
	assert.Nil(t, fee.PaymentDate)
	assert.Empty(t, fee.TransactionID)
	storageMock.AssertExpectations(t)
}

// TestMarkPaid_SettlesFee verifies the paid transition stamps the payment
// date and a TXN-prefixed transaction id.
func TestMarkPaid_SettlesFee(t *testing.T) {
	storageMock := new(MockStorage)
	svc := fees.NewService(storageMock, nil, nil)

	fee := &models.Fee{ID: "f1", StudentID: "s1", Amount: 5000, Status: models.FeePending}
	storageMock.On("GetFeeForUpdate", "f1").Return(fee, nil)
	storageMock.On("SaveFee", fee).Return(nil)

	got, err := svc.MarkPaid("f1")

	assert.NoError(t, err)
	assert.Equal(t, models.FeePaid, got.Status)
	assert.NotNil(t, got.PaymentDate)
	assert.Regexp(t, txnPattern, got.TransactionID)
	storageMock.AssertExpectations(t)
}

// TestMarkPaid_Idempotent verifies settling an already paid fee keeps the
// original transaction id and writes nothing.
func TestMarkPaid_Idempotent(t *testing.T) {
	storageMock := new(MockStorage)
	svc := fees.NewService(storageMock, nil, nil)

	paidAt := time.Now().Add(-time.Hour)
	fee := &models.Fee{ID: "f1", Status: models.FeePaid, PaymentDate: &paidAt, TransactionID: "TXN123"}
	storageMock.On("GetFeeForUpdate", "f1").Return(fee, nil)

	got, err := svc.MarkPaid("f1")

	assert.NoError(t, err)
	assert.Equal(t, "TXN123", got.TransactionID)
	assert.Equal(t, paidAt, *got.PaymentDate)
	storageMock.AssertNotCalled(t, "SaveFee", mock.Anything)
}

func TestMarkPaid_FromOverdue(t *testing.T) {
	storageMock := new(MockStorage)
	svc := fees.NewService(storageMock, nil, nil)

	fee := &models.Fee{ID: "f1", Status: models.FeeOverdue}
	storageMock.On("GetFeeForUpdate", "f1").Return(fee, nil)
	storageMock.On("SaveFee", fee).Return(nil)

	got, err := svc.MarkPaid("f1")

	assert.NoError(t, err)
	assert.Equal(t, models.FeePaid, got.Status)
}

// TestMarkOverdue_PaidIsTerminal: a settled fee can never become overdue.
func TestMarkOverdue_PaidIsTerminal(t *testing.T) {
	storageMock := new(MockStorage)
	svc := fees.NewService(storageMock, nil, nil)

	fee := &models.Fee{ID: "f1", Status: models.FeePaid}
	storageMock.On("GetFeeForUpdate", "f1").Return(fee, nil)

	_, err := svc.MarkOverdue("f1")

	assert.ErrorIs(t, err, storage.ErrInvalidTransition)
	storageMock.AssertNotCalled(t, "SaveFee", mock.Anything)
}

func TestMarkOverdue_Flips(t *testing.T) {
	storageMock := new(MockStorage)
	svc := fees.NewService(storageMock, nil, nil)

	fee := &models.Fee{ID: "f1", Status: models.FeePending}
	storageMock.On("GetFeeForUpdate", "f1").Return(fee, nil)
	storageMock.On("SaveFee", fee).Return(nil)

	got, err := svc.MarkOverdue("f1")

	assert.NoError(t, err)
	assert.Equal(t, models.FeeOverdue, got.Status)
	storageMock.AssertExpectations(t)
}

func TestMarkOverdue_AlreadyOverdue(t *testing.T) {
	storageMock := new(MockStorage)
	svc := fees.NewService(storageMock, nil, nil)

	fee := &models.Fee{ID: "f1", Status: models.FeeOverdue}
	storageMock.On("GetFeeForUpdate", "f1").Return(fee, nil)

	got, err := svc.MarkOverdue("f1")

	assert.NoError(t, err)
	assert.Equal(t, models.FeeOverdue, got.Status)
	storageMock.AssertNotCalled(t, "SaveFee", mock.Anything)
}

// TestRecordPayment_AppendsHistory verifies the payment record carries the
// fee's transaction id and the student is notified.
func TestRecordPayment_AppendsHistory(t *testing.T) {
	storageMock := new(MockStorage)
	notifierMock := new(MockNotifier)
	svc := fees.NewService(storageMock, notifierMock, nil)

	fee := &models.Fee{ID: "f1", StudentID: "s1", Amount: 5000, Status: models.FeePending}
	storageMock.On("GetFeeForUpdate", "f1").Return(fee, nil)
	storageMock.On("SaveFee", fee).Return(nil)
	storageMock.On("CreatePayment", mock.AnythingOfType("*models.Payment")).Return(nil)
	notifierMock.On("NotifyUser", "s1", mock.Anything).Return(&models.Notification{}, nil)

	got, err := svc.RecordPayment("f1", "upi")

	assert.NoError(t, err)
	assert.Equal(t, models.FeePaid, got.Status)
	payment := storageMock.Calls[2].Arguments.Get(0).(*models.Payment)
	assert.Equal(t, "f1", payment.FeeID)
	assert.Equal(t, "s1", payment.StudentID)
	assert.Equal(t, 5000.0, payment.Amount)
	assert.Equal(t, "upi", payment.Method)
	assert.Equal(t, got.TransactionID, payment.TransactionID)
	storageMock.AssertExpectations(t)
	notifierMock.AssertExpectations(t)
}

func TestRecordPayment_RequiresMethod(t *testing.T) {
	svc := fees.NewService(new(MockStorage), nil, nil)

	_, err := svc.RecordPayment("f1", "")

	assert.ErrorIs(t, err, storage.ErrValidation)
}

// TestRecordPayment_AlreadyPaid: a retried confirmation neither duplicates
// the history entry nor re-notifies.
func TestRecordPayment_AlreadyPaid(t *testing.T) {
	storageMock := new(MockStorage)
	notifierMock := new(MockNotifier)
	svc := fees.NewService(storageMock, notifierMock, nil)

	fee := &models.Fee{ID: "f1", StudentID: "s1", Status: models.FeePaid, TransactionID: "TXN123"}
	storageMock.On("GetFeeForUpdate", "f1").Return(fee, nil)

	_, err := svc.RecordPayment("f1", "upi")

	assert.NoError(t, err)
	storageMock.AssertNotCalled(t, "CreatePayment", mock.Anything)
	notifierMock.AssertNotCalled(t, "NotifyUser", mock.Anything, mock.Anything)
}

func TestSummarize(t *testing.T) {
	storageMock := new(MockStorage)
	svc := fees.NewService(storageMock, nil, nil)

	storageMock.On("ListFees").Return([]models.Fee{
		{Amount: 5000, Status: models.FeePaid},
		{Amount: 3000, Status: models.FeePending},
		{Amount: 2000, Status: models.FeeOverdue},
	}, nil)

	sum, err := svc.Summarize()

	assert.NoError(t, err)
	assert.Equal(t, 10000.0, sum.TotalAmount)
	assert.Equal(t, 5000.0, sum.PaidAmount)
	assert.InDelta(t, 0.5, sum.CollectionRate, 1e-9)
	assert.Equal(t, 1, sum.CountByStatus[models.FeePaid])
	assert.Equal(t, 1, sum.CountByStatus[models.FeePending])
	assert.Equal(t, 1, sum.CountByStatus[models.FeeOverdue])
}

func TestSummarize_EmptyLedger(t *testing.T) {
	storageMock := new(MockStorage)
	svc := fees.NewService(storageMock, nil, nil)

	storageMock.On("ListFees").Return([]models.Fee{}, nil)

	sum, err := svc.Summarize()

	assert.NoError(t, err)
	assert.Zero(t, sum.TotalAmount)
	assert.Zero(t, sum.CollectionRate)
}

// TestSweepOverdue flips every fee past its grace period, notifies each
// student, and pages staff once with the batch total.
func TestSweepOverdue(t *testing.T) {
	storageMock := new(MockStorage)
	notifierMock := new(MockNotifier)
	alerterMock := new(MockAlerter)
	svc := fees.NewService(storageMock, notifierMock, alerterMock)

	now := time.Now()
	due := []models.Fee{
		{ID: "f1", StudentID: "s1", Amount: 5000, Status: models.FeePending, DueDate: now.AddDate(0, 0, -10)},
		{ID: "f2", StudentID: "s2", Amount: 3000, Status: models.FeePending, DueDate: now.AddDate(0, 0, -5)},
	}
	storageMock.On("ListPendingFeesDueBefore", mock.AnythingOfType("time.Time")).Return(due, nil)
	for i := range due {
		f := due[i]
		storageMock.On("GetFeeForUpdate", f.ID).Return(&f, nil)
		notifierMock.On("NotifyUser", f.StudentID, mock.Anything).Return(&models.Notification{}, nil).Once()
	}
	storageMock.On("SaveFee", mock.AnythingOfType("*models.Fee")).Return(nil)
	alerterMock.On("Alert", mock.MatchedBy(func(text string) bool {
		return text != ""
	})).Once()

	flipped, err := svc.SweepOverdue(now)

	assert.NoError(t, err)
	assert.Equal(t, 2, flipped)
	notifierMock.AssertExpectations(t)
	alerterMock.AssertExpectations(t)
}

// TestSweepOverdue_NothingDue never pages staff.
func TestSweepOverdue_NothingDue(t *testing.T) {
	storageMock := new(MockStorage)
	alerterMock := new(MockAlerter)
	svc := fees.NewService(storageMock, nil, alerterMock)

	storageMock.On("ListPendingFeesDueBefore", mock.AnythingOfType("time.Time")).Return([]models.Fee{}, nil)

	flipped, err := svc.SweepOverdue(time.Now())

	assert.NoError(t, err)
	assert.Zero(t, flipped)
	alerterMock.AssertNotCalled(t, "Alert", mock.Anything)
}

func TestNewTransactionID(t *testing.T) {
	assert.Regexp(t, txnPattern, fees.NewTransactionID())
}
