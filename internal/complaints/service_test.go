package complaints_test

import (
	"strings"
	"testing"

	"hostelhub/backend/internal/complaints"
	"hostelhub/backend/internal/models"
	"hostelhub/backend/internal/storage"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func TestCanTransition(t *testing.T) {
	cases := []struct {
		from, to string
		want     bool
	}{
		{models.ComplaintPending, models.ComplaintInProgress, true},
		{models.ComplaintPending, models.ComplaintResolved, true},
		{models.ComplaintInProgress, models.ComplaintResolved, true},
		{models.ComplaintInProgress, models.ComplaintPending, false},
		{models.ComplaintResolved, models.ComplaintPending, false},
		{models.ComplaintResolved, models.ComplaintInProgress, false},
		{models.ComplaintResolved, models.ComplaintResolved, false},
		{models.ComplaintPending, models.ComplaintPending, false},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, complaints.CanTransition(c.from, c.to), "%s -> %s", c.from, c.to)
	}
}

func TestFile_Validation(t *testing.T) {
	svc := complaints.NewService(new(MockStorage), nil, nil)

	_, err := svc.File("s1", "A-101", "", "the tap leaks", "")
	assert.ErrorIs(t, err, storage.ErrValidation)

	_, err = svc.File("s1", "A-101", "Leaky tap", "", "")
	assert.ErrorIs(t, err, storage.ErrValidation)

	_, err = svc.File("s1", "A-101", "Leaky tap", "the tap leaks", "urgent")
	assert.ErrorIs(t, err, storage.ErrValidation)
}

// TestFile_DefaultsAndNotifiesAdmins: a new complaint opens pending with
// medium priority and pings the admin role.
func TestFile_DefaultsAndNotifiesAdmins(t *testing.T) {
	storageMock := new(MockStorage)
	notifierMock := new(MockNotifier)
	svc := complaints.NewService(storageMock, notifierMock, nil)

	storageMock.On("CreateComplaint", mock.AnythingOfType("*models.Complaint")).Return(nil)
	notifierMock.On("NotifyRole", models.RoleAdmin, mock.Anything).Return(&models.Notification{}, nil)

	c, err := svc.File("s1", "A-101", "Leaky tap", "the tap leaks", "")

	assert.NoError(t, err)
	assert.Equal(t, models.ComplaintPending, c.Status)
	assert.Equal(t, models.PriorityMedium, c.Priority)
	assert.Empty(t, c.AssignedTo)
	storageMock.AssertExpectations(t)
	notifierMock.AssertExpectations(t)
}

// TestFile_HighPriorityPagesStaff: high priority additionally fires the
// out-of-band alert.
func TestFile_HighPriorityPagesStaff(t *testing.T) {
	storageMock := new(MockStorage)
	notifierMock := new(MockNotifier)
	alerterMock := new(MockAlerter)
	svc := complaints.NewService(storageMock, notifierMock, alerterMock)

	storageMock.On("CreateComplaint", mock.AnythingOfType("*models.Complaint")).Return(nil)
	notifierMock.On("NotifyRole", models.RoleAdmin, mock.Anything).Return(&models.Notification{}, nil)
	alerterMock.On("Alert", mock.MatchedBy(func(text string) bool {
		return strings.Contains(text, "A-101")
	})).Once()

	_, err := svc.File("s1", "A-101", "No water", "no water since morning", models.PriorityHigh)

	assert.NoError(t, err)
	alerterMock.AssertExpectations(t)
}

func TestFile_MediumPriorityDoesNotPage(t *testing.T) {
	storageMock := new(MockStorage)
	alerterMock := new(MockAlerter)
	svc := complaints.NewService(storageMock, nil, alerterMock)

	storageMock.On("CreateComplaint", mock.AnythingOfType("*models.Complaint")).Return(nil)

	_, err := svc.File("s1", "A-101", "Leaky tap", "the tap leaks", models.PriorityMedium)

	assert.NoError(t, err)
	alerterMock.AssertNotCalled(t, "Alert", mock.Anything)
}

func TestAssign_MovesToInProgress(t *testing.T) {
	storageMock := new(MockStorage)
	notifierMock := new(MockNotifier)
	svc := complaints.NewService(storageMock, notifierMock, nil)

	c := &models.Complaint{ID: "c1", StudentID: "s1", Title: "Leaky tap", Status: models.ComplaintPending}
	storageMock.On("GetComplaintForUpdate", "c1").Return(c, nil)
	storageMock.On("SaveComplaint", c).Return(nil)
	notifierMock.On("NotifyUser", "s1", mock.Anything).Return(&models.Notification{}, nil)

	got, err := svc.Assign("c1", "maintenance-team")

	assert.NoError(t, err)
	assert.Equal(t, models.ComplaintInProgress, got.Status)
	assert.Equal(t, "maintenance-team", got.AssignedTo)
	storageMock.AssertExpectations(t)
	notifierMock.AssertExpectations(t)
}

// TestAssign_Reassignment changes the assignee without a status change.
func TestAssign_Reassignment(t *testing.T) {
	storageMock := new(MockStorage)
	svc := complaints.NewService(storageMock, nil, nil)

	c := &models.Complaint{ID: "c1", StudentID: "s1", Status: models.ComplaintInProgress, AssignedTo: "old-team"}
	storageMock.On("GetComplaintForUpdate", "c1").Return(c, nil)
	storageMock.On("SaveComplaint", c).Return(nil)

	got, err := svc.Assign("c1", "new-team")

	assert.NoError(t, err)
	assert.Equal(t, models.ComplaintInProgress, got.Status)
	assert.Equal(t, "new-team", got.AssignedTo)
}

func TestAssign_ResolvedIsTerminal(t *testing.T) {
	storageMock := new(MockStorage)
	svc := complaints.NewService(storageMock, nil, nil)

	c := &models.Complaint{ID: "c1", Status: models.ComplaintResolved}
	storageMock.On("GetComplaintForUpdate", "c1").Return(c, nil)

	_, err := svc.Assign("c1", "team")

	assert.ErrorIs(t, err, storage.ErrInvalidTransition)
	storageMock.AssertNotCalled(t, "SaveComplaint", mock.Anything)
}

func TestAssign_RequiresAssignee(t *testing.T) {
	svc := complaints.NewService(new(MockStorage), nil, nil)

	_, err := svc.Assign("c1", "")

	assert.ErrorIs(t, err, storage.ErrValidation)
}

// TestResolve_DirectFromPending closes a complaint that was never assigned;
// AssignedTo stays empty.
func TestResolve_DirectFromPending(t *testing.T) {
	storageMock := new(MockStorage)
	notifierMock := new(MockNotifier)
	svc := complaints.NewService(storageMock, notifierMock, nil)

	c := &models.Complaint{ID: "c1", StudentID: "s1", Title: "Leaky tap", Status: models.ComplaintPending}
	storageMock.On("GetComplaintForUpdate", "c1").Return(c, nil)
	storageMock.On("SaveComplaint", c).Return(nil)
	notifierMock.On("NotifyUser", "s1", mock.Anything).Return(&models.Notification{}, nil)

	got, err := svc.Resolve("c1", "Washer replaced.")

	assert.NoError(t, err)
	assert.Equal(t, models.ComplaintResolved, got.Status)
	assert.Equal(t, "Washer replaced.", got.Resolution)
	assert.NotNil(t, got.ResolvedAt)
	assert.Empty(t, got.AssignedTo)
	notifierMock.AssertExpectations(t)
}

// TestResolve_AfterAssign keeps the assignee on the closed record.
func TestResolve_AfterAssign(t *testing.T) {
	storageMock := new(MockStorage)
	svc := complaints.NewService(storageMock, nil, nil)

	c := &models.Complaint{ID: "c1", StudentID: "s1", Status: models.ComplaintInProgress, AssignedTo: "maintenance-team"}
	storageMock.On("GetComplaintForUpdate", "c1").Return(c, nil)
	storageMock.On("SaveComplaint", c).Return(nil)

	got, err := svc.Resolve("c1", "Fixed.")

	assert.NoError(t, err)
	assert.Equal(t, models.ComplaintResolved, got.Status)
	assert.Equal(t, "maintenance-team", got.AssignedTo)
	assert.NotNil(t, got.ResolvedAt)
}

func TestResolve_ResolvedIsTerminal(t *testing.T) {
	storageMock := new(MockStorage)
	svc := complaints.NewService(storageMock, nil, nil)

	c := &models.Complaint{ID: "c1", Status: models.ComplaintResolved}
	storageMock.On("GetComplaintForUpdate", "c1").Return(c, nil)

	_, err := svc.Resolve("c1", "again")

	assert.ErrorIs(t, err, storage.ErrInvalidTransition)
	storageMock.AssertNotCalled(t, "SaveComplaint", mock.Anything)
}

func TestResolve_RequiresResolution(t *testing.T) {
	svc := complaints.NewService(new(MockStorage), nil, nil)

	_, err := svc.Resolve("c1", "")

	assert.ErrorIs(t, err, storage.ErrValidation)
}

func TestFile_NotifierFailureDoesNotFailFiling(t *testing.T) {
	storageMock := new(MockStorage)
	notifierMock := new(MockNotifier)
	svc := complaints.NewService(storageMock, notifierMock, nil)

	storageMock.On("CreateComplaint", mock.AnythingOfType("*models.Complaint")).Return(nil)
	notifierMock.On("NotifyRole", models.RoleAdmin, mock.Anything).Return(nil, assert.AnError)

	c, err := svc.File("s1", "A-101", "Leaky tap", "the tap leaks", "")

	assert.NoError(t, err)
	assert.NotNil(t, c)
}
