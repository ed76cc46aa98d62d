// Package complaints implements the complaint lifecycle. All status changes
// go through one transition table, so a complaint can never move backwards
// or be touched once resolved, no matter which screen drives it.
package complaints

import (
	"fmt"
	"log"
	"time"

	"hostelhub/backend/internal/models"
	"hostelhub/backend/internal/notify"
	"hostelhub/backend/internal/storage"
	"hostelhub/backend/internal/telegram"
)

// transitions lists the legal status moves. Resolution is reachable both
// from pending and from in-progress; AssignedTo stays empty on the direct
// path.
var transitions = map[string][]string{
	models.ComplaintPending:    {models.ComplaintInProgress, models.ComplaintResolved},
	models.ComplaintInProgress: {models.ComplaintResolved},
}

// CanTransition reports whether a complaint may move from one status to
// another.
func CanTransition(from, to string) bool {
	for _, t := range transitions[from] {
		if t == to {
			return true
		}
	}
	return false
}

// validPriority reports whether p is one of the known priorities.
func validPriority(p string) bool {
	return p == models.PriorityLow || p == models.PriorityMedium || p == models.PriorityHigh
}

// Notifier is the slice of the notification service the workflow needs.
type Notifier interface {
	NotifyUser(userID string, p notify.Payload) (*models.Notification, error)
	NotifyRole(role string, p notify.Payload) (*models.Notification, error)
}

// Alerter pushes out-of-band alerts to hostel staff. Implemented by the
// Telegram bot; nil disables alerting.
type Alerter interface {
	Alert(text string)
}

// Service implements the complaint workflow.
type Service struct {
	Storage  storage.Storage
	Notifier Notifier
	Alerter  Alerter
}

// NewService creates a new complaint service. Notifier and Alerter may be
// nil.
func NewService(s storage.Storage, n Notifier, a Alerter) *Service {
	return &Service{Storage: s, Notifier: n, Alerter: a}
}

// File opens a new pending complaint on behalf of a student. Admins are
// notified; high-priority complaints additionally page staff.
func (s *Service) File(studentID, roomNumber, title, description, priority string) (*models.Complaint, error) {
	if title == "" || description == "" {
		return nil, fmt.Errorf("%w: title and description are required", storage.ErrValidation)
	}
	if priority == "" {
		priority = models.PriorityMedium
	}
	if !validPriority(priority) {
		return nil, fmt.Errorf("%w: unknown priority %q", storage.ErrValidation, priority)
	}
	complaint := &models.Complaint{
		StudentID:   studentID,
		RoomNumber:  roomNumber,
		Title:       title,
		Description: description,
		Priority:    priority,
		Status:      models.ComplaintPending,
	}
	if err := s.Storage.CreateComplaint(complaint); err != nil {
		return nil, err
	}
	if s.Notifier != nil {
		_, err := s.Notifier.NotifyRole(models.RoleAdmin, notify.Payload{
			Title:   "New complaint",
			Message: fmt.Sprintf("[%s] %s (room %s)", complaint.Priority, complaint.Title, complaint.RoomNumber),
			Type:    models.NotificationComplaint,
			Link:    "/complaints/" + complaint.ID,
		})
		if err != nil {
			log.Printf("ERROR: Failed to notify admins about complaint %s: %v", complaint.ID, err)
		}
	}
	if complaint.Priority == models.PriorityHigh && s.Alerter != nil {
		s.Alerter.Alert(telegram.FormatComplaintAlert(complaint))
	}
	return complaint, nil
}

// Assign hands the complaint to a staff member and moves it to in-progress.
// Re-assigning an in-progress complaint just changes the assignee.
func (s *Service) Assign(complaintID, assignee string) (*models.Complaint, error) {
	if assignee == "" {
		return nil, fmt.Errorf("%w: assignee is required", storage.ErrValidation)
	}
	var complaint *models.Complaint
	err := s.Storage.Transaction(func(tx storage.Storage) error {
		c, err := tx.GetComplaintForUpdate(complaintID)
		if err != nil {
			return err
		}
		switch c.Status {
		case models.ComplaintPending:
			if !CanTransition(c.Status, models.ComplaintInProgress) {
				return storage.ErrInvalidTransition
			}
			c.Status = models.ComplaintInProgress
		case models.ComplaintInProgress:
			// Re-assignment, no status change.
		default:
			return fmt.Errorf("%w: complaint %s is resolved", storage.ErrInvalidTransition, complaintID)
		}
		c.AssignedTo = assignee
		if err := tx.SaveComplaint(c); err != nil {
			return err
		}
		complaint = c
		return nil
	})
	if err != nil {
		return nil, err
	}
	s.notifyStudent(complaint, "Complaint in progress",
		fmt.Sprintf("Your complaint %q is being handled by %s.", complaint.Title, complaint.AssignedTo))
	return complaint, nil
}

// Resolve closes the complaint with a resolution note. Legal from both
// pending and in-progress; resolved is terminal.
func (s *Service) Resolve(complaintID, resolution string) (*models.Complaint, error) {
	if resolution == "" {
		return nil, fmt.Errorf("%w: resolution is required", storage.ErrValidation)
	}
	var complaint *models.Complaint
	err := s.Storage.Transaction(func(tx storage.Storage) error {
		c, err := tx.GetComplaintForUpdate(complaintID)
		if err != nil {
			return err
		}
		if !CanTransition(c.Status, models.ComplaintResolved) {
			return fmt.Errorf("%w: cannot resolve complaint in status %q", storage.ErrInvalidTransition, c.Status)
		}
		now := time.Now()
		c.Status = models.ComplaintResolved
		c.Resolution = resolution
		c.ResolvedAt = &now
		if err := tx.SaveComplaint(c); err != nil {
			return err
		}
		complaint = c
		return nil
	})
	if err != nil {
		return nil, err
	}
	s.notifyStudent(complaint, "Complaint resolved",
		fmt.Sprintf("Your complaint %q has been resolved: %s", complaint.Title, complaint.Resolution))
	return complaint, nil
}

// List returns all complaints, newest first.
func (s *Service) List() ([]models.Complaint, error) {
	return s.Storage.ListComplaints()
}

// ListByStudent returns a student's complaints, newest first.
func (s *Service) ListByStudent(studentID string) ([]models.Complaint, error) {
	return s.Storage.ListComplaintsByStudent(studentID)
}

func (s *Service) notifyStudent(c *models.Complaint, title, message string) {
	if s.Notifier == nil || c == nil {
		return
	}
	_, err := s.Notifier.NotifyUser(c.StudentID, notify.Payload{
		Title:   title,
		Message: message,
		Type:    models.NotificationComplaint,
		Link:    "/complaints/" + c.ID,
	})
	if err != nil {
		log.Printf("ERROR: Failed to notify student %s about complaint %s: %v", c.StudentID, c.ID, err)
	}
}
