// Package notify implements notification fan-out. A logical notification is
// addressed to one user, one role, or everyone; each call persists exactly
// one record and publishes it for live delivery over the websocket stream.
package notify

import (
	"fmt"
	"log"

	"hostelhub/backend/internal/models"
	"hostelhub/backend/internal/storage"
)

// Payload is the caller-facing shape of a notification before targeting.
type Payload struct {
	Title   string
	Message string
	Type    string
	Link    string
}

// Service handles creating, listing, and read-tracking of notifications.
type Service struct {
	Storage storage.Storage
}

// NewService creates a new notification service.
func NewService(s storage.Storage) *Service {
	return &Service{Storage: s}
}

func (s *Service) create(n *models.Notification) (*models.Notification, error) {
	if n.Title == "" || n.Message == "" {
		return nil, fmt.Errorf("%w: notification title and message are required", storage.ErrValidation)
	}
	if n.Type == "" {
		n.Type = models.NotificationInfo
	}
	if err := s.Storage.CreateNotification(n); err != nil {
		return nil, err
	}
	if err := s.Storage.PublishNotification(n); err != nil {
		// Live delivery is best effort; the record is already durable.
		log.Printf("ERROR: Failed to publish notification %s: %v", n.ID, err)
	}
	return n, nil
}

// NotifyUser delivers the payload to a single user.
func (s *Service) NotifyUser(userID string, p Payload) (*models.Notification, error) {
	if userID == "" {
		return nil, fmt.Errorf("%w: user id is required", storage.ErrValidation)
	}
	return s.create(&models.Notification{
		Title:   p.Title,
		Message: p.Message,
		Type:    p.Type,
		Link:    p.Link,
		UserID:  userID,
	})
}

// NotifyRole delivers the payload to every user holding the role.
func (s *Service) NotifyRole(role string, p Payload) (*models.Notification, error) {
	if role != models.RoleStudent && role != models.RoleAdmin {
		return nil, fmt.Errorf("%w: unknown role %q", storage.ErrValidation, role)
	}
	return s.create(&models.Notification{
		Title:   p.Title,
		Message: p.Message,
		Type:    p.Type,
		Link:    p.Link,
		Role:    role,
	})
}

// NotifyGlobal delivers the payload to everyone.
func (s *Service) NotifyGlobal(p Payload) (*models.Notification, error) {
	return s.create(&models.Notification{
		Title:   p.Title,
		Message: p.Message,
		Type:    p.Type,
		Link:    p.Link,
		Global:  true,
	})
}

// ListForUser returns all notifications visible to the user, newest first.
func (s *Service) ListForUser(userID, role string) ([]models.Notification, error) {
	return s.Storage.ListNotificationsForUser(userID, role)
}

// UnreadCount returns the badge counter for the user.
func (s *Service) UnreadCount(userID, role string) (int64, error) {
	return s.Storage.CountUnreadForUser(userID, role)
}

// MarkRead flips a single notification to read. Records not visible to the
// caller are reported as not found rather than leaking their existence.
func (s *Service) MarkRead(id, userID, role string) error {
	n, err := s.Storage.GetNotificationByID(id)
	if err != nil {
		return err
	}
	if !n.VisibleTo(userID, role) {
		return storage.ErrNotFound
	}
	if n.Read {
		return nil
	}
	n.Read = true
	return s.Storage.SaveNotification(n)
}

// MarkAllRead flips every unread notification visible to the user. The
// visible set is the deduplicated union of user, role, and global records;
// nothing outside it is touched.
func (s *Service) MarkAllRead(userID, role string) error {
	return s.Storage.MarkNotificationsRead(userID, role)
}
