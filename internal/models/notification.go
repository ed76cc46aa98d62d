package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Notification types used by the workflows that emit them.
const (
	NotificationInfo      = "info"
	NotificationRoom      = "room"
	NotificationFee       = "fee"
	NotificationComplaint = "complaint"
)

// Notification is a persisted message addressed to exactly one of: a single
// user (UserID set), every user holding a role (Role set), or everyone
// (Global true). The targeting fields are mutually exclusive; the notify
// service is the only writer and enforces this.
type Notification struct {
	ID      string `gorm:"primaryKey" json:"id"`
	Title   string `gorm:"not null" json:"title"`
	Message string `gorm:"type:text;not null" json:"message"`
	Type    string `gorm:"not null" json:"type"`
	Link    string `json:"link,omitempty"`

	UserID string `gorm:"index" json:"user_id,omitempty"`
	Role   string `gorm:"index" json:"role,omitempty"`
	Global bool   `gorm:"not null;default:false" json:"global"`

	Read bool `gorm:"not null;default:false" json:"read"`

	CreatedAt time.Time `json:"created_at"`
}

// BeforeCreate assigns a UUID when the ID has not been set.
func (n *Notification) BeforeCreate(tx *gorm.DB) (err error) {
	if n.ID == "" {
		n.ID = uuid.New().String()
	}
	return
}

// VisibleTo reports whether the notification is addressed to the given
// user, directly, via their role, or globally.
func (n *Notification) VisibleTo(userID, role string) bool {
	if n.Global {
		return true
	}
	if n.UserID != "" && n.UserID == userID {
		return true
	}
	return n.Role != "" && n.Role == role
}
