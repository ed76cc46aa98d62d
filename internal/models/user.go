package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// User roles. Role is fixed at creation time and never changes afterwards;
// admins are created through the ops CLI, signups always become students.
const (
	RoleStudent = "student"
	RoleAdmin   = "admin"
)

// User represents an account in the system, either a student living in the
// hostel or an administrator managing it.
type User struct {
	ID           string `gorm:"primaryKey" json:"id"`
	Email        string `gorm:"uniqueIndex;not null" json:"email"`
	PasswordHash string `gorm:"not null" json:"-"`
	Name         string `gorm:"not null" json:"name"`
	Role         string `gorm:"not null;index" json:"role"`

	// RoomID is the back-pointer to the room the student is assigned to.
	// Empty for unassigned students and for admins. It is only ever written
	// together with the owning Room's student set, inside one transaction.
	RoomID string `gorm:"index" json:"room_id,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// BeforeCreate is a GORM hook that assigns a fresh UUID when the ID
// has not been set by the caller.
func (u *User) BeforeCreate(tx *gorm.DB) (err error) {
	if u.ID == "" {
		u.ID = uuid.New().String()
	}
	return
}

// IsAdmin reports whether the user holds the admin role.
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}
