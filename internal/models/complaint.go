package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Complaint statuses. Resolved is terminal.
const (
	ComplaintPending    = "pending"
	ComplaintInProgress = "in-progress"
	ComplaintResolved   = "resolved"
)

// Complaint priorities.
const (
	PriorityLow    = "low"
	PriorityMedium = "medium"
	PriorityHigh   = "high"
)

// Complaint is a maintenance or service issue raised by a student and
// worked by the hostel staff.
type Complaint struct {
	ID          string `gorm:"primaryKey" json:"id"`
	StudentID   string `gorm:"not null;index" json:"student_id"`
	RoomNumber  string `gorm:"index" json:"room_number"`
	Title       string `gorm:"not null" json:"title"`
	Description string `gorm:"type:text;not null" json:"description"`
	Priority    string `gorm:"not null;index" json:"priority"`
	Status      string `gorm:"not null;index" json:"status"`

	// AssignedTo names the staff member working the complaint. It stays
	// empty when a complaint is resolved directly from pending.
	AssignedTo string     `json:"assigned_to,omitempty"`
	Resolution string     `gorm:"type:text" json:"resolution,omitempty"`
	ResolvedAt *time.Time `json:"resolved_at,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// BeforeCreate assigns a UUID and defaults status and priority.
func (c *Complaint) BeforeCreate(tx *gorm.DB) (err error) {
	if c.ID == "" {
		c.ID = uuid.New().String()
	}
	if c.Status == "" {
		c.Status = ComplaintPending
	}
	if c.Priority == "" {
		c.Priority = PriorityMedium
	}
	return
}
