package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Fee statuses. Paid is terminal: a paid fee can never go back to pending
// or overdue.
const (
	FeePending = "pending"
	FeePaid    = "paid"
	FeeOverdue = "overdue"
)

// Fee is a single billing record for a student. One record is created per
// billing cycle and is never deleted.
type Fee struct {
	ID            string     `gorm:"primaryKey" json:"id"`
	StudentID     string     `gorm:"not null;index" json:"student_id"`
	Amount        float64    `gorm:"not null" json:"amount"`
	DueDate       time.Time  `gorm:"not null" json:"due_date"`
	Status        string     `gorm:"not null;index" json:"status"`
	PaymentDate   *time.Time `json:"payment_date,omitempty"`
	TransactionID string     `gorm:"index" json:"transaction_id,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// BeforeCreate assigns a UUID and defaults the status for new fees.
func (f *Fee) BeforeCreate(tx *gorm.DB) (err error) {
	if f.ID == "" {
		f.ID = uuid.New().String()
	}
	if f.Status == "" {
		f.Status = FeePending
	}
	return
}

// Payment is an immutable history entry recorded whenever a fee is settled.
type Payment struct {
	gorm.Model

	FeeID         string  `gorm:"not null;index" json:"fee_id"`
	StudentID     string  `gorm:"not null;index" json:"student_id"`
	Amount        float64 `gorm:"not null" json:"amount"`
	Method        string  `gorm:"not null" json:"method"`
	TransactionID string  `gorm:"not null;index" json:"transaction_id"`
}
