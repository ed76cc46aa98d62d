// Package fees implements the fee ledger: per-student billing records with
// pending → paid / pending → overdue → paid transitions, payment history,
// and read-side aggregates. Paid is terminal.
package fees

import (
	"fmt"
	"log"
	"time"

	"hostelhub/backend/internal/config"
	"hostelhub/backend/internal/models"
	"hostelhub/backend/internal/notify"
	"hostelhub/backend/internal/storage"
	"hostelhub/backend/internal/telegram"
)

// Notifier is the slice of the notification service the ledger needs.
type Notifier interface {
	NotifyUser(userID string, p notify.Payload) (*models.Notification, error)
}

// Alerter pushes out-of-band alerts to hostel staff. Implemented by the
// Telegram bot; nil disables alerting.
type Alerter interface {
	Alert(text string)
}

// Summary is the aggregate view of the ledger shown on the admin dashboard.
type Summary struct {
	TotalAmount    float64        `json:"total_amount"`
	PaidAmount     float64        `json:"paid_amount"`
	CollectionRate float64        `json:"collection_rate"`
	CountByStatus  map[string]int `json:"count_by_status"`
}

// Service implements the fee ledger.
type Service struct {
	Storage  storage.Storage
	Notifier Notifier
	Alerter  Alerter
}

// NewService creates a new fee service. Notifier and Alerter may be nil.
func NewService(s storage.Storage, n Notifier, a Alerter) *Service {
	return &Service{Storage: s, Notifier: n, Alerter: a}
}

// NewTransactionID generates a payment transaction id of the form
// TXN<digits>.
func NewTransactionID() string {
	return fmt.Sprintf("%s%d", config.TransactionIDPrefix, time.Now().UnixNano())
}

// CreateFee opens a pending fee for a student.
func (s *Service) CreateFee(studentID string, amount float64, dueDate time.Time) (*models.Fee, error) {
	if studentID == "" {
		return nil, fmt.Errorf("%w: student id is required", storage.ErrValidation)
	}
	if amount <= 0 {
		return nil, fmt.Errorf("%w: amount must be greater than zero", storage.ErrValidation)
	}
	if dueDate.IsZero() {
		return nil, fmt.Errorf("%w: due date is required", storage.ErrValidation)
	}
	if _, err := s.Storage.GetUserByID(studentID); err != nil {
		return nil, err
	}
	fee := &models.Fee{
		StudentID: studentID,
		Amount:    amount,
		DueDate:   dueDate,
		Status:    models.FeePending,
	}
	if err := s.Storage.CreateFee(fee); err != nil {
		return nil, err
	}
	return fee, nil
}

// applyPaid moves the fee to paid. Returns false when the fee was already
// paid, which is not an error: payment confirmations may be retried.
func applyPaid(fee *models.Fee, now time.Time) bool {
	if fee.Status == models.FeePaid {
		return false
	}
	fee.Status = models.FeePaid
	fee.PaymentDate = &now
	fee.TransactionID = NewTransactionID()
	return true
}

// MarkPaid settles a fee from pending or overdue. Marking an already paid
// fee again is a no-op, never an error.
func (s *Service) MarkPaid(feeID string) (*models.Fee, error) {
	var fee *models.Fee
	err := s.Storage.Transaction(func(tx storage.Storage) error {
		f, err := tx.GetFeeForUpdate(feeID)
		if err != nil {
			return err
		}
		if applyPaid(f, time.Now()) {
			if err := tx.SaveFee(f); err != nil {
				return err
			}
		}
		fee = f
		return nil
	})
	if err != nil {
		return nil, err
	}
	return fee, nil
}

// MarkOverdue flips a pending fee to overdue. A paid fee can never become
// overdue again.
func (s *Service) MarkOverdue(feeID string) (*models.Fee, error) {
	var fee *models.Fee
	err := s.Storage.Transaction(func(tx storage.Storage) error {
		f, err := tx.GetFeeForUpdate(feeID)
		if err != nil {
			return err
		}
		switch f.Status {
		case models.FeePaid:
			return fmt.Errorf("%w: fee %s is already paid", storage.ErrInvalidTransition, feeID)
		case models.FeeOverdue:
			// Already overdue, nothing to do.
		default:
			f.Status = models.FeeOverdue
			if err := tx.SaveFee(f); err != nil {
				return err
			}
		}
		fee = f
		return nil
	})
	if err != nil {
		return nil, err
	}
	return fee, nil
}

// RecordPayment settles the fee like MarkPaid and additionally appends a
// payment history entry and notifies the student.
func (s *Service) RecordPayment(feeID, method string) (*models.Fee, error) {
	if method == "" {
		return nil, fmt.Errorf("%w: payment method is required", storage.ErrValidation)
	}
	var fee *models.Fee
	var settled bool
	err := s.Storage.Transaction(func(tx storage.Storage) error {
		f, err := tx.GetFeeForUpdate(feeID)
		if err != nil {
			return err
		}
		settled = applyPaid(f, time.Now())
		if settled {
			if err := tx.SaveFee(f); err != nil {
				return err
			}
			payment := &models.Payment{
				FeeID:         f.ID,
				StudentID:     f.StudentID,
				Amount:        f.Amount,
				Method:        method,
				TransactionID: f.TransactionID,
			}
			if err := tx.CreatePayment(payment); err != nil {
				return err
			}
		}
		fee = f
		return nil
	})
	if err != nil {
		return nil, err
	}
	if settled && s.Notifier != nil {
		_, nerr := s.Notifier.NotifyUser(fee.StudentID, notify.Payload{
			Title:   "Payment received",
			Message: fmt.Sprintf("Your payment of %.2f was recorded (%s).", fee.Amount, fee.TransactionID),
			Type:    models.NotificationFee,
			Link:    "/fees/" + fee.ID,
		})
		if nerr != nil {
			log.Printf("ERROR: Failed to notify student %s about payment: %v", fee.StudentID, nerr)
		}
	}
	return fee, nil
}

// ListByStudent returns a student's fees ordered by due date.
func (s *Service) ListByStudent(studentID string) ([]models.Fee, error) {
	return s.Storage.ListFeesByStudent(studentID)
}

// PaymentHistory returns a student's payment records, newest first.
func (s *Service) PaymentHistory(studentID string) ([]models.Payment, error) {
	return s.Storage.ListPaymentsByStudent(studentID)
}

// Summarize computes the ledger aggregates. Pure read-side computation,
// nothing is stored.
func (s *Service) Summarize() (*Summary, error) {
	all, err := s.Storage.ListFees()
	if err != nil {
		return nil, err
	}
	sum := &Summary{CountByStatus: map[string]int{}}
	for _, f := range all {
		sum.TotalAmount += f.Amount
		if f.Status == models.FeePaid {
			sum.PaidAmount += f.Amount
		}
		sum.CountByStatus[f.Status]++
	}
	if sum.TotalAmount > 0 {
		sum.CollectionRate = sum.PaidAmount / sum.TotalAmount
	}
	return sum, nil
}

// SweepOverdue flips every pending fee whose due date plus grace period is
// behind now, notifying each affected student. Returns the number of fees
// flipped. Run from the ops CLI.
func (s *Service) SweepOverdue(now time.Time) (int, error) {
	cutoff := now.Add(-config.OverdueGracePeriod)
	due, err := s.Storage.ListPendingFeesDueBefore(cutoff)
	if err != nil {
		return 0, err
	}
	var flipped int
	var total float64
	for _, f := range due {
		if _, err := s.MarkOverdue(f.ID); err != nil {
			log.Printf("ERROR: Failed to mark fee %s overdue: %v", f.ID, err)
			continue
		}
		flipped++
		total += f.Amount
		if s.Notifier != nil {
			_, nerr := s.Notifier.NotifyUser(f.StudentID, notify.Payload{
				Title:   "Fee overdue",
				Message: fmt.Sprintf("Your fee of %.2f due on %s is overdue.", f.Amount, f.DueDate.Format("2006-01-02")),
				Type:    models.NotificationFee,
				Link:    "/fees/" + f.ID,
			})
			if nerr != nil {
				log.Printf("ERROR: Failed to notify student %s about overdue fee: %v", f.StudentID, nerr)
			}
		}
	}
	if flipped > 0 && s.Alerter != nil {
		s.Alerter.Alert(telegram.FormatOverdueAlert(flipped, total))
	}
	return flipped, nil
}
