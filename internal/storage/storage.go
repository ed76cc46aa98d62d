// Package storage provides persistence for all hostel entities against
// PostgreSQL, plus Redis publication of live notification events. Every
// multi-step ledger mutation runs inside Transaction so the room occupant
// set, the student back-pointer, and fee state can never drift apart.
package storage

import (
	"context"
	"errors"
	"time"

	"hostelhub/backend/internal/models"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// Sentinel errors shared by the services. Handlers map these onto HTTP
// status codes; everything else is treated as a transient store failure.
var (
	ErrNotFound          = errors.New("record not found")
	ErrValidation        = errors.New("validation failed")
	ErrCapacityExceeded  = errors.New("room capacity exceeded")
	ErrRoomOccupied      = errors.New("room is occupied")
	ErrInvalidTransition = errors.New("invalid status transition")
)

// Storage is the persistence contract the domain services depend on.
type Storage interface {
	// Transaction runs fn against a transactional view of the store and
	// commits iff fn returns nil. ...ForUpdate reads inside fn take row
	// locks, serialising concurrent ledger mutations on the same entity.
	Transaction(fn func(tx Storage) error) error

	// Users
	CreateUser(user *models.User) error
	GetUserByID(id string) (*models.User, error)
	GetUserByEmail(email string) (*models.User, error)
	ListUsersByRole(role string) ([]models.User, error)
	SaveUser(user *models.User) error
	DeleteUser(id string) error

	// Rooms
	CreateRoom(room *models.Room) error
	GetRoomByID(id string) (*models.Room, error)
	GetRoomForUpdate(id string) (*models.Room, error)
	ListRooms() ([]models.Room, error)
	SaveRoom(room *models.Room) error
	DeleteRoom(id string) error

	// Fees and payments
	CreateFee(fee *models.Fee) error
	GetFeeByID(id string) (*models.Fee, error)
	GetFeeForUpdate(id string) (*models.Fee, error)
	ListFees() ([]models.Fee, error)
	ListFeesByStudent(studentID string) ([]models.Fee, error)
	ListPendingFeesDueBefore(t time.Time) ([]models.Fee, error)
	SaveFee(fee *models.Fee) error
	CreatePayment(payment *models.Payment) error
	ListPaymentsByStudent(studentID string) ([]models.Payment, error)

	// Complaints
	CreateComplaint(complaint *models.Complaint) error
	GetComplaintByID(id string) (*models.Complaint, error)
	GetComplaintForUpdate(id string) (*models.Complaint, error)
	ListComplaints() ([]models.Complaint, error)
	ListComplaintsByStudent(studentID string) ([]models.Complaint, error)
	SaveComplaint(complaint *models.Complaint) error

	// Announcements
	CreateAnnouncement(a *models.Announcement) error
	GetAnnouncementByID(id string) (*models.Announcement, error)
	ListAnnouncements() ([]models.Announcement, error)
	SaveAnnouncement(a *models.Announcement) error
	DeleteAnnouncement(id string) error

	// Notifications
	CreateNotification(n *models.Notification) error
	GetNotificationByID(id string) (*models.Notification, error)
	ListNotificationsForUser(userID, role string) ([]models.Notification, error)
	CountUnreadForUser(userID, role string) (int64, error)
	SaveNotification(n *models.Notification) error
	MarkNotificationsRead(userID, role string) error
	PublishNotification(n *models.Notification) error
}

// Service implements Storage on top of GORM and Redis.
type Service struct {
	DB    *gorm.DB
	Redis *redis.Client
	Ctx   context.Context
}

// NewStorageService builds a Service. Redis may be nil (the ops CLI runs
// without it); publication then becomes a no-op.
func NewStorageService(db *gorm.DB, rdb *redis.Client) *Service {
	return &Service{
		DB:    db,
		Redis: rdb,
		Ctx:   context.Background(),
	}
}

// Transaction runs fn with a Service bound to a database transaction.
func (s *Service) Transaction(fn func(tx Storage) error) error {
	return s.DB.Transaction(func(tx *gorm.DB) error {
		return fn(&Service{DB: tx, Redis: s.Redis, Ctx: s.Ctx})
	})
}

func translate(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	return err
}

// --- Users ---

func (s *Service) CreateUser(user *models.User) error {
	return s.DB.Create(user).Error
}

func (s *Service) GetUserByID(id string) (*models.User, error) {
	var user models.User
	if err := s.DB.First(&user, "id = ?", id).Error; err != nil {
		return nil, translate(err)
	}
	return &user, nil
}

func (s *Service) GetUserByEmail(email string) (*models.User, error) {
	var user models.User
	if err := s.DB.First(&user, "email = ?", email).Error; err != nil {
		return nil, translate(err)
	}
	return &user, nil
}

func (s *Service) ListUsersByRole(role string) ([]models.User, error) {
	var users []models.User
	if err := s.DB.Where("role = ?", role).Order("name asc").Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}

func (s *Service) SaveUser(user *models.User) error {
	return s.DB.Save(user).Error
}

func (s *Service) DeleteUser(id string) error {
	return s.DB.Delete(&models.User{}, "id = ?", id).Error
}
