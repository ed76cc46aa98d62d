package storage

import (
	"encoding/json"
	"time"

	"hostelhub/backend/internal/config"
	"hostelhub/backend/internal/models"

	"gorm.io/gorm/clause"
)

// --- Rooms ---

func (s *Service) CreateRoom(room *models.Room) error {
	return s.DB.Create(room).Error
}

func (s *Service) GetRoomByID(id string) (*models.Room, error) {
	var room models.Room
	if err := s.DB.First(&room, "id = ?", id).Error; err != nil {
		return nil, translate(err)
	}
	return &room, nil
}

// GetRoomForUpdate reads a room with a FOR UPDATE row lock. Inside a
// Transaction this serialises concurrent occupancy mutations on the same
// room, so two assignments cannot both pass a stale capacity check.
func (s *Service) GetRoomForUpdate(id string) (*models.Room, error) {
	var room models.Room
	err := s.DB.Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&room, "id = ?", id).Error
	if err != nil {
		return nil, translate(err)
	}
	return &room, nil
}

func (s *Service) ListRooms() ([]models.Room, error) {
	var rooms []models.Room
	if err := s.DB.Order("room_number asc").Find(&rooms).Error; err != nil {
		return nil, err
	}
	return rooms, nil
}

func (s *Service) SaveRoom(room *models.Room) error {
	return s.DB.Save(room).Error
}

func (s *Service) DeleteRoom(id string) error {
	return s.DB.Delete(&models.Room{}, "id = ?", id).Error
}

// --- Fees and payments ---

func (s *Service) CreateFee(fee *models.Fee) error {
	return s.DB.Create(fee).Error
}

func (s *Service) GetFeeByID(id string) (*models.Fee, error) {
	var fee models.Fee
	if err := s.DB.First(&fee, "id = ?", id).Error; err != nil {
		return nil, translate(err)
	}
	return &fee, nil
}

func (s *Service) GetFeeForUpdate(id string) (*models.Fee, error) {
	var fee models.Fee
	err := s.DB.Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&fee, "id = ?", id).Error
	if err != nil {
		return nil, translate(err)
	}
	return &fee, nil
}

func (s *Service) ListFees() ([]models.Fee, error) {
	var fees []models.Fee
	if err := s.DB.Order("due_date asc").Find(&fees).Error; err != nil {
		return nil, err
	}
	return fees, nil
}

func (s *Service) ListFeesByStudent(studentID string) ([]models.Fee, error) {
	var fees []models.Fee
	err := s.DB.Where("student_id = ?", studentID).
		Order("due_date asc").Find(&fees).Error
	if err != nil {
		return nil, err
	}
	return fees, nil
}

func (s *Service) ListPendingFeesDueBefore(t time.Time) ([]models.Fee, error) {
	var fees []models.Fee
	err := s.DB.Where("status = ? AND due_date < ?", models.FeePending, t).
		Find(&fees).Error
	if err != nil {
		return nil, err
	}
	return fees, nil
}

func (s *Service) SaveFee(fee *models.Fee) error {
	return s.DB.Save(fee).Error
}

func (s *Service) CreatePayment(payment *models.Payment) error {
	return s.DB.Create(payment).Error
}

func (s *Service) ListPaymentsByStudent(studentID string) ([]models.Payment, error) {
	var payments []models.Payment
	err := s.DB.Where("student_id = ?", studentID).
		Order("created_at desc").Find(&payments).Error
	if err != nil {
		return nil, err
	}
	return payments, nil
}

// --- Complaints ---

func (s *Service) CreateComplaint(complaint *models.Complaint) error {
	return s.DB.Create(complaint).Error
}

func (s *Service) GetComplaintByID(id string) (*models.Complaint, error) {
	var complaint models.Complaint
	if err := s.DB.First(&complaint, "id = ?", id).Error; err != nil {
		return nil, translate(err)
	}
	return &complaint, nil
}

func (s *Service) GetComplaintForUpdate(id string) (*models.Complaint, error) {
	var complaint models.Complaint
	err := s.DB.Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&complaint, "id = ?", id).Error
	if err != nil {
		return nil, translate(err)
	}
	return &complaint, nil
}

func (s *Service) ListComplaints() ([]models.Complaint, error) {
	var complaints []models.Complaint
	if err := s.DB.Order("created_at desc").Find(&complaints).Error; err != nil {
		return nil, err
	}
	return complaints, nil
}

func (s *Service) ListComplaintsByStudent(studentID string) ([]models.Complaint, error) {
	var complaints []models.Complaint
	err := s.DB.Where("student_id = ?", studentID).
		Order("created_at desc").Find(&complaints).Error
	if err != nil {
		return nil, err
	}
	return complaints, nil
}

func (s *Service) SaveComplaint(complaint *models.Complaint) error {
	return s.DB.Save(complaint).Error
}

// --- Announcements ---

func (s *Service) CreateAnnouncement(a *models.Announcement) error {
	return s.DB.Create(a).Error
}

func (s *Service) GetAnnouncementByID(id string) (*models.Announcement, error) {
	var a models.Announcement
	if err := s.DB.First(&a, "id = ?", id).Error; err != nil {
		return nil, translate(err)
	}
	return &a, nil
}

func (s *Service) ListAnnouncements() ([]models.Announcement, error) {
	var list []models.Announcement
	if err := s.DB.Order("created_at desc").Find(&list).Error; err != nil {
		return nil, err
	}
	return list, nil
}

func (s *Service) SaveAnnouncement(a *models.Announcement) error {
	return s.DB.Save(a).Error
}

func (s *Service) DeleteAnnouncement(id string) error {
	return s.DB.Delete(&models.Announcement{}, "id = ?", id).Error
}

// --- Notifications ---

func (s *Service) CreateNotification(n *models.Notification) error {
	return s.DB.Create(n).Error
}

func (s *Service) GetNotificationByID(id string) (*models.Notification, error) {
	var n models.Notification
	if err := s.DB.First(&n, "id = ?", id).Error; err != nil {
		return nil, translate(err)
	}
	return &n, nil
}

// ListNotificationsForUser returns everything visible to the user: records
// addressed to them, to their role, and global ones, newest first. The three
// targeting modes are mutually exclusive per record, so the OR query cannot
// produce duplicates.
func (s *Service) ListNotificationsForUser(userID, role string) ([]models.Notification, error) {
	var list []models.Notification
	err := s.DB.
		Where("user_id = ? OR role = ? OR global = ?", userID, role, true).
		Order("created_at desc").
		Find(&list).Error
	if err != nil {
		return nil, err
	}
	return list, nil
}

func (s *Service) CountUnreadForUser(userID, role string) (int64, error) {
	var count int64
	err := s.DB.Model(&models.Notification{}).
		Where("read = ?", false).
		Where("user_id = ? OR role = ? OR global = ?", userID, role, true).
		Count(&count).Error
	return count, err
}

func (s *Service) SaveNotification(n *models.Notification) error {
	return s.DB.Save(n).Error
}

func (s *Service) MarkNotificationsRead(userID, role string) error {
	return s.DB.Model(&models.Notification{}).
		Where("read = ?", false).
		Where("user_id = ? OR role = ? OR global = ?", userID, role, true).
		Update("read", true).Error
}

// PublishNotification pushes the notification onto the Redis pub/sub
// channel for live delivery. Callers decide how to handle a failed publish;
// the record itself is already durable by the time this runs.
func (s *Service) PublishNotification(n *models.Notification) error {
	if s.Redis == nil {
		return nil
	}
	payload, err := json.Marshal(n)
	if err != nil {
		return err
	}
	return s.Redis.Publish(s.Ctx, config.NotifyChannel, payload).Err()
}
