// Package occupancy keeps a room's occupant set, its derived occupied count
// and status, and each student's room back-pointer mutually consistent.
// Every mutation runs in one storage transaction with the affected room rows
// locked, so the capacity invariant 0 <= occupied <= capacity holds under
// concurrent calls.
package occupancy

import (
	"fmt"
	"log"

	"hostelhub/backend/internal/models"
	"hostelhub/backend/internal/notify"
	"hostelhub/backend/internal/storage"
)

// Notifier is the slice of the notification service the ledger needs.
type Notifier interface {
	NotifyUser(userID string, p notify.Payload) (*models.Notification, error)
}

// Service implements the occupancy ledger.
type Service struct {
	Storage  storage.Storage
	Notifier Notifier
}

// NewService creates a new occupancy service. The notifier may be nil;
// assignments then happen silently.
func NewService(s storage.Storage, n Notifier) *Service {
	return &Service{Storage: s, Notifier: n}
}

// AssignStudent places the student into the room. If the student already
// lives in a different room they are moved: the prior room is decremented
// and recomputed in the same transaction. Fails with ErrCapacityExceeded
// when the room is full, leaving all state untouched.
func (s *Service) AssignStudent(roomID, studentID string) (*models.Room, error) {
	var assigned *models.Room
	var added bool
	err := s.Storage.Transaction(func(tx storage.Storage) error {
		room, err := tx.GetRoomForUpdate(roomID)
		if err != nil {
			return err
		}
		student, err := tx.GetUserByID(studentID)
		if err != nil {
			return err
		}
		if student.Role != models.RoleStudent {
			return fmt.Errorf("%w: user %s is not a student", storage.ErrValidation, studentID)
		}
		if room.HasStudent(studentID) {
			assigned = room
			return nil
		}
		if !room.CanAccommodate(1) {
			return storage.ErrCapacityExceeded
		}

		// Move semantics: leave the previous room first so the occupant
		// set and the back-pointer change in the same transaction.
		if student.RoomID != "" && student.RoomID != roomID {
			prior, err := tx.GetRoomForUpdate(student.RoomID)
			if err != nil && err != storage.ErrNotFound {
				return err
			}
			if prior != nil {
				prior.RemoveStudent(studentID)
				prior.RecomputeOccupancy()
				if err := tx.SaveRoom(prior); err != nil {
					return err
				}
			}
		}

		room.AddStudent(studentID)
		room.RecomputeOccupancy()
		if err := tx.SaveRoom(room); err != nil {
			return err
		}
		student.RoomID = room.ID
		if err := tx.SaveUser(student); err != nil {
			return err
		}
		assigned = room
		added = true
		return nil
	})
	if err != nil {
		return nil, err
	}
	if added {
		s.notifyAssigned(studentID, assigned)
	}
	return assigned, nil
}

// BulkAssign places several students into the room at once. The capacity
// check covers the whole batch: if even one student does not fit, nothing
// is written. On success every assigned student is notified.
func (s *Service) BulkAssign(roomID string, studentIDs []string) (*models.Room, error) {
	if len(studentIDs) == 0 {
		return nil, fmt.Errorf("%w: no students given", storage.ErrValidation)
	}
	var assigned *models.Room
	var notifyIDs []string
	err := s.Storage.Transaction(func(tx storage.Storage) error {
		notifyIDs = notifyIDs[:0]
		room, err := tx.GetRoomForUpdate(roomID)
		if err != nil {
			return err
		}

		var incoming []*models.User
		seen := make(map[string]bool, len(studentIDs))
		for _, id := range studentIDs {
			if seen[id] || room.HasStudent(id) {
				continue
			}
			seen[id] = true
			student, err := tx.GetUserByID(id)
			if err != nil {
				return err
			}
			if student.Role != models.RoleStudent {
				return fmt.Errorf("%w: user %s is not a student", storage.ErrValidation, id)
			}
			incoming = append(incoming, student)
		}
		if !room.CanAccommodate(len(incoming)) {
			return storage.ErrCapacityExceeded
		}

		for _, student := range incoming {
			if student.RoomID != "" && student.RoomID != roomID {
				prior, err := tx.GetRoomForUpdate(student.RoomID)
				if err != nil && err != storage.ErrNotFound {
					return err
				}
				if prior != nil {
					prior.RemoveStudent(student.ID)
					prior.RecomputeOccupancy()
					if err := tx.SaveRoom(prior); err != nil {
						return err
					}
				}
			}
			room.AddStudent(student.ID)
			student.RoomID = room.ID
			if err := tx.SaveUser(student); err != nil {
				return err
			}
			notifyIDs = append(notifyIDs, student.ID)
		}
		room.RecomputeOccupancy()
		if err := tx.SaveRoom(room); err != nil {
			return err
		}
		assigned = room
		return nil
	})
	if err != nil {
		return nil, err
	}
	for _, id := range notifyIDs {
		s.notifyAssigned(id, assigned)
	}
	return assigned, nil
}

// UnassignStudent removes the student from the room and clears their
// back-pointer. Removing a student who is not in the room is a no-op.
func (s *Service) UnassignStudent(roomID, studentID string) (*models.Room, error) {
	var updated *models.Room
	err := s.Storage.Transaction(func(tx storage.Storage) error {
		room, err := tx.GetRoomForUpdate(roomID)
		if err != nil {
			return err
		}
		if !room.HasStudent(studentID) {
			updated = room
			return nil
		}
		room.RemoveStudent(studentID)
		room.RecomputeOccupancy()
		if err := tx.SaveRoom(room); err != nil {
			return err
		}
		updated = room
		student, err := tx.GetUserByID(studentID)
		if err != nil {
			if err == storage.ErrNotFound {
				return nil
			}
			return err
		}
		if student.RoomID == roomID {
			student.RoomID = ""
			if err := tx.SaveUser(student); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// RoomPatch is a partial room update; nil fields are left untouched.
// Occupied and the occupant set are derived state and cannot be patched.
type RoomPatch struct {
	RoomNumber *string
	Block      *string
	Floor      *int
	Capacity   *int
	Type       *string
	Amenities  *[]string
	Status     *string
}

// UpdateRoom applies a patch to a room. Capacity can never drop below the
// current occupancy, and status may only be flipped between available and
// maintenance; occupied is derived and recomputed after every change.
func (s *Service) UpdateRoom(roomID string, p RoomPatch) (*models.Room, error) {
	var updated *models.Room
	err := s.Storage.Transaction(func(tx storage.Storage) error {
		room, err := tx.GetRoomForUpdate(roomID)
		if err != nil {
			return err
		}
		if p.RoomNumber != nil {
			if *p.RoomNumber == "" {
				return fmt.Errorf("%w: room number cannot be empty", storage.ErrValidation)
			}
			room.RoomNumber = *p.RoomNumber
		}
		if p.Block != nil {
			room.Block = *p.Block
		}
		if p.Floor != nil {
			room.Floor = *p.Floor
		}
		if p.Capacity != nil {
			if *p.Capacity < room.Occupied {
				return fmt.Errorf("%w: capacity %d is below current occupancy %d",
					storage.ErrValidation, *p.Capacity, room.Occupied)
			}
			if *p.Capacity <= 0 {
				return fmt.Errorf("%w: capacity must be positive", storage.ErrValidation)
			}
			room.Capacity = *p.Capacity
		}
		if p.Type != nil {
			room.Type = *p.Type
		}
		if p.Amenities != nil {
			room.Amenities = *p.Amenities
		}
		if p.Status != nil {
			switch *p.Status {
			case models.RoomMaintenance, models.RoomAvailable:
				room.Status = *p.Status
			default:
				return fmt.Errorf("%w: status can only be set to available or maintenance", storage.ErrValidation)
			}
		}
		room.RecomputeOccupancy()
		if err := tx.SaveRoom(room); err != nil {
			return err
		}
		updated = room
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// DeleteRoom removes a room. A room with residents cannot be deleted;
// unassign them first.
func (s *Service) DeleteRoom(roomID string) error {
	return s.Storage.Transaction(func(tx storage.Storage) error {
		room, err := tx.GetRoomForUpdate(roomID)
		if err != nil {
			return err
		}
		if room.Occupied > 0 {
			return storage.ErrRoomOccupied
		}
		return tx.DeleteRoom(roomID)
	})
}

func (s *Service) notifyAssigned(studentID string, room *models.Room) {
	if s.Notifier == nil || room == nil {
		return
	}
	_, err := s.Notifier.NotifyUser(studentID, notify.Payload{
		Title:   "Room assigned",
		Message: fmt.Sprintf("You have been assigned to room %s.", room.RoomNumber),
		Type:    models.NotificationRoom,
		Link:    "/rooms/" + room.ID,
	})
	if err != nil {
		log.Printf("ERROR: Failed to notify student %s about room assignment: %v", studentID, err)
	}
}
