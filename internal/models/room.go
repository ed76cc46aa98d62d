package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/gorm"
)

// Room statuses.
const (
	RoomAvailable   = "available"
	RoomOccupied    = "occupied"
	RoomMaintenance = "maintenance"
)

// Room types.
const (
	RoomSingle = "single"
	RoomDouble = "double"
	RoomTriple = "triple"
)

// Room represents a hostel room and owns the set of students assigned to it.
// Occupied and Status are derived from Students via RecomputeOccupancy and
// must never be written independently.
type Room struct {
	ID         string         `gorm:"primaryKey" json:"id"`
	RoomNumber string         `gorm:"uniqueIndex;not null" json:"room_number"`
	Block      string         `gorm:"index" json:"block"`
	Floor      int            `json:"floor"`
	Capacity   int            `gorm:"not null" json:"capacity"`
	Occupied   int            `gorm:"not null;default:0" json:"occupied"`
	Type       string         `json:"type"`
	Amenities  pq.StringArray `gorm:"type:text[]" json:"amenities"`
	Status     string         `gorm:"not null;index" json:"status"`
	Students   pq.StringArray `gorm:"type:text[]" json:"students"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// BeforeCreate assigns a UUID and defaults the status for new rooms.
func (r *Room) BeforeCreate(tx *gorm.DB) (err error) {
	if r.ID == "" {
		r.ID = uuid.New().String()
	}
	if r.Status == "" {
		r.Status = RoomAvailable
	}
	return
}

// HasStudent reports whether the given student is assigned to this room.
func (r *Room) HasStudent(studentID string) bool {
	for _, id := range r.Students {
		if id == studentID {
			return true
		}
	}
	return false
}

// AddStudent adds the student to the room's occupant set. Adding a student
// who is already present is a no-op.
func (r *Room) AddStudent(studentID string) {
	if r.HasStudent(studentID) {
		return
	}
	r.Students = append(r.Students, studentID)
}

// RemoveStudent removes the student from the occupant set. Removing a
// student who is not present is a no-op.
func (r *Room) RemoveStudent(studentID string) {
	for i, id := range r.Students {
		if id == studentID {
			r.Students = append(r.Students[:i], r.Students[i+1:]...)
			return
		}
	}
}

// CanAccommodate reports whether n more students fit without exceeding
// capacity.
func (r *Room) CanAccommodate(n int) bool {
	return r.Occupied+n <= r.Capacity
}

// RecomputeOccupancy rederives Occupied and Status from the occupant set.
// A room counts as occupied only once it is full; a partially filled room
// stays available. Maintenance is sticky: it is set and cleared explicitly
// by admins and never overwritten here.
func (r *Room) RecomputeOccupancy() {
	r.Occupied = len(r.Students)
	if r.Status == RoomMaintenance {
		return
	}
	if r.Capacity > 0 && r.Occupied >= r.Capacity {
		r.Status = RoomOccupied
	} else {
		r.Status = RoomAvailable
	}
}
