package main

import (
	"fmt"
	"log"
	"time"

	"hostelhub/backend/internal/models"
	"hostelhub/backend/internal/storage"

	"github.com/lib/pq"
	"golang.org/x/crypto/bcrypt"
)

// seed loads demo data for a fresh deployment. It is idempotent: if any
// room already exists, nothing is written. Seeding is an explicit
// deployment-time step, never a side effect of serving requests.
func seed(s storage.Storage) error {
	rooms, err := s.ListRooms()
	if err != nil {
		return err
	}
	if len(rooms) > 0 {
		log.Println("Data already exists, skipping seed.")
		return nil
	}

	seedRooms := []models.Room{
		{RoomNumber: "A-101", Block: "A", Floor: 1, Capacity: 1, Type: models.RoomSingle,
			Amenities: pq.StringArray{"wifi", "desk"}, Status: models.RoomAvailable},
		{RoomNumber: "A-102", Block: "A", Floor: 1, Capacity: 2, Type: models.RoomDouble,
			Amenities: pq.StringArray{"wifi", "desk", "balcony"}, Status: models.RoomAvailable},
		{RoomNumber: "A-201", Block: "A", Floor: 2, Capacity: 2, Type: models.RoomDouble,
			Amenities: pq.StringArray{"wifi", "desk"}, Status: models.RoomAvailable},
		{RoomNumber: "B-101", Block: "B", Floor: 1, Capacity: 3, Type: models.RoomTriple,
			Amenities: pq.StringArray{"wifi", "desk", "attached bathroom"}, Status: models.RoomAvailable},
		{RoomNumber: "B-102", Block: "B", Floor: 1, Capacity: 3, Type: models.RoomTriple,
			Amenities: pq.StringArray{"wifi"}, Status: models.RoomMaintenance},
	}
	for i := range seedRooms {
		if err := s.CreateRoom(&seedRooms[i]); err != nil {
			return fmt.Errorf("failed to seed room %s: %w", seedRooms[i].RoomNumber, err)
		}
	}

	if err := createAdmin(s, "warden@hostelhub.local", "Warden", "changeme123"); err != nil {
		return err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte("student123"), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	students := []models.User{
		{Email: "asha@student.local", Name: "Asha Rao", PasswordHash: string(hash), Role: models.RoleStudent},
		{Email: "marko@student.local", Name: "Marko Ilic", PasswordHash: string(hash), Role: models.RoleStudent},
	}
	for i := range students {
		if err := s.CreateUser(&students[i]); err != nil {
			return fmt.Errorf("failed to seed student %s: %w", students[i].Email, err)
		}
	}

	dueDate := time.Now().AddDate(0, 1, 0)
	for _, st := range students {
		fee := &models.Fee{StudentID: st.ID, Amount: 5000, DueDate: dueDate, Status: models.FeePending}
		if err := s.CreateFee(fee); err != nil {
			return fmt.Errorf("failed to seed fee for %s: %w", st.Email, err)
		}
	}

	admin, err := s.GetUserByEmail("warden@hostelhub.local")
	if err != nil {
		return err
	}
	announcement := &models.Announcement{
		Title:     "Welcome to HostelHub",
		Content:   "Room allocation for the new term starts Monday. Check your fees under the Fees tab.",
		Important: false,
		CreatedBy: admin.ID,
	}
	if err := s.CreateAnnouncement(announcement); err != nil {
		return err
	}

	log.Println("Sample data inserted successfully.")
	return nil
}
