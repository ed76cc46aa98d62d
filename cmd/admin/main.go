package main

import (
	"fmt"
	"log"
	"os"
	"time"

	"hostelhub/backend/internal/config"
	"hostelhub/backend/internal/fees"
	"hostelhub/backend/internal/models"
	"hostelhub/backend/internal/notify"
	"hostelhub/backend/internal/storage"

	"github.com/joho/godotenv"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: Error loading .env file")
	}
	cfg := config.Load()

	db, err := gorm.Open(postgres.Open(cfg.DatabaseDSN), &gorm.Config{})
	if err != nil {
		log.Fatalf("failed to connect database: %v", err)
	}
	err = db.AutoMigrate(
		&models.User{},
		&models.Room{},
		&models.Fee{},
		&models.Payment{},
		&models.Complaint{},
		&models.Announcement{},
		&models.Notification{},
	)
	if err != nil {
		log.Fatalf("failed to run migrations: %v", err)
	}

	storageSvc := storage.NewStorageService(db, nil) // No redis needed for admin CLI

	if len(os.Args) < 2 {
		fmt.Println("Usage: admin <command> [args]")
		fmt.Println("Commands: seed | create-admin <email> <name> <password> | sweep-overdue")
		os.Exit(1)
	}

	switch os.Args[1] {
	case "seed":
		if err := seed(storageSvc); err != nil {
			log.Fatalf("Error seeding database: %v", err)
		}
	case "create-admin":
		if len(os.Args) != 5 {
			fmt.Println("Usage: admin create-admin <email> <name> <password>")
			os.Exit(1)
		}
		if err := createAdmin(storageSvc, os.Args[2], os.Args[3], os.Args[4]); err != nil {
			log.Fatalf("Error creating admin: %v", err)
		}
		fmt.Printf("Admin %s has been created.\n", os.Args[2])
	case "sweep-overdue":
		notifySvc := notify.NewService(storageSvc)
		feeSvc := fees.NewService(storageSvc, notifySvc, nil)
		flipped, err := feeSvc.SweepOverdue(time.Now())
		if err != nil {
			log.Fatalf("Error sweeping overdue fees: %v", err)
		}
		fmt.Printf("%d fee(s) marked overdue.\n", flipped)
	default:
		fmt.Println("Unknown command")
		os.Exit(1)
	}
}

func createAdmin(s storage.Storage, email, name, password string) error {
	if _, err := s.GetUserByEmail(email); err == nil {
		return fmt.Errorf("a user with email %s already exists", email)
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	return s.CreateUser(&models.User{
		Email:        email,
		Name:         name,
		PasswordHash: string(hash),
		Role:         models.RoleAdmin,
	})
}
