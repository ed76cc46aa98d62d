package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"time"

	"hostelhub/backend/internal/api/handler"
	"hostelhub/backend/internal/assistant"
	"hostelhub/backend/internal/complaints"
	"hostelhub/backend/internal/config"
	"hostelhub/backend/internal/fees"
	"hostelhub/backend/internal/models"
	"hostelhub/backend/internal/notify"
	"hostelhub/backend/internal/occupancy"
	"hostelhub/backend/internal/storage"
	"hostelhub/backend/internal/telegram"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func setupDependencies(cfg *config.Config) (*gorm.DB, *redis.Client) {
	db, err := gorm.Open(postgres.Open(cfg.DatabaseDSN), &gorm.Config{})
	if err != nil {
		log.Fatalf("Failed to connect PostgreSQL: %v", err)
	}

	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})
	if _, err := rdb.Ping(context.Background()).Result(); err != nil {
		log.Fatalf("Failed to connect Redis: %v", err)
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
		log.Fatalf("Failed to run migrations: %v", err)
	}

	log.Println("Database and Redis connections established, migrations complete.")
	return db, rdb
}

func main() {
	log.Println("Starting HostelHub Backend...")

	if err := godotenv.Load(); err != nil {
		log.Println("Warning: Error loading .env file")
	}
	cfg := config.Load()

	db, rdb := setupDependencies(cfg)
	s := storage.NewStorageService(db, rdb)

	// Optional staff alert bot. Alerting stays off without a token.
	var alerter *telegram.AlertBot
	if cfg.TelegramToken != "" {
		bot, err := telegram.NewAlertBot(cfg.TelegramToken, cfg.TelegramChatID)
		if err != nil {
			log.Printf("ERROR: Failed to start Telegram alert bot: %v", err)
		} else {
			alerter = bot
		}
	}

	// Guard against a typed-nil bot ending up in a non-nil interface.
	var complaintAlerter complaints.Alerter
	var feeAlerter fees.Alerter
	if alerter != nil {
		complaintAlerter = alerter
		feeAlerter = alerter
	}

	notifySvc := notify.NewService(s)
	occupancySvc := occupancy.NewService(s, notifySvc)
	complaintSvc := complaints.NewService(s, notifySvc, complaintAlerter)
	feeSvc := fees.NewService(s, notifySvc, feeAlerter)

	matcher := assistant.NewMatcher()
	if path := os.Getenv("ASSISTANT_RULES_FILE"); path != "" {
		m, err := assistant.NewMatcherFromFile(path)
		if err != nil {
			log.Printf("ERROR: Failed to load assistant rules from %s, using defaults: %v", path, err)
		} else {
			matcher = m
		}
	}

	r := gin.Default()
	h := handler.NewHandler(s, occupancySvc, feeSvc, complaintSvc, notifySvc, matcher, rdb, cfg.JWTSecret)
	h.RegisterRoutes(r)

	server := &http.Server{
		Addr:           cfg.ListenAddr,
		Handler:        r,
		ReadTimeout:    10 * time.Second,
		WriteTimeout:   10 * time.Second,
		MaxHeaderBytes: 1 << 20,
	}

	log.Printf("Listening on %s", cfg.ListenAddr)
	log.Fatal(server.ListenAndServe())
}
