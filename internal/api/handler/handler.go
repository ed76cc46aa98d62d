// Package handler exposes the hostel services over HTTP with Gin.
package handler

import (
	"errors"
	"net/http"

	"hostelhub/backend/internal/assistant"
	"hostelhub/backend/internal/complaints"
	"hostelhub/backend/internal/fees"
	"hostelhub/backend/internal/notify"
	"hostelhub/backend/internal/occupancy"
	"hostelhub/backend/internal/storage"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

// Handler bundles the services behind the HTTP API.
type Handler struct {
	Storage    storage.Storage
	Occupancy  *occupancy.Service
	Fees       *fees.Service
	Complaints *complaints.Service
	Notify     *notify.Service
	Assistant  *assistant.Matcher
	Redis      *redis.Client
	JWTSecret  []byte
}

// NewHandler wires the services into a Handler.
func NewHandler(
	s storage.Storage,
	occ *occupancy.Service,
	fee *fees.Service,
	comp *complaints.Service,
	ntf *notify.Service,
	asst *assistant.Matcher,
	rdb *redis.Client,
	jwtSecret string,
) *Handler {
	return &Handler{
		Storage:    s,
		Occupancy:  occ,
		Fees:       fee,
		Complaints: comp,
		Notify:     ntf,
		Assistant:  asst,
		Redis:      rdb,
		JWTSecret:  []byte(jwtSecret),
	}
}

// RegisterRoutes mounts the API under /api plus the websocket endpoint.
func (h *Handler) RegisterRoutes(r *gin.Engine) {
	api := r.Group("/api")

	api.POST("/auth/register", h.Register)
	api.POST("/auth/login", h.Login)

	auth := api.Group("")
	auth.Use(h.AuthRequired())
	{
		auth.GET("/me", h.Me)

		auth.GET("/rooms", h.ListRooms)
		auth.GET("/rooms/:id", h.GetRoom)

		auth.GET("/me/fees", h.MyFees)
		auth.GET("/me/payments", h.MyPayments)
		auth.POST("/fees/:id/pay", h.PayFee)

		auth.GET("/complaints", h.ListComplaints)
		auth.POST("/complaints", h.FileComplaint)

		auth.GET("/announcements", h.ListAnnouncements)

		auth.GET("/notifications", h.ListNotifications)
		auth.GET("/notifications/unread-count", h.UnreadCount)
		auth.POST("/notifications/:id/read", h.MarkNotificationRead)
		auth.POST("/notifications/read-all", h.MarkAllNotificationsRead)

		auth.POST("/assistant", h.AskAssistant)
	}

	admin := api.Group("")
	admin.Use(h.AuthRequired(), h.RequireAdmin())
	{
		admin.GET("/students", h.ListStudents)
		admin.DELETE("/students/:id", h.RemoveStudent)

		admin.POST("/rooms", h.CreateRoom)
		admin.PATCH("/rooms/:id", h.UpdateRoom)
		admin.DELETE("/rooms/:id", h.DeleteRoom)
		admin.POST("/rooms/:id/assign", h.AssignStudent)
		admin.POST("/rooms/:id/bulk-assign", h.BulkAssignStudents)
		admin.POST("/rooms/:id/unassign", h.UnassignStudent)

		admin.GET("/fees", h.ListFees)
		admin.GET("/fees/summary", h.FeeSummary)
		admin.POST("/fees", h.CreateFee)
		admin.POST("/fees/:id/mark-paid", h.MarkFeePaid)
		admin.POST("/fees/:id/mark-overdue", h.MarkFeeOverdue)

		admin.POST("/complaints/:id/assign", h.AssignComplaint)
		admin.POST("/complaints/:id/resolve", h.ResolveComplaint)

		admin.POST("/announcements", h.CreateAnnouncement)
		admin.PATCH("/announcements/:id", h.UpdateAnnouncement)
		admin.DELETE("/announcements/:id", h.DeleteAnnouncement)
	}

	r.GET("/ws/notifications", h.ServeNotificationStream)
}

// abortWithError maps service errors onto HTTP status codes and a JSON
// error envelope. Anything outside the known taxonomy is reported as a
// transient store failure the client may retry.
func abortWithError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, storage.ErrValidation):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, storage.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, storage.ErrCapacityExceeded),
		errors.Is(err, storage.ErrRoomOccupied),
		errors.Is(err, storage.ErrInvalidTransition):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "store unavailable, please retry"})
	}
}
