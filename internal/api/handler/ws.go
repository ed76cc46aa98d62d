package handler

import (
	"context"
	"encoding/json"
	"log"
	"net/http"

	"hostelhub/backend/internal/config"
	"hostelhub/backend/internal/models"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// Allows connections from any origin. Tighten in production.
	CheckOrigin: func(r *http.Request) bool { return true },
}

// ServeNotificationStream upgrades the connection and streams live
// notifications to the caller. Every server instance publishes to one Redis
// channel; each connection filters the stream down to what its user may
// see.
func (h *Handler) ServeNotificationStream(c *gin.Context) {
	tokenString := bearerToken(c)
	if tokenString == "" {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "authorization token missing"})
		return
	}
	claims, err := h.parseToken(tokenString)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid or expired token"})
		return
	}
	userID, _ := claims["sub"].(string)
	role, _ := claims["role"].(string)

	if h.Redis == nil {
		c.AbortWithStatusJSON(http.StatusServiceUnavailable, gin.H{"error": "live notifications unavailable"})
		return
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "failed to upgrade connection"})
		return
	}

	ctx, cancel := context.WithCancel(context.Background())
	pubsub := h.Redis.Subscribe(ctx, config.NotifyChannel)

	// Write pump: forward matching notifications until the subscription or
	// the socket dies.
	go func() {
		defer conn.Close()
		for msg := range pubsub.Channel() {
			var n models.Notification
			if err := json.Unmarshal([]byte(msg.Payload), &n); err != nil {
				log.Printf("ERROR: Failed to unmarshal notification event: %v", err)
				continue
			}
			if !n.VisibleTo(userID, role) {
				continue
			}
			if err := conn.WriteJSON(n); err != nil {
				return
			}
		}
	}()

	// Read pump: the client sends nothing meaningful; reading just detects
	// disconnects so the subscription can be torn down.
	go func() {
		defer func() {
			cancel()
			pubsub.Close()
			conn.Close()
		}()
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()
}
