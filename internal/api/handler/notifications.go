package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// ListNotifications returns everything visible to the caller, newest
// first.
func (h *Handler) ListNotifications(c *gin.Context) {
	list, err := h.Notify.ListForUser(c.GetString(ctxUserID), c.GetString(ctxUserRole))
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, list)
}

// UnreadCount returns the caller's badge counter.
func (h *Handler) UnreadCount(c *gin.Context) {
	count, err := h.Notify.UnreadCount(c.GetString(ctxUserID), c.GetString(ctxUserRole))
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"unread": count})
}

// MarkNotificationRead flips one visible notification to read.
func (h *Handler) MarkNotificationRead(c *gin.Context) {
	err := h.Notify.MarkRead(c.Param("id"), c.GetString(ctxUserID), c.GetString(ctxUserRole))
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// MarkAllNotificationsRead flips every notification visible to the caller.
func (h *Handler) MarkAllNotificationsRead(c *gin.Context) {
	err := h.Notify.MarkAllRead(c.GetString(ctxUserID), c.GetString(ctxUserRole))
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
