package handler

import (
	"log"
	"net/http"

	"hostelhub/backend/internal/models"
	"hostelhub/backend/internal/notify"

	"github.com/gin-gonic/gin"
)

// ListAnnouncements returns the notice board, newest first.
func (h *Handler) ListAnnouncements(c *gin.Context) {
	list, err := h.Storage.ListAnnouncements()
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, list)
}

type announcementRequest struct {
	Title     string `json:"title" binding:"required"`
	Content   string `json:"content" binding:"required"`
	Important bool   `json:"important"`
}

// CreateAnnouncement posts a notice. Important notices additionally fan
// out a global notification so everyone sees them immediately.
func (h *Handler) CreateAnnouncement(c *gin.Context) {
	var req announcementRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	a := &models.Announcement{
		Title:     req.Title,
		Content:   req.Content,
		Important: req.Important,
		CreatedBy: c.GetString(ctxUserID),
	}
	if err := h.Storage.CreateAnnouncement(a); err != nil {
		abortWithError(c, err)
		return
	}
	if a.Important {
		_, err := h.Notify.NotifyGlobal(notify.Payload{
			Title:   a.Title,
			Message: a.Content,
			Type:    models.NotificationInfo,
			Link:    "/announcements/" + a.ID,
		})
		if err != nil {
			log.Printf("ERROR: Failed to fan out announcement %s: %v", a.ID, err)
		}
	}
	c.JSON(http.StatusCreated, a)
}

type updateAnnouncementRequest struct {
	Title     *string `json:"title"`
	Content   *string `json:"content"`
	Important *bool   `json:"important"`
}

// UpdateAnnouncement edits an existing notice.
func (h *Handler) UpdateAnnouncement(c *gin.Context) {
	var req updateAnnouncementRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	a, err := h.Storage.GetAnnouncementByID(c.Param("id"))
	if err != nil {
		abortWithError(c, err)
		return
	}
	if req.Title != nil {
		a.Title = *req.Title
	}
	if req.Content != nil {
		a.Content = *req.Content
	}
	if req.Important != nil {
		a.Important = *req.Important
	}
	if err := h.Storage.SaveAnnouncement(a); err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, a)
}

// DeleteAnnouncement removes a notice from the board.
func (h *Handler) DeleteAnnouncement(c *gin.Context) {
	if _, err := h.Storage.GetAnnouncementByID(c.Param("id")); err != nil {
		abortWithError(c, err)
		return
	}
	if err := h.Storage.DeleteAnnouncement(c.Param("id")); err != nil {
		abortWithError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
