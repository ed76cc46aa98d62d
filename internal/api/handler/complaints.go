package handler

import (
	"net/http"

	"hostelhub/backend/internal/models"

	"github.com/gin-gonic/gin"
)

type fileComplaintRequest struct {
	RoomNumber  string `json:"room_number"`
	Title       string `json:"title" binding:"required"`
	Description string `json:"description" binding:"required"`
	Priority    string `json:"priority" binding:"omitempty,oneof=low medium high"`
}

// FileComplaint opens a complaint on behalf of the authenticated student.
// When no room number is given, the student's assigned room is used.
func (h *Handler) FileComplaint(c *gin.Context) {
	var req fileComplaintRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	studentID := c.GetString(ctxUserID)
	roomNumber := req.RoomNumber
	if roomNumber == "" {
		if student, err := h.Storage.GetUserByID(studentID); err == nil && student.RoomID != "" {
			if room, err := h.Storage.GetRoomByID(student.RoomID); err == nil {
				roomNumber = room.RoomNumber
			}
		}
	}
	complaint, err := h.Complaints.File(studentID, roomNumber, req.Title, req.Description, req.Priority)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusCreated, complaint)
}

// ListComplaints returns all complaints for admins, or the caller's own
// complaints for students.
func (h *Handler) ListComplaints(c *gin.Context) {
	var (
		list []models.Complaint
		err  error
	)
	if c.GetString(ctxUserRole) == models.RoleAdmin {
		list, err = h.Complaints.List()
	} else {
		list, err = h.Complaints.ListByStudent(c.GetString(ctxUserID))
	}
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, list)
}

type assignComplaintRequest struct {
	Assignee string `json:"assignee" binding:"required"`
}

// AssignComplaint hands the complaint to a staff member.
func (h *Handler) AssignComplaint(c *gin.Context) {
	var req assignComplaintRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	complaint, err := h.Complaints.Assign(c.Param("id"), req.Assignee)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, complaint)
}

type resolveComplaintRequest struct {
	Resolution string `json:"resolution" binding:"required"`
}

// ResolveComplaint closes the complaint with a resolution note.
func (h *Handler) ResolveComplaint(c *gin.Context) {
	var req resolveComplaintRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	complaint, err := h.Complaints.Resolve(c.Param("id"), req.Resolution)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, complaint)
}
