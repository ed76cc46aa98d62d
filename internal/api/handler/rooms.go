package handler

import (
	"net/http"

	"hostelhub/backend/internal/models"
	"hostelhub/backend/internal/occupancy"

	"github.com/gin-gonic/gin"
)

// ListRooms returns every room, ordered by room number.
func (h *Handler) ListRooms(c *gin.Context) {
	rooms, err := h.Storage.ListRooms()
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, rooms)
}

// GetRoom returns one room by id.
func (h *Handler) GetRoom(c *gin.Context) {
	room, err := h.Storage.GetRoomByID(c.Param("id"))
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, room)
}

type createRoomRequest struct {
	RoomNumber string   `json:"room_number" binding:"required"`
	Block      string   `json:"block"`
	Floor      int      `json:"floor"`
	Capacity   int      `json:"capacity" binding:"required,gt=0"`
	Type       string   `json:"type" binding:"required,oneof=single double triple"`
	Amenities  []string `json:"amenities"`
}

// CreateRoom adds a new empty room to the inventory.
func (h *Handler) CreateRoom(c *gin.Context) {
	var req createRoomRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	room := &models.Room{
		RoomNumber: req.RoomNumber,
		Block:      req.Block,
		Floor:      req.Floor,
		Capacity:   req.Capacity,
		Type:       req.Type,
		Amenities:  req.Amenities,
		Status:     models.RoomAvailable,
	}
	if err := h.Storage.CreateRoom(room); err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusCreated, room)
}

type updateRoomRequest struct {
	RoomNumber *string   `json:"room_number"`
	Block      *string   `json:"block"`
	Floor      *int      `json:"floor"`
	Capacity   *int      `json:"capacity"`
	Type       *string   `json:"type"`
	Amenities  *[]string `json:"amenities"`
	Status     *string   `json:"status"`
}

// UpdateRoom patches room attributes. Flipping status to maintenance and
// back goes through here; occupancy-derived fields cannot be patched.
func (h *Handler) UpdateRoom(c *gin.Context) {
	var req updateRoomRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	room, err := h.Occupancy.UpdateRoom(c.Param("id"), occupancy.RoomPatch{
		RoomNumber: req.RoomNumber,
		Block:      req.Block,
		Floor:      req.Floor,
		Capacity:   req.Capacity,
		Type:       req.Type,
		Amenities:  req.Amenities,
		Status:     req.Status,
	})
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, room)
}

// DeleteRoom removes an empty room from the inventory.
func (h *Handler) DeleteRoom(c *gin.Context) {
	if err := h.Occupancy.DeleteRoom(c.Param("id")); err != nil {
		abortWithError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

type assignRequest struct {
	StudentID string `json:"student_id" binding:"required"`
}

// AssignStudent places one student into the room.
func (h *Handler) AssignStudent(c *gin.Context) {
	var req assignRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	room, err := h.Occupancy.AssignStudent(c.Param("id"), req.StudentID)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, room)
}

type bulkAssignRequest struct {
	StudentIDs []string `json:"student_ids" binding:"required,min=1"`
}

// BulkAssignStudents places a batch of students into the room; the whole
// batch fails if it does not fit.
func (h *Handler) BulkAssignStudents(c *gin.Context) {
	var req bulkAssignRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	room, err := h.Occupancy.BulkAssign(c.Param("id"), req.StudentIDs)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, room)
}

// UnassignStudent removes a student from the room.
func (h *Handler) UnassignStudent(c *gin.Context) {
	var req assignRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	room, err := h.Occupancy.UnassignStudent(c.Param("id"), req.StudentID)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, room)
}

// ListStudents returns every student account.
func (h *Handler) ListStudents(c *gin.Context) {
	students, err := h.Storage.ListUsersByRole(models.RoleStudent)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, students)
}

// RemoveStudent deletes a student account, unassigning them from their
// room first so the occupancy ledger stays consistent.
func (h *Handler) RemoveStudent(c *gin.Context) {
	id := c.Param("id")
	student, err := h.Storage.GetUserByID(id)
	if err != nil {
		abortWithError(c, err)
		return
	}
	if student.RoomID != "" {
		if _, err := h.Occupancy.UnassignStudent(student.RoomID, id); err != nil {
			abortWithError(c, err)
			return
		}
	}
	if err := h.Storage.DeleteUser(id); err != nil {
		abortWithError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
