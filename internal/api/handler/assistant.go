package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

type assistantRequest struct {
	Query string `json:"query" binding:"required"`
}

// AskAssistant answers a help-widget query with a canned response.
func (h *Handler) AskAssistant(c *gin.Context) {
	var req assistantRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"response": h.Assistant.Respond(req.Query)})
}
