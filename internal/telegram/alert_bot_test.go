package telegram_test

import (
	"testing"

	"hostelhub/backend/internal/models"
	"hostelhub/backend/internal/telegram"

	"github.com/stretchr/testify/assert"
)

func TestFormatComplaintAlert(t *testing.T) {
	c := &models.Complaint{
		Priority:   models.PriorityHigh,
		RoomNumber: "A-101",
		Title:      "No water",
	}

	got := telegram.FormatComplaintAlert(c)

	assert.Contains(t, got, "high")
	assert.Contains(t, got, "A-101")
	assert.Contains(t, got, "No water")
}

func TestFormatOverdueAlert(t *testing.T) {
	got := telegram.FormatOverdueAlert(3, 12500)

	assert.Contains(t, got, "3 fee(s)")
	assert.Contains(t, got, "12500.00")
}
