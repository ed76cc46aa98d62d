// Package telegram pushes staff alerts to a Telegram chat. It is the
// out-of-band channel for events that should not wait for someone to open
// the dashboard: high-priority complaints and overdue sweeps.
package telegram

import (
	"fmt"
	"log"

	"hostelhub/backend/internal/models"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// AlertBot sends plain-text alerts to one configured staff chat.
type AlertBot struct {
	BotAPI *tgbotapi.BotAPI
	ChatID int64
}

// NewAlertBot authorizes the bot and binds it to the staff chat.
func NewAlertBot(token string, chatID int64) (*AlertBot, error) {
	bot, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, err
	}
	bot.Debug = false
	log.Printf("Authorized alert bot on account %s", bot.Self.UserName)
	return &AlertBot{BotAPI: bot, ChatID: chatID}, nil
}

// Alert sends the text to the staff chat. Delivery is best effort; a failed
// send is logged and dropped, the triggering operation has already
// succeeded.
func (b *AlertBot) Alert(text string) {
	msg := tgbotapi.NewMessage(b.ChatID, text)
	if _, err := b.BotAPI.Send(msg); err != nil {
		log.Printf("ERROR: Failed to send staff alert: %v", err)
	}
}

// FormatComplaintAlert renders the alert line for a freshly filed
// complaint.
func FormatComplaintAlert(c *models.Complaint) string {
	return fmt.Sprintf("⚠️ [%s] Complaint in room %s: %s", c.Priority, c.RoomNumber, c.Title)
}

// FormatOverdueAlert renders the alert line for an overdue sweep result.
func FormatOverdueAlert(count int, outstanding float64) string {
	return fmt.Sprintf("💰 Overdue sweep: %d fee(s) flipped, %.2f outstanding.", count, outstanding)
}
