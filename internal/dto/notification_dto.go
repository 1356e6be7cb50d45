package dto

import (
	"time"

	"github.com/ahmetcoskunkizilkaya/commons-backend/internal/models"
)

type CreateNotificationRequest struct {
	UserID  uint   `json:"user_id"`
	Title   string `json:"title"`
	Message string `json:"message"`
	Link    string `json:"link"`
	Type    string `json:"type"`
}

type NotificationResponse struct {
	ID          uint      `json:"id"`
	Title       string    `json:"title"`
	Message     string    `json:"message"`
	Link        string    `json:"link"`
	RedirectURL string    `json:"redirect_url"`
	Type        string    `json:"type"`
	IsRead      bool      `json:"is_read"`
	CreatedAt   time.Time `json:"created_at"`
}

func NewNotificationResponse(n *models.Notification) NotificationResponse {
	return NotificationResponse{
		ID:          n.ID,
		Title:       n.Title,
		Message:     n.Message,
		Link:        n.Link,
		RedirectURL: n.RedirectPath(),
		Type:        n.Kind,
		IsRead:      n.IsRead,
		CreatedAt:   n.CreatedAt,
	}
}

func NewNotificationResponses(list []models.Notification) []NotificationResponse {
	out := make([]NotificationResponse, len(list))
	for i := range list {
		out[i] = NewNotificationResponse(&list[i])
	}
	return out
}

type UnreadResponse struct {
	Count         int                    `json:"count"`
	Notifications []NotificationResponse `json:"notifications"`
}
