package models

import (
	"net/url"
	"strconv"
	"time"
)

const (
	NotificationInfo    = "info"
	NotificationWarning = "warning"
	NotificationDanger  = "danger"
	NotificationSuccess = "success"
)

func IsNotificationKind(kind string) bool {
	switch kind {
	case NotificationInfo, NotificationWarning, NotificationDanger, NotificationSuccess:
		return true
	}
	return false
}

type Notification struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"not null;index" json:"user_id"`
	Title     string    `gorm:"size:255;not null" json:"title"`
	Message   string    `gorm:"type:text;not null" json:"message"`
	Link      string    `gorm:"size:2048;not null" json:"link"`
	Kind      string    `gorm:"column:type;size:10;not null;default:'info'" json:"type"`
	IsRead    bool      `gorm:"not null;default:false;index" json:"is_read"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
	User      User      `gorm:"foreignKey:UserID" json:"-"`
}

// RedirectPath is the URL that marks the notification read and then
// forwards to its link.
func (n *Notification) RedirectPath() string {
	return "/api/notifications/" + strconv.FormatUint(uint64(n.ID), 10) +
		"/redirect?to=" + url.QueryEscape(n.Link)
}
