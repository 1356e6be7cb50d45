package models

import (
	"fmt"
	"strings"
	"time"
)

type ContactStatus string

const (
	ContactPending    ContactStatus = "Pending"
	ContactInProgress ContactStatus = "In Progress"
	ContactResolved   ContactStatus = "Resolved"
	ContactClosed     ContactStatus = "Closed"

	KindContact = "contact"
)

var ContactStatuses = []ContactStatus{ContactPending, ContactInProgress, ContactResolved, ContactClosed}

var ContactTypes = []string{"General", "Bug Report", "Feature Request", "Support", "Other"}

// Key is the form-button token of a status, e.g. "in_progress".
func (s ContactStatus) Key() string {
	return strings.ToLower(strings.ReplaceAll(string(s), " ", "_"))
}

// ParseContactStatus accepts either the status value or its key, with or
// without a leading underscore.
func ParseContactStatus(token string) (ContactStatus, bool) {
	token = strings.TrimSpace(token)
	key := strings.TrimPrefix(token, "_")
	for _, s := range ContactStatuses {
		if token == string(s) || key == s.Key() {
			return s, true
		}
	}
	return "", false
}

func IsContactType(t string) bool {
	for _, known := range ContactTypes {
		if known == t {
			return true
		}
	}
	return false
}

type ContactRequest struct {
	ID           uint          `gorm:"primaryKey" json:"id"`
	Name         string        `gorm:"size:255;not null" json:"name"`
	Email        string        `gorm:"size:254;not null" json:"email"`
	Subject      string        `gorm:"size:255;not null" json:"subject"`
	Message      string        `gorm:"type:text;not null" json:"message"`
	Status       ContactStatus `gorm:"size:15;not null;default:'Pending';index" json:"status"`
	ContactDate  time.Time     `gorm:"autoCreateTime;index" json:"contact_date"`
	ResolvedDate *time.Time    `json:"resolved_date"`
	Type         string        `gorm:"size:50;not null;index" json:"type"`
	AdminNotes   *string       `gorm:"type:text" json:"admin_notes"`
}

func (ContactRequest) TableName() string {
	return "contacts"
}

func (c *ContactRequest) ContentKind() string { return KindContact }
func (c *ContactRequest) ContentID() uint     { return c.ID }
func (c *ContactRequest) String() string      { return fmt.Sprintf("%s - %s", c.Name, c.Subject) }

// ApplyStatus moves the request to status. resolved_date is set exactly
// when the status is Resolved.
func (c *ContactRequest) ApplyStatus(status ContactStatus, now time.Time) {
	c.Status = status
	if status == ContactResolved {
		c.ResolvedDate = &now
	} else if c.ResolvedDate != nil {
		c.ResolvedDate = nil
	}
}
