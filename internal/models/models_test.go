package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestParseContactStatus(t *testing.T) {
	tests := []struct {
		token string
		want  ContactStatus
		ok    bool
	}{
		{"Pending", ContactPending, true},
		{"pending", ContactPending, true},
		{"In Progress", ContactInProgress, true},
		{"in_progress", ContactInProgress, true},
		{"_in_progress", ContactInProgress, true},
		{"_resolved", ContactResolved, true},
		{"closed", ContactClosed, true},
		{"archived", "", false},
		{"", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.token, func(t *testing.T) {
			got, ok := ParseContactStatus(tt.token)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestApplyStatus(t *testing.T) {
	now := time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)
	req := &ContactRequest{Status: ContactPending}

	req.ApplyStatus(ContactResolved, now)
	assert.Equal(t, ContactResolved, req.Status)
	if assert.NotNil(t, req.ResolvedDate) {
		assert.True(t, req.ResolvedDate.Equal(now))
	}

	req.ApplyStatus(ContactClosed, now)
	assert.Nil(t, req.ResolvedDate)
}

func TestRedirectPath(t *testing.T) {
	n := &Notification{ID: 12, Link: "https://example.com/a?b=c&d=e"}
	assert.Equal(t, "/api/notifications/12/redirect?to=https%3A%2F%2Fexample.com%2Fa%3Fb%3Dc%26d%3De", n.RedirectPath())
}

func TestUserNames(t *testing.T) {
	u := &User{Username: "jdoe", Email: "j@example.com"}
	assert.Equal(t, "jdoe", u.FullNameOrUsername())
	assert.Equal(t, "j@example.com", u.String())

	u.FirstName = "Jane"
	assert.Equal(t, "Jane", u.FullName())
	u.LastName = "Doe"
	assert.Equal(t, "Jane Doe", u.FullNameOrUsername())
}

func TestIsNotificationKind(t *testing.T) {
	for _, k := range []string{NotificationInfo, NotificationWarning, NotificationDanger, NotificationSuccess} {
		assert.True(t, IsNotificationKind(k))
	}
	assert.False(t, IsNotificationKind("error"))
}
