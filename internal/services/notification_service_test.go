package services

import (
	"context"
	"errors"
	"testing"

	"github.com/ahmetcoskunkizilkaya/commons-backend/internal/models"
	"github.com/ahmetcoskunkizilkaya/commons-backend/internal/validation"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNotifyDefaultsKind(t *testing.T) {
	db := setupTestDB(t)
	svc := NewNotificationService(db)
	u := createUser(t, db, "dave")

	n, err := svc.Notify(context.Background(), u.ID, "Hello", "Welcome aboard", "/welcome", "")
	require.NoError(t, err)
	assert.Equal(t, models.NotificationInfo, n.Kind)
	assert.False(t, n.IsRead)
}

func TestNotifyRejects(t *testing.T) {
	db := setupTestDB(t)
	svc := NewNotificationService(db)
	u := createUser(t, db, "erin")
	ctx := context.Background()

	tests := []struct {
		name string
		link string
		kind string
	}{
		{"protocol relative link", "//evil.example/x", ""},
		{"javascript link", "javascript:alert(1)", ""},
		{"unknown kind", "/ok", "urgent"},
		{"empty link", "", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Notify(ctx, u.ID, "t", "m", tt.link, tt.kind)
			var verr *validation.Error
			assert.True(t, errors.As(err, &verr))
		})
	}

	_, err := svc.Notify(ctx, 999, "t", "m", "/ok", "")
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestMarkReadAndResolve(t *testing.T) {
	db := setupTestDB(t)
	svc := NewNotificationService(db)
	u := createUser(t, db, "frank")
	ctx := context.Background()

	n, err := svc.Notify(ctx, u.ID, "Reply", "Someone replied", "/threads/a%20b", models.NotificationSuccess)
	require.NoError(t, err)

	dest, err := svc.MarkReadAndResolve(ctx, u.ID, n.ID, "/threads/a%20b")
	require.NoError(t, err)
	assert.Equal(t, "/threads/a b", dest)

	var stored models.Notification
	require.NoError(t, db.First(&stored, n.ID).Error)
	assert.True(t, stored.IsRead)

	// a second visit still resolves
	dest, err = svc.MarkReadAndResolve(ctx, u.ID, n.ID, "/threads/a%20b")
	require.NoError(t, err)
	assert.Equal(t, "/threads/a b", dest)
}

func TestMarkReadAndResolveMismatch(t *testing.T) {
	db := setupTestDB(t)
	svc := NewNotificationService(db)
	u := createUser(t, db, "gina")
	other := createUser(t, db, "hank")
	ctx := context.Background()

	n, err := svc.Notify(ctx, u.ID, "News", "Read this", "https://example.com/news", "")
	require.NoError(t, err)

	_, err = svc.MarkReadAndResolve(ctx, u.ID, n.ID, "https://evil.example/phish")
	assert.ErrorIs(t, err, ErrNotificationNotFound)

	_, err = svc.MarkReadAndResolve(ctx, other.ID, n.ID, "https://example.com/news")
	assert.ErrorIs(t, err, ErrNotificationNotFound)

	_, err = svc.MarkReadAndResolve(ctx, u.ID, n.ID+100, "https://example.com/news")
	assert.ErrorIs(t, err, ErrNotificationNotFound)

	var stored models.Notification
	require.NoError(t, db.First(&stored, n.ID).Error)
	assert.False(t, stored.IsRead)
}

func TestUnreadAndList(t *testing.T) {
	db := setupTestDB(t)
	svc := NewNotificationService(db)
	u := createUser(t, db, "ivy")
	ctx := context.Background()

	first, err := svc.Notify(ctx, u.ID, "One", "m", "/1", "")
	require.NoError(t, err)
	_, err = svc.Notify(ctx, u.ID, "Two", "m", "/2", models.NotificationWarning)
	require.NoError(t, err)

	_, err = svc.MarkReadAndResolve(ctx, u.ID, first.ID, "/1")
	require.NoError(t, err)

	unread, err := svc.Unread(ctx, u.ID)
	require.NoError(t, err)
	require.Len(t, unread, 1)
	assert.Equal(t, "Two", unread[0].Title)

	all, total, err := svc.List(ctx, u.ID, 10, 0)
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
	assert.Len(t, all, 2)
}
