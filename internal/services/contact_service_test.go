package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/ahmetcoskunkizilkaya/commons-backend/internal/models"
	"github.com/ahmetcoskunkizilkaya/commons-backend/internal/validation"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func submitContact(t *testing.T, svc *ContactService) *models.ContactRequest {
	t.Helper()
	req, err := svc.Submit(context.Background(), ContactSubmission{
		Name:    "Vera",
		Email:   "vera@example.com",
		Subject: "Broken link",
		Message: "The FAQ link is dead.",
		Type:    "Bug Report",
	})
	require.NoError(t, err)
	return req
}

func TestSubmitContact(t *testing.T) {
	svc := NewContactService(setupTestDB(t))
	req := submitContact(t, svc)

	assert.Equal(t, models.ContactPending, req.Status)
	assert.Nil(t, req.ResolvedDate)
	assert.Equal(t, "Vera - Broken link", req.String())
}

func TestSubmitContactInvalid(t *testing.T) {
	svc := NewContactService(setupTestDB(t))

	_, err := svc.Submit(context.Background(), ContactSubmission{
		Name:    "X",
		Email:   "not-an-email",
		Subject: "s",
		Message: "m",
		Type:    "Complaint",
	})
	var verr *validation.Error
	require.True(t, errors.As(err, &verr))

	fields := map[string]bool{}
	for _, f := range verr.Fields {
		fields[f.Field] = true
	}
	assert.True(t, fields["email"])
	assert.True(t, fields["type"])
}

func TestSetStatusResolvedDate(t *testing.T) {
	svc := NewContactService(setupTestDB(t))
	ctx := context.Background()
	req := submitContact(t, svc)

	resolvedAt := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	svc.now = fixedClock(resolvedAt)

	updated, err := svc.SetStatus(ctx, req.ID, "resolved")
	require.NoError(t, err)
	assert.Equal(t, models.ContactResolved, updated.Status)
	require.NotNil(t, updated.ResolvedDate)
	assert.True(t, updated.ResolvedDate.Equal(resolvedAt))

	updated, err = svc.SetStatus(ctx, req.ID, "_in_progress")
	require.NoError(t, err)
	assert.Equal(t, models.ContactInProgress, updated.Status)
	assert.Nil(t, updated.ResolvedDate)

	var stored models.ContactRequest
	require.NoError(t, svc.db.First(&stored, req.ID).Error)
	assert.Equal(t, models.ContactInProgress, stored.Status)
	assert.Nil(t, stored.ResolvedDate)
}

func TestSetStatusAnyTransition(t *testing.T) {
	svc := NewContactService(setupTestDB(t))
	ctx := context.Background()
	req := submitContact(t, svc)

	for _, token := range []string{"Closed", "pending", "Resolved", "closed"} {
		_, err := svc.SetStatus(ctx, req.ID, token)
		require.NoError(t, err, token)
	}

	var stored models.ContactRequest
	require.NoError(t, svc.db.First(&stored, req.ID).Error)
	assert.Equal(t, models.ContactClosed, stored.Status)
	assert.Nil(t, stored.ResolvedDate)
}

func TestSetStatusUnknownTokenIsNoop(t *testing.T) {
	svc := NewContactService(setupTestDB(t))
	ctx := context.Background()
	req := submitContact(t, svc)

	_, err := svc.SetStatus(ctx, req.ID, "resolved")
	require.NoError(t, err)

	unchanged, err := svc.SetStatus(ctx, req.ID, "archived")
	require.NoError(t, err)
	assert.Equal(t, models.ContactResolved, unchanged.Status)
	assert.NotNil(t, unchanged.ResolvedDate)

	_, err = svc.SetStatus(ctx, req.ID+1, "resolved")
	assert.ErrorIs(t, err, ErrContactNotFound)
}

func TestUpdateNotesAndList(t *testing.T) {
	svc := NewContactService(setupTestDB(t))
	ctx := context.Background()
	first := submitContact(t, svc)
	second := submitContact(t, svc)

	updated, err := svc.UpdateNotes(ctx, first.ID, "called back")
	require.NoError(t, err)
	require.NotNil(t, updated.AdminNotes)
	assert.Equal(t, "called back", *updated.AdminNotes)

	updated, err = svc.UpdateNotes(ctx, first.ID, "  ")
	require.NoError(t, err)
	assert.Nil(t, updated.AdminNotes)

	_, err = svc.SetStatus(ctx, second.ID, "closed")
	require.NoError(t, err)

	list, total, err := svc.List(ctx, "closed", "", 10, 0)
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	assert.Equal(t, second.ID, list[0].ID)

	_, total, err = svc.List(ctx, "", "Bug Report", 10, 0)
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
}
