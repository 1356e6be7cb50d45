package services

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/ahmetcoskunkizilkaya/commons-backend/internal/content"
	"github.com/ahmetcoskunkizilkaya/commons-backend/internal/models"
	"github.com/ahmetcoskunkizilkaya/commons-backend/internal/validation"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newModeration(t *testing.T) (*ModerationService, *models.User, *models.User) {
	db := setupTestDB(t)
	reporter := createUser(t, db, "reporter")
	target := createUser(t, db, "target")
	return NewModerationService(db, NewContentRegistry()), reporter, target
}

func TestCreateReportDefaultsReason(t *testing.T) {
	svc, reporter, target := newModeration(t)
	ctx := context.Background()

	report, err := svc.CreateReport(ctx, reporter.ID, content.RefOf(target), "   ")
	require.NoError(t, err)
	assert.Equal(t, DefaultReportReason, report.Reason)
	assert.Equal(t, models.KindUser, report.TargetKind)
	assert.Equal(t, target.ID, report.TargetID)
}

func TestCreateReportUnknownKind(t *testing.T) {
	svc, reporter, _ := newModeration(t)

	_, err := svc.CreateReport(context.Background(), reporter.ID, content.Ref{Kind: "planet", ID: 1}, "spam")
	assert.ErrorIs(t, err, ErrUnknownKind)
	assert.Equal(t, "target kind unknown", err.Error())

	var count int64
	svc.db.Model(&models.Report{}).Count(&count)
	assert.Zero(t, count)
}

func TestCreateReportMissingTarget(t *testing.T) {
	svc, reporter, _ := newModeration(t)

	_, err := svc.CreateReport(context.Background(), reporter.ID, content.Ref{Kind: models.KindUser, ID: 999}, "spam")
	assert.ErrorIs(t, err, ErrTargetNotFound)
	assert.True(t, IsNotFound(err))
}

func TestOrphanedReportRendersPlaceholder(t *testing.T) {
	svc, reporter, target := newModeration(t)
	ctx := context.Background()

	_, err := svc.CreateReport(ctx, reporter.ID, content.RefOf(target), "abuse")
	require.NoError(t, err)

	views, _, err := svc.ListReports(ctx, "", 10, 0)
	require.NoError(t, err)
	require.Len(t, views, 1)
	assert.True(t, views[0].Target.Exists)
	assert.Equal(t, target.Email, views[0].Target.Label)
	assert.Equal(t, content.AdminPath(content.RefOf(target)), views[0].Target.Link)

	require.NoError(t, svc.db.Delete(target).Error)

	views, total, err := svc.ListReports(ctx, "", 10, 0)
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	assert.False(t, views[0].Target.Exists)
	assert.Equal(t, "Object does not exist", views[0].Target.Label)
	assert.Empty(t, views[0].Target.Link)
}

func TestCreateCommentTooLong(t *testing.T) {
	svc, author, target := newModeration(t)

	_, err := svc.CreateComment(context.Background(), author.ID, content.RefOf(target), strings.Repeat("x", 1001))
	require.Error(t, err)

	var verr *validation.Error
	require.True(t, errors.As(err, &verr))
	assert.Equal(t, "content", verr.Fields[0].Field)

	var count int64
	svc.db.Model(&models.Comment{}).Count(&count)
	assert.Zero(t, count)
}

func TestCreateCommentAtLimit(t *testing.T) {
	svc, author, target := newModeration(t)

	c, err := svc.CreateComment(context.Background(), author.ID, content.RefOf(target), strings.Repeat("ü", models.CommentMaxLength))
	require.NoError(t, err)
	assert.NotZero(t, c.ID)
}

func TestCreateCommentEmpty(t *testing.T) {
	svc, author, target := newModeration(t)

	_, err := svc.CreateComment(context.Background(), author.ID, content.RefOf(target), "")
	var verr *validation.Error
	assert.True(t, errors.As(err, &verr))
}

func TestListCommentsNewestFirst(t *testing.T) {
	svc, author, target := newModeration(t)
	ctx := context.Background()
	ref := content.RefOf(target)

	for _, text := range []string{"first", "second", "third"} {
		_, err := svc.CreateComment(ctx, author.ID, ref, text)
		require.NoError(t, err)
	}

	comments, total, err := svc.ListComments(ctx, ref, 10, 0)
	require.NoError(t, err)
	assert.Equal(t, int64(3), total)
	require.Len(t, comments, 3)
	assert.Equal(t, "third", comments[0].Content)
	assert.Equal(t, "first", comments[2].Content)
	assert.Equal(t, author.Username, comments[0].Author.Username)
}

func TestCommentOnComment(t *testing.T) {
	svc, author, target := newModeration(t)
	ctx := context.Background()

	parent, err := svc.CreateComment(ctx, author.ID, content.RefOf(target), "parent")
	require.NoError(t, err)

	_, err = svc.CreateReport(ctx, author.ID, content.Ref{Kind: models.KindComment, ID: parent.ID}, "rude")
	require.NoError(t, err)

	views, _, err := svc.ListReports(ctx, models.KindComment, 10, 0)
	require.NoError(t, err)
	require.Len(t, views, 1)
	assert.Equal(t, "Comment 1 by reporter", views[0].Target.Label)
}

func TestLookup(t *testing.T) {
	svc, _, target := newModeration(t)
	ctx := context.Background()

	entity, err := svc.Lookup(ctx, content.RefOf(target))
	require.NoError(t, err)
	assert.Equal(t, target.Email, entity.String())

	_, err = svc.Lookup(ctx, content.Ref{Kind: "nope", ID: 1})
	assert.ErrorIs(t, err, ErrUnknownKind)

	_, err = svc.Lookup(ctx, content.Ref{Kind: models.KindFAQ, ID: 1})
	assert.ErrorIs(t, err, ErrTargetNotFound)
}
