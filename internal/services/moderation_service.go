package services

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/ahmetcoskunkizilkaya/commons-backend/internal/content"
	"github.com/ahmetcoskunkizilkaya/commons-backend/internal/metrics"
	"github.com/ahmetcoskunkizilkaya/commons-backend/internal/models"
	"github.com/ahmetcoskunkizilkaya/commons-backend/internal/validation"
	"gorm.io/gorm"
)

const DefaultReportReason = "No reason provided."

type ModerationService struct {
	db       *gorm.DB
	registry *content.Registry
}

func NewModerationService(db *gorm.DB, registry *content.Registry) *ModerationService {
	return &ModerationService{db: db, registry: registry}
}

// ReportView is a report together with what its target renders as today.
type ReportView struct {
	models.Report
	Target content.Description `json:"target"`
}

type CommentView struct {
	models.Comment
	Target content.Description `json:"target"`
}

type commentInput struct {
	Content string `json:"content" validate:"required,max=1000"`
}

// resolveTarget checks that ref points at a live row right now.
func (s *ModerationService) resolveTarget(ctx context.Context, ref content.Ref) error {
	if !s.registry.Exists(ref.Kind) {
		return ErrUnknownKind
	}
	_, ok, err := s.registry.Resolve(ctx, s.db, ref)
	if err != nil {
		return err
	}
	if !ok {
		return ErrTargetNotFound
	}
	return nil
}

func (s *ModerationService) CreateReport(ctx context.Context, reporterID uint, ref content.Ref, reason string) (*models.Report, error) {
	if err := s.resolveTarget(ctx, ref); err != nil {
		return nil, err
	}

	if strings.TrimSpace(reason) == "" {
		reason = DefaultReportReason
	}

	report := models.Report{
		ReporterID: reporterID,
		TargetKind: ref.Kind,
		TargetID:   ref.ID,
		Reason:     reason,
	}
	if err := s.db.WithContext(ctx).Create(&report).Error; err != nil {
		return nil, fmt.Errorf("failed to create report: %w", err)
	}

	metrics.ReportsTotal.WithLabelValues(ref.Kind).Inc()
	slog.Info("report created", "report_id", report.ID, "kind", ref.Kind, "target_id", ref.ID, "user_id", reporterID)
	return &report, nil
}

func (s *ModerationService) CreateComment(ctx context.Context, authorID uint, ref content.Ref, text string) (*models.Comment, error) {
	if err := validation.Struct(commentInput{Content: text}); err != nil {
		return nil, err
	}
	if err := s.resolveTarget(ctx, ref); err != nil {
		return nil, err
	}

	comment := models.Comment{
		AuthorID:   authorID,
		TargetKind: ref.Kind,
		TargetID:   ref.ID,
		Content:    text,
	}
	if err := s.db.WithContext(ctx).Create(&comment).Error; err != nil {
		return nil, fmt.Errorf("failed to create comment: %w", err)
	}

	metrics.CommentsTotal.WithLabelValues(ref.Kind).Inc()
	return &comment, nil
}

// ListComments returns the comments on ref, newest first.
func (s *ModerationService) ListComments(ctx context.Context, ref content.Ref, limit, offset int) ([]models.Comment, int64, error) {
	var comments []models.Comment
	var total int64

	query := s.db.WithContext(ctx).Model(&models.Comment{}).
		Where("target_kind = ? AND target_id = ?", ref.Kind, ref.ID)
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if err := query.Preload("Author").
		Order("created_at DESC, id DESC").
		Limit(limit).Offset(offset).
		Find(&comments).Error; err != nil {
		return nil, 0, err
	}
	return comments, total, nil
}

// ListReports is the admin listing. Each row carries a fresh description of
// its target, which reads "Object does not exist" once the target is gone.
func (s *ModerationService) ListReports(ctx context.Context, kind string, limit, offset int) ([]ReportView, int64, error) {
	var reports []models.Report
	var total int64

	query := s.db.WithContext(ctx).Model(&models.Report{})
	if kind != "" {
		query = query.Where("target_kind = ?", kind)
	}
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	if err := query.Order("created_at DESC, id DESC").Limit(limit).Offset(offset).Find(&reports).Error; err != nil {
		return nil, 0, err
	}

	views := make([]ReportView, len(reports))
	for i, r := range reports {
		views[i] = ReportView{Report: r, Target: s.registry.Describe(ctx, s.db, r.Target())}
	}
	return views, total, nil
}

func (s *ModerationService) ListAllComments(ctx context.Context, kind string, limit, offset int) ([]CommentView, int64, error) {
	var comments []models.Comment
	var total int64

	query := s.db.WithContext(ctx).Model(&models.Comment{})
	if kind != "" {
		query = query.Where("target_kind = ?", kind)
	}
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	if err := query.Preload("Author").Order("created_at DESC, id DESC").Limit(limit).Offset(offset).Find(&comments).Error; err != nil {
		return nil, 0, err
	}

	views := make([]CommentView, len(comments))
	for i, c := range comments {
		views[i] = CommentView{Comment: c, Target: s.registry.Describe(ctx, s.db, c.Target())}
	}
	return views, total, nil
}

// Lookup resolves ref for the admin content endpoint.
func (s *ModerationService) Lookup(ctx context.Context, ref content.Ref) (content.Resolvable, error) {
	if !s.registry.Exists(ref.Kind) {
		return nil, ErrUnknownKind
	}
	entity, ok, err := s.registry.Resolve(ctx, s.db, ref)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrTargetNotFound
	}
	return entity, nil
}
