package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/ahmetcoskunkizilkaya/commons-backend/internal/content"
	"github.com/ahmetcoskunkizilkaya/commons-backend/internal/metrics"
	"github.com/ahmetcoskunkizilkaya/commons-backend/internal/models"
	"gorm.io/gorm"
)

// MediaService keeps the media library in step with image-bearing rows.
// Callers invoke SyncFor after a successful write of such a row.
type MediaService struct {
	db       *gorm.DB
	registry *content.Registry
}

func NewMediaService(db *gorm.DB, registry *content.Registry) *MediaService {
	return &MediaService{db: db, registry: registry}
}

type MediaView struct {
	models.MediaEntry
	Target content.Description `json:"target"`
}

// SyncFor indexes entity using the field filter registered for its kind.
func (s *MediaService) SyncFor(ctx context.Context, entity content.ImageBearing) (int, error) {
	return s.SyncWith(ctx, entity, s.registry.MediaFilter(entity.ContentKind()))
}

// SyncWith adds a library row for every allowed, non-empty image field of
// entity whose file is not indexed for it yet. It returns the number of rows
// created and never removes rows.
func (s *MediaService) SyncWith(ctx context.Context, entity content.ImageBearing, filter content.FieldFilter) (int, error) {
	ref := content.RefOf(entity)

	var existing []string
	if err := s.db.WithContext(ctx).Model(&models.MediaEntry{}).
		Where("target_kind = ? AND target_id = ?", ref.Kind, ref.ID).
		Pluck("file", &existing).Error; err != nil {
		return 0, fmt.Errorf("load media for %s: %w", ref, err)
	}

	seen := make(map[string]struct{}, len(existing))
	for _, f := range existing {
		seen[f] = struct{}{}
	}

	var pending []models.MediaEntry
	for _, field := range entity.ImageFields() {
		if !filter.Allows(field.Name) || field.File == "" {
			continue
		}
		if _, ok := seen[field.File]; ok {
			continue
		}
		seen[field.File] = struct{}{}
		pending = append(pending, models.MediaEntry{
			File:       field.File,
			TargetKind: ref.Kind,
			TargetID:   ref.ID,
		})
	}

	if len(pending) == 0 {
		return 0, nil
	}
	if err := s.db.WithContext(ctx).Create(&pending).Error; err != nil {
		return 0, fmt.Errorf("index media for %s: %w", ref, err)
	}

	metrics.MediaEntriesTotal.WithLabelValues(ref.Kind).Add(float64(len(pending)))
	slog.Debug("media indexed", "kind", ref.Kind, "target_id", ref.ID, "count", len(pending))
	return len(pending), nil
}

// List returns the library rows for one target, oldest first.
func (s *MediaService) List(ctx context.Context, ref content.Ref) ([]models.MediaEntry, error) {
	var entries []models.MediaEntry
	err := s.db.WithContext(ctx).
		Where("target_kind = ? AND target_id = ?", ref.Kind, ref.ID).
		Order("id ASC").
		Find(&entries).Error
	return entries, err
}

// Search is the admin library browser. filename matches as a substring.
func (s *MediaService) Search(ctx context.Context, filename, kind string, limit, offset int) ([]MediaView, int64, error) {
	var entries []models.MediaEntry
	var total int64

	query := s.db.WithContext(ctx).Model(&models.MediaEntry{})
	if filename != "" {
		query = query.Where("file LIKE ?", "%"+filename+"%")
	}
	if kind != "" {
		query = query.Where("target_kind = ?", kind)
	}
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	if err := query.Order("created_at DESC, id DESC").Limit(limit).Offset(offset).Find(&entries).Error; err != nil {
		return nil, 0, err
	}

	views := make([]MediaView, len(entries))
	for i, e := range entries {
		views[i] = MediaView{MediaEntry: e, Target: s.registry.Describe(ctx, s.db, e.Target())}
	}
	return views, total, nil
}
