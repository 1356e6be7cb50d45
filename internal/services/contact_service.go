package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/ahmetcoskunkizilkaya/commons-backend/internal/models"
	"github.com/ahmetcoskunkizilkaya/commons-backend/internal/validation"
	"gorm.io/gorm"
)

type ContactService struct {
	db  *gorm.DB
	now func() time.Time
}

func NewContactService(db *gorm.DB) *ContactService {
	return &ContactService{db: db, now: func() time.Time { return time.Now().UTC() }}
}

type ContactSubmission struct {
	Name    string `json:"name" form:"name" validate:"required,max=255"`
	Email   string `json:"email" form:"email" validate:"required,email,max=254"`
	Subject string `json:"subject" form:"subject" validate:"required,max=255"`
	Message string `json:"message" form:"message" validate:"required"`
	Type    string `json:"type" form:"type" validate:"required,oneof='General' 'Bug Report' 'Feature Request' 'Support' 'Other'"`
}

func (s *ContactService) Submit(ctx context.Context, in ContactSubmission) (*models.ContactRequest, error) {
	in.Name = strings.TrimSpace(in.Name)
	in.Email = strings.TrimSpace(in.Email)
	in.Subject = strings.TrimSpace(in.Subject)
	if err := validation.Struct(in); err != nil {
		return nil, err
	}

	req := models.ContactRequest{
		Name:    in.Name,
		Email:   in.Email,
		Subject: in.Subject,
		Message: in.Message,
		Type:    in.Type,
		Status:  models.ContactPending,
	}
	if err := s.db.WithContext(ctx).Create(&req).Error; err != nil {
		return nil, fmt.Errorf("failed to save contact request: %w", err)
	}
	return &req, nil
}

func (s *ContactService) get(ctx context.Context, id uint) (*models.ContactRequest, error) {
	var req models.ContactRequest
	if err := s.db.WithContext(ctx).First(&req, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrContactNotFound
		}
		return nil, err
	}
	return &req, nil
}

// SetStatus moves request id to the status named by token. Every transition
// is allowed. An unrecognised token changes nothing and is not an error.
func (s *ContactService) SetStatus(ctx context.Context, id uint, token string) (*models.ContactRequest, error) {
	req, err := s.get(ctx, id)
	if err != nil {
		return nil, err
	}

	status, ok := models.ParseContactStatus(token)
	if !ok {
		// TODO: reject unknown tokens with a 400 once the admin form only posts known keys.
		slog.Debug("ignoring unknown contact status", "contact_id", id, "token", token)
		return req, nil
	}

	req.ApplyStatus(status, s.now())
	if err := s.db.WithContext(ctx).Model(req).
		Updates(map[string]interface{}{
			"status":        req.Status,
			"resolved_date": req.ResolvedDate,
		}).Error; err != nil {
		return nil, fmt.Errorf("failed to update contact status: %w", err)
	}
	return req, nil
}

func (s *ContactService) UpdateNotes(ctx context.Context, id uint, notes string) (*models.ContactRequest, error) {
	req, err := s.get(ctx, id)
	if err != nil {
		return nil, err
	}

	var value *string
	if strings.TrimSpace(notes) != "" {
		value = &notes
	}
	if err := s.db.WithContext(ctx).Model(req).Update("admin_notes", value).Error; err != nil {
		return nil, fmt.Errorf("failed to update contact notes: %w", err)
	}
	req.AdminNotes = value
	return req, nil
}

// List returns contact requests newest first, optionally filtered.
func (s *ContactService) List(ctx context.Context, status, contactType string, limit, offset int) ([]models.ContactRequest, int64, error) {
	var list []models.ContactRequest
	var total int64

	query := s.db.WithContext(ctx).Model(&models.ContactRequest{})
	if status != "" {
		if st, ok := models.ParseContactStatus(status); ok {
			query = query.Where("status = ?", st)
		}
	}
	if contactType != "" {
		query = query.Where("type = ?", contactType)
	}
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	if err := query.Order("contact_date DESC, id DESC").Limit(limit).Offset(offset).Find(&list).Error; err != nil {
		return nil, 0, err
	}
	return list, total, nil
}
