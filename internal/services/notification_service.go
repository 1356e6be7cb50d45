package services

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/ahmetcoskunkizilkaya/commons-backend/internal/metrics"
	"github.com/ahmetcoskunkizilkaya/commons-backend/internal/models"
	"github.com/ahmetcoskunkizilkaya/commons-backend/internal/validation"
	"gorm.io/gorm"
)

type NotificationService struct {
	db *gorm.DB
}

func NewNotificationService(db *gorm.DB) *NotificationService {
	return &NotificationService{db: db}
}

type notificationInput struct {
	Title   string `json:"title" validate:"required,max=255"`
	Message string `json:"message" validate:"required"`
	Link    string `json:"link" validate:"required,max=2048"`
}

// validLink accepts absolute http(s) URLs and root-relative paths.
func validLink(link string) bool {
	if strings.HasPrefix(link, "/") && !strings.HasPrefix(link, "//") {
		return true
	}
	u, err := url.Parse(link)
	if err != nil {
		return false
	}
	return (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}

// Notify stores a notification for userID. kind defaults to info.
func (s *NotificationService) Notify(ctx context.Context, userID uint, title, message, link, kind string) (*models.Notification, error) {
	if err := validation.Struct(notificationInput{Title: title, Message: message, Link: link}); err != nil {
		return nil, err
	}
	if !validLink(link) {
		return nil, validation.Single("link", "link must be an absolute http(s) URL or a path")
	}
	if kind == "" {
		kind = models.NotificationInfo
	}
	if !models.IsNotificationKind(kind) {
		return nil, validation.Single("type", "type must be one of: info warning danger success")
	}

	var count int64
	if err := s.db.WithContext(ctx).Model(&models.User{}).Where("id = ?", userID).Count(&count).Error; err != nil {
		return nil, err
	}
	if count == 0 {
		return nil, ErrUserNotFound
	}

	n := models.Notification{
		UserID:  userID,
		Title:   title,
		Message: message,
		Link:    link,
		Kind:    kind,
	}
	if err := s.db.WithContext(ctx).Create(&n).Error; err != nil {
		return nil, fmt.Errorf("failed to create notification: %w", err)
	}
	metrics.NotificationsTotal.WithLabelValues(kind).Inc()
	return &n, nil
}

// Unread returns the recipient's unread notifications, newest first.
func (s *NotificationService) Unread(ctx context.Context, userID uint) ([]models.Notification, error) {
	var list []models.Notification
	err := s.db.WithContext(ctx).
		Where("user_id = ? AND is_read = ?", userID, false).
		Order("created_at DESC, id DESC").
		Find(&list).Error
	return list, err
}

func (s *NotificationService) List(ctx context.Context, userID uint, limit, offset int) ([]models.Notification, int64, error) {
	var list []models.Notification
	var total int64

	query := s.db.WithContext(ctx).Model(&models.Notification{}).Where("user_id = ?", userID)
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	if err := query.Order("created_at DESC, id DESC").Limit(limit).Offset(offset).Find(&list).Error; err != nil {
		return nil, 0, err
	}
	return list, total, nil
}

// MarkReadAndResolve marks notification id read and returns where to send
// the recipient. claimedLink must equal the stored link exactly and the row
// must belong to userID; otherwise ErrNotificationNotFound is returned and
// nothing is written. The destination is percent-decoded only after the
// match.
func (s *NotificationService) MarkReadAndResolve(ctx context.Context, userID, id uint, claimedLink string) (string, error) {
	var n models.Notification
	err := s.db.WithContext(ctx).
		Where("id = ? AND link = ? AND user_id = ?", id, claimedLink, userID).
		First(&n).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		metrics.NotificationRedirects.WithLabelValues("not_found").Inc()
		return "", ErrNotificationNotFound
	}
	if err != nil {
		return "", err
	}

	if !n.IsRead {
		if err := s.db.WithContext(ctx).Model(&n).Update("is_read", true).Error; err != nil {
			return "", fmt.Errorf("failed to mark notification read: %w", err)
		}
	}

	metrics.NotificationRedirects.WithLabelValues("ok").Inc()
	dest, err := url.PathUnescape(n.Link)
	if err != nil {
		return n.Link, nil
	}
	return dest, nil
}
