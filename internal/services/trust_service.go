package services

import (
	"context"
	"fmt"
	"net"
	"time"

	"github.com/ahmetcoskunkizilkaya/commons-backend/internal/geoip"
	"github.com/ahmetcoskunkizilkaya/commons-backend/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// TrustService records which addresses and devices each user comes from and
// answers whether an address or device may be trusted.
type TrustService struct {
	db  *gorm.DB
	geo geoip.Locator
	now func() time.Time
}

func NewTrustService(db *gorm.DB, geo geoip.Locator) *TrustService {
	return &TrustService{
		db:  db,
		geo: geo,
		now: func() time.Time { return time.Now().UTC() },
	}
}

type IPView struct {
	models.TrackedIP
	SharedUsers int64  `json:"shared_users"`
	Location    string `json:"location"`
}

type IPFilter struct {
	Suspicious *bool
	Blocked    *bool
}

// RecordActivity upserts the (user, ip) and (user, fingerprint) rows. Both
// writes are single INSERT ... ON CONFLICT statements so concurrent requests
// never create duplicates; last_seen only moves forward.
func (s *TrustService) RecordActivity(ctx context.Context, userID uint, ip, fingerprint string) error {
	now := s.now()

	if ip != "" {
		loc := s.geo.Locate(ctx, ip)

		updates := map[string]interface{}{
			"last_seen": gorm.Expr("CASE WHEN excluded.last_seen > user_ips.last_seen THEN excluded.last_seen ELSE user_ips.last_seen END"),
		}
		if !loc.IsZero() {
			updates["country"] = gorm.Expr("excluded.country")
			updates["region"] = gorm.Expr("excluded.region")
			updates["city"] = gorm.Expr("excluded.city")
		}

		row := models.TrackedIP{
			UserID:    userID,
			IPAddress: ip,
			LastSeen:  now,
			Country:   loc.Country,
			Region:    loc.Region,
			City:      loc.City,
		}
		if err := s.db.WithContext(ctx).Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}, {Name: "ip_address"}},
			DoUpdates: clause.Assignments(updates),
		}).Create(&row).Error; err != nil {
			return fmt.Errorf("upsert user ip: %w", err)
		}
	}

	if fingerprint != "" {
		row := models.TrackedDevice{
			UserID:            userID,
			DeviceFingerprint: fingerprint,
			LastSeen:          now,
		}
		if err := s.db.WithContext(ctx).Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "user_id"}, {Name: "device_fingerprint"}},
			DoUpdates: clause.Assignments(map[string]interface{}{
				"last_seen": gorm.Expr("CASE WHEN excluded.last_seen > user_devices.last_seen THEN excluded.last_seen ELSE user_devices.last_seen END"),
			}),
		}).Create(&row).Error; err != nil {
			return fmt.Errorf("upsert user device: %w", err)
		}
	}
	return nil
}

// IsTrusted is false when any row for ip is blocked or suspicious.
func (s *TrustService) IsTrusted(ctx context.Context, ip string) (bool, error) {
	var count int64
	err := s.db.WithContext(ctx).Model(&models.TrackedIP{}).
		Where("ip_address = ? AND (is_blocked = ? OR is_suspicious = ?)", ip, true, true).
		Count(&count).Error
	return count == 0, err
}

// IsDeviceTrusted is false when any row for fingerprint is blocked.
func (s *TrustService) IsDeviceTrusted(ctx context.Context, fingerprint string) (bool, error) {
	var count int64
	err := s.db.WithContext(ctx).Model(&models.TrackedDevice{}).
		Where("device_fingerprint = ? AND is_blocked = ?", fingerprint, true).
		Count(&count).Error
	return count == 0, err
}

func (s *TrustService) IPHistory(ctx context.Context, userID uint) ([]models.TrackedIP, error) {
	var rows []models.TrackedIP
	err := s.db.WithContext(ctx).Where("user_id = ?", userID).Order("last_seen DESC").Find(&rows).Error
	return rows, err
}

func (s *TrustService) DeviceHistory(ctx context.Context, userID uint) ([]models.TrackedDevice, error) {
	var rows []models.TrackedDevice
	err := s.db.WithContext(ctx).Where("user_id = ?", userID).Order("last_seen DESC").Find(&rows).Error
	return rows, err
}

func validateIP(ip string) error {
	if net.ParseIP(ip) == nil {
		return fmt.Errorf("%w: %q", ErrInvalidIP, ip)
	}
	return nil
}

// MarkIPSuspicious flags every row for ip and returns how many changed.
func (s *TrustService) MarkIPSuspicious(ctx context.Context, ip string) (int64, error) {
	if err := validateIP(ip); err != nil {
		return 0, err
	}
	result := s.db.WithContext(ctx).Model(&models.TrackedIP{}).
		Where("ip_address = ?", ip).
		Update("is_suspicious", true)
	return result.RowsAffected, result.Error
}

// BlockIP blocks every row for ip, across all users.
func (s *TrustService) BlockIP(ctx context.Context, ip string) (int64, error) {
	if err := validateIP(ip); err != nil {
		return 0, err
	}
	result := s.db.WithContext(ctx).Model(&models.TrackedIP{}).
		Where("ip_address = ?", ip).
		Update("is_blocked", true)
	return result.RowsAffected, result.Error
}

// SharedUserCount is the number of distinct users seen on ip.
func (s *TrustService) SharedUserCount(ctx context.Context, ip string) (int64, error) {
	var count int64
	err := s.db.WithContext(ctx).Model(&models.TrackedIP{}).
		Where("ip_address = ?", ip).
		Distinct("user_id").
		Count(&count).Error
	return count, err
}

// UsersOnIP lists the other users seen on ip.
func (s *TrustService) UsersOnIP(ctx context.Context, ip string, excludeUserID uint) ([]models.User, error) {
	var users []models.User
	err := s.db.WithContext(ctx).
		Where("id IN (?)", s.db.Model(&models.TrackedIP{}).Select("user_id").Where("ip_address = ?", ip)).
		Where("id <> ?", excludeUserID).
		Order("id ASC").
		Find(&users).Error
	return users, err
}

// ListIPs is the admin view of tracked addresses, most recently seen first.
func (s *TrustService) ListIPs(ctx context.Context, filter IPFilter, limit, offset int) ([]IPView, int64, error) {
	var rows []models.TrackedIP
	var total int64

	query := s.db.WithContext(ctx).Model(&models.TrackedIP{})
	if filter.Suspicious != nil {
		query = query.Where("is_suspicious = ?", *filter.Suspicious)
	}
	if filter.Blocked != nil {
		query = query.Where("is_blocked = ?", *filter.Blocked)
	}
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	if err := query.Order("last_seen DESC, id DESC").Limit(limit).Offset(offset).Find(&rows).Error; err != nil {
		return nil, 0, err
	}

	addrs := make([]string, 0, len(rows))
	for _, r := range rows {
		addrs = append(addrs, r.IPAddress)
	}

	type shared struct {
		IPAddress string
		Users     int64
	}
	var counts []shared
	if len(addrs) > 0 {
		if err := s.db.WithContext(ctx).Model(&models.TrackedIP{}).
			Select("ip_address, COUNT(DISTINCT user_id) AS users").
			Where("ip_address IN ?", addrs).
			Group("ip_address").
			Scan(&counts).Error; err != nil {
			return nil, 0, err
		}
	}
	byIP := make(map[string]int64, len(counts))
	for _, c := range counts {
		byIP[c.IPAddress] = c.Users
	}

	views := make([]IPView, len(rows))
	for i, r := range rows {
		views[i] = IPView{TrackedIP: r, SharedUsers: byIP[r.IPAddress], Location: r.Location()}
	}
	return views, total, nil
}
