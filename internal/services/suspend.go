package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/ahmetcoskunkizilkaya/commons-backend/internal/mail"
	"github.com/ahmetcoskunkizilkaya/commons-backend/internal/metrics"
	"github.com/ahmetcoskunkizilkaya/commons-backend/internal/models"
	"gorm.io/gorm"
)

// SuspendAccountCommand deactivates a user, revokes their refresh tokens,
// blocks their devices and flags every address they used as suspicious. Addresses are flagged rather than
// blocked since other users may share them.
type SuspendAccountCommand struct {
	db     *gorm.DB
	mailer mail.Mailer
}

func NewSuspendAccountCommand(db *gorm.DB, mailer mail.Mailer) *SuspendAccountCommand {
	return &SuspendAccountCommand{db: db, mailer: mailer}
}

type SuspendResult struct {
	UserID         uint  `json:"user_id"`
	TokensRevoked  int64 `json:"tokens_revoked"`
	DevicesBlocked int64 `json:"devices_blocked"`
	IPsFlagged     int64 `json:"ips_flagged"`
}

// Execute applies the suspension in one transaction and sends the notice
// email once it has committed. A mail failure is logged, not returned.
func (cmd *SuspendAccountCommand) Execute(ctx context.Context, userID uint) (*SuspendResult, error) {
	var user models.User
	result := &SuspendResult{UserID: userID}

	err := cmd.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&user, userID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrUserNotFound
			}
			return err
		}

		if err := tx.Model(&user).Update("is_active", false).Error; err != nil {
			return fmt.Errorf("deactivate user: %w", err)
		}

		tokens := tx.Model(&models.RefreshToken{}).
			Where("user_id = ? AND revoked = ?", userID, false).
			Update("revoked", true)
		if tokens.Error != nil {
			return fmt.Errorf("revoke refresh tokens: %w", tokens.Error)
		}
		result.TokensRevoked = tokens.RowsAffected

		devices := tx.Model(&models.TrackedDevice{}).
			Where("user_id = ?", userID).
			Update("is_blocked", true)
		if devices.Error != nil {
			return fmt.Errorf("block devices: %w", devices.Error)
		}
		result.DevicesBlocked = devices.RowsAffected

		var addrs []string
		if err := tx.Model(&models.TrackedIP{}).
			Where("user_id = ?", userID).
			Distinct().
			Pluck("ip_address", &addrs).Error; err != nil {
			return fmt.Errorf("load user ips: %w", err)
		}
		if len(addrs) > 0 {
			ips := tx.Model(&models.TrackedIP{}).
				Where("ip_address IN ?", addrs).
				Update("is_suspicious", true)
			if ips.Error != nil {
				return fmt.Errorf("flag ips: %w", ips.Error)
			}
			result.IPsFlagged = ips.RowsAffected
		}
		return nil
	})
	if err != nil {
		if !errors.Is(err, ErrUserNotFound) {
			slog.Error("account suspension failed", "user_id", userID, "action", "suspend", "error", err)
		}
		return nil, err
	}

	metrics.SuspensionsTotal.Inc()
	slog.Info("account suspended",
		"user_id", userID,
		"tokens_revoked", result.TokensRevoked,
		"devices_blocked", result.DevicesBlocked,
		"ips_flagged", result.IPsFlagged,
	)

	if err := cmd.mailer.Send(ctx, mail.SuspensionNotice(user.Email, user.FullNameOrUsername())); err != nil {
		slog.Warn("suspension email failed", "user_id", userID, "error", err)
	}
	return result, nil
}
