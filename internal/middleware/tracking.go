package middleware

import (
	"context"
	"log/slog"

	"github.com/ahmetcoskunkizilkaya/commons-backend/internal/identity"
	"github.com/gofiber/fiber/v2"
)

type ActivityRecorder interface {
	RecordActivity(ctx context.Context, userID uint, ip, fingerprint string) error
}

// TrackActivity records the caller's address and device after the handler
// has run. It must sit behind JWTProtected; anonymous requests are skipped.
// Failures are logged and never change the response.
func TrackActivity(recorder ActivityRecorder) fiber.Handler {
	return func(c *fiber.Ctx) error {
		err := c.Next()

		userID, idErr := identity.UserID(c)
		if idErr != nil {
			return err
		}

		if recErr := recorder.RecordActivity(c.UserContext(), userID, identity.ClientIP(c), identity.Fingerprint(c)); recErr != nil {
			slog.Warn("failed to record activity", "user_id", userID, "ip", identity.ClientIP(c), "error", recErr)
		}
		return err
	}
}
