package middleware

import (
	"github.com/ahmetcoskunkizilkaya/commons-backend/internal/dto"
	"github.com/ahmetcoskunkizilkaya/commons-backend/internal/identity"
	"github.com/ahmetcoskunkizilkaya/commons-backend/internal/models"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// ActiveUser rejects tokens whose user has been suspended or deleted since
// the token was issued. It must sit behind JWTProtected.
func ActiveUser(db *gorm.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, err := identity.UserID(c)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
				Error: true, Message: "Unauthorized",
			})
		}

		var count int64
		if err := db.WithContext(c.UserContext()).Model(&models.User{}).
			Where("id = ? AND is_active = ?", userID, true).
			Count(&count).Error; err != nil {
			return err
		}
		if count == 0 {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
				Error: true, Message: "Unauthorized: account inactive",
			})
		}
		return c.Next()
	}
}
