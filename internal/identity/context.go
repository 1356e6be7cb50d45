package identity

import (
	"errors"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
)

var (
	ErrNoToken      = errors.New("invalid token in context")
	ErrInvalidClaim = errors.New("invalid claims")
)

// Token returns the verified JWT placed in locals by the jwtware middleware.
func Token(c *fiber.Ctx) (*jwt.Token, bool) {
	token, ok := c.Locals("user").(*jwt.Token)
	return token, ok && token != nil
}

// UserID extracts the numeric user id from the JWT "sub" claim.
func UserID(c *fiber.Ctx) (uint, error) {
	token, ok := Token(c)
	if !ok {
		return 0, ErrNoToken
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return 0, ErrInvalidClaim
	}

	sub, ok := claims["sub"].(string)
	if !ok {
		return 0, errors.New("missing sub claim")
	}

	id, err := strconv.ParseUint(sub, 10, 64)
	if err != nil || id == 0 {
		return 0, ErrInvalidClaim
	}
	return uint(id), nil
}

// Email returns the "email" claim, or "" when absent.
func Email(c *fiber.Ctx) string {
	token, ok := Token(c)
	if !ok {
		return ""
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return ""
	}
	email, _ := claims["email"].(string)
	return email
}

// ClientIP is the caller address as seen by fiber. When PROXY_HEADER is
// configured fiber resolves it from that header.
func ClientIP(c *fiber.Ctx) string {
	return c.IP()
}

// Fingerprint derives the device fingerprint of the current request.
func Fingerprint(c *fiber.Ctx) string {
	return DeviceFingerprint(c.Get(fiber.HeaderUserAgent), c.Get(fiber.HeaderAcceptLanguage))
}
