package handlers

import (
	"errors"

	"github.com/ahmetcoskunkizilkaya/commons-backend/internal/dto"
	"github.com/ahmetcoskunkizilkaya/commons-backend/internal/identity"
	"github.com/ahmetcoskunkizilkaya/commons-backend/internal/services"
	"github.com/gofiber/fiber/v2"
)

// RegistrationHeldMessage is all a held registration learns.
const RegistrationHeldMessage = "There was a problem with your account. Please email support if you believe it's a mistake."

type AuthHandler struct {
	authService   *services.AuthService
	uploadService *services.UploadService
}

func NewAuthHandler(authService *services.AuthService, uploadService *services.UploadService) *AuthHandler {
	return &AuthHandler{authService: authService, uploadService: uploadService}
}

func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var req dto.RegisterRequest
	if err := c.BodyParser(&req); err != nil {
		return errorJSON(c, fiber.StatusBadRequest, "Invalid request body")
	}

	resp, err := h.authService.Register(c.UserContext(), &req, identity.ClientIP(c), identity.Fingerprint(c))
	if err != nil {
		switch {
		case errors.Is(err, services.ErrRegistrationHeld):
			return c.Status(fiber.StatusAccepted).JSON(dto.MessageResponse{Message: RegistrationHeldMessage})
		case errors.Is(err, services.ErrEmailTaken), errors.Is(err, services.ErrUsernameTaken):
			return errorJSON(c, fiber.StatusConflict, err.Error())
		}
		return serviceError(c, err, "Failed to register")
	}

	return c.Status(fiber.StatusCreated).JSON(resp)
}

func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return errorJSON(c, fiber.StatusBadRequest, "Invalid request body")
	}

	resp, err := h.authService.Login(c.UserContext(), &req)
	if err != nil {
		if errors.Is(err, services.ErrInvalidCredentials) {
			return errorJSON(c, fiber.StatusUnauthorized, err.Error())
		}
		return serviceError(c, err, "Internal server error")
	}

	resp.User.AvatarURL = h.uploadService.URL(resp.User.Avatar)
	return c.JSON(resp)
}

func (h *AuthHandler) Refresh(c *fiber.Ctx) error {
	var req dto.RefreshRequest
	if err := c.BodyParser(&req); err != nil {
		return errorJSON(c, fiber.StatusBadRequest, "Invalid request body")
	}

	resp, err := h.authService.Refresh(c.UserContext(), &req)
	if err != nil {
		if errors.Is(err, services.ErrInvalidToken) {
			return errorJSON(c, fiber.StatusUnauthorized, err.Error())
		}
		return serviceError(c, err, "Internal server error")
	}

	return c.JSON(resp)
}

func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	var req dto.LogoutRequest
	if err := c.BodyParser(&req); err != nil {
		return errorJSON(c, fiber.StatusBadRequest, "Invalid request body")
	}

	if err := h.authService.Logout(c.UserContext(), &req); err != nil {
		return serviceError(c, err, "Failed to logout")
	}

	return c.JSON(dto.MessageResponse{Message: "Logged out successfully"})
}

func (h *AuthHandler) CheckUsername(c *fiber.Ctx) error {
	username := c.Params("username")
	available, err := h.authService.UsernameAvailable(c.UserContext(), username)
	if err != nil {
		return serviceError(c, err, "Failed to check username")
	}
	return c.JSON(dto.UsernameResponse{Username: username, Available: available})
}

func (h *AuthHandler) Me(c *fiber.Ctx) error {
	userID, err := identity.UserID(c)
	if err != nil {
		return unauthorized(c)
	}

	user, err := h.authService.GetUser(c.UserContext(), userID)
	if err != nil {
		return serviceError(c, err, "Failed to load profile")
	}
	return c.JSON(dto.NewUserResponse(user, h.uploadService.URL(user.Avatar)))
}
