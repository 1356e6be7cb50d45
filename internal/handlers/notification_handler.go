package handlers

import (
	"github.com/ahmetcoskunkizilkaya/commons-backend/internal/dto"
	"github.com/ahmetcoskunkizilkaya/commons-backend/internal/identity"
	"github.com/ahmetcoskunkizilkaya/commons-backend/internal/services"
	"github.com/gofiber/fiber/v2"
)

type NotificationHandler struct {
	notificationService *services.NotificationService
}

func NewNotificationHandler(notificationService *services.NotificationService) *NotificationHandler {
	return &NotificationHandler{notificationService: notificationService}
}

func (h *NotificationHandler) List(c *fiber.Ctx) error {
	userID, err := identity.UserID(c)
	if err != nil {
		return unauthorized(c)
	}
	limit, offset := pagination(c)

	list, total, err := h.notificationService.List(c.UserContext(), userID, limit, offset)
	if err != nil {
		return serviceError(c, err, "Failed to fetch notifications")
	}

	return c.JSON(dto.Page[dto.NotificationResponse]{
		Items:  dto.NewNotificationResponses(list),
		Total:  total,
		Limit:  limit,
		Offset: offset,
	})
}

func (h *NotificationHandler) Unread(c *fiber.Ctx) error {
	userID, err := identity.UserID(c)
	if err != nil {
		return unauthorized(c)
	}

	list, err := h.notificationService.Unread(c.UserContext(), userID)
	if err != nil {
		return serviceError(c, err, "Failed to fetch notifications")
	}

	return c.JSON(dto.UnreadResponse{
		Count:         len(list),
		Notifications: dto.NewNotificationResponses(list),
	})
}

// Redirect marks a notification read and forwards to its link. Any id, link
// or owner mismatch is a plain 404 so the endpoint cannot be used to bounce
// users to arbitrary destinations.
func (h *NotificationHandler) Redirect(c *fiber.Ctx) error {
	userID, err := identity.UserID(c)
	if err != nil {
		return unauthorized(c)
	}

	id, ok := paramID(c, "id")
	if !ok {
		return errorJSON(c, fiber.StatusNotFound, services.ErrNotificationNotFound.Error())
	}

	dest, err := h.notificationService.MarkReadAndResolve(c.UserContext(), userID, id, c.Query("to"))
	if err != nil {
		return serviceError(c, err, "Failed to open notification")
	}

	return c.Redirect(dest, fiber.StatusFound)
}

// Create is the admin endpoint for sending a notification to a user.
func (h *NotificationHandler) Create(c *fiber.Ctx) error {
	var req dto.CreateNotificationRequest
	if err := c.BodyParser(&req); err != nil {
		return errorJSON(c, fiber.StatusBadRequest, "Invalid request body")
	}

	n, err := h.notificationService.Notify(c.UserContext(), req.UserID, req.Title, req.Message, req.Link, req.Type)
	if err != nil {
		return serviceError(c, err, "Failed to create notification")
	}

	return c.Status(fiber.StatusCreated).JSON(dto.NewNotificationResponse(n))
}
