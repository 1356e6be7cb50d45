package handlers

import (
	"github.com/ahmetcoskunkizilkaya/commons-backend/internal/dto"
	"github.com/ahmetcoskunkizilkaya/commons-backend/internal/models"
	"github.com/ahmetcoskunkizilkaya/commons-backend/internal/services"
	"github.com/gofiber/fiber/v2"
)

type ContactHandler struct {
	contactService *services.ContactService
}

func NewContactHandler(contactService *services.ContactService) *ContactHandler {
	return &ContactHandler{contactService: contactService}
}

func (h *ContactHandler) Submit(c *fiber.Ctx) error {
	var req services.ContactSubmission
	if err := c.BodyParser(&req); err != nil {
		return errorJSON(c, fiber.StatusBadRequest, "Invalid request body")
	}

	if _, err := h.contactService.Submit(c.UserContext(), req); err != nil {
		return serviceError(c, err, "Failed to submit contact request")
	}

	return c.Status(fiber.StatusCreated).JSON(dto.MessageResponse{
		Message: "Thank you for contacting us. We will get back to you soon.",
	})
}

func (h *ContactHandler) List(c *fiber.Ctx) error {
	limit, offset := pagination(c)

	list, total, err := h.contactService.List(c.UserContext(), c.Query("status"), c.Query("type"), limit, offset)
	if err != nil {
		return serviceError(c, err, "Failed to fetch contact requests")
	}
	return c.JSON(dto.Page[models.ContactRequest]{Items: list, Total: total, Limit: limit, Offset: offset})
}

// SetStatus accepts the status either as its value ("In Progress") or as
// the admin form key ("_in_progress").
func (h *ContactHandler) SetStatus(c *fiber.Ctx) error {
	id, ok := paramID(c, "id")
	if !ok {
		return errorJSON(c, fiber.StatusBadRequest, "Invalid contact ID")
	}

	var req dto.ContactStatusRequest
	if err := c.BodyParser(&req); err != nil {
		return errorJSON(c, fiber.StatusBadRequest, "Invalid request body")
	}

	contact, err := h.contactService.SetStatus(c.UserContext(), id, req.Status)
	if err != nil {
		return serviceError(c, err, "Failed to update contact status")
	}
	return c.JSON(contact)
}

func (h *ContactHandler) UpdateNotes(c *fiber.Ctx) error {
	id, ok := paramID(c, "id")
	if !ok {
		return errorJSON(c, fiber.StatusBadRequest, "Invalid contact ID")
	}

	var req dto.ContactNotesRequest
	if err := c.BodyParser(&req); err != nil {
		return errorJSON(c, fiber.StatusBadRequest, "Invalid request body")
	}

	contact, err := h.contactService.UpdateNotes(c.UserContext(), id, req.AdminNotes)
	if err != nil {
		return serviceError(c, err, "Failed to update contact notes")
	}
	return c.JSON(contact)
}
