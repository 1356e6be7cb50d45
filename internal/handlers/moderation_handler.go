package handlers

import (
	"github.com/ahmetcoskunkizilkaya/commons-backend/internal/dto"
	"github.com/ahmetcoskunkizilkaya/commons-backend/internal/identity"
	"github.com/ahmetcoskunkizilkaya/commons-backend/internal/services"
	"github.com/gofiber/fiber/v2"
)

type ModerationHandler struct {
	moderationService *services.ModerationService
	defaultRedirect   string
}

func NewModerationHandler(moderationService *services.ModerationService, defaultRedirect string) *ModerationHandler {
	if defaultRedirect == "" {
		defaultRedirect = "/"
	}
	return &ModerationHandler{moderationService: moderationService, defaultRedirect: defaultRedirect}
}

// CreateReport files a report and sends the browser back where it came from.
func (h *ModerationHandler) CreateReport(c *fiber.Ctx) error {
	userID, err := identity.UserID(c)
	if err != nil {
		return unauthorized(c)
	}

	ref, err := paramRef(c)
	if err != nil {
		return errorJSON(c, fiber.StatusBadRequest, "Invalid target: "+err.Error())
	}

	var req dto.CreateReportRequest
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&req); err != nil {
			return errorJSON(c, fiber.StatusBadRequest, "Invalid request body")
		}
	}

	if _, err := h.moderationService.CreateReport(c.UserContext(), userID, ref, req.Reason); err != nil {
		return serviceError(c, err, "Failed to create report")
	}

	dest := c.Get(fiber.HeaderReferer)
	if dest == "" {
		dest = h.defaultRedirect
	}
	return c.Redirect(dest, fiber.StatusSeeOther)
}

func (h *ModerationHandler) CreateComment(c *fiber.Ctx) error {
	userID, err := identity.UserID(c)
	if err != nil {
		return unauthorized(c)
	}

	ref, err := paramRef(c)
	if err != nil {
		return errorJSON(c, fiber.StatusBadRequest, "Invalid target: "+err.Error())
	}

	var req dto.CreateCommentRequest
	if err := c.BodyParser(&req); err != nil {
		return errorJSON(c, fiber.StatusBadRequest, "Invalid request body")
	}

	comment, err := h.moderationService.CreateComment(c.UserContext(), userID, ref, req.Content)
	if err != nil {
		return serviceError(c, err, "Failed to create comment")
	}

	return c.Status(fiber.StatusCreated).JSON(dto.NewCommentResponse(comment))
}

func (h *ModerationHandler) ListComments(c *fiber.Ctx) error {
	ref, err := paramRef(c)
	if err != nil {
		return errorJSON(c, fiber.StatusBadRequest, "Invalid target: "+err.Error())
	}
	limit, offset := pagination(c)

	comments, total, err := h.moderationService.ListComments(c.UserContext(), ref, limit, offset)
	if err != nil {
		return serviceError(c, err, "Failed to fetch comments")
	}

	items := make([]dto.CommentResponse, len(comments))
	for i := range comments {
		items[i] = dto.NewCommentResponse(&comments[i])
	}
	return c.JSON(dto.Page[dto.CommentResponse]{Items: items, Total: total, Limit: limit, Offset: offset})
}

func (h *ModerationHandler) ListReports(c *fiber.Ctx) error {
	limit, offset := pagination(c)

	reports, total, err := h.moderationService.ListReports(c.UserContext(), c.Query("kind"), limit, offset)
	if err != nil {
		return serviceError(c, err, "Failed to fetch reports")
	}

	return c.JSON(dto.Page[services.ReportView]{Items: reports, Total: total, Limit: limit, Offset: offset})
}

func (h *ModerationHandler) ListAllComments(c *fiber.Ctx) error {
	limit, offset := pagination(c)

	comments, total, err := h.moderationService.ListAllComments(c.UserContext(), c.Query("kind"), limit, offset)
	if err != nil {
		return serviceError(c, err, "Failed to fetch comments")
	}

	return c.JSON(dto.Page[services.CommentView]{Items: comments, Total: total, Limit: limit, Offset: offset})
}

// ShowContent is the admin landing page that report and comment listings
// link their targets to.
func (h *ModerationHandler) ShowContent(c *fiber.Ctx) error {
	ref, err := paramRef(c)
	if err != nil {
		return errorJSON(c, fiber.StatusBadRequest, "Invalid target: "+err.Error())
	}

	entity, err := h.moderationService.Lookup(c.UserContext(), ref)
	if err != nil {
		return serviceError(c, err, "Failed to load content")
	}

	return c.JSON(dto.ContentResponse{
		Kind:   ref.Kind,
		ID:     ref.ID,
		Label:  entity.String(),
		Object: entity,
	})
}
