package handlers

import (
	"errors"

	"github.com/ahmetcoskunkizilkaya/commons-backend/internal/dto"
	"github.com/ahmetcoskunkizilkaya/commons-backend/internal/identity"
	"github.com/ahmetcoskunkizilkaya/commons-backend/internal/services"
	"github.com/ahmetcoskunkizilkaya/commons-backend/internal/storage"
	"github.com/gofiber/fiber/v2"
)

type MediaHandler struct {
	mediaService  *services.MediaService
	uploadService *services.UploadService
	authService   *services.AuthService
}

func NewMediaHandler(mediaService *services.MediaService, uploadService *services.UploadService, authService *services.AuthService) *MediaHandler {
	return &MediaHandler{
		mediaService:  mediaService,
		uploadService: uploadService,
		authService:   authService,
	}
}

type mediaItem struct {
	ID   uint   `json:"id"`
	File string `json:"file"`
	URL  string `json:"url"`
}

// UploadAvatar replaces the caller's avatar with the multipart "avatar" file.
func (h *MediaHandler) UploadAvatar(c *fiber.Ctx) error {
	userID, err := identity.UserID(c)
	if err != nil {
		return unauthorized(c)
	}

	fh, err := c.FormFile("avatar")
	if err != nil {
		return errorJSON(c, fiber.StatusBadRequest, "avatar file is required")
	}
	f, err := fh.Open()
	if err != nil {
		return errorJSON(c, fiber.StatusBadRequest, "Invalid avatar upload")
	}
	defer f.Close()

	ctx := c.UserContext()
	image, err := h.uploadService.SaveImage(ctx, "avatars", fh.Filename, f)
	if err != nil {
		if errors.Is(err, storage.ErrNotAnImage) {
			return errorJSON(c, fiber.StatusBadRequest, err.Error())
		}
		return serviceError(c, err, "Failed to store avatar")
	}

	user, err := h.authService.UpdateAvatar(ctx, userID, image.Name)
	if err != nil {
		h.uploadService.Discard(ctx, image.Name)
		return serviceError(c, err, "Failed to update avatar")
	}

	return c.JSON(dto.NewUserResponse(user, image.URL))
}

func (h *MediaHandler) List(c *fiber.Ctx) error {
	ref, err := paramRef(c)
	if err != nil {
		return errorJSON(c, fiber.StatusBadRequest, "Invalid target: "+err.Error())
	}

	entries, err := h.mediaService.List(c.UserContext(), ref)
	if err != nil {
		return serviceError(c, err, "Failed to fetch media")
	}

	items := make([]mediaItem, len(entries))
	for i, e := range entries {
		items[i] = mediaItem{ID: e.ID, File: e.File, URL: h.uploadService.URL(e.File)}
	}
	return c.JSON(fiber.Map{"media": items})
}

func (h *MediaHandler) Search(c *fiber.Ctx) error {
	limit, offset := pagination(c)

	views, total, err := h.mediaService.Search(c.UserContext(), c.Query("file"), c.Query("kind"), limit, offset)
	if err != nil {
		return serviceError(c, err, "Failed to search media")
	}
	return c.JSON(dto.Page[services.MediaView]{Items: views, Total: total, Limit: limit, Offset: offset})
}
