package handlers

import (
	"errors"

	"github.com/ahmetcoskunkizilkaya/commons-backend/internal/dto"
	"github.com/ahmetcoskunkizilkaya/commons-backend/internal/services"
	"github.com/ahmetcoskunkizilkaya/commons-backend/internal/storage"
	"github.com/gofiber/fiber/v2"
)

type PagesHandler struct {
	pagesService  *services.PagesService
	uploadService *services.UploadService
}

func NewPagesHandler(pagesService *services.PagesService, uploadService *services.UploadService) *PagesHandler {
	return &PagesHandler{pagesService: pagesService, uploadService: uploadService}
}

func (h *PagesHandler) pageError(c *fiber.Ctx, err error) error {
	if errors.Is(err, services.ErrPageNotFound) {
		return errorJSON(c, fiber.StatusNotFound, err.Error())
	}
	return serviceError(c, err, "Failed to load page")
}

func (h *PagesHandler) Terms(c *fiber.Ctx) error {
	terms, err := h.pagesService.Terms(c.UserContext())
	if err != nil {
		return h.pageError(c, err)
	}
	return c.JSON(terms)
}

func (h *PagesHandler) Privacy(c *fiber.Ctx) error {
	policy, err := h.pagesService.Privacy(c.UserContext())
	if err != nil {
		return h.pageError(c, err)
	}
	return c.JSON(policy)
}

func (h *PagesHandler) FAQs(c *fiber.Ctx) error {
	faqs, err := h.pagesService.FAQs(c.UserContext())
	if err != nil {
		return serviceError(c, err, "Failed to fetch faqs")
	}
	return c.JSON(fiber.Map{"faqs": faqs})
}

func (h *PagesHandler) SocialLinks(c *fiber.Ctx) error {
	links, err := h.pagesService.SocialLinks(c.UserContext())
	if err != nil {
		return serviceError(c, err, "Failed to fetch social links")
	}

	out := make([]dto.SocialLinkResponse, len(links))
	for i, l := range links {
		out[i] = dto.SocialLinkResponse{
			ID:           l.ID,
			PlatformName: l.PlatformName,
			ProfileURL:   l.ProfileURL,
			ImageURL:     h.uploadService.URL(l.Image),
		}
	}
	return c.JSON(fiber.Map{"social_links": out})
}

func (h *PagesHandler) PublishTerms(c *fiber.Ctx) error {
	var req dto.PublishTermsRequest
	if err := c.BodyParser(&req); err != nil {
		return errorJSON(c, fiber.StatusBadRequest, "Invalid request body")
	}
	terms, err := h.pagesService.PublishTerms(c.UserContext(), req.Terms)
	if err != nil {
		return serviceError(c, err, "Failed to publish terms")
	}
	return c.Status(fiber.StatusCreated).JSON(terms)
}

func (h *PagesHandler) PublishPrivacy(c *fiber.Ctx) error {
	var req dto.PublishPrivacyRequest
	if err := c.BodyParser(&req); err != nil {
		return errorJSON(c, fiber.StatusBadRequest, "Invalid request body")
	}
	policy, err := h.pagesService.PublishPrivacy(c.UserContext(), req.Policy)
	if err != nil {
		return serviceError(c, err, "Failed to publish privacy policy")
	}
	return c.Status(fiber.StatusCreated).JSON(policy)
}

func (h *PagesHandler) CreateFAQ(c *fiber.Ctx) error {
	var req dto.CreateFAQRequest
	if err := c.BodyParser(&req); err != nil {
		return errorJSON(c, fiber.StatusBadRequest, "Invalid request body")
	}
	faq, err := h.pagesService.CreateFAQ(c.UserContext(), req.Question, req.Answer)
	if err != nil {
		return serviceError(c, err, "Failed to create faq")
	}
	return c.Status(fiber.StatusCreated).JSON(faq)
}

// CreateSocialLink takes a multipart form with platform_name, profile_url
// and an optional image file.
func (h *PagesHandler) CreateSocialLink(c *fiber.Ctx) error {
	ctx := c.UserContext()

	var image *services.StoredImage
	if fh, err := c.FormFile("image"); err == nil {
		f, err := fh.Open()
		if err != nil {
			return errorJSON(c, fiber.StatusBadRequest, "Invalid image upload")
		}
		defer f.Close()

		image, err = h.uploadService.SaveImage(ctx, "social", fh.Filename, f)
		if err != nil {
			if errors.Is(err, storage.ErrNotAnImage) {
				return errorJSON(c, fiber.StatusBadRequest, err.Error())
			}
			return serviceError(c, err, "Failed to store image")
		}
	}

	name := ""
	if image != nil {
		name = image.Name
	}
	link, err := h.pagesService.CreateSocialLink(ctx, c.FormValue("platform_name"), c.FormValue("profile_url"), name)
	if err != nil {
		if image != nil {
			h.uploadService.Discard(ctx, image.Name)
		}
		return serviceError(c, err, "Failed to create social link")
	}

	return c.Status(fiber.StatusCreated).JSON(dto.SocialLinkResponse{
		ID:           link.ID,
		PlatformName: link.PlatformName,
		ProfileURL:   link.ProfileURL,
		ImageURL:     h.uploadService.URL(link.Image),
	})
}
