package handlers

import (
	"strconv"

	"github.com/ahmetcoskunkizilkaya/commons-backend/internal/dto"
	"github.com/ahmetcoskunkizilkaya/commons-backend/internal/services"
	"github.com/gofiber/fiber/v2"
)

type TrustHandler struct {
	trustService *services.TrustService
	suspend      *services.SuspendAccountCommand
}

func NewTrustHandler(trustService *services.TrustService, suspend *services.SuspendAccountCommand) *TrustHandler {
	return &TrustHandler{trustService: trustService, suspend: suspend}
}

func (h *TrustHandler) SuspendUser(c *fiber.Ctx) error {
	userID, ok := paramID(c, "id")
	if !ok {
		return errorJSON(c, fiber.StatusBadRequest, "Invalid user ID")
	}

	result, err := h.suspend.Execute(c.UserContext(), userID)
	if err != nil {
		return serviceError(c, err, "Failed to suspend account")
	}

	return c.JSON(dto.SuspendResponse{
		UserID:         result.UserID,
		TokensRevoked:  result.TokensRevoked,
		DevicesBlocked: result.DevicesBlocked,
		IPsFlagged:     result.IPsFlagged,
	})
}

func (h *TrustHandler) UserIPs(c *fiber.Ctx) error {
	userID, ok := paramID(c, "id")
	if !ok {
		return errorJSON(c, fiber.StatusBadRequest, "Invalid user ID")
	}

	rows, err := h.trustService.IPHistory(c.UserContext(), userID)
	if err != nil {
		return serviceError(c, err, "Failed to fetch ip history")
	}
	return c.JSON(fiber.Map{"ips": rows})
}

func (h *TrustHandler) UserDevices(c *fiber.Ctx) error {
	userID, ok := paramID(c, "id")
	if !ok {
		return errorJSON(c, fiber.StatusBadRequest, "Invalid user ID")
	}

	rows, err := h.trustService.DeviceHistory(c.UserContext(), userID)
	if err != nil {
		return serviceError(c, err, "Failed to fetch device history")
	}
	return c.JSON(fiber.Map{"devices": rows})
}

func boolQuery(c *fiber.Ctx, key string) *bool {
	raw := c.Query(key)
	if raw == "" {
		return nil
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		return nil
	}
	return &v
}

func (h *TrustHandler) ListIPs(c *fiber.Ctx) error {
	limit, offset := pagination(c)
	filter := services.IPFilter{
		Suspicious: boolQuery(c, "suspicious"),
		Blocked:    boolQuery(c, "blocked"),
	}

	rows, total, err := h.trustService.ListIPs(c.UserContext(), filter, limit, offset)
	if err != nil {
		return serviceError(c, err, "Failed to fetch ips")
	}
	return c.JSON(dto.Page[services.IPView]{Items: rows, Total: total, Limit: limit, Offset: offset})
}

func (h *TrustHandler) BlockIP(c *fiber.Ctx) error {
	ip := c.Params("ip")
	n, err := h.trustService.BlockIP(c.UserContext(), ip)
	if err != nil {
		return serviceError(c, err, "Failed to block ip")
	}
	return c.JSON(dto.IPActionResponse{IP: ip, Updated: n})
}

func (h *TrustHandler) FlagIP(c *fiber.Ctx) error {
	ip := c.Params("ip")
	n, err := h.trustService.MarkIPSuspicious(c.UserContext(), ip)
	if err != nil {
		return serviceError(c, err, "Failed to flag ip")
	}
	return c.JSON(dto.IPActionResponse{IP: ip, Updated: n})
}
