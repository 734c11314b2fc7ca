package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/credsure/admin-api/internal/api/dto"
	"github.com/credsure/admin-api/internal/service"
)

// ActivityHandler exposes the audit trail.
type ActivityHandler struct {
	activity *service.ActivityService
}

// NewActivityHandler constructs handler.
func NewActivityHandler(activityService *service.ActivityService) *ActivityHandler {
	return &ActivityHandler{activity: activityService}
}

// List handles GET /activity.
func (h *ActivityHandler) List(c *fiber.Ctx) error {
	limit := c.QueryInt("limit", 200)

	entries, err := h.activity.List(c.UserContext(), limit)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.FromActivityLogs(entries)})
}
