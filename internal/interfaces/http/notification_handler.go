package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/shelftrack/shelftrack-api/internal/application/notification"
)

// NotificationHandler exposes the due-date reminder feed and a manual
// trigger for the reminder sweep.
type NotificationHandler struct {
	uc *notification.UseCase
}

// NewNotificationHandler builds the handler.
func NewNotificationHandler(uc *notification.UseCase) *NotificationHandler {
	return &NotificationHandler{uc: uc}
}

// ListMine godoc
// @Summary      List reminders sent to the caller
// @Tags         notifications
// @Security     Bearer
// @Produce      json
// @Param        limit   query  int  false  "limit"   default(20)
// @Param        offset  query  int  false  "offset"  default(0)
// @Success      200  {array}  dto.NotificationResponse
// @Router       /api/notifications [get]
func (h *NotificationHandler) ListMine(c *fiber.Ctx) error {
	limit := c.QueryInt("limit", 20)
	offset := c.QueryInt("offset", 0)
	out, err := h.uc.ListByUser(c.Context(), GetUserID(c), limit, offset)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Trigger godoc
// @Summary      Run the due-date reminder sweep now
// @Description  The sweep also runs on a fixed interval; this endpoint exists for operators.
// @Tags         notifications
// @Security     Bearer
// @Success      202
// @Router       /api/notifications/check [post]
func (h *NotificationHandler) Trigger(c *fiber.Ctx) error {
	if err := h.uc.CheckOverdueNotifications(c.Context()); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusAccepted)
}
