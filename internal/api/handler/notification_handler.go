package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/identitylab/account-system/internal/core/domain"
	"github.com/identitylab/account-system/internal/core/ports"
)

type NotificationHandler struct {
	accounts ports.AccountService
}

func NewNotificationHandler(accounts ports.AccountService) *NotificationHandler {
	return &NotificationHandler{accounts: accounts}
}

type notificationRequest struct {
	Channel string `json:"channel" validate:"required,oneof=email sms push"`
	Message string `json:"message" validate:"required"`
}

// Send delivers a notification to the caller over one channel.
//
// @Summary      Send a notification to self
// @Tags         notifications
// @Accept       json
// @Produce      json
// @Param        body  body      notificationRequest  true  "Channel and message"
// @Success      202
// @Failure      400   {object}  map[string]string
// @Failure      401   {object}  map[string]string
// @Failure      422   {object}  map[string]string
// @Security     BearerAuth
// @Router       /v1/notifications [post]
func (h *NotificationHandler) Send(c echo.Context) error {
	accountID, err := ctxAccountID(c)
	if err != nil {
		return err
	}

	var req notificationRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid payload"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}

	err = h.accounts.Notify(c.Request().Context(), accountID, ports.NotificationInput{
		Channel: domain.Channel(req.Channel),
		Message: req.Message,
	})
	if err != nil {
		return err
	}

	return c.NoContent(http.StatusAccepted)
}
