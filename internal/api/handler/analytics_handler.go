package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/identitylab/account-system/internal/core/ports"
)

// eventRecorder is the slice of the dispatcher the handler needs.
type eventRecorder interface {
	Enqueue(event ports.AnalyticsEventInput)
}

type AnalyticsHandler struct {
	events eventRecorder
}

func NewAnalyticsHandler(events eventRecorder) *AnalyticsHandler {
	return &AnalyticsHandler{events: events}
}

type trackEventRequest struct {
	Name       string         `json:"name" validate:"required"`
	Properties map[string]any `json:"properties,omitempty"`
}

// Track enqueues a custom analytics event for the caller. Events for the
// same account are processed in the order they arrive.
//
// @Summary      Track an analytics event
// @Tags         analytics
// @Accept       json
// @Produce      json
// @Param        body  body      trackEventRequest  true  "Event name and properties"
// @Success      202
// @Failure      400   {object}  map[string]string
// @Failure      401   {object}  map[string]string
// @Security     BearerAuth
// @Router       /v1/events [post]
func (h *AnalyticsHandler) Track(c echo.Context) error {
	accountID, err := ctxAccountID(c)
	if err != nil {
		return err
	}

	var req trackEventRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid payload"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}

	h.events.Enqueue(ports.AnalyticsEventInput{
		AccountID:  accountID,
		Name:       req.Name,
		Timestamp:  time.Now().UTC(),
		Properties: req.Properties,
	})

	return c.NoContent(http.StatusAccepted)
}
