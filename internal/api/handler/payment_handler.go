package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/identitylab/account-system/internal/core/domain"
	"github.com/identitylab/account-system/internal/core/ports"
)

type PaymentHandler struct {
	accounts ports.AccountService
}

func NewPaymentHandler(accounts ports.AccountService) *PaymentHandler {
	return &PaymentHandler{accounts: accounts}
}

type paymentRequest struct {
	Amount float64 `json:"amount" validate:"required,gt=0"`
	Method string  `json:"method" validate:"required"`
}

type subscriptionRequest struct {
	Plan string `json:"plan" validate:"required"`
}

// ProcessPayment charges the caller's account through the named method.
// An unknown method is a caller error, not a declined charge.
//
// @Summary      Process a payment
// @Tags         payments
// @Accept       json
// @Produce      json
// @Param        body  body      paymentRequest  true  "Amount and payment method"
// @Success      200   {object}  ports.PaymentResult
// @Failure      400   {object}  map[string]string
// @Failure      401   {object}  map[string]string
// @Failure      422   {object}  map[string]string
// @Security     BearerAuth
// @Router       /v1/payments [post]
func (h *PaymentHandler) ProcessPayment(c echo.Context) error {
	accountID, err := ctxAccountID(c)
	if err != nil {
		return err
	}

	var req paymentRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid payload"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}

	result, err := h.accounts.ProcessPayment(c.Request().Context(), accountID, req.Amount, domain.PaymentMethod(req.Method))
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, result)
}

// CreateSubscription activates a plan for the caller and charges the first
// period.
//
// @Summary      Create a subscription
// @Tags         payments
// @Accept       json
// @Produce      json
// @Param        body  body      subscriptionRequest  true  "Plan name"
// @Success      201   {object}  ports.Subscription
// @Failure      400   {object}  map[string]string
// @Failure      401   {object}  map[string]string
// @Security     BearerAuth
// @Router       /v1/subscriptions [post]
func (h *PaymentHandler) CreateSubscription(c echo.Context) error {
	accountID, err := ctxAccountID(c)
	if err != nil {
		return err
	}

	var req subscriptionRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid payload"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}

	sub, err := h.accounts.CreateSubscription(c.Request().Context(), accountID, req.Plan)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, sub)
}
