package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/identitylab/account-system/internal/core/ports"
)

type AccountHandler struct {
	accounts ports.AccountService
}

func NewAccountHandler(accounts ports.AccountService) *AccountHandler {
	return &AccountHandler{accounts: accounts}
}

type updateProfileRequest struct {
	PhoneNumber *string `json:"phone_number,omitempty"`
	AvatarPath  *string `json:"avatar_path,omitempty"`
}

type permissionsResponse struct {
	Permissions []string `json:"permissions"`
}

type resourceCheckRequest struct {
	OwnerID string `json:"owner_id"`
	Public  bool   `json:"public"`
}

type resourceCheckResponse struct {
	Allowed bool `json:"allowed"`
}

// Me returns the caller's account.
//
// @Summary      Get own account
// @Tags         accounts
// @Produce      json
// @Success      200   {object}  domain.Account
// @Failure      401   {object}  map[string]string
// @Security     BearerAuth
// @Router       /v1/accounts/me [get]
func (h *AccountHandler) Me(c echo.Context) error {
	accountID, err := ctxAccountID(c)
	if err != nil {
		return err
	}

	account, err := h.accounts.Get(c.Request().Context(), accountID)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, account)
}

// UpdateProfile applies the provided profile fields; absent fields are left
// untouched. Avatar paths go through the image processor before storage.
//
// @Summary      Update own profile
// @Tags         accounts
// @Accept       json
// @Produce      json
// @Param        body  body      updateProfileRequest  true  "Fields to update"
// @Success      200   {object}  domain.Account
// @Failure      400   {object}  map[string]string
// @Failure      401   {object}  map[string]string
// @Security     BearerAuth
// @Router       /v1/accounts/me/profile [patch]
func (h *AccountHandler) UpdateProfile(c echo.Context) error {
	accountID, err := ctxAccountID(c)
	if err != nil {
		return err
	}

	var req updateProfileRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid payload"})
	}

	account, err := h.accounts.UpdateProfile(c.Request().Context(), accountID, ports.ProfileUpdate{
		PhoneNumber: req.PhoneNumber,
		AvatarPath:  req.AvatarPath,
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, account)
}

// Permissions lists the caller's effective permission names.
//
// @Summary      List own permissions
// @Tags         accounts
// @Produce      json
// @Success      200   {object}  permissionsResponse
// @Failure      401   {object}  map[string]string
// @Security     BearerAuth
// @Router       /v1/accounts/me/permissions [get]
func (h *AccountHandler) Permissions(c echo.Context) error {
	accountID, err := ctxAccountID(c)
	if err != nil {
		return err
	}

	perms, err := h.accounts.Permissions(c.Request().Context(), accountID)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, permissionsResponse{Permissions: perms})
}

// CheckResource answers whether the caller may access the described
// resource. The response is a bare boolean: a denial never says why.
//
// @Summary      Check resource access
// @Tags         authz
// @Accept       json
// @Produce      json
// @Param        body  body      resourceCheckRequest  true  "Resource descriptor"
// @Success      200   {object}  resourceCheckResponse
// @Failure      400   {object}  map[string]string
// @Failure      401   {object}  map[string]string
// @Security     BearerAuth
// @Router       /v1/authz/resource-check [post]
func (h *AccountHandler) CheckResource(c echo.Context) error {
	accountID, err := ctxAccountID(c)
	if err != nil {
		return err
	}

	var req resourceCheckRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid payload"})
	}

	decision, err := h.accounts.CheckResource(c.Request().Context(), accountID, ports.ResourceCheckInput{
		OwnerID: req.OwnerID,
		Public:  req.Public,
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, resourceCheckResponse{Allowed: decision.Allowed})
}

// AccountReport returns another account's activity summary. Admin only;
// the RBAC middleware enforces the role before this runs.
//
// @Summary      Activity report for any account
// @Tags         accounts
// @Produce      json
// @Param        id    path      string  true  "Account ID"
// @Success      200   {object}  ports.ActivityReport
// @Failure      401   {object}  map[string]string
// @Failure      403   {object}  map[string]string
// @Failure      404   {object}  map[string]string
// @Security     BearerAuth
// @Router       /v1/accounts/{id}/report [get]
func (h *AccountHandler) AccountReport(c echo.Context) error {
	report, err := h.accounts.ActivityReport(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, report)
}

// ActivityReport returns the caller's login activity summary.
//
// @Summary      Own activity report
// @Tags         accounts
// @Produce      json
// @Success      200   {object}  ports.ActivityReport
// @Failure      401   {object}  map[string]string
// @Security     BearerAuth
// @Router       /v1/reports/activity [get]
func (h *AccountHandler) ActivityReport(c echo.Context) error {
	accountID, err := ctxAccountID(c)
	if err != nil {
		return err
	}

	report, err := h.accounts.ActivityReport(c.Request().Context(), accountID)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, report)
}
