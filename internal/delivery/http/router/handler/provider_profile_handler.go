package handler

import (
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"marketplace/internal/delivery/http/middleware"
	"marketplace/internal/delivery/http/response"
	"marketplace/internal/usecase"
)

// ProviderProfileHandler holds dependencies for provider profile handlers.
type ProviderProfileHandler struct {
	uc     usecase.ProviderProfileUsecase
	logger *slog.Logger
}

// NewProviderProfileHandler is the constructor for ProviderProfileHandler, injected by Fx.
func NewProviderProfileHandler(uc usecase.ProviderProfileUsecase, logger *slog.Logger) *ProviderProfileHandler {
	return &ProviderProfileHandler{
		uc:     uc,
		logger: logger,
	}
}

type providerProfileRequest struct {
	BusinessName        string `json:"businessName" validate:"required,max=255"`
	BusinessDescription string `json:"businessDescription" validate:"omitempty"`
	BusinessAddress     string `json:"businessAddress" validate:"omitempty,max=255"`
	BusinessPhone       string `json:"businessPhone" validate:"omitempty,account_phone"`
	BusinessEmail       string `json:"businessEmail" validate:"omitempty,account_email"`
	BusinessWebsite     string `json:"businessWebsite" validate:"omitempty,max=255"`
}

// CreateProfile creates the business profile for the authenticated provider.
func (h *ProviderProfileHandler) CreateProfile(c echo.Context) error {
	accountID, ok := middleware.AccountID(c)
	if !ok {
		return response.Unauthorized(c, "UNAUTHORIZED", "Authentication required")
	}

	var input providerProfileRequest
	if err := c.Bind(&input); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid profile input")
	}
	if err := c.Validate(&input); err != nil {
		return errors.WithStack(err)
	}

	profile, err := h.uc.CreateProfile(c.Request().Context(), usecase.UpsertProviderProfileInput{
		AccountID:           accountID,
		BusinessName:        input.BusinessName,
		BusinessDescription: input.BusinessDescription,
		BusinessAddress:     input.BusinessAddress,
		BusinessPhone:       input.BusinessPhone,
		BusinessEmail:       input.BusinessEmail,
		BusinessWebsite:     input.BusinessWebsite,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusCreated, profile, "Provider profile created")
}

// GetProfile returns the authenticated provider's own profile.
func (h *ProviderProfileHandler) GetProfile(c echo.Context) error {
	accountID, ok := middleware.AccountID(c)
	if !ok {
		return response.Unauthorized(c, "UNAUTHORIZED", "Authentication required")
	}

	profile, err := h.uc.GetProfileByAccount(c.Request().Context(), accountID)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, profile, "Provider profile retrieved")
}

// UpdateProfile replaces the mutable fields of the authenticated provider's profile.
func (h *ProviderProfileHandler) UpdateProfile(c echo.Context) error {
	accountID, ok := middleware.AccountID(c)
	if !ok {
		return response.Unauthorized(c, "UNAUTHORIZED", "Authentication required")
	}

	var input providerProfileRequest
	if err := c.Bind(&input); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid profile input")
	}
	if err := c.Validate(&input); err != nil {
		return errors.WithStack(err)
	}

	profile, err := h.uc.UpdateProfile(c.Request().Context(), usecase.UpsertProviderProfileInput{
		AccountID:           accountID,
		BusinessName:        input.BusinessName,
		BusinessDescription: input.BusinessDescription,
		BusinessAddress:     input.BusinessAddress,
		BusinessPhone:       input.BusinessPhone,
		BusinessEmail:       input.BusinessEmail,
		BusinessWebsite:     input.BusinessWebsite,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, profile, "Provider profile updated")
}

// DeleteProfile removes the authenticated provider's profile.
func (h *ProviderProfileHandler) DeleteProfile(c echo.Context) error {
	accountID, ok := middleware.AccountID(c)
	if !ok {
		return response.Unauthorized(c, "UNAUTHORIZED", "Authentication required")
	}

	if err := h.uc.DeleteProfile(c.Request().Context(), accountID); err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, nil, "Provider profile deleted")
}
