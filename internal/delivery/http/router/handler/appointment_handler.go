package handler

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"marketplace/internal/delivery/http/middleware"
	"marketplace/internal/delivery/http/response"
	"marketplace/internal/domain/entity"
	"marketplace/internal/usecase"
)

// AppointmentHandler holds dependencies for appointment handlers.
type AppointmentHandler struct {
	uc     usecase.AppointmentUsecase
	logger *slog.Logger
}

// NewAppointmentHandler is the constructor for AppointmentHandler, injected by Fx.
func NewAppointmentHandler(uc usecase.AppointmentUsecase, logger *slog.Logger) *AppointmentHandler {
	return &AppointmentHandler{
		uc:     uc,
		logger: logger,
	}
}

type bookAppointmentRequest struct {
	ProviderID uuid.UUID `json:"providerId" validate:"required"`
	StartsAt   time.Time `json:"startsAt" validate:"required"`
	EndsAt     time.Time `json:"endsAt" validate:"required"`
	Notes      string    `json:"notes" validate:"omitempty,max=2000"`
}

type updateAppointmentStatusRequest struct {
	Status string `json:"status" validate:"required"`
}

// Book creates a pending appointment for the authenticated account.
func (h *AppointmentHandler) Book(c echo.Context) error {
	accountID, ok := middleware.AccountID(c)
	if !ok {
		return response.Unauthorized(c, "UNAUTHORIZED", "Authentication required")
	}

	var input bookAppointmentRequest
	if err := c.Bind(&input); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid appointment input")
	}
	if err := c.Validate(&input); err != nil {
		return errors.WithStack(err)
	}

	appointment, err := h.uc.Book(c.Request().Context(), usecase.BookAppointmentInput{
		AccountID:  accountID,
		ProviderID: input.ProviderID,
		StartsAt:   input.StartsAt,
		EndsAt:     input.EndsAt,
		Notes:      input.Notes,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusCreated, appointment, "Appointment booked")
}

// ListMine returns the caller's appointments: the customer side for USER,
// the provider side for PROVIDER.
func (h *AppointmentHandler) ListMine(c echo.Context) error {
	accountID, ok := middleware.AccountID(c)
	if !ok {
		return response.Unauthorized(c, "UNAUTHORIZED", "Authentication required")
	}

	role, _ := middleware.AccountRole(c)

	var (
		appointments []*entity.Appointment
		err          error
	)
	if role == entity.RoleProvider {
		appointments, err = h.uc.ListForProvider(c.Request().Context(), accountID)
	} else {
		appointments, err = h.uc.ListForAccount(c.Request().Context(), accountID)
	}
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, appointments, "Appointments retrieved")
}

// ListAll returns every appointment. Admin only via the authority table.
func (h *AppointmentHandler) ListAll(c echo.Context) error {
	appointments, err := h.uc.ListAll(c.Request().Context())
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, appointments, "Appointments retrieved")
}

// Get returns a single appointment.
func (h *AppointmentHandler) Get(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return response.BadRequest(c, "INVALID_INPUT", "Invalid appointment id")
	}

	appointment, err := h.uc.GetByID(c.Request().Context(), id)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, appointment, "Appointment retrieved")
}

// UpdateStatus moves an appointment to a new status.
func (h *AppointmentHandler) UpdateStatus(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return response.BadRequest(c, "INVALID_INPUT", "Invalid appointment id")
	}

	var input updateAppointmentStatusRequest
	if err := c.Bind(&input); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid status input")
	}
	if err := c.Validate(&input); err != nil {
		return errors.WithStack(err)
	}

	appointment, err := h.uc.UpdateStatus(c.Request().Context(), usecase.UpdateAppointmentStatusInput{
		AppointmentID: id,
		Status:        entity.AppointmentStatus(input.Status),
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, appointment, "Appointment status updated")
}

// Cancel marks the caller's appointment cancelled.
func (h *AppointmentHandler) Cancel(c echo.Context) error {
	accountID, ok := middleware.AccountID(c)
	if !ok {
		return response.Unauthorized(c, "UNAUTHORIZED", "Authentication required")
	}

	role, _ := middleware.AccountRole(c)

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return response.BadRequest(c, "INVALID_INPUT", "Invalid appointment id")
	}

	if err := h.uc.Cancel(c.Request().Context(), id, accountID, role); err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, nil, "Appointment cancelled")
}
