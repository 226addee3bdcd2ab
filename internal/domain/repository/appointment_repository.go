package repository

import (
	"context"
	"errors"

	"marketplace/internal/domain/entity"

	"github.com/google/uuid"
)

// ErrAppointmentNotFound is returned when an appointment is not found.
var ErrAppointmentNotFound = errors.New("appointment not found")

// AppointmentRepository defines the standard operations for appointment persistence.
type AppointmentRepository interface {
	// Create persists a new appointment.
	Create(ctx context.Context, appointment *entity.Appointment) error

	// FindByID retrieves an appointment by its unique ID.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Appointment, error)

	// ListByAccountID retrieves all appointments booked by a customer account.
	ListByAccountID(ctx context.Context, accountID uuid.UUID) ([]*entity.Appointment, error)

	// ListByProviderID retrieves all appointments on a provider profile.
	ListByProviderID(ctx context.Context, providerID uuid.UUID) ([]*entity.Appointment, error)

	// ListAll retrieves every appointment. Admin listing only.
	ListAll(ctx context.Context) ([]*entity.Appointment, error)

	// Update modifies an existing appointment.
	Update(ctx context.Context, appointment *entity.Appointment) error

	// Delete removes an appointment by its ID.
	Delete(ctx context.Context, id uuid.UUID) error
}
