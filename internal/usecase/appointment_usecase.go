package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"

	"marketplace/internal/domain/entity"
)

// BookAppointmentInput defines the data required to book an appointment.
type BookAppointmentInput struct {
	AccountID  uuid.UUID
	ProviderID uuid.UUID
	StartsAt   time.Time
	EndsAt     time.Time
	Notes      string
}

// UpdateAppointmentStatusInput moves an appointment to a new status.
type UpdateAppointmentStatusInput struct {
	AppointmentID uuid.UUID
	Status        entity.AppointmentStatus
}

// AppointmentUsecase defines the business operations on appointments.
type AppointmentUsecase interface {
	Book(ctx context.Context, input BookAppointmentInput) (*entity.Appointment, error)
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Appointment, error)
	ListForAccount(ctx context.Context, accountID uuid.UUID) ([]*entity.Appointment, error)
	ListForProvider(ctx context.Context, providerAccountID uuid.UUID) ([]*entity.Appointment, error)
	ListAll(ctx context.Context) ([]*entity.Appointment, error)
	UpdateStatus(ctx context.Context, input UpdateAppointmentStatusInput) (*entity.Appointment, error)
	Cancel(ctx context.Context, id uuid.UUID, requesterID uuid.UUID, requesterRole entity.Role) error
}
