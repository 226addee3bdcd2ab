package entity

import (
	"time"

	"github.com/google/uuid"
)

// AppointmentStatus represents the lifecycle state of a booking.
type AppointmentStatus string

const (
	// AppointmentPending is the initial state of every new booking.
	AppointmentPending AppointmentStatus = "PENDING"
	// AppointmentConfirmed means the provider accepted the booking.
	AppointmentConfirmed AppointmentStatus = "CONFIRMED"
	// AppointmentCompleted means the service was delivered.
	AppointmentCompleted AppointmentStatus = "COMPLETED"
	// AppointmentCancelled means either side cancelled before delivery.
	AppointmentCancelled AppointmentStatus = "CANCELLED"
	// AppointmentRejected means the provider declined the booking.
	AppointmentRejected AppointmentStatus = "REJECTED"
)

// IsValid checks if the AppointmentStatus is a valid value.
func (s AppointmentStatus) IsValid() bool {
	switch s {
	case AppointmentPending, AppointmentConfirmed, AppointmentCompleted,
		AppointmentCancelled, AppointmentRejected:
		return true
	default:
		return false
	}
}

// Appointment represents a booking between a customer account and a provider.
type Appointment struct {
	ID         uuid.UUID         // The unique ID of this appointment.
	AccountID  uuid.UUID         // The customer who booked.
	ProviderID uuid.UUID         // The provider profile being booked.
	StartsAt   time.Time         // Scheduled start of the appointment.
	EndsAt     time.Time         // Scheduled end of the appointment.
	Status     AppointmentStatus // Current lifecycle state.
	Notes      string            // Optional free-form notes from the customer.
	CreatedAt  time.Time
	UpdatedAt  time.Time
}
