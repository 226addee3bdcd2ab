package impl

import (
	"context"
	"log/slog"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/fx"

	deliverycontext "marketplace/internal/delivery/context"
	"marketplace/internal/domain/entity"
	domainerrors "marketplace/internal/domain/errors"
	"marketplace/internal/domain/repository"
	"marketplace/internal/usecase"
)

// appointmentService implements the AppointmentUsecase interface.
type appointmentService struct {
	appointmentRepo repository.AppointmentRepository
	profileRepo     repository.ProviderProfileRepository
	logger          *slog.Logger
}

// AppointmentServiceParams holds dependencies for appointmentService, injected by Fx.
type AppointmentServiceParams struct {
	fx.In

	AppointmentRepo repository.AppointmentRepository
	ProfileRepo     repository.ProviderProfileRepository
	Logger          *slog.Logger
}

// NewAppointmentService is the constructor for appointmentService.
func NewAppointmentService(params AppointmentServiceParams) usecase.AppointmentUsecase {
	return &appointmentService{
		appointmentRepo: params.AppointmentRepo,
		profileRepo:     params.ProfileRepo,
		logger:          params.Logger,
	}
}

func (srv *appointmentService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// Book creates a pending appointment against an existing provider profile.
func (srv *appointmentService) Book(ctx context.Context, input usecase.BookAppointmentInput) (*entity.Appointment, error) {
	if !input.EndsAt.After(input.StartsAt) {
		return nil, domainerrors.NewValidationError("Appointment end time must be after start time")
	}

	// The provider is addressed by profile ID; booking against a missing
	// profile fails before anything is written.
	if _, err := srv.profileRepo.FindByID(ctx, input.ProviderID); err != nil {
		if errors.Is(err, repository.ErrProviderProfileNotFound) {
			return nil, domainerrors.ErrNotFound.WrapMessage("provider not found")
		}

		return nil, errors.Wrap(err, "failed to find provider profile")
	}

	appointment := &entity.Appointment{
		AccountID:  input.AccountID,
		ProviderID: input.ProviderID,
		StartsAt:   input.StartsAt,
		EndsAt:     input.EndsAt,
		Status:     entity.AppointmentPending,
		Notes:      input.Notes,
	}

	if err := srv.appointmentRepo.Create(ctx, appointment); err != nil {
		return nil, err
	}

	srv.log(ctx).Info("Appointment booked",
		slog.String("appointmentID", appointment.ID.String()),
		slog.String("providerID", appointment.ProviderID.String()))

	return appointment, nil
}

// GetByID retrieves a single appointment.
func (srv *appointmentService) GetByID(ctx context.Context, id uuid.UUID) (*entity.Appointment, error) {
	appointment, err := srv.appointmentRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrAppointmentNotFound) {
			return nil, domainerrors.ErrNotFound.WrapMessage("appointment not found")
		}

		return nil, errors.Wrap(err, "failed to find appointment")
	}

	return appointment, nil
}

// ListForAccount returns the appointments booked by a customer account.
func (srv *appointmentService) ListForAccount(ctx context.Context, accountID uuid.UUID) ([]*entity.Appointment, error) {
	return srv.appointmentRepo.ListByAccountID(ctx, accountID)
}

// ListForProvider returns the appointments on the provider profile owned by
// the given account.
func (srv *appointmentService) ListForProvider(ctx context.Context, providerAccountID uuid.UUID) ([]*entity.Appointment, error) {
	profile, err := srv.profileRepo.FindByAccountID(ctx, providerAccountID)
	if err != nil {
		if errors.Is(err, repository.ErrProviderProfileNotFound) {
			return nil, domainerrors.ErrNotFound.WrapMessage("provider profile not found")
		}

		return nil, errors.Wrap(err, "failed to find provider profile")
	}

	return srv.appointmentRepo.ListByProviderID(ctx, profile.ID)
}

// ListAll returns every appointment. Reserved for admin listings.
func (srv *appointmentService) ListAll(ctx context.Context) ([]*entity.Appointment, error) {
	return srv.appointmentRepo.ListAll(ctx)
}

// UpdateStatus moves an appointment to a new status.
func (srv *appointmentService) UpdateStatus(ctx context.Context, input usecase.UpdateAppointmentStatusInput) (*entity.Appointment, error) {
	if !input.Status.IsValid() {
		return nil, domainerrors.NewValidationError("Invalid appointment status")
	}

	appointment, err := srv.appointmentRepo.FindByID(ctx, input.AppointmentID)
	if err != nil {
		if errors.Is(err, repository.ErrAppointmentNotFound) {
			return nil, domainerrors.ErrNotFound.WrapMessage("appointment not found")
		}

		return nil, errors.Wrap(err, "failed to find appointment")
	}

	appointment.Status = input.Status
	if err := srv.appointmentRepo.Update(ctx, appointment); err != nil {
		return nil, err
	}

	srv.log(ctx).Info("Appointment status updated",
		slog.String("appointmentID", appointment.ID.String()),
		slog.String("status", string(appointment.Status)))

	return appointment, nil
}

// Cancel marks an appointment cancelled. The booking customer may cancel their
// own appointment; an admin may cancel any.
func (srv *appointmentService) Cancel(ctx context.Context, id uuid.UUID, requesterID uuid.UUID, requesterRole entity.Role) error {
	appointment, err := srv.appointmentRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrAppointmentNotFound) {
			return domainerrors.ErrNotFound.WrapMessage("appointment not found")
		}

		return errors.Wrap(err, "failed to find appointment")
	}

	if appointment.AccountID != requesterID && requesterRole != entity.RoleAdmin {
		return domainerrors.ErrForbidden.WrapMessage("appointment belongs to another account")
	}

	appointment.Status = entity.AppointmentCancelled

	return srv.appointmentRepo.Update(ctx, appointment)
}
