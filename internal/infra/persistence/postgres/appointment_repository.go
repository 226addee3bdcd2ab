package postgres

import (
	"context"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gorm.io/gorm"

	"marketplace/internal/domain/entity"
	domainerrors "marketplace/internal/domain/errors"
	"marketplace/internal/domain/repository"
	"marketplace/internal/infra/persistence/model"
)

// appointmentRepository implements the domain.AppointmentRepository interface using GORM.
type appointmentRepository struct {
	db *gorm.DB
}

// NewAppointmentRepository is the constructor for appointmentRepository.
func NewAppointmentRepository(db *gorm.DB) repository.AppointmentRepository {
	return &appointmentRepository{db: db}
}

// Create persists a new appointment.
func (repo *appointmentRepository) Create(ctx context.Context, appointment *entity.Appointment) error {
	appointmentM := fromAppointmentDomain(appointment)

	if err := repo.db.WithContext(ctx).Create(appointmentM).Error; err != nil {
		if isForeignKeyConstraintViolation(err) {
			return domainerrors.ErrNotFound.WrapMessage("account or provider does not exist")
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to create appointment")
	}

	appointment.ID = appointmentM.ID
	appointment.CreatedAt = appointmentM.CreatedAt
	appointment.UpdatedAt = appointmentM.UpdatedAt

	return nil
}

// FindByID retrieves an appointment by its unique ID.
func (repo *appointmentRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Appointment, error) {
	var appointmentM model.AppointmentModel
	if err := repo.db.WithContext(ctx).Where("id = ?", id).First(&appointmentM).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrAppointmentNotFound
		}

		return nil, errors.Wrap(err, "failed to find appointment by id")
	}

	return toAppointmentDomain(&appointmentM), nil
}

// ListByAccountID retrieves all appointments booked by a customer account.
func (repo *appointmentRepository) ListByAccountID(ctx context.Context, accountID uuid.UUID) ([]*entity.Appointment, error) {
	return repo.list(repo.db.WithContext(ctx).Where("account_id = ?", accountID))
}

// ListByProviderID retrieves all appointments on a provider profile.
func (repo *appointmentRepository) ListByProviderID(ctx context.Context, providerID uuid.UUID) ([]*entity.Appointment, error) {
	return repo.list(repo.db.WithContext(ctx).Where("provider_id = ?", providerID))
}

// ListAll retrieves every appointment.
func (repo *appointmentRepository) ListAll(ctx context.Context) ([]*entity.Appointment, error) {
	return repo.list(repo.db.WithContext(ctx))
}

func (repo *appointmentRepository) list(tx *gorm.DB) ([]*entity.Appointment, error) {
	var models []*model.AppointmentModel
	if err := tx.Order("starts_at ASC").Find(&models).Error; err != nil {
		return nil, errors.Wrap(err, "failed to list appointments")
	}

	appointments := make([]*entity.Appointment, 0, len(models))
	for _, appointmentM := range models {
		appointments = append(appointments, toAppointmentDomain(appointmentM))
	}

	return appointments, nil
}

// Update modifies an existing appointment.
func (repo *appointmentRepository) Update(ctx context.Context, appointment *entity.Appointment) error {
	appointmentM := fromAppointmentDomain(appointment)

	if err := repo.db.WithContext(ctx).Save(appointmentM).Error; err != nil {
		return domainerrors.NewDatabaseExecuteError(err, "failed to update appointment")
	}

	appointment.UpdatedAt = appointmentM.UpdatedAt

	return nil
}

// Delete removes an appointment by its ID.
func (repo *appointmentRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := repo.db.WithContext(ctx).Where("id = ?", id).Delete(&model.AppointmentModel{})
	if result.Error != nil {
		return domainerrors.NewDatabaseExecuteError(result.Error, "failed to delete appointment")
	}
	if result.RowsAffected == 0 {
		return repository.ErrAppointmentNotFound
	}

	return nil
}

// toAppointmentDomain converts a GORM AppointmentModel to a domain entity.
func toAppointmentDomain(data *model.AppointmentModel) *entity.Appointment {
	if data == nil {
		return nil
	}

	return &entity.Appointment{
		ID:         data.ID,
		AccountID:  data.AccountID,
		ProviderID: data.ProviderID,
		StartsAt:   data.StartsAt,
		EndsAt:     data.EndsAt,
		Status:     entity.AppointmentStatus(data.Status),
		Notes:      data.Notes,
		CreatedAt:  data.CreatedAt,
		UpdatedAt:  data.UpdatedAt,
	}
}

// fromAppointmentDomain converts a domain entity to a GORM AppointmentModel.
func fromAppointmentDomain(data *entity.Appointment) *model.AppointmentModel {
	if data == nil {
		return nil
	}

	return &model.AppointmentModel{
		ID:         data.ID,
		AccountID:  data.AccountID,
		ProviderID: data.ProviderID,
		StartsAt:   data.StartsAt,
		EndsAt:     data.EndsAt,
		Status:     string(data.Status),
		Notes:      data.Notes,
		CreatedAt:  data.CreatedAt,
		UpdatedAt:  data.UpdatedAt,
	}
}
