package memory

import (
	"context"

	"github.com/mediqueue/backend/internal/domain/entities"
	"github.com/mediqueue/backend/internal/domain/repositories"
)

// AppointmentRepository implements repositories.AppointmentRepository in memory
type AppointmentRepository struct {
	store *store[entities.Appointment]
}

// NewAppointmentRepository creates an appointment repository holding seed
func NewAppointmentRepository(seed []*entities.Appointment) *AppointmentRepository {
	return &AppointmentRepository{
		store: newStore("appointment", func(a *entities.Appointment) string { return a.ID }, shallowClone[entities.Appointment], seed),
	}
}

// Create creates a new appointment
func (r *AppointmentRepository) Create(ctx context.Context, appointment *entities.Appointment) error {
	return r.store.insert(appointment)
}

// GetByID retrieves an appointment by ID
func (r *AppointmentRepository) GetByID(ctx context.Context, id string) (*entities.Appointment, error) {
	return r.store.get(id)
}

// Update updates an appointment
func (r *AppointmentRepository) Update(ctx context.Context, appointment *entities.Appointment) error {
	return r.store.update(appointment)
}

// List retrieves appointments matching filter in insertion order
func (r *AppointmentRepository) List(ctx context.Context, filter repositories.AppointmentFilter) ([]*entities.Appointment, error) {
	return r.store.list(func(a *entities.Appointment) bool {
		if filter.PatientID != "" && a.PatientID != filter.PatientID {
			return false
		}
		if filter.DoctorID != "" && a.DoctorID != filter.DoctorID {
			return false
		}
		return true
	}), nil
}
