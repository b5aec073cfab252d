package repositories

import (
	"context"

	"github.com/mediqueue/backend/internal/domain/entities"
)

// AppointmentRepository defines the interface for appointment data operations
type AppointmentRepository interface {
	// Create creates a new appointment
	Create(ctx context.Context, appointment *entities.Appointment) error

	// GetByID retrieves an appointment by ID
	GetByID(ctx context.Context, id string) (*entities.Appointment, error)

	// Update updates an appointment
	Update(ctx context.Context, appointment *entities.Appointment) error

	// List retrieves appointments matching filter, in storage order
	List(ctx context.Context, filter AppointmentFilter) ([]*entities.Appointment, error)
}

// AppointmentFilter defines filters for listing appointments. Empty fields
// are ignored.
type AppointmentFilter struct {
	PatientID string
	DoctorID  string
}
