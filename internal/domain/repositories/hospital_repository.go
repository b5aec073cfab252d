package repositories

import (
	"context"

	"github.com/mediqueue/backend/internal/domain/entities"
)

// AdmissionRepository stores inpatient admissions
type AdmissionRepository interface {
	// Create stores admission, assigning the next ADMnnn identifier when ID is empty
	Create(ctx context.Context, admission *entities.Admission) error
	GetByID(ctx context.Context, id string) (*entities.Admission, error)
	Update(ctx context.Context, admission *entities.Admission) error
	List(ctx context.Context) ([]*entities.Admission, error)
}

// AmbulanceRepository stores the ambulance fleet
type AmbulanceRepository interface {
	GetByID(ctx context.Context, id string) (*entities.Ambulance, error)
	Update(ctx context.Context, ambulance *entities.Ambulance) error
	List(ctx context.Context) ([]*entities.Ambulance, error)
}

// DoctorRepository stores the medical staff roster
type DoctorRepository interface {
	GetByID(ctx context.Context, id string) (*entities.Doctor, error)
	Update(ctx context.Context, doctor *entities.Doctor) error
	List(ctx context.Context) ([]*entities.Doctor, error)
	ListByDepartment(ctx context.Context, departmentID string) ([]*entities.Doctor, error)
}

// DepartmentRepository stores clinical departments
type DepartmentRepository interface {
	GetByID(ctx context.Context, id string) (*entities.Department, error)
	List(ctx context.Context) ([]*entities.Department, error)
}

// OPDQueueRepository stores outpatient token queues
type OPDQueueRepository interface {
	GetByID(ctx context.Context, id string) (*entities.OPDQueue, error)
	Update(ctx context.Context, queue *entities.OPDQueue) error
	List(ctx context.Context) ([]*entities.OPDQueue, error)
}
