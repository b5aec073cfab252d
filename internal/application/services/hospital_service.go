package services

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/mediqueue/backend/internal/domain/entities"
	"github.com/mediqueue/backend/internal/domain/filter"
	"github.com/mediqueue/backend/internal/domain/providers"
	"github.com/mediqueue/backend/internal/domain/repositories"
	"github.com/mediqueue/backend/internal/infrastructure/observability"
	apperrors "github.com/mediqueue/backend/pkg/errors"
)

// AdmissionService manages inpatient admissions
type AdmissionService struct {
	repo repositories.AdmissionRepository
	now  func() time.Time
}

// NewAdmissionService creates a new admission service
func NewAdmissionService(repo repositories.AdmissionRepository) *AdmissionService {
	return &AdmissionService{repo: repo, now: time.Now}
}

// List returns admissions, optionally narrowed to one status ("" or "all"
// returns everything)
func (s *AdmissionService) List(ctx context.Context, status string) ([]*entities.Admission, error) {
	admissions, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}

	status = strings.TrimSpace(status)
	if status == "" || strings.EqualFold(status, filter.StatusAll) {
		return admissions, nil
	}
	wanted, err := entities.ParseAdmissionStatus(status)
	if err != nil {
		return nil, apperrors.NewValidationError(err.Error())
	}

	out := make([]*entities.Admission, 0, len(admissions))
	for _, a := range admissions {
		if a.Status == wanted {
			out = append(out, a)
		}
	}
	return out, nil
}

// Admit records a new admission. The admission date defaults to today.
func (s *AdmissionService) Admit(ctx context.Context, req entities.AdmitRequest) (*entities.Admission, error) {
	admission := &entities.Admission{
		PatientName: strings.TrimSpace(req.PatientName),
		Department:  strings.TrimSpace(req.Department),
		BedNumber:   strings.TrimSpace(req.BedNumber),
		Status:      entities.AdmissionStatusAdmitted,
	}
	switch {
	case admission.PatientName == "":
		return nil, apperrors.NewValidationError("patient name is required")
	case admission.Department == "":
		return nil, apperrors.NewValidationError("department is required")
	case admission.BedNumber == "":
		return nil, apperrors.NewValidationError("bed number is required")
	}

	if date := strings.TrimSpace(req.AdmissionDate); date != "" {
		parsed, err := time.Parse(dateLayout, date)
		if err != nil {
			return nil, apperrors.NewValidationError("admission date must be YYYY-MM-DD")
		}
		admission.AdmissionDate = parsed
	} else {
		y, m, d := s.now().UTC().Date()
		admission.AdmissionDate = time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	}

	if err := s.repo.Create(ctx, admission); err != nil {
		return nil, err
	}
	return admission, nil
}

// Discharge marks an admission as discharged
func (s *AdmissionService) Discharge(ctx context.Context, id string) (*entities.Admission, error) {
	admission, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if admission.Status == entities.AdmissionStatusDischarged {
		return nil, apperrors.NewConflictError(fmt.Sprintf("admission %s is already discharged", id))
	}

	admission.Status = entities.AdmissionStatusDischarged
	if err := s.repo.Update(ctx, admission); err != nil {
		return nil, err
	}
	return admission, nil
}

// AmbulanceService manages the ambulance fleet
type AmbulanceService struct {
	repo repositories.AmbulanceRepository
}

// NewAmbulanceService creates a new ambulance service
func NewAmbulanceService(repo repositories.AmbulanceRepository) *AmbulanceService {
	return &AmbulanceService{repo: repo}
}

func (s *AmbulanceService) List(ctx context.Context) ([]*entities.Ambulance, error) {
	return s.repo.List(ctx)
}

// UpdateStatus replaces an ambulance's status
func (s *AmbulanceService) UpdateStatus(ctx context.Context, id, status string) (*entities.Ambulance, error) {
	parsed, err := entities.ParseAmbulanceStatus(status)
	if err != nil {
		return nil, apperrors.NewValidationError(err.Error())
	}
	ambulance, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	ambulance.Status = parsed
	if err := s.repo.Update(ctx, ambulance); err != nil {
		return nil, err
	}
	return ambulance, nil
}

// StaffService manages doctors and departments
type StaffService struct {
	doctors     repositories.DoctorRepository
	departments repositories.DepartmentRepository
	eventBus    providers.EventBus
	metrics     *observability.Metrics
}

// NewStaffService creates a new staff service
func NewStaffService(doctors repositories.DoctorRepository, departments repositories.DepartmentRepository) *StaffService {
	return &StaffService{doctors: doctors, departments: departments}
}

// WithEventBus makes doctor status changes visible to event subscribers
func (s *StaffService) WithEventBus(bus providers.EventBus, metrics *observability.Metrics) *StaffService {
	s.eventBus = bus
	s.metrics = metrics
	return s
}

func (s *StaffService) ListDoctors(ctx context.Context) ([]*entities.Doctor, error) {
	return s.doctors.List(ctx)
}

func (s *StaffService) ListDepartments(ctx context.Context) ([]*entities.Department, error) {
	return s.departments.List(ctx)
}

// UpdateDoctorStatus marks a doctor active or on leave
func (s *StaffService) UpdateDoctorStatus(ctx context.Context, id, status string) (*entities.Doctor, error) {
	parsed, err := entities.ParseDoctorStatus(status)
	if err != nil {
		return nil, apperrors.NewValidationError(err.Error())
	}
	doctor, err := s.doctors.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	previous := doctor.Status
	doctor.Status = parsed
	if err := s.doctors.Update(ctx, doctor); err != nil {
		return nil, err
	}

	if previous != parsed {
		publishEvent(ctx, s.eventBus, s.metrics, entities.NewFacilityEvent(doctor.ID, entities.FacilityEventTypeDoctorStatusChange, entities.Location{}, map[string]interface{}{
			"doctor_id":     doctor.ID,
			"department_id": doctor.DepartmentID,
			"status":        string(doctor.Status),
		}))
	}
	return doctor, nil
}

// QueueService manages OPD token queues
type QueueService struct {
	mu   sync.Mutex
	repo repositories.OPDQueueRepository
}

// NewQueueService creates a new queue service
func NewQueueService(repo repositories.OPDQueueRepository) *QueueService {
	return &QueueService{repo: repo}
}

func (s *QueueService) List(ctx context.Context) ([]*entities.OPDQueue, error) {
	return s.repo.List(ctx)
}

// Advance calls the next token. It fails with a conflict once every token
// of the day has been called.
func (s *QueueService) Advance(ctx context.Context, id string) (*entities.OPDQueue, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	queue, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if queue.CurrentToken >= queue.TotalTokens {
		return nil, apperrors.NewConflictError(fmt.Sprintf("all %d tokens for %s have been called", queue.TotalTokens, queue.Department))
	}
	queue.CurrentToken++
	if err := s.repo.Update(ctx, queue); err != nil {
		return nil, err
	}
	return queue, nil
}
