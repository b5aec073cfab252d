package memory

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/mediqueue/backend/internal/domain/entities"
)

// WardRepository implements repositories.WardRepository in memory
type WardRepository struct {
	store *store[entities.Ward]
}

// NewWardRepository creates a ward repository holding seed
func NewWardRepository(seed []*entities.Ward) *WardRepository {
	return &WardRepository{store: newStore("ward", func(w *entities.Ward) string { return w.ID }, shallowClone[entities.Ward], seed)}
}

func (r *WardRepository) List(ctx context.Context) ([]*entities.Ward, error) {
	return r.store.list(nil), nil
}

func (r *WardRepository) GetByID(ctx context.Context, id string) (*entities.Ward, error) {
	return r.store.get(id)
}

func (r *WardRepository) Update(ctx context.Context, ward *entities.Ward) error {
	return r.store.update(ward)
}

const admissionIDPrefix = "ADM"

// AdmissionRepository implements repositories.AdmissionRepository in memory
type AdmissionRepository struct {
	store *store[entities.Admission]
}

// NewAdmissionRepository creates an admission repository holding seed
func NewAdmissionRepository(seed []*entities.Admission) *AdmissionRepository {
	return &AdmissionRepository{store: newStore("admission", func(a *entities.Admission) string { return a.ID }, shallowClone[entities.Admission], seed)}
}

// Create stores admission. An empty ID is replaced with the next ADMnnn
// identifier, one past the highest numbered admission on record.
func (r *AdmissionRepository) Create(ctx context.Context, admission *entities.Admission) error {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	if admission.ID == "" {
		highest := 0
		for _, existing := range s.items {
			n, err := strconv.Atoi(strings.TrimPrefix(existing.ID, admissionIDPrefix))
			if err == nil && n > highest {
				highest = n
			}
		}
		admission.ID = fmt.Sprintf("%s%03d", admissionIDPrefix, highest+1)
	}
	return s.insertLocked(admission)
}

func (r *AdmissionRepository) GetByID(ctx context.Context, id string) (*entities.Admission, error) {
	return r.store.get(id)
}

func (r *AdmissionRepository) Update(ctx context.Context, admission *entities.Admission) error {
	return r.store.update(admission)
}

func (r *AdmissionRepository) List(ctx context.Context) ([]*entities.Admission, error) {
	return r.store.list(nil), nil
}

// AmbulanceRepository implements repositories.AmbulanceRepository in memory
type AmbulanceRepository struct {
	store *store[entities.Ambulance]
}

// NewAmbulanceRepository creates an ambulance repository holding seed
func NewAmbulanceRepository(seed []*entities.Ambulance) *AmbulanceRepository {
	return &AmbulanceRepository{store: newStore("ambulance", func(a *entities.Ambulance) string { return a.ID }, shallowClone[entities.Ambulance], seed)}
}

func (r *AmbulanceRepository) GetByID(ctx context.Context, id string) (*entities.Ambulance, error) {
	return r.store.get(id)
}

func (r *AmbulanceRepository) Update(ctx context.Context, ambulance *entities.Ambulance) error {
	return r.store.update(ambulance)
}

func (r *AmbulanceRepository) List(ctx context.Context) ([]*entities.Ambulance, error) {
	return r.store.list(nil), nil
}

// DoctorRepository implements repositories.DoctorRepository in memory
type DoctorRepository struct {
	store *store[entities.Doctor]
}

// NewDoctorRepository creates a doctor repository holding seed
func NewDoctorRepository(seed []*entities.Doctor) *DoctorRepository {
	return &DoctorRepository{store: newStore("doctor", func(d *entities.Doctor) string { return d.ID }, shallowClone[entities.Doctor], seed)}
}

func (r *DoctorRepository) GetByID(ctx context.Context, id string) (*entities.Doctor, error) {
	return r.store.get(id)
}

func (r *DoctorRepository) Update(ctx context.Context, doctor *entities.Doctor) error {
	return r.store.update(doctor)
}

func (r *DoctorRepository) List(ctx context.Context) ([]*entities.Doctor, error) {
	return r.store.list(nil), nil
}

func (r *DoctorRepository) ListByDepartment(ctx context.Context, departmentID string) ([]*entities.Doctor, error) {
	return r.store.list(func(d *entities.Doctor) bool { return d.DepartmentID == departmentID }), nil
}

// DepartmentRepository implements repositories.DepartmentRepository in memory
type DepartmentRepository struct {
	store *store[entities.Department]
}

// NewDepartmentRepository creates a department repository holding seed
func NewDepartmentRepository(seed []*entities.Department) *DepartmentRepository {
	return &DepartmentRepository{store: newStore("department", func(d *entities.Department) string { return d.ID }, shallowClone[entities.Department], seed)}
}

func (r *DepartmentRepository) GetByID(ctx context.Context, id string) (*entities.Department, error) {
	return r.store.get(id)
}

func (r *DepartmentRepository) List(ctx context.Context) ([]*entities.Department, error) {
	return r.store.list(nil), nil
}

// OPDQueueRepository implements repositories.OPDQueueRepository in memory
type OPDQueueRepository struct {
	store *store[entities.OPDQueue]
}

// NewOPDQueueRepository creates a queue repository holding seed
func NewOPDQueueRepository(seed []*entities.OPDQueue) *OPDQueueRepository {
	return &OPDQueueRepository{store: newStore("queue", func(q *entities.OPDQueue) string { return q.ID }, shallowClone[entities.OPDQueue], seed)}
}

func (r *OPDQueueRepository) GetByID(ctx context.Context, id string) (*entities.OPDQueue, error) {
	return r.store.get(id)
}

func (r *OPDQueueRepository) Update(ctx context.Context, queue *entities.OPDQueue) error {
	return r.store.update(queue)
}

func (r *OPDQueueRepository) List(ctx context.Context) ([]*entities.OPDQueue, error) {
	return r.store.list(nil), nil
}
