package handlers

import (
	"context"
	"net/http"

	"github.com/mediqueue/backend/internal/domain/entities"
)

// BedService defines ward occupancy operations
type BedService interface {
	List(ctx context.Context) ([]*entities.Ward, error)
	UpdateOccupancy(ctx context.Context, id string, occupied, total int) (*entities.Ward, error)
}

// AdmissionService defines inpatient admission operations
type AdmissionService interface {
	List(ctx context.Context, status string) ([]*entities.Admission, error)
	Admit(ctx context.Context, req entities.AdmitRequest) (*entities.Admission, error)
	Discharge(ctx context.Context, id string) (*entities.Admission, error)
}

// AmbulanceService defines ambulance fleet operations
type AmbulanceService interface {
	List(ctx context.Context) ([]*entities.Ambulance, error)
	UpdateStatus(ctx context.Context, id, status string) (*entities.Ambulance, error)
}

// StaffService defines doctor and department operations
type StaffService interface {
	ListDoctors(ctx context.Context) ([]*entities.Doctor, error)
	ListDepartments(ctx context.Context) ([]*entities.Department, error)
	UpdateDoctorStatus(ctx context.Context, id, status string) (*entities.Doctor, error)
}

// QueueService defines OPD token queue operations
type QueueService interface {
	List(ctx context.Context) ([]*entities.OPDQueue, error)
	Advance(ctx context.Context, id string) (*entities.OPDQueue, error)
}

// HospitalHandler handles ward, admission, fleet, staff and queue requests
type HospitalHandler struct {
	beds       BedService
	admissions AdmissionService
	ambulances AmbulanceService
	staff      StaffService
	queues     QueueService
}

// NewHospitalHandler creates a new hospital handler
func NewHospitalHandler(beds BedService, admissions AdmissionService, ambulances AmbulanceService, staff StaffService, queues QueueService) *HospitalHandler {
	return &HospitalHandler{
		beds:       beds,
		admissions: admissions,
		ambulances: ambulances,
		staff:      staff,
		queues:     queues,
	}
}

type statusBody struct {
	Status string `json:"status"`
}

// ListBeds handles GET /api/beds
func (h *HospitalHandler) ListBeds(w http.ResponseWriter, r *http.Request) {
	wards, err := h.beds.List(r.Context())
	if err != nil {
		respondWithServiceError(w, r, err)
		return
	}
	respondWithJSON(w, http.StatusOK, map[string]interface{}{"wards": wards, "count": len(wards)})
}

// UpdateBeds handles PATCH /api/admin/beds/{id}
func (h *HospitalHandler) UpdateBeds(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Occupied *int `json:"occupied"`
		Total    *int `json:"total"`
	}
	if !decodeJSON(w, r, &body) {
		return
	}
	if body.Occupied == nil || body.Total == nil {
		respondWithError(w, http.StatusBadRequest, "occupied and total are required")
		return
	}

	ward, err := h.beds.UpdateOccupancy(r.Context(), r.PathValue("id"), *body.Occupied, *body.Total)
	if err != nil {
		respondWithServiceError(w, r, err)
		return
	}
	respondWithJSON(w, http.StatusOK, ward)
}

// ListAdmissions handles GET /api/admin/admissions?status=
func (h *HospitalHandler) ListAdmissions(w http.ResponseWriter, r *http.Request) {
	admissions, err := h.admissions.List(r.Context(), r.URL.Query().Get("status"))
	if err != nil {
		respondWithServiceError(w, r, err)
		return
	}
	respondWithJSON(w, http.StatusOK, map[string]interface{}{"admissions": admissions, "count": len(admissions)})
}

// Admit handles POST /api/admin/admissions
func (h *HospitalHandler) Admit(w http.ResponseWriter, r *http.Request) {
	var req entities.AdmitRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	admission, err := h.admissions.Admit(r.Context(), req)
	if err != nil {
		respondWithServiceError(w, r, err)
		return
	}
	respondWithJSON(w, http.StatusCreated, admission)
}

// Discharge handles POST /api/admin/admissions/{id}/discharge
func (h *HospitalHandler) Discharge(w http.ResponseWriter, r *http.Request) {
	admission, err := h.admissions.Discharge(r.Context(), r.PathValue("id"))
	if err != nil {
		respondWithServiceError(w, r, err)
		return
	}
	respondWithJSON(w, http.StatusOK, admission)
}

// ListAmbulances handles GET /api/admin/ambulances
func (h *HospitalHandler) ListAmbulances(w http.ResponseWriter, r *http.Request) {
	ambulances, err := h.ambulances.List(r.Context())
	if err != nil {
		respondWithServiceError(w, r, err)
		return
	}
	respondWithJSON(w, http.StatusOK, map[string]interface{}{"ambulances": ambulances, "count": len(ambulances)})
}

// UpdateAmbulanceStatus handles PATCH /api/admin/ambulances/{id}/status
func (h *HospitalHandler) UpdateAmbulanceStatus(w http.ResponseWriter, r *http.Request) {
	var body statusBody
	if !decodeJSON(w, r, &body) {
		return
	}

	ambulance, err := h.ambulances.UpdateStatus(r.Context(), r.PathValue("id"), body.Status)
	if err != nil {
		respondWithServiceError(w, r, err)
		return
	}
	respondWithJSON(w, http.StatusOK, ambulance)
}

// ListDoctors handles GET /api/admin/doctors
func (h *HospitalHandler) ListDoctors(w http.ResponseWriter, r *http.Request) {
	doctors, err := h.staff.ListDoctors(r.Context())
	if err != nil {
		respondWithServiceError(w, r, err)
		return
	}
	respondWithJSON(w, http.StatusOK, map[string]interface{}{"doctors": doctors, "count": len(doctors)})
}

// UpdateDoctorStatus handles PATCH /api/admin/doctors/{id}/status
func (h *HospitalHandler) UpdateDoctorStatus(w http.ResponseWriter, r *http.Request) {
	var body statusBody
	if !decodeJSON(w, r, &body) {
		return
	}

	doctor, err := h.staff.UpdateDoctorStatus(r.Context(), r.PathValue("id"), body.Status)
	if err != nil {
		respondWithServiceError(w, r, err)
		return
	}
	respondWithJSON(w, http.StatusOK, doctor)
}

// ListDepartments handles GET /api/admin/departments
func (h *HospitalHandler) ListDepartments(w http.ResponseWriter, r *http.Request) {
	departments, err := h.staff.ListDepartments(r.Context())
	if err != nil {
		respondWithServiceError(w, r, err)
		return
	}
	respondWithJSON(w, http.StatusOK, map[string]interface{}{"departments": departments, "count": len(departments)})
}

// ListQueues handles GET /api/admin/opd-queue
func (h *HospitalHandler) ListQueues(w http.ResponseWriter, r *http.Request) {
	queues, err := h.queues.List(r.Context())
	if err != nil {
		respondWithServiceError(w, r, err)
		return
	}
	respondWithJSON(w, http.StatusOK, map[string]interface{}{"queues": queues, "count": len(queues)})
}

// AdvanceQueue handles POST /api/admin/opd-queue/{id}/advance
func (h *HospitalHandler) AdvanceQueue(w http.ResponseWriter, r *http.Request) {
	queue, err := h.queues.Advance(r.Context(), r.PathValue("id"))
	if err != nil {
		respondWithServiceError(w, r, err)
		return
	}
	respondWithJSON(w, http.StatusOK, queue)
}
