package handlers

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/mediqueue/backend/internal/domain/entities"
	"github.com/mediqueue/backend/internal/domain/filter"
)

// AppointmentService defines the interface for appointment operations
type AppointmentService interface {
	BookingOptions(ctx context.Context) (*entities.BookingOptions, error)
	DoctorsForDepartment(ctx context.Context, departmentID string) ([]entities.BookingDoctor, error)
	Book(ctx context.Context, session entities.Session, req entities.BookingRequest) (*entities.Appointment, error)
	History(ctx context.Context, session entities.Session, f filter.HistoryFilter) ([]*entities.Appointment, error)
	Schedule(ctx context.Context, session entities.Session, status string) ([]*entities.Appointment, error)
	UpdateStatus(ctx context.Context, session entities.Session, id, status string) (*entities.Appointment, error)
	UpdateNotes(ctx context.Context, session entities.Session, id, notes string) (*entities.Appointment, error)
}

// AppointmentHandler handles appointment requests
type AppointmentHandler struct {
	service AppointmentService
}

// NewAppointmentHandler creates a new appointment handler
func NewAppointmentHandler(service AppointmentService) *AppointmentHandler {
	return &AppointmentHandler{
		service: service,
	}
}

// GetBookingOptions handles GET /api/booking/options
func (h *AppointmentHandler) GetBookingOptions(w http.ResponseWriter, r *http.Request) {
	options, err := h.service.BookingOptions(r.Context())
	if err != nil {
		respondWithServiceError(w, r, err)
		return
	}
	respondWithJSON(w, http.StatusOK, options)
}

// GetDepartmentDoctors handles GET /api/departments/{id}/doctors
func (h *AppointmentHandler) GetDepartmentDoctors(w http.ResponseWriter, r *http.Request) {
	doctors, err := h.service.DoctorsForDepartment(r.Context(), r.PathValue("id"))
	if err != nil {
		respondWithServiceError(w, r, err)
		return
	}
	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"doctors": doctors,
		"count":   len(doctors),
	})
}

// BookAppointment handles POST /api/appointments
func (h *AppointmentHandler) BookAppointment(w http.ResponseWriter, r *http.Request) {
	var req entities.BookingRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	appointment, err := h.service.Book(r.Context(), entities.SessionFromContext(r.Context()), req)
	if err != nil {
		respondWithServiceError(w, r, err)
		return
	}
	respondWithJSON(w, http.StatusCreated, appointment)
}

// GetHistory handles GET /api/appointments/history?status=&date=&q=
func (h *AppointmentHandler) GetHistory(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	f := filter.HistoryFilter{
		Status: query.Get("status"),
		Query:  query.Get("q"),
	}
	if raw := strings.TrimSpace(query.Get("date")); raw != "" {
		date, err := time.Parse("2006-01-02", raw)
		if err != nil {
			respondWithError(w, http.StatusBadRequest, "invalid date format (use YYYY-MM-DD)")
			return
		}
		f.Date = &date
	}

	appointments, err := h.service.History(r.Context(), entities.SessionFromContext(r.Context()), f)
	if err != nil {
		respondWithServiceError(w, r, err)
		return
	}
	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"appointments": appointments,
		"count":        len(appointments),
	})
}

// GetSchedule handles GET /api/doctor/schedule?status=
func (h *AppointmentHandler) GetSchedule(w http.ResponseWriter, r *http.Request) {
	status := r.URL.Query().Get("status")
	if status == "" {
		status = string(entities.AppointmentStatusScheduled)
	}

	appointments, err := h.service.Schedule(r.Context(), entities.SessionFromContext(r.Context()), status)
	if err != nil {
		respondWithServiceError(w, r, err)
		return
	}
	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"appointments": appointments,
		"count":        len(appointments),
	})
}

// UpdateStatus handles PATCH /api/appointments/{id}/status
func (h *AppointmentHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Status string `json:"status"`
	}
	if !decodeJSON(w, r, &body) {
		return
	}

	appointment, err := h.service.UpdateStatus(r.Context(), entities.SessionFromContext(r.Context()), r.PathValue("id"), body.Status)
	if err != nil {
		respondWithServiceError(w, r, err)
		return
	}
	respondWithJSON(w, http.StatusOK, appointment)
}

// UpdateNotes handles PATCH /api/appointments/{id}/notes
func (h *AppointmentHandler) UpdateNotes(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Notes string `json:"notes"`
	}
	if !decodeJSON(w, r, &body) {
		return
	}

	appointment, err := h.service.UpdateNotes(r.Context(), entities.SessionFromContext(r.Context()), r.PathValue("id"), body.Notes)
	if err != nil {
		respondWithServiceError(w, r, err)
		return
	}
	respondWithJSON(w, http.StatusOK, appointment)
}
