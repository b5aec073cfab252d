package routes

import (
	"net/http"

	"github.com/mediqueue/backend/internal/api/handlers"
	"github.com/mediqueue/backend/internal/api/middleware"
	"github.com/mediqueue/backend/internal/domain/entities"
	"github.com/mediqueue/backend/internal/infrastructure/observability"
)

// Handlers groups every HTTP handler the router mounts
type Handlers struct {
	Facility    *handlers.FacilityHandler
	Geolocation *handlers.GeolocationHandler
	Appointment *handlers.AppointmentHandler
	Hospital    *handlers.HospitalHandler
	AI          *handlers.AIHandler
	Emergency   *handlers.EmergencyHandler
	Session     *handlers.SessionHandler
	SSE         *handlers.SSEHandler
}

// Router holds all route handlers
type Router struct {
	mux      *http.ServeMux
	handlers Handlers

	sessions        middleware.TokenParser
	cacheMiddleware *middleware.CacheMiddleware
	allowedOrigins  []string
	metrics         *observability.Metrics
}

// NewRouter creates a new router. cacheMiddleware may be nil when Redis is
// not configured.
func NewRouter(
	h Handlers,
	sessions middleware.TokenParser,
	cacheMiddleware *middleware.CacheMiddleware,
	allowedOrigins []string,
	metrics *observability.Metrics,
) *Router {
	return &Router{
		mux:             http.NewServeMux(),
		handlers:        h,
		sessions:        sessions,
		cacheMiddleware: cacheMiddleware,
		allowedOrigins:  allowedOrigins,
		metrics:         metrics,
	}
}

// handle registers fn for pattern, restricted to roles when any are given
func (r *Router) handle(pattern string, fn http.HandlerFunc, roles ...entities.Role) {
	var h http.Handler = fn
	if len(roles) > 0 {
		h = middleware.RequireRole(roles...)(h)
	}
	r.mux.Handle(pattern, h)
}

// SetupRoutes configures all application routes
func (r *Router) SetupRoutes() http.Handler {
	const (
		patient = entities.RolePatient
		doctor  = entities.RoleDoctor
		admin   = entities.RoleAdmin
	)

	r.mux.HandleFunc("GET /health", func(w http.ResponseWriter, req *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("OK"))
	})

	// Session and navigation
	r.handle("GET /api/session", r.handlers.Session.GetSession)
	r.handle("GET /api/navigation", r.handlers.Session.GetNavigation)

	// Facility directory
	r.handle("GET /api/hospitals/search", r.handlers.Facility.SearchHospitals)
	r.handle("GET /api/hospitals/nearby", r.handlers.Geolocation.NearbyHospitals)
	r.handle("GET /api/pharmacies/search", r.handlers.Facility.SearchPharmacies)
	r.handle("GET /api/facilities/{id}", r.handlers.Facility.GetFacility)
	r.handle("GET /api/facilities/{id}/open-status", r.handlers.Facility.GetOpenStatus)
	r.handle("POST /api/facilities", r.handlers.Facility.CreateFacility, admin)
	r.handle("GET /api/geocode", r.handlers.Geolocation.Geocode)

	// Appointments
	r.handle("GET /api/booking/options", r.handlers.Appointment.GetBookingOptions)
	r.handle("GET /api/departments/{id}/doctors", r.handlers.Appointment.GetDepartmentDoctors)
	r.handle("POST /api/appointments", r.handlers.Appointment.BookAppointment, patient)
	r.handle("GET /api/appointments/history", r.handlers.Appointment.GetHistory, patient)
	r.handle("GET /api/doctor/schedule", r.handlers.Appointment.GetSchedule, doctor)
	r.handle("PATCH /api/appointments/{id}/status", r.handlers.Appointment.UpdateStatus, doctor, admin)
	r.handle("PATCH /api/appointments/{id}/notes", r.handlers.Appointment.UpdateNotes, doctor)

	// Beds and hospital administration
	r.handle("GET /api/beds", r.handlers.Hospital.ListBeds)
	r.handle("PATCH /api/admin/beds/{id}", r.handlers.Hospital.UpdateBeds, admin)
	r.handle("GET /api/admin/admissions", r.handlers.Hospital.ListAdmissions, admin)
	r.handle("POST /api/admin/admissions", r.handlers.Hospital.Admit, admin)
	r.handle("POST /api/admin/admissions/{id}/discharge", r.handlers.Hospital.Discharge, admin)
	r.handle("GET /api/admin/ambulances", r.handlers.Hospital.ListAmbulances, admin)
	r.handle("PATCH /api/admin/ambulances/{id}/status", r.handlers.Hospital.UpdateAmbulanceStatus, admin)
	r.handle("GET /api/admin/doctors", r.handlers.Hospital.ListDoctors, admin)
	r.handle("PATCH /api/admin/doctors/{id}/status", r.handlers.Hospital.UpdateDoctorStatus, admin)
	r.handle("GET /api/admin/departments", r.handlers.Hospital.ListDepartments, admin)
	r.handle("GET /api/admin/opd-queue", r.handlers.Hospital.ListQueues, admin)
	r.handle("POST /api/admin/opd-queue/{id}/advance", r.handlers.Hospital.AdvanceQueue, admin)

	// Assistant flows
	r.handle("POST /api/symptom-check", r.handlers.AI.CheckSymptoms)
	r.handle("POST /api/admin/slot-suggestions", r.handlers.AI.SuggestSlots, admin)

	// Emergency and live updates
	r.handle("POST /api/emergency/sos", r.handlers.Emergency.RaiseSOS, patient)
	r.handle("GET /api/stream/facilities", r.handlers.SSE.StreamFacilityUpdates)

	// Middleware is applied inside out; CORS ends up outermost so cache hits
	// still carry CORS headers.
	var handler http.Handler = r.mux
	if r.cacheMiddleware != nil {
		handler = r.cacheMiddleware.Middleware(handler)
	}
	handler = middleware.CacheControl(middleware.DefaultCacheRoutes())(handler)
	handler = middleware.SessionMiddleware(r.sessions)(handler)
	handler = middleware.LoggingMiddleware(handler)
	handler = middleware.ObservabilityMiddleware(r.metrics)(handler)
	handler = middleware.CORSMiddleware(r.allowedOrigins)(handler)

	return handler
}
