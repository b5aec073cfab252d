package handlers_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/mediqueue/backend/internal/adapters/memory"
	"github.com/mediqueue/backend/internal/api/handlers"
	"github.com/mediqueue/backend/internal/application/services"
	"github.com/mediqueue/backend/internal/domain/entities"
	"github.com/mediqueue/backend/internal/seed"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	patient = entities.Session{UserID: seed.DemoPatientID, Role: entities.RolePatient, Name: seed.DemoPatientName}
	doctor  = entities.Session{UserID: seed.DemoDoctorID, Role: entities.RoleDoctor, Name: "Dr. Smith"}
)

func newAppointmentHandler() *handlers.AppointmentHandler {
	svc := services.NewAppointmentService(
		memory.NewAppointmentRepository(seed.Appointments(time.Now().UTC())),
		memory.NewDoctorRepository(seed.Doctors()),
		memory.NewDepartmentRepository(seed.Departments()),
		services.NewNotificationService(nil),
		seed.BookingDepartmentIDs,
		seed.TimeSlots,
		time.UTC,
	)
	return handlers.NewAppointmentHandler(svc)
}

func requestAs(session entities.Session, method, target, body string) *http.Request {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	return req.WithContext(entities.WithSession(req.Context(), session))
}

type appointmentList struct {
	Appointments []entities.Appointment `json:"appointments"`
	Count        int                    `json:"count"`
}

func TestAppointmentHandler_BookingOptions(t *testing.T) {
	handler := newAppointmentHandler()

	w := httptest.NewRecorder()
	handler.GetBookingOptions(w, httptest.NewRequest(http.MethodGet, "/api/booking/options", nil))

	require.Equal(t, http.StatusOK, w.Code)
	var options entities.BookingOptions
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &options))
	assert.Len(t, options.Departments, 5)
	assert.Len(t, options.TimeSlots, 10)
	assert.Contains(t, options.Doctors, "pediatrics")
}

func TestAppointmentHandler_DepartmentDoctors(t *testing.T) {
	handler := newAppointmentHandler()

	req := httptest.NewRequest(http.MethodGet, "/api/departments/neurology/doctors", nil)
	req.SetPathValue("id", "neurology")
	w := httptest.NewRecorder()
	handler.GetDepartmentDoctors(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Dr. White (Neurology)")
	assert.NotContains(t, w.Body.String(), "Sarah Green")

	req = httptest.NewRequest(http.MethodGet, "/api/departments/oncology/doctors", nil)
	req.SetPathValue("id", "oncology")
	w = httptest.NewRecorder()
	handler.GetDepartmentDoctors(w, req)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestAppointmentHandler_BookAppointment(t *testing.T) {
	handler := newAppointmentHandler()
	tomorrow := time.Now().UTC().AddDate(0, 0, 1).Format("2006-01-02")

	t.Run("created", func(t *testing.T) {
		body := `{"department_id":"pediatrics","doctor_id":"dr_davis_peds","date":"` + tomorrow +
			`","time_slot":"10:30 AM","mode":"in-person","reason":"Child has a persistent cough"}`

		w := httptest.NewRecorder()
		handler.BookAppointment(w, requestAs(patient, http.MethodPost, "/api/appointments", body))

		require.Equal(t, http.StatusCreated, w.Code)
		var appointment entities.Appointment
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &appointment))
		assert.Equal(t, "Dr. Davis", appointment.DoctorName)
		assert.Equal(t, entities.AppointmentStatusScheduled, appointment.Status)
	})

	t.Run("inline validation message", func(t *testing.T) {
		body := `{"department_id":"pediatrics","doctor_id":"dr_davis_peds","date":"` + tomorrow +
			`","time_slot":"10:30 AM","mode":"in-person","reason":"cough"}`

		w := httptest.NewRecorder()
		handler.BookAppointment(w, requestAs(patient, http.MethodPost, "/api/appointments", body))

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), "at least 10 characters")
	})
}

func TestAppointmentHandler_History(t *testing.T) {
	handler := newAppointmentHandler()

	w := httptest.NewRecorder()
	handler.GetHistory(w, requestAs(patient, http.MethodGet, "/api/appointments/history?status=Completed&date=2024-06-15", ""))

	require.Equal(t, http.StatusOK, w.Code)
	var list appointmentList
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &list))
	require.Equal(t, 1, list.Count)
	assert.Equal(t, "appt_1", list.Appointments[0].ID)

	w = httptest.NewRecorder()
	handler.GetHistory(w, requestAs(patient, http.MethodGet, "/api/appointments/history?date=15-06-2024", ""))
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestAppointmentHandler_ScheduleDefaultsToScheduled(t *testing.T) {
	handler := newAppointmentHandler()

	w := httptest.NewRecorder()
	handler.GetSchedule(w, requestAs(doctor, http.MethodGet, "/api/doctor/schedule", ""))

	require.Equal(t, http.StatusOK, w.Code)
	var list appointmentList
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &list))
	require.Equal(t, 4, list.Count)
	assert.Equal(t, "appt_doc_1", list.Appointments[0].ID)
	assert.Equal(t, "appt_doc_6", list.Appointments[3].ID)
}

func TestAppointmentHandler_UpdateStatusAndNotes(t *testing.T) {
	handler := newAppointmentHandler()

	req := requestAs(doctor, http.MethodPatch, "/api/appointments/appt_doc_2/status", `{"status":"Canceled"}`)
	req.SetPathValue("id", "appt_doc_2")
	w := httptest.NewRecorder()
	handler.UpdateStatus(w, req)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"status":"Canceled"`)

	other := entities.Session{UserID: "dr_jones_cardio", Role: entities.RoleDoctor}
	req = requestAs(other, http.MethodPatch, "/api/appointments/appt_doc_2/notes", `{"notes":"x"}`)
	req.SetPathValue("id", "appt_doc_2")
	w = httptest.NewRecorder()
	handler.UpdateNotes(w, req)
	assert.Equal(t, http.StatusForbidden, w.Code)
}
