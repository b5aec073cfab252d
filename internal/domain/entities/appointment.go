package entities

import (
	"fmt"
	"strings"
	"time"
)

// AppointmentStatus represents the status of an appointment
type AppointmentStatus string

const (
	AppointmentStatusScheduled AppointmentStatus = "Scheduled"
	AppointmentStatusCompleted AppointmentStatus = "Completed"
	AppointmentStatusCanceled  AppointmentStatus = "Canceled"
)

var appointmentStatuses = []AppointmentStatus{
	AppointmentStatusScheduled,
	AppointmentStatusCompleted,
	AppointmentStatusCanceled,
}

// ParseAppointmentStatus matches value case-insensitively against the known statuses
func ParseAppointmentStatus(value string) (AppointmentStatus, error) {
	for _, status := range appointmentStatuses {
		if strings.EqualFold(strings.TrimSpace(value), string(status)) {
			return status, nil
		}
	}
	return "", fmt.Errorf("unknown appointment status %q", value)
}

// AppointmentMode is how the consultation takes place
type AppointmentMode string

const (
	AppointmentModeInPerson         AppointmentMode = "in-person"
	AppointmentModeTeleconsultation AppointmentMode = "teleconsultation"
)

// AppointmentModes lists the modes a patient can choose from
func AppointmentModes() []AppointmentMode {
	return []AppointmentMode{AppointmentModeInPerson, AppointmentModeTeleconsultation}
}

// ParseAppointmentMode matches value case-insensitively against the known modes
func ParseAppointmentMode(value string) (AppointmentMode, error) {
	for _, mode := range AppointmentModes() {
		if strings.EqualFold(strings.TrimSpace(value), string(mode)) {
			return mode, nil
		}
	}
	return "", fmt.Errorf("unknown appointment mode %q", value)
}

// Appointment represents an OPD consultation. Date holds the calendar day;
// TimeSlot holds the "hh:mm AM/PM" label chosen at booking.
type Appointment struct {
	ID           string            `json:"id" db:"id"`
	PatientID    string            `json:"patient_id" db:"patient_id"`
	PatientName  string            `json:"patient_name" db:"patient_name"`
	PatientPhone string            `json:"patient_phone,omitempty" db:"patient_phone"`
	DoctorID     string            `json:"doctor_id" db:"doctor_id"`
	DoctorName   string            `json:"doctor_name" db:"doctor_name"`
	Department   string            `json:"department" db:"department"`
	Date         time.Time         `json:"date" db:"date"`
	TimeSlot     string            `json:"time_slot" db:"time_slot"`
	Mode         AppointmentMode   `json:"mode" db:"mode"`
	Reason       string            `json:"reason,omitempty" db:"reason"`
	Status       AppointmentStatus `json:"status" db:"status"`
	Notes        string            `json:"notes,omitempty" db:"notes"`
	CreatedAt    time.Time         `json:"created_at" db:"created_at"`
	UpdatedAt    time.Time         `json:"updated_at" db:"updated_at"`
}

// BookingRequest carries the fields of the appointment booking form
type BookingRequest struct {
	DepartmentID string `json:"department_id"`
	DoctorID     string `json:"doctor_id"`
	Date         string `json:"date"`
	TimeSlot     string `json:"time_slot"`
	Mode         string `json:"mode"`
	Reason       string `json:"reason"`
	PatientPhone string `json:"patient_phone,omitempty"`
}

// BookingDepartment is a department offered on the booking form
type BookingDepartment struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// BookingDoctor is a doctor offered for a booking department
type BookingDoctor struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Label string `json:"label"`
}

// BookingOptions is everything the booking form needs to render its choices
type BookingOptions struct {
	Departments []BookingDepartment        `json:"departments"`
	Doctors     map[string][]BookingDoctor `json:"doctors"`
	TimeSlots   []string                   `json:"time_slots"`
	Modes       []AppointmentMode          `json:"modes"`
}
