package services

import (
	"context"
	"fmt"
	"slices"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/mediqueue/backend/internal/domain/entities"
	"github.com/mediqueue/backend/internal/domain/filter"
	"github.com/mediqueue/backend/internal/domain/repositories"
	"github.com/mediqueue/backend/internal/infrastructure/observability"
	apperrors "github.com/mediqueue/backend/pkg/errors"
)

const (
	dateLayout        = "2006-01-02"
	minReasonLength   = 10
	maxReasonLength   = 500
	reasonTooShortMsg = "Please provide a brief reason for your visit (at least 10 characters)."
	reasonTooLongMsg  = "Reason cannot exceed 500 characters."
)

// AppointmentService handles booking and the appointment lists of patients
// and doctors
type AppointmentService struct {
	repo          repositories.AppointmentRepository
	doctors       repositories.DoctorRepository
	departments   repositories.DepartmentRepository
	notifications *NotificationService
	departmentIDs []string
	timeSlots     []string
	location      *time.Location
	now           func() time.Time
}

// NewAppointmentService creates a new appointment service. departmentIDs
// lists the bookable departments in display order and timeSlots the offered
// slot labels.
func NewAppointmentService(
	repo repositories.AppointmentRepository,
	doctors repositories.DoctorRepository,
	departments repositories.DepartmentRepository,
	notifications *NotificationService,
	departmentIDs []string,
	timeSlots []string,
	location *time.Location,
) *AppointmentService {
	if location == nil {
		location = time.UTC
	}
	return &AppointmentService{
		repo:          repo,
		doctors:       doctors,
		departments:   departments,
		notifications: notifications,
		departmentIDs: departmentIDs,
		timeSlots:     timeSlots,
		location:      location,
		now:           time.Now,
	}
}

func bookingDoctor(doctor *entities.Doctor, department *entities.Department) entities.BookingDoctor {
	return entities.BookingDoctor{
		ID:    doctor.ID,
		Name:  doctor.Name,
		Label: fmt.Sprintf("%s (%s)", doctor.Name, department.Name),
	}
}

// BookingOptions returns the choices offered on the booking form
func (s *AppointmentService) BookingOptions(ctx context.Context) (*entities.BookingOptions, error) {
	options := &entities.BookingOptions{
		Departments: make([]entities.BookingDepartment, 0, len(s.departmentIDs)),
		Doctors:     make(map[string][]entities.BookingDoctor, len(s.departmentIDs)),
		TimeSlots:   slices.Clone(s.timeSlots),
		Modes:       entities.AppointmentModes(),
	}

	for _, id := range s.departmentIDs {
		department, err := s.departments.GetByID(ctx, id)
		if err != nil {
			return nil, err
		}
		doctors, err := s.activeDoctors(ctx, department)
		if err != nil {
			return nil, err
		}
		options.Departments = append(options.Departments, entities.BookingDepartment{ID: department.ID, Name: department.Name})
		options.Doctors[department.ID] = doctors
	}
	return options, nil
}

// DoctorsForDepartment lists the bookable doctors of a department
func (s *AppointmentService) DoctorsForDepartment(ctx context.Context, departmentID string) ([]entities.BookingDoctor, error) {
	department, err := s.departments.GetByID(ctx, departmentID)
	if err != nil {
		return nil, err
	}
	return s.activeDoctors(ctx, department)
}

func (s *AppointmentService) activeDoctors(ctx context.Context, department *entities.Department) ([]entities.BookingDoctor, error) {
	doctors, err := s.doctors.ListByDepartment(ctx, department.ID)
	if err != nil {
		return nil, err
	}
	out := make([]entities.BookingDoctor, 0, len(doctors))
	for _, doctor := range doctors {
		if doctor.Status == entities.DoctorStatusActive {
			out = append(out, bookingDoctor(doctor, department))
		}
	}
	return out, nil
}

// Book validates a booking request and schedules the appointment for the
// session's patient. A confirmation SMS is attempted when a phone number is
// given; its outcome never fails the booking.
func (s *AppointmentService) Book(ctx context.Context, session entities.Session, req entities.BookingRequest) (*entities.Appointment, error) {
	if !session.HasRole(entities.RolePatient) || session.UserID == "" {
		return nil, apperrors.NewForbiddenError("only patients can book appointments")
	}

	if strings.TrimSpace(req.DepartmentID) == "" || !slices.Contains(s.departmentIDs, req.DepartmentID) {
		return nil, apperrors.NewValidationError("Please select a department.")
	}
	department, err := s.departments.GetByID(ctx, req.DepartmentID)
	if err != nil {
		if apperrors.IsNotFound(err) {
			return nil, apperrors.NewValidationError("Please select a department.")
		}
		return nil, err
	}

	if strings.TrimSpace(req.DoctorID) == "" {
		return nil, apperrors.NewValidationError("Please select a doctor.")
	}
	doctor, err := s.doctors.GetByID(ctx, req.DoctorID)
	if err != nil {
		if apperrors.IsNotFound(err) {
			return nil, apperrors.NewValidationError("Please select a doctor.")
		}
		return nil, err
	}
	if doctor.DepartmentID != department.ID {
		return nil, apperrors.NewValidationError(fmt.Sprintf("%s does not consult in %s.", doctor.Name, department.Name))
	}
	if doctor.Status != entities.DoctorStatusActive {
		return nil, apperrors.NewValidationError(fmt.Sprintf("%s is not available for appointments.", doctor.Name))
	}

	if strings.TrimSpace(req.Date) == "" {
		return nil, apperrors.NewValidationError("Please select a date for your appointment.")
	}
	date, err := time.ParseInLocation(dateLayout, strings.TrimSpace(req.Date), time.UTC)
	if err != nil {
		return nil, apperrors.NewValidationError("Please select a date for your appointment.")
	}
	y, m, d := s.now().In(s.location).Date()
	if date.Before(time.Date(y, m, d, 0, 0, 0, 0, time.UTC)) {
		return nil, apperrors.NewValidationError("Appointment date cannot be in the past.")
	}

	if !slices.Contains(s.timeSlots, req.TimeSlot) {
		return nil, apperrors.NewValidationError("Please select a time slot.")
	}

	mode, err := entities.ParseAppointmentMode(req.Mode)
	if err != nil {
		return nil, apperrors.NewValidationError("Please select an appointment mode.")
	}

	reason := strings.TrimSpace(req.Reason)
	switch n := len([]rune(reason)); {
	case n < minReasonLength:
		return nil, apperrors.NewValidationError(reasonTooShortMsg)
	case n > maxReasonLength:
		return nil, apperrors.NewValidationError(reasonTooLongMsg)
	}

	now := s.now().UTC()
	appointment := &entities.Appointment{
		ID:           uuid.NewString(),
		PatientID:    session.UserID,
		PatientName:  session.Name,
		PatientPhone: strings.TrimSpace(req.PatientPhone),
		DoctorID:     doctor.ID,
		DoctorName:   doctor.Name,
		Department:   department.Name,
		Date:         date,
		TimeSlot:     req.TimeSlot,
		Mode:         mode,
		Reason:       reason,
		Status:       entities.AppointmentStatusScheduled,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.repo.Create(ctx, appointment); err != nil {
		return nil, err
	}

	observability.LoggerFromContext(ctx).Info().
		Str("appointment_id", appointment.ID).
		Str("doctor_id", doctor.ID).
		Str("date", req.Date).
		Str("slot", req.TimeSlot).
		Msg("Appointment booked")

	s.notifications.SendBookingConfirmation(ctx, appointment)
	return appointment, nil
}

// History returns the session patient's appointments matching f, newest first
func (s *AppointmentService) History(ctx context.Context, session entities.Session, f filter.HistoryFilter) ([]*entities.Appointment, error) {
	if session.UserID == "" {
		return nil, apperrors.NewUnauthorizedError("sign in to view your appointments")
	}
	appointments, err := s.repo.List(ctx, repositories.AppointmentFilter{PatientID: session.UserID})
	if err != nil {
		return nil, err
	}

	history := filter.FilterHistory(appointments, f)
	sort.SliceStable(history, func(i, j int) bool {
		if !history[i].Date.Equal(history[j].Date) {
			return history[i].Date.After(history[j].Date)
		}
		return filter.SlotSortKey(history[i].TimeSlot) > filter.SlotSortKey(history[j].TimeSlot)
	})
	return history, nil
}

// Schedule returns the session doctor's appointments with the given status,
// in chronological order
func (s *AppointmentService) Schedule(ctx context.Context, session entities.Session, status string) ([]*entities.Appointment, error) {
	if session.UserID == "" {
		return nil, apperrors.NewUnauthorizedError("sign in to view your schedule")
	}
	appointments, err := s.repo.List(ctx, repositories.AppointmentFilter{DoctorID: session.UserID})
	if err != nil {
		return nil, err
	}
	return filter.FilterSchedule(appointments, status), nil
}

// UpdateStatus replaces an appointment's status. Doctors may only update
// their own appointments.
func (s *AppointmentService) UpdateStatus(ctx context.Context, session entities.Session, id, status string) (*entities.Appointment, error) {
	parsed, err := entities.ParseAppointmentStatus(status)
	if err != nil {
		return nil, apperrors.NewValidationError(fmt.Sprintf("status must be one of %s, %s, %s",
			entities.AppointmentStatusScheduled, entities.AppointmentStatusCompleted, entities.AppointmentStatusCanceled))
	}

	appointment, err := s.ownedAppointment(ctx, session, id)
	if err != nil {
		return nil, err
	}

	appointment.Status = parsed
	appointment.UpdatedAt = s.now().UTC()
	if err := s.repo.Update(ctx, appointment); err != nil {
		return nil, err
	}
	return appointment, nil
}

// UpdateNotes replaces the consultation notes of an appointment
func (s *AppointmentService) UpdateNotes(ctx context.Context, session entities.Session, id, notes string) (*entities.Appointment, error) {
	appointment, err := s.ownedAppointment(ctx, session, id)
	if err != nil {
		return nil, err
	}

	appointment.Notes = strings.TrimSpace(notes)
	appointment.UpdatedAt = s.now().UTC()
	if err := s.repo.Update(ctx, appointment); err != nil {
		return nil, err
	}
	return appointment, nil
}

func (s *AppointmentService) ownedAppointment(ctx context.Context, session entities.Session, id string) (*entities.Appointment, error) {
	appointment, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if session.Role == entities.RoleDoctor && appointment.DoctorID != session.UserID {
		return nil, apperrors.NewForbiddenError("appointment belongs to another doctor")
	}
	return appointment, nil
}
