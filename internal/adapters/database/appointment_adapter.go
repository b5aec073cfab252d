package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/doug-martin/goqu/v9"
	"github.com/mediqueue/backend/internal/domain/entities"
	"github.com/mediqueue/backend/internal/domain/repositories"
	"github.com/mediqueue/backend/internal/infrastructure/clients/postgres"
	apperrors "github.com/mediqueue/backend/pkg/errors"
)

var appointmentColumns = []interface{}{
	"id", "patient_id", "patient_name", "patient_phone", "doctor_id", "doctor_name",
	"department", "date", "time_slot", "mode", "reason", "status", "notes",
	"created_at", "updated_at",
}

// AppointmentAdapter implements the AppointmentRepository interface
type AppointmentAdapter struct {
	client *postgres.Client
	db     *goqu.Database
}

// NewAppointmentAdapter creates a new appointment adapter
func NewAppointmentAdapter(client *postgres.Client) repositories.AppointmentRepository {
	return &AppointmentAdapter{
		client: client,
		db:     goqu.New("postgres", client.DB()),
	}
}

// Create creates a new appointment
func (a *AppointmentAdapter) Create(ctx context.Context, appointment *entities.Appointment) error {
	defer a.client.Observe(ctx, "appointment.create", time.Now())

	record := goqu.Record{
		"id":            appointment.ID,
		"patient_id":    appointment.PatientID,
		"patient_name":  appointment.PatientName,
		"patient_phone": appointment.PatientPhone,
		"doctor_id":     appointment.DoctorID,
		"doctor_name":   appointment.DoctorName,
		"department":    appointment.Department,
		"date":          appointment.Date,
		"time_slot":     appointment.TimeSlot,
		"mode":          string(appointment.Mode),
		"reason":        appointment.Reason,
		"status":        string(appointment.Status),
		"notes":         appointment.Notes,
		"created_at":    appointment.CreatedAt,
		"updated_at":    appointment.UpdatedAt,
	}

	query, args, err := a.db.Insert("appointments").Prepared(true).Rows(record).ToSQL()
	if err != nil {
		return apperrors.NewInternalError("failed to build insert query", err)
	}

	if _, err := a.client.DB().ExecContext(ctx, query, args...); err != nil {
		return apperrors.NewInternalError("failed to create appointment", err)
	}

	return nil
}

// GetByID retrieves an appointment by ID
func (a *AppointmentAdapter) GetByID(ctx context.Context, id string) (*entities.Appointment, error) {
	defer a.client.Observe(ctx, "appointment.get_by_id", time.Now())

	query, args, err := a.db.From("appointments").Prepared(true).
		Select(appointmentColumns...).
		Where(goqu.Ex{"id": id}).
		ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build query", err)
	}

	appointment, err := scanAppointment(a.client.DB().QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperrors.NewNotFoundError(fmt.Sprintf("appointment with id %s not found", id))
	}
	if err != nil {
		return nil, apperrors.NewInternalError("failed to get appointment", err)
	}

	return appointment, nil
}

// Update updates the mutable fields of an appointment
func (a *AppointmentAdapter) Update(ctx context.Context, appointment *entities.Appointment) error {
	defer a.client.Observe(ctx, "appointment.update", time.Now())

	appointment.UpdatedAt = time.Now().UTC()

	query, args, err := a.db.Update("appointments").Prepared(true).
		Set(goqu.Record{
			"status":     string(appointment.Status),
			"notes":      appointment.Notes,
			"date":       appointment.Date,
			"time_slot":  appointment.TimeSlot,
			"mode":       string(appointment.Mode),
			"updated_at": appointment.UpdatedAt,
		}).
		Where(goqu.Ex{"id": appointment.ID}).
		ToSQL()
	if err != nil {
		return apperrors.NewInternalError("failed to build update query", err)
	}

	result, err := a.client.DB().ExecContext(ctx, query, args...)
	if err != nil {
		return apperrors.NewInternalError("failed to update appointment", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return apperrors.NewInternalError("failed to get rows affected", err)
	}
	if rowsAffected == 0 {
		return apperrors.NewNotFoundError(fmt.Sprintf("appointment with id %s not found", appointment.ID))
	}

	return nil
}

// List retrieves appointments for a patient or doctor in booking order
func (a *AppointmentAdapter) List(ctx context.Context, filter repositories.AppointmentFilter) ([]*entities.Appointment, error) {
	defer a.client.Observe(ctx, "appointment.list", time.Now())

	ds := a.db.From("appointments").Prepared(true).Select(appointmentColumns...)

	if filter.PatientID != "" {
		ds = ds.Where(goqu.Ex{"patient_id": filter.PatientID})
	}
	if filter.DoctorID != "" {
		ds = ds.Where(goqu.Ex{"doctor_id": filter.DoctorID})
	}
	ds = ds.Order(goqu.I("created_at").Asc(), goqu.I("id").Asc())

	query, args, err := ds.ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build query", err)
	}

	rows, err := a.client.DB().QueryContext(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewInternalError("failed to list appointments", err)
	}
	defer rows.Close()

	appointments := make([]*entities.Appointment, 0)
	for rows.Next() {
		appointment, err := scanAppointment(rows)
		if err != nil {
			return nil, apperrors.NewInternalError("failed to scan appointment", err)
		}
		appointments = append(appointments, appointment)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewInternalError("failed to iterate appointments", err)
	}

	return appointments, nil
}

func scanAppointment(row rowScanner) (*entities.Appointment, error) {
	appointment := &entities.Appointment{}
	var mode, status string
	var patientPhone, reason, notes sql.NullString

	err := row.Scan(
		&appointment.ID,
		&appointment.PatientID,
		&appointment.PatientName,
		&patientPhone,
		&appointment.DoctorID,
		&appointment.DoctorName,
		&appointment.Department,
		&appointment.Date,
		&appointment.TimeSlot,
		&mode,
		&reason,
		&status,
		&notes,
		&appointment.CreatedAt,
		&appointment.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	appointment.PatientPhone = patientPhone.String
	appointment.Mode = entities.AppointmentMode(mode)
	appointment.Reason = reason.String
	appointment.Status = entities.AppointmentStatus(status)
	appointment.Notes = notes.String
	return appointment, nil
}
