package database

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/mediqueue/backend/internal/domain/entities"
	"github.com/mediqueue/backend/internal/domain/repositories"
	apperrors "github.com/mediqueue/backend/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var appointmentRowColumns = []string{
	"id", "patient_id", "patient_name", "patient_phone", "doctor_id", "doctor_name",
	"department", "date", "time_slot", "mode", "reason", "status", "notes",
	"created_at", "updated_at",
}

func TestAppointmentAdapter_List(t *testing.T) {
	client, mock := setupMockDB(t)
	adapter := NewAppointmentAdapter(client)
	date := time.Date(2024, time.June, 15, 0, 0, 0, 0, time.UTC)

	mock.ExpectQuery(`SELECT .* FROM "appointments" WHERE \("doctor_id" = \$1\) ORDER BY "created_at" ASC, "id" ASC`).
		WithArgs("dr_smith_cardio").
		WillReturnRows(sqlmock.NewRows(appointmentRowColumns).AddRow(
			"appt_1", "patient-1", "Alex Patient", nil, "dr_smith_cardio", "Dr. Smith",
			"Cardiology", date, "09:00 AM", "in-person", nil, "Completed",
			"Follow up in 6 months.", date, date,
		))

	appointments, err := adapter.List(context.Background(), repositories.AppointmentFilter{DoctorID: "dr_smith_cardio"})

	require.NoError(t, err)
	require.Len(t, appointments, 1)
	assert.Equal(t, entities.AppointmentStatusCompleted, appointments[0].Status)
	assert.Equal(t, entities.AppointmentModeInPerson, appointments[0].Mode)
	assert.Empty(t, appointments[0].PatientPhone)
	assert.Equal(t, "Follow up in 6 months.", appointments[0].Notes)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAppointmentAdapter_CreateAndUpdate(t *testing.T) {
	client, mock := setupMockDB(t)
	adapter := NewAppointmentAdapter(client)
	ctx := context.Background()

	appointment := &entities.Appointment{
		ID:        "a-1",
		PatientID: "patient-1",
		DoctorID:  "dr_lee_peds",
		Date:      time.Date(2024, time.July, 20, 0, 0, 0, 0, time.UTC),
		TimeSlot:  "10:00 AM",
		Mode:      entities.AppointmentModeTeleconsultation,
		Status:    entities.AppointmentStatusScheduled,
	}

	mock.ExpectExec(`INSERT INTO "appointments"`).WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectExec(`UPDATE "appointments" SET .* WHERE \("id" = \$\d+\)`).WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, adapter.Create(ctx, appointment))

	appointment.Status = entities.AppointmentStatusCompleted
	require.NoError(t, adapter.Update(ctx, appointment))
	assert.False(t, appointment.UpdatedAt.IsZero())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAppointmentAdapter_GetByID_NotFound(t *testing.T) {
	client, mock := setupMockDB(t)
	adapter := NewAppointmentAdapter(client)

	mock.ExpectQuery(`SELECT .* FROM "appointments"`).
		WithArgs("missing").
		WillReturnRows(sqlmock.NewRows(appointmentRowColumns))

	_, err := adapter.GetByID(context.Background(), "missing")
	assert.True(t, apperrors.IsNotFound(err))
}
