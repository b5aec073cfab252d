package services

import (
	"context"
	"testing"
	"time"

	"github.com/mediqueue/backend/internal/adapters/memory"
	"github.com/mediqueue/backend/internal/domain/entities"
	"github.com/mediqueue/backend/internal/domain/providers"
	"github.com/mediqueue/backend/internal/seed"
	apperrors "github.com/mediqueue/backend/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestAdmissionService_List(t *testing.T) {
	svc := NewAdmissionService(memory.NewAdmissionRepository(seed.Admissions()))

	all, err := svc.List(context.Background(), "all")
	require.NoError(t, err)
	assert.Len(t, all, 5)

	admitted, err := svc.List(context.Background(), "admitted")
	require.NoError(t, err)
	assert.Len(t, admitted, 3)

	_, err = svc.List(context.Background(), "transferred")
	assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeValidation))
}

func TestAdmissionService_Admit(t *testing.T) {
	t.Run("assigns the next id and today's date", func(t *testing.T) {
		svc := NewAdmissionService(memory.NewAdmissionRepository(seed.Admissions()))
		svc.now = func() time.Time { return time.Date(2024, time.July, 25, 16, 45, 0, 0, time.UTC) }

		admission, err := svc.Admit(context.Background(), entities.AdmitRequest{
			PatientName: " Sam Wilson ", Department: "Cardiology", BedNumber: "C-104",
		})

		require.NoError(t, err)
		assert.Equal(t, "ADM006", admission.ID)
		assert.Equal(t, "Sam Wilson", admission.PatientName)
		assert.Equal(t, time.Date(2024, time.July, 25, 0, 0, 0, 0, time.UTC), admission.AdmissionDate)
		assert.Equal(t, entities.AdmissionStatusAdmitted, admission.Status)
	})

	t.Run("rejects missing fields and bad dates", func(t *testing.T) {
		svc := NewAdmissionService(memory.NewAdmissionRepository(seed.Admissions()))

		_, err := svc.Admit(context.Background(), entities.AdmitRequest{Department: "Cardiology", BedNumber: "C-104"})
		assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeValidation))

		_, err = svc.Admit(context.Background(), entities.AdmitRequest{
			PatientName: "Sam Wilson", Department: "Cardiology", BedNumber: "C-104", AdmissionDate: "25/07/2024",
		})
		assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeValidation))
	})
}

func TestAdmissionService_Discharge(t *testing.T) {
	svc := NewAdmissionService(memory.NewAdmissionRepository(seed.Admissions()))

	discharged, err := svc.Discharge(context.Background(), "ADM001")
	require.NoError(t, err)
	assert.Equal(t, entities.AdmissionStatusDischarged, discharged.Status)

	_, err = svc.Discharge(context.Background(), "ADM001")
	assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeConflict))

	_, err = svc.Discharge(context.Background(), "ADM999")
	assert.True(t, apperrors.IsNotFound(err))
}

func TestAmbulanceService_UpdateStatus(t *testing.T) {
	svc := NewAmbulanceService(memory.NewAmbulanceRepository(seed.Ambulances()))

	ambulance, err := svc.UpdateStatus(context.Background(), "AMB001", "on call")
	require.NoError(t, err)
	assert.Equal(t, entities.AmbulanceStatusOnCall, ambulance.Status)

	_, err = svc.UpdateStatus(context.Background(), "AMB001", "Parked")
	assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeValidation))
}

func TestStaffService_UpdateDoctorStatus(t *testing.T) {
	svc := NewStaffService(memory.NewDoctorRepository(seed.Doctors()), memory.NewDepartmentRepository(seed.Departments()))

	doctor, err := svc.UpdateDoctorStatus(context.Background(), "dr_sarah_green", "Active")
	require.NoError(t, err)
	assert.Equal(t, entities.DoctorStatusActive, doctor.Status)

	_, err = svc.UpdateDoctorStatus(context.Background(), "dr_nobody", "Active")
	assert.True(t, apperrors.IsNotFound(err))

	departments, err := svc.ListDepartments(context.Background())
	require.NoError(t, err)
	assert.Len(t, departments, 5)
}

func TestStaffService_UpdateDoctorStatusPublishesChange(t *testing.T) {
	bus := new(MockEventBus)
	svc := NewStaffService(memory.NewDoctorRepository(seed.Doctors()), memory.NewDepartmentRepository(seed.Departments())).
		WithEventBus(bus, nil)
	bus.On("Publish", mock.Anything, providers.EventChannelFacilityUpdates, mock.MatchedBy(func(e *entities.FacilityEvent) bool {
		return e.EventType == entities.FacilityEventTypeDoctorStatusChange &&
			e.FacilityID == "dr_jones_cardio" &&
			e.ChangedFields["department_id"] == "cardiology" &&
			e.ChangedFields["status"] == "On Leave"
	})).Return(nil).Once()

	_, err := svc.UpdateDoctorStatus(context.Background(), "dr_jones_cardio", "on leave")
	require.NoError(t, err)

	// unchanged status stays quiet
	_, err = svc.UpdateDoctorStatus(context.Background(), "dr_jones_cardio", "On Leave")
	require.NoError(t, err)

	bus.AssertExpectations(t)
	bus.AssertNumberOfCalls(t, "Publish", 1)
}

func TestQueueService_Advance(t *testing.T) {
	svc := NewQueueService(memory.NewOPDQueueRepository([]*entities.OPDQueue{
		{ID: "q1", Department: "Cardiology", CurrentToken: 29, TotalTokens: 30},
	}))

	queue, err := svc.Advance(context.Background(), "q1")
	require.NoError(t, err)
	assert.Equal(t, 30, queue.CurrentToken)

	_, err = svc.Advance(context.Background(), "q1")
	assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeConflict))

	_, err = svc.Advance(context.Background(), "q9")
	assert.True(t, apperrors.IsNotFound(err))
}
