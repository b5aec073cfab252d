package handlers_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/mediqueue/backend/internal/api/handlers"
	"github.com/mediqueue/backend/internal/application/services"
	"github.com/mediqueue/backend/internal/domain/entities"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockSymptomChecker struct {
	mock.Mock
}

func (m *MockSymptomChecker) CheckSymptoms(ctx context.Context, input entities.SymptomCheckInput) (*entities.SymptomCheckResult, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.SymptomCheckResult), args.Error(1)
}

type MockSlotAdvisor struct {
	mock.Mock
}

func (m *MockSlotAdvisor) SuggestSlots(ctx context.Context, input entities.SlotAllocationInput) (*entities.SlotAllocationResult, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.SlotAllocationResult), args.Error(1)
}

func TestAIHandler_CheckSymptoms(t *testing.T) {
	t.Run("camelCase contract", func(t *testing.T) {
		checker := new(MockSymptomChecker)
		handler := handlers.NewAIHandler(services.NewSymptomService(checker), services.NewSlotAllocationService(nil))
		checker.On("CheckSymptoms", mock.Anything, entities.SymptomCheckInput{Description: "Headache and blurred vision since morning"}).
			Return(&entities.SymptomCheckResult{
				SuggestedDepartments: "Neurology, Ophthalmology",
				UrgencyAssessment:    "Seek care today",
			}, nil)

		w := httptest.NewRecorder()
		handler.CheckSymptoms(w, httptest.NewRequest(http.MethodPost, "/api/symptom-check",
			strings.NewReader(`{"description":"Headache and blurred vision since morning"}`)))

		require.Equal(t, http.StatusOK, w.Code)
		var body map[string]string
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
		assert.Equal(t, "Neurology, Ophthalmology", body["suggestedDepartments"])
		assert.Equal(t, "Seek care today", body["urgencyAssessment"])
		assert.Equal(t, services.FallbackDisclaimer, body["disclaimer"])
	})

	t.Run("upstream failure is a generic 502", func(t *testing.T) {
		checker := new(MockSymptomChecker)
		handler := handlers.NewAIHandler(services.NewSymptomService(checker), nil)
		checker.On("CheckSymptoms", mock.Anything, mock.Anything).Return(nil, errors.New("openai: 500 upstream exploded"))

		w := httptest.NewRecorder()
		handler.CheckSymptoms(w, httptest.NewRequest(http.MethodPost, "/api/symptom-check",
			strings.NewReader(`{"description":"Headache and blurred vision since morning"}`)))

		assert.Equal(t, http.StatusBadGateway, w.Code)
		assert.NotContains(t, w.Body.String(), "exploded")
	})

	t.Run("not configured is 503", func(t *testing.T) {
		handler := handlers.NewAIHandler(services.NewSymptomService(nil), nil)

		w := httptest.NewRecorder()
		handler.CheckSymptoms(w, httptest.NewRequest(http.MethodPost, "/api/symptom-check",
			strings.NewReader(`{"description":"Headache and blurred vision since morning"}`)))

		assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	})

	t.Run("short description is 400", func(t *testing.T) {
		checker := new(MockSymptomChecker)
		handler := handlers.NewAIHandler(services.NewSymptomService(checker), nil)

		w := httptest.NewRecorder()
		handler.CheckSymptoms(w, httptest.NewRequest(http.MethodPost, "/api/symptom-check", strings.NewReader(`{"description":"ouch"}`)))

		assert.Equal(t, http.StatusBadRequest, w.Code)
		checker.AssertNotCalled(t, "CheckSymptoms", mock.Anything, mock.Anything)
	})
}

func TestAIHandler_SuggestSlots(t *testing.T) {
	advisor := new(MockSlotAdvisor)
	handler := handlers.NewAIHandler(nil, services.NewSlotAllocationService(advisor))
	advisor.On("SuggestSlots", mock.Anything, mock.MatchedBy(func(in entities.SlotAllocationInput) bool {
		return in.UnusualPatternsDetected == services.NoUnusualPatterns
	})).Return(&entities.SlotAllocationResult{
		SuggestedSlots:               "Open two extra 15 minute slots at 09:00",
		SuggestedAvailabilityUpdates: "Move Dr. Lee to mornings",
	}, nil)

	body := `{"doctorAvailability":"Dr. Lee 9-1","patientLoadPatterns":"Monday peaks","averageAppointmentDuration":"15 min"}`
	w := httptest.NewRecorder()
	handler.SuggestSlots(w, httptest.NewRequest(http.MethodPost, "/api/admin/slot-suggestions", strings.NewReader(body)))

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"suggestedAvailabilityUpdates":"Move Dr. Lee to mornings"`)
	advisor.AssertExpectations(t)
}
