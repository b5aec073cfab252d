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
	"github.com/mediqueue/backend/internal/domain/entities"
	apperrors "github.com/mediqueue/backend/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockFacilityService struct {
	mock.Mock
}

func (m *MockFacilityService) SearchHospitals(ctx context.Context, query string) (*entities.FacilitySearchResult, error) {
	args := m.Called(ctx, query)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.FacilitySearchResult), args.Error(1)
}

func (m *MockFacilityService) SearchPharmacies(ctx context.Context, query string) (*entities.FacilitySearchResult, error) {
	args := m.Called(ctx, query)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.FacilitySearchResult), args.Error(1)
}

func (m *MockFacilityService) GetFacility(ctx context.Context, id string) (*entities.FacilityView, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.FacilityView), args.Error(1)
}

func (m *MockFacilityService) OpenStatus(ctx context.Context, id string) (*entities.OpenStatus, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.OpenStatus), args.Error(1)
}

func (m *MockFacilityService) CreateFacility(ctx context.Context, facility *entities.Facility) (*entities.Facility, error) {
	args := m.Called(ctx, facility)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Facility), args.Error(1)
}

func (m *MockFacilityService) NearestHospitals(ctx context.Context, lat, lon float64, limit int) ([]entities.NearbyHospital, error) {
	args := m.Called(ctx, lat, lon, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entities.NearbyHospital), args.Error(1)
}

func TestFacilityHandler_SearchPharmacies_ReturnsContract(t *testing.T) {
	// Arrange
	mockService := new(MockFacilityService)
	handler := handlers.NewFacilityHandler(mockService)
	open := true
	mockService.On("SearchPharmacies", mock.Anything, "metro").Return(&entities.FacilitySearchResult{
		Results: []*entities.FacilityView{{
			Facility:  &entities.Facility{ID: "p3", Name: "City Central Chemists", Kind: entities.FacilityKindPharmacy, OperatingHours: "00:00-23:59"},
			IsOpenNow: &open,
		}},
		HasSearched: true,
		Query:       "metro",
	}, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/pharmacies/search?q=metro", nil)
	w := httptest.NewRecorder()

	// Act
	handler.SearchPharmacies(w, req)

	// Assert
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "application/json", w.Header().Get("Content-Type"))

	var body struct {
		Results []struct {
			ID        string `json:"id"`
			IsOpenNow *bool  `json:"is_open_now"`
		} `json:"results"`
		HasSearched bool   `json:"has_searched"`
		Query       string `json:"query"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	require.Len(t, body.Results, 1)
	assert.Equal(t, "p3", body.Results[0].ID)
	require.NotNil(t, body.Results[0].IsOpenNow)
	assert.True(t, *body.Results[0].IsOpenNow)
	assert.True(t, body.HasSearched)
	mockService.AssertExpectations(t)
}

func TestFacilityHandler_SearchHospitals_EmptyResultIsArray(t *testing.T) {
	mockService := new(MockFacilityService)
	handler := handlers.NewFacilityHandler(mockService)
	mockService.On("SearchHospitals", mock.Anything, "").Return(&entities.FacilitySearchResult{
		Results: []*entities.FacilityView{}, HasSearched: true,
	}, nil)

	w := httptest.NewRecorder()
	handler.SearchHospitals(w, httptest.NewRequest(http.MethodGet, "/api/hospitals/search", nil))

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"results":[]`)
}

func TestFacilityHandler_GetFacility_Errors(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantBody   string
	}{
		{name: "not found", err: apperrors.NewNotFoundError("facility not found"), wantStatus: http.StatusNotFound, wantBody: "facility not found"},
		{name: "internal detail hidden", err: apperrors.NewInternalError("query failed", errors.New("pq: password authentication failed")), wantStatus: http.StatusInternalServerError, wantBody: "internal server error"},
		{name: "plain error hidden", err: errors.New("boom"), wantStatus: http.StatusInternalServerError, wantBody: "internal server error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockService := new(MockFacilityService)
			handler := handlers.NewFacilityHandler(mockService)
			mockService.On("GetFacility", mock.Anything, "h9").Return(nil, tt.err)

			req := httptest.NewRequest(http.MethodGet, "/api/facilities/h9", nil)
			req.SetPathValue("id", "h9")
			w := httptest.NewRecorder()

			handler.GetFacility(w, req)

			assert.Equal(t, tt.wantStatus, w.Code)
			var body map[string]string
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
			assert.Equal(t, tt.wantBody, body["error"])
			assert.NotContains(t, w.Body.String(), "pq:")
		})
	}
}

func TestFacilityHandler_GetOpenStatus(t *testing.T) {
	mockService := new(MockFacilityService)
	handler := handlers.NewFacilityHandler(mockService)
	mockService.On("OpenStatus", mock.Anything, "p1").Return(&entities.OpenStatus{FacilityID: "p1", OperatingHours: "08:00-20:00", IsOpen: true}, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/facilities/p1/open-status", nil)
	req.SetPathValue("id", "p1")
	w := httptest.NewRecorder()

	handler.GetOpenStatus(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"is_open":true`)
}

func TestFacilityHandler_CreateFacility(t *testing.T) {
	t.Run("created", func(t *testing.T) {
		mockService := new(MockFacilityService)
		handler := handlers.NewFacilityHandler(mockService)
		mockService.On("CreateFacility", mock.Anything, mock.MatchedBy(func(f *entities.Facility) bool {
			return f.Name == "Night Owl" && f.Kind == entities.FacilityKindPharmacy && f.OperatingHours == "22:00-06:00"
		})).Return(&entities.Facility{ID: "new-id", Name: "Night Owl"}, nil)

		body := `{"name":"Night Owl","kind":"pharmacy","operating_hours":"22:00-06:00"}`
		w := httptest.NewRecorder()
		handler.CreateFacility(w, httptest.NewRequest(http.MethodPost, "/api/facilities", strings.NewReader(body)))

		assert.Equal(t, http.StatusCreated, w.Code)
		assert.Contains(t, w.Body.String(), `"id":"new-id"`)
		mockService.AssertExpectations(t)
	})

	t.Run("validation error", func(t *testing.T) {
		mockService := new(MockFacilityService)
		handler := handlers.NewFacilityHandler(mockService)
		mockService.On("CreateFacility", mock.Anything, mock.Anything).Return(nil, apperrors.NewValidationError("name is required"))

		w := httptest.NewRecorder()
		handler.CreateFacility(w, httptest.NewRequest(http.MethodPost, "/api/facilities", strings.NewReader(`{}`)))

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), "name is required")
	})

	t.Run("malformed json", func(t *testing.T) {
		mockService := new(MockFacilityService)
		handler := handlers.NewFacilityHandler(mockService)

		w := httptest.NewRecorder()
		handler.CreateFacility(w, httptest.NewRequest(http.MethodPost, "/api/facilities", strings.NewReader(`{"name":`)))

		assert.Equal(t, http.StatusBadRequest, w.Code)
		mockService.AssertNotCalled(t, "CreateFacility", mock.Anything, mock.Anything)
	})
}
