package entities

import (
	"time"

	"github.com/google/uuid"
)

// FacilityEventType represents the type of facility event
type FacilityEventType string

const (
	FacilityEventTypeWardCapacityUpdate FacilityEventType = "ward_capacity_update"
	FacilityEventTypeOpenStatusChange   FacilityEventType = "open_status_change"
	FacilityEventTypeFacilityCreated    FacilityEventType = "facility_created"
	FacilityEventTypeDoctorStatusChange FacilityEventType = "doctor_status_change"
)

// Valid reports whether t is a known event type
func (t FacilityEventType) Valid() bool {
	switch t {
	case FacilityEventTypeWardCapacityUpdate, FacilityEventTypeOpenStatusChange,
		FacilityEventTypeFacilityCreated, FacilityEventTypeDoctorStatusChange:
		return true
	}
	return false
}

// FacilityEvent represents a real-time update pushed to stream subscribers
type FacilityEvent struct {
	ID            string                 `json:"id"`
	FacilityID    string                 `json:"facility_id"`
	EventType     FacilityEventType      `json:"event_type"`
	Timestamp     time.Time              `json:"timestamp"`
	Location      Location               `json:"location"`
	ChangedFields map[string]interface{} `json:"changed_fields"`
}

// NewFacilityEvent creates a new facility event
func NewFacilityEvent(facilityID string, eventType FacilityEventType, location Location, changedFields map[string]interface{}) *FacilityEvent {
	return &FacilityEvent{
		ID:            uuid.NewString(),
		FacilityID:    facilityID,
		EventType:     eventType,
		Timestamp:     time.Now().UTC(),
		Location:      location,
		ChangedFields: changedFields,
	}
}
