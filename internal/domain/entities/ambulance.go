package entities

import (
	"fmt"
	"strings"
)

// AmbulanceStatus is the dispatch state of a vehicle
type AmbulanceStatus string

const (
	AmbulanceStatusAvailable        AmbulanceStatus = "Available"
	AmbulanceStatusOnCall           AmbulanceStatus = "On Call"
	AmbulanceStatusUnderMaintenance AmbulanceStatus = "Under Maintenance"
)

// ParseAmbulanceStatus matches value case-insensitively
func ParseAmbulanceStatus(value string) (AmbulanceStatus, error) {
	for _, status := range []AmbulanceStatus{AmbulanceStatusAvailable, AmbulanceStatusOnCall, AmbulanceStatusUnderMaintenance} {
		if strings.EqualFold(strings.TrimSpace(value), string(status)) {
			return status, nil
		}
	}
	return "", fmt.Errorf("unknown ambulance status %q", value)
}

// Ambulance represents a vehicle in the hospital fleet
type Ambulance struct {
	ID            string          `json:"id"`
	VehicleNumber string          `json:"vehicle_number"`
	Type          string          `json:"type"`
	Driver        string          `json:"driver"`
	Status        AmbulanceStatus `json:"status"`
}
