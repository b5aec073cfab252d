package entities

import "time"

// NearbyHospital is a hospital ranked by distance from an emergency
type NearbyHospital struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	PhoneNumber string  `json:"phone_number"`
	Address     Address `json:"address"`
	DistanceKm  float64 `json:"distance_km"`
}

// EmergencyAlert is an SOS raised by a patient from their current position
type EmergencyAlert struct {
	ID               string           `json:"id"`
	UserID           string           `json:"user_id,omitempty"`
	Latitude         float64          `json:"latitude"`
	Longitude        float64          `json:"longitude"`
	Address          string           `json:"address,omitempty"`
	Timestamp        time.Time        `json:"timestamp"`
	NearestHospitals []NearbyHospital `json:"nearest_hospitals"`
}
