package entities

import (
	"time"
)

// FacilityKind distinguishes hospitals from pharmacies
type FacilityKind string

const (
	FacilityKindHospital FacilityKind = "hospital"
	FacilityKindPharmacy FacilityKind = "pharmacy"
)

// Valid reports whether k is a known facility kind
func (k FacilityKind) Valid() bool {
	return k == FacilityKindHospital || k == FacilityKindPharmacy
}

// Facility represents a hospital or pharmacy listed in the directory
type Facility struct {
	ID             string       `json:"id" db:"id"`
	Name           string       `json:"name" db:"name"`
	Kind           FacilityKind `json:"kind" db:"kind"`
	Address        Address      `json:"address" db:"-"`
	Location       Location     `json:"location" db:"-"`
	PhoneNumber    string       `json:"phone_number" db:"phone_number"`
	OperatingHours string       `json:"operating_hours,omitempty" db:"operating_hours"`
	Services       []string     `json:"services" db:"-"`
	ImageURL       string       `json:"image_url,omitempty" db:"image_url"`
	IsActive       bool         `json:"is_active" db:"is_active"`
	CreatedAt      time.Time    `json:"created_at" db:"created_at"`
	UpdatedAt      time.Time    `json:"updated_at" db:"updated_at"`
}

// Address represents a physical address
type Address struct {
	Street  string `json:"street" db:"street"`
	City    string `json:"city" db:"city"`
	State   string `json:"state" db:"state"`
	ZipCode string `json:"zip_code" db:"zip_code"`
	Country string `json:"country" db:"country"`
}

// Location represents geographical coordinates
type Location struct {
	Latitude  float64 `json:"latitude" db:"latitude"`
	Longitude float64 `json:"longitude" db:"longitude"`
}

// FacilityView is a facility as returned to clients, with its open state
// evaluated at request time for pharmacies.
type FacilityView struct {
	*Facility
	IsOpenNow *bool `json:"is_open_now,omitempty"`
}

// FacilitySearchResult is the outcome of a directory search. HasSearched is
// always true so clients can tell "no matches" apart from "not searched yet".
type FacilitySearchResult struct {
	Results     []*FacilityView `json:"results"`
	HasSearched bool            `json:"has_searched"`
	Query       string          `json:"query"`
}

// OpenStatus reports whether a facility is open at EvaluatedAt
type OpenStatus struct {
	FacilityID     string    `json:"facility_id"`
	OperatingHours string    `json:"operating_hours"`
	IsOpen         bool      `json:"is_open"`
	EvaluatedAt    time.Time `json:"evaluated_at"`
}
