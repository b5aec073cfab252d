package entities

import (
	"encoding/json"
	"math"
	"time"
)

// BedUnit is what a ward counts capacity in
type BedUnit string

const (
	BedUnitBeds BedUnit = "Beds"
	BedUnitCots BedUnit = "Cots"
)

// Ward represents an inpatient ward and its bed occupancy
type Ward struct {
	ID        string    `json:"id" db:"id"`
	Name      string    `json:"name" db:"name"`
	Unit      BedUnit   `json:"unit" db:"unit"`
	Total     int       `json:"total" db:"total"`
	Occupied  int       `json:"occupied" db:"occupied"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

// Available returns the number of free beds
func (w *Ward) Available() int {
	return w.Total - w.Occupied
}

// OccupancyPercent returns occupancy rounded to a whole percent
func (w *Ward) OccupancyPercent() int {
	if w.Total <= 0 {
		return 0
	}
	return int(math.Round(float64(w.Occupied) * 100 / float64(w.Total)))
}

// MarshalJSON includes the derived availability fields
func (w Ward) MarshalJSON() ([]byte, error) {
	type ward Ward
	return json.Marshal(struct {
		ward
		Available        int `json:"available"`
		OccupancyPercent int `json:"occupancy_percent"`
	}{
		ward:             ward(w),
		Available:        w.Available(),
		OccupancyPercent: w.OccupancyPercent(),
	})
}
