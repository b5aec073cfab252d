package entities

import (
	"fmt"
	"strings"
	"time"
)

// AdmissionStatus is the inpatient state of an admission
type AdmissionStatus string

const (
	AdmissionStatusAdmitted   AdmissionStatus = "Admitted"
	AdmissionStatusDischarged AdmissionStatus = "Discharged"
)

// ParseAdmissionStatus matches value case-insensitively
func ParseAdmissionStatus(value string) (AdmissionStatus, error) {
	for _, status := range []AdmissionStatus{AdmissionStatusAdmitted, AdmissionStatusDischarged} {
		if strings.EqualFold(strings.TrimSpace(value), string(status)) {
			return status, nil
		}
	}
	return "", fmt.Errorf("unknown admission status %q", value)
}

// Admission represents an inpatient stay
type Admission struct {
	ID            string          `json:"id"`
	PatientName   string          `json:"patient_name"`
	Department    string          `json:"department"`
	BedNumber     string          `json:"bed_number"`
	AdmissionDate time.Time       `json:"admission_date"`
	Status        AdmissionStatus `json:"status"`
}

// AdmitRequest carries the fields of the admission form
type AdmitRequest struct {
	PatientName   string `json:"patient_name"`
	Department    string `json:"department"`
	BedNumber     string `json:"bed_number"`
	AdmissionDate string `json:"admission_date,omitempty"`
}
