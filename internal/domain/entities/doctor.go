package entities

import (
	"fmt"
	"strings"
)

// DoctorStatus is the duty state of a doctor
type DoctorStatus string

const (
	DoctorStatusActive  DoctorStatus = "Active"
	DoctorStatusOnLeave DoctorStatus = "On Leave"
)

// ParseDoctorStatus matches value case-insensitively
func ParseDoctorStatus(value string) (DoctorStatus, error) {
	for _, status := range []DoctorStatus{DoctorStatusActive, DoctorStatusOnLeave} {
		if strings.EqualFold(strings.TrimSpace(value), string(status)) {
			return status, nil
		}
	}
	return "", fmt.Errorf("unknown doctor status %q", value)
}

// Doctor is a member of the medical staff. DepartmentID links the doctor to a
// booking department.
type Doctor struct {
	ID             string       `json:"id"`
	Name           string       `json:"name"`
	Specialization string       `json:"specialization"`
	DepartmentID   string       `json:"department_id"`
	Status         DoctorStatus `json:"status"`
}

// Department is a clinical department
type Department struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Head        string `json:"head,omitempty"`
	DoctorCount int    `json:"doctor_count"`
	Capacity    int    `json:"capacity"`
}
