package entities

// SymptomCheckInput is the free-text description a patient submits
type SymptomCheckInput struct {
	Description string `json:"description"`
}

// SymptomCheckResult is the assistant's non-diagnostic guidance
type SymptomCheckResult struct {
	SuggestedDepartments string `json:"suggestedDepartments"`
	UrgencyAssessment    string `json:"urgencyAssessment"`
	Disclaimer           string `json:"disclaimer"`
}

// SlotAllocationInput describes current OPD load for scheduling advice
type SlotAllocationInput struct {
	DoctorAvailability         string `json:"doctorAvailability"`
	PatientLoadPatterns        string `json:"patientLoadPatterns"`
	AverageAppointmentDuration string `json:"averageAppointmentDuration"`
	UnusualPatternsDetected    string `json:"unusualPatternsDetected,omitempty"`
}

// SlotAllocationResult is free-text scheduling advice
type SlotAllocationResult struct {
	SuggestedSlots               string `json:"suggestedSlots"`
	SuggestedAvailabilityUpdates string `json:"suggestedAvailabilityUpdates"`
}
