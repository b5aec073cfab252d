package openai

import (
	"fmt"

	"github.com/mediqueue/backend/internal/domain/entities"
)

const symptomCheckerSystemPrompt = `You are an AI assistant for a hospital helping patients understand their symptoms. You are NOT a medical professional and CANNOT give a diagnosis. Return ONLY valid JSON with this schema:
{
  "suggestedDepartments": string (hospital departments the patient might consider consulting, framed as a general suggestion such as "Symptoms like these are often addressed by..."),
  "urgencyAssessment": string (a general assessment of how soon to seek care; if symptoms are severe or worsen rapidly, advise immediate medical attention; avoid specific timelines),
  "disclaimer": string (always exactly: "This is an AI-powered symptom checker and not a substitute for professional medical advice, diagnosis, or treatment. Always seek the advice of your physician or other qualified health provider with any questions you may have regarding a medical condition.")
}
Keep language simple and non-alarmist.`

const slotAllocationSystemPrompt = `You are an AI assistant designed to optimize hospital OPD appointment scheduling. Analyze the provided data, suggest specific appointment slots that minimize patient wait times and maximize scheduling efficiency, and, if unusual patient load patterns are detected, suggest updates to doctor availability taking into account specialties and average appointment times. Return ONLY valid JSON with this schema:
{
  "suggestedSlots": string (clear, concise list of suggested appointment slots),
  "suggestedAvailabilityUpdates": string (clear, concise doctor availability changes)
}`

func buildSymptomCheckerUserPrompt(input entities.SymptomCheckInput) string {
	return fmt.Sprintf("Analyze the following symptoms:\n%q\n", input.Description)
}

func buildSlotAllocationUserPrompt(input entities.SlotAllocationInput) string {
	return fmt.Sprintf(
		"Doctor Availability: %s\nPatient Load Patterns: %s\nAverage Appointment Duration: %s\nUnusual Patient Load Patterns Detected: %s\n",
		input.DoctorAvailability,
		input.PatientLoadPatterns,
		input.AverageAppointmentDuration,
		input.UnusualPatternsDetected,
	)
}
