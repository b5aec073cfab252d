package services

import (
	"context"
	"errors"
	"strings"

	"github.com/mediqueue/backend/internal/domain/entities"
	"github.com/mediqueue/backend/internal/domain/providers"
	"github.com/mediqueue/backend/internal/infrastructure/observability"
	apperrors "github.com/mediqueue/backend/pkg/errors"
)

const (
	// FallbackDisclaimer is returned when the assistant omits its disclaimer
	FallbackDisclaimer = "This is an AI-powered symptom checker and not a substitute for professional medical advice, diagnosis, or treatment. Always seek the advice of your physician or other qualified health provider with any questions you may have regarding a medical condition."

	// NoUnusualPatterns stands in for a blank unusual-patterns field
	NoUnusualPatterns = "None observed"

	minSymptomLength    = 10
	maxSymptomLength    = 1000
	aiNotConfiguredMsg  = "AI assistant is not configured"
	aiUnavailableMsg    = "The AI assistant could not process the request. Please try again later."
	symptomsTooShortMsg = "Please describe your symptoms in at least 10 characters."
	symptomsTooLongMsg  = "Please keep your description under 1000 characters."
)

// SymptomService runs the symptom check flow. Each request makes exactly one
// upstream call.
type SymptomService struct {
	checker providers.SymptomChecker
}

// NewSymptomService creates a new symptom service. A nil checker makes every
// request fail as unavailable.
func NewSymptomService(checker providers.SymptomChecker) *SymptomService {
	return &SymptomService{checker: checker}
}

// Check validates the description and asks the assistant for guidance
func (s *SymptomService) Check(ctx context.Context, input entities.SymptomCheckInput) (*entities.SymptomCheckResult, error) {
	input.Description = strings.TrimSpace(input.Description)
	switch n := len([]rune(input.Description)); {
	case n < minSymptomLength:
		return nil, apperrors.NewValidationError(symptomsTooShortMsg)
	case n > maxSymptomLength:
		return nil, apperrors.NewValidationError(symptomsTooLongMsg)
	}

	if s.checker == nil {
		return nil, apperrors.NewUnavailableError(aiNotConfiguredMsg)
	}

	result, err := s.checker.CheckSymptoms(ctx, input)
	if err != nil {
		return nil, upstreamError(ctx, "symptom_check", err)
	}
	if result == nil {
		return nil, upstreamError(ctx, "symptom_check", errors.New("empty result"))
	}

	if strings.TrimSpace(result.Disclaimer) == "" {
		result.Disclaimer = FallbackDisclaimer
	}
	return result, nil
}

// SlotAllocationService runs the smart slot allocation flow
type SlotAllocationService struct {
	advisor providers.SlotAdvisor
}

// NewSlotAllocationService creates a new slot allocation service
func NewSlotAllocationService(advisor providers.SlotAdvisor) *SlotAllocationService {
	return &SlotAllocationService{advisor: advisor}
}

// Suggest validates the load description and asks the assistant for advice
func (s *SlotAllocationService) Suggest(ctx context.Context, input entities.SlotAllocationInput) (*entities.SlotAllocationResult, error) {
	input.DoctorAvailability = strings.TrimSpace(input.DoctorAvailability)
	input.PatientLoadPatterns = strings.TrimSpace(input.PatientLoadPatterns)
	input.AverageAppointmentDuration = strings.TrimSpace(input.AverageAppointmentDuration)
	input.UnusualPatternsDetected = strings.TrimSpace(input.UnusualPatternsDetected)

	required := []struct {
		value   string
		minLen  int
		message string
	}{
		{input.DoctorAvailability, 10, "Please provide details on doctor availability."},
		{input.PatientLoadPatterns, 10, "Please describe patient load patterns."},
		{input.AverageAppointmentDuration, 3, "Specify average appointment duration (e.g., 15 mins)."},
	}
	for _, field := range required {
		if len([]rune(field.value)) < field.minLen {
			return nil, apperrors.NewValidationError(field.message)
		}
	}
	if input.UnusualPatternsDetected == "" {
		input.UnusualPatternsDetected = NoUnusualPatterns
	}

	if s.advisor == nil {
		return nil, apperrors.NewUnavailableError(aiNotConfiguredMsg)
	}

	result, err := s.advisor.SuggestSlots(ctx, input)
	if err != nil {
		return nil, upstreamError(ctx, "slot_allocation", err)
	}
	if result == nil {
		return nil, upstreamError(ctx, "slot_allocation", errors.New("empty result"))
	}
	return result, nil
}

// upstreamError logs the provider failure and hides its detail from callers
func upstreamError(ctx context.Context, flow string, err error) error {
	observability.LoggerFromContext(ctx).Error().Err(err).Str("flow", flow).Msg("AI flow failed")
	return apperrors.NewExternalError(aiUnavailableMsg, err)
}
