package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/mediqueue/backend/internal/domain/entities"
	"github.com/mediqueue/backend/internal/domain/providers"
	"github.com/mediqueue/backend/internal/infrastructure/observability"
)

const smsSendTimeout = 10 * time.Second

// NotificationService sends appointment notifications to patients
type NotificationService struct {
	sms providers.SMSSender
}

// NewNotificationService creates a new notification service. A nil sender
// disables notifications.
func NewNotificationService(sms providers.SMSSender) *NotificationService {
	return &NotificationService{sms: sms}
}

// Enabled reports whether an SMS sender is configured
func (n *NotificationService) Enabled() bool {
	return n != nil && n.sms != nil
}

// BookingConfirmationBody renders the SMS text for a booked appointment
func BookingConfirmationBody(appointment *entities.Appointment) string {
	return fmt.Sprintf("Your MediQueue appointment with %s on %s at %s is confirmed.",
		appointment.DoctorName,
		appointment.Date.Format("January 2, 2006"),
		appointment.TimeSlot,
	)
}

// SendBookingConfirmation texts the patient. It returns nil when the
// appointment has no phone number or SMS is not configured. Delivery
// failures are reported in the returned notification, not as an error.
func (n *NotificationService) SendBookingConfirmation(ctx context.Context, appointment *entities.Appointment) *entities.AppointmentNotification {
	recipient := strings.TrimSpace(appointment.PatientPhone)
	if !n.Enabled() || recipient == "" {
		return nil
	}

	notification := &entities.AppointmentNotification{
		AppointmentID:    appointment.ID,
		NotificationType: entities.NotificationBookingConfirmation,
		Channel:          entities.ChannelSMS,
		Recipient:        recipient,
		Body:             BookingConfirmationBody(appointment),
	}

	sendCtx, cancel := context.WithTimeout(ctx, smsSendTimeout)
	defer cancel()

	logger := observability.LoggerFromContext(ctx)
	messageID, err := n.sms.SendSMS(sendCtx, recipient, notification.Body)
	if err != nil {
		notification.Status = entities.NotificationStatusFailed
		notification.ErrorMessage = err.Error()
		logger.Warn().Err(err).Str("appointment_id", appointment.ID).Msg("Failed to send booking confirmation SMS")
		return notification
	}

	sentAt := time.Now().UTC()
	notification.Status = entities.NotificationStatusSent
	notification.MessageID = messageID
	notification.SentAt = &sentAt
	logger.Info().Str("appointment_id", appointment.ID).Str("message_id", messageID).Msg("Booking confirmation SMS sent")
	return notification
}
