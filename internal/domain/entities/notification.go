package entities

import "time"

// NotificationChannel represents the delivery channel
type NotificationChannel string

const (
	ChannelSMS NotificationChannel = "sms"
)

// NotificationType represents the notification purpose
type NotificationType string

const (
	NotificationBookingConfirmation NotificationType = "booking_confirmation"
)

// NotificationStatus represents the delivery status
type NotificationStatus string

const (
	NotificationStatusSent   NotificationStatus = "sent"
	NotificationStatusFailed NotificationStatus = "failed"
)

// AppointmentNotification records a message sent about an appointment
type AppointmentNotification struct {
	AppointmentID    string              `json:"appointment_id"`
	NotificationType NotificationType    `json:"notification_type"`
	Channel          NotificationChannel `json:"channel"`
	Recipient        string              `json:"recipient"`
	Body             string              `json:"body"`
	Status           NotificationStatus  `json:"status"`
	MessageID        string              `json:"message_id,omitempty"`
	SentAt           *time.Time          `json:"sent_at,omitempty"`
	ErrorMessage     string              `json:"error_message,omitempty"`
}
