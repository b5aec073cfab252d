package providers

import "context"

// SMSSender delivers text messages to phone numbers
type SMSSender interface {
	// SendSMS sends body to the E.164 number to and returns the provider message ID
	SendSMS(ctx context.Context, to, body string) (string, error)
}
