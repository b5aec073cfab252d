package notifications

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/mediqueue/backend/internal/domain/providers"
	"github.com/mediqueue/backend/pkg/config"
	"github.com/rs/zerolog/log"
	"github.com/twilio/twilio-go"
	openapi "github.com/twilio/twilio-go/rest/api/v2010"
)

// messageCreator is the slice of the Twilio REST API used for SMS
type messageCreator interface {
	CreateMessage(params *openapi.CreateMessageParams) (*openapi.ApiV2010Message, error)
}

// TwilioSMSSender sends text messages through Twilio
type TwilioSMSSender struct {
	api        messageCreator
	fromNumber string
}

var _ providers.SMSSender = (*TwilioSMSSender)(nil)

// NewTwilioSMSSender creates a sender from the Twilio credentials in cfg
func NewTwilioSMSSender(cfg *config.TwilioConfig) (*TwilioSMSSender, error) {
	if cfg == nil || !cfg.Enabled() {
		return nil, errors.New("TWILIO_ACCOUNT_SID, TWILIO_AUTH_TOKEN and TWILIO_FROM_NUMBER must be set")
	}

	client := twilio.NewRestClientWithParams(twilio.ClientParams{
		Username:   cfg.AccountSID,
		Password:   cfg.AuthToken,
		AccountSid: cfg.AccountSID,
	})

	return &TwilioSMSSender{api: client.Api, fromNumber: cfg.FromNumber}, nil
}

// SendSMS sends body to the E.164 number to and returns the message SID
func (s *TwilioSMSSender) SendSMS(ctx context.Context, to, body string) (string, error) {
	to = strings.TrimSpace(to)
	if to == "" {
		return "", errors.New("recipient phone number is required")
	}
	if !strings.HasPrefix(to, "+") {
		log.Warn().Str("to", to).Msg("Recipient number is not in E.164 format, SMS may fail")
	}
	if err := ctx.Err(); err != nil {
		return "", err
	}

	params := &openapi.CreateMessageParams{}
	params.SetTo(to)
	params.SetFrom(s.fromNumber)
	params.SetBody(body)

	resp, err := s.api.CreateMessage(params)
	if err != nil {
		return "", fmt.Errorf("failed to send SMS: %w", err)
	}

	sid := ""
	if resp != nil && resp.Sid != nil {
		sid = *resp.Sid
	}
	log.Debug().Str("sid", sid).Msg("SMS sent")
	return sid, nil
}
