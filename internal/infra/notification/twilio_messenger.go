// Package notification implements outbound SMS/WhatsApp messaging.
package notification

import (
	"context"
	"log/slog"
	"strings"

	"lamsa/config"
	"lamsa/internal/domain/service"

	"github.com/pkg/errors"
	"github.com/twilio/twilio-go"
	twilioApi "github.com/twilio/twilio-go/rest/api/v2010"
	"go.uber.org/fx"
)

// twilioMessenger implements the Messenger interface with the Twilio REST API.
// Numbers prefixed "whatsapp:" are routed through the WhatsApp sender.
type twilioMessenger struct {
	client         *twilio.RestClient
	fromNumber     string
	whatsAppNumber string
	logger         *slog.Logger
}

// noopMessenger is used when Twilio is not configured.
type noopMessenger struct {
	logger *slog.Logger
}

func (m *noopMessenger) SendText(_ context.Context, phone, _ string) error {
	m.logger.Info("[NoopMessenger] Twilio not configured, dropping message",
		slog.String("phone", phone),
	)

	return nil
}

// MessengerParams holds dependencies for the messenger, injected by Fx.
type MessengerParams struct {
	fx.In

	Config *config.Config
	Logger *slog.Logger
}

// NewMessenger creates the configured messenger, or a no-op one when Twilio
// credentials are absent.
func NewMessenger(params MessengerParams) service.Messenger {
	cfg := params.Config.Twilio
	if cfg == nil || cfg.AccountSID == "" {
		params.Logger.Info("Twilio not configured, using no-op messenger")

		return &noopMessenger{logger: params.Logger}
	}

	return &twilioMessenger{
		client: twilio.NewRestClientWithParams(twilio.ClientParams{
			Username: cfg.AccountSID,
			Password: cfg.AuthToken,
		}),
		fromNumber:     cfg.FromNumber,
		whatsAppNumber: cfg.WhatsAppNumber,
		logger:         params.Logger,
	}
}

// SendText sends one text message to the phone number.
func (m *twilioMessenger) SendText(_ context.Context, phone, body string) error {
	params := &twilioApi.CreateMessageParams{}
	params.SetTo(phone)
	params.SetBody(body)

	if strings.HasPrefix(phone, "whatsapp:") && m.whatsAppNumber != "" {
		params.SetFrom("whatsapp:" + m.whatsAppNumber)
	} else {
		params.SetFrom(m.fromNumber)
	}

	if _, err := m.client.Api.CreateMessage(params); err != nil {
		return errors.Wrap(err, "failed to send text message")
	}

	m.logger.Debug("Text message sent", slog.String("phone", phone))

	return nil
}
