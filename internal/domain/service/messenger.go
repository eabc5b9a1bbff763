package service

import "context"

// Messenger sends a short text message (SMS or WhatsApp) to a phone number.
type Messenger interface {
	SendText(ctx context.Context, phone, body string) error
}
