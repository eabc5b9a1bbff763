package service

import "context"

// Mail is one outbound transactional email.
type Mail struct {
	To      string
	Subject string
	Body    string
}

// Mailer sends transactional email. Failures are logged by callers and must
// never fail the write that triggered the send.
type Mailer interface {
	Send(ctx context.Context, mail Mail) error
}
