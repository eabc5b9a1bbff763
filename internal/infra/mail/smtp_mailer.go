// Package mail implements the transactional mailer over SMTP.
package mail

import (
	"context"
	"fmt"
	"log/slog"
	"net/smtp"
	"strings"

	"lamsa/config"
	"lamsa/internal/domain/service"

	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// smtpMailer implements the Mailer interface with net/smtp.
type smtpMailer struct {
	addr   string
	auth   smtp.Auth
	from   string
	logger *slog.Logger
}

// noopMailer is used when SMTP is not configured: sends are logged and
// dropped so mail-triggering features stay usable in development.
type noopMailer struct {
	logger *slog.Logger
}

func (m *noopMailer) Send(_ context.Context, mail service.Mail) error {
	m.logger.Info("[NoopMailer] SMTP not configured, dropping mail",
		slog.String("to", mail.To),
		slog.String("subject", mail.Subject),
	)

	return nil
}

// MailerParams holds dependencies for the mailer, injected by Fx.
type MailerParams struct {
	fx.In

	Config *config.Config
	Logger *slog.Logger
}

// NewMailer creates the configured mailer, or a no-op one when SMTP is absent.
func NewMailer(params MailerParams) service.Mailer {
	cfg := params.Config.SMTP
	if cfg == nil || cfg.Host == "" {
		params.Logger.Info("SMTP not configured, using no-op mailer")

		return &noopMailer{logger: params.Logger}
	}

	var auth smtp.Auth
	if cfg.Username != "" {
		auth = smtp.PlainAuth("", cfg.Username, cfg.Password, cfg.Host)
	}

	return &smtpMailer{
		addr:   fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
		auth:   auth,
		from:   cfg.From,
		logger: params.Logger,
	}
}

// Send delivers one mail. The body is treated as UTF-8 plain text.
func (m *smtpMailer) Send(_ context.Context, mail service.Mail) error {
	var msg strings.Builder
	fmt.Fprintf(&msg, "From: %s\r\n", m.from)
	fmt.Fprintf(&msg, "To: %s\r\n", mail.To)
	fmt.Fprintf(&msg, "Subject: %s\r\n", mail.Subject)
	msg.WriteString("MIME-Version: 1.0\r\n")
	msg.WriteString("Content-Type: text/plain; charset=\"UTF-8\"\r\n")
	msg.WriteString("\r\n")
	msg.WriteString(mail.Body)

	if err := smtp.SendMail(m.addr, m.auth, m.from, []string{mail.To}, []byte(msg.String())); err != nil {
		return errors.Wrap(err, "failed to send mail")
	}

	m.logger.Debug("Mail sent", slog.String("to", mail.To), slog.String("subject", mail.Subject))

	return nil
}
