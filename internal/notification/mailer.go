package notification

import (
	"context"
	"fmt"
	"html"
	"log/slog"

	"welfare-ledger/internal/config"
	"welfare-ledger/internal/domain/account"

	"gopkg.in/gomail.v2"
)

type sender interface {
	DialAndSend(m ...*gomail.Message) error
}

type SMTPMailer struct {
	sender sender
	from   string
	logger *slog.Logger
}

var _ account.PasswordMailer = (*SMTPMailer)(nil)

// NewMailer returns an SMTP mailer, or a no-op one when mail is disabled.
func NewMailer(cfg config.MailConfig, logger *slog.Logger) account.PasswordMailer {
	if !cfg.Enabled {
		return NoopMailer{logger: logger.With("component", "NoopMailer")}
	}
	return &SMTPMailer{
		sender: gomail.NewDialer(cfg.Host, cfg.Port, cfg.Username, cfg.Password),
		from:   cfg.From,
		logger: logger.With("component", "SMTPMailer"),
	}
}

func (m *SMTPMailer) SendTemporaryPassword(ctx context.Context, to, password string) error {
	msg := gomail.NewMessage()
	msg.SetHeader("From", m.from)
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", "Your temporary password")

	body := fmt.Sprintf(`
		<h3>Your password was reset</h3>
		<p>An administrator reset the password for your welfare fund account.</p>
		<p>Temporary password: <strong>%s</strong></p>
		<p>Sign in and change it from your profile page.</p>
	`, html.EscapeString(password))
	msg.SetBody("text/html", body)

	if err := m.sender.DialAndSend(msg); err != nil {
		m.logger.ErrorContext(ctx, "Failed to send temporary password email", slog.Any("error", err))
		return fmt.Errorf("failed to send temporary password email: %w", err)
	}

	m.logger.InfoContext(ctx, "Temporary password email sent")
	return nil
}

type NoopMailer struct {
	logger *slog.Logger
}

func (n NoopMailer) SendTemporaryPassword(ctx context.Context, _, _ string) error {
	n.logger.DebugContext(ctx, "Mail disabled, temporary password not emailed")
	return nil
}
