// Package notify delivers customer notifications such as payment confirmations.
package notify

import (
	"context"
	"errors"
	"fmt"

	"mattress-shop/internal/config"

	"github.com/rs/zerolog"
	"github.com/wneessen/go-mail"
)

// Message is a plain-text email.
type Message struct {
	To      string
	Subject string
	Body    string
}

// Sender delivers messages to customers.
type Sender interface {
	Send(ctx context.Context, msg Message) error
}

// NewSender returns an SMTP sender when a mail host is configured and a
// logging sender otherwise.
func NewSender(cfg config.MailConfig, logger zerolog.Logger) (Sender, error) {
	if cfg.Host == "" {
		return NewLogSender(logger), nil
	}
	return NewSMTPSender(cfg, logger)
}

// mailClient is the part of *mail.Client used to deliver messages.
type mailClient interface {
	DialAndSendWithContext(ctx context.Context, messages ...*mail.Msg) error
}

// SMTPSender sends mail through an SMTP relay.
type SMTPSender struct {
	client mailClient
	from   string
	logger zerolog.Logger
}

// NewSMTPSender creates a sender for the configured relay. STARTTLS is used
// when the relay offers it; authentication only when a username is set.
func NewSMTPSender(cfg config.MailConfig, logger zerolog.Logger) (*SMTPSender, error) {
	opts := []mail.Option{
		mail.WithPort(cfg.Port),
		mail.WithTLSPolicy(mail.TLSOpportunistic),
	}
	if cfg.Username != "" {
		opts = append(opts,
			mail.WithSMTPAuth(mail.SMTPAuthPlain),
			mail.WithUsername(cfg.Username),
			mail.WithPassword(cfg.Password),
		)
	}

	client, err := mail.NewClient(cfg.Host, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create mail client for %s: %w", cfg.Address(), err)
	}

	return &SMTPSender{
		client: client,
		from:   cfg.From,
		logger: logger.With().Str("component", "smtp-sender").Str("relay", cfg.Address()).Logger(),
	}, nil
}

// Send delivers msg. The dial and the SMTP exchange are bound to ctx.
func (s *SMTPSender) Send(ctx context.Context, msg Message) error {
	m, err := s.compose(msg)
	if err != nil {
		return err
	}

	if err := s.client.DialAndSendWithContext(ctx, m); err != nil {
		s.logger.Error().Err(err).Str("to", msg.To).Str("subject", msg.Subject).Msg("failed to send email")
		return fmt.Errorf("failed to send email: %w", err)
	}

	s.logger.Info().Str("to", msg.To).Str("subject", msg.Subject).Msg("email sent")

	return nil
}

func (s *SMTPSender) compose(msg Message) (*mail.Msg, error) {
	if msg.To == "" {
		return nil, errors.New("message has no recipient")
	}

	m := mail.NewMsg()
	if err := m.From(s.from); err != nil {
		return nil, fmt.Errorf("invalid sender address %q: %w", s.from, err)
	}
	if err := m.To(msg.To); err != nil {
		return nil, fmt.Errorf("invalid recipient address %q: %w", msg.To, err)
	}
	m.Subject(msg.Subject)
	m.SetDate()
	m.SetMessageID()
	m.SetBodyString(mail.TypeTextPlain, msg.Body)

	return m, nil
}

// LogSender writes messages to the log instead of sending them.
type LogSender struct {
	logger zerolog.Logger
}

// NewLogSender creates a sender for environments without a mail relay.
func NewLogSender(logger zerolog.Logger) *LogSender {
	return &LogSender{logger: logger.With().Str("component", "log-sender").Logger()}
}

// Send logs msg and never fails.
func (s *LogSender) Send(_ context.Context, msg Message) error {
	s.logger.Info().
		Str("to", msg.To).
		Str("subject", msg.Subject).
		Str("body", msg.Body).
		Msg("email not sent, SMTP disabled")
	return nil
}
