package notify

import (
	"context"
	"fmt"
	"log/slog"
	"regexp"
	"strings"
	"time"

	"github.com/wneessen/go-mail"
)

// LogSender writes emails to the log instead of delivering them. It is the
// default when no SMTP host is configured. Acceptance tokens in the body are
// credentials, so they are masked and the body only goes out at debug level.
type LogSender struct {
	Logger *slog.Logger
}

var tokenParam = regexp.MustCompile(`([?&]token=)[^&\s]+`)

// redactTokens masks the value of every token query parameter in s.
func redactTokens(s string) string {
	return tokenParam.ReplaceAllString(s, "${1}REDACTED")
}

func (s LogSender) Send(ctx context.Context, msg Email) error {
	s.Logger.InfoContext(ctx, "email (log sender)",
		slog.String("to", msg.To),
		slog.String("subject", msg.Subject),
	)
	s.Logger.DebugContext(ctx, "email body (log sender)",
		slog.String("to", msg.To),
		slog.String("body", redactTokens(msg.Body)),
	)
	return nil
}

// TLS policies accepted by SMTPConfig.TLSPolicy.
const (
	TLSMandatory     = "mandatory"
	TLSOpportunistic = "opportunistic"
	TLSNone          = "none"
)

// SMTPConfig configures SMTPSender.
type SMTPConfig struct {
	Host     string `env:"HOST"`
	Port     int    `env:"PORT" envDefault:"587"`
	Username string `env:"USERNAME"`
	Password string `env:"PASSWORD"`

	// From may carry a display name, e.g. "Roster <roster@example.com>".
	From string `env:"FROM" envDefault:"Roster <roster@localhost>"`

	// TLSPolicy is mandatory, opportunistic or none and governs STARTTLS.
	TLSPolicy string `env:"TLS_POLICY" envDefault:"opportunistic"`
}

func (c SMTPConfig) tlsPolicy() (mail.TLSPolicy, error) {
	switch strings.ToLower(strings.TrimSpace(c.TLSPolicy)) {
	case TLSMandatory:
		return mail.TLSMandatory, nil
	case TLSOpportunistic, "":
		return mail.TLSOpportunistic, nil
	case TLSNone:
		return mail.NoTLS, nil
	default:
		return mail.NoTLS, fmt.Errorf("notify: unknown smtp tls policy %q", c.TLSPolicy)
	}
}

// Validate reports configuration errors before the first send.
func (c SMTPConfig) Validate() error {
	if _, err := c.tlsPolicy(); err != nil {
		return err
	}
	if err := mail.NewMsg().From(c.From); err != nil {
		return fmt.Errorf("notify: invalid from address %q: %w", c.From, err)
	}
	return nil
}

// SMTPSender delivers mail through a single SMTP relay. A fresh client is
// dialled per message, so concurrent workers never share a connection.
type SMTPSender struct {
	cfg SMTPConfig
	now func() time.Time
}

func NewSMTPSender(cfg SMTPConfig) *SMTPSender {
	if cfg.Port == 0 {
		cfg.Port = 587
	}
	return &SMTPSender{cfg: cfg, now: time.Now}
}

func (s *SMTPSender) client() (*mail.Client, error) {
	policy, err := s.cfg.tlsPolicy()
	if err != nil {
		return nil, err
	}

	opts := []mail.Option{
		mail.WithPort(s.cfg.Port),
		mail.WithTLSPolicy(policy),
	}
	if s.cfg.Username != "" {
		opts = append(opts,
			mail.WithSMTPAuth(mail.SMTPAuthPlain),
			mail.WithUsername(s.cfg.Username),
			mail.WithPassword(s.cfg.Password),
		)
	}

	c, err := mail.NewClient(s.cfg.Host, opts...)
	if err != nil {
		return nil, fmt.Errorf("notify: smtp client: %w", err)
	}
	return c, nil
}

// message builds the MIME message: encoded headers, a Message-ID and a
// quoted-printable UTF-8 body.
func (s *SMTPSender) message(msg Email) (*mail.Msg, error) {
	m := mail.NewMsg()
	if err := m.From(s.cfg.From); err != nil {
		return nil, fmt.Errorf("notify: from %q: %w", s.cfg.From, err)
	}
	if err := m.To(msg.To); err != nil {
		return nil, fmt.Errorf("notify: to %q: %w", msg.To, err)
	}
	m.Subject(msg.Subject)
	m.SetMessageID()
	m.SetDateWithValue(s.now())
	m.SetBodyString(mail.TypeTextPlain, msg.Body)
	return m, nil
}

// Send dials the relay and delivers msg, honouring ctx for the whole session.
func (s *SMTPSender) Send(ctx context.Context, msg Email) error {
	m, err := s.message(msg)
	if err != nil {
		return err
	}

	c, err := s.client()
	if err != nil {
		return err
	}

	if err := c.DialAndSendWithContext(ctx, m); err != nil {
		return fmt.Errorf("notify: send to %s:%d: %w", s.cfg.Host, s.cfg.Port, err)
	}
	return nil
}
