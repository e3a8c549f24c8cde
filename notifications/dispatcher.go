package notifications

import (
	"context"
	"fmt"
	"net/mail"
	"strings"
	"time"

	config "github.com/anjiri1684/institute_manager/configs"
	"github.com/anjiri1684/institute_manager/pkg/apperrors"
	"github.com/rs/zerolog/log"
)

type Attachment struct {
	Filename    string
	ContentType string
	Content     []byte
}

type Message struct {
	To          string
	ToName      string
	Subject     string
	HTML        string
	Text        string
	Attachments []Attachment
}

// Dispatcher delivers a single message. Implementations must be safe for
// concurrent use; a failure concerns only that message.
type Dispatcher interface {
	Send(ctx context.Context, msg Message) error
}

type NoopDispatcher struct{}

func (NoopDispatcher) Send(_ context.Context, msg Message) error {
	log.Warn().Str("to", msg.To).Str("subject", msg.Subject).Msg("Email client not initialized, skipping email send.")
	return nil
}

var Mailer Dispatcher = NoopDispatcher{}

func InitEmailService() {
	driver := config.ConfigDefault("MAIL_DRIVER", "smtp")
	senderEmail := config.Config("EMAIL_SENDER")
	if senderEmail == "" {
		senderEmail = config.Config("EMAIL_USER")
	}
	senderName := config.ConfigDefault("EMAIL_SENDER_NAME", "Institute")

	switch driver {
	case "brevo":
		apiKey := config.Config("BREVO_API_KEY")
		if apiKey == "" || senderEmail == "" {
			log.Warn().Msg("⚠️ Email service not configured. Missing BREVO_API_KEY or EMAIL_SENDER.")
			return
		}
		Mailer = NewBrevoDispatcher(apiKey, senderEmail, senderName)
	case "smtp":
		host := config.Config("EMAIL_HOST")
		if host == "" || senderEmail == "" {
			log.Warn().Msg("⚠️ Email service not configured. Missing EMAIL_HOST or EMAIL_USER.")
			return
		}
		d, err := NewSMTPDispatcher(SMTPConfig{
			Host:        host,
			Port:        config.ConfigInt("EMAIL_PORT", 587),
			Username:    config.Config("EMAIL_USER"),
			Password:    config.Config("EMAIL_PASS"),
			SenderEmail: senderEmail,
			SenderName:  senderName,
			Timeout:     config.ConfigDuration("EMAIL_TIMEOUT", 15*time.Second),
		})
		if err != nil {
			log.Error().Err(err).Msg("🔥 Failed to initialize SMTP client")
			return
		}
		Mailer = d
	default:
		log.Warn().Str("driver", driver).Msg("⚠️ Unknown MAIL_DRIVER, emails disabled")
		return
	}
	log.Info().Str("driver", driver).Msg("✅ Email service initialized successfully.")
}

func validateRecipient(addr string) error {
	addr = strings.TrimSpace(addr)
	if addr == "" {
		return fmt.Errorf("empty recipient email")
	}
	if _, err := mail.ParseAddress(addr); err != nil {
		return fmt.Errorf("invalid recipient email: %s", addr)
	}
	return nil
}

type Failure struct {
	Recipient string `json:"recipient"`
	Error     string `json:"error"`
}

type BatchReport struct {
	Total    int       `json:"total"`
	Sent     int       `json:"sent"`
	Failed   int       `json:"failed"`
	Failures []Failure `json:"failures"`
}

// SendBatch attempts every message once, in order, and never stops early.
func SendBatch(ctx context.Context, d Dispatcher, msgs []Message) BatchReport {
	report := BatchReport{Total: len(msgs), Failures: []Failure{}}
	for _, msg := range msgs {
		if err := d.Send(ctx, msg); err != nil {
			nerr := apperrors.NotificationError{Recipient: msg.To, Err: err}
			log.Warn().Err(nerr).Str("to", msg.To).Str("subject", msg.Subject).Msg("notification failed, continuing batch")
			report.Failed++
			report.Failures = append(report.Failures, Failure{Recipient: msg.To, Error: err.Error()})
			continue
		}
		report.Sent++
	}
	return report
}
