package mailer

import (
	"fmt"

	"go.uber.org/zap"
	"gopkg.in/gomail.v2"

	"github.com/anmolkhurana490/Himalayan-Nest-Real-Estate-sub000/internal/platform/logger"
)

type Config struct {
	Host     string
	Port     int
	From     string
	Password string
}

type sender interface {
	DialAndSend(m ...*gomail.Message) error
}

// SMTPMailer sends plain-text notices through an SMTP relay.
type SMTPMailer struct {
	dialer sender
	from   string
	logger *logger.Logger
}

func NewSMTPMailer(cfg Config, log *logger.Logger) *SMTPMailer {
	return &SMTPMailer{
		dialer: gomail.NewDialer(cfg.Host, cfg.Port, cfg.From, cfg.Password),
		from:   cfg.From,
		logger: log.Named("Mailer"),
	}
}

func (m *SMTPMailer) SendListingCreatedEmail(toEmail, listingTitle string) error {
	body := fmt.Sprintf("Your property %q is now live on Himalayan Nest.", listingTitle)
	return m.send(toEmail, "Your property has been listed", body)
}

func (m *SMTPMailer) SendEnquiryReceivedEmail(toEmail, listingTitle, message string) error {
	body := fmt.Sprintf("You have a new enquiry about %q:\n\n%s\n\nSign in to Himalayan Nest to respond.", listingTitle, message)
	return m.send(toEmail, "New enquiry for "+listingTitle, body)
}

func (m *SMTPMailer) send(to, subject, body string) error {
	msg := gomail.NewMessage()
	msg.SetHeader("From", m.from)
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", subject)
	msg.SetBody("text/plain", body)

	if err := m.dialer.DialAndSend(msg); err != nil {
		m.logger.Warn("Failed to send email", zap.String("to", to), zap.String("subject", subject), zap.Error(err))
		return fmt.Errorf("send email to %s: %w", to, err)
	}
	m.logger.Debug("Email sent", zap.String("to", to), zap.String("subject", subject))
	return nil
}
