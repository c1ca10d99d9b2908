package smtpadapter

import (
	"context"
	"fmt"
	"strings"

	"musubime/contexts/notifications/notification-service/domain/entities"

	"gopkg.in/gomail.v2"
)

type Config struct {
	Host      string
	Port      int
	Username  string
	Password  string
	FromName  string
	FromEmail string
}

// Mailer sends plain-text email over SMTP. A mailer without a host reports
// every message as not delivered.
type Mailer struct {
	config Config
	dialer *gomail.Dialer
}

func NewMailer(config Config) Mailer {
	config.Host = strings.TrimSpace(config.Host)
	if config.Port <= 0 {
		config.Port = 587
	}
	mailer := Mailer{config: config}
	if config.Host != "" {
		mailer.dialer = gomail.NewDialer(config.Host, config.Port, config.Username, config.Password)
	}
	return mailer
}

func (m Mailer) SendEmail(ctx context.Context, email entities.Email) (bool, error) {
	if m.dialer == nil {
		return false, nil
	}
	if err := ctx.Err(); err != nil {
		return false, err
	}
	message := m.compose(email)
	if err := m.dialer.DialAndSend(message); err != nil {
		return false, fmt.Errorf("send email to %s: %w", email.To, err)
	}
	return true, nil
}

func (m Mailer) compose(email entities.Email) *gomail.Message {
	fromName, fromEmail := email.FromName, email.FromEmail
	if strings.TrimSpace(fromEmail) == "" {
		fromName, fromEmail = m.config.FromName, m.config.FromEmail
	}

	message := gomail.NewMessage()
	message.SetAddressHeader("From", fromEmail, fromName)
	if strings.TrimSpace(email.ToName) != "" {
		message.SetAddressHeader("To", email.To, email.ToName)
	} else {
		message.SetHeader("To", email.To)
	}
	message.SetHeader("Subject", email.Subject)
	message.SetBody("text/plain", email.Body)
	return message
}
