package utils

import (
	"fmt"

	"gopkg.in/gomail.v2"

	"teamtrack/config"
)

// SendNotificationEmail delivers an email copy of an in-app notification.
// Best effort: callers log failures and move on, the notification row is
// the source of truth.
func SendNotificationEmail(to, subject, message string) error {
	smtp := config.AppConfig.SMTP
	if smtp.Host == "" {
		// Email delivery not configured
		return nil
	}

	m := gomail.NewMessage()
	m.SetHeader("From", fmt.Sprintf("TeamTrack <%s>", smtp.FromEmail))
	m.SetHeader("To", to)
	m.SetHeader("Subject", subject)
	m.SetBody("text/plain", message)

	d := gomail.NewDialer(smtp.Host, smtp.Port, smtp.Username, smtp.Password)
	if err := d.DialAndSend(m); err != nil {
		return fmt.Errorf("error sending email: %w", err)
	}
	return nil
}
