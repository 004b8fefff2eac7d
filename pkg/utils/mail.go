package utils

import (
	"context"
	"fmt"

	"github.com/sipcircle/sipcircle/pkg/logger"
	"gopkg.in/gomail.v2"
)

// EmailConfig holds SMTP and app settings, passed in from app config.
type EmailConfig struct {
	SMTPHost     string
	SMTPPort     int
	SMTPUsername string
	SMTPPassword string
	AppURL       string
	FromEmail    string
}

// SendNotificationEmail delivers an in-app notification over email for users
// who opted into email delivery for that notification type.
func SendNotificationEmail(ctx context.Context, config EmailConfig, email, username, title, message string, log *logger.Logger) error {
	htmlBody := fmt.Sprintf(`
<!DOCTYPE html>
<html lang="en">
<head>
    <meta charset="UTF-8">
    <title>%s</title>
</head>
<body style="font-family: Arial, sans-serif; background-color: #f4f4f4; margin: 0; padding: 0; color: #333;">
    <div style="max-width: 600px; margin: 40px auto; background-color: #ffffff; border-radius: 8px; overflow: hidden;">
        <div style="background-color: #7b1e3b; padding: 20px; text-align: center; color: #ffffff;">
            <h1 style="margin: 0; font-size: 24px;">sipcircle</h1>
        </div>
        <div style="padding: 30px; line-height: 1.6;">
            <p>Hi %s,</p>
            <p><strong>%s</strong></p>
            <p>%s</p>
            <p style="text-align: center;">
                <a href="%s/notifications" style="display: inline-block; padding: 12px 24px; background-color: #7b1e3b; color: #ffffff; text-decoration: none; border-radius: 5px; font-weight: bold;">View on sipcircle</a>
            </p>
        </div>
        <div style="padding: 20px; text-align: center; font-size: 12px; color: #999;">
            You are receiving this because email notifications are enabled in your preferences.
        </div>
    </div>
</body>
</html>`, title, username, title, message, config.AppURL)

	m := gomail.NewMessage()
	m.SetHeader("From", config.FromEmail)
	m.SetHeader("To", email)
	m.SetHeader("Subject", title)
	m.SetBody("text/html", htmlBody)

	d := gomail.NewDialer(config.SMTPHost, config.SMTPPort, config.SMTPUsername, config.SMTPPassword)
	if err := d.DialAndSend(m); err != nil {
		if log != nil {
			log.Warn(ctx).WithMeta(Map{"email": email, "error": err.Error()}).Logs("Failed to send notification email")
		}
		return fmt.Errorf("failed to send notification email: %w", err)
	}

	if log != nil {
		log.Info(ctx).WithMeta(Map{"email": email}).Logs("Notification email sent")
	}
	return nil
}
