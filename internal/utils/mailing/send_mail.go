package mailing

import (
	"fmt"
	"io"

	"gopkg.in/gomail.v2"
)

type (
	Mailer interface {
		SendMail(mail Mail) error
	}

	// Dialer is satisfied by *gomail.Dialer.
	Dialer interface {
		DialAndSend(m ...*gomail.Message) error
	}

	MailConfig struct {
		SMTPHost     string
		SMTPPort     int
		SMTPUsername string
		SMTPPassword string
		FromEmail    string
		FromName     string
	}

	Attachment struct {
		FileName    string
		ContentType string
		Content     []byte
	}

	Mail struct {
		To          string
		Subject     string
		TextBody    string
		HTMLBody    string
		Attachments []Attachment
	}

	mailer struct {
		config MailConfig
		dialer Dialer
	}
)

func NewMailer(config MailConfig) Mailer {
	return NewMailerWithDialer(config, gomail.NewDialer(
		config.SMTPHost,
		config.SMTPPort,
		config.SMTPUsername,
		config.SMTPPassword,
	))
}

func NewMailerWithDialer(config MailConfig, dialer Dialer) Mailer {
	return &mailer{config: config, dialer: dialer}
}

func (m *mailer) SendMail(mail Mail) error {
	if m.config.SMTPPassword == "" {
		return fmt.Errorf("SENDGRID_API_KEY not configured")
	}

	message := m.buildMessage(mail)
	if err := m.dialer.DialAndSend(message); err != nil {
		return fmt.Errorf("send mail to %s: %w", mail.To, err)
	}
	return nil
}

func (m *mailer) buildMessage(mail Mail) *gomail.Message {
	message := gomail.NewMessage()
	message.SetAddressHeader("From", m.config.FromEmail, m.config.FromName)
	message.SetHeader("To", mail.To)
	message.SetHeader("Subject", mail.Subject)

	switch {
	case mail.TextBody != "" && mail.HTMLBody != "":
		message.SetBody("text/plain", mail.TextBody)
		message.AddAlternative("text/html", mail.HTMLBody)
	case mail.HTMLBody != "":
		message.SetBody("text/html", mail.HTMLBody)
	default:
		message.SetBody("text/plain", mail.TextBody)
	}

	for _, attachment := range mail.Attachments {
		content := attachment.Content
		message.Attach(attachment.FileName,
			gomail.SetHeader(map[string][]string{
				"Content-Type": {attachment.ContentType},
			}),
			gomail.SetCopyFunc(func(w io.Writer) error {
				_, err := w.Write(content)
				return err
			}),
		)
	}

	return message
}
