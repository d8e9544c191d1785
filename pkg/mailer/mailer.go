package mailer

import (
	"fmt"
	"net/smtp"
)

// Mailer sends outbound account emails.
type Mailer interface {
	SendConfirmationEmail(to, username, token string) error
}

// SMTPConfig holds the mail server settings.
type SMTPConfig struct {
	Host     string
	Port     string
	Username string
	Password string
	From     string
	FromName string
	BaseURL  string
}

type smtpMailer struct {
	cfg SMTPConfig
}

func NewSMTPMailer(cfg SMTPConfig) Mailer {
	return &smtpMailer{cfg: cfg}
}

func (m *smtpMailer) SendConfirmationEmail(to, username, token string) error {
	confirmURL := fmt.Sprintf("%s/api/auth/confirmed_email/%s", m.cfg.BaseURL, token)

	subject := "Confirm your email"
	body := fmt.Sprintf(`
		<html>
		<body>
			<h2>Welcome to %s, %s!</h2>
			<p>Please confirm your email address by following the link below:</p>
			<p><a href="%s">Confirm email</a></p>
			<p>Or paste this address into your browser:</p>
			<p>%s</p>
			<p>If you did not sign up, you can safely ignore this message.</p>
		</body>
		</html>
	`, m.cfg.FromName, username, confirmURL, confirmURL)

	return m.send(to, subject, body)
}

func (m *smtpMailer) send(to, subject, body string) error {
	message := []byte(fmt.Sprintf("From: %s <%s>\r\n"+
		"To: %s\r\n"+
		"Subject: %s\r\n"+
		"MIME-version: 1.0;\r\n"+
		"Content-Type: text/html; charset=\"UTF-8\";\r\n\r\n"+
		"%s\r\n", m.cfg.FromName, m.cfg.From, to, subject, body))

	auth := smtp.PlainAuth("", m.cfg.Username, m.cfg.Password, m.cfg.Host)
	return smtp.SendMail(m.cfg.Host+":"+m.cfg.Port, auth, m.cfg.From, []string{to}, message)
}
