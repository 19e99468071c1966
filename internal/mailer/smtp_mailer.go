package mailer

import (
	"fmt"
	"net/smtp"
	"strings"

	"github.com/diepdx123/be-xuongWorkshop/internal/platform/logger"
)

// SMTPMailerService implements the Mailer interface using net/smtp.
type SMTPMailerService struct {
	host       string
	port       int
	username   string
	password   string
	from       string // The "From" address for the email header
	senderName string // The display name for the sender
	logger     logger.Logger
}

// NewSMTPMailerService creates a new SMTPMailerService.
func NewSMTPMailerService(host string, port int, username, password, fromEmail, senderName string, log logger.Logger) *SMTPMailerService {
	return &SMTPMailerService{
		host:       host,
		port:       port,
		username:   username,
		password:   password,
		from:       fromEmail,
		senderName: senderName,
		logger:     log.With("mailer", "smtp"),
	}
}

// SendPasswordReset sends the password-reset email using SMTP.
func (s *SMTPMailerService) SendPasswordReset(toEmailAddr, toName, resetLink string) error {
	s.logger.Infof("Attempting to send password reset email via SMTP to %s (host %s:%d)", toEmailAddr, s.host, s.port)

	subject := "Password Reset"

	htmlBodyContent := fmt.Sprintf(`<p>Hello %s,</p>
                             <p>A password reset was requested for your account.</p>
                             <p>Please follow this link to complete it: <a href="%s">%s</a></p>
                             <p>The link expires in 10 minutes. If you did not request this, please ignore this email.</p>`, toName, resetLink, resetLink)

	plainTextBodyContent := fmt.Sprintf(`Hello %s,
                           A password reset was requested for your account.
                           Please follow this link to complete it: %s
                           The link expires in 10 minutes. If you did not request this, please ignore this email.`, toName, resetLink)

	auth := smtp.PlainAuth("", s.username, s.password, s.host)

	headers := make(map[string]string)
	if s.senderName != "" {
		headers["From"] = fmt.Sprintf("%s <%s>", s.senderName, s.from)
	} else {
		headers["From"] = s.from
	}
	headers["To"] = toEmailAddr
	headers["Subject"] = subject
	headers["MIME-Version"] = "1.0"

	boundary := "reset-boundary-12345"
	headers["Content-Type"] = fmt.Sprintf("multipart/alternative; boundary=%s", boundary)

	var msgBuilder strings.Builder

	for k, v := range headers {
		msgBuilder.WriteString(fmt.Sprintf("%s: %s\r\n", k, v))
	}
	msgBuilder.WriteString("\r\n")

	msgBuilder.WriteString(fmt.Sprintf("--%s\r\n", boundary))
	msgBuilder.WriteString("Content-Type: text/plain; charset=\"utf-8\"\r\n")
	msgBuilder.WriteString("Content-Transfer-Encoding: 7bit\r\n\r\n")
	msgBuilder.WriteString(plainTextBodyContent)
	msgBuilder.WriteString("\r\n\r\n")

	msgBuilder.WriteString(fmt.Sprintf("--%s\r\n", boundary))
	msgBuilder.WriteString("Content-Type: text/html; charset=\"utf-8\"\r\n")
	msgBuilder.WriteString("Content-Transfer-Encoding: 7bit\r\n\r\n")
	msgBuilder.WriteString(htmlBodyContent)
	msgBuilder.WriteString("\r\n\r\n")

	msgBuilder.WriteString(fmt.Sprintf("--%s--\r\n", boundary))

	msg := msgBuilder.String()

	addr := fmt.Sprintf("%s:%d", s.host, s.port)

	err := smtp.SendMail(addr, auth, s.from, []string{toEmailAddr}, []byte(msg))
	if err != nil {
		s.logger.Errorf("Failed to send email via SMTP to %s: %v", toEmailAddr, err)
		return fmt.Errorf("smtp.SendMail failed: %w", err)
	}

	s.logger.Infof("Password reset email sent successfully via SMTP to %s", toEmailAddr)
	return nil
}
