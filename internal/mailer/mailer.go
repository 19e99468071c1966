package mailer

// Mailer defines the interface for sending emails.
type Mailer interface {
	SendPasswordReset(toEmail, toName, resetLink string) error
}
