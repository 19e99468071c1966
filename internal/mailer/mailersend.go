package mailer

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/diepdx123/be-xuongWorkshop/internal/platform/logger"
)

const mailerSendAPIURL = "https://api.mailersend.com/v1/email"

// MailerSendService implements the Mailer interface using MailerSend.
type MailerSendService struct {
	apiKey    string
	fromEmail string
	fromName  string
	client    *http.Client
	logger    logger.Logger
}

// NewMailerSendService creates a new MailerSendService.
func NewMailerSendService(apiKey, fromEmail, fromName string, log logger.Logger) *MailerSendService {
	return &MailerSendService{
		apiKey:    apiKey,
		fromEmail: fromEmail,
		fromName:  fromName,
		client: &http.Client{
			Timeout: 10 * time.Second,
		},
		logger: log.With("mailer", "mailersend"),
	}
}

type mailerSendRequest struct {
	From            fromEmail              `json:"from"`
	To              []toEmail              `json:"to"`
	Subject         string                 `json:"subject"`
	Text            string                 `json:"text"`
	HTML            string                 `json:"html"`
	Personalization []personalizationEntry `json:"personalization,omitempty"`
}

type fromEmail struct {
	Email string `json:"email"`
	Name  string `json:"name,omitempty"`
}

type toEmail struct {
	Email string `json:"email"`
	Name  string `json:"name,omitempty"`
}

type personalizationEntry struct {
	Email string            `json:"email"`
	Data  map[string]string `json:"data"`
}

// SendPasswordReset sends the password-reset email to the user.
func (s *MailerSendService) SendPasswordReset(toEmailAddr, toName, resetLink string) error {
	s.logger.Infof("Attempting to send password reset email to %s", toEmailAddr)

	subject := "Password Reset"
	htmlBody := fmt.Sprintf(`<p>Hello %s,</p>
                             <p>A password reset was requested for your account.</p>
                             <p>Please follow this link to complete it: <a href="%s">%s</a></p>
                             <p>The link expires in 10 minutes. If you did not request this, please ignore this email.</p>`, toName, resetLink, resetLink)
	textBody := fmt.Sprintf(`Hello %s,
                           A password reset was requested for your account.
                           Please follow this link to complete it: %s
                           The link expires in 10 minutes. If you did not request this, please ignore this email.`, toName, resetLink)

	requestPayload := mailerSendRequest{
		From: fromEmail{
			Email: s.fromEmail,
			Name:  s.fromName,
		},
		To: []toEmail{
			{Email: toEmailAddr, Name: toName},
		},
		Subject: subject,
		Text:    textBody,
		HTML:    htmlBody,
		Personalization: []personalizationEntry{
			{
				Email: toEmailAddr,
				Data: map[string]string{
					"name": toName,
					"link": resetLink,
				},
			},
		},
	}

	payloadBytes, err := json.Marshal(requestPayload)
	if err != nil {
		s.logger.Errorf("Failed to marshal MailerSend request payload: %v", err)
		return fmt.Errorf("failed to marshal request payload: %w", err)
	}

	req, err := http.NewRequest("POST", mailerSendAPIURL, bytes.NewBuffer(payloadBytes))
	if err != nil {
		s.logger.Errorf("Failed to create MailerSend HTTP request: %v", err)
		return fmt.Errorf("failed to create http request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+s.apiKey)

	resp, err := s.client.Do(req)
	if err != nil {
		s.logger.Errorf("Failed to send request to MailerSend: %v", err)
		return fmt.Errorf("failed to send request to MailerSend: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusAccepted {
		s.logger.Errorf("MailerSend API request failed with status code %d", resp.StatusCode)
		return fmt.Errorf("MailerSend API request failed with status code %d", resp.StatusCode)
	}

	s.logger.Infof("Password reset email sent successfully via MailerSend to %s (messageID %s)", toEmailAddr, resp.Header.Get("X-Message-Id"))
	return nil
}
