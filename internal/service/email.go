package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/resend/resend-go/v2"
)

type EmailService struct {
	client    *resend.Client
	fromEmail string
	isDev     bool
	appURL    string
	appName   string
}

func NewEmailService(apiKey, fromEmail, appURL, appName string, isDev bool) *EmailService {
	var client *resend.Client
	if apiKey != "" && !isDev {
		client = resend.NewClient(apiKey)
	}

	return &EmailService{
		client:    client,
		fromEmail: fromEmail,
		isDev:     isDev,
		appURL:    appURL,
		appName:   appName,
	}
}

// SendProgramCompletedEmail tells one participant that every goal of a program is done.
func (s *EmailService) SendProgramCompletedEmail(ctx context.Context, email, name, programTitle string, programID int64) error {
	programURL := fmt.Sprintf("%s/programs/%d", s.appURL, programID)
	subject, body := programCompletedEmailTemplate(name, programTitle, programURL, s.appName)

	if s.isDev {
		slog.Info("email sent (dev mode)", "type", "program_completed", "to", email, "subject", subject, "url", programURL)
		return nil
	}

	if s.client == nil {
		return fmt.Errorf("email service not configured (missing RESEND_API_KEY)")
	}

	params := &resend.SendEmailRequest{
		From:    s.fromEmail,
		To:      []string{email},
		Subject: subject,
		Text:    body,
	}

	_, err := s.client.Emails.SendWithContext(ctx, params)
	if err == nil {
		slog.Info("email sent", "type", "program_completed", "to", email)
	}
	return err
}
