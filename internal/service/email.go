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
	appName   string
	isDev     bool
}

func NewEmailService(apiKey, fromEmail, appName string, isDev bool) *EmailService {
	var client *resend.Client
	if apiKey != "" && !isDev {
		client = resend.NewClient(apiKey)
	}

	return &EmailService{
		client:    client,
		fromEmail: fromEmail,
		appName:   appName,
		isDev:     isDev,
	}
}

// SendCheckinSummary mails the coach summary to users who attached an
// email to their account. Best-effort: callers treat a failure as a log
// line, not a failed check-in.
func (s *EmailService) SendCheckinSummary(email, dateKey string, summary *CoachSummary) error {
	subject, body := checkinSummaryEmailTemplate(s.appName, dateKey, summary)

	if s.isDev {
		slog.Info("email sent (dev mode)", "type", "checkin_summary", "to", email, "subject", subject)
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

	_, err := s.client.Emails.SendWithContext(context.Background(), params)
	if err == nil {
		slog.Info("email sent", "type", "checkin_summary", "to", email)
	}
	return err
}
