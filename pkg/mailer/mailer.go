package mailer

import (
	"context"
	"fmt"
	"time"

	"github.com/mailgun/mailgun-go/v5"
	"go.uber.org/zap"
)

// Service sends transactional mail through Mailgun. When the Mailgun keys are
// not configured it falls back to logging the message, so the password reset
// flow stays usable in development.
type Service struct {
	client      mailgun.Mailgun
	domain      string
	senderEmail string
	senderName  string
	enabled     bool
	log         *zap.Logger
}

func NewService(apiKey, domain, senderEmail, senderName string, log *zap.Logger) *Service {
	enabled := domain != "" && apiKey != ""

	var client mailgun.Mailgun
	if enabled {
		client = mailgun.NewMailgun(apiKey)
	}

	return &Service{
		client:      client,
		domain:      domain,
		senderEmail: senderEmail,
		senderName:  senderName,
		enabled:     enabled,
		log:         log,
	}
}

func (s *Service) IsEnabled() bool {
	return s.enabled
}

// SendPasswordResetEmail mails a reset link to the recipient. Returns nil in
// fallback mode after logging the link.
func (s *Service) SendPasswordResetEmail(to, resetLink string) error {
	if !s.enabled {
		s.log.Info("mailer disabled, logging password reset link instead",
			zap.String("to", to),
			zap.String("reset_link", resetLink),
		)
		return nil
	}

	subject := "Reset Your VendShop Password"
	textBody := fmt.Sprintf(
		"We received a request to reset your password.\n\nOpen this link to choose a new one:\n%s\n\nThe link expires in 1 hour. If you did not request a reset you can ignore this email.",
		resetLink,
	)
	htmlBody := fmt.Sprintf(
		`<p>We received a request to reset your password.</p><p><a href="%s">Reset your password</a></p><p>The link expires in 1 hour. If you did not request a reset you can ignore this email.</p>`,
		resetLink,
	)

	message := mailgun.NewMessage(
		s.domain,
		fmt.Sprintf("%s <%s>", s.senderName, s.senderEmail),
		subject,
		textBody,
		to,
	)
	message.SetHTML(htmlBody)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	resp, err := s.client.Send(ctx, message)
	if err != nil {
		return fmt.Errorf("failed to send password reset email to %s: %w", to, err)
	}

	s.log.Info("password reset email sent", zap.String("to", to), zap.String("message_id", fmt.Sprint(resp)))
	return nil
}
