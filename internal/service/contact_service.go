package service

import (
	"context"
	"fmt"
	"log"

	apperrors "portfolio-backend/internal/errors"
	"portfolio-backend/internal/mailer"
)

// ContactService relays contact form submissions to the configured inbox.
type ContactService interface {
	SendContactMessage(ctx context.Context, name, email, subject, message string) error
}

type contactService struct {
	mailer mailer.Mailer
}

// NewContactService creates a new contact service.
func NewContactService(m mailer.Mailer) ContactService {
	return &contactService{mailer: m}
}

// SendContactMessage builds the outbound mail and blocks until the transport
// accepts it. A transport failure is surfaced directly; nothing is retried.
func (s *contactService) SendContactMessage(ctx context.Context, name, email, subject, message string) error {
	body := fmt.Sprintf(
		"You received a new message from your website contact form:\n\nName: %s\nEmail: %s\nSubject: %s\nMessage: %s\n",
		name, email, subject, message,
	)

	msg := mailer.Message{
		ReplyTo: email,
		Subject: fmt.Sprintf("[Portfolio] %s", subject),
		Body:    body,
	}

	if err := s.mailer.Send(ctx, msg); err != nil {
		log.Printf("contact mail delivery failed: %v", err)
		return apperrors.ErrMailDelivery
	}
	return nil
}
