package mailer

import (
	"context"
	"fmt"

	mail "github.com/wneessen/go-mail"
)

// Message is an outbound contact notification. Recipient and sender are fixed
// by configuration; only reply-to, subject and body vary per message.
type Message struct {
	ReplyTo string
	Subject string
	Body    string
}

// Mailer hands a message to the mail transport and reports acceptance.
// Success means the transport accepted the message, not end-to-end delivery.
// There is no retry and no queue.
type Mailer interface {
	Send(ctx context.Context, msg Message) error
}

// SMTPMailer sends messages over authenticated SMTP.
type SMTPMailer struct {
	client *mail.Client
	from   string
	to     string
}

// NewSMTPMailer creates an SMTP mailer with PLAIN auth on the given host.
func NewSMTPMailer(host string, port int, username, password, from, to string) (*SMTPMailer, error) {
	if from == "" || to == "" {
		return nil, fmt.Errorf("mail from and to addresses are required")
	}

	client, err := mail.NewClient(host,
		mail.WithPort(port),
		mail.WithSMTPAuth(mail.SMTPAuthPlain),
		mail.WithUsername(username),
		mail.WithPassword(password),
	)
	if err != nil {
		return nil, fmt.Errorf("create smtp client: %w", err)
	}

	return &SMTPMailer{
		client: client,
		from:   from,
		to:     to,
	}, nil
}

// Send blocks until the transport acknowledges the message or fails.
func (m *SMTPMailer) Send(ctx context.Context, msg Message) error {
	mm := mail.NewMsg()
	if err := mm.FromFormat("Portfolio Contact", m.from); err != nil {
		return fmt.Errorf("set from: %w", err)
	}
	if err := mm.To(m.to); err != nil {
		return fmt.Errorf("set to: %w", err)
	}
	if msg.ReplyTo != "" {
		if err := mm.ReplyTo(msg.ReplyTo); err != nil {
			return fmt.Errorf("set reply-to: %w", err)
		}
	}
	mm.Subject(msg.Subject)
	mm.SetBodyString(mail.TypeTextPlain, msg.Body)

	if err := m.client.DialAndSendWithContext(ctx, mm); err != nil {
		return fmt.Errorf("send mail: %w", err)
	}
	return nil
}
