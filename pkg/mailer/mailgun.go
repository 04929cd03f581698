package mailer

import (
	"context"
	"time"

	mg "github.com/mailgun/mailgun-go/v4"
)

// Mailgun delivers bookstore emails. All outbound mail is plain text
// from a single configured sender address.
type Mailgun struct {
	client *mg.MailgunImpl
	sender string
}

func NewMailgun(domain, apiKey, sender string) *Mailgun {
	return &Mailgun{client: mg.NewMailgun(domain, apiKey), sender: sender}
}

// SendJob delivers one queued email job.
func (m *Mailgun) SendJob(ctx context.Context, job EmailJob) error {
	msg := m.client.NewMessage(m.sender, job.Subject, job.Text, job.To)
	c, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	_, _, err := m.client.Send(c, msg)
	return err
}
