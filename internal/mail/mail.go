// Package mail hands outbound email off to the mail side-service. The
// API process never talks SMTP itself; it enqueues fully-rendered
// messages onto the mail queue and the transport delivers them.
package mail

import (
	"fmt"

	"storefront/pkg/rabbitmq"
)

// Message is one outbound email, ready for delivery.
type Message struct {
	From    string `json:"from"`
	To      string `json:"to"`
	Subject string `json:"subject"`
	HTML    string `json:"html"`
}

// Mailer delivers a single message.
type Mailer interface {
	Send(msg Message) error
}

// QueueMailer publishes messages onto the mail queue.
type QueueMailer struct {
	mq    *rabbitmq.Client
	queue string
}

// NewQueueMailer creates a QueueMailer publishing to the given queue.
func NewQueueMailer(mq *rabbitmq.Client, queue string) *QueueMailer {
	return &QueueMailer{
		mq:    mq,
		queue: queue,
	}
}

// Send enqueues the message for delivery by the mail worker.
func (m *QueueMailer) Send(msg Message) error {
	if err := m.mq.PublishJSON(m.queue, msg); err != nil {
		return fmt.Errorf("failed to enqueue mail to %s: %w", msg.To, err)
	}
	return nil
}

const emailTemplate = `
<div style="border: 1px solid black; padding: 20px; font-family: sans-serif; line-height: 2; font-size: 20px;">
  <h2>Hello there!</h2>
  <p>%s</p>
  <p>The Storefront Team</p>
</div>`

// ResetEmailHTML renders the password-reset email body with a link
// embedding the reset token.
func ResetEmailHTML(appURL, token string) string {
	body := fmt.Sprintf(
		`Your password reset token is here! <a href="%s/reset?resetToken=%s">Click here to reset your password</a>`,
		appURL, token,
	)
	return fmt.Sprintf(emailTemplate, body)
}
