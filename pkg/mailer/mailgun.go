package mailer

import (
	"context"
	"fmt"
	"time"

	mg "github.com/mailgun/mailgun-go/v4"
)

const sendTimeout = 10 * time.Second

// Mailgun delivers rendered notification emails.
type Mailgun struct {
	client mg.Mailgun
	sender string
	tag    string
}

// NewMailgun builds a sender for domain. apiBase selects the region
// (e.g. mg.APIBaseEU) and may be empty. tag is attached to every message.
func NewMailgun(domain, apiKey, sender, apiBase, tag string) *Mailgun {
	c := mg.NewMailgun(domain, apiKey)
	if apiBase != "" {
		c.SetAPIBase(apiBase)
	}
	return &Mailgun{client: c, sender: sender, tag: tag}
}

// Send delivers one message. html is optional.
func (m *Mailgun) Send(ctx context.Context, to, subject, text, html string) error {
	msg := m.client.NewMessage(m.sender, subject, text, to)
	if html != "" {
		msg.SetHtml(html)
	}
	if m.tag != "" {
		if err := msg.AddTag(m.tag); err != nil {
			return fmt.Errorf("mailgun tag: %w", err)
		}
	}
	c, cancel := context.WithTimeout(ctx, sendTimeout)
	defer cancel()
	if _, _, err := m.client.Send(c, msg); err != nil {
		return fmt.Errorf("mailgun send to %s: %w", to, err)
	}
	return nil
}
