package mail

import (
	"context"
	"strings"

	gomail "github.com/emersion/go-message/mail"

	"github.io/infrasutra/mailbridge/internal/scripts"
)

// SendEmail composes and sends a message.
func (c *Client) SendEmail(ctx context.Context, opts SendOptions) error {
	msg, err := c.outgoing(ctx, opts, true)
	if err != nil {
		return err
	}
	_, err = c.run(ctx, "send email", scripts.Compose(msg, true), false)
	return err
}

// CreateDraft composes a message and saves it to Drafts. Recipients are
// optional but a draft needs a subject or a body.
func (c *Client) CreateDraft(ctx context.Context, opts SendOptions) error {
	msg, err := c.outgoing(ctx, opts, false)
	if err != nil {
		return err
	}
	_, err = c.run(ctx, "create draft", scripts.Compose(msg, false), false)
	return err
}

func (c *Client) outgoing(ctx context.Context, opts SendOptions, send bool) (scripts.OutgoingMessage, error) {
	var (
		msg scripts.OutgoingMessage
		err error
	)
	if msg.To, err = validateAddresses("to", opts.To); err != nil {
		return msg, err
	}
	if msg.Cc, err = validateAddresses("cc", opts.Cc); err != nil {
		return msg, err
	}
	if msg.Bcc, err = validateAddresses("bcc", opts.Bcc); err != nil {
		return msg, err
	}
	msg.Subject = strings.TrimSpace(opts.Subject)
	msg.Body = opts.Body

	if send {
		if len(msg.To) == 0 {
			return msg, validationError("at least one recipient is required")
		}
		if msg.Subject == "" {
			return msg, validationError("subject is required")
		}
		if strings.TrimSpace(msg.Body) == "" {
			return msg, validationError("body is required")
		}
	} else if msg.Subject == "" && strings.TrimSpace(msg.Body) == "" {
		return msg, validationError("a draft needs a subject or a body")
	}

	if name := strings.TrimSpace(opts.Account); name != "" {
		account, err := c.accountByName(ctx, name)
		if err != nil {
			return msg, err
		}
		if account.Email == "" {
			return msg, validationError("account %q has no email address", account.Name)
		}
		msg.Sender = account.Email
	}
	return msg, nil
}

// validateAddresses trims and checks each address. Empty entries are
// skipped.
func validateAddresses(field string, addresses []string) ([]string, error) {
	var out []string
	for _, raw := range addresses {
		raw = strings.TrimSpace(raw)
		if raw == "" {
			continue
		}
		if _, err := gomail.ParseAddress(raw); err != nil {
			return nil, validationError("invalid %s address %q: %v", field, raw, err)
		}
		out = append(out, raw)
	}
	return out, nil
}

// Reply answers a message, optionally to all recipients. With send false the
// reply is saved as a draft.
func (c *Client) Reply(ctx context.Context, id, body string, replyAll, send bool) error {
	id, err := validateID(id)
	if err != nil {
		return err
	}
	if strings.TrimSpace(body) == "" {
		return validationError("reply body is required")
	}
	_, err = c.run(ctx, "reply", scripts.Reply(id, body, replyAll, send), true)
	return err
}

// Forward forwards a message to the given recipients with an optional note
// above the original.
func (c *Client) Forward(ctx context.Context, id string, to []string, body string, send bool) error {
	id, err := validateID(id)
	if err != nil {
		return err
	}
	recipients, err := validateAddresses("to", to)
	if err != nil {
		return err
	}
	if len(recipients) == 0 {
		return validationError("at least one recipient is required")
	}
	_, err = c.run(ctx, "forward", scripts.Forward(id, recipients, body, send), true)
	return err
}
