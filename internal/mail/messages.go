package mail

import (
	"context"
	"fmt"
	"strings"

	"github.io/infrasutra/mailbridge/internal/scripts"
)

// ListMessages lists messages of one mailbox. The account defaults to the
// resolved default account and the mailbox to INBOX.
func (c *Client) ListMessages(ctx context.Context, opts ListOptions) ([]Message, error) {
	limit := normalizeLimit(opts.Limit)
	account, err := c.ResolveAccount(ctx, opts.Account)
	if err != nil {
		return nil, err
	}
	requested := strings.TrimSpace(opts.Mailbox)
	if requested == "" {
		requested = DefaultMailbox
	}
	mailbox := c.ResolveMailbox(ctx, requested, account)

	output, err := c.run(ctx, "list messages", scripts.ListMessages(account, mailbox, limit, opts.UnreadOnly), false)
	if err != nil {
		return nil, err
	}
	messages := parseMessages(output, c.now)
	if len(messages) > limit {
		messages = messages[:limit]
	}
	return messages, nil
}

// SearchMessages finds messages whose subject, sender or content contains
// the query. Without an account or mailbox it searches the unified inbox.
func (c *Client) SearchMessages(ctx context.Context, opts SearchOptions) ([]Message, error) {
	query := strings.TrimSpace(opts.Query)
	if query == "" {
		return nil, validationError("search query is required")
	}
	field, ok := scripts.ParseSearchField(opts.Field)
	if !ok {
		return nil, validationError("unknown search field %q", opts.Field)
	}
	limit := normalizeLimit(opts.Limit)

	account := strings.TrimSpace(opts.Account)
	mailbox := strings.TrimSpace(opts.Mailbox)
	if account != "" || mailbox != "" {
		account, err := c.ResolveAccount(ctx, account)
		if err != nil {
			return nil, err
		}
		if mailbox == "" {
			mailbox = DefaultMailbox
		}
		return c.search(ctx, query, field, account, c.ResolveMailbox(ctx, mailbox, account), limit)
	}
	return c.search(ctx, query, field, "", "", limit)
}

func (c *Client) search(ctx context.Context, query string, field scripts.SearchField, account, mailbox string, limit int) ([]Message, error) {
	output, err := c.run(ctx, "search messages", scripts.SearchMessages(query, field, account, mailbox, limit), false)
	if err != nil {
		return nil, err
	}
	messages := parseMessages(output, c.now)
	if len(messages) > limit {
		messages = messages[:limit]
	}
	return messages, nil
}

// GetMessage returns a message with its content. The lookup scans every
// mailbox and uses the scan timeout.
func (c *Client) GetMessage(ctx context.Context, id string) (Message, error) {
	id, err := validateID(id)
	if err != nil {
		return Message{}, err
	}
	output, err := c.run(ctx, "get message", scripts.GetMessage(id), true)
	if err != nil {
		return Message{}, err
	}
	message, ok := parseMessageDetail(output, c.now)
	if !ok {
		c.logger.Warn("unexpected message output", "id", id, "bytes", len(output))
		return Message{}, fmt.Errorf("get message %s: %w: unexpected output", id, ErrScript)
	}
	return message, nil
}

// MarkRead sets the read status of a message.
func (c *Client) MarkRead(ctx context.Context, id string, read bool) error {
	id, err := validateID(id)
	if err != nil {
		return err
	}
	_, err = c.run(ctx, "mark read", scripts.SetReadStatus(id, read), true)
	return err
}

// SetFlagged flags or unflags a message.
func (c *Client) SetFlagged(ctx context.Context, id string, flagged bool) error {
	id, err := validateID(id)
	if err != nil {
		return err
	}
	_, err = c.run(ctx, "set flagged", scripts.SetFlagged(id, flagged), true)
	return err
}

// DeleteMessage moves a message to the trash.
func (c *Client) DeleteMessage(ctx context.Context, id string) error {
	id, err := validateID(id)
	if err != nil {
		return err
	}
	_, err = c.run(ctx, "delete message", scripts.Delete(id), true)
	return err
}

// MoveMessage moves a message to mailbox in account. Both names are
// resolved first; the account defaults to the default account.
func (c *Client) MoveMessage(ctx context.Context, id, mailbox, account string) error {
	id, err := validateID(id)
	if err != nil {
		return err
	}
	account, mailbox, err = c.resolveDestination(ctx, mailbox, account)
	if err != nil {
		return err
	}
	return c.move(ctx, id, mailbox, account)
}

func (c *Client) resolveDestination(ctx context.Context, mailbox, account string) (string, string, error) {
	mailbox = strings.TrimSpace(mailbox)
	if mailbox == "" {
		return "", "", validationError("destination mailbox is required")
	}
	account, err := c.ResolveAccount(ctx, account)
	if err != nil {
		return "", "", err
	}
	return account, c.ResolveMailbox(ctx, mailbox, account), nil
}

func (c *Client) move(ctx context.Context, id, mailbox, account string) error {
	_, err := c.run(ctx, "move message", scripts.Move(id, account, mailbox), true)
	return err
}

// ListAttachments lists the attachments of a message.
func (c *Client) ListAttachments(ctx context.Context, id string) ([]Attachment, error) {
	id, err := validateID(id)
	if err != nil {
		return nil, err
	}
	output, err := c.run(ctx, "list attachments", scripts.ListAttachments(id), true)
	if err != nil {
		return nil, err
	}
	return parseAttachments(id, output), nil
}
