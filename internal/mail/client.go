// Package mail is the operation layer over Apple Mail. Each exported Client
// method resolves names, builds a script, runs it and parses the reply.
// Failures come back as errors wrapping ErrValidation, ErrNotFound,
// ErrUnavailable or ErrScript, and are logged here.
package mail

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.io/infrasutra/mailbridge/internal/applescript"
	"github.io/infrasutra/mailbridge/internal/scripts"
)

const (
	DefaultLimit   = 20
	DefaultMailbox = "INBOX"
)

type Client struct {
	runner      applescript.Runner
	logger      *slog.Logger
	scanTimeout time.Duration
	now         func() time.Time

	mu             sync.Mutex
	defaultAccount string
}

// New returns a Client. defaultAccount may be empty, in which case the first
// account Mail reports is used and remembered. scanTimeout applies to
// operations that search every mailbox for a message id.
func New(runner applescript.Runner, logger *slog.Logger, defaultAccount string, scanTimeout time.Duration) *Client {
	if logger == nil {
		logger = slog.Default()
	}
	return &Client{
		runner:         runner,
		logger:         logger,
		scanTimeout:    scanTimeout,
		now:            time.Now,
		defaultAccount: strings.TrimSpace(defaultAccount),
	}
}

// run executes script and classifies any failure. Scans get the longer
// timeout.
func (c *Client) run(ctx context.Context, op, script string, scan bool) (string, error) {
	var opts applescript.Options
	if scan {
		opts.Timeout = c.scanTimeout
	}
	started := time.Now()
	output, err := c.runner.Run(ctx, script, opts)
	if err != nil {
		err = classify(err)
		c.logger.Warn("mail operation failed", "op", op, "duration", time.Since(started), "error", err)
		return "", fmt.Errorf("%s: %w", op, err)
	}
	c.logger.Debug("mail operation", "op", op, "duration", time.Since(started), "bytes", len(output))
	return output, nil
}

func (c *Client) ListAccounts(ctx context.Context) ([]Account, error) {
	output, err := c.run(ctx, "list accounts", scripts.ListAccounts(), false)
	if err != nil {
		return nil, err
	}
	return parseAccounts(output), nil
}

// ListMailboxes lists the mailboxes of account, or of all accounts when
// account is empty.
func (c *Client) ListMailboxes(ctx context.Context, account string) ([]Mailbox, error) {
	output, err := c.run(ctx, "list mailboxes", scripts.ListMailboxes(strings.TrimSpace(account)), false)
	if err != nil {
		return nil, err
	}
	return parseMailboxes(output), nil
}

// UnreadCounts returns unread totals per account, or for one account.
func (c *Client) UnreadCounts(ctx context.Context, account string) ([]UnreadCount, error) {
	output, err := c.run(ctx, "unread counts", scripts.UnreadCounts(strings.TrimSpace(account)), false)
	if err != nil {
		return nil, err
	}
	return parseUnreadCounts(output), nil
}

// validateID rejects anything but a decimal message id. Ids are placed in
// scripts unquoted.
func validateID(id string) (string, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return "", validationError("message id is required")
	}
	for _, r := range id {
		if r < '0' || r > '9' {
			return "", validationError("message id %q must be numeric", id)
		}
	}
	return id, nil
}

func normalizeLimit(limit int) int {
	if limit <= 0 {
		return DefaultLimit
	}
	return limit
}
