package mail

import (
	"context"
	"strings"

	"github.io/infrasutra/mailbridge/internal/scripts"
)

// Statistics sums mailbox counts per account. When account is set only that
// account is counted. Recent activity is counted over each inbox only; an
// account whose mailboxes cannot be listed is skipped and logged.
func (c *Client) Statistics(ctx context.Context, account string) (Stats, error) {
	accounts, err := c.ListAccounts(ctx)
	if err != nil {
		return Stats{}, err
	}
	if name := strings.TrimSpace(account); name != "" {
		match, err := c.accountByNameIn(accounts, name)
		if err != nil {
			return Stats{}, err
		}
		accounts = []Account{match}
	}

	var stats Stats
	for _, acct := range accounts {
		mailboxes, err := c.ListMailboxes(ctx, acct.Name)
		if err != nil {
			c.logger.Warn("skip account in statistics", "account", acct.Name, "error", err)
			continue
		}
		entry := AccountStats{Account: acct.Name, Mailboxes: len(mailboxes)}
		names := make([]string, 0, len(mailboxes))
		for _, mb := range mailboxes {
			entry.Messages += mb.TotalCount
			entry.Unread += mb.UnreadCount
			names = append(names, mb.Name)
		}
		if inbox, ok := matchMailbox("inbox", names); ok {
			output, err := c.run(ctx, "inbox activity", scripts.InboxActivity(acct.Name, inbox), false)
			if err != nil {
				c.logger.Warn("inbox activity unavailable", "account", acct.Name, "error", err)
			} else {
				entry.Last24h, entry.Last7d, entry.Last30d = parseActivity(output)
			}
		}

		stats.Accounts = append(stats.Accounts, entry)
		stats.TotalMessages += entry.Messages
		stats.TotalUnread += entry.Unread
		stats.Last24h += entry.Last24h
		stats.Last7d += entry.Last7d
		stats.Last30d += entry.Last30d
	}
	return stats, nil
}
