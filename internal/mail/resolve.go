package mail

import (
	"context"
	"fmt"
	"strings"
)

// mailboxAlias lists the names different account types use for one
// mailbox role, in the order they are tried.
type mailboxAlias struct {
	Role    string
	Aliases []string
}

var mailboxAliases = []mailboxAlias{
	{Role: "inbox", Aliases: []string{"INBOX", "Inbox"}},
	{Role: "sent", Aliases: []string{"Sent", "Sent Items", "Sent Messages", "Sent Mail", "[Gmail]/Sent Mail"}},
	{Role: "drafts", Aliases: []string{"Drafts", "Draft", "[Gmail]/Drafts"}},
	{Role: "trash", Aliases: []string{"Trash", "Deleted Items", "Deleted Messages", "Bin", "[Gmail]/Trash"}},
	{Role: "junk", Aliases: []string{"Junk", "Junk E-mail", "Junk Email", "Spam", "[Gmail]/Spam"}},
	{Role: "archive", Aliases: []string{"Archive", "Archives", "All Mail", "[Gmail]/All Mail"}},
}

// aliasesFor returns the alias list of the role that requested names, either
// as the role itself or as one of its aliases.
func aliasesFor(requested string) []string {
	for _, entry := range mailboxAliases {
		if strings.EqualFold(requested, entry.Role) {
			return entry.Aliases
		}
		for _, alias := range entry.Aliases {
			if strings.EqualFold(requested, alias) {
				return entry.Aliases
			}
		}
	}
	return nil
}

// matchMailbox picks the name in available that requested refers to: exact
// match, then case-insensitive match, then each alias of requested's role
// exactly and case-insensitively. It reports false when nothing matches.
func matchMailbox(requested string, available []string) (string, bool) {
	for _, name := range available {
		if name == requested {
			return name, true
		}
	}
	for _, name := range available {
		if strings.EqualFold(name, requested) {
			return name, true
		}
	}
	for _, alias := range aliasesFor(requested) {
		for _, name := range available {
			if name == alias {
				return name, true
			}
		}
		for _, name := range available {
			if strings.EqualFold(name, alias) {
				return name, true
			}
		}
	}
	return "", false
}

// ResolveMailbox maps requested onto a mailbox name of account as Mail knows
// it. When nothing matches, or the live list cannot be read, requested is
// returned unchanged and the eventual script reports the mailbox as missing.
func (c *Client) ResolveMailbox(ctx context.Context, requested, account string) string {
	mailboxes, err := c.ListMailboxes(ctx, account)
	if err != nil {
		c.logger.Debug("mailbox list unavailable for resolution", "account", account, "error", err)
		return requested
	}
	names := make([]string, 0, len(mailboxes))
	for _, mailbox := range mailboxes {
		names = append(names, mailbox.Name)
	}
	if name, ok := matchMailbox(requested, names); ok {
		if name != requested {
			c.logger.Debug("resolved mailbox", "requested", requested, "resolved", name, "account", account)
		}
		return name
	}
	return requested
}

// ResolveAccount returns requested when set, otherwise the configured default
// account, otherwise the first account Mail reports. The looked-up account
// is cached on the client for the life of the process.
func (c *Client) ResolveAccount(ctx context.Context, requested string) (string, error) {
	if requested = strings.TrimSpace(requested); requested != "" {
		return requested, nil
	}

	c.mu.Lock()
	cached := c.defaultAccount
	c.mu.Unlock()
	if cached != "" {
		return cached, nil
	}

	accounts, err := c.ListAccounts(ctx)
	if err != nil {
		return "", fmt.Errorf("resolve default account: %w", err)
	}
	if len(accounts) == 0 {
		return "", fmt.Errorf("resolve default account: %w: no mail accounts configured", ErrNotFound)
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.defaultAccount == "" {
		c.defaultAccount = accounts[0].Name
	}
	return c.defaultAccount, nil
}

// accountByName finds a live account by name, case-insensitively.
func (c *Client) accountByName(ctx context.Context, name string) (Account, error) {
	accounts, err := c.ListAccounts(ctx)
	if err != nil {
		return Account{}, err
	}
	return c.accountByNameIn(accounts, name)
}

func (c *Client) accountByNameIn(accounts []Account, name string) (Account, error) {
	for _, account := range accounts {
		if account.Name == name {
			return account, nil
		}
	}
	for _, account := range accounts {
		if strings.EqualFold(account.Name, name) {
			return account, nil
		}
	}
	return Account{}, fmt.Errorf("%w: account %q", ErrNotFound, name)
}
