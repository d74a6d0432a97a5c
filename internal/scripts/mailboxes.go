package scripts

import "fmt"

// AccountFields is the number of fields per account row:
// name, primary email, enabled, account type.
const AccountFields = 4

func ListAccounts() string {
	return prelude + guarded(`		set output to ""
		repeat with acct in accounts
			set acctEmail to ""
			try
				set acctEmail to item 1 of (email addresses of acct)
			end try
			set acctType to ""
			try
				set acctType to (account type of acct) as string
			end try
			set output to output & (name of acct) & my fieldSep & acctEmail & my fieldSep & ((enabled of acct) as string) & my fieldSep & acctType & my recordSep
		end repeat
		return output`)
}

// MailboxFields is the number of fields per mailbox row:
// name, account, unread count, message count.
const MailboxFields = 4

// ListMailboxes lists the mailboxes of one account, or of every account when
// account is empty.
func ListMailboxes(account string) string {
	target := "accounts"
	if account != "" {
		target = "{account " + quote(account) + "}"
	}
	return prelude + guarded(fmt.Sprintf(`		set output to ""
		repeat with acct in %s
			set acctName to name of acct
			repeat with mbox in mailboxes of acct
				set output to output & (name of mbox) & my fieldSep & acctName & my fieldSep & ((unread count of mbox) as string) & my fieldSep & ((count of messages of mbox) as string) & my recordSep
			end repeat
		end repeat
		return output`, target))
}

// UnreadFields is the number of fields per unread-count row: account, unread.
const UnreadFields = 2

// UnreadCounts sums unread messages across the mailboxes of each account, or
// of one account.
func UnreadCounts(account string) string {
	target := "accounts"
	if account != "" {
		target = "{account " + quote(account) + "}"
	}
	return prelude + guarded(fmt.Sprintf(`		set output to ""
		repeat with acct in %s
			set acctUnread to 0
			repeat with mbox in mailboxes of acct
				set acctUnread to acctUnread + (unread count of mbox)
			end repeat
			set output to output & (name of acct) & my fieldSep & (acctUnread as string) & my recordSep
		end repeat
		return output`, target))
}

// ActivityFields is the number of fields InboxActivity returns:
// messages received in the last 24 hours, 7 days and 30 days.
const ActivityFields = 3

// InboxActivity counts recently received messages in one account's inbox.
func InboxActivity(account, inbox string) string {
	return prelude + guarded(fmt.Sprintf(`		set targetMailbox to %s
		set nowDate to current date
		set dayCount to count of (messages of targetMailbox whose date received > (nowDate - (1 * days)))
		set weekCount to count of (messages of targetMailbox whose date received > (nowDate - (7 * days)))
		set monthCount to count of (messages of targetMailbox whose date received > (nowDate - (30 * days)))
		return (dayCount as string) & my fieldSep & (weekCount as string) & my fieldSep & (monthCount as string)`,
		mailboxRef(account, inbox)))
}

// ProbeRunning reports "true" when Mail is running. It does not launch Mail.
func ProbeRunning() string {
	return `return (application "Mail" is running) as string`
}

// ProbePermission touches Mail so that a missing automation grant surfaces
// as an error.
func ProbePermission() string {
	return `tell application "Mail" to return name`
}

// ProbeAccounts returns the number of configured accounts.
func ProbeAccounts() string {
	return `tell application "Mail" to return (count of accounts) as string`
}

// ProbeListing returns the number of messages in the unified inbox.
func ProbeListing() string {
	return guarded(`		return (count of messages of inbox) as string`)
}
