package mail

import "time"

type Account struct {
	Name    string
	Email   string
	Enabled bool
	Type    string
}

type Mailbox struct {
	Name        string
	Account     string
	UnreadCount int
	TotalCount  int
}

type Message struct {
	ID             string
	Subject        string
	Sender         string
	Recipients     []string
	DateReceived   time.Time
	DateSent       time.Time
	Read           bool
	Flagged        bool
	Junk           bool
	Deleted        bool
	Mailbox        string
	Account        string
	HasAttachments bool
	// Content is only populated by GetMessage.
	Content string
}

type Attachment struct {
	// ID is synthetic: "<messageID>-<name>".
	ID         string
	MessageID  string
	Name       string
	MIMEType   string
	Size       int64
	Downloaded bool
}

// BatchResult is the outcome of one item of a batch operation.
type BatchResult struct {
	ID      string
	Success bool
	Error   string
}

type UnreadCount struct {
	Account string
	Unread  int
}

type AccountStats struct {
	Account   string
	Mailboxes int
	Messages  int
	Unread    int
	// Inbox activity windows. Counted over the account's inbox only.
	Last24h int
	Last7d  int
	Last30d int
}

type Stats struct {
	Accounts      []AccountStats
	TotalMessages int
	TotalUnread   int
	Last24h       int
	Last7d        int
	Last30d       int
}

type ProbeResult struct {
	Name   string
	OK     bool
	Detail string
}

type HealthReport struct {
	Healthy bool
	Probes  []ProbeResult
}

// SendOptions describes a new outgoing message.
type SendOptions struct {
	To      []string
	Cc      []string
	Bcc     []string
	Subject string
	Body    string
	// Account sends from the named account instead of Mail's default.
	Account string
}

type ListOptions struct {
	Account    string
	Mailbox    string
	Limit      int
	UnreadOnly bool
}

type SearchOptions struct {
	Query   string
	Field   string
	Account string
	Mailbox string
	Limit   int
}
