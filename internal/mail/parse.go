package mail

import (
	"strconv"
	"strings"
	"time"

	"github.com/araddon/dateparse"

	"github.io/infrasutra/mailbridge/internal/scripts"
)

const boolTrue = "true"

// dayFirstLayouts cover Mail's date form in day-first locales such as en_GB,
// "15 January 2024 10:30:45", which dateparse rejects.
var dayFirstLayouts = []string{
	"2 January 2006 15:04:05",
	"2 January 2006 3:04:05 PM",
	"2 Jan 2006 15:04:05",
	"2 Jan 2006 3:04:05 PM",
	"2 January 2006",
}

// splitRows splits script output into records of at least minFields fields.
// Shorter rows are dropped.
func splitRows(output string, minFields int) [][]string {
	var rows [][]string
	for _, record := range strings.Split(output, scripts.RecordSeparator) {
		record = strings.Trim(record, "\r\n")
		if record == "" {
			continue
		}
		fields := strings.Split(record, scripts.FieldSeparator)
		if len(fields) < minFields {
			continue
		}
		rows = append(rows, fields)
	}
	return rows
}

// parseDate reads Mail's verbose date form, e.g.
// "Monday, January 15, 2024 at 10:30:45 AM" or the day-first
// "Monday, 15 January 2024 at 10:30:45". The weekday prefix is dropped,
// " at " becomes a space, and the rest goes to a generic parser. Anything
// unparseable yields now.
func parseDate(raw string, now func() time.Time) time.Time {
	s := strings.TrimSpace(raw)
	s = strings.ReplaceAll(s, "\u202f", " ")
	s = strings.ReplaceAll(s, "\u00a0", " ")
	s = stripWeekday(s)
	s = strings.Replace(s, " at ", " ", 1)
	if s == "" {
		return now()
	}
	if parsed, err := dateparse.ParseLocal(s); err == nil {
		return parsed
	}
	for _, layout := range dayFirstLayouts {
		if parsed, err := time.ParseInLocation(layout, s, time.Local); err == nil {
			return parsed
		}
	}
	return now()
}

func stripWeekday(s string) string {
	head, rest, ok := strings.Cut(s, ", ")
	if !ok {
		return s
	}
	for day := time.Sunday; day <= time.Saturday; day++ {
		if strings.EqualFold(head, day.String()) {
			return rest
		}
	}
	return s
}

func parseBool(s string) bool {
	return strings.TrimSpace(s) == boolTrue
}

func parseInt(s string) int {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0
	}
	return n
}

func splitAddresses(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

func messageFromFields(fields []string, now func() time.Time) Message {
	return Message{
		ID:             strings.TrimSpace(fields[0]),
		Subject:        fields[1],
		Sender:         fields[2],
		Recipients:     splitAddresses(fields[3]),
		DateReceived:   parseDate(fields[4], now),
		DateSent:       parseDate(fields[5], now),
		Read:           parseBool(fields[6]),
		Flagged:        parseBool(fields[7]),
		Junk:           parseBool(fields[8]),
		Deleted:        parseBool(fields[9]),
		Mailbox:        fields[10],
		Account:        fields[11],
		HasAttachments: parseBool(fields[12]),
	}
}

func parseMessages(output string, now func() time.Time) []Message {
	rows := splitRows(output, scripts.MessageFields)
	messages := make([]Message, 0, len(rows))
	for _, fields := range rows {
		messages = append(messages, messageFromFields(fields, now))
	}
	return messages
}

// parseMessageDetail reads a single message record followed by its content.
// The content is the last column and may itself contain separators.
func parseMessageDetail(output string, now func() time.Time) (Message, bool) {
	record := strings.TrimLeft(output, "\r\n")
	record = strings.TrimSuffix(record, scripts.RecordSeparator)
	fields := strings.SplitN(record, scripts.FieldSeparator, scripts.MessageFields+1)
	if len(fields) < scripts.MessageFields {
		return Message{}, false
	}
	message := messageFromFields(fields, now)
	if len(fields) > scripts.MessageFields {
		message.Content = fields[scripts.MessageFields]
	}
	return message, true
}

func parseAccounts(output string) []Account {
	rows := splitRows(output, scripts.AccountFields)
	accounts := make([]Account, 0, len(rows))
	for _, fields := range rows {
		accounts = append(accounts, Account{
			Name:    fields[0],
			Email:   fields[1],
			Enabled: parseBool(fields[2]),
			Type:    fields[3],
		})
	}
	return accounts
}

func parseMailboxes(output string) []Mailbox {
	rows := splitRows(output, scripts.MailboxFields)
	mailboxes := make([]Mailbox, 0, len(rows))
	for _, fields := range rows {
		mailboxes = append(mailboxes, Mailbox{
			Name:        fields[0],
			Account:     fields[1],
			UnreadCount: parseInt(fields[2]),
			TotalCount:  parseInt(fields[3]),
		})
	}
	return mailboxes
}

func parseAttachments(messageID, output string) []Attachment {
	rows := splitRows(output, scripts.AttachmentFields)
	attachments := make([]Attachment, 0, len(rows))
	for _, fields := range rows {
		attachments = append(attachments, Attachment{
			ID:         messageID + "-" + fields[0],
			MessageID:  messageID,
			Name:       fields[0],
			MIMEType:   fields[1],
			Size:       int64(parseInt(fields[2])),
			Downloaded: parseBool(fields[3]),
		})
	}
	return attachments
}

func parseUnreadCounts(output string) []UnreadCount {
	rows := splitRows(output, scripts.UnreadFields)
	counts := make([]UnreadCount, 0, len(rows))
	for _, fields := range rows {
		counts = append(counts, UnreadCount{Account: fields[0], Unread: parseInt(fields[1])})
	}
	return counts
}

// parseActivity reads the 24h/7d/30d counts. A malformed reply counts as no
// activity.
func parseActivity(output string) (day, week, month int) {
	rows := splitRows(output, scripts.ActivityFields)
	if len(rows) == 0 {
		return 0, 0, 0
	}
	fields := rows[0]
	return parseInt(fields[0]), parseInt(fields[1]), parseInt(fields[2])
}
