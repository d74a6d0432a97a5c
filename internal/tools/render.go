package tools

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/dustin/go-humanize"

	"github.io/infrasutra/mailbridge/internal/journal"
	"github.io/infrasutra/mailbridge/internal/mail"
)

const dateLayout = "2006-01-02 15:04"

// errorText renders a failure for the assistant. Unavailability gets a hint
// since it is usually fixed outside the conversation.
func errorText(err error) string {
	text := "Error: " + err.Error()
	if errors.Is(err, mail.ErrUnavailable) {
		text += "\nMake sure Mail is running and this process is allowed to control it (System Settings > Privacy & Security > Automation)."
	}
	return text
}

func renderAccounts(accounts []mail.Account) string {
	if len(accounts) == 0 {
		return "No mail accounts configured."
	}
	var b strings.Builder
	fmt.Fprintf(&b, "%d account(s):\n", len(accounts))
	for _, account := range accounts {
		status := "enabled"
		if !account.Enabled {
			status = "disabled"
		}
		fmt.Fprintf(&b, "\n- %s", account.Name)
		if account.Email != "" {
			fmt.Fprintf(&b, " <%s>", account.Email)
		}
		fmt.Fprintf(&b, " (%s", status)
		if account.Type != "" {
			fmt.Fprintf(&b, ", %s", account.Type)
		}
		b.WriteString(")")
	}
	return b.String()
}

func renderMailboxes(mailboxes []mail.Mailbox) string {
	if len(mailboxes) == 0 {
		return "No mailboxes found."
	}
	var b strings.Builder
	fmt.Fprintf(&b, "%d mailbox(es):\n", len(mailboxes))
	account := ""
	for _, mailbox := range mailboxes {
		if mailbox.Account != account {
			account = mailbox.Account
			fmt.Fprintf(&b, "\n%s\n", account)
		}
		fmt.Fprintf(&b, "  - %s: %s message(s), %s unread\n",
			mailbox.Name, humanize.Comma(int64(mailbox.TotalCount)), humanize.Comma(int64(mailbox.UnreadCount)))
	}
	return strings.TrimRight(b.String(), "\n")
}

func messageStatus(message mail.Message) string {
	parts := []string{"read"}
	if !message.Read {
		parts[0] = "unread"
	}
	if message.Flagged {
		parts = append(parts, "flagged")
	}
	if message.Junk {
		parts = append(parts, "junk")
	}
	if message.Deleted {
		parts = append(parts, "deleted")
	}
	if message.HasAttachments {
		parts = append(parts, "has attachments")
	}
	return strings.Join(parts, ", ")
}

func writeMessageHeader(b *strings.Builder, message mail.Message) {
	fmt.Fprintf(b, "ID: %s\n", message.ID)
	fmt.Fprintf(b, "Subject: %s\n", orNone(message.Subject))
	fmt.Fprintf(b, "From: %s\n", orNone(message.Sender))
	if len(message.Recipients) > 0 {
		fmt.Fprintf(b, "To: %s\n", strings.Join(message.Recipients, ", "))
	}
	fmt.Fprintf(b, "Date: %s\n", message.DateReceived.Format(dateLayout))
	fmt.Fprintf(b, "Status: %s\n", messageStatus(message))
	if message.Mailbox != "" {
		fmt.Fprintf(b, "Mailbox: %s", message.Mailbox)
		if message.Account != "" {
			fmt.Fprintf(b, " (%s)", message.Account)
		}
		b.WriteString("\n")
	}
}

func renderMessages(messages []mail.Message, where string) string {
	if len(messages) == 0 {
		return "No messages found" + where + "."
	}
	var b strings.Builder
	fmt.Fprintf(&b, "Found %d message(s)%s:\n", len(messages), where)
	for _, message := range messages {
		b.WriteString("\n")
		writeMessageHeader(&b, message)
	}
	return strings.TrimRight(b.String(), "\n")
}

func renderMessage(message mail.Message) string {
	var b strings.Builder
	writeMessageHeader(&b, message)
	b.WriteString("\n")
	if strings.TrimSpace(message.Content) == "" {
		b.WriteString("(no text content)")
	} else {
		b.WriteString(message.Content)
	}
	return b.String()
}

func renderAttachments(attachments []mail.Attachment) string {
	if len(attachments) == 0 {
		return "The message has no attachments."
	}
	var b strings.Builder
	fmt.Fprintf(&b, "%d attachment(s):\n", len(attachments))
	for _, attachment := range attachments {
		fmt.Fprintf(&b, "\n- %s (%s, %s)", attachment.Name, orNone(attachment.MIMEType), humanize.Bytes(uint64(max(attachment.Size, 0))))
		if !attachment.Downloaded {
			b.WriteString(" not downloaded")
		}
	}
	return b.String()
}

func renderUnread(counts []mail.UnreadCount) string {
	if len(counts) == 0 {
		return "No accounts found."
	}
	var b strings.Builder
	total := 0
	for _, count := range counts {
		total += count.Unread
		fmt.Fprintf(&b, "- %s: %s unread\n", count.Account, humanize.Comma(int64(count.Unread)))
	}
	return fmt.Sprintf("%s unread message(s) in total:\n\n%s", humanize.Comma(int64(total)), strings.TrimRight(b.String(), "\n"))
}

func renderBatch(action string, results []mail.BatchResult) string {
	succeeded := 0
	for _, result := range results {
		if result.Success {
			succeeded++
		}
	}
	var b strings.Builder
	fmt.Fprintf(&b, "%s %d of %d message(s).\n", action, succeeded, len(results))
	for _, result := range results {
		if result.Success {
			fmt.Fprintf(&b, "\n- %s: ok", result.ID)
		} else {
			fmt.Fprintf(&b, "\n- %s: failed: %s", result.ID, result.Error)
		}
	}
	return b.String()
}

func renderHealth(report mail.HealthReport) string {
	var b strings.Builder
	if report.Healthy {
		b.WriteString("Mail is healthy.\n")
	} else {
		b.WriteString("Mail is not healthy.\n")
	}
	for _, probe := range report.Probes {
		mark := "ok"
		if !probe.OK {
			mark = "FAILED"
		}
		fmt.Fprintf(&b, "\n- %s: %s (%s)", probe.Name, mark, probe.Detail)
	}
	return b.String()
}

func renderStats(stats mail.Stats) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Messages: %s (%s unread)\n", humanize.Comma(int64(stats.TotalMessages)), humanize.Comma(int64(stats.TotalUnread)))
	fmt.Fprintf(&b, "Received in inboxes: %s in 24h, %s in 7d, %s in 30d\n",
		humanize.Comma(int64(stats.Last24h)), humanize.Comma(int64(stats.Last7d)), humanize.Comma(int64(stats.Last30d)))
	for _, account := range stats.Accounts {
		fmt.Fprintf(&b, "\n%s: %s message(s) in %d mailbox(es), %s unread; inbox %d/%d/%d (24h/7d/30d)",
			account.Account, humanize.Comma(int64(account.Messages)), account.Mailboxes,
			humanize.Comma(int64(account.Unread)), account.Last24h, account.Last7d, account.Last30d)
	}
	return b.String()
}

func renderActivity(activities []journal.Activity, total int, hasNext bool, now time.Time) string {
	if len(activities) == 0 {
		return "No recorded activity."
	}
	var b strings.Builder
	fmt.Fprintf(&b, "Showing %d of %d invocation(s):\n", len(activities), total)
	for _, activity := range activities {
		status := "ok"
		if !activity.Success {
			status = "failed: " + activity.Error
		}
		fmt.Fprintf(&b, "\n- %s %s (%s, %s) %s",
			humanize.RelTime(activity.CreatedAt, now, "ago", "from now"), activity.Tool,
			activity.Duration.Round(time.Millisecond), pluralItems(activity.Items), status)
	}
	if hasNext {
		b.WriteString("\n\nMore entries are available on the next page.")
	}
	return b.String()
}

func renderSummaries(summaries []journal.ToolSummary) string {
	if len(summaries) == 0 {
		return ""
	}
	var b strings.Builder
	b.WriteString("\n\nLast 24 hours:")
	for _, summary := range summaries {
		fmt.Fprintf(&b, "\n- %s: %s call(s), %s failed", summary.Tool,
			humanize.Comma(int64(summary.Calls)), humanize.Comma(int64(summary.Failures)))
	}
	return b.String()
}

func pluralItems(n int) string {
	if n == 1 {
		return "1 item"
	}
	return fmt.Sprintf("%d items", n)
}

func orNone(s string) string {
	if strings.TrimSpace(s) == "" {
		return "(none)"
	}
	return s
}
