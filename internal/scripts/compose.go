package scripts

import (
	"fmt"
	"strings"
)

// OutgoingMessage is a new message to be sent or saved as a draft.
type OutgoingMessage struct {
	To      []string
	Cc      []string
	Bcc     []string
	Subject string
	Body    string
	// Sender is the From address; empty lets Mail pick its default account.
	Sender string
}

// Compose creates an outgoing message and either sends it or saves it to
// Drafts.
func Compose(msg OutgoingMessage, send bool) string {
	var b strings.Builder
	fmt.Fprintf(&b, "\t\tset newMessage to make new outgoing message with properties {subject:%s, content:%s, visible:false}\n",
		quote(msg.Subject), quote(msg.Body))
	b.WriteString("\t\ttell newMessage\n")
	if msg.Sender != "" {
		fmt.Fprintf(&b, "\t\t\tset sender to %s\n", quote(msg.Sender))
	}
	writeRecipients(&b, "to", msg.To)
	writeRecipients(&b, "cc", msg.Cc)
	writeRecipients(&b, "bcc", msg.Bcc)
	b.WriteString("\t\tend tell\n")
	b.WriteString(finish("newMessage", send))
	return guarded(b.String())
}

// Reply replies to a message, optionally to all recipients. The body is
// placed above the quoted original.
func Reply(id, body string, replyAll, send bool) string {
	all := "without reply to all"
	if replyAll {
		all = "with reply to all"
	}
	var b strings.Builder
	fmt.Fprintf(&b, "\t\tset replyMessage to reply msg without opening window %s\n", all)
	writeBodyPrefix(&b, "replyMessage", body)
	b.WriteString(finish("replyMessage", send))
	return withMessage(id, false, b.String())
}

// Forward forwards a message to recipients with an optional note above the
// forwarded content.
func Forward(id string, to []string, body string, send bool) string {
	var b strings.Builder
	b.WriteString("\t\tset forwardMessage to forward msg without opening window\n")
	b.WriteString("\t\ttell forwardMessage\n")
	writeRecipients(&b, "to", to)
	b.WriteString("\t\tend tell\n")
	if body != "" {
		writeBodyPrefix(&b, "forwardMessage", body)
	}
	b.WriteString(finish("forwardMessage", send))
	return withMessage(id, false, b.String())
}

func writeRecipients(b *strings.Builder, kind string, addresses []string) {
	for _, address := range addresses {
		fmt.Fprintf(b, "\t\t\tmake new %s recipient at end of %s recipients with properties {address:%s}\n",
			kind, kind, quote(address))
	}
}

func writeBodyPrefix(b *strings.Builder, variable, body string) {
	fmt.Fprintf(b, `		set quoted to ""
		try
			set quoted to (content of %s) as string
		end try
		set content of %s to %s & return & return & quoted
`, variable, variable, quote(body))
}

func finish(variable string, send bool) string {
	if send {
		return fmt.Sprintf("\t\tsend %s\n\t\treturn \"OK\"", variable)
	}
	return fmt.Sprintf("\t\tsave %s\n\t\treturn \"OK\"", variable)
}
