package scripts

import (
	"strings"
	"testing"
)

func TestEscape(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"", ""},
		{"plain", "plain"},
		{`say "hi"`, `say \"hi\"`},
		{`C:\path`, `C:\\path`},
		{`\"`, `\\\"`},
		{"line1\nline2", "line1\nline2"},
	}
	for _, tt := range tests {
		if got := Escape(tt.in); got != tt.want {
			t.Errorf("Escape(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

// extractLiteral reads the AppleScript string literal starting at src[0]
// and returns its value, interpreting backslash escapes the way
// AppleScript does for \\ and \".
func extractLiteral(t *testing.T, src string) string {
	t.Helper()
	if !strings.HasPrefix(src, `"`) {
		t.Fatalf("literal must start with a quote: %q", src)
	}
	var b strings.Builder
	for i := 1; i < len(src); i++ {
		switch c := src[i]; c {
		case '\\':
			i++
			if i >= len(src) {
				t.Fatalf("dangling escape in %q", src)
			}
			b.WriteByte(src[i])
		case '"':
			if rest := src[i+1:]; rest != "" {
				t.Fatalf("literal terminated early, trailing %q", rest)
			}
			return b.String()
		default:
			b.WriteByte(c)
		}
	}
	t.Fatalf("unterminated literal %q", src)
	return ""
}

func TestEscapeRoundTrip(t *testing.T) {
	inputs := []string{
		"",
		`"`,
		`\`,
		`\\"\"`,
		`end tell" & (do shell script "rm -rf ~") & "`,
		`trailing backslash\`,
		"tabs\tand\nnewlines",
		`mixed \" quote "\ order`,
	}
	for _, in := range inputs {
		if got := extractLiteral(t, quote(in)); got != in {
			t.Errorf("round trip of %q = %q", in, got)
		}
	}
}

func TestComposeEscapesEveryField(t *testing.T) {
	script := Compose(OutgoingMessage{
		To:      []string{`a"b@x.com`},
		Cc:      []string{"c@x.com"},
		Bcc:     []string{"d@x.com"},
		Subject: `Re: "quoted"`,
		Body:    `C:\temp`,
		Sender:  "me@x.com",
	}, true)

	for _, want := range []string{
		`subject:"Re: \"quoted\""`,
		`content:"C:\\temp"`,
		`set sender to "me@x.com"`,
		`make new to recipient at end of to recipients with properties {address:"a\"b@x.com"}`,
		`make new cc recipient at end of cc recipients with properties {address:"c@x.com"}`,
		`make new bcc recipient at end of bcc recipients with properties {address:"d@x.com"}`,
		"send newMessage",
	} {
		if !strings.Contains(script, want) {
			t.Errorf("script missing %q\n%s", want, script)
		}
	}
}

func TestComposeDraftSaves(t *testing.T) {
	script := Compose(OutgoingMessage{To: []string{"a@x.com"}, Subject: "S", Body: "B"}, false)
	if !strings.Contains(script, "save newMessage") || strings.Contains(script, "send newMessage") {
		t.Errorf("draft should save, not send:\n%s", script)
	}
	if strings.Contains(script, "set sender") {
		t.Error("empty sender should not be set")
	}
}

func TestMailboxScope(t *testing.T) {
	tests := []struct {
		account, mailbox string
		want             string
	}{
		{"", "", "inbox"},
		{"", "INBOX", "inbox"},
		{"", "Archive", `mailbox "Archive"`},
		{"Work", "INBOX", `mailbox "INBOX" of account "Work"`},
		{`My "Mac"`, `A\B`, `mailbox "A\\B" of account "My \"Mac\""`},
	}
	for _, tt := range tests {
		if got := mailboxRef(tt.account, tt.mailbox); got != tt.want {
			t.Errorf("mailboxRef(%q, %q) = %q, want %q", tt.account, tt.mailbox, got, tt.want)
		}
	}
}

func TestListMessagesLimitAndFilter(t *testing.T) {
	script := ListMessages("iCloud", "INBOX", 2, true)
	for _, want := range []string{
		`set targetMailbox to mailbox "INBOX" of account "iCloud"`,
		"whose read status is false",
		"if total > 2 then set total to 2",
		"on messageRecord(msg)",
		"property fieldSep : character id 31",
	} {
		if !strings.Contains(script, want) {
			t.Errorf("script missing %q", want)
		}
	}
	if strings.Contains(ListMessages("iCloud", "INBOX", 5, false), "whose read status") {
		t.Error("unread filter applied without unreadOnly")
	}
}

func TestSearchMessagesField(t *testing.T) {
	script := SearchMessages(`"x"`, SearchContent, "", "", 10)
	if !strings.Contains(script, `set searchQuery to "\"x\""`) {
		t.Errorf("query not escaped:\n%s", script)
	}
	if !strings.Contains(script, "whose content contains searchQuery") {
		t.Error("content field not used")
	}
	if !strings.Contains(script, "set targetMailbox to inbox") {
		t.Error("empty account should search the unified inbox")
	}
}

func TestParseSearchField(t *testing.T) {
	tests := []struct {
		in   string
		want SearchField
		ok   bool
	}{
		{"", SearchAny, true},
		{"Subject", SearchSubject, true},
		{" sender ", SearchSender, true},
		{"content", SearchContent, true},
		{"body", SearchAny, false},
	}
	for _, tt := range tests {
		got, ok := ParseSearchField(tt.in)
		if got != tt.want || ok != tt.ok {
			t.Errorf("ParseSearchField(%q) = %q, %v", tt.in, got, ok)
		}
	}
}

func TestMessageScriptsFindById(t *testing.T) {
	scripts := map[string]string{
		"get":         GetMessage("42"),
		"read":        SetReadStatus("42", true),
		"flag":        SetFlagged("42", false),
		"delete":      Delete("42"),
		"move":        Move("42", "Work", "Archive"),
		"attachments": ListAttachments("42"),
		"reply":       Reply("42", "thanks", true, false),
		"forward":     Forward("42", []string{"b@x.com"}, "", true),
	}
	for name, script := range scripts {
		if !strings.Contains(script, "set msg to my findMessage(42)") {
			t.Errorf("%s: does not locate message 42", name)
		}
		if !strings.Contains(script, `"ERROR: Message not found: 42"`) {
			t.Errorf("%s: no not-found report", name)
		}
	}
	if !strings.Contains(scripts["read"], "set read status of msg to true") {
		t.Error("read status not set")
	}
	if !strings.Contains(scripts["flag"], "set flagged status of msg to false") {
		t.Error("flag status not set")
	}
	if !strings.Contains(scripts["move"], `move msg to mailbox "Archive" of account "Work"`) {
		t.Error("move target wrong")
	}
	if !strings.Contains(scripts["reply"], "with reply to all") || !strings.Contains(scripts["reply"], "save replyMessage") {
		t.Error("reply options not applied")
	}
	if strings.Contains(scripts["forward"], "set content of forwardMessage") {
		t.Error("empty forward note should leave content untouched")
	}
}

func TestListMailboxesScope(t *testing.T) {
	if !strings.Contains(ListMailboxes(""), "repeat with acct in accounts") {
		t.Error("empty account should cover all accounts")
	}
	if !strings.Contains(ListMailboxes("Work"), `repeat with acct in {account "Work"}`) {
		t.Error("account scope not applied")
	}
}
