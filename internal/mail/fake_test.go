package mail

import (
	"context"
	"io"
	"log/slog"
	"strings"
	"sync"
	"testing"
	"time"

	"github.io/infrasutra/mailbridge/internal/applescript"
	"github.io/infrasutra/mailbridge/internal/scripts"
)

// Substrings that identify each generated script.
const (
	markAccounts    = "email addresses of acct"
	markMailboxes   = "((count of messages of mbox) as string)"
	markUnread      = "set acctUnread to 0"
	markActivity    = "set dayCount"
	markList        = "set msgs to (messages of targetMailbox"
	markListUnread  = "whose read status is false"
	markSearch      = "set searchQuery to"
	markGet         = "set msgContent"
	markCompose     = "make new outgoing message"
	markReply       = "reply msg without opening window"
	markForward     = "forward msg without opening window"
	markRead        = "set read status of msg"
	markFlag        = "set flagged status of msg"
	markDelete      = "delete msg"
	markMove        = "move msg to"
	markAttachments = "repeat with att in (mail attachments of msg)"
	markRunning     = `application "Mail" is running`
	markPermission  = `tell application "Mail" to return name`
	markAccountsN   = "count of accounts"
	markListing     = "count of messages of inbox"
)

var testNow = time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

type rule struct {
	markers []string
	output  string
	err     error
}

func (r rule) matches(script string) bool {
	for _, m := range r.markers {
		if !strings.Contains(script, m) {
			return false
		}
	}
	return true
}

type call struct {
	script string
	opts   applescript.Options
}

// fakeRunner answers scripts from an ordered rule list; the first rule whose
// markers all occur in the script wins.
type fakeRunner struct {
	mu    sync.Mutex
	rules []rule
	calls []call
}

func (f *fakeRunner) on(output string, markers ...string) *fakeRunner {
	f.rules = append(f.rules, rule{markers: markers, output: output})
	return f
}

func (f *fakeRunner) fail(err error, markers ...string) *fakeRunner {
	f.rules = append(f.rules, rule{markers: markers, err: err})
	return f
}

func (f *fakeRunner) Run(_ context.Context, script string, opts applescript.Options) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, call{script: script, opts: opts})
	for _, r := range f.rules {
		if r.matches(script) {
			return r.output, r.err
		}
	}
	return "", &applescript.Error{Kind: applescript.KindScript, Message: "no rule for script"}
}

// count returns how many executed scripts contain every marker.
func (f *fakeRunner) count(markers ...string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	r := rule{markers: markers}
	n := 0
	for _, c := range f.calls {
		if r.matches(c.script) {
			n++
		}
	}
	return n
}

func (f *fakeRunner) last(t *testing.T) call {
	t.Helper()
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.calls) == 0 {
		t.Fatal("no script was run")
	}
	return f.calls[len(f.calls)-1]
}

func (f *fakeRunner) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.calls)
}

func newTestClient(t *testing.T, runner applescript.Runner, defaultAccount string) *Client {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	client := New(runner, logger, defaultAccount, 2*time.Minute)
	client.now = func() time.Time { return testNow }
	return client
}

func row(fields ...string) string {
	return strings.Join(fields, scripts.FieldSeparator) + scripts.RecordSeparator
}

func messageRow(id, subject, sender string) string {
	return row(id, subject, sender, "me@example.com",
		"Monday, May 8, 2009 at 5:57:51 PM", "Monday, May 8, 2009 at 5:50:00 PM",
		"false", "true", "false", "false", "INBOX", "Work", "false")
}

func accountRow(name, email string) string {
	return row(name, email, "true", "imap")
}

func mailboxRow(name, account string, unread, total string) string {
	return row(name, account, unread, total)
}

func logicalError(msg string) error {
	return &applescript.Error{Kind: applescript.KindLogical, Message: msg}
}

func unavailableError() error {
	return &applescript.Error{Kind: applescript.KindUnavailable, Message: "Application isn't running. (-600)"}
}
