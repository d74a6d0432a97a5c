package mail

import (
	"context"
	"errors"
	"testing"
)

func TestMatchMailbox(t *testing.T) {
	tests := []struct {
		name      string
		requested string
		available []string
		want      string
		ok        bool
	}{
		{"exact", "Receipts", []string{"receipts", "Receipts"}, "Receipts", true},
		{"case insensitive", "inbox", []string{"Archive", "INBOX"}, "INBOX", true},
		{"sent alias", "sent", []string{"INBOX", "Sent Items"}, "Sent Items", true},
		{"trash alias", "Trash", []string{"INBOX", "Deleted Items"}, "Deleted Items", true},
		{"gmail spam", "junk", []string{"INBOX", "[Gmail]/Spam"}, "[Gmail]/Spam", true},
		{"alias case insensitive", "archive", []string{"all mail"}, "all mail", true},
		{"alias of alias", "Deleted Messages", []string{"Trash"}, "Trash", true},
		{"unknown", "Projects", []string{"INBOX", "Sent"}, "", false},
		{"empty list", "inbox", nil, "", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := matchMailbox(tt.requested, tt.available)
			if got != tt.want || ok != tt.ok {
				t.Fatalf("matchMailbox(%q) = %q, %v; want %q, %v", tt.requested, got, ok, tt.want, tt.ok)
			}
		})
	}
}

func TestResolveMailboxInboxVariants(t *testing.T) {
	for _, listed := range []string{"INBOX", "Inbox", "inbox"} {
		t.Run(listed, func(t *testing.T) {
			runner := (&fakeRunner{}).on(
				mailboxRow("Sent", "Work", "0", "10")+mailboxRow(listed, "Work", "2", "40"),
				markMailboxes,
			)
			client := newTestClient(t, runner, "")
			if got := client.ResolveMailbox(context.Background(), "inbox", "Work"); got != listed {
				t.Fatalf("ResolveMailbox = %q, want %q", got, listed)
			}
		})
	}
}

func TestResolveMailboxFallsBackToRequested(t *testing.T) {
	runner := (&fakeRunner{}).fail(logicalError("Can’t get account \"Nope\"."), markMailboxes)
	client := newTestClient(t, runner, "")
	if got := client.ResolveMailbox(context.Background(), "Projects", "Nope"); got != "Projects" {
		t.Fatalf("ResolveMailbox = %q, want Projects", got)
	}

	runner = (&fakeRunner{}).on(mailboxRow("INBOX", "Work", "0", "1"), markMailboxes)
	client = newTestClient(t, runner, "")
	if got := client.ResolveMailbox(context.Background(), "Projects", "Work"); got != "Projects" {
		t.Fatalf("ResolveMailbox = %q, want Projects", got)
	}
}

func TestResolveAccount(t *testing.T) {
	ctx := context.Background()

	t.Run("requested wins", func(t *testing.T) {
		runner := &fakeRunner{}
		client := newTestClient(t, runner, "Configured")
		got, err := client.ResolveAccount(ctx, "  Personal ")
		if err != nil || got != "Personal" {
			t.Fatalf("got %q, %v", got, err)
		}
		if runner.callCount() != 0 {
			t.Fatalf("expected no scripts, got %d", runner.callCount())
		}
	})

	t.Run("configured default", func(t *testing.T) {
		runner := &fakeRunner{}
		client := newTestClient(t, runner, "Configured")
		got, err := client.ResolveAccount(ctx, "")
		if err != nil || got != "Configured" {
			t.Fatalf("got %q, %v", got, err)
		}
		if runner.callCount() != 0 {
			t.Fatalf("expected no scripts, got %d", runner.callCount())
		}
	})

	t.Run("first account is cached", func(t *testing.T) {
		runner := (&fakeRunner{}).on(accountRow("iCloud", "me@icloud.com")+accountRow("Work", "me@work.com"), markAccounts)
		client := newTestClient(t, runner, "")
		for range 3 {
			got, err := client.ResolveAccount(ctx, "")
			if err != nil || got != "iCloud" {
				t.Fatalf("got %q, %v", got, err)
			}
		}
		if n := runner.count(markAccounts); n != 1 {
			t.Fatalf("expected one account lookup, got %d", n)
		}
	})

	t.Run("no accounts", func(t *testing.T) {
		runner := (&fakeRunner{}).on("", markAccounts)
		client := newTestClient(t, runner, "")
		if _, err := client.ResolveAccount(ctx, ""); !errors.Is(err, ErrNotFound) {
			t.Fatalf("expected ErrNotFound, got %v", err)
		}
	})

	t.Run("mail unavailable", func(t *testing.T) {
		runner := (&fakeRunner{}).fail(unavailableError(), markAccounts)
		client := newTestClient(t, runner, "")
		if _, err := client.ResolveAccount(ctx, ""); !errors.Is(err, ErrUnavailable) {
			t.Fatalf("expected ErrUnavailable, got %v", err)
		}
	})
}
