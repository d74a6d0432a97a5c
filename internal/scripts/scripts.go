// Package scripts builds the AppleScript source for every Mail operation.
//
// Builders are pure string functions. Free text is always passed through
// Escape before it is placed inside a string literal, and message ids are
// expected to be validated as decimal integers by the caller because they are
// interpolated unquoted.
//
// Scripts that return rows separate fields with FieldSeparator and terminate
// each row with RecordSeparator. A script that runs but cannot perform its
// action returns "ERROR: <reason>".
package scripts

import (
	"fmt"
	"strings"
)

const (
	FieldSeparator  = "\x1f"
	RecordSeparator = "\x1e"
)

// Escape makes s safe to embed between double quotes in AppleScript source.
// Backslashes are escaped before quotes so the quote escapes survive.
func Escape(s string) string {
	if s == "" {
		return ""
	}
	s = strings.ReplaceAll(s, `\`, `\\`)
	s = strings.ReplaceAll(s, `"`, `\"`)
	return s
}

// quote returns s as an escaped AppleScript string literal.
func quote(s string) string {
	return `"` + Escape(s) + `"`
}

const prelude = `property fieldSep : character id 31
property recordSep : character id 30
`

// messageRecordHandler emits MessageFields fields for one message.
const messageRecordHandler = `
on messageRecord(msg)
	tell application "Mail"
		set msgID to (id of msg) as string
		set msgSubject to ""
		try
			set msgSubject to (subject of msg) as string
		end try
		set msgSender to ""
		try
			set msgSender to (sender of msg) as string
		end try
		set msgTo to ""
		try
			repeat with rcpt in (to recipients of msg)
				if msgTo is not "" then set msgTo to msgTo & ", "
				set msgTo to msgTo & (address of rcpt)
			end repeat
		end try
		set msgReceived to ""
		try
			set msgReceived to (date received of msg) as string
		end try
		set msgSent to ""
		try
			set msgSent to (date sent of msg) as string
		end try
		set mboxName to ""
		set acctName to ""
		try
			set mbox to mailbox of msg
			set mboxName to name of mbox
			set acctName to name of account of mbox
		end try
		set hasAttachments to false
		try
			set hasAttachments to ((count of mail attachments of msg) > 0)
		end try
		return msgID & my fieldSep & msgSubject & my fieldSep & msgSender & my fieldSep & msgTo & my fieldSep & msgReceived & my fieldSep & msgSent & my fieldSep & ((read status of msg) as string) & my fieldSep & ((flagged status of msg) as string) & my fieldSep & ((junk mail status of msg) as string) & my fieldSep & ((deleted status of msg) as string) & my fieldSep & mboxName & my fieldSep & acctName & my fieldSep & (hasAttachments as string)
	end tell
end messageRecord
`

// MessageFields is the number of fields messageRecord emits, in order:
// id, subject, sender, to, received, sent, read, flagged, junk, deleted,
// mailbox, account, has-attachments.
const MessageFields = 13

// findMessageHandler scans every mailbox of every account, then the
// application-level special mailboxes, for a message id.
const findMessageHandler = `
on findMessage(targetID)
	tell application "Mail"
		repeat with acct in accounts
			repeat with mbox in mailboxes of acct
				try
					set found to (messages of mbox whose id is targetID)
					if (count of found) > 0 then return item 1 of found
				end try
			end repeat
		end repeat
		repeat with mbox in {inbox, sent mailbox, drafts mailbox, trash mailbox, junk mailbox}
			try
				set found to (messages of mbox whose id is targetID)
				if (count of found) > 0 then return item 1 of found
			end try
		end repeat
	end tell
	return missing value
end findMessage
`

// mailboxRef addresses a mailbox at account level, or at application level
// when account is empty.
func mailboxRef(account, mailbox string) string {
	if account == "" {
		if mailbox == "" || strings.EqualFold(mailbox, "inbox") {
			return "inbox"
		}
		return "mailbox " + quote(mailbox)
	}
	return fmt.Sprintf("mailbox %s of account %s", quote(mailbox), quote(account))
}

// withMessage wraps body so it runs with msg bound to the message id, or
// reports the message as missing.
func withMessage(id string, needsRecord bool, body string) string {
	var b strings.Builder
	b.WriteString(prelude)
	if needsRecord {
		b.WriteString(messageRecordHandler)
	}
	b.WriteString(findMessageHandler)
	fmt.Fprintf(&b, `
set msg to my findMessage(%s)
if msg is missing value then return "ERROR: Message not found: %s"
tell application "Mail"
	try
%s
	on error errMsg
		return "ERROR: " & errMsg
	end try
end tell
`, id, id, body)
	return b.String()
}

// guarded wraps body in a Mail tell block that reports errors in-band.
// Bodies are embedded verbatim so multi-line string literals keep their
// exact content.
func guarded(body string) string {
	return fmt.Sprintf(`tell application "Mail"
	try
%s
	on error errMsg
		return "ERROR: " & errMsg
	end try
end tell
`, body)
}
