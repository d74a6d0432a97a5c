package scripts

import (
	"fmt"
	"strings"
)

// SearchField selects which message properties a search matches against.
type SearchField string

const (
	// SearchAny matches subject or sender.
	SearchAny     SearchField = "any"
	SearchSubject SearchField = "subject"
	SearchSender  SearchField = "sender"
	SearchContent SearchField = "content"
)

// ParseSearchField maps user input onto a SearchField, defaulting to SearchAny.
func ParseSearchField(s string) (SearchField, bool) {
	switch SearchField(strings.ToLower(strings.TrimSpace(s))) {
	case "", SearchAny:
		return SearchAny, true
	case SearchSubject:
		return SearchSubject, true
	case SearchSender:
		return SearchSender, true
	case SearchContent:
		return SearchContent, true
	default:
		return SearchAny, false
	}
}

func (f SearchField) whose() string {
	switch f {
	case SearchSubject:
		return "subject contains searchQuery"
	case SearchSender:
		return "sender contains searchQuery"
	case SearchContent:
		return "content contains searchQuery"
	default:
		return "(subject contains searchQuery or sender contains searchQuery)"
	}
}

// collectMessages emits up to limit rows from the list bound to msgs.
func collectMessages(limit int) string {
	return fmt.Sprintf(`		set total to count of msgs
		if total > %d then set total to %d
		set output to ""
		repeat with i from 1 to total
			set output to output & my messageRecord(item i of msgs) & my recordSep
		end repeat
		return output`, limit, limit)
}

// ListMessages lists up to limit messages of one mailbox, newest first as
// Mail orders them.
func ListMessages(account, mailbox string, limit int, unreadOnly bool) string {
	filter := ""
	if unreadOnly {
		filter = " whose read status is false"
	}
	body := fmt.Sprintf(`		set targetMailbox to %s
		set msgs to (messages of targetMailbox%s)
%s`, mailboxRef(account, mailbox), filter, collectMessages(limit))
	return prelude + messageRecordHandler + guarded(body)
}

// SearchMessages finds up to limit messages whose field contains query. An
// empty account searches the unified inbox.
func SearchMessages(query string, field SearchField, account, mailbox string, limit int) string {
	body := fmt.Sprintf(`		set searchQuery to %s
		set targetMailbox to %s
		set msgs to (messages of targetMailbox whose %s)
%s`, quote(query), mailboxRef(account, mailbox), field.whose(), collectMessages(limit))
	return prelude + messageRecordHandler + guarded(body)
}

// GetMessage returns one message record followed by a final field holding
// the plain-text content.
func GetMessage(id string) string {
	return withMessage(id, true, `		set msgContent to ""
		try
			set msgContent to (content of msg) as string
		end try
		return my messageRecord(msg) & my fieldSep & msgContent`)
}

// SetReadStatus marks a message read or unread.
func SetReadStatus(id string, read bool) string {
	return withMessage(id, false, fmt.Sprintf(`		set read status of msg to %t
		return "OK"`, read))
}

// SetFlagged flags or unflags a message.
func SetFlagged(id string, flagged bool) string {
	return withMessage(id, false, fmt.Sprintf(`		set flagged status of msg to %t
		return "OK"`, flagged))
}

// Delete moves a message to its account's trash.
func Delete(id string) string {
	return withMessage(id, false, `		delete msg
		return "OK"`)
}

// Move moves a message to a mailbox.
func Move(id, account, mailbox string) string {
	return withMessage(id, false, fmt.Sprintf(`		move msg to %s
		return "OK"`, mailboxRef(account, mailbox)))
}

// AttachmentFields is the number of fields per attachment row:
// name, MIME type, size, downloaded.
const AttachmentFields = 4

// ListAttachments lists the attachments of a message.
func ListAttachments(id string) string {
	return withMessage(id, false, `		set output to ""
		repeat with att in (mail attachments of msg)
			set attType to ""
			try
				set attType to (MIME type of att) as string
			end try
			set attSize to 0
			try
				set attSize to file size of att
			end try
			set attDownloaded to false
			try
				set attDownloaded to downloaded of att
			end try
			set output to output & (name of att) & my fieldSep & attType & my fieldSep & (attSize as string) & my fieldSep & (attDownloaded as string) & my recordSep
		end repeat
		return output`)
}
