package tools

type noInput struct{}

type accountInput struct {
	Account string `json:"account,omitempty" jsonschema:"account name; defaults to every account"`
}

type listMessagesInput struct {
	Account    string `json:"account,omitempty" jsonschema:"account name; defaults to the default account"`
	Mailbox    string `json:"mailbox,omitempty" jsonschema:"mailbox name such as INBOX, Sent or Archive; defaults to INBOX"`
	Limit      int    `json:"limit,omitempty" jsonschema:"maximum number of messages to return (1-100, default 20)"`
	UnreadOnly bool   `json:"unread_only,omitempty" jsonschema:"only return unread messages"`
}

type searchMessagesInput struct {
	Query   string `json:"query" jsonschema:"text to search for"`
	Field   string `json:"field,omitempty" jsonschema:"where to search: any (subject or sender), subject, sender or content"`
	Account string `json:"account,omitempty" jsonschema:"account name; omit with mailbox to search the unified inbox"`
	Mailbox string `json:"mailbox,omitempty" jsonschema:"mailbox name; defaults to INBOX when an account is given"`
	Limit   int    `json:"limit,omitempty" jsonschema:"maximum number of results (1-100, default 20)"`
}

type messageInput struct {
	MessageID string `json:"message_id" jsonschema:"id of the message as returned by list_messages or search_messages"`
}

type composeInput struct {
	To      []string `json:"to,omitempty" jsonschema:"recipient email addresses"`
	Cc      []string `json:"cc,omitempty" jsonschema:"carbon copy addresses"`
	Bcc     []string `json:"bcc,omitempty" jsonschema:"blind carbon copy addresses"`
	Subject string   `json:"subject,omitempty" jsonschema:"subject line"`
	Body    string   `json:"body,omitempty" jsonschema:"plain text body"`
	Account string   `json:"account,omitempty" jsonschema:"account to send from; defaults to Mail's default"`
}

type replyInput struct {
	MessageID string `json:"message_id" jsonschema:"id of the message to reply to"`
	Body      string `json:"body" jsonschema:"reply text placed above the quoted original"`
	ReplyAll  bool   `json:"reply_all,omitempty" jsonschema:"reply to every recipient of the original"`
	Draft     bool   `json:"draft,omitempty" jsonschema:"save the reply as a draft instead of sending it"`
}

type forwardInput struct {
	MessageID string   `json:"message_id" jsonschema:"id of the message to forward"`
	To        []string `json:"to" jsonschema:"recipient email addresses"`
	Body      string   `json:"body,omitempty" jsonschema:"optional note placed above the forwarded message"`
	Draft     bool     `json:"draft,omitempty" jsonschema:"save the forward as a draft instead of sending it"`
}

type markReadInput struct {
	MessageID  string `json:"message_id" jsonschema:"id of the message"`
	MarkUnread bool   `json:"mark_unread,omitempty" jsonschema:"mark the message unread instead of read"`
}

type flagInput struct {
	MessageID string `json:"message_id" jsonschema:"id of the message"`
	Unflag    bool   `json:"unflag,omitempty" jsonschema:"remove the flag instead of setting it"`
}

type moveInput struct {
	MessageID string `json:"message_id" jsonschema:"id of the message"`
	Mailbox   string `json:"mailbox" jsonschema:"destination mailbox, e.g. Archive or Trash"`
	Account   string `json:"account,omitempty" jsonschema:"account owning the destination mailbox; defaults to the default account"`
}

type batchInput struct {
	MessageIDs []string `json:"message_ids" jsonschema:"ids of the messages (at most 100)"`
}

type batchMarkReadInput struct {
	MessageIDs []string `json:"message_ids" jsonschema:"ids of the messages (at most 100)"`
	MarkUnread bool     `json:"mark_unread,omitempty" jsonschema:"mark the messages unread instead of read"`
}

type batchFlagInput struct {
	MessageIDs []string `json:"message_ids" jsonschema:"ids of the messages (at most 100)"`
	Unflag     bool     `json:"unflag,omitempty" jsonschema:"remove the flags instead of setting them"`
}

type batchMoveInput struct {
	MessageIDs []string `json:"message_ids" jsonschema:"ids of the messages (at most 100)"`
	Mailbox    string   `json:"mailbox" jsonschema:"destination mailbox"`
	Account    string   `json:"account,omitempty" jsonschema:"account owning the destination mailbox"`
}

type activityInput struct {
	Tool  string `json:"tool,omitempty" jsonschema:"only show invocations of this tool"`
	Page  int    `json:"page,omitempty" jsonschema:"page number, starting at 1"`
	Limit int    `json:"limit,omitempty" jsonschema:"entries per page (1-100, default 20)"`
}
