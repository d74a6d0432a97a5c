package tools

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.io/infrasutra/mailbridge/internal/mail"
	"github.io/infrasutra/mailbridge/internal/pagination"
)

func (s *Server) registerTools() {
	addTool(s, "list_accounts", "List the mail accounts configured in Apple Mail.", s.listAccounts)
	addTool(s, "list_mailboxes", "List mailboxes with message and unread counts, for one account or all of them.", s.listMailboxes)
	addTool(s, "list_messages", "List recent messages in a mailbox. Mailbox names like inbox, sent or trash are matched to the account's own names.", s.listMessages)
	addTool(s, "search_messages", "Search messages by subject, sender or content.", s.searchMessages)
	addTool(s, "get_message", "Get a message with its full text content.", s.getMessage)
	addTool(s, "send_email", "Compose and send an email.", s.sendEmail)
	addTool(s, "create_draft", "Compose an email and save it to Drafts without sending.", s.createDraft)
	addTool(s, "reply_to_message", "Reply to a message, optionally to all recipients or as a draft.", s.replyToMessage)
	addTool(s, "forward_message", "Forward a message to new recipients.", s.forwardMessage)
	addTool(s, "mark_read", "Mark a message read or unread.", s.markRead)
	addTool(s, "flag_message", "Flag or unflag a message.", s.flagMessage)
	addTool(s, "delete_message", "Move a message to the trash.", s.deleteMessage)
	addTool(s, "move_message", "Move a message to another mailbox.", s.moveMessage)
	addTool(s, "batch_mark_read", "Mark several messages read or unread. Each message succeeds or fails on its own.", s.batchMarkRead)
	addTool(s, "batch_flag_messages", "Flag or unflag several messages.", s.batchFlag)
	addTool(s, "batch_delete_messages", "Move several messages to the trash.", s.batchDelete)
	addTool(s, "batch_move_messages", "Move several messages to one mailbox.", s.batchMove)
	addTool(s, "list_attachments", "List the attachments of a message.", s.listAttachments)
	addTool(s, "get_unread_count", "Count unread messages per account.", s.unreadCount)
	addTool(s, "health_check", "Check that Mail is running, automation is permitted, accounts exist and mailboxes can be read.", s.healthCheck)
	addTool(s, "get_statistics", "Summarize message counts per account and inbox activity over the last day, week and month.", s.statistics)
	addTool(s, "list_recent_activity", "List recent invocations of these tools with their outcome and duration.", s.recentActivity)
}

func (s *Server) listAccounts(ctx context.Context, _ noInput) (string, int, error) {
	accounts, err := s.mail.ListAccounts(ctx)
	if err != nil {
		return "", 0, err
	}
	return renderAccounts(accounts), len(accounts), nil
}

func (s *Server) listMailboxes(ctx context.Context, in accountInput) (string, int, error) {
	mailboxes, err := s.mail.ListMailboxes(ctx, in.Account)
	if err != nil {
		return "", 0, err
	}
	return renderMailboxes(mailboxes), len(mailboxes), nil
}

func (s *Server) listMessages(ctx context.Context, in listMessagesInput) (string, int, error) {
	messages, err := s.mail.ListMessages(ctx, mail.ListOptions{
		Account:    in.Account,
		Mailbox:    in.Mailbox,
		Limit:      pagination.Limit(in.Limit),
		UnreadOnly: in.UnreadOnly,
	})
	if err != nil {
		return "", 0, err
	}
	mailbox := in.Mailbox
	if strings.TrimSpace(mailbox) == "" {
		mailbox = mail.DefaultMailbox
	}
	return renderMessages(messages, " in "+mailbox), len(messages), nil
}

func (s *Server) searchMessages(ctx context.Context, in searchMessagesInput) (string, int, error) {
	messages, err := s.mail.SearchMessages(ctx, mail.SearchOptions{
		Query:   in.Query,
		Field:   in.Field,
		Account: in.Account,
		Mailbox: in.Mailbox,
		Limit:   pagination.Limit(in.Limit),
	})
	if err != nil {
		return "", 0, err
	}
	return renderMessages(messages, fmt.Sprintf(" matching %q", in.Query)), len(messages), nil
}

func (s *Server) getMessage(ctx context.Context, in messageInput) (string, int, error) {
	message, err := s.mail.GetMessage(ctx, in.MessageID)
	if err != nil {
		return "", 0, err
	}
	return renderMessage(message), 1, nil
}

func (in composeInput) options() mail.SendOptions {
	return mail.SendOptions{
		To:      in.To,
		Cc:      in.Cc,
		Bcc:     in.Bcc,
		Subject: in.Subject,
		Body:    in.Body,
		Account: in.Account,
	}
}

func (s *Server) sendEmail(ctx context.Context, in composeInput) (string, int, error) {
	if err := s.mail.SendEmail(ctx, in.options()); err != nil {
		return "", 0, err
	}
	return fmt.Sprintf("Email sent to %s.", strings.Join(in.To, ", ")), 1, nil
}

func (s *Server) createDraft(ctx context.Context, in composeInput) (string, int, error) {
	if err := s.mail.CreateDraft(ctx, in.options()); err != nil {
		return "", 0, err
	}
	return "Draft saved.", 1, nil
}

func (s *Server) replyToMessage(ctx context.Context, in replyInput) (string, int, error) {
	if err := s.mail.Reply(ctx, in.MessageID, in.Body, in.ReplyAll, !in.Draft); err != nil {
		return "", 0, err
	}
	if in.Draft {
		return fmt.Sprintf("Reply to message %s saved as a draft.", in.MessageID), 1, nil
	}
	return fmt.Sprintf("Reply to message %s sent.", in.MessageID), 1, nil
}

func (s *Server) forwardMessage(ctx context.Context, in forwardInput) (string, int, error) {
	if err := s.mail.Forward(ctx, in.MessageID, in.To, in.Body, !in.Draft); err != nil {
		return "", 0, err
	}
	if in.Draft {
		return fmt.Sprintf("Forward of message %s saved as a draft.", in.MessageID), 1, nil
	}
	return fmt.Sprintf("Message %s forwarded to %s.", in.MessageID, strings.Join(in.To, ", ")), 1, nil
}

func (s *Server) markRead(ctx context.Context, in markReadInput) (string, int, error) {
	if err := s.mail.MarkRead(ctx, in.MessageID, !in.MarkUnread); err != nil {
		return "", 0, err
	}
	state := "read"
	if in.MarkUnread {
		state = "unread"
	}
	return fmt.Sprintf("Message %s marked %s.", in.MessageID, state), 1, nil
}

func (s *Server) flagMessage(ctx context.Context, in flagInput) (string, int, error) {
	if err := s.mail.SetFlagged(ctx, in.MessageID, !in.Unflag); err != nil {
		return "", 0, err
	}
	if in.Unflag {
		return fmt.Sprintf("Message %s unflagged.", in.MessageID), 1, nil
	}
	return fmt.Sprintf("Message %s flagged.", in.MessageID), 1, nil
}

func (s *Server) deleteMessage(ctx context.Context, in messageInput) (string, int, error) {
	if err := s.mail.DeleteMessage(ctx, in.MessageID); err != nil {
		return "", 0, err
	}
	return fmt.Sprintf("Message %s moved to the trash.", in.MessageID), 1, nil
}

func (s *Server) moveMessage(ctx context.Context, in moveInput) (string, int, error) {
	if err := s.mail.MoveMessage(ctx, in.MessageID, in.Mailbox, in.Account); err != nil {
		return "", 0, err
	}
	return fmt.Sprintf("Message %s moved to %s.", in.MessageID, in.Mailbox), 1, nil
}

// batchOutcome renders a batch and counts its successes for the journal.
func batchOutcome(action string, results []mail.BatchResult, err error) (string, int, error) {
	if err != nil {
		return "", 0, err
	}
	succeeded := 0
	for _, result := range results {
		if result.Success {
			succeeded++
		}
	}
	return renderBatch(action, results), succeeded, nil
}

func (s *Server) batchMarkRead(ctx context.Context, in batchMarkReadInput) (string, int, error) {
	results, err := s.mail.BatchMarkRead(ctx, in.MessageIDs, !in.MarkUnread)
	action := "Marked read"
	if in.MarkUnread {
		action = "Marked unread"
	}
	return batchOutcome(action, results, err)
}

func (s *Server) batchFlag(ctx context.Context, in batchFlagInput) (string, int, error) {
	results, err := s.mail.BatchSetFlagged(ctx, in.MessageIDs, !in.Unflag)
	action := "Flagged"
	if in.Unflag {
		action = "Unflagged"
	}
	return batchOutcome(action, results, err)
}

func (s *Server) batchDelete(ctx context.Context, in batchInput) (string, int, error) {
	results, err := s.mail.BatchDelete(ctx, in.MessageIDs)
	return batchOutcome("Deleted", results, err)
}

func (s *Server) batchMove(ctx context.Context, in batchMoveInput) (string, int, error) {
	results, err := s.mail.BatchMove(ctx, in.MessageIDs, in.Mailbox, in.Account)
	return batchOutcome("Moved to "+in.Mailbox+":", results, err)
}

func (s *Server) listAttachments(ctx context.Context, in messageInput) (string, int, error) {
	attachments, err := s.mail.ListAttachments(ctx, in.MessageID)
	if err != nil {
		return "", 0, err
	}
	return renderAttachments(attachments), len(attachments), nil
}

func (s *Server) unreadCount(ctx context.Context, in accountInput) (string, int, error) {
	counts, err := s.mail.UnreadCounts(ctx, in.Account)
	if err != nil {
		return "", 0, err
	}
	return renderUnread(counts), len(counts), nil
}

func (s *Server) healthCheck(ctx context.Context, _ noInput) (string, int, error) {
	report := s.mail.HealthCheck(ctx)
	return renderHealth(report), len(report.Probes), nil
}

func (s *Server) statistics(ctx context.Context, in accountInput) (string, int, error) {
	stats, err := s.mail.Statistics(ctx, in.Account)
	if err != nil {
		return "", 0, err
	}
	return renderStats(stats), len(stats.Accounts), nil
}

func (s *Server) recentActivity(ctx context.Context, in activityInput) (string, int, error) {
	if s.journal == nil || !s.cfg.JournalEnabled {
		return "The activity journal is disabled.", 0, nil
	}
	params := pagination.New(in.Page, in.Limit)
	activities, total, err := s.journal.Recent(ctx, in.Tool, params.Offset, params.Limit)
	if err != nil {
		return "", 0, err
	}
	now := s.now()
	summaries, err := s.journal.Summary(ctx, now.Add(-24*time.Hour))
	if err != nil {
		return "", 0, err
	}
	hasNext := pagination.HasNext(params.Offset, params.Limit, total)
	return renderActivity(activities, total, hasNext, now) + renderSummaries(summaries), len(activities), nil
}
