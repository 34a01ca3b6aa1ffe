package whatsapp

import (
	"context"
	"fmt"
	"strings"
)

const timestampLayout = "2006-01-02 15:04:05"

const noMessages = "No messages to display."

// SenderNamer resolves a sender JID to a display name
type SenderNamer interface {
	SenderName(ctx context.Context, senderJID string) string
}

// FormatMessage renders one message as a single report line
func FormatMessage(ctx context.Context, names SenderNamer, m Message, showChatInfo bool) string {
	var b strings.Builder

	fmt.Fprintf(&b, "[%s] ", m.Timestamp.Format(timestampLayout))
	if showChatInfo && m.ChatName != nil && *m.ChatName != "" {
		fmt.Fprintf(&b, "Chat: %s ", *m.ChatName)
	}

	sender := "Me"
	if !m.IsFromMe {
		sender = m.Sender
		if names != nil {
			sender = names.SenderName(ctx, m.Sender)
		}
	}
	fmt.Fprintf(&b, "From: %s: ", sender)

	if m.MediaType != nil && *m.MediaType != "" {
		fmt.Fprintf(&b, "[%s - Message ID: %s - Chat JID: %s] ", *m.MediaType, m.ID, m.ChatJID)
	}
	b.WriteString(m.Content)
	return b.String()
}

// FormatMessages renders messages one per line
func FormatMessages(ctx context.Context, names SenderNamer, messages []Message, showChatInfo bool) string {
	if len(messages) == 0 {
		return noMessages
	}
	lines := make([]string, 0, len(messages))
	for _, m := range messages {
		lines = append(lines, FormatMessage(ctx, names, m, showChatInfo))
	}
	return strings.Join(lines, "\n")
}
