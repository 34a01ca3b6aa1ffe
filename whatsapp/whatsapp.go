package whatsapp

import (
	"errors"
	"time"
)

/* Sobre pacotes
 *
 * Os pacotes devem fornecer algo e não conter algo (ex: modelos, utilitários, auxiliares).
 * The bridge keeps its own message store; this package only reads it and
 * forwards sends/downloads to the bridge REST API.
 */

var ErrNotFound = errors.New("not found")

// Contact is a direct (non-group) chat partner
type Contact struct {
	PhoneNumber string  `json:"phone_number"`
	Name        *string `json:"name"`
	JID         string  `json:"jid"`
}

// Message is a single stored WhatsApp message
type Message struct {
	Timestamp time.Time `json:"timestamp"`
	Sender    string    `json:"sender"`
	Content   string    `json:"content"`
	IsFromMe  bool      `json:"is_from_me"`
	ChatJID   string    `json:"chat_jid"`
	ID        string    `json:"id"`
	ChatName  *string   `json:"chat_name"`
	MediaType *string   `json:"media_type"`
}

// Chat is a conversation, optionally with its most recent message
type Chat struct {
	JID             string     `json:"jid"`
	Name            *string    `json:"name"`
	LastMessageTime *time.Time `json:"last_message_time"`
	LastMessage     *string    `json:"last_message"`
	LastSender      *string    `json:"last_sender"`
	LastIsFromMe    *bool      `json:"last_is_from_me"`
}

// IsGroup reports whether the chat is a group conversation
func (c Chat) IsGroup() bool {
	return IsGroupJID(c.JID)
}

// MessageContext is a message with its neighbours in the same chat, oldest first
type MessageContext struct {
	Message Message   `json:"message"`
	Before  []Message `json:"before"`
	After   []Message `json:"after"`
}

// MessageFilter selects messages for listing
type MessageFilter struct {
	After             *time.Time
	Before            *time.Time
	SenderPhoneNumber string
	ChatJID           string
	Query             string
	Limit             int
	Page              int
	IncludeContext    bool
	ContextBefore     int
	ContextAfter      int
}

// ChatFilter selects chats for listing
type ChatFilter struct {
	Query              string
	Limit              int
	Page               int
	IncludeLastMessage bool
	SortBy             ChatSort
}

// MessageListing is either a formatted report or the raw messages
type MessageListing struct {
	Output   *string
	Messages []Message
}

// SendResult is the bridge's answer to a send request
type SendResult struct {
	Success bool
	Message string
}

// Download is the bridge's answer to a media download request
type Download struct {
	Success  bool
	Message  string
	FilePath string
}
