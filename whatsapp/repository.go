package whatsapp

import "context"

/* Interfaces pequenas */

/* Interfaces abstraem comportamento e não coisas*/

// Reader queries the bridge's message store
type Reader interface {
	SearchContacts(ctx context.Context, query string) ([]Contact, error)
	ListMessages(ctx context.Context, filter MessageFilter) ([]Message, error)
	ListChats(ctx context.Context, filter ChatFilter) ([]Chat, error)
	GetChat(ctx context.Context, chatJID string, includeLastMessage bool) (*Chat, error)
	GetDirectChatByContact(ctx context.Context, phoneNumber string) (*Chat, error)
	GetContactChats(ctx context.Context, jid string, limit, page int) ([]Chat, error)
	GetLastInteraction(ctx context.Context, jid string) (*Message, error)
	GetMessageContext(ctx context.Context, messageID string, before, after int) (MessageContext, error)
	SenderNamer
}

// Sender asks the bridge to send or fetch content.
// Failures the bridge reports are part of the result, not errors.
type Sender interface {
	SendMessage(ctx context.Context, recipient, message string) SendResult
	SendFile(ctx context.Context, recipient, mediaPath string) SendResult
	SendAudio(ctx context.Context, recipient, mediaPath string) SendResult
	DownloadMedia(ctx context.Context, messageID, chatJID string) Download
}

/* Composição de interfaces */

type Bridge interface {
	Reader
	Sender
}
