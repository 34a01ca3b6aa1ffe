package whatsapp

import (
	"context"
	"fmt"
)

/*
 * - Quando uma struct representa DADOS deveria usar sempre value semantics e não pointer (ex: Message) .
 * Se a struct representa uma API deveria ser pointer (ex: Service).
 */

// UseCase is every bridge operation the HTTP layer republishes
type UseCase interface {
	SearchContacts(ctx context.Context, query string) ([]Contact, error)
	ListMessages(ctx context.Context, filter MessageFilter) (MessageListing, error)
	ListChats(ctx context.Context, filter ChatFilter) ([]Chat, error)
	GetChat(ctx context.Context, chatJID string, includeLastMessage bool) (*Chat, error)
	GetDirectChatByContact(ctx context.Context, phoneNumber string) (*Chat, error)
	GetContactChats(ctx context.Context, jid string, limit, page int) ([]Chat, error)
	GetLastInteraction(ctx context.Context, jid string) (*string, error)
	GetMessageContext(ctx context.Context, messageID string, before, after int) (MessageContext, error)
	SendMessage(ctx context.Context, recipient, message string) SendResult
	SendFile(ctx context.Context, recipient, mediaPath string) SendResult
	SendAudio(ctx context.Context, recipient, mediaPath string) SendResult
	DownloadMedia(ctx context.Context, messageID, chatJID string) Download
}

type Service struct {
	Store  Reader
	Client Sender
}

func NewService(store Reader, client Sender) *Service {
	return &Service{
		Store:  store,
		Client: client,
	}
}

func (s *Service) SearchContacts(ctx context.Context, query string) ([]Contact, error) {
	contacts, err := s.Store.SearchContacts(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("searching contacts: %w", err)
	}
	return contacts, nil
}

// ListMessages returns the raw messages, or a formatted report with each
// message surrounded by its context when filter.IncludeContext is set.
func (s *Service) ListMessages(ctx context.Context, filter MessageFilter) (MessageListing, error) {
	messages, err := s.Store.ListMessages(ctx, filter)
	if err != nil {
		return MessageListing{}, fmt.Errorf("listing messages: %w", err)
	}
	if !filter.IncludeContext {
		return MessageListing{Messages: messages}, nil
	}

	expanded := make([]Message, 0, len(messages))
	for _, m := range messages {
		mc, err := s.Store.GetMessageContext(ctx, m.ID, filter.ContextBefore, filter.ContextAfter)
		if err != nil {
			return MessageListing{}, fmt.Errorf("getting context of message %s: %w", m.ID, err)
		}
		expanded = append(expanded, mc.Before...)
		expanded = append(expanded, mc.Message)
		expanded = append(expanded, mc.After...)
	}
	output := FormatMessages(ctx, s.Store, expanded, true)
	return MessageListing{Output: &output}, nil
}

func (s *Service) ListChats(ctx context.Context, filter ChatFilter) ([]Chat, error) {
	chats, err := s.Store.ListChats(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("listing chats: %w", err)
	}
	return chats, nil
}

func (s *Service) GetChat(ctx context.Context, chatJID string, includeLastMessage bool) (*Chat, error) {
	chat, err := s.Store.GetChat(ctx, chatJID, includeLastMessage)
	if err != nil {
		return nil, fmt.Errorf("getting chat: %w", err)
	}
	return chat, nil
}

func (s *Service) GetDirectChatByContact(ctx context.Context, phoneNumber string) (*Chat, error) {
	chat, err := s.Store.GetDirectChatByContact(ctx, phoneNumber)
	if err != nil {
		return nil, fmt.Errorf("getting direct chat: %w", err)
	}
	return chat, nil
}

func (s *Service) GetContactChats(ctx context.Context, jid string, limit, page int) ([]Chat, error) {
	chats, err := s.Store.GetContactChats(ctx, jid, limit, page)
	if err != nil {
		return nil, fmt.Errorf("getting contact chats: %w", err)
	}
	return chats, nil
}

// GetLastInteraction returns the contact's most recent message as a report
// line, or nil when there is none.
func (s *Service) GetLastInteraction(ctx context.Context, jid string) (*string, error) {
	m, err := s.Store.GetLastInteraction(ctx, jid)
	if err != nil {
		return nil, fmt.Errorf("getting last interaction: %w", err)
	}
	if m == nil {
		return nil, nil
	}
	line := FormatMessage(ctx, s.Store, *m, true)
	return &line, nil
}

func (s *Service) GetMessageContext(ctx context.Context, messageID string, before, after int) (MessageContext, error) {
	mc, err := s.Store.GetMessageContext(ctx, messageID, before, after)
	if err != nil {
		return MessageContext{}, fmt.Errorf("getting message context: %w", err)
	}
	return mc, nil
}

func (s *Service) SendMessage(ctx context.Context, recipient, message string) SendResult {
	return s.Client.SendMessage(ctx, recipient, message)
}

func (s *Service) SendFile(ctx context.Context, recipient, mediaPath string) SendResult {
	return s.Client.SendFile(ctx, recipient, mediaPath)
}

func (s *Service) SendAudio(ctx context.Context, recipient, mediaPath string) SendResult {
	return s.Client.SendAudio(ctx, recipient, mediaPath)
}

func (s *Service) DownloadMedia(ctx context.Context, messageID, chatJID string) Download {
	return s.Client.DownloadMedia(ctx, messageID, chatJID)
}
