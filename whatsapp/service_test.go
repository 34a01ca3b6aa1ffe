package whatsapp_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/marcelsud/whatsapp-bridge-api/whatsapp"
	"github.com/marcelsud/whatsapp-bridge-api/whatsapp/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ptr[T any](v T) *T {
	return &v
}

func message(id string, ts time.Time, content string) whatsapp.Message {
	return whatsapp.Message{
		ID:        id,
		Timestamp: ts,
		Sender:    "5511999999999",
		Content:   content,
		ChatJID:   "5511999999999@s.whatsapp.net",
		ChatName:  ptr("Alice"),
	}
}

func TestListMessages(t *testing.T) {
	ctx := context.Background()
	base := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)

	t.Run("raw messages", func(t *testing.T) {
		filter := whatsapp.MessageFilter{Limit: 20}
		msgs := []whatsapp.Message{message("m1", base, "hi")}
		store := mocks.NewReader(t)
		store.On("ListMessages", ctx, filter).Return(msgs, nil)
		s := whatsapp.NewService(store, mocks.NewSender(t))

		got, err := s.ListMessages(ctx, filter)
		require.NoError(t, err)
		assert.Nil(t, got.Output)
		assert.Equal(t, msgs, got.Messages)
	})

	t.Run("with context", func(t *testing.T) {
		filter := whatsapp.MessageFilter{Limit: 20, IncludeContext: true, ContextBefore: 1, ContextAfter: 1}
		target := message("m2", base.Add(time.Minute), "middle")
		store := mocks.NewReader(t)
		store.On("ListMessages", ctx, filter).Return([]whatsapp.Message{target}, nil)
		store.On("GetMessageContext", ctx, "m2", 1, 1).Return(whatsapp.MessageContext{
			Message: target,
			Before:  []whatsapp.Message{message("m1", base, "first")},
			After:   []whatsapp.Message{message("m3", base.Add(2*time.Minute), "last")},
		}, nil)
		store.On("SenderName", ctx, "5511999999999").Return("Alice")
		s := whatsapp.NewService(store, mocks.NewSender(t))

		got, err := s.ListMessages(ctx, filter)
		require.NoError(t, err)
		require.NotNil(t, got.Output)
		assert.Equal(t,
			"[2025-03-01 10:00:00] Chat: Alice From: Alice: first\n"+
				"[2025-03-01 10:01:00] Chat: Alice From: Alice: middle\n"+
				"[2025-03-01 10:02:00] Chat: Alice From: Alice: last",
			*got.Output)
	})

	t.Run("with context and no messages", func(t *testing.T) {
		filter := whatsapp.MessageFilter{IncludeContext: true}
		store := mocks.NewReader(t)
		store.On("ListMessages", ctx, filter).Return(nil, nil)
		s := whatsapp.NewService(store, mocks.NewSender(t))

		got, err := s.ListMessages(ctx, filter)
		require.NoError(t, err)
		assert.Equal(t, "No messages to display.", *got.Output)
	})

	t.Run("context lookup fails", func(t *testing.T) {
		filter := whatsapp.MessageFilter{IncludeContext: true}
		store := mocks.NewReader(t)
		store.On("ListMessages", ctx, filter).Return([]whatsapp.Message{message("m1", base, "x")}, nil)
		store.On("GetMessageContext", ctx, "m1", 0, 0).Return(whatsapp.MessageContext{}, whatsapp.ErrNotFound)
		s := whatsapp.NewService(store, mocks.NewSender(t))

		_, err := s.ListMessages(ctx, filter)
		assert.ErrorIs(t, err, whatsapp.ErrNotFound)
	})

	t.Run("store fails", func(t *testing.T) {
		store := mocks.NewReader(t)
		store.On("ListMessages", ctx, whatsapp.MessageFilter{}).Return(nil, fmt.Errorf("some error"))
		s := whatsapp.NewService(store, mocks.NewSender(t))

		got, err := s.ListMessages(ctx, whatsapp.MessageFilter{})
		assert.NotNil(t, err)
		assert.Empty(t, got)
	})
}

func TestGetLastInteraction(t *testing.T) {
	ctx := context.Background()
	jid := "5511999999999@s.whatsapp.net"

	t.Run("formats own message", func(t *testing.T) {
		m := message("m1", time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC), "see you")
		m.IsFromMe = true
		m.MediaType = ptr("image")
		store := mocks.NewReader(t)
		store.On("GetLastInteraction", ctx, jid).Return(&m, nil)
		s := whatsapp.NewService(store, mocks.NewSender(t))

		got, err := s.GetLastInteraction(ctx, jid)
		require.NoError(t, err)
		require.NotNil(t, got)
		assert.Equal(t, "[2025-03-01 10:00:00] Chat: Alice From: Me: [image - Message ID: m1 - Chat JID: "+jid+"] see you", *got)
	})

	t.Run("no interaction", func(t *testing.T) {
		store := mocks.NewReader(t)
		store.On("GetLastInteraction", ctx, jid).Return(nil, nil)
		s := whatsapp.NewService(store, mocks.NewSender(t))

		got, err := s.GetLastInteraction(ctx, jid)
		require.NoError(t, err)
		assert.Nil(t, got)
	})
}

func TestChats(t *testing.T) {
	ctx := context.Background()

	t.Run("list", func(t *testing.T) {
		filter := whatsapp.ChatFilter{Limit: 20, SortBy: whatsapp.LastActive, IncludeLastMessage: true}
		chats := []whatsapp.Chat{{JID: "123-456@g.us", Name: ptr("Team")}}
		store := mocks.NewReader(t)
		store.On("ListChats", ctx, filter).Return(chats, nil)
		s := whatsapp.NewService(store, mocks.NewSender(t))

		got, err := s.ListChats(ctx, filter)
		require.NoError(t, err)
		assert.Equal(t, chats, got)
		assert.True(t, got[0].IsGroup())
	})

	t.Run("get missing", func(t *testing.T) {
		store := mocks.NewReader(t)
		store.On("GetChat", ctx, "x@s.whatsapp.net", true).Return(nil, nil)
		s := whatsapp.NewService(store, mocks.NewSender(t))

		got, err := s.GetChat(ctx, "x@s.whatsapp.net", true)
		require.NoError(t, err)
		assert.Nil(t, got)
	})

	t.Run("direct chat fails", func(t *testing.T) {
		store := mocks.NewReader(t)
		store.On("GetDirectChatByContact", ctx, "5511").Return(nil, fmt.Errorf("some error"))
		s := whatsapp.NewService(store, mocks.NewSender(t))

		_, err := s.GetDirectChatByContact(ctx, "5511")
		assert.NotNil(t, err)
	})

	t.Run("contact chats", func(t *testing.T) {
		chats := []whatsapp.Chat{{JID: "a@s.whatsapp.net"}}
		store := mocks.NewReader(t)
		store.On("GetContactChats", ctx, "a@s.whatsapp.net", 20, 0).Return(chats, nil)
		s := whatsapp.NewService(store, mocks.NewSender(t))

		got, err := s.GetContactChats(ctx, "a@s.whatsapp.net", 20, 0)
		require.NoError(t, err)
		assert.Equal(t, chats, got)
	})
}

func TestSearchContacts(t *testing.T) {
	ctx := context.Background()
	contacts := []whatsapp.Contact{{PhoneNumber: "5511", Name: ptr("Bob"), JID: "5511@s.whatsapp.net"}}
	store := mocks.NewReader(t)
	store.On("SearchContacts", ctx, "bo").Return(contacts, nil)
	s := whatsapp.NewService(store, mocks.NewSender(t))

	got, err := s.SearchContacts(ctx, "bo")
	require.NoError(t, err)
	assert.Equal(t, contacts, got)
}

func TestSendAndDownload(t *testing.T) {
	ctx := context.Background()
	client := mocks.NewSender(t)
	client.On("SendMessage", ctx, "5511", "hi").Return(whatsapp.SendResult{Success: true, Message: "sent"})
	client.On("SendFile", ctx, "5511", "/tmp/a.png").Return(whatsapp.SendResult{Success: false, Message: "Media file not found: /tmp/a.png"})
	client.On("SendAudio", ctx, "5511", "/tmp/a.ogg").Return(whatsapp.SendResult{Success: true, Message: "sent"})
	client.On("DownloadMedia", ctx, "m1", "5511@s.whatsapp.net").Return(whatsapp.Download{Success: true, FilePath: "/store/m1.jpg"})
	s := whatsapp.NewService(mocks.NewReader(t), client)

	assert.True(t, s.SendMessage(ctx, "5511", "hi").Success)
	assert.False(t, s.SendFile(ctx, "5511", "/tmp/a.png").Success)
	assert.True(t, s.SendAudio(ctx, "5511", "/tmp/a.ogg").Success)
	assert.Equal(t, "/store/m1.jpg", s.DownloadMedia(ctx, "m1", "5511@s.whatsapp.net").FilePath)
}
