package sqlite_test

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"
	"time"

	"github.com/marcelsud/whatsapp-bridge-api/whatsapp"
	"github.com/marcelsud/whatsapp-bridge-api/whatsapp/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	alice = "5511111@s.whatsapp.net"
	bob   = "5522222@s.whatsapp.net"
	team  = "123-456@g.us"
)

// newTestRepository seeds a messages.db laid out like the bridge's and opens it
func newTestRepository(t *testing.T) *sqlite.Repository {
	t.Helper()
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "messages.db")

	db, err := sql.Open("sqlite", path)
	require.NoError(t, err)
	stmts := []string{
		`CREATE TABLE chats (
			jid TEXT PRIMARY KEY,
			name TEXT,
			last_message_time TIMESTAMP
		)`,
		`CREATE TABLE messages (
			id TEXT,
			chat_jid TEXT,
			sender TEXT,
			content TEXT,
			timestamp TIMESTAMP,
			is_from_me BOOLEAN,
			media_type TEXT,
			filename TEXT,
			url TEXT,
			media_key BLOB,
			file_sha256 BLOB,
			file_enc_sha256 BLOB,
			file_length INTEGER,
			PRIMARY KEY (id, chat_jid),
			FOREIGN KEY (chat_jid) REFERENCES chats(jid)
		)`,
		`INSERT INTO chats VALUES
			('5511111@s.whatsapp.net', 'Alice', '2025-03-01 10:03:00+00:00'),
			('5522222@s.whatsapp.net', 'Bob', '2025-03-01 09:00:00+00:00'),
			('123-456@g.us', 'Team', '2025-03-01 11:00:00+00:00')`,
		`INSERT INTO messages (id, chat_jid, sender, content, timestamp, is_from_me, media_type) VALUES
			('m1', '5511111@s.whatsapp.net', '5511111', 'hello there', '2025-03-01 10:00:00+00:00', 0, NULL),
			('m2', '5511111@s.whatsapp.net', '5599999', 'hi alice', '2025-03-01 10:01:00+00:00', 1, NULL),
			('m3', '5511111@s.whatsapp.net', '5511111', '', '2025-03-01 10:02:00+00:00', 0, 'image'),
			('m4', '5511111@s.whatsapp.net', '5511111', 'bye', '2025-03-01 10:03:00+00:00', 0, NULL),
			('b1', '5522222@s.whatsapp.net', '5522222', 'yo', '2025-03-01 09:00:00+00:00', 0, NULL),
			('g1', '123-456@g.us', '5511111', 'group hello', '2025-03-01 11:00:00+00:00', 0, NULL)`,
	}
	for _, stmt := range stmts {
		_, err := db.ExecContext(ctx, stmt)
		require.NoError(t, err)
	}
	require.NoError(t, db.Close())

	repo, err := sqlite.Open(ctx, path)
	require.NoError(t, err)
	t.Cleanup(func() { _ = repo.Close() })
	return repo
}

func ids(messages []whatsapp.Message) []string {
	out := make([]string, 0, len(messages))
	for _, m := range messages {
		out = append(out, m.ID)
	}
	return out
}

func jids(chats []whatsapp.Chat) []string {
	out := make([]string, 0, len(chats))
	for _, c := range chats {
		out = append(out, c.JID)
	}
	return out
}

func at(hour, minute int) *time.Time {
	ts := time.Date(2025, 3, 1, hour, minute, 0, 0, time.UTC)
	return &ts
}

func TestOpen(t *testing.T) {
	t.Run("empty path", func(t *testing.T) {
		_, err := sqlite.Open(context.Background(), "")
		assert.Error(t, err)
	})
	t.Run("query only", func(t *testing.T) {
		repo := newTestRepository(t)
		_, err := repo.DB.ExecContext(context.Background(), "DELETE FROM chats")
		assert.Error(t, err)
	})
}

func TestSearchContacts(t *testing.T) {
	ctx := context.Background()
	repo := newTestRepository(t)

	t.Run("by name", func(t *testing.T) {
		got, err := repo.SearchContacts(ctx, "ALI")
		require.NoError(t, err)
		require.Len(t, got, 1)
		assert.Equal(t, "5511111", got[0].PhoneNumber)
		assert.Equal(t, alice, got[0].JID)
		assert.Equal(t, "Alice", *got[0].Name)
	})
	t.Run("groups excluded", func(t *testing.T) {
		got, err := repo.SearchContacts(ctx, "")
		require.NoError(t, err)
		assert.Len(t, got, 2)
		assert.Equal(t, "5511111", got[0].PhoneNumber)
		assert.Equal(t, "5522222", got[1].PhoneNumber)
	})
	t.Run("no match", func(t *testing.T) {
		got, err := repo.SearchContacts(ctx, "zzz")
		require.NoError(t, err)
		assert.Empty(t, got)
	})
}

func TestListMessages(t *testing.T) {
	ctx := context.Background()
	repo := newTestRepository(t)

	tests := []struct {
		name   string
		filter whatsapp.MessageFilter
		want   []string
	}{
		{name: "newest first", filter: whatsapp.MessageFilter{Limit: 20}, want: []string{"g1", "m4", "m3", "m2", "m1", "b1"}},
		{name: "chat and query", filter: whatsapp.MessageFilter{Limit: 20, ChatJID: alice, Query: "HELLO"}, want: []string{"m1"}},
		{name: "sender paged", filter: whatsapp.MessageFilter{Limit: 2, Page: 1, SenderPhoneNumber: "5511111"}, want: []string{"m3", "m1"}},
		{name: "time range", filter: whatsapp.MessageFilter{Limit: 20, After: at(10, 1), Before: at(10, 59)}, want: []string{"m4", "m3"}},
		{name: "page past end", filter: whatsapp.MessageFilter{Limit: 20, Page: 3}, want: []string{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := repo.ListMessages(ctx, tt.filter)
			require.NoError(t, err)
			assert.Equal(t, tt.want, ids(got))
		})
	}

	t.Run("fields", func(t *testing.T) {
		got, err := repo.ListMessages(ctx, whatsapp.MessageFilter{Limit: 1, ChatJID: alice, Before: at(10, 2)})
		require.NoError(t, err)
		require.Len(t, got, 1)
		m := got[0]
		assert.Equal(t, "m2", m.ID)
		assert.True(t, m.IsFromMe)
		assert.Equal(t, "Alice", *m.ChatName)
		assert.Nil(t, m.MediaType)
		assert.True(t, at(10, 1).Equal(m.Timestamp))
	})
}

func TestListChats(t *testing.T) {
	ctx := context.Background()
	repo := newTestRepository(t)

	t.Run("last active with last message", func(t *testing.T) {
		got, err := repo.ListChats(ctx, whatsapp.ChatFilter{Limit: 20, IncludeLastMessage: true, SortBy: whatsapp.LastActive})
		require.NoError(t, err)
		assert.Equal(t, []string{team, alice, bob}, jids(got))
		require.NotNil(t, got[0].LastMessage)
		assert.Equal(t, "group hello", *got[0].LastMessage)
		assert.Equal(t, "5511111", *got[0].LastSender)
		assert.False(t, *got[0].LastIsFromMe)
		assert.True(t, at(11, 0).Equal(*got[0].LastMessageTime))
	})
	t.Run("by name without last message", func(t *testing.T) {
		got, err := repo.ListChats(ctx, whatsapp.ChatFilter{Limit: 20, SortBy: whatsapp.ByName})
		require.NoError(t, err)
		assert.Equal(t, []string{alice, bob, team}, jids(got))
		assert.Nil(t, got[0].LastMessage)
		assert.Nil(t, got[0].LastIsFromMe)
	})
	t.Run("query and paging", func(t *testing.T) {
		got, err := repo.ListChats(ctx, whatsapp.ChatFilter{Query: "bob", Limit: 20})
		require.NoError(t, err)
		assert.Equal(t, []string{bob}, jids(got))

		got, err = repo.ListChats(ctx, whatsapp.ChatFilter{Limit: 1, Page: 1, SortBy: whatsapp.LastActive})
		require.NoError(t, err)
		assert.Equal(t, []string{alice}, jids(got))
	})
}

func TestGetChat(t *testing.T) {
	ctx := context.Background()
	repo := newTestRepository(t)

	got, err := repo.GetChat(ctx, alice, true)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "bye", *got.LastMessage)

	got, err = repo.GetChat(ctx, "404@s.whatsapp.net", true)
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestGetDirectChatByContact(t *testing.T) {
	ctx := context.Background()
	repo := newTestRepository(t)

	got, err := repo.GetDirectChatByContact(ctx, "5522222")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, bob, got.JID)
	assert.Equal(t, "yo", *got.LastMessage)

	got, err = repo.GetDirectChatByContact(ctx, "123")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestGetContactChats(t *testing.T) {
	ctx := context.Background()
	repo := newTestRepository(t)

	got, err := repo.GetContactChats(ctx, alice, 20, 0)
	require.NoError(t, err)
	assert.Equal(t, []string{team, alice}, jids(got))

	got, err = repo.GetContactChats(ctx, alice, 1, 1)
	require.NoError(t, err)
	assert.Equal(t, []string{alice}, jids(got))
}

func TestGetLastInteraction(t *testing.T) {
	ctx := context.Background()
	repo := newTestRepository(t)

	got, err := repo.GetLastInteraction(ctx, alice)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "g1", got.ID)

	got, err = repo.GetLastInteraction(ctx, "404@s.whatsapp.net")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestGetMessageContext(t *testing.T) {
	ctx := context.Background()
	repo := newTestRepository(t)

	tests := []struct {
		id            string
		before, after int
		wantBefore    []string
		wantAfter     []string
	}{
		{id: "m3", before: 1, after: 1, wantBefore: []string{"m2"}, wantAfter: []string{"m4"}},
		{id: "m2", before: 5, after: 5, wantBefore: []string{"m1"}, wantAfter: []string{"m3", "m4"}},
		{id: "m4", before: 2, after: 0, wantBefore: []string{"m2", "m3"}, wantAfter: []string{}},
		{id: "g1", before: 5, after: 5, wantBefore: []string{}, wantAfter: []string{}},
	}
	for _, tt := range tests {
		t.Run(tt.id, func(t *testing.T) {
			got, err := repo.GetMessageContext(ctx, tt.id, tt.before, tt.after)
			require.NoError(t, err)
			assert.Equal(t, tt.id, got.Message.ID)
			assert.Equal(t, tt.wantBefore, ids(got.Before))
			assert.Equal(t, tt.wantAfter, ids(got.After))
		})
	}

	t.Run("unknown message", func(t *testing.T) {
		_, err := repo.GetMessageContext(ctx, "nope", 1, 1)
		assert.ErrorIs(t, err, whatsapp.ErrNotFound)
	})
}

func TestSenderName(t *testing.T) {
	ctx := context.Background()
	repo := newTestRepository(t)

	assert.Equal(t, "Alice", repo.SenderName(ctx, alice))
	assert.Equal(t, "Bob", repo.SenderName(ctx, "5522222"))
	assert.Equal(t, "unknown", repo.SenderName(ctx, "unknown"))
}
