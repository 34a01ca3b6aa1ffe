package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/marcelsud/whatsapp-bridge-api/whatsapp"
	_ "modernc.org/sqlite"
)

// contactSearchLimit caps SearchContacts results
const contactSearchLimit = 50

// filterLayout matches how the bridge writes timestamps, so bounds compare as text
const filterLayout = "2006-01-02 15:04:05.999999999-07:00"

// Repository reads the message store the bridge writes. It never writes.
type Repository struct {
	DB *sql.DB
}

// Open connects to the bridge's messages.db in query-only mode
func Open(ctx context.Context, path string) (*Repository, error) {
	if path == "" {
		return nil, fmt.Errorf("sqlite path is empty")
	}
	dsn := fmt.Sprintf("file:%s?_pragma=busy_timeout(5000)&_pragma=query_only(1)", path)
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("opening message store: %w", err)
	}
	pctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := db.PingContext(pctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("pinging message store: %w", err)
	}
	return NewRepository(db), nil
}

func NewRepository(db *sql.DB) *Repository {
	return &Repository{DB: db}
}

func (r *Repository) Close() error {
	return r.DB.Close()
}

func (r *Repository) SearchContacts(ctx context.Context, query string) ([]whatsapp.Contact, error) {
	pattern := "%" + query + "%"
	rows, err := r.DB.QueryContext(ctx, `
		SELECT DISTINCT jid, name
		FROM chats
		WHERE (LOWER(name) LIKE LOWER(?) OR LOWER(jid) LIKE LOWER(?))
		  AND jid NOT LIKE '%@g.us'
		ORDER BY name, jid
		LIMIT ?`, pattern, pattern, contactSearchLimit)
	if err != nil {
		return nil, fmt.Errorf("selecting contacts: %w", err)
	}
	defer rows.Close()

	contacts := []whatsapp.Contact{}
	for rows.Next() {
		var (
			c    whatsapp.Contact
			name sql.NullString
		)
		if err := rows.Scan(&c.JID, &name); err != nil {
			return nil, fmt.Errorf("scanning contact: %w", err)
		}
		c.Name = nullString(name)
		c.PhoneNumber = whatsapp.PhoneFromJID(c.JID)
		contacts = append(contacts, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating contacts: %w", err)
	}
	return contacts, nil
}

const messageColumns = `
	m.timestamp, m.sender, c.name, m.content, m.is_from_me, c.jid, m.id, m.media_type`

func (r *Repository) ListMessages(ctx context.Context, filter whatsapp.MessageFilter) ([]whatsapp.Message, error) {
	var (
		where []string
		args  []any
	)
	if filter.After != nil {
		where = append(where, "m.timestamp > ?")
		args = append(args, filter.After.UTC().Format(filterLayout))
	}
	if filter.Before != nil {
		where = append(where, "m.timestamp < ?")
		args = append(args, filter.Before.UTC().Format(filterLayout))
	}
	if filter.SenderPhoneNumber != "" {
		where = append(where, "m.sender = ?")
		args = append(args, filter.SenderPhoneNumber)
	}
	if filter.ChatJID != "" {
		where = append(where, "m.chat_jid = ?")
		args = append(args, filter.ChatJID)
	}
	if filter.Query != "" {
		where = append(where, "LOWER(m.content) LIKE LOWER(?)")
		args = append(args, "%"+filter.Query+"%")
	}

	q := "SELECT" + messageColumns + " FROM messages m JOIN chats c ON m.chat_jid = c.jid"
	if len(where) > 0 {
		q += " WHERE " + strings.Join(where, " AND ")
	}
	q += " ORDER BY m.timestamp DESC LIMIT ? OFFSET ?"
	args = append(args, filter.Limit, filter.Page*filter.Limit)

	return r.queryMessages(ctx, q, args...)
}

func (r *Repository) ListChats(ctx context.Context, filter whatsapp.ChatFilter) ([]whatsapp.Chat, error) {
	q := chatSelect(filter.IncludeLastMessage)
	var args []any
	if filter.Query != "" {
		q += " WHERE (LOWER(c.name) LIKE LOWER(?) OR c.jid LIKE ?)"
		pattern := "%" + filter.Query + "%"
		args = append(args, pattern, pattern)
	}
	if filter.SortBy == whatsapp.ByName {
		q += " ORDER BY c.name"
	} else {
		q += " ORDER BY c.last_message_time DESC"
	}
	q += " LIMIT ? OFFSET ?"
	args = append(args, filter.Limit, filter.Page*filter.Limit)

	return r.queryChats(ctx, q, args...)
}

func (r *Repository) GetChat(ctx context.Context, chatJID string, includeLastMessage bool) (*whatsapp.Chat, error) {
	chats, err := r.queryChats(ctx, chatSelect(includeLastMessage)+" WHERE c.jid = ?", chatJID)
	if err != nil {
		return nil, err
	}
	return first(chats), nil
}

func (r *Repository) GetDirectChatByContact(ctx context.Context, phoneNumber string) (*whatsapp.Chat, error) {
	chats, err := r.queryChats(ctx, chatSelect(true)+`
		WHERE c.jid LIKE ? AND c.jid NOT LIKE '%@g.us'
		LIMIT 1`, "%"+phoneNumber+"%")
	if err != nil {
		return nil, err
	}
	return first(chats), nil
}

// GetContactChats lists the chats with jid, direct or group, newest first
func (r *Repository) GetContactChats(ctx context.Context, jid string, limit, page int) ([]whatsapp.Chat, error) {
	return r.queryChats(ctx, chatSelect(true)+`
		WHERE c.jid = ?
		   OR EXISTS (SELECT 1 FROM messages s WHERE s.chat_jid = c.jid AND s.sender IN (?, ?))
		ORDER BY c.last_message_time DESC
		LIMIT ? OFFSET ?`, jid, jid, whatsapp.PhoneFromJID(jid), limit, page*limit)
}

func (r *Repository) GetLastInteraction(ctx context.Context, jid string) (*whatsapp.Message, error) {
	messages, err := r.queryMessages(ctx, "SELECT"+messageColumns+`
		FROM messages m JOIN chats c ON m.chat_jid = c.jid
		WHERE m.sender IN (?, ?) OR c.jid = ?
		ORDER BY m.timestamp DESC
		LIMIT 1`, jid, whatsapp.PhoneFromJID(jid), jid)
	if err != nil {
		return nil, err
	}
	if len(messages) == 0 {
		return nil, nil
	}
	return &messages[0], nil
}

// GetMessageContext returns ErrNotFound when messageID is unknown
func (r *Repository) GetMessageContext(ctx context.Context, messageID string, before, after int) (whatsapp.MessageContext, error) {
	target, err := r.queryMessages(ctx, "SELECT"+messageColumns+`
		FROM messages m JOIN chats c ON m.chat_jid = c.jid
		WHERE m.id = ?
		LIMIT 1`, messageID)
	if err != nil {
		return whatsapp.MessageContext{}, err
	}
	if len(target) == 0 {
		return whatsapp.MessageContext{}, fmt.Errorf("message %s: %w", messageID, whatsapp.ErrNotFound)
	}
	m := target[0]

	earlier, err := r.queryMessages(ctx, "SELECT"+messageColumns+`
		FROM messages m JOIN chats c ON m.chat_jid = c.jid
		WHERE m.chat_jid = ?
		  AND m.timestamp < (SELECT timestamp FROM messages WHERE id = ? AND chat_jid = ?)
		ORDER BY m.timestamp DESC
		LIMIT ?`, m.ChatJID, m.ID, m.ChatJID, before)
	if err != nil {
		return whatsapp.MessageContext{}, err
	}
	slices.Reverse(earlier)

	later, err := r.queryMessages(ctx, "SELECT"+messageColumns+`
		FROM messages m JOIN chats c ON m.chat_jid = c.jid
		WHERE m.chat_jid = ?
		  AND m.timestamp > (SELECT timestamp FROM messages WHERE id = ? AND chat_jid = ?)
		ORDER BY m.timestamp ASC
		LIMIT ?`, m.ChatJID, m.ID, m.ChatJID, after)
	if err != nil {
		return whatsapp.MessageContext{}, err
	}

	return whatsapp.MessageContext{Message: m, Before: earlier, After: later}, nil
}

// SenderName resolves a sender to its chat name, first by exact JID and then
// by phone number. It falls back to the sender itself.
func (r *Repository) SenderName(ctx context.Context, senderJID string) string {
	var name sql.NullString
	err := r.DB.QueryRowContext(ctx, "SELECT name FROM chats WHERE jid = ? LIMIT 1", senderJID).Scan(&name)
	if err == nil && name.Valid && name.String != "" {
		return name.String
	}
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return senderJID
	}

	phone := whatsapp.PhoneFromJID(senderJID)
	err = r.DB.QueryRowContext(ctx, "SELECT name FROM chats WHERE jid LIKE ? LIMIT 1", "%"+phone+"%").Scan(&name)
	if err == nil && name.Valid && name.String != "" {
		return name.String
	}
	return senderJID
}

func (r *Repository) queryMessages(ctx context.Context, q string, args ...any) ([]whatsapp.Message, error) {
	rows, err := r.DB.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("selecting messages: %w", err)
	}
	defer rows.Close()

	messages := []whatsapp.Message{}
	for rows.Next() {
		var (
			m         whatsapp.Message
			ts        timestamp
			chatName  sql.NullString
			content   sql.NullString
			mediaType sql.NullString
		)
		if err := rows.Scan(&ts, &m.Sender, &chatName, &content, &m.IsFromMe, &m.ChatJID, &m.ID, &mediaType); err != nil {
			return nil, fmt.Errorf("scanning message: %w", err)
		}
		m.Timestamp = ts.Time
		m.ChatName = nullString(chatName)
		m.Content = content.String
		m.MediaType = nullString(mediaType)
		messages = append(messages, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating messages: %w", err)
	}
	return messages, nil
}

func chatSelect(includeLastMessage bool) string {
	if !includeLastMessage {
		return `
		SELECT c.jid, c.name, c.last_message_time, NULL, NULL, NULL
		FROM chats c`
	}
	return `
		SELECT c.jid, c.name, c.last_message_time, m.content, m.sender, m.is_from_me
		FROM chats c
		LEFT JOIN messages m ON c.jid = m.chat_jid AND c.last_message_time = m.timestamp`
}

func (r *Repository) queryChats(ctx context.Context, q string, args ...any) ([]whatsapp.Chat, error) {
	rows, err := r.DB.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("selecting chats: %w", err)
	}
	defer rows.Close()

	chats := []whatsapp.Chat{}
	for rows.Next() {
		var (
			c        whatsapp.Chat
			name     sql.NullString
			lastTime timestamp
			content  sql.NullString
			sender   sql.NullString
			fromMe   sql.NullBool
		)
		if err := rows.Scan(&c.JID, &name, &lastTime, &content, &sender, &fromMe); err != nil {
			return nil, fmt.Errorf("scanning chat: %w", err)
		}
		c.Name = nullString(name)
		if lastTime.Valid {
			c.LastMessageTime = &lastTime.Time
		}
		c.LastMessage = nullString(content)
		c.LastSender = nullString(sender)
		if fromMe.Valid {
			c.LastIsFromMe = &fromMe.Bool
		}
		chats = append(chats, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating chats: %w", err)
	}
	return chats, nil
}

func nullString(s sql.NullString) *string {
	if !s.Valid {
		return nil
	}
	return &s.String
}

func first(chats []whatsapp.Chat) *whatsapp.Chat {
	if len(chats) == 0 {
		return nil
	}
	return &chats[0]
}
