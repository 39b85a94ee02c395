package repositories

import (
	"database/sql"
	"errors"

	intconfig "mavuso/internal/config"
	"mavuso/internal/domain"
	"mavuso/internal/domain/models"
)

// Querier is satisfied by *sql.DB and *sql.Tx so conversation writes can run
// inside the message transaction.
type Querier interface {
	QueryRow(query string, args ...any) *sql.Row
	Query(query string, args ...any) (*sql.Rows, error)
	Exec(query string, args ...any) (sql.Result, error)
}

type ConversationRepo struct {
	DB *sql.DB
}

func (r ConversationRepo) db() *sql.DB {
	if r.DB != nil {
		return r.DB
	}
	return intconfig.DB
}

// NormalizePair orders a participant pair so participant_1 < participant_2.
// The conversations unique constraint assumes this ordering.
func NormalizePair(a, b int64) (int64, int64) {
	if a > b {
		return b, a
	}
	return a, b
}

// GetOrCreate inserts the normalized pair with ON CONFLICT DO NOTHING and then
// selects it back, so concurrent calls with reversed participant order still
// converge on a single row.
func (r ConversationRepo) GetOrCreate(q Querier, userA, userB int64) (models.Conversation, error) {
	if userA <= 0 || userB <= 0 {
		return models.Conversation{}, domain.ValidationError{Field: "participants", Msg: "must be positive"}
	}
	if userA == userB {
		return models.Conversation{}, domain.ValidationError{Field: "participants", Msg: "cannot message yourself"}
	}
	if q == nil {
		q = r.db()
	}

	p1, p2 := NormalizePair(userA, userB)

	if _, err := q.Exec(`
		INSERT INTO conversations (participant_1, participant_2, last_message_at, created_at)
		VALUES ($1, $2, NOW(), NOW())
		ON CONFLICT (participant_1, participant_2) DO NOTHING
	`, p1, p2); err != nil {
		return models.Conversation{}, err
	}

	var c models.Conversation
	err := q.QueryRow(`
		SELECT id, participant_1, participant_2, last_message_at, created_at
		FROM conversations
		WHERE participant_1 = $1 AND participant_2 = $2
	`, p1, p2).Scan(&c.ID, &c.Participant1, &c.Participant2, &c.LastMessageAt, &c.CreatedAt)
	if err != nil {
		return models.Conversation{}, err
	}
	return c, nil
}

func (r ConversationRepo) GetByID(id int64) (models.Conversation, error) {
	if id <= 0 {
		return models.Conversation{}, domain.ValidationError{Field: "id", Msg: "must be positive"}
	}
	var c models.Conversation
	err := r.db().QueryRow(`
		SELECT id, participant_1, participant_2, last_message_at, created_at
		FROM conversations
		WHERE id = $1
	`, id).Scan(&c.ID, &c.Participant1, &c.Participant2, &c.LastMessageAt, &c.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Conversation{}, domain.NotFoundError{Resource: "conversation"}
	}
	if err != nil {
		return models.Conversation{}, err
	}
	return c, nil
}

// ListForUser returns the user's conversations with the most recent message
// and unread count pulled via correlated subqueries.
func (r ConversationRepo) ListForUser(userID int64) ([]models.Conversation, error) {
	rows, err := r.db().Query(`
		SELECT
			c.id, c.participant_1, c.participant_2, c.last_message_at, c.created_at,
			CASE WHEN c.participant_1 = $1 THEN c.participant_2 ELSE c.participant_1 END,
			COALESCE((
				SELECT u.first_name || ' ' || u.last_name
				FROM users u
				WHERE u.id = CASE WHEN c.participant_1 = $1 THEN c.participant_2 ELSE c.participant_1 END
			), ''),
			COALESCE((
				SELECT m.content
				FROM messages m
				WHERE m.conversation_id = c.id
				ORDER BY m.created_at DESC
				LIMIT 1
			), ''),
			(
				SELECT COUNT(*)
				FROM messages m
				WHERE m.conversation_id = c.id AND m.sender_id <> $1 AND m.read = FALSE
			)
		FROM conversations c
		WHERE c.participant_1 = $1 OR c.participant_2 = $1
		ORDER BY c.last_message_at DESC
	`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []models.Conversation{}
	for rows.Next() {
		var c models.Conversation
		if err := rows.Scan(
			&c.ID, &c.Participant1, &c.Participant2, &c.LastMessageAt, &c.CreatedAt,
			&c.OtherUserID, &c.OtherUserName, &c.LastMessage, &c.UnreadCount,
		); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

// Messages returns a conversation's messages oldest first.
func (r ConversationRepo) Messages(conversationID int64) ([]models.Message, error) {
	rows, err := r.db().Query(`
		SELECT id, conversation_id, sender_id, content, message_type, read, created_at
		FROM messages
		WHERE conversation_id = $1
		ORDER BY created_at ASC
	`, conversationID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []models.Message{}
	for rows.Next() {
		var m models.Message
		if err := rows.Scan(&m.ID, &m.ConversationID, &m.SenderID, &m.Content, &m.MessageType, &m.Read, &m.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	return out, rows.Err()
}

// MarkRead flags the other party's messages as read for the fetching user.
func (r ConversationRepo) MarkRead(conversationID, readerID int64) error {
	_, err := r.db().Exec(`
		UPDATE messages
		SET read = TRUE
		WHERE conversation_id = $1 AND sender_id <> $2 AND read = FALSE
	`, conversationID, readerID)
	return err
}

// InsertMessage adds a message row inside the caller's transaction.
func (r ConversationRepo) InsertMessage(q Querier, conversationID, senderID int64, content, messageType string) (models.Message, error) {
	if q == nil {
		q = r.db()
	}
	m := models.Message{
		ConversationID: conversationID,
		SenderID:       senderID,
		Content:        content,
		MessageType:    messageType,
	}
	err := q.QueryRow(`
		INSERT INTO messages (conversation_id, sender_id, content, message_type, read, created_at)
		VALUES ($1, $2, $3, $4, FALSE, NOW())
		RETURNING id, created_at
	`, conversationID, senderID, content, messageType).Scan(&m.ID, &m.CreatedAt)
	if err != nil {
		return models.Message{}, err
	}
	return m, nil
}

// TouchLastMessage bumps last_message_at after a successful insert.
func (r ConversationRepo) TouchLastMessage(q Querier, conversationID int64) error {
	if q == nil {
		q = r.db()
	}
	_, err := q.Exec(`UPDATE conversations SET last_message_at = NOW() WHERE id = $1`, conversationID)
	return err
}
