package services

import (
	"testing"
	"time"

	"mavuso/internal/domain"
	"mavuso/internal/domain/models"

	"github.com/DATA-DOG/go-sqlmock"
)

func expectRecipientLookup(mock sqlmock.Sqlmock, id int64) {
	now := time.Now()
	mock.ExpectQuery("FROM users WHERE id").
		WithArgs(id).
		WillReturnRows(sqlmock.NewRows([]string{
			"id", "email", "first_name", "last_name", "bio", "interests",
			"location", "phone", "verified", "created_at", "updated_at",
		}).AddRow(id, "sipho@example.com", "Sipho", "Nkosi", "", "[]", "", "", false, now, now))
}

func TestSendMessageFirstContactCreatesOneConversation(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	now := time.Now()

	expectRecipientLookup(mock, int64(3))

	mock.ExpectBegin()
	// pair arrives normalized regardless of sender/recipient order
	mock.ExpectExec("INSERT INTO conversations").
		WithArgs(int64(3), int64(8)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery("SELECT id, participant_1, participant_2").
		WithArgs(int64(3), int64(8)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "participant_1", "participant_2", "last_message_at", "created_at"}).
			AddRow(int64(9), int64(3), int64(8), now, now))
	mock.ExpectQuery("INSERT INTO messages").
		WithArgs(int64(9), int64(8), "hey, keen for Saturday?", domain.MessageText).
		WillReturnRows(sqlmock.NewRows([]string{"id", "created_at"}).AddRow(int64(21), now))
	mock.ExpectExec("UPDATE conversations SET last_message_at").
		WithArgs(int64(9)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	svc := MessageService{DB: db}
	msg, err := svc.Send(8, models.MessageInput{RecipientID: 3, Content: "hey, keen for Saturday?"})
	if err != nil {
		t.Fatalf("send error: %v", err)
	}

	if msg.ConversationID != 9 {
		t.Fatalf("conversation id = %d, want 9", msg.ConversationID)
	}
	if msg.MessageType != domain.MessageText {
		t.Fatalf("message type defaults to text, got %s", msg.MessageType)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestSendMessageRejectsSelf(t *testing.T) {
	svc := MessageService{}
	_, err := svc.Send(8, models.MessageInput{RecipientID: 8, Content: "hi me"})
	if !domain.IsValidation(err) {
		t.Fatalf("expected validation error for self-message, got %v", err)
	}
}

func TestSendMessageRejectsEmptyContent(t *testing.T) {
	svc := MessageService{}
	_, err := svc.Send(8, models.MessageInput{RecipientID: 3, Content: "   "})
	if !domain.IsValidation(err) {
		t.Fatalf("expected validation error for empty content, got %v", err)
	}
}

func TestSendMessageRejectsUnknownType(t *testing.T) {
	svc := MessageService{}
	_, err := svc.Send(8, models.MessageInput{RecipientID: 3, Content: "hi", MessageType: "video"})
	if !domain.IsValidation(err) {
		t.Fatalf("expected validation error for unknown message type, got %v", err)
	}
}

func TestConversationMessagesMarksOtherPartyRead(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	now := time.Now()

	mock.ExpectQuery("FROM conversations").
		WithArgs(int64(9)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "participant_1", "participant_2", "last_message_at", "created_at"}).
			AddRow(int64(9), int64(3), int64(8), now, now))
	mock.ExpectQuery("FROM messages").
		WithArgs(int64(9)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "conversation_id", "sender_id", "content", "message_type", "read", "created_at"}).
			AddRow(int64(21), int64(9), int64(3), "hello", "text", false, now))
	mock.ExpectExec("UPDATE messages").
		WithArgs(int64(9), int64(8)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	svc := MessageService{DB: db}
	msgs, err := svc.ConversationMessages(8, 9)
	if err != nil {
		t.Fatalf("fetch error: %v", err)
	}
	if len(msgs) != 1 {
		t.Fatalf("got %d messages, want 1", len(msgs))
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestConversationMessagesRejectsOutsider(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	now := time.Now()

	mock.ExpectQuery("FROM conversations").
		WithArgs(int64(9)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "participant_1", "participant_2", "last_message_at", "created_at"}).
			AddRow(int64(9), int64(3), int64(8), now, now))

	svc := MessageService{DB: db}
	_, err = svc.ConversationMessages(99, 9)
	if !domain.IsForbidden(err) {
		t.Fatalf("expected forbidden for non-participant, got %v", err)
	}
}
