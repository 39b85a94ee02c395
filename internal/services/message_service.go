package services

import (
	"database/sql"

	intconfig "mavuso/internal/config"
	"mavuso/internal/domain"
	"mavuso/internal/domain/models"
	"mavuso/internal/repositories"
	"mavuso/internal/utils"
)

type MessageService struct {
	ConversationRepo repositories.ConversationRepo
	UserRepo         repositories.UserRepo
	DB               *sql.DB
	RequestID        string
}

func (s MessageService) db() *sql.DB {
	if s.DB != nil {
		return s.DB
	}
	return intconfig.DB
}

func (s MessageService) conversations() repositories.ConversationRepo {
	if s.ConversationRepo.DB != nil {
		return s.ConversationRepo
	}
	return repositories.ConversationRepo{DB: s.db()}
}

func (s MessageService) users() repositories.UserRepo {
	if s.UserRepo.DB != nil {
		return s.UserRepo
	}
	return repositories.UserRepo{DB: s.db()}
}

// Send delivers a message to the recipient, creating the conversation on
// first contact. Conversation lookup, message insert, and the
// last_message_at bump share one transaction.
func (s MessageService) Send(senderID int64, in models.MessageInput) (models.Message, error) {
	if senderID <= 0 {
		return models.Message{}, domain.ValidationError{Field: "sender", Msg: "not authenticated"}
	}
	if in.RecipientID <= 0 {
		return models.Message{}, domain.ValidationError{Field: "recipientId", Msg: "required"}
	}
	if in.RecipientID == senderID {
		return models.Message{}, domain.ValidationError{Field: "recipientId", Msg: "cannot message yourself"}
	}
	content := utils.TrimOrEmpty(in.Content)
	if content == "" {
		return models.Message{}, domain.ValidationError{Field: "content", Msg: "required"}
	}
	msgType := in.MessageType
	if msgType == "" {
		msgType = domain.MessageText
	}
	if !domain.ValidMessageType(msgType) {
		return models.Message{}, domain.ValidationError{Field: "messageType", Msg: "unknown type"}
	}

	if _, err := s.users().GetByID(in.RecipientID); err != nil {
		if domain.IsNotFound(err) {
			return models.Message{}, domain.NotFoundError{Resource: "recipient"}
		}
		return models.Message{}, domain.InternalError{Err: err}
	}

	utils.LogEvent(s.RequestID, "message", "send", "recipient_id="+itoa(in.RecipientID))

	tx, err := s.db().Begin()
	if err != nil {
		return models.Message{}, domain.InternalError{Err: err}
	}
	defer tx.Rollback()

	conv, err := s.conversations().GetOrCreate(tx, senderID, in.RecipientID)
	if err != nil {
		if domain.IsValidation(err) {
			return models.Message{}, err
		}
		return models.Message{}, domain.InternalError{Err: err}
	}

	msg, err := s.conversations().InsertMessage(tx, conv.ID, senderID, content, msgType)
	if err != nil {
		return models.Message{}, domain.InternalError{Err: err}
	}

	if err := s.conversations().TouchLastMessage(tx, conv.ID); err != nil {
		return models.Message{}, domain.InternalError{Err: err}
	}

	if err := tx.Commit(); err != nil {
		return models.Message{}, domain.InternalError{Err: err}
	}
	return msg, nil
}

// Conversations lists the caller's conversations, most recent activity first.
func (s MessageService) Conversations(userID int64) ([]models.Conversation, error) {
	if userID <= 0 {
		return nil, domain.ValidationError{Field: "user", Msg: "not authenticated"}
	}
	list, err := s.conversations().ListForUser(userID)
	if err != nil {
		return nil, domain.InternalError{Err: err}
	}
	return list, nil
}

// ConversationMessages returns one conversation's messages for a participant
// and marks the other party's messages read, the poll-model counterpart of a
// read receipt.
func (s MessageService) ConversationMessages(userID, conversationID int64) ([]models.Message, error) {
	conv, err := s.conversations().GetByID(conversationID)
	if err != nil {
		return nil, err
	}
	if conv.Participant1 != userID && conv.Participant2 != userID {
		return nil, domain.ForbiddenError{Msg: "not your conversation"}
	}

	msgs, err := s.conversations().Messages(conversationID)
	if err != nil {
		return nil, domain.InternalError{Err: err}
	}
	if err := s.conversations().MarkRead(conversationID, userID); err != nil {
		return nil, domain.InternalError{Err: err}
	}
	return msgs, nil
}
