package models

import "time"

// Conversation is an unordered pair of users; participant columns are stored
// normalized (participant_1 < participant_2) so the unique constraint holds for
// either calling order.
type Conversation struct {
	ID            int64     `json:"id"`
	Participant1  int64     `json:"participant1"`
	Participant2  int64     `json:"participant2"`
	LastMessageAt time.Time `json:"lastMessageAt"`
	CreatedAt     time.Time `json:"createdAt"`

	// listing extras
	OtherUserID   int64  `json:"otherUserId,omitempty"`
	OtherUserName string `json:"otherUserName,omitempty"`
	LastMessage   string `json:"lastMessage,omitempty"`
	UnreadCount   int    `json:"unreadCount"`
}

type Message struct {
	ID             int64     `json:"id"`
	ConversationID int64     `json:"conversationId"`
	SenderID       int64     `json:"senderId"`
	Content        string    `json:"content"`
	MessageType    string    `json:"messageType"`
	Read           bool      `json:"read"`
	CreatedAt      time.Time `json:"createdAt"`
}

type MessageInput struct {
	RecipientID int64  `json:"recipientId"`
	Content     string `json:"content"`
	MessageType string `json:"messageType"`
}
