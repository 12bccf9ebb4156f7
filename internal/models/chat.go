package models

import "time"

type Conversation struct {
	ID            int       `json:"id"`
	PeerID        int       `json:"peer_id"`
	PeerName      string    `json:"peer_name"`
	PeerAvatar    *string   `json:"peer_avatar,omitempty"`
	LastMessage   string    `json:"last_message,omitempty"`
	LastMessageAt time.Time `json:"last_message_at"`
	Unread        int       `json:"unread"`
}

type Message struct {
	ID             int       `json:"id"`
	ConversationID int       `json:"conversation_id"`
	SenderID       int       `json:"sender_id"`
	Text           string    `json:"text"`
	AttachmentURL  string    `json:"attachment_url,omitempty"`
	// ClientID is assigned by the sender before the round trip, so a
	// message seen both from the send response and a later poll can be
	// recognized as the same entry.
	ClientID  string    `json:"client_id,omitempty"`
	Read      bool      `json:"read"`
	CreatedAt time.Time `json:"created_at"`
}

type SendMessageRequest struct {
	ConversationID int    `json:"conversation_id"`
	Text           string `json:"text"`
	ClientID       string `json:"client_id,omitempty"`
}
