package schema

import "time"

const (
	MessageCollection = "messages"

	// SystemSenderID is the reserved sender of automated messages
	SystemSenderID = "system"

	MessageMaxLength = 1000
)

type MessageKind string

const (
	MessageText     MessageKind = "text"
	MessageLocation MessageKind = "location"
	MessageSystem   MessageKind = "system"
)

// Message is immutable once created except for Read
type Message struct {
	ID        string      `json:"id" bson:"id"`
	SessionID string      `json:"session_id" bson:"session_id"`
	SenderID  string      `json:"sender_id" bson:"sender_id"`
	Content   string      `json:"content" bson:"content"`
	Kind      MessageKind `json:"kind" bson:"kind"`
	CreatedAt time.Time   `json:"created_at" bson:"created_at"`
	Read      bool        `json:"read" bson:"read"`
}
