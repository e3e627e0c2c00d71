// Package notify delivers order notifications to users. The transports share one
// JSON message shape so a consumer can read from either broker.
package notify

import (
	"encoding/json"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/ports"
)

// Message is the wire form of a notification.
type Message struct {
	ID        string    `json:"id"`
	UserID    string    `json:"userId"`
	Role      string    `json:"role"`
	Subject   string    `json:"subject"`
	Message   string    `json:"message"`
	Link      string    `json:"link,omitempty"`
	ExpiresAt time.Time `json:"expiresAt"`
	SentAt    time.Time `json:"sentAt"`
}

func newMessage(id kernel.UUID, n ports.Notification, sentAt time.Time) Message {
	return Message{
		ID:        id.String(),
		UserID:    n.UserID.String(),
		Role:      n.Role.String(),
		Subject:   n.Subject,
		Message:   n.Message,
		Link:      n.Link,
		ExpiresAt: n.ExpiresAt.UTC(),
		SentAt:    sentAt.UTC(),
	}
}

func (m Message) encode() ([]byte, error) {
	return json.Marshal(m)
}
