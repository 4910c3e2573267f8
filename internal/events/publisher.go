// Package events publishes user-lifecycle messages to Kafka so downstream
// services can react to registrations and deletions. Publishing is best
// effort: callers log failures and never fail the request over them.
package events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/segmentio/kafka-go"

	"github.com/yafiirfan/backend.movie/internal/entity"
)

const (
	UserRegistered = "user.registered"
	UserDeleted    = "user.deleted"
)

// UserEvent is the message body for every user-lifecycle event.
type UserEvent struct {
	EventID    string    `json:"event_id"`
	Type       string    `json:"type"`
	UserID     int       `json:"user_id"`
	Email      string    `json:"email"`
	OccurredAt time.Time `json:"occurred_at"`
}

// Writer is the part of kafka.Writer the publisher uses.
type Writer interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
}

type Publisher struct {
	writer Writer
}

func NewPublisher(writer Writer) *Publisher {
	return &Publisher{writer: writer}
}

// PublishUserEvent emits one event for the user. The message key is
// "user-<type>-<id>" so all events for a user land on the same partition.
func (p *Publisher) PublishUserEvent(ctx context.Context, eventType string, user *entity.User) error {
	event := UserEvent{
		EventID:    uuid.NewString(),
		Type:       eventType,
		UserID:     user.ID,
		Email:      user.Email,
		OccurredAt: time.Now().UTC(),
	}

	value, err := json.Marshal(event)
	if err != nil {
		return err
	}

	msg := kafka.Message{
		Key:   []byte(fmt.Sprintf("user-%s-%d", eventType, user.ID)),
		Value: value,
	}

	return p.writer.WriteMessages(ctx, msg)
}
