package events

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yafiirfan/backend.movie/internal/entity"
)

type capturingWriter struct {
	msgs []kafka.Message
}

func (w *capturingWriter) WriteMessages(_ context.Context, msgs ...kafka.Message) error {
	w.msgs = append(w.msgs, msgs...)
	return nil
}

func TestPublishUserEvent(t *testing.T) {
	w := &capturingWriter{}
	p := NewPublisher(w)

	user := &entity.User{ID: 7, Username: "alice", Email: "a@x.com"}
	require.NoError(t, p.PublishUserEvent(context.Background(), UserRegistered, user))

	require.Len(t, w.msgs, 1)
	assert.Equal(t, "user-user.registered-7", string(w.msgs[0].Key))

	var event UserEvent
	require.NoError(t, json.Unmarshal(w.msgs[0].Value, &event))
	assert.Equal(t, UserRegistered, event.Type)
	assert.Equal(t, 7, event.UserID)
	assert.Equal(t, "a@x.com", event.Email)
	assert.NotEmpty(t, event.EventID)
	assert.False(t, event.OccurredAt.IsZero())
}

func TestPublishUserEventUniqueIDs(t *testing.T) {
	w := &capturingWriter{}
	p := NewPublisher(w)
	user := &entity.User{ID: 1, Email: "a@x.com"}

	require.NoError(t, p.PublishUserEvent(context.Background(), UserRegistered, user))
	require.NoError(t, p.PublishUserEvent(context.Background(), UserDeleted, user))

	require.Len(t, w.msgs, 2)
	var first, second UserEvent
	require.NoError(t, json.Unmarshal(w.msgs[0].Value, &first))
	require.NoError(t, json.Unmarshal(w.msgs[1].Value, &second))
	assert.NotEqual(t, first.EventID, second.EventID)
}
