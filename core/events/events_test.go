package events

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingWriter struct {
	msgs   []kafka.Message
	err    error
	closed bool
}

func (w *recordingWriter) WriteMessages(_ context.Context, msgs ...kafka.Message) error {
	if w.err != nil {
		return w.err
	}
	w.msgs = append(w.msgs, msgs...)
	return nil
}

func (w *recordingWriter) Close() error {
	w.closed = true
	return nil
}

func TestKafkaPublisher_Publish(t *testing.T) {
	w := &recordingWriter{}
	p := &KafkaPublisher{w: w}

	err := p.Publish(context.Background(), Event{Type: TypeSyncCompleted, UserID: "u1", Platform: "steam", Added: 2, Total: 3})
	require.NoError(t, err)
	require.Len(t, w.msgs, 1)
	assert.Equal(t, []byte("u1"), w.msgs[0].Key)

	var got Event
	require.NoError(t, json.Unmarshal(w.msgs[0].Value, &got))
	assert.Equal(t, TypeSyncCompleted, got.Type)
	assert.Equal(t, 2, got.Added)
	assert.False(t, got.Timestamp.IsZero())

	require.NoError(t, p.Close())
	assert.True(t, w.closed)
}

func TestKafkaPublisher_WriteError(t *testing.T) {
	p := &KafkaPublisher{w: &recordingWriter{err: errors.New("broker down")}}

	err := p.Publish(context.Background(), Event{Type: TypeSyncFailed, UserID: "u1"})
	assert.ErrorContains(t, err, "broker down")
	assert.ErrorContains(t, err, TypeSyncFailed)
}

func TestNewKafkaPublisher_NoBrokers(t *testing.T) {
	p := NewKafkaPublisher(Config{})
	assert.IsType(t, NopPublisher{}, p)
	assert.NoError(t, p.Publish(context.Background(), Event{}))
	assert.NoError(t, p.Close())
}

func TestNewKafkaPublisher_WithBrokers(t *testing.T) {
	p := NewKafkaPublisher(Config{Brokers: []string{"localhost:9092"}, Topic: "t"})
	kp, ok := p.(*KafkaPublisher)
	require.True(t, ok)
	assert.NotNil(t, kp.w)
}
