package kafka

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/jessicacaley/oo-ride-share/internal/core/port"
	kafkago "github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeWriter struct {
	msgs   []kafkago.Message
	closed bool
}

func (f *fakeWriter) WriteMessages(ctx context.Context, msgs ...kafkago.Message) error {
	f.msgs = append(f.msgs, msgs...)
	return nil
}

func (f *fakeWriter) Close() error {
	f.closed = true
	return nil
}

func TestTripPublisher_PublishTrip(t *testing.T) {
	w := &fakeWriter{}
	pub := &TripPublisher{writer: w}

	cost := 9.5
	rating := 4
	err := pub.PublishTrip(context.Background(), port.TripEvent{
		Type:   port.TripCompleted,
		TripID: 6,
		Cost:   &cost,
		Rating: &rating,
	})
	require.NoError(t, err)
	require.Len(t, w.msgs, 1)

	msg := w.msgs[0]
	assert.Equal(t, "6", string(msg.Key))
	require.Len(t, msg.Headers, 1)
	assert.Equal(t, "trip.completed", string(msg.Headers[0].Value))

	var got port.TripEvent
	require.NoError(t, json.Unmarshal(msg.Value, &got))
	assert.Equal(t, 6, got.TripID)
	require.NotNil(t, got.Cost)
	assert.Equal(t, 9.5, *got.Cost)

	require.NoError(t, pub.Close())
	assert.True(t, w.closed)
}
