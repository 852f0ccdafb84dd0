package redis

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/jessicacaley/oo-ride-share/internal/core/port"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeClient struct {
	channel string
	payload []byte
	err     error
}

func (f *fakeClient) Publish(ctx context.Context, channel string, message any) *redis.IntCmd {
	f.channel = channel
	f.payload, _ = message.([]byte)
	cmd := redis.NewIntCmd(ctx)
	if f.err != nil {
		cmd.SetErr(f.err)
	} else {
		cmd.SetVal(1)
	}
	return cmd
}

func TestTripPublisher_PublishTrip(t *testing.T) {
	client := &fakeClient{}
	pub := newTripPublisher(client, "")

	start := time.Date(2024, 3, 4, 10, 0, 0, 0, time.UTC)
	err := pub.PublishTrip(context.Background(), port.TripEvent{
		Type:        port.TripRequested,
		TripID:      6,
		DriverID:    2,
		PassengerID: 4,
		StartTime:   start,
	})
	require.NoError(t, err)
	assert.Equal(t, DefaultChannel, client.channel)

	var got map[string]any
	require.NoError(t, json.Unmarshal(client.payload, &got))
	assert.Equal(t, "trip.requested", got["type"])
	assert.EqualValues(t, 6, got["trip_id"])
	assert.NotContains(t, got, "end_time")
	assert.NotContains(t, got, "cost")
}

func TestTripPublisher_PublishError(t *testing.T) {
	client := &fakeClient{err: errors.New("connection refused")}
	pub := newTripPublisher(client, "trips")

	err := pub.PublishTrip(context.Background(), port.TripEvent{Type: port.TripCompleted, TripID: 1})
	assert.EqualError(t, err, "connection refused")
	assert.Equal(t, "trips", client.channel)
}
