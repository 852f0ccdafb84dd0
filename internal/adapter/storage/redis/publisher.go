package redis

import (
	"context"
	"encoding/json"

	"github.com/jessicacaley/oo-ride-share/internal/core/port"
	"github.com/redis/go-redis/v9"
)

const DefaultChannel = "rideshare.trips"

type publisher interface {
	Publish(ctx context.Context, channel string, message any) *redis.IntCmd
}

// TripPublisher fans trip events out over a Redis pub/sub channel.
type TripPublisher struct {
	client  publisher
	channel string
}

func NewTripPublisher(client *redis.Client, channel string) *TripPublisher {
	return newTripPublisher(client, channel)
}

func newTripPublisher(client publisher, channel string) *TripPublisher {
	if channel == "" {
		channel = DefaultChannel
	}
	return &TripPublisher{client: client, channel: channel}
}

func (p *TripPublisher) PublishTrip(ctx context.Context, event port.TripEvent) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return err
	}
	return p.client.Publish(ctx, p.channel, payload).Err()
}
