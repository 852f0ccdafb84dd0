package kafka

import (
	"context"
	"encoding/json"
	"strconv"

	"github.com/jessicacaley/oo-ride-share/internal/core/port"
	kafkago "github.com/segmentio/kafka-go"
)

const DefaultTopic = "rideshare.trips"

type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafkago.Message) error
	Close() error
}

// TripPublisher writes trip events keyed by trip id, so every event for one
// trip lands on the same partition.
type TripPublisher struct {
	writer messageWriter
}

func NewTripPublisher(brokers []string, topic string) *TripPublisher {
	if topic == "" {
		topic = DefaultTopic
	}
	return &TripPublisher{
		writer: &kafkago.Writer{
			Addr:                   kafkago.TCP(brokers...),
			Topic:                  topic,
			Balancer:               &kafkago.Hash{},
			AllowAutoTopicCreation: true,
		},
	}
}

func (p *TripPublisher) PublishTrip(ctx context.Context, event port.TripEvent) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return err
	}

	return p.writer.WriteMessages(ctx, kafkago.Message{
		Key:   []byte(strconv.Itoa(event.TripID)),
		Value: payload,
		Headers: []kafkago.Header{
			{Key: "type", Value: []byte(event.Type)},
		},
	})
}

func (p *TripPublisher) Close() error {
	return p.writer.Close()
}
