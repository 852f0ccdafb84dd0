package port

import (
	"context"
	"time"
)

type TripEventType string

const (
	TripRequested TripEventType = "trip.requested"
	TripCompleted TripEventType = "trip.completed"
)

type TripEvent struct {
	Type        TripEventType `json:"type"`
	TripID      int           `json:"trip_id"`
	DriverID    int           `json:"driver_id"`
	PassengerID int           `json:"passenger_id"`
	StartTime   time.Time     `json:"start_time"`
	EndTime     *time.Time    `json:"end_time,omitempty"`
	Cost        *float64      `json:"cost,omitempty"`
	Rating      *int          `json:"rating,omitempty"`
}

type TripPublisher interface {
	PublishTrip(ctx context.Context, event TripEvent) error
}
