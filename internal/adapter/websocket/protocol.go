package websocket

import (
	"encoding/json"
	"strconv"

	"github.com/jessicacaley/oo-ride-share/internal/core/port"
)

type MessageType string

const (
	MsgTripRequested MessageType = "TRIP_REQUESTED"
	MsgTripCompleted MessageType = "TRIP_COMPLETED"
)

var messageTypes = map[port.TripEventType]MessageType{
	port.TripRequested: MsgTripRequested,
	port.TripCompleted: MsgTripCompleted,
}

type Envelope struct {
	Type    MessageType     `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

type Role string

const (
	RoleDriver    Role = "driver"
	RolePassenger Role = "passenger"
)

// Subscriber identifies whose trip events a connection receives.
type Subscriber struct {
	Role Role
	ID   int
}

func (s Subscriber) String() string {
	return string(s.Role) + ":" + strconv.Itoa(s.ID)
}
