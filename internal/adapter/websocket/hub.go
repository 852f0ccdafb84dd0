package websocket

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"sync"
	"sync/atomic"

	"github.com/gorilla/websocket"
	"github.com/jessicacaley/oo-ride-share/internal/core/port"
	"go.uber.org/zap"
)

var ErrHubClosed = errors.New("websocket hub closed")

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

type delivery struct {
	to  []Subscriber
	msg []byte
}

// Hub pushes trip events to the sockets of the trip's driver and passenger.
// All client bookkeeping happens on the Run goroutine.
type Hub struct {
	clients    map[Subscriber]map[*Client]struct{}
	register   chan *Client
	unregister chan *Client
	deliver    chan delivery

	quit      chan struct{}
	done      chan struct{}
	closeOnce sync.Once
	connected atomic.Int64

	logger *zap.Logger
}

func NewHub(logger *zap.Logger) *Hub {
	return &Hub{
		clients:    make(map[Subscriber]map[*Client]struct{}),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		deliver:    make(chan delivery),
		quit:       make(chan struct{}),
		done:       make(chan struct{}),
		logger:     logger,
	}
}

func (h *Hub) Run() {
	defer close(h.done)

	for {
		select {
		case <-h.quit:
			for _, set := range h.clients {
				for client := range set {
					h.drop(client)
				}
			}
			return
		case client := <-h.register:
			set, ok := h.clients[client.sub]
			if !ok {
				set = make(map[*Client]struct{})
				h.clients[client.sub] = set
			}
			set[client] = struct{}{}
			h.connected.Add(1)
		case client := <-h.unregister:
			h.drop(client)
		case d := <-h.deliver:
			for _, sub := range d.to {
				for client := range h.clients[sub] {
					select {
					case client.send <- d.msg:
					default:
						h.logger.Warn("dropping slow websocket client", zap.Stringer("subscriber", sub))
						h.drop(client)
					}
				}
			}
		}
	}
}

// drop is a no-op for clients that are already gone.
func (h *Hub) drop(client *Client) {
	set, ok := h.clients[client.sub]
	if !ok {
		return
	}
	if _, ok := set[client]; !ok {
		return
	}
	delete(set, client)
	if len(set) == 0 {
		delete(h.clients, client.sub)
	}
	close(client.send)
	h.connected.Add(-1)
}

func (h *Hub) leave(client *Client) {
	select {
	case h.unregister <- client:
	case <-h.done:
	}
}

// Close stops Run and disconnects every client.
func (h *Hub) Close() error {
	h.closeOnce.Do(func() { close(h.quit) })
	return nil
}

// Connected reports the number of registered sockets.
func (h *Hub) Connected() int {
	return int(h.connected.Load())
}

// ServeWS upgrades the request and streams sub's trip events until the peer
// disconnects.
func (h *Hub) ServeWS(w http.ResponseWriter, r *http.Request, sub Subscriber) error {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		return err
	}

	client := &Client{hub: h, conn: conn, send: make(chan []byte, sendBuffer), sub: sub}
	select {
	case h.register <- client:
	case <-h.done:
		conn.Close()
		return ErrHubClosed
	}

	h.logger.Info("websocket client connected", zap.Stringer("subscriber", sub))
	go client.writePump()
	client.readPump()
	h.logger.Info("websocket client disconnected", zap.Stringer("subscriber", sub))
	return nil
}

// PublishTrip hands the event to the trip's driver and passenger sockets.
// It does not wait for the sockets to write.
func (h *Hub) PublishTrip(ctx context.Context, event port.TripEvent) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return err
	}
	msg, err := json.Marshal(Envelope{Type: messageTypes[event.Type], Payload: payload})
	if err != nil {
		return err
	}

	d := delivery{
		to: []Subscriber{
			{Role: RoleDriver, ID: event.DriverID},
			{Role: RolePassenger, ID: event.PassengerID},
		},
		msg: msg,
	}

	select {
	case h.deliver <- d:
		return nil
	case <-h.done:
		return ErrHubClosed
	case <-ctx.Done():
		return ctx.Err()
	}
}
