package websocket

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/jessicacaley/oo-ride-share/internal/core/port"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestHub(t *testing.T) (*Hub, *httptest.Server) {
	t.Helper()

	hub := NewHub(zap.NewNop())
	go hub.Run()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id, _ := strconv.Atoi(r.URL.Query().Get("id"))
		_ = hub.ServeWS(w, r, Subscriber{Role: Role(r.URL.Query().Get("role")), ID: id})
	}))
	t.Cleanup(func() {
		hub.Close()
		<-hub.done
		srv.Close()
	})
	return hub, srv
}

func dial(t *testing.T, srv *httptest.Server, role Role, id string) *websocket.Conn {
	t.Helper()

	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "?role=" + string(role) + "&id=" + id
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })
	return conn
}

func readEnvelope(t *testing.T, conn *websocket.Conn) (Envelope, port.TripEvent) {
	t.Helper()

	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	var env Envelope
	require.NoError(t, conn.ReadJSON(&env))

	var event port.TripEvent
	require.NoError(t, json.Unmarshal(env.Payload, &event))
	return env, event
}

func TestHub_PublishTripReachesDriverAndPassenger(t *testing.T) {
	hub, srv := newTestHub(t)

	driver := dial(t, srv, RoleDriver, "2")
	passenger := dial(t, srv, RolePassenger, "4")
	other := dial(t, srv, RoleDriver, "3")
	require.Eventually(t, func() bool { return hub.Connected() == 3 }, 2*time.Second, 10*time.Millisecond)

	err := hub.PublishTrip(context.Background(), port.TripEvent{
		Type:        port.TripRequested,
		TripID:      6,
		DriverID:    2,
		PassengerID: 4,
		StartTime:   time.Date(2024, 3, 4, 10, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)

	env, event := readEnvelope(t, driver)
	assert.Equal(t, MsgTripRequested, env.Type)
	assert.Equal(t, 6, event.TripID)
	assert.Equal(t, port.TripRequested, event.Type)

	env, event = readEnvelope(t, passenger)
	assert.Equal(t, MsgTripRequested, env.Type)
	assert.Equal(t, 4, event.PassengerID)

	require.NoError(t, other.SetReadDeadline(time.Now().Add(100*time.Millisecond)))
	_, _, err = other.ReadMessage()
	assert.Error(t, err)
}

func TestHub_PublishTripWithoutSubscribers(t *testing.T) {
	hub, _ := newTestHub(t)

	err := hub.PublishTrip(context.Background(), port.TripEvent{Type: port.TripCompleted, TripID: 1, DriverID: 1, PassengerID: 1})
	assert.NoError(t, err)
}

func TestHub_DisconnectUnregisters(t *testing.T) {
	hub, srv := newTestHub(t)

	conn := dial(t, srv, RolePassenger, "1")
	require.Eventually(t, func() bool { return hub.Connected() == 1 }, 2*time.Second, 10*time.Millisecond)

	conn.Close()
	assert.Eventually(t, func() bool { return hub.Connected() == 0 }, 2*time.Second, 10*time.Millisecond)
}

func TestHub_Closed(t *testing.T) {
	hub := NewHub(zap.NewNop())
	go hub.Run()

	require.NoError(t, hub.Close())
	<-hub.done

	err := hub.PublishTrip(context.Background(), port.TripEvent{Type: port.TripRequested, TripID: 1, DriverID: 1, PassengerID: 1})
	assert.ErrorIs(t, err, ErrHubClosed)
}

func TestHub_PublishTripHonorsContext(t *testing.T) {
	hub := NewHub(zap.NewNop())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := hub.PublishTrip(ctx, port.TripEvent{Type: port.TripRequested, TripID: 1, DriverID: 1, PassengerID: 1})
	assert.ErrorIs(t, err, context.Canceled)
}
