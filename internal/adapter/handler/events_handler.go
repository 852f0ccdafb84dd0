package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/jessicacaley/oo-ride-share/internal/adapter/websocket"
	"github.com/jessicacaley/oo-ride-share/internal/core/service"
	"go.uber.org/zap"
)

// EventsHandler upgrades subscribers to the websocket trip event stream.
type EventsHandler struct {
	hub    *websocket.Hub
	svc    *service.Dispatcher
	logger *zap.Logger
}

func NewEventsHandler(hub *websocket.Hub, svc *service.Dispatcher, logger *zap.Logger) *EventsHandler {
	return &EventsHandler{hub: hub, svc: svc, logger: logger}
}

func (h *EventsHandler) DriverEvents(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		respondError(c, err)
		return
	}
	if _, err := h.svc.FindDriver(id); err != nil {
		respondError(c, err)
		return
	}

	h.serve(c, websocket.Subscriber{Role: websocket.RoleDriver, ID: id})
}

func (h *EventsHandler) PassengerEvents(c *gin.Context) {
	h.serve(c, websocket.Subscriber{Role: websocket.RolePassenger, ID: c.GetInt(passengerIDKey)})
}

func (h *EventsHandler) serve(c *gin.Context, sub websocket.Subscriber) {
	if err := h.hub.ServeWS(c.Writer, c.Request, sub); err != nil {
		h.logger.Warn("websocket upgrade failed", zap.Stringer("subscriber", sub), zap.Error(err))
	}
}
