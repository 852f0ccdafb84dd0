package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/jessicacaley/oo-ride-share/internal/core/domain"
	"github.com/jessicacaley/oo-ride-share/internal/core/service"
)

type DispatchHandler struct {
	svc *service.Dispatcher
}

func NewDispatchHandler(svc *service.Dispatcher) *DispatchHandler {
	return &DispatchHandler{svc: svc}
}

func (h *DispatchHandler) ListDrivers(c *gin.Context) {
	var resp []driverResponse
	h.svc.View(func(g *service.Graph) {
		resp = make([]driverResponse, 0, len(g.Drivers))
		for _, d := range g.Drivers {
			resp = append(resp, newDriverResponse(d))
		}
	})
	c.JSON(http.StatusOK, resp)
}

func (h *DispatchHandler) GetDriver(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		respondError(c, err)
		return
	}

	var resp driverResponse
	h.svc.View(func(g *service.Graph) {
		var d *domain.Driver
		if d, err = g.FindDriver(id); err == nil {
			resp = newDriverResponse(d)
		}
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *DispatchHandler) ListPassengers(c *gin.Context) {
	var resp []passengerResponse
	h.svc.View(func(g *service.Graph) {
		resp = make([]passengerResponse, 0, len(g.Passengers))
		for _, p := range g.Passengers {
			resp = append(resp, newPassengerResponse(p))
		}
	})
	c.JSON(http.StatusOK, resp)
}

func (h *DispatchHandler) GetPassenger(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		respondError(c, err)
		return
	}

	var resp passengerResponse
	h.svc.View(func(g *service.Graph) {
		var p *domain.Passenger
		if p, err = g.FindPassenger(id); err == nil {
			resp = newPassengerResponse(p)
		}
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *DispatchHandler) ListTrips(c *gin.Context) {
	var resp []tripResponse
	h.svc.View(func(g *service.Graph) {
		resp = make([]tripResponse, 0, len(g.Trips))
		for _, t := range g.Trips {
			resp = append(resp, newTripResponse(t))
		}
	})
	c.JSON(http.StatusOK, resp)
}

func (h *DispatchHandler) GetTrip(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		respondError(c, err)
		return
	}

	var resp tripResponse
	h.svc.View(func(g *service.Graph) {
		var t *domain.Trip
		if t, err = g.FindTrip(id); err == nil {
			resp = newTripResponse(t)
		}
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// RequestTrip dispatches a driver to the authenticated passenger.
func (h *DispatchHandler) RequestTrip(c *gin.Context) {
	trip, err := h.svc.RequestTrip(c.Request.Context(), c.GetInt(passengerIDKey))
	if err != nil {
		respondError(c, err)
		return
	}

	var resp tripResponse
	h.svc.View(func(*service.Graph) { resp = newTripResponse(trip) })
	c.JSON(http.StatusCreated, resp)
}

type CompleteTripRequest struct {
	Rating int `json:"rating" binding:"required"`
}

// CompleteTrip ends a trip on behalf of the passenger who took it.
func (h *DispatchHandler) CompleteTrip(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		respondError(c, err)
		return
	}

	var req CompleteTripRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	trip, err := h.svc.FindTrip(id)
	if err != nil {
		respondError(c, err)
		return
	}
	if trip.PassengerID() != c.GetInt(passengerIDKey) {
		c.JSON(http.StatusForbidden, gin.H{"error": "trip belongs to another passenger"})
		return
	}

	trip, err = h.svc.CompleteTrip(c.Request.Context(), id, req.Rating)
	if err != nil {
		respondError(c, err)
		return
	}

	var resp tripResponse
	h.svc.View(func(*service.Graph) { resp = newTripResponse(trip) })
	c.JSON(http.StatusOK, resp)
}
