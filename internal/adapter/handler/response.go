package handler

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jessicacaley/oo-ride-share/internal/core/domain"
)

type driverResponse struct {
	ID            int     `json:"id"`
	Name          string  `json:"name"`
	VIN           string  `json:"vin"`
	Status        string  `json:"status"`
	TripIDs       []int   `json:"trip_ids"`
	AverageRating float64 `json:"average_rating"`
}

type passengerResponse struct {
	ID              int      `json:"id"`
	Name            string   `json:"name"`
	PhoneNumber     string   `json:"phone_number"`
	TripIDs         []int    `json:"trip_ids"`
	NetExpenditures *float64 `json:"net_expenditures"`
	TotalTimeSpent  *int64   `json:"total_time_spent"`
}

type tripResponse struct {
	ID          int        `json:"id"`
	PassengerID int        `json:"passenger_id"`
	DriverID    int        `json:"driver_id"`
	StartTime   time.Time  `json:"start_time"`
	EndTime     *time.Time `json:"end_time"`
	Cost        *float64   `json:"cost"`
	Rating      *int       `json:"rating"`
	Duration    *int64     `json:"duration"`
}

func tripIDs(trips []*domain.Trip) []int {
	ids := make([]int, len(trips))
	for i, t := range trips {
		ids[i] = t.ID()
	}
	return ids
}

func newDriverResponse(d *domain.Driver) driverResponse {
	return driverResponse{
		ID:            d.ID(),
		Name:          d.Name,
		VIN:           d.VIN(),
		Status:        string(d.Status()),
		TripIDs:       tripIDs(d.Trips()),
		AverageRating: d.AverageRating(),
	}
}

// Aggregates that are undefined for this passenger are reported as null.
func newPassengerResponse(p *domain.Passenger) passengerResponse {
	resp := passengerResponse{
		ID:          p.ID(),
		Name:        p.Name,
		PhoneNumber: p.PhoneNumber,
		TripIDs:     tripIDs(p.Trips()),
	}
	if spent, err := p.NetExpenditures(); err == nil {
		resp.NetExpenditures = &spent
	}
	if secs, err := p.TotalTimeSpent(); err == nil {
		resp.TotalTimeSpent = &secs
	}
	return resp
}

func newTripResponse(t *domain.Trip) tripResponse {
	resp := tripResponse{
		ID:          t.ID(),
		PassengerID: t.PassengerID(),
		DriverID:    t.DriverID(),
		StartTime:   t.StartTime(),
		EndTime:     t.EndTime(),
		Cost:        t.Cost(),
		Rating:      t.Rating(),
	}
	if secs, err := t.Duration(); err == nil {
		resp.Duration = &secs
	}
	return resp
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, domain.ErrInvalidID), errors.Is(err, domain.ErrValidation):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrDriverNotFound),
		errors.Is(err, domain.ErrPassengerNotFound),
		errors.Is(err, domain.ErrTripNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrNoAvailableDriver), errors.Is(err, domain.ErrTripCompleted):
		return http.StatusConflict
	case errors.Is(err, domain.ErrAggregation), errors.Is(err, domain.ErrTripInProgress):
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

func respondError(c *gin.Context, err error) {
	c.JSON(statusFor(err), gin.H{"error": err.Error()})
}

// pathID parses :id. A non-numeric id is reported the same way as a blank one.
func pathID(c *gin.Context) (int, error) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return 0, domain.ErrInvalidID
	}
	return id, domain.ValidateID(id)
}
