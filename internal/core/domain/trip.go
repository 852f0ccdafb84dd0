package domain

import (
	"fmt"
	"time"
)

const (
	MinRating = 1
	MaxRating = 5
)

type TripParams struct {
	ID          int
	PassengerID int
	DriverID    int
	Passenger   *Passenger
	Driver      *Driver
	StartTime   time.Time
	EndTime     *time.Time
	Cost        *float64
	Rating      *int
}

// Trip links one passenger to one driver. EndTime, Cost and Rating are nil
// while the trip is in progress.
type Trip struct {
	id          int
	passengerID int
	driverID    int
	passenger   *Passenger
	driver      *Driver
	startTime   time.Time
	endTime     *time.Time
	cost        *float64
	rating      *int
}

func NewTrip(p TripParams) (*Trip, error) {
	if err := ValidateID(p.ID); err != nil {
		return nil, err
	}
	if err := ValidateID(p.PassengerID); err != nil {
		return nil, fmt.Errorf("passenger_id: %w", err)
	}
	if err := ValidateID(p.DriverID); err != nil {
		return nil, fmt.Errorf("driver_id: %w", err)
	}
	if err := validateRating(p.Rating); err != nil {
		return nil, err
	}
	if err := validateSpan(p.StartTime, p.EndTime); err != nil {
		return nil, err
	}

	t := &Trip{
		id:          p.ID,
		passengerID: p.PassengerID,
		driverID:    p.DriverID,
		startTime:   p.StartTime,
		endTime:     p.EndTime,
		cost:        p.Cost,
		rating:      p.Rating,
	}
	if p.Passenger != nil {
		if err := t.bindPassenger(p.Passenger); err != nil {
			return nil, err
		}
	}
	if p.Driver != nil {
		if err := t.bindDriver(p.Driver); err != nil {
			return nil, err
		}
	}
	return t, nil
}

func TripFromRecord(rec Record) (*Trip, error) {
	id, err := rec.ID("id")
	if err != nil {
		return nil, err
	}
	if err := ValidateID(id); err != nil {
		return nil, err
	}

	passengerID, err := rec.ID("passenger_id")
	if err != nil {
		return nil, err
	}
	driverID, err := rec.ID("driver_id")
	if err != nil {
		return nil, err
	}
	start, err := rec.Time("start_time")
	if err != nil {
		return nil, err
	}
	end, err := rec.OptionalTime("end_time")
	if err != nil {
		return nil, err
	}
	cost, err := rec.OptionalFloat("cost")
	if err != nil {
		return nil, err
	}
	rating, err := rec.OptionalInt("rating")
	if err != nil {
		return nil, err
	}

	return NewTrip(TripParams{
		ID:          id,
		PassengerID: passengerID,
		DriverID:    driverID,
		StartTime:   start,
		EndTime:     end,
		Cost:        cost,
		Rating:      rating,
	})
}

func validateRating(r *int) error {
	if r != nil && (*r < MinRating || *r > MaxRating) {
		return fmt.Errorf("%w: rating must be between %d and %d, got %d", ErrValidation, MinRating, MaxRating, *r)
	}
	return nil
}

func validateSpan(start time.Time, end *time.Time) error {
	if end != nil && end.Before(start) {
		return fmt.Errorf("%w: end time %s is before start time %s", ErrValidation, end.Format(time.RFC3339), start.Format(time.RFC3339))
	}
	return nil
}

func (t *Trip) ID() int { return t.id }
func (t *Trip) PassengerID() int { return t.passengerID }
func (t *Trip) DriverID() int { return t.driverID }
func (t *Trip) Passenger() *Passenger { return t.passenger }
func (t *Trip) Driver() *Driver { return t.driver }
func (t *Trip) StartTime() time.Time { return t.startTime }
func (t *Trip) EndTime() *time.Time { return t.endTime }
func (t *Trip) Cost() *float64 { return t.cost }
func (t *Trip) Rating() *int { return t.rating }
func (t *Trip) InProgress() bool { return t.endTime == nil }

// Connect binds the resolved passenger and driver. Both must match the ids
// the trip was built with.
func (t *Trip) Connect(passenger *Passenger, driver *Driver) error {
	if passenger == nil || passenger.ID() != t.passengerID {
		return fmt.Errorf("%w: trip %d expects passenger %d", ErrPassengerNotFound, t.id, t.passengerID)
	}
	if driver == nil || driver.ID() != t.driverID {
		return fmt.Errorf("%w: trip %d expects driver %d", ErrDriverNotFound, t.id, t.driverID)
	}
	t.passenger = passenger
	t.driver = driver
	return nil
}

func (t *Trip) bindPassenger(passenger *Passenger) error {
	if passenger.ID() != t.passengerID {
		return fmt.Errorf("%w: trip %d expects passenger %d", ErrPassengerNotFound, t.id, t.passengerID)
	}
	t.passenger = passenger
	return nil
}

func (t *Trip) bindDriver(driver *Driver) error {
	if driver.ID() != t.driverID {
		return fmt.Errorf("%w: trip %d expects driver %d", ErrDriverNotFound, t.id, t.driverID)
	}
	t.driver = driver
	return nil
}

// Duration is the trip length in whole seconds.
func (t *Trip) Duration() (int64, error) {
	if t.endTime == nil {
		return 0, fmt.Errorf("%w: trip %d", ErrTripInProgress, t.id)
	}
	return int64(t.endTime.Sub(t.startTime) / time.Second), nil
}

// Complete closes an in-progress trip.
func (t *Trip) Complete(end time.Time, cost float64, rating int) error {
	if !t.InProgress() {
		return fmt.Errorf("%w: trip %d", ErrTripCompleted, t.id)
	}
	if err := validateRating(&rating); err != nil {
		return err
	}
	if err := validateSpan(t.startTime, &end); err != nil {
		return err
	}
	t.endTime = &end
	t.cost = &cost
	t.rating = &rating
	return nil
}
