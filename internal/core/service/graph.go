package service

import (
	"fmt"

	"github.com/jessicacaley/oo-ride-share/internal/core/domain"
)

// Graph owns every loaded entity. The slices keep source order; the maps
// index the same entities by id.
type Graph struct {
	Drivers    []*domain.Driver
	Passengers []*domain.Passenger
	Trips      []*domain.Trip

	driverByID    map[int]*domain.Driver
	passengerByID map[int]*domain.Passenger
	tripByID      map[int]*domain.Trip
}

func NewGraph(drivers []*domain.Driver, passengers []*domain.Passenger, trips []*domain.Trip) (*Graph, error) {
	g := &Graph{
		Drivers:       drivers,
		Passengers:    passengers,
		Trips:         trips,
		driverByID:    make(map[int]*domain.Driver, len(drivers)),
		passengerByID: make(map[int]*domain.Passenger, len(passengers)),
		tripByID:      make(map[int]*domain.Trip, len(trips)),
	}

	for _, d := range drivers {
		if _, dup := g.driverByID[d.ID()]; dup {
			return nil, fmt.Errorf("%w: duplicate driver id %d", domain.ErrValidation, d.ID())
		}
		g.driverByID[d.ID()] = d
	}
	for _, p := range passengers {
		if _, dup := g.passengerByID[p.ID()]; dup {
			return nil, fmt.Errorf("%w: duplicate passenger id %d", domain.ErrValidation, p.ID())
		}
		g.passengerByID[p.ID()] = p
	}
	for _, t := range trips {
		if _, dup := g.tripByID[t.ID()]; dup {
			return nil, fmt.Errorf("%w: duplicate trip id %d", domain.ErrValidation, t.ID())
		}
		g.tripByID[t.ID()] = t
	}

	if err := g.connectTrips(); err != nil {
		return nil, err
	}
	return g, nil
}

// connectTrips resolves each trip's driver and passenger and makes sure the
// trip sits in both owners' trip lists. Running it twice adds nothing.
func (g *Graph) connectTrips() error {
	for _, t := range g.Trips {
		passenger, err := g.FindPassenger(t.PassengerID())
		if err != nil {
			return fmt.Errorf("connect trip %d: %w", t.ID(), err)
		}
		driver, err := g.FindDriver(t.DriverID())
		if err != nil {
			return fmt.Errorf("connect trip %d: %w", t.ID(), err)
		}

		if err := t.Connect(passenger, driver); err != nil {
			return err
		}
		if !passenger.HasTrip(t) {
			passenger.AddTrip(t)
		}
		if !driver.HasTrip(t) {
			driver.AddTrip(t)
		}
	}
	return nil
}

func (g *Graph) FindDriver(id int) (*domain.Driver, error) {
	if err := domain.ValidateID(id); err != nil {
		return nil, err
	}
	d, ok := g.driverByID[id]
	if !ok {
		return nil, fmt.Errorf("%w: %d", domain.ErrDriverNotFound, id)
	}
	return d, nil
}

func (g *Graph) FindPassenger(id int) (*domain.Passenger, error) {
	if err := domain.ValidateID(id); err != nil {
		return nil, err
	}
	p, ok := g.passengerByID[id]
	if !ok {
		return nil, fmt.Errorf("%w: %d", domain.ErrPassengerNotFound, id)
	}
	return p, nil
}

func (g *Graph) FindTrip(id int) (*domain.Trip, error) {
	if err := domain.ValidateID(id); err != nil {
		return nil, err
	}
	t, ok := g.tripByID[id]
	if !ok {
		return nil, fmt.Errorf("%w: %d", domain.ErrTripNotFound, id)
	}
	return t, nil
}

// FirstAvailableDriver scans drivers in stored order.
func (g *Graph) FirstAvailableDriver() *domain.Driver {
	for _, d := range g.Drivers {
		if d.IsAvailable() {
			return d
		}
	}
	return nil
}

func (g *Graph) nextTripID() (int, error) {
	if len(g.Trips) == 0 {
		return 0, domain.ErrNoTripHistory
	}
	maxID := 0
	for _, t := range g.Trips {
		maxID = max(maxID, t.ID())
	}
	return maxID + 1, nil
}

func (g *Graph) appendTrip(t *domain.Trip) {
	g.Trips = append(g.Trips, t)
	g.tripByID[t.ID()] = t
}
