package service

import (
	"context"
	"fmt"
	"slices"
	"sync"
	"time"

	"github.com/jessicacaley/oo-ride-share/internal/core/domain"
	"github.com/jessicacaley/oo-ride-share/internal/core/port"
	"github.com/jessicacaley/oo-ride-share/internal/core/service/pricing"
	"go.uber.org/zap"
)

type Option func(*Dispatcher)

func WithClock(now func() time.Time) Option {
	return func(d *Dispatcher) { d.now = now }
}

func WithFareStrategy(fares domain.FareStrategy) Option {
	return func(d *Dispatcher) { d.fares = fares }
}

func WithPublisher(pub port.TripPublisher) Option {
	return func(d *Dispatcher) { d.publisher = pub }
}

func WithLogger(logger *zap.Logger) Option {
	return func(d *Dispatcher) { d.logger = logger }
}

// Dispatcher is the facade over the linked entity graph. All mutations go
// through it and are serialized by mu.
type Dispatcher struct {
	mu    sync.RWMutex
	graph *Graph

	now       func() time.Time
	fares     domain.FareStrategy
	publisher port.TripPublisher
	logger    *zap.Logger
}

// NewDispatcher loads passengers, trips and drivers from src and links them.
func NewDispatcher(ctx context.Context, src port.EntitySource, opts ...Option) (*Dispatcher, error) {
	passengers, err := LoadPassengers(ctx, src)
	if err != nil {
		return nil, err
	}
	trips, err := LoadTrips(ctx, src)
	if err != nil {
		return nil, err
	}
	drivers, err := LoadDrivers(ctx, src)
	if err != nil {
		return nil, err
	}

	graph, err := NewGraph(drivers, passengers, trips)
	if err != nil {
		return nil, err
	}

	d := &Dispatcher{
		graph:  graph,
		now:    time.Now,
		fares:  pricing.NewStandardStrategy(),
		logger: zap.NewNop(),
	}
	for _, opt := range opts {
		opt(d)
	}

	d.logger.Info("dispatcher ready",
		zap.Int("drivers", len(drivers)),
		zap.Int("passengers", len(passengers)),
		zap.Int("trips", len(trips)),
	)

	return d, nil
}

func (d *Dispatcher) Drivers() []*domain.Driver {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return slices.Clone(d.graph.Drivers)
}

func (d *Dispatcher) Passengers() []*domain.Passenger {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return slices.Clone(d.graph.Passengers)
}

func (d *Dispatcher) Trips() []*domain.Trip {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return slices.Clone(d.graph.Trips)
}

// View runs fn under the read lock. fn must not call back into d.
func (d *Dispatcher) View(fn func(g *Graph)) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	fn(d.graph)
}

func (d *Dispatcher) FindDriver(id int) (*domain.Driver, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.graph.FindDriver(id)
}

func (d *Dispatcher) FindPassenger(id int) (*domain.Passenger, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.graph.FindPassenger(id)
}

func (d *Dispatcher) FindTrip(id int) (*domain.Trip, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.graph.FindTrip(id)
}

// RequestTrip assigns the first available driver to a new trip for the
// passenger. Nothing is mutated unless every lookup succeeds. The trip event
// goes out after the lock is released.
func (d *Dispatcher) RequestTrip(ctx context.Context, passengerID int) (*domain.Trip, error) {
	trip, event, err := d.requestTrip(passengerID)
	if err != nil {
		return nil, err
	}
	d.publish(ctx, event)
	return trip, nil
}

func (d *Dispatcher) requestTrip(passengerID int) (*domain.Trip, port.TripEvent, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	driver := d.graph.FirstAvailableDriver()
	if driver == nil {
		return nil, port.TripEvent{}, domain.ErrNoAvailableDriver
	}

	tripID, err := d.graph.nextTripID()
	if err != nil {
		return nil, port.TripEvent{}, err
	}

	passenger, err := d.graph.FindPassenger(passengerID)
	if err != nil {
		return nil, port.TripEvent{}, err
	}

	trip, err := domain.NewTrip(domain.TripParams{
		ID:          tripID,
		PassengerID: passenger.ID(),
		Passenger:   passenger,
		DriverID:    driver.ID(),
		Driver:      driver,
		StartTime:   d.now(),
	})
	if err != nil {
		return nil, port.TripEvent{}, fmt.Errorf("build trip %d: %w", tripID, err)
	}

	driver.AssignTrip(trip)
	passenger.AddTrip(trip)
	d.graph.appendTrip(trip)

	d.logger.Info("trip requested",
		zap.Int("trip_id", trip.ID()),
		zap.Int("driver_id", driver.ID()),
		zap.Int("passenger_id", passenger.ID()),
	)

	return trip, tripEvent(port.TripRequested, trip), nil
}

// CompleteTrip ends an in-progress trip now, prices it, records the
// passenger's rating and puts the driver back on the road.
func (d *Dispatcher) CompleteTrip(ctx context.Context, tripID int, rating int) (*domain.Trip, error) {
	trip, event, err := d.completeTrip(ctx, tripID, rating)
	if err != nil {
		return nil, err
	}
	d.publish(ctx, event)
	return trip, nil
}

func (d *Dispatcher) completeTrip(ctx context.Context, tripID int, rating int) (*domain.Trip, port.TripEvent, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	trip, err := d.graph.FindTrip(tripID)
	if err != nil {
		return nil, port.TripEvent{}, err
	}
	if !trip.InProgress() {
		return nil, port.TripEvent{}, fmt.Errorf("%w: trip %d", domain.ErrTripCompleted, tripID)
	}

	end := d.now()
	if end.Before(trip.StartTime()) {
		return nil, port.TripEvent{}, fmt.Errorf("%w: trip %d starts at %s, after %s",
			domain.ErrValidation, tripID, trip.StartTime().Format(time.RFC3339), end.Format(time.RFC3339))
	}

	cost, err := d.fares.CalculateFare(ctx, domain.FareInput{
		Duration:  end.Sub(trip.StartTime()),
		StartTime: trip.StartTime(),
	})
	if err != nil {
		return nil, port.TripEvent{}, fmt.Errorf("price trip %d: %w", tripID, err)
	}

	if err := trip.Complete(end, cost, rating); err != nil {
		return nil, port.TripEvent{}, err
	}
	if err := trip.Driver().SetStatus(domain.DriverStatusAvailable); err != nil {
		return nil, port.TripEvent{}, err
	}

	d.logger.Info("trip completed",
		zap.Int("trip_id", trip.ID()),
		zap.Int("driver_id", trip.DriverID()),
		zap.Float64("cost", cost),
		zap.Int("rating", rating),
	)

	return trip, tripEvent(port.TripCompleted, trip), nil
}

// tripEvent snapshots t. Call it while holding the lock.
func tripEvent(typ port.TripEventType, t *domain.Trip) port.TripEvent {
	return port.TripEvent{
		Type:        typ,
		TripID:      t.ID(),
		DriverID:    t.DriverID(),
		PassengerID: t.PassengerID(),
		StartTime:   t.StartTime(),
		EndTime:     t.EndTime(),
		Cost:        t.Cost(),
		Rating:      t.Rating(),
	}
}

// publish is best effort and must run without d.mu held.
func (d *Dispatcher) publish(ctx context.Context, event port.TripEvent) {
	if d.publisher == nil {
		return
	}

	if err := d.publisher.PublishTrip(ctx, event); err != nil {
		d.logger.Warn("failed to publish trip event",
			zap.String("type", string(event.Type)),
			zap.Int("trip_id", event.TripID),
			zap.Error(err),
		)
	}
}
