package domain

import (
	"fmt"
	"slices"
)

type Passenger struct {
	id          int
	Name        string
	PhoneNumber string
	trips       []*Trip
}

func NewPassenger(id int, name, phone string) (*Passenger, error) {
	if err := ValidateID(id); err != nil {
		return nil, err
	}
	return &Passenger{id: id, Name: name, PhoneNumber: phone}, nil
}

func PassengerFromRecord(rec Record) (*Passenger, error) {
	id, err := rec.ID("id")
	if err != nil {
		return nil, err
	}
	return NewPassenger(id, rec.String("name"), rec.String("phone_num", "phone_number"))
}

func (p *Passenger) ID() int { return p.id }

// Trips returns a copy of the passenger's trips in the order they were taken.
func (p *Passenger) Trips() []*Trip { return slices.Clone(p.trips) }

func (p *Passenger) AddTrip(t *Trip) {
	p.trips = append(p.trips, t)
}

func (p *Passenger) HasTrip(t *Trip) bool {
	return slices.Contains(p.trips, t)
}

// NetExpenditures sums the cost of finished trips. In-progress trips are
// ignored; a finished trip without a cost, or no finished trips at all, is an
// aggregation error.
func (p *Passenger) NetExpenditures() (float64, error) {
	var total float64
	var finished int
	for _, t := range p.trips {
		if t.InProgress() {
			continue
		}
		cost := t.Cost()
		if cost == nil {
			return 0, fmt.Errorf("%w: trip %d has ended without a cost", ErrAggregation, t.ID())
		}
		total += *cost
		finished++
	}
	if finished == 0 {
		return 0, fmt.Errorf("%w: passenger %d has no completed trips", ErrAggregation, p.id)
	}
	return total, nil
}

// TotalTimeSpent sums the duration, in seconds, of every trip. Unlike NetExpenditures it
// does not skip in-progress trips: any of them makes the total undefined.
func (p *Passenger) TotalTimeSpent() (int64, error) {
	if len(p.trips) == 0 {
		return 0, fmt.Errorf("%w: passenger %d has no trips", ErrAggregation, p.id)
	}

	var total int64
	for _, t := range p.trips {
		secs, err := t.Duration()
		if err != nil {
			return 0, fmt.Errorf("%w: trip %d: %w", ErrAggregation, t.ID(), err)
		}
		total += secs
	}
	return total, nil
}
