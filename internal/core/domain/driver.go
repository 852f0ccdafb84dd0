package domain

import (
	"fmt"
	"slices"
	"unicode/utf8"
)

const VINLength = 17

type DriverStatus string

const (
	DriverStatusAvailable   DriverStatus = "AVAILABLE"
	DriverStatusUnavailable DriverStatus = "UNAVAILABLE"
)

// ParseDriverStatus accepts only the two exact status tokens.
func ParseDriverStatus(token string) (DriverStatus, error) {
	switch s := DriverStatus(token); s {
	case DriverStatusAvailable, DriverStatusUnavailable:
		return s, nil
	default:
		return "", fmt.Errorf("%w: status must be %s or %s, got %q", ErrValidation, DriverStatusAvailable, DriverStatusUnavailable, token)
	}
}

type Driver struct {
	id     int
	Name   string
	vin    string
	status DriverStatus
	trips  []*Trip
}

func NewDriver(id int, name, vin string, status DriverStatus) (*Driver, error) {
	if err := ValidateID(id); err != nil {
		return nil, err
	}
	if n := utf8.RuneCountInString(vin); n != VINLength {
		return nil, fmt.Errorf("%w: vin must be %d characters, got %d", ErrValidation, VINLength, n)
	}
	if _, err := ParseDriverStatus(string(status)); err != nil {
		return nil, err
	}

	return &Driver{
		id:     id,
		Name:   name,
		vin:    vin,
		status: status,
	}, nil
}

func DriverFromRecord(rec Record) (*Driver, error) {
	id, err := rec.ID("id")
	if err != nil {
		return nil, err
	}
	if err := ValidateID(id); err != nil {
		return nil, err
	}

	status, err := ParseDriverStatus(rec.String("status"))
	if err != nil {
		return nil, err
	}

	return NewDriver(id, rec.String("name"), rec.String("vin"), status)
}

func (d *Driver) ID() int { return d.id }
func (d *Driver) VIN() string { return d.vin }
func (d *Driver) Status() DriverStatus { return d.status }

// Trips returns a copy of the driver's trips in assignment order.
func (d *Driver) Trips() []*Trip { return slices.Clone(d.trips) }

func (d *Driver) IsAvailable() bool {
	return d.status == DriverStatusAvailable
}

func (d *Driver) SetStatus(status DriverStatus) error {
	s, err := ParseDriverStatus(string(status))
	if err != nil {
		return err
	}
	d.status = s
	return nil
}

// AddTrip appends without checking ownership or duplicates.
func (d *Driver) AddTrip(t *Trip) {
	d.trips = append(d.trips, t)
}

// AssignTrip records a newly dispatched trip and takes the driver off the road.
func (d *Driver) AssignTrip(t *Trip) {
	d.AddTrip(t)
	d.status = DriverStatusUnavailable
}

func (d *Driver) HasTrip(t *Trip) bool {
	return slices.Contains(d.trips, t)
}

// AverageRating is the mean over rated trips. In-progress trips carry no
// rating and are skipped; a driver with no rated trips averages 0.
func (d *Driver) AverageRating() float64 {
	var total, rated int
	for _, t := range d.trips {
		if r := t.Rating(); r != nil {
			total += *r
			rated++
		}
	}
	if rated == 0 {
		return 0
	}
	return float64(total) / float64(rated)
}
