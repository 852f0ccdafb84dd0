package service

import (
	"context"
	"fmt"

	"github.com/jessicacaley/oo-ride-share/internal/core/domain"
	"github.com/jessicacaley/oo-ride-share/internal/core/port"
)

// LoadAll reads every record of kind from src and builds one entity per row,
// preserving row order. The first bad row aborts the load.
func LoadAll[T domain.Entity](ctx context.Context, src port.EntitySource, kind domain.Kind, build func(domain.Record) (T, error)) ([]T, error) {
	records, err := src.Records(ctx, kind)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", kind, err)
	}

	entities := make([]T, 0, len(records))
	for i, rec := range records {
		e, err := build(rec)
		if err != nil {
			return nil, fmt.Errorf("load %s row %d: %w", kind, i+1, err)
		}
		entities = append(entities, e)
	}

	return entities, nil
}

func LoadDrivers(ctx context.Context, src port.EntitySource) ([]*domain.Driver, error) {
	return LoadAll(ctx, src, domain.KindDriver, domain.DriverFromRecord)
}

func LoadPassengers(ctx context.Context, src port.EntitySource) ([]*domain.Passenger, error) {
	return LoadAll(ctx, src, domain.KindPassenger, domain.PassengerFromRecord)
}

func LoadTrips(ctx context.Context, src port.EntitySource) ([]*domain.Trip, error) {
	return LoadAll(ctx, src, domain.KindTrip, domain.TripFromRecord)
}
