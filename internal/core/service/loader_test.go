package service

import (
	"context"
	"testing"

	"github.com/jessicacaley/oo-ride-share/internal/core/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadAll_PreservesOrder(t *testing.T) {
	src := fixtureSource()
	src[domain.KindPassenger] = []domain.Record{
		{"id": "3", "name": "C"},
		{"id": "1", "name": "A"},
		{"id": "2", "name": "B"},
	}

	passengers, err := LoadPassengers(context.Background(), src)
	require.NoError(t, err)

	var ids []int
	for _, p := range passengers {
		ids = append(ids, p.ID())
	}
	assert.Equal(t, []int{3, 1, 2}, ids)
}

func TestLoadAll_InvalidIDFailsFirst(t *testing.T) {
	src := memSource{
		domain.KindDriver: {
			{"id": "0", "name": "Nobody", "vin": "short", "status": "BOGUS"},
		},
	}

	_, err := LoadDrivers(context.Background(), src)
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInvalidID)
	assert.NotErrorIs(t, err, domain.ErrValidation)
}

func TestLoadAll_ReportsRow(t *testing.T) {
	src := fixtureSource()
	src[domain.KindTrip][2]["rating"] = "4.5"

	_, err := LoadTrips(context.Background(), src)
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrValidation)
	assert.Contains(t, err.Error(), "load trips row 3")
}

func TestLoadAll_MissingKind(t *testing.T) {
	_, err := LoadTrips(context.Background(), memSource{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "load trips")
}
