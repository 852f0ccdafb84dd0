package pricing

import (
	"context"
	"errors"
	"math"

	"github.com/jessicacaley/oo-ride-share/internal/core/domain"
)

// Rates are in cents.
const (
	BaseFareCents  = 250
	PerMinuteCents = 35
	MinimumCents   = 500
	NightSurge     = 1.25
	nightStartHour = 22
	nightEndHour   = 5
)

type StandardStrategy struct{}

func NewStandardStrategy() *StandardStrategy {
	return &StandardStrategy{}
}

// CalculateFare charges a base fare plus a per-minute rate, surged for trips
// starting late at night, and never below the minimum. The result is in
// dollars rounded to the cent.
func (s *StandardStrategy) CalculateFare(ctx context.Context, input domain.FareInput) (float64, error) {
	if input.Duration < 0 {
		return 0, errors.New("negative trip duration")
	}

	cents := BaseFareCents + input.Duration.Minutes()*PerMinuteCents

	if h := input.StartTime.Hour(); h >= nightStartHour || h < nightEndHour {
		cents *= NightSurge
	}

	if cents < MinimumCents {
		cents = MinimumCents
	}

	return math.Round(cents) / 100, nil
}
