package domain

import (
	"context"
	"time"
)

type FareInput struct {
	Duration  time.Duration
	StartTime time.Time
}

type FareStrategy interface {
	CalculateFare(ctx context.Context, input FareInput) (float64, error)
}
