package port

import (
	"context"

	"github.com/jessicacaley/oo-ride-share/internal/core/domain"
)

// EntitySource returns the raw rows for one entity kind, in storage order.
type EntitySource interface {
	Records(ctx context.Context, kind domain.Kind) ([]domain.Record, error)
}
