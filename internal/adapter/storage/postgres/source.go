package postgres

import (
	"context"
	"fmt"
	"math/big"
	"strconv"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jessicacaley/oo-ride-share/internal/core/domain"
)

// DBTX is satisfied by *pgxpool.Pool, *pgx.Conn and pgx.Tx.
type DBTX interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
}

// Source reads each entity kind from the table of the same name.
type Source struct {
	db DBTX
}

func New(db DBTX) *Source {
	return &Source{db: db}
}

var tables = map[domain.Kind]string{
	domain.KindDriver:    "drivers",
	domain.KindPassenger: "passengers",
	domain.KindTrip:      "trips",
}

func (s *Source) Records(ctx context.Context, kind domain.Kind) ([]domain.Record, error) {
	table, ok := tables[kind]
	if !ok {
		return nil, fmt.Errorf("unknown entity kind %q", kind)
	}

	rows, err := s.db.Query(ctx, "SELECT * FROM "+pgx.Identifier{table}.Sanitize()+" ORDER BY id")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	fields := rows.FieldDescriptions()
	var records []domain.Record
	for rows.Next() {
		values, err := rows.Values()
		if err != nil {
			return nil, err
		}

		rec := make(domain.Record, len(fields))
		for i, fd := range fields {
			v, err := formatValue(values[i])
			if err != nil {
				return nil, fmt.Errorf("%s.%s: %w", table, fd.Name, err)
			}
			rec[domain.NormalizeField(fd.Name)] = v
		}
		records = append(records, rec)
	}

	return records, rows.Err()
}

// formatValue renders a decoded column value in the textual form the domain
// record parsers expect. NULL becomes the empty string.
func formatValue(v any) (string, error) {
	switch v := v.(type) {
	case nil:
		return "", nil
	case string:
		return v, nil
	case int16:
		return strconv.FormatInt(int64(v), 10), nil
	case int32:
		return strconv.FormatInt(int64(v), 10), nil
	case int64:
		return strconv.FormatInt(v, 10), nil
	case float32:
		return strconv.FormatFloat(float64(v), 'f', -1, 32), nil
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64), nil
	case time.Time:
		return v.Format(time.RFC3339), nil
	case pgtype.Numeric:
		if !v.Valid {
			return "", nil
		}
		f, err := v.Float64Value()
		if err != nil {
			return "", err
		}
		return strconv.FormatFloat(f.Float64, 'f', -1, 64), nil
	case *big.Int:
		return v.String(), nil
	default:
		return fmt.Sprint(v), nil
	}
}

var _ DBTX = (*pgxpool.Pool)(nil)
