package domain

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

type Kind string

const (
	KindDriver    Kind = "drivers"
	KindPassenger Kind = "passengers"
	KindTrip      Kind = "trips"
)

// Record is one flat row from an entity source, keyed by normalized field name.
type Record map[string]string

var fieldReplacer = strings.NewReplacer(" ", "_", "-", "_")

// NormalizeField lower-cases a field name and maps spaces and hyphens to underscores.
func NormalizeField(name string) string {
	return fieldReplacer.Replace(strings.ToLower(strings.TrimSpace(name)))
}

// NewRecord builds a Record from raw header/value pairs.
func NewRecord(fields map[string]string) Record {
	rec := make(Record, len(fields))
	for k, v := range fields {
		rec[NormalizeField(k)] = v
	}
	return rec
}

// String returns the trimmed value of the first key present.
func (r Record) String(keys ...string) string {
	for _, k := range keys {
		if v, ok := r[NormalizeField(k)]; ok {
			return strings.TrimSpace(v)
		}
	}
	return ""
}

// ID parses an identifier field. A missing or empty value yields 0, which
// ValidateID reports as blank.
func (r Record) ID(key string) (int, error) {
	raw := r.String(key)
	if raw == "" {
		return 0, nil
	}
	id, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("%w: %s %q is not an integer", ErrInvalidID, key, raw)
	}
	return id, nil
}

func (r Record) Time(key string) (time.Time, error) {
	raw := r.String(key)
	if raw == "" {
		return time.Time{}, fmt.Errorf("%w: %s is required", ErrValidation, key)
	}
	return ParseTime(raw)
}

// OptionalTime returns nil for an empty value.
func (r Record) OptionalTime(key string) (*time.Time, error) {
	raw := r.String(key)
	if raw == "" {
		return nil, nil
	}
	t, err := ParseTime(raw)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func (r Record) OptionalFloat(key string) (*float64, error) {
	raw := r.String(key)
	if raw == "" {
		return nil, nil
	}
	f, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return nil, fmt.Errorf("%w: %s %q is not a number", ErrValidation, key, raw)
	}
	return &f, nil
}

func (r Record) OptionalInt(key string) (*int, error) {
	raw := r.String(key)
	if raw == "" {
		return nil, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return nil, fmt.Errorf("%w: %s %q is not an integer", ErrValidation, key, raw)
	}
	return &n, nil
}

var timeLayouts = []string{
	time.RFC3339,
	"2006-01-02 15:04:05 -0700",
	"2006-01-02 15:04:05 -07:00",
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
}

// ParseTime accepts RFC 3339 and the "YYYY-MM-DD hh:mm:ss -zzzz" form used by
// the CSV exports.
func ParseTime(raw string) (time.Time, error) {
	for _, layout := range timeLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("%w: unrecognized timestamp %q", ErrValidation, raw)
}
