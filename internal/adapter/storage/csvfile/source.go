package csvfile

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/jessicacaley/oo-ride-share/internal/core/domain"
)

// Source reads <dir>/<kind>.csv files. The first row of each file is the
// header; header names are normalized with domain.NormalizeField.
type Source struct {
	dir string
}

func NewSource(dir string) *Source {
	return &Source{dir: dir}
}

func (s *Source) Path(kind domain.Kind) string {
	return filepath.Join(s.dir, string(kind)+".csv")
}

func (s *Source) Records(ctx context.Context, kind domain.Kind) ([]domain.Record, error) {
	f, err := os.Open(s.Path(kind))
	if err != nil {
		return nil, err
	}
	defer f.Close()

	return ReadRecords(ctx, f)
}

// ReadRecords parses a header row followed by data rows. Every row must have
// as many fields as the header.
func ReadRecords(ctx context.Context, r io.Reader) ([]domain.Record, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if errors.Is(err, io.EOF) {
		return nil, errors.New("missing header row")
	}
	if err != nil {
		return nil, err
	}
	header[0] = strings.TrimPrefix(header[0], "\ufeff")
	for i, h := range header {
		header[i] = domain.NormalizeField(h)
	}

	var records []domain.Record
	for {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		row, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("parse csv: %w", err)
		}

		rec := make(domain.Record, len(header))
		for i, name := range header {
			rec[name] = row[i]
		}
		records = append(records, rec)
	}

	return records, nil
}
