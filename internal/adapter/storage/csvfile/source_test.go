package csvfile

import (
	"context"
	"os"
	"strings"
	"testing"

	"github.com/jessicacaley/oo-ride-share/internal/core/domain"
	"github.com/jessicacaley/oo-ride-share/internal/core/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSource_Records(t *testing.T) {
	src := NewSource("testdata")

	records, err := src.Records(context.Background(), domain.KindPassenger)
	require.NoError(t, err)
	require.Len(t, records, 8)
	assert.Equal(t, "1", records[0]["id"])
	assert.Equal(t, "Passenger 1", records[0]["name"])
	assert.Equal(t, "8", records[7]["id"])
}

func TestSource_MissingFile(t *testing.T) {
	src := NewSource(t.TempDir())

	_, err := src.Records(context.Background(), domain.KindDriver)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestReadRecords_NormalizesHeader(t *testing.T) {
	in := "ID, Name ,Phone Num\n1,Ada,412-432-7640\n"

	records, err := ReadRecords(context.Background(), strings.NewReader(in))
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, domain.Record{"id": "1", "name": "Ada", "phone_num": "412-432-7640"}, records[0])
}

func TestReadRecords_ByteOrderMark(t *testing.T) {
	in := "\ufeffid,vin,name,status\n1,WBWSS52P9NEYLVDE9,Driver 1,AVAILABLE\n"

	records, err := ReadRecords(context.Background(), strings.NewReader(in))
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "1", records[0]["id"])

	driver, err := domain.DriverFromRecord(records[0])
	require.NoError(t, err)
	assert.Equal(t, 1, driver.ID())
}

func TestReadRecords_Malformed(t *testing.T) {
	tests := []struct {
		name string
		in   string
	}{
		{name: "empty", in: ""},
		{name: "short row", in: "id,name\n1\n"},
		{name: "bare quote", in: "id,name\n1,\"Ada\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ReadRecords(context.Background(), strings.NewReader(tt.in))
			assert.Error(t, err)
		})
	}
}

func TestSource_FeedsDispatcher(t *testing.T) {
	d, err := service.NewDispatcher(context.Background(), NewSource("testdata"))
	require.NoError(t, err)

	assert.Len(t, d.Passengers(), 8)
	assert.Len(t, d.Trips(), 5)

	drivers := d.Drivers()
	require.Len(t, drivers, 3)
	assert.Equal(t, domain.DriverStatusUnavailable, drivers[0].Status())

	trip, err := d.RequestTrip(context.Background(), 4)
	require.NoError(t, err)
	assert.Equal(t, 6, trip.ID())
	assert.Equal(t, 2, trip.DriverID())
}
