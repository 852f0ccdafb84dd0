package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeField(t *testing.T) {
	assert.Equal(t, "phone_num", NormalizeField(" Phone Num "))
	assert.Equal(t, "start_time", NormalizeField("Start-Time"))
	assert.Equal(t, "id", NormalizeField("ID"))
}

func TestValidateID(t *testing.T) {
	assert.NoError(t, ValidateID(1))
	for _, id := range []int{0, -1} {
		err := ValidateID(id)
		assert.EqualError(t, err, "ID cannot be blank or less than zero.")
	}
}

func TestRecord_ID(t *testing.T) {
	rec := Record{"id": "12", "bad": "x"}

	id, err := rec.ID("id")
	require.NoError(t, err)
	assert.Equal(t, 12, id)

	id, err = rec.ID("missing")
	require.NoError(t, err)
	assert.Zero(t, id)

	_, err = rec.ID("bad")
	assert.ErrorIs(t, err, ErrInvalidID)
}

func TestParseTime(t *testing.T) {
	want := time.Date(2018, 5, 25, 18, 52, 40, 0, time.UTC)

	for _, raw := range []string{
		"2018-05-25 11:52:40 -0700",
		"2018-05-25T11:52:40-07:00",
		"2018-05-25 11:52:40 -07:00",
	} {
		got, err := ParseTime(raw)
		require.NoError(t, err, raw)
		assert.True(t, want.Equal(got), raw)
	}

	_, err := ParseTime("May 25th")
	assert.ErrorIs(t, err, ErrValidation)
}
