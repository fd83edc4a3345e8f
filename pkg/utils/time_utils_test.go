package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseClockMinutes(t *testing.T) {
	m, err := ParseClockMinutes("09:30")
	require.NoError(t, err)
	assert.Equal(t, 570, m)

	_, err = ParseClockMinutes("25:00")
	assert.Error(t, err)
	_, err = ParseClockMinutes("9am")
	assert.Error(t, err)
}

func TestFormatClockMinutes(t *testing.T) {
	assert.Equal(t, "00:00", FormatClockMinutes(0))
	assert.Equal(t, "09:05", FormatClockMinutes(545))
	assert.Equal(t, "22:00", FormatClockMinutes(1320))
}

func TestDatesInRangeInclusive(t *testing.T) {
	start, err := ParseDate("2026-03-01")
	require.NoError(t, err)
	end, err := ParseDate("2026-03-03")
	require.NoError(t, err)

	dates := DatesInRange(start, end)
	require.Len(t, dates, 3)
	assert.Equal(t, "2026-03-01", FormatDate(dates[0]))
	assert.Equal(t, "2026-03-03", FormatDate(dates[2]))

	assert.Len(t, DatesInRange(start, start), 1)
	assert.Nil(t, DatesInRange(end, start))
}

func TestTravelMinutes(t *testing.T) {
	assert.Zero(t, TravelMinutes(0, 0, 0, 0))
	// ~11.1 km at 40 km/h rounds up to 17 minutes.
	assert.Equal(t, 17, TravelMinutes(0, 0, 0.1, 0))
}
