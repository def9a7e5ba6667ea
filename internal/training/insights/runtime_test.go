package insights_test

import (
	"testing"

	"github.com/athletiq/athlete-tracker/internal/training/insights"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateRunTime(t *testing.T) {
	valid := []string{"07:30", "0:00", "15:59", "120:05"}
	for _, v := range valid {
		assert.True(t, insights.ValidateRunTime(v), "expected %q to be valid", v)
	}

	invalid := []string{"", "730", "07:60", "07:-01", "-1:30", "07:30:00", "a:30", "07:b", "07:"}
	for _, v := range invalid {
		assert.False(t, insights.ValidateRunTime(v), "expected %q to be invalid", v)
	}
}

func TestParseRunTime(t *testing.T) {
	seconds, ok := insights.ParseRunTime("07:30")
	require.True(t, ok)
	assert.Equal(t, 450, seconds)

	seconds, ok = insights.ParseRunTime("0:45")
	require.True(t, ok)
	assert.Equal(t, 45, seconds)

	// invalid input is a data condition, not an error
	_, ok = insights.ParseRunTime("")
	assert.False(t, ok)
	_, ok = insights.ParseRunTime("7:95")
	assert.False(t, ok)
}

func TestFormatRunTime(t *testing.T) {
	assert.Equal(t, "7:30", insights.FormatRunTime(450))
	assert.Equal(t, "8:00", insights.FormatRunTime(480))
	assert.Equal(t, "7:45", insights.FormatRunTime(465))
	// fractional averages get truncated to whole seconds
	assert.Equal(t, "7:45", insights.FormatRunTime(465.7))
	assert.Equal(t, "N/A", insights.FormatRunTime(0))
	assert.Equal(t, "N/A", insights.FormatRunTime(-10))
}

func TestRunTimeRoundTrip(t *testing.T) {
	for _, v := range []string{"07:30", "4:00", "15:00", "6:05"} {
		seconds, ok := insights.ParseRunTime(v)
		require.True(t, ok)
		reparsed, ok := insights.ParseRunTime(insights.FormatRunTime(float64(seconds)))
		require.True(t, ok)
		assert.Equal(t, seconds, reparsed)
	}
}
