package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseTimestamp(t *testing.T) {
	want := time.Date(2026, 1, 2, 14, 30, 0, 0, time.UTC)

	for _, value := range []string{
		"2026-01-02T14:30:00Z",
		"2026-01-02T14:30:00",
		"2026-01-02T14:30",
		"2026-01-02 14:30:00",
		"2026-01-02 14:30",
	} {
		got, err := parseTimestamp(value)
		require.NoError(t, err, value)
		assert.True(t, want.Equal(got), "parsing %q", value)
	}

	for _, value := range []string{"", "tomorrow", "14:30", "2026-13-40T99:00:00"} {
		_, err := parseTimestamp(value)
		assert.Error(t, err, value)
	}
}

func TestParseDate(t *testing.T) {
	got, err := parseDate("2026-01-02")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2026, 1, 2, 0, 0, 0, 0, time.UTC), got)

	_, err = parseDate("2026-01-02T09:00:00")
	assert.Error(t, err)
}
