package pricing

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateWindow(t *testing.T) {
	require.NoError(t, ValidateWindow("17:00", "19:00"))
	require.NoError(t, ValidateWindow("00:00", "23:59"))

	bad := []struct{ start, end string }{
		{"19:00", "17:00"}, // reversed
		{"17:00", "17:00"}, // empty window
		{"22:00", "02:00"}, // wrapping past midnight is not allowed
		{"5:00", "19:00"},  // not zero-padded
		{"24:00", "25:00"}, // hour out of range
		{"17:60", "19:00"}, // minute out of range
		{"1700", "1900"},   // missing separator
		{"", "19:00"},
	}
	for _, tc := range bad {
		err := ValidateWindow(tc.start, tc.end)
		assert.ErrorIs(t, err, ErrBadWindow, "ValidateWindow(%q, %q)", tc.start, tc.end)
	}
}
