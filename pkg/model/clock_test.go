package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClock(t *testing.T) {
	t.Run("Parse and format", func(t *testing.T) {
		clock, err := ParseClock("16:30")

		require.NoError(t, err)
		assert.Equal(t, NewClock(16, 30), clock)
		assert.Equal(t, 16, clock.Hour())
		assert.Equal(t, 30, clock.Minute())
		assert.Equal(t, "16:30", clock.String())
		assert.Equal(t, "09:05", NewClock(9, 5).String())
	})

	t.Run("Invalid values", func(t *testing.T) {
		for _, value := range []string{"", "9", "24:00", "12:60", "ab:cd", "-1:00"} {
			_, err := ParseClock(value)
			assert.Error(t, err, value)
		}
	})

	t.Run("Fractional hours round to the minute", func(t *testing.T) {
		assert.Equal(t, NewClock(10, 30), NewClock(9, 0).Add(1.5))
		assert.Equal(t, NewClock(12, 0), NewClock(9, 0).Add(3))
		assert.Equal(t, 2.5, NewClock(9, 0).Hours(NewClock(11, 30)))
	})

	t.Run("Half-open overlap", func(t *testing.T) {
		assert.True(t, overlaps(NewClock(9, 0), NewClock(12, 0), NewClock(11, 0), NewClock(14, 0)))
		assert.True(t, overlaps(NewClock(9, 0), NewClock(12, 0), NewClock(10, 0), NewClock(11, 0)))
		assert.False(t, overlaps(NewClock(9, 0), NewClock(12, 0), NewClock(12, 0), NewClock(14, 0)))
	})
}
