package model

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Clock is a time of day expressed in minutes since midnight
type Clock int

func NewClock(hour, minute int) Clock {
	return Clock(hour*60 + minute)
}

// ParseClock reads an "HH:MM" time of day
func ParseClock(value string) (Clock, error) {
	hourStr, minuteStr, found := strings.Cut(strings.TrimSpace(value), ":")
	if !found {
		return 0, fmt.Errorf("invalid time of day %q: expected HH:MM", value)
	}

	hour, err := strconv.Atoi(hourStr)
	if err != nil || hour < 0 || hour > 23 {
		return 0, fmt.Errorf("invalid hour in time of day %q", value)
	}
	minute, err := strconv.Atoi(minuteStr)
	if err != nil || minute < 0 || minute > 59 {
		return 0, fmt.Errorf("invalid minute in time of day %q", value)
	}

	return NewClock(hour, minute), nil
}

func (clock Clock) Hour() int {
	return int(clock) / 60
}

func (clock Clock) Minute() int {
	return int(clock) % 60
}

// Add shifts the clock by a possibly fractional number of hours, rounded to the minute
func (clock Clock) Add(hours float64) Clock {
	return clock + Clock(hoursToMinutes(hours))
}

// Hours returns the length of the range [clock, end) in hours
func (clock Clock) Hours(end Clock) float64 {
	return float64(end-clock) / 60
}

func (clock Clock) String() string {
	return fmt.Sprintf("%02d:%02d", clock.Hour(), clock.Minute())
}

func (clock Clock) MarshalText() ([]byte, error) {
	return []byte(clock.String()), nil
}

func (clock *Clock) UnmarshalText(text []byte) error {
	parsed, err := ParseClock(string(text))
	if err != nil {
		return err
	}
	*clock = parsed
	return nil
}

func hoursToMinutes(hours float64) int {
	return int(math.Round(hours * 60))
}

// Checks whether the half-open ranges [start1, end1) and [start2, end2) intersect
func overlaps(start1, end1, start2, end2 Clock) bool {
	return start1 < end2 && start2 < end1
}
