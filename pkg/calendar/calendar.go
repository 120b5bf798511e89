// Package calendar enumerates the working days of an examination window.
package calendar

import (
	"time"

	"cloud.google.com/go/civil"
	"github.com/samber/lo"
)

const (
	SundayLabel  = "Sunday"
	DefaultLabel = "Holiday" // Used for skip dates supplied without a name
)

type Holiday struct {
	Date civil.Date `json:"date" mapstructure:"date" csv:"date"`
	Name string     `json:"name" mapstructure:"name" csv:"name"`
}

// WorkingDays walks every date from start to end (both inclusive) and splits
// them into working days and labelled non-working days. A start after end or
// an invalid date yields two empty lists.
func WorkingDays(start, end civil.Date, skip []Holiday) (workingDays []civil.Date, holidays []Holiday) {
	workingDays, holidays = []civil.Date{}, []Holiday{}
	if !start.IsValid() || !end.IsValid() {
		return workingDays, holidays
	}

	for date := start; !date.After(end); date = date.AddDays(1) {
		if name, ok := IsHoliday(date, skip); ok {
			holidays = append(holidays, Holiday{Date: date, Name: name})
		} else {
			workingDays = append(workingDays, date)
		}
	}

	return workingDays, holidays
}

// IsHoliday resolves the non-working label of a single date. Sundays win over
// the built-in table, which wins over the caller's skip list.
func IsHoliday(date civil.Date, skip []Holiday) (string, bool) {
	if Weekday(date) == time.Sunday {
		return SundayLabel, true
	}

	if holiday, ok := lo.Find(holidays2024, func(holiday Holiday) bool { return holiday.Date == date }); ok {
		return holiday.Name, true
	}

	if holiday, ok := lo.Find(skip, func(holiday Holiday) bool { return holiday.Date == date }); ok {
		if holiday.Name == "" {
			return DefaultLabel, true
		}
		return holiday.Name, true
	}

	return "", false
}

func Weekday(date civil.Date) time.Weekday {
	return date.In(time.UTC).Weekday()
}

// Today returns the calendar date of now in now's location
func Today(now time.Time) civil.Date {
	return civil.DateOf(now)
}
