package model

import (
	"slices"

	"cloud.google.com/go/civil"
	"github.com/limaJavier/examtabling/pkg/calendar"
)

// CapacityPreview summarises a batch window before generation
type CapacityPreview struct {
	WorkingDays []civil.Date       `json:"workingDays"`
	Holidays    []calendar.Holiday `json:"holidays"`
	SlotsPerDay int                `json:"slotsPerDay"`
	TotalSlots  int                `json:"totalSlots"` // Working days x slots per day x rooms
	Courses     int                `json:"courses"`
	Sufficient  bool               `json:"sufficient"`
	MaxParallel int                `json:"maxParallel"` // Largest courses that can sit at once, one per room
}

// Preview reports whether the batch window can hold every course. MaxParallel
// bounds how many courses a single slot can absorb given room capacities.
func Preview(modelInput ModelInput) (CapacityPreview, error) {
	window := modelInput.Window
	if err := ValidateWindow(window); err != nil {
		return CapacityPreview{}, err
	}
	workingDays, holidays := calendar.WorkingDays(window.Start, window.End, window.SkipDates)
	slotsPerDay := len(SlotBoundaries(modelInput.Batch.SlotsPerDay))

	// Only the largest courses compete for one slot's rooms
	largest := slices.Clone(modelInput.Courses)
	slices.SortStableFunc(largest, func(course1, course2 Course) int {
		return course2.Enrollment() - course1.Enrollment()
	})
	if len(largest) > len(modelInput.Rooms) {
		largest = largest[:len(modelInput.Rooms)]
	}

	parallel, err := maxParallel(largest, modelInput.Rooms)
	if err != nil {
		return CapacityPreview{}, err
	}

	total := len(workingDays) * slotsPerDay * len(modelInput.Rooms)
	return CapacityPreview{
		WorkingDays: workingDays,
		Holidays:    holidays,
		SlotsPerDay: slotsPerDay,
		TotalSlots:  total,
		Courses:     len(modelInput.Courses),
		Sufficient:  total >= len(modelInput.Courses),
		MaxParallel: parallel,
	}, nil
}
