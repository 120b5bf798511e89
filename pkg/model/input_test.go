package model

import (
	"path/filepath"
	"testing"

	"cloud.google.com/go/civil"
	"github.com/limaJavier/examtabling/pkg/calendar"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInputFromJson(t *testing.T) {
	//** Act
	input, err := InputFromJson(filepath.Join("testdata", "input.json"))

	//** Assert
	require.NoError(t, err)

	t.Run("Courses", func(t *testing.T) {
		require.Len(t, input.Courses, 3)
		assert.Equal(t, "CS101", input.Courses[0].Id)
		assert.Equal(t, 120, input.Courses[0].Enrollment())
		assert.Equal(t, "CS101-1", input.Courses[0].Students[0])
		assert.Equal(t, DefaultExamDurationHours, input.Courses[0].DurationHours)
		assert.Equal(t, 2.0, input.Courses[1].DurationHours)
		assert.Equal(t, []string{"dr-rao"}, input.Courses[1].Faculty)
		assert.Equal(t, "me301", input.Courses[2].Id)
		assert.Equal(t, []string{"s1", "s2", "s3"}, input.Courses[2].Students)
	})

	t.Run("Faculty", func(t *testing.T) {
		require.Len(t, input.Faculty, 2)
		assert.Equal(t, "dr-rao", input.Faculty[0].Id)
		assert.Equal(t, 6.0, input.Faculty[0].MaxDailyHours)
		assert.Equal(t, "dr-iyer", input.Faculty[1].Id)
		assert.Equal(t, DefaultMaxDailyHours, input.Faculty[1].MaxDailyHours)
		assert.Equal(t, []AvailabilityWindow{{
			Date:  civil.Date{Year: 2024, Month: 11, Day: 12},
			Start: NewClock(9, 0),
			End:   NewClock(17, 0),
		}}, input.Faculty[1].Availability)
	})

	t.Run("Rooms", func(t *testing.T) {
		assert.Equal(t, []Room{
			{Id: "examination-hall-1", Name: "Examination Hall 1", Capacity: 150, Available: true},
			{Id: "examination-hall-3", Name: "Examination Hall 3", Capacity: DefaultRoomCapacity, Available: false},
		}, input.Rooms)
	})

	t.Run("Window and parameters", func(t *testing.T) {
		assert.Equal(t, Window{
			Start:     civil.Date{Year: 2024, Month: 11, Day: 11},
			End:       civil.Date{Year: 2024, Month: 11, Day: 20},
			SkipDates: []calendar.Holiday{{Date: civil.Date{Year: 2024, Month: 11, Day: 14}, Name: "Children's Day"}},
		}, input.Window)
		assert.Equal(t, BatchParameters{ExamDurationHours: 3, SlotsPerDay: 2}, input.Batch)
		assert.Equal(t, 2, input.Constraints.MaxExamsPerDay)
		assert.Equal(t, 1.0, input.Constraints.GapHours())
		assert.Equal(t, WorkingHours{Start: NewClock(9, 30), End: NewClock(17, 0)}, input.Constraints.WorkingHours)
		assert.Equal(t, []civil.Date{{Year: 2024, Month: 11, Day: 15}}, input.Constraints.ExcludeDates)
	})
}

func TestProcessRawInput(t *testing.T) {
	t.Run("Missing entities are invalid", func(t *testing.T) {
		_, err := ProcessRawInput(RawModelInput{Courses: []RawCourse{{Code: "CS101", StudentCount: 10}}})

		assert.IsType(t, InvalidInputError{}, err)
	})

	t.Run("Duplicate ids are invalid", func(t *testing.T) {
		_, err := ProcessRawInput(RawModelInput{
			Courses: []RawCourse{{Code: "CS101"}, {Code: "CS101"}},
			Faculty: []RawFaculty{{Name: "Dr Rao"}},
			Rooms:   []RawRoom{{Name: "Hall"}},
		})

		assert.Equal(t, InvalidInputError{Reason: `duplicate course id "CS101"`}, err)
	})

	t.Run("Malformed times of day are rejected", func(t *testing.T) {
		_, err := DecodeRawInput(map[string]any{
			"constraints": map[string]any{"workingHours": map[string]any{"start": "nine"}},
		})

		assert.Error(t, err)
	})
}

func TestSlug(t *testing.T) {
	assert.Equal(t, "examination-hall-1", Slug(" Examination  Hall 1 "))
	assert.Equal(t, "dr-rao", Slug("Dr Rao"))
}
