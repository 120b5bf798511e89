package model

import (
	"fmt"
	"time"

	"cloud.google.com/go/civil"
	"github.com/limaJavier/examtabling/pkg/calendar"
	"github.com/samber/lo"
)

var monday = civil.Date{Year: 2024, Month: time.November, Day: 11}

func fixedNow() time.Time {
	return time.Date(2024, time.November, 11, 8, 15, 0, 0, time.UTC)
}

func course(code string, enrollment int, faculty ...string) Course {
	return Course{
		Id:            code,
		Code:          code,
		Name:          "Course " + code,
		DurationHours: 3,
		Students:      GenerateStudents(code, enrollment),
		Faculty:       faculty,
	}
}

func room(id string, capacity int) Room {
	return Room{Id: id, Name: id, Capacity: capacity, Available: true}
}

func member(id string, maxDailyHours float64) Faculty {
	return Faculty{Id: id, Name: id, MaxDailyHours: maxDailyHours}
}

// Faculty members available on every weekday of the search window from 09:00 to 17:00
func availableFaculty(ids ...string) []Faculty {
	days := SearchWindow(monday, Constraints{})
	return lo.Map(ids, func(id string, _ int) Faculty {
		faculty := member(id, 8)
		faculty.Availability = lo.Map(days, func(day civil.Date, _ int) AvailabilityWindow {
			return AvailabilityWindow{Date: day, Start: NewClock(9, 0), End: NewClock(17, 0)}
		})
		return faculty
	})
}

func batchInput(courses []Course, rooms []Room, faculty []Faculty, days, slotsPerDay int) ModelInput {
	return ModelInput{
		Courses: courses,
		Faculty: faculty,
		Rooms:   rooms,
		Window: Window{
			Start: monday,
			End:   monday.AddDays(days - 1),
		},
		Batch: BatchParameters{ExamDurationHours: 3, SlotsPerDay: slotsPerDay},
	}
}

func searchInput(courses []Course, rooms []Room, faculty []Faculty) ModelInput {
	return ModelInput{
		Courses: courses,
		Faculty: faculty,
		Rooms:   rooms,
		Constraints: Constraints{
			MaxExamsPerDay:   4,
			ExamTimeGapHours: lo.ToPtr(1.0),
			WorkingHours:     WorkingHours{Start: NewClock(9, 0), End: NewClock(17, 0)},
		},
	}
}

// A mid-sized instance: department cohorts with overlapping rosters
func departmentInput() ModelInput {
	courses := make([]Course, 0, 12)
	for i, department := range []string{"CS", "EC", "ME", "EE"} {
		for level := 1; level <= 3; level++ {
			code := fmt.Sprintf("%v%d01", department, level)
			students := GenerateStudents(department, 30+10*((i+level)%4)) // Same-department courses share students
			courses = append(courses, Course{Id: code, Code: code, Name: code, Department: department, DurationHours: 3, Students: students})
		}
	}

	return ModelInput{
		Courses: courses,
		Faculty: availableFaculty("f1", "f2", "f3", "f4", "f5", "f6"),
		Rooms:   []Room{room("hall-1", 150), room("hall-2", 120), room("lab", 80), room("seminar", 60)},
		Window: Window{
			Start:     monday,
			End:       monday.AddDays(13),
			SkipDates: []calendar.Holiday{{Date: monday.AddDays(3), Name: "Children's Day"}},
		},
		Batch: BatchParameters{ExamDurationHours: 3, SlotsPerDay: 2},
		Constraints: Constraints{
			MaxExamsPerDay:   3,
			ExamTimeGapHours: lo.ToPtr(0.5),
			WorkingHours:     WorkingHours{Start: NewClock(9, 0), End: NewClock(17, 0)},
		},
	}
}
