package model

import (
	"cloud.google.com/go/civil"
	"github.com/limaJavier/examtabling/pkg/calendar"
)

type Timetabler interface {
	// Builds a timetable for the given input. Infeasibility is reported as one of
	// InvalidInputError, CapacityShortfallError or UnscheduledCoursesError.
	Build(modelInput ModelInput) (Timetable, error)

	// Checks whether the timetable honours every room, invigilator, student and workload constraint
	Verify(timetable Timetable, modelInput ModelInput) bool

	Strategy() string
}

const (
	BatchStrategy  = "batch"
	SearchStrategy = "search"
)

type TimeSlot struct {
	Date  civil.Date `json:"date"`
	Start Clock      `json:"startTime"`
	End   Clock      `json:"endTime"`
}

// Hours is the slot's length
func (slot TimeSlot) Hours() float64 {
	return slot.Start.Hours(slot.End)
}

type ExamSlot struct {
	TimeSlot
	CourseId     string   `json:"courseId"`
	RoomId       string   `json:"room"`
	Invigilators []string `json:"invigilators"`
}

type Timetable struct {
	Id          string             `json:"id"`
	Strategy    string             `json:"strategy"`
	Slots       []ExamSlot         `json:"slots"`
	Unscheduled []Course           `json:"unscheduled,omitempty"` // Courses the search variant gave up on
	WorkingDays []civil.Date       `json:"workingDays"`
	Holidays    []calendar.Holiday `json:"holidays,omitempty"`
}

// Partial reports whether some courses were left out of an otherwise valid timetable
func (timetable Timetable) Partial() bool {
	return len(timetable.Unscheduled) > 0
}
