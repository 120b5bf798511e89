package model

import (
	"encoding/json"
	"fmt"
	"os"
	"regexp"
	"strings"

	"cloud.google.com/go/civil"
	"github.com/limaJavier/examtabling/pkg/calendar"
	"github.com/mitchellh/mapstructure"
	"github.com/samber/lo"
)

const (
	DefaultExamDurationHours = 3.0
	DefaultDailyHourCap      = 6.0 // Batch variant cap, shared by every faculty member
	DefaultMaxDailyHours     = 8.0
	DefaultRoomCapacity      = 60
	DefaultMaxExamsPerDay    = 4
	DefaultMaxAttempts       = 100
	DefaultWindowDays        = 28
)

var DefaultWorkingHours = WorkingHours{Start: NewClock(9, 0), End: NewClock(17, 0)}

type RawCourse struct {
	Id           string
	Code         string
	Name         string
	Department   string
	Duration     float64
	Students     []string
	StudentCount int
	Faculty      []string
}

type RawFaculty struct {
	Id            string
	Name          string
	Department    string
	MaxDailyHours float64
	Availability  []AvailabilityWindow
}

type RawRoom struct {
	Id        string
	Name      string
	Capacity  int
	Available *bool
}

type RawModelInput struct {
	Courses     []RawCourse
	Faculty     []RawFaculty
	Rooms       []RawRoom
	Window      Window
	Batch       BatchParameters
	Constraints Constraints
}

type Course struct {
	Id            string   `json:"id" validate:"required"`
	Code          string   `json:"code" validate:"required"`
	Name          string   `json:"name"`
	Department    string   `json:"department,omitempty"`
	DurationHours float64  `json:"durationHours" validate:"gte=0"`
	Students      []string `json:"students"`
	Faculty       []string `json:"faculty,omitempty"` // Pre-assigned faculty ids, a soft priority signal
}

// Enrollment is the number of registered students
func (course Course) Enrollment() int {
	return len(course.Students)
}

type AvailabilityWindow struct {
	Date  civil.Date `json:"date"`
	Start Clock      `json:"start"`
	End   Clock      `json:"end"`
}

type Faculty struct {
	Id            string               `json:"id" validate:"required"`
	Name          string               `json:"name"`
	Department    string               `json:"department,omitempty"`
	MaxDailyHours float64              `json:"maxDailyHours" validate:"gte=0"`
	Availability  []AvailabilityWindow `json:"availability,omitempty"`
}

// DailyCap is the most hours the member may invigilate on one date; zero means the default
func (faculty Faculty) DailyCap() float64 {
	if faculty.MaxDailyHours == 0 {
		return DefaultMaxDailyHours
	}
	return faculty.MaxDailyHours
}

type Room struct {
	Id        string `json:"id" validate:"required"`
	Name      string `json:"name"`
	Capacity  int    `json:"capacity" validate:"gte=0"`
	Available bool   `json:"available"`
}

// Window is the batch variant's calendar range
type Window struct {
	Start     civil.Date         `json:"start"`
	End       civil.Date         `json:"end"`
	SkipDates []calendar.Holiday `json:"skipDates,omitempty"`
}

type BatchParameters struct {
	ExamDurationHours float64 `json:"examDurationHours" validate:"gte=0"`
	SlotsPerDay       int     `json:"slotsPerDay"`
	DailyHourCap      float64 `json:"dailyHourCap" validate:"gte=0"`
}

func (parameters BatchParameters) withDefaults() BatchParameters {
	if parameters.ExamDurationHours == 0 {
		parameters.ExamDurationHours = DefaultExamDurationHours
	}
	if parameters.DailyHourCap == 0 {
		parameters.DailyHourCap = DefaultDailyHourCap
	}
	return parameters
}

type WorkingHours struct {
	Start Clock `json:"start"`
	End   Clock `json:"end"`
}

// Constraints drive the search variant
type Constraints struct {
	MaxExamsPerDay   int          `json:"maxExamsPerDay" validate:"gte=0"`
	ExamTimeGapHours *float64     `json:"examTimeGapHours,omitempty" validate:"omitempty,gte=0"` // Nil when unset; zero asks for no gap
	WorkingHours     WorkingHours `json:"workingHours"`
	ExcludeDates     []civil.Date `json:"excludeDates,omitempty"`
	MaxAttempts      int          `json:"maxAttempts" validate:"gte=0"`
	WindowDays       int          `json:"windowDays" validate:"gte=0"`
}

// GapHours is the gap between an invigilator's exams, zero when unset
func (constraints Constraints) GapHours() float64 {
	if constraints.ExamTimeGapHours == nil {
		return 0
	}
	return *constraints.ExamTimeGapHours
}

func (constraints Constraints) withDefaults() Constraints {
	if constraints.MaxExamsPerDay == 0 {
		constraints.MaxExamsPerDay = DefaultMaxExamsPerDay
	}
	if constraints.WorkingHours == (WorkingHours{}) {
		constraints.WorkingHours = DefaultWorkingHours
	}
	if constraints.MaxAttempts == 0 {
		constraints.MaxAttempts = DefaultMaxAttempts
	}
	if constraints.WindowDays == 0 {
		constraints.WindowDays = DefaultWindowDays
	}
	return constraints
}

type ModelInput struct {
	Courses     []Course        `json:"courses" validate:"required,min=1,dive"`
	Faculty     []Faculty       `json:"faculty" validate:"required,min=1,dive"`
	Rooms       []Room          `json:"rooms" validate:"required,min=1,dive"`
	Window      Window          `json:"window"`
	Batch       BatchParameters `json:"batch"`
	Constraints Constraints     `json:"constraints"`
}

// InputFromJson reads a model input file. Dates are "YYYY-MM-DD" and times of day "HH:MM".
func InputFromJson(file string) (ModelInput, error) {
	rawInput, err := RawInputFromJson(file)
	if err != nil {
		return ModelInput{}, err
	}
	return ProcessRawInput(rawInput)
}

// RawInputFromJson decodes a file without applying defaults, so callers can override fields first
func RawInputFromJson(file string) (RawModelInput, error) {
	bytes, err := os.ReadFile(file)
	if err != nil {
		return RawModelInput{}, err
	}

	var inputJson map[string]any
	if err := json.Unmarshal(bytes, &inputJson); err != nil {
		return RawModelInput{}, err
	}

	return DecodeRawInput(inputJson)
}

func DecodeRawInput(inputJson map[string]any) (RawModelInput, error) {
	var rawInput RawModelInput
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		DecodeHook: mapstructure.TextUnmarshallerHookFunc(),
		Result:     &rawInput,
	})
	if err != nil {
		return RawModelInput{}, err
	}

	if err := decoder.Decode(inputJson); err != nil {
		return RawModelInput{}, fmt.Errorf("cannot decode input: %w", err)
	}
	return rawInput, nil
}

// ProcessRawInput fills defaults the way the data-entry collaborators do:
// missing ids are derived from codes or names, rosters are generated from a
// head count, faculty caps default to 8 hours and rooms to 60 available seats
func ProcessRawInput(rawInput RawModelInput) (ModelInput, error) {
	input := ModelInput{
		Window:      rawInput.Window,
		Batch:       rawInput.Batch,
		Constraints: rawInput.Constraints,
	}

	input.Courses = lo.Map(rawInput.Courses, func(raw RawCourse, _ int) Course {
		course := Course{
			Id:            raw.Id,
			Code:          raw.Code,
			Name:          raw.Name,
			Department:    raw.Department,
			DurationHours: raw.Duration,
			Students:      raw.Students,
			Faculty:       raw.Faculty,
		}
		if course.Id == "" {
			course.Id = course.Code
		}
		if course.DurationHours == 0 {
			course.DurationHours = DefaultExamDurationHours
		}
		if len(course.Students) == 0 && raw.StudentCount > 0 {
			course.Students = GenerateStudents(course.Code, raw.StudentCount)
		}
		return course
	})

	input.Faculty = lo.Map(rawInput.Faculty, func(raw RawFaculty, _ int) Faculty {
		faculty := Faculty{
			Id:            raw.Id,
			Name:          raw.Name,
			Department:    raw.Department,
			MaxDailyHours: raw.MaxDailyHours,
			Availability:  raw.Availability,
		}
		if faculty.Id == "" {
			faculty.Id = Slug(faculty.Name)
		}
		if faculty.MaxDailyHours == 0 {
			faculty.MaxDailyHours = DefaultMaxDailyHours
		}
		return faculty
	})

	input.Rooms = lo.Map(rawInput.Rooms, func(raw RawRoom, _ int) Room {
		room := Room{
			Id:        raw.Id,
			Name:      raw.Name,
			Capacity:  raw.Capacity,
			Available: raw.Available == nil || *raw.Available,
		}
		if room.Id == "" {
			room.Id = Slug(room.Name)
		}
		if room.Capacity == 0 {
			room.Capacity = DefaultRoomCapacity
		}
		return room
	})

	if err := Validate(input); err != nil {
		return ModelInput{}, err
	}
	return input, nil
}

// GenerateStudents builds a placeholder roster "CODE-1".."CODE-n"
func GenerateStudents(code string, count int) []string {
	return lo.Times(count, func(i int) string { return fmt.Sprintf("%v-%v", code, i+1) })
}

var whitespace = regexp.MustCompile(`\s+`)

// Slug lowercases a display name and hyphenates its whitespace
func Slug(name string) string {
	return whitespace.ReplaceAllString(strings.ToLower(strings.TrimSpace(name)), "-")
}
