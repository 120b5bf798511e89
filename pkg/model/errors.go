package model

import (
	"fmt"
	"strings"

	"github.com/samber/lo"
)

// InvalidInputError reports missing or malformed entities; no scheduling work is attempted
type InvalidInputError struct {
	Reason string
}

func (err InvalidInputError) Error() string {
	return "invalid input: " + err.Reason
}

// CapacityShortfallError reports that days x slots x rooms cannot hold every course
type CapacityShortfallError struct {
	Available int
	Required  int
}

func (err CapacityShortfallError) Error() string {
	return fmt.Sprintf("insufficient slots: %d available for %d courses", err.Available, err.Required)
}

// UnscheduledCoursesError reports the courses left without a slot after every placement attempt
type UnscheduledCoursesError struct {
	Courses []Course
}

func (err UnscheduledCoursesError) Error() string {
	codes := lo.Map(err.Courses, func(course Course, _ int) string { return course.Code })
	return fmt.Sprintf("could not schedule %d courses: %s", len(err.Courses), strings.Join(codes, ", "))
}
