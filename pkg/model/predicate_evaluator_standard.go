package model

import (
	"slices"

	"github.com/samber/lo"
)

type predicateEvaluatorStandard struct {
	courses  map[string]Course
	students map[string]map[string]bool // Registered students per course
}

func newPredicateEvaluator(modelInput ModelInput) predicateEvaluator {
	evaluator := predicateEvaluatorStandard{
		courses:  lo.KeyBy(modelInput.Courses, func(course Course) string { return course.Id }),
		students: make(map[string]map[string]bool, len(modelInput.Courses)),
	}

	for _, course := range modelInput.Courses {
		evaluator.students[course.Id] = lo.SliceToMap(course.Students, func(student string) (string, bool) { return student, true })
	}

	return &evaluator
}

func (evaluator *predicateEvaluatorStandard) Course(course string) (Course, bool) {
	found, ok := evaluator.courses[course]
	return found, ok
}

func (evaluator *predicateEvaluatorStandard) Fits(course Course, room Room) bool {
	return course.Enrollment() <= room.Capacity
}

func (evaluator *predicateEvaluatorStandard) WithinBand(course Course, room Room) bool {
	return evaluator.Fits(course, room) && room.Capacity <= 2*course.Enrollment()
}

func (evaluator *predicateEvaluatorStandard) Collide(slot1, slot2 TimeSlot, gapHours float64) bool {
	if slot1.Date != slot2.Date {
		return false
	}
	return overlaps(slot1.Start, slot1.End.Add(gapHours), slot2.Start, slot2.End.Add(gapHours))
}

func (evaluator *predicateEvaluatorStandard) ShareStudents(course1, course2 string) bool {
	students1, students2 := evaluator.students[course1], evaluator.students[course2]
	if len(students2) < len(students1) {
		students1, students2 = students2, students1 // Iterate over the smaller roster
	}

	for student := range students1 {
		if students2[student] {
			return true
		}
	}
	return false
}

func (evaluator *predicateEvaluatorStandard) FacultyAvailable(faculty Faculty, slot TimeSlot) bool {
	return lo.SomeBy(faculty.Availability, func(window AvailabilityWindow) bool {
		return window.Date == slot.Date &&
			slot.Start >= window.Start && slot.Start <= window.End &&
			slot.End >= window.Start && slot.End <= window.End
	})
}

func (evaluator *predicateEvaluatorStandard) PreAssigned(faculty string, course Course) bool {
	return slices.Contains(course.Faculty, faculty)
}
