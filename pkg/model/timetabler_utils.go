package model

import (
	"fmt"
	"slices"

	"cloud.google.com/go/civil"
	"github.com/onsi/gomega/matchers/support/goraph/bipartitegraph"
	"github.com/samber/lo"
)

type verificationRules struct {
	invigilators     int     // Exact number of invigilators per exam
	gapHours         float64 // Gap appended to invigilators' exams
	studentConflicts bool    // Courses sharing students must not overlap
	availability     bool    // Faculty windows and room flags are honoured
	complete         bool    // Every course is scheduled
	maxExamsPerDay   int     // Zero disables the check
	dailyCap         func(Faculty) float64
	hours            func(ExamSlot) float64 // Invigilation hours credited for an exam
}

// Collects every constraint the timetable breaks; an empty result means the timetable is valid
func verify(timetable Timetable, modelInput ModelInput, rules verificationRules) []string {
	violations := make([]string, 0)
	evaluator := newPredicateEvaluator(modelInput)
	faculty := lo.KeyBy(modelInput.Faculty, func(member Faculty) string { return member.Id })
	rooms := lo.KeyBy(modelInput.Rooms, func(room Room) string { return room.Id })

	//** Check every exam on its own
	scheduled := make(map[string]int)
	for _, slot := range timetable.Slots {
		scheduled[slot.CourseId]++

		course, ok := evaluator.Course(slot.CourseId)
		if !ok {
			violations = append(violations, fmt.Sprintf("unknown course %q", slot.CourseId))
			continue
		}
		room, ok := rooms[slot.RoomId]
		if !ok {
			violations = append(violations, fmt.Sprintf("course %v: unknown room %q", course.Code, slot.RoomId))
			continue
		}

		// Check that:
		// - The room seats every registered student
		// - The room is flagged as available (when availability is enforced)
		// - The exam has the expected number of distinct invigilators
		// - Each invigilator exists and declared availability for the slot (when enforced)
		if !evaluator.Fits(course, room) {
			violations = append(violations, fmt.Sprintf("course %v: room %v seats %d of %d students", course.Code, room.Id, room.Capacity, course.Enrollment()))
		}
		if rules.availability && !room.Available {
			violations = append(violations, fmt.Sprintf("course %v: room %v is not available", course.Code, room.Id))
		}
		if len(lo.Uniq(slot.Invigilators)) != rules.invigilators || len(slot.Invigilators) != rules.invigilators {
			violations = append(violations, fmt.Sprintf("course %v: expected %d invigilators, got %v", course.Code, rules.invigilators, slot.Invigilators))
		}
		for _, invigilator := range slot.Invigilators {
			member, ok := faculty[invigilator]
			if !ok {
				violations = append(violations, fmt.Sprintf("course %v: unknown invigilator %q", course.Code, invigilator))
			} else if rules.availability && !evaluator.FacultyAvailable(member, slot.TimeSlot) {
				violations = append(violations, fmt.Sprintf("course %v: invigilator %v is not available on %v %v-%v", course.Code, invigilator, slot.Date, slot.Start, slot.End))
			}
		}
	}

	//** Check pairs of exams on the same date
	byDate := lo.GroupBy(timetable.Slots, func(slot ExamSlot) civil.Date { return slot.Date })
	for date, slots := range byDate {
		if rules.maxExamsPerDay > 0 && len(slots) > rules.maxExamsPerDay {
			violations = append(violations, fmt.Sprintf("%v: %d exams exceed the daily limit of %d", date, len(slots), rules.maxExamsPerDay))
		}

		for i := 0; i < len(slots)-1; i++ {
			for j := i + 1; j < len(slots); j++ {
				slot1, slot2 := slots[i], slots[j]
				overlapping := evaluator.Collide(slot1.TimeSlot, slot2.TimeSlot, 0)

				if overlapping && slot1.RoomId == slot2.RoomId {
					violations = append(violations, fmt.Sprintf("%v: room %v is double-booked by %v and %v", date, slot1.RoomId, slot1.CourseId, slot2.CourseId))
				}
				if shared := lo.Intersect(slot1.Invigilators, slot2.Invigilators); len(shared) > 0 && evaluator.Collide(slot1.TimeSlot, slot2.TimeSlot, rules.gapHours) {
					violations = append(violations, fmt.Sprintf("%v: invigilators %v are double-booked by %v and %v", date, shared, slot1.CourseId, slot2.CourseId))
				}
				if rules.studentConflicts && overlapping && evaluator.ShareStudents(slot1.CourseId, slot2.CourseId) {
					violations = append(violations, fmt.Sprintf("%v: courses %v and %v share students and overlap", date, slot1.CourseId, slot2.CourseId))
				}
			}
		}

		// Check daily workload
		hours := make(map[string]float64)
		for _, slot := range slots {
			for _, invigilator := range slot.Invigilators {
				hours[invigilator] += rules.hours(slot)
			}
		}
		for invigilator, total := range hours {
			if member, ok := faculty[invigilator]; ok && total > rules.dailyCap(member) {
				violations = append(violations, fmt.Sprintf("%v: invigilator %v works %.1f hours, above the cap of %.1f", date, invigilator, total, rules.dailyCap(member)))
			}
		}
	}

	//** Check course coverage
	unscheduled := lo.SliceToMap(timetable.Unscheduled, func(course Course) (string, bool) { return course.Id, true })
	for _, course := range modelInput.Courses {
		count := scheduled[course.Id]
		switch {
		case count > 1:
			violations = append(violations, fmt.Sprintf("course %v is scheduled %d times", course.Code, count))
		case count == 1 && unscheduled[course.Id]:
			violations = append(violations, fmt.Sprintf("course %v is both scheduled and unscheduled", course.Code))
		case count == 0 && (rules.complete || !unscheduled[course.Id]):
			violations = append(violations, fmt.Sprintf("course %v is missing", course.Code))
		}
	}

	//** Check ordering
	if !slices.IsSortedFunc(timetable.Slots, compareSlots) {
		violations = append(violations, "slots are not sorted by date and start time")
	}

	return violations
}

func compareSlots(slot1, slot2 ExamSlot) int {
	if slot1.Date.Before(slot2.Date) {
		return -1
	} else if slot1.Date.After(slot2.Date) {
		return 1
	}
	return int(slot1.Start) - int(slot2.Start)
}

// Orders slots by date then start time, keeping placement order on ties
func sortSlots(slots []ExamSlot) {
	slices.SortStableFunc(slots, compareSlots)
}

// Computes how many of the courses can sit simultaneously, each in a distinct room it fits in
func maxParallel(courses []Course, rooms []Room) (int, error) {
	if len(courses) == 0 || len(rooms) == 0 {
		return 0, nil
	}

	// Build neighbors predicate based on capacity
	neighbors := func(courseAny any, roomAny any) (bool, error) {
		course := courseAny.(Course)
		room := roomAny.(Room)

		return course.Enrollment() <= room.Capacity, nil
	}

	// Transform courses and rooms to slices of any
	coursesAny, roomsAny := lo.Map(courses, func(course Course, _ int) any { return course }), lo.Map(rooms, func(room Room, _ int) any { return room })

	graph, err := bipartitegraph.NewBipartiteGraph(coursesAny, roomsAny, neighbors)
	if err != nil {
		return 0, err
	}

	return len(graph.LargestMatching()), nil
}
