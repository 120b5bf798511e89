package model

type predicateEvaluator interface {
	// Looks up a course by id
	Course(course string) (Course, bool)

	// Checks whether the course's enrollment is smaller than or equal to the room's capacity (i.e. the course fits in the room)
	Fits(course Course, room Room) bool

	// Checks whether the room fits the course without exceeding twice its enrollment
	WithinBand(course Course, room Room) bool

	// Checks whether two slots on the same date overlap once the gap is appended to each of them
	Collide(slot1, slot2 TimeSlot, gapHours float64) bool

	// Checks whether course1 and course2 have at least one registered student in common
	ShareStudents(course1, course2 string) bool

	// Checks whether the faculty declared an availability window covering the whole slot
	FacultyAvailable(faculty Faculty, slot TimeSlot) bool

	// Checks whether the faculty is pre-assigned to the course
	PreAssigned(faculty string, course Course) bool
}
