package model

import (
	"slices"

	"cloud.google.com/go/civil"
	"github.com/google/uuid"
	"github.com/limaJavier/examtabling/pkg/calendar"
	"github.com/samber/lo"
	"go.uber.org/zap"
)

// Fixed slot boundaries per slots-per-day count; any other count uses the single default slot
var slotTable = map[int][][2]Clock{
	1: {{NewClock(9, 30), NewClock(12, 30)}},
	2: {{NewClock(9, 30), NewClock(12, 30)}, {NewClock(14, 30), NewClock(17, 30)}},
	3: {{NewClock(9, 0), NewClock(12, 0)}, {NewClock(13, 0), NewClock(16, 0)}, {NewClock(16, 30), NewClock(19, 30)}},
}

// SlotBoundaries returns the daily slot boundaries used for slotsPerDay
func SlotBoundaries(slotsPerDay int) [][2]Clock {
	boundaries, ok := slotTable[slotsPerDay]
	if !ok {
		boundaries = slotTable[1]
	}
	return slices.Clone(boundaries)
}

type batchTimetabler struct {
	logger *zap.Logger
}

// NewBatchTimetabler packs courses, largest first, into a fixed number of
// slots per working day. It either places every course or fails.
func NewBatchTimetabler(logger *zap.Logger) Timetabler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &batchTimetabler{
		logger: logger,
	}
}

// Faculty-hour accumulators owned by a single Build call
type batchState struct {
	dailyHours map[string]map[civil.Date]float64
	totalHours map[string]float64
}

func newBatchState(faculty []Faculty) *batchState {
	state := batchState{
		dailyHours: make(map[string]map[civil.Date]float64, len(faculty)),
		totalHours: make(map[string]float64, len(faculty)),
	}
	for _, member := range faculty {
		state.dailyHours[member.Id] = make(map[civil.Date]float64)
	}
	return &state
}

func (timetabler *batchTimetabler) Strategy() string {
	return BatchStrategy
}

func (timetabler *batchTimetabler) Build(modelInput ModelInput) (Timetable, error) {
	if err := Validate(modelInput); err != nil {
		return Timetable{}, err
	}
	if err := ValidateWindow(modelInput.Window); err != nil {
		return Timetable{}, err
	}
	parameters := modelInput.Batch.withDefaults()

	//** Enumerate working days and slots
	window := modelInput.Window
	workingDays, holidays := calendar.WorkingDays(window.Start, window.End, window.SkipDates)
	boundaries := SlotBoundaries(parameters.SlotsPerDay)

	//** Reject structurally infeasible inputs before placing anything
	available := len(workingDays) * len(boundaries) * len(modelInput.Rooms)
	if available < len(modelInput.Courses) {
		return Timetable{}, CapacityShortfallError{Available: available, Required: len(modelInput.Courses)}
	}

	//** Place courses, largest enrollment first
	sorted := slices.Clone(modelInput.Courses)
	slices.SortStableFunc(sorted, func(course1, course2 Course) int {
		return course2.Enrollment() - course1.Enrollment()
	})

	state := newBatchState(modelInput.Faculty)
	queue := sorted
	slots := make([]ExamSlot, 0, len(sorted))
	for _, day := range workingDays {
		for _, boundary := range boundaries {
			if len(queue) == 0 {
				break
			}
			slot := TimeSlot{Date: day, Start: boundary[0], End: boundary[1]}

			var placed []ExamSlot
			placed, queue = state.fillSlot(slot, queue, modelInput, parameters)
			slots = append(slots, placed...)
		}
	}

	//** Every course must be placed
	scheduled := lo.SliceToMap(slots, func(slot ExamSlot) (string, bool) { return slot.CourseId, true })
	unscheduled := lo.Filter(sorted, func(course Course, _ int) bool { return !scheduled[course.Id] })
	if len(unscheduled) > 0 {
		timetabler.logger.Warn("batch timetable incomplete",
			zap.Int("scheduled", len(slots)),
			zap.Int("unscheduled", len(unscheduled)),
		)
		return Timetable{}, UnscheduledCoursesError{Courses: unscheduled}
	}

	sortSlots(slots)
	timetabler.logger.Info("batch timetable built",
		zap.Int("courses", len(sorted)),
		zap.Int("workingDays", len(workingDays)),
		zap.Int("slotsPerDay", len(boundaries)),
	)

	return Timetable{
		Id:          uuid.NewString(),
		Strategy:    BatchStrategy,
		Slots:       slots,
		WorkingDays: workingDays,
		Holidays:    holidays,
	}, nil
}

// Fills one slot from the front of the queue and returns what was placed along
// with the queue left for the next slot. Courses no free room can seat are
// dropped from the queue for good.
func (state *batchState) fillSlot(slot TimeSlot, queue []Course, modelInput ModelInput, parameters BatchParameters) ([]ExamSlot, []Course) {
	freeRooms := slices.Clone(modelInput.Rooms)
	usedFaculty := make(map[string]bool)
	placed := make([]ExamSlot, 0, len(freeRooms))

	for len(queue) > 0 && len(freeRooms) > 0 {
		course := queue[0]

		roomIndex := slices.IndexFunc(freeRooms, func(room Room) bool { return room.Capacity >= course.Enrollment() })
		if roomIndex < 0 {
			queue = queue[1:]
			continue
		}

		invigilator, ok := state.leastLoaded(modelInput.Faculty, usedFaculty, slot.Date, parameters)
		if !ok {
			break
		}

		placed = append(placed, ExamSlot{
			TimeSlot:     slot,
			CourseId:     course.Id,
			RoomId:       freeRooms[roomIndex].Id,
			Invigilators: []string{invigilator.Id},
		})
		freeRooms = slices.Delete(freeRooms, roomIndex, roomIndex+1)
		usedFaculty[invigilator.Id] = true
		state.dailyHours[invigilator.Id][slot.Date] += parameters.ExamDurationHours
		state.totalHours[invigilator.Id] += parameters.ExamDurationHours
		queue = queue[1:]
	}

	return placed, queue
}

// Picks the faculty member with the fewest hours overall among those free in
// this slot and still within the daily cap. Ties go to input order.
func (state *batchState) leastLoaded(faculty []Faculty, usedFaculty map[string]bool, date civil.Date, parameters BatchParameters) (Faculty, bool) {
	eligible := lo.Filter(faculty, func(member Faculty, _ int) bool {
		return !usedFaculty[member.Id] &&
			state.dailyHours[member.Id][date]+parameters.ExamDurationHours <= parameters.DailyHourCap
	})
	if len(eligible) == 0 {
		return Faculty{}, false
	}

	return lo.MinBy(eligible, func(member1, member2 Faculty) bool {
		return state.totalHours[member1.Id] < state.totalHours[member2.Id]
	}), true
}

func (timetabler *batchTimetabler) Verify(timetable Timetable, modelInput ModelInput) bool {
	parameters := modelInput.Batch.withDefaults()
	violations := verify(timetable, modelInput, verificationRules{
		invigilators: 1,
		complete:     true,
		dailyCap:     func(Faculty) float64 { return parameters.DailyHourCap },
		hours:        func(ExamSlot) float64 { return parameters.ExamDurationHours },
	})
	for _, violation := range violations {
		timetabler.logger.Warn("timetable violation", zap.String("violation", violation))
	}
	return len(violations) == 0
}
