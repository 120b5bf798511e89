package model

import (
	"math/rand"
	"slices"
	"time"

	"cloud.google.com/go/civil"
	"github.com/google/uuid"
	"github.com/limaJavier/examtabling/pkg/calendar"
	"github.com/samber/lo"
	"go.uber.org/zap"
)

const invigilatorsPerExam = 2

type searchTimetabler struct {
	random *rand.Rand
	now    func() time.Time
	logger *zap.Logger
}

// NewSearchTimetabler places courses one at a time, scanning a rolling window
// hour by hour for the first slot with a free room and two eligible
// invigilators. Committed placements are never revisited; courses that cannot
// be placed are reported in Timetable.Unscheduled rather than as an error.
// Ties are broken with random, which must be seeded for reproducible output.
func NewSearchTimetabler(random *rand.Rand, now func() time.Time, logger *zap.Logger) Timetabler {
	if random == nil {
		random = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	if now == nil {
		now = time.Now
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &searchTimetabler{
		random: random,
		now:    now,
		logger: logger,
	}
}

// Placements and invigilation counts owned by a single Build call
type searchState struct {
	evaluator     predicateEvaluator
	slots         []ExamSlot
	invigilations map[string]int
}

func newSearchState(modelInput ModelInput) *searchState {
	return &searchState{
		evaluator:     newPredicateEvaluator(modelInput),
		slots:         make([]ExamSlot, 0, len(modelInput.Courses)),
		invigilations: make(map[string]int, len(modelInput.Faculty)),
	}
}

func (timetabler *searchTimetabler) Strategy() string {
	return SearchStrategy
}

func (timetabler *searchTimetabler) Build(modelInput ModelInput) (Timetable, error) {
	if err := Validate(modelInput); err != nil {
		return Timetable{}, err
	}
	constraints := modelInput.Constraints.withDefaults()

	//** Sort courses by enrollment, then by pre-assigned faculty
	sorted := lo.Map(modelInput.Courses, func(course Course, _ int) Course {
		if course.DurationHours == 0 {
			course.DurationHours = DefaultExamDurationHours
		}
		return course
	})
	slices.SortStableFunc(sorted, func(course1, course2 Course) int {
		if difference := course2.Enrollment() - course1.Enrollment(); difference != 0 {
			return difference
		}
		return len(course2.Faculty) - len(course1.Faculty)
	})

	//** Enumerate candidate dates
	days := SearchWindow(calendar.Today(timetabler.now()), constraints)

	//** Place each course greedily
	state := newSearchState(modelInput)
	unscheduled := make([]Course, 0)
	for _, course := range sorted {
		if attempts, ok := timetabler.place(course, days, state, modelInput, constraints); !ok {
			timetabler.logger.Warn("course could not be scheduled",
				zap.String("course", course.Code),
				zap.Int("enrollment", course.Enrollment()),
				zap.Int("attempts", attempts),
			)
			unscheduled = append(unscheduled, course)
		}
	}

	slots := state.slots
	sortSlots(slots)
	timetabler.logger.Info("search timetable built",
		zap.Int("courses", len(sorted)),
		zap.Int("scheduled", len(slots)),
		zap.Int("unscheduled", len(unscheduled)),
	)

	return Timetable{
		Id:          uuid.NewString(),
		Strategy:    SearchStrategy,
		Slots:       slots,
		Unscheduled: unscheduled,
		WorkingDays: days,
	}, nil
}

// SearchWindow lists the dates from today through today+WindowDays, skipping weekends and excluded dates
func SearchWindow(today civil.Date, constraints Constraints) []civil.Date {
	constraints = constraints.withDefaults()
	end := today.AddDays(constraints.WindowDays)

	days := make([]civil.Date, 0, constraints.WindowDays+1)
	for date := today; !date.After(end); date = date.AddDays(1) {
		weekday := calendar.Weekday(date)
		if weekday == time.Saturday || weekday == time.Sunday || slices.Contains(constraints.ExcludeDates, date) {
			continue
		}
		days = append(days, date)
	}
	return days
}

// Scans the window for the first feasible slot and commits it. Returns the number of attempts used.
func (timetabler *searchTimetabler) place(course Course, days []civil.Date, state *searchState, modelInput ModelInput, constraints Constraints) (int, bool) {
	startHour, endHour := constraints.WorkingHours.Start.Hour(), constraints.WorkingHours.End.Hour()

	for attempt := 1; attempt <= constraints.MaxAttempts; attempt++ {
		for _, day := range days {
			for hour := startHour; float64(hour) <= float64(endHour)-course.DurationHours; hour++ {
				start := NewClock(hour, 0)
				slot := TimeSlot{Date: day, Start: start, End: start.Add(course.DurationHours)}

				if !state.available(slot, constraints) {
					continue
				}

				invigilators := state.eligibleInvigilators(slot, course, modelInput.Faculty, timetabler.random)
				room, ok := state.eligibleRoom(slot, course, modelInput.Rooms, timetabler.random)
				if len(invigilators) < invigilatorsPerExam || !ok {
					continue
				}

				//** Commit
				selected := lo.Map(invigilators[:invigilatorsPerExam], func(faculty Faculty, _ int) string { return faculty.Id })
				for _, invigilator := range selected {
					state.invigilations[invigilator]++
				}
				state.slots = append(state.slots, ExamSlot{
					TimeSlot:     slot,
					CourseId:     course.Id,
					RoomId:       room.Id,
					Invigilators: selected,
				})
				return attempt, true
			}
		}
	}

	return constraints.MaxAttempts, false
}

// Checks the date's exam cap and that no placed exam collides with the slot.
// Any collision disqualifies the slot, which also rules out every shared-student clash.
func (state *searchState) available(slot TimeSlot, constraints Constraints) bool {
	sameDate := lo.Filter(state.slots, func(placed ExamSlot, _ int) bool { return placed.Date == slot.Date })
	if len(sameDate) >= constraints.MaxExamsPerDay {
		return false
	}

	return !lo.SomeBy(sameDate, func(placed ExamSlot) bool {
		return state.evaluator.Collide(slot, placed.TimeSlot, constraints.GapHours())
	})
}

// Faculty available for the whole slot and within their daily cap, ordered by
// pre-assignment, then fewest invigilations so far, then at random
func (state *searchState) eligibleInvigilators(slot TimeSlot, course Course, faculty []Faculty, random *rand.Rand) []Faculty {
	eligible := lo.Filter(faculty, func(member Faculty, _ int) bool {
		return state.evaluator.FacultyAvailable(member, slot) &&
			state.dailyHours(member.Id, slot.Date)+slot.Hours() <= member.DailyCap()
	})

	keys := lo.SliceToMap(eligible, func(member Faculty) (string, float64) { return member.Id, random.Float64() })
	slices.SortStableFunc(eligible, func(member1, member2 Faculty) int {
		preAssigned1, preAssigned2 := state.evaluator.PreAssigned(member1.Id, course), state.evaluator.PreAssigned(member2.Id, course)
		if preAssigned1 != preAssigned2 {
			if preAssigned1 {
				return -1
			}
			return 1
		}
		if difference := state.invigilations[member1.Id] - state.invigilations[member2.Id]; difference != 0 {
			return difference
		}
		switch {
		case keys[member1.Id] < keys[member2.Id]:
			return -1
		case keys[member1.Id] > keys[member2.Id]:
			return 1
		}
		return 0
	})

	return eligible
}

// Picks a random free room within the capacity band, falling back to any free room the course fits in
func (state *searchState) eligibleRoom(slot TimeSlot, course Course, rooms []Room, random *rand.Rand) (Room, bool) {
	free := lo.Filter(rooms, func(room Room, _ int) bool {
		return room.Available && state.evaluator.Fits(course, room) && !state.roomOccupied(room.Id, slot)
	})

	candidates := lo.Filter(free, func(room Room, _ int) bool { return state.evaluator.WithinBand(course, room) })
	if len(candidates) == 0 {
		candidates = free
	}
	if len(candidates) == 0 {
		return Room{}, false
	}

	return candidates[random.Intn(len(candidates))], true
}

func (state *searchState) roomOccupied(room string, slot TimeSlot) bool {
	return lo.SomeBy(state.slots, func(placed ExamSlot) bool {
		return placed.RoomId == room && state.evaluator.Collide(slot, placed.TimeSlot, 0)
	})
}

// Invigilation hours already assigned to the faculty on the date
func (state *searchState) dailyHours(faculty string, date civil.Date) float64 {
	return lo.SumBy(state.slots, func(placed ExamSlot) float64 {
		if placed.Date != date || !slices.Contains(placed.Invigilators, faculty) {
			return 0
		}
		return placed.Hours()
	})
}

func (timetabler *searchTimetabler) Verify(timetable Timetable, modelInput ModelInput) bool {
	constraints := modelInput.Constraints.withDefaults()
	violations := verify(timetable, modelInput, verificationRules{
		invigilators:     invigilatorsPerExam,
		gapHours:         constraints.GapHours(),
		studentConflicts: true,
		availability:     true,
		maxExamsPerDay:   constraints.MaxExamsPerDay,
		dailyCap:         Faculty.DailyCap,
		hours:            func(slot ExamSlot) float64 { return slot.Hours() },
	})
	for _, violation := range violations {
		timetabler.logger.Warn("timetable violation", zap.String("violation", violation))
	}
	return len(violations) == 0
}

// FillAvailability gives faculty without declared windows one window per
// window date spanning the working hours. Faculty with windows are kept as is.
func FillAvailability(modelInput ModelInput, today civil.Date) ModelInput {
	constraints := modelInput.Constraints.withDefaults()
	days := SearchWindow(today, constraints)

	modelInput.Faculty = lo.Map(modelInput.Faculty, func(member Faculty, _ int) Faculty {
		if len(member.Availability) > 0 {
			return member
		}
		member.Availability = lo.Map(days, func(day civil.Date, _ int) AvailabilityWindow {
			return AvailabilityWindow{Date: day, Start: constraints.WorkingHours.Start, End: constraints.WorkingHours.End}
		})
		return member
	})
	return modelInput
}
