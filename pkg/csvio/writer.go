package csvio

import (
	"io"
	"strings"

	"github.com/gocarina/gocsv"
	"github.com/limaJavier/examtabling/pkg/calendar"
	"github.com/limaJavier/examtabling/pkg/model"
	"github.com/samber/lo"
)

const unknown = "Unknown"

type ScheduleRow struct {
	Date       string `csv:"Date"`
	Day        string `csv:"Day"`
	StartTime  string `csv:"Start Time"`
	EndTime    string `csv:"End Time"`
	CourseCode string `csv:"Course Code"`
	CourseName string `csv:"Course Name"`
	Faculty    string `csv:"Faculty"`
	Room       string `csv:"Room"`
}

// ScheduleRows resolves a timetable's ids into display names, one row per exam
func ScheduleRows(timetable model.Timetable, input model.ModelInput) []ScheduleRow {
	courses := lo.KeyBy(input.Courses, func(course model.Course) string { return course.Id })
	faculty := lo.KeyBy(input.Faculty, func(member model.Faculty) string { return member.Id })
	rooms := lo.KeyBy(input.Rooms, func(room model.Room) string { return room.Id })

	return lo.Map(timetable.Slots, func(slot model.ExamSlot, _ int) ScheduleRow {
		row := ScheduleRow{
			Date:       slot.Date.String(),
			Day:        calendar.Weekday(slot.Date).String(),
			StartTime:  slot.Start.String(),
			EndTime:    slot.End.String(),
			CourseCode: unknown,
			CourseName: unknown,
			Room:       unknown,
		}
		if course, ok := courses[slot.CourseId]; ok {
			row.CourseCode, row.CourseName = course.Code, course.Name
		}
		if room, ok := rooms[slot.RoomId]; ok {
			row.Room = room.Name
		}
		row.Faculty = strings.Join(lo.Map(slot.Invigilators, func(invigilator string, _ int) string {
			if member, ok := faculty[invigilator]; ok {
				return member.Name
			}
			return unknown
		}), "; ")
		return row
	})
}

// WriteSchedule writes the timetable as CSV with a header row
func WriteSchedule(out io.Writer, timetable model.Timetable, input model.ModelInput) error {
	return gocsv.Marshal(ScheduleRows(timetable, input), out)
}
