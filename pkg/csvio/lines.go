package csvio

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/limaJavier/examtabling/pkg/model"
)

// Splits pipe-separated text into trimmed fields, skipping blank and '#' lines.
// Each entry keeps its 1-based line number for error reporting.
func splitLines(text string) [][]string {
	rows := make([][]string, 0)
	for number, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		fields := strings.Split(line, "|")
		for i := range fields {
			fields[i] = strings.TrimSpace(fields[i])
		}
		rows = append(rows, append([]string{strconv.Itoa(number + 1)}, fields...))
	}
	return rows
}

// ParseCourseLines reads "code | name | students" lines
func ParseCourseLines(text string) ([]model.RawCourse, error) {
	courses := make([]model.RawCourse, 0)
	for _, row := range splitLines(text) {
		line, fields := row[0], row[1:]
		if len(fields) < 3 || fields[0] == "" {
			return nil, fmt.Errorf("line %v: expected \"code | name | students\"", line)
		}

		students, err := strconv.Atoi(fields[2])
		if err != nil || students <= 0 {
			return nil, fmt.Errorf("line %v: invalid student count %q", line, fields[2])
		}

		courses = append(courses, model.RawCourse{
			Id:           fields[0],
			Code:         fields[0],
			Name:         fields[1],
			StudentCount: students,
		})
	}
	return courses, nil
}

// ParseFacultyLines reads "name | department | maxHours" lines; max hours default to 8
func ParseFacultyLines(text string) ([]model.RawFaculty, error) {
	faculty := make([]model.RawFaculty, 0)
	for _, row := range splitLines(text) {
		line, fields := row[0], row[1:]
		if fields[0] == "" {
			return nil, fmt.Errorf("line %v: expected \"name | department | maxHours\"", line)
		}

		member := model.RawFaculty{
			Id:            model.Slug(fields[0]),
			Name:          fields[0],
			MaxDailyHours: model.DefaultMaxDailyHours,
		}
		if len(fields) > 1 {
			member.Department = fields[1]
		}
		if len(fields) > 2 && fields[2] != "" {
			hours, err := strconv.ParseFloat(fields[2], 64)
			if err != nil || hours <= 0 {
				return nil, fmt.Errorf("line %v: invalid max hours %q", line, fields[2])
			}
			member.MaxDailyHours = hours
		}
		faculty = append(faculty, member)
	}
	return faculty, nil
}

// ParseRoomLines reads "name | capacity" lines; capacity defaults to 60
func ParseRoomLines(text string) ([]model.RawRoom, error) {
	rooms := make([]model.RawRoom, 0)
	for _, row := range splitLines(text) {
		line, fields := row[0], row[1:]
		if fields[0] == "" {
			return nil, fmt.Errorf("line %v: expected \"name | capacity\"", line)
		}

		room := model.RawRoom{
			Id:       model.Slug(fields[0]),
			Name:     fields[0],
			Capacity: model.DefaultRoomCapacity,
		}
		if len(fields) > 1 && fields[1] != "" {
			capacity, err := strconv.Atoi(fields[1])
			if err != nil || capacity <= 0 {
				return nil, fmt.Errorf("line %v: invalid capacity %q", line, fields[1])
			}
			room.Capacity = capacity
		}
		rooms = append(rooms, room)
	}
	return rooms, nil
}
