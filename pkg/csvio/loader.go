// Package csvio loads entities from CSV files or pipe-separated text and writes schedules as CSV.
package csvio

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/gocarina/gocsv"
	"github.com/limaJavier/examtabling/pkg/model"
	"github.com/samber/lo"
)

type CourseRecord struct {
	Id         string  `csv:"id"`
	Code       string  `csv:"code"`
	Name       string  `csv:"name"`
	Department string  `csv:"department"`
	Students   int     `csv:"students"`
	Duration   float64 `csv:"duration"`
	Faculty    string  `csv:"faculty"` // Pre-assigned faculty ids separated by ';'
}

type FacultyRecord struct {
	Id         string  `csv:"id"`
	Name       string  `csv:"name"`
	Department string  `csv:"department"`
	MaxHours   float64 `csv:"max_hours"`
}

type RoomRecord struct {
	Id        string `csv:"id"`
	Name      string `csv:"name"`
	Capacity  int    `csv:"capacity"`
	Available string `csv:"available"` // Empty means available
}

// setDelimiter configures gocsv's reader; lines starting with '#' are comments
func setDelimiter(delim rune) {
	gocsv.SetCSVReader(func(in io.Reader) gocsv.CSVReader {
		r := csv.NewReader(in)
		r.Comma = delim
		r.Comment = '#'
		r.TrimLeadingSpace = true
		return r
	})
}

// LoadCourses reads courses from CSV; a roster of placeholder students is generated from the head count
func LoadCourses(in io.Reader, delim rune) ([]model.RawCourse, error) {
	setDelimiter(delim)

	records := []*CourseRecord{}
	if err := gocsv.Unmarshal(in, &records); err != nil {
		return nil, fmt.Errorf("cannot parse courses: %w", err)
	}

	return lo.Map(records, func(record *CourseRecord, _ int) model.RawCourse {
		return model.RawCourse{
			Id:           record.Id,
			Code:         record.Code,
			Name:         record.Name,
			Department:   record.Department,
			Duration:     record.Duration,
			StudentCount: record.Students,
			Faculty:      splitList(record.Faculty),
		}
	}), nil
}

func LoadFaculty(in io.Reader, delim rune) ([]model.RawFaculty, error) {
	setDelimiter(delim)

	records := []*FacultyRecord{}
	if err := gocsv.Unmarshal(in, &records); err != nil {
		return nil, fmt.Errorf("cannot parse faculty: %w", err)
	}

	return lo.Map(records, func(record *FacultyRecord, _ int) model.RawFaculty {
		return model.RawFaculty{
			Id:            record.Id,
			Name:          record.Name,
			Department:    record.Department,
			MaxDailyHours: record.MaxHours,
		}
	}), nil
}

func LoadRooms(in io.Reader, delim rune) ([]model.RawRoom, error) {
	setDelimiter(delim)

	records := []*RoomRecord{}
	if err := gocsv.Unmarshal(in, &records); err != nil {
		return nil, fmt.Errorf("cannot parse rooms: %w", err)
	}

	rooms := make([]model.RawRoom, 0, len(records))
	for _, record := range records {
		room := model.RawRoom{Id: record.Id, Name: record.Name, Capacity: record.Capacity}
		if record.Available != "" {
			available, err := strconv.ParseBool(record.Available)
			if err != nil {
				return nil, fmt.Errorf("room %q: invalid availability %q", record.Name, record.Available)
			}
			room.Available = &available
		}
		rooms = append(rooms, room)
	}
	return rooms, nil
}

// LoadFile opens path and hands it to load
func LoadFile[T any](path string, delim rune, load func(io.Reader, rune) ([]T, error)) ([]T, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	return load(file, delim)
}

func splitList(raw string) []string {
	return lo.FilterMap(strings.Split(raw, ";"), func(item string, _ int) (string, bool) {
		item = strings.TrimSpace(item)
		return item, item != ""
	})
}
