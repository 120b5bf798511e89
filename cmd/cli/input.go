package main

import (
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"cloud.google.com/go/civil"
	"github.com/spf13/cobra"

	"github.com/limaJavier/examtabling/pkg/calendar"
	"github.com/limaJavier/examtabling/pkg/csvio"
	"github.com/limaJavier/examtabling/pkg/model"
)

var (
	inputFile   string
	coursesFile string
	facultyFile string
	roomsFile   string
	delimiter   = ","
	startDate   string
	endDate     string
	skipDates   []string
	slotsPerDay int
)

func addInputFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&inputFile, "input", "", "path to a JSON input file")
	cmd.Flags().StringVar(&coursesFile, "courses", "", "courses file: CSV (.csv, .tsv) or \"code | name | students\" lines")
	cmd.Flags().StringVar(&facultyFile, "faculty", "", "faculty file: CSV (.csv, .tsv) or \"name | department | maxHours\" lines")
	cmd.Flags().StringVar(&roomsFile, "rooms", "", "rooms file: CSV (.csv, .tsv) or \"name | capacity\" lines")
	cmd.Flags().StringVar(&delimiter, "delimiter", delimiter, "CSV field delimiter; \"tab\" for tab-separated files")
}

func addWindowFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&startDate, "start", "", "first date of the window (YYYY-MM-DD)")
	cmd.Flags().StringVar(&endDate, "end", "", "last date of the window (YYYY-MM-DD)")
	cmd.Flags().StringArrayVar(&skipDates, "skip", nil, "date to skip, as YYYY-MM-DD or YYYY-MM-DD=name; repeatable")
	cmd.Flags().IntVar(&slotsPerDay, "slots", 0, "exam slots per day (1 to 3)")
}

// Reads the input, lets window flags override it, then applies defaults and configuration
func loadInput(cmd *cobra.Command) model.ModelInput {
	raw, err := readRawInput()
	if err != nil {
		log.Fatalf("cannot parse input: %v", err)
	}

	window, err := parseWindow()
	if err != nil {
		log.Fatalf("%v", err)
	}
	if cmd.Flags().Changed("start") {
		raw.Window.Start = window.Start
	}
	if cmd.Flags().Changed("end") {
		raw.Window.End = window.End
	}
	raw.Window.SkipDates = append(raw.Window.SkipDates, window.SkipDates...)
	if cmd.Flags().Changed("slots") {
		raw.Batch.SlotsPerDay = slotsPerDay
	}

	input, err := model.ProcessRawInput(raw)
	if err != nil {
		log.Fatalf("%v", err)
	}
	return cfg.Scheduler.Apply(input)
}

func readRawInput() (model.RawModelInput, error) {
	if inputFile != "" {
		return model.RawInputFromJson(inputFile)
	}
	if coursesFile == "" || facultyFile == "" || roomsFile == "" {
		return model.RawModelInput{}, fmt.Errorf("either --input or all of --courses, --faculty and --rooms must be specified")
	}

	delim, err := parseDelimiter(delimiter)
	if err != nil {
		return model.RawModelInput{}, err
	}

	courses, err := loadEntities(coursesFile, delim, csvio.LoadCourses, csvio.ParseCourseLines)
	if err != nil {
		return model.RawModelInput{}, err
	}
	faculty, err := loadEntities(facultyFile, delim, csvio.LoadFaculty, csvio.ParseFacultyLines)
	if err != nil {
		return model.RawModelInput{}, err
	}
	rooms, err := loadEntities(roomsFile, delim, csvio.LoadRooms, csvio.ParseRoomLines)
	if err != nil {
		return model.RawModelInput{}, err
	}

	return model.RawModelInput{Courses: courses, Faculty: faculty, Rooms: rooms}, nil
}

// CSV files go through the loader, anything else is read as pipe-separated lines
func loadEntities[T any](path string, delim rune, load func(io.Reader, rune) ([]T, error), parse func(string) ([]T, error)) ([]T, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv", ".tsv":
		return csvio.LoadFile(path, delim, load)
	}

	text, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	entities, err := parse(string(text))
	if err != nil {
		return nil, fmt.Errorf("%v: %w", path, err)
	}
	return entities, nil
}

func parseDelimiter(raw string) (rune, error) {
	if strings.EqualFold(raw, "tab") || raw == `\t` {
		return '\t', nil
	}
	if utf8.RuneCountInString(raw) != 1 {
		return 0, fmt.Errorf("delimiter must be a single character: %q", raw)
	}
	delim, _ := utf8.DecodeRuneInString(raw)
	return delim, nil
}

func parseWindow() (model.Window, error) {
	var window model.Window
	var err error

	if startDate != "" {
		if window.Start, err = civil.ParseDate(startDate); err != nil {
			return model.Window{}, fmt.Errorf("invalid start date %q", startDate)
		}
	}
	if endDate != "" {
		if window.End, err = civil.ParseDate(endDate); err != nil {
			return model.Window{}, fmt.Errorf("invalid end date %q", endDate)
		}
	}

	for _, skip := range skipDates {
		holiday, err := parseSkip(skip)
		if err != nil {
			return model.Window{}, err
		}
		window.SkipDates = append(window.SkipDates, holiday)
	}
	return window, nil
}

// Parses "YYYY-MM-DD" or "YYYY-MM-DD=name"
func parseSkip(raw string) (calendar.Holiday, error) {
	dateRaw, name, _ := strings.Cut(raw, "=")
	date, err := civil.ParseDate(strings.TrimSpace(dateRaw))
	if err != nil {
		return calendar.Holiday{}, fmt.Errorf("invalid skip date %q", raw)
	}
	return calendar.Holiday{Date: date, Name: strings.TrimSpace(name)}, nil
}
