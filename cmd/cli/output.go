package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"log"
	"os"

	"github.com/fatih/color"

	"github.com/limaJavier/examtabling/pkg/csvio"
	"github.com/limaJavier/examtabling/pkg/export"
	"github.com/limaJavier/examtabling/pkg/model"
)

// Status lines go to the Standard Error
var (
	failure = color.New(color.FgRed)
	warning = color.New(color.FgYellow)
)

func renderTimetable(timetable model.Timetable, input model.ModelInput) ([]byte, error) {
	switch format {
	case "csv":
		buf := &bytes.Buffer{}
		if err := csvio.WriteSchedule(buf, timetable, input); err != nil {
			return nil, err
		}
		return buf.Bytes(), nil
	case "pdf":
		return export.NewPDFExporter().Render(timetable, input, title)
	case "table":
		buf := &bytes.Buffer{}
		export.PrintTimetable(buf, timetable, input)
		return buf.Bytes(), nil
	default:
		return json.MarshalIndent(timetable, "", "  ")
	}
}

func writeTimetable(timetable model.Timetable, input model.ModelInput) error {
	output, err := renderTimetable(timetable, input)
	if err != nil {
		return err
	}
	return writeOutput(output)
}

func writeJson(value any) {
	output, err := json.MarshalIndent(value, "", "  ")
	if err != nil {
		log.Fatalf("an error occurred while building output json: %v", err)
	}
	if err := writeOutput(output); err != nil {
		log.Fatalf("an error occurred while writing the output: %v", err)
	}
}

// Verify outfile is empty, if so then write the results to the Standard Output
func writeOutput(output []byte) error {
	if outFile == "" {
		_, err := fmt.Fprintln(os.Stdout, string(output))
		return err
	}
	return os.WriteFile(outFile, output, 0666)
}
