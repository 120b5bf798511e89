package export

import (
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/limaJavier/examtabling/pkg/csvio"
	"github.com/limaJavier/examtabling/pkg/model"
	"github.com/olekukonko/tablewriter"
)

// RenderTable writes schedule rows as a bordered terminal table
func RenderTable(w io.Writer, rows []csvio.ScheduleRow) {
	table := tablewriter.NewWriter(w)
	table.SetHeader(Headers)
	table.SetAutoWrapText(false)
	for _, row := range rows {
		table.Append(Values(row))
	}
	table.Render()
}

// PrintTimetable writes a colored heading, the table and any unscheduled courses
func PrintTimetable(w io.Writer, timetable model.Timetable, input model.ModelInput) {
	color.New(color.FgCyan, color.Bold).Fprintf(w, "\n=== %v timetable: %d exams over %d working days ===\n",
		timetable.Strategy, len(timetable.Slots), len(timetable.WorkingDays))
	RenderTable(w, csvio.ScheduleRows(timetable, input))

	if len(timetable.Holidays) > 0 {
		color.New(color.FgYellow).Fprintln(w, "\nSkipped dates")
		for _, holiday := range timetable.Holidays {
			fmt.Fprintf(w, "  %v  %v\n", holiday.Date, holiday.Name)
		}
	}

	if timetable.Partial() {
		color.New(color.FgRed).Fprintf(w, "\n%d courses could not be scheduled\n", len(timetable.Unscheduled))
		for _, course := range timetable.Unscheduled {
			fmt.Fprintf(w, "  %v  %v (%d students)\n", course.Code, course.Name, course.Enrollment())
		}
	}
}
