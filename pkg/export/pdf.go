// Package export renders timetables for people: PDF documents and terminal tables.
package export

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/jung-kurt/gofpdf"
	"github.com/limaJavier/examtabling/pkg/csvio"
	"github.com/limaJavier/examtabling/pkg/model"
)

var Headers = []string{"Date", "Day", "Start", "End", "Course Code", "Course Name", "Faculty", "Room"}

// Relative column widths, scaled to the printable page width
var columnWeights = []float64{1.1, 1.1, 0.7, 0.7, 1, 2.2, 2.4, 1.4}

// PDFExporter renders a timetable into a landscape table.
type PDFExporter struct{}

func NewPDFExporter() *PDFExporter {
	return &PDFExporter{}
}

// Render creates a PDF document with an optional title, one row per exam and a trailing list of unscheduled courses
func (e *PDFExporter) Render(timetable model.Timetable, input model.ModelInput, title string) ([]byte, error) {
	pdf := gofpdf.New("L", "mm", "A4", "")
	pdf.SetMargins(10, 15, 10)
	pdf.AddPage()

	if title != "" {
		pdf.SetFont("Arial", "B", 14)
		pdf.CellFormat(0, 10, strings.ToUpper(title), "", 1, "C", false, 0, "")
		pdf.Ln(5)
	}

	pageWidth, _ := pdf.GetPageSize()
	left, _, right, _ := pdf.GetMargins()
	widths := columnWidths(pageWidth - left - right)

	pdf.SetFont("Arial", "B", 10)
	for i, header := range Headers {
		pdf.CellFormat(widths[i], 8, header, "1", 0, "C", false, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Arial", "", 9)
	for _, row := range csvio.ScheduleRows(timetable, input) {
		for i, value := range Values(row) {
			pdf.CellFormat(widths[i], 7, value, "1", 0, "", false, 0, "")
		}
		pdf.Ln(-1)
	}

	if len(timetable.Unscheduled) > 0 {
		pdf.Ln(5)
		pdf.SetFont("Arial", "B", 10)
		pdf.CellFormat(0, 8, fmt.Sprintf("Unscheduled courses (%d)", len(timetable.Unscheduled)), "", 1, "", false, 0, "")
		pdf.SetFont("Arial", "", 9)
		for _, course := range timetable.Unscheduled {
			pdf.CellFormat(0, 6, fmt.Sprintf("%v  %v (%d students)", course.Code, course.Name, course.Enrollment()), "", 1, "", false, 0, "")
		}
	}

	buf := &bytes.Buffer{}
	if err := pdf.Output(buf); err != nil {
		return nil, fmt.Errorf("render pdf: %w", err)
	}
	return buf.Bytes(), nil
}

func columnWidths(total float64) []float64 {
	sum := 0.0
	for _, weight := range columnWeights {
		sum += weight
	}
	widths := make([]float64, len(columnWeights))
	for i, weight := range columnWeights {
		widths[i] = total * weight / sum
	}
	return widths
}

// Values lists a row's cells in Headers order
func Values(row csvio.ScheduleRow) []string {
	return []string{row.Date, row.Day, row.StartTime, row.EndTime, row.CourseCode, row.CourseName, row.Faculty, row.Room}
}
