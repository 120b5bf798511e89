package csvio

import (
	"bytes"
	"strings"
	"testing"

	"cloud.google.com/go/civil"
	"github.com/limaJavier/examtabling/pkg/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadCourses(t *testing.T) {
	t.Run("Well-formed file", func(t *testing.T) {
		//** Arrange
		in := strings.NewReader("code,name,department,students,duration,faculty\n" +
			"# comment\n" +
			"CS101,Introduction to Programming,CS,120,,dr-rao; dr-iyer\n" +
			"EC201,Digital Electronics,EC,90,2,\n")

		//** Act
		courses, err := LoadCourses(in, ',')

		//** Assert
		require.NoError(t, err)
		assert.Equal(t, []model.RawCourse{
			{Code: "CS101", Name: "Introduction to Programming", Department: "CS", StudentCount: 120, Faculty: []string{"dr-rao", "dr-iyer"}},
			{Code: "EC201", Name: "Digital Electronics", Department: "EC", StudentCount: 90, Duration: 2, Faculty: []string{}},
		}, courses)
	})

	t.Run("Ragged rows are rejected", func(t *testing.T) {
		in := strings.NewReader("code;name;students\nCS101;Programming;120;extra\n")

		courses, err := LoadCourses(in, ';')

		assert.Error(t, err)
		assert.Nil(t, courses)
	})
}

func TestLoadFacultyAndRooms(t *testing.T) {
	faculty, err := LoadFaculty(strings.NewReader("name,department,max_hours\nDr Rao,EC,6\nDr Iyer,CS,\n"), ',')
	require.NoError(t, err)
	assert.Equal(t, []model.RawFaculty{
		{Name: "Dr Rao", Department: "EC", MaxDailyHours: 6},
		{Name: "Dr Iyer", Department: "CS"},
	}, faculty)

	rooms, err := LoadRooms(strings.NewReader("name\tcapacity\tavailable\nHall 1\t150\t\nHall 2\t120\tfalse\n"), '\t')
	require.NoError(t, err)
	require.Len(t, rooms, 2)
	assert.Nil(t, rooms[0].Available)
	assert.False(t, *rooms[1].Available)

	_, err = LoadRooms(strings.NewReader("name,available\nHall 3,sometimes\n"), ',')
	assert.Error(t, err)
}

func TestParseLines(t *testing.T) {
	t.Run("Courses", func(t *testing.T) {
		courses, err := ParseCourseLines("# code | name | students\nCS101 | Programming | 3\n\nEC201|Electronics|2\n")

		require.NoError(t, err)
		assert.Equal(t, []model.RawCourse{
			{Id: "CS101", Code: "CS101", Name: "Programming", StudentCount: 3},
			{Id: "EC201", Code: "EC201", Name: "Electronics", StudentCount: 2},
		}, courses)

		processed, err := model.ProcessRawInput(model.RawModelInput{
			Courses: courses,
			Faculty: []model.RawFaculty{{Name: "Dr Rao"}},
			Rooms:   []model.RawRoom{{Name: "Hall"}},
		})
		require.NoError(t, err)
		assert.Equal(t, []string{"CS101-1", "CS101-2", "CS101-3"}, processed.Courses[0].Students)
	})

	t.Run("Invalid course lines report their line number", func(t *testing.T) {
		_, err := ParseCourseLines("CS101 | Programming | 30\nEC201 | Electronics | many\n")

		assert.EqualError(t, err, `line 2: invalid student count "many"`)

		_, err = ParseCourseLines("CS101 | Programming\n")
		assert.Error(t, err)
	})

	t.Run("Faculty default to eight hours", func(t *testing.T) {
		faculty, err := ParseFacultyLines("Dr A Rao | Electronics | 6\nDr Iyer | CS\n")

		require.NoError(t, err)
		assert.Equal(t, []model.RawFaculty{
			{Id: "dr-a-rao", Name: "Dr A Rao", Department: "Electronics", MaxDailyHours: 6},
			{Id: "dr-iyer", Name: "Dr Iyer", Department: "CS", MaxDailyHours: 8},
		}, faculty)

		_, err = ParseFacultyLines("Dr Rao | EC | -1\n")
		assert.Error(t, err)
	})

	t.Run("Rooms default to sixty seats", func(t *testing.T) {
		rooms, err := ParseRoomLines("Examination Hall 1 | 150\nSeminar Room\n")

		require.NoError(t, err)
		assert.Equal(t, []model.RawRoom{
			{Id: "examination-hall-1", Name: "Examination Hall 1", Capacity: 150},
			{Id: "seminar-room", Name: "Seminar Room", Capacity: 60},
		}, rooms)

		_, err = ParseRoomLines("Hall | zero\n")
		assert.Error(t, err)
	})
}

func TestWriteSchedule(t *testing.T) {
	//** Arrange
	input := model.ModelInput{
		Courses: []model.Course{{Id: "CS101", Code: "CS101", Name: "Programming"}},
		Faculty: []model.Faculty{{Id: "dr-rao", Name: "Dr Rao"}, {Id: "dr-iyer", Name: "Dr Iyer"}},
		Rooms:   []model.Room{{Id: "hall-1", Name: "Hall 1"}},
	}
	timetable := model.Timetable{Slots: []model.ExamSlot{{
		TimeSlot:     model.TimeSlot{Date: civil.Date{Year: 2024, Month: 11, Day: 12}, Start: model.NewClock(9, 30), End: model.NewClock(12, 30)},
		CourseId:     "CS101",
		RoomId:       "hall-1",
		Invigilators: []string{"dr-rao", "ghost"},
	}}}
	var out bytes.Buffer

	//** Act
	err := WriteSchedule(&out, timetable, input)

	//** Assert
	require.NoError(t, err)
	assert.Equal(t,
		"Date,Day,Start Time,End Time,Course Code,Course Name,Faculty,Room\n"+
			"2024-11-12,Tuesday,09:30,12:30,CS101,Programming,Dr Rao; Unknown,Hall 1\n",
		out.String())
}
