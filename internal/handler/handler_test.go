package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/limaJavier/examtabling/pkg/config"
	"github.com/limaJavier/examtabling/pkg/logger"
	"github.com/limaJavier/examtabling/pkg/metrics"
)

type envelope struct {
	Data  json.RawMessage `json:"data"`
	Error *struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
	Meta map[string]any `json:"meta"`
}

func newTestRouter() (*gin.Engine, *metrics.Recorder) {
	gin.SetMode(gin.TestMode)
	recorder := metrics.NewRecorder()
	h := New(config.SchedulerConfig{}, recorder, nil)
	h.now = func() time.Time { return time.Date(2024, time.November, 11, 8, 0, 0, 0, time.UTC) }
	return NewRouter(h), recorder
}

func perform(t *testing.T, router *gin.Engine, method, path, body string) (*httptest.ResponseRecorder, envelope) {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	var response envelope
	if strings.HasPrefix(w.Header().Get("Content-Type"), "application/json") {
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	}
	return w, response
}

const batchBody = `{
	"courses": [
		{"code": "CS101", "name": "Programming", "studentCount": 40},
		{"code": "EC201", "name": "Electronics", "studentCount": 30}
	],
	"faculty": [{"id": "f1", "name": "Dr Rao"}, {"id": "f2", "name": "Dr Iyer"}],
	"rooms": [{"id": "hall-1", "name": "Hall 1", "capacity": 50}, {"id": "hall-2", "name": "Hall 2", "capacity": 40}],
	"window": {"start": "2024-11-11", "end": "2024-11-11"},
	"batch": {"slotsPerDay": 1}
}`

func TestHealth(t *testing.T) {
	router, _ := newTestRouter()

	w, response := perform(t, router, http.MethodGet, "/health", "")

	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"ok"}`, string(response.Data))
	assert.NotEmpty(t, w.Header().Get(logger.RequestIDHeader))
}

func TestCalendar(t *testing.T) {
	router, _ := newTestRouter()

	t.Run("Working days and holidays", func(t *testing.T) {
		w, response := perform(t, router, http.MethodPost, "/v1/calendar",
			`{"start":"2024-11-11","end":"2024-11-17","skipDates":[{"date":"2024-11-13","name":"Sports Day"}]}`)

		require.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `{
			"workingDays": ["2024-11-11","2024-11-12","2024-11-14","2024-11-15","2024-11-16"],
			"holidays": [{"date":"2024-11-13","name":"Sports Day"},{"date":"2024-11-17","name":"Sunday"}]
		}`, string(response.Data))
		assert.Equal(t, 5.0, response.Meta["workingDays"])
	})

	t.Run("Malformed dates are rejected", func(t *testing.T) {
		w, response := perform(t, router, http.MethodPost, "/v1/calendar", `{"start":"11/11/2024","end":"2024-11-17"}`)

		require.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, "VALIDATION_ERROR", response.Error.Code)
	})
}

func TestPreview(t *testing.T) {
	router, _ := newTestRouter()

	w, response := perform(t, router, http.MethodPost, "/v1/preview", batchBody)

	require.Equal(t, http.StatusOK, w.Code)
	var preview struct {
		TotalSlots  int  `json:"totalSlots"`
		Sufficient  bool `json:"sufficient"`
		MaxParallel int  `json:"maxParallel"`
	}
	require.NoError(t, json.Unmarshal(response.Data, &preview))
	assert.Equal(t, 2, preview.TotalSlots)
	assert.True(t, preview.Sufficient)
	assert.Equal(t, 2, preview.MaxParallel)
}

func TestBatch(t *testing.T) {
	t.Run("Complete timetable", func(t *testing.T) {
		router, recorder := newTestRouter()

		w, response := perform(t, router, http.MethodPost, "/v1/timetables/batch", batchBody)

		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "batch", response.Meta["strategy"])
		assert.Equal(t, 2.0, response.Meta["exams"])
		assert.Equal(t, false, response.Meta["partial"])

		metricsResponse := httptest.NewRecorder()
		recorder.Handler().ServeHTTP(metricsResponse, httptest.NewRequest(http.MethodGet, "/metrics", nil))
		assert.Contains(t, metricsResponse.Body.String(), `examtabling_runs_total{outcome="complete",strategy="batch"} 1`)
	})

	t.Run("Capacity shortfall", func(t *testing.T) {
		router, _ := newTestRouter()
		body := strings.Replace(batchBody, `, {"id": "hall-2", "name": "Hall 2", "capacity": 40}`, "", 1)

		w, response := perform(t, router, http.MethodPost, "/v1/timetables/batch", body)

		require.Equal(t, http.StatusUnprocessableEntity, w.Code)
		assert.Equal(t, "CAPACITY_SHORTFALL", response.Error.Code)
		assert.Equal(t, "insufficient slots: 1 available for 2 courses", response.Error.Message)
	})

	t.Run("Invalid input", func(t *testing.T) {
		router, _ := newTestRouter()

		w, response := perform(t, router, http.MethodPost, "/v1/timetables/batch", `{"courses":[{"code":"CS101","studentCount":10}],"faculty":[{"id":"f1"}],"rooms":[]}`)

		require.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, "VALIDATION_ERROR", response.Error.Code)
	})

	t.Run("Missing window", func(t *testing.T) {
		router, _ := newTestRouter()
		body := strings.Replace(batchBody, `"window": {"start": "2024-11-11", "end": "2024-11-11"},`, "", 1)

		w, response := perform(t, router, http.MethodPost, "/v1/timetables/batch", body)

		require.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, "VALIDATION_ERROR", response.Error.Code)
	})

	t.Run("Malformed body", func(t *testing.T) {
		router, _ := newTestRouter()

		w, response := perform(t, router, http.MethodPost, "/v1/timetables/batch", `{"courses":`)

		require.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, "VALIDATION_ERROR", response.Error.Code)
	})
}

func TestSearch(t *testing.T) {
	body := `{
		"courses": [{"code": "CS101", "name": "Programming", "studentCount": 30}],
		"faculty": [{"id": "f1", "name": "Dr Rao"}, {"id": "f2", "name": "Dr Iyer"}],
		"rooms": [{"id": "hall-1", "name": "Hall 1", "capacity": 50}],
		"seed": 7,
		"assumeAvailable": %v
	}`

	t.Run("Assumed availability places the exam", func(t *testing.T) {
		router, _ := newTestRouter()

		w, response := perform(t, router, http.MethodPost, "/v1/timetables/search", strings.Replace(body, "%v", "true", 1))

		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "search", response.Meta["strategy"])
		assert.Equal(t, 7.0, response.Meta["seed"])
		assert.Equal(t, false, response.Meta["partial"])

		var timetable struct {
			Slots []struct {
				Date         string   `json:"date"`
				StartTime    string   `json:"startTime"`
				EndTime      string   `json:"endTime"`
				Room         string   `json:"room"`
				Invigilators []string `json:"invigilators"`
			} `json:"slots"`
		}
		require.NoError(t, json.Unmarshal(response.Data, &timetable))
		require.Len(t, timetable.Slots, 1)
		assert.Equal(t, "2024-11-11", timetable.Slots[0].Date)
		assert.Equal(t, "09:00", timetable.Slots[0].StartTime)
		assert.Equal(t, "12:00", timetable.Slots[0].EndTime)
		assert.Equal(t, "hall-1", timetable.Slots[0].Room)
		assert.ElementsMatch(t, []string{"f1", "f2"}, timetable.Slots[0].Invigilators)
	})

	t.Run("Faculty without availability leave a partial timetable", func(t *testing.T) {
		router, _ := newTestRouter()

		w, response := perform(t, router, http.MethodPost, "/v1/timetables/search", strings.Replace(body, "%v", "false", 1))

		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, true, response.Meta["partial"])
		assert.Equal(t, 0.0, response.Meta["exams"])
	})
}

func TestCalendarRequiresDates(t *testing.T) {
	router, _ := newTestRouter()

	w, response := perform(t, router, http.MethodPost, "/v1/calendar", `{"start":"2024-11-11"}`)

	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "start and end dates are required", response.Error.Message)
}

func TestNotFound(t *testing.T) {
	router, recorder := newTestRouter()

	w, response := perform(t, router, http.MethodGet, "/v1/timetables", "")

	require.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "NOT_FOUND", response.Error.Code)
	assert.Equal(t, "no route for GET /v1/timetables", response.Error.Message)

	metricsResponse := httptest.NewRecorder()
	recorder.Handler().ServeHTTP(metricsResponse, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Contains(t, metricsResponse.Body.String(), `examtabling_http_requests_total{method="GET",path="unmatched",status="404"} 1`)
}
