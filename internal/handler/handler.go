// Package handler exposes the calendar engine and both timetablers over HTTP.
package handler

import (
	"fmt"
	"math/rand"
	"net/http"
	"time"

	"cloud.google.com/go/civil"
	"github.com/gin-gonic/gin"
	"github.com/mitchellh/mapstructure"
	"go.uber.org/zap"

	"github.com/limaJavier/examtabling/pkg/calendar"
	"github.com/limaJavier/examtabling/pkg/config"
	appErrors "github.com/limaJavier/examtabling/pkg/errors"
	"github.com/limaJavier/examtabling/pkg/logger"
	"github.com/limaJavier/examtabling/pkg/metrics"
	"github.com/limaJavier/examtabling/pkg/model"
)

type Handler struct {
	scheduler config.SchedulerConfig
	recorder  *metrics.Recorder
	logger    *zap.Logger
	now       func() time.Time
}

func New(scheduler config.SchedulerConfig, recorder *metrics.Recorder, log *zap.Logger) *Handler {
	if log == nil {
		log = zap.NewNop()
	}
	return &Handler{scheduler: scheduler, recorder: recorder, logger: log, now: time.Now}
}

// NewRouter wires middleware and routes
func NewRouter(h *Handler) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery(), logger.RequestID(), logger.GinMiddleware(h.logger), h.observeRequests())

	router.GET("/health", h.Health)
	router.GET("/metrics", gin.WrapH(h.recorder.Handler()))

	v1 := router.Group("/v1")
	v1.POST("/calendar", h.Calendar)
	v1.POST("/preview", h.Preview)
	v1.POST("/timetables/batch", h.Batch)
	v1.POST("/timetables/search", h.Search)

	router.NoRoute(h.NotFound)

	return router
}

func (h *Handler) observeRequests() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()
		path := c.FullPath()
		if path == "" {
			path = "unmatched"
		}
		h.recorder.ObserveHTTPRequest(c.Request.Method, path, c.Writer.Status())
	}
}

func (h *Handler) NotFound(c *gin.Context) {
	respondError(c, appErrors.Clone(appErrors.ErrNotFound, fmt.Sprintf("no route for %v %v", c.Request.Method, c.Request.URL.Path)))
}

func (h *Handler) Health(c *gin.Context) {
	respond(c, gin.H{"status": "ok"}, nil)
}

type calendarRequest struct {
	Start     civil.Date         `json:"start"`
	End       civil.Date         `json:"end"`
	SkipDates []calendar.Holiday `json:"skipDates"`
}

type calendarResponse struct {
	WorkingDays []civil.Date       `json:"workingDays"`
	Holidays    []calendar.Holiday `json:"holidays"`
}

func (h *Handler) Calendar(c *gin.Context) {
	var req calendarRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid calendar payload"))
		return
	}
	if !req.Start.IsValid() || !req.End.IsValid() {
		respondError(c, appErrors.Clone(appErrors.ErrValidation, "start and end dates are required"))
		return
	}

	workingDays, holidays := calendar.WorkingDays(req.Start, req.End, req.SkipDates)
	respond(c, calendarResponse{WorkingDays: workingDays, Holidays: holidays}, map[string]any{
		"workingDays": len(workingDays),
		"holidays":    len(holidays),
	})
}

func (h *Handler) Preview(c *gin.Context) {
	input, _, ok := h.bindInput(c)
	if !ok {
		return
	}

	preview, err := model.Preview(input)
	if err != nil {
		respondError(c, err)
		return
	}
	respond(c, preview, nil)
}

func (h *Handler) Batch(c *gin.Context) {
	input, _, ok := h.bindInput(c)
	if !ok {
		return
	}

	h.run(c, model.NewBatchTimetabler(h.logger), input, nil)
}

// Search-only request fields, read alongside the model input
type searchOptions struct {
	Seed            *int64 `mapstructure:"seed"`
	AssumeAvailable bool   `mapstructure:"assumeAvailable"`
}

func (h *Handler) Search(c *gin.Context) {
	input, body, ok := h.bindInput(c)
	if !ok {
		return
	}

	var options searchOptions
	if err := mapstructure.Decode(body, &options); err != nil {
		respondError(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid search options"))
		return
	}

	seed := h.now().UnixNano()
	if options.Seed != nil {
		seed = *options.Seed
	}
	if options.AssumeAvailable {
		input = model.FillAvailability(input, calendar.Today(h.now()))
	}

	timetabler := model.NewSearchTimetabler(rand.New(rand.NewSource(seed)), h.now, h.logger)
	h.run(c, timetabler, input, map[string]any{"seed": seed})
}

// Decodes the body the same way input files are decoded, then applies the configured defaults
func (h *Handler) bindInput(c *gin.Context) (model.ModelInput, map[string]any, bool) {
	var body map[string]any
	if err := c.ShouldBindJSON(&body); err != nil {
		respondError(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid input payload"))
		return model.ModelInput{}, nil, false
	}

	raw, err := model.DecodeRawInput(body)
	if err != nil {
		respondError(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, err.Error()))
		return model.ModelInput{}, nil, false
	}

	input, err := model.ProcessRawInput(raw)
	if err != nil {
		respondError(c, err)
		return model.ModelInput{}, nil, false
	}
	return h.scheduler.Apply(input), body, true
}

func (h *Handler) run(c *gin.Context, timetabler model.Timetabler, input model.ModelInput, meta map[string]any) {
	start := time.Now()
	timetable, err := timetabler.Build(input)
	h.recorder.ObserveRun(timetabler.Strategy(), metrics.Outcome(timetable, err), len(timetable.Slots), time.Since(start))
	if err != nil {
		respondError(c, err)
		return
	}

	if !timetabler.Verify(timetable, input) {
		h.logger.Error("generated timetable failed verification",
			zap.String("strategy", timetabler.Strategy()),
			zap.String("timetable", timetable.Id),
			zap.String("request_id", logger.RequestIDValue(c)),
		)
		respondError(c, appErrors.Clone(appErrors.ErrInternal, fmt.Sprintf("%v timetable failed verification", timetabler.Strategy())))
		return
	}

	if meta == nil {
		meta = map[string]any{}
	}
	meta["strategy"] = timetabler.Strategy()
	meta["exams"] = len(timetable.Slots)
	meta["partial"] = timetable.Partial()
	respond(c, timetable, meta)
}
