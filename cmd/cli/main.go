package main

import (
	"errors"
	"fmt"
	"log"
	"math/rand"
	"os"
	"slices"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/limaJavier/examtabling/internal/handler"
	"github.com/limaJavier/examtabling/pkg/calendar"
	"github.com/limaJavier/examtabling/pkg/config"
	"github.com/limaJavier/examtabling/pkg/logger"
	"github.com/limaJavier/examtabling/pkg/metrics"
	"github.com/limaJavier/examtabling/pkg/model"
)

// Exit codes
const (
	exitComplete           = 10
	exitVerificationFailed = 15
	exitInfeasible         = 20
)

var (
	validFormats     = []string{"json", "csv", "pdf", "table"}
	validListFormats = []string{"json", "table"}

	configPath      string
	outFile         string
	format          = "json"
	listFormat      = "table"
	title           = "Examination Timetable"
	seed            int64
	assumeAvailable bool

	cfg  *config.Config
	logr *zap.Logger
)

func main() {
	log.SetFlags(0)

	cmdRoot := &cobra.Command{
		Use:   "examtabling",
		Short: "Exam timetable generator",
		Long: "Builds examination timetables from courses, faculty and rooms,\n" +
			"either by filling fixed daily slots or by searching a window of working days",
		PersistentPreRun: setup,
	}
	cmdRoot.PersistentFlags().StringVar(&configPath, "config", "", "path to a .env file; environment variables take precedence")

	cmdCalendar := &cobra.Command{
		Use:   "calendar",
		Short: "list the working days and holidays of a date range",
		Run:   CommandCalendar,
	}
	addWindowFlags(cmdCalendar)
	cmdCalendar.Flags().StringVar(&listFormat, "format", listFormat, "output format: json or table")
	cmdRoot.AddCommand(cmdCalendar)

	cmdPreview := &cobra.Command{
		Use:   "preview",
		Short: "check whether the batch window can hold every course",
		Run:   CommandPreview,
	}
	addInputFlags(cmdPreview)
	addWindowFlags(cmdPreview)
	cmdPreview.Flags().StringVar(&listFormat, "format", listFormat, "output format: json or table")
	cmdRoot.AddCommand(cmdPreview)

	cmdBatch := &cobra.Command{
		Use:   "batch",
		Short: "fill fixed daily slots, largest courses first",
		Run:   CommandBatch,
	}
	addInputFlags(cmdBatch)
	addWindowFlags(cmdBatch)
	addOutputFlags(cmdBatch)
	cmdRoot.AddCommand(cmdBatch)

	cmdSearch := &cobra.Command{
		Use:   "search",
		Short: "search working days for slots honouring every constraint",
		Run:   CommandSearch,
	}
	addInputFlags(cmdSearch)
	addOutputFlags(cmdSearch)
	cmdSearch.Flags().Int64Var(&seed, "seed", 0, "random seed for tie-breaking; 0 uses the clock")
	cmdSearch.Flags().BoolVar(&assumeAvailable, "assume-available", false, "treat faculty without declared availability as available during working hours")
	cmdRoot.AddCommand(cmdSearch)

	cmdServe := &cobra.Command{
		Use:   "serve",
		Short: "serve the HTTP API",
		Run:   CommandServe,
	}
	cmdRoot.AddCommand(cmdServe)

	if err := cmdRoot.Execute(); err != nil {
		os.Exit(1)
	}
}

func addOutputFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&outFile, "out", "", "path to the file where the output will be written; if empty, it'll be written into the Standard Output")
	cmd.Flags().StringVar(&format, "format", format, "output format: json, csv, pdf or table")
	cmd.Flags().StringVar(&title, "title", title, "document title used by the pdf format")
}

func setup(cmd *cobra.Command, args []string) {
	if len(args) > 0 {
		log.Fatalf("unknown option: %s", strings.Join(args, " "))
	}

	var err error
	if cfg, err = config.Load(configPath); err != nil {
		log.Fatalf("cannot load configuration: %v", err)
	}
	if logr, err = logger.New(cfg); err != nil {
		log.Fatalf("cannot initialize logger: %v", err)
	}

	format, listFormat = strings.ToLower(format), strings.ToLower(listFormat)
	if !slices.Contains(validFormats, format) {
		log.Fatalf("%v is not a valid format", format)
	} else if !slices.Contains(validListFormats, listFormat) {
		log.Fatalf("%v is not a valid format", listFormat)
	}
}

// Flushes the logger, then exits with code
func exit(code int) {
	logr.Sync() //nolint:errcheck
	os.Exit(code)
}

func CommandCalendar(cmd *cobra.Command, args []string) {
	window, err := parseWindow()
	if err != nil {
		log.Fatalf("%v", err)
	} else if !window.Start.IsValid() || !window.End.IsValid() {
		log.Fatal("both --start and --end must be specified")
	}

	workingDays, holidays := calendar.WorkingDays(window.Start, window.End, window.SkipDates)
	if listFormat == "json" {
		writeJson(map[string]any{"workingDays": workingDays, "holidays": holidays})
		return
	}

	color.New(color.FgCyan, color.Bold).Printf("\n=== %v to %v ===\n", window.Start, window.End)
	color.Green("%d working days", len(workingDays))
	for _, day := range workingDays {
		fmt.Printf("  %v  %v\n", day, calendar.Weekday(day))
	}
	color.Yellow("%d holidays", len(holidays))
	for _, holiday := range holidays {
		fmt.Printf("  %v  %v\n", holiday.Date, holiday.Name)
	}
}

func CommandPreview(cmd *cobra.Command, args []string) {
	input := loadInput(cmd)

	preview, err := model.Preview(input)
	if err != nil {
		log.Fatalf("cannot compute preview: %v", err)
	}
	if listFormat == "json" {
		writeJson(preview)
		return
	}

	color.New(color.FgCyan, color.Bold).Printf("\n=== Capacity preview ===\n")
	fmt.Printf("Working days:  %d\n", len(preview.WorkingDays))
	fmt.Printf("Holidays:      %d\n", len(preview.Holidays))
	fmt.Printf("Slots per day: %d\n", preview.SlotsPerDay)
	fmt.Printf("Total slots:   %d\n", preview.TotalSlots)
	fmt.Printf("Courses:       %d\n", preview.Courses)
	fmt.Printf("Max parallel:  %d\n", preview.MaxParallel)
	if preview.Sufficient {
		color.Green("Capacity is sufficient")
	} else {
		color.Red("Capacity is insufficient")
	}
}

func CommandBatch(cmd *cobra.Command, args []string) {
	input := loadInput(cmd)
	run(model.NewBatchTimetabler(logr), input)
}

func CommandSearch(cmd *cobra.Command, args []string) {
	input := loadInput(cmd)

	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	if assumeAvailable {
		input = model.FillAvailability(input, calendar.Today(time.Now()))
	}
	logr.Info("search seeded", zap.Int64("seed", seed))

	run(model.NewSearchTimetabler(rand.New(rand.NewSource(seed)), time.Now, logr), input)
}

func run(timetabler model.Timetabler, input model.ModelInput) {
	// Build timetable
	timetable, err := timetabler.Build(input)
	if err != nil {
		var invalid model.InvalidInputError
		if errors.As(err, &invalid) {
			log.Fatalf("invalid input: %v", invalid.Reason)
		}
		failure.Fprintln(os.Stderr, err)
		exit(exitInfeasible)
	}

	// Verify timetable correctness
	if !timetabler.Verify(timetable, input) {
		failure.Fprintf(os.Stderr, "%v timetable failed verification\n", timetabler.Strategy())
		exit(exitVerificationFailed)
	}

	if err := writeTimetable(timetable, input); err != nil {
		log.Fatalf("an error occurred while writing the timetable: %v", err)
	}

	if timetable.Partial() {
		warning.Fprintf(os.Stderr, "%d courses could not be scheduled\n", len(timetable.Unscheduled))
		exit(exitInfeasible)
	}
	exit(exitComplete)
}

func CommandServe(cmd *cobra.Command, args []string) {
	defer logr.Sync() //nolint:errcheck

	if cfg.Env == config.EnvProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	router := handler.NewRouter(handler.New(cfg.Scheduler, metrics.NewRecorder(), logr))

	addr := fmt.Sprintf(":%d", cfg.Port)
	logr.Sugar().Infow("server starting", "addr", addr, "env", cfg.Env)
	if err := router.Run(addr); err != nil {
		logr.Sugar().Fatalw("server failed", "error", err)
	}
}
