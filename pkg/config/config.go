package config

import (
	"errors"
	"io/fs"
	"strings"

	"github.com/joho/godotenv"
	"github.com/limaJavier/examtabling/pkg/model"
	"github.com/spf13/viper"
)

const (
	EnvDevelopment = "development"
	EnvProduction  = "production"
)

type Config struct {
	Env       string
	Port      int
	Log       LogConfig
	Scheduler SchedulerConfig
}

type LogConfig struct {
	Level  string
	Format string
}

// SchedulerConfig holds the defaults applied to inputs that leave parameters unset.
type SchedulerConfig struct {
	ExamDurationHours float64
	SlotsPerDay       int
	DailyHourCap      float64
	MaxAttempts       int
	WindowDays        int
	MaxExamsPerDay    int
	ExamGapHours      float64
	WorkingHours      model.WorkingHours
}

// Load reads configuration from the environment, optionally seeded by a .env file at path.
func Load(path string) (*Config, error) {
	if path == "" {
		path = ".env"
	}
	_ = godotenv.Load(path)

	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("env")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !errors.Is(err, fs.ErrNotExist) {
			return nil, err
		}
	}

	cfg := &Config{
		Env:  v.GetString("APP_ENV"),
		Port: v.GetInt("HTTP_PORT"),
		Log: LogConfig{
			Level:  v.GetString("LOG_LEVEL"),
			Format: v.GetString("LOG_FORMAT"),
		},
	}

	cfg.Scheduler = SchedulerConfig{
		ExamDurationHours: v.GetFloat64("SCHEDULER_EXAM_DURATION_HOURS"),
		SlotsPerDay:       v.GetInt("SCHEDULER_SLOTS_PER_DAY"),
		DailyHourCap:      v.GetFloat64("SCHEDULER_DAILY_HOUR_CAP"),
		MaxAttempts:       v.GetInt("SCHEDULER_MAX_ATTEMPTS"),
		WindowDays:        v.GetInt("SCHEDULER_WINDOW_DAYS"),
		MaxExamsPerDay:    v.GetInt("SCHEDULER_MAX_EXAMS_PER_DAY"),
		ExamGapHours:      v.GetFloat64("SCHEDULER_EXAM_GAP_HOURS"),
		WorkingHours:      parseWorkingHours(v.GetString("SCHEDULER_WORKING_HOURS"), model.DefaultWorkingHours),
	}

	return cfg, nil
}

// Apply fills the parameters an input leaves unset
func (cfg SchedulerConfig) Apply(input model.ModelInput) model.ModelInput {
	if input.Batch.ExamDurationHours == 0 {
		input.Batch.ExamDurationHours = cfg.ExamDurationHours
	}
	if input.Batch.SlotsPerDay == 0 {
		input.Batch.SlotsPerDay = cfg.SlotsPerDay
	}
	if input.Batch.DailyHourCap == 0 {
		input.Batch.DailyHourCap = cfg.DailyHourCap
	}

	constraints := &input.Constraints
	if constraints.MaxAttempts == 0 {
		constraints.MaxAttempts = cfg.MaxAttempts
	}
	if constraints.WindowDays == 0 {
		constraints.WindowDays = cfg.WindowDays
	}
	if constraints.MaxExamsPerDay == 0 {
		constraints.MaxExamsPerDay = cfg.MaxExamsPerDay
	}
	if constraints.ExamTimeGapHours == nil {
		gap := cfg.ExamGapHours
		constraints.ExamTimeGapHours = &gap
	}
	if constraints.WorkingHours == (model.WorkingHours{}) {
		constraints.WorkingHours = cfg.WorkingHours
	}
	return input
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("APP_ENV", EnvDevelopment)
	v.SetDefault("HTTP_PORT", 8080)

	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "console")

	v.SetDefault("SCHEDULER_EXAM_DURATION_HOURS", model.DefaultExamDurationHours)
	v.SetDefault("SCHEDULER_SLOTS_PER_DAY", 3)
	v.SetDefault("SCHEDULER_DAILY_HOUR_CAP", model.DefaultDailyHourCap)
	v.SetDefault("SCHEDULER_MAX_ATTEMPTS", model.DefaultMaxAttempts)
	v.SetDefault("SCHEDULER_WINDOW_DAYS", model.DefaultWindowDays)
	v.SetDefault("SCHEDULER_MAX_EXAMS_PER_DAY", model.DefaultMaxExamsPerDay)
	v.SetDefault("SCHEDULER_EXAM_GAP_HOURS", 1)
	v.SetDefault("SCHEDULER_WORKING_HOURS", "09:00-17:00")
}

// Parses "HH:MM-HH:MM", falling back on malformed values
func parseWorkingHours(raw string, fallback model.WorkingHours) model.WorkingHours {
	startRaw, endRaw, found := strings.Cut(raw, "-")
	if !found {
		return fallback
	}

	start, err := model.ParseClock(startRaw)
	if err != nil {
		return fallback
	}
	end, err := model.ParseClock(endRaw)
	if err != nil || end < start {
		return fallback
	}

	return model.WorkingHours{Start: start, End: end}
}
