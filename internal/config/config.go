// Package config defines process configuration and the layered loader.
//
// Conventions:
// - New() returns defaults; Load layers file, .env and environment on top.
// - External errors are wrapped with this package's sentinel kinds.
package config

import (
	"fmt"
	"strings"

	"github.com/okian/babypool/internal/domain/model"
)

// Config contains process configuration.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// LogFormat selects the log encoding: text or json.
	LogFormat string `koanf:"log_format"`

	// Addr configures the HTTP listen address for serve, e.g. ":9080".
	Addr string `koanf:"addr"`

	// Input is the guess export to score (JSON or CSV).
	Input string `koanf:"input"`

	// Output is where scores are written; the extension picks the format.
	Output string `koanf:"output"`

	// MetricsFile, when set, receives a Prometheus textfile after each run.
	MetricsFile string `koanf:"metrics_file"`

	// MaxBodyBytes caps POST /scores request bodies.
	MaxBodyBytes int64 `koanf:"max_body_bytes"`

	// Actual is the recorded outcome every guess is scored against.
	Actual Actual `koanf:"actual"`
}

// Actual mirrors model.ActualOutcome in configuration form. The birthday is
// kept as a month/day/year string until Outcome parses it.
type Actual struct {
	FirstName  string `koanf:"first_name"`
	MiddleName string `koanf:"middle_name"`
	Gender     string `koanf:"gender"`
	HairColor  string `koanf:"hair_color"`
	EyeColor   string `koanf:"eye_color"`
	Length     int    `koanf:"length"`
	WeightLbs  int    `koanf:"weight_lbs"`
	WeightOzs  int    `koanf:"weight_ozs"`
	Birthday   string `koanf:"birthday"`
	LaborHours int    `koanf:"labor_hours"`
	Epidural   string `koanf:"epidural"`
	CutCord    string `koanf:"cut_cord"`
	Catch      string `koanf:"catch"`
	Faint      string `koanf:"faint"`
}

// actualKeys lists every outcome key; all of them are required.
var actualKeys = []string{
	"first_name", "middle_name", "gender", "hair_color", "eye_color",
	"length", "weight_lbs", "weight_ozs", "birthday", "labor_hours",
	"epidural", "cut_cord", "catch", "faint",
}

// New creates a Config with defaults. The actual outcome has no defaults.
func New() *Config {
	return &Config{
		LogLevel:     "info",
		LogFormat:    "text",
		Addr:         ":9080",
		Output:       "outputs/overall_scores.csv",
		MaxBodyBytes: 1 << 20,
	}
}

// Outcome converts the configured outcome into the domain value.
func (a Actual) Outcome() (model.ActualOutcome, error) {
	birthday, err := model.ParseBirthday(strings.TrimSpace(a.Birthday))
	if err != nil {
		return model.ActualOutcome{}, fmt.Errorf("%w: actual.birthday: %v", ErrInvalidConfig, err)
	}
	return model.ActualOutcome{
		FirstName:  a.FirstName,
		MiddleName: a.MiddleName,
		Gender:     a.Gender,
		HairColor:  a.HairColor,
		EyeColor:   a.EyeColor,
		Length:     a.Length,
		WeightLbs:  a.WeightLbs,
		WeightOzs:  a.WeightOzs,
		Birthday:   birthday,
		LaborHours: a.LaborHours,
		Epidural:   a.Epidural,
		CutCord:    a.CutCord,
		CatchBaby:  a.Catch,
		Faint:      a.Faint,
	}, nil
}
