// Package config loads the rpsmood configuration from YAML, .env files and
// RPS_* environment variables.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// DefaultEnvFile is loaded by Load when it exists.
const DefaultEnvFile = ".env"

// ErrInvalid is returned when a configuration fails validation.
var ErrInvalid = errors.New("invalid configuration")

// Config is the full application configuration.
type Config struct {
	Camera   CameraConfig   `yaml:"camera"`
	Detector DetectorConfig `yaml:"detector"`
	Round    RoundConfig    `yaml:"round"`
	Cue      CueConfig      `yaml:"cue"`
	Server   ServerConfig   `yaml:"server"`
	History  HistoryConfig  `yaml:"history"`
	Log      LogConfig      `yaml:"log"`
	Tray     bool           `yaml:"tray"`
}

// CameraConfig selects and shapes the capture device.
type CameraConfig struct {
	Device int  `yaml:"device" validate:"gte=0"`
	Width  int  `yaml:"width" validate:"gt=0"`
	Height int  `yaml:"height" validate:"gt=0"`
	FPS    int  `yaml:"fps" validate:"gt=0,lte=120"`
	Mirror bool `yaml:"mirror"`
}

// DetectorConfig tunes the landmark sidecar.
type DetectorConfig struct {
	MaxHands        int     `yaml:"max_hands" validate:"gte=1,lte=4"`
	MaxFaces        int     `yaml:"max_faces" validate:"gte=1"`
	MinConfidence   float64 `yaml:"min_confidence" validate:"gte=0,lte=1"`
	RefineLandmarks bool    `yaml:"refine_landmarks"`
	ScriptPath      string  `yaml:"script_path"`
	PythonPath      string  `yaml:"python_path"`
}

// RoundConfig sets the countdown.
type RoundConfig struct {
	Countdown time.Duration `yaml:"countdown" validate:"gt=0"`
	Unit      time.Duration `yaml:"unit" validate:"gt=0"`
}

// CueConfig selects how countdown cues are played.
type CueConfig struct {
	Mode    string        `yaml:"mode" validate:"oneof=none bell command"`
	Command []string      `yaml:"command"`
	Timeout time.Duration `yaml:"timeout" validate:"gte=0"`
}

// ServerConfig configures the HTTP presentation boundary.
type ServerConfig struct {
	Addr          string  `yaml:"addr" validate:"required"`
	StaticDir     string  `yaml:"static_dir"`
	Stream        bool    `yaml:"stream"`
	BroadcastRate float64 `yaml:"broadcast_rate" validate:"gte=0"`
}

// HistoryConfig configures the round history database.
type HistoryConfig struct {
	Enabled bool   `yaml:"enabled"`
	Path    string `yaml:"path" validate:"required_if=Enabled true"`
}

// LogConfig configures logging.
type LogConfig struct {
	Level      string `yaml:"level" validate:"oneof=trace debug info warn warning error"`
	File       string `yaml:"file"`
	MaxSizeMB  int    `yaml:"max_size_mb" validate:"gte=0"`
	MaxBackups int    `yaml:"max_backups" validate:"gte=0"`
	MaxAgeDays int    `yaml:"max_age_days" validate:"gte=0"`
	Compress   bool   `yaml:"compress"`
}

// DataDir returns the per-user data directory, ~/.rpsmood.
func DataDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".rpsmood"
	}
	return filepath.Join(home, ".rpsmood")
}

// Default returns the default configuration.
func Default() Config {
	return Config{
		Camera: CameraConfig{
			Device: 0,
			Width:  640,
			Height: 480,
			FPS:    15,
			Mirror: true,
		},
		Detector: DetectorConfig{
			MaxHands:        2,
			MaxFaces:        1,
			MinConfidence:   0.7,
			RefineLandmarks: true,
		},
		Round: RoundConfig{
			Countdown: 3 * time.Second,
			Unit:      time.Second,
		},
		Cue: CueConfig{
			Mode:    "command",
			Timeout: 2 * time.Second,
		},
		Server: ServerConfig{
			Addr:          ":8080",
			Stream:        true,
			BroadcastRate: 15,
		},
		History: HistoryConfig{
			Enabled: true,
			Path:    filepath.Join(DataDir(), "rpsmood.db"),
		},
		Log: LogConfig{
			Level:      "info",
			MaxSizeMB:  10,
			MaxBackups: 3,
			MaxAgeDays: 28,
		},
	}
}

// Load builds the configuration: defaults, then the YAML file at path (if
// path is not empty), then the .env file, then RPS_* environment variables.
func Load(path string) (Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
		if cfg, err = Parse(data); err != nil {
			return Config{}, err
		}
	}

	if err := LoadEnvFile(DefaultEnvFile); err != nil {
		return Config{}, err
	}
	if err := ApplyEnv(&cfg, os.LookupEnv); err != nil {
		return Config{}, err
	}
	if err := Validate(cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Parse decodes YAML over the defaults. Keys that are absent keep their
// default values.
func Parse(data []byte) (Config, error) {
	cfg := Default()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}
	return cfg, nil
}

// LoadEnvFile loads path into the process environment if it exists.
// Variables that are already set are left alone.
func LoadEnvFile(path string) error {
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		return nil
	}
	if err := godotenv.Load(path); err != nil {
		return fmt.Errorf("load %s: %w", path, err)
	}
	return nil
}

// ApplyEnv overrides cfg from RPS_* variables found by lookup.
func ApplyEnv(cfg *Config, lookup func(string) (string, bool)) error {
	if v, ok := lookup("RPS_CAMERA"); ok {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%w: RPS_CAMERA: %v", ErrInvalid, err)
		}
		cfg.Camera.Device = n
	}
	if v, ok := lookup("RPS_COUNTDOWN"); ok {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("%w: RPS_COUNTDOWN: %v", ErrInvalid, err)
		}
		cfg.Round.Countdown = d
	}
	if v, ok := lookup("RPS_TRAY"); ok {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("%w: RPS_TRAY: %v", ErrInvalid, err)
		}
		cfg.Tray = b
	}
	if v, ok := lookup("RPS_ADDR"); ok {
		cfg.Server.Addr = v
	}
	if v, ok := lookup("RPS_STATIC_DIR"); ok {
		cfg.Server.StaticDir = v
	}
	if v, ok := lookup("RPS_DB"); ok {
		cfg.History.Path = v
		cfg.History.Enabled = v != ""
	}
	if v, ok := lookup("RPS_LOG_LEVEL"); ok {
		cfg.Log.Level = strings.ToLower(v)
	}
	if v, ok := lookup("RPS_LOG_FILE"); ok {
		cfg.Log.File = v
	}
	return nil
}

var validate = validator.New()

// Validate checks cfg against its struct tags.
func Validate(cfg Config) error {
	err := validate.Struct(cfg)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fmt.Errorf("%w: %v", ErrInvalid, err)
	}
	fields := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		if fe.Param() != "" {
			fields = append(fields, fmt.Sprintf("%s (%s=%s)", fe.Namespace(), fe.Tag(), fe.Param()))
		} else {
			fields = append(fields, fmt.Sprintf("%s (%s)", fe.Namespace(), fe.Tag()))
		}
	}
	return fmt.Errorf("%w: %s", ErrInvalid, strings.Join(fields, ", "))
}
