// Package config loads moviemanager.yaml and applies environment overrides.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	// ErrCodeNotFound means an explicitly requested config file does not exist.
	ErrCodeNotFound = "config_not_found"
	// ErrCodeInvalid means the file could not be read or parsed, or a field is out of range.
	ErrCodeInvalid = "config_invalid"
)

// DefaultFileName is looked up in the working directory when no -config flag is given.
const DefaultFileName = "moviemanager.yaml"

const (
	DefaultLoginDelay        = time.Second
	DefaultBestWorkThreshold = 7.5
	DefaultWindowWidth       = 1200
	DefaultWindowHeight      = 700
)

// DefaultDataDirs are the directories searched for Users.txt, in order.
var DefaultDataDirs = []string{"src/utils/", "Movie/src/utils/", "utils/", ""}

type Config struct {
	DataDirs          []string      `yaml:"data_dirs"`
	LogLevel          string        `yaml:"log_level"`
	LogFile           string        `yaml:"log_file"`
	LoginDelay        time.Duration `yaml:"login_delay"`
	BestWorkThreshold float64       `yaml:"best_work_threshold"`
	Persist           bool          `yaml:"persist"`
	Watch             bool          `yaml:"watch"`
	Window            Window        `yaml:"window"`
}

type Window struct {
	Width  float32 `yaml:"width"`
	Height float32 `yaml:"height"`
}

// Error is a configuration error tagged with a stable code.
type Error struct {
	Code string
	Path string
	Err  error
}

func (e *Error) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("%s: %v", e.Code, e.Err)
	}
	return fmt.Sprintf("%s (%s): %v", e.Code, e.Path, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

// Code extracts the code of a config error, or "" for anything else.
func Code(err error) string {
	var ce *Error
	if errors.As(err, &ce) {
		return ce.Code
	}
	return ""
}

func Default() Config {
	return Config{
		DataDirs:          append([]string(nil), DefaultDataDirs...),
		LogLevel:          "info",
		LoginDelay:        DefaultLoginDelay,
		BestWorkThreshold: DefaultBestWorkThreshold,
		Window:            Window{Width: DefaultWindowWidth, Height: DefaultWindowHeight},
	}
}

// Load reads path on top of the defaults. An empty path means DefaultFileName,
// which may be absent; an explicit path must exist.
func Load(path string) (Config, error) {
	cfg := Default()

	explicit := path != ""
	if !explicit {
		path = DefaultFileName
	}

	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return Config{}, &Error{Code: ErrCodeInvalid, Path: path, Err: err}
		}
	case errors.Is(err, os.ErrNotExist) && !explicit:
	case errors.Is(err, os.ErrNotExist):
		return Config{}, &Error{Code: ErrCodeNotFound, Path: path, Err: err}
	default:
		return Config{}, &Error{Code: ErrCodeInvalid, Path: path, Err: err}
	}

	cfg.applyEnv(os.Getenv)
	if err := cfg.validate(); err != nil {
		return Config{}, &Error{Code: ErrCodeInvalid, Path: path, Err: err}
	}
	return cfg, nil
}

func (c *Config) applyEnv(getenv func(string) string) {
	if dir := strings.TrimSpace(getenv("MOVIEMANAGER_DATA_DIR")); dir != "" {
		c.DataDirs = []string{dir}
	}
	if lvl := getenv("LOG_LEVEL"); lvl != "" {
		c.LogLevel = lvl
	} else if getenv("DEBUG") == "1" {
		c.LogLevel = "debug"
	}
}

func (c *Config) validate() error {
	if len(c.DataDirs) == 0 {
		return errors.New("data_dirs must not be empty")
	}
	if c.LoginDelay < 0 {
		return fmt.Errorf("login_delay must not be negative, got %s", c.LoginDelay)
	}
	if c.BestWorkThreshold < 1 || c.BestWorkThreshold > 10 {
		return fmt.Errorf("best_work_threshold must be within 1..10, got %v", c.BestWorkThreshold)
	}
	// a reload replaces the catalog with the files, so unsaved edits would vanish
	if c.Watch && !c.Persist {
		return errors.New("watch requires persist")
	}
	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		c.Window = Window{Width: DefaultWindowWidth, Height: DefaultWindowHeight}
	}
	return nil
}
