package logger

import (
	"io"
	"os"
	"strings"

	"github.com/rs/zerolog"
)

type LogLevel int

const (
	DebugLevel LogLevel = iota
	InfoLevel
	WarnLevel
	ErrorLevel
)

// Logger is the structured logger every component receives. The component
// argument names the subsystem that produced the entry.
type Logger interface {
	Debug(component, message string, fields map[string]interface{})
	Info(component, message string, fields map[string]interface{})
	Warning(component, message string, fields map[string]interface{})
	Error(component, message string, err error, fields map[string]interface{})
}

// ParseLevel maps a textual level to a LogLevel. Unknown values fall back to InfoLevel.
func ParseLevel(s string) LogLevel {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return DebugLevel
	case "warn", "warning":
		return WarnLevel
	case "error":
		return ErrorLevel
	default:
		return InfoLevel
	}
}

func (l LogLevel) String() string {
	switch l {
	case DebugLevel:
		return "debug"
	case WarnLevel:
		return "warn"
	case ErrorLevel:
		return "error"
	default:
		return "info"
	}
}

func (l LogLevel) zerolog() zerolog.Level {
	switch l {
	case DebugLevel:
		return zerolog.DebugLevel
	case WarnLevel:
		return zerolog.WarnLevel
	case ErrorLevel:
		return zerolog.ErrorLevel
	default:
		return zerolog.InfoLevel
	}
}

// New builds the application logger. Console output always goes to stdout;
// when extra is non-nil entries are also written there as JSON lines.
func New(level LogLevel, extra io.Writer) *ZerologAdapter {
	var out io.Writer = zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: "15:04:05"}
	if extra != nil {
		out = zerolog.MultiLevelWriter(out, extra)
	}
	return newAdapter(out, level.zerolog())
}

// NoOp discards everything. Used by tests and by components built without a logger.
type NoOp struct{}

func (NoOp) Debug(string, string, map[string]interface{})        {}
func (NoOp) Info(string, string, map[string]interface{})         {}
func (NoOp) Warning(string, string, map[string]interface{})      {}
func (NoOp) Error(string, string, error, map[string]interface{}) {}
