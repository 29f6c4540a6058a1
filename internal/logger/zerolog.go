package logger

import (
	"io"
	"time"

	"github.com/rs/zerolog"
)

// ZerologAdapter implements Logger on top of zerolog.
type ZerologAdapter struct {
	logger zerolog.Logger
}

func newAdapter(w io.Writer, level zerolog.Level) *ZerologAdapter {
	return &ZerologAdapter{logger: zerolog.New(w).Level(level).With().Timestamp().Logger()}
}

func (z *ZerologAdapter) Debug(component, message string, fields map[string]interface{}) {
	write(z.logger.Debug(), component, fields).Msg(message)
}

func (z *ZerologAdapter) Info(component, message string, fields map[string]interface{}) {
	write(z.logger.Info(), component, fields).Msg(message)
}

func (z *ZerologAdapter) Warning(component, message string, fields map[string]interface{}) {
	write(z.logger.Warn(), component, fields).Msg(message)
}

func (z *ZerologAdapter) Error(component, message string, err error, fields map[string]interface{}) {
	write(z.logger.Error().Err(err), component, fields).Msg(message)
}

// write attaches the component and fields, picking zerolog's typed writer
// for the value kinds the application logs.
func write(e *zerolog.Event, component string, fields map[string]interface{}) *zerolog.Event {
	e = e.Str("component", component)
	for k, v := range fields {
		switch val := v.(type) {
		case string:
			e = e.Str(k, val)
		case int:
			e = e.Int(k, val)
		case int64:
			e = e.Int64(k, val)
		case uint64:
			e = e.Uint64(k, val)
		case float64:
			e = e.Float64(k, val)
		case bool:
			e = e.Bool(k, val)
		case time.Duration:
			e = e.Dur(k, val)
		case error:
			e = e.AnErr(k, val)
		default:
			e = e.Interface(k, val)
		}
	}
	return e
}
