package logger

import (
	"fmt"
	"os"
	"time"

	"github.com/rs/zerolog"
)

// Config controls the process-wide logger.
type Config struct {
	Level  string `yaml:"level"`
	Pretty bool   `yaml:"pretty"`
}

var global = zerolog.New(os.Stderr).With().Timestamp().Logger()

// InitGlobalLogger replaces the default logger with one built from cfg.
// Safe to call once at startup, before any goroutines log.
func InitGlobalLogger(cfg *Config) {
	level, err := zerolog.ParseLevel(cfg.Level)
	if err != nil || cfg.Level == "" {
		level = zerolog.InfoLevel
	}

	var logger zerolog.Logger
	if cfg.Pretty {
		logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})
	} else {
		logger = zerolog.New(os.Stderr)
	}

	global = logger.Level(level).With().Timestamp().Logger()
}

func Debug(msg string, kv ...any) {
	withFields(global.Debug(), kv).Msg(msg)
}

func Info(msg string, kv ...any) {
	withFields(global.Info(), kv).Msg(msg)
}

func Warn(msg string, kv ...any) {
	withFields(global.Warn(), kv).Msg(msg)
}

func Error(msg string, kv ...any) {
	withFields(global.Error(), kv).Msg(msg)
}

// withFields attaches alternating key/value pairs. A trailing key without a
// value is logged as-is so a bad call site still leaves a trace.
func withFields(e *zerolog.Event, kv []any) *zerolog.Event {
	for i := 0; i+1 < len(kv); i += 2 {
		key, ok := kv[i].(string)
		if !ok {
			key = fmt.Sprint(kv[i])
		}
		e = e.Interface(key, kv[i+1])
	}
	if len(kv)%2 != 0 {
		e = e.Interface("arg", kv[len(kv)-1])
	}

	return e
}
