package logger

import (
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/wonny/brier-terminal/backend/pkg/config"
)

// service is stamped on every entry so dashboards can split Brier logs from the rest
const service = "brier-terminal"

// Logger carries the zerolog context shared by the API, cron and CLI.
// ⭐ SSOT: Brier 백엔드의 모든 로그는 이 타입을 거친다
type Logger struct {
	zlog zerolog.Logger
}

// New builds the process logger and applies LOG_LEVEL globally.
// LOG_FORMAT=console|pretty switches to human-readable output for the CLI.
func New(cfg *config.Config) *Logger {
	zerolog.SetGlobalLevel(parseLogLevel(cfg.LogLevel))

	switch strings.ToLower(cfg.LogFormat) {
	case "console", "pretty":
		return NewWithWriter(zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.RFC3339}, cfg.Env)
	default:
		return NewWithWriter(os.Stdout, cfg.Env)
	}
}

// NewWithWriter writes JSON entries to w without touching the global level
func NewWithWriter(w io.Writer, env string) *Logger {
	return &Logger{zlog: zerolog.New(w).With().
		Timestamp().
		Str("service", service).
		Str("env", env).
		Logger()}
}

// Nop discards everything
func Nop() *Logger {
	return &Logger{zlog: zerolog.Nop()}
}

// 알 수 없는 값은 info로 취급 (cron 로그가 사라지지 않도록)
func parseLogLevel(levelStr string) zerolog.Level {
	switch strings.ToLower(strings.TrimSpace(levelStr)) {
	case "debug":
		return zerolog.DebugLevel
	case "warn", "warning":
		return zerolog.WarnLevel
	case "error":
		return zerolog.ErrorLevel
	case "fatal":
		return zerolog.FatalLevel
	default:
		return zerolog.InfoLevel
	}
}

func (l *Logger) Debug(msg string) { l.zlog.Debug().Msg(msg) }
func (l *Logger) Info(msg string)  { l.zlog.Info().Msg(msg) }
func (l *Logger) Warn(msg string)  { l.zlog.Warn().Msg(msg) }
func (l *Logger) Error(msg string) { l.zlog.Error().Msg(msg) }

func (l *Logger) derive(ctx zerolog.Context) *Logger {
	return &Logger{zlog: ctx.Logger()}
}

// WithField attaches one key, e.g. wallet or job name
func (l *Logger) WithField(key string, value interface{}) *Logger {
	return l.derive(l.zlog.With().Interface(key, value))
}

// WithFields attaches several keys at once
func (l *Logger) WithFields(fields map[string]interface{}) *Logger {
	return l.derive(l.zlog.With().Fields(fields))
}

func (l *Logger) WithError(err error) *Logger {
	return l.derive(l.zlog.With().Err(err))
}

// WithComponent tags entries with the emitting layer ("cron", "api", "store", "whales")
func (l *Logger) WithComponent(name string) *Logger {
	return l.derive(l.zlog.With().Str("component", name))
}
