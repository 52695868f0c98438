package logger

import (
	"fmt"
	"io"
	"log"
	"strings"

	"github.com/pkg/errors"
)

type Level int

const (
	LevelTrace Level = iota
	LevelInfo
	LevelWarn
	LevelError
	LevelOff
)

func (l Level) String() string {
	switch l {
	case LevelTrace:
		return "trace"
	case LevelInfo:
		return "info"
	case LevelWarn:
		return "warn"
	case LevelError:
		return "error"
	case LevelOff:
		return "off"
	default:
		return "unknown"
	}
}

func ParseLevel(s string) (Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "trace", "debug":
		return LevelTrace, nil
	case "info", "log":
		return LevelInfo, nil
	case "warn", "warning":
		return LevelWarn, nil
	case "error", "err":
		return LevelError, nil
	case "off", "none":
		return LevelOff, nil
	}
	return LevelOff, errors.Errorf("unknown log level %q", s)
}

// Sink is a destination that receives every line at or above Level.
type Sink struct {
	Writer io.Writer
	Level  Level
}

type Logger struct {
	log   *log.Logger
	warn  *log.Logger
	err   *log.Logger
	trace *log.Logger
}

func New(prefix string, sinks ...Sink) Logger {
	return Logger{
		log:   log.New(sinkWriter(LevelInfo, sinks), "["+prefix+"] ", log.Ldate|log.Ltime),
		warn:  log.New(sinkWriter(LevelWarn, sinks), "["+prefix+" WARN] ", log.Ldate|log.Ltime|log.Lshortfile),
		err:   log.New(sinkWriter(LevelError, sinks), "["+prefix+" ERR] ", log.Ldate|log.Ltime|log.Lshortfile),
		trace: log.New(sinkWriter(LevelTrace, sinks), "["+prefix+" TRACE] ", log.Ldate|log.Ltime|log.Lshortfile),
	}
}

// Discard returns a logger that drops everything.
func Discard() Logger {
	return New("")
}

func sinkWriter(level Level, sinks []Sink) io.Writer {
	writers := make([]io.Writer, 0, len(sinks))
	for _, s := range sinks {
		if s.Writer != nil && s.Level != LevelOff && s.Level <= level {
			writers = append(writers, s.Writer)
		}
	}
	switch len(writers) {
	case 0:
		return io.Discard
	case 1:
		return writers[0]
	default:
		return io.MultiWriter(writers...)
	}
}

func (l Logger) Log(format string, a ...interface{}) {
	l.log.Output(2, sprintf(format, a...))
}

func (l Logger) Warn(format string, a ...interface{}) {
	l.warn.Output(2, sprintf(format, a...))
}

func (l Logger) Err(err error, format string, a ...interface{}) {
	msg := sprintf(format, a...)
	if err != nil {
		msg += ", " + err.Error()
	}
	l.err.Output(2, msg)
}

func (l Logger) Trace(format string, a ...interface{}) {
	l.trace.Output(2, sprintf(format, a...))
}

func sprintf(format string, a ...interface{}) string {
	if len(a) == 0 {
		return format
	}
	return fmt.Sprintf(format, a...)
}
