package logging

import (
	"fmt"
	"io"
	"log"
	"os"
	"time"
)

// Logger provides leveled logging for the scraping pipeline. The HTTP layer
// keeps using the standard logger; the pipeline logs enough per-listing
// detail that levels pay for themselves.
type Logger struct {
	info *log.Logger
	warn *log.Logger
	err  *log.Logger
}

// New creates a Logger writing to stdout/stderr.
func New() *Logger {
	return NewWithWriters(os.Stdout, os.Stderr)
}

// NewWithWriters creates a Logger with explicit sinks, used by tests.
func NewWithWriters(out, errOut io.Writer) *Logger {
	return &Logger{
		info: log.New(out, "", 0),
		warn: log.New(out, "", 0),
		err:  log.New(errOut, "", 0),
	}
}

func timestamp() string {
	return time.Now().Format("2006-01-02 15:04:05")
}

func (l *Logger) Info(format string, args ...any) {
	l.info.Printf(fmt.Sprintf("[%s] INFO  %s", timestamp(), format), args...)
}

func (l *Logger) Warn(format string, args ...any) {
	l.warn.Printf(fmt.Sprintf("[%s] WARN  %s", timestamp(), format), args...)
}

func (l *Logger) Error(format string, args ...any) {
	l.err.Printf(fmt.Sprintf("[%s] ERROR %s", timestamp(), format), args...)
}
