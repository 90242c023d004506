package logger

import (
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	"github.com/charmbracelet/log"
)

var (
	mu   sync.RWMutex
	base = log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		TimeFormat:      time.TimeOnly,
		Level:           log.InfoLevel,
	})
)

// Logger provides structured logging across the application
type Logger struct {
	*log.Logger
	component string
}

// New creates a new logger for a specific component. Loggers copy the level
// of the base logger at creation time, so SetLevel must run first.
func New(component string) *Logger {
	mu.RLock()
	defer mu.RUnlock()
	return &Logger{
		Logger:    base.WithPrefix(fmt.Sprintf("%-8s", component)),
		component: component,
	}
}

// WithRun returns a child logger that tags every line with the run id.
func (l *Logger) WithRun(id string) *Logger {
	return &Logger{
		Logger:    l.With("run", id),
		component: l.component,
	}
}

// Component returns the component name the logger was created with
func (l *Logger) Component() string {
	return l.component
}

// SetLevel parses a level name (debug, info, warn, error) and applies it to
// the base logger.
func SetLevel(level string) error {
	lvl, err := log.ParseLevel(level)
	if err != nil {
		return fmt.Errorf("invalid log level %q: %w", level, err)
	}
	mu.Lock()
	base.SetLevel(lvl)
	mu.Unlock()
	return nil
}

// SetOutput redirects the base logger, mostly for tests.
func SetOutput(w io.Writer) {
	mu.Lock()
	base.SetOutput(w)
	mu.Unlock()
}
