// Package logger provides the leveled console logger used by the snapdoc
// CLI. Output is prefixed with [HH:MM:SS] timestamps; colors are enabled
// automatically when writing to a terminal.
package logger

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
)

// Level ordering for filtering.
const (
	levelTrace = iota
	levelDebug
	levelInfo
	levelWarn
	levelError
)

var levelNames = map[string]int{
	"trace": levelTrace,
	"debug": levelDebug,
	"info":  levelInfo,
	"warn":  levelWarn,
	"error": levelError,
}

// Console logs to a writer with timestamps and level filtering. Safe for
// concurrent use.
type Console struct {
	writer   io.Writer
	minLevel int
	mu       sync.Mutex
	colored  bool

	warnColor  *color.Color
	errorColor *color.Color
	debugColor *color.Color
}

// NewConsole creates a Console writing to w at the given minimum level.
// Unknown or empty levels default to "info". Color output is enabled when w
// is a TTY and NO_COLOR is not set.
func NewConsole(w io.Writer, level string) *Console {
	lvl, ok := levelNames[strings.ToLower(strings.TrimSpace(level))]
	if !ok {
		lvl = levelInfo
	}

	return &Console{
		writer:     w,
		minLevel:   lvl,
		colored:    isTerminal(w),
		warnColor:  color.New(color.FgYellow),
		errorColor: color.New(color.FgRed),
		debugColor: color.New(color.FgHiBlack),
	}
}

// isTerminal reports whether w is a TTY that supports color.
func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	if color.NoColor {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// Tracef logs at trace level.
func (c *Console) Tracef(format string, args ...interface{}) {
	c.logf(levelTrace, c.debugColor, format, args...)
}

// Debugf logs at debug level.
func (c *Console) Debugf(format string, args ...interface{}) {
	c.logf(levelDebug, c.debugColor, format, args...)
}

// Infof logs at info level.
func (c *Console) Infof(format string, args ...interface{}) {
	c.logf(levelInfo, nil, format, args...)
}

// Warnf logs at warn level.
func (c *Console) Warnf(format string, args ...interface{}) {
	c.logf(levelWarn, c.warnColor, format, args...)
}

// Errorf logs at error level.
func (c *Console) Errorf(format string, args ...interface{}) {
	c.logf(levelError, c.errorColor, format, args...)
}

func (c *Console) logf(level int, col *color.Color, format string, args ...interface{}) {
	if c == nil || c.writer == nil || level < c.minLevel {
		return
	}

	msg := fmt.Sprintf(format, args...)
	if c.colored && col != nil {
		msg = col.Sprint(msg)
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	fmt.Fprintf(c.writer, "[%s] %s\n", time.Now().Format("15:04:05"), msg)
}
