// Package log provides the build loggers.
package log

import (
	"bytes"
	"fmt"
	"io"
	golog "log"
	"os"

	"github.com/mattn/go-isatty"
	jww "github.com/spf13/jwalterweatherman"
	"go.uber.org/atomic"
)

// Logger writes leveled build messages and counts warnings and errors.
type Logger struct {
	np *jww.Notepad

	warnings *atomic.Uint64
	errors   *atomic.Uint64
}

// New creates a Logger writing to out. Info and process messages are only
// shown when verbose is set.
func New(out io.Writer, verbose bool) *Logger {
	threshold := jww.LevelWarn
	if verbose {
		threshold = jww.LevelInfo
	}

	flags := 0
	if isTerminal(out) {
		flags = golog.Ltime
		out = colorWriter{w: out}
	}

	return &Logger{
		np:       jww.NewNotepad(threshold, jww.LevelTrace, out, io.Discard, "", flags),
		warnings: atomic.NewUint64(0),
		errors:   atomic.NewUint64(0),
	}
}

// NewDiscard returns a Logger that writes nothing but still counts.
func NewDiscard() *Logger {
	return New(io.Discard, false)
}

const colorReset = "\033[0m"

var levelColors = []struct {
	label []byte
	color string
}{
	{[]byte("ERROR "), "\033[1;31m"},
	{[]byte("WARN "), "\033[0;33m"},
	{[]byte("INFO "), "\033[0;36m"},
}

// colorWriter colours the level label that starts each log line.
type colorWriter struct {
	w io.Writer
}

func (c colorWriter) Write(p []byte) (int, error) {
	for _, lc := range levelColors {
		if !bytes.HasPrefix(p, lc.label) {
			continue
		}
		n := len(lc.label) - 1
		line := make([]byte, 0, len(p)+len(lc.color)+len(colorReset))
		line = append(line, lc.color...)
		line = append(line, p[:n]...)
		line = append(line, colorReset...)
		line = append(line, p[n:]...)
		if _, err := c.w.Write(line); err != nil {
			return 0, err
		}
		return len(p), nil
	}
	return c.w.Write(p)
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// Process logs one step of the build pipeline.
func (l *Logger) Process(step, msg string) {
	l.np.INFO.Printf("%s: %s", step, msg)
}

func (l *Logger) Infof(format string, v ...any) {
	l.np.INFO.Printf(format, v...)
}

func (l *Logger) Warnf(format string, v ...any) {
	l.warnings.Inc()
	l.np.WARN.Printf(format, v...)
}

func (l *Logger) Errorf(format string, v ...any) {
	l.errors.Inc()
	l.np.ERROR.Printf(format, v...)
}

// Warnings returns the number of warnings logged so far.
func (l *Logger) Warnings() uint64 {
	return l.warnings.Load()
}

// Errors returns the number of errors logged so far.
func (l *Logger) Errors() uint64 {
	return l.errors.Load()
}

// Reset zeroes the counters, e.g. before a rebuild.
func (l *Logger) Reset() {
	l.warnings.Store(0)
	l.errors.Store(0)
}

func (l *Logger) String() string {
	return fmt.Sprintf("Logger(warnings=%d, errors=%d)", l.Warnings(), l.Errors())
}

var std = New(os.Stdout, false)

// SetDefault replaces the package level logger.
func SetDefault(l *Logger) {
	std = l
}

// Default returns the package level logger.
func Default() *Logger {
	return std
}

// Process logs a build step on the package level logger.
func Process(step, msg string) {
	std.Process(step, msg)
}

func Warnf(format string, v ...any) {
	std.Warnf(format, v...)
}
