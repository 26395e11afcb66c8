// Package console models the operator-facing log: severity levels, message
// sources, per-console filters and the bounded text buffer each console
// session keeps.
package console

import (
	"fmt"
	"strings"
	"time"
	"unicode/utf8"
)

// MaxLength caps a console buffer in characters.
const MaxLength = 5000

// Level is a log severity. Levels are ordered Debug < Info < Warn < Error.
type Level int

const (
	Debug Level = iota + 1
	Info
	Warn
	Error
)

// Levels lists every level in ascending order.
var Levels = []Level{Debug, Info, Warn, Error}

// String returns the single-letter code used in log lines and settings.
func (l Level) String() string {
	switch l {
	case Debug:
		return "D"
	case Info:
		return "I"
	case Warn:
		return "W"
	case Error:
		return "E"
	default:
		return "?"
	}
}

// Label returns a human readable level name.
func (l Level) Label() string {
	switch l {
	case Debug:
		return "Debug"
	case Info:
		return "Info"
	case Warn:
		return "Warn"
	case Error:
		return "Error"
	default:
		return "Unknown"
	}
}

// Valid reports whether l is one of the four known levels.
func (l Level) Valid() bool {
	return l >= Debug && l <= Error
}

// ParseLevel accepts the single-letter code or the full name.
func ParseLevel(s string) (Level, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "D", "DEBUG":
		return Debug, nil
	case "I", "INFO":
		return Info, nil
	case "W", "WARN":
		return Warn, nil
	case "E", "ERROR":
		return Error, nil
	}
	return 0, fmt.Errorf("unknown log level %q", s)
}

// Source identifies where a log message originated.
type Source string

const (
	Client Source = "client"
	Server Source = "server"
	Switch Source = "switch"
)

// Sources lists every source in display order.
var Sources = []Source{Client, Server, Switch}

// Valid reports whether s is a known source.
func (s Source) Valid() bool {
	switch s {
	case Client, Server, Switch:
		return true
	}
	return false
}

// Filter decides which messages a console shows.
type Filter struct {
	MinLevel Level
	Enabled  map[Source]bool
}

// DefaultFilter shows Info and above from every source.
func DefaultFilter() Filter {
	return Filter{
		MinLevel: Info,
		Enabled: map[Source]bool{
			Client: true,
			Server: true,
			Switch: true,
		},
	}
}

// Clone returns a deep copy of f.
func (f Filter) Clone() Filter {
	enabled := make(map[Source]bool, len(f.Enabled))
	for k, v := range f.Enabled {
		enabled[k] = v
	}
	return Filter{MinLevel: f.MinLevel, Enabled: enabled}
}

// Accepts reports whether a message passes the filter: its source must be
// enabled and its level at least the minimum.
func (f Filter) Accepts(level Level, source Source) bool {
	if !f.Enabled[source] {
		return false
	}
	return level >= f.MinLevel
}

// FormatLine renders one log line including the trailing newline.
func FormatLine(now time.Time, level Level, source Source, text string) string {
	return fmt.Sprintf("[%s][%s][%s] %s\n", now.Format("15:04:05"), level, source, text)
}

// Append adds line to buffer, dropping the oldest characters so the result
// never exceeds MaxLength.
func Append(buffer, line string) string {
	if len(line) >= MaxLength {
		return trimFront(line, len(line)-MaxLength)
	}
	if len(buffer)+len(line) > MaxLength {
		buffer = trimFront(buffer, len(buffer)+len(line)-MaxLength)
	}
	return buffer + line
}

// trimFront drops at least n bytes from the front of s, moving the cut
// forward to the next rune boundary.
func trimFront(s string, n int) string {
	for n < len(s) && !utf8.RuneStart(s[n]) {
		n++
	}
	return s[n:]
}
