// Package hours evaluates facility operating windows such as "08:00-20:00",
// overnight spans like "18:00-02:00" and always-open notations.
package hours

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

const (
	minutesPerDay = 24 * 60
	lastMinute    = minutesPerDay - 1
)

// ErrMalformed is returned by Parse for specifications that cannot be read
var ErrMalformed = errors.New("malformed operating hours")

var alwaysOpenTokens = map[string]struct{}{
	"24/7":          {},
	"24x7":          {},
	"always open":   {},
	"open 24 hours": {},
	"24 hours":      {},
}

// Window is a parsed daily operating window. Open and Close are minutes since
// midnight; Close is 1440 when the facility closes at midnight.
type Window struct {
	Open       int
	Close      int
	AlwaysOpen bool
}

// AlwaysOpenWindow returns a window that is open at every minute of the day
func AlwaysOpenWindow() Window {
	return Window{Open: 0, Close: minutesPerDay, AlwaysOpen: true}
}

// Parse reads an operating hours specification.
func Parse(spec string) (Window, error) {
	normalized := strings.ToLower(strings.TrimSpace(spec))
	if _, ok := alwaysOpenTokens[normalized]; ok {
		return AlwaysOpenWindow(), nil
	}

	parts := strings.Split(normalized, "-")
	if len(parts) != 2 {
		return Window{}, fmt.Errorf("%w: %q: expected HH:MM-HH:MM", ErrMalformed, spec)
	}

	open, err := parseClock(parts[0])
	if err != nil {
		return Window{}, fmt.Errorf("%w: %q: opening time: %v", ErrMalformed, spec, err)
	}
	closing, err := parseClock(parts[1])
	if err != nil {
		return Window{}, fmt.Errorf("%w: %q: closing time: %v", ErrMalformed, spec, err)
	}

	if open == 0 && closing == lastMinute {
		return AlwaysOpenWindow(), nil
	}

	// Closing at 00:00 means the end of the same logical day.
	if closing == 0 {
		closing = minutesPerDay
	}

	return Window{Open: open, Close: closing}, nil
}

func parseClock(value string) (int, error) {
	value = strings.TrimSpace(value)
	hh, mm, found := strings.Cut(value, ":")
	if !found {
		return 0, fmt.Errorf("missing ':' in %q", value)
	}
	if len(hh) == 0 || len(hh) > 2 || len(mm) != 2 {
		return 0, fmt.Errorf("%q is not HH:MM", value)
	}

	hour, err := strconv.Atoi(hh)
	if err != nil || hour < 0 || hour > 23 {
		return 0, fmt.Errorf("hour out of range in %q", value)
	}
	minute, err := strconv.Atoi(mm)
	if err != nil || minute < 0 || minute > 59 {
		return 0, fmt.Errorf("minute out of range in %q", value)
	}

	return hour*60 + minute, nil
}

// Overnight reports whether the window closes on the following day
func (w Window) Overnight() bool {
	return !w.AlwaysOpen && w.Close <= w.Open
}

// IsOpenAt reports whether the window is open at t, using t's own location.
// Opening minute counts as open; closing minute counts as closed.
func (w Window) IsOpenAt(t time.Time) bool {
	if w.AlwaysOpen {
		return true
	}

	current := t.Hour()*60 + t.Minute()
	if w.Overnight() {
		return current >= w.Open || current < w.Close
	}
	return current >= w.Open && current < w.Close
}

// String renders the window in canonical form
func (w Window) String() string {
	if w.AlwaysOpen {
		return "24/7"
	}
	return fmt.Sprintf("%s-%s", formatClock(w.Open), formatClock(w.Close%minutesPerDay))
}

func formatClock(minutes int) string {
	return fmt.Sprintf("%02d:%02d", minutes/60, minutes%60)
}

// IsOpen evaluates spec at t. Specifications that fail to parse are treated
// as closed.
func IsOpen(spec string, t time.Time) bool {
	w, err := Parse(spec)
	if err != nil {
		return false
	}
	return w.IsOpenAt(t)
}

// Validate returns the parse error for spec, if any
func Validate(spec string) error {
	_, err := Parse(spec)
	return err
}
