package availability

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

const (
	MinutesPerDay = 24 * 60
	// MinimumOccupancy is the duration assumed for a request whose end is
	// not known yet.
	MinimumOccupancy = 60
)

var ErrInvalidClock = errors.New("invalid time of day, expected HH:MM")

// Window is a half-open interval [Start, End) in minutes since midnight.
type Window struct {
	Start int `json:"start"`
	End   int `json:"end"`
}

// Overlaps is the three-way overlap test used for every busy check.
func Overlaps(a, b Window) bool {
	return (a.Start >= b.Start && a.Start < b.End) ||
		(b.Start >= a.Start && b.Start < a.End) ||
		(a.Start < b.Start && a.End > b.Start)
}

func (w Window) String() string {
	return FormatClock(w.Start) + "-" + FormatClock(w.End)
}

// ParseClock converts "HH:MM" (seconds allowed and ignored) to minutes.
func ParseClock(s string) (int, error) {
	parts := strings.Split(strings.TrimSpace(s), ":")
	if len(parts) < 2 || len(parts) > 3 {
		return 0, ErrInvalidClock
	}
	h, err := strconv.Atoi(parts[0])
	if err != nil || h < 0 || h > 24 {
		return 0, ErrInvalidClock
	}
	m, err := strconv.Atoi(parts[1])
	if err != nil || m < 0 || m > 59 {
		return 0, ErrInvalidClock
	}
	if h == 24 && m != 0 {
		return 0, ErrInvalidClock
	}
	return h*60 + m, nil
}

// FormatClock renders minutes as HH:MM; end of day is "24:00".
func FormatClock(minutes int) string {
	return fmt.Sprintf("%02d:%02d", minutes/60, minutes%60)
}

// NewRequestWindow builds the window of the request being evaluated. It
// spans at least MinimumOccupancy minutes, longer when end is given and
// later.
func NewRequestWindow(start, end string) (Window, error) {
	s, err := ParseClock(start)
	if err != nil {
		return Window{}, err
	}
	w := Window{Start: s, End: s + MinimumOccupancy}
	if strings.TrimSpace(end) != "" {
		e, err := ParseClock(end)
		if err != nil {
			return Window{}, err
		}
		if e > w.End {
			w.End = e
		}
	}
	if w.End > MinutesPerDay {
		w.End = MinutesPerDay
	}
	return w, nil
}
