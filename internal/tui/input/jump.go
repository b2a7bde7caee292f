package input

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/javiermolinar/fleetdesk/internal/dateutil"
)

// ErrEmptyJump is returned when a jump target is blank.
var ErrEmptyJump = errors.New("empty date")

// ParseJump resolves a jump target relative to from, the first day of the
// window currently shown. It accepts "+N"/"-N" day offsets, an absolute
// YYYY-MM-DD date (past dates included) and the relative forms understood by
// dateutil.ParseRelativeDate, which resolve against today.
func ParseJump(s string, from, today time.Time) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, ErrEmptyJump
	}

	if s[0] == '+' || s[0] == '-' {
		n, err := strconv.Atoi(s[1:])
		if err != nil {
			return time.Time{}, fmt.Errorf("invalid day offset %q", s)
		}
		if s[0] == '-' {
			n = -n
		}
		return dateutil.Today(from).AddDate(0, 0, n), nil
	}

	if t, err := time.Parse(dateutil.DateLayout, s); err == nil {
		return t, nil
	}

	t, err := dateutil.ParseRelativeDate(s, dateutil.Today(today))
	if err != nil {
		return time.Time{}, err
	}
	return dateutil.Today(t), nil
}

// ParseDays parses a window length for /days. It must be 1..366.
func ParseDays(s string) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || n < 1 || n > 366 {
		return 0, fmt.Errorf("days must be between 1 and 366, got %q", s)
	}
	return n, nil
}
