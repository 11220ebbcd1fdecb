package pricing

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ErrBadWindow is wrapped by ValidateWindow errors so callers can
// detect a malformed rule window without string matching.
var ErrBadWindow = errors.New("invalid time window")

// ValidateWindow checks that start and end are zero-padded "HH:MM"
// wall-clock strings with start < end.  Windows never wrap across
// midnight; a rule covering a late-night period must be split into two
// rules.  Owner handlers call this before persisting a rule.
func ValidateWindow(start, end string) error {
	if err := validateHHMM(start); err != nil {
		return fmt.Errorf("%w: start %q: %v", ErrBadWindow, start, err)
	}
	if err := validateHHMM(end); err != nil {
		return fmt.Errorf("%w: end %q: %v", ErrBadWindow, end, err)
	}
	if start >= end {
		return fmt.Errorf("%w: start %q must be before end %q", ErrBadWindow, start, end)
	}
	return nil
}

func validateHHMM(s string) error {
	parts := strings.SplitN(s, ":", 2)
	if len(parts) != 2 || len(parts[0]) != 2 || len(parts[1]) != 2 {
		return errors.New("want HH:MM")
	}
	h, err := strconv.Atoi(parts[0])
	if err != nil || h < 0 || h > 23 {
		return errors.New("hour out of range")
	}
	m, err := strconv.Atoi(parts[1])
	if err != nil || m < 0 || m > 59 {
		return errors.New("minute out of range")
	}
	return nil
}
