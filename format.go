package gitredate

import (
	"fmt"
	"time"
)

// DefaultOffset is the fixed utc offset applied to generated timestamps when
// none is configured.
const DefaultOffset = "-0300"

// gitDateLayout is git's default date format, day of month without a leading
// zero: Thu Aug 28 18:41:07 2025 -0300
const gitDateLayout = "Mon Jan 2 15:04:05 2006 -0700"

// ParseOffset converts a ±HHMM utc offset string into a fixed [time.Location].
func ParseOffset(str string) (*time.Location, error) {
	t, err := time.Parse("-0700", str)
	if err != nil {
		return nil, fmt.Errorf("invalid utc offset %s: %w", str, err)
	}

	_, seconds := t.Zone()

	return time.FixedZone(str, seconds), nil
}

// FormatGitDate formats t in git's default date format. The offset comes from
// t's own location, so times generated in a fixed zone carry that zone on the
// wire.
func FormatGitDate(t time.Time) string {
	return t.Format(gitDateLayout)
}
