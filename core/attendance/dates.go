package attendance

import (
	"strconv"
	"strings"
	"time"

	"github.com/pkg/errors"
)

var (
	NowFunc = time.Now // mockable

	errBadRecordDate = errors.New("unparsable record date")
)

const dateKeyLayout = "2006-01-02"

// DateKey formats a date as its YYYY-MM-DD matching key.
func DateKey(t time.Time) string {
	return t.Format(dateKeyLayout)
}

// ParseRecordDate parses the portal's record date strings. The contract is
// "DD/MM/YYYY" (day first, not ISO) before any parenthesized time-range
// suffix; everything from the first " (" on is discarded. All call sites
// go through here so the format is documented exactly once.
func ParseRecordDate(s string) (time.Time, error) {
	datePart := s
	if i := strings.Index(s, " ("); i >= 0 {
		datePart = s[:i]
	}
	parts := strings.Split(strings.TrimSpace(datePart), "/")
	if len(parts) != 3 {
		return time.Time{}, errors.Wrap(errBadRecordDate, s)
	}

	day, err := strconv.Atoi(parts[0])
	if err != nil {
		return time.Time{}, errors.Wrap(errBadRecordDate, s)
	}
	month, err := strconv.Atoi(parts[1])
	if err != nil {
		return time.Time{}, errors.Wrap(errBadRecordDate, s)
	}
	year, err := strconv.Atoi(parts[2])
	if err != nil {
		return time.Time{}, errors.Wrap(errBadRecordDate, s)
	}

	return time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC), nil
}

// truncateToDay drops the time-of-day component; the engine computes at
// calendar-day granularity only.
func truncateToDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
