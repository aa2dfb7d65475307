package attendance

import (
	"sort"
	"strings"
)

// presenceFields lists the portal's presence markers in lookup priority:
// the first non-empty field wins. Endpoint versions disagree on the field
// name, so the order is declared here (and pinned by a test) rather than
// spread over chained conditionals.
var presenceFields = []struct {
	name  string
	value func(RawRecord) string
}{
	{"present", func(r RawRecord) string { return r.Present }},
	{"attendance", func(r RawRecord) string { return r.Attendance }},
}

// isPresent resolves a record's presence marker. Only the literal
// "Present" / "P" count as present; anything else, including an empty
// marker, is absent; historical records have no unknown state.
func (r RawRecord) isPresent() bool {
	for _, fld := range presenceFields {
		if v := strings.TrimSpace(fld.value(r)); v != "" {
			return v == "Present" || v == "P"
		}
	}
	return false
}

// NormalizeHistory converts raw portal records into past sessions sorted
// ascending by date. Records whose date cannot be parsed are dropped
// silently: the portal is known to serve partial rows mid-semester, and a
// single bad row must not fail the whole history.
func NormalizeHistory(records []RawRecord) []Session {
	sessions := make([]Session, 0, len(records))
	for _, rec := range records {
		d, err := ParseRecordDate(rec.DateTime)
		if err != nil {
			continue
		}
		status := StatusAbsent
		if rec.isPresent() {
			status = StatusPresent
		}
		sessions = append(sessions, Session{
			Date:    d,
			DateKey: DateKey(d),
			Status:  status,
			Origin:  OriginPast,
		})
	}
	// stable: same-day classes keep their source order (the discarded
	// time-range suffix is not a sort key; final percentages are unaffected)
	sort.SliceStable(sessions, func(i, j int) bool {
		return sessions[i].Date.Before(sessions[j].Date)
	})
	return sessions
}
