// Package attendance implements the attendance trajectory engine: it
// reconciles portal attendance history, the recurring weekly timetable,
// per-slot what-if overrides and calendar event blocks into one ordered
// session sequence, and computes the running attendance percentage at
// every position along with projected summary stats.
//
// Everything in this package is pure and stateless: callers re-run the
// pipeline on every input change and get fresh output values.
package attendance

import "time"

// Status of a single class session.
type Status string

const (
	StatusPresent Status = "present"
	StatusAbsent  Status = "absent"
	// StatusCancelled is only valid as an override value. A cancelled slot
	// is removed before it ever becomes a Session; it counts toward
	// neither the numerator nor the denominator.
	StatusCancelled Status = "cancelled"
)

// Origin separates historical sessions from projected ones.
type Origin string

const (
	OriginPast      Origin = "past"
	OriginProjected Origin = "projected"
)

// RawRecord is one attendance entry exactly as the portal serves it.
// Depending on the endpoint version the presence marker arrives either in
// "present" ("Present"/"Absent") or in "attendance" ("P"/"A").
type RawRecord struct {
	DateTime   string `json:"datetime"` // "DD/MM/YYYY (09:00 AM - 09:50 AM)"
	Present    string `json:"present,omitempty"`
	Attendance string `json:"attendance,omitempty"`
	ClassType  string `json:"classtype,omitempty"` // "L"/"T"/"P", informational
}

// Session is the engine's canonical unit: one concrete class occurrence
// with a resolved present/absent status.
type Session struct {
	Date    time.Time `json:"date"`
	DateKey string    `json:"date_key"` // YYYY-MM-DD, override/event matching key
	Status  Status    `json:"status"`
	Origin  Origin    `json:"origin"`
}

// ScheduleSlot is one recurring weekly timetable entry.
type ScheduleSlot struct {
	Subject   string `json:"subject" validate:"required"`
	StartTime string `json:"start_time" validate:"hhmm"`
	Duration  int    `json:"duration" validate:"gt=0"` // minutes
}

// WeekTemplate maps a weekday name (Monday..Saturday) to that day's
// recurring slots. The same template applies every week of the window.
type WeekTemplate map[string][]ScheduleSlot

// FutureSlot is a date-bound materialization of a ScheduleSlot, prior to
// override resolution.
type FutureSlot struct {
	Date      time.Time `json:"date"`
	DateKey   string    `json:"date_key"`
	SlotID    string    `json:"slot_id"` // dateKey + "_" + startTime
	StartTime string    `json:"start_time"`
	Duration  int       `json:"duration"`
	Status    Status    `json:"status"`
	Origin    Origin    `json:"origin"`
}

// OverrideMap holds user-entered status corrections keyed by SlotID.
// Overrides never apply to past sessions.
type OverrideMap map[string]Status

// EventBlock suppresses all future slots over an inclusive whole-day
// range, regardless of overrides (e.g. institutional holidays).
type EventBlock struct {
	Name      string    `json:"name,omitempty"`
	StartDate time.Time `json:"start_date"`
	EndDate   time.Time `json:"end_date"`
}

// Contains reports whether d falls inside the block, comparing whole days.
func (b EventBlock) Contains(d time.Time) bool {
	key := DateKey(d)
	return DateKey(b.StartDate) <= key && key <= DateKey(b.EndDate)
}

// TrajectoryPoint annotates one merged session with the cumulative
// attendance percentage up to and including it.
type TrajectoryPoint struct {
	Index      int       `json:"index"`
	Percentage float64   `json:"percentage"`
	Origin     Origin    `json:"origin"`
	Date       time.Time `json:"date"`
	DateKey    string    `json:"date_key"`
	Status     Status    `json:"status"`
}

// StatusCounts summarizes present/absent tallies over a session range.
type StatusCounts struct {
	Present    int     `json:"present"`
	Absent     int     `json:"absent"`
	Total      int     `json:"total"`
	Percentage float64 `json:"percentage"`
}

// Stats compares where the student stands today against where the full
// projected sequence lands.
type Stats struct {
	Current   StatusCounts `json:"current"`   // past sessions only
	Projected StatusCounts `json:"projected"` // entire merged sequence
	Delta     float64      `json:"delta"`     // projected - current, not re-rounded
}

// Projection is the engine's composite output. Stats is nil when the
// merged sequence is empty ("insufficient data", a valid state).
type Projection struct {
	Trajectory []TrajectoryPoint `json:"trajectory"`
	TodayIndex int               `json:"today_index"`
	Stats      *Stats            `json:"stats"`
}

// TargetPlan answers "what do my next classes need to look like" against
// a target percentage.
type TargetPlan struct {
	Target           float64 `json:"target"`
	OnTrack          bool    `json:"on_track"`
	Achievable       bool    `json:"achievable"`
	ClassesNeeded    int     `json:"classes_needed"`    // consecutive attends to reach target
	ClassesSkippable int     `json:"classes_skippable"` // consecutive misses that keep target
}
