package attendance

import (
	"strings"
	"time"
)

// MatchesSubject reports whether a timetable slot's subject code refers to
// the target subject. Codes match when either contains the other: portal
// codes carry campus/section qualifiers on either side ("15B11CI514" vs
// "CI514"). Deliberately permissive: "CS1" also matches "CS10"; see the
// generator tests documenting that behavior.
func MatchesSubject(slotCode, target string) bool {
	return strings.Contains(slotCode, target) || strings.Contains(target, slotCode)
}

// GenerateFutureSlots materializes dated slots from the weekly template
// for one subject over the inclusive day range [start, end]. An inverted
// range or a template without matching weekdays yields no slots, not an
// error. Every slot starts out as present; overrides are applied later.
func GenerateFutureSlots(tmpl WeekTemplate, subject string, start, end time.Time) []FutureSlot {
	var slots []FutureSlot
	last := truncateToDay(end)
	for d := truncateToDay(start); !d.After(last); d = d.AddDate(0, 0, 1) {
		daySlots := tmpl[d.Weekday().String()]
		if len(daySlots) == 0 {
			continue
		}
		key := DateKey(d)
		for _, slot := range daySlots {
			if !MatchesSubject(slot.Subject, subject) {
				continue
			}
			slots = append(slots, FutureSlot{
				Date:      d,
				DateKey:   key,
				SlotID:    key + "_" + slot.StartTime,
				StartTime: slot.StartTime,
				Duration:  slot.Duration,
				Status:    StatusPresent,
				Origin:    OriginProjected,
			})
		}
	}
	return slots
}
