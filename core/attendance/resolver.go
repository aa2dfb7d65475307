package attendance

import "time"

// ResolveSlots turns generated future slots into projected sessions by
// applying event blocks first, then overrides. The phase order is a
// correctness contract, not an implementation detail: a date inside an
// event block can never be brought back by an override.
func ResolveSlots(slots []FutureSlot, events []EventBlock, overrides OverrideMap) []Session {
	sessions := make([]Session, 0, len(slots))
	for _, slot := range slots {
		if inAnyEvent(slot.Date, events) {
			continue
		}

		status := slot.Status
		if ovr, ok := overrides[slot.SlotID]; ok {
			if ovr == StatusCancelled {
				// removed entirely: cancelled classes count toward
				// neither numerator nor denominator
				continue
			}
			status = ovr
		}

		sessions = append(sessions, Session{
			Date:    slot.Date,
			DateKey: slot.DateKey,
			Status:  status,
			Origin:  OriginProjected,
		})
	}
	return sessions
}

func inAnyEvent(d time.Time, events []EventBlock) bool {
	for _, ev := range events {
		if ev.Contains(d) {
			return true
		}
	}
	return false
}
