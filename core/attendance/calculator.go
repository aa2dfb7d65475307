package attendance

import (
	"math"
	"sort"
)

// Percentage returns present/total as a percentage rounded to one decimal
// place (scale by 1000, round, divide by 10). Zero total yields 0.
func Percentage(present, total int) float64 {
	if total == 0 {
		return 0
	}
	return math.Round(float64(present)/float64(total)*1000) / 10
}

// BuildTrajectory merges past and projected sessions chronologically and
// computes the running attendance percentage at each position. The first
// session necessarily lands on 100 or 0; that is expected, not a defect.
//
// It never fails: an empty merged sequence yields an empty trajectory,
// TodayIndex 0 and nil Stats ("insufficient data").
func BuildTrajectory(past, future []Session) Projection {
	merged := make([]Session, 0, len(past)+len(future))
	merged = append(merged, past...)
	merged = append(merged, future...)
	// stable sort: past and future windows never overlap, and same-day
	// entries keep past-before-projected order
	sort.SliceStable(merged, func(i, j int) bool {
		return merged[i].Date.Before(merged[j].Date)
	})

	if len(merged) == 0 {
		return Projection{Trajectory: []TrajectoryPoint{}, TodayIndex: 0, Stats: nil}
	}

	var presentCount, absentCount int
	todayIndex := -1
	trajectory := make([]TrajectoryPoint, 0, len(merged))
	for i, s := range merged {
		if s.Status == StatusPresent {
			presentCount++
		} else {
			absentCount++
		}
		if todayIndex < 0 && s.Origin == OriginProjected {
			todayIndex = i
		}
		trajectory = append(trajectory, TrajectoryPoint{
			Index:      i,
			Percentage: Percentage(presentCount, presentCount+absentCount),
			Origin:     s.Origin,
			Date:       s.Date,
			DateKey:    s.DateKey,
			Status:     s.Status,
		})
	}
	if todayIndex < 0 {
		// no future portion survived filtering; "off the end" sentinel
		todayIndex = len(trajectory)
	}

	stats := &Stats{
		Current: CountSessions(past),
		Projected: StatusCounts{
			Present:    presentCount,
			Absent:     absentCount,
			Total:      len(merged),
			Percentage: trajectory[len(trajectory)-1].Percentage,
		},
	}
	// difference of two already-rounded values; display rounding is the
	// UI's concern
	stats.Delta = stats.Projected.Percentage - stats.Current.Percentage

	return Projection{Trajectory: trajectory, TodayIndex: todayIndex, Stats: stats}
}

// CountSessions independently tallies a session list (it does not read
// trajectory points back).
func CountSessions(sessions []Session) StatusCounts {
	var c StatusCounts
	for _, s := range sessions {
		if s.Status == StatusPresent {
			c.Present++
		} else {
			c.Absent++
		}
	}
	c.Total = c.Present + c.Absent
	c.Percentage = Percentage(c.Present, c.Total)
	return c
}

// PlanForTarget reports how many consecutive classes must be attended to
// reach the target percentage, or how many can be skipped while staying
// at or above it. Comparisons use the exact ratio, not the display-rounded
// percentage. A 100% target is unreachable once a single class was missed.
func PlanForTarget(counts StatusCounts, target float64) TargetPlan {
	plan := TargetPlan{Target: target, Achievable: true}
	if counts.Total == 0 {
		plan.OnTrack = true
		return plan
	}

	ratio := float64(counts.Present) / float64(counts.Total) * 100
	if ratio >= target {
		plan.OnTrack = true
		// largest n with 100*present/(total+n) >= target
		if target > 0 {
			n := int(math.Floor(100*float64(counts.Present)/target)) - counts.Total
			if n < 0 {
				n = 0
			}
			plan.ClassesSkippable = n
		}
		return plan
	}

	if target >= 100 {
		plan.Achievable = false
		return plan
	}
	// smallest n with 100*(present+n)/(total+n) >= target
	n := int(math.Ceil((target*float64(counts.Total) - 100*float64(counts.Present)) / (100 - target)))
	if n < 1 {
		n = 1
	}
	plan.ClassesNeeded = n
	return plan
}
