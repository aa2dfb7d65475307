package attendance

import (
	"context"

	"github.com/pkg/errors"
)

// ErrNoHistory is returned by a HistoryRepository when no snapshot has
// been synced yet for a (student, subject) pair.
var ErrNoHistory = errors.New("no attendance history synced")

type (
	// HistoryRepository caches raw portal records between syncs.
	HistoryRepository interface {
		GetRecords(ctx context.Context, studentID, subject string) ([]RawRecord, error)
		SaveRecords(ctx context.Context, studentID, subject string, records []RawRecord) error
		ListSubjects(ctx context.Context, studentID string) ([]string, error)
	}

	Service struct {
		repo HistoryRepository
	}
)

func NewService(repo HistoryRepository) *Service {
	return &Service{repo: repo}
}

// BuildProjection runs the full pipeline: normalize history, materialize
// future slots for `weeks` from today, resolve events and overrides, then
// merge and compute the trajectory. Pure; today comes from NowFunc.
func BuildProjection(
	records []RawRecord,
	tmpl WeekTemplate,
	subject string,
	overrides OverrideMap,
	events []EventBlock,
	weeks int,
) Projection {
	past := NormalizeHistory(records)

	var future []Session
	if weeks > 0 {
		today := truncateToDay(NowFunc().UTC())
		end := today.AddDate(0, 0, weeks*7)
		slots := GenerateFutureSlots(tmpl, subject, today, end)
		future = ResolveSlots(slots, events, overrides)
	}

	return BuildTrajectory(past, future)
}

// Project builds a projection from the cached history snapshot. A missing
// snapshot is treated as an empty history, not an error: the result then
// only carries the projected branch.
func (svc *Service) Project(
	ctx context.Context,
	studentID, subject string,
	tmpl WeekTemplate,
	overrides OverrideMap,
	events []EventBlock,
	weeks int,
) (Projection, error) {
	records, err := svc.repo.GetRecords(ctx, studentID, subject)
	if err != nil && errors.Cause(err) != ErrNoHistory {
		return Projection{}, errors.Wrap(err, "loading history snapshot")
	}
	return BuildProjection(records, tmpl, subject, overrides, events, weeks), nil
}

// Subjects lists the subject codes with a synced history snapshot.
func (svc *Service) Subjects(ctx context.Context, studentID string) ([]string, error) {
	return svc.repo.ListSubjects(ctx, studentID)
}

// StoreRecords persists a fresh portal snapshot for one subject.
func (svc *Service) StoreRecords(ctx context.Context, studentID, subject string, records []RawRecord) error {
	return svc.repo.SaveRecords(ctx, studentID, subject, records)
}
