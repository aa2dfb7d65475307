// Package timetable persists the engine's user-authored inputs: the
// weekly template, per-subject override maps, event blocks and the target
// attendance threshold. Values are stored as plain JSON documents behind
// the Repository interface.
package timetable

import (
	"context"

	"github.com/pkg/errors"

	"github.com/classflow/backend/core/attendance"
)

// ErrNotFound is returned by a Repository when a document does not exist
// for the student. The service translates it into sensible defaults.
var ErrNotFound = errors.New("document not found")

type (
	Repository interface {
		GetTemplate(ctx context.Context, studentID string) (attendance.WeekTemplate, error)
		SaveTemplate(ctx context.Context, studentID string, tmpl attendance.WeekTemplate) error
		GetOverrides(ctx context.Context, studentID, subject string) (attendance.OverrideMap, error)
		SaveOverrides(ctx context.Context, studentID, subject string, overrides attendance.OverrideMap) error
		GetEvents(ctx context.Context, studentID string) ([]attendance.EventBlock, error)
		SaveEvents(ctx context.Context, studentID string, events []attendance.EventBlock) error
		GetTarget(ctx context.Context, studentID string) (float64, error)
		SaveTarget(ctx context.Context, studentID string, target float64) error
	}

	Service struct {
		repo          Repository
		defaultTarget float64
	}
)

func NewService(repo Repository, defaultTarget float64) *Service {
	return &Service{repo: repo, defaultTarget: defaultTarget}
}

// Template returns the student's weekly template; an unset template is an
// empty one, not an error.
func (svc *Service) Template(ctx context.Context, studentID string) (attendance.WeekTemplate, error) {
	tmpl, err := svc.repo.GetTemplate(ctx, studentID)
	if err != nil {
		if errors.Cause(err) == ErrNotFound {
			return attendance.WeekTemplate{}, nil
		}
		return nil, errors.Wrap(err, "loading timetable template")
	}
	return tmpl, nil
}

func (svc *Service) SaveTemplate(ctx context.Context, studentID string, tmpl attendance.WeekTemplate) error {
	return svc.repo.SaveTemplate(ctx, studentID, tmpl)
}

// Overrides returns the student's override map for one subject; never nil.
func (svc *Service) Overrides(ctx context.Context, studentID, subject string) (attendance.OverrideMap, error) {
	ovr, err := svc.repo.GetOverrides(ctx, studentID, subject)
	if err != nil {
		if errors.Cause(err) == ErrNotFound {
			return attendance.OverrideMap{}, nil
		}
		return nil, errors.Wrap(err, "loading overrides")
	}
	return ovr, nil
}

func (svc *Service) SaveOverrides(ctx context.Context, studentID, subject string, overrides attendance.OverrideMap) error {
	return svc.repo.SaveOverrides(ctx, studentID, subject, overrides)
}

func (svc *Service) Events(ctx context.Context, studentID string) ([]attendance.EventBlock, error) {
	events, err := svc.repo.GetEvents(ctx, studentID)
	if err != nil {
		if errors.Cause(err) == ErrNotFound {
			return []attendance.EventBlock{}, nil
		}
		return nil, errors.Wrap(err, "loading event blocks")
	}
	return events, nil
}

func (svc *Service) SaveEvents(ctx context.Context, studentID string, events []attendance.EventBlock) error {
	return svc.repo.SaveEvents(ctx, studentID, events)
}

// Target returns the student's target threshold, falling back to the
// configured default when unset.
func (svc *Service) Target(ctx context.Context, studentID string) (float64, error) {
	target, err := svc.repo.GetTarget(ctx, studentID)
	if err != nil {
		if errors.Cause(err) == ErrNotFound {
			return svc.defaultTarget, nil
		}
		return 0, errors.Wrap(err, "loading target threshold")
	}
	return target, nil
}

func (svc *Service) SaveTarget(ctx context.Context, studentID string, target float64) error {
	return svc.repo.SaveTarget(ctx, studentID, target)
}
