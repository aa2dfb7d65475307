package portalsvc

import (
	"context"
	"fmt"
	"net/mail"
	"sync/atomic"

	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"

	"github.com/classflow/backend/core"
	"github.com/classflow/backend/core/attendance"
	"github.com/classflow/backend/core/student"
	"github.com/classflow/backend/core/syncstatus"
	"github.com/classflow/backend/core/timetable"
)

// Syncer pulls a student's full attendance state from the portal, one
// subject at a time, persists the snapshots and reports progress through
// the tracker. After a successful sync it checks each subject against
// the student's target and emails an alert for the ones falling short.
type Syncer struct {
	conf          *core.Config
	portal        core.PortalService
	attendanceSvc *attendance.Service
	timetableSvc  *timetable.Service
	studentSvc    *student.Service
	tracker       *syncstatus.Tracker
	emailSvc      core.EmailService
	logger        core.Logger
}

func NewSyncer(
	conf *core.Config,
	portal core.PortalService,
	attendanceSvc *attendance.Service,
	timetableSvc *timetable.Service,
	studentSvc *student.Service,
	tracker *syncstatus.Tracker,
	emailSvc core.EmailService,
	logger core.Logger,
) *Syncer {
	return &Syncer{
		conf:          conf,
		portal:        portal,
		attendanceSvc: attendanceSvc,
		timetableSvc:  timetableSvc,
		studentSvc:    studentSvc,
		tracker:       tracker,
		emailSvc:      emailSvc,
		logger:        logger,
	}
}

// Sync runs a full portal sync for one student. It blocks until done;
// callers wanting fire-and-forget run it in a goroutine and watch the
// tracker instead.
func (s *Syncer) Sync(ctx context.Context, std student.Student, creds core.PortalCredentials) error {
	s.tracker.Publish(syncstatus.Status{StudentID: std.ID, State: syncstatus.StateRunning})

	subjects, err := s.portal.FetchSubjects(ctx, creds)
	if err != nil {
		err = errors.Wrap(err, "fetching subjects")
		s.tracker.Publish(syncstatus.Status{StudentID: std.ID, State: syncstatus.StateFailed, Error: err.Error()})
		return err
	}

	var synced int32
	g, gctx := errgroup.WithContext(ctx)
	for _, subject := range subjects {
		subject := subject
		g.Go(func() error {
			records, err := s.portal.FetchAttendance(gctx, creds, subject)
			if err != nil {
				return errors.Wrapf(err, "fetching attendance for %s", subject)
			}
			if err := s.attendanceSvc.StoreRecords(gctx, std.ID, subject, records); err != nil {
				return errors.Wrapf(err, "storing snapshot for %s", subject)
			}
			s.tracker.Publish(syncstatus.Status{
				StudentID: std.ID,
				State:     syncstatus.StateRunning,
				Subjects:  int(atomic.AddInt32(&synced, 1)),
			})
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		s.tracker.Publish(syncstatus.Status{StudentID: std.ID, State: syncstatus.StateFailed, Error: err.Error()})
		return err
	}

	if _, err := s.studentSvc.SetLastSync(ctx, std); err != nil {
		s.logger.Warn(fmt.Sprintf("stamping last sync: %v", err), err, std)
	}
	s.tracker.Publish(syncstatus.Status{StudentID: std.ID, State: syncstatus.StateDone, Subjects: len(subjects)})

	if s.conf.Attendance.AlertsEnabled {
		s.checkAlerts(ctx, std, subjects)
	}
	return nil
}

type alertData struct {
	Subject   string
	Projected float64
	Target    float64
}

// checkAlerts projects each subject over the alert horizon and emails
// the student for every one expected to land under their target.
// Alerts are best effort; failures are logged, never propagated.
func (s *Syncer) checkAlerts(ctx context.Context, std student.Student, subjects []string) {
	target, err := s.timetableSvc.Target(ctx, std.ID)
	if err != nil {
		s.logger.Warn(fmt.Sprintf("loading target for alerts: %v", err), err, std)
		return
	}
	tmpl, err := s.timetableSvc.Template(ctx, std.ID)
	if err != nil {
		s.logger.Warn(fmt.Sprintf("loading timetable for alerts: %v", err), err, std)
		return
	}
	events, err := s.timetableSvc.Events(ctx, std.ID)
	if err != nil {
		s.logger.Warn(fmt.Sprintf("loading events for alerts: %v", err), err, std)
		return
	}

	var failing []alertData
	for _, subject := range subjects {
		overrides, err := s.timetableSvc.Overrides(ctx, std.ID, subject)
		if err != nil {
			s.logger.Warn(fmt.Sprintf("loading overrides for alerts: %v", err), err, std)
			continue
		}
		proj, err := s.attendanceSvc.Project(ctx, std.ID, subject, tmpl, overrides, events, s.conf.Attendance.AlertHorizonWeeks)
		if err != nil {
			s.logger.Warn(fmt.Sprintf("projecting %s for alerts: %v", subject, err), err, std)
			continue
		}
		if proj.Stats == nil {
			continue
		}
		if pct := proj.Stats.Projected.Percentage; pct < target {
			failing = append(failing, alertData{Subject: subject, Projected: pct, Target: target})
		}
	}
	if len(failing) == 0 {
		return
	}

	s.emailSvc.SendMessages(&core.EmailMessage{
		To:           []mail.Address{{Name: std.Name, Address: std.Email}},
		Subject:      "Attendance alert",
		TemplateName: "attendance_alert",
		TemplateData: struct {
			Name     string
			Subjects []alertData
		}{Name: std.Name, Subjects: failing},
	})
}
