package portalsvc

import (
	"context"

	"github.com/classflow/backend/core"
	"github.com/classflow/backend/core/attendance"
)

// dummyService serves canned portal data for local dev and tests.
type dummyService struct {
	subjects []string
	records  map[string][]attendance.RawRecord
	err      error
}

var _ core.PortalService = (*dummyService)(nil)

func NewDummyService(subjects []string, records map[string][]attendance.RawRecord) *dummyService {
	return &dummyService{subjects: subjects, records: records}
}

// NewFailingDummyService always returns err. Used to exercise sync failure paths.
func NewFailingDummyService(err error) *dummyService {
	return &dummyService{err: err}
}

func (svc dummyService) FetchSubjects(context.Context, core.PortalCredentials) ([]string, error) {
	if svc.err != nil {
		return nil, svc.err
	}
	return svc.subjects, nil
}

func (svc dummyService) FetchAttendance(_ context.Context, _ core.PortalCredentials, subject string) ([]attendance.RawRecord, error) {
	if svc.err != nil {
		return nil, svc.err
	}
	return svc.records[subject], nil
}
