package core

import (
	"context"

	"github.com/classflow/backend/core/attendance"
)

// PortalCredentials carry an opaque session token for the college portal.
// How the token is obtained (the portal's login dance) is the frontend's
// problem; the backend only forwards it.
type PortalCredentials struct {
	Username string
	Token    string
}

// PortalService fetches a student's data from the college web portal.
type PortalService interface {
	// FetchSubjects lists the subject codes the student is registered for.
	FetchSubjects(ctx context.Context, creds PortalCredentials) ([]string, error)
	// FetchAttendance returns the raw attendance history for one subject,
	// in the portal's own shape.
	FetchAttendance(ctx context.Context, creds PortalCredentials, subject string) ([]attendance.RawRecord, error)
}
