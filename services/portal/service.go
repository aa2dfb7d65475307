// Package portalsvc talks to the college web portal on the student's
// behalf, reusing the session token the frontend obtained at login. The
// portal is flaky; every call gets a few retries with a linear backoff.
package portalsvc

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/pkg/errors"

	"github.com/classflow/backend/core"
	"github.com/classflow/backend/core/attendance"
)

var (
	subjectsPath   = "/StudentClassAttendance/getstudentsubjectpersentage"
	attendancePath = "/StudentClassAttendance/getsubjectdailyattendancedetail"

	// sleepFunc is swapped out in tests to avoid real backoff waits.
	sleepFunc = time.Sleep
)

type httpService struct {
	client     *http.Client
	baseURL    string
	maxRetries int
	logger     core.Logger
}

var _ core.PortalService = (*httpService)(nil)

func NewService(conf *core.Config, logger core.Logger) *httpService {
	return &httpService{
		client:     &http.Client{Timeout: conf.Portal.Timeout},
		baseURL:    conf.Portal.BaseURL,
		maxRetries: conf.Portal.MaxRetries,
		logger:     logger,
	}
}

type (
	subjectsResponse struct {
		Response struct {
			Subjects []struct {
				Code string `json:"subjectcode"`
			} `json:"studentattendancelist"`
		} `json:"response"`
	}

	attendanceResponse struct {
		Response struct {
			Records []attendance.RawRecord `json:"studentAttdsummarylist"`
		} `json:"response"`
	}
)

func (svc httpService) FetchSubjects(ctx context.Context, creds core.PortalCredentials) ([]string, error) {
	payload := map[string]string{"registrationid": creds.Username}

	var res subjectsResponse
	if err := svc.post(ctx, creds, subjectsPath, payload, &res); err != nil {
		return nil, err
	}

	subjects := make([]string, 0, len(res.Response.Subjects))
	for _, subj := range res.Response.Subjects {
		if subj.Code != "" {
			subjects = append(subjects, subj.Code)
		}
	}
	return subjects, nil
}

func (svc httpService) FetchAttendance(ctx context.Context, creds core.PortalCredentials, subject string) ([]attendance.RawRecord, error) {
	payload := map[string]string{
		"registrationid": creds.Username,
		"subjectcode":    subject,
	}

	var res attendanceResponse
	if err := svc.post(ctx, creds, attendancePath, payload, &res); err != nil {
		return nil, err
	}
	return res.Response.Records, nil
}

// post performs one portal call with retries. Transport errors and 5xx
// responses are retried with a linear backoff; any other failure is final.
func (svc httpService) post(ctx context.Context, creds core.PortalCredentials, path string, payload, out interface{}) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return errors.Wrap(err, "marshaling portal payload")
	}

	var lastErr error
	for attempt := 1; attempt <= svc.maxRetries; attempt++ {
		if attempt > 1 {
			sleepFunc(time.Duration(attempt-1) * time.Second)
		}

		req, err := http.NewRequestWithContext(ctx, http.MethodPost, svc.baseURL+path, bytes.NewReader(body))
		if err != nil {
			return errors.Wrap(err, "building portal request")
		}
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("Authorization", "Bearer "+creds.Token)
		req.Header.Set("LocalName", creds.Username)

		res, err := svc.client.Do(req)
		if err != nil {
			lastErr = err
			svc.logger.Warn(fmt.Sprintf("portal retry %d/%d: %s", attempt, svc.maxRetries, path))
			continue
		}

		resBody, err := io.ReadAll(res.Body)
		_ = res.Body.Close()
		if err != nil {
			lastErr = err
			continue
		}

		if res.StatusCode >= http.StatusInternalServerError {
			lastErr = errors.Errorf("portal status %d: %s", res.StatusCode, resBody)
			svc.logger.Warn(fmt.Sprintf("portal retry %d/%d: %s", attempt, svc.maxRetries, path))
			continue
		}
		if res.StatusCode != http.StatusOK {
			return errors.Errorf("portal status %d: %s", res.StatusCode, resBody)
		}

		if err := json.Unmarshal(resBody, out); err != nil {
			return errors.Wrap(err, "decoding portal response")
		}
		return nil
	}
	return errors.Wrapf(lastErr, "portal unreachable after %d attempts", svc.maxRetries)
}
