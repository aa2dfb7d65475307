package attendance

import (
	"context"
	"reflect"
	"testing"
	"time"
)

// fixed "today": Wednesday 2025-01-01
func mockNow(t *testing.T) {
	t.Helper()
	orig := NowFunc
	NowFunc = func() time.Time { return time.Date(2025, time.January, 1, 10, 30, 0, 0, time.UTC) }
	t.Cleanup(func() { NowFunc = orig })
}

func TestBuildProjection_historyOnly(t *testing.T) {
	mockNow(t)

	records := []RawRecord{
		{DateTime: "01/01/2025 (x)", Present: "Present"},
		{DateTime: "02/01/2025 (x)", Present: "Absent"},
	}
	proj := BuildProjection(records, WeekTemplate{}, "CS1", nil, nil, 0)

	if len(proj.Trajectory) != 2 {
		t.Fatalf("got %d points; want 2", len(proj.Trajectory))
	}
	if proj.Trajectory[0].Percentage != 100 || proj.Trajectory[1].Percentage != 50 {
		t.Errorf("percentages = %v, %v; want 100, 50", proj.Trajectory[0].Percentage, proj.Trajectory[1].Percentage)
	}
	if proj.TodayIndex != 2 {
		t.Errorf("todayIndex = %d; want 2", proj.TodayIndex)
	}
	if proj.Stats.Current.Percentage != 50 || proj.Stats.Projected.Percentage != 50 || proj.Stats.Delta != 0 {
		t.Errorf("stats = %+v; want current 50, projected 50, delta 0", proj.Stats)
	}
}

func TestBuildProjection_singleFutureMonday(t *testing.T) {
	mockNow(t)

	tmpl := WeekTemplate{"Monday": {{Subject: "CS1", StartTime: "09:00", Duration: 50}}}
	// one week from Wed Jan 1 covers exactly one Monday: Jan 6
	proj := BuildProjection(nil, tmpl, "CS1", nil, nil, 1)

	if len(proj.Trajectory) != 1 {
		t.Fatalf("got %d points; want 1", len(proj.Trajectory))
	}
	p := proj.Trajectory[0]
	if p.Origin != OriginProjected || p.Status != StatusPresent || p.Percentage != 100 {
		t.Errorf("point = %+v; want projected/present/100", p)
	}
	if p.DateKey != "2025-01-06" {
		t.Errorf("dateKey = %q; want 2025-01-06", p.DateKey)
	}
	if proj.TodayIndex != 0 {
		t.Errorf("todayIndex = %d; want 0", proj.TodayIndex)
	}
	wantCurrent := StatusCounts{Present: 0, Absent: 0, Total: 0, Percentage: 0}
	if proj.Stats.Current != wantCurrent {
		t.Errorf("current = %+v; want %+v", proj.Stats.Current, wantCurrent)
	}
}

func TestBuildProjection_cancelledOnlySlot(t *testing.T) {
	mockNow(t)

	tmpl := WeekTemplate{"Monday": {{Subject: "CS1", StartTime: "09:00", Duration: 50}}}
	overrides := OverrideMap{"2025-01-06_09:00": StatusCancelled}
	proj := BuildProjection(nil, tmpl, "CS1", overrides, nil, 1)

	if len(proj.Trajectory) != 0 {
		t.Fatalf("trajectory = %v; want empty", proj.Trajectory)
	}
	if proj.TodayIndex != 0 {
		t.Errorf("todayIndex = %d; want 0", proj.TodayIndex)
	}
	if proj.Stats != nil {
		t.Errorf("stats = %+v; want nil", proj.Stats)
	}
}

func TestBuildProjection_eventBeatsOverride(t *testing.T) {
	mockNow(t)

	tmpl := WeekTemplate{"Monday": {{Subject: "CS1", StartTime: "09:00", Duration: 50}}}
	overrides := OverrideMap{"2025-01-06_09:00": StatusPresent}
	events := []EventBlock{{StartDate: date(2025, time.January, 6), EndDate: date(2025, time.January, 6)}}
	proj := BuildProjection(nil, tmpl, "CS1", overrides, events, 1)

	if len(proj.Trajectory) != 0 {
		t.Fatalf("trajectory = %v; want empty (exclusion wins)", proj.Trajectory)
	}
}

func TestBuildProjection_idempotent(t *testing.T) {
	mockNow(t)

	records := []RawRecord{
		{DateTime: "30/12/2024 (x)", Present: "Present"},
		{DateTime: "31/12/2024 (x)", Attendance: "A"},
	}
	tmpl := WeekTemplate{
		"Monday":   {{Subject: "15B11CI514", StartTime: "09:00", Duration: 50}},
		"Thursday": {{Subject: "15B11CI514", StartTime: "11:00", Duration: 50}},
	}
	overrides := OverrideMap{"2025-01-09_11:00": StatusAbsent}
	events := []EventBlock{{StartDate: date(2025, time.January, 13), EndDate: date(2025, time.January, 14)}}

	a := BuildProjection(records, tmpl, "CI514", overrides, events, 3)
	b := BuildProjection(records, tmpl, "CI514", overrides, events, 3)
	if !reflect.DeepEqual(a, b) {
		t.Error("two runs over identical inputs differ")
	}
}

type fakeHistoryRepo struct {
	records  map[string][]RawRecord // by subject
	saved    map[string][]RawRecord
	subjects []string
}

func (r *fakeHistoryRepo) GetRecords(_ context.Context, _, subject string) ([]RawRecord, error) {
	recs, ok := r.records[subject]
	if !ok {
		return nil, ErrNoHistory
	}
	return recs, nil
}

func (r *fakeHistoryRepo) SaveRecords(_ context.Context, _, subject string, records []RawRecord) error {
	if r.saved == nil {
		r.saved = make(map[string][]RawRecord)
	}
	r.saved[subject] = records
	return nil
}

func (r *fakeHistoryRepo) ListSubjects(_ context.Context, _ string) ([]string, error) {
	return r.subjects, nil
}

func TestService_Project(t *testing.T) {
	mockNow(t)

	repo := &fakeHistoryRepo{
		records: map[string][]RawRecord{
			"CS1": {{DateTime: "30/12/2024 (x)", Present: "Present"}},
		},
	}
	svc := NewService(repo)

	t.Run("with snapshot", func(t *testing.T) {
		proj, err := svc.Project(context.Background(), "stu-1", "CS1", WeekTemplate{}, nil, nil, 0)
		if err != nil {
			t.Fatalf("Project() failed: %v", err)
		}
		if len(proj.Trajectory) != 1 {
			t.Errorf("got %d points; want 1", len(proj.Trajectory))
		}
	})

	t.Run("missing snapshot is empty history", func(t *testing.T) {
		proj, err := svc.Project(context.Background(), "stu-1", "MA2", WeekTemplate{}, nil, nil, 0)
		if err != nil {
			t.Fatalf("Project() failed: %v", err)
		}
		if len(proj.Trajectory) != 0 || proj.Stats != nil {
			t.Errorf("projection = %+v; want empty with nil stats", proj)
		}
	})
}
