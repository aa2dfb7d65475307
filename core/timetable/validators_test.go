package timetable

import (
	"testing"
	"time"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"

	"github.com/classflow/backend/core"
	"github.com/classflow/backend/core/attendance"
)

func newValidate() *validator.Validate {
	validate := validator.New()
	_en := en.New()
	uni := ut.New(_en, _en)
	translator, _ := uni.GetTranslator("en")
	core.InitValidators(validate, translator)
	return validate
}

func TestValidateTemplate(t *testing.T) {
	validate := newValidate()

	tests := []struct {
		name    string
		tmpl    attendance.WeekTemplate
		wantErr bool
	}{
		{name: "empty", tmpl: attendance.WeekTemplate{}},
		{
			name: "valid",
			tmpl: attendance.WeekTemplate{
				"Monday":   {{Subject: "CS1", StartTime: "09:00", Duration: 50}},
				"Saturday": {{Subject: "MA2", StartTime: "14:30", Duration: 100}},
			},
		},
		{
			name:    "unknown weekday",
			tmpl:    attendance.WeekTemplate{"Funday": {{Subject: "CS1", StartTime: "09:00", Duration: 50}}},
			wantErr: true,
		},
		{
			name:    "sunday rejected",
			tmpl:    attendance.WeekTemplate{"Sunday": {{Subject: "CS1", StartTime: "09:00", Duration: 50}}},
			wantErr: true,
		},
		{
			name:    "bad start time",
			tmpl:    attendance.WeekTemplate{"Monday": {{Subject: "CS1", StartTime: "9am", Duration: 50}}},
			wantErr: true,
		},
		{
			name:    "zero duration",
			tmpl:    attendance.WeekTemplate{"Monday": {{Subject: "CS1", StartTime: "09:00", Duration: 0}}},
			wantErr: true,
		},
		{
			name:    "empty subject",
			tmpl:    attendance.WeekTemplate{"Monday": {{Subject: "", StartTime: "09:00", Duration: 50}}},
			wantErr: true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateTemplate(validate, tt.tmpl)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateTemplate() error = %v; wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestValidateOverrides(t *testing.T) {
	tests := []struct {
		name      string
		overrides attendance.OverrideMap
		wantErr   bool
	}{
		{name: "empty", overrides: attendance.OverrideMap{}},
		{
			name: "valid",
			overrides: attendance.OverrideMap{
				"2025-01-06_09:00": attendance.StatusCancelled,
				"2025-01-08_14:00": attendance.StatusAbsent,
			},
		},
		{name: "bad slot id", overrides: attendance.OverrideMap{"monday-9am": attendance.StatusAbsent}, wantErr: true},
		{name: "bad status", overrides: attendance.OverrideMap{"2025-01-06_09:00": "snoozed"}, wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateOverrides(tt.overrides)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateOverrides() error = %v; wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestValidateEvents(t *testing.T) {
	day := func(d int) time.Time { return time.Date(2025, time.January, d, 0, 0, 0, 0, time.UTC) }

	if err := ValidateEvents([]attendance.EventBlock{{Name: "break", StartDate: day(6), EndDate: day(8)}}); err != nil {
		t.Errorf("valid range rejected: %v", err)
	}
	if err := ValidateEvents([]attendance.EventBlock{{StartDate: day(6), EndDate: day(6)}}); err != nil {
		t.Errorf("single-day range rejected: %v", err)
	}
	if err := ValidateEvents([]attendance.EventBlock{{StartDate: day(8), EndDate: day(6)}}); err == nil {
		t.Error("inverted range accepted")
	}
	if err := ValidateEvents([]attendance.EventBlock{{}}); err == nil {
		t.Error("zero dates accepted")
	}
}

func TestValidateTarget(t *testing.T) {
	for _, target := range []float64{0.5, 75, 100} {
		if err := ValidateTarget(target); err != nil {
			t.Errorf("ValidateTarget(%v) = %v; want nil", target, err)
		}
	}
	for _, target := range []float64{0, -1, 100.1} {
		if err := ValidateTarget(target); err == nil {
			t.Errorf("ValidateTarget(%v) = nil; want error", target)
		}
	}
}
