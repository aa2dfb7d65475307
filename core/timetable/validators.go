package timetable

import (
	"fmt"
	"regexp"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/classflow/backend/core"
	"github.com/classflow/backend/core/attendance"
)

var (
	// Sunday deliberately absent: the portal never schedules it and the
	// engine would ignore it anyway.
	weekdayNames = map[string]bool{
		time.Monday.String():    true,
		time.Tuesday.String():   true,
		time.Wednesday.String(): true,
		time.Thursday.String():  true,
		time.Friday.String():    true,
		time.Saturday.String():  true,
	}

	slotIDRegex = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}_([01]\d|2[0-3]):[0-5]\d$`)

	overrideStatuses = map[attendance.Status]bool{
		attendance.StatusPresent:   true,
		attendance.StatusAbsent:    true,
		attendance.StatusCancelled: true,
	}
)

// ValidateTemplate checks weekday keys and each slot's fields. Weekday
// keys a validator struct tag cannot reach, so the map level is checked
// by hand and each slot goes through the validator.
func ValidateTemplate(validate *validator.Validate, tmpl attendance.WeekTemplate) error {
	var fldErrs []core.FieldError
	for day, slots := range tmpl {
		if !weekdayNames[day] {
			fldErrs = append(fldErrs, core.FieldError{Field: day, Error: "unknown weekday"})
			continue
		}
		for i, slot := range slots {
			if err := validate.Struct(slot); err != nil {
				if vErrs, ok := err.(validator.ValidationErrors); ok {
					for _, vErr := range vErrs {
						fldErrs = append(fldErrs, core.FieldError{
							Field: fmt.Sprintf("%s[%d].%s", day, i, vErr.Field()),
							Error: vErr.Tag(),
						})
					}
					continue
				}
				return err
			}
		}
	}
	if len(fldErrs) > 0 {
		return core.NewValidationError(nil, fldErrs...)
	}
	return nil
}

// ValidateOverrides checks slot-ID keys and status values.
func ValidateOverrides(overrides attendance.OverrideMap) error {
	var fldErrs []core.FieldError
	for slotID, status := range overrides {
		if !slotIDRegex.MatchString(slotID) {
			fldErrs = append(fldErrs, core.FieldError{Field: slotID, Error: "slot id must be YYYY-MM-DD_HH:MM"})
		}
		if !overrideStatuses[status] {
			fldErrs = append(fldErrs, core.FieldError{Field: slotID, Error: fmt.Sprintf("unknown status %q", status)})
		}
	}
	if len(fldErrs) > 0 {
		return core.NewValidationError(nil, fldErrs...)
	}
	return nil
}

// ValidateEvents checks that every block's range is well formed.
func ValidateEvents(events []attendance.EventBlock) error {
	var fldErrs []core.FieldError
	for i, ev := range events {
		if ev.StartDate.IsZero() || ev.EndDate.IsZero() {
			fldErrs = append(fldErrs, core.FieldError{Field: fmt.Sprintf("events[%d]", i), Error: "start_date and end_date are required"})
			continue
		}
		if ev.EndDate.Before(ev.StartDate) {
			fldErrs = append(fldErrs, core.FieldError{Field: fmt.Sprintf("events[%d]", i), Error: "end_date precedes start_date"})
		}
	}
	if len(fldErrs) > 0 {
		return core.NewValidationError(nil, fldErrs...)
	}
	return nil
}

// ValidateTarget bounds the threshold to (0, 100].
func ValidateTarget(target float64) error {
	if target <= 0 || target > 100 {
		return core.NewValidationError(nil, core.FieldError{Field: "target", Error: "must be greater than 0 and at most 100"})
	}
	return nil
}
