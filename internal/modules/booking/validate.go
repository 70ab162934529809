package booking

import (
	"fmt"
	"strings"
	"time"
)

const (
	dateLayout = "2006-01-02"
	timeLayout = "15:04"
)

// Field keys used in validation error maps.
const (
	FieldDate      = "date"
	FieldStartTime = "start_time"
	FieldEndDate   = "end_date"
	FieldEndTime   = "end_time"
	FieldPurpose   = "purpose"
	FieldTerms     = "agreed_to_terms"
	FieldTimeSlot  = "time_slot_id"
)

// FieldErrors maps a form field to a user-facing message. An empty map means
// the form may be submitted.
type FieldErrors map[string]string

// Rules parameterizes Validate per resource kind, so the three booking
// variants share one rule table instead of three copies.
type Rules struct {
	// RequireEnd demands an explicit end date/time strictly after the start
	// (rooms and equipment). Lab bookings derive their window from a slot.
	RequireEnd bool

	// RequireTerms demands the terms checkbox. Only the interactive client
	// sets this; the consent never travels to the server.
	RequireTerms bool

	// Earliest bookable day is today+MinLeadDays; latest today+MaxWindowDays.
	MinLeadDays   int
	MaxWindowDays int
}

// Form holds the raw field values a booking form collects. Date fields use
// "2006-01-02", time-of-day fields "15:04"; the combined timestamps are
// built here, never by the caller.
type Form struct {
	Date           string
	StartTimeOfDay string
	EndDate        string
	EndTimeOfDay   string
	Purpose        string
	AgreedToTerms  bool
}

// Validate checks every rule and returns the field-keyed error map. It is a
// pure function of its arguments; callers pass their own clock.
func Validate(rules Rules, f Form, now time.Time) FieldErrors {
	errs := make(FieldErrors)

	day := validateDate(rules, f.Date, now, errs)

	if rules.RequireEnd {
		validateWindow(f, day, errs)
	}

	if strings.TrimSpace(f.Purpose) == "" {
		errs[FieldPurpose] = "Purpose is required"
	}

	if rules.RequireTerms && !f.AgreedToTerms {
		errs[FieldTerms] = "You must agree to the booking terms"
	}

	if len(errs) == 0 {
		return nil
	}
	return errs
}

func validateDate(rules Rules, raw string, now time.Time, errs FieldErrors) time.Time {
	if raw == "" {
		errs[FieldDate] = "Booking date is required"
		return time.Time{}
	}

	day, err := time.ParseInLocation(dateLayout, raw, time.UTC)
	if err != nil {
		errs[FieldDate] = "Invalid booking date"
		return time.Time{}
	}

	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	earliest := today.AddDate(0, 0, rules.MinLeadDays)
	latest := today.AddDate(0, 0, rules.MaxWindowDays)

	if day.Before(earliest) {
		errs[FieldDate] = fmt.Sprintf("Bookings must be made at least %d day(s) in advance", rules.MinLeadDays)
		return day
	}
	if day.After(latest) {
		errs[FieldDate] = fmt.Sprintf("Bookings can be made at most %d days ahead", rules.MaxWindowDays)
		return day
	}
	return day
}

func validateWindow(f Form, day time.Time, errs FieldErrors) {
	if f.StartTimeOfDay == "" {
		errs[FieldStartTime] = "Start time is required"
	}
	if f.EndTimeOfDay == "" {
		errs[FieldEndTime] = "End time is required"
	}
	if f.StartTimeOfDay == "" || f.EndTimeOfDay == "" || day.IsZero() {
		return
	}

	start, err := Combine(f.Date, f.StartTimeOfDay)
	if err != nil {
		errs[FieldStartTime] = "Invalid start time"
		return
	}

	endDate := f.EndDate
	if endDate == "" {
		endDate = f.Date
	}
	end, err := Combine(endDate, f.EndTimeOfDay)
	if err != nil {
		if f.EndDate != "" && !isValidDate(f.EndDate) {
			errs[FieldEndDate] = "Invalid end date"
		} else {
			errs[FieldEndTime] = "Invalid end time"
		}
		return
	}

	if !end.After(start) {
		errs[FieldEndTime] = "End time must be after start time"
	}
}

// Combine builds a UTC timestamp from separate date and time-of-day fields,
// the only way combined times are ever constructed.
func Combine(date, timeOfDay string) (time.Time, error) {
	return time.ParseInLocation(dateLayout+" "+timeLayout, date+" "+timeOfDay, time.UTC)
}

func isValidDate(raw string) bool {
	_, err := time.ParseInLocation(dateLayout, raw, time.UTC)
	return err == nil
}
