package client

import (
	"context"
	"errors"
	"sync"
	"time"

	"campusbook/internal/domain"
	"campusbook/internal/modules/booking"
)

type State string

const (
	StateEditing    State = "editing"
	StateSubmitting State = "submitting"
	StateSuccess    State = "success"
	StateFailed     State = "failed"
	StateClosed     State = "closed"
)

var (
	ErrClosed             = errors.New("workflow closed")
	ErrSubmissionInFlight = errors.New("submission already in flight")
)

const defaultCloseDelay = 2 * time.Second

// Workflow drives one booking form for one resource: collect fields,
// validate locally, submit once, surface the outcome. It owns its form state
// exclusively; a new modal gets a new Workflow.
type Workflow struct {
	mu sync.Mutex

	api      *Client
	resource domain.Resource
	rules    booking.Rules

	form       booking.Form
	timeSlotID *int64

	state      State
	fieldErrs  booking.FieldErrors
	message    string
	lastRecord *booking.BookingResponse

	// onBooked hands the accepted record to the parent view, which
	// typically prepends it to its BookingCache.
	onBooked func(booking.BookingResponse)

	closeDelay     time.Duration
	closeTimer     *time.Timer
	cancelInFlight context.CancelFunc

	now func() time.Time
}

// NewWorkflow builds the form state machine for a resource. The rule table
// follows the resource kind: labs book by slot (no end field), everything
// else needs an explicit window. The terms checkbox is always required here.
func NewWorkflow(api *Client, resource domain.Resource, onBooked func(booking.BookingResponse)) *Workflow {
	return &Workflow{
		api:      api,
		resource: resource,
		rules: booking.Rules{
			RequireEnd:    resource.Kind != domain.KindLab,
			RequireTerms:  true,
			MinLeadDays:   1,
			MaxWindowDays: 30,
		},
		state:      StateEditing,
		onBooked:   onBooked,
		closeDelay: defaultCloseDelay,
		now:        time.Now,
	}
}

func (w *Workflow) State() State {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.state
}

// Message is the banner text for the Success and Failed states.
func (w *Workflow) Message() string {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.message
}

// FieldErrors returns a copy of the current field error map.
func (w *Workflow) FieldErrors() booking.FieldErrors {
	w.mu.Lock()
	defer w.mu.Unlock()

	out := make(booking.FieldErrors, len(w.fieldErrs))
	for k, v := range w.fieldErrs {
		out[k] = v
	}
	return out
}

// Form returns the current field values; on failure the user's input is
// retained, never cleared.
func (w *Workflow) Form() booking.Form {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.form
}

func (w *Workflow) SetDate(v string) { w.setField(booking.FieldDate, func() { w.form.Date = v }) }
func (w *Workflow) SetStartTime(v string) {
	w.setField(booking.FieldStartTime, func() { w.form.StartTimeOfDay = v })
}
func (w *Workflow) SetEndDate(v string) {
	w.setField(booking.FieldEndDate, func() { w.form.EndDate = v })
}
func (w *Workflow) SetEndTime(v string) {
	w.setField(booking.FieldEndTime, func() { w.form.EndTimeOfDay = v })
}
func (w *Workflow) SetPurpose(v string) {
	w.setField(booking.FieldPurpose, func() { w.form.Purpose = v })
}
func (w *Workflow) SetAgreedToTerms(v bool) {
	w.setField(booking.FieldTerms, func() { w.form.AgreedToTerms = v })
}
func (w *Workflow) SetTimeSlot(id *int64) {
	w.setField(booking.FieldTimeSlot, func() { w.timeSlotID = id })
}

// setField applies an edit, clears that field's error only, and moves a
// failed form back to editing.
func (w *Workflow) setField(field string, apply func()) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.state == StateClosed || w.state == StateSubmitting {
		return
	}

	apply()
	delete(w.fieldErrs, field)
	if w.state == StateFailed {
		w.state = StateEditing
		w.message = ""
	}
}

// Submit validates every rule and, only with an empty error map, issues
// exactly one create request. On failure the form keeps its values and the
// workflow returns to an editable state.
func (w *Workflow) Submit(ctx context.Context) error {
	w.mu.Lock()
	switch w.state {
	case StateClosed:
		w.mu.Unlock()
		return ErrClosed
	case StateSubmitting:
		w.mu.Unlock()
		return ErrSubmissionInFlight
	}

	errs := booking.Validate(w.rules, w.form, w.now())
	if len(errs) > 0 {
		w.fieldErrs = errs
		w.state = StateFailed
		w.message = "Please fix the highlighted fields"
		w.mu.Unlock()
		return &booking.ValidationError{Fields: errs}
	}

	req, err := w.buildRequest()
	if err != nil {
		w.fieldErrs = booking.FieldErrors{booking.FieldDate: "Invalid booking date"}
		w.state = StateFailed
		w.message = "Please fix the highlighted fields"
		w.mu.Unlock()
		return &booking.ValidationError{Fields: w.fieldErrs}
	}

	subCtx, cancel := context.WithCancel(ctx)
	w.cancelInFlight = cancel
	w.state = StateSubmitting
	w.fieldErrs = nil
	kind := w.resource.Kind
	w.mu.Unlock()

	record, err := w.api.CreateBooking(subCtx, kind, req)
	cancel()

	w.mu.Lock()
	defer w.mu.Unlock()
	w.cancelInFlight = nil

	// Close() won the race: the view is gone, nothing may resolve into it.
	if w.state == StateClosed {
		return ErrClosed
	}

	if err != nil {
		w.state = StateFailed
		var apiErr *APIError
		if errors.As(err, &apiErr) && len(apiErr.Fields) > 0 {
			w.fieldErrs = apiErr.Fields
			w.message = "Please fix the highlighted fields"
		} else {
			w.message = "Could not submit your booking. Please try again."
		}
		return err
	}

	w.state = StateSuccess
	w.lastRecord = record
	if w.resource.RequiresApproval {
		w.message = "Your request was submitted and is pending admin approval"
	} else {
		w.message = "Your booking is confirmed"
	}

	if w.onBooked != nil {
		w.onBooked(*record)
	}

	w.closeTimer = time.AfterFunc(w.closeDelay, w.Close)
	return nil
}

func (w *Workflow) buildRequest() (booking.CreateBookingRequest, error) {
	req := booking.CreateBookingRequest{
		ResourceID: w.resource.ID,
		Purpose:    w.form.Purpose,
	}

	if w.resource.Kind == domain.KindLab {
		req.Date = w.form.Date
		req.TimeSlotID = w.timeSlotID
		return req, nil
	}

	start, err := booking.Combine(w.form.Date, w.form.StartTimeOfDay)
	if err != nil {
		return req, err
	}
	endDate := w.form.EndDate
	if endDate == "" {
		endDate = w.form.Date
	}
	end, err := booking.Combine(endDate, w.form.EndTimeOfDay)
	if err != nil {
		return req, err
	}

	req.StartTime = &start
	req.EndTime = &end
	return req, nil
}

// Record returns the server-assigned booking after a successful submit.
func (w *Workflow) Record() *booking.BookingResponse {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.lastRecord
}

// Close tears the workflow down: it aborts any in-flight submission so a
// late response can never fire callbacks into a closed view, and discards
// all form state.
func (w *Workflow) Close() {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.state == StateClosed {
		return
	}
	if w.cancelInFlight != nil {
		w.cancelInFlight()
		w.cancelInFlight = nil
	}
	if w.closeTimer != nil {
		w.closeTimer.Stop()
		w.closeTimer = nil
	}

	w.state = StateClosed
	w.form = booking.Form{}
	w.timeSlotID = nil
	w.fieldErrs = nil
	w.message = ""
}

// Reset reopens the workflow with a pristine form; nothing from a previous
// session survives.
func (w *Workflow) Reset() {
	w.Close()

	w.mu.Lock()
	defer w.mu.Unlock()
	w.state = StateEditing
	w.lastRecord = nil
}
