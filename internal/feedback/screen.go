package feedback

import (
	"context"
	"time"
)

// DefaultBackDelay separates dismissing the success message from navigating away.
const DefaultBackDelay = 100 * time.Millisecond

// Status of the feedback screen after the last attempt.
type Status int

const (
	Idle Status = iota
	Sending
	Sent
	Failed
)

// Submitter is the outbound side of the screen.
type Submitter interface {
	Submit(ctx context.Context, f Form) error
}

// Screen is the feedback form state: the fields, the in-flight guard and
// the outcome of the last attempt. Fields are cleared only after a
// confirmed success, so a retry resubmits exactly what the user typed.
type Screen struct {
	Form Form

	// Back is invoked BackDelay after the user acknowledges a success.
	Back      func()
	BackDelay time.Duration

	status  Status
	lastErr error
	after   func(time.Duration, func())
}

func NewScreen(back func()) *Screen {
	return &Screen{
		Back:      back,
		BackDelay: DefaultBackDelay,
		after:     func(d time.Duration, f func()) { time.AfterFunc(d, f) },
	}
}

func (s *Screen) Status() Status { return s.status }

// Err is the error of the last failed attempt.
func (s *Screen) Err() error { return s.lastErr }

// Busy reports whether a submission is in flight; the submit control is
// disabled meanwhile.
func (s *Screen) Busy() bool { return s.status == Sending }

// SetRating selects a star. Ignored while busy.
func (s *Screen) SetRating(r int) {
	if s.Busy() {
		return
	}
	if r < 0 || r > MaxRating {
		return
	}
	s.Form.Rating = r
}

// Begin validates the form and marks the screen busy. It returns the
// snapshot to send. Validation failures leave the screen unchanged.
func (s *Screen) Begin() (Form, error) {
	if s.Busy() {
		return Form{}, ErrInFlight
	}
	if err := s.Form.Validate(); err != nil {
		return Form{}, err
	}
	s.status = Sending
	s.lastErr = nil
	return s.Form, nil
}

// Finish records the outcome of the attempt started by Begin.
func (s *Screen) Finish(err error) {
	if err != nil {
		s.status = Failed
		s.lastErr = err
		return
	}
	s.Form.Clear()
	s.status = Sent
}

// Submit runs Begin, the request and Finish in one call.
func (s *Screen) Submit(ctx context.Context, sub Submitter) error {
	f, err := s.Begin()
	if err != nil {
		return err
	}
	err = sub.Submit(ctx, f)
	s.Finish(err)
	return err
}

// Retry starts a fresh, independent attempt with the unchanged form.
func (s *Screen) Retry(ctx context.Context, sub Submitter) error {
	return s.Submit(ctx, sub)
}

// Dismiss closes the failure prompt without retrying.
func (s *Screen) Dismiss() {
	if s.status == Failed {
		s.status = Idle
	}
}

// Acknowledge closes the success message and schedules Back.
func (s *Screen) Acknowledge() {
	if s.status != Sent {
		return
	}
	s.status = Idle
	if s.Back != nil {
		s.after(s.BackDelay, s.Back)
	}
}
