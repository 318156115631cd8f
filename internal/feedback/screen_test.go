package feedback

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestScreenRetry(t *testing.T) {
	srv := newFormServer(t, status(500, `{"error":"boom"}`))
	c := newClient(srv.URL)
	s := NewScreen(nil)
	s.Form = Form{Text: "Great app", Email: "a@b.c"}
	s.SetRating(4)

	err := s.Submit(context.Background(), c)
	if err == nil || s.Status() != Failed || s.Err() != err {
		t.Fatalf("first attempt: err=%v status=%v", err, s.Status())
	}
	if s.Form != (Form{Text: "Great app", Email: "a@b.c", Rating: 4}) {
		t.Fatalf("form changed after failure: %+v", s.Form)
	}

	if err := s.Retry(context.Background(), c); err != nil {
		t.Fatalf("retry: %v", err)
	}
	if s.Status() != Sent || s.Form != (Form{}) {
		t.Errorf("after success: status=%v form=%+v", s.Status(), s.Form)
	}

	reqs := srv.requests()
	if len(reqs) != 2 {
		t.Fatalf("requests = %d", len(reqs))
	}
	for k, v := range reqs[0] {
		if reqs[1][k] != v {
			t.Errorf("retry %s = %q, first = %q", k, reqs[1][k], v)
		}
	}
}

func TestScreenValidation(t *testing.T) {
	srv := newFormServer(t)
	s := NewScreen(nil)
	s.Form.Text = "Great app"

	if err := s.Submit(context.Background(), newClient(srv.URL)); !errors.Is(err, ErrNoRating) {
		t.Fatalf("err = %v", err)
	}
	if s.Status() != Idle || s.Form.Text != "Great app" {
		t.Errorf("status=%v form=%+v", s.Status(), s.Form)
	}
	if len(srv.requests()) != 0 {
		t.Error("request sent for invalid form")
	}
}

func TestScreenBusy(t *testing.T) {
	s := NewScreen(nil)
	s.Form = Form{Text: "x", Rating: 2}
	f, err := s.Begin()
	if err != nil || f.Rating != 2 {
		t.Fatalf("begin = %+v, %v", f, err)
	}
	if !s.Busy() {
		t.Fatal("not busy after Begin")
	}
	if _, err := s.Begin(); !errors.Is(err, ErrInFlight) {
		t.Errorf("second Begin err = %v", err)
	}
	s.SetRating(5)
	if s.Form.Rating != 2 {
		t.Error("rating changed while busy")
	}

	s.Finish(errors.New("offline"))
	s.Dismiss()
	if s.Status() != Idle || s.Form.Rating != 2 {
		t.Errorf("after dismiss: status=%v form=%+v", s.Status(), s.Form)
	}
}

func TestScreenAcknowledge(t *testing.T) {
	var backs int
	s := NewScreen(func() { backs++ })
	s.BackDelay = 250 * time.Millisecond
	var delay time.Duration
	s.after = func(d time.Duration, f func()) {
		delay = d
		f()
	}

	s.Acknowledge()
	if backs != 0 {
		t.Fatal("back before success")
	}

	s.Form = Form{Text: "x", Rating: 1}
	s.Begin()
	s.Finish(nil)
	s.Acknowledge()
	if backs != 1 || delay != 250*time.Millisecond {
		t.Errorf("backs=%d delay=%v", backs, delay)
	}
	if s.Status() != Idle {
		t.Errorf("status = %v", s.Status())
	}
	s.Acknowledge()
	if backs != 1 {
		t.Error("back ran twice")
	}
}
