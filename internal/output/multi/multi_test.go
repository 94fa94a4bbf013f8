package multi

import (
	"context"
	"errors"
	"testing"

	"github.com/ChinmaySinha/SLM-for-Academic-Calendar-Interpretation/internal/model"
)

type recordingOutput struct {
	events   []model.Event
	writeErr error
	closeErr error
	closed   bool
}

func (r *recordingOutput) Write(_ context.Context, ev model.Event) error {
	if r.writeErr != nil {
		return r.writeErr
	}
	r.events = append(r.events, ev)
	return nil
}

func (r *recordingOutput) Close() error {
	r.closed = true
	return r.closeErr
}

func TestWriteFansOut(t *testing.T) {
	a := &recordingOutput{}
	b := &recordingOutput{}
	m := New(a, b)

	ev := model.Event{ID: 1, DetailsText: "Pongal Holidays"}
	if err := m.Write(context.Background(), ev); err != nil {
		t.Fatalf("write: %v", err)
	}
	if len(a.events) != 1 || len(b.events) != 1 {
		t.Errorf("fan-out counts: a=%d b=%d", len(a.events), len(b.events))
	}
}

func TestWriteContinuesPastFailure(t *testing.T) {
	failed := &recordingOutput{writeErr: errors.New("disk full")}
	ok := &recordingOutput{}
	m := New(failed, ok)

	err := m.Write(context.Background(), model.Event{ID: 1, DetailsText: "Republic Day"})
	if err == nil {
		t.Fatal("expected error from failing output")
	}
	if len(ok.events) != 1 {
		t.Error("healthy output did not receive the event")
	}
}

func TestCloseClosesAll(t *testing.T) {
	a := &recordingOutput{closeErr: errors.New("flush failed")}
	b := &recordingOutput{}
	m := New(a, b)

	if err := m.Close(); err == nil {
		t.Fatal("expected close error")
	}
	if !a.closed || !b.closed {
		t.Errorf("closed: a=%v b=%v", a.closed, b.closed)
	}
}
