package app

import (
	"strings"
	"testing"
	"time"
)

func TestMetricsRecord(t *testing.T) {
	m := NewMetrics()
	m.RecordFrame(10 * time.Millisecond)
	m.RecordFrame(20 * time.Millisecond)
	m.RecordEvent(time.Millisecond, false)
	m.RecordEvent(3*time.Millisecond, true)

	s := m.Snapshot()
	if s.Frames != 2 || s.AvgFrame != 15*time.Millisecond || s.MaxFrame != 20*time.Millisecond {
		t.Errorf("unexpected frame metrics %+v", s)
	}
	if s.Events != 2 || s.AvgEvent != 2*time.Millisecond || s.MaxEvent != 3*time.Millisecond {
		t.Errorf("unexpected event metrics %+v", s)
	}
	if s.EventErrors != 1 {
		t.Errorf("expected 1 failed event, got %d", s.EventErrors)
	}
	if !strings.Contains(s.String(), "2 frames") {
		t.Errorf("unexpected summary %q", s.String())
	}
}

func TestMetricsEmpty(t *testing.T) {
	s := NewMetrics().Snapshot()
	if s.Frames != 0 || s.AvgFrame != 0 || s.AvgEvent != 0 {
		t.Errorf("expected zero values, got %+v", s)
	}
}

func TestRunRecordsMetrics(t *testing.T) {
	a := newTestApp(t, "", "")
	a.backend.PostEvent(typed('a'))
	a.backend.PostEvent(ctrl('q'))
	a.backend.PostEvent(ctrl('q'))

	if err := a.Run(t.Context()); err != nil {
		t.Fatalf("Run: %v", err)
	}
	s := a.Metrics().Snapshot()
	if s.Events != 3 {
		t.Errorf("expected 3 events, got %d", s.Events)
	}
	if s.EventErrors != 1 {
		t.Errorf("expected the unsaved-changes warning to count as a failure, got %d", s.EventErrors)
	}
	if s.Frames < 3 {
		t.Errorf("expected a frame per handled event, got %d", s.Frames)
	}
}
