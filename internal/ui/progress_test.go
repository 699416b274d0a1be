package ui

import (
	"errors"
	"strings"
	"testing"

	"provcheck/internal/driver"
)

func TestTrackerCountsOutcomes(t *testing.T) {
	files := []string{"a_test.php", "b_test.php", "c_test.php"}
	tr := newTracker(files)

	events := []driver.Event{
		{File: "a_test.php", Stage: driver.StageLoad, Status: driver.StatusQueued},
		{File: "a_test.php", Stage: driver.StageAnalyze, Status: driver.StatusWorking},
		{File: "a_test.php", Stage: driver.StageAnalyze, Status: driver.StatusDone},
		{File: "b_test.php", Stage: driver.StageCache, Status: driver.StatusDone},
		{File: "b_test.php", Stage: driver.StageAnalyze, Status: driver.StatusDone},
		{File: "c_test.php", Stage: driver.StageAnalyze, Status: driver.StatusError, Err: errors.New("boom")},
	}
	for _, ev := range events {
		if !tr.apply(ev) {
			t.Fatalf("event %+v ignored", ev)
		}
	}
	if tr.apply(driver.Event{File: "unknown.php", Status: driver.StatusDone}) {
		t.Fatal("unknown file must be ignored")
	}
	if tr.apply(driver.Event{File: "a_test.php", Stage: driver.StageLoad, Status: driver.StatusWorking}) {
		t.Fatal("finished file must not change")
	}

	if tr.finished != 3 || tr.cached != 1 || tr.failed != 1 {
		t.Fatalf("finished=%d cached=%d failed=%d", tr.finished, tr.cached, tr.failed)
	}
	if tr.rows[2].phase != phaseError || tr.fraction() != 1 {
		t.Fatalf("phase = %v, fraction = %v", tr.rows[2].phase, tr.fraction())
	}
}

func TestProgressViewHeader(t *testing.T) {
	events := make(chan driver.Event)
	m := NewProgressModel("checking", []string{"a_test.php", "b_test.php"}, events).(*progressModel)
	m.Update(eventMsg{File: "a_test.php", Stage: driver.StageCache, Status: driver.StatusDone})
	m.Update(eventMsg{File: "a_test.php", Stage: driver.StageAnalyze, Status: driver.StatusDone})
	m.Update(eventMsg{File: "b_test.php", Stage: driver.StageAnalyze, Status: driver.StatusWorking})

	view := m.View()
	if !strings.Contains(view, "checking 1/2, 1 cached") || !strings.Contains(view, "analyzing") {
		t.Fatalf("unexpected view:\n%s", view)
	}

	m.Update(closedMsg{})
	if !strings.Contains(m.View(), "done: checking 1/2") {
		t.Fatalf("unexpected final view:\n%s", m.View())
	}
}

func TestRecentListIsBounded(t *testing.T) {
	var files []string
	for i := range visibleFiles + 5 {
		files = append(files, strings.Repeat("x", i+1)+".php")
	}
	tr := newTracker(files)
	for _, f := range files {
		tr.apply(driver.Event{File: f, Stage: driver.StageAnalyze, Status: driver.StatusWorking})
	}
	tr.apply(driver.Event{File: files[len(files)-2], Stage: driver.StageAnalyze, Status: driver.StatusWorking})
	if len(tr.recent) != visibleFiles {
		t.Fatalf("recent = %d", len(tr.recent))
	}
	if tr.recent[len(tr.recent)-1] != len(files)-2 {
		t.Fatal("the most recently touched file must be last")
	}
}

func TestTruncate(t *testing.T) {
	for _, c := range []struct {
		in    string
		width int
		want  string
	}{
		{"abcdef", 10, "abcdef"},
		{"abcdefghij", 6, "abc..."},
		{"abcdef", 2, "ab"},
		{"abc", 0, "abc"},
	} {
		if got := truncate(c.in, c.width); got != c.want {
			t.Errorf("truncate(%q, %d) = %q, want %q", c.in, c.width, got, c.want)
		}
	}
}
