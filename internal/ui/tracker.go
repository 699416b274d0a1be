package ui

import (
	"fmt"
	"slices"

	"provcheck/internal/driver"
)

// visibleFiles is how many recently active files the view lists.
const visibleFiles = 8

type phase uint8

const (
	phaseQueued phase = iota
	phaseLoading
	phaseCacheLookup
	phaseAnalyzing
	phaseCached
	phaseDone
	phaseError
)

var phases = [...]struct {
	label  string
	color  string
	weight float64
}{
	phaseQueued:      {"queued", "7", 0},
	phaseLoading:     {"loading", "6", 0.1},
	phaseCacheLookup: {"cache", "6", 0.3},
	phaseAnalyzing:   {"analyzing", "6", 0.5},
	phaseCached:      {"cached", "4", 0.3},
	phaseDone:        {"done", "2", 1},
	phaseError:       {"error", "1", 1},
}

func (p phase) String() string { return phases[p].label }

// phaseOf maps a driver event onto the row state it produces.
func phaseOf(ev driver.Event) phase {
	switch {
	case ev.Status == driver.StatusError:
		return phaseError
	case ev.Stage == driver.StageCache && ev.Status == driver.StatusDone:
		return phaseCached
	case ev.Status == driver.StatusDone:
		return phaseDone
	case ev.Status == driver.StatusQueued:
		return phaseQueued
	case ev.Stage == driver.StageLoad:
		return phaseLoading
	case ev.Stage == driver.StageCache:
		return phaseCacheLookup
	}
	return phaseAnalyzing
}

// final reports whether ev is the last event the driver sends for a file.
func final(ev driver.Event) bool {
	return ev.Status == driver.StatusError ||
		(ev.Stage == driver.StageAnalyze && ev.Status == driver.StatusDone)
}

type row struct {
	path  string
	phase phase
	final bool
}

// tracker folds driver events into per-file rows and run totals.
type tracker struct {
	rows   []row
	byPath map[string]int
	recent []int

	finished, failed, cached int
}

func newTracker(files []string) *tracker {
	t := &tracker{rows: make([]row, len(files)), byPath: make(map[string]int, len(files))}
	for i, f := range files {
		t.rows[i].path = f
		t.byPath[f] = i
	}
	return t
}

// apply records ev and reports whether anything changed. Events for unknown
// or already finished files are ignored.
func (t *tracker) apply(ev driver.Event) bool {
	i, ok := t.byPath[ev.File]
	if !ok || t.rows[i].final {
		return false
	}
	r := &t.rows[i]
	r.phase = phaseOf(ev)
	if r.phase == phaseCached {
		t.cached++
	}
	if final(ev) {
		r.final = true
		t.finished++
		if r.phase == phaseError {
			t.failed++
		}
	}
	t.recent = append(slices.DeleteFunc(t.recent, func(j int) bool { return j == i }), i)
	if extra := len(t.recent) - visibleFiles; extra > 0 {
		t.recent = t.recent[extra:]
	}
	return true
}

// fraction estimates overall completion in [0, 1].
func (t *tracker) fraction() float64 {
	if len(t.rows) == 0 {
		return 0
	}
	var sum float64
	for _, r := range t.rows {
		if r.final {
			sum++
		} else {
			sum += phases[r.phase].weight
		}
	}
	return sum / float64(len(t.rows))
}

func (t *tracker) summary(title string) string {
	s := fmt.Sprintf("%s %d/%d", title, t.finished, len(t.rows))
	if t.cached > 0 {
		s += fmt.Sprintf(", %d cached", t.cached)
	}
	if t.failed > 0 {
		s += fmt.Sprintf(", %d unparsable", t.failed)
	}
	return s
}
