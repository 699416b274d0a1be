package observ

import (
	"fmt"
	"strings"
	"sync"
	"time"
)

// Timer records how long the stages of a run take. A nil *Timer accepts
// every call and records nothing, so callers never need to check for one.
// It is safe for concurrent use.
type Timer struct {
	mu    sync.Mutex
	order []string
	stats map[string]*stat
}

type stat struct {
	total   time.Duration
	samples int
	note    string
	// timed is set for phases measured with Start; those bound the wall time.
	timed bool
}

func NewTimer() *Timer {
	return &Timer{stats: make(map[string]*stat)}
}

func (t *Timer) entry(name string) *stat {
	s, ok := t.stats[name]
	if !ok {
		s = &stat{}
		t.stats[name] = s
		t.order = append(t.order, name)
	}
	return s
}

// Start begins timing name. Calling the returned function stops it and
// attaches note to the phase.
func (t *Timer) Start(name string) (stop func(note string)) {
	if t == nil {
		return func(string) {}
	}
	began := time.Now()
	return func(note string) {
		elapsed := time.Since(began)
		t.mu.Lock()
		defer t.mu.Unlock()
		s := t.entry(name)
		s.total += elapsed
		s.samples++
		s.note = note
		s.timed = true
	}
}

// Add accumulates one sample of d under name, e.g. per-file analysis time.
func (t *Timer) Add(name string, d time.Duration) {
	if t == nil {
		return
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	s := t.entry(name)
	s.total += d
	s.samples++
}

type PhaseReport struct {
	Name       string  `json:"name"`
	DurationMS float64 `json:"duration_ms"`
	Count      int     `json:"count,omitempty"`
	Note       string  `json:"note,omitempty"`
}

// Report lists phases in first-seen order. Accumulated phases overlap the
// timed phases that contain them, so WallMS is the longest timed phase.
type Report struct {
	WallMS float64       `json:"wall_ms"`
	Phases []PhaseReport `json:"phases"`
}

func (t *Timer) Report() Report {
	var r Report
	if t == nil {
		return r
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	var wall time.Duration
	for _, name := range t.order {
		s := t.stats[name]
		if s.timed {
			wall = max(wall, s.total)
		}
		r.Phases = append(r.Phases, PhaseReport{Name: name, DurationMS: millis(s.total), Count: s.samples, Note: s.note})
	}
	r.WallMS = millis(wall)
	return r
}

// Summary renders Report as an aligned text block headed "timings:".
func (t *Timer) Summary() string {
	r := t.Report()
	var b strings.Builder
	b.WriteString("timings:\n")
	line := func(name string, ms float64, extra string) {
		fmt.Fprintf(&b, "  %-20s %9.2f ms%s\n", name, ms, extra)
	}
	for _, p := range r.Phases {
		var extra string
		if p.Count > 1 {
			extra += fmt.Sprintf("  (%d samples)", p.Count)
		}
		if p.Note != "" {
			extra += "  // " + p.Note
		}
		line(p.Name, p.DurationMS, extra)
	}
	line("wall", r.WallMS, "")
	return b.String()
}

func millis(d time.Duration) float64 {
	return float64(d) / float64(time.Millisecond)
}
