package diag

import "provcheck/internal/source"

type dedupKey struct {
	code Code
	sev  Severity
	file source.FileID
	line uint32
	msg  string
}

func keyOf(d Diagnostic) dedupKey {
	return dedupKey{code: d.Code, sev: d.Severity, file: d.Primary.File, line: d.Line, msg: d.Message}
}

// DedupReporter forwards each distinct diagnostic once. A provider
// referenced by several tags is checked once per tag but reported once.
type DedupReporter struct {
	next Reporter
	seen map[dedupKey]struct{}
}

func NewDedupReporter(next Reporter) *DedupReporter {
	return &DedupReporter{next: next, seen: make(map[dedupKey]struct{})}
}

func (r *DedupReporter) Report(d Diagnostic) {
	k := keyOf(d)
	if _, dup := r.seen[k]; dup || r.next == nil {
		return
	}
	r.seen[k] = struct{}{}
	r.next.Report(d)
}
