package diag

import "provcheck/internal/source"

// Reporter receives diagnostics as rules produce them.
type Reporter interface {
	Report(d Diagnostic)
}

// BagReporter adds into a Bag, silently dropping what exceeds its limit.
type BagReporter struct{ Bag *Bag }

func (r BagReporter) Report(d Diagnostic) {
	if r.Bag != nil {
		r.Bag.Add(d)
	}
}

// ReportBuilder lets a rule attach notes and fixes before the diagnostic
// reaches its Reporter. Emit sends it at most once.
type ReportBuilder struct {
	to   Reporter
	d    Diagnostic
	sent bool
}

func NewReportBuilder(r Reporter, sev Severity, code Code, primary source.Span, line uint32, msg string) *ReportBuilder {
	return &ReportBuilder{to: r, d: New(sev, code, primary, line, msg)}
}

func ReportError(r Reporter, code Code, primary source.Span, line uint32, msg string) *ReportBuilder {
	return NewReportBuilder(r, SevError, code, primary, line, msg)
}

func ReportWarning(r Reporter, code Code, primary source.Span, line uint32, msg string) *ReportBuilder {
	return NewReportBuilder(r, SevWarning, code, primary, line, msg)
}

func (b *ReportBuilder) WithNote(sp source.Span, msg string) *ReportBuilder {
	b.d = b.d.WithNote(sp, msg)
	return b
}

func (b *ReportBuilder) WithFix(fix Fix) *ReportBuilder {
	b.d = b.d.WithFix(fix)
	return b
}

func (b *ReportBuilder) WithFixability(f Fixability) *ReportBuilder {
	b.d = b.d.WithFixability(f)
	return b
}

func (b *ReportBuilder) Emit() {
	if b.sent || b.to == nil {
		return
	}
	b.sent = true
	b.to.Report(b.d)
}

// Diagnostic returns what Emit would send.
func (b *ReportBuilder) Diagnostic() Diagnostic { return b.d }
