// Package rules applies the data provider rule table to resolved tags.
package rules

import (
	"strings"

	"provcheck/internal/config"
	"provcheck/internal/decl"
	"provcheck/internal/diag"
	"provcheck/internal/resolve"
)

// StaticPlanner decides how a non-static provider can be made static. It
// returns the fixability and, unless that is none, the fix to attach.
type StaticPlanner func(f *decl.File, m *decl.Method) (diag.Fixability, *diag.Fix)

// Checker holds what every rule needs. It keeps no state between Check calls.
type Checker struct {
	Rules   config.Rules
	Planner StaticPlanner
}

// Check evaluates every rule for every resolution. Rules are independent:
// one provider can collect several diagnostics. Provider-shaped diagnostics
// go through a DedupReporter so a provider shared by several tags is
// reported once per rule.
func (c *Checker) Check(f *decl.File, resolutions []resolve.Resolution, r diag.Reporter) {
	dedup := diag.NewDedupReporter(r)
	for i := range resolutions {
		res := &resolutions[i]
		c.checkTag(res, r)
		if res.Outcome == resolve.Found {
			c.checkProvider(f, res.Provider, dedup)
		}
	}
}

func (c *Checker) checkTag(res *resolve.Resolution, r diag.Reporter) {
	tag := res.Tag
	if tag.CaseMismatch {
		diag.ReportError(r, diag.TagWrongCase, tag.Span, tag.Line,
			msgWrongCase(tag.Keyword, c.Rules.TagKeyword)).Emit()
	}

	switch res.Outcome {
	case resolve.Malformed:
		diag.ReportError(r, diag.TagMalformed, tag.Span, tag.Line, msgMalformed(tag.Test.Name)).Emit()
		return
	case resolve.Skipped:
		return
	}

	if res.HasParen {
		diag.ReportWarning(r, diag.TagParenthesis, tag.RefSpan, tag.Line, msgParenthesis(tag.Reference)).Emit()
	}
	if res.Outcome == resolve.NotFound {
		diag.ReportError(r, diag.TagTargetNotFound, tag.RefSpan, tag.Line, msgNotFound(res.Name)).Emit()
	}
}

func (c *Checker) checkProvider(f *decl.File, m *decl.Method, r diag.Reporter) {
	s := f.Stream
	span := s.At(m.NameTok).Span
	line := m.Line

	switch m.Visibility {
	case decl.VisUnspecified:
		diag.ReportError(r, diag.ProvNoVisibility, span, line, msgNoVisibility(m.Name)).Emit()
	case decl.VisPublic:
	default:
		diag.ReportError(r, diag.ProvNotPublic, span, line, msgNotPublic(m.Name)).Emit()
	}

	if strings.HasPrefix(m.Name, c.Rules.TestPrefix) {
		diag.ReportError(r, diag.ProvTestPrefix, span, line, msgTestPrefix(c.Rules.TestPrefix, m.Name)).Emit()
	}

	if m.Binding == decl.BindInstance {
		b := diag.ReportWarning(r, diag.ProvNotStatic, span, line, msgNotStatic(m.Name))
		if c.Planner != nil {
			fixability, fix := c.Planner(f, m)
			b.WithFixability(fixability)
			if fix != nil {
				b.WithFix(*fix)
			}
		}
		b.Emit()
	}

	if !m.Shape.Accepted() {
		diag.ReportError(r, diag.ProvBadReturnType, span, line, msgBadReturn(m.Name)).Emit()
	}
}
