// Package analysis runs the data provider pipeline over one file:
// index declarations, extract tags, resolve them, check the rules and plan
// fixes. It does no IO and keeps no state, so files can be analysed on any
// number of goroutines.
package analysis

import (
	"errors"
	"fmt"

	"provcheck/internal/annot"
	"provcheck/internal/config"
	"provcheck/internal/decl"
	"provcheck/internal/diag"
	"provcheck/internal/fix"
	"provcheck/internal/resolve"
	"provcheck/internal/rules"
	"provcheck/internal/source"
	"provcheck/internal/syntax"
)

// Result holds every intermediate model, mostly for the outline command and
// tests. Diagnostics are sorted by line.
type Result struct {
	Index       *decl.File
	Tags        []annot.Tag
	Resolutions []resolve.Resolution
	Diagnostics []diag.Diagnostic
}

// Run analyses file. An unparsable file yields an error wrapping
// syntax.ErrUnparsable and no diagnostics.
func Run(file *source.File, cfg config.Rules) (*Result, error) {
	s, err := syntax.Build(file)
	if err != nil {
		return nil, FileError(file, err)
	}
	return RunStream(s, cfg), nil
}

// FileError prefixes a build error with the path of file and, for a
// *syntax.Error, the line it points at.
func FileError(file *source.File, err error) error {
	var se *syntax.Error
	if errors.As(err, &se) {
		return fmt.Errorf("%s:%d: %w", file.Path, file.LineOf(se.Span.Start), err)
	}
	return fmt.Errorf("%s: %w", file.Path, err)
}

// RunStream analyses an already built stream.
func RunStream(s *syntax.Stream, cfg config.Rules) *Result {
	index := decl.Index(s, decl.Options{
		ArrayTypes:    cfg.ArrayTypes,
		IterableTypes: cfg.IterableTypes,
	})
	tags := annot.Extract(index, cfg)
	resolutions := resolve.Resolve(tags)

	bag := diag.NewBag(0)
	checker := rules.Checker{Rules: cfg, Planner: fix.PlanStatic}
	checker.Check(index, resolutions, diag.BagReporter{Bag: bag})
	bag.Sort()

	return &Result{
		Index:       index,
		Tags:        tags,
		Resolutions: resolutions,
		Diagnostics: bag.Items(),
	}
}
