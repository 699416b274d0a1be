package driver

import (
	"context"
	"fmt"

	"provcheck/internal/fix"
)

// FixResult pairs the check that produced the fixes with what was applied.
type FixResult struct {
	Check *Result
	Apply *fix.ApplyResult
}

// Fix checks target and applies the selected fixes. Fixes are gathered from
// every file's diagnostics, not from the capped Bag.
func Fix(ctx context.Context, target string, opts Options, applyOpts fix.ApplyOptions) (*FixResult, error) {
	checked, err := Check(ctx, target, opts)
	if err != nil {
		return nil, err
	}
	stop := opts.Timer.Start("fix")
	applied, err := fix.Apply(checked.FileSet, checked.AllDiagnostics(), applyOpts)
	note := ""
	if applied != nil {
		note = fmt.Sprintf("%d applied, %d skipped", len(applied.Applied), len(applied.Skipped))
	}
	stop(note)

	out := &FixResult{Check: checked, Apply: applied}
	if err != nil {
		return out, err
	}
	for _, a := range applied.Applied {
		logger(opts).WithField("file", a.PrimaryPath).WithField("fix", a.ID).Info("fix applied")
	}
	return out, nil
}
