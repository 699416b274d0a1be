package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"provcheck/internal/driver"
	"provcheck/internal/fix"
)

func newFixCmd(app *cli) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "fix [flags] [file.php|directory]",
		Short: "Apply available fixes to PHP test files",
		Long: `Check the target, then apply the proposed fixes. Without --all only the
first fix is applied. Fixes that need manual review are applied only with
--unsafe.`,
		Args: cobra.MaximumNArgs(1),
		RunE: app.runFix,
	}
	addAnalysisFlags(cmd)
	f := cmd.Flags()
	f.Bool("all", false, "apply all safe fixes")
	f.Bool("once", false, "apply the first available fix (default)")
	f.String("id", "", "apply fix with a specific identifier")
	f.Bool("unsafe", false, "also apply fixes that need manual review")
	f.Bool("dry-run", false, "report what would change without writing files")
	cmd.MarkFlagsMutuallyExclusive("all", "once", "id")
	return cmd
}

// readApplyOptions turns the fix flags into engine options.
func readApplyOptions(cmd *cobra.Command) (fix.ApplyOptions, error) {
	flags := cmd.Flags()
	var (
		opts     fix.ApplyOptions
		all      bool
		firstErr error
	)
	get := func(name string, into *bool) {
		v, err := flags.GetBool(name)
		*into = v
		firstErr = errors.Join(firstErr, err)
	}
	get("all", &all)
	get("unsafe", &opts.AllowUnsafe)
	get("dry-run", &opts.DryRun)
	id, err := flags.GetString("id")
	if err = errors.Join(firstErr, err); err != nil {
		return opts, err
	}

	switch {
	case id != "":
		opts.Mode, opts.TargetID = fix.ApplyModeID, id
	case all:
		opts.Mode = fix.ApplyModeAll
	default:
		opts.Mode = fix.ApplyModeOnce
	}
	return opts, nil
}

func (app *cli) runFix(cmd *cobra.Command, args []string) error {
	target := targetArg(args)
	applyOpts, err := readApplyOptions(cmd)
	if err != nil {
		return err
	}
	info, err := os.Stat(target)
	if err != nil {
		return fmt.Errorf("fix: %w", err)
	}
	// fix ids are derived per file, so they are only unique within one
	if info.IsDir() && applyOpts.Mode == fix.ApplyModeID {
		return fmt.Errorf("fix: --id can only be used with a single file")
	}

	s, err := app.loadSettings(cmd, target)
	if err != nil {
		return err
	}
	res, err := driver.Fix(cmd.Context(), target, s.opts, applyOpts)
	if res == nil {
		return fmt.Errorf("fix: %w", err)
	}
	failed := res.Check != nil && len(res.Check.Failures) > 0
	if failed {
		printFailures(cmd.ErrOrStderr(), res.Check.Failures)
	}
	reportErr := reportApply(cmd.OutOrStdout(), res.Apply, err, applyOpts.DryRun)
	printTimings(cmd.ErrOrStderr(), s.timer)
	switch {
	case reportErr != nil:
		return reportErr
	case failed:
		return exitError{code: 1}
	}
	return nil
}

// reportApply prints what the engine applied and skipped. Finding nothing
// to apply is not an error.
func reportApply(out io.Writer, res *fix.ApplyResult, applyErr error, dryRun bool) error {
	if res == nil {
		return applyErr
	}
	if applyErr != nil && !errors.Is(applyErr, fix.ErrNoFixes) {
		return applyErr
	}

	verb, files := "Applied", "Updated files:"
	if dryRun {
		verb, files = "Would apply", "Would update:"
	}
	if n := len(res.Applied); n > 0 {
		fmt.Fprintf(out, "%s %d fix(es):\n", verb, n)
		for _, a := range res.Applied {
			fmt.Fprintf(out, "  %s [%s] %s:%d (%d edits, %s)\n",
				a.Title, a.ID, orDefault(a.PrimaryPath, "(unknown location)"), a.Line, a.EditCount, a.Applicability)
		}
	}
	if len(res.FileChanges) > 0 {
		fmt.Fprintln(out, files)
		for _, c := range res.FileChanges {
			fmt.Fprintf(out, "  %s (%d edits)\n", c.Path, c.EditCount)
		}
	}
	if len(res.Skipped) > 0 {
		fmt.Fprintln(out, "Skipped fixes:")
		for _, s := range res.Skipped {
			label := "[" + orDefault(s.ID, "(unnamed)") + "]"
			if s.Title != "" {
				label = s.Title + " " + label
			}
			fmt.Fprintf(out, "  %s: %s\n", label, s.Reason)
		}
	}
	if len(res.Applied) == 0 {
		fmt.Fprintln(out, "No applicable fixes found.")
	}
	return nil
}

func orDefault(s, fallback string) string {
	if s == "" {
		return fallback
	}
	return s
}
