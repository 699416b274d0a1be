package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"provcheck/internal/diag"
	"provcheck/internal/diagfmt"
	"provcheck/internal/driver"
	"provcheck/internal/source"
	"provcheck/internal/version"
)

func newCheckCmd(app *cli) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "check [flags] [file.php|directory]",
		Short: "Check data provider usage in PHP test files",
		Long: `Check a PHP test file, or every *.php file within a directory, for
@dataProvider problems. Exits with status 1 when an error is reported or a
file cannot be parsed.`,
		Args: cobra.MaximumNArgs(1),
		RunE: app.runCheck,
	}
	addAnalysisFlags(cmd)
	cmd.Flags().String("format", "", "output format (pretty|short|json|sarif), default pretty")
	cmd.Flags().Bool("no-warnings", false, "drop warnings from the output")
	cmd.Flags().Bool("warnings-as-errors", false, "report warnings as errors")
	cmd.Flags().String("ui", "auto", "progress UI for directories (auto|on|off)")
	cmd.Flags().String("path-mode", "auto", "how file paths are printed (auto|absolute|relative|basename)")
	cmd.Flags().Bool("with-notes", false, "include diagnostic notes in output")
	cmd.Flags().Bool("suggest", false, "include fix suggestions in output")
	cmd.Flags().Bool("preview", false, "show what the suggested fixes would change (implies --suggest)")
	return cmd
}

type checkFlags struct {
	format           string
	noWarnings       bool
	warningsAsErrors bool
	ui               uiMode
	pathMode         diagfmt.PathMode
	withNotes        bool
	suggest          bool
	preview          bool
}

func readCheckFlags(cmd *cobra.Command, defaultFormat string) (checkFlags, error) {
	var (
		cf  checkFlags
		err error
	)
	flags := cmd.Flags()
	cf.format = defaultFormat
	if flags.Changed("format") || cf.format == "" {
		if cf.format, err = flags.GetString("format"); err != nil {
			return cf, fmt.Errorf("failed to get format flag: %w", err)
		}
	}
	if cf.format == "" {
		cf.format = "pretty"
	}
	switch cf.format {
	case "pretty", "short", "json", "sarif":
	default:
		return cf, fmt.Errorf("unknown format: %s", cf.format)
	}

	if cf.noWarnings, err = flags.GetBool("no-warnings"); err != nil {
		return cf, err
	}
	if cf.warningsAsErrors, err = flags.GetBool("warnings-as-errors"); err != nil {
		return cf, err
	}
	if cf.noWarnings && cf.warningsAsErrors {
		return cf, fmt.Errorf("no-warnings and warnings-as-errors flags cannot be used together")
	}

	uiValue, err := flags.GetString("ui")
	if err != nil {
		return cf, err
	}
	if cf.ui, err = readUIMode(uiValue); err != nil {
		return cf, err
	}

	pathValue, err := flags.GetString("path-mode")
	if err != nil {
		return cf, err
	}
	var ok bool
	if cf.pathMode, ok = diagfmt.ParsePathMode(pathValue); !ok {
		return cf, fmt.Errorf("invalid --path-mode value %q", pathValue)
	}

	if cf.withNotes, err = flags.GetBool("with-notes"); err != nil {
		return cf, err
	}
	if cf.suggest, err = flags.GetBool("suggest"); err != nil {
		return cf, err
	}
	if cf.preview, err = flags.GetBool("preview"); err != nil {
		return cf, err
	}
	cf.suggest = cf.suggest || cf.preview
	return cf, nil
}

func (app *cli) runCheck(cmd *cobra.Command, args []string) error {
	target := targetArg(args)
	s, err := app.loadSettings(cmd, target)
	if err != nil {
		return err
	}
	cf, err := readCheckFlags(cmd, s.file.Check.Format)
	if err != nil {
		return err
	}

	info, err := os.Stat(target)
	if err != nil {
		return fmt.Errorf("failed to stat path: %w", err)
	}

	var res *driver.Result
	if info.IsDir() && cf.format == "pretty" && !s.quiet && shouldUseTUI(cf.ui, cmd.ErrOrStderr()) {
		files, listErr := driver.ListPHPFiles(target, s.opts.Exclude)
		if listErr != nil {
			return fmt.Errorf("check failed: %w", listErr)
		}
		res, err = runCheckWithUI(cmd.Context(), cmd.ErrOrStderr(), "checking "+target, target, files, s.opts)
	} else {
		res, err = driver.Check(cmd.Context(), target, s.opts)
	}
	if err != nil {
		return fmt.Errorf("check failed: %w", err)
	}

	sel := selectDiagnostics(res.AllDiagnostics(), cf, s.opts.MaxDiagnostics)
	bag := sel.bag

	out, errOut := cmd.OutOrStdout(), cmd.ErrOrStderr()
	switch cf.format {
	case "pretty":
		diagfmt.Pretty(out, bag, res.FileSet, diagfmt.PrettyOpts{
			Color:       !color.NoColor,
			PathMode:    cf.pathMode,
			ShowNotes:   cf.withNotes,
			ShowFixes:   cf.suggest,
			ShowPreview: cf.preview,
		})
		printFailures(errOut, res.Failures)
		if !s.quiet {
			printSummary(errOut, res, sel)
		}
	case "short":
		diagfmt.Short(out, bag, res.FileSet, cf.pathMode)
		printFailures(errOut, res.Failures)
	case "json":
		output := diagfmt.BuildDiagnosticsOutput(bag, res.FileSet, diagfmt.JSONOpts{
			IncludePositions: true,
			PathMode:         cf.pathMode,
			IncludeNotes:     cf.withNotes,
			IncludeFixes:     cf.suggest,
			IncludePreviews:  cf.preview,
		})
		for _, f := range res.Failures {
			output.Failures = append(output.Failures, diagfmt.FailureJSON{
				File:  failurePath(f.Path, res.FileSet, cf.pathMode),
				Error: f.Err.Error(),
			})
		}
		if err := diagfmt.EncodeJSON(out, output); err != nil {
			return fmt.Errorf("failed to format diagnostics: %w", err)
		}
	case "sarif":
		meta := diagfmt.SarifRunMeta{
			ToolName:       "provcheck",
			ToolVersion:    version.Version,
			InvocationArgs: os.Args,
		}
		if err := diagfmt.Sarif(out, bag, res.FileSet, meta); err != nil {
			return fmt.Errorf("failed to format diagnostics: %w", err)
		}
		printFailures(errOut, res.Failures)
	}

	printTimings(errOut, s.timer)

	if len(res.Failures) > 0 || sel.errs > 0 {
		return exitError{code: 1}
	}
	return nil
}

// selection is what a run reports. The counts cover every diagnostic that
// passed the filters; only bag is capped.
type selection struct {
	bag         *diag.Bag
	errs, warns int
}

// selectDiagnostics applies --no-warnings and --warnings-as-errors to all,
// then fills a bag of at most limit entries.
func selectDiagnostics(all []diag.Diagnostic, cf checkFlags, limit int) selection {
	sel := selection{bag: diag.NewBag(limit)}
	for _, d := range all {
		if d.Severity != diag.SevError {
			if cf.noWarnings {
				continue
			}
			if cf.warningsAsErrors {
				d.Severity = diag.SevError
			}
		}
		if d.Severity == diag.SevError {
			sel.errs++
		} else {
			sel.warns++
		}
		sel.bag.Add(d)
	}
	return sel
}

func (sel selection) truncated() bool {
	return sel.bag.Len() < sel.errs+sel.warns
}

func printFailures(w io.Writer, failures []driver.FileFailure) {
	for _, f := range failures {
		fmt.Fprintf(w, "%s: %v\n", color.RedString("failed"), f.Err)
	}
}

func printSummary(w io.Writer, res *driver.Result, sel selection) {
	line := fmt.Sprintf("%s, %s in %s", plural(sel.errs, "error"), plural(sel.warns, "warning"), plural(res.Stats.Files, "file"))
	if res.Stats.CacheHits > 0 {
		line += fmt.Sprintf(" (%d cached)", res.Stats.CacheHits)
	}
	if n := len(res.Failures); n > 0 {
		line += fmt.Sprintf(", %s", plural(n, "unparsable file"))
	}
	if sel.truncated() {
		line += fmt.Sprintf(" (output limited to %d)", sel.bag.Cap())
	}
	fmt.Fprintln(w, line)
}

func plural(n int, word string) string {
	if n == 1 {
		return fmt.Sprintf("%d %s", n, word)
	}
	return fmt.Sprintf("%d %ss", n, word)
}

func failurePath(path string, fs *source.FileSet, mode diagfmt.PathMode) string {
	switch mode {
	case diagfmt.PathModeAbsolute:
		if abs, err := filepath.Abs(path); err == nil {
			return filepath.ToSlash(abs)
		}
	case diagfmt.PathModeRelative:
		if rel, err := source.RelativePath(path, fs.BaseDir()); err == nil {
			return rel
		}
	case diagfmt.PathModeBasename:
		return filepath.Base(path)
	}
	return filepath.ToSlash(path)
}
