package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"provcheck/internal/prof"
	"provcheck/internal/version"
)

// exitError carries a process exit code for findings that were already
// reported. main exits with the code and prints nothing more.
type exitError struct {
	code int
}

func (e exitError) Error() string {
	return fmt.Sprintf("exit status %d", e.code)
}

// cli holds what the subcommands share once flags are parsed.
type cli struct {
	log     *logrus.Logger
	profile *prof.Session
}

func newRootCmd(app *cli, stdout, stderr io.Writer) *cobra.Command {
	root := &cobra.Command{
		Use:   "provcheck",
		Short: "PHPUnit data provider checker",
		Long: `provcheck validates the @dataProvider convention in PHPUnit test files:
tag spelling, provider resolution, naming, visibility, return type and
static binding. Some findings can be fixed automatically.`,
		Version:       version.Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return app.setup(cmd)
		},
	}
	root.SetOut(stdout)
	root.SetErr(stderr)

	root.PersistentFlags().String("color", "auto", "colorize output (auto|on|off)")
	root.PersistentFlags().Bool("quiet", false, "suppress non-essential output")
	root.PersistentFlags().Bool("timings", false, "show timing information")
	root.PersistentFlags().Int("max-diagnostics", 100, "maximum number of diagnostics to show (0 = unlimited)")
	root.PersistentFlags().String("log-level", "warn", "log level (trace|debug|info|warn|error)")
	root.PersistentFlags().String("log-format", "text", "log format (text|json)")
	root.PersistentFlags().String("config", "", "path to provcheck.toml (default: discovered from the target upwards)")
	root.PersistentFlags().String("cpu-profile", "", "write a CPU profile to this file")
	root.PersistentFlags().String("mem-profile", "", "write a heap profile to this file on exit")
	root.PersistentFlags().String("runtime-trace", "", "write a runtime trace to this file")

	root.AddCommand(
		newCheckCmd(app),
		newFixCmd(app),
		newTokenizeCmd(),
		newOutlineCmd(app),
		newVersionCmd(),
	)
	return root
}

func (app *cli) setup(cmd *cobra.Command) error {
	flags := cmd.Root().PersistentFlags()
	level, err := flags.GetString("log-level")
	if err != nil {
		return err
	}
	format, err := flags.GetString("log-format")
	if err != nil {
		return err
	}
	app.log, err = newLogger(cmd.ErrOrStderr(), level, format)
	if err != nil {
		return err
	}

	mode, err := flags.GetString("color")
	if err != nil {
		return err
	}
	useColor, err := colorEnabled(mode, cmd.OutOrStdout())
	if err != nil {
		return err
	}
	color.NoColor = !useColor

	var popts prof.Options
	if popts.CPU, err = flags.GetString("cpu-profile"); err != nil {
		return err
	}
	if popts.Mem, err = flags.GetString("mem-profile"); err != nil {
		return err
	}
	if popts.Trace, err = flags.GetString("runtime-trace"); err != nil {
		return err
	}
	if app.profile, err = prof.Start(popts); err != nil {
		return fmt.Errorf("failed to start profiling: %w", err)
	}
	return nil
}

// close stops the profilers once the command has returned.
func (app *cli) close(stderr io.Writer) {
	if err := app.profile.Stop(); err != nil {
		fmt.Fprintf(stderr, "failed to write profiles: %v\n", err)
	}
}

// colorEnabled resolves --color. auto means a terminal without NO_COLOR.
func colorEnabled(mode string, w io.Writer) (bool, error) {
	switch mode {
	case "on":
		return true, nil
	case "off":
		return false, nil
	case "auto", "":
		if os.Getenv("NO_COLOR") != "" {
			return false, nil
		}
		f, ok := w.(*os.File)
		return ok && isTerminal(f), nil
	default:
		return false, fmt.Errorf("invalid --color value %q (expected auto|on|off)", mode)
	}
}

func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}

func execute(args []string, stdout, stderr io.Writer) int {
	app := &cli{}
	defer app.close(stderr)
	root := newRootCmd(app, stdout, stderr)
	root.SetArgs(args)
	err := root.Execute()
	if err == nil {
		return 0
	}
	var exit exitError
	if errors.As(err, &exit) {
		return exit.code
	}
	fmt.Fprintf(stderr, "error: %v\n", err)
	return 2
}

func main() {
	os.Exit(execute(os.Args[1:], os.Stdout, os.Stderr))
}
