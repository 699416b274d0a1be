package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"provcheck/internal/config"
	"provcheck/internal/driver"
	"provcheck/internal/observ"
)

// addAnalysisFlags registers the flags shared by check and fix.
func addAnalysisFlags(cmd *cobra.Command) {
	cmd.Flags().Int("jobs", 0, "max parallel workers (0 = auto)")
	cmd.Flags().Bool("cache", false, "reuse per-file results from the disk cache")
	cmd.Flags().String("tag", "", "data provider tag keyword (default @dataProvider)")
	cmd.Flags().String("test-prefix", "", "test method name prefix (default test_)")
	cmd.Flags().StringSlice("exclude", nil, "file or directory patterns to skip")
}

// settings is the merged result of defaults, provcheck.toml and flags.
type settings struct {
	file    config.File
	opts    driver.Options
	timer   *observ.Timer
	quiet   bool
	maxDiag int
}

// loadConfig reads --config or discovers provcheck.toml from target.
func loadConfig(cmd *cobra.Command, target string) (config.File, bool, error) {
	path, err := cmd.Root().PersistentFlags().GetString("config")
	if err != nil {
		return config.File{}, false, err
	}
	if path != "" {
		cfg, err := config.Load(path)
		return cfg, true, err
	}
	return config.Discover(target)
}

func (app *cli) loadSettings(cmd *cobra.Command, target string) (*settings, error) {
	cfg, found, err := loadConfig(cmd, target)
	if err != nil {
		return nil, err
	}
	if found {
		app.log.WithField("config", cfg.Path).Debug("using config file")
	}

	flags := cmd.Flags()
	rules := cfg.Rules
	if flags.Changed("tag") {
		if rules.TagKeyword, err = flags.GetString("tag"); err != nil {
			return nil, err
		}
	}
	if flags.Changed("test-prefix") {
		if rules.TestPrefix, err = flags.GetString("test-prefix"); err != nil {
			return nil, err
		}
	}
	if err := rules.Validate(); err != nil {
		return nil, fmt.Errorf("invalid rules: %w", err)
	}

	jobs := cfg.Check.Jobs
	if flags.Changed("jobs") {
		if jobs, err = flags.GetInt("jobs"); err != nil {
			return nil, err
		}
	}
	exclude, err := flags.GetStringSlice("exclude")
	if err != nil {
		return nil, err
	}
	useCache := cfg.Check.Cache
	if flags.Changed("cache") {
		if useCache, err = flags.GetBool("cache"); err != nil {
			return nil, err
		}
	}

	persistent := cmd.Root().PersistentFlags()
	maxDiag, err := persistent.GetInt("max-diagnostics")
	if err != nil {
		return nil, err
	}
	showTimings, err := persistent.GetBool("timings")
	if err != nil {
		return nil, err
	}
	quiet, err := persistent.GetBool("quiet")
	if err != nil {
		return nil, err
	}

	s := &settings{
		file:    cfg,
		quiet:   quiet,
		maxDiag: maxDiag,
		opts: driver.Options{
			Rules:          rules,
			Jobs:           jobs,
			MaxDiagnostics: maxDiag,
			Exclude:        append(append([]string(nil), cfg.Check.Exclude...), exclude...),
			Log:            app.log,
		},
	}
	if showTimings {
		s.timer = observ.NewTimer()
		s.opts.Timer = s.timer
	}
	if useCache {
		cache, err := driver.OpenDiskCache("provcheck")
		if err != nil {
			app.log.WithError(err).Warn("disk cache disabled")
		} else {
			s.opts.Cache = cache
		}
	}
	return s, nil
}

func targetArg(args []string) string {
	if len(args) == 0 {
		return "."
	}
	return args[0]
}
