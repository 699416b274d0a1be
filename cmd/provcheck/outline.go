package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"provcheck/internal/diagfmt"
	"provcheck/internal/driver"
)

func newOutlineCmd(app *cli) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "outline [flags] file.php",
		Short: "Print the classes, methods and provider tags of a PHP file",
		Long: `Outline shows what the checker sees in a file: every class scope with its
methods (visibility, binding, return shape, lines) and the data provider tags
of its test methods with their resolution.`,
		Args: cobra.ExactArgs(1),
		RunE: app.runOutline,
	}
	cmd.Flags().String("format", "pretty", "output format (pretty|json)")
	cmd.Flags().String("tag", "", "data provider tag keyword (default @dataProvider)")
	cmd.Flags().String("test-prefix", "", "test method name prefix (default test_)")
	return cmd
}

func (app *cli) runOutline(cmd *cobra.Command, args []string) error {
	format, err := cmd.Flags().GetString("format")
	if err != nil {
		return fmt.Errorf("failed to get format flag: %w", err)
	}
	if format != "pretty" && format != "json" {
		return fmt.Errorf("unknown format: %s", format)
	}

	path := args[0]
	cfg, _, err := loadConfig(cmd, path)
	if err != nil {
		return err
	}
	rules := cfg.Rules
	if cmd.Flags().Changed("tag") {
		rules.TagKeyword, _ = cmd.Flags().GetString("tag")
	}
	if cmd.Flags().Changed("test-prefix") {
		rules.TestPrefix, _ = cmd.Flags().GetString("test-prefix")
	}
	if err := rules.Validate(); err != nil {
		return fmt.Errorf("invalid rules: %w", err)
	}

	_, res, err := driver.Analyze(path, rules)
	if err != nil {
		return fmt.Errorf("outline failed: %w", err)
	}
	app.log.WithField("file", path).WithField("classes", len(res.Index.Classes)).Debug("outline built")

	classes := diagfmt.BuildOutline(res.Index, res.Resolutions)
	if format == "json" {
		return diagfmt.FormatOutlineJSON(cmd.OutOrStdout(), classes)
	}
	return diagfmt.FormatOutlinePretty(cmd.OutOrStdout(), classes)
}
