package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"provcheck/internal/diagfmt"
	"provcheck/internal/driver"
)

func newTokenizeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tokenize [flags] file.php",
		Short: "Dump the token stream of a PHP file",
		Long:  `Tokenize prints every token of a PHP file with its position and leading trivia. Lexer problems go to stderr.`,
		Args:  cobra.ExactArgs(1),
		RunE:  runTokenize,
	}
	cmd.Flags().String("format", "pretty", "output format (pretty|json)")
	return cmd
}

func runTokenize(cmd *cobra.Command, args []string) error {
	format, err := cmd.Flags().GetString("format")
	if err != nil {
		return fmt.Errorf("failed to get format flag: %w", err)
	}
	if format != "pretty" && format != "json" {
		return fmt.Errorf("unknown format: %s", format)
	}

	result, err := driver.Tokenize(args[0])
	if err != nil {
		return fmt.Errorf("tokenization failed: %w", err)
	}

	for _, p := range result.Problems {
		pos, _ := result.FileSet.Resolve(p.Span)
		fmt.Fprintf(cmd.ErrOrStderr(), "%s:%d:%d: %s: %s\n", result.File.Path, pos.Line, pos.Col, p.Kind, p.Msg)
	}

	switch format {
	case "json":
		return diagfmt.FormatTokensJSON(cmd.OutOrStdout(), result.Tokens, result.FileSet)
	default:
		return diagfmt.FormatTokensPretty(cmd.OutOrStdout(), result.Tokens, result.FileSet)
	}
}
