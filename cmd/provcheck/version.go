package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"provcheck/internal/diagfmt"
	"provcheck/internal/version"
)

type versionPayload struct {
	Tool string `json:"tool"`
	version.Info
}

func newVersionCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "version",
		Short: "Show provcheck build information",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			format, err := cmd.Flags().GetString("format")
			if err != nil {
				return err
			}
			switch format {
			case "pretty":
				_, err = fmt.Fprintln(cmd.OutOrStdout(), version.Line())
				return err
			case "json":
				return diagfmt.EncodeJSON(cmd.OutOrStdout(), versionPayload{Tool: "provcheck", Info: version.Current()})
			default:
				return fmt.Errorf("unknown format: %s", format)
			}
		},
	}
	cmd.Flags().String("format", "pretty", "output format (pretty|json)")
	return cmd
}
