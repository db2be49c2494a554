// Package cli is the heymumma command line.
package cli

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"
)

type BuildInfo struct {
	Version   string `json:"version"`
	Commit    string `json:"commit"`
	BuildTime string `json:"build_time"`
}

// NewRootCommand builds the command tree. With no subcommand it serves.
func NewRootCommand(out io.Writer, build BuildInfo) *cobra.Command {
	serve := newServeCommand()

	cmd := &cobra.Command{
		Use:           "heymumma",
		Short:         "Hey Mumma pregnancy tracker service",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          serve.RunE,
	}
	cmd.SetOut(out)
	cmd.SetErr(out)

	cmd.AddCommand(serve)
	cmd.AddCommand(newStoreCommand(out))
	cmd.AddCommand(newVersionCommand(out, build))
	return cmd
}

func newVersionCommand(out io.Writer, build BuildInfo) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "version",
		Short: "Print build version information",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if asJSON {
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				return enc.Encode(build)
			}

			_, err := fmt.Fprintf(out, "version=%s commit=%s build_time=%s\n", build.Version, build.Commit, build.BuildTime)
			return err
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Print version as JSON")
	return cmd
}
