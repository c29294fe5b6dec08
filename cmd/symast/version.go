package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

// Build information. Populated at build-time.
var (
	BuildBranch  string
	BuildVersion string
	BuildTime    string
	Builder      string
)

func newVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "show version",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			w := cmd.OutOrStdout()
			fmt.Fprintf(w, "%-16s %s\n", "BuildBranch", BuildBranch)
			fmt.Fprintf(w, "%-16s %s\n", "BuildVersion", BuildVersion)
			fmt.Fprintf(w, "%-16s %s\n", "BuildTime", BuildTime)
			fmt.Fprintf(w, "%-16s %s\n", "Builder", Builder)
		},
	}
}
