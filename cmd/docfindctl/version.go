package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/kailas-cloud/docfind/internal/version"
)

func versionCMD() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print build information",
		RunE: func(cmd *cobra.Command, _ []string) error {
			_, err := fmt.Fprintf(cmd.OutOrStdout(), "docfindctl %s\n", version.Get())
			return err
		},
	}
}
