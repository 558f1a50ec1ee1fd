package main

import (
	"os"

	"github.com/spf13/cobra"
)

func main() {
	if err := rootCMD().Execute(); err != nil {
		os.Exit(1)
	}
}

func rootCMD() *cobra.Command {
	var root = &cobra.Command{
		Use:          "docfindctl",
		Short:        "Search a YAML document corpus from the command line",
		SilenceUsage: true,
	}
	root.AddCommand(searchCMD(), suggestCMD(), versionCMD())
	return root
}
