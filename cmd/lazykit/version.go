package main

import (
	"fmt"

	"github.com/ZanzyTHEbar/lazykit/kit"
	"github.com/spf13/cobra"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of lazykit",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "lazykit version %s\n", kit.Version)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
