package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	ox "github.com/Tinghao724/ox"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("ox %s (built %s)\n", ox.Version, ox.BuildDate)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
