package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	ox "github.com/Tinghao724/ox"
)

var parseCmd = &cobra.Command{
	Use:   "parse FILE...",
	Short: "Check files for lexical and syntax errors",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runParse,
}

func init() {
	rootCmd.AddCommand(parseCmd)
}

func runParse(cmd *cobra.Command, args []string) error {
	failed := 0
	for _, path := range args {
		src, err := readSource(path)
		if err != nil {
			printErr(err)
			failed++
			continue
		}
		if _, err := ox.Parse(src); err != nil {
			printErr(ox.WrapErrorWithName(err, path, src))
			failed++
			continue
		}
		fmt.Println(okStyle.Render("ok") + " " + path)
	}
	if failed > 0 {
		return fmt.Errorf("%d of %d files failed", failed, len(args))
	}
	return nil
}
