package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	ox "github.com/Tinghao724/ox"
)

var tokensCmd = &cobra.Command{
	Use:   "tokens FILE",
	Short: "Print the token stream of a file",
	Args:  cobra.ExactArgs(1),
	RunE:  runTokens,
}

func init() {
	rootCmd.AddCommand(tokensCmd)
}

func runTokens(cmd *cobra.Command, args []string) error {
	src, err := readSource(args[0])
	if err != nil {
		return err
	}
	toks, err := ox.Tokenize(src)
	if err != nil {
		printErr(ox.WrapErrorWithName(err, args[0], src))
		return fmt.Errorf("tokenize failed")
	}
	for _, t := range toks {
		pos := mutedStyle.Render(fmt.Sprintf("%4d:%-3d", t.Line, t.Col+1))
		fmt.Printf("%s %s\n", pos, t)
	}
	return nil
}
