package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	ox "github.com/Tinghao724/ox"
)

var astCmd = &cobra.Command{
	Use:   "ast FILE",
	Short: "Print the AST of a file as s-expressions",
	Long:  "Parses FILE (or stdin when FILE is \"-\") and prints the AST in the compact s-expression form.",
	Args:  cobra.ExactArgs(1),
	RunE:  runAst,
}

func init() {
	rootCmd.AddCommand(astCmd)
}

func runAst(cmd *cobra.Command, args []string) error {
	src, err := readSource(args[0])
	if err != nil {
		return err
	}
	mod, err := ox.Parse(src)
	if err != nil {
		printErr(ox.WrapErrorWithName(err, args[0], src))
		return fmt.Errorf("parse failed")
	}
	fmt.Println(ox.Dump(mod))
	return nil
}
