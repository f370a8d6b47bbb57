package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
)

var (
	colorError = lipgloss.Color("#EF4444")
	colorOK    = lipgloss.Color("#10B981")
	colorMuted = lipgloss.Color("#6B7280")
)

var (
	errorStyle = lipgloss.NewStyle().Foreground(colorError)
	okStyle    = lipgloss.NewStyle().Foreground(colorOK)
	mutedStyle = lipgloss.NewStyle().Foreground(colorMuted)
)

var rootCmd = &cobra.Command{
	Use:   "ox",
	Short: "ox language front end",
	Long: `ox parses ox source text into an abstract syntax tree.

Commands:
  parse    - check files for lexical and syntax errors
  ast      - print the AST of a file as s-expressions
  tokens   - print the token stream of a file
  repl     - interactive parse loop
  version  - print version information`,
}

func Execute() error {
	return rootCmd.Execute()
}

func printErr(err error) {
	fmt.Fprintln(os.Stderr, errorStyle.Render(err.Error()))
}

// readSource reads a named file, or stdin when path is "-".
func readSource(path string) (string, error) {
	if path == "-" {
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return "", fmt.Errorf("reading stdin: %w", err)
		}
		return string(data), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	return string(data), nil
}
