// errors.go: structured diagnostics and caret-snippet rendering.
//
// The front end fails with exactly one of two error kinds:
//
//   - *LexError: malformed literal, unterminated string, or inconsistent
//     indentation. Indentation problems are a distinguishable sub-kind
//     (Indentation=true) so callers can special-case them.
//   - *SyntaxError: the token stream matches no production at the parser's
//     current state. It carries the set of token kinds that would have been
//     accepted at the failure point.
//
// Both are terminal for the parse in which they occur; there is no recovery
// or resynchronization. Both carry 1-based Line and 0-based Col (rendered
// 1-based by the snippet formatter).
//
// Interactive parses additionally mark errors caused solely by truncated
// input (Incomplete=true), which the REPL uses as a continuation probe.
//
// `WrapErrorWithSource` / `WrapErrorWithName` turn either kind into a
// readable multi-line snippet with a caret under the offending column:
//
//	SYNTAX ERROR in demo.ox at 3:12: unexpected ')'
//
//	   2 | x = f(1,
//	   3 |        )
//	       |        ^
//	   4 | y = 2
//
// Other error values pass through unchanged.
package ox

import (
	"fmt"
	"strings"
)

// LexError reports a malformed token or inconsistent indentation.
type LexError struct {
	Line        int
	Col         int
	Msg         string
	Indentation bool // true for indentation-stack violations
	Incomplete  bool // true when truncated input is the only problem (interactive mode)
}

func (e *LexError) Error() string {
	label := "LEXICAL ERROR"
	if e.Indentation {
		label = "INDENTATION ERROR"
	}
	return fmt.Sprintf("%s at %d:%d: %s", label, e.Line, e.Col+1, e.Msg)
}

// SyntaxError reports a token that matches no production. Expected lists the
// token kinds acceptable at the failure point, in the order the parser tried
// them.
type SyntaxError struct {
	Line       int
	Col        int
	Msg        string
	Expected   []TokenType
	Incomplete bool
}

func (e *SyntaxError) Error() string {
	if len(e.Expected) == 0 {
		return fmt.Sprintf("SYNTAX ERROR at %d:%d: %s", e.Line, e.Col+1, e.Msg)
	}
	return fmt.Sprintf("SYNTAX ERROR at %d:%d: %s (expected %s)",
		e.Line, e.Col+1, e.Msg, expectedList(e.Expected))
}

// IsIncomplete reports whether err represents input that failed only because
// it ended too early. REPLs use this to prompt for a continuation line
// instead of surfacing the error.
func IsIncomplete(err error) bool {
	switch e := err.(type) {
	case *LexError:
		return e.Incomplete
	case *SyntaxError:
		return e.Incomplete
	}
	return false
}

// IsIndentationError reports whether err is the indentation sub-kind of
// LexError.
func IsIndentationError(err error) bool {
	e, ok := err.(*LexError)
	return ok && e.Indentation
}

// WrapErrorWithSource returns err augmented with a caret-annotated snippet of
// src. Errors other than *LexError and *SyntaxError are returned unchanged.
func WrapErrorWithSource(err error, src string) error {
	return WrapErrorWithName(err, "", src)
}

// WrapErrorWithName is WrapErrorWithSource with a source name (file path,
// "<stdin>", ...) included in the header. The name is used only for display.
func WrapErrorWithName(err error, srcName, src string) error {
	switch e := err.(type) {
	case *LexError:
		label := "LEXICAL ERROR"
		if e.Indentation {
			label = "INDENTATION ERROR"
		}
		return fmt.Errorf("%s", snippet(src, label, srcName, e.Line, e.Col+1, e.Msg))
	case *SyntaxError:
		msg := e.Msg
		if len(e.Expected) > 0 {
			msg += " (expected " + expectedList(e.Expected) + ")"
		}
		return fmt.Errorf("%s", snippet(src, "SYNTAX ERROR", srcName, e.Line, e.Col+1, msg))
	default:
		return err
	}
}

func expectedList(kinds []TokenType) string {
	parts := make([]string, 0, len(kinds))
	seen := map[TokenType]bool{}
	for _, k := range kinds {
		if seen[k] {
			continue
		}
		seen[k] = true
		parts = append(parts, k.String())
	}
	if len(parts) == 1 {
		return parts[0]
	}
	return "one of " + strings.Join(parts, ", ")
}

// snippet builds the caret-annotated context block. Coordinates are 1-based
// here and clamped to the source bounds so rendering never panics.
func snippet(src, header, name string, line, col int, msg string) string {
	lines := strings.Split(src, "\n")
	if line < 1 {
		line = 1
	}
	if col < 1 {
		col = 1
	}
	if len(lines) == 0 {
		lines = []string{""}
	}
	if line > len(lines) {
		line = len(lines)
	}

	var b strings.Builder
	if name != "" {
		fmt.Fprintf(&b, "%s in %s at %d:%d: %s\n\n", header, name, line, col, msg)
	} else {
		fmt.Fprintf(&b, "%s at %d:%d: %s\n\n", header, line, col, msg)
	}
	if line > 1 {
		fmt.Fprintf(&b, "%4d | %s\n", line-1, lines[line-2])
	}
	fmt.Fprintf(&b, "%4d | %s\n", line, lines[line-1])
	fmt.Fprintf(&b, "     | %s^\n", strings.Repeat(" ", col-1))
	if line < len(lines) {
		fmt.Fprintf(&b, "%4d | %s\n", line+1, lines[line])
	}
	return b.String()
}
