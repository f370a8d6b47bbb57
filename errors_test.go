// errors_test.go
package ox

import (
	"strings"
	"testing"
)

func mustContain(t *testing.T, s, sub string) {
	t.Helper()
	if !strings.Contains(s, sub) {
		t.Fatalf("expected %q to contain %q", s, sub)
	}
}

func Test_Errors_SyntaxErrorMessage(t *testing.T) {
	_, err := Parse("def f(:\n    pass\n")
	if err == nil {
		t.Fatal("expected error")
	}
	se := err.(*SyntaxError)
	mustContain(t, se.Error(), "SYNTAX ERROR")
	mustContain(t, se.Error(), "expected")
	expectsType(t, se, NAME)
	// The ':' itself is the offending token.
	if se.Line != 1 || se.Col != 6 {
		t.Fatalf("error at %d:%d, want 1:6", se.Line, se.Col)
	}
}

func Test_Errors_ExpectedSetIsDeduplicated(t *testing.T) {
	s := expectedList([]TokenType{NAME, NAME, COLON})
	if s != "one of NAME, ':'" {
		t.Fatalf("got %q", s)
	}
	if one := expectedList([]TokenType{COLON}); one != "':'" {
		t.Fatalf("got %q", one)
	}
}

func Test_Errors_PositionOfMissingColon(t *testing.T) {
	src := "if x:\n    pass\nelse\n    pass\n"
	_, err := Parse(src)
	if err == nil {
		t.Fatal("expected error")
	}
	se := err.(*SyntaxError)
	// The NEWLINE after "else" is the offending token.
	if se.Line != 3 {
		t.Fatalf("line = %d, want 3", se.Line)
	}
	expectsType(t, se, COLON)
}

func Test_Errors_SnippetCaret(t *testing.T) {
	src := "x = 1\ny = (\n"
	_, err := Parse(src)
	if err == nil {
		t.Fatal("expected error")
	}
	wrapped := WrapErrorWithName(err, "demo.ox", src)
	out := wrapped.Error()
	mustContain(t, out, "SYNTAX ERROR in demo.ox")
	mustContain(t, out, "   2 | y = (")
	mustContain(t, out, "^")
}

func Test_Errors_SnippetShowsNeighborLines(t *testing.T) {
	src := "a = 1\nb = )\nc = 3\n"
	_, err := Parse(src)
	if err == nil {
		t.Fatal("expected error")
	}
	out := WrapErrorWithSource(err, src).Error()
	mustContain(t, out, "   1 | a = 1")
	mustContain(t, out, "   2 | b = )")
	mustContain(t, out, "   3 | c = 3")
}

func Test_Errors_WrapPassesThroughOtherErrors(t *testing.T) {
	err := WrapErrorWithSource(errSentinel{}, "x = 1\n")
	if _, ok := err.(errSentinel); !ok {
		t.Fatalf("foreign error was rewritten: %v", err)
	}
}

type errSentinel struct{}

func (errSentinel) Error() string { return "sentinel" }

func Test_Errors_LexErrorRendering(t *testing.T) {
	_, err := Tokenize("x = 007\n")
	le := err.(*LexError)
	mustContain(t, le.Error(), "LEXICAL ERROR")
	out := WrapErrorWithSource(err, "x = 007\n").Error()
	mustContain(t, out, "LEXICAL ERROR")
	mustContain(t, out, "   1 | x = 007")
}

func Test_Errors_IndentationRendering(t *testing.T) {
	src := "if x:\n        pass\n    y\n"
	_, err := Parse(src)
	if err == nil {
		t.Fatal("expected error")
	}
	if !IsIndentationError(err) {
		t.Fatalf("expected indentation error, got %v", err)
	}
	out := WrapErrorWithSource(err, src).Error()
	mustContain(t, out, "INDENTATION ERROR")
}

func Test_Errors_IncompleteOnlyInInteractiveMode(t *testing.T) {
	for _, src := range []string{"if x:", "while x:\n    pass\nelse:", "(1 +"} {
		if _, err := ParseInteractive(src); err == nil || !IsIncomplete(err) {
			t.Fatalf("interactive %q: want incomplete, got %v", src, err)
		}
		if _, err := Parse(src); err == nil || IsIncomplete(err) {
			t.Fatalf("non-interactive %q: must not be incomplete, got %v", src, err)
		}
	}
}

func Test_Errors_IncompleteNotSetMidInput(t *testing.T) {
	// A hard error before end of input stays a hard error in interactive mode.
	_, err := ParseInteractive("if x)\n")
	if err == nil || IsIncomplete(err) {
		t.Fatalf("want hard error, got %v", err)
	}
}
