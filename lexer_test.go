// lexer_test.go
package ox

import (
	"reflect"
	"strings"
	"testing"
)

func toks(t *testing.T, src string) []Token {
	t.Helper()
	ts, err := Tokenize(src)
	if err != nil {
		t.Fatalf("Tokenize error: %v", err)
	}
	return ts
}

func typesWithoutEOF(tokens []Token) []TokenType {
	if len(tokens) == 0 {
		return nil
	}
	end := len(tokens)
	if tokens[end-1].Type == EOF {
		end--
	}
	out := make([]TokenType, 0, end)
	for i := 0; i < end; i++ {
		out = append(out, tokens[i].Type)
	}
	return out
}

func wantTypes(t *testing.T, src string, want []TokenType) []Token {
	t.Helper()
	got := toks(t, src)
	gotTypes := typesWithoutEOF(got)
	if !reflect.DeepEqual(gotTypes, want) {
		t.Fatalf("\nsource:\n%s\nwant types:\n%v\ngot types:\n%v\n", src, want, gotTypes)
	}
	return got
}

func wantLexError(t *testing.T, src, msgPart string) *LexError {
	t.Helper()
	_, err := Tokenize(src)
	if err == nil {
		t.Fatalf("expected lex error for %q, got none", src)
	}
	le, ok := err.(*LexError)
	if !ok {
		t.Fatalf("expected *LexError, got %T: %v", err, err)
	}
	if msgPart != "" && !strings.Contains(le.Msg, msgPart) {
		t.Fatalf("error %q does not mention %q", le.Msg, msgPart)
	}
	return le
}

func Test_Lexer_SimpleAssignment(t *testing.T) {
	wantTypes(t, "x = 1 + 2\n", []TokenType{NAME, ASSIGN, INT, PLUS, INT, NEWLINE})
}

func Test_Lexer_Block_IndentDedent(t *testing.T) {
	src := "if x:\n    pass\n"
	wantTypes(t, src, []TokenType{IF, NAME, COLON, NEWLINE, INDENT, PASS, NEWLINE, DEDENT})
}

func Test_Lexer_NestedBlocks_Balance(t *testing.T) {
	src := "def f():\n    if x:\n        return 1\n    return 2\n"
	got := toks(t, src)
	indents, dedents := 0, 0
	for _, tok := range got {
		switch tok.Type {
		case INDENT:
			indents++
		case DEDENT:
			dedents++
		}
	}
	if indents != 2 || dedents != 2 {
		t.Fatalf("INDENT/DEDENT not balanced: %d vs %d", indents, dedents)
	}
}

func Test_Lexer_EOF_ClosesOpenBlocks(t *testing.T) {
	// No trailing newline and two open levels; both must be closed.
	src := "if x:\n    if y:\n        pass"
	wantTypes(t, src, []TokenType{
		IF, NAME, COLON, NEWLINE,
		INDENT, IF, NAME, COLON, NEWLINE,
		INDENT, PASS, NEWLINE,
		DEDENT, DEDENT,
	})
}

func Test_Lexer_Brackets_SuppressLayout(t *testing.T) {
	src := "f(\n    1,\n    2\n)\n"
	wantTypes(t, src, []TokenType{NAME, LPAREN, INT, COMMA, INT, RPAREN, NEWLINE})
}

func Test_Lexer_BlankAndCommentLines_NoTokens(t *testing.T) {
	src := "a = 1\n\n# only a comment\n   \nb = 2\n"
	wantTypes(t, src, []TokenType{
		NAME, ASSIGN, INT, NEWLINE,
		NAME, ASSIGN, INT, NEWLINE,
	})
}

func Test_Lexer_BackslashJoinsLines(t *testing.T) {
	src := "x = 1 + \\\n    2\n"
	wantTypes(t, src, []TokenType{NAME, ASSIGN, INT, PLUS, INT, NEWLINE})
}

func Test_Lexer_TabIndent_NextMultipleOfEight(t *testing.T) {
	src := "if x:\n\tpass\n"
	wantTypes(t, src, []TokenType{IF, NAME, COLON, NEWLINE, INDENT, PASS, NEWLINE, DEDENT})
	if w := measureIndent("\t"); w != 8 {
		t.Fatalf("tab width = %d, want 8", w)
	}
	if w := measureIndent("   \t"); w != 8 {
		t.Fatalf("spaces+tab width = %d, want 8", w)
	}
}

func Test_Lexer_UnindentMismatch_IsIndentationError(t *testing.T) {
	src := "if x:\n        pass\n    y\n"
	_, err := Tokenize(src)
	if err == nil {
		t.Fatal("expected indentation error")
	}
	if !IsIndentationError(err) {
		t.Fatalf("expected indentation sub-kind, got %v", err)
	}
	le := err.(*LexError)
	if le.Line != 3 {
		t.Fatalf("error line = %d, want 3", le.Line)
	}
}

func Test_Lexer_Determinism(t *testing.T) {
	src := "def f(a, b=2):\n    return [x*x for x in a]\n"
	first := toks(t, src)
	second := toks(t, src)
	if !reflect.DeepEqual(first, second) {
		t.Fatal("two scans of the same source differ")
	}
}

func Test_Lexer_NumberSubKinds(t *testing.T) {
	got := wantTypes(t, "0x1F 0o17 0b101 1.5 .5 1e3 2j 42\n", []TokenType{
		HEX, OCT, BIN, FLOAT, FLOAT, FLOAT, COMPLEX, INT, NEWLINE,
	})
	if got[0].Literal.(int64) != 31 {
		t.Fatalf("hex literal = %v", got[0].Literal)
	}
	if got[1].Literal.(int64) != 15 {
		t.Fatalf("oct literal = %v", got[1].Literal)
	}
	if got[2].Literal.(int64) != 5 {
		t.Fatalf("bin literal = %v", got[2].Literal)
	}
	if got[3].Literal.(float64) != 1.5 {
		t.Fatalf("float literal = %v", got[3].Literal)
	}
	if got[6].Literal.(complex128) != complex(0, 2) {
		t.Fatalf("complex literal = %v", got[6].Literal)
	}
	if got[7].Literal.(int64) != 42 {
		t.Fatalf("int literal = %v", got[7].Literal)
	}
}

func Test_Lexer_Number_TrailingDotIsFloat(t *testing.T) {
	got := wantTypes(t, "1.\n", []TokenType{FLOAT, NEWLINE})
	if got[0].Lexeme != "1." {
		t.Fatalf("lexeme = %q", got[0].Lexeme)
	}
}

func Test_Lexer_Number_LeadingZeroRejected(t *testing.T) {
	wantLexError(t, "x = 007\n", "leading zeros")
}

func Test_Lexer_Number_ZeroAloneAllowed(t *testing.T) {
	wantTypes(t, "x = 0\n", []TokenType{NAME, ASSIGN, INT, NEWLINE})
}

func Test_Lexer_Number_BadBasedLiteral(t *testing.T) {
	wantLexError(t, "x = 0x\n", "hexadecimal")
	wantLexError(t, "x = 0b2\n", "binary")
	wantLexError(t, "x = 1a\n", "malformed number")
}

func Test_Lexer_Keywords_VsNames(t *testing.T) {
	wantTypes(t, "if name elif lambda yield await async\n", []TokenType{
		IF, NAME, ELIF, LAMBDA, YIELD, AWAIT, NAME, NEWLINE,
	})
}

func Test_Lexer_UnicodeIdentifier(t *testing.T) {
	got := wantTypes(t, "café = 1\n", []TokenType{NAME, ASSIGN, INT, NEWLINE})
	if got[0].Lexeme != "café" {
		t.Fatalf("lexeme = %q", got[0].Lexeme)
	}
}

func Test_Lexer_Operators_MaximalMunch(t *testing.T) {
	wantTypes(t, "a **= b // c << d -> e ... != f\n", []TokenType{
		NAME, DOUBLESTAR_ASSIGN, NAME, DOUBLESLASH, NAME, LSHIFT, NAME,
		ARROW, NAME, ELLIPSIS, NEQ, NAME, NEWLINE,
	})
}

func Test_Lexer_BareExclamationRejected(t *testing.T) {
	wantLexError(t, "a ! b\n", "'!'")
}

func Test_Lexer_String_EscapesDecoded(t *testing.T) {
	got := wantTypes(t, `x = "a\tb\n"`+"\n", []TokenType{NAME, ASSIGN, STRING, NEWLINE})
	if got[2].Literal.(string) != "a\tb\n" {
		t.Fatalf("decoded = %q", got[2].Literal)
	}
}

func Test_Lexer_String_RawKeepsBackslashes(t *testing.T) {
	got := wantTypes(t, `x = r"a\nb"`+"\n", []TokenType{NAME, ASSIGN, STRING, NEWLINE})
	if got[2].Literal.(string) != `a\nb` {
		t.Fatalf("raw body = %q", got[2].Literal)
	}
}

func Test_Lexer_String_BackslashParity(t *testing.T) {
	// An even backslash run leaves the quote closing.
	got := wantTypes(t, `x = "a\\"`+"\n", []TokenType{NAME, ASSIGN, STRING, NEWLINE})
	if got[2].Literal.(string) != `a\` {
		t.Fatalf("decoded = %q", got[2].Literal)
	}
	// An odd run escapes the quote, leaving the literal unterminated.
	wantLexError(t, `x = "a\"`+"\n", "unterminated")
}

func Test_Lexer_String_RawParityStillApplies(t *testing.T) {
	// Even in raw mode a backslash consumes the next character.
	wantLexError(t, `x = r"a\"`+"\n", "unterminated")
}

func Test_Lexer_String_Prefixes(t *testing.T) {
	wantTypes(t, `a = b"x"; c = rb"y"; d = F"z"; e = u'w'`+"\n", []TokenType{
		NAME, ASSIGN, STRING, SEMI,
		NAME, ASSIGN, STRING, SEMI,
		NAME, ASSIGN, STRING, SEMI,
		NAME, ASSIGN, STRING, NEWLINE,
	})
}

func Test_Lexer_TripleQuoted_SpansLines(t *testing.T) {
	src := "s = '''a\nb'''\n"
	got := wantTypes(t, src, []TokenType{NAME, ASSIGN, LONG_STRING, NEWLINE})
	if got[2].Literal.(string) != "a\nb" {
		t.Fatalf("body = %q", got[2].Literal)
	}
}

func Test_Lexer_String_NewlineInShortString(t *testing.T) {
	wantLexError(t, "x = \"abc\ny\"\n", "unterminated")
}

func Test_Lexer_Interactive_UnterminatedTripleQuote_IsIncomplete(t *testing.T) {
	src := "s = '''abc"
	_, err := NewLexerInteractive(src).Scan()
	if err == nil || !IsIncomplete(err) {
		t.Fatalf("want incomplete error, got %v", err)
	}
	_, err = Tokenize(src)
	if err == nil || IsIncomplete(err) {
		t.Fatalf("non-interactive scan must not be incomplete: %v", err)
	}
}

func Test_Lexer_TokenPositions(t *testing.T) {
	got := toks(t, "a = 1\nbb = 2\n")
	if got[0].Line != 1 || got[0].Col != 0 {
		t.Fatalf("first token at %d:%d", got[0].Line, got[0].Col)
	}
	var bb Token
	for _, tok := range got {
		if tok.Lexeme == "bb" {
			bb = tok
		}
	}
	if bb.Line != 2 || bb.Col != 0 || bb.EndCol != 2 {
		t.Fatalf("bb span = %d:%d..%d:%d", bb.Line, bb.Col, bb.EndLine, bb.EndCol)
	}
}
