// lexer.go: the ox tokenizer.
//
// The Lexer composes the raw scanner (scanner.go) with the indentation
// tracker (indent.go) into one ordered token stream:
//
//	source text → scan (names, literals, operators)
//	            → layout synthesis (NEWLINE, INDENT, DEDENT)
//	            → []Token ending in EOF
//
// Layout rules, all implemented here and in indent.go:
//
//   - A physical line break at bracket depth 0 ends the logical line with one
//     NEWLINE token; inside (), [] or {} it is plain whitespace.
//   - Blank lines and comment-only lines produce no tokens at all, so a run
//     of them contributes nothing beyond the NEWLINE of the preceding
//     content line.
//   - The first real token of a content line triggers the indentation
//     comparison: INDENT when the line is deeper than the stack top, one
//     DEDENT per popped level when shallower, nothing when equal. A dedent
//     that lands between recorded levels is an indentation error.
//   - A backslash immediately before a line break joins the two physical
//     lines silently: no NEWLINE, no indentation measurement on the
//     continuation line.
//   - At end of input the lexer closes an unfinished logical line with
//     NEWLINE, pops every open indentation level (one DEDENT each), and
//     appends EOF, so INDENT and DEDENT counts always balance.
//
// Interactive mode (NewLexerInteractive) differs in exactly one way: an
// unterminated triple-quoted string at end of input is flagged Incomplete so
// a REPL can ask for more lines instead of reporting the error.
package ox

import (
	"fmt"
	"unicode"
	"unicode/utf8"
)

// Lexer scans an ox source string into tokens.
type Lexer struct {
	src         string
	start       int // start index of current token
	cur         int // current index
	line        int // 1-based
	col         int // 0-based column within line
	tokens      []Token
	indent      indentTracker
	atLineStart bool
	interactive bool

	// precise token start position
	tokStartLine int
	tokStartCol  int
}

// NewLexer creates a lexer for the given source.
func NewLexer(src string) *Lexer {
	return &Lexer{
		src:         src,
		line:        1,
		col:         0,
		indent:      newIndentTracker(),
		atLineStart: true,
	}
}

// NewLexerInteractive creates a lexer whose end-of-input errors are flagged
// as incomplete where more input could still complete the token.
func NewLexerInteractive(src string) *Lexer {
	l := NewLexer(src)
	l.interactive = true
	return l
}

// Tokenize scans src completely and returns the token stream, EOF included.
func Tokenize(src string) ([]Token, error) {
	return NewLexer(src).Scan()
}

// Scan tokenizes the entire source and returns the tokens (EOF included).
func (l *Lexer) Scan() ([]Token, error) {
	for {
		if l.atLineStart && !l.indent.suppressed() {
			if err := l.startLine(); err != nil {
				return nil, err
			}
			if l.isAtEnd() {
				break
			}
			continue
		}

		l.skipInline()

		if l.isAtEnd() {
			// Close the unfinished logical line first.
			if !l.atLineStart && !l.indent.suppressed() {
				l.emit(Token{Type: NEWLINE, Line: l.line, Col: l.col, EndLine: l.line, EndCol: l.col})
			}
			break
		}

		if l.peekByte() == '\n' {
			if l.indent.suppressed() {
				l.advance()
				continue
			}
			l.markStart()
			l.advance()
			l.emit(Token{Type: NEWLINE, Lexeme: "\n",
				Line: l.tokStartLine, Col: l.tokStartCol, EndLine: l.line, EndCol: l.col})
			l.atLineStart = true
			continue
		}

		if err := l.scanToken(); err != nil {
			return nil, err
		}
	}

	for n := l.indent.unwind(); n > 0; n-- {
		l.emit(Token{Type: DEDENT, Line: l.line, Col: l.col, EndLine: l.line, EndCol: l.col})
	}
	l.emit(Token{Type: EOF, Line: l.line, Col: l.col, EndLine: l.line, EndCol: l.col})
	return l.tokens, nil
}

// startLine consumes blank and comment-only lines, measures the indentation
// of the next content-bearing line, and synthesizes INDENT/DEDENT tokens.
// On return either the lexer sits at the first content character of the line
// with atLineStart cleared, or input is exhausted.
func (l *Lexer) startLine() error {
	for {
		lineStart := l.cur
		for !l.isAtEnd() {
			c := l.peekByte()
			if c == ' ' || c == '\t' || c == '\r' {
				l.advance()
				continue
			}
			break
		}
		if l.isAtEnd() {
			return nil
		}
		switch l.peekByte() {
		case '\n':
			l.advance()
			continue
		case '#':
			for !l.isAtEnd() && l.peekByte() != '\n' {
				l.advance()
			}
			if !l.isAtEnd() {
				l.advance()
			}
			continue
		}

		width := measureIndent(l.src[lineStart:l.cur])
		indents, dedents, ok := l.indent.shift(width)
		if !ok {
			return &LexError{
				Line: l.line, Col: l.col,
				Msg:         "unindent does not match any outer indentation level",
				Indentation: true,
			}
		}
		for ; indents > 0; indents-- {
			l.emit(Token{Type: INDENT, Line: l.line, Col: 0, EndLine: l.line, EndCol: l.col})
		}
		for ; dedents > 0; dedents-- {
			l.emit(Token{Type: DEDENT, Line: l.line, Col: l.col, EndLine: l.line, EndCol: l.col})
		}
		l.atLineStart = false
		return nil
	}
}

// skipInline consumes whitespace, comments and backslash line-joins in the
// middle of a logical line. It never consumes a bare newline.
func (l *Lexer) skipInline() {
	for !l.isAtEnd() {
		switch l.peekByte() {
		case ' ', '\t', '\r':
			l.advance()
		case '#':
			for !l.isAtEnd() && l.peekByte() != '\n' {
				l.advance()
			}
		case '\\':
			// Only a backslash that immediately precedes the line break joins
			// lines; anything else is an error caught by scanToken.
			if b, ok := l.peekAt(1); ok && b == '\n' {
				l.advance()
				l.advance()
				continue
			}
			if b, ok := l.peekAt(1); ok && b == '\r' {
				if b2, ok2 := l.peekAt(2); ok2 && b2 == '\n' {
					l.advance()
					l.advance()
					l.advance()
					continue
				}
			}
			return
		default:
			return
		}
	}
}

// scanToken scans exactly one raw token starting at the current position.
func (l *Lexer) scanToken() error {
	l.markStart()
	c := l.advance()

	switch c {
	case '(':
		l.indent.openBracket()
		l.add(LPAREN, nil)
		return nil
	case '[':
		l.indent.openBracket()
		l.add(LBRACKET, nil)
		return nil
	case '{':
		l.indent.openBracket()
		l.add(LBRACE, nil)
		return nil
	case ')':
		l.indent.closeBracket()
		l.add(RPAREN, nil)
		return nil
	case ']':
		l.indent.closeBracket()
		l.add(RBRACKET, nil)
		return nil
	case '}':
		l.indent.closeBracket()
		l.add(RBRACE, nil)
		return nil
	case ',':
		l.add(COMMA, nil)
		return nil
	case ':':
		l.add(COLON, nil)
		return nil
	case ';':
		l.add(SEMI, nil)
		return nil
	case '~':
		l.add(TILDE, nil)
		return nil
	case '@':
		if l.match('=') {
			l.add(AT_ASSIGN, nil)
		} else {
			l.add(AT, nil)
		}
		return nil
	case '+':
		if l.match('=') {
			l.add(PLUS_ASSIGN, nil)
		} else {
			l.add(PLUS, nil)
		}
		return nil
	case '-':
		switch {
		case l.match('>'):
			l.add(ARROW, nil)
		case l.match('='):
			l.add(MINUS_ASSIGN, nil)
		default:
			l.add(MINUS, nil)
		}
		return nil
	case '*':
		switch {
		case l.match('*'):
			if l.match('=') {
				l.add(DOUBLESTAR_ASSIGN, nil)
			} else {
				l.add(DOUBLESTAR, nil)
			}
		case l.match('='):
			l.add(STAR_ASSIGN, nil)
		default:
			l.add(STAR, nil)
		}
		return nil
	case '/':
		switch {
		case l.match('/'):
			if l.match('=') {
				l.add(DOUBLESLASH_ASSIGN, nil)
			} else {
				l.add(DOUBLESLASH, nil)
			}
		case l.match('='):
			l.add(SLASH_ASSIGN, nil)
		default:
			l.add(SLASH, nil)
		}
		return nil
	case '%':
		if l.match('=') {
			l.add(PERCENT_ASSIGN, nil)
		} else {
			l.add(PERCENT, nil)
		}
		return nil
	case '|':
		if l.match('=') {
			l.add(PIPE_ASSIGN, nil)
		} else {
			l.add(PIPE, nil)
		}
		return nil
	case '&':
		if l.match('=') {
			l.add(AMPER_ASSIGN, nil)
		} else {
			l.add(AMPER, nil)
		}
		return nil
	case '^':
		if l.match('=') {
			l.add(CARET_ASSIGN, nil)
		} else {
			l.add(CARET, nil)
		}
		return nil
	case '<':
		switch {
		case l.match('<'):
			if l.match('=') {
				l.add(LSHIFT_ASSIGN, nil)
			} else {
				l.add(LSHIFT, nil)
			}
		case l.match('='):
			l.add(LESS_EQ, nil)
		default:
			l.add(LESS, nil)
		}
		return nil
	case '>':
		switch {
		case l.match('>'):
			if l.match('=') {
				l.add(RSHIFT_ASSIGN, nil)
			} else {
				l.add(RSHIFT, nil)
			}
		case l.match('='):
			l.add(GREATER_EQ, nil)
		default:
			l.add(GREATER, nil)
		}
		return nil
	case '=':
		if l.match('=') {
			l.add(EQ, nil)
		} else {
			l.add(ASSIGN, nil)
		}
		return nil
	case '!':
		if l.match('=') {
			l.add(NEQ, nil)
			return nil
		}
		return l.errAtStart("unexpected character: '!'")
	case '.':
		if b, ok := l.peekAt(0); ok && isDigit(b) {
			l.rewindToStart()
			return l.scanNumber()
		}
		if b, ok := l.peekAt(0); ok && b == '.' {
			if b2, ok2 := l.peekAt(1); ok2 && b2 == '.' {
				l.advance()
				l.advance()
				l.add(ELLIPSIS, nil)
				return nil
			}
		}
		l.add(DOT, nil)
		return nil
	case '\'', '"':
		l.rewindToStart()
		return l.scanString(stringPrefix{})
	}

	if isDigit(c) {
		l.rewindToStart()
		return l.scanNumber()
	}
	if isNameStart(c) || c >= utf8.RuneSelf {
		l.rewindToStart()
		return l.scanNameOrPrefixedString()
	}
	return l.errAtStart(fmt.Sprintf("unexpected character: %q", c))
}

// ----- low-level cursor helpers -----

func (l *Lexer) isAtEnd() bool { return l.cur >= len(l.src) }

func (l *Lexer) peekByte() byte { return l.src[l.cur] }

func (l *Lexer) peekAt(n int) (byte, bool) {
	idx := l.cur + n
	if idx >= len(l.src) {
		return 0, false
	}
	return l.src[idx], true
}

func (l *Lexer) advance() byte {
	ch := l.src[l.cur]
	l.cur++
	if ch == '\n' {
		l.line++
		l.col = 0
	} else {
		l.col++
	}
	return ch
}

func (l *Lexer) match(expected byte) bool {
	if l.isAtEnd() || l.src[l.cur] != expected {
		return false
	}
	l.advance()
	return true
}

func (l *Lexer) markStart() {
	l.start = l.cur
	l.tokStartLine = l.line
	l.tokStartCol = l.col
}

func (l *Lexer) rewindToStart() {
	// Rewinds stay within the current line; line/col were recorded by
	// markStart before any character was consumed.
	l.cur = l.start
	l.col = l.tokStartCol
	l.line = l.tokStartLine
}

func (l *Lexer) emit(t Token) { l.tokens = append(l.tokens, t) }

func (l *Lexer) add(tt TokenType, lit interface{}) Token {
	tok := Token{
		Type:    tt,
		Lexeme:  l.src[l.start:l.cur],
		Literal: lit,
		Line:    l.tokStartLine,
		Col:     l.tokStartCol,
		EndLine: l.line,
		EndCol:  l.col,
	}
	l.emit(tok)
	return tok
}

// errAtStart reports a lexical error positioned at the start of the token
// being scanned.
func (l *Lexer) errAtStart(msg string) error {
	return &LexError{Line: l.tokStartLine, Col: l.tokStartCol, Msg: msg}
}

// ----- byte classification -----

func isDigit(b byte) bool { return b >= '0' && b <= '9' }
func isHexDigit(b byte) bool {
	return (b >= '0' && b <= '9') || (b >= 'a' && b <= 'f') || (b >= 'A' && b <= 'F')
}
func isOctDigit(b byte) bool { return b >= '0' && b <= '7' }
func isBinDigit(b byte) bool { return b == '0' || b == '1' }
func isNameStart(b byte) bool {
	return (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z') || b == '_'
}
func isNameCont(b byte) bool {
	return isNameStart(b) || isDigit(b)
}

// runeLetter reports whether the UTF-8 rune at offset is acceptable in an
// identifier; size is its byte length.
func runeLetter(src string, offset int) (ok bool, size int) {
	r, n := utf8.DecodeRuneInString(src[offset:])
	if r == utf8.RuneError && n == 1 {
		return false, 1
	}
	return unicode.IsLetter(r) || unicode.IsDigit(r), n
}
