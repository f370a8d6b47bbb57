// scanner.go: raw token scanning (names, numeric literals, string literals).
//
// Classification priority, most specific first:
//
//	hex/oct/bin prefix  >  float/complex  >  plain integer
//	keyword             >  identifier
//	string prefix (r/u/b/f + quote) > identifier
//
// A plain integer may not start with '0' unless it is exactly "0"; the
// prefixed forms carry their base marker. A complex literal is an integer or
// float immediately followed by 'j' or 'J'.
//
// String termination uses the backslash-run parity rule: a backslash always
// consumes the character after it (even in raw mode), so an even run of
// backslashes before a quote leaves the quote closing and an odd run makes
// it literal. Raw mode only changes how the body is decoded, not how the
// terminator is found.
package ox

import (
	"fmt"
	"strconv"
	"strings"
	"unicode/utf8"
)

// stringPrefix captures the letters in front of a string literal's opening
// quote: kind is 0, 'u', 'b' or 'f'; raw marks the r modifier.
type stringPrefix struct {
	raw  bool
	kind byte
}

// parseStringPrefix validates a candidate prefix spelling ("r", "rb", "f",
// "Rf", ...). ok is false when the spelling is not a string prefix at all.
func parseStringPrefix(s string) (stringPrefix, bool) {
	if len(s) == 0 || len(s) > 2 {
		return stringPrefix{}, false
	}
	var p stringPrefix
	for i := 0; i < len(s); i++ {
		switch c := s[i] | 0x20; c { // lowercase
		case 'r':
			if p.raw {
				return stringPrefix{}, false
			}
			p.raw = true
		case 'u', 'b', 'f':
			if p.kind != 0 {
				return stringPrefix{}, false
			}
			p.kind = c
		default:
			return stringPrefix{}, false
		}
	}
	return p, true
}

// scanNameOrPrefixedString scans an identifier and resolves it to a keyword,
// a string prefix (when a quote follows immediately), or a NAME. `async` is
// not in the keyword table and comes out as a NAME here; the parser
// recognizes it contextually.
func (l *Lexer) scanNameOrPrefixedString() error {
	for !l.isAtEnd() {
		b := l.peekByte()
		if isNameCont(b) {
			l.advance()
			continue
		}
		if b >= utf8.RuneSelf {
			ok, size := runeLetter(l.src, l.cur)
			if !ok {
				return l.errAtStart(fmt.Sprintf("invalid character %q in identifier", l.src[l.cur:l.cur+size]))
			}
			for i := 0; i < size; i++ {
				l.advance()
			}
			continue
		}
		break
	}

	lex := l.src[l.start:l.cur]

	if !l.isAtEnd() {
		if b := l.peekByte(); b == '\'' || b == '"' {
			if pre, ok := parseStringPrefix(lex); ok {
				return l.scanString(pre)
			}
		}
	}

	if tt, ok := keywords[lex]; ok {
		l.add(tt, nil)
		return nil
	}
	l.add(NAME, nil)
	return nil
}

// scanNumber scans one numeric literal starting at the token start.
// Sub-kind resolution happens here: prefix bases first, then float/complex
// patterns, with plain INT as the fallback.
func (l *Lexer) scanNumber() error {
	if l.peekByte() == '0' {
		if b, ok := l.peekAt(1); ok {
			switch b {
			case 'x', 'X':
				return l.scanBasedInt(HEX, 16, isHexDigit, "hexadecimal")
			case 'o', 'O':
				return l.scanBasedInt(OCT, 8, isOctDigit, "octal")
			case 'b', 'B':
				return l.scanBasedInt(BIN, 2, isBinDigit, "binary")
			}
		}
	}

	sawDigits := false
	for !l.isAtEnd() && isDigit(l.peekByte()) {
		l.advance()
		sawDigits = true
	}

	sawDot := false
	if !l.isAtEnd() && l.peekByte() == '.' {
		// "1." needs a digit before, ".5" a digit after.
		after, ok := l.peekAt(1)
		if sawDigits || (ok && isDigit(after)) {
			l.advance()
			sawDot = true
			for !l.isAtEnd() && isDigit(l.peekByte()) {
				l.advance()
				sawDigits = true
			}
		}
	}

	sawExp := false
	if !l.isAtEnd() && (l.peekByte() == 'e' || l.peekByte() == 'E') && sawDigits {
		save, saveCol := l.cur, l.col
		l.advance()
		if !l.isAtEnd() && (l.peekByte() == '+' || l.peekByte() == '-') {
			l.advance()
		}
		if !l.isAtEnd() && isDigit(l.peekByte()) {
			sawExp = true
			for !l.isAtEnd() && isDigit(l.peekByte()) {
				l.advance()
			}
		} else {
			l.cur, l.col = save, saveCol
		}
	}

	if !sawDigits {
		return l.errAtStart("malformed number")
	}

	imaginary := false
	if !l.isAtEnd() && (l.peekByte() == 'j' || l.peekByte() == 'J') {
		l.advance()
		imaginary = true
	}

	if !l.isAtEnd() && isNameCont(l.peekByte()) {
		return l.errAtStart("malformed number")
	}

	lex := l.src[l.start:l.cur]
	switch {
	case imaginary:
		f, err := strconv.ParseFloat(lex[:len(lex)-1], 64)
		if err != nil {
			l.add(COMPLEX, nil)
		} else {
			l.add(COMPLEX, complex(0, f))
		}
	case sawDot || sawExp:
		f, err := strconv.ParseFloat(lex, 64)
		if err != nil {
			l.add(FLOAT, nil)
		} else {
			l.add(FLOAT, f)
		}
	default:
		if len(lex) > 1 && lex[0] == '0' {
			return l.errAtStart("leading zeros in decimal integer literal are not permitted")
		}
		v, err := strconv.ParseInt(lex, 10, 64)
		if err != nil {
			l.add(INT, nil) // out of int64 range; lexeme stays authoritative
		} else {
			l.add(INT, v)
		}
	}
	return nil
}

// scanBasedInt handles 0x/0o/0b forms. The cursor sits on the leading '0'.
func (l *Lexer) scanBasedInt(tt TokenType, base int, digit func(byte) bool, what string) error {
	l.advance() // '0'
	l.advance() // base marker
	n := 0
	for !l.isAtEnd() && digit(l.peekByte()) {
		l.advance()
		n++
	}
	if n == 0 || (!l.isAtEnd() && isNameCont(l.peekByte())) {
		return l.errAtStart(fmt.Sprintf("invalid %s literal", what))
	}
	lex := l.src[l.start:l.cur]
	v, err := strconv.ParseInt(lex[2:], base, 64)
	if err != nil {
		l.add(tt, nil)
	} else {
		l.add(tt, v)
	}
	return nil
}

// scanString scans a single- or triple-quoted string literal. The cursor
// sits on the opening quote; the token start may lie earlier when a prefix
// was consumed, so the lexeme always carries the full prefixed spelling.
//
// Literal value: decoded text for plain/u/b strings, the verbatim body for
// raw strings, and the undecoded body for f-strings (fstring.go decodes the
// literal fragments itself, after locating interpolations).
func (l *Lexer) scanString(pre stringPrefix) error {
	q := l.advance()
	long := false
	if b1, ok1 := l.peekAt(0); ok1 && b1 == q {
		if b2, ok2 := l.peekAt(1); ok2 && b2 == q {
			l.advance()
			l.advance()
			long = true
		} else {
			// Empty short string.
			l.advance()
			l.addString(pre, long, "")
			return nil
		}
	}

	bodyStart := l.cur
	for {
		if l.isAtEnd() {
			if long {
				return &LexError{
					Line: l.tokStartLine, Col: l.tokStartCol,
					Msg:        "unterminated triple-quoted string literal",
					Incomplete: l.interactive,
				}
			}
			return l.errAtStart("unterminated string literal")
		}
		c := l.peekByte()
		if c == '\n' && !long {
			return l.errAtStart("unterminated string literal")
		}
		if c == '\\' {
			l.advance()
			if l.isAtEnd() {
				continue // next iteration reports the unterminated literal
			}
			l.advance() // escaped character, possibly the quote or a newline
			continue
		}
		if c == q {
			if !long {
				body := l.src[bodyStart:l.cur]
				l.advance()
				return l.finishString(pre, long, body)
			}
			if b1, ok1 := l.peekAt(1); ok1 && b1 == q {
				if b2, ok2 := l.peekAt(2); ok2 && b2 == q {
					body := l.src[bodyStart:l.cur]
					l.advance()
					l.advance()
					l.advance()
					return l.finishString(pre, long, body)
				}
			}
		}
		l.advance()
	}
}

func (l *Lexer) finishString(pre stringPrefix, long bool, body string) error {
	switch {
	case pre.kind == 'f':
		l.addString(pre, long, body) // fstring.go decodes fragments later
	case pre.raw:
		l.addString(pre, long, body)
	default:
		decoded, err := decodeEscapes(body)
		if err != nil {
			return l.errAtStart(err.Error())
		}
		l.addString(pre, long, decoded)
	}
	return nil
}

func (l *Lexer) addString(pre stringPrefix, long bool, value string) {
	tt := STRING
	if long {
		tt = LONG_STRING
	}
	l.add(tt, value)
}

// decodeEscapes resolves backslash escapes in a non-raw string body.
// Unknown escapes keep the backslash and the following character verbatim.
func decodeEscapes(body string) (string, error) {
	if !strings.ContainsRune(body, '\\') {
		return body, nil
	}
	var b strings.Builder
	b.Grow(len(body))
	for i := 0; i < len(body); i++ {
		c := body[i]
		if c != '\\' || i+1 >= len(body) {
			b.WriteByte(c)
			continue
		}
		i++
		switch e := body[i]; e {
		case 'n':
			b.WriteByte('\n')
		case 't':
			b.WriteByte('\t')
		case 'r':
			b.WriteByte('\r')
		case 'a':
			b.WriteByte('\a')
		case 'b':
			b.WriteByte('\b')
		case 'f':
			b.WriteByte('\f')
		case 'v':
			b.WriteByte('\v')
		case '0':
			b.WriteByte(0)
		case '\\', '\'', '"':
			b.WriteByte(e)
		case '\n':
			// Escaped line break contributes nothing.
		case 'x':
			if i+2 >= len(body) || !isHexDigit(body[i+1]) || !isHexDigit(body[i+2]) {
				return "", fmt.Errorf("truncated \\x escape in string literal")
			}
			v, _ := strconv.ParseUint(body[i+1:i+3], 16, 8)
			b.WriteByte(byte(v))
			i += 2
		case 'u', 'U':
			n := 4
			if e == 'U' {
				n = 8
			}
			if i+n >= len(body) {
				return "", fmt.Errorf("truncated \\%c escape in string literal", e)
			}
			hex := body[i+1 : i+1+n]
			for j := 0; j < n; j++ {
				if !isHexDigit(hex[j]) {
					return "", fmt.Errorf("truncated \\%c escape in string literal", e)
				}
			}
			v, _ := strconv.ParseUint(hex, 16, 32)
			b.WriteRune(rune(v))
			i += n
		default:
			// Not a recognized escape: keep both characters.
			b.WriteByte('\\')
			b.WriteByte(e)
		}
	}
	return b.String(), nil
}
