// fstring.go: interpolation parsing for f-string tokens.
//
// The lexer leaves an f-string's body undecoded; this file walks it after
// the fact, splitting literal text from `{expression[!conv][:format]}`
// fields. Doubled braces escape themselves. Each field's expression is
// handed to a fresh lexer and parser in isolation, so interpolations have
// the full expression grammar; any failure inside a field is reported at
// the position of the enclosing string token.
//
// Conversion markers and format specs are captured textually, never
// interpreted: the front end has no formatting semantics.
package ox

import "strings"

func parseFString(t Token, long bool) (*FString, error) {
	pre, _ := stringTokenShape(t)
	body, _ := t.Literal.(string)
	fs := &FString{}
	fs.Span = tokenSpan(t)

	var text strings.Builder
	flush := func() error {
		if text.Len() == 0 {
			return nil
		}
		value := text.String()
		text.Reset()
		if !pre.raw {
			decoded, err := decodeEscapes(value)
			if err != nil {
				return fstringErr(t, err.Error())
			}
			value = decoded
		}
		lit := &StringLit{Value: value, Raw: pre.raw, Long: long}
		lit.Span = tokenSpan(t)
		fs.Parts = append(fs.Parts, lit)
		return nil
	}

	i := 0
	for i < len(body) {
		c := body[i]
		switch {
		case c == '{' && i+1 < len(body) && body[i+1] == '{':
			text.WriteByte('{')
			i += 2
		case c == '}' && i+1 < len(body) && body[i+1] == '}':
			text.WriteByte('}')
			i += 2
		case c == '}':
			return nil, fstringErr(t, "single '}' is not allowed in f-string")
		case c == '{':
			if err := flush(); err != nil {
				return nil, err
			}
			end, ok := fieldEnd(body, i+1)
			if !ok {
				return nil, fstringErr(t, "unterminated '{' in f-string")
			}
			fv, err := parseField(t, body[i+1:end])
			if err != nil {
				return nil, err
			}
			fs.Parts = append(fs.Parts, fv)
			i = end + 1
		default:
			text.WriteByte(c)
			i++
		}
	}
	if err := flush(); err != nil {
		return nil, err
	}
	return fs, nil
}

func fstringErr(t Token, msg string) error {
	return &SyntaxError{Line: t.Line, Col: t.Col, Msg: msg}
}

// fieldEnd finds the '}' closing the field that starts at from, honoring
// bracket nesting and quoted strings inside the field.
func fieldEnd(body string, from int) (int, bool) {
	depth := 0
	for i := from; i < len(body); i++ {
		switch body[i] {
		case '(', '[', '{':
			depth++
		case ')', ']':
			depth--
		case '}':
			if depth == 0 {
				return i, true
			}
			depth--
		case '\'', '"':
			j, ok := skipQuoted(body, i)
			if !ok {
				return 0, false
			}
			i = j
		}
	}
	return 0, false
}

// skipQuoted advances past a quoted string starting at i, returning the
// index of its closing quote.
func skipQuoted(body string, i int) (int, bool) {
	quote := body[i]
	for j := i + 1; j < len(body); j++ {
		switch body[j] {
		case '\\':
			j++
		case quote:
			return j, true
		}
	}
	return 0, false
}

// parseField splits one field into expression text, optional conversion and
// optional format spec, then sub-parses the expression.
func parseField(t Token, field string) (*FormattedValue, error) {
	exprText := field
	var conv byte
	format := ""
	depth := 0
scan:
	for j := 0; j < len(field); j++ {
		switch field[j] {
		case '(', '[', '{':
			depth++
		case ')', ']', '}':
			depth--
		case '\'', '"':
			k, ok := skipQuoted(field, j)
			if !ok {
				return nil, fstringErr(t, "unterminated string in f-string field")
			}
			j = k
		case '!':
			if depth != 0 || j+1 >= len(field) || field[j+1] == '=' {
				continue
			}
			c := field[j+1]
			if (c == 's' || c == 'r' || c == 'a') && (j+2 == len(field) || field[j+2] == ':') {
				exprText = field[:j]
				conv = c
				if j+2 < len(field) {
					format = field[j+3:]
				}
				break scan
			}
			return nil, fstringErr(t, "invalid conversion in f-string: only !s, !r and !a are allowed")
		case ':':
			if depth == 0 {
				exprText = field[:j]
				format = field[j+1:]
				break scan
			}
		}
	}
	if strings.TrimSpace(exprText) == "" {
		return nil, fstringErr(t, "empty expression in f-string")
	}
	x, err := parseFieldExpr(t, exprText)
	if err != nil {
		return nil, err
	}
	fv := &FormattedValue{X: x, Conversion: conv, Format: format}
	fv.Span = tokenSpan(t)
	return fv, nil
}

// parseFieldExpr runs an isolated parse of a field's expression text.
func parseFieldExpr(t Token, src string) (Expr, error) {
	mod, err := Parse(src)
	if err != nil {
		msg := "invalid expression in f-string"
		switch e := err.(type) {
		case *LexError:
			msg += ": " + e.Msg
		case *SyntaxError:
			msg += ": " + e.Msg
		}
		return nil, fstringErr(t, msg)
	}
	if len(mod.Body) != 1 {
		return nil, fstringErr(t, "f-string field must hold a single expression")
	}
	es, ok := mod.Body[0].(*ExprStmt)
	if !ok {
		return nil, fstringErr(t, "f-string field must hold a single expression")
	}
	return es.X, nil
}
