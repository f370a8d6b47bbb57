// token.go: token kinds and the Token value produced by the ox tokenizer.
//
// The token alphabet has three layers:
//
//   - raw tokens produced by the scanner (names, literals, operators,
//     punctuation), classified by sub-kind at scan time (HEX before INT,
//     FLOAT/COMPLEX before INT, keyword before NAME);
//   - layout tokens synthesized by the indent tracker (NEWLINE, INDENT,
//     DEDENT), which never appear inside bracketed groups;
//   - EOF, emitted exactly once after trailing DEDENTs are balanced.
//
// `async` is deliberately absent from the keyword table: it is recognized
// contextually by the parser (before `def`, `for`, `with`) and remains a
// plain NAME everywhere else.
package ox

import "fmt"

// TokenType represents the kind of token.
type TokenType int

const (
	// Special
	EOF TokenType = iota
	NEWLINE
	INDENT
	DEDENT

	// Literals & identifiers
	NAME
	INT
	HEX
	OCT
	BIN
	FLOAT
	COMPLEX
	STRING
	LONG_STRING

	// Punctuation
	LPAREN   // "("
	RPAREN   // ")"
	LBRACKET // "["
	RBRACKET // "]"
	LBRACE   // "{"
	RBRACE   // "}"
	COMMA    // ","
	COLON    // ":"
	SEMI     // ";"
	DOT      // "."
	ELLIPSIS // "..."
	ARROW    // "->"
	AT       // "@" (decorator marker and matrix-multiply operator)

	// Operators
	PLUS        // "+"
	MINUS       // "-"
	STAR        // "*" (also splat marker)
	SLASH       // "/"
	DOUBLESLASH // "//"
	PERCENT     // "%"
	PIPE        // "|"
	AMPER       // "&"
	CARET       // "^"
	LSHIFT      // "<<"
	RSHIFT      // ">>"
	DOUBLESTAR  // "**" (also double-splat marker)
	TILDE       // "~"
	LESS        // "<"
	GREATER     // ">"
	LESS_EQ     // "<="
	GREATER_EQ  // ">="
	EQ          // "=="
	NEQ         // "!="
	ASSIGN      // "="

	// In-place assignment operators
	PLUS_ASSIGN        // "+="
	MINUS_ASSIGN       // "-="
	STAR_ASSIGN        // "*="
	SLASH_ASSIGN       // "/="
	DOUBLESLASH_ASSIGN // "//="
	PERCENT_ASSIGN     // "%="
	AT_ASSIGN          // "@="
	PIPE_ASSIGN        // "|="
	AMPER_ASSIGN       // "&="
	CARET_ASSIGN       // "^="
	LSHIFT_ASSIGN      // "<<="
	RSHIFT_ASSIGN      // ">>="
	DOUBLESTAR_ASSIGN  // "**="

	// Keywords
	FALSE
	NONE
	TRUE
	AND
	AS
	ASSERT
	AWAIT
	BREAK
	CLASS
	CONTINUE
	DEF
	DEL
	ELIF
	ELSE
	EXCEPT
	FINALLY
	FOR
	FROM
	GLOBAL
	IF
	IMPORT
	IN
	IS
	LAMBDA
	NONLOCAL
	NOT
	OR
	PASS
	RAISE
	RETURN
	TRY
	WHILE
	WITH
	YIELD
)

// Token is a lexical token with optional literal value.
//
// Line is 1-based; Col is 0-based (the caret renderer in errors.go adds one
// when formatting). EndLine/EndCol point one past the final character of the
// lexeme, so a token's span is [Line:Col, EndLine:EndCol).
type Token struct {
	Type    TokenType
	Lexeme  string      // raw source text of the token
	Literal interface{} // decoded value for literals (int64, float64, complex128, string)
	Line    int
	Col     int
	EndLine int
	EndCol  int
}

// keywords maps reserved spellings to their token kinds. Spellings absent
// here (notably "async") lex as NAME.
var keywords = map[string]TokenType{
	"False":    FALSE,
	"None":     NONE,
	"True":     TRUE,
	"and":      AND,
	"as":       AS,
	"assert":   ASSERT,
	"await":    AWAIT,
	"break":    BREAK,
	"class":    CLASS,
	"continue": CONTINUE,
	"def":      DEF,
	"del":      DEL,
	"elif":     ELIF,
	"else":     ELSE,
	"except":   EXCEPT,
	"finally":  FINALLY,
	"for":      FOR,
	"from":     FROM,
	"global":   GLOBAL,
	"if":       IF,
	"import":   IMPORT,
	"in":       IN,
	"is":       IS,
	"lambda":   LAMBDA,
	"nonlocal": NONLOCAL,
	"not":      NOT,
	"or":       OR,
	"pass":     PASS,
	"raise":    RAISE,
	"return":   RETURN,
	"try":      TRY,
	"while":    WHILE,
	"with":     WITH,
	"yield":    YIELD,
}

var tokenNames = map[TokenType]string{
	EOF:                "EOF",
	NEWLINE:            "NEWLINE",
	INDENT:             "INDENT",
	DEDENT:             "DEDENT",
	NAME:               "NAME",
	INT:                "INT",
	HEX:                "HEX",
	OCT:                "OCT",
	BIN:                "BIN",
	FLOAT:              "FLOAT",
	COMPLEX:            "COMPLEX",
	STRING:             "STRING",
	LONG_STRING:        "LONG_STRING",
	LPAREN:             "'('",
	RPAREN:             "')'",
	LBRACKET:           "'['",
	RBRACKET:           "']'",
	LBRACE:             "'{'",
	RBRACE:             "'}'",
	COMMA:              "','",
	COLON:              "':'",
	SEMI:               "';'",
	DOT:                "'.'",
	ELLIPSIS:           "'...'",
	ARROW:              "'->'",
	AT:                 "'@'",
	PLUS:               "'+'",
	MINUS:              "'-'",
	STAR:               "'*'",
	SLASH:              "'/'",
	DOUBLESLASH:        "'//'",
	PERCENT:            "'%'",
	PIPE:               "'|'",
	AMPER:              "'&'",
	CARET:              "'^'",
	LSHIFT:             "'<<'",
	RSHIFT:             "'>>'",
	DOUBLESTAR:         "'**'",
	TILDE:              "'~'",
	LESS:               "'<'",
	GREATER:            "'>'",
	LESS_EQ:            "'<='",
	GREATER_EQ:         "'>='",
	EQ:                 "'=='",
	NEQ:                "'!='",
	ASSIGN:             "'='",
	PLUS_ASSIGN:        "'+='",
	MINUS_ASSIGN:       "'-='",
	STAR_ASSIGN:        "'*='",
	SLASH_ASSIGN:       "'/='",
	DOUBLESLASH_ASSIGN: "'//='",
	PERCENT_ASSIGN:     "'%='",
	AT_ASSIGN:          "'@='",
	PIPE_ASSIGN:        "'|='",
	AMPER_ASSIGN:       "'&='",
	CARET_ASSIGN:       "'^='",
	LSHIFT_ASSIGN:      "'<<='",
	RSHIFT_ASSIGN:      "'>>='",
	DOUBLESTAR_ASSIGN:  "'**='",
	FALSE:              "'False'",
	NONE:               "'None'",
	TRUE:               "'True'",
	AND:                "'and'",
	AS:                 "'as'",
	ASSERT:             "'assert'",
	AWAIT:              "'await'",
	BREAK:              "'break'",
	CLASS:              "'class'",
	CONTINUE:           "'continue'",
	DEF:                "'def'",
	DEL:                "'del'",
	ELIF:               "'elif'",
	ELSE:               "'else'",
	EXCEPT:             "'except'",
	FINALLY:            "'finally'",
	FOR:                "'for'",
	FROM:               "'from'",
	GLOBAL:             "'global'",
	IF:                 "'if'",
	IMPORT:             "'import'",
	IN:                 "'in'",
	IS:                 "'is'",
	LAMBDA:             "'lambda'",
	NONLOCAL:           "'nonlocal'",
	NOT:                "'not'",
	OR:                 "'or'",
	PASS:               "'pass'",
	RAISE:              "'raise'",
	RETURN:             "'return'",
	TRY:                "'try'",
	WHILE:              "'while'",
	WITH:               "'with'",
	YIELD:              "'yield'",
}

// String returns a human-readable name for the token kind, quoted for fixed
// spellings ("'('", "'def'") and bare for classes (NAME, INT, NEWLINE).
func (tt TokenType) String() string {
	if s, ok := tokenNames[tt]; ok {
		return s
	}
	return fmt.Sprintf("TokenType(%d)", int(tt))
}

func (t Token) String() string {
	if t.Lexeme == "" {
		return t.Type.String()
	}
	return fmt.Sprintf("%s %q", t.Type, t.Lexeme)
}
