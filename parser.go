// parser.go: recursive-descent statement parser for ox.
//
// The parser consumes the token stream produced by the indentation-aware
// lexer (see lexer.go) and builds the typed AST of ast.go in a single
// forward pass. It fails fast: the first error aborts the parse, there is
// no recovery or resynchronization.
//
// Layout tokens drive the statement grammar directly: a suite is either an
// inline simple-statement list terminated by NEWLINE, or NEWLINE INDENT
// statements DEDENT. Blank and comment-only lines never reach the parser,
// so statement boundaries are exactly the NEWLINE tokens.
//
// Two spellings are resolved here rather than in the lexer:
//   - `async` arrives as a plain NAME and is recognized only immediately
//     before `def`, `for` or `with`;
//   - `not in` and `is not` are merged into single comparison operators
//     (see expr.go).
//
// Interactive mode mirrors the lexer's: an error caused by running out of
// input is marked Incomplete so a REPL can ask for another line instead of
// reporting a hard failure.
package ox

// Parse tokenizes and parses src as a complete module.
func Parse(src string) (*Module, error) {
	toks, err := Tokenize(src)
	if err != nil {
		return nil, err
	}
	p := &parser{toks: toks}
	return p.program()
}

// ParseInteractive parses src for a REPL: errors at end of input are marked
// Incomplete (see IsIncomplete) so the caller can keep reading lines.
func ParseInteractive(src string) (*Module, error) {
	lex := NewLexerInteractive(src)
	toks, err := lex.Scan()
	if err != nil {
		return nil, err
	}
	p := &parser{toks: toks, interactive: true}
	return p.program()
}

type parser struct {
	toks        []Token
	i           int
	interactive bool
}

// ─────────────────────────── token basics & helpers ─────────────────────────

func (p *parser) atEnd() bool { return p.peek().Type == EOF }

func (p *parser) peek() Token {
	if p.i >= len(p.toks) {
		return p.toks[len(p.toks)-1]
	}
	return p.toks[p.i]
}

func (p *parser) peekAt(n int) Token {
	if p.i+n >= len(p.toks) {
		return p.toks[len(p.toks)-1]
	}
	return p.toks[p.i+n]
}

func (p *parser) prev() Token { return p.toks[p.i-1] }

func (p *parser) advance() Token {
	t := p.peek()
	if !p.atEnd() {
		p.i++
	}
	return t
}

func (p *parser) check(tt TokenType) bool { return p.peek().Type == tt }

func (p *parser) match(tt ...TokenType) bool {
	for _, t := range tt {
		if p.peek().Type == t {
			p.advance()
			return true
		}
	}
	return false
}

// need consumes a token of kind tt or fails with a SyntaxError carrying the
// expected kind. Failing at EOF in interactive mode marks the error
// Incomplete.
func (p *parser) need(tt TokenType, msg string) (Token, error) {
	if p.match(tt) {
		return p.prev(), nil
	}
	return Token{}, p.errExpect(msg, tt)
}

func (p *parser) errExpect(msg string, expected ...TokenType) error {
	g := p.peek()
	return &SyntaxError{
		Line:       g.Line,
		Col:        g.Col,
		Msg:        msg,
		Expected:   expected,
		Incomplete: p.interactive && g.Type == EOF,
	}
}

func errAtNode(n Node, msg string) error {
	sp := n.NodeSpan()
	return &SyntaxError{Line: sp.Line, Col: sp.Col, Msg: msg}
}

// span covers start through the most recently consumed token.
func (p *parser) span(start Token) Span {
	end := p.prev()
	return Span{Line: start.Line, Col: start.Col, EndLine: end.EndLine, EndCol: end.EndCol}
}

func (p *parser) skipNewlines() {
	for p.check(NEWLINE) {
		p.advance()
	}
}

// atAsync reports whether the upcoming NAME spells the async modifier of a
// def, for or with statement.
func (p *parser) atAsync() bool {
	t := p.peek()
	if t.Type != NAME || t.Lexeme != "async" {
		return false
	}
	switch p.peekAt(1).Type {
	case DEF, FOR, WITH:
		return true
	}
	return false
}

// ──────────────────────────────── program ───────────────────────────────────

func (p *parser) program() (*Module, error) {
	m := &Module{}
	first := p.peek()
	p.skipNewlines()
	for !p.atEnd() {
		stmts, err := p.statement()
		if err != nil {
			return nil, err
		}
		m.Body = append(m.Body, stmts...)
		p.skipNewlines()
	}
	// Empty or comment-only input consumes no tokens; there is no prev()
	// to span to, so the module covers just the EOF position.
	if p.i == 0 {
		m.Span = tokenSpan(first)
	} else {
		m.Span = p.span(first)
	}
	return m, nil
}

// statement parses one compound statement or one line of simple statements.
func (p *parser) statement() ([]Stmt, error) {
	switch p.peek().Type {
	case IF:
		s, err := p.ifStmt()
		return one(s, err)
	case WHILE:
		s, err := p.whileStmt()
		return one(s, err)
	case FOR:
		s, err := p.forStmt(false)
		return one(s, err)
	case TRY:
		s, err := p.tryStmt()
		return one(s, err)
	case WITH:
		s, err := p.withStmt(false)
		return one(s, err)
	case DEF:
		s, err := p.funcDef(nil, false)
		return one(s, err)
	case CLASS:
		s, err := p.classDef(nil)
		return one(s, err)
	case AT:
		s, err := p.decorated()
		return one(s, err)
	}
	if p.atAsync() {
		s, err := p.asyncStmt()
		return one(s, err)
	}
	return p.simpleLine()
}

func one(s Stmt, err error) ([]Stmt, error) {
	if err != nil {
		return nil, err
	}
	return []Stmt{s}, nil
}

// suite parses the body after a compound-statement colon: either simple
// statements on the same line, or an indented block.
func (p *parser) suite() ([]Stmt, error) {
	if !p.match(NEWLINE) {
		return p.simpleLine()
	}
	if _, err := p.need(INDENT, "expected an indented block"); err != nil {
		return nil, err
	}
	var body []Stmt
	for !p.check(DEDENT) && !p.atEnd() {
		stmts, err := p.statement()
		if err != nil {
			return nil, err
		}
		body = append(body, stmts...)
		p.skipNewlines()
	}
	if _, err := p.need(DEDENT, "expected dedent to close block"); err != nil {
		return nil, err
	}
	return body, nil
}

// ─────────────────────────── compound statements ────────────────────────────

func (p *parser) ifStmt() (Stmt, error) {
	start := p.advance() // if / elif
	cond, err := p.expression()
	if err != nil {
		return nil, err
	}
	if _, err := p.need(COLON, "expected ':' after condition"); err != nil {
		return nil, err
	}
	body, err := p.suite()
	if err != nil {
		return nil, err
	}
	s := &If{Cond: cond, Body: body}
	switch {
	case p.check(ELIF):
		nested, err := p.ifStmt()
		if err != nil {
			return nil, err
		}
		s.Else = []Stmt{nested}
	case p.match(ELSE):
		if _, err := p.need(COLON, "expected ':' after 'else'"); err != nil {
			return nil, err
		}
		if s.Else, err = p.suite(); err != nil {
			return nil, err
		}
	}
	s.Span = p.span(start)
	return s, nil
}

func (p *parser) whileStmt() (Stmt, error) {
	start := p.advance()
	cond, err := p.expression()
	if err != nil {
		return nil, err
	}
	if _, err := p.need(COLON, "expected ':' after condition"); err != nil {
		return nil, err
	}
	body, err := p.suite()
	if err != nil {
		return nil, err
	}
	s := &While{Cond: cond, Body: body}
	if p.match(ELSE) {
		if _, err := p.need(COLON, "expected ':' after 'else'"); err != nil {
			return nil, err
		}
		if s.Else, err = p.suite(); err != nil {
			return nil, err
		}
	}
	s.Span = p.span(start)
	return s, nil
}

func (p *parser) forStmt(async bool) (Stmt, error) {
	start := p.advance() // for
	targets, err := p.targetList()
	if err != nil {
		return nil, err
	}
	if _, err := p.need(IN, "expected 'in' after for targets"); err != nil {
		return nil, err
	}
	iter, err := p.exprList()
	if err != nil {
		return nil, err
	}
	if _, err := p.need(COLON, "expected ':' after for clause"); err != nil {
		return nil, err
	}
	body, err := p.suite()
	if err != nil {
		return nil, err
	}
	s := &For{Targets: targets, Iter: iter, Body: body, Async: async}
	if p.match(ELSE) {
		if _, err := p.need(COLON, "expected ':' after 'else'"); err != nil {
			return nil, err
		}
		if s.Else, err = p.suite(); err != nil {
			return nil, err
		}
	}
	s.Span = p.span(start)
	return s, nil
}

func (p *parser) tryStmt() (Stmt, error) {
	start := p.advance() // try
	if _, err := p.need(COLON, "expected ':' after 'try'"); err != nil {
		return nil, err
	}
	body, err := p.suite()
	if err != nil {
		return nil, err
	}
	if p.check(EXCEPT) {
		s := &TryExcept{Body: body}
		for p.check(EXCEPT) {
			h, err := p.exceptClause()
			if err != nil {
				return nil, err
			}
			s.Handlers = append(s.Handlers, h)
		}
		if p.match(ELSE) {
			if _, err := p.need(COLON, "expected ':' after 'else'"); err != nil {
				return nil, err
			}
			if s.Else, err = p.suite(); err != nil {
				return nil, err
			}
		}
		if p.match(FINALLY) {
			if _, err := p.need(COLON, "expected ':' after 'finally'"); err != nil {
				return nil, err
			}
			if s.Finally, err = p.suite(); err != nil {
				return nil, err
			}
		}
		s.Span = p.span(start)
		return s, nil
	}
	if p.match(FINALLY) {
		if _, err := p.need(COLON, "expected ':' after 'finally'"); err != nil {
			return nil, err
		}
		fin, err := p.suite()
		if err != nil {
			return nil, err
		}
		s := &TryFinally{Body: body, Finally: fin}
		s.Span = p.span(start)
		return s, nil
	}
	return nil, p.errExpect("expected 'except' or 'finally' after try block", EXCEPT, FINALLY)
}

func (p *parser) exceptClause() (*ExceptClause, error) {
	start := p.advance() // except
	h := &ExceptClause{}
	if !p.check(COLON) {
		typ, err := p.expression()
		if err != nil {
			return nil, err
		}
		h.Type = typ
		if p.match(AS) {
			nt, err := p.need(NAME, "expected name after 'as'")
			if err != nil {
				return nil, err
			}
			h.Name = nt.Lexeme
		}
	}
	if _, err := p.need(COLON, "expected ':' after except clause"); err != nil {
		return nil, err
	}
	body, err := p.suite()
	if err != nil {
		return nil, err
	}
	h.Body = body
	h.Span = p.span(start)
	return h, nil
}

func (p *parser) withStmt(async bool) (Stmt, error) {
	start := p.advance() // with
	s := &With{Async: async}
	for {
		item, err := p.withItem()
		if err != nil {
			return nil, err
		}
		s.Items = append(s.Items, item)
		if !p.match(COMMA) {
			break
		}
	}
	if _, err := p.need(COLON, "expected ':' after with items"); err != nil {
		return nil, err
	}
	body, err := p.suite()
	if err != nil {
		return nil, err
	}
	s.Body = body
	s.Span = p.span(start)
	return s, nil
}

func (p *parser) withItem() (*WithItem, error) {
	start := p.peek()
	ctx, err := p.expression()
	if err != nil {
		return nil, err
	}
	item := &WithItem{Ctx: ctx}
	if p.match(AS) {
		target, err := p.target()
		if err != nil {
			return nil, err
		}
		item.As = target
	}
	item.Span = p.span(start)
	return item, nil
}

func (p *parser) asyncStmt() (Stmt, error) {
	p.advance() // the async NAME
	switch p.peek().Type {
	case DEF:
		return p.funcDef(nil, true)
	case FOR:
		return p.forStmt(true)
	case WITH:
		return p.withStmt(true)
	}
	return nil, p.errExpect("expected 'def', 'for' or 'with' after 'async'", DEF, FOR, WITH)
}

// ───────────────────────────── definitions ──────────────────────────────────

func (p *parser) decorated() (Stmt, error) {
	var decs []*Decorator
	for p.check(AT) {
		d, err := p.decorator()
		if err != nil {
			return nil, err
		}
		decs = append(decs, d)
	}
	switch p.peek().Type {
	case DEF:
		return p.funcDef(decs, false)
	case CLASS:
		return p.classDef(decs)
	}
	if p.atAsync() {
		p.advance()
		if p.check(DEF) {
			return p.funcDef(decs, true)
		}
		return nil, p.errExpect("expected 'def' after 'async'", DEF)
	}
	return nil, p.errExpect("expected 'def' or 'class' after decorators", DEF, CLASS)
}

func (p *parser) decorator() (*Decorator, error) {
	start := p.advance() // @
	nt, err := p.need(NAME, "expected decorator name after '@'")
	if err != nil {
		return nil, err
	}
	name := &Name{Id: nt.Lexeme}
	name.Span = p.span(nt)
	var target Expr = name
	for p.match(DOT) {
		at, err := p.need(NAME, "expected attribute name after '.'")
		if err != nil {
			return nil, err
		}
		attr := &Attribute{X: target, Name: at.Lexeme}
		attr.Span = p.span(nt)
		target = attr
	}
	d := &Decorator{Target: target}
	if p.match(LPAREN) {
		d.HasCall = true
		if d.Args, err = p.callArguments(); err != nil {
			return nil, err
		}
	}
	if _, err := p.need(NEWLINE, "expected newline after decorator"); err != nil {
		return nil, err
	}
	d.Span = p.span(start)
	return d, nil
}

func (p *parser) funcDef(decs []*Decorator, async bool) (Stmt, error) {
	start := p.advance() // def
	if len(decs) > 0 {
		start = firstDecoratorToken(decs, start)
	}
	nt, err := p.need(NAME, "expected function name after 'def'")
	if err != nil {
		return nil, err
	}
	if _, err := p.need(LPAREN, "expected '(' after function name"); err != nil {
		return nil, err
	}
	params, err := p.paramList(RPAREN, true)
	if err != nil {
		return nil, err
	}
	s := &FuncDef{Name: nt.Lexeme, Params: params, Decorators: decs, Async: async}
	if p.match(ARROW) {
		if s.Returns, err = p.expression(); err != nil {
			return nil, err
		}
	}
	if _, err := p.need(COLON, "expected ':' after function signature"); err != nil {
		return nil, err
	}
	if s.Body, err = p.suite(); err != nil {
		return nil, err
	}
	s.Span = p.span(start)
	return s, nil
}

func (p *parser) classDef(decs []*Decorator) (Stmt, error) {
	start := p.advance() // class
	if len(decs) > 0 {
		start = firstDecoratorToken(decs, start)
	}
	nt, err := p.need(NAME, "expected class name after 'class'")
	if err != nil {
		return nil, err
	}
	s := &ClassDef{Name: nt.Lexeme, Decorators: decs}
	if p.match(LPAREN) {
		if s.Args, err = p.callArguments(); err != nil {
			return nil, err
		}
	}
	if _, err := p.need(COLON, "expected ':' after class header"); err != nil {
		return nil, err
	}
	if s.Body, err = p.suite(); err != nil {
		return nil, err
	}
	s.Span = p.span(start)
	return s, nil
}

// firstDecoratorToken widens a definition's span to start at its first
// decorator line.
func firstDecoratorToken(decs []*Decorator, kw Token) Token {
	sp := decs[0].Span
	kw.Line, kw.Col = sp.Line, sp.Col
	return kw
}

// paramList parses formal parameters up to (and through) end. Annotations
// and defaults follow each name; a bare '*' marks the start of keyword-only
// parameters and is kept as a nameless Star-1 entry.
func (p *parser) paramList(end TokenType, allowAnnot bool) ([]*Param, error) {
	var params []*Param
	for !p.check(end) {
		start := p.peek()
		pr := &Param{}
		switch {
		case p.match(STAR):
			pr.Star = 1
			if p.check(NAME) {
				pr.Name = p.advance().Lexeme
			}
		case p.match(DOUBLESTAR):
			pr.Star = 2
			nt, err := p.need(NAME, "expected parameter name after '**'")
			if err != nil {
				return nil, err
			}
			pr.Name = nt.Lexeme
		default:
			nt, err := p.need(NAME, "expected parameter name")
			if err != nil {
				return nil, err
			}
			pr.Name = nt.Lexeme
		}
		if allowAnnot && p.match(COLON) {
			annot, err := p.expression()
			if err != nil {
				return nil, err
			}
			pr.Annot = annot
		}
		if pr.Star == 0 && p.match(ASSIGN) {
			def, err := p.expression()
			if err != nil {
				return nil, err
			}
			pr.Default = def
		}
		pr.Span = p.span(start)
		params = append(params, pr)
		if !p.match(COMMA) {
			break
		}
	}
	if _, err := p.need(end, "expected "+end.String()+" to close parameter list"); err != nil {
		return nil, err
	}
	return params, nil
}

// ─────────────────────────── simple statements ──────────────────────────────

// simpleLine parses semicolon-separated simple statements through the
// terminating NEWLINE.
func (p *parser) simpleLine() ([]Stmt, error) {
	var out []Stmt
	for {
		s, err := p.simpleStmt()
		if err != nil {
			return nil, err
		}
		out = append(out, s)
		if !p.match(SEMI) {
			break
		}
		if p.check(NEWLINE) || p.atEnd() {
			break
		}
	}
	if !p.atEnd() {
		if _, err := p.need(NEWLINE, "expected newline after statement"); err != nil {
			return nil, err
		}
	}
	return out, nil
}

func (p *parser) simpleStmt() (Stmt, error) {
	start := p.peek()
	switch start.Type {
	case PASS:
		p.advance()
		s := &Pass{}
		s.Span = p.span(start)
		return s, nil
	case BREAK:
		p.advance()
		s := &Break{}
		s.Span = p.span(start)
		return s, nil
	case CONTINUE:
		p.advance()
		s := &Continue{}
		s.Span = p.span(start)
		return s, nil
	case RETURN:
		p.advance()
		s := &Return{}
		if !p.atStmtEnd() {
			v, err := p.exprList()
			if err != nil {
				return nil, err
			}
			s.Value = v
		}
		s.Span = p.span(start)
		return s, nil
	case RAISE:
		return p.raiseStmt()
	case DEL:
		p.advance()
		targets, err := p.targetList()
		if err != nil {
			return nil, err
		}
		s := &Del{Targets: targets}
		s.Span = p.span(start)
		return s, nil
	case GLOBAL:
		p.advance()
		names, err := p.nameList()
		if err != nil {
			return nil, err
		}
		s := &Global{Names: names}
		s.Span = p.span(start)
		return s, nil
	case NONLOCAL:
		p.advance()
		names, err := p.nameList()
		if err != nil {
			return nil, err
		}
		s := &Nonlocal{Names: names}
		s.Span = p.span(start)
		return s, nil
	case ASSERT:
		p.advance()
		cond, err := p.expression()
		if err != nil {
			return nil, err
		}
		s := &Assert{Cond: cond}
		if p.match(COMMA) {
			if s.Msg, err = p.expression(); err != nil {
				return nil, err
			}
		}
		s.Span = p.span(start)
		return s, nil
	case IMPORT:
		return p.importStmt()
	case FROM:
		return p.importFromStmt()
	case YIELD:
		v, err := p.yieldExpr()
		if err != nil {
			return nil, err
		}
		s := &YieldStmt{Value: v}
		s.Span = p.span(start)
		return s, nil
	}
	return p.exprOrAssign()
}

// atStmtEnd reports whether the current token terminates a simple statement.
func (p *parser) atStmtEnd() bool {
	switch p.peek().Type {
	case NEWLINE, SEMI, EOF:
		return true
	}
	return false
}

func (p *parser) raiseStmt() (Stmt, error) {
	start := p.advance() // raise
	s := &Raise{}
	if !p.atStmtEnd() {
		exc, err := p.expression()
		if err != nil {
			return nil, err
		}
		s.Exc = exc
		if p.match(FROM) {
			if s.Cause, err = p.expression(); err != nil {
				return nil, err
			}
		}
	}
	s.Span = p.span(start)
	return s, nil
}

func (p *parser) nameList() ([]string, error) {
	var names []string
	for {
		nt, err := p.need(NAME, "expected name")
		if err != nil {
			return nil, err
		}
		names = append(names, nt.Lexeme)
		if !p.match(COMMA) {
			return names, nil
		}
	}
}

func (p *parser) dottedName() ([]string, error) {
	nt, err := p.need(NAME, "expected module name")
	if err != nil {
		return nil, err
	}
	path := []string{nt.Lexeme}
	for p.match(DOT) {
		nt, err := p.need(NAME, "expected name after '.'")
		if err != nil {
			return nil, err
		}
		path = append(path, nt.Lexeme)
	}
	return path, nil
}

func (p *parser) importStmt() (Stmt, error) {
	start := p.advance() // import
	s := &Import{}
	for {
		itemStart := p.peek()
		path, err := p.dottedName()
		if err != nil {
			return nil, err
		}
		item := &ImportItem{Path: path}
		if p.match(AS) {
			nt, err := p.need(NAME, "expected name after 'as'")
			if err != nil {
				return nil, err
			}
			item.As = nt.Lexeme
		}
		item.Span = p.span(itemStart)
		s.Items = append(s.Items, item)
		if !p.match(COMMA) {
			break
		}
	}
	s.Span = p.span(start)
	return s, nil
}

func (p *parser) importFromStmt() (Stmt, error) {
	start := p.advance() // from
	s := &ImportFrom{}
	for {
		if p.match(DOT) {
			s.Dots++
			continue
		}
		if p.match(ELLIPSIS) {
			s.Dots += 3
			continue
		}
		break
	}
	if p.check(NAME) {
		mod, err := p.dottedName()
		if err != nil {
			return nil, err
		}
		s.Module = mod
	} else if s.Dots == 0 {
		return nil, p.errExpect("expected module name after 'from'", NAME)
	}
	if _, err := p.need(IMPORT, "expected 'import' in from-import"); err != nil {
		return nil, err
	}
	switch {
	case p.match(STAR):
		s.Star = true
	case p.match(LPAREN):
		for !p.check(RPAREN) {
			n, err := p.importName()
			if err != nil {
				return nil, err
			}
			s.Names = append(s.Names, n)
			if !p.match(COMMA) {
				break
			}
		}
		if _, err := p.need(RPAREN, "expected ')' to close import list"); err != nil {
			return nil, err
		}
	default:
		for {
			n, err := p.importName()
			if err != nil {
				return nil, err
			}
			s.Names = append(s.Names, n)
			if !p.match(COMMA) {
				break
			}
		}
	}
	s.Span = p.span(start)
	return s, nil
}

func (p *parser) importName() (*ImportName, error) {
	start := p.peek()
	nt, err := p.need(NAME, "expected imported name")
	if err != nil {
		return nil, err
	}
	n := &ImportName{Name: nt.Lexeme}
	if p.match(AS) {
		at, err := p.need(NAME, "expected name after 'as'")
		if err != nil {
			return nil, err
		}
		n.As = at.Lexeme
	}
	n.Span = p.span(start)
	return n, nil
}

// ─────────────────────── assignment & expression lines ──────────────────────

var inplaceOps = map[TokenType]bool{
	PLUS_ASSIGN: true, MINUS_ASSIGN: true, STAR_ASSIGN: true, SLASH_ASSIGN: true,
	DOUBLESLASH_ASSIGN: true, PERCENT_ASSIGN: true, AT_ASSIGN: true,
	PIPE_ASSIGN: true, AMPER_ASSIGN: true, CARET_ASSIGN: true,
	LSHIFT_ASSIGN: true, RSHIFT_ASSIGN: true, DOUBLESTAR_ASSIGN: true,
}

// exprOrAssign parses an expression line and classifies it as a plain
// expression statement, a type declaration, an in-place assignment, or a
// (possibly chained) assignment.
func (p *parser) exprOrAssign() (Stmt, error) {
	start := p.peek()
	first, err := p.exprList()
	if err != nil {
		return nil, err
	}
	switch {
	case p.check(COLON):
		return p.typeDecl(start, first)
	case inplaceOps[p.peek().Type]:
		op := p.advance()
		if err := checkAssignTarget(first, false); err != nil {
			return nil, err
		}
		value, err := p.exprListOrYield()
		if err != nil {
			return nil, err
		}
		s := &InplaceAssign{Target: first, Op: op.Lexeme, Value: value}
		s.Span = p.span(start)
		return s, nil
	case p.check(ASSIGN):
		parts := []Expr{first}
		for p.match(ASSIGN) {
			e, err := p.exprListOrYield()
			if err != nil {
				return nil, err
			}
			parts = append(parts, e)
		}
		value := parts[len(parts)-1]
		targets := parts[:len(parts)-1]
		for _, t := range targets {
			if err := checkAssignTarget(t, true); err != nil {
				return nil, err
			}
		}
		if len(targets) == 1 {
			s := &Assign{Target: targets[0], Value: value}
			s.Span = p.span(start)
			return s, nil
		}
		s := &MultiAssign{Targets: targets, Value: value}
		s.Span = p.span(start)
		return s, nil
	}
	s := &ExprStmt{X: first}
	s.Span = p.span(start)
	return s, nil
}

func (p *parser) typeDecl(start Token, target Expr) (Stmt, error) {
	switch target.(type) {
	case *Name, *Attribute, *Subscript:
	default:
		return nil, errAtNode(target, "only a name, attribute or subscript can carry a type declaration")
	}
	p.advance() // :
	annot, err := p.expression()
	if err != nil {
		return nil, err
	}
	s := &TypeDecl{Target: target, Annot: annot}
	if p.match(ASSIGN) {
		if s.Value, err = p.exprListOrYield(); err != nil {
			return nil, err
		}
	}
	s.Span = p.span(start)
	return s, nil
}

// exprListOrYield admits a yield expression on the right side of an
// assignment, otherwise an expression list.
func (p *parser) exprListOrYield() (Expr, error) {
	if p.check(YIELD) {
		return p.yieldExpr()
	}
	return p.exprList()
}

// checkAssignTarget validates an assignment target. Nested lists and stars
// are admitted only for plain assignment, not the in-place form.
func checkAssignTarget(e Expr, allowUnpack bool) error {
	switch t := e.(type) {
	case *Name, *Attribute, *Subscript:
		return nil
	case *Starred:
		if !allowUnpack {
			return errAtNode(e, "invalid assignment target")
		}
		return checkAssignTarget(t.X, false)
	case *TupleLit:
		if !allowUnpack {
			return errAtNode(e, "invalid assignment target")
		}
		for _, el := range t.Elems {
			if err := checkAssignTarget(el, true); err != nil {
				return err
			}
		}
		return nil
	case *ListLit:
		if !allowUnpack {
			return errAtNode(e, "invalid assignment target")
		}
		for _, el := range t.Elems {
			if err := checkAssignTarget(el, true); err != nil {
				return err
			}
		}
		return nil
	}
	return errAtNode(e, "invalid assignment target")
}
