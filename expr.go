// expr.go: expression grammar for ox.
//
// Tiers from loosest to tightest binding:
//
//	expression      lambda, ternary conditional
//	orChain         and / or, one flat n-ary chain
//	notExpr         unary not
//	comparison      < > <= >= == != is, is not, in, not in (n-ary chain)
//	arithChain      + - * / // % @ | & ^ << >>, one flat n-ary chain
//	unary           prefix + - ~
//	power           ** (right-associative) and await
//	postfix         calls, subscripts, attribute access
//	atom            names, literals, displays, groupings
//
// The three chain tiers never produce nested binary nodes: a run of
// same-tier operators becomes a single node with parallel operand and
// operator slices. Comprehension iterables and filters parse at the orChain
// tier so a following `if` always reads as a filter clause, never as the
// start of a ternary.
package ox

// expression parses a full conditional expression or lambda.
func (p *parser) expression() (Expr, error) {
	if p.check(LAMBDA) {
		return p.lambdaExpr()
	}
	start := p.peek()
	e, err := p.orChain()
	if err != nil {
		return nil, err
	}
	if !p.match(IF) {
		return e, nil
	}
	cond, err := p.orChain()
	if err != nil {
		return nil, err
	}
	if _, err := p.need(ELSE, "expected 'else' in conditional expression"); err != nil {
		return nil, err
	}
	els, err := p.expression()
	if err != nil {
		return nil, err
	}
	c := &Conditional{Cond: cond, Then: e, Else: els}
	c.Span = p.span(start)
	return c, nil
}

func (p *parser) lambdaExpr() (Expr, error) {
	start := p.advance() // lambda
	params, err := p.paramList(COLON, false)
	if err != nil {
		return nil, err
	}
	body, err := p.expression()
	if err != nil {
		return nil, err
	}
	l := &Lambda{Params: params, Body: body}
	l.Span = p.span(start)
	return l, nil
}

// orChain parses the flat and/or tier.
func (p *parser) orChain() (Expr, error) {
	start := p.peek()
	first, err := p.notExpr()
	if err != nil {
		return nil, err
	}
	if !p.check(AND) && !p.check(OR) {
		return first, nil
	}
	c := &LogicalChain{Operands: []Expr{first}}
	for {
		switch {
		case p.match(AND):
			c.Ops = append(c.Ops, "and")
		case p.match(OR):
			c.Ops = append(c.Ops, "or")
		default:
			c.Span = p.span(start)
			return c, nil
		}
		rhs, err := p.notExpr()
		if err != nil {
			return nil, err
		}
		c.Operands = append(c.Operands, rhs)
	}
}

func (p *parser) notExpr() (Expr, error) {
	if p.check(NOT) {
		start := p.advance()
		x, err := p.notExpr()
		if err != nil {
			return nil, err
		}
		u := &UnaryOp{Op: "not", X: x}
		u.Span = p.span(start)
		return u, nil
	}
	return p.comparison()
}

// comparison parses the n-ary comparison tier, merging the two-token
// spellings `not in` and `is not` into single operators.
func (p *parser) comparison() (Expr, error) {
	start := p.peek()
	first, err := p.arithChain()
	if err != nil {
		return nil, err
	}
	var c *CompareChain
	for {
		op, ok := p.matchCompareOp()
		if !ok {
			break
		}
		rhs, err := p.arithChain()
		if err != nil {
			return nil, err
		}
		if c == nil {
			c = &CompareChain{Operands: []Expr{first}}
		}
		c.Ops = append(c.Ops, op)
		c.Operands = append(c.Operands, rhs)
	}
	if c == nil {
		return first, nil
	}
	c.Span = p.span(start)
	return c, nil
}

func (p *parser) matchCompareOp() (string, bool) {
	switch p.peek().Type {
	case LESS, GREATER, LESS_EQ, GREATER_EQ, EQ, NEQ:
		return p.advance().Lexeme, true
	case IN:
		p.advance()
		return "in", true
	case IS:
		p.advance()
		if p.match(NOT) {
			return "is not", true
		}
		return "is", true
	case NOT:
		if p.peekAt(1).Type == IN {
			p.advance()
			p.advance()
			return "not in", true
		}
	}
	return "", false
}

// arithTier holds every operator of the single flattened arithmetic/bitwise
// precedence level.
var arithTier = map[TokenType]bool{
	PLUS: true, MINUS: true, STAR: true, SLASH: true, DOUBLESLASH: true,
	PERCENT: true, AT: true, PIPE: true, AMPER: true, CARET: true,
	LSHIFT: true, RSHIFT: true,
}

// arithChain parses the flat arithmetic/bitwise tier as one n-ary chain.
func (p *parser) arithChain() (Expr, error) {
	start := p.peek()
	first, err := p.unary()
	if err != nil {
		return nil, err
	}
	if !arithTier[p.peek().Type] {
		return first, nil
	}
	c := &BinaryChain{Operands: []Expr{first}}
	for arithTier[p.peek().Type] {
		op := p.advance()
		rhs, err := p.unary()
		if err != nil {
			return nil, err
		}
		c.Ops = append(c.Ops, op.Lexeme)
		c.Operands = append(c.Operands, rhs)
	}
	c.Span = p.span(start)
	return c, nil
}

func (p *parser) unary() (Expr, error) {
	switch p.peek().Type {
	case PLUS, MINUS, TILDE:
		start := p.advance()
		x, err := p.unary()
		if err != nil {
			return nil, err
		}
		u := &UnaryOp{Op: start.Lexeme, X: x}
		u.Span = p.span(start)
		return u, nil
	}
	return p.power()
}

// power parses the await prefix and the right-associative ** operator.
// Exponentiation keeps the n-ary chain shape with a two-operand node, and
// `a ** b ** c` nests on the right.
func (p *parser) power() (Expr, error) {
	start := p.peek()
	var base Expr
	if p.match(AWAIT) {
		x, err := p.postfix()
		if err != nil {
			return nil, err
		}
		a := &Await{X: x}
		a.Span = p.span(start)
		base = a
	} else {
		var err error
		if base, err = p.postfix(); err != nil {
			return nil, err
		}
	}
	if !p.match(DOUBLESTAR) {
		return base, nil
	}
	exp, err := p.unary() // admits a signed exponent, recursing back here
	if err != nil {
		return nil, err
	}
	c := &BinaryChain{Operands: []Expr{base, exp}, Ops: []string{"**"}}
	c.Span = p.span(start)
	return c, nil
}

// postfix parses an atom followed by any run of calls, subscripts and
// attribute accesses.
func (p *parser) postfix() (Expr, error) {
	start := p.peek()
	e, err := p.atom()
	if err != nil {
		return nil, err
	}
	for {
		switch {
		case p.match(LPAREN):
			args, err := p.callArguments()
			if err != nil {
				return nil, err
			}
			c := &Call{Func: e, Args: args}
			c.Span = p.span(start)
			e = c
		case p.match(LBRACKET):
			if p.check(RBRACKET) {
				return nil, p.errExpect("expected subscript expression")
			}
			idx, err := p.subscriptList()
			if err != nil {
				return nil, err
			}
			s := &Subscript{X: e, Index: idx}
			s.Span = p.span(start)
			e = s
		case p.match(DOT):
			nt, err := p.need(NAME, "expected attribute name after '.'")
			if err != nil {
				return nil, err
			}
			a := &Attribute{X: e, Name: nt.Lexeme}
			a.Span = p.span(start)
			e = a
		default:
			return e, nil
		}
	}
}

// ────────────────────────────────── atoms ───────────────────────────────────

func (p *parser) atom() (Expr, error) {
	t := p.peek()
	switch t.Type {
	case NAME:
		p.advance()
		n := &Name{Id: t.Lexeme}
		n.Span = tokenSpan(t)
		return n, nil
	case INT:
		p.advance()
		v, _ := t.Literal.(int64)
		e := &IntLit{Text: t.Lexeme, Value: v}
		e.Span = tokenSpan(t)
		return e, nil
	case HEX:
		p.advance()
		v, _ := t.Literal.(int64)
		e := &HexLit{Text: t.Lexeme, Value: v}
		e.Span = tokenSpan(t)
		return e, nil
	case OCT:
		p.advance()
		v, _ := t.Literal.(int64)
		e := &OctLit{Text: t.Lexeme, Value: v}
		e.Span = tokenSpan(t)
		return e, nil
	case BIN:
		p.advance()
		v, _ := t.Literal.(int64)
		e := &BinLit{Text: t.Lexeme, Value: v}
		e.Span = tokenSpan(t)
		return e, nil
	case FLOAT:
		p.advance()
		v, _ := t.Literal.(float64)
		e := &FloatLit{Text: t.Lexeme, Value: v}
		e.Span = tokenSpan(t)
		return e, nil
	case COMPLEX:
		p.advance()
		v, _ := t.Literal.(complex128)
		e := &ComplexLit{Text: t.Lexeme, Value: v}
		e.Span = tokenSpan(t)
		return e, nil
	case STRING, LONG_STRING:
		return p.stringAtom()
	case TRUE, FALSE:
		p.advance()
		e := &BoolLit{Value: t.Type == TRUE}
		e.Span = tokenSpan(t)
		return e, nil
	case NONE:
		p.advance()
		e := &NoneLit{}
		e.Span = tokenSpan(t)
		return e, nil
	case ELLIPSIS:
		p.advance()
		e := &EllipsisLit{}
		e.Span = tokenSpan(t)
		return e, nil
	case LPAREN:
		return p.parenAtom()
	case LBRACKET:
		return p.listAtom()
	case LBRACE:
		return p.braceAtom()
	case LAMBDA:
		return p.lambdaExpr()
	}
	return nil, p.errExpect("expected an expression")
}

func tokenSpan(t Token) Span {
	return Span{Line: t.Line, Col: t.Col, EndLine: t.EndLine, EndCol: t.EndCol}
}

// stringAtom collects a run of adjacent string tokens into one StringConcat,
// splitting f-string fragments into their parts (see fstring.go).
func (p *parser) stringAtom() (Expr, error) {
	start := p.peek()
	sc := &StringConcat{}
	for p.check(STRING) || p.check(LONG_STRING) {
		t := p.advance()
		pre, long := stringTokenShape(t)
		if pre.kind == 'f' {
			fs, err := parseFString(t, long)
			if err != nil {
				return nil, err
			}
			sc.Parts = append(sc.Parts, fs)
			continue
		}
		body, _ := t.Literal.(string)
		lit := &StringLit{Value: body, Kind: pre.kind, Raw: pre.raw, Long: long}
		lit.Span = tokenSpan(t)
		sc.Parts = append(sc.Parts, lit)
	}
	sc.Span = p.span(start)
	return sc, nil
}

// stringTokenShape recovers the prefix letters and quoting form from a
// string token's lexeme.
func stringTokenShape(t Token) (stringPrefix, bool) {
	i := 0
	for i < len(t.Lexeme) && t.Lexeme[i] != '\'' && t.Lexeme[i] != '"' {
		i++
	}
	pre, _ := parseStringPrefix(t.Lexeme[:i])
	return pre, t.Type == LONG_STRING
}

// parenAtom parses a parenthesized grouping, the empty tuple, a tuple
// display, a generator expression, or a parenthesized yield.
func (p *parser) parenAtom() (Expr, error) {
	open := p.advance() // (
	if p.match(RPAREN) {
		e := &TupleLit{}
		e.Span = p.span(open)
		return e, nil
	}
	if p.check(YIELD) {
		y, err := p.yieldExpr()
		if err != nil {
			return nil, err
		}
		if _, err := p.need(RPAREN, "expected ')' after yield expression"); err != nil {
			return nil, err
		}
		return y, nil
	}
	first, err := p.starExpr()
	if err != nil {
		return nil, err
	}
	if p.check(FOR) {
		if _, ok := first.(*Starred); ok {
			return nil, errAtNode(first, "iterable unpacking cannot be used in a comprehension")
		}
		clauses, err := p.compClauses()
		if err != nil {
			return nil, err
		}
		if _, err := p.need(RPAREN, "expected ')' to close generator expression"); err != nil {
			return nil, err
		}
		g := &GeneratorExp{Elt: first, Clauses: clauses}
		g.Span = p.span(open)
		return g, nil
	}
	if p.check(COMMA) {
		elems := []Expr{first}
		for p.match(COMMA) {
			if p.check(RPAREN) {
				break
			}
			e, err := p.starExpr()
			if err != nil {
				return nil, err
			}
			elems = append(elems, e)
		}
		if _, err := p.need(RPAREN, "expected ')' to close tuple"); err != nil {
			return nil, err
		}
		tl := &TupleLit{Elems: elems}
		tl.Span = p.span(open)
		return tl, nil
	}
	if _, err := p.need(RPAREN, "expected ')'"); err != nil {
		return nil, err
	}
	// A lone splat cannot be a grouping, so it denotes a one-element tuple.
	if _, ok := first.(*Starred); ok {
		tl := &TupleLit{Elems: []Expr{first}}
		tl.Span = p.span(open)
		return tl, nil
	}
	return first, nil
}

func (p *parser) listAtom() (Expr, error) {
	open := p.advance() // [
	if p.match(RBRACKET) {
		e := &ListLit{}
		e.Span = p.span(open)
		return e, nil
	}
	first, err := p.starExpr()
	if err != nil {
		return nil, err
	}
	if p.check(FOR) {
		if _, ok := first.(*Starred); ok {
			return nil, errAtNode(first, "iterable unpacking cannot be used in a comprehension")
		}
		clauses, err := p.compClauses()
		if err != nil {
			return nil, err
		}
		if _, err := p.need(RBRACKET, "expected ']' to close comprehension"); err != nil {
			return nil, err
		}
		c := &ListComp{Elt: first, Clauses: clauses}
		c.Span = p.span(open)
		return c, nil
	}
	elems := []Expr{first}
	for p.match(COMMA) {
		if p.check(RBRACKET) {
			break
		}
		e, err := p.starExpr()
		if err != nil {
			return nil, err
		}
		elems = append(elems, e)
	}
	if _, err := p.need(RBRACKET, "expected ']' to close list"); err != nil {
		return nil, err
	}
	l := &ListLit{Elems: elems}
	l.Span = p.span(open)
	return l, nil
}

// braceAtom parses dict and set displays and their comprehension forms. An
// empty display is a dict.
func (p *parser) braceAtom() (Expr, error) {
	open := p.advance() // {
	if p.match(RBRACE) {
		e := &DictLit{}
		e.Span = p.span(open)
		return e, nil
	}
	if p.check(DOUBLESTAR) {
		item, err := p.dictItem()
		if err != nil {
			return nil, err
		}
		return p.dictRest(open, []*DictItem{item})
	}
	first, err := p.starExpr()
	if err != nil {
		return nil, err
	}
	if _, starred := first.(*Starred); !starred && p.match(COLON) {
		value, err := p.expression()
		if err != nil {
			return nil, err
		}
		if p.check(FOR) {
			clauses, err := p.compClauses()
			if err != nil {
				return nil, err
			}
			if _, err := p.need(RBRACE, "expected '}' to close comprehension"); err != nil {
				return nil, err
			}
			c := &DictComp{Key: first, Value: value, Clauses: clauses}
			c.Span = p.span(open)
			return c, nil
		}
		item := &DictItem{Key: first, Value: value}
		item.Span = Span{Line: first.NodeSpan().Line, Col: first.NodeSpan().Col,
			EndLine: value.NodeSpan().EndLine, EndCol: value.NodeSpan().EndCol}
		return p.dictRest(open, []*DictItem{item})
	}
	if p.check(FOR) {
		if _, ok := first.(*Starred); ok {
			return nil, errAtNode(first, "iterable unpacking cannot be used in a comprehension")
		}
		clauses, err := p.compClauses()
		if err != nil {
			return nil, err
		}
		if _, err := p.need(RBRACE, "expected '}' to close comprehension"); err != nil {
			return nil, err
		}
		c := &SetComp{Elt: first, Clauses: clauses}
		c.Span = p.span(open)
		return c, nil
	}
	elems := []Expr{first}
	for p.match(COMMA) {
		if p.check(RBRACE) {
			break
		}
		e, err := p.starExpr()
		if err != nil {
			return nil, err
		}
		elems = append(elems, e)
	}
	if _, err := p.need(RBRACE, "expected '}' to close set"); err != nil {
		return nil, err
	}
	s := &SetLit{Elems: elems}
	s.Span = p.span(open)
	return s, nil
}

// dictItem parses one `key: value` pair or a `**mapping` entry.
func (p *parser) dictItem() (*DictItem, error) {
	start := p.peek()
	if p.match(DOUBLESTAR) {
		v, err := p.arithChain()
		if err != nil {
			return nil, err
		}
		item := &DictItem{Value: v}
		item.Span = p.span(start)
		return item, nil
	}
	key, err := p.expression()
	if err != nil {
		return nil, err
	}
	if _, err := p.need(COLON, "expected ':' in dict entry"); err != nil {
		return nil, err
	}
	value, err := p.expression()
	if err != nil {
		return nil, err
	}
	item := &DictItem{Key: key, Value: value}
	item.Span = p.span(start)
	return item, nil
}

func (p *parser) dictRest(open Token, items []*DictItem) (Expr, error) {
	for p.match(COMMA) {
		if p.check(RBRACE) {
			break
		}
		item, err := p.dictItem()
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	if _, err := p.need(RBRACE, "expected '}' to close dict"); err != nil {
		return nil, err
	}
	d := &DictLit{Items: items}
	d.Span = p.span(open)
	return d, nil
}

// ─────────────────────── arguments, subscripts, clauses ─────────────────────

// callArguments parses a call's argument list through the closing paren. A
// bare generator expression is only legal as the sole argument.
func (p *parser) callArguments() ([]*CallArg, error) {
	var args []*CallArg
	for !p.check(RPAREN) {
		start := p.peek()
		a := &CallArg{}
		switch {
		case p.match(STAR):
			a.Star = 1
			v, err := p.expression()
			if err != nil {
				return nil, err
			}
			a.Value = v
		case p.match(DOUBLESTAR):
			a.Star = 2
			v, err := p.expression()
			if err != nil {
				return nil, err
			}
			a.Value = v
		case p.check(NAME) && p.peekAt(1).Type == ASSIGN:
			a.Name = p.advance().Lexeme
			p.advance() // =
			v, err := p.expression()
			if err != nil {
				return nil, err
			}
			a.Value = v
		default:
			v, err := p.expression()
			if err != nil {
				return nil, err
			}
			if p.check(FOR) {
				if len(args) > 0 {
					return nil, p.errExpect("generator expression must be the sole argument")
				}
				clauses, err := p.compClauses()
				if err != nil {
					return nil, err
				}
				g := &GeneratorExp{Elt: v, Clauses: clauses}
				g.Span = p.span(start)
				a.Value = g
				a.Span = g.Span
				args = append(args, a)
				if p.check(COMMA) {
					return nil, p.errExpect("generator expression must be the sole argument", RPAREN)
				}
				if _, err := p.need(RPAREN, "expected ')' to close argument list"); err != nil {
					return nil, err
				}
				return args, nil
			}
			a.Value = v
		}
		a.Span = p.span(start)
		args = append(args, a)
		if !p.match(COMMA) {
			break
		}
	}
	if _, err := p.need(RPAREN, "expected ')' to close argument list"); err != nil {
		return nil, err
	}
	return args, nil
}

// subscriptList parses the comma-separated index elements through ']'.
func (p *parser) subscriptList() ([]Expr, error) {
	var idx []Expr
	for {
		el, err := p.subscriptItem()
		if err != nil {
			return nil, err
		}
		idx = append(idx, el)
		if !p.match(COMMA) {
			break
		}
		if p.check(RBRACKET) {
			break
		}
	}
	if _, err := p.need(RBRACKET, "expected ']' to close subscript"); err != nil {
		return nil, err
	}
	return idx, nil
}

// subscriptItem parses one index element: a value expression or a slice
// `[start]:[stop][:[step]]` with each part independently optional.
func (p *parser) subscriptItem() (Expr, error) {
	first := p.peek()
	var start Expr
	if !p.check(COLON) {
		e, err := p.expression()
		if err != nil {
			return nil, err
		}
		start = e
	}
	if !p.match(COLON) {
		return start, nil
	}
	sl := &Slice{Start: start}
	if p.canStartExpr() {
		stop, err := p.expression()
		if err != nil {
			return nil, err
		}
		sl.Stop = stop
	}
	if p.match(COLON) && p.canStartExpr() {
		step, err := p.expression()
		if err != nil {
			return nil, err
		}
		sl.Step = step
	}
	sl.Span = p.span(first)
	return sl, nil
}

// compClauses parses one or more `for targets in iterable [if condition]`
// clauses. Iterables and conditions use the orChain tier so a trailing `if`
// cannot start a ternary.
func (p *parser) compClauses() ([]*CompClause, error) {
	var clauses []*CompClause
	for p.check(FOR) {
		start := p.advance()
		targets, err := p.targetList()
		if err != nil {
			return nil, err
		}
		if _, err := p.need(IN, "expected 'in' in comprehension clause"); err != nil {
			return nil, err
		}
		iter, err := p.orChain()
		if err != nil {
			return nil, err
		}
		c := &CompClause{Targets: targets, Iter: iter}
		if p.match(IF) {
			if c.Cond, err = p.orChain(); err != nil {
				return nil, err
			}
		}
		c.Span = p.span(start)
		clauses = append(clauses, c)
	}
	return clauses, nil
}

// ──────────────────────── lists, targets, yields ────────────────────────────

// starExpr parses one element of a display or expression list: a full
// expression or a `*expr` splat.
func (p *parser) starExpr() (Expr, error) {
	if p.check(STAR) {
		start := p.advance()
		x, err := p.arithChain()
		if err != nil {
			return nil, err
		}
		s := &Starred{X: x}
		s.Span = p.span(start)
		return s, nil
	}
	return p.expression()
}

// exprList parses a comma-separated expression list; any comma makes the
// result a tuple, including a trailing one.
func (p *parser) exprList() (Expr, error) {
	start := p.peek()
	first, err := p.starExpr()
	if err != nil {
		return nil, err
	}
	if !p.check(COMMA) {
		return first, nil
	}
	elems := []Expr{first}
	for p.match(COMMA) {
		if !p.canStartExpr() && !p.check(STAR) {
			break
		}
		e, err := p.starExpr()
		if err != nil {
			return nil, err
		}
		elems = append(elems, e)
	}
	tl := &TupleLit{Elems: elems}
	tl.Span = p.span(start)
	return tl, nil
}

// target parses one assignment target at postfix precedence so that a
// following `in` or `=` is never consumed as an operator.
func (p *parser) target() (Expr, error) {
	if p.check(STAR) {
		start := p.advance()
		x, err := p.target()
		if err != nil {
			return nil, err
		}
		s := &Starred{X: x}
		s.Span = p.span(start)
		return s, nil
	}
	e, err := p.postfix()
	if err != nil {
		return nil, err
	}
	if err := checkAssignTarget(e, true); err != nil {
		return nil, err
	}
	return e, nil
}

// targetList parses the comma-separated targets of for, del and with-as.
func (p *parser) targetList() ([]Expr, error) {
	first, err := p.target()
	if err != nil {
		return nil, err
	}
	targets := []Expr{first}
	for p.match(COMMA) {
		switch p.peek().Type {
		case NAME, LPAREN, LBRACKET, STAR:
		default:
			return targets, nil // trailing comma
		}
		t, err := p.target()
		if err != nil {
			return nil, err
		}
		targets = append(targets, t)
	}
	return targets, nil
}

// yieldExpr parses `yield`, `yield value` or `yield from iterable`.
func (p *parser) yieldExpr() (Expr, error) {
	start := p.advance() // yield
	if p.match(FROM) {
		x, err := p.expression()
		if err != nil {
			return nil, err
		}
		y := &YieldFrom{X: x}
		y.Span = p.span(start)
		return y, nil
	}
	y := &Yield{}
	if p.canStartExpr() || p.check(STAR) {
		v, err := p.exprList()
		if err != nil {
			return nil, err
		}
		y.Value = v
	}
	y.Span = p.span(start)
	return y, nil
}

// canStartExpr reports whether the current token can begin an expression.
func (p *parser) canStartExpr() bool {
	switch p.peek().Type {
	case NAME, INT, HEX, OCT, BIN, FLOAT, COMPLEX, STRING, LONG_STRING,
		LPAREN, LBRACKET, LBRACE, PLUS, MINUS, TILDE, NOT, LAMBDA, AWAIT,
		TRUE, FALSE, NONE, ELLIPSIS:
		return true
	}
	return false
}
