// printer.go: compact s-expression dump of the AST.
//
// Dump is the canonical debug and test representation: deterministic,
// single-line, with one parenthesized form per node. Optional slots that
// are absent are simply omitted, so two equal trees always dump to the
// same string.
package ox

import (
	"fmt"
	"strconv"
	"strings"
)

// Dump renders a node as a compact s-expression.
func Dump(n Node) string {
	var b strings.Builder
	writeNode(&b, n)
	return b.String()
}

func writeNode(b *strings.Builder, n Node) {
	switch x := n.(type) {
	case *Module:
		writeList(b, "module", stmtsAny(x.Body)...)
	case Stmt:
		writeStmt(b, x)
	case Expr:
		writeExpr(b, x)
	default:
		fmt.Fprintf(b, "(?%T)", n)
	}
}

func writeList(b *strings.Builder, tag string, parts ...any) {
	b.WriteByte('(')
	b.WriteString(tag)
	for _, p := range parts {
		b.WriteByte(' ')
		writePart(b, p)
	}
	b.WriteByte(')')
}

func writePart(b *strings.Builder, p any) {
	switch v := p.(type) {
	case string:
		b.WriteString(v)
	case Stmt:
		writeStmt(b, v)
	case Expr:
		writeExpr(b, v)
	default:
		fmt.Fprintf(b, "%v", v)
	}
}

func stmtsAny(stmts []Stmt) []any {
	out := make([]any, len(stmts))
	for i, s := range stmts {
		out[i] = s
	}
	return out
}

func block(stmts []Stmt) string {
	var b strings.Builder
	writeList(&b, "block", stmtsAny(stmts)...)
	return b.String()
}

func exprStr(e Expr) string {
	var b strings.Builder
	writeExpr(&b, e)
	return b.String()
}

// ─────────────────────────────── statements ─────────────────────────────────

func writeStmt(b *strings.Builder, s Stmt) {
	switch x := s.(type) {
	case *If:
		parts := []any{x.Cond, block(x.Body)}
		if x.Else != nil {
			parts = append(parts, block(x.Else))
		}
		writeList(b, "if", parts...)
	case *While:
		parts := []any{x.Cond, block(x.Body)}
		if x.Else != nil {
			parts = append(parts, block(x.Else))
		}
		writeList(b, "while", parts...)
	case *For:
		tag := "for"
		if x.Async {
			tag = "async-for"
		}
		parts := []any{targetsStr(x.Targets), x.Iter, block(x.Body)}
		if x.Else != nil {
			parts = append(parts, block(x.Else))
		}
		writeList(b, tag, parts...)
	case *TryExcept:
		parts := []any{block(x.Body)}
		for _, h := range x.Handlers {
			parts = append(parts, exceptStr(h))
		}
		if x.Else != nil {
			parts = append(parts, "(else "+block(x.Else)+")")
		}
		if x.Finally != nil {
			parts = append(parts, "(finally "+block(x.Finally)+")")
		}
		writeList(b, "try", parts...)
	case *TryFinally:
		writeList(b, "try", block(x.Body), "(finally "+block(x.Finally)+")")
	case *With:
		tag := "with"
		if x.Async {
			tag = "async-with"
		}
		parts := make([]any, 0, len(x.Items)+1)
		for _, it := range x.Items {
			if it.As == nil {
				parts = append(parts, "(item "+exprStr(it.Ctx)+")")
			} else {
				parts = append(parts, "(item "+exprStr(it.Ctx)+" as "+exprStr(it.As)+")")
			}
		}
		parts = append(parts, block(x.Body))
		writeList(b, tag, parts...)
	case *FuncDef:
		tag := "def"
		if x.Async {
			tag = "async-def"
		}
		parts := []any{x.Name}
		if len(x.Decorators) > 0 {
			parts = append(parts, decoratorsStr(x.Decorators))
		}
		parts = append(parts, paramsStr(x.Params))
		if x.Returns != nil {
			parts = append(parts, "(returns "+exprStr(x.Returns)+")")
		}
		parts = append(parts, block(x.Body))
		writeList(b, tag, parts...)
	case *ClassDef:
		parts := []any{x.Name}
		if len(x.Decorators) > 0 {
			parts = append(parts, decoratorsStr(x.Decorators))
		}
		if len(x.Args) > 0 {
			parts = append(parts, "(bases"+argsStr(x.Args)+")")
		}
		parts = append(parts, block(x.Body))
		writeList(b, "class", parts...)
	case *Assign:
		writeList(b, "assign", x.Target, x.Value)
	case *MultiAssign:
		writeList(b, "massign", targetsStr(x.Targets), x.Value)
	case *InplaceAssign:
		writeList(b, "aug", x.Op, x.Target, x.Value)
	case *TypeDecl:
		parts := []any{x.Target, x.Annot}
		if x.Value != nil {
			parts = append(parts, x.Value)
		}
		writeList(b, "decl", parts...)
	case *Del:
		writeList(b, "del", exprsAny(x.Targets)...)
	case *Pass:
		b.WriteString("(pass)")
	case *Break:
		b.WriteString("(break)")
	case *Continue:
		b.WriteString("(continue)")
	case *Return:
		if x.Value == nil {
			b.WriteString("(return)")
		} else {
			writeList(b, "return", x.Value)
		}
	case *YieldStmt:
		writeExpr(b, x.Value)
	case *Raise:
		switch {
		case x.Exc == nil:
			b.WriteString("(raise)")
		case x.Cause == nil:
			writeList(b, "raise", x.Exc)
		default:
			writeList(b, "raise", x.Exc, "from", x.Cause)
		}
	case *Import:
		parts := make([]any, len(x.Items))
		for i, it := range x.Items {
			parts[i] = aliasStr(strings.Join(it.Path, "."), it.As)
		}
		writeList(b, "import", parts...)
	case *ImportFrom:
		mod := strings.Repeat(".", x.Dots) + strings.Join(x.Module, ".")
		parts := []any{mod}
		if x.Star {
			parts = append(parts, "*")
		}
		for _, n := range x.Names {
			parts = append(parts, aliasStr(n.Name, n.As))
		}
		writeList(b, "from", parts...)
	case *Global:
		writeList(b, "global", strsAny(x.Names)...)
	case *Nonlocal:
		writeList(b, "nonlocal", strsAny(x.Names)...)
	case *Assert:
		parts := []any{x.Cond}
		if x.Msg != nil {
			parts = append(parts, x.Msg)
		}
		writeList(b, "assert", parts...)
	case *ExprStmt:
		writeExpr(b, x.X)
	default:
		fmt.Fprintf(b, "(?%T)", s)
	}
}

func aliasStr(name, as string) string {
	if as == "" {
		return name
	}
	return "(as " + name + " " + as + ")"
}

func exceptStr(h *ExceptClause) string {
	var b strings.Builder
	parts := []any{}
	if h.Type != nil {
		parts = append(parts, h.Type)
	}
	if h.Name != "" {
		parts = append(parts, "as", h.Name)
	}
	parts = append(parts, block(h.Body))
	writeList(&b, "except", parts...)
	return b.String()
}

func decoratorsStr(decs []*Decorator) string {
	var b strings.Builder
	parts := make([]any, len(decs))
	for i, d := range decs {
		var db strings.Builder
		if d.HasCall {
			writeList(&db, "@", exprStr(d.Target)+argsStr(d.Args))
		} else {
			writeList(&db, "@", d.Target)
		}
		parts[i] = db.String()
	}
	writeList(&b, "decorators", parts...)
	return b.String()
}

func paramsStr(params []*Param) string {
	var b strings.Builder
	b.WriteString("(params")
	for _, pr := range params {
		b.WriteByte(' ')
		b.WriteString(paramStr(pr))
	}
	b.WriteByte(')')
	return b.String()
}

func paramStr(pr *Param) string {
	name := strings.Repeat("*", pr.Star) + pr.Name
	if pr.Annot == nil && pr.Default == nil {
		return name
	}
	out := "(" + name
	if pr.Annot != nil {
		out += " : " + exprStr(pr.Annot)
	}
	if pr.Default != nil {
		out += " = " + exprStr(pr.Default)
	}
	return out + ")"
}

func targetsStr(targets []Expr) string {
	var b strings.Builder
	writeList(&b, "targets", exprsAny(targets)...)
	return b.String()
}

func exprsAny(exprs []Expr) []any {
	out := make([]any, len(exprs))
	for i, e := range exprs {
		out[i] = e
	}
	return out
}

func strsAny(ss []string) []any {
	out := make([]any, len(ss))
	for i, s := range ss {
		out[i] = s
	}
	return out
}

// ─────────────────────────────── expressions ────────────────────────────────

func writeExpr(b *strings.Builder, e Expr) {
	switch x := e.(type) {
	case *Name:
		b.WriteString(x.Id)
	case *IntLit:
		b.WriteString(x.Text)
	case *HexLit:
		b.WriteString(x.Text)
	case *OctLit:
		b.WriteString(x.Text)
	case *BinLit:
		b.WriteString(x.Text)
	case *FloatLit:
		b.WriteString(x.Text)
	case *ComplexLit:
		b.WriteString(x.Text)
	case *BoolLit:
		if x.Value {
			b.WriteString("True")
		} else {
			b.WriteString("False")
		}
	case *NoneLit:
		b.WriteString("None")
	case *EllipsisLit:
		b.WriteString("...")
	case *StringLit:
		if x.Kind != 0 {
			b.WriteByte(x.Kind)
		}
		b.WriteString(strconv.Quote(x.Value))
	case *FString:
		writeList(b, "fstring", exprsAny(x.Parts)...)
	case *FormattedValue:
		parts := []any{x.X}
		if x.Conversion != 0 {
			parts = append(parts, "!"+string(x.Conversion))
		}
		if x.Format != "" {
			parts = append(parts, ":"+strconv.Quote(x.Format))
		}
		writeList(b, "field", parts...)
	case *StringConcat:
		writeList(b, "strcat", exprsAny(x.Parts)...)
	case *UnaryOp:
		writeList(b, x.Op, x.X)
	case *LogicalChain:
		writeChain(b, "logic", x.Operands, x.Ops)
	case *CompareChain:
		writeChain(b, "cmp", x.Operands, x.Ops)
	case *BinaryChain:
		writeChain(b, "bin", x.Operands, x.Ops)
	case *Lambda:
		writeList(b, "lambda", paramsStr(x.Params), x.Body)
	case *Conditional:
		writeList(b, "ifexp", x.Cond, x.Then, x.Else)
	case *Call:
		var cb strings.Builder
		writeExpr(&cb, x.Func)
		b.WriteString("(call ")
		b.WriteString(cb.String())
		b.WriteString(argsStr(x.Args))
		b.WriteByte(')')
	case *Subscript:
		parts := append([]any{x.X}, exprsAny(x.Index)...)
		writeList(b, "index", parts...)
	case *Slice:
		writeList(b, "slice", optExpr(x.Start), optExpr(x.Stop), optExpr(x.Step))
	case *Attribute:
		writeList(b, "attr", x.X, x.Name)
	case *ListLit:
		writeList(b, "list", exprsAny(x.Elems)...)
	case *SetLit:
		writeList(b, "set", exprsAny(x.Elems)...)
	case *TupleLit:
		writeList(b, "tuple", exprsAny(x.Elems)...)
	case *DictLit:
		parts := make([]any, len(x.Items))
		for i, it := range x.Items {
			parts[i] = dictItemStr(it)
		}
		writeList(b, "dict", parts...)
	case *ListComp:
		writeComp(b, "listcomp", []Expr{x.Elt}, x.Clauses)
	case *SetComp:
		writeComp(b, "setcomp", []Expr{x.Elt}, x.Clauses)
	case *DictComp:
		writeComp(b, "dictcomp", []Expr{x.Key, x.Value}, x.Clauses)
	case *GeneratorExp:
		writeComp(b, "genexp", []Expr{x.Elt}, x.Clauses)
	case *Await:
		writeList(b, "await", x.X)
	case *Yield:
		if x.Value == nil {
			b.WriteString("(yield)")
		} else {
			writeList(b, "yield", x.Value)
		}
	case *YieldFrom:
		writeList(b, "yieldfrom", x.X)
	case *Starred:
		writeList(b, "star", x.X)
	default:
		fmt.Fprintf(b, "(?%T)", e)
	}
}

// writeChain interleaves operands and operators of an n-ary chain node.
func writeChain(b *strings.Builder, tag string, operands []Expr, ops []string) {
	b.WriteByte('(')
	b.WriteString(tag)
	for i, op := range operands {
		b.WriteByte(' ')
		writeExpr(b, op)
		if i < len(ops) {
			b.WriteByte(' ')
			b.WriteString(ops[i])
		}
	}
	b.WriteByte(')')
}

func writeComp(b *strings.Builder, tag string, elts []Expr, clauses []*CompClause) {
	b.WriteByte('(')
	b.WriteString(tag)
	for _, e := range elts {
		b.WriteByte(' ')
		writeExpr(b, e)
	}
	for _, c := range clauses {
		b.WriteString(" (for ")
		b.WriteString(targetsStr(c.Targets))
		b.WriteByte(' ')
		writeExpr(b, c.Iter)
		if c.Cond != nil {
			b.WriteString(" if ")
			writeExpr(b, c.Cond)
		}
		b.WriteByte(')')
	}
	b.WriteByte(')')
}

func argsStr(args []*CallArg) string {
	var b strings.Builder
	for _, a := range args {
		b.WriteByte(' ')
		switch {
		case a.Star == 1:
			b.WriteString("(star " + exprStr(a.Value) + ")")
		case a.Star == 2:
			b.WriteString("(dstar " + exprStr(a.Value) + ")")
		case a.Name != "":
			b.WriteString("(kw " + a.Name + " " + exprStr(a.Value) + ")")
		default:
			b.WriteString(exprStr(a.Value))
		}
	}
	return b.String()
}

func dictItemStr(it *DictItem) string {
	if it.Key == nil {
		return "(dstar " + exprStr(it.Value) + ")"
	}
	return "(pair " + exprStr(it.Key) + " " + exprStr(it.Value) + ")"
}

func optExpr(e Expr) string {
	if e == nil {
		return "_"
	}
	return exprStr(e)
}
