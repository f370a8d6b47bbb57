// ast.go: the ox AST node model.
//
// The tree is a tagged-variant forest of statement and expression structs.
// Ownership is strict: every node exclusively owns its children, the parser
// hands the finished *Module to the caller and keeps no reference, and
// nothing here is mutated after Parse returns.
//
// Three shapes are deliberately n-ary rather than binary:
//
//	CompareChain  a < b < c     → Operands [a b c], Ops ["<" "<"]
//	LogicalChain  a and b or c  → Operands [a b c], Ops ["and" "or"]
//	BinaryChain   a + b * c     → Operands [a b c], Ops ["+" "*"]
//
// Each chain satisfies len(Ops) == len(Operands)-1; a would-be chain with a
// single operand is never wrapped, the operand is used directly. The
// arithmetic/bitwise operators share one flat tier by grammar design, which
// is why BinaryChain mixes them freely.
//
// Decorators and async are plain fields on the definition nodes they modify,
// not wrapper types.
package ox

// Span is a half-open source region [Line:Col, EndLine:EndCol) with 1-based
// lines and 0-based columns, matching Token positions.
type Span struct {
	Line    int
	Col     int
	EndLine int
	EndCol  int
}

// Node is implemented by every AST node.
type Node interface {
	NodeSpan() Span
	setSpan(Span)
}

// Stmt is implemented by statement variants.
type Stmt interface {
	Node
	stmt()
}

// Expr is implemented by expression variants.
type Expr interface {
	Node
	expr()
}

type node struct {
	Span Span
}

func (n *node) NodeSpan() Span { return n.Span }

func (n *node) setSpan(s Span) { n.Span = s }

type stmtNode struct{ node }

func (*stmtNode) stmt() {}

type exprNode struct{ node }

func (*exprNode) expr() {}

// Module is the root of a parsed source unit: the ordered top-level
// statement list.
type Module struct {
	node
	Body []Stmt
}

// ───────────────────────────── statements ──────────────────────────────

// If is an if/elif/else chain; an elif continuation is a nested *If as the
// sole element of Else.
type If struct {
	stmtNode
	Cond Expr
	Body []Stmt
	Else []Stmt
}

type While struct {
	stmtNode
	Cond Expr
	Body []Stmt
	Else []Stmt
}

// TryExcept is the try form with at least one except clause and optional
// else/finally suites. The finally-only form is the distinct *TryFinally.
type TryExcept struct {
	stmtNode
	Body     []Stmt
	Handlers []*ExceptClause
	Else     []Stmt
	Finally  []Stmt
}

// ExceptClause is one `except [type [as name]]:` handler.
type ExceptClause struct {
	node
	Type Expr   // nil for a bare except
	Name string // "" when no `as name`
	Body []Stmt
}

type TryFinally struct {
	stmtNode
	Body    []Stmt
	Finally []Stmt
}

type ClassDef struct {
	stmtNode
	Name       string
	Args       []*CallArg // base classes and keyword arguments
	Decorators []*Decorator
	Body       []Stmt
}

type FuncDef struct {
	stmtNode
	Name       string
	Params     []*Param
	Returns    Expr // nil when no `->` annotation
	Decorators []*Decorator
	Body       []Stmt
	Async      bool
}

// Param is one formal parameter. Star is 0 for a plain parameter, 1 for
// *args, 2 for **kwargs.
type Param struct {
	node
	Name    string
	Annot   Expr
	Default Expr
	Star    int
}

// Decorator is one `@ qualified-name [ ( args ) ]` line attached to the
// class or function definition that follows it.
type Decorator struct {
	node
	Target  Expr
	Args    []*CallArg
	HasCall bool // distinguishes `@f()` from `@f`
}

type For struct {
	stmtNode
	Targets []Expr
	Iter    Expr
	Body    []Stmt
	Else    []Stmt
	Async   bool
}

type With struct {
	stmtNode
	Items []*WithItem
	Body  []Stmt
	Async bool
}

type WithItem struct {
	node
	Ctx Expr
	As  Expr // nil when no `as target`
}

// Assign is a single-target assignment; a comma-separated target list
// appears as a *TupleLit target.
type Assign struct {
	stmtNode
	Target Expr
	Value  Expr
}

// MultiAssign is a chained assignment `a = b = expr`: every target receives
// the same final value.
type MultiAssign struct {
	stmtNode
	Targets []Expr
	Value   Expr
}

type InplaceAssign struct {
	stmtNode
	Target Expr
	Op     string // "+=", "//=", ...
	Value  Expr
}

// TypeDecl is a variable type declaration `target : annotation [= value]`.
type TypeDecl struct {
	stmtNode
	Target Expr
	Annot  Expr
	Value  Expr // nil when declaration only
}

type Del struct {
	stmtNode
	Targets []Expr
}

type Pass struct{ stmtNode }

type Break struct{ stmtNode }

type Continue struct{ stmtNode }

type Return struct {
	stmtNode
	Value Expr // nil for a bare return
}

// YieldStmt is a yield or yield-from used in statement position; Value is
// the *Yield or *YieldFrom expression.
type YieldStmt struct {
	stmtNode
	Value Expr
}

type Raise struct {
	stmtNode
	Exc   Expr // nil for a bare re-raise
	Cause Expr // the `from cause` part, nil when absent
}

type Import struct {
	stmtNode
	Items []*ImportItem
}

// ImportItem is one dotted path with an optional binding name.
type ImportItem struct {
	node
	Path []string
	As   string
}

type ImportFrom struct {
	stmtNode
	Dots   int // leading relative-import dots
	Module []string
	Names  []*ImportName
	Star   bool // `from m import *`
}

type ImportName struct {
	node
	Name string
	As   string
}

type Global struct {
	stmtNode
	Names []string
}

type Nonlocal struct {
	stmtNode
	Names []string
}

type Assert struct {
	stmtNode
	Cond Expr
	Msg  Expr // nil when no message
}

type ExprStmt struct {
	stmtNode
	X Expr
}

// ───────────────────────────── expressions ─────────────────────────────

type Name struct {
	exprNode
	Id string
}

// Numeric literals keep the exact source spelling in Text; Value is the
// decoded value when it fits the Go type and the zero value otherwise
// (arbitrary-precision spellings stay representable through Text).
type IntLit struct {
	exprNode
	Text  string
	Value int64
}

type HexLit struct {
	exprNode
	Text  string
	Value int64
}

type OctLit struct {
	exprNode
	Text  string
	Value int64
}

type BinLit struct {
	exprNode
	Text  string
	Value int64
}

type FloatLit struct {
	exprNode
	Text  string
	Value float64
}

type ComplexLit struct {
	exprNode
	Text  string
	Value complex128
}

type BoolLit struct {
	exprNode
	Value bool
}

type NoneLit struct{ exprNode }

type EllipsisLit struct{ exprNode }

// StringLit is one string fragment: a single short or long string token,
// decoded. Kind is 0 for a plain string, 'u' or 'b' for prefixed forms.
type StringLit struct {
	exprNode
	Value string
	Kind  byte
	Raw   bool
	Long  bool
}

// FString is one formatted string fragment; Parts interleaves *StringLit
// text runs with *FormattedValue interpolations in source order.
type FString struct {
	exprNode
	Parts []Expr
}

// FormattedValue is one `{expr[!conv][:format]}` interpolation inside an
// f-string.
type FormattedValue struct {
	exprNode
	X          Expr
	Conversion byte   // 's', 'r', 'a' or 0
	Format     string // raw format spec text, "" when absent
}

// StringConcat is a contiguous run of adjacent string fragments collected
// into one node; every string atom parses to this, even a run of one.
type StringConcat struct {
	exprNode
	Parts []Expr // *StringLit or *FString
}

type UnaryOp struct {
	exprNode
	Op string // "not", "+", "-", "~"
	X  Expr
}

type LogicalChain struct {
	exprNode
	Operands []Expr
	Ops      []string // "and" / "or"
}

type CompareChain struct {
	exprNode
	Operands []Expr
	Ops      []string // "<", ">", "<=", ">=", "==", "!=", "is", "is not", "in", "not in"
}

// BinaryChain is the single flattened arithmetic/bitwise tier: all of
// + - * / // % @ | & ^ << >> associate left-to-right at one precedence.
type BinaryChain struct {
	exprNode
	Operands []Expr
	Ops      []string
}

type Lambda struct {
	exprNode
	Params []*Param
	Body   Expr
}

// Conditional is the ternary `then if cond else else`.
type Conditional struct {
	exprNode
	Cond Expr
	Then Expr
	Else Expr
}

type Call struct {
	exprNode
	Func Expr
	Args []*CallArg
}

// CallArg is one call argument: positional (Name "" and Star 0), keyword
// (Name set), splat (Star 1) or double-splat (Star 2). A sole bare
// generator expression argument is a positional arg whose Value is the
// *GeneratorExp.
type CallArg struct {
	node
	Name  string
	Star  int
	Value Expr
}

// Subscript indexes an object; each Index element is a value expression or
// a *Slice.
type Subscript struct {
	exprNode
	X     Expr
	Index []Expr
}

// Slice is `[start]:[stop][:[step]]`, each part independently optional.
type Slice struct {
	exprNode
	Start Expr
	Stop  Expr
	Step  Expr
}

type Attribute struct {
	exprNode
	X    Expr
	Name string
}

type ListLit struct {
	exprNode
	Elems []Expr
}

type SetLit struct {
	exprNode
	Elems []Expr
}

type TupleLit struct {
	exprNode
	Elems []Expr
}

type DictLit struct {
	exprNode
	Items []*DictItem
}

// DictItem is one `key: value` pair, or a `**mapping` entry when Key is nil.
type DictItem struct {
	node
	Key   Expr
	Value Expr
}

// CompClause is one `for targets in iter [if cond]` clause of a
// comprehension.
type CompClause struct {
	node
	Targets []Expr
	Iter    Expr
	Cond    Expr // nil when no filter
}

type ListComp struct {
	exprNode
	Elt     Expr
	Clauses []*CompClause
}

type SetComp struct {
	exprNode
	Elt     Expr
	Clauses []*CompClause
}

type DictComp struct {
	exprNode
	Key     Expr
	Value   Expr
	Clauses []*CompClause
}

type GeneratorExp struct {
	exprNode
	Elt     Expr
	Clauses []*CompClause
}

type Await struct {
	exprNode
	X Expr
}

type Yield struct {
	exprNode
	Value Expr // nil for a bare yield
}

type YieldFrom struct {
	exprNode
	X Expr
}

// Starred is a `*expr` splat in target lists, tuple displays and similar
// positions; call-site splats live on CallArg instead.
type Starred struct {
	exprNode
	X Expr
}
