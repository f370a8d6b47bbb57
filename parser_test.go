// parser_test.go
package ox

import (
	"strings"
	"testing"
)

// --- helpers ---------------------------------------------------------------

func mustParse(t *testing.T, src string) *Module {
	t.Helper()
	mod, err := Parse(src)
	if err != nil {
		t.Fatalf("Parse error: %v\nsource:\n%s", err, src)
	}
	return mod
}

func mustIncomplete(t *testing.T, src string) {
	t.Helper()
	_, err := ParseInteractive(src)
	if err == nil || !IsIncomplete(err) {
		t.Fatalf("expected incomplete error, got %v\nsource:\n%s", err, src)
	}
}

func wantDump(t *testing.T, src, want string) {
	t.Helper()
	got := Dump(mustParse(t, src))
	if got != want {
		t.Fatalf("\nsource:\n%s\nwant: %s\ngot:  %s", src, want, got)
	}
}

func wantSyntaxError(t *testing.T, src, msgPart string) *SyntaxError {
	t.Helper()
	_, err := Parse(src)
	if err == nil {
		t.Fatalf("expected syntax error for:\n%s", src)
	}
	se, ok := err.(*SyntaxError)
	if !ok {
		t.Fatalf("expected *SyntaxError, got %T: %v", err, err)
	}
	if msgPart != "" && !strings.Contains(se.Msg, msgPart) {
		t.Fatalf("error %q does not mention %q", se.Msg, msgPart)
	}
	return se
}

func expectsType(t *testing.T, se *SyntaxError, tt TokenType) {
	t.Helper()
	for _, e := range se.Expected {
		if e == tt {
			return
		}
	}
	t.Fatalf("expected set %v does not contain %v", se.Expected, tt)
}

func Test_Parser_EmptySource(t *testing.T) {
	for _, src := range []string{"", "\n", "# only a comment\n", "\n\n# c\n   \n"} {
		mod := mustParse(t, src)
		if len(mod.Body) != 0 {
			t.Fatalf("source %q: body has %d statements, want 0", src, len(mod.Body))
		}
		if got := Dump(mod); got != "(module)" {
			t.Fatalf("source %q: dump = %s", src, got)
		}
	}
}

func Test_Parser_Interactive_EmptySource(t *testing.T) {
	// A blank line in the REPL parses cleanly to an empty module.
	mod, err := ParseInteractive("")
	if err != nil {
		t.Fatalf("ParseInteractive: %v", err)
	}
	if len(mod.Body) != 0 {
		t.Fatalf("body has %d statements, want 0", len(mod.Body))
	}
}

// --- compound statements ---------------------------------------------------

func Test_Parser_If_ElifElse(t *testing.T) {
	src := "if a:\n    pass\nelif b:\n    x = 1\nelse:\n    y = 2\n"
	wantDump(t, src,
		"(module (if a (block (pass)) (block (if b (block (assign x 1)) (block (assign y 2))))))")
}

func Test_Parser_If_InlineSuite(t *testing.T) {
	wantDump(t, "if a: pass\n", "(module (if a (block (pass))))")
}

func Test_Parser_While_Else(t *testing.T) {
	src := "while a:\n    break\nelse:\n    pass\n"
	wantDump(t, src, "(module (while a (block (break)) (block (pass))))")
}

func Test_Parser_For_MultipleTargets(t *testing.T) {
	src := "for i, j in xs:\n    continue\n"
	wantDump(t, src, "(module (for (targets i j) xs (block (continue))))")
}

func Test_Parser_For_Else(t *testing.T) {
	src := "for x in xs:\n    pass\nelse:\n    pass\n"
	wantDump(t, src, "(module (for (targets x) xs (block (pass)) (block (pass))))")
}

func Test_Parser_AsyncFor(t *testing.T) {
	src := "async for x in xs:\n    pass\n"
	wantDump(t, src, "(module (async-for (targets x) xs (block (pass))))")
}

func Test_Parser_Try_Full(t *testing.T) {
	src := "try:\n    pass\nexcept E as e:\n    pass\nexcept:\n    pass\nelse:\n    pass\nfinally:\n    pass\n"
	wantDump(t, src,
		"(module (try (block (pass)) (except E as e (block (pass))) (except (block (pass))) (else (block (pass))) (finally (block (pass)))))")
}

func Test_Parser_Try_FinallyOnly(t *testing.T) {
	src := "try:\n    pass\nfinally:\n    pass\n"
	wantDump(t, src, "(module (try (block (pass)) (finally (block (pass)))))")
}

func Test_Parser_Try_RequiresHandlerOrFinally(t *testing.T) {
	se := wantSyntaxError(t, "try:\n    pass\nx = 1\n", "")
	expectsType(t, se, EXCEPT)
	expectsType(t, se, FINALLY)
}

func Test_Parser_With_Items(t *testing.T) {
	src := "with open(f) as g, h:\n    pass\n"
	wantDump(t, src, "(module (with (item (call open f) as g) (item h) (block (pass))))")
}

func Test_Parser_AsyncWith(t *testing.T) {
	src := "async with a as b:\n    pass\n"
	wantDump(t, src, "(module (async-with (item a as b) (block (pass))))")
}

func Test_Parser_FuncDef_Params(t *testing.T) {
	src := "def f(a, b: int = 1, *args, **kw) -> int:\n    return a\n"
	wantDump(t, src,
		"(module (def f (params a (b : int = 1) *args **kw) (returns int) (block (return a))))")
}

func Test_Parser_FuncDef_BareStar(t *testing.T) {
	src := "def f(a, *, b):\n    pass\n"
	wantDump(t, src, "(module (def f (params a * b) (block (pass))))")
}

func Test_Parser_Decorators(t *testing.T) {
	src := "@dec\n@ns.d(1)\ndef f():\n    pass\n"
	wantDump(t, src,
		"(module (def f (decorators (@ dec) (@ (attr ns d) 1)) (params) (block (pass))))")
}

func Test_Parser_AsyncDef_Await(t *testing.T) {
	src := "async def f():\n    await g()\n"
	wantDump(t, src, "(module (async-def f (params) (block (await (call g)))))")
}

func Test_Parser_AsyncIsContextual(t *testing.T) {
	// "async" alone is an ordinary name.
	wantDump(t, "async = 1\n", "(module (assign async 1))")
}

func Test_Parser_ClassDef_Bases(t *testing.T) {
	src := "class C(Base, meta=M):\n    pass\n"
	wantDump(t, src, "(module (class C (bases Base (kw meta M)) (block (pass))))")
}

func Test_Parser_ClassDef_NoBases(t *testing.T) {
	wantDump(t, "class C:\n    pass\n", "(module (class C (block (pass))))")
}

// --- simple statements -----------------------------------------------------

func Test_Parser_Assign_Simple(t *testing.T) {
	wantDump(t, "x = 1 + 2\n", "(module (assign x (bin 1 + 2)))")
}

func Test_Parser_Assign_Chained(t *testing.T) {
	wantDump(t, "a = b = 1\n", "(module (massign (targets a b) 1))")
}

func Test_Parser_Assign_TupleUnpack(t *testing.T) {
	wantDump(t, "a, *b = xs\n", "(module (assign (tuple a (star b)) xs))")
}

func Test_Parser_Assign_InvalidTarget(t *testing.T) {
	wantSyntaxError(t, "1 = x\n", "invalid assignment target")
	wantSyntaxError(t, "f() += 1\n", "invalid assignment target")
}

func Test_Parser_Augmented(t *testing.T) {
	wantDump(t, "x += 1\n", "(module (aug += x 1))")
	wantDump(t, "x //= 2\n", "(module (aug //= x 2))")
	wantDump(t, "x **= 2\n", "(module (aug **= x 2))")
}

func Test_Parser_TypeDecl(t *testing.T) {
	wantDump(t, "x: int = 1\n", "(module (decl x int 1))")
	wantDump(t, "x.y: T\n", "(module (decl (attr x y) T))")
}

func Test_Parser_TypeDecl_BadTarget(t *testing.T) {
	wantSyntaxError(t, "(a, b): T\n", "type declaration")
}

func Test_Parser_Del_Global_Nonlocal(t *testing.T) {
	wantDump(t, "del a, b\n", "(module (del a b))")
	wantDump(t, "global a, b\n", "(module (global a b))")
	wantDump(t, "nonlocal n\n", "(module (nonlocal n))")
}

func Test_Parser_Assert(t *testing.T) {
	wantDump(t, "assert x\n", "(module (assert x))")
	wantDump(t, "assert x, \"m\"\n", "(module (assert x (strcat \"m\")))")
}

func Test_Parser_Import(t *testing.T) {
	wantDump(t, "import a.b as c, d\n", "(module (import (as a.b c) d))")
}

func Test_Parser_ImportFrom(t *testing.T) {
	wantDump(t, "from ..pkg import x as y, z\n", "(module (from ..pkg (as x y) z))")
	wantDump(t, "from . import *\n", "(module (from . *))")
	wantDump(t, "from a import (b, c,)\n", "(module (from a b c))")
}

func Test_Parser_Raise(t *testing.T) {
	wantDump(t, "raise\n", "(module (raise))")
	wantDump(t, "raise E(1) from cause\n", "(module (raise (call E 1) from cause))")
}

func Test_Parser_Semicolons(t *testing.T) {
	wantDump(t, "a = 1; b = 2\n", "(module (assign a 1) (assign b 2))")
}

func Test_Parser_YieldStatement(t *testing.T) {
	src := "def f():\n    yield 1\n    yield\n"
	wantDump(t, src, "(module (def f (params) (block (yield 1) (yield))))")
}

func Test_Parser_YieldFromAssignment(t *testing.T) {
	src := "def f():\n    x = yield from g()\n"
	wantDump(t, src, "(module (def f (params) (block (assign x (yieldfrom (call g))))))")
}

func Test_Parser_Return_Bare(t *testing.T) {
	src := "def f():\n    return\n"
	wantDump(t, src, "(module (def f (params) (block (return))))")
}

// --- interactive mode ------------------------------------------------------

func Test_Parser_Interactive_Incomplete(t *testing.T) {
	mustIncomplete(t, "if x:")
	mustIncomplete(t, "def f(")
	mustIncomplete(t, "try:\n    pass")
	mustIncomplete(t, "x = (1 +")
}

func Test_Parser_Interactive_CompleteLine(t *testing.T) {
	mod, err := ParseInteractive("x = 1\n")
	if err != nil {
		t.Fatalf("ParseInteractive: %v", err)
	}
	if got := Dump(mod); got != "(module (assign x 1))" {
		t.Fatalf("got %s", got)
	}
}

func Test_Parser_NonInteractive_TruncatedIsHardError(t *testing.T) {
	_, err := Parse("if x:")
	if err == nil {
		t.Fatal("expected error")
	}
	if IsIncomplete(err) {
		t.Fatalf("non-interactive parse must not report incomplete: %v", err)
	}
}
