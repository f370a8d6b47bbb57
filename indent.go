// indent.go: the indentation side-channel of the tokenizer.
//
// indentTracker owns the two pieces of layout state the grammar itself never
// sees: the stack of active indentation widths and the open-bracket depth.
// The lexer consults it at the first real token of every physical line; the
// tracker answers with how many INDENT/DEDENT tokens to synthesize there.
// While bracket depth is nonzero the lexer never asks, which is what makes
// line breaks free inside (), [] and {}.
//
// The stack starts as [0] and every width pushed is strictly greater than
// the one below it, so a dedent either lands exactly on a recorded width or
// is an indentation error.
package ox

// tabWidth aligns a tab to the next multiple of 8 columns when measuring
// leading whitespace.
const tabWidth = 8

type indentTracker struct {
	stack []int // indentation widths, always starts [0]
	depth int   // open (, [, { count
}

func newIndentTracker() indentTracker {
	return indentTracker{stack: []int{0}}
}

func (it *indentTracker) openBracket() { it.depth++ }
func (it *indentTracker) closeBracket() {
	// Stray closers leave depth at 0; the parser reports them.
	if it.depth > 0 {
		it.depth--
	}
}

// suppressed reports whether layout tokens are currently disabled.
func (it *indentTracker) suppressed() bool { return it.depth > 0 }

func (it *indentTracker) top() int { return it.stack[len(it.stack)-1] }

// shift compares the measured width of a content-bearing line against the
// stack top and returns the number of INDENT (+1) or DEDENT (-n) tokens the
// lexer must synthesize. ok is false when a dedent does not land on any
// recorded level.
func (it *indentTracker) shift(width int) (indents, dedents int, ok bool) {
	switch top := it.top(); {
	case width == top:
		return 0, 0, true
	case width > top:
		it.stack = append(it.stack, width)
		return 1, 0, true
	default:
		for len(it.stack) > 1 && it.top() > width {
			it.stack = it.stack[:len(it.stack)-1]
			dedents++
		}
		return 0, dedents, it.top() == width
	}
}

// unwind pops every remaining level at end of input and returns the number
// of closing DEDENT tokens owed.
func (it *indentTracker) unwind() int {
	n := len(it.stack) - 1
	it.stack = it.stack[:1]
	return n
}

// measure computes the indentation width of a line prefix consisting of
// spaces and tabs, with tabs aligning to the next multiple of tabWidth.
func measureIndent(prefix string) int {
	w := 0
	for i := 0; i < len(prefix); i++ {
		switch prefix[i] {
		case ' ':
			w++
		case '\t':
			w = (w/tabWidth + 1) * tabWidth
		}
	}
	return w
}
