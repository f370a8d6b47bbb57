// fstring_test.go
package ox

import "testing"

func Test_FString_TextAndFields(t *testing.T) {
	wantExprDump(t, "f\"a{x}b\"", "(strcat (fstring \"a\" (field x) \"b\"))")
}

func Test_FString_DoubledBracesEscape(t *testing.T) {
	wantExprDump(t, "f\"{{x}}\"", "(strcat (fstring \"{x}\"))")
}

func Test_FString_NoFieldsIsPlainText(t *testing.T) {
	wantExprDump(t, "f\"abc\"", "(strcat (fstring \"abc\"))")
}

func Test_FString_Conversion(t *testing.T) {
	wantExprDump(t, "f\"{x!r}\"", "(strcat (fstring (field x !r)))")
	wantExprDump(t, "f\"{x!s:>10}\"", "(strcat (fstring (field x !s :\">10\")))")
}

func Test_FString_FormatSpec(t *testing.T) {
	wantExprDump(t, "f\"{x:04d}\"", "(strcat (fstring (field x :\"04d\")))")
}

func Test_FString_NotEqualsIsNotConversion(t *testing.T) {
	wantExprDump(t, "f\"{a != b}\"", "(strcat (fstring (field (cmp a != b))))")
}

func Test_FString_NestedBracketsInField(t *testing.T) {
	wantExprDump(t, "f\"{d['k']}\"", "(strcat (fstring (field (index d (strcat \"k\")))))")
	wantExprDump(t, "f\"{f(1, 2)}\"", "(strcat (fstring (field (call f 1 2))))")
}

func Test_FString_FullExpressionGrammar(t *testing.T) {
	wantExprDump(t, "f\"{a if b else c}\"", "(strcat (fstring (field (ifexp b a c))))")
}

func Test_FString_SingleCloseBrace(t *testing.T) {
	wantSyntaxError(t, "f\"a}b\"\n", "single '}'")
}

func Test_FString_UnterminatedField(t *testing.T) {
	wantSyntaxError(t, "f\"{x\"\n", "unterminated '{'")
}

func Test_FString_EmptyField(t *testing.T) {
	wantSyntaxError(t, "f\"{}\"\n", "empty expression")
}

func Test_FString_BadConversion(t *testing.T) {
	wantSyntaxError(t, "f\"{x!z}\"\n", "only !s, !r and !a")
}

func Test_FString_FieldStatementRejected(t *testing.T) {
	wantSyntaxError(t, "f\"{x = 1}\"\n", "single expression")
}

func Test_FString_ErrorPositionIsOuterToken(t *testing.T) {
	se := wantSyntaxError(t, "x = f\"{+}\"\n", "")
	if se.Line != 1 || se.Col != 4 {
		t.Fatalf("error at %d:%d, want the string token position 1:4", se.Line, se.Col)
	}
}

func Test_FString_RawKeepsBackslashes(t *testing.T) {
	wantExprDump(t, `fr"a\n{x}"`, `(strcat (fstring "a\\n" (field x)))`)
}

func Test_FString_EscapesDecodedInText(t *testing.T) {
	wantExprDump(t, `f"a\t{x}"`, `(strcat (fstring "a\t" (field x)))`)
}
