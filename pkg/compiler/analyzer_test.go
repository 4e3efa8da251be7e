package compiler

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestAnalyzeStatements covers the statement-level typing rules.
func TestAnalyzeStatements(t *testing.T) {
	tests := []struct {
		name     string
		src      string
		errs     int
		warns    int
		contains string
	}{
		{
			name: "CleanFunction",
			src:  "int add(int a, int b) { return a + b; }",
			errs: 0,
		},
		{
			name:     "BranchConditionMustBeCondition",
			src:      "struct S { int a; }; int f(struct S s) { if (s) return 1; return 0; }",
			errs:     1,
			contains: "if expected condition, found struct S",
		},
		{
			name:     "WhileConditionMustBeCondition",
			src:      "struct S { int a; }; int f(struct S s) { while (s) return 1; return 0; }",
			errs:     1,
			contains: "while loop expected condition",
		},
		{
			name:     "DoWhileCondition",
			src:      "struct S { int a; }; int f(struct S s) { do return 1; while (s); }",
			errs:     1,
			contains: "do loop expected condition",
		},
		{
			name: "ForConditionChecked",
			src:  "struct S { int a; }; int f(struct S s) { for (; s; ) return 1; return 0; }",
			errs: 1,
			contains: "for loop expected condition",
		},
		{
			name: "ForEmptySlotsAreFine",
			src:  "int f() { for (;;) break; return 0; }",
			errs: 0,
		},
		{
			name: "PointerCondition",
			src:  "int f(int *p) { if (p) return 1; return 0; }",
			errs: 0,
		},
		{
			name:     "ReturnTypeMismatch",
			src:      "struct S { int a; }; int f(struct S s) { return s; }",
			errs:     1,
			contains: "return expected int, found struct S",
		},
		{
			name: "ReturnVoid",
			src:  "void f() { return; }",
			errs: 0,
		},
		{
			name:     "ReturnValueFromVoid",
			src:      "void f() { return 1; }",
			errs:     1,
			contains: "return expected void, found int",
		},
		{
			name:     "InitializerTypeChecked",
			src:      "struct S { int a; }; int f(struct S s) { int x = s; return x; }",
			errs:     1,
			contains: "initialization expected int, found struct S",
		},
		{
			name:  "DiscardedValueWarns",
			src:   "int f(int a) { a + 1; return 0; }",
			errs:  0,
			warns: 1,
			contains: "expression result unused",
		},
		{
			name:  "AssignmentDoesNotWarn",
			src:   "int f(int a) { a = 1; return a; }",
			errs:  0,
			warns: 0,
		},
		{
			name:  "CallDoesNotWarn",
			src:   "int g(); int f() { g(); return 0; }",
			errs:  0,
			warns: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, errs, warns, out := analyzeSrc(tt.src)
			assert.Equal(t, tt.errs, errs, "errors:\n%s", out)
			assert.Equal(t, tt.warns, warns, "warnings:\n%s", out)
			if tt.contains != "" {
				assert.Contains(t, out, tt.contains)
			}
		})
	}
}

// TestAnalyzeSetsTypes: after analysis every expression node carries a
// derived type.
func TestAnalyzeSetsTypes(t *testing.T) {
	src := `
struct S { int a; };
int g(int n) { return n; }
int f(struct S *p, int i) {
	int acc = 0;
	for (int k = 0; k < i; k = k + 1)
		acc = acc + g(k) + p->a;
	return acc ? acc : i;
}
`
	mod, _, errs, _, out := analyzeSrc(src)
	require.Equal(t, 0, errs, "diagnostics:\n%s", out)

	var missing int
	walkExprs(mod, func(e Expr) {
		if e.DataType() == nil {
			missing++
			t.Errorf("expression %s at %s has no derived type", e, e.Pos())
		}
	})
	assert.Zero(t, missing)
}

// TestAnalyzeIdempotent: a second run re-derives the same types and
// repeats the diagnostics exactly.
func TestAnalyzeIdempotent(t *testing.T) {
	src := "struct S { int a; }; struct S s; int k = s.b; int f() { return k + missing; }"

	var parseBuf, analyzeBuf bytes.Buffer
	root, types := NewRootScope()
	mod, parseErrs := Parse(NewLexer(src), root, &parseBuf)
	require.Equal(t, 1, parseErrs) // 'missing' is undefined

	first, _ := Analyze(mod, types, &analyzeBuf)
	firstOut := analyzeBuf.String()
	var firstTypes []string
	walkExprs(mod, func(e Expr) {
		firstTypes = append(firstTypes, e.DataType().String())
	})

	second, _ := Analyze(mod, types, &analyzeBuf)
	require.Equal(t, first, second)

	// The diagnostic stream doubled exactly.
	assert.Equal(t, 2*strings.Count(firstOut, "error("),
		strings.Count(analyzeBuf.String(), "error("))

	// Types agree between runs.
	var secondTypes []string
	walkExprs(mod, func(e Expr) {
		assert.NotNil(t, e.DataType())
		secondTypes = append(secondTypes, e.DataType().String())
	})
	assert.Equal(t, firstTypes, secondTypes)
}

// TestAnalyzeErrorCountMatchesLines: the returned count equals the
// number of emitted diagnostic lines.
func TestAnalyzeErrorCountMatchesLines(t *testing.T) {
	src := `
struct S { int a; };
int f(struct S s) {
	int x = s;
	if (s) return 1;
	return s;
}
`
	_, _, errs, _, out := analyzeSrc(src)
	assert.Equal(t, 3, errs, "diagnostics:\n%s", out)
	assert.Equal(t, errs, strings.Count(out, "error("))
}
