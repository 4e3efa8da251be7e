package compiler

import (
	"testing"

	"github.com/go-test/deep"
)

// TestLex verifies tokenisation of representative inputs, including
// classes, text, and source locations.
func TestLex(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected []Token
	}{
		{
			name:  "Declaration",
			input: "int x = 10;",
			expected: []Token{
				{TokenIdent, "int", SrcLoc{1, 1}},
				{TokenIdent, "x", SrcLoc{1, 5}},
				{TokenOther, "=", SrcLoc{1, 7}},
				{TokenInt, "10", SrcLoc{1, 9}},
				{TokenOther, ";", SrcLoc{1, 11}},
				{TokenEOF, "", SrcLoc{1, 12}},
			},
		},
		{
			name:  "KeywordsAreIdents",
			input: "while struct",
			expected: []Token{
				{TokenIdent, "while", SrcLoc{1, 1}},
				{TokenIdent, "struct", SrcLoc{1, 7}},
				{TokenEOF, "", SrcLoc{1, 13}},
			},
		},
		{
			name:  "HexLiteral",
			input: "0x1F",
			expected: []Token{
				{TokenInt, "0x1F", SrcLoc{1, 1}},
				{TokenEOF, "", SrcLoc{1, 5}},
			},
		},
		{
			name:  "MultiCharOperators",
			input: "a <<= b >>= c -> d",
			expected: []Token{
				{TokenIdent, "a", SrcLoc{1, 1}},
				{TokenOther, "<<=", SrcLoc{1, 3}},
				{TokenIdent, "b", SrcLoc{1, 7}},
				{TokenOther, ">>=", SrcLoc{1, 9}},
				{TokenIdent, "c", SrcLoc{1, 13}},
				{TokenOther, "->", SrcLoc{1, 15}},
				{TokenIdent, "d", SrcLoc{1, 18}},
				{TokenEOF, "", SrcLoc{1, 19}},
			},
		},
		{
			name:  "MaximalMunch",
			input: "x<<=1",
			expected: []Token{
				{TokenIdent, "x", SrcLoc{1, 1}},
				{TokenOther, "<<=", SrcLoc{1, 2}},
				{TokenInt, "1", SrcLoc{1, 5}},
				{TokenEOF, "", SrcLoc{1, 6}},
			},
		},
		{
			name:  "IncrementVersusPlus",
			input: "a+++b",
			expected: []Token{
				{TokenIdent, "a", SrcLoc{1, 1}},
				{TokenOther, "++", SrcLoc{1, 2}},
				{TokenOther, "+", SrcLoc{1, 4}},
				{TokenIdent, "b", SrcLoc{1, 5}},
				{TokenEOF, "", SrcLoc{1, 6}},
			},
		},
		{
			name:  "LineTracking",
			input: "int x;\nint y;",
			expected: []Token{
				{TokenIdent, "int", SrcLoc{1, 1}},
				{TokenIdent, "x", SrcLoc{1, 5}},
				{TokenOther, ";", SrcLoc{1, 6}},
				{TokenIdent, "int", SrcLoc{2, 1}},
				{TokenIdent, "y", SrcLoc{2, 5}},
				{TokenOther, ";", SrcLoc{2, 6}},
				{TokenEOF, "", SrcLoc{2, 7}},
			},
		},
		{
			name:  "CharLiteral",
			input: "'A' '\\n'",
			expected: []Token{
				{TokenInt, "65", SrcLoc{1, 1}},
				{TokenInt, "10", SrcLoc{1, 5}},
				{TokenEOF, "", SrcLoc{1, 9}},
			},
		},
		{
			name:  "StringLiteral",
			input: `"hi there"`,
			expected: []Token{
				{TokenOther, "\"hi there", SrcLoc{1, 1}},
				{TokenEOF, "", SrcLoc{1, 11}},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := lexAll(tt.input)
			if diff := deep.Equal(got, tt.expected); diff != nil {
				t.Errorf("token mismatch:\n%v", diff)
			}
		})
	}
}

// TestLexComments verifies that both comment styles vanish and that line
// numbers survive them.
func TestLexComments(t *testing.T) {
	src := "// leading\nint /* inline */ x;\n/* multi\nline */ int y;"
	got := lexAll(src)
	expected := []Token{
		{TokenIdent, "int", SrcLoc{2, 1}},
		{TokenIdent, "x", SrcLoc{2, 18}},
		{TokenOther, ";", SrcLoc{2, 19}},
		{TokenIdent, "int", SrcLoc{4, 9}},
		{TokenIdent, "y", SrcLoc{4, 13}},
		{TokenOther, ";", SrcLoc{4, 14}},
		{TokenEOF, "", SrcLoc{4, 15}},
	}
	if diff := deep.Equal(got, expected); diff != nil {
		t.Errorf("token mismatch:\n%v", diff)
	}
}

// TestLexPeek verifies the one-token lookahead contract.
func TestLexPeek(t *testing.T) {
	lex := NewLexer("a b")

	if lex.Peek().Text != "a" {
		t.Errorf("Peek: expected 'a', got %q", lex.Peek().Text)
	}
	if lex.Peek().Text != "a" {
		t.Errorf("Peek is not idempotent")
	}
	if tok := lex.Next(); tok.Text != "a" {
		t.Errorf("Next: expected 'a', got %q", tok.Text)
	}
	if lex.Peek().Text != "b" {
		t.Errorf("Peek after Next: expected 'b', got %q", lex.Peek().Text)
	}

	lex.Next()
	if lex.Next().Class != TokenEOF {
		t.Errorf("expected EOF")
	}
	// EOF repeats rather than running off the end.
	if lex.Next().Class != TokenEOF {
		t.Errorf("expected EOF to repeat")
	}
}
