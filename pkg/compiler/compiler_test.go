package compiler

import "bytes"

// lexAll tokenises src completely, including the final EOF token.
func lexAll(src string) []Token {
	var tokens []Token
	lex := NewLexer(src)
	for {
		tok := lex.Next()
		tokens = append(tokens, tok)
		if tok.Class == TokenEOF {
			return tokens
		}
	}
}

// parseSrc runs the parser over src against a fresh root scope.
func parseSrc(src string) (*Module, *Symbol, int, string) {
	var buf bytes.Buffer
	root, _ := NewRootScope()
	mod, errs := Parse(NewLexer(src), root, &buf)
	return mod, root, errs, buf.String()
}

// analyzeSrc runs the full front-end over src.
func analyzeSrc(src string) (*Module, *Symbol, int, int, string) {
	var buf bytes.Buffer
	root, types := NewRootScope()
	mod, parseErrs := Parse(NewLexer(src), root, &buf)
	analyzeErrs, warns := Analyze(mod, types, &buf)
	return mod, root, parseErrs + analyzeErrs, warns, buf.String()
}
