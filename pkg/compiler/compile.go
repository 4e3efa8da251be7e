package compiler

import "io"

// Frontend runs the whole front-end over src: lex, parse with scope
// binding, then analysis. Diagnostics go to out in their single-line
// format as they occur. It returns the typed module, the root scope, and
// the combined error count; warnings are reported but not counted.
func Frontend(src string, out io.Writer) (*Module, *Symbol, int) {
	root, types := NewRootScope()

	lex := NewLexer(src)
	mod, parseErrors := Parse(lex, root, out)

	analyzeErrors, _ := Analyze(mod, types, out)

	return mod, root, parseErrors + analyzeErrors
}
