package compiler

import (
	"fmt"
	"strconv"
)

//  Error messaging

// errorf prints a diagnostic in the fixed single-line format and bumps
// the error count. Diagnostics never abort the parse.
func (p *Parser) errorf(format string, args ...any) {
	p.errorAt(p.loc, format, args...)
}

func (p *Parser) errorAt(loc SrcLoc, format string, args ...any) {
	fmt.Fprintf(p.out, "error(%d:%d): %s.\n", loc.Line, loc.Col, fmt.Sprintf(format, args...))
	p.errors++
}

func (p *Parser) errorExpected(expected string) {
	p.errorf("expected %s, found '%s'", expected, p.lex.Peek().Text)
}

func (p *Parser) errorUndefSym() {
	p.errorf("undefined symbol '%s'", p.lex.Peek().Text)
}

func (p *Parser) errorIllegalBreak() {
	p.errorf("cannot break when not in loop or switch")
}

func (p *Parser) errorIdentOutsideDecl() {
	p.errorf("identifier given outside declaration")
}

func (p *Parser) errorDuplicateSym(loc SrcLoc, ident string) {
	p.errorAt(loc, "duplicated identifier '%s'", ident)
}

//  Token handling

// is reports whether the current token's text equals match.
func (p *Parser) is(match string) bool {
	return p.lex.Peek().Text == match
}

func (p *Parser) isIdent() bool {
	return p.lex.Peek().Class == TokenIdent
}

func (p *Parser) isInt() bool {
	return p.lex.Peek().Class == TokenInt
}

func (p *Parser) isString() bool {
	t := p.lex.Peek()
	return t.Class == TokenOther && len(t.Text) >= 1 && t.Text[0] == '"'
}

// isDeclStart reports whether the current token can begin a declaration:
// a name bound to a type, struct, union or enum symbol in the current
// scope, or one of the declaration keywords. This is what lets the
// grammar tell `T *x` (a declaration) from `a * b` (an expression)
// without backtracking.
func (p *Parser) isDeclStart() bool {
	if p.is("const") || p.is("struct") || p.is("union") || p.is("enum") ||
		p.is("static") || p.is("extern") {
		return true
	}
	if !p.isIdent() {
		return false
	}
	sym := p.scope.Find(p.lex.Peek().Text)
	return sym != nil &&
		(sym.Kind == SymType || sym.Kind == SymStruct ||
			sym.Kind == SymUnion || sym.Kind == SymEnum)
}

// next consumes the current token and mirrors its successor's location
// into the parser.
func (p *Parser) next() {
	p.lex.Next()
	p.loc = p.lex.Peek().Loc
}

// match accepts the current token unconditionally.
func (p *Parser) match() {
	p.next()
}

// matchText accepts the current token if its text equals match; otherwise
// it diagnoses, consumes one token, and resumes (single-token panic-mode
// resync).
func (p *Parser) matchText(match string) {
	if p.is(match) {
		p.match()
	} else {
		p.errorExpected("'" + match + "'")
		p.next()
	}
}

// tryMatchText accepts the current token iff its text equals match.
func (p *Parser) tryMatchText(match string) bool {
	if p.is(match) {
		p.match()
		return true
	}
	return false
}

// matchClass accepts the current token if it has the given class,
// resyncing by one token otherwise.
func (p *Parser) matchClass(class TokenClass) {
	if p.lex.Peek().Class == class {
		p.match()
	} else {
		p.errorExpected(class.String())
		p.next()
	}
}

// matchInt accepts an integer token and returns its value.
func (p *Parser) matchInt() int {
	val, _ := strconv.ParseInt(p.lex.Peek().Text, 0, 64)
	p.matchClass(TokenInt)
	return int(val)
}

// matchIdent accepts an identifier token and returns its text.
func (p *Parser) matchIdent() string {
	text := p.lex.Peek().Text
	p.matchClass(TokenIdent)
	return text
}

//  Scope handling

// enterScope makes scope the insertion point for new symbols.
func (p *Parser) enterScope(scope *Symbol) {
	p.scope = scope
}

// leaveScope pops back to the enclosing scope.
func (p *Parser) leaveScope() {
	if p.scope.Parent != nil {
		p.scope = p.scope.Parent
	}
}

// anonScope creates and enters a fresh anonymous scope under the current
// one.
func (p *Parser) anonScope() *Symbol {
	scope := &Symbol{Kind: SymScope}
	p.scope.AddChild(scope)
	p.enterScope(scope)
	return scope
}

// insert adds sym to the current scope, diagnosing a duplicate identifier
// and keeping the pre-existing binding when one exists. It returns the
// symbol now bound to the identifier.
func (p *Parser) insert(sym *Symbol, loc SrcLoc) *Symbol {
	if existing := p.scope.FindChild(sym.Ident); existing != nil {
		p.errorDuplicateSym(loc, sym.Ident)
		return existing
	}
	p.scope.AddChild(sym)
	return sym
}
