package compiler

import (
	"fmt"
	"io"
)

// analyzerCtx carries the analysis state: the built-in types, the return
// type of the function being walked, and the diagnostic counters.
type analyzerCtx struct {
	types    []*Symbol
	ret      *Type
	out      io.Writer
	errors   int
	warnings int
}

// Analyze walks the module, derives and records a type on every
// expression node, and checks every statement-level constraint. It
// returns the number of errors and warnings emitted. Running it twice
// over the same AST re-derives the same types and repeats the same
// diagnostics.
func Analyze(mod *Module, types []*Symbol, out io.Writer) (int, int) {
	ctx := &analyzerCtx{types: types, out: out}
	for _, s := range mod.Stmts {
		ctx.node(s)
	}
	return ctx.errors, ctx.warnings
}

//  Diagnostics

func (ctx *analyzerCtx) errorf(n Node, format string, args ...any) {
	loc := n.Pos()
	fmt.Fprintf(ctx.out, "error(%d:%d): %s.\n", loc.Line, loc.Col, fmt.Sprintf(format, args...))
	ctx.errors++
}

func (ctx *analyzerCtx) warningf(n Node, format string, args ...any) {
	loc := n.Pos()
	fmt.Fprintf(ctx.out, "warning(%d:%d): %s.\n", loc.Line, loc.Col, fmt.Sprintf(format, args...))
	ctx.warnings++
}

func (ctx *analyzerCtx) errorExpected(n Node, where, expected string, found *Type) {
	ctx.errorf(n, "%s expected %s, found %s", where, expected, found)
}

func (ctx *analyzerCtx) errorExpectedType(n Node, where string, expected, found *Type) {
	ctx.errorExpected(n, where, expected.String(), found)
}

func (ctx *analyzerCtx) errorOp(n Node, o, desc string, found *Type) {
	ctx.errorf(n, "%s requires %s, found %s", o, desc, found)
}

func (ctx *analyzerCtx) errorMismatch(n Node, o string, l, r *Type) {
	ctx.errorf(n, "type mismatch between %s and %s for %s", l, r, o)
}

func (ctx *analyzerCtx) errorDegree(n Node, thing string, expected, found int, where string) {
	ctx.errorf(n, "%d %s expected, %d given to %s", expected, thing, found, where)
}

func (ctx *analyzerCtx) errorParamMismatch(n Node, where string, idx int, expected, found *Type) {
	ctx.errorf(n, "type mismatch at parameter %d of %s: expected %s, found %s",
		idx, where, expected, found)
}

func (ctx *analyzerCtx) errorMember(n Node, o string, record *Type, field string) {
	ctx.errorf(n, "'%s' expected field of %s, found %s", o, record, field)
}

//  Statement walk

func (ctx *analyzerCtx) node(s Stmt) {
	switch n := s.(type) {
	case *Module:
		for _, c := range n.Stmts {
			ctx.node(c)
		}

	case *FuncImpl:
		ctx.fnImpl(n)

	case *DeclStmt:
		ctx.decl(n)

	case *RecordDecl, *EnumDecl:
		// Tags and their fields were typed during parsing.

	case *BlockStmt:
		for _, c := range n.Stmts {
			ctx.node(c)
		}

	case *IfStmt:
		ctx.branch(n)

	case *WhileStmt:
		ctx.loop(n)

	case *ForStmt:
		ctx.iter(n)

	case *ReturnStmt:
		ctx.returnStmt(n)

	case *ExprStmt:
		ctx.exprStmt(n)

	case *BreakStmt, *EmptyStmt, *InvalidStmt:
		// Nothing to check; an illegal break is a parsing issue.

	default:
		ctx.errorf(s, "unhandled statement %T", s)
	}
}

func (ctx *analyzerCtx) fnImpl(n *FuncImpl) {
	if n.Sym != nil && n.Sym.DT != nil && n.Sym.DT.Kind == TypeFunc {
		ctx.ret = n.Sym.DT.Ret
	} else {
		ctx.ret = InvalidType()
	}

	ctx.node(n.Body)
	ctx.ret = nil
}

func (ctx *analyzerCtx) decl(n *DeclStmt) {
	if n.Tag != nil {
		ctx.node(n.Tag)
	}

	for _, item := range n.Items {
		if item.Init == nil || item.Sym == nil {
			continue
		}

		if lit, ok := item.Init.(*CompoundLit); ok && item.Sym.DT.IsRecord() && !item.Sym.DT.IsInvalid() {
			ctx.recordInit(item, lit)
			continue
		}

		t, _ := ctx.value(item.Init)
		if !Compatible(item.Sym.DT, t) {
			ctx.errorExpectedType(item.Init, "initialization", item.Sym.DT, t)
		}
	}
}

// recordInit checks a brace initializer against a struct or union's
// fields, element by element.
func (ctx *analyzerCtx) recordInit(item *DeclItem, lit *CompoundLit) {
	rec := item.Sym.DT.Basic

	var fields []*Symbol
	for _, c := range rec.Children {
		if c.Kind == SymID {
			fields = append(fields, c)
		}
	}

	if len(lit.Elems) != len(fields) {
		ctx.errorDegree(lit, "fields", len(fields), len(lit.Elems), item.Sym.Ident)
	}

	for i, elem := range lit.Elems {
		t, _ := ctx.value(elem)
		if i < len(fields) && !Compatible(fields[i].DT, t) {
			ctx.errorExpectedType(elem, "initialization", fields[i].DT, t)
		}
	}

	lit.setDataType(DeriveFrom(item.Sym.DT))
}

func (ctx *analyzerCtx) branch(n *IfStmt) {
	condDT, _ := ctx.value(n.Cond)
	if !condDT.IsCondition() {
		ctx.errorExpected(n.Cond, "if", "condition", condDT)
	}

	ctx.node(n.Then)
	if n.Else != nil {
		ctx.node(n.Else)
	}
}

func (ctx *analyzerCtx) loop(n *WhileStmt) {
	where := "while loop"
	if n.DoWhile {
		where = "do loop"
	}

	condDT, _ := ctx.value(n.Cond)
	if !condDT.IsCondition() {
		ctx.errorExpected(n.Cond, where, "condition", condDT)
	}

	ctx.node(n.Body)
}

func (ctx *analyzerCtx) iter(n *ForStmt) {
	// Header slots in source order: init, cond, step.
	ctx.node(n.Init)

	condDT, _ := ctx.value(n.Cond)
	if !condDT.IsCondition() {
		ctx.errorExpected(n.Cond, "for loop", "condition", condDT)
	}

	ctx.value(n.Step)

	ctx.node(n.Body)
}

func (ctx *analyzerCtx) returnStmt(n *ReturnStmt) {
	if ctx.ret == nil {
		return
	}

	R := InvalidType()
	var at Node = n
	if n.Val != nil {
		R, _ = ctx.value(n.Val)
		at = n.Val
	}

	if !Compatible(R, ctx.ret) {
		ctx.errorExpectedType(at, "return", ctx.ret, R)
	}
}

func (ctx *analyzerCtx) exprStmt(n *ExprStmt) {
	t, _ := ctx.value(n.X)

	// A computed value that nothing consumes is worth a warning, but
	// never an error.
	switch x := n.X.(type) {
	case *BinaryExpr:
		if x.Op.IsAssignment() {
			return
		}
	case *UnaryExpr:
		if x.Op == OpInc || x.Op == OpDec {
			return
		}
	case *CallExpr, *InvalidExpr, *EmptyExpr:
		return
	}

	if !t.IsVoid() && !t.IsInvalid() {
		ctx.warningf(n.X, "expression result unused")
	}
}
