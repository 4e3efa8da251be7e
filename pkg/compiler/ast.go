package compiler

import (
	"fmt"
	"strings"
)

// Node is implemented by every AST node.
type Node interface {
	Pos() SrcLoc
}

//  Expression nodes

// Expr is implemented by every node that produces a value. The analyzer
// derives and records a type on each one; DataType is nil until then.
type Expr interface {
	Node
	exprNode()
	DataType() *Type
	setDataType(*Type)
	String() string
}

// exprBase carries the location and the analyzer-derived type shared by
// all expression variants.
type exprBase struct {
	loc SrcLoc
	dt  *Type
}

func (b *exprBase) exprNode()           {}
func (b *exprBase) Pos() SrcLoc         { return b.loc }
func (b *exprBase) DataType() *Type     { return b.dt }
func (b *exprBase) setDataType(t *Type) { b.dt = t }

// IntLit is an integer literal.
type IntLit struct {
	exprBase
	Val int
}

func (l *IntLit) String() string { return fmt.Sprintf("%d", l.Val) }

// BoolLit is a true/false literal.
type BoolLit struct {
	exprBase
	Val bool
}

func (l *BoolLit) String() string { return fmt.Sprintf("%t", l.Val) }

// StrLit is a string literal, typed char*.
type StrLit struct {
	exprBase
	Val string
}

func (l *StrLit) String() string { return fmt.Sprintf("%q", l.Val) }

// VarRef is an identifier reference, bound to its symbol at parse time.
type VarRef struct {
	exprBase
	Name string
	Sym  *Symbol
}

func (v *VarRef) String() string { return v.Name }

// CompoundLit is a brace-enclosed element list: an array literal in
// expression position, an initializer list in a declaration.
type CompoundLit struct {
	exprBase
	Elems  []Expr
	IsInit bool
}

func (l *CompoundLit) String() string {
	parts := make([]string, len(l.Elems))
	for i, e := range l.Elems {
		parts[i] = e.String()
	}
	return "{" + strings.Join(parts, ", ") + "}"
}

// BinaryExpr is Left Op Right, including assignment, logical, and comma
// forms.
type BinaryExpr struct {
	exprBase
	Op Op
	L  Expr
	R  Expr
}

func (b *BinaryExpr) String() string {
	return fmt.Sprintf("(%s %s %s)", b.L, b.Op, b.R)
}

// UnaryExpr is a prefix or postfix operator application.
type UnaryExpr struct {
	exprBase
	Op      Op
	Operand Expr
	Postfix bool
}

func (u *UnaryExpr) String() string {
	if u.Postfix {
		return fmt.Sprintf("(%s %s)", u.Operand, u.Op)
	}
	return fmt.Sprintf("(%s %s)", u.Op, u.Operand)
}

// TernaryExpr is Cond ? Then : Else.
type TernaryExpr struct {
	exprBase
	Cond Expr
	Then Expr
	Else Expr
}

func (t *TernaryExpr) String() string {
	return fmt.Sprintf("(%s ? %s : %s)", t.Cond, t.Then, t.Else)
}

// IndexExpr is Arr[Index].
type IndexExpr struct {
	exprBase
	Arr   Expr
	Index Expr
}

func (e *IndexExpr) String() string {
	return fmt.Sprintf("(%s[%s])", e.Arr, e.Index)
}

// CallExpr is Fn(Args). Sym refers to the function being called; it is
// bound at parse time when the callee is a plain identifier and during
// analysis when the callee is a member access; for any other callee it
// stays nil.
type CallExpr struct {
	exprBase
	Fn   Expr
	Args []Expr
	Sym  *Symbol
}

func (c *CallExpr) String() string {
	parts := make([]string, len(c.Args))
	for i, a := range c.Args {
		parts[i] = a.String()
	}
	return fmt.Sprintf("%s(%s)", c.Fn, strings.Join(parts, ", "))
}

// MemberExpr is Rec.Name or Rec->Name. Sym is the resolved field, bound
// during analysis.
type MemberExpr struct {
	exprBase
	Op   Op // OpDot or OpArrow
	Rec  Expr
	Name string
	Sym  *Symbol
}

func (m *MemberExpr) String() string {
	return fmt.Sprintf("(%s%s%s)", m.Rec, m.Op, m.Name)
}

// EmptyExpr fills an omitted slot, e.g. a for-header expression.
type EmptyExpr struct {
	exprBase
}

func (*EmptyExpr) String() string { return "<empty>" }

// InvalidExpr replaces an expression that failed to parse.
type InvalidExpr struct {
	exprBase
}

func (*InvalidExpr) String() string { return "<invalid>" }

//  Statement nodes

// Stmt is implemented by every node that does not produce a value.
type Stmt interface {
	Node
	stmtNode()
	String() string
}

type stmtBase struct {
	loc SrcLoc
}

func (b *stmtBase) stmtNode()   {}
func (b *stmtBase) Pos() SrcLoc { return b.loc }

// Module is the root of a translation unit; its children are top-level
// declarations and function implementations.
type Module struct {
	stmtBase
	Stmts []Stmt
}

func (m *Module) String() string {
	parts := make([]string, len(m.Stmts))
	for i, s := range m.Stmts {
		parts[i] = s.String()
	}
	return strings.Join(parts, "\n")
}

// DeclItem is one declarator of a declaration: the bound symbol and its
// optional initializer.
type DeclItem struct {
	Sym  *Symbol
	Loc  SrcLoc
	Init Expr // may be nil
}

func (d *DeclItem) String() string {
	if d.Sym == nil || d.Sym.DT == nil {
		return "<anon>"
	}
	dt := d.Sym.DT.Decl(d.Sym.Ident)
	if d.Init != nil {
		return fmt.Sprintf("%s = %s", dt, d.Init)
	}
	return dt
}

// DeclStmt declares one or more symbols from a shared basic type. Tag is
// the struct/union/enum definition node when the basic type introduced
// one, else nil.
type DeclStmt struct {
	stmtBase
	Tag   Stmt // *RecordDecl or *EnumDecl, may be nil
	Items []*DeclItem
}

func (d *DeclStmt) String() string {
	parts := make([]string, len(d.Items))
	for i, item := range d.Items {
		parts[i] = item.String()
	}
	s := "Decl(" + strings.Join(parts, ", ") + ")"
	if d.Tag != nil {
		s = d.Tag.String() + " " + s
	}
	return s
}

// RecordDecl defines a struct or union tag; the fields are the children
// of Sym.
type RecordDecl struct {
	stmtBase
	Sym   *Symbol
	Union bool
}

func (r *RecordDecl) String() string {
	if r.Union {
		return fmt.Sprintf("UnionDecl(union %s)", r.Sym.Ident)
	}
	return fmt.Sprintf("StructDecl(struct %s)", r.Sym.Ident)
}

// EnumDecl defines an enum tag; the enumerators live in the enclosing
// scope.
type EnumDecl struct {
	stmtBase
	Sym *Symbol
}

func (e *EnumDecl) String() string {
	return fmt.Sprintf("EnumDecl(enum %s)", e.Sym.Ident)
}

// FuncImpl is a function implementation: the declared symbol plus a body.
type FuncImpl struct {
	stmtBase
	Sym  *Symbol
	Body *BlockStmt
}

func (f *FuncImpl) String() string {
	name := f.Sym.Ident
	return fmt.Sprintf("FnImpl(%s, body=%s)", f.Sym.DT.Decl(name), f.Body)
}

// BlockStmt is a compound statement with its own scope.
type BlockStmt struct {
	stmtBase
	Scope *Symbol
	Stmts []Stmt
}

func (b *BlockStmt) String() string {
	return fmt.Sprintf("Code(len=%d)", len(b.Stmts))
}

// IfStmt is if (Cond) Then [else Else].
type IfStmt struct {
	stmtBase
	Cond Expr
	Then Stmt
	Else Stmt // may be nil
}

func (i *IfStmt) String() string {
	if i.Else != nil {
		return fmt.Sprintf("Branch(if %s then %s else %s)", i.Cond, i.Then, i.Else)
	}
	return fmt.Sprintf("Branch(if %s then %s)", i.Cond, i.Then)
}

// WhileStmt is while (Cond) Body, or do Body while (Cond); when DoWhile
// is set.
type WhileStmt struct {
	stmtBase
	Cond    Expr
	Body    Stmt
	DoWhile bool
}

func (w *WhileStmt) String() string {
	if w.DoWhile {
		return fmt.Sprintf("Loop(do %s while %s)", w.Body, w.Cond)
	}
	return fmt.Sprintf("Loop(while %s do %s)", w.Cond, w.Body)
}

// ForStmt is for (Init; Cond; Step) Body. The header owns its own scope;
// the three header slots keep source order and may be empty.
type ForStmt struct {
	stmtBase
	Scope *Symbol
	Init  Stmt // DeclStmt, ExprStmt, or EmptyStmt
	Cond  Expr // EmptyExpr when omitted
	Step  Expr // EmptyExpr when omitted
	Body  Stmt
}

func (f *ForStmt) String() string {
	return fmt.Sprintf("Iter(init=%s, cond=%s, step=%s, body=%s)", f.Init, f.Cond, f.Step, f.Body)
}

// ReturnStmt is return [Val];.
type ReturnStmt struct {
	stmtBase
	Val Expr // may be nil
}

func (r *ReturnStmt) String() string {
	if r.Val == nil {
		return "Return"
	}
	return fmt.Sprintf("Return(%s)", r.Val)
}

// BreakStmt is break;.
type BreakStmt struct {
	stmtBase
}

func (*BreakStmt) String() string { return "Break" }

// ExprStmt is an expression evaluated for its side effects.
type ExprStmt struct {
	stmtBase
	X Expr
}

func (e *ExprStmt) String() string {
	return fmt.Sprintf("ExprStmt(%s)", e.X)
}

// EmptyStmt is a lone semicolon.
type EmptyStmt struct {
	stmtBase
}

func (*EmptyStmt) String() string { return "Empty" }

// InvalidStmt replaces a statement that failed to parse.
type InvalidStmt struct {
	stmtBase
}

func (*InvalidStmt) String() string { return "<invalid>" }
