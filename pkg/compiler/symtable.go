package compiler

import (
	"fmt"
	"strings"
)

// SymKind identifies what a symbol names.
type SymKind int

const (
	SymScope  SymKind = iota // anonymous container for nested bindings
	SymType                  // built-in scalar type
	SymStruct                // struct tag
	SymUnion                 // union tag
	SymEnum                  // enum tag
	SymID                    // variable or function
	SymParam                 // function parameter
)

var symKindNames = [...]string{
	SymScope:  "scope",
	SymType:   "type",
	SymStruct: "struct",
	SymUnion:  "union",
	SymEnum:   "enum",
	SymID:     "id",
	SymParam:  "param",
}

func (k SymKind) String() string {
	if int(k) >= 0 && int(k) < len(symKindNames) {
		return symKindNames[k]
	}
	return fmt.Sprintf("SymKind(%d)", int(k))
}

// Storage is a symbol's storage class.
type Storage int

const (
	StorageAuto Storage = iota
	StorageStatic
	StorageExtern
)

// Symbol is a named entity in some scope. Symbols form an ordered tree:
// a scope owns its children, children hold a weak reference back to their
// parent. Offset, Size and Label are filled in by a backend during layout
// and stay zero here.
type Symbol struct {
	Ident    string
	Kind     SymKind
	DT       *Type // only for SymID and SymParam
	Parent   *Symbol
	Children []*Symbol
	Offset   int
	Size     int
	Label    string
	Storage  Storage

	builtin Builtin // set for the root scope's scalar types; meaningful only on SymType symbols
}

// Builtin indexes the scalar types pre-populated into the root scope.
type Builtin int

const (
	BuiltinVoid Builtin = iota
	BuiltinBool
	BuiltinChar
	BuiltinInt
	builtinCount

	BuiltinNone Builtin = -1
)

var builtinNames = [builtinCount]string{
	BuiltinVoid: "void",
	BuiltinBool: "bool",
	BuiltinChar: "char",
	BuiltinInt:  "int",
}

// NewRootScope creates the global scope with the built-in scalar types
// already bound, returning it together with the builtins indexed by the
// Builtin enum.
func NewRootScope() (*Symbol, []*Symbol) {
	root := &Symbol{Kind: SymScope}
	types := make([]*Symbol, builtinCount)
	for b := Builtin(0); b < builtinCount; b++ {
		sym := &Symbol{Ident: builtinNames[b], Kind: SymType, builtin: b}
		root.AddChild(sym)
		types[b] = sym
	}
	return root, types
}

// AddChild appends c to s's ordered child list and parents it.
func (s *Symbol) AddChild(c *Symbol) {
	c.Parent = s
	s.Children = append(s.Children, c)
}

// FindChild searches s's immediate children for ident.
func (s *Symbol) FindChild(ident string) *Symbol {
	if ident == "" {
		return nil
	}
	for _, c := range s.Children {
		if c.Ident == ident {
			return c
		}
	}
	return nil
}

// Find searches for ident in s, then in each enclosing scope in turn.
// Children are found before ancestors, so nested bindings shadow outer
// ones without diagnostic.
func (s *Symbol) Find(ident string) *Symbol {
	for scope := s; scope != nil; scope = scope.Parent {
		if c := scope.FindChild(ident); c != nil {
			return c
		}
	}
	return nil
}

// IsRecordTag reports whether the symbol is a struct or union tag.
func (s *Symbol) IsRecordTag() bool {
	return s.Kind == SymStruct || s.Kind == SymUnion
}

func (s *Symbol) String() string {
	var sb strings.Builder
	s.dump(&sb, 0)
	return sb.String()
}

func (s *Symbol) dump(sb *strings.Builder, depth int) {
	ident := s.Ident
	if ident == "" {
		ident = "<anon>"
	}
	fmt.Fprintf(sb, "%s%s %s", strings.Repeat("  ", depth), s.Kind, ident)
	if s.DT != nil {
		fmt.Fprintf(sb, ": %s", s.DT)
	}
	sb.WriteByte('\n')
	for _, c := range s.Children {
		c.dump(sb, depth+1)
	}
}
