package compiler

import (
	"testing"
)

func TestSymbolTable(t *testing.T) {
	t.Run("RootScopeBuiltins", func(t *testing.T) {
		root, types := NewRootScope()

		for _, name := range []string{"void", "bool", "char", "int"} {
			sym := root.Find(name)
			if sym == nil {
				t.Fatalf("builtin %q missing from root scope", name)
			}
			if sym.Kind != SymType {
				t.Errorf("builtin %q: expected kind type, got %v", name, sym.Kind)
			}
		}

		if types[BuiltinInt].Ident != "int" {
			t.Errorf("BuiltinInt: expected 'int', got %q", types[BuiltinInt].Ident)
		}
		if types[BuiltinVoid].Ident != "void" {
			t.Errorf("BuiltinVoid: expected 'void', got %q", types[BuiltinVoid].Ident)
		}
	})

	t.Run("ParentChildLinks", func(t *testing.T) {
		root, _ := NewRootScope()
		scope := &Symbol{Kind: SymScope}
		root.AddChild(scope)

		sym := &Symbol{Ident: "x", Kind: SymID}
		scope.AddChild(sym)

		if sym.Parent != scope {
			t.Errorf("child does not point back at its scope")
		}
		if scope.Parent != root {
			t.Errorf("scope does not point back at root")
		}
		if scope.FindChild("x") != sym {
			t.Errorf("FindChild failed in immediate scope")
		}
		if root.FindChild("x") != nil {
			t.Errorf("FindChild leaked into a nested scope")
		}
	})

	t.Run("LookupAscends", func(t *testing.T) {
		root, _ := NewRootScope()
		inner := &Symbol{Kind: SymScope}
		root.AddChild(inner)

		global := &Symbol{Ident: "g", Kind: SymID}
		root.AddChild(global)

		if inner.Find("g") != global {
			t.Errorf("Find did not ascend to the enclosing scope")
		}
		if inner.Find("missing") != nil {
			t.Errorf("Find invented a symbol")
		}
	})

	t.Run("ShadowingFindsInnermost", func(t *testing.T) {
		root, _ := NewRootScope()
		outer := &Symbol{Ident: "x", Kind: SymID}
		root.AddChild(outer)

		scope := &Symbol{Kind: SymScope}
		root.AddChild(scope)
		inner := &Symbol{Ident: "x", Kind: SymID}
		scope.AddChild(inner)

		if scope.Find("x") != inner {
			t.Errorf("Find returned the outer symbol, expected the shadow")
		}
		if root.Find("x") != outer {
			t.Errorf("Find from root returned the wrong symbol")
		}
	})

	t.Run("AnonymousScopesAreInvisible", func(t *testing.T) {
		root, _ := NewRootScope()
		scope := &Symbol{Kind: SymScope}
		root.AddChild(scope)

		if root.FindChild("") != nil {
			t.Errorf("anonymous scope should not be findable by name")
		}
	})

	t.Run("RecordTags", func(t *testing.T) {
		s := &Symbol{Ident: "S", Kind: SymStruct}
		u := &Symbol{Ident: "U", Kind: SymUnion}
		e := &Symbol{Ident: "E", Kind: SymEnum}

		if !s.IsRecordTag() || !u.IsRecordTag() {
			t.Errorf("struct and union tags should be record tags")
		}
		if e.IsRecordTag() {
			t.Errorf("enum tag should not be a record tag")
		}
	})
}
