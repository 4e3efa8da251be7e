package compiler

import (
	"fmt"
	"strings"
)

// TypeKind selects the variant of a type descriptor.
type TypeKind int

const (
	TypeInvalid TypeKind = iota // bottom type, produced after an error
	TypeBasic
	TypePtr
	TypeArray
	TypeFunc
)

// Type is a value-semantic type descriptor. Descriptors form trees;
// derivations always return fresh, independently owned copies, so a
// descriptor is never shared between AST nodes or symbols.
type Type struct {
	Kind   TypeKind
	Basic  *Symbol // TypeBasic: the Type/Struct/Union/Enum symbol
	Const  bool    // TypeBasic: const-qualified
	Base   *Type   // TypePtr, TypeArray: owned
	Length int     // TypeArray
	Ret    *Type   // TypeFunc: owned; parameter types live on Param symbols
	Params int     // TypeFunc
}

// Constructors

func InvalidType() *Type {
	return &Type{Kind: TypeInvalid}
}

func BasicType(sym *Symbol) *Type {
	return &Type{Kind: TypeBasic, Basic: sym}
}

func ConstBasicType(sym *Symbol) *Type {
	return &Type{Kind: TypeBasic, Basic: sym, Const: true}
}

// PointerTo takes ownership of base.
func PointerTo(base *Type) *Type {
	return &Type{Kind: TypePtr, Base: base}
}

// ArrayOf takes ownership of elem.
func ArrayOf(elem *Type, length int) *Type {
	return &Type{Kind: TypeArray, Base: elem, Length: length}
}

// FuncOf takes ownership of ret. Parameter types are not part of the
// descriptor; they live on the function symbol's Param children.
func FuncOf(ret *Type, params int) *Type {
	return &Type{Kind: TypeFunc, Ret: ret, Params: params}
}

// Clone returns a structural deep copy.
func (t *Type) Clone() *Type {
	if t == nil {
		return InvalidType()
	}
	dup := *t
	if t.Base != nil {
		dup.Base = t.Base.Clone()
	}
	if t.Ret != nil {
		dup.Ret = t.Ret.Clone()
	}
	return &dup
}

// Derivations. Each produces a fresh descriptor owned by the caller.

// DeriveFrom is a structural deep clone of t, stripping nothing but
// identity: the result is an rvalue type.
func DeriveFrom(t *Type) *Type {
	return t.Clone()
}

// DerivePointer yields pointer-to-t.
func DerivePointer(t *Type) *Type {
	return PointerTo(t.Clone())
}

// DeriveBase yields the base of a pointer or array, Invalid otherwise.
func DeriveBase(t *Type) *Type {
	if t.Kind == TypePtr || t.Kind == TypeArray {
		return t.Base.Clone()
	}
	return InvalidType()
}

// DeriveArray yields array-of-elem.
func DeriveArray(elem *Type, length int) *Type {
	return ArrayOf(elem.Clone(), length)
}

// DeriveReturn yields the return type of a function, following one level
// of pointer indirection transparently.
func DeriveReturn(t *Type) *Type {
	if t.Kind == TypePtr && t.Base != nil {
		t = t.Base
	}
	if t.Kind == TypeFunc {
		return t.Ret.Clone()
	}
	return InvalidType()
}

// numericRank orders the numeric family for widening: int > char > bool.
// Enum types rank with int so enumerators mix freely with integers.
func numericRank(t *Type) int {
	if t.Kind != TypeBasic || t.Basic == nil {
		return 0
	}
	if t.Basic.Kind == SymEnum {
		return 3
	}
	switch t.Basic.builtin {
	case BuiltinInt:
		return 3
	case BuiltinChar:
		return 2
	case BuiltinBool:
		return 1
	}
	return 0
}

// DeriveFromTwo yields the wider of two compatible operand types: the
// pointer side if either is a pointer, else the numeric with greater rank.
func DeriveFromTwo(l, r *Type) *Type {
	if l.Kind == TypeInvalid || r.Kind == TypeInvalid {
		return InvalidType()
	}
	if l.Kind == TypePtr || l.Kind == TypeArray {
		return l.Clone()
	}
	if r.Kind == TypePtr || r.Kind == TypeArray {
		return r.Clone()
	}
	if numericRank(r) > numericRank(l) {
		return r.Clone()
	}
	return l.Clone()
}

// DeriveUnified is the ternary result unification; the rule coincides
// with DeriveFromTwo.
func DeriveUnified(l, r *Type) *Type {
	return DeriveFromTwo(l, r)
}

// Predicates. Every predicate accepts the Invalid type so that a single
// upstream error propagates silently instead of cascading; the only
// exceptions are IsInvalid itself and IsVoid.

// IsInvalid reports the bottom type.
func (t *Type) IsInvalid() bool {
	return t == nil || t.Kind == TypeInvalid
}

// IsBasic reports a basic (symbol-backed) type.
func (t *Type) IsBasic() bool {
	return t.IsInvalid() || t.Kind == TypeBasic
}

// IsPtr reports a pointer type.
func (t *Type) IsPtr() bool {
	return t.IsInvalid() || t.Kind == TypePtr
}

// IsArray reports an array type.
func (t *Type) IsArray() bool {
	return t.IsInvalid() || t.Kind == TypeArray
}

// IsVoid reports exactly Basic(void); Invalid is not void.
func (t *Type) IsVoid() bool {
	return t != nil && t.Kind == TypeBasic && t.Basic != nil &&
		t.Basic.Kind == SymType && t.Basic.builtin == BuiltinVoid
}

// IsNumeric reports the numeric family: int, char, bool, and enum types.
func (t *Type) IsNumeric() bool {
	return t.IsInvalid() || numericRank(t) != 0
}

// IsOrdinal reports types with an ordering: numeric and pointer types.
func (t *Type) IsOrdinal() bool {
	return t.IsNumeric() || t.Kind == TypePtr || t.Kind == TypeArray
}

// IsEquality reports types comparable for equality.
func (t *Type) IsEquality() bool {
	return t.IsOrdinal()
}

// IsCondition reports types usable as a branch or loop test.
func (t *Type) IsCondition() bool {
	return t.IsEquality()
}

// IsCallable reports function and pointer-to-function types.
func (t *Type) IsCallable() bool {
	return t.IsInvalid() ||
		t.Kind == TypeFunc ||
		(t.Kind == TypePtr && t.Base != nil && t.Base.Kind == TypeFunc)
}

// IsAssignment reports types an assignment may produce or consume:
// anything but functions and void.
func (t *Type) IsAssignment() bool {
	if t.IsInvalid() {
		return true
	}
	return t.Kind != TypeFunc && !t.IsVoid()
}

// IsRecord reports struct and union types.
func (t *Type) IsRecord() bool {
	return t.IsInvalid() ||
		(t.Kind == TypeBasic && t.Basic != nil && t.Basic.IsRecordTag())
}

// Compatible is the weakest relation under which two types may meet at a
// binary operator, assignment, or parameter boundary.
func Compatible(l, r *Type) bool {
	if l.IsInvalid() || r.IsInvalid() {
		return true
	}

	switch l.Kind {
	case TypeBasic:
		if r.Kind != TypeBasic {
			return false
		}
		if l.Basic == r.Basic {
			return true
		}
		return numericRank(l) != 0 && numericRank(r) != 0

	case TypePtr:
		if r.Kind == TypePtr || r.Kind == TypeArray {
			return l.Base.IsVoid() || r.Base.IsVoid() || Compatible(l.Base, r.Base)
		}
		return false

	case TypeArray:
		// Arrays meet pointers (and each other) through their bases;
		// lengths are not compared.
		if r.Kind == TypePtr || r.Kind == TypeArray {
			return l.Base.IsVoid() || r.Base.IsVoid() || Compatible(l.Base, r.Base)
		}
		return false

	case TypeFunc:
		return r.Kind == TypeFunc && l.Params == r.Params && Compatible(l.Ret, r.Ret)

	default:
		return false
	}
}

// String renders the type as a C-style declaration without a declarator.
func (t *Type) String() string {
	return t.str("")
}

// Decl renders the type as a C-style declaration of ident, placing the
// suffix the way C declarator syntax demands. Used in diagnostics.
func (t *Type) Decl(ident string) string {
	return t.str(ident)
}

func (t *Type) str(suffix string) string {
	if t == nil {
		return "<nil>"
	}
	switch t.Kind {
	case TypeInvalid:
		if suffix == "" {
			return "<invalid>"
		}
		return "<invalid> " + suffix

	case TypeBasic:
		name := t.Basic.Ident
		switch t.Basic.Kind {
		case SymStruct:
			name = "struct " + name
		case SymUnion:
			name = "union " + name
		case SymEnum:
			name = "enum " + name
		}
		if t.Const {
			name = "const " + name
		}
		return joinDecl(name, suffix)

	case TypePtr:
		return t.Base.str("*" + suffix)

	case TypeArray:
		if strings.HasPrefix(suffix, "*") {
			suffix = "(" + suffix + ")"
		}
		return t.Base.str(fmt.Sprintf("%s[%d]", suffix, t.Length))

	case TypeFunc:
		if strings.HasPrefix(suffix, "*") {
			suffix = "(" + suffix + ")"
		}
		return t.Ret.str(suffix + "()")

	default:
		return fmt.Sprintf("Type(%d)", int(t.Kind))
	}
}

// joinDecl glues the basic type name to the rest of a declarator.
func joinDecl(name, suffix string) string {
	if suffix == "" {
		return name
	}
	c := suffix[0]
	if c == '(' || c == '_' ||
		(c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') {
		return name + " " + suffix
	}
	return name + suffix
}
