package compiler

// value computes and records the derived type of an expression node,
// reporting whether the result designates an lvalue. Every node gets a
// type; Invalid spreads silently so one mistake yields one diagnostic.
func (ctx *analyzerCtx) value(e Expr) (*Type, bool) {
	switch n := e.(type) {
	case *BinaryExpr:
		switch {
		case n.Op.IsNumeric() || n.Op.IsAssignment():
			return ctx.bop(n)
		case n.Op.IsOrdinal() || n.Op.IsEquality():
			return ctx.comparisonBOP(n)
		case n.Op.IsLogical():
			return ctx.logicalBOP(n)
		case n.Op.IsComma():
			return ctx.commaBOP(n)
		default:
			ctx.errorf(n, "unhandled operator '%s'", n.Op)
			n.setDataType(InvalidType())
			return n.DataType(), false
		}

	case *UnaryExpr:
		return ctx.uop(n)

	case *TernaryExpr:
		return ctx.ternary(n)

	case *IndexExpr:
		return ctx.index(n)

	case *CallExpr:
		return ctx.call(n)

	case *MemberExpr:
		return ctx.member(n)

	case *VarRef:
		return ctx.varRef(n)

	case *IntLit:
		n.setDataType(BasicType(ctx.types[BuiltinInt]))
		return n.DataType(), false

	case *BoolLit:
		n.setDataType(BasicType(ctx.types[BuiltinBool]))
		return n.DataType(), false

	case *StrLit:
		n.setDataType(PointerTo(BasicType(ctx.types[BuiltinChar])))
		return n.DataType(), false

	case *CompoundLit:
		return ctx.arrayLit(n)

	case *EmptyExpr:
		n.setDataType(InvalidType())
		return n.DataType(), false

	case *InvalidExpr:
		n.setDataType(InvalidType())
		return n.DataType(), false

	default:
		ctx.errorf(e, "unhandled expression %T", e)
		e.setDataType(InvalidType())
		return e.DataType(), false
	}
}

// ptrish reports pointer-like operands for pointer arithmetic.
func ptrish(t *Type) bool {
	return t != nil && (t.Kind == TypePtr || t.Kind == TypeArray)
}

// bop types the numeric and assignment binary operators.
func (ctx *analyzerCtx) bop(n *BinaryExpr) (*Type, bool) {
	L, lvL := ctx.value(n.L)
	R, _ := ctx.value(n.R)
	o := n.Op.String()

	// Are the operands allowed for this operator?

	if n.Op.IsNumeric() {
		if n.Op.IsAdditive() {
			// Pointer arithmetic rides on the ordinal family.
			if !L.IsOrdinal() || !R.IsOrdinal() {
				if !L.IsOrdinal() {
					ctx.errorOp(n.L, o, "numeric type", L)
				} else {
					ctx.errorOp(n.R, o, "numeric type", R)
				}
			}
		} else if !L.IsNumeric() || !R.IsNumeric() {
			if !L.IsNumeric() {
				ctx.errorOp(n.L, o, "numeric type", L)
			} else {
				ctx.errorOp(n.R, o, "numeric type", R)
			}
		}
	}

	if n.Op.IsAssignment() {
		if !L.IsAssignment() || !R.IsAssignment() {
			if !L.IsAssignment() {
				ctx.errorOp(n.L, o, "assignable type", L)
			} else {
				ctx.errorOp(n.R, o, "assignable type", R)
			}
		}
		if !lvL {
			ctx.errorOp(n.L, o, "lvalue", L)
		}
	}

	// Work out the type of the result.

	switch {
	case n.Op.IsAdditive() && ptrish(L) != ptrish(R):
		// pointer +- offset keeps the pointer type
		n.setDataType(DeriveFromTwo(L, R))

	case !Compatible(L, R):
		ctx.errorMismatch(n, o, L, R)
		n.setDataType(InvalidType())

	case n.Op.IsAssignment():
		// Assignment yields the right-hand type, not an lvalue.
		n.setDataType(DeriveFrom(R))

	default:
		n.setDataType(DeriveFromTwo(L, R))
	}

	return n.DataType(), false
}

// comparisonBOP types the ordering and equality operators.
func (ctx *analyzerCtx) comparisonBOP(n *BinaryExpr) (*Type, bool) {
	L, _ := ctx.value(n.L)
	R, _ := ctx.value(n.R)
	o := n.Op.String()

	if n.Op.IsOrdinal() {
		if !L.IsOrdinal() || !R.IsOrdinal() {
			if !L.IsOrdinal() {
				ctx.errorOp(n.L, o, "comparable type", L)
			} else {
				ctx.errorOp(n.R, o, "comparable type", R)
			}
		}
	} else {
		if !L.IsEquality() || !R.IsEquality() {
			if !L.IsEquality() {
				ctx.errorOp(n.L, o, "comparable type", L)
			} else {
				ctx.errorOp(n.R, o, "comparable type", R)
			}
		}
	}

	if Compatible(L, R) {
		n.setDataType(DeriveFromTwo(L, R))
	} else {
		ctx.errorMismatch(n, o, L, R)
		n.setDataType(InvalidType())
	}

	return n.DataType(), false
}

// logicalBOP types && and ||: both sides must be usable as conditions,
// the result is bool.
func (ctx *analyzerCtx) logicalBOP(n *BinaryExpr) (*Type, bool) {
	L, _ := ctx.value(n.L)
	R, _ := ctx.value(n.R)
	o := n.Op.String()

	if !L.IsCondition() {
		ctx.errorOp(n.L, o, "condition value", L)
	}
	if !R.IsCondition() {
		ctx.errorOp(n.R, o, "condition value", R)
	}

	n.setDataType(BasicType(ctx.types[BuiltinBool]))
	return n.DataType(), false
}

// commaBOP types the comma operator: the left side is evaluated for its
// effects, the right side must be non-void and provides the result.
func (ctx *analyzerCtx) commaBOP(n *BinaryExpr) (*Type, bool) {
	ctx.value(n.L)
	R, _ := ctx.value(n.R)

	// Predicates answer yes for invalids; this is one of the rare spots
	// where the invalid must be let through explicitly.
	if !R.IsVoid() || R.IsInvalid() {
		n.setDataType(DeriveFrom(R))
	} else {
		ctx.errorOp(n.R, n.Op.String(), "non-void", R)
		n.setDataType(InvalidType())
	}

	return n.DataType(), false
}

// uop types the unary operators.
func (ctx *analyzerCtx) uop(n *UnaryExpr) (*Type, bool) {
	R, lv := ctx.value(n.Operand)
	o := n.Op.String()
	lvResult := false

	switch n.Op {
	case OpAdd, OpSub, OpNot, OpBitNot:
		if !R.IsNumeric() {
			ctx.errorOp(n.Operand, o, "numeric type", R)
			n.setDataType(InvalidType())
		} else {
			n.setDataType(DeriveFrom(R))
		}

	case OpInc, OpDec:
		if !R.IsNumeric() {
			ctx.errorOp(n.Operand, o, "numeric type", R)
			n.setDataType(InvalidType())
		} else if !lv {
			ctx.errorOp(n.Operand, o, "lvalue", R)
			n.setDataType(InvalidType())
		} else {
			n.setDataType(DeriveFrom(R))
		}

	case OpMul:
		// Dereferencing a pointer
		if R.IsPtr() {
			n.setDataType(DeriveBase(R))
			lvResult = true
		} else {
			ctx.errorOp(n.Operand, o, "pointer", R)
			n.setDataType(InvalidType())
		}

	case OpBitAnd:
		// Referencing an lvalue
		if !lv {
			ctx.errorOp(n.Operand, o, "lvalue", R)
			n.setDataType(InvalidType())
		} else {
			n.setDataType(DerivePointer(R))
		}

	default:
		ctx.errorf(n, "unhandled operator '%s'", o)
		n.setDataType(InvalidType())
	}

	return n.DataType(), lvResult
}

// ternary types cond ? l : r, unifying the arms.
func (ctx *analyzerCtx) ternary(n *TernaryExpr) (*Type, bool) {
	Cond, _ := ctx.value(n.Cond)
	L, _ := ctx.value(n.Then)
	R, _ := ctx.value(n.Else)

	if !Cond.IsCondition() {
		ctx.errorOp(n.Cond, "ternary ?:", "condition value", Cond)
	}

	if Compatible(L, R) {
		n.setDataType(DeriveUnified(L, R))
	} else {
		ctx.errorMismatch(n, "ternary ?:", L, R)
		n.setDataType(InvalidType())
	}

	return n.DataType(), false
}

// index types arr[i].
func (ctx *analyzerCtx) index(n *IndexExpr) (*Type, bool) {
	L, _ := ctx.value(n.Arr)
	R, _ := ctx.value(n.Index)
	lvResult := false

	if !R.IsNumeric() {
		ctx.errorOp(n.Index, "[]", "numeric index", R)
	}

	if L.IsArray() || L.IsPtr() {
		n.setDataType(DeriveBase(L))
		lvResult = true
	} else {
		ctx.errorOp(n.Arr, "[]", "array or pointer", L)
		n.setDataType(InvalidType())
	}

	return n.DataType(), lvResult
}

// call types fn(args): the callee must be callable, the arity must
// match, and each argument must be compatible with the corresponding
// parameter. The result is derivable from the return type regardless of
// parameter mismatches, so enclosing expressions stay analyzable.
func (ctx *analyzerCtx) call(n *CallExpr) (*Type, bool) {
	L, _ := ctx.value(n.Fn)

	if n.Sym == nil {
		if m, ok := n.Fn.(*MemberExpr); ok {
			n.Sym = m.Sym
		}
	}

	// Arguments are typed unconditionally; checks come after.
	argTypes := make([]*Type, len(n.Args))
	for i, arg := range n.Args {
		argTypes[i], _ = ctx.value(arg)
	}

	if L.IsInvalid() {
		n.setDataType(InvalidType())
		return n.DataType(), false
	}

	if !L.IsCallable() {
		ctx.errorOp(n.Fn, "()", "function", L)
		n.setDataType(InvalidType())
		return n.DataType(), false
	}

	fnT := L
	if fnT.Kind == TypePtr {
		fnT = fnT.Base
	}

	n.setDataType(DeriveReturn(L))

	where := "function"
	if n.Sym != nil && n.Sym.Ident != "" {
		where = n.Sym.Ident
	}

	if fnT.Params != len(n.Args) {
		ctx.errorDegree(n, "parameters", fnT.Params, len(n.Args), where)
		return n.DataType(), false
	}

	if n.Sym != nil {
		idx := 0
		for _, c := range n.Sym.Children {
			if c.Kind != SymParam {
				continue
			}
			if idx >= len(argTypes) {
				break
			}
			if !Compatible(argTypes[idx], c.DT) {
				ctx.errorParamMismatch(n.Args[idx], where, idx, c.DT, argTypes[idx])
			}
			idx++
		}
	}

	return n.DataType(), false
}

// member types rec.f and rec->f, binding the field symbol.
func (ctx *analyzerCtx) member(n *MemberExpr) (*Type, bool) {
	L, lvL := ctx.value(n.Rec)
	o := n.Op.String()

	if L.IsInvalid() {
		n.setDataType(InvalidType())
		return n.DataType(), false
	}

	if n.Op.IsDeref() {
		if L.Kind != TypePtr {
			ctx.errorOp(n.Rec, o, "pointer", L)
			n.setDataType(InvalidType())
			return n.DataType(), false
		}
		if !L.Base.IsRecord() || L.Base.IsInvalid() {
			ctx.errorOp(n.Rec, o, "structure pointer", L)
			n.setDataType(InvalidType())
			return n.DataType(), false
		}
	} else if !L.IsRecord() {
		ctx.errorOp(n.Rec, o, "structure type", L)
		n.setDataType(InvalidType())
		return n.DataType(), false
	}

	var rec *Symbol
	if L.Kind == TypeBasic {
		rec = L.Basic
	} else if L.Kind == TypePtr && L.Base.Kind == TypeBasic {
		rec = L.Base.Basic
	}

	if rec != nil {
		n.Sym = rec.FindChild(n.Name)
	}

	if n.Sym != nil {
		n.setDataType(DeriveFrom(n.Sym.DT))
		return n.DataType(), lvL || n.Op.IsDeref()
	}

	ctx.errorMember(n, o, L, n.Name)
	n.setDataType(InvalidType())
	return n.DataType(), false
}

// varRef types an identifier reference from its bound symbol.
func (ctx *analyzerCtx) varRef(n *VarRef) (*Type, bool) {
	if n.Sym == nil || n.Sym.DT == nil {
		n.setDataType(InvalidType())
		return n.DataType(), false
	}

	n.setDataType(DeriveFrom(n.Sym.DT))
	return n.DataType(), true
}

// arrayLit types a brace-enclosed element list. The elements must be
// mutually compatible; the element type unifies over all of them, else
// the array's element type is invalid.
func (ctx *analyzerCtx) arrayLit(n *CompoundLit) (*Type, bool) {
	if len(n.Elems) == 0 {
		n.setDataType(DeriveArray(InvalidType(), 0))
		return n.DataType(), false
	}

	unified, _ := ctx.value(n.Elems[0])
	unified = unified.Clone()

	for _, elem := range n.Elems[1:] {
		t, _ := ctx.value(elem)
		if unified.IsInvalid() {
			continue
		}
		if Compatible(unified, t) {
			unified = DeriveUnified(unified, t)
		} else {
			ctx.errorMismatch(elem, "array literal", unified, t)
			unified = InvalidType()
		}
	}

	n.setDataType(DeriveArray(unified, len(n.Elems)))
	return n.DataType(), false
}
