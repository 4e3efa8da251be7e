package compiler

// declShape is the parsed shape of one declarator, before typing. The
// type is applied inside-out once the whole declarator has been read,
// the way C declarator syntax composes.
type declShape struct {
	stars int
	sym   *Symbol
	loc   SrcLoc
	inner *declShape // parenthesized declarator, e.g. (*fn)(...)
	ops   []declOp   // postfix derivations in source order
}

// declOp is one postfix declarator derivation: an array bound or a
// parameter list.
type declOp struct {
	fn     bool
	params int
	length int
}

// targetSym is the symbol the declarator ultimately names.
func (d *declShape) targetSym() *Symbol {
	if d.sym != nil {
		return d.sym
	}
	if d.inner != nil {
		return d.inner.targetSym()
	}
	return nil
}

// parseDecl parses a declaration: an optional storage class, a basic
// type, then declarators separated by commas. At the top level a
// function declarator followed directly by a compound statement becomes
// a function implementation instead.
func (p *Parser) parseDecl(topLevel bool) Stmt {
	loc := p.loc
	storage := p.parseStorage()
	base, tag := p.parseDeclBasic()

	stmt := &DeclStmt{stmtBase: stmtBase{loc: loc}, Tag: tag}

	// A tag definition may stand alone: struct S { ... };
	if tag != nil && p.tryMatchText(";") {
		return stmt
	}

	for {
		d := p.parseDeclShape(SymID, storage)
		sym := p.applyDeclType(d, base)
		item := &DeclItem{Sym: sym, Loc: d.loc}
		stmt.Items = append(stmt.Items, item)

		if topLevel && len(stmt.Items) == 1 && tag == nil &&
			sym != nil && sym.DT != nil && sym.DT.Kind == TypeFunc && p.is("{") {
			// The prototype scope becomes the body scope.
			p.enterScope(sym)
			body := p.parseCode()
			p.leaveScope()
			return &FuncImpl{stmtBase: stmtBase{loc: loc}, Sym: sym, Body: body}
		}

		if p.tryMatchText("=") {
			item.Init = p.parseInit()
		}

		if !p.tryMatchText(",") {
			break
		}
	}

	p.matchText(";")
	return stmt
}

// parseStorage consumes an optional storage-class specifier.
func (p *Parser) parseStorage() Storage {
	if p.tryMatchText("static") {
		return StorageStatic
	}
	if p.tryMatchText("extern") {
		return StorageExtern
	}
	return StorageAuto
}

// parseDeclBasic parses the basic type of a declaration: an optional
// const qualifier, then a struct/union/enum specifier or a type name.
// A specifier that introduces a body also yields the tag's AST node.
func (p *Parser) parseDeclBasic() (*Type, Stmt) {
	isConst := p.tryMatchText("const")

	var base *Type
	var tag Stmt

	switch {
	case p.is("struct"):
		base, tag = p.parseRecordSpec(false)
	case p.is("union"):
		base, tag = p.parseRecordSpec(true)
	case p.is("enum"):
		base, tag = p.parseEnumSpec()
	default:
		base = p.parseTypeName()
	}

	if isConst && base.Kind == TypeBasic {
		base.Const = true
	}
	return base, tag
}

// parseTypeName resolves the current identifier to a type-ish symbol.
func (p *Parser) parseTypeName() *Type {
	if !p.isIdent() {
		p.errorExpected("type name")
		p.next()
		return InvalidType()
	}

	sym := p.scope.Find(p.lex.Peek().Text)
	if sym == nil ||
		(sym.Kind != SymType && sym.Kind != SymStruct &&
			sym.Kind != SymUnion && sym.Kind != SymEnum) {
		p.errorUndefSym()
		p.next()
		return InvalidType()
	}

	p.match()
	return BasicType(sym)
}

// parseRecordSpec parses a struct or union specifier. With a body it
// introduces the tag into the current scope and parses the fields into
// the tag symbol; without one it merely looks the tag up.
func (p *Parser) parseRecordSpec(union bool) (*Type, Stmt) {
	loc := p.loc
	kind := SymStruct
	keyword := "struct"
	if union {
		kind = SymUnion
		keyword = "union"
	}
	p.matchText(keyword)

	var sym *Symbol

	if p.isIdent() {
		nameLoc := p.loc
		name := p.matchIdent()

		if p.is("{") {
			sym = p.insert(&Symbol{Ident: name, Kind: kind}, nameLoc)
		} else {
			sym = p.scope.Find(name)
			if sym == nil || sym.Kind != kind {
				p.errorAt(nameLoc, "undefined symbol '%s'", name)
				return InvalidType(), nil
			}
			return BasicType(sym), nil
		}
	} else if p.is("{") {
		sym = &Symbol{Kind: kind}
		p.scope.AddChild(sym)
	} else {
		p.errorExpected(keyword + " name")
		p.next()
		return InvalidType(), nil
	}

	// Body: fields are declared straight into the tag symbol.
	p.enterScope(sym)
	p.matchText("{")
	for !p.is("}") && p.lex.Peek().Class != TokenEOF {
		if p.isDeclStart() {
			p.parseDecl(false)
		} else {
			p.errorExpected("field declaration")
			p.next()
		}
	}
	p.matchText("}")
	p.leaveScope()

	return BasicType(sym), &RecordDecl{stmtBase: stmtBase{loc: loc}, Sym: sym, Union: union}
}

// parseEnumSpec parses an enum specifier. Enumerators are inserted into
// the enclosing scope, typed by the tag.
func (p *Parser) parseEnumSpec() (*Type, Stmt) {
	loc := p.loc
	p.matchText("enum")

	var sym *Symbol

	if p.isIdent() {
		nameLoc := p.loc
		name := p.matchIdent()

		if p.is("{") {
			sym = p.insert(&Symbol{Ident: name, Kind: SymEnum}, nameLoc)
		} else {
			sym = p.scope.Find(name)
			if sym == nil || sym.Kind != SymEnum {
				p.errorAt(nameLoc, "undefined symbol '%s'", name)
				return InvalidType(), nil
			}
			return BasicType(sym), nil
		}
	} else if p.is("{") {
		sym = &Symbol{Kind: SymEnum}
		p.scope.AddChild(sym)
	} else {
		p.errorExpected("enum name")
		p.next()
		return InvalidType(), nil
	}

	p.matchText("{")
	for !p.is("}") && p.lex.Peek().Class != TokenEOF {
		constLoc := p.loc
		if !p.isIdent() {
			p.errorExpected("enumeration constant")
			p.next()
			continue
		}
		name := p.matchIdent()
		c := p.insert(&Symbol{Ident: name, Kind: SymID}, constLoc)
		if c.DT == nil {
			c.DT = BasicType(sym)
		}
		if !p.tryMatchText(",") {
			break
		}
	}
	p.matchText("}")

	return BasicType(sym), &EnumDecl{stmtBase: stmtBase{loc: loc}, Sym: sym}
}

// parseDeclShape reads one declarator: leading stars, then an identifier
// or a parenthesized declarator, then postfix array bounds and parameter
// lists. Named symbols are inserted into the current scope the moment
// the identifier appears.
func (p *Parser) parseDeclShape(kind SymKind, storage Storage) *declShape {
	d := &declShape{loc: p.loc}

	for p.tryMatchText("*") {
		d.stars++
	}

	if p.is("(") {
		p.match()
		d.inner = p.parseDeclShape(kind, storage)
		p.matchText(")")
	} else if p.isIdent() {
		nameLoc := p.loc
		name := p.matchIdent()
		d.loc = nameLoc
		d.sym = p.insert(&Symbol{Ident: name, Kind: kind, Storage: storage}, nameLoc)
	} else if kind == SymParam {
		// Unnamed parameter: it still occupies a slot.
		d.sym = &Symbol{Kind: SymParam, Storage: storage}
		p.scope.AddChild(d.sym)
	} else {
		p.errorExpected("identifier")
		// The nameless symbol still joins the scope so the parent chain
		// stays intact for any parameter list that follows.
		d.sym = &Symbol{Kind: kind, Storage: storage}
		p.scope.AddChild(d.sym)
	}

	for {
		if p.tryMatchText("[") {
			length := 0
			if p.isInt() {
				length = p.matchInt()
			} else if !p.is("]") {
				p.errorExpected("array size")
				p.parseAssign()
			}
			p.matchText("]")
			d.ops = append(d.ops, declOp{length: length})
		} else if p.is("(") {
			params := p.parseParamList(d.targetSym())
			d.ops = append(d.ops, declOp{fn: true, params: params})
		} else {
			break
		}
	}

	return d
}

// parseParamList parses a parameter list, declaring the parameters into
// the function symbol so a following implementation body sees them.
func (p *Parser) parseParamList(fnSym *Symbol) int {
	if fnSym == nil {
		fnSym = &Symbol{Kind: SymScope}
		p.scope.AddChild(fnSym)
	}

	p.matchText("(")
	p.enterScope(fnSym)

	count := 0
	if !p.is(")") {
		for {
			base, _ := p.parseDeclBasic()
			if count == 0 && base.IsVoid() && !base.Const && p.is(")") {
				break // (void) declares no parameters
			}
			d := p.parseDeclShape(SymParam, StorageAuto)
			p.applyDeclType(d, base)
			count++

			if !p.tryMatchText(",") {
				break
			}
		}
	}

	p.leaveScope()
	p.matchText(")")
	return count
}

// applyDeclType builds the declarator's full type from the basic type,
// innermost derivation last, and binds it to the declared symbol. A
// symbol that already carries a type (a diagnosed duplicate) keeps it.
func (p *Parser) applyDeclType(d *declShape, base *Type) *Symbol {
	t := base.Clone()
	for i := 0; i < d.stars; i++ {
		t = PointerTo(t)
	}
	for i := len(d.ops) - 1; i >= 0; i-- {
		if d.ops[i].fn {
			t = FuncOf(t, d.ops[i].params)
		} else {
			t = ArrayOf(t, d.ops[i].length)
		}
	}

	if d.inner != nil {
		return p.applyDeclType(d.inner, t)
	}
	if d.sym != nil && d.sym.DT == nil {
		d.sym.DT = t
	}
	return d.sym
}

// parseInit parses a declarator initializer: an assignment-level
// expression, or a brace-enclosed initializer list.
func (p *Parser) parseInit() Expr {
	if p.is("{") {
		return p.parseCompoundLit(true)
	}
	return p.parseAssign()
}

// parseCompoundLit parses { expr, expr, ... }, nested lists included.
func (p *Parser) parseCompoundLit(isInit bool) Expr {
	lit := &CompoundLit{exprBase: exprBase{loc: p.loc}, IsInit: isInit}
	p.matchText("{")

	if !p.is("}") {
		for {
			if p.is("{") {
				lit.Elems = append(lit.Elems, p.parseCompoundLit(isInit))
			} else {
				lit.Elems = append(lit.Elems, p.parseAssign())
			}
			if !p.tryMatchText(",") {
				break
			}
		}
	}

	p.matchText("}")
	return lit
}
