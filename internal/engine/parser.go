package engine

import "fmt"

// parser is a recursive-descent parser over the lexed token stream.
type parser struct {
	tokens []token
	pos    int
}

// parseScript parses a whole script: a sequence of class declarations.
func parseScript(src string) ([]*ClassDecl, error) {
	tokens, err := lex(src)
	if err != nil {
		return nil, err
	}

	p := &parser{tokens: tokens}

	var classes []*ClassDecl

	p.skipNewlines()

	for !p.at(tokEOF) {
		decl, err := p.classDecl()
		if err != nil {
			return nil, err
		}

		classes = append(classes, decl)
		p.skipNewlines()
	}

	if len(classes) == 0 {
		return nil, fmt.Errorf("script declares no classes")
	}

	return classes, nil
}

// parseExprSource parses a standalone expression, used for predicate and
// replacement bodies supplied as text.
func parseExprSource(src string) (Expr, error) {
	tokens, err := lex(src)
	if err != nil {
		return nil, err
	}

	p := &parser{tokens: tokens}
	p.skipNewlines()

	expr, err := p.expr()
	if err != nil {
		return nil, err
	}

	p.skipNewlines()

	if !p.at(tokEOF) {
		return nil, fmt.Errorf("line %d: unexpected %s after expression", p.peek().line, p.peek())
	}

	return expr, nil
}

func (p *parser) peek() token { return p.tokens[p.pos] }

func (p *parser) at(kind tokenKind) bool { return p.peek().kind == kind }

func (p *parser) next() token {
	t := p.tokens[p.pos]
	if t.kind != tokEOF {
		p.pos++
	}

	return t
}

func (p *parser) expect(kind tokenKind, what string) (token, error) {
	if !p.at(kind) {
		return token{}, fmt.Errorf("line %d: expected %s, found %s", p.peek().line, what, p.peek())
	}

	return p.next(), nil
}

func (p *parser) skipNewlines() {
	for p.at(tokNewline) || p.at(tokSemi) {
		p.next()
	}
}

// terminator consumes a statement terminator: newline, semicolon, or a
// lookahead close brace / EOF.
func (p *parser) terminator() error {
	if p.at(tokNewline) || p.at(tokSemi) {
		p.next()
		return nil
	}

	if p.at(tokRBrace) || p.at(tokEOF) {
		return nil
	}

	return fmt.Errorf("line %d: expected end of statement, found %s", p.peek().line, p.peek())
}

func (p *parser) classDecl() (*ClassDecl, error) {
	kw, err := p.expect(tokClass, "'class'")
	if err != nil {
		return nil, err
	}

	name, err := p.expect(tokIdent, "class name")
	if err != nil {
		return nil, err
	}

	if _, err := p.expect(tokLBrace, "'{'"); err != nil {
		return nil, err
	}

	decl := &ClassDecl{Name: name.text, Line: kw.line}

	p.skipNewlines()

	for !p.at(tokRBrace) {
		switch {
		case p.at(tokVar):
			field, err := p.fieldDecl()
			if err != nil {
				return nil, err
			}

			decl.Fields = append(decl.Fields, field)
		case p.at(tokFn):
			method, err := p.methodDecl()
			if err != nil {
				return nil, err
			}

			decl.Methods = append(decl.Methods, method)
		default:
			return nil, fmt.Errorf("line %d: expected 'var' or 'fn' in class body, found %s", p.peek().line, p.peek())
		}

		p.skipNewlines()
	}

	p.next() // consume '}'

	return decl, nil
}

func (p *parser) fieldDecl() (FieldDecl, error) {
	kw := p.next() // consume 'var'

	name, err := p.expect(tokIdent, "field name")
	if err != nil {
		return FieldDecl{}, err
	}

	if _, err := p.expect(tokAssign, "'='"); err != nil {
		return FieldDecl{}, err
	}

	value, err := p.expr()
	if err != nil {
		return FieldDecl{}, err
	}

	if err := p.terminator(); err != nil {
		return FieldDecl{}, err
	}

	return FieldDecl{Name: name.text, Default: value, Line: kw.line}, nil
}

func (p *parser) methodDecl() (*MethodDecl, error) {
	kw := p.next() // consume 'fn'

	name, err := p.expect(tokIdent, "method name")
	if err != nil {
		return nil, err
	}

	if _, err := p.expect(tokLParen, "'('"); err != nil {
		return nil, err
	}

	var params []string

	for !p.at(tokRParen) {
		param, err := p.expect(tokIdent, "parameter name")
		if err != nil {
			return nil, err
		}

		params = append(params, param.text)

		if p.at(tokComma) {
			p.next()
		} else if !p.at(tokRParen) {
			return nil, fmt.Errorf("line %d: expected ',' or ')', found %s", p.peek().line, p.peek())
		}
	}

	p.next() // consume ')'

	body, err := p.block()
	if err != nil {
		return nil, err
	}

	return &MethodDecl{
		Name:    name.text,
		Params:  params,
		Body:    body,
		Returns: returnsValue(body),
		Line:    kw.line,
	}, nil
}

func (p *parser) block() ([]Stmt, error) {
	p.skipNewlines()

	if _, err := p.expect(tokLBrace, "'{'"); err != nil {
		return nil, err
	}

	var stmts []Stmt

	p.skipNewlines()

	for !p.at(tokRBrace) {
		if p.at(tokEOF) {
			return nil, fmt.Errorf("unexpected end of input in block")
		}

		stmt, err := p.stmt()
		if err != nil {
			return nil, err
		}

		stmts = append(stmts, stmt)
		p.skipNewlines()
	}

	p.next() // consume '}'

	return stmts, nil
}

func (p *parser) stmt() (Stmt, error) {
	switch {
	case p.at(tokReturn):
		return p.returnStmt()
	case p.at(tokIf):
		return p.ifStmt()
	case p.at(tokIdent) && p.tokens[p.pos+1].kind == tokAssign:
		name := p.next()
		p.next() // consume '='

		value, err := p.expr()
		if err != nil {
			return nil, err
		}

		if err := p.terminator(); err != nil {
			return nil, err
		}

		return &AssignStmt{Name: name.text, Value: value, Line: name.line}, nil
	default:
		line := p.peek().line

		value, err := p.expr()
		if err != nil {
			return nil, err
		}

		if err := p.terminator(); err != nil {
			return nil, err
		}

		return &ExprStmt{Value: value, Line: line}, nil
	}
}

func (p *parser) returnStmt() (Stmt, error) {
	kw := p.next() // consume 'return'

	if p.at(tokNewline) || p.at(tokSemi) || p.at(tokRBrace) {
		if err := p.terminator(); err != nil {
			return nil, err
		}

		return &ReturnStmt{Line: kw.line}, nil
	}

	value, err := p.expr()
	if err != nil {
		return nil, err
	}

	if err := p.terminator(); err != nil {
		return nil, err
	}

	return &ReturnStmt{Value: value, Line: kw.line}, nil
}

func (p *parser) ifStmt() (Stmt, error) {
	kw := p.next() // consume 'if'

	cond, err := p.expr()
	if err != nil {
		return nil, err
	}

	then, err := p.block()
	if err != nil {
		return nil, err
	}

	stmt := &IfStmt{Cond: cond, Then: then, Line: kw.line}

	if p.at(tokElse) {
		p.next()

		if p.at(tokIf) {
			nested, err := p.ifStmt()
			if err != nil {
				return nil, err
			}

			stmt.Else = []Stmt{nested}
		} else {
			stmt.Else, err = p.block()
			if err != nil {
				return nil, err
			}
		}
	}

	return stmt, nil
}

// Expression parsing, lowest precedence first: || && ==/!= </<=/>/>= +- */ % unary.

func (p *parser) expr() (Expr, error) {
	return p.binaryExpr(0)
}

var precedenceLevels = [][]tokenKind{
	{tokOr},
	{tokAnd},
	{tokEq, tokNotEq},
	{tokLess, tokLessEq, tokGreater, tokGreaterEq},
	{tokPlus, tokMinus},
	{tokStar, tokSlash, tokPercent},
}

func (p *parser) binaryExpr(level int) (Expr, error) {
	if level >= len(precedenceLevels) {
		return p.unaryExpr()
	}

	left, err := p.binaryExpr(level + 1)
	if err != nil {
		return nil, err
	}

	for {
		matched := false

		for _, op := range precedenceLevels[level] {
			if p.at(op) {
				opTok := p.next()

				right, err := p.binaryExpr(level + 1)
				if err != nil {
					return nil, err
				}

				left = &BinaryExpr{Op: opTok.kind, Left: left, Right: right, Line: opTok.line}
				matched = true

				break
			}
		}

		if !matched {
			return left, nil
		}
	}
}

func (p *parser) unaryExpr() (Expr, error) {
	if p.at(tokMinus) || p.at(tokBang) {
		opTok := p.next()

		value, err := p.unaryExpr()
		if err != nil {
			return nil, err
		}

		return &UnaryExpr{Op: opTok.kind, Value: value, Line: opTok.line}, nil
	}

	return p.primaryExpr()
}

func (p *parser) primaryExpr() (Expr, error) {
	t := p.peek()

	switch t.kind {
	case tokInt:
		p.next()

		var n int64

		if _, err := fmt.Sscanf(t.text, "%d", &n); err != nil {
			return nil, fmt.Errorf("line %d: bad integer %q", t.line, t.text)
		}

		return &LiteralExpr{Value: n, Line: t.line}, nil
	case tokFloat:
		p.next()

		var f float64

		if _, err := fmt.Sscanf(t.text, "%g", &f); err != nil {
			return nil, fmt.Errorf("line %d: bad number %q", t.line, t.text)
		}

		return &LiteralExpr{Value: f, Line: t.line}, nil
	case tokString:
		p.next()
		return &LiteralExpr{Value: t.text, Line: t.line}, nil
	case tokTrue:
		p.next()
		return &LiteralExpr{Value: true, Line: t.line}, nil
	case tokFalse:
		p.next()
		return &LiteralExpr{Value: false, Line: t.line}, nil
	case tokNil:
		p.next()
		return &LiteralExpr{Value: nil, Line: t.line}, nil
	case tokIdent:
		p.next()

		if !p.at(tokLParen) {
			return &IdentExpr{Name: t.text, Line: t.line}, nil
		}

		p.next() // consume '('

		var args []Expr

		for !p.at(tokRParen) {
			arg, err := p.expr()
			if err != nil {
				return nil, err
			}

			args = append(args, arg)

			if p.at(tokComma) {
				p.next()
			} else if !p.at(tokRParen) {
				return nil, fmt.Errorf("line %d: expected ',' or ')', found %s", p.peek().line, p.peek())
			}
		}

		p.next() // consume ')'

		return &CallExpr{Name: t.text, Args: args, Line: t.line}, nil
	case tokLParen:
		p.next()

		inner, err := p.expr()
		if err != nil {
			return nil, err
		}

		if _, err := p.expect(tokRParen, "')'"); err != nil {
			return nil, err
		}

		return inner, nil
	default:
		return nil, fmt.Errorf("line %d: expected expression, found %s", t.line, t)
	}
}

// returnsValue reports whether any statement in the body (recursively)
// returns a value. It decides the method's value/void calling contract.
func returnsValue(body []Stmt) bool {
	for _, stmt := range body {
		switch s := stmt.(type) {
		case *ReturnStmt:
			if s.Value != nil {
				return true
			}
		case *IfStmt:
			if returnsValue(s.Then) || returnsValue(s.Else) {
				return true
			}
		}
	}

	return false
}
