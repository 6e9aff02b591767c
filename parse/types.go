package parse

import (
	"github.com/fxrazen/fxsema/tree"
)

// parseTypeExpression parses `*`, `void`, `?T`, `T?`, `T!`, tuple types,
// function types and qualified names with optional `.<...>` arguments.
func (p *parser) parseTypeExpression() (tree.Expr, error) {
	start := p.tok.start
	if ok, err := p.consume("?"); err != nil {
		return nil, err
	} else if ok {
		base, err := p.parseTypeExpression()
		if err != nil {
			return nil, err
		}
		expr := &tree.NullableTypeExpr{Base: base}
		expr.Location = p.loc(start)
		return expr, nil
	}
	base, err := p.parsePrimaryType()
	if err != nil {
		return nil, err
	}
	for {
		switch {
		case p.is("!"):
			if err := p.advance(); err != nil {
				return nil, err
			}
			expr := &tree.NonNullableTypeExpr{Base: base}
			expr.Location = p.loc(start)
			base = expr
		case p.is("?"):
			if err := p.advance(); err != nil {
				return nil, err
			}
			expr := &tree.NullableTypeExpr{Base: base}
			expr.Location = p.loc(start)
			base = expr
		default:
			return base, nil
		}
	}
}

func (p *parser) parsePrimaryType() (tree.Expr, error) {
	start := p.tok.start
	switch {
	case p.is("*"):
		if err := p.advance(); err != nil {
			return nil, err
		}
		expr := &tree.AnyTypeExpr{}
		expr.Location = p.loc(start)
		return expr, nil
	case p.isKeyword("void"):
		if err := p.advance(); err != nil {
			return nil, err
		}
		expr := &tree.VoidTypeExpr{}
		expr.Location = p.loc(start)
		return expr, nil
	case p.is("("):
		if err := p.advance(); err != nil {
			return nil, err
		}
		inner, err := p.parseTypeExpression()
		if err != nil {
			return nil, err
		}
		if err := p.expect(")"); err != nil {
			return nil, err
		}
		expr := &tree.ParenExpr{Expr: inner}
		expr.Location = p.loc(start)
		return expr, nil
	case p.is("["):
		if err := p.advance(); err != nil {
			return nil, err
		}
		expr := &tree.TupleTypeExpr{}
		for !p.is("]") {
			elem, err := p.parseTypeExpression()
			if err != nil {
				return nil, err
			}
			expr.Elements = append(expr.Elements, elem)
			if ok, err := p.consume(","); err != nil {
				return nil, err
			} else if !ok {
				break
			}
		}
		if err := p.expect("]"); err != nil {
			return nil, err
		}
		expr.Location = p.loc(start)
		return expr, nil
	case p.isKeyword("function"):
		return p.parseFunctionType()
	}
	id, err := p.parseQualifiedIdentifier()
	if err != nil {
		return nil, err
	}
	var base tree.Expr = id
	for {
		switch {
		case p.is("."):
			if err := p.advance(); err != nil {
				return nil, err
			}
			member, err := p.parseQualifiedIdentifier()
			if err != nil {
				return nil, err
			}
			expr := &tree.MemberExpr{Base: base, Identifier: member}
			expr.Location = p.loc(start)
			base = expr
		case p.is(".<"):
			if err := p.advance(); err != nil {
				return nil, err
			}
			expr := &tree.ApplyTypesExpr{Base: base}
			for {
				arg, err := p.parseTypeExpression()
				if err != nil {
					return nil, err
				}
				expr.Arguments = append(expr.Arguments, arg)
				if ok, err := p.consume(","); err != nil {
					return nil, err
				} else if !ok {
					break
				}
			}
			if err := p.expectCloseAngle(); err != nil {
				return nil, err
			}
			expr.Location = p.loc(start)
			base = expr
		default:
			return base, nil
		}
	}
}

func (p *parser) parseFunctionType() (tree.Expr, error) {
	start := p.tok.start
	if err := p.advance(); err != nil {
		return nil, err
	}
	if err := p.expect("("); err != nil {
		return nil, err
	}
	expr := &tree.FunctionTypeExpr{}
	for !p.is(")") {
		param := &tree.FunctionTypeParam{Kind: tree.ParamRequired}
		if ok, err := p.consume("..."); err != nil {
			return nil, err
		} else if ok {
			param.Kind = tree.ParamRest
		}
		t, err := p.parseTypeExpression()
		if err != nil {
			return nil, err
		}
		param.Type = t
		if param.Kind == tree.ParamRequired {
			if ok, err := p.consume("="); err != nil {
				return nil, err
			} else if ok {
				param.Kind = tree.ParamOptional
			}
		}
		expr.Params = append(expr.Params, param)
		if ok, err := p.consume(","); err != nil {
			return nil, err
		} else if !ok {
			break
		}
	}
	if err := p.expect(")"); err != nil {
		return nil, err
	}
	if ok, err := p.consume(":"); err != nil {
		return nil, err
	} else if ok {
		result, err := p.parseTypeExpression()
		if err != nil {
			return nil, err
		}
		expr.Result = result
	}
	expr.Location = p.loc(start)
	return expr, nil
}
