package check

import (
	"github.com/fxrazen/fxsema/diagnostics"
	"github.com/fxrazen/fxsema/numeric"
	"github.com/fxrazen/fxsema/semantics"
	"github.com/fxrazen/fxsema/tree"
	"github.com/pkg/errors"
)

var errNegativeUnsigned = errors.New("negative unsigned literal")

func (v *Verifier) verifyNullLiteral(lit *tree.NullLiteral, ctx Context) (semantics.Thingy, error) {
	if t := ctx.ExpectedType; t != nil {
		if _, err := v.require(t); err != nil {
			return nil, err
		}
		if !v.conv.IncludesNull(t) {
			v.addError(lit.Loc(), diagnostics.NullNotExpectedHere)
			return nil, nil
		}
		return v.factory.CreateNullConstant(t), nil
	}
	return v.factory.CreateNullConstant(v.host.AnyType()), nil
}

// contextualOr returns the contextual type when, stripped of nullability,
// it is any, Object or def. Otherwise it returns def.
func (v *Verifier) contextualOr(ctx Context, def semantics.Type) (semantics.Type, error) {
	if _, err := v.require(def); err != nil {
		return nil, err
	}
	if ctx.ExpectedType == nil {
		return def, nil
	}
	ok, err := v.isOneOf(withoutNullability(ctx.ExpectedType), v.host.AnyType(), v.host.ObjectType(), def)
	if err != nil {
		return nil, err
	}
	if ok {
		return ctx.ExpectedType, nil
	}
	return def, nil
}

func (v *Verifier) verifyBooleanLiteral(lit *tree.BooleanLiteral, ctx Context) (semantics.Thingy, error) {
	t, err := v.contextualOr(ctx, v.host.BooleanType())
	if err != nil {
		return nil, err
	}
	return v.factory.CreateBooleanConstant(lit.Value, t), nil
}

func (v *Verifier) verifyNumericLiteral(lit *tree.NumericLiteral, ctx Context) (semantics.Thingy, error) {
	if t := ctx.ExpectedType; t != nil {
		if kind, ok := v.host.NumericKind(withoutNullability(t)); ok {
			n, err := parseNumber(lit, kind, ctx.PrecededByNegative)
			if err != nil {
				v.addError(lit.Loc(), diagnostics.CouldNotParseNumber, withoutNullability(t))
				return nil, nil
			}
			return v.factory.CreateNumberConstant(n, t), nil
		}
	}

	t, err := v.require(v.host.NumberType())
	if err != nil {
		return nil, err
	}
	n, err := parseNumber(lit, numeric.KindNumber, ctx.PrecededByNegative)
	if err != nil {
		v.addError(lit.Loc(), diagnostics.CouldNotParseNumber, t)
		return nil, nil
	}
	return v.factory.CreateNumberConstant(n, t), nil
}

// parseNumber reads a literal directly into kind. negative folds in a
// preceding unary minus.
func parseNumber(lit *tree.NumericLiteral, kind numeric.Kind, negative bool) (numeric.Variant, error) {
	switch kind {
	case numeric.KindNumber:
		f, err := lit.ParseDouble(negative)
		return numeric.Number(f), err
	case numeric.KindFloat:
		f, err := lit.ParseFloat(negative)
		return numeric.Float(f), err
	case numeric.KindInt:
		i, err := lit.ParseInt(negative)
		return numeric.Int(i), err
	case numeric.KindUint:
		u, err := lit.ParseUint()
		if err == nil && negative && u != 0 {
			return numeric.Variant{}, errNegativeUnsigned
		}
		return numeric.Uint(u), err
	default:
		panic("unreachable")
	}
}

func (v *Verifier) verifyStringLiteral(lit *tree.StringLiteral, ctx Context) (semantics.Thingy, error) {
	if t := ctx.ExpectedType; t != nil {
		if e, ok := withoutNullability(t).(*semantics.Enum); ok {
			member := e.Member(lit.Value)
			if member == nil {
				v.addError(lit.Loc(), diagnostics.NoMatchingEnumMember, lit.Value, e)
				return nil, nil
			}
			return member, nil
		}
	}
	t, err := v.require(v.host.StringType())
	if err != nil {
		return nil, err
	}
	return v.factory.CreateStringConstant(lit.Value, t), nil
}

func (v *Verifier) verifyThisLiteral(lit *tree.ThisLiteral) (semantics.Thingy, error) {
	activation := v.scope.Activation()
	if activation == nil || activation.This == nil {
		v.addError(lit.Loc(), diagnostics.UnexpectedThis)
		return nil, nil
	}
	return activation.This, nil
}

func (v *Verifier) verifyRegExpLiteral(_ *tree.RegExpLiteral, ctx Context) (semantics.Thingy, error) {
	t, err := v.contextualOr(ctx, v.host.RegExpType())
	if err != nil {
		return nil, err
	}
	return v.factory.CreateValue(t), nil
}

func (v *Verifier) verifyArrayLiteral(lit *tree.ArrayLiteral, ctx Context) (semantics.Thingy, error) {
	if ctx.ExpectedType != nil {
		switch t := withoutNullability(ctx.ExpectedType).(type) {
		case *semantics.TupleType:
			if len(t.Elements) == len(lit.Elements) {
				for i, e := range lit.Elements {
					if _, err := v.ImplicitCoerceExpression(e, t.Elements[i]); err != nil {
						return nil, err
					}
				}
				return v.factory.CreateValue(ctx.ExpectedType), nil
			}
		case *semantics.TypeAfterSubstitution:
			if vector := v.host.VectorType(); t.Origin == vector {
				for _, e := range lit.Elements {
					if _, err := v.ImplicitCoerceExpression(e, t.Arguments[0]); err != nil {
						return nil, err
					}
				}
				return v.factory.CreateValue(ctx.ExpectedType), nil
			}
		}
	}

	if err := v.verifyAll(lit.Elements); err != nil {
		return nil, err
	}
	t, err := v.contextualOr(ctx, v.host.ArrayType())
	if err != nil {
		return nil, err
	}
	return v.factory.CreateValue(t), nil
}

// ========================

func (v *Verifier) verifyXMLExpression(expr *tree.XMLExpr, ctx Context) (semantics.Thingy, error) {
	if err := v.verifyXMLElement(expr.Element); err != nil {
		return nil, err
	}
	t, err := v.contextualOr(ctx, v.host.XMLType())
	if err != nil {
		return nil, err
	}
	return v.factory.CreateValue(t), nil
}

func (v *Verifier) verifyXMLListExpression(expr *tree.XMLListExpr, ctx Context) (semantics.Thingy, error) {
	for _, c := range expr.Content {
		if err := v.verifyXMLContent(c); err != nil {
			return nil, err
		}
	}
	t, err := v.contextualOr(ctx, v.host.XMLListType())
	if err != nil {
		return nil, err
	}
	return v.factory.CreateValue(t), nil
}

func (v *Verifier) verifyXMLElement(elem *tree.XMLElement) error {
	var exprs []tree.Expr
	if elem.NameExpr != nil {
		exprs = append(exprs, elem.NameExpr)
	}
	for _, attr := range elem.Attributes {
		if attr.Expr != nil {
			exprs = append(exprs, attr.Expr)
		}
	}
	if elem.AttrExpr != nil {
		exprs = append(exprs, elem.AttrExpr)
	}
	if err := v.verifyAll(exprs); err != nil {
		return err
	}
	for _, c := range elem.Content {
		if err := v.verifyXMLContent(c); err != nil {
			return err
		}
	}
	if elem.ClosingExpr != nil {
		return v.verifyAll([]tree.Expr{elem.ClosingExpr})
	}
	return nil
}

func (v *Verifier) verifyXMLContent(c tree.XMLContent) error {
	switch c := c.(type) {
	case *tree.XMLElementContent:
		return v.verifyXMLElement(c.Element)
	case *tree.XMLExprContent:
		return v.verifyAll([]tree.Expr{c.Expr})
	default:
		return nil
	}
}
