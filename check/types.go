package check

import (
	"github.com/fxrazen/fxsema/diagnostics"
	"github.com/fxrazen/fxsema/semantics"
	"github.com/fxrazen/fxsema/tree"
)

// VerifyTypeExpression resolves a type annotation. It follows the same
// outcome convention as VerifyExpression.
func (v *Verifier) VerifyTypeExpression(expr tree.Expr) (semantics.Type, error) {
	switch expr := expr.(type) {
	case *tree.AnyTypeExpr:
		return v.host.AnyType(), nil
	case *tree.VoidTypeExpr:
		return v.host.VoidType(), nil
	case *tree.ParenExpr:
		return v.VerifyTypeExpression(expr.Expr)
	case *tree.NullableTypeExpr:
		base, err := v.VerifyTypeExpression(expr.Base)
		if base == nil || err != nil {
			return nil, err
		}
		return v.factory.CreateNullableType(base), nil
	case *tree.NonNullableTypeExpr:
		base, err := v.VerifyTypeExpression(expr.Base)
		if base == nil || err != nil {
			return nil, err
		}
		return v.factory.CreateNonNullableType(base), nil
	case *tree.TupleTypeExpr:
		elements, err := v.verifyTypeList(expr.Elements)
		if elements == nil || err != nil {
			return nil, err
		}
		return v.factory.CreateTupleType(elements), nil
	case *tree.FunctionTypeExpr:
		return v.verifyFunctionTypeExpression(expr)
	}

	result, err := v.VerifyExpression(expr, Context{})
	if result == nil || err != nil {
		return nil, err
	}
	t, ok := asType(result)
	if !ok {
		v.addError(expr.Loc(), diagnostics.EntityIsNotAType, result)
		return nil, nil
	}
	return v.require(t)
}

// verifyTypeList verifies every type before reporting a failure, so that
// each element gets its diagnostics.
func (v *Verifier) verifyTypeList(exprs []tree.Expr) ([]semantics.Type, error) {
	types := make([]semantics.Type, len(exprs))
	valid := true
	for i, e := range exprs {
		t, err := v.VerifyTypeExpression(e)
		if err != nil {
			return nil, err
		}
		if t == nil {
			valid = false
		}
		types[i] = t
	}
	if !valid {
		return nil, nil
	}
	return types, nil
}

func paramKind(kind tree.ParamKind) semantics.ParamKind {
	switch kind {
	case tree.ParamRequired:
		return semantics.ParamRequired
	case tree.ParamOptional:
		return semantics.ParamOptional
	case tree.ParamRest:
		return semantics.ParamRest
	default:
		panic("unreachable")
	}
}

func (v *Verifier) verifyFunctionTypeExpression(expr *tree.FunctionTypeExpr) (semantics.Type, error) {
	exprs := make([]tree.Expr, len(expr.Params))
	for i, p := range expr.Params {
		exprs[i] = p.Type
	}
	types, err := v.verifyTypeList(exprs)
	if err != nil {
		return nil, err
	}

	var result semantics.Type = v.host.AnyType()
	if expr.Result != nil {
		result, err = v.VerifyTypeExpression(expr.Result)
		if err != nil {
			return nil, err
		}
	}
	if result == nil || (types == nil && len(exprs) > 0) {
		return nil, nil
	}

	params := make([]semantics.FunctionParam, len(expr.Params))
	for i, p := range expr.Params {
		params[i] = semantics.FunctionParam{Kind: paramKind(p.Kind), Type: types[i]}
	}
	return v.factory.CreateFunctionType(params, result), nil
}
