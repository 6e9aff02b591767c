package check

import (
	"github.com/fxrazen/fxsema/semantics"
	"github.com/fxrazen/fxsema/tree"
	"go.uber.org/zap"
)

// FunctionPartials carries what has been resolved about one function
// across passes. Params and ResultType are set once every parameter and
// the result annotation verify; Signature follows from both.
type FunctionPartials struct {
	Activation *semantics.Scope
	Params     []semantics.FunctionParam
	ResultType semantics.Type
	Signature  *semantics.FunctionType

	paramsDone bool
}

// Partials returns the partials of fn, creating its activation under the
// current scope on first use.
func (v *Verifier) Partials(fn *tree.FunctionExpr, this semantics.Value) *FunctionPartials {
	p, ok := v.partials[fn]
	if !ok {
		p = &FunctionPartials{Activation: v.factory.CreateActivation(this, nil, v.scope)}
		v.partials[fn] = p
	}
	return p
}

func (v *Verifier) verifyFunctionExpression(fn *tree.FunctionExpr) (semantics.Thingy, error) {
	p := v.Partials(fn, nil)
	if err := v.VerifyFunctionCommon(fn.Common, p); err != nil {
		return nil, err
	}
	return v.factory.CreateValue(p.Signature), nil
}

// localNamespace qualifies parameters and other locals.
func (v *Verifier) localNamespace() *semantics.Namespace {
	return v.factory.CreatePublicNamespace(nil)
}

// VerifyFunctionCommon resolves the signature of a function, declares its
// parameters in the activation and verifies an expression body against the
// result type. It may be called again after a deferral; completed steps
// are not repeated.
func (v *Verifier) VerifyFunctionCommon(common *tree.FunctionCommon, p *FunctionPartials) error {
	saved := v.scope
	v.scope = p.Activation
	defer func() { v.scope = saved }()

	if !p.paramsDone {
		params, err := v.verifyParams(common.Params, p.Activation)
		if err != nil {
			return err
		}
		p.Params = params
		p.paramsDone = true
	}

	if p.ResultType == nil {
		result := semantics.Type(v.host.AnyType())
		if common.Result != nil {
			t, err := v.VerifyTypeExpression(common.Result)
			if err != nil {
				return err
			}
			if t != nil {
				result = t
			}
		}
		p.ResultType = result
	}

	if p.Signature == nil {
		p.Signature = v.factory.CreateFunctionType(p.Params, p.ResultType)
		p.Activation.Function = p.Signature
		v.log.Debug("function signature", zap.Stringer("signature", p.Signature))
	}

	if common.Body == nil {
		return nil
	}
	if p.ResultType == semantics.Type(v.host.VoidType()) {
		_, err := v.VerifyExpression(common.Body, Context{})
		return err
	}
	_, err := v.ImplicitCoerceExpression(common.Body, p.ResultType)
	return err
}

// verifyParams resolves parameter types and declares each parameter as a
// local of activation. A parameter whose annotation was diagnosed is typed
// *.
func (v *Verifier) verifyParams(params []*tree.Param, activation *semantics.Scope) ([]semantics.FunctionParam, error) {
	result := make([]semantics.FunctionParam, len(params))
	for i, param := range params {
		t, err := v.paramType(param)
		if err != nil {
			return nil, err
		}
		if param.Default != nil {
			if _, err := v.ImplicitCoerceExpression(param.Default, t); err != nil {
				return nil, err
			}
		}
		result[i] = semantics.FunctionParam{Kind: paramKind(param.Kind), Type: t}
	}

	ns := v.localNamespace()
	for i, param := range params {
		name := v.factory.CreateQName(ns, param.Name)
		if activation.Properties.Has(name) {
			continue
		}
		slot := v.factory.CreateVariableSlot(name, result[i].Type, false)
		slot.Activation = activation
		activation.Properties.Set(name, slot)
	}
	return result, nil
}

func (v *Verifier) paramType(param *tree.Param) (semantics.Type, error) {
	if param.Type == nil {
		if param.Kind == tree.ParamRest {
			return v.require(v.host.ArrayType())
		}
		return v.host.AnyType(), nil
	}
	t, err := v.VerifyTypeExpression(param.Type)
	if err != nil {
		return nil, err
	}
	if t == nil {
		return v.host.AnyType(), nil
	}
	return t, nil
}
