package check

import (
	"strconv"

	"github.com/fxrazen/fxsema/diagnostics"
	"github.com/fxrazen/fxsema/semantics"
	"github.com/fxrazen/fxsema/source"
	"github.com/fxrazen/fxsema/tree"
)

// verifyArguments checks arguments against a signature. Arity errors are
// reported at loc; the arguments are verified regardless.
func (v *Verifier) verifyArguments(loc source.Location, args []tree.Expr, sig *semantics.FunctionType) error {
	if semantics.IsUnresolved(sig) {
		return semantics.ErrDefer
	}

	for i, arg := range args {
		var target semantics.Type
		switch {
		case i < len(sig.Params) && sig.Params[i].Kind != semantics.ParamRest:
			target = sig.Params[i].Type
		case len(sig.Params) > 0 && sig.Params[len(sig.Params)-1].Kind == semantics.ParamRest:
			target = v.restElementType(sig.Params[len(sig.Params)-1].Type)
		}

		var err error
		if target != nil {
			_, err = v.ImplicitCoerceExpression(arg, target)
		} else {
			_, err = v.VerifyExpression(arg, Context{})
		}
		if err != nil {
			return err
		}
	}

	if minArgs := sig.MinArgs(); len(args) < minArgs {
		v.addError(loc, diagnostics.IncorrectNumArguments, strconv.Itoa(minArgs))
	} else if maxArgs := sig.MaxArgs(); maxArgs >= 0 && len(args) > maxArgs {
		v.addError(loc, diagnostics.IncorrectNumArgumentsNoMoreThan, strconv.Itoa(maxArgs))
	}
	return nil
}

func (v *Verifier) restElementType(t semantics.Type) semantics.Type {
	if tas, ok := withoutNonNullable(t).(*semantics.TypeAfterSubstitution); ok && tas.Origin == v.host.VectorType() {
		return tas.Arguments[0]
	}
	return v.host.AnyType()
}

func (v *Verifier) verifyCallExpression(expr *tree.CallExpr) (semantics.Thingy, error) {
	base, err := v.VerifyExpression(expr.Base, Context{})
	if err != nil {
		return nil, err
	}
	if base == nil {
		return nil, v.verifyAll(expr.Arguments)
	}
	loc := expr.Base.Loc()

	if t, ok := asType(base); ok {
		array, err := v.require(v.host.ArrayType())
		if err != nil {
			return nil, err
		}
		if tas, ok := t.(*semantics.TypeAfterSubstitution); t == array || ok && tas.Origin == array {
			if err := v.verifyAll(expr.Arguments); err != nil {
				return nil, err
			}
			v.addWarning(loc, diagnostics.CallOnArrayType)
			return v.factory.CreateValue(array), nil
		}

		// type cast
		for i, arg := range expr.Arguments {
			argCtx := Context{}
			if i == 0 {
				argCtx.ExpectedType = t
			}
			if _, err := v.VerifyExpression(arg, argCtx); err != nil {
				return nil, err
			}
		}
		switch {
		case len(expr.Arguments) < 1:
			v.addError(loc, diagnostics.IncorrectNumArguments, "1")
		case len(expr.Arguments) > 1:
			v.addError(loc, diagnostics.IncorrectNumArgumentsNoMoreThan, "1")
		}
		return v.factory.CreateValue(t), nil
	}

	if ref, ok := base.(*semantics.FixtureReference); ok {
		if method, ok := ref.Property.(*semantics.MethodSlot); ok {
			sig, ok := ref.Type.(*semantics.FunctionType)
			if !ok || method.Signature == nil {
				return v.deferAt(loc, "method signature")
			}
			if err := v.verifyArguments(loc, expr.Arguments, sig); err != nil {
				return nil, err
			}
			return v.factory.CreateValue(sig.Result), nil
		}
	}

	st := withoutNonNullable(v.staticType(base))
	if sig, ok := st.(*semantics.FunctionType); ok {
		if err := v.verifyArguments(loc, expr.Arguments, sig); err != nil {
			return nil, err
		}
		return v.factory.CreateValue(sig.Result), nil
	}

	if err := v.verifyAll(expr.Arguments); err != nil {
		return nil, err
	}
	callable, err := v.isOneOf(st, v.host.AnyType(), v.host.ObjectType(), v.host.FunctionType())
	if err != nil {
		return nil, err
	}
	if !callable {
		v.addError(loc, diagnostics.CallOnNonFunction, st)
		return nil, nil
	}
	return v.factory.CreateValue(v.host.AnyType()), nil
}

// ========================

// instantiable returns the class behind t when `new t` is allowed.
func instantiable(t semantics.Type) (*semantics.Class, bool) {
	if tas, ok := t.(*semantics.TypeAfterSubstitution); ok {
		t = tas.Origin
	}
	cls, ok := t.(*semantics.Class)
	if !ok || cls.Is(semantics.ClassStatic) || cls.Is(semantics.ClassAbstract) {
		return nil, false
	}
	return cls, true
}

func (v *Verifier) verifyNewExpression(expr *tree.NewExpr) (semantics.Thingy, error) {
	base, err := v.VerifyExpression(expr.Base, Context{})
	if err != nil {
		return nil, err
	}
	if base == nil {
		return nil, v.verifyAll(expr.Arguments)
	}
	loc := expr.Base.Loc()

	if t, ok := asType(base); ok {
		cls, ok := instantiable(t)
		if !ok {
			v.addError(loc, diagnostics.UnexpectedNewBase)
			if err := v.verifyAll(expr.Arguments); err != nil {
				return nil, err
			}
			return v.factory.CreateValue(v.host.AnyType()), nil
		}

		// Constructors are not inherited.
		if ctor := cls.Constructor; ctor != nil {
			if ctor.Signature == nil {
				return v.deferAt(loc, "constructor signature")
			}
			sig := ctor.Signature
			if tas, ok := t.(*semantics.TypeAfterSubstitution); ok {
				sig = v.factory.Substitute(sig, cls.TypeParams, tas.Arguments).(*semantics.FunctionType)
			}
			if err := v.verifyArguments(loc, expr.Arguments, sig); err != nil {
				return nil, err
			}
		} else {
			if len(expr.Arguments) > 0 {
				v.addError(loc, diagnostics.IncorrectNumArgumentsNoMoreThan, "0")
			}
			if err := v.verifyAll(expr.Arguments); err != nil {
				return nil, err
			}
		}
		return v.factory.CreateValue(t), nil
	}

	st := withoutNonNullable(v.staticType(base))
	ok, err := v.isOneOf(st, v.host.AnyType(), v.host.ClassType())
	if err != nil {
		return nil, err
	}
	if !ok {
		v.addError(loc, diagnostics.UnexpectedNewBase)
	}
	if err := v.verifyAll(expr.Arguments); err != nil {
		return nil, err
	}
	return v.factory.CreateValue(v.host.AnyType()), nil
}

// ========================

func (v *Verifier) verifySuperExpression(expr *tree.SuperExpr) (semantics.Thingy, error) {
	fail := func(kind diagnostics.Kind) (semantics.Thingy, error) {
		if err := v.verifyAll(expr.Object); err != nil {
			return nil, err
		}
		v.addError(expr.Loc(), kind)
		return nil, nil
	}

	activation := v.scope.Activation()
	if activation == nil || activation.This == nil {
		return fail(diagnostics.SuperOutsideInstanceMethod)
	}

	this := withoutNonNullable(activation.This.StaticType())
	if tas, ok := this.(*semantics.TypeAfterSubstitution); ok {
		this = tas.Origin
	}
	if semantics.IsUnresolved(this) {
		return v.deferAt(expr.Loc(), "this type")
	}
	cls, ok := this.(*semantics.Class)
	if !ok {
		if _, ok := this.(*semantics.Interface); ok {
			return fail(diagnostics.SuperOutsideInstanceMethod)
		}
		return fail(diagnostics.SuperWithoutSuperclass)
	}
	limit := cls.Extends
	if limit == nil {
		return fail(diagnostics.SuperWithoutSuperclass)
	}
	if semantics.IsUnresolved(limit) {
		return v.deferAt(expr.Loc(), "superclass")
	}

	if n := len(expr.Object); n > 0 {
		if err := v.verifyAll(expr.Object[:n-1]); err != nil {
			return nil, err
		}
		if _, err := v.ImplicitCoerceExpression(expr.Object[n-1], limit); err != nil {
			return nil, err
		}
	}
	return v.factory.CreateValue(limit), nil
}

// ========================

func (v *Verifier) verifyApplyTypesExpression(expr *tree.ApplyTypesExpr) (semantics.Thingy, error) {
	loc := expr.Base.Loc()
	verifyArgs := func() error {
		for _, arg := range expr.Arguments {
			if _, err := v.VerifyTypeExpression(arg); err != nil {
				return err
			}
		}
		return nil
	}

	base, err := v.VerifyExpression(expr.Base, Context{FollowedByTypeArguments: true})
	if err != nil {
		return nil, err
	}
	if base == nil {
		return nil, verifyArgs()
	}

	t, ok := asType(base)
	if !ok {
		if err := verifyArgs(); err != nil {
			return nil, err
		}
		v.addError(loc, diagnostics.EntityIsNotAType, base)
		return nil, nil
	}

	params := semantics.TypeParams(t)
	if len(params) == 0 {
		if err := verifyArgs(); err != nil {
			return nil, err
		}
		v.addError(loc, diagnostics.NonParameterizedType, t)
		return nil, nil
	}

	args := make([]semantics.Type, 0, len(expr.Arguments))
	valid := true
	for _, arg := range expr.Arguments {
		at, err := v.VerifyTypeExpression(arg)
		if err != nil {
			return nil, err
		}
		if at == nil {
			at = v.host.InvalidationThingy()
			valid = false
		}
		args = append(args, at)
	}

	switch {
	case len(args) < len(params):
		v.addError(loc, diagnostics.IncorrectNumArguments, strconv.Itoa(len(params)))
		return nil, nil
	case len(args) > len(params):
		v.addError(loc, diagnostics.IncorrectNumArgumentsNoMoreThan, strconv.Itoa(len(params)))
		return nil, nil
	case !valid:
		return nil, nil
	}

	return v.factory.CreateTypeAsReference(v.factory.CreateTypeAfterSubstitution(t, args)), nil
}
