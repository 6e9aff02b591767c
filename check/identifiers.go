package check

import (
	"strings"

	"github.com/fxrazen/fxsema/diagnostics"
	"github.com/fxrazen/fxsema/parse"
	"github.com/fxrazen/fxsema/semantics"
	"github.com/fxrazen/fxsema/source"
	"github.com/fxrazen/fxsema/tree"
	"go.uber.org/zap"
)

// propertyKey is a verified qualified identifier. Exactly one of name and
// key is meaningful: key is set for bracketed names that are not string
// constants.
type propertyKey struct {
	qualifier *semantics.Namespace
	// dynamicQualifier is set when the qualifier is a namespace value that
	// is not known at compile time.
	dynamicQualifier bool
	name             string
	key              semantics.Value
}

func (k propertyKey) isDynamic() bool {
	return k.dynamicQualifier || k.key != nil
}

// verifyQualifiedIdentifier verifies the qualifier and the bracketed key of
// an identifier. ok is false when either has been diagnosed.
func (v *Verifier) verifyQualifiedIdentifier(id *tree.QualifiedIdentifier) (key propertyKey, ok bool, err error) {
	ok = true

	if id.Qualifier != nil {
		q, err := v.ImplicitCoerceExpression(id.Qualifier, v.host.NamespaceType())
		if err != nil {
			return key, false, err
		}
		switch q := q.(type) {
		case nil:
			ok = false
		case *semantics.NamespaceConstant:
			key.qualifier = q.Namespace
		default:
			key.dynamicQualifier = true
		}
	}

	if id.Brackets != nil {
		k, err := v.ImplicitCoerceExpression(id.Brackets, v.host.StringType())
		if err != nil {
			return key, false, err
		}
		switch k := k.(type) {
		case nil:
			ok = false
		case *semantics.StringConstant:
			key.name = k.Value
		default:
			key.key = k
		}
	} else {
		key.name = id.Name
	}

	return key, ok, nil
}

func (v *Verifier) verifyQualifiedIdentifierAsExpression(id *tree.QualifiedIdentifier, ctx Context) (semantics.Thingy, error) {
	if name, src, ok := v.filterInlineConstant(id); ok {
		return v.verifyInlineConstant(id.Loc(), name, src, ctx)
	}

	key, ok, err := v.verifyQualifiedIdentifier(id)
	if !ok || err != nil {
		return nil, err
	}

	if id.Attribute || key.isDynamic() {
		return v.factory.CreateDynamicScopeReference(v.scope, key.qualifier, key.name, key.key), nil
	}

	r, err := v.lookup.LookupInScopeChain(v.scope, key.qualifier, key.name)
	if err != nil {
		return v.handleLookupError(err, id.Loc())
	}
	if r == nil {
		if v.Incomplete {
			return v.deferAt(id.Loc(), "undefined "+key.name)
		}
		v.addError(id.Loc(), diagnostics.UndefinedProperty, key.name)
		return nil, nil
	}

	v.detectLocalCapture(r)
	return v.referencePostProcessing(r, id.Loc(), ctx)
}

// filterInlineConstant detects `NS::NAME` when the host carries a
// configuration constant of that name.
func (v *Verifier) filterInlineConstant(id *tree.QualifiedIdentifier) (key, src string, ok bool) {
	if id.Attribute || id.Brackets != nil {
		return "", "", false
	}
	q, ok := id.Qualifier.(*tree.QualifiedIdentifier)
	if !ok {
		return "", "", false
	}
	ns, ok := q.IdentifierName()
	if !ok {
		return "", "", false
	}
	src, ok = v.host.ConfigConstant(ns, id.Name)
	if !ok {
		return "", "", false
	}
	return ns + "::" + id.Name, src, true
}

// verifyInlineConstant expands a configuration constant. The snippet is
// parsed once per host and must reduce to a compile-time constant.
func (v *Verifier) verifyInlineConstant(loc source.Location, key, src string, ctx Context) (semantics.Thingy, error) {
	src = strings.TrimSpace(src)

	if src == "true" || src == "false" {
		t, err := v.require(v.host.BooleanType())
		if err != nil {
			return nil, err
		}
		return v.factory.CreateBooleanConstant(src == "true", t), nil
	}

	expr, ok := v.host.InlineConstant(key)
	if !ok {
		parsed, err := parse.ParseExpression(key, src)
		if err != nil {
			v.log.Debug("inline constant does not parse", zap.String("key", key), zap.Error(err))
			parsed = nil
		}
		v.host.SetInlineConstant(key, parsed)
		expr = parsed
	}
	if expr == nil {
		v.addError(loc, diagnostics.CouldNotExpandInlineConstant)
		return nil, nil
	}

	// The snippet is its own expression; a sign in front of the constant
	// applies to its value.
	result, err := v.VerifyExpression(expr, Context{ExpectedType: ctx.ExpectedType})
	if err != nil || result == nil {
		return nil, err
	}
	if !semantics.IsConstant(result) {
		v.addError(loc, diagnostics.CouldNotExpandInlineConstant)
		return nil, nil
	}
	return result, nil
}
