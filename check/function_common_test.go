package check

import (
	"testing"

	"github.com/fxrazen/fxsema/diagnostics"
	"github.com/fxrazen/fxsema/parse"
	"github.com/fxrazen/fxsema/semantics"
	"github.com/fxrazen/fxsema/tree"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFunctionExpressionSignature(t *testing.T) {
	e := newTestVerifier(t)

	v := e.value("function(a: int, b: Number = 1, ...rest): String { return 'x' }", Context{})
	sig := v.StaticType().(*semantics.FunctionType)
	assert.Equal(t, 1, sig.MinArgs())
	assert.Equal(t, -1, sig.MaxArgs())
	require.Len(t, sig.Params, 3)
	assert.Same(t, e.host.IntType(), sig.Params[0].Type)
	assert.Equal(t, semantics.ParamOptional, sig.Params[1].Kind)
	assert.Same(t, e.host.ArrayType(), sig.Params[2].Type)
	assert.Same(t, e.host.StringType(), sig.Result)

	// structurally equal signatures are interned
	other := e.value("function(x: int, y: Number = 2, ...more): String {}", Context{})
	assert.Same(t, sig, other.StaticType())
	assert.Equal(t, 0, e.list.Len())
}

func TestFunctionExpressionDefaults(t *testing.T) {
	e := newTestVerifier(t)

	sig := e.value("function(a) { return a }", Context{}).StaticType().(*semantics.FunctionType)
	assert.Same(t, e.host.AnyType(), sig.Params[0].Type)
	assert.Same(t, e.host.AnyType(), sig.Result)

	e.value("function(a: int = 'no'): void {}", Context{})
	require.Equal(t, 1, e.list.Len())
	assert.Equal(t, diagnostics.ImplicitCoercionToUnrelatedType, e.list.Items()[0].Kind)
}

func TestFunctionBodyCoercedToResult(t *testing.T) {
	e := newTestVerifier(t)
	e.value("function(): int { return 'text' }", Context{})
	require.Equal(t, 1, e.list.Len())
	assert.Equal(t, diagnostics.ImplicitCoercionToUnrelatedType, e.list.Items()[0].Kind)

	e = newTestVerifier(t)
	e.value("function(): void { return 'text' }", Context{})
	assert.Equal(t, 0, e.list.Len())
}

func TestFunctionResumesAfterDefer(t *testing.T) {
	e := newTestVerifier(t)
	e.v.Incomplete = true
	fn := parse.MustParseExpression("function(a: int): Later { return a }").(*tree.FunctionExpr)

	result, err := e.v.VerifyExpression(fn, Context{})
	require.Equal(t, OutcomeDefer, Outcome(result, err))
	p := e.v.partials[fn]
	require.NotNil(t, p)
	require.Len(t, p.Params, 1)
	assert.Nil(t, p.Signature)

	later := e.declareClass("Later", 0)
	result, err = e.v.VerifyExpression(fn, Context{})
	require.Equal(t, OutcomeValue, Outcome(result, err))
	assert.Same(t, later, p.Signature.Result)
	assert.Same(t, p.Signature, p.Activation.Function)
	assert.Same(t, p, e.v.Partials(fn, nil))
	// int is not implicitly convertible to Later
	assert.Equal(t, 1, e.list.Len())
}

func TestLocalCapture(t *testing.T) {
	e := newTestVerifier(t)
	outer := parse.MustParseExpression("function(x: int): Function { return function(): int { return x } }").(*tree.FunctionExpr)

	_, err := e.v.VerifyExpression(outer, Context{})
	require.NoError(t, err)
	require.Equal(t, 0, e.list.Len())

	p := e.v.partials[outer]
	name := e.f.CreateQName(e.v.localNamespace(), "x")
	x := p.Activation.Properties.Get(name).(*semantics.VariableSlot)
	assert.Same(t, p.Activation, x.Activation)
	assert.True(t, p.Activation.Captured.Contains(x))
}

func TestLocalWithoutCapture(t *testing.T) {
	e := newTestVerifier(t)
	fn := parse.MustParseExpression("function(x: int): int { return x }").(*tree.FunctionExpr)

	_, err := e.v.VerifyExpression(fn, Context{})
	require.NoError(t, err)

	p := e.v.partials[fn]
	x := p.Activation.Properties.Get(e.f.CreateQName(e.v.localNamespace(), "x")).(*semantics.VariableSlot)
	assert.False(t, p.Activation.Captured.Contains(x))
}
