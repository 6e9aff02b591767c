package check

import (
	"testing"

	"github.com/fxrazen/fxsema/diagnostics"
	"github.com/fxrazen/fxsema/parse"
	"github.com/fxrazen/fxsema/semantics"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func (e *testEnv) verifyType(src string) (semantics.Type, error) {
	e.t.Helper()
	expr, err := parse.ParseTypeExpression("<test>", src)
	require.NoError(e.t, err)
	return e.v.VerifyTypeExpression(expr)
}

func (e *testEnv) mustType(src string) semantics.Type {
	e.t.Helper()
	t, err := e.verifyType(src)
	require.NoError(e.t, err)
	require.NotNil(e.t, t, "%s: %v", src, e.list.Items())
	return t
}

func TestTypeExpressions(t *testing.T) {
	e := newTestVerifier(t)

	assert.Same(t, e.host.AnyType(), e.mustType("*"))
	assert.Same(t, e.host.VoidType(), e.mustType("void"))
	assert.Same(t, e.host.IntType(), e.mustType("(int)"))

	nullable := e.mustType("?String").(*semantics.NullableType)
	assert.Same(t, e.host.StringType(), nullable.Of)
	assert.Same(t, nullable, e.mustType("String?"))

	nn := e.mustType("Object!").(*semantics.NonNullableType)
	assert.Same(t, e.host.ObjectType(), nn.Of)

	tuple := e.mustType("[int, *]").(*semantics.TupleType)
	assert.Equal(t, []semantics.Type{e.host.IntType(), e.host.AnyType()}, tuple.Elements)

	fn := e.mustType("function(int, Number=, ...Array): Boolean").(*semantics.FunctionType)
	assert.Equal(t, 1, fn.MinArgs())
	assert.Equal(t, -1, fn.MaxArgs())
	assert.Same(t, e.host.BooleanType(), fn.Result)
	assert.Same(t, fn, e.mustType("function(int, Number=, ...Array): Boolean"))

	untyped := e.mustType("function(int)").(*semantics.FunctionType)
	assert.Same(t, e.host.AnyType(), untyped.Result)

	vec := e.mustType("Vector.<String>").(*semantics.TypeAfterSubstitution)
	assert.Same(t, e.host.VectorType(), vec.Origin)

	assert.Equal(t, 0, e.list.Len())
}

func TestTypeExpressionErrors(t *testing.T) {
	e := newTestVerifier(t)

	typ, err := e.verifyType("Math.PI")
	require.NoError(t, err)
	assert.Nil(t, typ)
	require.Equal(t, 1, e.list.Len())
	assert.Equal(t, diagnostics.EntityIsNotAType, e.list.Items()[0].Kind)

	e = newTestVerifier(t)
	typ, err = e.verifyType("[int, Nope]")
	require.NoError(t, err)
	assert.Nil(t, typ)
	assert.Equal(t, diagnostics.UndefinedProperty, e.list.Items()[0].Kind)
}

func TestTypeExpressionDefers(t *testing.T) {
	e := newTestVerifier(t)
	e.v.Incomplete = true

	_, err := e.verifyType("?Later")
	assert.ErrorIs(t, err, semantics.ErrDefer)

	e.declareClass("Later", 0)
	nullable := e.mustType("?Later").(*semantics.NullableType)
	assert.Equal(t, "Later", nullable.Of.(*semantics.Class).Name.Name)
}
