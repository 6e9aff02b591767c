package check

import (
	"math"
	"testing"

	"github.com/fxrazen/fxsema/numeric"
	"github.com/fxrazen/fxsema/semantics"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDeclareBuiltins(t *testing.T) {
	e := newTestVerifier(t)
	h := e.host

	for _, typ := range []semantics.Type{
		h.ObjectType(), h.BooleanType(), h.NumberType(), h.IntType(), h.UintType(), h.FloatType(),
		h.StringType(), h.ArrayType(), h.ClassType(), h.FunctionType(), h.NamespaceType(),
		h.RegExpType(), h.XMLType(), h.XMLListType(), h.PromiseType(), h.VectorType(),
	} {
		require.IsType(t, &semantics.Class{}, typ)
		assert.False(t, semantics.IsUnresolved(typ), "%v", typ)
	}

	assert.Nil(t, h.ObjectType().(*semantics.Class).Extends)
	assert.Same(t, h.ObjectType(), h.StringType().(*semantics.Class).Extends)
	assert.Len(t, semantics.TypeParams(h.VectorType()), 1)
	assert.Len(t, semantics.TypeParams(h.PromiseType()), 1)
	assert.True(t, h.IntType().(*semantics.Class).Is(semantics.ClassFinal))
}

func TestBuiltinConstants(t *testing.T) {
	e := newTestVerifier(t)

	c := e.value("int.MAX_VALUE", Context{}).(*semantics.NumberConstant)
	assert.Equal(t, numeric.Int(math.MaxInt32), c.Value)
	assert.Same(t, e.host.IntType(), c.Type)

	c = e.value("uint.MAX_VALUE", Context{}).(*semantics.NumberConstant)
	assert.Equal(t, numeric.Uint(math.MaxUint32), c.Value)

	c = e.value("Number.MAX_VALUE", Context{}).(*semantics.NumberConstant)
	assert.Equal(t, numeric.Number(math.MaxFloat64), c.Value)

	c = e.value("Infinity", Context{}).(*semantics.NumberConstant)
	inf, _ := c.Value.AsDouble()
	assert.True(t, math.IsInf(inf, 1))

	_, ok := e.value("undefined", Context{}).(*semantics.UndefinedConstant)
	assert.True(t, ok)
}

func TestBuiltinPromiseThen(t *testing.T) {
	e := newTestVerifier(t)
	e.declareVar("p", e.f.CreateTypeAfterSubstitution(e.host.PromiseType(), []semantics.Type{e.host.IntType()}))

	v := e.value("p.then(function(x: int): void {})", Context{})
	tas := v.StaticType().(*semantics.TypeAfterSubstitution)
	assert.Same(t, e.host.PromiseType(), tas.Origin)
	assert.Same(t, e.host.AnyType(), tas.Arguments[0])
	assert.Equal(t, 0, e.list.Len())
}
