package semantics

import (
	"testing"

	"github.com/fxrazen/fxsema/numeric"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

func newTestHost(t *testing.T) *Host {
	return NewHost(Options{Logger: zaptest.NewLogger(t)})
}

func declareClass(h *Host, name string, flags ClassFlags) *Class {
	f := h.Factory()
	top := h.TopLevelPackage()
	c := f.CreateClass(f.CreateQName(top.PublicNs, name), flags)
	top.Properties.Set(c.Name, c)
	return c
}

func TestCreateQName(t *testing.T) {
	h := newTestHost(t)
	f := h.Factory()
	ns := f.CreateUserNamespace("http://example.com")
	other := f.CreateUserNamespace("http://example.org")

	x := f.CreateQName(ns, "x")
	assert.Same(t, x, f.CreateQName(ns, "x"))
	assert.NotSame(t, x, f.CreateQName(ns, "y"))
	assert.NotSame(t, x, f.CreateQName(other, "x"))
}

func TestNamespaceInterning(t *testing.T) {
	h := newTestHost(t)
	f := h.Factory()
	pkg := f.CreatePackage("a")

	assert.Same(t, pkg.PublicNs, f.CreatePublicNamespace(pkg))
	assert.NotSame(t, pkg.PublicNs, pkg.InternalNs)
	assert.NotSame(t, f.CreatePublicNamespace(pkg), f.CreatePublicNamespace(nil))

	assert.Same(t, f.CreateExplicitNamespace("u"), f.CreateExplicitNamespace("u"))
	assert.Same(t, f.CreateUserNamespace("u"), f.CreateUserNamespace("u"))
	assert.NotSame(t, f.CreateExplicitNamespace("u"), f.CreateUserNamespace("u"))

	assert.Panics(t, func() {
		f.CreateSystemNamespace(NamespaceUser, nil)
	})
}

func TestNamespaceSetInterning(t *testing.T) {
	h := newTestHost(t)
	f := h.Factory()
	a := f.CreateUserNamespace("a")
	b := f.CreateUserNamespace("b")

	set := f.CreateNamespaceSet([]*Namespace{a, b})
	assert.Same(t, set, f.CreateNamespaceSet([]*Namespace{a, b}))
	assert.Same(t, set, f.CreateNamespaceSet([]*Namespace{a, b, a}))
	assert.NotSame(t, set, f.CreateNamespaceSet([]*Namespace{b, a}))
	assert.True(t, set.Contains(b))
	assert.Equal(t, "{a, b}", set.String())
}

func TestCreatePackage(t *testing.T) {
	h := newTestHost(t)
	f := h.Factory()

	pkg := f.CreatePackage("com", "example", "util")
	assert.Same(t, pkg, f.CreatePackage("com", "example", "util"))
	assert.Equal(t, "com.example.util", pkg.FullyQualifiedName())
	assert.Same(t, h.TopLevelPackage(), f.CreatePackage())
	assert.Equal(t, "", h.TopLevelPackage().FullyQualifiedName())

	parent := f.CreatePackage("com", "example")
	assert.Same(t, parent, pkg.Parent)
	assert.NotNil(t, pkg.PublicNs)
	assert.NotNil(t, pkg.InternalNs)
	assert.Equal(t, NamespacePublic, pkg.PublicNs.Kind)
	assert.Same(t, pkg, pkg.PublicNs.Owner)
}

func TestNullableInterning(t *testing.T) {
	h := newTestHost(t)
	f := h.Factory()
	c := declareClass(h, "C", 0)

	nullable := f.CreateNullableType(c)
	assert.Same(t, nullable, f.CreateNullableType(c))
	assert.Equal(t, Type(h.AnyType()), f.CreateNullableType(h.AnyType()))

	nonNullable := f.CreateNonNullableType(c)
	assert.Same(t, nonNullable, f.CreateNonNullableType(c))
	assert.Equal(t, Type(h.AnyType()), f.CreateNonNullableType(h.AnyType()))
	assert.Equal(t, "C!", nonNullable.String())
}

func TestTypeAfterSubstitution(t *testing.T) {
	h := newTestHost(t)
	f := h.Factory()
	top := h.TopLevelPackage()

	pair := declareClass(h, "Pair", 0)
	pair.TypeParams = []*TypeParameter{
		f.CreateTypeParameter(f.CreateQName(top.InternalNs, "K")),
		f.CreateTypeParameter(f.CreateQName(top.InternalNs, "V")),
	}
	a := declareClass(h, "A", 0)
	b := declareClass(h, "B", 0)

	ab := f.CreateTypeAfterSubstitution(pair, []Type{a, b})
	assert.Same(t, ab, f.CreateTypeAfterSubstitution(pair, []Type{a, b}))
	assert.NotSame(t, ab, f.CreateTypeAfterSubstitution(pair, []Type{b, a}))
	assert.Equal(t, "Pair.<A, B>", ab.String())

	for _, args := range [][]Type{{a}, {a, b, a}} {
		assert.Panics(t, func() {
			f.CreateTypeAfterSubstitution(pair, args)
		})
	}
	assert.Panics(t, func() {
		f.CreateTypeAfterSubstitution(a, nil)
	})
}

func TestTupleAndFunctionInterning(t *testing.T) {
	h := newTestHost(t)
	f := h.Factory()
	a := declareClass(h, "A", 0)
	b := declareClass(h, "B", 0)

	tuple := f.CreateTupleType([]Type{a, b})
	assert.Same(t, tuple, f.CreateTupleType([]Type{a, b}))
	assert.NotSame(t, tuple, f.CreateTupleType([]Type{b, a}))

	params := []FunctionParam{{Kind: ParamRequired, Type: a}, {Kind: ParamOptional, Type: b}}
	fn := f.CreateFunctionType(params, a)
	assert.Same(t, fn, f.CreateFunctionType(params, a))
	assert.NotSame(t, fn, f.CreateFunctionType(params, b))
	assert.NotSame(t, fn, f.CreateFunctionType([]FunctionParam{{Kind: ParamRequired, Type: a}, {Kind: ParamRequired, Type: b}}, a))
	assert.Equal(t, 1, fn.MinArgs())
	assert.Equal(t, 2, fn.MaxArgs())
	assert.Equal(t, "function(A, B=):A", fn.String())
}

func TestArenaIDs(t *testing.T) {
	h := newTestHost(t)
	c := declareClass(h, "C", 0)

	require.NotZero(t, c.ID())
	assert.Same(t, c, h.Arena().Get(c.ID()))
	assert.Nil(t, h.Arena().Get(0))
	assert.Nil(t, h.Arena().Get(h.Arena().Len()+1))
}

func TestWellKnownTypes(t *testing.T) {
	h := newTestHost(t)

	assert.Equal(t, Type(h.UnresolvedThingy()), h.NumberType())

	number := declareClass(h, "Number", ClassFinal)
	assert.Equal(t, Type(number), h.NumberType())

	kind, ok := h.NumericKind(number)
	assert.True(t, ok)
	assert.Equal(t, numeric.KindNumber, kind)
	assert.Equal(t, Type(number), h.NumericType(numeric.KindNumber))

	_, ok = h.NumericKind(h.AnyType())
	assert.False(t, ok)
}

func TestEnumMembers(t *testing.T) {
	h := newTestHost(t)
	f := h.Factory()
	top := h.TopLevelPackage()
	e := f.CreateEnum(f.CreateQName(top.PublicNs, "Color"))
	red := f.AddEnumMember(e, "RED", numeric.Int(0))

	assert.Same(t, red, e.Member("RED"))
	assert.Nil(t, e.Member("BLUE"))
	assert.Equal(t, "Color.RED", red.String())
	assert.Equal(t, Type(e), red.StaticType())
}
