package check

import (
	"testing"

	"github.com/fxrazen/fxsema/diagnostics"
	"github.com/fxrazen/fxsema/numeric"
	"github.com/fxrazen/fxsema/parse"
	"github.com/fxrazen/fxsema/semantics"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

type testEnv struct {
	t    *testing.T
	host *semantics.Host
	f    *semantics.Factory
	list *diagnostics.List
	v    *Verifier
}

func newTestVerifier(t *testing.T) *testEnv {
	return newTestVerifierWithOptions(t, semantics.Options{})
}

func newTestVerifierWithOptions(t *testing.T, opts semantics.Options) *testEnv {
	opts.Logger = zaptest.NewLogger(t)
	host := semantics.NewHost(opts)
	DeclareBuiltins(host)
	list := diagnostics.NewList()
	scope := host.Factory().CreatePackageScope(host.TopLevelPackage(), nil)
	return &testEnv{
		t:    t,
		host: host,
		f:    host.Factory(),
		list: list,
		v:    NewVerifier(host, list, scope),
	}
}

func (e *testEnv) verify(src string, ctx Context) (semantics.Thingy, error) {
	e.t.Helper()
	return e.v.VerifyExpression(parse.MustParseExpression(src), ctx)
}

// value verifies src and requires a value outcome.
func (e *testEnv) value(src string, ctx Context) semantics.Value {
	e.t.Helper()
	result, err := e.verify(src, ctx)
	require.Equal(e.t, OutcomeValue, Outcome(result, err), "%s: %v", src, e.list.Items())
	value, ok := result.(semantics.Value)
	require.True(e.t, ok, "%s verified to %T", src, result)
	return value
}

// diagnosed verifies src, requires a diagnosed outcome and returns the
// first error reported.
func (e *testEnv) diagnosed(src string, ctx Context) *diagnostics.Diagnostic {
	e.t.Helper()
	result, err := e.verify(src, ctx)
	require.Equal(e.t, OutcomeDiagnosed, Outcome(result, err), "%s: %v", src, e.list.Items())
	for _, d := range e.list.Items() {
		if !d.Warning {
			return d
		}
	}
	e.t.Fatalf("%s: no error reported", src)
	return nil
}

func (e *testEnv) declareVar(name string, t semantics.Type) *semantics.VariableSlot {
	top := e.host.TopLevelPackage()
	slot := e.f.CreateVariableSlot(e.f.CreateQName(top.PublicNs, name), t, false)
	top.Properties.Set(slot.Name, slot)
	return slot
}

func (e *testEnv) declareClass(name string, flags semantics.ClassFlags) *semantics.Class {
	top := e.host.TopLevelPackage()
	c := e.f.CreateClass(e.f.CreateQName(top.PublicNs, name), flags)
	c.Extends = e.host.ObjectType()
	top.Properties.Set(c.Name, c)
	return c
}

func ctxOf(t semantics.Type) Context {
	return Context{ExpectedType: t}
}

// ========================

func TestOutcome(t *testing.T) {
	h := semantics.NewHost(semantics.Options{})
	assert.Equal(t, OutcomeValue, Outcome(h.AnyType(), nil))
	assert.Equal(t, OutcomeDiagnosed, Outcome(nil, nil))
	assert.Equal(t, OutcomeDefer, Outcome(nil, semantics.ErrDefer))
	assert.Equal(t, "defer", OutcomeDefer.String())
	assert.Panics(t, func() { Outcome(nil, assert.AnError) })
}

func TestNumericLiteralContextualType(t *testing.T) {
	e := newTestVerifier(t)

	v := e.value("42", Context{})
	c := v.(*semantics.NumberConstant)
	assert.Equal(t, numeric.Number(42), c.Value)
	assert.Same(t, e.host.NumberType(), c.Type)

	c = e.value("42", ctxOf(e.host.IntType())).(*semantics.NumberConstant)
	assert.Equal(t, numeric.Int(42), c.Value)
	assert.Same(t, e.host.IntType(), c.Type)

	// a non-numeric context falls back to Number
	c = e.value("42", ctxOf(e.host.StringType())).(*semantics.NumberConstant)
	assert.Equal(t, numeric.KindNumber, c.Value.Kind())

	c = e.value("-2147483648", ctxOf(e.host.IntType())).(*semantics.NumberConstant)
	assert.Equal(t, numeric.Int(-2147483648), c.Value)

	c = e.value("-(5)", Context{}).(*semantics.NumberConstant)
	assert.Equal(t, numeric.Number(-5), c.Value)

	c = e.value("0xFF", ctxOf(e.host.UintType())).(*semantics.NumberConstant)
	assert.Equal(t, numeric.Uint(255), c.Value)

	assert.Equal(t, 0, e.list.Len())
}

func TestNumericLiteralOutOfRange(t *testing.T) {
	e := newTestVerifier(t)

	d := e.diagnosed("2147483648", ctxOf(e.host.IntType()))
	assert.Equal(t, diagnostics.CouldNotParseNumber, d.Kind)

	e = newTestVerifier(t)
	d = e.diagnosed("-1", ctxOf(e.host.UintType()))
	assert.Equal(t, diagnostics.CouldNotParseNumber, d.Kind)
}

func TestNullLiteral(t *testing.T) {
	e := newTestVerifier(t)

	c := e.value("null", ctxOf(e.host.StringType())).(*semantics.NullConstant)
	assert.Same(t, e.host.StringType(), c.Type)

	c = e.value("null", Context{}).(*semantics.NullConstant)
	assert.Same(t, e.host.AnyType(), c.Type)

	d := e.diagnosed("null", ctxOf(e.host.IntType()))
	assert.Equal(t, diagnostics.NullNotExpectedHere, d.Kind)
}

func TestStringLiteralEnumMember(t *testing.T) {
	e := newTestVerifier(t)
	top := e.host.TopLevelPackage()
	color := e.f.CreateEnum(e.f.CreateQName(top.PublicNs, "Color"))
	red := e.f.AddEnumMember(color, "RED", numeric.Int(0))

	assert.Same(t, red, e.value("'RED'", ctxOf(color)))

	d := e.diagnosed("'PURPLE'", ctxOf(color))
	assert.Equal(t, diagnostics.NoMatchingEnumMember, d.Kind)
	assert.Equal(t, "PURPLE is not a member of Color.", d.Message())
}

func TestThisLiteral(t *testing.T) {
	e := newTestVerifier(t)
	d := e.diagnosed("this", Context{})
	assert.Equal(t, diagnostics.UnexpectedThis, d.Kind)

	foo := e.declareClass("Foo", 0)
	this := e.f.CreateValue(foo)
	e.v.EnterScope(e.f.CreateActivation(this, nil, e.v.Scope()))
	assert.Same(t, this, e.value("this", Context{}))
	e.v.ExitScope()
}

func TestArrayLiteralTupleContext(t *testing.T) {
	e := newTestVerifier(t)
	tuple := e.f.CreateTupleType([]semantics.Type{e.host.IntType(), e.host.StringType()})

	v := e.value("[1, 'a']", ctxOf(tuple))
	assert.Same(t, tuple, v.StaticType())

	v = e.value("[1, 2]", Context{})
	assert.Same(t, e.host.ArrayType(), v.StaticType())
}

// ========================

func TestAmbiguousReferenceReportedOnce(t *testing.T) {
	e := newTestVerifier(t)
	scope := e.v.Scope()
	one := e.f.CreateUserNamespace("one")
	two := e.f.CreateUserNamespace("two")
	scope.OpenNamespace(one)
	scope.OpenNamespace(two)
	for _, ns := range []*semantics.Namespace{one, two} {
		name := e.f.CreateQName(ns, "x")
		scope.Properties.Set(name, e.f.CreateVariableSlot(name, e.host.AnyType(), false))
	}

	d := e.diagnosed("x", Context{})
	assert.Equal(t, diagnostics.AmbiguousReference, d.Kind)
	assert.Equal(t, []string{"x"}, d.Args)

	// a second pass over the same source reports nothing new
	e.diagnosed("x", Context{})
	assert.Equal(t, 1, e.list.Len())
}

func TestUndefinedNameDefersWhileIncomplete(t *testing.T) {
	e := newTestVerifier(t)
	e.v.Incomplete = true

	result, err := e.verify("later", Context{})
	assert.Equal(t, OutcomeDefer, Outcome(result, err))
	assert.Equal(t, 0, e.list.Len())

	slot := e.declareVar("later", e.host.IntType())
	ref := e.value("later", Context{}).(*semantics.FixtureReference)
	assert.Same(t, slot, ref.Property)
	assert.Same(t, e.host.IntType(), ref.StaticType())
	assert.Equal(t, 0, e.list.Len())
}

func TestUndefinedNameReportedOnFinalPass(t *testing.T) {
	e := newTestVerifier(t)

	d := e.diagnosed("missing", Context{})
	assert.Equal(t, diagnostics.UndefinedProperty, d.Kind)
	e.diagnosed("missing", Context{})
	assert.Equal(t, 1, e.list.Len())
}

func TestUnresolvedSlotTypeDefers(t *testing.T) {
	e := newTestVerifier(t)
	slot := e.declareVar("pending", e.host.UnresolvedThingy())

	result, err := e.verify("pending", Context{})
	assert.Equal(t, OutcomeDefer, Outcome(result, err))

	slot.Type = e.host.StringType()
	v := e.value("pending", Context{})
	assert.Same(t, e.host.StringType(), v.StaticType())
}

func TestReadOnlyWrite(t *testing.T) {
	e := newTestVerifier(t)
	top := e.host.TopLevelPackage()
	k := e.f.CreateVariableSlot(e.f.CreateQName(top.PublicNs, "K"), e.host.IntType(), true)
	k.Constant = e.f.CreateNumberConstant(numeric.Int(7), e.host.IntType())
	top.Properties.Set(k.Name, k)

	assert.Same(t, k.Constant, e.value("K", Context{}))

	d := e.diagnosed("K", Context{Mode: ModeWrite})
	assert.Equal(t, diagnostics.EntityIsReadOnly, d.Kind)

	e = newTestVerifier(t)
	d = e.diagnosed("'abc'.length", Context{Mode: ModeWrite})
	assert.Equal(t, diagnostics.EntityIsReadOnly, d.Kind)
}

// ========================

func TestInlineConstants(t *testing.T) {
	e := newTestVerifierWithOptions(t, semantics.Options{
		ConfigConstants: map[string]string{
			"CONFIG::DEBUG":  " true ",
			"CONFIG::LEVEL":  "3",
			"CONFIG::BROKEN": "1 +",
			"CONFIG::RANDOM": "Math.random()",
		},
	})

	b := e.value("CONFIG::DEBUG", Context{}).(*semantics.BooleanConstant)
	assert.True(t, b.Value)

	n := e.value("CONFIG::LEVEL", ctxOf(e.host.IntType())).(*semantics.NumberConstant)
	assert.Equal(t, numeric.Int(3), n.Value)
	_, ok := e.host.InlineConstant("CONFIG::LEVEL")
	assert.True(t, ok)

	d := e.diagnosed("CONFIG::BROKEN", Context{})
	assert.Equal(t, diagnostics.CouldNotExpandInlineConstant, d.Kind)
	memo, ok := e.host.InlineConstant("CONFIG::BROKEN")
	assert.True(t, ok)
	assert.Nil(t, memo)

	e = newTestVerifierWithOptions(t, semantics.Options{
		ConfigConstants: map[string]string{"CONFIG::RANDOM": "Math.random()"},
	})
	d = e.diagnosed("CONFIG::RANDOM", Context{})
	assert.Equal(t, diagnostics.CouldNotExpandInlineConstant, d.Kind)
}

func TestImportMetaEnv(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, writeFile(dir, ".env", "API_KEY=secret\n"))
	e := newTestVerifierWithOptions(t, semantics.Options{ProjectPath: dir})

	c := e.value("import.meta.env.API_KEY", Context{}).(*semantics.StringConstant)
	assert.Equal(t, "secret", c.Value)
	assert.Same(t, e.host.StringType(), c.Type)

	d := e.diagnosed("import.meta.env.NOPE", Context{})
	assert.Equal(t, diagnostics.UndefinedProperty, d.Kind)

	v := e.value("import.meta", Context{})
	assert.Same(t, e.host.AnyType(), v.StaticType())
}
