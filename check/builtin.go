package check

import (
	"fmt"
	"math"

	"github.com/davecgh/go-spew/spew"
	"github.com/fxrazen/fxsema/diagnostics"
	"github.com/fxrazen/fxsema/numeric"
	"github.com/fxrazen/fxsema/parse"
	"github.com/fxrazen/fxsema/semantics"
)

// DeclareBuiltins declares the global classes, functions and constants in
// the top level package of host. Member types are written as type
// expressions and verified like user annotations.
func DeclareBuiltins(host *semantics.Host) {
	b := newBuiltins(host)

	object := b.class("Object", semantics.ClassDynamic)
	object.Extends = nil

	boolean := b.class("Boolean", semantics.ClassFinal)
	number := b.class("Number", semantics.ClassFinal)
	intClass := b.class("int", semantics.ClassFinal)
	uintClass := b.class("uint", semantics.ClassFinal)
	float := b.class("float", semantics.ClassFinal)
	str := b.class("String", semantics.ClassFinal)
	array := b.class("Array", semantics.ClassDynamic)
	class := b.class("Class", semantics.ClassDynamic)
	function := b.class("Function", semantics.ClassDynamic)
	namespace := b.class("Namespace", semantics.ClassFinal)
	regexp := b.class("RegExp", semantics.ClassDynamic)
	xml := b.class("XML", semantics.ClassFinal|semantics.ClassDynamic)
	xmlList := b.class("XMLList", semantics.ClassFinal|semantics.ClassDynamic)
	promise := b.class("Promise", 0, "T")
	vector := b.class("Vector", semantics.ClassFinal|semantics.ClassDynamic, "T")
	mathClass := b.class("Math", semantics.ClassStatic|semantics.ClassFinal)

	for _, c := range []*semantics.Class{boolean, number, intClass, uintClass, float, str, array, class, function, namespace, regexp, xml, xmlList, promise, vector, mathClass} {
		c.Extends = object
	}

	// ========================
	// global functions and constants

	top := host.TopLevelPackage().Properties
	b.method(top, "trace", "function(...Array): void", false)
	b.method(top, "parseInt", "function(String, int=): Number", false)
	b.method(top, "parseFloat", "function(String): Number", false)
	b.method(top, "isNaN", "function(Number): Boolean", false)
	b.method(top, "isFinite", "function(Number): Boolean", false)
	b.method(top, "encodeURIComponent", "function(String): String", false)
	b.constant(top, "NaN", numeric.NaN(numeric.KindNumber), false)
	b.constant(top, "Infinity", numeric.Number(math.Inf(1)), false)
	undefined := b.f.CreateVariableSlot(b.qname("undefined"), host.AnyType(), true)
	undefined.Constant = b.f.CreateUndefinedConstant(host.AnyType())
	top.Set(undefined.Name, undefined)

	// ========================
	// classes

	b.method(object.Prototype, "toString", "function(): String", false)
	b.method(object.Prototype, "hasOwnProperty", "function(String): Boolean", false)

	for _, c := range []*semantics.Class{number, intClass, uintClass, float} {
		kind, _ := host.NumericKind(c)
		c.Constructor = b.f.CreateMethodSlot(c.Name, b.signature("function(*=): void"))
		b.method(c.Prototype, "toFixed", "function(uint=): String", false)
		if kind == numeric.KindInt || kind == numeric.KindUint {
			b.constant(c.Properties, "MAX_VALUE", numeric.MaximumValue(kind), true)
			b.constant(c.Properties, "MIN_VALUE", numeric.MinimumValue(kind), true)
		}
	}
	b.constant(number.Properties, "MAX_VALUE", numeric.Number(math.MaxFloat64), true)
	b.constant(number.Properties, "MIN_VALUE", numeric.Number(math.SmallestNonzeroFloat64), true)
	b.constant(number.Properties, "NaN", numeric.NaN(numeric.KindNumber), true)

	str.Constructor = b.f.CreateMethodSlot(str.Name, b.signature("function(*=): void"))
	b.accessor(str.Prototype, "length", "int", false)
	b.method(str.Prototype, "charAt", "function(int=): String", false)
	b.method(str.Prototype, "indexOf", "function(String, int=): int", false)
	b.method(str.Prototype, "toUpperCase", "function(): String", false)
	b.method(str.Properties, "fromCharCode", "function(...Array): String", true)

	array.Constructor = b.f.CreateMethodSlot(array.Name, b.signature("function(...Array): void"))
	b.accessor(array.Prototype, "length", "uint", true)
	b.method(array.Prototype, "push", "function(...Array): uint", false)
	b.method(array.Prototype, "join", "function(*=): String", false)

	b.method(function.Prototype, "call", "function(*=, ...Array): *", false)
	b.method(function.Prototype, "apply", "function(*=, *=): *", false)

	b.accessor(namespace.Prototype, "uri", "String", false)

	regexp.Constructor = b.f.CreateMethodSlot(regexp.Name, b.signature("function(*=, String=): void"))
	b.method(regexp.Prototype, "test", "function(String): Boolean", false)

	xml.Constructor = b.f.CreateMethodSlot(xml.Name, b.signature("function(*=): void"))
	b.method(xml.Prototype, "children", "function(): XMLList", false)
	b.method(xmlList.Prototype, "length", "function(): int", false)

	b.withTypeParams(promise, func() {
		promise.Constructor = b.f.CreateMethodSlot(promise.Name, b.signature("function(Function): void"))
		b.method(promise.Prototype, "then", "function(Function, Function=): Promise.<*>", false)
	})

	b.withTypeParams(vector, func() {
		vector.Constructor = b.f.CreateMethodSlot(vector.Name, b.signature("function(uint=, Boolean=): void"))
		b.accessor(vector.Prototype, "length", "uint", true)
		b.method(vector.Prototype, "push", "function(...Array): uint", false)
		b.method(vector.Prototype, "removeAt", "function(int): T", false)
		b.method(vector.Prototype, "indexOf", "function(T, int=): int", false)
	})

	b.constant(mathClass.Properties, "PI", numeric.Number(math.Pi), true)
	b.method(mathClass.Properties, "abs", "function(Number): Number", true)
	b.method(mathClass.Properties, "floor", "function(Number): Number", true)
	b.method(mathClass.Properties, "max", "function(...Array): Number", true)
	b.method(mathClass.Properties, "random", "function(): Number", true)

	host.Logger().Debug("builtins declared")
}

type builtins struct {
	host *semantics.Host
	f    *semantics.Factory
	v    *Verifier
	list *diagnostics.List
}

func newBuiltins(host *semantics.Host) *builtins {
	list := diagnostics.NewList()
	scope := host.Factory().CreatePackageScope(host.TopLevelPackage(), nil)
	return &builtins{
		host: host,
		f:    host.Factory(),
		v:    NewVerifier(host, list, scope),
		list: list,
	}
}

func (b *builtins) qname(name string) *semantics.QName {
	return b.f.CreateQName(b.host.TopLevelPackage().PublicNs, name)
}

func (b *builtins) class(name string, flags semantics.ClassFlags, typeParams ...string) *semantics.Class {
	c := b.f.CreateClass(b.qname(name), flags)
	for _, p := range typeParams {
		c.TypeParams = append(c.TypeParams, b.f.CreateTypeParameter(b.f.CreateQName(b.v.localNamespace(), p)))
	}
	b.host.TopLevelPackage().Properties.Set(c.Name, c)
	return c
}

// withTypeParams verifies the member types declared by fn in a scope
// where the type parameters of c are visible.
func (b *builtins) withTypeParams(c *semantics.Class, fn func()) {
	scope := b.f.CreateClassScope(c, b.v.Scope())
	for _, p := range c.TypeParams {
		scope.Properties.Set(p.Name, p)
	}
	b.v.EnterScope(scope)
	defer b.v.ExitScope()
	fn()
}

// typeOf parses and verifies a type expression. Builtin types must always
// resolve.
func (b *builtins) typeOf(src string) semantics.Type {
	expr, err := parse.ParseTypeExpression("<builtin>", src)
	if err != nil {
		panic(fmt.Errorf("builtin type %q: %w", src, err))
	}
	t, err := b.v.VerifyTypeExpression(expr)
	if Outcome(t, err) != OutcomeValue {
		spew.Dump(b.list.Items())
		panic(fmt.Errorf("builtin type %q does not resolve: %v", src, b.list.Err()))
	}
	return t
}

func (b *builtins) signature(src string) *semantics.FunctionType {
	sig, ok := b.typeOf(src).(*semantics.FunctionType)
	if !ok {
		panic(fmt.Errorf("builtin type %q is not a function type", src))
	}
	return sig
}

func (b *builtins) method(props *semantics.Names, name, sig string, static bool) {
	m := b.f.CreateMethodSlot(b.qname(name), b.signature(sig))
	m.Static = static
	m.Native = true
	props.Set(m.Name, m)
}

// accessor declares a native getter, with a setter when writable.
func (b *builtins) accessor(props *semantics.Names, name, typ string, writable bool) {
	t := b.typeOf(typ)
	slot := b.f.CreateVirtualSlot(b.qname(name), t)
	slot.Getter = b.f.CreateMethodSlot(slot.Name, b.f.CreateFunctionType(nil, t))
	if writable {
		params := []semantics.FunctionParam{{Kind: semantics.ParamRequired, Type: t}}
		slot.Setter = b.f.CreateMethodSlot(slot.Name, b.f.CreateFunctionType(params, b.host.VoidType()))
	}
	props.Set(slot.Name, slot)
}

func (b *builtins) constant(props *semantics.Names, name string, value numeric.Variant, static bool) {
	t := b.host.NumericType(value.Kind())
	slot := b.f.CreateVariableSlot(b.qname(name), t, true)
	slot.Static = static
	slot.Constant = b.f.CreateNumberConstant(value, t)
	props.Set(slot.Name, slot)
}
