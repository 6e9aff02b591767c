package semantics

import (
	"encoding/binary"
	"fmt"
	"slices"

	"github.com/cespare/xxhash/v2"
	"github.com/davecgh/go-spew/spew"
	"github.com/fxrazen/fxsema/algos"
	"github.com/fxrazen/fxsema/common"
	"github.com/fxrazen/fxsema/numeric"
	"go.uber.org/zap"
)

// Factory is the single construction path for semantic entities. Interned
// kinds are canonicalized here, so structurally equal constructions return
// the same instance.
type Factory struct {
	host *Host
}

func (f *Factory) Host() *Host {
	return f.host
}

// ========================
// names

func (f *Factory) CreateQName(ns *Namespace, name string) *QName {
	h := f.host
	names, ok := h.qnames[ns]
	if !ok {
		names = map[string]*QName{}
		h.qnames[ns] = names
	}
	q, ok := names[name]
	if !ok {
		q = &QName{Namespace: ns, Name: name}
		names[name] = q
	}
	return q
}

// CreateSystemNamespace interns a system namespace per (kind, owner).
func (f *Factory) CreateSystemNamespace(kind NamespaceKind, owner Thingy) *Namespace {
	if !kind.IsSystem() {
		panic(fmt.Errorf("not a system namespace kind: %v", kind))
	}
	key := systemNamespaceKey{kind: kind, owner: owner}
	if ns, ok := f.host.systemNamespaces[key]; ok {
		return ns
	}
	ns := register(f.host, &Namespace{Kind: kind, Owner: owner})
	f.host.systemNamespaces[key] = ns
	return ns
}

func (f *Factory) CreatePublicNamespace(owner Thingy) *Namespace {
	return f.CreateSystemNamespace(NamespacePublic, owner)
}

func (f *Factory) CreatePrivateNamespace(owner Thingy) *Namespace {
	return f.CreateSystemNamespace(NamespacePrivate, owner)
}

func (f *Factory) CreateProtectedNamespace(owner Thingy) *Namespace {
	return f.CreateSystemNamespace(NamespaceProtected, owner)
}

func (f *Factory) CreateStaticProtectedNamespace(owner Thingy) *Namespace {
	return f.CreateSystemNamespace(NamespaceStaticProtected, owner)
}

func (f *Factory) CreateInternalNamespace(owner Thingy) *Namespace {
	return f.CreateSystemNamespace(NamespaceInternal, owner)
}

func (f *Factory) CreateExplicitNamespace(uri string) *Namespace {
	if ns, ok := f.host.explicitNamespaces[uri]; ok {
		return ns
	}
	ns := register(f.host, &Namespace{Kind: NamespaceExplicit, URI: uri})
	f.host.explicitNamespaces[uri] = ns
	return ns
}

func (f *Factory) CreateUserNamespace(uri string) *Namespace {
	if ns, ok := f.host.userNamespaces[uri]; ok {
		return ns
	}
	ns := register(f.host, &Namespace{Kind: NamespaceUser, URI: uri})
	f.host.userNamespaces[uri] = ns
	return ns
}

// CreateNamespaceSet interns a namespace set. Duplicate members are dropped
// and member order is preserved.
func (f *Factory) CreateNamespaceSet(namespaces []*Namespace) *NamespaceSet {
	namespaces = algos.UniqBy(namespaces, func(ns *Namespace) int { return ns.ID() })

	digest := xxhash.New()
	var buf [8]byte
	for _, ns := range namespaces {
		binary.LittleEndian.PutUint64(buf[:], uint64(ns.ID()))
		_, _ = digest.Write(buf[:])
	}
	key := digest.Sum64()

	for _, set := range f.host.namespaceSets[key] {
		if slices.Equal(set.Namespaces, namespaces) {
			return set
		}
	}
	set := register(f.host, &NamespaceSet{Namespaces: namespaces})
	f.host.namespaceSets[key] = append(f.host.namespaceSets[key], set)
	return set
}

// ========================
// packages

func (f *Factory) newPackage(name string, parent *Package) *Package {
	pkg := register(f.host, &Package{
		Name:        name,
		Parent:      parent,
		Subpackages: map[string]*Package{},
		Properties:  NewNames(),
	})
	pkg.PublicNs = f.CreatePublicNamespace(pkg)
	pkg.InternalNs = f.CreateInternalNamespace(pkg)
	return pkg
}

// CreatePackage walks the package tree from the root, creating missing
// segments. It is idempotent.
func (f *Factory) CreatePackage(segments ...string) *Package {
	pkg := f.host.topLevel
	for _, segment := range segments {
		child, ok := pkg.Subpackages[segment]
		if !ok {
			child = f.newPackage(segment, pkg)
			pkg.Subpackages[segment] = child
		}
		pkg = child
	}
	return pkg
}

// ========================
// types

func (f *Factory) CreateClass(name *QName, flags ClassFlags) *Class {
	c := register(f.host, &Class{
		Name:       name,
		Flags:      flags,
		Extends:    f.host.unresolved,
		Properties: NewNames(),
		Prototype:  NewNames(),
	})
	c.PrivateNs = f.CreatePrivateNamespace(c)
	c.ProtectedNs = f.CreateProtectedNamespace(c)
	c.StaticProtectedNs = f.CreateStaticProtectedNamespace(c)
	return c
}

func (f *Factory) CreateEnum(name *QName) *Enum {
	e := register(f.host, &Enum{
		Name:       name,
		Properties: NewNames(),
		Prototype:  NewNames(),
	})
	e.PrivateNs = f.CreatePrivateNamespace(e)
	return e
}

// AddEnumMember declares a member as a read-only static constant of e.
func (f *Factory) AddEnumMember(e *Enum, name string, value numeric.Variant) *EnumConstant {
	c := register(f.host, &EnumConstant{Enum: e, Member: name, Value: value})
	e.Members = append(e.Members, c)
	slot := f.CreateVariableSlot(f.CreateQName(e.Name.Namespace, name), e, true)
	slot.Static = true
	slot.Constant = c
	e.Properties.Set(slot.Name, slot)
	return c
}

func (f *Factory) CreateInterface(name *QName) *Interface {
	return register(f.host, &Interface{
		Name:      name,
		Prototype: NewNames(),
	})
}

func (f *Factory) CreateTypeParameter(name *QName) *TypeParameter {
	return register(f.host, &TypeParameter{Name: name})
}

// CreateTypeAfterSubstitution applies arguments to a generic origin. The
// argument count must match the origin's type parameters.
func (f *Factory) CreateTypeAfterSubstitution(origin Type, arguments []Type) *TypeAfterSubstitution {
	params := TypeParams(origin)
	if len(params) == 0 || len(params) != len(arguments) {
		panic(fmt.Errorf("type substitution arity mismatch: %v has %d type parameters, got %d arguments\n%s",
			origin, len(params), len(arguments), spew.Sdump(arguments)))
	}
	for _, t := range f.host.substitutions[origin] {
		if slices.Equal(t.Arguments, arguments) {
			return t
		}
	}
	t := register(f.host, &TypeAfterSubstitution{
		Origin:    origin,
		Arguments: append([]Type(nil), arguments...),
	})
	f.host.substitutions[origin] = append(f.host.substitutions[origin], t)
	return t
}

func (f *Factory) CreateTupleType(elements []Type) *TupleType {
	for _, t := range f.host.tupleTypes[len(elements)] {
		if slices.Equal(t.Elements, elements) {
			return t
		}
	}
	t := register(f.host, &TupleType{Elements: append([]Type(nil), elements...)})
	f.host.tupleTypes[len(elements)] = append(f.host.tupleTypes[len(elements)], t)
	return t
}

func (f *Factory) CreateFunctionType(params []FunctionParam, result Type) *FunctionType {
	for _, t := range f.host.functionTypes[len(params)] {
		if t.Result == result && slices.Equal(t.Params, params) {
			return t
		}
	}
	t := register(f.host, &FunctionType{Params: append([]FunctionParam(nil), params...), Result: result})
	f.host.functionTypes[len(params)] = append(f.host.functionTypes[len(params)], t)
	return t
}

// CreateNullableType returns ?of. Wrapping * returns * itself.
func (f *Factory) CreateNullableType(of Type) Type {
	if of == f.host.anyType {
		return of
	}
	if t, ok := f.host.nullableTypes[of]; ok {
		return t
	}
	t := register(f.host, &NullableType{Of: of})
	f.host.nullableTypes[of] = t
	return t
}

// CreateNonNullableType returns of!. Wrapping * returns * itself.
func (f *Factory) CreateNonNullableType(of Type) Type {
	if of == f.host.anyType {
		return of
	}
	if t, ok := f.host.nonNullableTypes[of]; ok {
		return t
	}
	t := register(f.host, &NonNullableType{Of: of})
	f.host.nonNullableTypes[of] = t
	return t
}

func (f *Factory) CreateAlias(name *QName, target Thingy) *Alias {
	return register(f.host, &Alias{Name: name, Target: target})
}

// ========================
// slots

func (f *Factory) CreateVariableSlot(name *QName, t Type, readOnly bool) *VariableSlot {
	return register(f.host, &VariableSlot{Name: name, Type: t, ReadOnly: readOnly})
}

func (f *Factory) CreateMethodSlot(name *QName, signature *FunctionType) *MethodSlot {
	return register(f.host, &MethodSlot{Name: name, Signature: signature})
}

func (f *Factory) CreateVirtualSlot(name *QName, t Type) *VirtualSlot {
	return register(f.host, &VirtualSlot{Name: name, Type: t})
}

// ========================
// values

func (f *Factory) CreateValue(t Type) *SimpleValue {
	return register(f.host, &SimpleValue{Type: t})
}

func (f *Factory) CreateNumberConstant(v numeric.Variant, t Type) *NumberConstant {
	return register(f.host, &NumberConstant{Value: v, Type: t})
}

func (f *Factory) CreateStringConstant(v string, t Type) *StringConstant {
	return register(f.host, &StringConstant{Value: v, Type: t})
}

func (f *Factory) CreateBooleanConstant(v bool, t Type) *BooleanConstant {
	return register(f.host, &BooleanConstant{Value: v, Type: t})
}

func (f *Factory) CreateNullConstant(t Type) *NullConstant {
	return register(f.host, &NullConstant{Type: t})
}

func (f *Factory) CreateUndefinedConstant(t Type) *UndefinedConstant {
	return register(f.host, &UndefinedConstant{Type: t})
}

func (f *Factory) CreateNamespaceConstant(ns *Namespace) *NamespaceConstant {
	return register(f.host, &NamespaceConstant{Namespace: ns, Type: f.host.NamespaceType()})
}

// CreateReference wraps a property found on object (nil for scope
// properties) as a reference value.
func (f *Factory) CreateReference(object Thingy, property Thingy) Thingy {
	property = Resolve(property)
	switch p := property.(type) {
	case *Package:
		return f.CreatePackageReference(p)
	case *Unresolved, *Invalidation:
		return p
	case Type:
		return f.CreateTypeAsReference(p)
	case *Namespace:
		return f.CreateNamespaceConstant(p)
	case *VariableSlot, *MethodSlot, *VirtualSlot:
		t := SlotType(f.host, p)
		if obj, ok := object.(Value); ok {
			t = f.substituteFromObject(obj.StaticType(), t)
		}
		return register(f.host, &FixtureReference{Object: object, Property: p, Type: t})
	case Value:
		return p
	default:
		panic(fmt.Errorf("cannot reference %s", spew.Sdump(property)))
	}
}

func (f *Factory) CreateDynamicReference(object Value, qualifier *Namespace, name string, key Value) *DynamicReference {
	return register(f.host, &DynamicReference{Object: object, Qualifier: qualifier, Name: name, Key: key, Type: f.host.anyType})
}

func (f *Factory) CreateDynamicScopeReference(scope *Scope, qualifier *Namespace, name string, key Value) *DynamicScopeReference {
	return register(f.host, &DynamicScopeReference{Scope: scope, Qualifier: qualifier, Name: name, Key: key, Type: f.host.anyType})
}

func (f *Factory) CreateTypeAsReference(t Type) *TypeAsReference {
	return register(f.host, &TypeAsReference{Of: t, Type: f.host.ClassType()})
}

func (f *Factory) CreatePackageReference(pkg *Package) *PackageReference {
	return register(f.host, &PackageReference{Package: pkg, Type: f.host.anyType})
}

// ========================
// scopes

func (f *Factory) CreateScope(kind ScopeKind, parent *Scope) *Scope {
	s := register(f.host, &Scope{Kind: kind, Parent: parent, Properties: NewNames()})
	if kind == ScopeActivation {
		s.Captured = common.NewSet[*VariableSlot]()
	}
	return s
}

func (f *Factory) CreatePackageScope(pkg *Package, parent *Scope) *Scope {
	s := f.CreateScope(ScopePackage, parent)
	s.Package = pkg
	s.OpenNamespace(pkg.PublicNs)
	s.OpenNamespace(pkg.InternalNs)
	return s
}

func (f *Factory) CreateClassScope(class Thingy, parent *Scope) *Scope {
	s := f.CreateScope(ScopeClass, parent)
	s.Class = class
	switch c := class.(type) {
	case *Class:
		s.OpenNamespace(c.PrivateNs)
		s.OpenNamespace(c.ProtectedNs)
		s.OpenNamespace(c.StaticProtectedNs)
	case *Enum:
		s.OpenNamespace(c.PrivateNs)
	}
	return s
}

func (f *Factory) CreateActivation(this Value, function *FunctionType, parent *Scope) *Scope {
	s := f.CreateScope(ScopeActivation, parent)
	s.This = this
	s.Function = function
	return s
}

func (f *Factory) CreateFilterScope(object Value, parent *Scope) *Scope {
	s := f.CreateScope(ScopeFilter, parent)
	s.Object = object
	return s
}

// ========================
// imports

func (f *Factory) CreateWildcardImport(pkg *Package) *PackageWildcardImport {
	return register(f.host, &PackageWildcardImport{Package: pkg})
}

func (f *Factory) CreateRecursiveImport(pkg *Package) *PackageRecursiveImport {
	return register(f.host, &PackageRecursiveImport{Package: pkg})
}

func (f *Factory) CreatePropertyImport(pkg *Package, name *QName, property Thingy) *PackagePropertyImport {
	return register(f.host, &PackagePropertyImport{Package: pkg, Name: name, Property: property})
}

// ========================

func (f *Factory) substituteFromObject(objectType Type, t Type) Type {
	tas, ok := objectType.(*TypeAfterSubstitution)
	if !ok {
		return t
	}
	result := f.Substitute(t, TypeParams(tas.Origin), tas.Arguments)
	f.host.log.Debug("substituted member type", zap.Stringer("from", t), zap.Stringer("to", result))
	return result
}

// Substitute replaces type parameters by arguments inside t.
func (f *Factory) Substitute(t Type, params []*TypeParameter, args []Type) Type {
	switch t := t.(type) {
	case *TypeParameter:
		for i, p := range params {
			if p == t {
				return args[i]
			}
		}
		return t
	case *NullableType:
		return f.CreateNullableType(f.Substitute(t.Of, params, args))
	case *NonNullableType:
		return f.CreateNonNullableType(f.Substitute(t.Of, params, args))
	case *TupleType:
		elements := make([]Type, len(t.Elements))
		for i, e := range t.Elements {
			elements[i] = f.Substitute(e, params, args)
		}
		return f.CreateTupleType(elements)
	case *FunctionType:
		fparams := make([]FunctionParam, len(t.Params))
		for i, p := range t.Params {
			fparams[i] = FunctionParam{Kind: p.Kind, Type: f.Substitute(p.Type, params, args)}
		}
		return f.CreateFunctionType(fparams, f.Substitute(t.Result, params, args))
	case *TypeAfterSubstitution:
		targs := make([]Type, len(t.Arguments))
		for i, a := range t.Arguments {
			targs[i] = f.Substitute(a, params, args)
		}
		return f.CreateTypeAfterSubstitution(t.Origin, targs)
	default:
		return t
	}
}
