package semantics

import (
	"go.uber.org/zap"
)

// PropertyLookup resolves names against scope chains, objects and
// packages. Results are references created through the factory. A nil
// result with a nil error means the name was not found.
//
// Errors are always *LookupError.
type PropertyLookup struct {
	host *Host
}

func (h *Host) Lookup() *PropertyLookup {
	return &PropertyLookup{host: h}
}

// OpenNamespaces collects the namespaces opened by scope and its parents,
// innermost first.
func OpenNamespaces(scope *Scope) []*Namespace {
	var result []*Namespace
	for s := scope; s != nil; s = s.Parent {
		for _, ns := range s.OpenNamespaces {
			if !containsNamespace(result, ns) {
				result = append(result, ns)
			}
		}
	}
	return result
}

func visibility(open []*Namespace, qualifier *Namespace) func(*Namespace) bool {
	if qualifier != nil {
		return func(ns *Namespace) bool {
			return ns == qualifier
		}
	}
	return func(ns *Namespace) bool {
		return ns.Kind == NamespacePublic || containsNamespace(open, ns)
	}
}

// LookupInScopeChain resolves name from scope outward, ending at the top
// level package.
func (l *PropertyLookup) LookupInScopeChain(scope *Scope, qualifier *Namespace, name string) (Thingy, error) {
	f := l.host.factory
	visible := visibility(OpenNamespaces(scope), qualifier)

	for s := scope; s != nil; s = s.Parent {
		if s.Kind == ScopeFilter {
			return f.CreateDynamicScopeReference(s, qualifier, name, nil), nil
		}

		_, local, err := s.Properties.Lookup(name, visible)
		if err != nil {
			return nil, err
		}
		if local != nil {
			return l.found(nil, local)
		}

		switch s.Kind {
		case ScopeActivation:
			if s.This != nil {
				result, err := l.lookupInType(s.This, s.This.StaticType(), visible, qualifier, name, true)
				if err != nil || result != nil {
					return result, err
				}
			}
		case ScopeClass:
			if t, ok := s.Class.(Type); ok {
				result, err := l.lookupStatic(t, visible, name)
				if err != nil || result != nil {
					return result, err
				}
			}
		case ScopePackage:
			_, prop, err := s.Package.Properties.Lookup(name, visible)
			if err != nil {
				return nil, err
			}
			if prop != nil {
				return l.found(nil, prop)
			}
		}

		result, err := l.lookupInImports(s, visible, qualifier, name)
		if err != nil || result != nil {
			return result, err
		}
	}

	top := l.host.topLevel
	_, prop, err := top.Properties.Lookup(name, visible)
	if err != nil {
		return nil, err
	}
	if prop != nil {
		return l.found(nil, prop)
	}
	if qualifier == nil {
		if pkg, ok := top.Subpackages[name]; ok {
			return f.CreatePackageReference(pkg), nil
		}
	}
	return nil, nil
}

// lookupInImports merges matches from every import of one scope. Two
// distinct matches are ambiguous.
func (l *PropertyLookup) lookupInImports(s *Scope, visible func(*Namespace) bool, qualifier *Namespace, name string) (Thingy, error) {
	var match Thingy
	add := func(t Thingy) error {
		if t == nil {
			return nil
		}
		t = Resolve(t)
		if match != nil && match != t {
			return &LookupError{Kind: LookupAmbiguous, Name: name}
		}
		match = t
		return nil
	}

	for _, imp := range s.Imports {
		switch imp := imp.(type) {
		case *PackagePropertyImport:
			if imp.Name.Name == name && (qualifier == nil || qualifier == imp.Name.Namespace) {
				if err := add(imp.Property); err != nil {
					return nil, err
				}
			}
		case *PackageWildcardImport:
			_, prop, err := imp.Package.Properties.Lookup(name, packageVisibility(imp.Package, qualifier))
			if err != nil {
				return nil, err
			}
			if err := add(prop); err != nil {
				return nil, err
			}
		case *PackageRecursiveImport:
			prop, err := l.lookupPackageTree(imp.Package, qualifier, name)
			if err != nil {
				return nil, err
			}
			if err := add(prop); err != nil {
				return nil, err
			}
		}
	}

	if match == nil {
		return nil, nil
	}
	return l.found(nil, match)
}

func packageVisibility(pkg *Package, qualifier *Namespace) func(*Namespace) bool {
	return func(ns *Namespace) bool {
		if qualifier != nil {
			return ns == qualifier
		}
		return ns == pkg.PublicNs
	}
}

// LookupInPackageRecursive resolves name in pkg and every package below
// it.
func (l *PropertyLookup) LookupInPackageRecursive(pkg *Package, qualifier *Namespace, name string) (Thingy, error) {
	prop, err := l.lookupPackageTree(pkg, qualifier, name)
	if err != nil || prop == nil {
		return nil, err
	}
	return l.found(nil, prop)
}

func (l *PropertyLookup) lookupPackageTree(pkg *Package, qualifier *Namespace, name string) (Thingy, error) {
	_, match, err := pkg.Properties.Lookup(name, packageVisibility(pkg, qualifier))
	if err != nil {
		return nil, err
	}
	if match != nil {
		match = Resolve(match)
	}
	for _, sub := range pkg.SortedSubpackages() {
		prop, err := l.lookupPackageTree(sub, qualifier, name)
		if err != nil {
			return nil, err
		}
		if prop == nil {
			continue
		}
		if match != nil && match != prop {
			return nil, &LookupError{Kind: LookupAmbiguous, Name: name}
		}
		match = prop
	}
	return match, nil
}

// LookupInObject resolves a property of object, which is a value, a type
// used as a value or a package reference. scope supplies the open
// namespaces and may be nil.
func (l *PropertyLookup) LookupInObject(scope *Scope, object Thingy, qualifier *Namespace, name string) (Thingy, error) {
	visible := visibility(OpenNamespaces(scope), qualifier)

	switch o := object.(type) {
	case *Invalidation:
		return o, nil
	case *PackageReference:
		_, prop, err := o.Package.Properties.Lookup(name, packageVisibility(o.Package, qualifier))
		if err != nil {
			return nil, err
		}
		if prop != nil {
			return l.found(o, prop)
		}
		if sub, ok := o.Package.Subpackages[name]; ok && qualifier == nil {
			return l.host.factory.CreatePackageReference(sub), nil
		}
		return nil, nil
	case *TypeAsReference:
		result, err := l.lookupStatic(o.Of, visible, name)
		if err != nil || result != nil {
			return result, err
		}
		return l.lookupInType(o, o.StaticType(), visible, qualifier, name, false)
	case Value:
		return l.lookupInType(o, o.StaticType(), visible, qualifier, name, false)
	default:
		return nil, nil
	}
}

func (l *PropertyLookup) lookupStatic(t Type, visible func(*Namespace) bool, name string) (Thingy, error) {
	var props *Names
	switch t := t.(type) {
	case *Class:
		props = t.Properties
	case *Enum:
		props = t.Properties
	default:
		return nil, nil
	}
	_, prop, err := props.Lookup(name, visible)
	if err != nil || prop == nil {
		return nil, err
	}
	return l.found(l.host.factory.CreateTypeAsReference(t), prop)
}

// lookupInType resolves an instance property. fixedOnly suppresses
// dynamic references, as needed when walking the scope chain through
// `this`.
func (l *PropertyLookup) lookupInType(object Value, t Type, visible func(*Namespace) bool, qualifier *Namespace, name string, fixedOnly bool) (Thingy, error) {
	h := l.host
	dynamic := func() (Thingy, error) {
		if fixedOnly {
			return nil, nil
		}
		return h.factory.CreateDynamicReference(object, qualifier, name, nil), nil
	}

	switch t := t.(type) {
	case *Unresolved:
		return nil, errLookupDefer
	case *Invalidation:
		return h.invalidation, nil
	case *VoidType:
		return nil, &LookupError{Kind: LookupVoidBase}
	case *NullableType:
		return nil, &LookupError{Kind: LookupNullableObject}
	case *NonNullableType:
		return l.lookupInType(object, t.Of, visible, qualifier, name, fixedOnly)
	case *AnyType:
		return dynamic()
	case *TypeAfterSubstitution:
		return l.lookupInType(object, t.Origin, visible, qualifier, name, fixedOnly)
	case *Class:
		for c := Type(t); c != nil; {
			switch cls := c.(type) {
			case *Unresolved:
				h.log.Debug("superclass unresolved", zap.Stringer("class", t))
				return nil, errLookupDefer
			case *Class:
				_, prop, err := cls.Prototype.Lookup(name, visible)
				if err != nil {
					return nil, err
				}
				if prop != nil {
					return l.found(object, prop)
				}
				c = cls.Extends
			default:
				c = nil
			}
		}
		if t.Is(ClassDynamic) {
			return dynamic()
		}
		return nil, nil
	case *Interface:
		seen := map[*Interface]bool{}
		queue := []Type{t}
		for len(queue) > 0 {
			next := queue[0]
			queue = queue[1:]
			if IsUnresolved(next) {
				return nil, errLookupDefer
			}
			iface, ok := next.(*Interface)
			if !ok || seen[iface] {
				continue
			}
			seen[iface] = true
			_, prop, err := iface.Prototype.Lookup(name, visible)
			if err != nil {
				return nil, err
			}
			if prop != nil {
				return l.found(object, prop)
			}
			queue = append(queue, iface.Extends...)
		}
		return l.lookupInWellKnown(object, h.ObjectType(), visible, qualifier, name, fixedOnly)
	case *Enum:
		_, prop, err := t.Prototype.Lookup(name, visible)
		if err != nil {
			return nil, err
		}
		if prop != nil {
			return l.found(object, prop)
		}
		return l.lookupInWellKnown(object, h.ObjectType(), visible, qualifier, name, fixedOnly)
	case *FunctionType:
		return l.lookupInWellKnown(object, h.FunctionType(), visible, qualifier, name, fixedOnly)
	case *TupleType:
		return l.lookupInWellKnown(object, h.ArrayType(), visible, qualifier, name, fixedOnly)
	case *TypeParameter:
		return l.lookupInWellKnown(object, h.ObjectType(), visible, qualifier, name, fixedOnly)
	default:
		return nil, nil
	}
}

func (l *PropertyLookup) lookupInWellKnown(object Value, t Type, visible func(*Namespace) bool, qualifier *Namespace, name string, fixedOnly bool) (Thingy, error) {
	if IsUnresolved(t) {
		return nil, errLookupDefer
	}
	return l.lookupInType(object, t, visible, qualifier, name, fixedOnly)
}

func (l *PropertyLookup) found(object Thingy, prop Thingy) (Thingy, error) {
	prop = Resolve(prop)
	if _, ok := prop.(*Unresolved); ok {
		return nil, errLookupDefer
	}
	return l.host.factory.CreateReference(object, prop), nil
}
