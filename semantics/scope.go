package semantics

import (
	"github.com/fxrazen/fxsema/common"
)

type ScopeKind int

const (
	ScopePlain ScopeKind = iota
	ScopeActivation
	ScopeClass
	ScopePackage
	ScopeFilter
)

func (k ScopeKind) String() string {
	switch k {
	case ScopePlain:
		return "plain"
	case ScopeActivation:
		return "activation"
	case ScopeClass:
		return "class"
	case ScopePackage:
		return "package"
	case ScopeFilter:
		return "filter"
	default:
		panic("unreachable")
	}
}

// Scope is one link of a scope chain. Which of the kind-specific fields are
// set depends on Kind:
//
//   - ScopeActivation: This (nil when `this` is not bound), Function
//   - ScopeClass: Class
//   - ScopePackage: Package
//   - ScopeFilter: Object, the XML value being filtered
type Scope struct {
	Base
	Kind           ScopeKind
	Parent         *Scope
	Properties     *Names
	OpenNamespaces []*Namespace
	Imports        []Thingy

	This     Value
	Function *FunctionType
	Captured common.Set[*VariableSlot]

	Class   Thingy
	Package *Package
	Object  Value
}

func (s *Scope) String() string {
	return s.Kind.String() + " scope"
}

// OpenNamespace adds ns to the scope's open namespaces if absent.
func (s *Scope) OpenNamespace(ns *Namespace) {
	if !containsNamespace(s.OpenNamespaces, ns) {
		s.OpenNamespaces = append(s.OpenNamespaces, ns)
	}
}

func (s *Scope) AddImport(imp Thingy) {
	s.Imports = append(s.Imports, imp)
}

// Activation returns the innermost enclosing activation, or nil.
func (s *Scope) Activation() *Scope {
	for scope := s; scope != nil; scope = scope.Parent {
		if scope.Kind == ScopeActivation {
			return scope
		}
	}
	return nil
}

// ========================

// PackageWildcardImport is `import p.*`.
type PackageWildcardImport struct {
	Base
	Package *Package
}

func (i *PackageWildcardImport) String() string {
	return i.Package.String() + ".*"
}

// PackageRecursiveImport is `import p.**`.
type PackageRecursiveImport struct {
	Base
	Package *Package
}

func (i *PackageRecursiveImport) String() string {
	return i.Package.String() + ".**"
}

// PackagePropertyImport is `import p.x`.
type PackagePropertyImport struct {
	Base
	Package  *Package
	Property Thingy
	Name     *QName
}

func (i *PackagePropertyImport) String() string {
	return i.Package.String() + "." + i.Name.Name
}
