package semantics

import (
	"sort"
	"strings"
)

// Package is a node of the package tree. Parent is a non-owning
// back-reference; the root has no parent and an empty name.
type Package struct {
	Base
	Name        string
	Parent      *Package
	Subpackages map[string]*Package
	PublicNs    *Namespace
	InternalNs  *Namespace
	Properties  *Names
}

// FullyQualifiedName is the dot-joined path from the root.
func (p *Package) FullyQualifiedName() string {
	var segments []string
	for pkg := p; pkg != nil && pkg.Parent != nil; pkg = pkg.Parent {
		segments = append(segments, pkg.Name)
	}
	for i, j := 0, len(segments)-1; i < j; i, j = i+1, j-1 {
		segments[i], segments[j] = segments[j], segments[i]
	}
	return strings.Join(segments, ".")
}

func (p *Package) String() string {
	if p.Parent == nil {
		return "<top level>"
	}
	return p.FullyQualifiedName()
}

// SortedSubpackages returns direct children ordered by name.
func (p *Package) SortedSubpackages() []*Package {
	names := make([]string, 0, len(p.Subpackages))
	for name := range p.Subpackages {
		names = append(names, name)
	}
	sort.Strings(names)
	result := make([]*Package, len(names))
	for i, name := range names {
		result[i] = p.Subpackages[name]
	}
	return result
}
