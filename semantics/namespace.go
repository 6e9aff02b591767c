package semantics

import (
	"fmt"
	"strings"
)

type NamespaceKind int

const (
	NamespacePublic NamespaceKind = iota
	NamespacePrivate
	NamespaceProtected
	NamespaceStaticProtected
	NamespaceInternal
	NamespaceExplicit
	NamespaceUser
)

func (k NamespaceKind) String() string {
	switch k {
	case NamespacePublic:
		return "public"
	case NamespacePrivate:
		return "private"
	case NamespaceProtected:
		return "protected"
	case NamespaceStaticProtected:
		return "static protected"
	case NamespaceInternal:
		return "internal"
	case NamespaceExplicit:
		return "explicit"
	case NamespaceUser:
		return "user"
	default:
		panic("unreachable")
	}
}

func (k NamespaceKind) IsSystem() bool {
	return k < NamespaceExplicit
}

// Namespace is either a system namespace parameterized by an owner (a
// package or class, possibly nil) or a URI-keyed explicit or user namespace.
type Namespace struct {
	Base
	Kind  NamespaceKind
	Owner Thingy
	URI   string
}

func (ns *Namespace) String() string {
	switch {
	case ns.Kind.IsSystem() && ns.Owner != nil:
		return fmt.Sprintf("%v(%v)", ns.Kind, ns.Owner)
	case ns.Kind.IsSystem():
		return ns.Kind.String()
	default:
		return ns.URI
	}
}

// QName is a namespace-qualified local name. QNames are interned, so two
// QNames are equal iff they are the same pointer.
type QName struct {
	Namespace *Namespace
	Name      string
}

func (q *QName) String() string {
	if q.Namespace.Kind == NamespacePublic || q.Namespace.Kind == NamespaceInternal {
		return q.Name
	}
	return fmt.Sprintf("%v::%s", q.Namespace, q.Name)
}

// NamespaceSet is an interned, ordered set of namespaces.
type NamespaceSet struct {
	Base
	Namespaces []*Namespace
}

func (s *NamespaceSet) Contains(ns *Namespace) bool {
	for _, x := range s.Namespaces {
		if x == ns {
			return true
		}
	}
	return false
}

func (s *NamespaceSet) String() string {
	parts := make([]string, len(s.Namespaces))
	for i, ns := range s.Namespaces {
		parts[i] = ns.String()
	}
	return "{" + strings.Join(parts, ", ") + "}"
}
