package semantics

import (
	"fmt"
)

// Thingy is any semantic entity owned by a Host arena: namespaces, packages,
// types, aliases, slots, values, scopes, imports, namespace sets and the two
// sentinels. The set of implementations is closed to this package.
//
// Every interned kind is compared by identity.
type Thingy interface {
	fmt.Stringer
	ID() int
	base() *Base
}

type Base struct {
	id int
}

func (b *Base) ID() int {
	return b.id
}

func (b *Base) base() *Base {
	return b
}

// Arena owns every entity created through a host. Entities are never freed
// individually; ids are dense and stable for the host's lifetime.
type Arena struct {
	things []Thingy
}

func (a *Arena) add(t Thingy) {
	b := t.base()
	if b.id != 0 {
		panic(fmt.Errorf("thingy %v already registered as #%d", t, b.id))
	}
	a.things = append(a.things, t)
	b.id = len(a.things)
}

// Get returns the entity with the given id, or nil.
func (a *Arena) Get(id int) Thingy {
	if id <= 0 || id > len(a.things) {
		return nil
	}
	return a.things[id-1]
}

func (a *Arena) Len() int {
	return len(a.things)
}

// ========================

// Unresolved means "not found yet, retry". Lookups that observe it defer.
type Unresolved struct {
	Base
}

func (*Unresolved) String() string {
	return "<unresolved>"
}

// Invalidation means "already diagnosed, suppress further errors".
type Invalidation struct {
	Base
}

func (*Invalidation) String() string {
	return "<invalidation>"
}

func (*Unresolved) _Type()   {}
func (*Invalidation) _Type() {}
