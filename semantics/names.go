package semantics

// Names maps QNames to entities, preserving insertion order.
type Names struct {
	entries map[*QName]Thingy
	byName  map[string][]*QName
	order   []*QName
}

func NewNames() *Names {
	return &Names{
		entries: map[*QName]Thingy{},
		byName:  map[string][]*QName{},
	}
}

func (n *Names) Get(name *QName) Thingy {
	return n.entries[name]
}

func (n *Names) Has(name *QName) bool {
	_, ok := n.entries[name]
	return ok
}

// Set defines or replaces the entity for name.
func (n *Names) Set(name *QName, thingy Thingy) {
	if _, ok := n.entries[name]; !ok {
		n.byName[name.Name] = append(n.byName[name.Name], name)
		n.order = append(n.order, name)
	}
	n.entries[name] = thingy
}

func (n *Names) Len() int {
	return len(n.order)
}

// Each visits every entry in insertion order.
func (n *Names) Each(f func(*QName, Thingy)) {
	for _, name := range n.order {
		f(name, n.entries[name])
	}
}

// Lookup finds local among the names whose namespace satisfies visible. A
// nil visible matches every namespace. Two distinct matches are an
// ambiguity.
func (n *Names) Lookup(local string, visible func(*Namespace) bool) (*QName, Thingy, error) {
	var foundName *QName
	var found Thingy
	for _, name := range n.byName[local] {
		if visible != nil && !visible(name.Namespace) {
			continue
		}
		thingy := n.entries[name]
		if found != nil && found != thingy {
			return nil, nil, &LookupError{Kind: LookupAmbiguous, Name: local}
		}
		foundName, found = name, thingy
	}
	return foundName, found, nil
}

func containsNamespace(namespaces []*Namespace, ns *Namespace) bool {
	for _, x := range namespaces {
		if x == ns {
			return true
		}
	}
	return false
}
