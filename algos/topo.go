package algos

// TopologicalSort orders the nodes named by order so that every node comes
// after the nodes it has edges to. Nodes on a cycle, and nodes depending on
// one, follow in their input order. Keys in order must be unique.
func TopologicalSort[T any, K comparable](order []K, nodes map[K]T, edges func(T) []K) []T {
	pending := map[K]int{}
	dependents := map[K][]K{}
	for _, k := range order {
		for _, dep := range edges(nodes[k]) {
			if _, ok := nodes[dep]; !ok || dep == k {
				continue
			}
			pending[k]++
			dependents[dep] = append(dependents[dep], k)
		}
	}

	var ready []K
	for _, k := range order {
		if pending[k] == 0 {
			ready = append(ready, k)
		}
	}

	sorted := make([]T, 0, len(order))
	done := map[K]bool{}
	for len(ready) > 0 {
		k := ready[0]
		ready = ready[1:]
		done[k] = true
		sorted = append(sorted, nodes[k])
		for _, d := range dependents[k] {
			pending[d]--
			if pending[d] == 0 {
				ready = append(ready, d)
			}
		}
	}

	for _, k := range order {
		if !done[k] {
			sorted = append(sorted, nodes[k])
		}
	}
	return sorted
}
