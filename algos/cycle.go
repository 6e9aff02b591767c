package algos

import (
	"cmp"
	"maps"
	"slices"
)

// FindCycle returns the nodes of one cycle in the graph, in edge order, or
// nil when there is none. Edges to keys outside nodes are ignored. Keys are
// visited in sorted order so the result is deterministic.
func FindCycle[T any, K cmp.Ordered](nodes map[K]T, edges func(T) []K) []T {
	visited := map[K]bool{}
	onStack := map[K]int{}
	var stack []K
	var cycle []K

	var dfs func(K) bool
	dfs = func(k K) bool {
		if i, ok := onStack[k]; ok {
			cycle = slices.Clone(stack[i:])
			return true
		}
		if visited[k] {
			return false
		}
		visited[k] = true
		onStack[k] = len(stack)
		stack = append(stack, k)

		deps := edges(nodes[k])
		slices.Sort(deps)
		for _, dep := range deps {
			if _, ok := nodes[dep]; !ok {
				continue
			}
			if dfs(dep) {
				return true
			}
		}

		stack = stack[:len(stack)-1]
		delete(onStack, k)
		return false
	}

	for _, k := range slices.Sorted(maps.Keys(nodes)) {
		if dfs(k) {
			break
		}
	}

	if cycle == nil {
		return nil
	}
	result := make([]T, len(cycle))
	for i, k := range cycle {
		result[i] = nodes[k]
	}
	return result
}
