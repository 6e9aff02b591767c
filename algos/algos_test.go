package algos

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

type node struct {
	name string
	deps []string
}

func graph(nodes ...node) map[string]node {
	m := map[string]node{}
	for _, n := range nodes {
		m[n.name] = n
	}
	return m
}

func deps(n node) []string {
	return append([]string(nil), n.deps...)
}

func names(nodes []node) []string {
	var result []string
	for _, n := range nodes {
		result = append(result, n.name)
	}
	return result
}

func TestFindCycle(t *testing.T) {
	g := graph(
		node{"a", []string{"b"}},
		node{"b", []string{"c", "missing"}},
		node{"c", []string{"a"}},
		node{"d", nil},
	)
	assert.Equal(t, []string{"a", "b", "c"}, names(FindCycle(g, deps)))

	g = graph(node{"a", []string{"b"}}, node{"b", nil})
	assert.Nil(t, FindCycle(g, deps))

	g = graph(node{"self", []string{"self"}})
	assert.Equal(t, []string{"self"}, names(FindCycle(g, deps)))
}

func TestTopologicalSort(t *testing.T) {
	g := graph(
		node{"a", []string{"b", "c"}},
		node{"b", []string{"c"}},
		node{"c", nil},
		node{"x", []string{"y"}},
		node{"y", []string{"x"}},
		node{"z", []string{"x"}},
	)
	order := []string{"a", "x", "b", "z", "c", "y"}
	assert.Equal(t, []string{"c", "b", "a", "x", "z", "y"}, names(TopologicalSort(order, g, deps)))
}

func TestUniqBy(t *testing.T) {
	nodes := []node{{"a", nil}, {"b", nil}, {"a", []string{"x"}}, {"c", nil}, {"b", nil}}
	uniq := UniqBy(nodes, func(n node) string { return n.name })
	assert.Equal(t, []string{"a", "b", "c"}, names(uniq))
	assert.Nil(t, uniq[0].deps)
	assert.Empty(t, UniqBy(nil, func(n node) string { return n.name }))
}
