package graph

import (
	"slices"
	"strings"

	"github.com/albertocavalcante/go-nuget2bazel/workspace"
)

// FromEntries builds the graph of entries. Later entries with a name
// already present are ignored.
func FromEntries(entries []*workspace.Entry) *Graph {
	g := &Graph{Nodes: make(map[string]*Node)}

	for _, e := range entries {
		name := e.RuleName()
		if _, ok := g.Nodes[name]; ok {
			continue
		}
		g.add(&Node{Name: name, ID: e.ID, Version: e.Version, Synthetic: e.IsSynthetic()})
	}

	for _, e := range entries {
		node := g.Nodes[e.RuleName()]
		for _, id := range e.Dependencies() {
			dep := strings.ToLower(id)
			if slices.Contains(node.Dependencies, dep) {
				continue
			}
			target, ok := g.Nodes[dep]
			if !ok {
				target = &Node{Name: dep, External: true}
				g.add(target)
			}
			node.Dependencies = append(node.Dependencies, dep)
			target.Dependents = append(target.Dependents, node.Name)
		}
	}
	return g
}

func (g *Graph) add(n *Node) {
	g.Nodes[n.Name] = n
	g.order = append(g.order, n.Name)
}

// Names returns all node names in insertion order: entries first, then
// external nodes as they were discovered.
func (g *Graph) Names() []string {
	return slices.Clone(g.order)
}
