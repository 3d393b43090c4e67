package graph

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
)

// separatorWidth is the width of the header rule in text output.
const separatorWidth = 60

// ToDOT outputs the graph in Graphviz DOT format.
func (g *Graph) ToDOT() string {
	var buf bytes.Buffer

	buf.WriteString("digraph workspace {\n")
	buf.WriteString("  rankdir=LR;\n")
	buf.WriteString("  node [shape=box];\n\n")

	for _, name := range g.order {
		node := g.Nodes[name]
		label := node.Name
		if node.Version != "" {
			label += "\\n" + node.Version
		}
		attrs := fmt.Sprintf(`label="%s"`, label) //nolint:gocritic // DOT format requires this quote style
		switch {
		case node.External:
			attrs += ", style=dashed"
		case node.Synthetic:
			attrs += ", style=dotted"
		}
		fmt.Fprintf(&buf, "  %q [%s];\n", name, attrs)
	}

	buf.WriteString("\n")

	for _, name := range g.order {
		for _, dep := range g.Nodes[name].Dependencies {
			fmt.Fprintf(&buf, "  %q -> %q;\n", name, dep)
		}
	}

	buf.WriteString("}\n")
	return buf.String()
}

// ToText outputs a human-readable summary followed by the dependency tree
// of every root.
func (g *Graph) ToText() string {
	var buf bytes.Buffer

	buf.WriteString("Workspace Graph\n")
	buf.WriteString(strings.Repeat("=", separatorWidth) + "\n\n")

	stats := g.Stats()
	fmt.Fprintf(&buf, "Entries: %d\n", stats.Entries)
	if stats.Synthetic > 0 {
		fmt.Fprintf(&buf, "Synthetic entries: %d\n", stats.Synthetic)
	}
	fmt.Fprintf(&buf, "External dependencies: %d\n", stats.External)
	fmt.Fprintf(&buf, "Edges: %d\n", stats.Edges)
	fmt.Fprintf(&buf, "Max depth: %d\n\n", stats.MaxDepth)

	for _, root := range g.Roots() {
		buf.WriteString(g.label(root) + "\n")
		visited := map[string]bool{root: true}
		deps := g.Nodes[root].Dependencies
		for i, dep := range deps {
			g.printTree(&buf, dep, "", i == len(deps)-1, visited)
		}
	}
	return buf.String()
}

func (g *Graph) printTree(buf *bytes.Buffer, name, prefix string, isLast bool, visited map[string]bool) {
	connector := "├── "
	if isLast {
		connector = "└── "
	}
	buf.WriteString(prefix + connector + g.label(name))

	if visited[name] {
		buf.WriteString(" (circular)\n")
		return
	}
	buf.WriteString("\n")

	visited[name] = true
	defer func() { visited[name] = false }()

	childPrefix := prefix + "│   "
	if isLast {
		childPrefix = prefix + "    "
	}
	deps := g.Nodes[name].Dependencies
	for i, dep := range deps {
		g.printTree(buf, dep, childPrefix, i == len(deps)-1, visited)
	}
}

func (g *Graph) label(name string) string {
	node := g.Nodes[name]
	switch {
	case node.External:
		return name + " (external)"
	case node.Version != "":
		return name + "@" + node.Version
	default:
		return name
	}
}

// jsonNode is the JSON shape of a node.
type jsonNode struct {
	Name         string   `json:"name"`
	ID           string   `json:"id,omitempty"`
	Version      string   `json:"version,omitempty"`
	Dependencies []string `json:"dependencies,omitempty"`
	Synthetic    bool     `json:"synthetic,omitempty"`
	External     bool     `json:"external,omitempty"`
}

// ToJSON outputs the nodes in insertion order as a JSON array.
func (g *Graph) ToJSON() ([]byte, error) {
	nodes := make([]jsonNode, 0, len(g.order))
	for _, name := range g.order {
		n := g.Nodes[name]
		nodes = append(nodes, jsonNode{
			Name:         n.Name,
			ID:           n.ID,
			Version:      n.Version,
			Dependencies: n.Dependencies,
			Synthetic:    n.Synthetic,
			External:     n.External,
		})
	}
	return json.MarshalIndent(nodes, "", "  ")
}
