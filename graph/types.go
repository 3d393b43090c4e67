package graph

// Graph is a dependency graph over workspace entries.
type Graph struct {
	// Nodes contains every node keyed by repository name.
	Nodes map[string]*Node

	// order lists node names in insertion order for deterministic output.
	order []string
}

// Node is one repository in the graph.
type Node struct {
	// Name is the repository name.
	Name string

	// ID and Version identify the NuGet package behind the entry. Both are
	// empty for external nodes.
	ID      string
	Version string

	// Dependencies are the repository names this node depends on, across
	// all framework groups, in first-seen order.
	Dependencies []string

	// Dependents are nodes that directly depend on this one (reverse edges).
	Dependents []string

	// Synthetic is true for siblings split off a multi-assembly package.
	Synthetic bool

	// External is true for dependencies with no emitted entry.
	External bool
}

// Stats summarizes a graph.
type Stats struct {
	Entries   int
	Synthetic int
	External  int
	Edges     int
	MaxDepth  int
}
