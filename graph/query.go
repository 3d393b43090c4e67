package graph

import "strings"

// Get returns the node with the given name (case-insensitive), or nil.
func (g *Graph) Get(name string) *Node {
	return g.Nodes[strings.ToLower(name)]
}

// DirectDeps returns the direct dependencies of a node.
func (g *Graph) DirectDeps(name string) []string {
	if node := g.Get(name); node != nil {
		return node.Dependencies
	}
	return nil
}

// DirectDependents returns the nodes that directly depend on name.
func (g *Graph) DirectDependents(name string) []string {
	if node := g.Get(name); node != nil {
		return node.Dependents
	}
	return nil
}

// TransitiveDeps returns every node reachable from name, breadth first,
// excluding name itself.
func (g *Graph) TransitiveDeps(name string) []string {
	start := g.Get(name)
	if start == nil {
		return nil
	}

	visited := map[string]bool{start.Name: true}
	queue := []string{start.Name}
	var result []string
	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]
		for _, dep := range g.Nodes[current].Dependencies {
			if visited[dep] {
				continue
			}
			visited[dep] = true
			result = append(result, dep)
			queue = append(queue, dep)
		}
	}
	return result
}

// Path returns a shortest dependency path from one node to another, or nil
// if there is none.
func (g *Graph) Path(from, to string) []string {
	start, end := g.Get(from), g.Get(to)
	if start == nil || end == nil {
		return nil
	}
	if start == end {
		return []string{start.Name}
	}

	parent := map[string]string{start.Name: ""}
	queue := []string{start.Name}
	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]
		for _, dep := range g.Nodes[current].Dependencies {
			if _, seen := parent[dep]; seen {
				continue
			}
			parent[dep] = current
			if dep == end.Name {
				var path []string
				for n := dep; n != ""; n = parent[n] {
					path = append([]string{n}, path...)
				}
				return path
			}
			queue = append(queue, dep)
		}
	}
	return nil
}

// Roots returns the entry nodes nothing depends on, in insertion order.
func (g *Graph) Roots() []string {
	var roots []string
	for _, name := range g.order {
		if node := g.Nodes[name]; !node.External && len(node.Dependents) == 0 {
			roots = append(roots, name)
		}
	}
	return roots
}

// Leaves returns the nodes without dependencies, in insertion order.
func (g *Graph) Leaves() []string {
	var leaves []string
	for _, name := range g.order {
		if len(g.Nodes[name].Dependencies) == 0 {
			leaves = append(leaves, name)
		}
	}
	return leaves
}

// HasCycles returns true if the graph contains cycles.
func (g *Graph) HasCycles() bool {
	return len(g.FindCycles()) > 0
}

// FindCycles returns the cycles found by a depth-first walk in insertion
// order. Each cycle starts and ends with the same node.
func (g *Graph) FindCycles() [][]string {
	var cycles [][]string
	visited := make(map[string]bool)
	recStack := make(map[string]bool)
	var path []string

	var walk func(name string)
	walk = func(name string) {
		visited[name] = true
		recStack[name] = true
		path = append(path, name)

		for _, dep := range g.Nodes[name].Dependencies {
			if !visited[dep] {
				walk(dep)
				continue
			}
			if !recStack[dep] {
				continue
			}
			for i, n := range path {
				if n == dep {
					cycle := append([]string(nil), path[i:]...)
					cycles = append(cycles, append(cycle, dep))
					break
				}
			}
		}

		path = path[:len(path)-1]
		recStack[name] = false
	}

	for _, name := range g.order {
		if !visited[name] {
			walk(name)
		}
	}
	return cycles
}

// Stats returns statistics about the graph.
func (g *Graph) Stats() Stats {
	var s Stats
	for _, node := range g.Nodes {
		switch {
		case node.External:
			s.External++
		case node.Synthetic:
			s.Synthetic++
			s.Entries++
		default:
			s.Entries++
		}
		s.Edges += len(node.Dependencies)
	}
	s.MaxDepth = g.maxDepth()
	return s
}

// maxDepth returns the longest acyclic dependency chain, in edges.
func (g *Graph) maxDepth() int {
	depths := make(map[string]int)
	onPath := make(map[string]bool)

	var depth func(name string) int
	depth = func(name string) int {
		if d, ok := depths[name]; ok {
			return d
		}
		onPath[name] = true
		longest := 0
		for _, dep := range g.Nodes[name].Dependencies {
			if onPath[dep] {
				continue
			}
			if d := depth(dep) + 1; d > longest {
				longest = d
			}
		}
		delete(onPath, name)
		depths[name] = longest
		return longest
	}

	maxDepth := 0
	for _, name := range g.order {
		if d := depth(name); d > maxDepth {
			maxDepth = d
		}
	}
	return maxDepth
}
