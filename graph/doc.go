// Package graph provides a dependency graph view over emitted workspace
// entries.
//
// Nodes are keyed by Bazel repository name (the lower-cased rule name), so
// synthetic sibling entries appear as their own nodes and the edges from a
// main entry to its siblings are visible. Dependencies on packages that are
// not emitted (platform assemblies, out-of-closure packages) become
// external nodes.
//
// # Building a Graph
//
//	entries, _ := builder.BuildAll(ctx, resolved)
//	g := graph.FromEntries(entries)
//
// # Querying the Graph
//
//	deps := g.DirectDeps("newtonsoft.json")
//	path := g.Path("my.app", "system.memory")
//	cycles := g.FindCycles()
//
// # Output Formats
//
//	dotString := g.ToDOT()   // Graphviz
//	textString := g.ToText() // dependency trees from every root
//	jsonBytes, _ := g.ToJSON()
package graph
