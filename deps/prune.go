package deps

import (
	"slices"

	"github.com/albertocavalcante/go-nuget2bazel/framework"
	"github.com/albertocavalcante/go-nuget2bazel/nuget"
)

// Pruner rewrites dependency groups against a local package index.
type Pruner struct {
	Index *Index

	// Exempt reports ids whose edges are always kept. Nil exempts nothing.
	Exempt func(id string) bool
}

// Prune returns groups with every edge to a content-free local package
// replaced by that package's own pruned dependencies for the exact same
// framework. A pass-through package without such a group is dropped.
//
// Edges within a group are deduplicated case-insensitively, keeping the
// first occurrence; edges back to owner are dropped. groups is not
// modified.
func (p *Pruner) Prune(owner string, groups []nuget.DependencyGroup) ([]nuget.DependencyGroup, error) {
	memo := make(map[string][]nuget.Dependency)
	out := make([]nuget.DependencyGroup, 0, len(groups))
	for _, g := range groups {
		expanded, err := p.expand(g.TargetFramework, g.Dependencies, []string{owner}, memo)
		if err != nil {
			return nil, err
		}
		out = append(out, nuget.DependencyGroup{
			TargetFramework: g.TargetFramework,
			Dependencies:    dedupe(owner, expanded),
		})
	}
	return out, nil
}

// expand replaces pass-through edges in list. memo holds the finished
// expansion of each pass-through package per framework; an entry is only
// stored once its expansion completed without a cycle.
func (p *Pruner) expand(f framework.Framework, list []nuget.Dependency, path []string, memo map[string][]nuget.Dependency) ([]nuget.Dependency, error) {
	var out []nuget.Dependency
	for _, d := range list {
		if p.keep(d.ID) {
			out = append(out, d)
			continue
		}

		if slices.ContainsFunc(path, func(id string) bool { return nuget.SameID(id, d.ID) }) {
			cycle := append(slices.Clone(path), d.ID)
			return nil, &CycleError{Path: cycle}
		}

		key := nuget.Key(d.ID) + "|" + f.String()
		if sub, ok := memo[key]; ok {
			out = append(out, sub...)
			continue
		}

		local, _ := p.Index.Lookup(d.ID)
		group, ok := local.Package.GroupFor(f)
		if !ok {
			memo[key] = nil
			continue
		}

		sub, err := p.expand(f, group.Dependencies, append(slices.Clone(path), d.ID), memo)
		if err != nil {
			return nil, err
		}
		sub = dedupe("", sub)
		memo[key] = sub
		out = append(out, sub...)
	}
	return out, nil
}

// keep reports whether an edge to id survives as is.
func (p *Pruner) keep(id string) bool {
	if p.Exempt != nil && p.Exempt(id) {
		return true
	}
	local, ok := p.Index.Lookup(id)
	if !ok {
		return true
	}
	return local.HasRuntimeContent()
}

// dedupe drops repeated ids and edges to owner. An empty owner drops
// repeats only.
func dedupe(owner string, list []nuget.Dependency) []nuget.Dependency {
	seen := make(map[string]bool, len(list))
	out := make([]nuget.Dependency, 0, len(list))
	for _, d := range list {
		key := nuget.Key(d.ID)
		if seen[key] || (owner != "" && nuget.SameID(d.ID, owner)) {
			continue
		}
		seen[key] = true
		out = append(out, d)
	}
	return out
}
