// Package deps prunes dependency edges that point at content-free local
// packages.
//
// A local package without runtime files contributes nothing to a build
// except its own dependencies. The Pruner replaces every edge to such a
// pass-through package with that package's (recursively pruned)
// dependencies for the same framework, so every surviving edge points at:
//
//   - an exempt (platform-provided) package,
//   - a package outside the local closure, or
//   - a local package with runtime content.
package deps

import (
	"github.com/albertocavalcante/go-nuget2bazel/content"
	"github.com/albertocavalcante/go-nuget2bazel/nuget"
)

// Index is a read-only, case-insensitive lookup of the local package
// closure. It must be complete before pruning starts; it is safe for
// concurrent use afterwards.
type Index struct {
	byKey map[string]*content.ResolvedPackage
	order []string
}

// NewIndex indexes pkgs by id. When ids collide the first package wins.
func NewIndex(pkgs []*content.ResolvedPackage) *Index {
	ix := &Index{byKey: make(map[string]*content.ResolvedPackage, len(pkgs))}
	for _, p := range pkgs {
		if p == nil || p.Package == nil {
			continue
		}
		key := nuget.Key(p.Package.ID)
		if _, dup := ix.byKey[key]; dup {
			continue
		}
		ix.byKey[key] = p
		ix.order = append(ix.order, p.Package.ID)
	}
	return ix
}

// Lookup returns the local package with the given id.
func (ix *Index) Lookup(id string) (*content.ResolvedPackage, bool) {
	if ix == nil {
		return nil, false
	}
	p, ok := ix.byKey[nuget.Key(id)]
	return p, ok
}

// Len returns the number of indexed packages.
func (ix *Index) Len() int {
	if ix == nil {
		return 0
	}
	return len(ix.byKey)
}

// IDs returns the indexed ids in insertion order.
func (ix *Index) IDs() []string {
	if ix == nil {
		return nil
	}
	return append([]string(nil), ix.order...)
}
