// Package workspace turns resolved NuGet packages into Bazel workspace
// entries and renders them as nuget_package rules.
//
// Building is lazy: Build returns an iterator yielding zero or more entries
// per package. Packages whose runtime assemblies span several file stems
// are split into one synthetic sibling per extra stem, yielded before the
// main entry, which depends on every sibling.
package workspace

import (
	"context"
	"iter"
	"log/slog"
	"path"
	"runtime"
	"slices"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/albertocavalcante/go-nuget2bazel/content"
	"github.com/albertocavalcante/go-nuget2bazel/deps"
	"github.com/albertocavalcante/go-nuget2bazel/framework"
	"github.com/albertocavalcante/go-nuget2bazel/nuget"
)

// Builder builds workspace entries. It is safe for concurrent use once
// constructed.
type Builder struct {
	pruner      *deps.Pruner
	policy      Policy
	mainFile    string
	concurrency int
	logger      *slog.Logger
}

// BuilderOption configures a Builder.
type BuilderOption func(*Builder)

// WithPolicy sets the source and version exceptions.
func WithPolicy(p Policy) BuilderOption {
	return func(b *Builder) {
		b.policy = p
	}
}

// WithMainFile sets the main-file override of every non-synthetic entry.
func WithMainFile(name string) BuilderOption {
	return func(b *Builder) {
		b.mainFile = name
	}
}

// WithConcurrency bounds the number of packages BuildAll works on at once.
// Values below one mean GOMAXPROCS.
func WithConcurrency(n int) BuilderOption {
	return func(b *Builder) {
		b.concurrency = n
	}
}

// WithLogger sets a structured logger for build diagnostics.
// If not set, logging is disabled.
func WithLogger(l *slog.Logger) BuilderOption {
	return func(b *Builder) {
		if l != nil {
			b.logger = l
		}
	}
}

// NewBuilder returns a builder pruning dependencies with pruner.
func NewBuilder(pruner *deps.Pruner, opts ...BuilderOption) *Builder {
	b := &Builder{
		pruner: pruner,
		logger: slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(b)
	}
	if b.concurrency < 1 {
		b.concurrency = runtime.GOMAXPROCS(0)
	}
	return b
}

// Build returns the entries of pkg. The sequence is finite and yields at
// most one error, after which it stops.
func (b *Builder) Build(pkg *content.ResolvedPackage) iter.Seq2[*Entry, error] {
	return func(yield func(*Entry, error) bool) {
		id, declared := pkg.Package.ID, pkg.Package.Version

		groups, err := b.pruner.Prune(id, pkg.Package.DependencyGroups)
		if err != nil {
			yield(nil, &PackageError{ID: id, Version: declared, Err: err})
			return
		}

		if !pkg.HasRuntimeContent() && !hasEdges(groups) {
			b.logger.Debug("skipping package without content or dependencies", "package", id, "version", declared)
			return
		}

		base := Entry{
			ID:       id,
			Version:  declared,
			Checksum: pkg.Package.Checksum,
			Source:   b.policy.SourceFor(id),
		}
		if v, ok := b.policy.VersionFor(id, declared); ok {
			b.logger.Debug("version overridden", "package", id, "from", declared, "to", v)
			base.Version = v
		}
		if base.Source != "" {
			b.logger.Debug("source overridden", "package", id, "source", base.Source)
		}

		stems := runtimeStems(pkg.RuntimeGroups)
		if len(stems) <= 1 {
			e := base
			e.DependencyGroups = groups
			e.RuntimeGroups = cloneGroups(pkg.RuntimeGroups)
			if len(e.RuntimeGroups) == 0 {
				e.RuntimeGroups = cloneGroups(pkg.LibGroups)
			}
			e.ToolGroups = cloneGroups(pkg.ToolGroups)
			e.MainFile = b.mainFile
			yield(&e, nil)
			return
		}

		main := stems[0]
		for _, s := range stems {
			if strings.EqualFold(s, id) {
				main = s
				break
			}
		}
		siblings := slices.DeleteFunc(slices.Clone(stems), func(s string) bool { return s == main })
		b.logger.Debug("splitting multi-assembly package", "package", id, "main", main, "siblings", siblings)

		for _, s := range siblings {
			e := base
			e.Name = s
			e.DependencyGroups = []nuget.DependencyGroup{}
			e.RuntimeGroups = filterStem(pkg.RuntimeGroups, s)
			e.ToolGroups = []content.Group{}
			if !yield(&e, nil) {
				return
			}
		}

		e := base
		e.DependencyGroups = withSiblings(groups, siblings)
		e.RuntimeGroups = filterStem(pkg.RuntimeGroups, main)
		e.ToolGroups = cloneGroups(pkg.ToolGroups)
		e.MainFile = b.mainFile
		yield(&e, nil)
	}
}

// BuildAll builds every package concurrently and returns the entries in
// input order. The first error cancels the remaining work.
func (b *Builder) BuildAll(ctx context.Context, pkgs []*content.ResolvedPackage) ([]*Entry, error) {
	results := make([][]*Entry, len(pkgs))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(b.concurrency)
	for i, pkg := range pkgs {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			for e, err := range b.Build(pkg) {
				if err != nil {
					return err
				}
				results[i] = append(results[i], e)
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	var entries []*Entry
	for _, r := range results {
		entries = append(entries, r...)
	}
	return entries, nil
}

func hasEdges(groups []nuget.DependencyGroup) bool {
	for _, g := range groups {
		if len(g.Dependencies) > 0 {
			return true
		}
	}
	return false
}

// stem returns a file name without directory and extension.
func stem(file string) string {
	base := path.Base(file)
	return strings.TrimSuffix(base, path.Ext(base))
}

// runtimeStems returns the distinct stems of all runtime items,
// case-insensitively, keeping the first spelling and order.
func runtimeStems(groups []content.Group) []string {
	seen := make(map[string]bool)
	var stems []string
	for _, g := range groups {
		for _, item := range g.Items {
			s := stem(item)
			key := strings.ToLower(s)
			if seen[key] {
				continue
			}
			seen[key] = true
			stems = append(stems, s)
		}
	}
	return stems
}

func filterStem(groups []content.Group, s string) []content.Group {
	out := make([]content.Group, 0, len(groups))
	for _, g := range groups {
		filtered := content.Group{Framework: g.Framework, Items: []string{}}
		for _, item := range g.Items {
			if strings.EqualFold(stem(item), s) {
				filtered.Items = append(filtered.Items, item)
			}
		}
		out = append(out, filtered)
	}
	return out
}

func cloneGroups(groups []content.Group) []content.Group {
	out := make([]content.Group, 0, len(groups))
	for _, g := range groups {
		out = append(out, g.Clone())
	}
	return out
}

// withSiblings appends one edge per sibling to every group. Without groups
// the edges go into a single framework-agnostic group.
func withSiblings(groups []nuget.DependencyGroup, siblings []string) []nuget.DependencyGroup {
	if len(groups) == 0 {
		groups = []nuget.DependencyGroup{{TargetFramework: framework.Any}}
	}
	out := make([]nuget.DependencyGroup, 0, len(groups))
	for _, g := range groups {
		d := slices.Clone(g.Dependencies)
		for _, s := range siblings {
			d = append(d, nuget.Dependency{ID: s})
		}
		out = append(out, nuget.DependencyGroup{TargetFramework: g.TargetFramework, Dependencies: d})
	}
	return out
}
