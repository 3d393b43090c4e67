// Package nuget2bazel converts resolved NuGet packages into Bazel workspace
// entries.
//
// # Overview
//
// A conversion runs in two phases over a closed set of local packages:
//
//   - Resolve: every package's files are matched against the asset
//     conventions and the best group is selected per target.
//   - Build: dependency edges to content-free local packages are pruned,
//     packaging policy is applied and workspace entries are emitted.
//     Packages shipping several assemblies are split into siblings.
//
// # Quick Start
//
//	pkgs, err := nuget.ReadFile("packages.json")
//	if err != nil {
//	    return err
//	}
//	result, err := nuget2bazel.Convert(ctx, pkgs,
//	    nuget2bazel.WithTargets(content.Target{Framework: framework.MustParse("net472")}),
//	)
//	if err != nil {
//	    return err
//	}
//	os.Stdout.Write(result.Format())
//
// # Thread Safety
//
// Convert may be called concurrently. Both phases run per package in
// parallel; results keep the input order.
package nuget2bazel

import (
	"context"
	"fmt"
	"runtime"

	"github.com/bazelbuild/buildtools/build"
	"golang.org/x/sync/errgroup"

	"github.com/albertocavalcante/go-nuget2bazel/content"
	"github.com/albertocavalcante/go-nuget2bazel/deps"
	"github.com/albertocavalcante/go-nuget2bazel/graph"
	"github.com/albertocavalcante/go-nuget2bazel/nuget"
	"github.com/albertocavalcante/go-nuget2bazel/workspace"
)

// Result is the outcome of a conversion.
type Result struct {
	// Targets are the targets content was resolved for.
	Targets []content.Target

	// Resolved holds the per-target content of every input package,
	// in input order.
	Resolved []*content.ResolvedPackage

	// Entries are the emitted workspace entries, in input order. Siblings
	// of a split package precede its main entry.
	Entries []*workspace.Entry
}

// Format renders the entries as a formatted .bzl file.
func (r *Result) Format() []byte {
	return workspace.Format(r.Entries, r.Targets)
}

// Merge writes the entries into an existing WORKSPACE or .bzl file.
func (r *Result) Merge(f *build.File) workspace.MergeResult {
	return workspace.Merge(f, r.Entries, r.Targets)
}

// Graph returns the dependency graph of the entries.
func (r *Result) Graph() *graph.Graph {
	return graph.FromEntries(r.Entries)
}

// Convert resolves and builds pkgs. The first fatal error of any package
// aborts the conversion.
func Convert(ctx context.Context, pkgs []*nuget.Package, opts ...Option) (*Result, error) {
	cfg, err := newConverterConfig(opts)
	if err != nil {
		return nil, err
	}
	limit := cfg.concurrency
	if limit < 1 {
		limit = runtime.GOMAXPROCS(0)
	}

	var resolverOpts []content.ResolverOption
	resolverOpts = append(resolverOpts, content.WithResolverLogger(cfg.logger))
	if cfg.conventions != nil {
		resolverOpts = append(resolverOpts, content.WithConventions(*cfg.conventions))
	}
	resolver := content.NewResolver(cfg.targets, resolverOpts...)

	cfg.logger.Debug("resolving packages", "packages", len(pkgs), "targets", len(cfg.targets))
	resolved := make([]*content.ResolvedPackage, len(pkgs))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(limit)
	for i, pkg := range pkgs {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			rp, err := resolver.Resolve(pkg)
			if err != nil {
				return fmt.Errorf("resolve: %w", err)
			}
			resolved[i] = rp
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	pruner := &deps.Pruner{
		Index:  deps.NewIndex(resolved),
		Exempt: cfg.exemptions.Contains,
	}
	builder := workspace.NewBuilder(pruner,
		workspace.WithPolicy(cfg.policy),
		workspace.WithMainFile(cfg.mainFile),
		workspace.WithConcurrency(limit),
		workspace.WithLogger(cfg.logger),
	)

	entries, err := builder.BuildAll(ctx, resolved)
	if err != nil {
		return nil, err
	}
	cfg.logger.Debug("conversion complete", "packages", len(pkgs), "entries", len(entries))

	return &Result{
		Targets:  resolver.Targets(),
		Resolved: resolved,
		Entries:  entries,
	}, nil
}

// ConvertFile reads a package descriptor file and converts its packages.
func ConvertFile(ctx context.Context, path string, opts ...Option) (*Result, error) {
	pkgs, err := nuget.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return Convert(ctx, pkgs, opts...)
}
