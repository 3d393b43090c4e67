package content

import (
	"log/slog"
	"slices"

	"github.com/albertocavalcante/go-nuget2bazel/framework"
	"github.com/albertocavalcante/go-nuget2bazel/nuget"
)

// Resolver selects content groups for a fixed list of targets.
// A Resolver is immutable and safe for concurrent use.
type Resolver struct {
	targets     []Target
	criteria    []Criteria
	conventions Conventions
	logger      *slog.Logger
}

// ResolverOption configures a Resolver.
type ResolverOption func(*Resolver)

// WithConventions replaces the default convention table.
func WithConventions(c Conventions) ResolverOption {
	return func(r *Resolver) {
		r.conventions = c
	}
}

// WithResolverLogger sets the logger used for debug output.
func WithResolverLogger(l *slog.Logger) ResolverOption {
	return func(r *Resolver) {
		if l != nil {
			r.logger = l
		}
	}
}

// NewResolver creates a resolver for targets. Criteria are computed once.
func NewResolver(targets []Target, opts ...ResolverOption) *Resolver {
	r := &Resolver{
		targets:     slices.Clone(targets),
		conventions: DefaultConventions(),
		logger:      slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(r)
	}
	for _, t := range r.targets {
		r.criteria = append(r.criteria, CriteriaFor(t))
	}
	return r
}

// Targets returns a copy of the configured targets.
func (r *Resolver) Targets() []Target {
	return slices.Clone(r.targets)
}

// Resolve selects the compile, runtime and tool groups of pkg for every
// target. Targets without a matching group contribute nothing to that
// role. Groups carry the target's framework, not the folder's.
func (r *Resolver) Resolve(pkg *nuget.Package) (*ResolvedPackage, error) {
	if err := pkg.Validate(); err != nil {
		return nil, err
	}

	compile := collectAll(r.conventions.Compile, pkg.Files)
	runtime := collectAll(r.conventions.Runtime, pkg.Files)
	tools := collectAll(r.conventions.Tools, pkg.Files)

	out := &ResolvedPackage{Package: pkg}
	for i, t := range r.targets {
		c := r.criteria[i]

		lib := best(c, compile)
		if lib != nil {
			out.LibGroups = append(out.LibGroups, Group{Framework: t.Framework, Items: slices.Clone(lib.items)})
		}

		rt := best(c, runtime)
		if rt == nil {
			rt = lib
		}
		if rt != nil {
			out.RuntimeGroups = append(out.RuntimeGroups, Group{Framework: t.Framework, Items: slices.Clone(rt.items)})
		} else {
			r.logger.Debug("no runtime group", "package", pkg.ID, "target", t.String())
		}

		if tool := best(c, tools); tool != nil {
			out.ToolGroups = append(out.ToolGroups, Group{Framework: t.Framework, Items: slices.Clone(tool.items)})
		}
	}
	return out, nil
}

// collectAll returns the candidate groups of each convention, in order.
func collectAll(conventions []Convention, files []string) [][]*candidate {
	out := make([][]*candidate, len(conventions))
	for i, c := range conventions {
		out[i] = c.collect(files)
	}
	return out
}

// best picks the winning candidate across conventions: the lowest matching
// rule index, then the highest framework version, then the earlier
// convention. Remaining ties keep the first group seen.
func best(c Criteria, conventions [][]*candidate) *candidate {
	var (
		winner     *candidate
		winnerRule int
		winnerConv int
	)
	for ci, groups := range conventions {
		for _, g := range groups {
			ri := c.Match(g.framework, g.rid)
			if ri < 0 {
				continue
			}
			if winner == nil || better(ri, ci, g.framework, winnerRule, winnerConv, winner.framework) {
				winner, winnerRule, winnerConv = g, ri, ci
			}
		}
	}
	return winner
}

func better(rule, conv int, f framework.Framework, bestRule, bestConv int, bestF framework.Framework) bool {
	if rule != bestRule {
		return rule < bestRule
	}
	if c := f.Version.Compare(bestF.Version); c != 0 {
		return c > 0
	}
	return conv < bestConv
}
