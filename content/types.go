// Package content selects the files of a NuGet package that apply to a
// build target.
//
// A package ships several competing file layouts (ref/, lib/, runtimes/,
// tools/). For every configured Target the Resolver scores the groups each
// layout produces against the target's Criteria and keeps the best group per
// asset role:
//
//   - compile-time assemblies (ref/ preferred over lib/)
//   - runtime assemblies (falling back to the compile group)
//   - auxiliary tool files
//
// Conventions and criteria are plain data: ordered tables of path patterns
// and match rules, scored by a pure function.
package content

import (
	"slices"

	"github.com/albertocavalcante/go-nuget2bazel/framework"
	"github.com/albertocavalcante/go-nuget2bazel/nuget"
)

// Target is one build configuration content is resolved for.
type Target struct {
	Framework framework.Framework `json:"framework" yaml:"framework" toml:"framework"`

	// RuntimeIdentifier narrows the target to an OS/CPU, e.g. "linux-x64".
	// Empty means platform-neutral.
	RuntimeIdentifier string `json:"runtime,omitempty" yaml:"runtime,omitempty" toml:"runtime,omitempty"`
}

// String returns "framework" or "framework/rid".
func (t Target) String() string {
	if t.RuntimeIdentifier == "" {
		return t.Framework.String()
	}
	return t.Framework.String() + "/" + t.RuntimeIdentifier
}

// Role is the asset role a group was selected for.
type Role string

const (
	RoleCompile Role = "compile"
	RoleRuntime Role = "runtime"
	RoleTool    Role = "tool"
)

// Group is the best-matching file subset of a package for one target and
// role. Items are package-relative paths without duplicates.
type Group struct {
	Framework framework.Framework
	Items     []string
}

// Clone returns a deep copy.
func (g Group) Clone() Group {
	return Group{Framework: g.Framework, Items: slices.Clone(g.Items)}
}

// ResolvedPackage is a package annotated with its selected content groups.
type ResolvedPackage struct {
	Package *nuget.Package

	// LibGroups are the compile-time groups, one per matching target.
	LibGroups []Group

	// RuntimeGroups are the run-time groups, one per matching target.
	RuntimeGroups []Group

	// ToolGroups are the tool groups, one per matching target.
	ToolGroups []Group
}

// ID returns the package id.
func (p *ResolvedPackage) ID() string {
	return p.Package.ID
}

// HasRuntimeContent reports whether any runtime group carries files.
func (p *ResolvedPackage) HasRuntimeContent() bool {
	for _, g := range p.RuntimeGroups {
		if len(g.Items) > 0 {
			return true
		}
	}
	return false
}

// RuntimeFileCount returns the number of runtime items across all groups.
func (p *ResolvedPackage) RuntimeFileCount() int {
	n := 0
	for _, g := range p.RuntimeGroups {
		n += len(g.Items)
	}
	return n
}
