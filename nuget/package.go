// Package nuget describes resolved NuGet packages as they enter the
// conversion: identity, declared dependency groups and the flat list of
// files shipped in the package archive.
//
// Reading archives and parsing .nuspec files happens elsewhere; this package
// only holds the parsed result and loads it from descriptor files.
package nuget

import (
	"path"
	"strings"

	"github.com/albertocavalcante/go-nuget2bazel/framework"
)

// Package is a resolved package descriptor. It is immutable input.
type Package struct {
	// ID is the package id. Ids compare case-insensitively.
	ID string `json:"id" yaml:"id"`

	// Version is the resolved version as declared in the lock closure.
	Version string `json:"version" yaml:"version"`

	// Checksum is the archive SHA-256, empty when unknown.
	Checksum string `json:"sha256,omitempty" yaml:"sha256,omitempty"`

	// DependencyGroups are the per-framework dependency declarations.
	DependencyGroups []DependencyGroup `json:"dependency_groups,omitempty" yaml:"dependency_groups,omitempty"`

	// Files lists every file in the package, relative to its root.
	// A nil list means the listing is missing.
	Files []string `json:"files" yaml:"files"`
}

// DependencyGroup holds the dependencies declared for one target framework.
// A group without a framework applies to every target.
type DependencyGroup struct {
	TargetFramework framework.Framework `json:"target_framework" yaml:"target_framework"`
	Dependencies    []Dependency        `json:"dependencies,omitempty" yaml:"dependencies,omitempty"`
}

// Dependency references another package by id.
type Dependency struct {
	ID string `json:"id" yaml:"id"`

	// Version is the declared version range, kept verbatim.
	Version string `json:"version,omitempty" yaml:"version,omitempty"`
}

// String returns "id@version".
func (p *Package) String() string {
	if p == nil {
		return "<nil>"
	}
	return p.ID + "@" + p.Version
}

// SameID reports whether two package ids are equal ignoring case.
func SameID(a, b string) bool {
	return strings.EqualFold(a, b)
}

// Key returns the case-folded form of an id, suitable as a map key.
func Key(id string) string {
	return strings.ToLower(id)
}

// GroupFor returns the dependency group declared for exactly f.
func (p *Package) GroupFor(f framework.Framework) (DependencyGroup, bool) {
	for _, g := range p.DependencyGroups {
		if g.TargetFramework.Equal(f) {
			return g, true
		}
	}
	return DependencyGroup{}, false
}

// Validate checks the descriptor structure.
// Errors are *InputError values carrying the package identity.
func (p *Package) Validate() error {
	if p == nil {
		return &InputError{Err: ErrNilPackage}
	}
	if strings.TrimSpace(p.ID) == "" {
		return p.inputError(ErrMissingID)
	}
	if p.Files == nil {
		return p.inputError(ErrMissingFiles)
	}
	for _, f := range p.Files {
		if err := validatePath(f); err != nil {
			return p.inputError(err)
		}
	}
	for _, g := range p.DependencyGroups {
		for _, d := range g.Dependencies {
			if strings.TrimSpace(d.ID) == "" {
				return p.inputError(&DependencyError{Framework: g.TargetFramework.String(), Err: ErrInvalidDependency})
			}
		}
	}
	return nil
}

func (p *Package) inputError(err error) error {
	return &InputError{ID: p.ID, Version: p.Version, Err: err}
}

// NormalizePath converts a package-relative path to forward slashes.
func NormalizePath(p string) string {
	return strings.ReplaceAll(p, "\\", "/")
}

func validatePath(p string) error {
	n := NormalizePath(p)
	if strings.TrimSpace(n) == "" {
		return &PathError{Path: p, Reason: "empty path"}
	}
	if strings.HasPrefix(n, "/") || (len(n) > 1 && n[1] == ':') {
		return &PathError{Path: p, Reason: "absolute path"}
	}
	for _, segment := range strings.Split(path.Clean(n), "/") {
		if segment == ".." {
			return &PathError{Path: p, Reason: "path escapes package root"}
		}
	}
	return nil
}
