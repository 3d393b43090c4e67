package workspace

import (
	"strings"

	"github.com/albertocavalcante/go-nuget2bazel/content"
	"github.com/albertocavalcante/go-nuget2bazel/nuget"
)

// Entry is one buildable unit of the emitted workspace. Entries are never
// modified after they are yielded.
type Entry struct {
	// ID and Version identify the NuGet package the entry downloads.
	// Version is the effective version after overrides.
	ID      string
	Version string

	// Name overrides the rule name. Synthetic siblings carry the stem they
	// represent; regular entries leave it empty and use the id.
	Name string

	// Checksum is the sha256 of the package archive. Empty means unknown.
	Checksum string

	DependencyGroups []nuget.DependencyGroup
	RuntimeGroups    []content.Group
	ToolGroups       []content.Group

	// MainFile overrides the assembly the rule exposes as its library.
	MainFile string

	// Source is the package feed URL. Empty means the default feed.
	Source string
}

// RuleName returns the Bazel repository name of the entry.
func (e *Entry) RuleName() string {
	if e.Name != "" {
		return strings.ToLower(e.Name)
	}
	return strings.ToLower(e.ID)
}

// IsSynthetic reports whether the entry is a sibling split off a
// multi-assembly package.
func (e *Entry) IsSynthetic() bool {
	return e.Name != ""
}

// Label returns the label other rules use to depend on a package id.
func Label(id string) string {
	return "@" + strings.ToLower(id) + "//:lib"
}

// Dependencies returns the distinct dependency ids across all groups in
// first-seen order.
func (e *Entry) Dependencies() []string {
	seen := make(map[string]bool)
	var ids []string
	for _, g := range e.DependencyGroups {
		for _, d := range g.Dependencies {
			key := nuget.Key(d.ID)
			if seen[key] {
				continue
			}
			seen[key] = true
			ids = append(ids, d.ID)
		}
	}
	return ids
}

func (e *Entry) String() string {
	if e.Name != "" {
		return e.Name + " (" + e.ID + "@" + e.Version + ")"
	}
	return e.ID + "@" + e.Version
}
