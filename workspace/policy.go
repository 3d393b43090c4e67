package workspace

import (
	"strings"

	"github.com/hashicorp/go-version"
)

// SourceRule maps package ids to a private feed. A rule matches when the id
// starts with Prefix or ends with Suffix (case-insensitive); an empty
// Prefix or Suffix never matches.
type SourceRule struct {
	Prefix string `json:"prefix,omitempty" yaml:"prefix,omitempty" toml:"prefix,omitempty"`
	Suffix string `json:"suffix,omitempty" yaml:"suffix,omitempty" toml:"suffix,omitempty"`
	URL    string `json:"url" yaml:"url" toml:"url"`
}

// Matches reports whether the rule applies to id.
func (r SourceRule) Matches(id string) bool {
	lower := strings.ToLower(id)
	if r.Prefix != "" && strings.HasPrefix(lower, strings.ToLower(r.Prefix)) {
		return true
	}
	return r.Suffix != "" && strings.HasSuffix(lower, strings.ToLower(r.Suffix))
}

// VersionOverride replaces the version of a package known to be broken for
// the build tool.
type VersionOverride struct {
	ID string `json:"id" yaml:"id" toml:"id"`

	// Version selects the affected versions: a constraint such as "2.0.0"
	// or ">= 2.0, < 2.1" when both it and the package version parse,
	// otherwise a case-insensitive literal. Versions compare the NuGet way,
	// so "2.0.0.0" matches "2.0.0".
	Version string `json:"version" yaml:"version" toml:"version"`

	Replacement string `json:"replacement" yaml:"replacement" toml:"replacement"`
}

// Matches reports whether the override applies to id at version.
func (o VersionOverride) Matches(id, ver string) bool {
	if !strings.EqualFold(o.ID, id) {
		return false
	}
	c, cerr := version.NewConstraint(o.Version)
	v, verr := version.NewVersion(ver)
	if cerr == nil && verr == nil {
		return c.Check(v)
	}
	return strings.EqualFold(o.Version, ver)
}

// Policy holds the packaging exceptions applied while building entries.
// The zero Policy applies nothing.
type Policy struct {
	SourceRules      []SourceRule      `json:"source_rules,omitempty" yaml:"source_rules,omitempty" toml:"source_rules,omitempty"`
	VersionOverrides []VersionOverride `json:"version_overrides,omitempty" yaml:"version_overrides,omitempty" toml:"version_overrides,omitempty"`
}

// AfasFeed is the private feed of the afas package family.
const AfasFeed = "https://nuget.afasgroep.nl/api/v2/package"

// DefaultPolicy returns the built-in exceptions.
func DefaultPolicy() Policy {
	return Policy{
		SourceRules: []SourceRule{
			{Prefix: "afas.", URL: AfasFeed},
			{Suffix: ".by.afas", URL: AfasFeed},
		},
		VersionOverrides: []VersionOverride{
			// 2.0.0 ships a zip that Bazel cannot extract (bazelbuild/bazel#9236).
			{ID: "microsoft.aspnetcore.jsonpatch", Version: "2.0.0", Replacement: "2.2.0"},
		},
	}
}

// Extend returns a policy with other's rules appended after p's.
func (p Policy) Extend(other Policy) Policy {
	return Policy{
		SourceRules:      append(append([]SourceRule(nil), p.SourceRules...), other.SourceRules...),
		VersionOverrides: append(append([]VersionOverride(nil), p.VersionOverrides...), other.VersionOverrides...),
	}
}

// SourceFor returns the URL of the first matching source rule, or "".
func (p Policy) SourceFor(id string) string {
	for _, r := range p.SourceRules {
		if r.Matches(id) {
			return r.URL
		}
	}
	return ""
}

// VersionFor returns the effective version of id. ok reports whether an
// override applied.
func (p Policy) VersionFor(id, ver string) (effective string, ok bool) {
	for _, o := range p.VersionOverrides {
		if o.Matches(id, ver) {
			return o.Replacement, true
		}
	}
	return ver, false
}
