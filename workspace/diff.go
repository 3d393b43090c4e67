package workspace

import (
	"slices"
	"strconv"
	"strings"

	"github.com/Masterminds/semver/v3"
	"github.com/hashicorp/go-version"
)

// EntryChange is an added or removed rule.
type EntryChange struct {
	Name    string `json:"name"`
	Version string `json:"version"`
}

// EntryUpgrade is a version change of an existing rule.
type EntryUpgrade struct {
	Name       string `json:"name"`
	OldVersion string `json:"old_version"`
	NewVersion string `json:"new_version"`
}

// Diff describes how a set of entries differs from the nuget_package rules
// already present in a workspace file.
//
//	f, _ := workspace.Parse("WORKSPACE", data)
//	d := workspace.DiffEntries(workspace.ExistingEntries(f), entries)
//	if !d.IsEmpty() {
//	    fmt.Printf("%d added, %d upgraded\n", len(d.Added), len(d.Upgraded))
//	}
type Diff struct {
	Added      []EntryChange  `json:"added,omitempty"`
	Removed    []EntryChange  `json:"removed,omitempty"`
	Upgraded   []EntryUpgrade `json:"upgraded,omitempty"`
	Downgraded []EntryUpgrade `json:"downgraded,omitempty"`
}

// IsEmpty returns true if there are no differences.
func (d *Diff) IsEmpty() bool {
	return d.TotalChanges() == 0
}

// TotalChanges returns the number of added, removed, upgraded and
// downgraded rules.
func (d *Diff) TotalChanges() int {
	return len(d.Added) + len(d.Removed) + len(d.Upgraded) + len(d.Downgraded)
}

// DiffEntries compares existing rule versions, keyed by rule name as
// returned by ExistingEntries, with entries. Results are sorted by name.
//
// Removed lists rules the entries no longer produce. Merge keeps such rules,
// so they usually need manual cleanup.
func DiffEntries(existing map[string]string, entries []*Entry) *Diff {
	d := &Diff{}

	current := make(map[string]string, len(entries))
	for _, e := range entries {
		current[e.RuleName()] = e.Version
	}

	for name, newVersion := range current {
		oldVersion, existed := existing[name]
		if !existed {
			d.Added = append(d.Added, EntryChange{Name: name, Version: newVersion})
			continue
		}
		switch cmp := CompareVersions(newVersion, oldVersion); {
		case cmp > 0:
			d.Upgraded = append(d.Upgraded, EntryUpgrade{Name: name, OldVersion: oldVersion, NewVersion: newVersion})
		case cmp < 0:
			d.Downgraded = append(d.Downgraded, EntryUpgrade{Name: name, OldVersion: oldVersion, NewVersion: newVersion})
		}
	}

	for name, oldVersion := range existing {
		if _, ok := current[name]; !ok {
			d.Removed = append(d.Removed, EntryChange{Name: name, Version: oldVersion})
		}
	}

	byName := func(a, b EntryChange) int { return strings.Compare(a.Name, b.Name) }
	byUpgradeName := func(a, b EntryUpgrade) int { return strings.Compare(a.Name, b.Name) }
	slices.SortFunc(d.Added, byName)
	slices.SortFunc(d.Removed, byName)
	slices.SortFunc(d.Upgraded, byUpgradeName)
	slices.SortFunc(d.Downgraded, byUpgradeName)
	return d
}

// CompareVersions orders two package versions. SemVer 2.0 versions compare
// with semver precedence. Four-part and short NuGet versions compare with
// missing segments read as zero, so "2.0.0.0" equals "2.0.0". Anything else
// compares dot-separated segments, numerically where both are numbers.
func CompareVersions(a, b string) int {
	sa, errA := semver.StrictNewVersion(a)
	sb, errB := semver.StrictNewVersion(b)
	if errA == nil && errB == nil {
		return sa.Compare(sb)
	}

	na, errA := version.NewVersion(a)
	nb, errB := version.NewVersion(b)
	if errA == nil && errB == nil {
		return na.Compare(nb)
	}

	return compareSegments(a, b)
}

func compareSegments(a, b string) int {
	sa := strings.Split(strings.ToLower(a), ".")
	sb := strings.Split(strings.ToLower(b), ".")
	for i := 0; i < max(len(sa), len(sb)); i++ {
		x, y := "0", "0"
		if i < len(sa) {
			x = sa[i]
		}
		if i < len(sb) {
			y = sb[i]
		}
		if c := compareSegment(x, y); c != 0 {
			return c
		}
	}
	return 0
}

func compareSegment(a, b string) int {
	x, errX := strconv.ParseUint(a, 10, 64)
	y, errY := strconv.ParseUint(b, 10, 64)
	if errX == nil && errY == nil {
		switch {
		case x < y:
			return -1
		case x > y:
			return 1
		}
		return 0
	}
	return strings.Compare(a, b)
}
