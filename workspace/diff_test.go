package workspace

import (
	"slices"
	"testing"
)

func TestDiffEntries(t *testing.T) {
	existing := map[string]string{
		"foo":    "1.0.0",
		"bar":    "2.0.0",
		"baz":    "1.5.0",
		"legacy": "0.1.0",
		"same":   "3.0.0",
	}
	entries := []*Entry{
		{ID: "Foo", Version: "1.1.0"},
		{ID: "Bar", Version: "1.9.0"},
		{ID: "Baz", Version: "1.5.0.1"},
		{ID: "Same", Version: "3.0.0"},
		{ID: "New", Version: "0.1.0"},
		{ID: "Split", Name: "Split.Extra", Version: "1.0.0"},
	}

	d := DiffEntries(existing, entries)

	if got := names(d.Added); !slices.Equal(got, []string{"new", "split.extra"}) {
		t.Errorf("Added = %v", got)
	}
	if got := names(d.Removed); !slices.Equal(got, []string{"legacy"}) {
		t.Errorf("Removed = %v", got)
	}
	if len(d.Upgraded) != 2 || d.Upgraded[0].Name != "baz" || d.Upgraded[1].Name != "foo" {
		t.Errorf("Upgraded = %+v", d.Upgraded)
	}
	if len(d.Downgraded) != 1 || d.Downgraded[0] != (EntryUpgrade{Name: "bar", OldVersion: "2.0.0", NewVersion: "1.9.0"}) {
		t.Errorf("Downgraded = %+v", d.Downgraded)
	}
	if d.TotalChanges() != 6 || d.IsEmpty() {
		t.Errorf("TotalChanges() = %d", d.TotalChanges())
	}
}

func TestDiffEntries_Empty(t *testing.T) {
	d := DiffEntries(map[string]string{"foo": "1.0.0"}, []*Entry{{ID: "Foo", Version: "1.0.0"}})
	if !d.IsEmpty() {
		t.Errorf("IsEmpty() = false: %+v", d)
	}
	if d := DiffEntries(nil, nil); !d.IsEmpty() {
		t.Errorf("nil inputs: %+v", d)
	}
}

func TestCompareVersions(t *testing.T) {
	tests := []struct {
		a, b string
		want int
	}{
		{"1.0.0", "1.0.0", 0},
		{"1.10.0", "1.9.0", 1},
		{"1.0.0-beta", "1.0.0", -1},
		{"4.5.0.1", "4.5.0", 1},
		{"4.5", "4.5.0.0", 0},
		{"2.0.0.10", "2.0.0.9", 1},
		{"1.0.0-rc.1", "1.0.0-rc.2", -1},
		{"2.0.0.0", "2.0.0", 0},
		{"2.0.0.0", "2.0.1", -1},
	}

	for _, tt := range tests {
		t.Run(tt.a+" vs "+tt.b, func(t *testing.T) {
			if got := CompareVersions(tt.a, tt.b); got != tt.want {
				t.Errorf("CompareVersions(%q, %q) = %d, want %d", tt.a, tt.b, got, tt.want)
			}
		})
	}
}

func names(changes []EntryChange) []string {
	out := make([]string, 0, len(changes))
	for _, c := range changes {
		out = append(out, c.Name)
	}
	return out
}
