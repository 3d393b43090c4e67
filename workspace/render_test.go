package workspace

import (
	"maps"
	"slices"
	"strings"
	"testing"

	"github.com/bazelbuild/buildtools/build"

	"github.com/albertocavalcante/go-nuget2bazel/content"
	"github.com/albertocavalcante/go-nuget2bazel/framework"
	"github.com/albertocavalcante/go-nuget2bazel/internal/buildutil"
	"github.com/albertocavalcante/go-nuget2bazel/nuget"
)

func sampleEntry() *Entry {
	net472 := framework.MustParse("net472")
	return &Entry{
		ID:       "Foo.Bar",
		Version:  "1.2.3",
		Checksum: "deadbeef",
		Source:   AfasFeed,
		DependencyGroups: []nuget.DependencyGroup{
			{TargetFramework: framework.MustParse("netstandard2.0"), Dependencies: []nuget.Dependency{{ID: "Other"}}},
			{TargetFramework: framework.MustParse("net45"), Dependencies: []nuget.Dependency{{ID: "Legacy.Dep"}}},
		},
		RuntimeGroups: []content.Group{{Framework: net472, Items: []string{"lib/net45/Foo.Bar.xml", "lib/net45/Foo.Bar.dll"}}},
		ToolGroups:    []content.Group{{Framework: net472, Items: []string{"tools/foo.exe"}}},
	}
}

func renderOne(t *testing.T, e *Entry, targets []content.Target) *build.CallExpr {
	t.Helper()
	out := Format([]*Entry{e}, targets)
	f, err := build.ParseBzl("out.bzl", out)
	if err != nil {
		t.Fatalf("rendered output does not parse: %v\n%s", err, out)
	}
	calls := buildutil.Calls(f, RuleKind)
	if len(calls) != 1 {
		t.Fatalf("got %d calls, want 1:\n%s", len(calls), out)
	}
	return calls[0]
}

func TestRule(t *testing.T) {
	call := renderOne(t, sampleEntry(), testTargets)

	for attr, want := range map[string]string{
		"name":    "foo.bar",
		"package": "foo.bar",
		"version": "1.2.3",
		"sha256":  "deadbeef",
		"source":  AfasFeed,
	} {
		if got := buildutil.String(call, attr); got != want {
			t.Errorf("%s = %q, want %q", attr, got, want)
		}
	}

	if got := buildutil.StringDict(call, "lib"); got["net472"] != "lib/net45/Foo.Bar.dll" {
		t.Errorf("lib = %v", got)
	}
	// net45 is nearer to net472 than netstandard2.0.
	if got := buildutil.StringListDict(call, "deps"); !slices.Equal(got["net472"], []string{"@legacy.dep//:lib"}) {
		t.Errorf("deps = %v", got)
	}
	if got := buildutil.StringListDict(call, "files"); len(got["net472"]) != 2 {
		t.Errorf("files = %v", got)
	}
	if got := buildutil.StringListDict(call, "tools"); !slices.Equal(got["net472"], []string{"tools/foo.exe"}) {
		t.Errorf("tools = %v", got)
	}
	if got := buildutil.String(call, "main_file"); got != "" {
		t.Errorf("main_file = %q, want unset", got)
	}
}

func TestRule_MainFileAndSynthetic(t *testing.T) {
	e := sampleEntry()
	e.Name = "Sibling"
	e.MainFile = "foo.bar.xml"
	e.Source = ""

	call := renderOne(t, e, testTargets)
	if got := buildutil.String(call, "name"); got != "sibling" {
		t.Errorf("name = %q, want sibling", got)
	}
	if got := buildutil.String(call, "package"); got != "foo.bar" {
		t.Errorf("package = %q, want foo.bar", got)
	}
	if got := buildutil.StringDict(call, "lib"); got["net472"] != "lib/net45/Foo.Bar.xml" {
		t.Errorf("lib = %v", got)
	}
	if buildutil.String(call, "source") != "" {
		t.Error("source should be unset")
	}
}

func TestRule_DistinctTargetFrameworks(t *testing.T) {
	targets := []content.Target{
		{Framework: framework.MustParse("net472")},
		{Framework: framework.MustParse("net472"), RuntimeIdentifier: "win-x64"},
		{Framework: framework.MustParse("netcoreapp3.1")},
	}
	call := renderOne(t, sampleEntry(), targets)

	deps := buildutil.StringListDict(call, "deps")
	if got := slices.Sorted(maps.Keys(deps)); !slices.Equal(got, []string{"net472", "netcoreapp3.1"}) {
		t.Errorf("deps keys = %v", got)
	}
	if !slices.Equal(deps["netcoreapp3.1"], []string{"@other//:lib"}) {
		t.Errorf("netcoreapp3.1 deps = %v", deps["netcoreapp3.1"])
	}
	// No runtime group for netcoreapp3.1.
	if _, ok := buildutil.StringListDict(call, "files")["netcoreapp3.1"]; ok {
		t.Error("files should not have a netcoreapp3.1 key")
	}
}

func TestMerge(t *testing.T) {
	existing := `load("@rules_dotnet//dotnet:defs.bzl", "nuget_package")

nuget_package(
    name = "foo.bar",
    package = "foo.bar",
    version = "1.0.0",
    sha256 = "",
)

nuget_package(
    name = "keep.me",
    package = "keep.me",
    version = "3.0.0",
    sha256 = "",
)
`
	f, err := Parse("WORKSPACE", []byte(existing))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}

	added := &Entry{ID: "New.One", Version: "0.1.0", RuntimeGroups: []content.Group{}}
	result := Merge(f, []*Entry{sampleEntry(), added}, testTargets)

	if !slices.Equal(result.Replaced, []string{"foo.bar"}) || !slices.Equal(result.Added, []string{"new.one"}) {
		t.Errorf("MergeResult = %+v", result)
	}

	got := ExistingEntries(f)
	want := map[string]string{"foo.bar": "1.2.3", "keep.me": "3.0.0", "new.one": "0.1.0"}
	if !maps.Equal(got, want) {
		t.Errorf("ExistingEntries() = %v, want %v", got, want)
	}

	out := string(build.FormatWithoutRewriting(f))
	if !strings.HasPrefix(out, `load("@rules_dotnet//dotnet:defs.bzl", "nuget_package")`) {
		t.Errorf("load statement not preserved:\n%s", out)
	}
	if strings.Index(out, `"foo.bar"`) > strings.Index(out, `"keep.me"`) {
		t.Errorf("replaced rule moved:\n%s", out)
	}
}

func TestParse_Error(t *testing.T) {
	if _, err := Parse("deps.bzl", []byte("nuget_package(")); err == nil {
		t.Error("Parse() error = nil, want syntax error")
	}
}
