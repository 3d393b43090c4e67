package workspace

import (
	"path"
	"strings"

	"github.com/bazelbuild/buildtools/build"

	"github.com/albertocavalcante/go-nuget2bazel/content"
	"github.com/albertocavalcante/go-nuget2bazel/framework"
	"github.com/albertocavalcante/go-nuget2bazel/internal/buildutil"
)

// RuleKind is the repository rule entries render to.
const RuleKind = "nuget_package"

// Render returns a file with one nuget_package call per entry, in order.
// Per-framework attributes are keyed by the distinct target frameworks.
func Render(entries []*Entry, targets []content.Target) *build.File {
	f := &build.File{Path: "nuget_packages.bzl", Type: build.TypeBzl}
	for _, e := range entries {
		f.Stmt = append(f.Stmt, Rule(e, targets))
	}
	return f
}

// Format renders entries to Starlark source.
func Format(entries []*Entry, targets []content.Target) []byte {
	return build.FormatWithoutRewriting(Render(entries, targets))
}

// Rule builds the nuget_package call of one entry.
func Rule(e *Entry, targets []content.Target) *build.CallExpr {
	args := []build.Expr{
		buildutil.Attr("name", buildutil.Str(e.RuleName())),
		buildutil.Attr("package", buildutil.Str(strings.ToLower(e.ID))),
		buildutil.Attr("version", buildutil.Str(e.Version)),
		buildutil.Attr("sha256", buildutil.Str(e.Checksum)),
	}
	if e.Source != "" {
		args = append(args, buildutil.Attr("source", buildutil.Str(e.Source)))
	}
	if e.MainFile != "" {
		args = append(args, buildutil.Attr("main_file", buildutil.Str(e.MainFile)))
	}

	var lib, deps, files, tools []buildutil.KV
	depFrameworks := make([]framework.Framework, len(e.DependencyGroups))
	for i, g := range e.DependencyGroups {
		depFrameworks[i] = g.TargetFramework
	}

	for _, f := range targetFrameworks(targets) {
		key := f.String()
		if g, ok := groupFor(e.RuntimeGroups, f); ok {
			if main := mainItem(g.Items, e.MainFile); main != "" {
				lib = append(lib, buildutil.KV{Key: key, Value: buildutil.Str(main)})
			}
			files = append(files, buildutil.KV{Key: key, Value: buildutil.StrList(g.Items)})
		}
		if i, ok := framework.Nearest(f, depFrameworks); ok {
			var labels []string
			for _, d := range e.DependencyGroups[i].Dependencies {
				labels = append(labels, Label(d.ID))
			}
			deps = append(deps, buildutil.KV{Key: key, Value: buildutil.StrList(labels)})
		}
		if g, ok := groupFor(e.ToolGroups, f); ok && len(g.Items) > 0 {
			tools = append(tools, buildutil.KV{Key: key, Value: buildutil.StrList(g.Items)})
		}
	}

	for _, a := range []struct {
		name    string
		entries []buildutil.KV
	}{
		{"lib", lib},
		{"deps", deps},
		{"files", files},
		{"tools", tools},
	} {
		if len(a.entries) > 0 {
			args = append(args, buildutil.Attr(a.name, buildutil.Dict(a.entries)))
		}
	}

	return buildutil.Call(RuleKind, args...)
}

// targetFrameworks returns the distinct frameworks of targets in order.
func targetFrameworks(targets []content.Target) []framework.Framework {
	var out []framework.Framework
	for _, t := range targets {
		dup := false
		for _, f := range out {
			if f.Equal(t.Framework) {
				dup = true
				break
			}
		}
		if !dup {
			out = append(out, t.Framework)
		}
	}
	return out
}

func groupFor(groups []content.Group, f framework.Framework) (content.Group, bool) {
	for _, g := range groups {
		if g.Framework.Equal(f) {
			return g, true
		}
	}
	return content.Group{}, false
}

// mainItem picks the assembly a rule exposes: the item named mainFile if
// set and present, else the first .dll, else the first item.
func mainItem(items []string, mainFile string) string {
	if mainFile != "" {
		for _, item := range items {
			if strings.EqualFold(path.Base(item), mainFile) {
				return item
			}
		}
	}
	for _, item := range items {
		if strings.EqualFold(path.Ext(item), ".dll") {
			return item
		}
	}
	if len(items) > 0 {
		return items[0]
	}
	return ""
}
