package buildutil

import (
	"maps"
	"slices"
	"strings"
	"testing"

	"github.com/bazelbuild/buildtools/build"
)

func parseCall(t *testing.T, content string) *build.CallExpr {
	t.Helper()
	f, err := build.ParseBzl("test.bzl", []byte(content))
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	if len(f.Stmt) == 0 {
		t.Fatal("no statements parsed")
	}
	call, ok := f.Stmt[0].(*build.CallExpr)
	if !ok {
		t.Fatalf("expected CallExpr, got %T", f.Stmt[0])
	}
	return call
}

func TestString(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		attrName string
		want     string
	}{
		{
			name:     "named string attribute",
			input:    `foo(name = "bar")`,
			attrName: "name",
			want:     "bar",
		},
		{
			name:     "missing attribute",
			input:    `foo(other = "value")`,
			attrName: "name",
			want:     "",
		},
		{
			name:     "non-string attribute",
			input:    `foo(name = 123)`,
			attrName: "name",
			want:     "",
		},
		{
			name:     "first positional when name empty",
			input:    `foo("positional")`,
			attrName: "",
			want:     "positional",
		},
		{
			name:     "multiple attributes",
			input:    `foo(a = "first", b = "second", c = "third")`,
			attrName: "b",
			want:     "second",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			call := parseCall(t, tt.input)
			got := String(call, tt.attrName)
			if got != tt.want {
				t.Errorf("String() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestStringList(t *testing.T) {
	call := parseCall(t, `foo(files = ["a.dll", 1, "b.dll"], name = "x")`)

	if got, want := StringList(call, "files"), []string{"a.dll", "b.dll"}; !slices.Equal(got, want) {
		t.Errorf("StringList() = %v, want %v", got, want)
	}
	if got := StringList(call, "name"); got != nil {
		t.Errorf("StringList(non-list) = %v, want nil", got)
	}
}

func TestStringDicts(t *testing.T) {
	call := parseCall(t, `nuget_package(
    lib = {"net472": "lib/net45/Foo.dll", "bad": 1},
    deps = {"net472": ["@bar//:lib"], "netstandard2.0": []},
)`)

	lib := StringDict(call, "lib")
	if want := map[string]string{"net472": "lib/net45/Foo.dll"}; !maps.Equal(lib, want) {
		t.Errorf("StringDict() = %v, want %v", lib, want)
	}

	deps := StringListDict(call, "deps")
	if len(deps) != 2 || !slices.Equal(deps["net472"], []string{"@bar//:lib"}) || len(deps["netstandard2.0"]) != 0 {
		t.Errorf("StringListDict() = %v", deps)
	}

	if StringDict(call, "missing") != nil {
		t.Error("StringDict(missing) should be nil")
	}
}

func TestFuncName(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"simple function", `foo()`, "foo"},
		{"function with args", `nuget_package(name = "test")`, "nuget_package"},
		{"method call", `native.foo()`, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			call := parseCall(t, tt.input)
			got := FuncName(call)
			if got != tt.want {
				t.Errorf("FuncName() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestIsFuncCall(t *testing.T) {
	call := parseCall(t, `nuget_package(name = "test")`)

	if !IsFuncCall(call, "nuget_package") {
		t.Error(`IsFuncCall(call, "nuget_package") = false, want true`)
	}
	if IsFuncCall(call, "http_archive") {
		t.Error(`IsFuncCall(call, "http_archive") = true, want false`)
	}
}

func TestCalls(t *testing.T) {
	f, err := build.ParseBzl("deps.bzl", []byte(`load("@rules//:defs.bzl", "nuget_package")

nuget_package(name = "a")
http_archive(name = "b")
nuget_package(name = "c")
`))
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}

	var names []string
	for _, call := range Calls(f, "nuget_package") {
		names = append(names, String(call, "name"))
	}
	if want := []string{"a", "c"}; !slices.Equal(names, want) {
		t.Errorf("Calls() names = %v, want %v", names, want)
	}
}

func TestConstruct_RoundTrip(t *testing.T) {
	call := Call("nuget_package",
		Attr("name", Str("foo")),
		Attr("files", StrList([]string{"a.dll", "b.dll"})),
		Attr("lib", Dict([]KV{{Key: "net472", Value: Str("a.dll")}})),
	)
	f := &build.File{Type: build.TypeBzl, Stmt: []build.Expr{call}}
	out := string(build.Format(f))

	if !strings.Contains(out, `name = "foo"`) {
		t.Errorf("formatted output missing name:\n%s", out)
	}

	reparsed := parseCall(t, out)
	if got := String(reparsed, "name"); got != "foo" {
		t.Errorf("name = %q, want foo", got)
	}
	if got := StringList(reparsed, "files"); !slices.Equal(got, []string{"a.dll", "b.dll"}) {
		t.Errorf("files = %v", got)
	}
	if got := StringDict(reparsed, "lib"); got["net472"] != "a.dll" {
		t.Errorf("lib = %v", got)
	}
}
