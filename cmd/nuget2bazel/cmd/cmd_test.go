package cmd

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/bazelbuild/buildtools/build"
	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/albertocavalcante/go-nuget2bazel/framework"
	"github.com/albertocavalcante/go-nuget2bazel/internal/buildutil"
	"github.com/albertocavalcante/go-nuget2bazel/nuget"
	"github.com/albertocavalcante/go-nuget2bazel/workspace"
)

func resetFlags() {
	configPath, verbose, quiet = "", false, false
	generatePackages, generateWorkspace, generateOutput, generateDryRun = "", "", "", false
	graphPackages, graphFormat, graphOutput = "", "text", ""
}

// execute runs the CLI with args and returns its stdout.
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	resetFlags()
	t.Cleanup(resetFlags)

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(io.Discard)
	rootCmd.SetArgs(args)
	err := rootCmd.ExecuteContext(context.Background())
	return out.String(), err
}

// writePackages writes a small closure: App depends on Real, Multi ships
// two assemblies.
func writePackages(t *testing.T, dir string) string {
	t.Helper()
	net45 := framework.MustParse("net45")
	pkgs := []*nuget.Package{
		{
			ID: "App", Version: "1.0.0", Files: []string{"lib/net45/App.dll"},
			DependencyGroups: []nuget.DependencyGroup{{TargetFramework: net45, Dependencies: []nuget.Dependency{{ID: "Real"}}}},
		},
		{ID: "Real", Version: "3.0.0", Files: []string{"lib/net45/Real.dll"}},
		{ID: "Multi", Version: "4.0.0", Files: []string{"lib/net45/Multi.dll", "lib/net45/Multi.Extra.dll"}},
	}
	path := filepath.Join(dir, "packages.json")
	require.NoError(t, nuget.WriteFile(path, pkgs))
	return path
}

func ruleVersions(t *testing.T, name string, data []byte) map[string]string {
	t.Helper()
	f, err := workspace.Parse(name, data)
	require.NoError(t, err)
	return workspace.ExistingEntries(f)
}

func TestVersionCommand(t *testing.T) {
	out, err := execute(t, "version")
	require.NoError(t, err)
	assert.Contains(t, out, "nuget2bazel dev")
	assert.Contains(t, out, "commit:")
}

func TestGenerate_Stdout(t *testing.T) {
	packages := writePackages(t, t.TempDir())

	out, err := execute(t, "generate", "--packages", packages)
	require.NoError(t, err)

	assert.Equal(t, map[string]string{
		"app":         "1.0.0",
		"real":        "3.0.0",
		"multi.extra": "4.0.0",
		"multi":       "4.0.0",
	}, ruleVersions(t, "out.bzl", []byte(out)))
}

func TestGenerate_OutputFile(t *testing.T) {
	dir := t.TempDir()
	packages := writePackages(t, dir)
	dest := filepath.Join(dir, "nuget_packages.bzl")

	out, err := execute(t, "generate", "--packages", packages, "--output", dest)
	require.NoError(t, err)
	assert.Empty(t, out)

	data, err := os.ReadFile(dest)
	require.NoError(t, err)
	assert.Len(t, ruleVersions(t, dest, data), 4)
}

func TestGenerate_MergeWorkspace(t *testing.T) {
	dir := t.TempDir()
	packages := writePackages(t, dir)
	ws := filepath.Join(dir, "WORKSPACE")
	existing := `load("//:nuget.bzl", "nuget_package")

nuget_package(
    name = "real",
    package = "real",
    version = "0.9.0",
)

nuget_package(
    name = "legacy",
    package = "legacy",
    version = "0.1.0",
)
`
	require.NoError(t, os.WriteFile(ws, []byte(existing), 0o644))

	_, err := execute(t, "generate", "--packages", packages, "--workspace", ws)
	require.NoError(t, err)

	data, err := os.ReadFile(ws)
	require.NoError(t, err)
	versions := ruleVersions(t, ws, data)
	assert.Equal(t, "3.0.0", versions["real"])
	assert.Equal(t, "0.1.0", versions["legacy"], "merge keeps rules it does not generate")
	assert.Contains(t, versions, "app")
	assert.Contains(t, string(data), `load("//:nuget.bzl", "nuget_package")`)
}

func TestGenerate_DryRun(t *testing.T) {
	dir := t.TempDir()
	packages := writePackages(t, dir)
	ws := filepath.Join(dir, "WORKSPACE")
	existing := "nuget_package(name = \"real\", package = \"real\", version = \"0.9.0\")\n"
	require.NoError(t, os.WriteFile(ws, []byte(existing), 0o644))

	out, err := execute(t, "generate", "--packages", packages, "--workspace", ws, "--dry-run")
	require.NoError(t, err)

	assert.Contains(t, out, "+ app 1.0.0")
	assert.Contains(t, out, "^ real 0.9.0 -> 3.0.0")
	assert.Contains(t, out, "3 added, 1 upgraded")

	data, err := os.ReadFile(ws)
	require.NoError(t, err)
	assert.Equal(t, existing, string(data), "dry run must not write")
}

func TestGenerate_WithConfig(t *testing.T) {
	dir := t.TempDir()
	packages := writePackages(t, dir)
	cfg := filepath.Join(dir, "nuget2bazel.yaml")
	require.NoError(t, os.WriteFile(cfg, []byte(`
targets:
  - framework: net472
  - framework: netcoreapp3.1
main_file: Main.dll
source_rules:
  - prefix: real
    url: https://feed.example.com/api/v2/package
`), 0o644))

	out, err := execute(t, "generate", "--packages", packages, "--config", cfg)
	require.NoError(t, err)

	f, err := build.ParseBzl("out.bzl", []byte(out))
	require.NoError(t, err)
	var realRule *build.CallExpr
	for _, call := range buildutil.Calls(f, workspace.RuleKind) {
		if buildutil.String(call, "name") == "real" {
			realRule = call
		}
	}
	require.NotNil(t, realRule)
	assert.Equal(t, "https://feed.example.com/api/v2/package", buildutil.String(realRule, "source"))
	assert.Equal(t, "Main.dll", buildutil.String(realRule, "main_file"))
}

func TestGenerate_Errors(t *testing.T) {
	dir := t.TempDir()
	packages := writePackages(t, dir)

	tests := []struct {
		name string
		args []string
	}{
		{"missing packages file", []string{"generate", "--packages", filepath.Join(dir, "missing.json")}},
		{"missing config", []string{"generate", "--packages", packages, "--config", filepath.Join(dir, "missing.toml")}},
		{"missing workspace", []string{"generate", "--packages", packages, "--workspace", filepath.Join(dir, "WORKSPACE")}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := execute(t, tt.args...)
			assert.Error(t, err)
		})
	}
}

func TestGraph_Formats(t *testing.T) {
	packages := writePackages(t, t.TempDir())

	text, err := execute(t, "graph", "--packages", packages)
	require.NoError(t, err)
	assert.Contains(t, text, "Workspace Graph")
	assert.Contains(t, text, "app@1.0.0\n└── real@3.0.0\n")

	dot, err := execute(t, "graph", "--packages", packages, "--format", "dot")
	require.NoError(t, err)
	assert.Contains(t, dot, "digraph workspace {")
	assert.Contains(t, dot, `"multi" -> "multi.extra";`)

	out, err := execute(t, "graph", "--packages", packages, "--format", "json")
	require.NoError(t, err)
	var nodes []map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &nodes))
	assert.Len(t, nodes, 4)

	_, err = execute(t, "graph", "--packages", packages, "--format", "svg")
	assert.ErrorContains(t, err, `unknown format "svg"`)
}

func TestLogLevel(t *testing.T) {
	t.Cleanup(resetFlags)

	resetFlags()
	assert.Equal(t, log.InfoLevel, logLevel())

	verbose = true
	assert.Equal(t, log.DebugLevel, logLevel())

	verbose, quiet = false, true
	assert.Equal(t, log.ErrorLevel, logLevel())
}

func TestNewLogger(t *testing.T) {
	t.Cleanup(resetFlags)
	resetFlags()

	var buf bytes.Buffer
	logger := newLogger(&buf)
	logger.Debug("hidden")
	logger.Info("shown", "entries", 3)

	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), "shown")
	assert.Contains(t, buf.String(), "entries=3")
}
