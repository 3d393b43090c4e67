package workspace

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/bazelbuild/buildtools/build"

	"github.com/albertocavalcante/go-nuget2bazel/content"
	"github.com/albertocavalcante/go-nuget2bazel/internal/buildutil"
)

// Parse parses an existing WORKSPACE or .bzl file.
func Parse(filename string, data []byte) (*build.File, error) {
	var (
		f   *build.File
		err error
	)
	if strings.HasSuffix(filename, ".bzl") {
		f, err = build.ParseBzl(filename, data)
	} else {
		f, err = build.ParseWorkspace(filepath.Base(filename), data)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", filename, err)
	}
	return f, nil
}

// MergeResult lists the rule names a merge touched.
type MergeResult struct {
	Added    []string
	Replaced []string
}

// Merge writes entries into f. An existing nuget_package rule with the same
// name is replaced in place; new rules are appended. Other statements are
// left untouched.
func Merge(f *build.File, entries []*Entry, targets []content.Target) MergeResult {
	index := make(map[string]int)
	for i, stmt := range f.Stmt {
		call, ok := stmt.(*build.CallExpr)
		if !ok || !buildutil.IsFuncCall(call, RuleKind) {
			continue
		}
		if name := buildutil.String(call, "name"); name != "" {
			index[strings.ToLower(name)] = i
		}
	}

	var result MergeResult
	for _, e := range entries {
		call := Rule(e, targets)
		name := e.RuleName()
		if i, ok := index[name]; ok {
			f.Stmt[i] = call
			result.Replaced = append(result.Replaced, name)
			continue
		}
		index[name] = len(f.Stmt)
		f.Stmt = append(f.Stmt, call)
		result.Added = append(result.Added, name)
	}
	return result
}

// ExistingEntries returns name to version of the nuget_package rules in f.
func ExistingEntries(f *build.File) map[string]string {
	out := make(map[string]string)
	for _, call := range buildutil.Calls(f, RuleKind) {
		if name := buildutil.String(call, "name"); name != "" {
			out[name] = buildutil.String(call, "version")
		}
	}
	return out
}
