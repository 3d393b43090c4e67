// Package buildutil reads and constructs buildtools AST nodes for the
// nuget_package rules the workspace emitter writes.
package buildutil

import (
	"github.com/bazelbuild/buildtools/build"
)

// attr returns the value of a named argument, or nil.
func attr(call *build.CallExpr, name string) build.Expr {
	for _, arg := range call.List {
		assign, ok := arg.(*build.AssignExpr)
		if !ok {
			continue
		}
		if lhs, ok := assign.LHS.(*build.Ident); ok && lhs.Name == name {
			return assign.RHS
		}
	}
	return nil
}

// String extracts a string attribute from a function call by name.
// If name is empty and the call has positional arguments, returns the first
// positional string argument.
// Returns empty string if the attribute is not found or not a string.
func String(call *build.CallExpr, name string) string {
	if name == "" && len(call.List) > 0 {
		if str, ok := call.List[0].(*build.StringExpr); ok {
			return str.Value
		}
		return ""
	}
	if str, ok := attr(call, name).(*build.StringExpr); ok {
		return str.Value
	}
	return ""
}

// StringList extracts a list of strings attribute from a function call by name.
// Returns nil if the attribute is not found or not a list.
// Non-string elements in the list are silently skipped.
func StringList(call *build.CallExpr, name string) []string {
	list, ok := attr(call, name).(*build.ListExpr)
	if !ok {
		return nil
	}
	return stringValues(list)
}

// StringDict extracts a dict of string to string.
func StringDict(call *build.CallExpr, name string) map[string]string {
	dict, ok := attr(call, name).(*build.DictExpr)
	if !ok {
		return nil
	}
	result := make(map[string]string, len(dict.List))
	for _, kv := range dict.List {
		key, ok := kv.Key.(*build.StringExpr)
		if !ok {
			continue
		}
		if val, ok := kv.Value.(*build.StringExpr); ok {
			result[key.Value] = val.Value
		}
	}
	return result
}

// StringListDict extracts a dict of string to list of strings.
func StringListDict(call *build.CallExpr, name string) map[string][]string {
	dict, ok := attr(call, name).(*build.DictExpr)
	if !ok {
		return nil
	}
	result := make(map[string][]string, len(dict.List))
	for _, kv := range dict.List {
		key, ok := kv.Key.(*build.StringExpr)
		if !ok {
			continue
		}
		if list, ok := kv.Value.(*build.ListExpr); ok {
			result[key.Value] = stringValues(list)
		}
	}
	return result
}

func stringValues(list *build.ListExpr) []string {
	result := make([]string, 0, len(list.List))
	for _, elem := range list.List {
		if str, ok := elem.(*build.StringExpr); ok {
			result = append(result, str.Value)
		}
	}
	return result
}

// FuncName returns the function name from a CallExpr.
// Returns empty string if the call is not a simple function call
// (e.g., method calls like foo.bar()).
func FuncName(call *build.CallExpr) string {
	if ident, ok := call.X.(*build.Ident); ok {
		return ident.Name
	}
	return ""
}

// IsFuncCall returns true if the call is for the specified function name.
func IsFuncCall(call *build.CallExpr, name string) bool {
	return FuncName(call) == name
}

// Calls returns the top-level calls of f to the named function.
func Calls(f *build.File, name string) []*build.CallExpr {
	var result []*build.CallExpr
	for _, stmt := range f.Stmt {
		if call, ok := stmt.(*build.CallExpr); ok && IsFuncCall(call, name) {
			result = append(result, call)
		}
	}
	return result
}
