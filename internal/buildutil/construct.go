package buildutil

import "github.com/bazelbuild/buildtools/build"

// KV is one entry of a dict literal.
type KV struct {
	Key   string
	Value build.Expr
}

// Call builds name(args...) laid out one argument per line.
func Call(name string, args ...build.Expr) *build.CallExpr {
	return &build.CallExpr{
		X:              &build.Ident{Name: name},
		List:           args,
		ForceMultiLine: true,
	}
}

// Attr builds a keyword argument name = value.
func Attr(name string, value build.Expr) *build.AssignExpr {
	return &build.AssignExpr{
		LHS: &build.Ident{Name: name},
		Op:  "=",
		RHS: value,
	}
}

// Str builds a string literal.
func Str(s string) *build.StringExpr {
	return &build.StringExpr{Value: s}
}

// StrList builds a list of string literals. Lists with more than one
// element are laid out one per line.
func StrList(values []string) *build.ListExpr {
	list := &build.ListExpr{ForceMultiLine: len(values) > 1}
	for _, v := range values {
		list.List = append(list.List, Str(v))
	}
	return list
}

// Dict builds a dict literal preserving entry order.
func Dict(entries []KV) *build.DictExpr {
	dict := &build.DictExpr{ForceMultiLine: len(entries) > 0}
	for _, e := range entries {
		dict.List = append(dict.List, &build.KeyValueExpr{Key: Str(e.Key), Value: e.Value})
	}
	return dict
}
