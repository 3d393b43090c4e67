package content

import (
	"path"
	"strings"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/albertocavalcante/go-nuget2bazel/framework"
	"github.com/albertocavalcante/go-nuget2bazel/nuget"
)

// Pattern tokens. A pattern is a slash-separated template; literal segments
// compare case-insensitively.
const (
	tokenRID      = "{rid}"      // one segment, the runtime identifier
	tokenTFM      = "{tfm}"      // one segment, parsed as a framework
	tokenAssembly = "{assembly}" // last segment, an assembly file
	tokenFile     = "{file}"     // last segment, any file
	tokenAny      = "{any}"      // one or more trailing segments
)

// placeholder marks an intentionally empty folder in a package.
const placeholder = "_._"

// assemblyGlob matches managed assembly file names (lower-cased).
const assemblyGlob = "*.{dll,exe,winmd}"

// Pattern is one path template of a convention.
type Pattern string

// Convention is a named, ordered list of path patterns. A file belongs to
// the group of the first pattern it matches.
type Convention struct {
	Name     string
	Patterns []Pattern
}

// Conventions is the table of layouts the resolver scores. Compile lists
// competing conventions in priority order.
type Conventions struct {
	Compile []Convention
	Runtime []Convention
	Tools   []Convention
}

// Standard conventions of managed NuGet packages.
var (
	RefAssemblies = Convention{
		Name:     "ref",
		Patterns: []Pattern{"ref/{tfm}/{assembly}"},
	}

	LibAssemblies = Convention{
		Name:     "lib",
		Patterns: []Pattern{"lib/{tfm}/{assembly}", "lib/{assembly}"},
	}

	RuntimeAssemblies = Convention{
		Name: "runtime",
		Patterns: []Pattern{
			"runtimes/{rid}/lib/{tfm}/{assembly}",
			"lib/{tfm}/{assembly}",
			"lib/{assembly}",
		},
	}

	ToolFiles = Convention{
		Name:     "tools",
		Patterns: []Pattern{"tools/{tfm}/{rid}/{any}"},
	}
)

// DefaultConventions returns the managed-code convention table.
func DefaultConventions() Conventions {
	return Conventions{
		Compile: []Convention{RefAssemblies, LibAssemblies},
		Runtime: []Convention{RuntimeAssemblies},
		Tools:   []Convention{ToolFiles},
	}
}

// PatternMatch holds the properties a pattern extracts from one file path.
type PatternMatch struct {
	// Framework is the parsed {tfm} segment, or framework.Any.
	Framework framework.Framework

	// RID is the lower-case {rid} segment, if the pattern has one.
	RID string

	// Placeholder reports that the file is an empty-folder marker.
	Placeholder bool
}

// Match applies the pattern to a normalized package path.
func (p Pattern) Match(file string) (PatternMatch, bool) {
	tokens := strings.Split(string(p), "/")
	segments := strings.Split(file, "/")
	m := PatternMatch{Framework: framework.Any}

	for i, token := range tokens {
		last := i == len(tokens)-1
		if i >= len(segments) {
			return PatternMatch{}, false
		}
		segment := segments[i]

		switch token {
		case tokenTFM:
			f, err := framework.Parse(segment)
			if err != nil {
				return PatternMatch{}, false
			}
			m.Framework = f
		case tokenRID:
			if segment == "" {
				return PatternMatch{}, false
			}
			m.RID = strings.ToLower(segment)
		case tokenAssembly, tokenFile:
			if !last || len(segments) != len(tokens) {
				return PatternMatch{}, false
			}
			if segment == placeholder {
				m.Placeholder = true
				return m, true
			}
			if token == tokenAssembly && !isAssembly(segment) {
				return PatternMatch{}, false
			}
			return m, segment != ""
		case tokenAny:
			rest := segments[i:]
			if len(rest) == 0 || rest[len(rest)-1] == "" {
				return PatternMatch{}, false
			}
			m.Placeholder = rest[len(rest)-1] == placeholder
			return m, true
		default:
			if !strings.EqualFold(token, segment) {
				return PatternMatch{}, false
			}
		}
	}
	return m, len(segments) == len(tokens)
}

func isAssembly(name string) bool {
	ok, err := doublestar.Match(assemblyGlob, strings.ToLower(name))
	return err == nil && ok
}

// candidate is one group produced by a convention before scoring.
type candidate struct {
	framework framework.Framework
	rid       string
	items     []string
}

// collect groups a package's files by (framework, rid) for one convention.
// Group and item order follows the file list.
func (c Convention) collect(files []string) []*candidate {
	var groups []*candidate
	index := make(map[string]*candidate)
	seen := make(map[string]bool)

	for _, raw := range files {
		file := path.Clean(nuget.NormalizePath(raw))
		for _, pattern := range c.Patterns {
			m, ok := pattern.Match(file)
			if !ok {
				continue
			}
			key := m.Framework.String() + "|" + m.RID
			g, exists := index[key]
			if !exists {
				g = &candidate{framework: m.Framework, rid: m.RID}
				index[key] = g
				groups = append(groups, g)
			}
			itemKey := key + "|" + file
			if !m.Placeholder && !seen[itemKey] {
				seen[itemKey] = true
				g.items = append(g.items, file)
			}
			break
		}
	}
	return groups
}
