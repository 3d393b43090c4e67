package content

import (
	"strings"

	"github.com/albertocavalcante/go-nuget2bazel/framework"
)

// Rule is one acceptable (framework range, runtime) combination.
type Rule struct {
	Range framework.Range

	// RuntimeIdentifier is the RID a group must carry. An empty rule RID
	// matches RID-neutral groups and groups for the "any" RID.
	RuntimeIdentifier string
}

// Matches reports whether a group with the given framework and RID
// satisfies the rule.
func (r Rule) Matches(f framework.Framework, rid string) bool {
	if !r.Range.Contains(f) {
		return false
	}
	if r.RuntimeIdentifier == "" {
		return rid == "" || strings.EqualFold(rid, "any")
	}
	return strings.EqualFold(r.RuntimeIdentifier, rid)
}

func (r Rule) String() string {
	if r.RuntimeIdentifier == "" {
		return r.Range.String()
	}
	return r.Range.String() + "/" + r.RuntimeIdentifier
}

// Criteria is an ordered rule list, most preferred first.
type Criteria []Rule

// Match returns the index of the first rule a group satisfies, or -1.
func (c Criteria) Match(f framework.Framework, rid string) int {
	for i, r := range c {
		if r.Matches(f, rid) {
			return i
		}
	}
	return -1
}

// CriteriaFor returns the selection criteria of a target. With a runtime
// identifier, the framework fallbacks are repeated for every RID in its
// fallback chain before the RID-neutral rules.
func CriteriaFor(t Target) Criteria {
	ranges := framework.Fallbacks(t.Framework)

	var c Criteria
	for _, rid := range RuntimeFallbacks(t.RuntimeIdentifier) {
		for _, r := range ranges {
			c = append(c, Rule{Range: r, RuntimeIdentifier: rid})
		}
	}
	for _, r := range ranges {
		c = append(c, Rule{Range: r})
	}
	return c
}

// osParents maps unversioned operating system RIDs to their parent.
// Distributions chain to "linux" and every Unix family ends at "unix".
var osParents = map[string]string{
	"linux":     "unix",
	"osx":       "unix",
	"freebsd":   "unix",
	"ios":       "unix",
	"illumos":   "unix",
	"solaris":   "unix",
	"android":   "linux",
	"alpine":    "linux-musl",
	"debian":    "linux",
	"ubuntu":    "debian",
	"linuxmint": "ubuntu",
	"rhel":      "linux",
	"centos":    "rhel",
	"ol":        "rhel",
	"rocky":     "rhel",
	"almalinux": "rhel",
	"fedora":    "linux",
	"opensuse":  "linux",
	"sles":      "linux",
	"gentoo":    "linux",
	"exherbo":   "linux",
	"tizen":     "linux",
}

// architectures are the RID suffixes naming a processor architecture.
var architectures = map[string]bool{
	"x64":         true,
	"x86":         true,
	"arm":         true,
	"arm64":       true,
	"armel":       true,
	"armv6":       true,
	"s390x":       true,
	"ppc64le":     true,
	"loongarch64": true,
	"riscv64":     true,
	"mips64":      true,
	"wasm":        true,
}

// RuntimeFallbacks returns the RID chain of rid, most specific first, in
// breadth-first order over the RID parents:
//
//	win10-x64       win10-x64 win10 win-x64 win
//	linux-musl-x64  linux-musl-x64 linux-musl linux-x64 linux unix-x64 unix
//	ubuntu.18.04-x64 reaches debian-x64, linux-x64, linux and unix
//
// An empty rid has no chain.
func RuntimeFallbacks(rid string) []string {
	rid = strings.ToLower(strings.TrimSpace(rid))
	if rid == "" || rid == "any" {
		return nil
	}

	chain := []string{rid}
	seen := map[string]bool{rid: true}
	for i := 0; i < len(chain); i++ {
		for _, p := range runtimeParents(chain[i]) {
			if !seen[p] {
				seen[p] = true
				chain = append(chain, p)
			}
		}
	}
	return chain
}

// runtimeParents returns the direct parents of a lower-case RID. An
// architecture-specific RID imports its OS part first, then the
// same architecture on each parent of that OS.
func runtimeParents(rid string) []string {
	parts := strings.Split(rid, "-")
	n := len(parts)
	if n > 1 && architectures[parts[n-1]] {
		arch := parts[n-1]
		os := strings.Join(parts[:n-1], "-")
		out := []string{os}
		for _, p := range runtimeParents(os) {
			out = append(out, p+"-"+arch)
		}
		return out
	}
	if n > 1 {
		// Qualified OS, e.g. "linux-musl".
		return []string{strings.Join(parts[:n-1], "-")}
	}
	// Versioned OS, e.g. "win10" or "ubuntu.18.04".
	if base := strings.TrimRight(rid, "0123456789."); base != "" && base != rid {
		return []string{base}
	}
	if p, ok := osParents[rid]; ok {
		return []string{p}
	}
	return nil
}
