// Package sdk lists the assemblies provided by the .NET platform itself.
// Dependencies on these packages are satisfied by the SDK at build time, so
// they are never pruned even when a local copy carries no runtime files.
package sdk

import (
	"slices"
	"strings"
)

// platformAssemblies are lower-case package ids shipped with the SDK
// reference packs (facades of netstandard and the System.* surface).
var platformAssemblies = []string{
	"microsoft.csharp",
	"microsoft.visualbasic",
	"microsoft.win32.primitives",
	"microsoft.win32.registry",
	"mscorlib",
	"netstandard",
	"netstandard.library",
	"system",
	"system.appcontext",
	"system.buffers",
	"system.collections",
	"system.collections.concurrent",
	"system.collections.nongeneric",
	"system.collections.specialized",
	"system.componentmodel",
	"system.componentmodel.annotations",
	"system.componentmodel.eventbasedasync",
	"system.componentmodel.primitives",
	"system.componentmodel.typeconverter",
	"system.console",
	"system.core",
	"system.data",
	"system.data.common",
	"system.diagnostics.contracts",
	"system.diagnostics.debug",
	"system.diagnostics.diagnosticsource",
	"system.diagnostics.fileversioninfo",
	"system.diagnostics.process",
	"system.diagnostics.stacktrace",
	"system.diagnostics.textwritertracelistener",
	"system.diagnostics.tools",
	"system.diagnostics.tracesource",
	"system.diagnostics.tracing",
	"system.drawing",
	"system.drawing.primitives",
	"system.dynamic.runtime",
	"system.globalization",
	"system.globalization.calendars",
	"system.globalization.extensions",
	"system.io",
	"system.io.compression",
	"system.io.compression.filesystem",
	"system.io.compression.zipfile",
	"system.io.filesystem",
	"system.io.filesystem.driveinfo",
	"system.io.filesystem.primitives",
	"system.io.filesystem.watcher",
	"system.io.isolatedstorage",
	"system.io.memorymappedfiles",
	"system.io.pipes",
	"system.io.unmanagedmemorystream",
	"system.linq",
	"system.linq.expressions",
	"system.linq.parallel",
	"system.linq.queryable",
	"system.memory",
	"system.net",
	"system.net.http",
	"system.net.nameresolution",
	"system.net.networkinformation",
	"system.net.ping",
	"system.net.primitives",
	"system.net.requests",
	"system.net.security",
	"system.net.sockets",
	"system.net.webheadercollection",
	"system.net.websockets",
	"system.net.websockets.client",
	"system.numerics",
	"system.numerics.vectors",
	"system.objectmodel",
	"system.reflection",
	"system.reflection.emit",
	"system.reflection.emit.ilgeneration",
	"system.reflection.emit.lightweight",
	"system.reflection.extensions",
	"system.reflection.primitives",
	"system.reflection.typeextensions",
	"system.resources.reader",
	"system.resources.resourcemanager",
	"system.resources.writer",
	"system.runtime",
	"system.runtime.compilerservices.unsafe",
	"system.runtime.compilerservices.visualc",
	"system.runtime.extensions",
	"system.runtime.handles",
	"system.runtime.interopservices",
	"system.runtime.interopservices.runtimeinformation",
	"system.runtime.numerics",
	"system.runtime.serialization",
	"system.runtime.serialization.formatters",
	"system.runtime.serialization.json",
	"system.runtime.serialization.primitives",
	"system.runtime.serialization.xml",
	"system.security.claims",
	"system.security.cryptography.algorithms",
	"system.security.cryptography.csp",
	"system.security.cryptography.encoding",
	"system.security.cryptography.primitives",
	"system.security.cryptography.x509certificates",
	"system.security.principal",
	"system.security.securestring",
	"system.servicemodel.web",
	"system.text.encoding",
	"system.text.encoding.extensions",
	"system.text.regularexpressions",
	"system.threading",
	"system.threading.overlapped",
	"system.threading.tasks",
	"system.threading.tasks.extensions",
	"system.threading.tasks.parallel",
	"system.threading.thread",
	"system.threading.threadpool",
	"system.threading.timer",
	"system.transactions",
	"system.valuetuple",
	"system.web",
	"system.windows",
	"system.xml",
	"system.xml.linq",
	"system.xml.readerwriter",
	"system.xml.serialization",
	"system.xml.xdocument",
	"system.xml.xmldocument",
	"system.xml.xmlserializer",
	"system.xml.xpath",
	"system.xml.xpath.xdocument",
}

var platformSet = func() map[string]struct{} {
	m := make(map[string]struct{}, len(platformAssemblies))
	for _, id := range platformAssemblies {
		m[id] = struct{}{}
	}
	return m
}()

// IsPlatformAssembly reports whether id names an SDK-provided package.
// The comparison is case-insensitive.
func IsPlatformAssembly(id string) bool {
	_, ok := platformSet[strings.ToLower(id)]
	return ok
}

// PlatformAssemblies returns the built-in ids, sorted.
func PlatformAssemblies() []string {
	return slices.Clone(platformAssemblies)
}

// Exemptions is the set of package ids whose dependency edges always
// survive pruning: the platform assemblies plus configured extras.
// An Exemptions value is read-only after construction.
type Exemptions struct {
	extra map[string]struct{}
}

// NewExemptions returns the platform set extended with extra ids.
func NewExemptions(extra ...string) *Exemptions {
	e := &Exemptions{extra: make(map[string]struct{}, len(extra))}
	for _, id := range extra {
		id = strings.ToLower(strings.TrimSpace(id))
		if id != "" {
			e.extra[id] = struct{}{}
		}
	}
	return e
}

// Contains reports whether id is exempt. A nil *Exemptions holds only the
// platform assemblies.
func (e *Exemptions) Contains(id string) bool {
	if IsPlatformAssembly(id) {
		return true
	}
	if e == nil {
		return false
	}
	_, ok := e.extra[strings.ToLower(id)]
	return ok
}

// Extra returns the configured extra ids, sorted.
func (e *Exemptions) Extra() []string {
	if e == nil {
		return nil
	}
	out := make([]string, 0, len(e.extra))
	for id := range e.extra {
		out = append(out, id)
	}
	slices.Sort(out)
	return out
}
