// Package framework models NuGet target frameworks (TFMs).
//
// A Framework is parsed from the short folder names found inside package
// archives ("net472", "netstandard2.0", "netcoreapp3.1", "net6.0-windows")
// and from the target framework attributes of dependency groups.
//
// # Compatibility
//
// Fallbacks returns the ordered family ranges a target can consume, most
// specific first. Nearest picks the best candidate for a target using the
// same ordering.
package framework

import (
	"cmp"
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/hashicorp/go-version"
)

// ErrUnsupported is returned for framework names that cannot be mapped to a
// single framework (for example portable profiles).
var ErrUnsupported = errors.New("unsupported framework")

// Identifier is the long framework identifier, e.g. ".NETFramework".
type Identifier string

// Known identifiers.
const (
	NetFramework Identifier = ".NETFramework"
	NetStandard  Identifier = ".NETStandard"
	NetCoreApp   Identifier = ".NETCoreApp"
	NetCore      Identifier = ".NETCore"
	UAP          Identifier = "UAP"
	MonoAndroid  Identifier = "MonoAndroid"
	XamarinIOS   Identifier = "Xamarin.iOS"
	XamarinMac   Identifier = "Xamarin.Mac"
	Windows      Identifier = "Windows"
	WindowsPhone Identifier = "WindowsPhone"
	Tizen        Identifier = "Tizen"
	AnyFramework Identifier = "Any"
)

// shortNames maps short folder prefixes to identifiers. Longest prefixes
// must be tried first, see parseIdentifier.
var shortNames = []struct {
	short string
	id    Identifier
}{
	{"netstandard", NetStandard},
	{"netcoreapp", NetCoreApp},
	{"netcore", NetCore},
	{"net", NetFramework},
	{"uap", UAP},
	{"monoandroid", MonoAndroid},
	{"xamarinios", XamarinIOS},
	{"xamarinmac", XamarinMac},
	{"win", Windows},
	{"wp", WindowsPhone},
	{"tizen", Tizen},
}

// Version is a framework version. Missing components are zero.
type Version struct {
	Major    int
	Minor    int
	Build    int
	Revision int
}

// V is shorthand for building a Version in tables and tests.
func V(parts ...int) Version {
	var v Version
	fields := []*int{&v.Major, &v.Minor, &v.Build, &v.Revision}
	for i, p := range parts {
		if i >= len(fields) {
			break
		}
		*fields[i] = p
	}
	return v
}

// Compare returns -1, 0 or +1.
func (v Version) Compare(o Version) int {
	if c := cmp.Compare(v.Major, o.Major); c != 0 {
		return c
	}
	if c := cmp.Compare(v.Minor, o.Minor); c != 0 {
		return c
	}
	if c := cmp.Compare(v.Build, o.Build); c != 0 {
		return c
	}
	return cmp.Compare(v.Revision, o.Revision)
}

// dotted returns "major.minor[.build[.revision]]".
func (v Version) dotted() string {
	s := strconv.Itoa(v.Major) + "." + strconv.Itoa(v.Minor)
	if v.Build != 0 || v.Revision != 0 {
		s += "." + strconv.Itoa(v.Build)
	}
	if v.Revision != 0 {
		s += "." + strconv.Itoa(v.Revision)
	}
	return s
}

// compact returns the dotless form used by .NETFramework folders ("472").
// Components above 9 fall back to the dotted form.
func (v Version) compact() string {
	if v == (Version{}) {
		return ""
	}
	parts := []int{v.Major, v.Minor, v.Build, v.Revision}
	end := len(parts)
	for end > 2 && parts[end-1] == 0 {
		end--
	}
	var sb strings.Builder
	for _, p := range parts[:end] {
		if p > 9 {
			return v.dotted()
		}
		sb.WriteString(strconv.Itoa(p))
	}
	return sb.String()
}

// Framework identifies a target framework.
type Framework struct {
	Identifier Identifier
	Version    Version

	// Profile is the legacy .NETFramework profile ("client"), lower case.
	Profile string

	// Platform is the OS platform of a net5.0+ framework ("windows"),
	// lower case and without its version.
	Platform string

	// PlatformVersion is the raw platform version ("10.0.19041"), if any.
	PlatformVersion string
}

// Any matches every target. Files directly under lib/ and dependency
// groups without a target framework use it.
var Any = Framework{Identifier: AnyFramework}

// IsAny reports whether f is the Any framework.
func (f Framework) IsAny() bool {
	return f.Identifier == AnyFramework || f.Identifier == ""
}

// Equal reports whether two frameworks denote the same target.
func (f Framework) Equal(o Framework) bool {
	if f.IsAny() || o.IsAny() {
		return f.IsAny() == o.IsAny()
	}
	return f.Identifier == o.Identifier &&
		f.Version.Compare(o.Version) == 0 &&
		f.Profile == o.Profile &&
		f.Platform == o.Platform
}

// String returns the short folder name, e.g. "net472" or "net6.0-windows".
func (f Framework) String() string {
	switch f.Identifier {
	case AnyFramework, "":
		return "any"
	case NetFramework:
		s := "net" + f.Version.compact()
		if f.Profile != "" {
			s += "-" + f.Profile
		}
		return s
	case NetStandard:
		return "netstandard" + f.Version.dotted()
	case NetCoreApp:
		if f.Version.Major < 5 {
			return "netcoreapp" + f.Version.dotted()
		}
		s := "net" + f.Version.dotted()
		if f.Platform != "" {
			s += "-" + f.Platform + f.PlatformVersion
		}
		return s
	}
	for _, sn := range shortNames {
		if sn.id == f.Identifier {
			return sn.short + f.Version.dotted()
		}
	}
	return strings.ToLower(string(f.Identifier)) + f.Version.dotted()
}

// MarshalText implements encoding.TextMarshaler.
func (f Framework) MarshalText() ([]byte, error) {
	return []byte(f.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (f *Framework) UnmarshalText(text []byte) error {
	parsed, err := Parse(string(text))
	if err != nil {
		return err
	}
	*f = parsed
	return nil
}

var (
	versionDigitsRegex = regexp.MustCompile(`^[0-9]+$`)
	platformRegex      = regexp.MustCompile(`^([a-z]+)([0-9.]*)$`)
)

// Parse parses a short folder name or a long ".NETFramework,Version=v4.5"
// style name. The empty string and "any" parse to Any.
func Parse(s string) (Framework, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	switch name {
	case "", "any", "agnostic":
		return Any, nil
	}
	if strings.HasPrefix(name, "portable") || strings.Contains(name, "+") {
		return Framework{}, fmt.Errorf("%w: %q", ErrUnsupported, s)
	}
	if strings.Contains(name, ",") {
		return parseLong(s)
	}

	short, rest, ok := parseIdentifier(name)
	if !ok {
		return Framework{}, fmt.Errorf("%w: %q", ErrUnsupported, s)
	}

	versionPart, suffix, _ := strings.Cut(rest, "-")
	v, err := parseVersion(versionPart)
	if err != nil {
		return Framework{}, fmt.Errorf("framework %q: %w", s, err)
	}

	f := Framework{Identifier: short, Version: v}

	// net5.0 and later are .NETCoreApp with an optional platform suffix.
	if short == NetFramework && v.Major >= 5 {
		f.Identifier = NetCoreApp
	}

	if suffix != "" {
		if f.Identifier == NetCoreApp {
			m := platformRegex.FindStringSubmatch(suffix)
			if m == nil {
				return Framework{}, fmt.Errorf("framework %q: invalid platform %q", s, suffix)
			}
			f.Platform = m[1]
			f.PlatformVersion = m[2]
		} else {
			f.Profile = suffix
		}
	}
	return f, nil
}

// MustParse parses s or panics. Use only for constants/tests.
func MustParse(s string) Framework {
	f, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return f
}

func parseIdentifier(name string) (Identifier, string, bool) {
	for _, sn := range shortNames {
		rest, ok := strings.CutPrefix(name, sn.short)
		if !ok {
			continue
		}
		// "netcoreapp" must not be read as "net" + "coreapp".
		if rest != "" && (rest[0] < '0' || rest[0] > '9') && rest[0] != '-' {
			continue
		}
		return sn.id, rest, true
	}
	return "", "", false
}

func parseVersion(s string) (Version, error) {
	if s == "" {
		return Version{}, nil
	}
	if versionDigitsRegex.MatchString(s) && !strings.Contains(s, ".") {
		// Dotless: every digit is a component ("472" -> 4.7.2).
		parts := make([]int, 0, len(s))
		for _, r := range s {
			parts = append(parts, int(r-'0'))
		}
		if len(parts) > 4 {
			return Version{}, fmt.Errorf("invalid version %q", s)
		}
		return V(parts...), nil
	}
	v, err := version.NewVersion(s)
	if err != nil {
		return Version{}, fmt.Errorf("invalid version %q: %w", s, err)
	}
	parts := v.Segments()
	if v.Prerelease() != "" || v.Metadata() != "" || len(parts) > 4 || s[0] == 'v' {
		return Version{}, fmt.Errorf("invalid version %q", s)
	}
	return V(parts...), nil
}

// parseLong handles ".NETFramework,Version=v4.5,Profile=Client".
func parseLong(s string) (Framework, error) {
	fields := strings.Split(s, ",")
	id := strings.TrimSpace(fields[0])
	f := Framework{Identifier: Identifier(id)}
	for _, known := range shortNames {
		if strings.EqualFold(string(known.id), id) {
			f.Identifier = known.id
		}
	}
	for _, field := range fields[1:] {
		key, value, ok := strings.Cut(strings.TrimSpace(field), "=")
		if !ok {
			return Framework{}, fmt.Errorf("framework %q: malformed field %q", s, field)
		}
		switch strings.ToLower(key) {
		case "version":
			v, err := parseVersion(strings.TrimPrefix(strings.ToLower(value), "v"))
			if err != nil {
				return Framework{}, fmt.Errorf("framework %q: %w", s, err)
			}
			f.Version = v
		case "profile":
			f.Profile = strings.ToLower(value)
		}
	}
	return f, nil
}
