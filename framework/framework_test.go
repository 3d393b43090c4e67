package framework

import (
	"errors"
	"testing"
)

func TestParse(t *testing.T) {
	tests := []struct {
		input string
		want  Framework
	}{
		{"net472", Framework{Identifier: NetFramework, Version: V(4, 7, 2)}},
		{"net45", Framework{Identifier: NetFramework, Version: V(4, 5)}},
		{"net403", Framework{Identifier: NetFramework, Version: V(4, 0, 3)}},
		{"net40-client", Framework{Identifier: NetFramework, Version: V(4, 0), Profile: "client"}},
		{"netstandard2.0", Framework{Identifier: NetStandard, Version: V(2, 0)}},
		{"netstandard13", Framework{Identifier: NetStandard, Version: V(1, 3)}},
		{"netcoreapp3.1", Framework{Identifier: NetCoreApp, Version: V(3, 1)}},
		{"net5.0", Framework{Identifier: NetCoreApp, Version: V(5, 0)}},
		{"NET6.0", Framework{Identifier: NetCoreApp, Version: V(6, 0)}},
		{"net6.0-windows", Framework{Identifier: NetCoreApp, Version: V(6, 0), Platform: "windows"}},
		{"net6.0-windows10.0.19041", Framework{Identifier: NetCoreApp, Version: V(6, 0), Platform: "windows", PlatformVersion: "10.0.19041"}},
		{"uap10.0", Framework{Identifier: UAP, Version: V(10, 0)}},
		{".NETFramework,Version=v4.5", Framework{Identifier: NetFramework, Version: V(4, 5)}},
		{".NETStandard,Version=v2.0", Framework{Identifier: NetStandard, Version: V(2, 0)}},
		{"", Any},
		{"any", Any},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := Parse(tt.input)
			if err != nil {
				t.Fatalf("Parse(%q) error = %v", tt.input, err)
			}
			if got != tt.want {
				t.Errorf("Parse(%q) = %+v, want %+v", tt.input, got, tt.want)
			}
		})
	}
}

func TestParse_Unsupported(t *testing.T) {
	for _, input := range []string{"portable-net45+win8", "net45+win8", "foo1.0", "net4x", "netcoreapp3.1rc", "netstandard1.2.3.4.5"} {
		t.Run(input, func(t *testing.T) {
			if _, err := Parse(input); err == nil {
				t.Errorf("Parse(%q) expected error", input)
			}
		})
	}

	_, err := Parse("portable-net45+win8")
	if !errors.Is(err, ErrUnsupported) {
		t.Errorf("expected ErrUnsupported, got %v", err)
	}
}

func TestFramework_String(t *testing.T) {
	tests := []string{
		"net472",
		"net45",
		"net403",
		"net40-client",
		"netstandard2.0",
		"netstandard1.3",
		"netcoreapp3.1",
		"net5.0",
		"net6.0-windows",
		"uap10.0",
		"any",
	}

	for _, input := range tests {
		t.Run(input, func(t *testing.T) {
			if got := MustParse(input).String(); got != input {
				t.Errorf("String() = %q, want %q", got, input)
			}
		})
	}
}

func TestFramework_Equal(t *testing.T) {
	if !MustParse("net5.0").Equal(MustParse("net50")) {
		t.Error("net5.0 and net50 should be equal")
	}
	if MustParse("net6.0").Equal(MustParse("net6.0-windows")) {
		t.Error("platform-qualified framework should differ")
	}
	if !Any.Equal(Framework{}) {
		t.Error("zero Framework should equal Any")
	}
	if Any.Equal(MustParse("net45")) {
		t.Error("Any should not equal net45")
	}
}

func TestFramework_UnmarshalText(t *testing.T) {
	var f Framework
	if err := f.UnmarshalText([]byte("netstandard2.1")); err != nil {
		t.Fatalf("UnmarshalText error = %v", err)
	}
	if f.Identifier != NetStandard || f.Version != V(2, 1) {
		t.Errorf("unexpected framework %+v", f)
	}

	text, err := f.MarshalText()
	if err != nil {
		t.Fatalf("MarshalText error = %v", err)
	}
	if string(text) != "netstandard2.1" {
		t.Errorf("MarshalText = %q", text)
	}
}
