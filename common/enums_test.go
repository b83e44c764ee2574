package common

import (
	"errors"
	"testing"
)

func TestOutputFmt_String(t *testing.T) {
	tests := []struct {
		fmt      OutputFmt
		expected string
	}{
		{OutputFmtJson, "json"},
		{OutputFmtYaml, "yaml"},
		{OutputFmt(99), "OutputFmt(99)"},
	}

	for _, tt := range tests {
		t.Run(tt.expected, func(t *testing.T) {
			if got := tt.fmt.String(); got != tt.expected {
				t.Errorf("String() = %q, want %q", got, tt.expected)
			}
		})
	}
}

func TestParseOutputFmt(t *testing.T) {
	tests := []struct {
		name      string
		input     string
		expected  OutputFmt
		shouldErr bool
	}{
		{"json", "json", OutputFmtJson, false},
		{"yaml", "yaml", OutputFmtYaml, false},
		{"invalid", "xml", OutputFmt(0), true},
		{"empty", "", OutputFmt(0), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseOutputFmt(tt.input)
			if tt.shouldErr {
				if !errors.Is(err, ErrInvalidOutputFmt) {
					t.Errorf("Expected ErrInvalidOutputFmt, got %v", err)
				}
				return
			}
			if err != nil {
				t.Errorf("Unexpected error: %v", err)
			}
			if got != tt.expected {
				t.Errorf("ParseOutputFmt(%q) = %v, want %v", tt.input, got, tt.expected)
			}
		})
	}
}

func TestOutputFmt_UnmarshalText(t *testing.T) {
	var f OutputFmt
	if err := f.UnmarshalText([]byte("yaml")); err != nil {
		t.Fatalf("UnmarshalText() error = %v", err)
	}
	if f != OutputFmtYaml {
		t.Errorf("UnmarshalText() = %v, want yaml", f)
	}
	if err := f.UnmarshalText([]byte("kfx")); err == nil {
		t.Error("Expected error for unsupported format")
	}
	if f != OutputFmtYaml {
		t.Error("failed UnmarshalText must not change value")
	}
}

func TestOutputFmt_Ext(t *testing.T) {
	if got := OutputFmtJson.Ext(); got != ".json" {
		t.Errorf("Ext() = %q", got)
	}
	if got := OutputFmtYaml.Ext(); got != ".yaml" {
		t.Errorf("Ext() = %q", got)
	}
}

func TestOutputFmt_Ext_Panic(t *testing.T) {
	defer func() {
		if r := recover(); r == nil {
			t.Error("Ext() should panic for invalid format")
		}
	}()
	OutputFmt(99).Ext()
}

func TestUnknownKeyPolicy(t *testing.T) {
	names := UnknownKeyPolicyNames()
	expected := []string{"transliterate", "strict"}
	if len(names) != len(expected) {
		t.Fatalf("UnknownKeyPolicyNames() = %v, want %v", names, expected)
	}
	for i, name := range expected {
		if names[i] != name {
			t.Errorf("UnknownKeyPolicyNames()[%d] = %q, want %q", i, names[i], name)
		}
		p, err := ParseUnknownKeyPolicy(name)
		if err != nil {
			t.Errorf("ParseUnknownKeyPolicy(%q) error = %v", name, err)
		}
		if p.String() != name {
			t.Errorf("String() = %q, want %q", p.String(), name)
		}
	}

	var p UnknownKeyPolicy
	if p != UnknownKeyPolicyTransliterate {
		t.Error("zero value must be transliterate")
	}
	if UnknownKeyPolicy(5).IsValid() {
		t.Error("IsValid() = true for out of range value")
	}
}
