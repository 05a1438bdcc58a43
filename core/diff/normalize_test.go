package diff

import (
	"testing"

	"github.com/contour-labs/recdiff/core/record"
)

func TestNormalizeText(t *testing.T) {
	tests := []struct {
		name string
		opts []Option
		in   string
		want string
	}{
		{"defaults collapse whitespace", nil, "  a \t b  ", "a b"},
		{"defaults keep case", nil, "MiXeD", "MiXeD"},
		{"case folding", []Option{IgnoreCase(true)}, "MiXeD", "MIXED"},
		{"whitespace kept", []Option{IgnoreWhitespace(false)}, " a  b ", " a  b "},
		// U+0065 U+0301 composes to U+00E9 under NFC.
		{"nfc composition", nil, "café", "café"},
		{"nfc off", []Option{NormalizeUnicode(false)}, "café", "café"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			o := NewOptions(tt.opts...)
			if got := o.normalizeText(tt.in); got != tt.want {
				t.Errorf("normalizeText(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestNormalizeValue_Idempotent(t *testing.T) {
	optionSets := [][]Option{
		nil,
		{IgnoreCase(true)},
		{IgnoreWhitespace(false), IgnoreCase(true)},
		{IgnoreEmptySlots(true)},
		{NormalizeUnicode(false)},
	}
	values := []any{"  Hello  World ", "café", "", nil, 42, true, 3.14}

	for _, opts := range optionSets {
		o := NewOptions(opts...)
		for _, v := range values {
			once := o.normalizeValue(v)
			twice := o.normalizeValue(once)
			if once != twice {
				t.Errorf("opts %v: normalize not idempotent for %#v: %#v then %#v", opts, v, once, twice)
			}
		}
	}
}

func TestNormalizeValue_EmptySlots(t *testing.T) {
	o := NewOptions(IgnoreEmptySlots(true))

	if got := o.normalizeValue(""); got != any(absent) {
		t.Errorf("empty string = %#v, want absent", got)
	}
	if got := o.normalizeValue("   "); got != any(absent) {
		t.Errorf("whitespace-only string = %#v, want absent", got)
	}
	if got := o.normalizeValue(nil); got != any(absent) {
		t.Errorf("nil = %#v, want absent", got)
	}
	if got := o.normalizeValue(0); got != 0 {
		t.Errorf("zero int = %#v, want 0 (not empty)", got)
	}

	// Off by default.
	if got := NewOptions().normalizeValue(""); got != "" {
		t.Errorf("default: empty string = %#v, want \"\"", got)
	}
}

func TestNormalizeSlot_CompareAs(t *testing.T) {
	o := NewOptions()
	f := record.Field{Name: "n", CompareAs: func(v any) any { return v.(int) * 10 }}

	if got := o.normalizeSlot(4, f); got != 40 {
		t.Errorf("normalizeSlot = %v, want 40", got)
	}
	// The hook never sees the absent sentinel.
	if got := o.normalizeSlot(absent, f); got != any(absent) {
		t.Errorf("normalizeSlot(absent) = %#v, want absent", got)
	}
}

func TestAbsent_NeverEqualToRealValues(t *testing.T) {
	for _, v := range []any{nil, "", 0, false, "(not set)"} {
		if v == any(absent) {
			t.Errorf("%#v compares equal to absent", v)
		}
	}
}
