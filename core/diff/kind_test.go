package diff

import (
	"sort"
	"testing"
)

func TestParseKind(t *testing.T) {
	tests := []struct {
		in   string
		want Kind
	}{
		{"none", Unchanged},
		{"added", Added},
		{"removed", Removed},
		{"modified", Modified},
		{"UNCHANGED", Unchanged},
		{"ADDED", Added},
		{"REMOVED", Removed},
		{"MODIFIED", Modified},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseKind(tt.in)
			if err != nil {
				t.Fatalf("ParseKind(%q): %v", tt.in, err)
			}
			if got != tt.want {
				t.Errorf("ParseKind(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestParseKind_Unknown(t *testing.T) {
	for _, in := range []string{"", "changed", "Added", "NONE "} {
		if _, err := ParseKind(in); err == nil {
			t.Errorf("ParseKind(%q) should fail", in)
		}
	}
}

func TestKindOfIndex(t *testing.T) {
	for i := 1; i <= 4; i++ {
		k, err := KindOfIndex(i)
		if err != nil {
			t.Fatalf("KindOfIndex(%d): %v", i, err)
		}
		if int(k) != i {
			t.Errorf("KindOfIndex(%d) = %d", i, int(k))
		}
	}
	for _, i := range []int{0, 5, -1} {
		if _, err := KindOfIndex(i); err == nil {
			t.Errorf("KindOfIndex(%d) should fail", i)
		}
	}
}

func TestKind_Ordering(t *testing.T) {
	kinds := []Kind{Modified, Added, Unchanged, Removed}
	sort.Slice(kinds, func(i, j int) bool { return kinds[i] < kinds[j] })
	want := []Kind{Unchanged, Added, Removed, Modified}
	for i := range want {
		if kinds[i] != want[i] {
			t.Errorf("sorted[%d] = %v, want %v", i, kinds[i], want[i])
		}
	}
}

func TestKind_Text(t *testing.T) {
	if Modified.String() != "MODIFIED" {
		t.Errorf("String() = %q", Modified.String())
	}
	if Unchanged.Token() != "none" {
		t.Errorf("Token() = %q", Unchanged.Token())
	}

	data, err := Added.MarshalText()
	if err != nil {
		t.Fatalf("MarshalText: %v", err)
	}
	var back Kind
	if err := back.UnmarshalText(data); err != nil {
		t.Fatalf("UnmarshalText: %v", err)
	}
	if back != Added {
		t.Errorf("round trip = %v, want Added", back)
	}

	if _, err := Kind(0).MarshalText(); err == nil {
		t.Error("MarshalText of invalid kind should fail")
	}
	if err := back.UnmarshalText([]byte("bogus")); err == nil {
		t.Error("UnmarshalText of unknown token should fail")
	}
}
