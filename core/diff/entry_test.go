package diff

import (
	"testing"

	"github.com/contour-labs/recdiff/core/selector"
)

func TestEntry_String(t *testing.T) {
	name := selector.New(selector.Field("name"))
	tags := selector.New(selector.Field("tags"))
	tag1 := tags.WithIndex(1)

	tests := []struct {
		name string
		e    Entry
		want string
	}{
		{"same path", Entry{Kind: Modified, Base: name, Other: name}, "MODIFIED .name"},
		{"deeper base shown", Entry{Kind: Removed, Base: tag1, Other: tags}, "REMOVED .tags[1]"},
		{"deeper other shown", Entry{Kind: Added, Base: tags, Other: tag1}, "ADDED .tags[1]"},
		{"diverged paths both shown", Entry{Kind: Modified, Base: name, Other: tags}, "MODIFIED (.name/.tags)"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.e.String(); got != tt.want {
				t.Errorf("String() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestResult_String(t *testing.T) {
	r := &Result{BaseType: "Person", OtherType: "Employee", Entries: make([]Entry, 3)}
	if got := r.String(); got != "Person vs Employee: 3 item(s)" {
		t.Errorf("String() = %q", got)
	}

	r = &Result{BaseType: "Person", OtherType: "Person", Entries: make([]Entry, 1)}
	if got := r.String(); got != "Person: 1 item(s)" {
		t.Errorf("String() = %q", got)
	}
	if r.Len() != 1 {
		t.Errorf("Len() = %d, want 1", r.Len())
	}
}
