package selector

import (
	"testing"
)

func mfs(selectors ...FieldSelector) *MultiFieldSelector {
	return NewMulti(selectors...)
}

func TestMultiFieldSelector_Contains(t *testing.T) {
	m := mfs(
		New(Field("name")),
		New(Field("friends"), AllItems{}, Field("given_name")),
	)

	tests := []struct {
		name string
		fs   FieldSelector
		want bool
	}{
		{"selected leaf", New(Field("name")), true},
		{"below selected leaf", New(Field("name"), Field("sub")), true},
		{"ancestor of selected", New(Field("friends")), true},
		{"wildcard matched by index", New(Field("friends"), Index(3)), true},
		{"selected under wildcard", New(Field("friends"), Index(3), Field("given_name")), true},
		{"unselected under wildcard", New(Field("friends"), Index(3), Field("age")), false},
		{"unselected field", New(Field("phone")), false},
		{"root", Empty(), true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := m.Contains(tt.fs); got != tt.want {
				t.Errorf("Contains(%s) = %v, want %v", tt.fs, got, tt.want)
			}
		})
	}
}

func TestMultiFieldSelector_NilMeansUnrestricted(t *testing.T) {
	var m *MultiFieldSelector

	if !m.Contains(New(Field("anything"), Index(4))) {
		t.Error("nil selector should contain every path")
	}
	if m.Subtree(New(Field("x"))) != nil {
		t.Error("nil selector subtree should stay nil")
	}
	if m.Any() != nil {
		t.Error("nil selector Any should stay nil")
	}
}

func TestMultiFieldSelector_Subtree(t *testing.T) {
	m := mfs(
		New(Field("friends"), AllItems{}, Field("given_name")),
		New(Field("info")),
	)

	// Past a complete selector the restriction disappears.
	if sub := m.Subtree(New(Field("info"))); sub != nil {
		t.Errorf("Subtree(.info) = %v, want nil (unrestricted)", sub)
	}

	// Off the selected set nothing is contained.
	dead := m.Subtree(New(Field("phone")))
	if dead == nil {
		t.Fatal("Subtree(.phone) = nil, want empty tree")
	}
	if dead.Contains(New(Field("anything"))) {
		t.Error("dead-end subtree should contain nothing")
	}

	// Descending to the collection keeps the per-item restriction.
	sub := m.Subtree(New(Field("friends")))
	if sub == nil {
		t.Fatal("Subtree(.friends) = nil, want per-item restriction")
	}
	item := sub.Any()
	if item == nil {
		t.Fatal("Any() = nil, want the item restriction")
	}
	if !item.Contains(New(Field("given_name"))) {
		t.Error("item restriction should contain .given_name")
	}
	if item.Contains(New(Field("age"))) {
		t.Error("item restriction should not contain .age")
	}
}

func TestMultiFieldSelector_AnyWithoutWildcard(t *testing.T) {
	m := mfs(New(Field("friends"), Index(0), Field("name")))
	sub := m.Subtree(New(Field("friends")))
	if sub == nil {
		t.Fatal("Subtree(.friends) = nil, want node")
	}
	if got := sub.Any(); got != nil {
		t.Errorf("Any() = %v, want nil when no wildcard head exists", got)
	}
}

func TestMultiFieldSelector_Paths(t *testing.T) {
	m := mfs(
		New(Field("name")),
		New(Field("friends"), AllItems{}, Field("given_name")),
	)
	want := []string{".friends[*].given_name", ".name"}
	got := m.Paths()
	if len(got) != len(want) {
		t.Fatalf("Paths() = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Paths()[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}
