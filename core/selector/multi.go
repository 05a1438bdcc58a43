package selector

import (
	"sort"
	"strings"
)

// MultiFieldSelector is a subset tree of field selectors, used to restrict
// a comparison to the named paths. It is a trie keyed by path component; an
// AllItems head matches any collection key when testing containment.
//
// A nil *MultiFieldSelector means "no restriction": it contains every path
// and all descend operations return nil again. All methods are nil-safe.
type MultiFieldSelector struct {
	heads    map[Component]*MultiFieldSelector
	complete bool
}

// NewMulti builds a subset tree covering all the given selectors. A
// selector is a prefix claim: every path at or below it is contained.
func NewMulti(selectors ...FieldSelector) *MultiFieldSelector {
	m := &MultiFieldSelector{heads: make(map[Component]*MultiFieldSelector)}
	for _, fs := range selectors {
		m.add(fs.comps)
	}
	return m
}

func (m *MultiFieldSelector) add(comps []Component) {
	if len(comps) == 0 {
		m.complete = true
		return
	}
	child, ok := m.heads[comps[0]]
	if !ok {
		child = &MultiFieldSelector{heads: make(map[Component]*MultiFieldSelector)}
		m.heads[comps[0]] = child
	}
	child.add(comps[1:])
}

// Contains reports whether fs lies on or below one of the selected paths,
// or is a strict ancestor of one (an ancestor must stay comparable so that
// the selected descendants can be reached).
func (m *MultiFieldSelector) Contains(fs FieldSelector) bool {
	if m == nil {
		return true
	}
	node := m
	for _, c := range fs.comps {
		if node.complete {
			return true
		}
		next, ok := node.heads[c]
		if !ok {
			// A wildcard head stands for any collection key.
			next, ok = node.heads[Component(AllItems{})]
		}
		if !ok {
			return false
		}
		node = next
	}
	return true
}

// Subtree descends along fs and returns the subset tree that applies below
// that location. It returns nil (no restriction) when fs reaches or passes
// a complete selector, and an empty tree when fs leaves the selected set.
func (m *MultiFieldSelector) Subtree(fs FieldSelector) *MultiFieldSelector {
	if m == nil {
		return nil
	}
	node := m
	for _, c := range fs.comps {
		if node.complete {
			return nil
		}
		next, ok := node.heads[c]
		if !ok {
			next, ok = node.heads[Component(AllItems{})]
		}
		if !ok {
			return &MultiFieldSelector{}
		}
		node = next
	}
	if node.complete {
		return nil
	}
	return node
}

// Any descends through the collection wildcard: the restriction that
// applies to each item of the collection selected at this node. A tree
// with no wildcard head at this node places no per-item restriction.
func (m *MultiFieldSelector) Any() *MultiFieldSelector {
	if m == nil || m.complete {
		return nil
	}
	child, ok := m.heads[Component(AllItems{})]
	if !ok || child.complete {
		return nil
	}
	return child
}

// Paths lists the selected paths in sorted display form.
func (m *MultiFieldSelector) Paths() []string {
	if m == nil {
		return nil
	}
	var out []string
	m.walk(Empty(), &out)
	sort.Strings(out)
	return out
}

func (m *MultiFieldSelector) walk(prefix FieldSelector, out *[]string) {
	if m.complete {
		*out = append(*out, prefix.Path())
	}
	for c, child := range m.heads {
		child.walk(prefix.With(c), out)
	}
}

// String renders the selected paths, for example "{.name, .tags[*].id}".
func (m *MultiFieldSelector) String() string {
	if m == nil {
		return "{*}"
	}
	return "{" + strings.Join(m.Paths(), ", ") + "}"
}
