// Package selector provides path selectors: ordered sequences of field
// names and collection keys that address a location inside a record tree.
// FieldSelector addresses a single location; MultiFieldSelector describes a
// subset tree of locations and is used to restrict comparisons.
package selector

import (
	"fmt"
	"iter"
	"regexp"
	"strings"
)

// Component is one step of a path: a field or mapping key (Field), a
// sequence index (Index), or the whole-collection wildcard (AllItems).
// All component types are comparable, so components can key maps.
type Component interface {
	component()
}

// Field addresses a record field or mapping entry by name.
type Field string

// Index addresses a sequence element by position.
type Index int

// AllItems addresses every item of a collection. It appears in filter
// selectors ("restrict each item of this collection to ...") and as the
// synthesized key for unordered set items.
type AllItems struct{}

func (Field) component()    {}
func (Index) component()    {}
func (AllItems) component() {}

// ComponentOf converts a collection iteration key into a path component.
// Sequence iteration yields int keys, mappings string keys, and sets nil.
func ComponentOf(key any) Component {
	switch k := key.(type) {
	case nil:
		return AllItems{}
	case int:
		return Index(k)
	case string:
		return Field(k)
	case Component:
		return k
	default:
		return Field(fmt.Sprint(k))
	}
}

// FieldSelector is an immutable, ordered path into a record tree. The zero
// value is the empty selector (the root). Appending never mutates the
// receiver, so selectors may be shared freely across recursive calls.
type FieldSelector struct {
	comps []Component
}

// New builds a selector from the given components.
func New(comps ...Component) FieldSelector {
	out := make([]Component, len(comps))
	copy(out, comps)
	return FieldSelector{comps: out}
}

// Empty returns the root selector.
func Empty() FieldSelector {
	return FieldSelector{}
}

// With returns a copy of fs with one component appended.
func (fs FieldSelector) With(c Component) FieldSelector {
	out := make([]Component, len(fs.comps)+1)
	copy(out, fs.comps)
	out[len(fs.comps)] = c
	return FieldSelector{comps: out}
}

// WithField appends a field-name component.
func (fs FieldSelector) WithField(name string) FieldSelector {
	return fs.With(Field(name))
}

// WithIndex appends a sequence-index component.
func (fs FieldSelector) WithIndex(i int) FieldSelector {
	return fs.With(Index(i))
}

// Extend returns the concatenation of fs and other.
func (fs FieldSelector) Extend(other FieldSelector) FieldSelector {
	out := make([]Component, 0, len(fs.comps)+len(other.comps))
	out = append(out, fs.comps...)
	out = append(out, other.comps...)
	return FieldSelector{comps: out}
}

// Len reports the number of components.
func (fs FieldSelector) Len() int {
	return len(fs.comps)
}

// Components returns a copy of the component list.
func (fs FieldSelector) Components() []Component {
	out := make([]Component, len(fs.comps))
	copy(out, fs.comps)
	return out
}

// Equal reports whether the two selectors address the same location.
func (fs FieldSelector) Equal(other FieldSelector) bool {
	if len(fs.comps) != len(other.comps) {
		return false
	}
	for i, c := range fs.comps {
		if c != other.comps[i] {
			return false
		}
	}
	return true
}

// StartsWith reports whether prefix addresses fs itself or an ancestor of it.
func (fs FieldSelector) StartsWith(prefix FieldSelector) bool {
	if len(prefix.comps) > len(fs.comps) {
		return false
	}
	for i, c := range prefix.comps {
		if fs.comps[i] != c {
			return false
		}
	}
	return true
}

// componentRank orders component kinds for Compare: indexes sort before
// names, the wildcard last.
func componentRank(c Component) int {
	switch c.(type) {
	case Index:
		return 0
	case Field:
		return 1
	default:
		return 2
	}
}

// Compare imposes a total order on selectors, componentwise with a length
// fallback, for stable sorting of reported paths.
func (fs FieldSelector) Compare(other FieldSelector) int {
	n := min(len(fs.comps), len(other.comps))
	for i := 0; i < n; i++ {
		a, b := fs.comps[i], other.comps[i]
		if a == b {
			continue
		}
		if ra, rb := componentRank(a), componentRank(b); ra != rb {
			if ra < rb {
				return -1
			}
			return 1
		}
		switch av := a.(type) {
		case Index:
			if av < b.(Index) {
				return -1
			}
			return 1
		case Field:
			return strings.Compare(string(av), string(b.(Field)))
		}
	}
	switch {
	case len(fs.comps) < len(other.comps):
		return -1
	case len(fs.comps) > len(other.comps):
		return 1
	}
	return 0
}

// bareName matches names that render with dot notation; anything else is
// quoted in bracket notation.
var bareName = regexp.MustCompile(`^[a-z_][a-z0-9_]*$`)

// Path renders the selector in attribute/subscript notation, for example
// ".friends[0].given_name" or "['odd key'][*]". The empty selector renders
// as the empty string. The rendering is for display only.
func (fs FieldSelector) Path() string {
	var b strings.Builder
	for _, c := range fs.comps {
		switch v := c.(type) {
		case Index:
			fmt.Fprintf(&b, "[%d]", int(v))
		case AllItems:
			b.WriteString("[*]")
		case Field:
			if bareName.MatchString(string(v)) {
				b.WriteString("." + string(v))
			} else {
				fmt.Fprintf(&b, "['%s']", strings.ReplaceAll(string(v), "'", `\'`))
			}
		}
	}
	return b.String()
}

// String returns the display path.
func (fs FieldSelector) String() string {
	return fs.Path()
}

// The traversal interfaces are declared structurally rather than imported
// from core/record, which itself depends on this package.
type recordGetter interface {
	Get(field string) (any, bool)
}

type collection interface {
	Items() iter.Seq2[any, any]
}

// Get resolves the selector against a record tree and returns the addressed
// value. An AllItems component fans out: the remainder of the selector is
// applied to every item and a slice of results is returned.
func (fs FieldSelector) Get(root any) (any, error) {
	cur := root
	for i, c := range fs.comps {
		switch v := c.(type) {
		case AllItems:
			coll, ok := itemsOf(cur)
			if ok {
				rest := FieldSelector{comps: fs.comps[i+1:]}
				var out []any
				for _, item := range coll {
					sub, err := rest.Get(item)
					if err != nil {
						return nil, err
					}
					out = append(out, sub)
				}
				return out, nil
			}
			return nil, fmt.Errorf("selector: %s is not a collection", FieldSelector{comps: fs.comps[:i]}.Path())
		case Index:
			item, ok := itemAt(cur, int(v))
			if !ok {
				return nil, fmt.Errorf("selector: no item at index %d under %q", int(v), FieldSelector{comps: fs.comps[:i]}.Path())
			}
			cur = item
		case Field:
			item, ok := fieldOf(cur, string(v))
			if !ok {
				return nil, fmt.Errorf("selector: no field %q under %q", string(v), FieldSelector{comps: fs.comps[:i]}.Path())
			}
			cur = item
		}
	}
	return cur, nil
}

func itemsOf(v any) (iter.Seq2[any, any], bool) {
	switch c := v.(type) {
	case collection:
		return c.Items(), true
	case []any:
		return func(yield func(any, any) bool) {
			for i, item := range c {
				if !yield(i, item) {
					return
				}
			}
		}, true
	case map[string]any:
		return func(yield func(any, any) bool) {
			for k, item := range c {
				if !yield(k, item) {
					return
				}
			}
		}, true
	}
	return nil, false
}

func itemAt(v any, idx int) (any, bool) {
	if s, ok := v.([]any); ok {
		if idx < 0 || idx >= len(s) {
			return nil, false
		}
		return s[idx], true
	}
	if c, ok := v.(collection); ok {
		for k, item := range c.Items() {
			if ki, ok := k.(int); ok && ki == idx {
				return item, true
			}
		}
	}
	return nil, false
}

func fieldOf(v any, name string) (any, bool) {
	switch c := v.(type) {
	case recordGetter:
		return c.Get(name)
	case map[string]any:
		item, ok := c[name]
		return item, ok
	case collection:
		for k, item := range c.Items() {
			if ks, ok := k.(string); ok && ks == name {
				return item, true
			}
		}
	}
	return nil, false
}
