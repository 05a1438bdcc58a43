// Package record defines the record and collection type system the diff
// engine compares: declared record types with ordered field metadata,
// map-backed record instances, keyed and sequence collections, and identity
// extraction for reconciling collection items across two snapshots.
package record

import (
	"fmt"
	"sort"

	"github.com/emirpasic/gods/maps/linkedhashmap"
)

// Field describes one comparable slot of a record type.
//
// CompareAs, when non-nil, is applied to the raw slot value before the
// engine's value normalization; it is the per-field comparison hook.
type Field struct {
	Name string

	// Extraneous marks a field that is excluded from comparison unless the
	// caller opts in.
	Extraneous bool

	CompareAs func(v any) any
}

// Type is the declared shape of a record: a name, an ordered field table,
// and an optional primary key. Types are immutable once built and are
// compared by identity, so each type should be declared exactly once.
type Type struct {
	name       string
	fields     *linkedhashmap.Map // field name -> Field, declaration order
	sorted     []string           // field names sorted; the comparison order
	primaryKey []string
}

// TypeOption adjusts a Type during construction.
type TypeOption func(*Type) error

// PrimaryKey declares the ordered field names whose values identify a
// record of this type across two snapshots.
func PrimaryKey(names ...string) TypeOption {
	return func(t *Type) error {
		for _, name := range names {
			if _, ok := t.fields.Get(name); !ok {
				return fmt.Errorf("record: type %s: primary key names unknown field %q", t.name, name)
			}
		}
		t.primaryKey = append([]string(nil), names...)
		return nil
	}
}

// NewType builds a record type from its fields, in declaration order.
func NewType(name string, fields []Field, opts ...TypeOption) (*Type, error) {
	if name == "" {
		return nil, fmt.Errorf("record: type name must not be empty")
	}
	t := &Type{name: name, fields: linkedhashmap.New()}
	for _, f := range fields {
		if f.Name == "" {
			return nil, fmt.Errorf("record: type %s: field name must not be empty", name)
		}
		if _, ok := t.fields.Get(f.Name); ok {
			return nil, fmt.Errorf("record: type %s: duplicate field %q", name, f.Name)
		}
		t.fields.Put(f.Name, f)
		t.sorted = append(t.sorted, f.Name)
	}
	sort.Strings(t.sorted)
	for _, opt := range opts {
		if err := opt(t); err != nil {
			return nil, err
		}
	}
	return t, nil
}

// MustType is NewType for package-level type declarations; it panics on a
// malformed declaration.
func MustType(name string, fields []Field, opts ...TypeOption) *Type {
	t, err := NewType(name, fields, opts...)
	if err != nil {
		panic(err)
	}
	return t
}

// Name returns the declared type name.
func (t *Type) Name() string {
	return t.name
}

// Fields returns the fields in declaration order.
func (t *Type) Fields() []Field {
	out := make([]Field, 0, t.fields.Size())
	for _, k := range t.fields.Keys() {
		v, _ := t.fields.Get(k)
		out = append(out, v.(Field))
	}
	return out
}

// FieldNames returns the field names sorted lexicographically. This is the
// order fields are compared in, independent of declaration order.
func (t *Type) FieldNames() []string {
	out := make([]string, len(t.sorted))
	copy(out, t.sorted)
	return out
}

// Field looks a field up by name.
func (t *Type) Field(name string) (Field, bool) {
	v, ok := t.fields.Get(name)
	if !ok {
		return Field{}, false
	}
	return v.(Field), true
}

// PrimaryKey returns the identity field names, or nil when the type has no
// declared key (identity then falls back to all fields).
func (t *Type) PrimaryKey() []string {
	if t.primaryKey == nil {
		return nil
	}
	out := make([]string, len(t.primaryKey))
	copy(out, t.primaryKey)
	return out
}

func (t *Type) String() string {
	return t.name
}
