package record

import (
	"fmt"
	"iter"

	"github.com/emirpasic/gods/maps/linkedhashmap"
)

// CollKind says how a collection is keyed during iteration.
type CollKind int

const (
	// SeqColl iterates with synthesized integer keys (position).
	SeqColl CollKind = iota
	// MapColl iterates with its own string keys.
	MapColl
	// SetColl is unordered; iteration synthesizes a uniform nil key.
	SetColl
)

// CollType is the declared shape of a collection: how it is keyed, what
// record type its items have (nil for scalar collections), and an optional
// per-item comparison hook.
type CollType struct {
	name          string
	kind          CollKind
	itemType      *Type
	compareItemAs func(v any) any
}

// CollOption adjusts a CollType during construction.
type CollOption func(*CollType)

// OfItems declares the record type of the collection's items.
func OfItems(t *Type) CollOption {
	return func(ct *CollType) { ct.itemType = t }
}

// CompareItemsAs installs a hook applied to each item before the engine's
// value normalization.
func CompareItemsAs(fn func(v any) any) CollOption {
	return func(ct *CollType) { ct.compareItemAs = fn }
}

// NewCollType declares a collection type.
func NewCollType(name string, kind CollKind, opts ...CollOption) *CollType {
	ct := &CollType{name: name, kind: kind}
	for _, opt := range opts {
		opt(ct)
	}
	return ct
}

// Name returns the declared collection type name.
func (ct *CollType) Name() string { return ct.name }

// Kind returns how the collection is keyed.
func (ct *CollType) Kind() CollKind { return ct.kind }

// ItemType returns the declared item record type, nil for scalar items.
func (ct *CollType) ItemType() *Type { return ct.itemType }

// CompareItemAs returns the per-item comparison hook, nil when undeclared.
func (ct *CollType) CompareItemAs() func(v any) any { return ct.compareItemAs }

// Collection is the iteration surface the diff engine needs from any
// collection shape. Items yields (key, value) pairs: int keys for
// sequences, string keys for mappings, nil keys for unordered sets.
type Collection interface {
	CollType() *CollType
	Items() iter.Seq2[any, any]
}

// List is a sequence-shaped Collection.
type List struct {
	typ    *CollType
	values []any
}

// NewList builds a list collection with the given items.
func NewList(typ *CollType, values ...any) *List {
	return &List{typ: typ, values: append([]any(nil), values...)}
}

// CollType returns the declared collection type.
func (l *List) CollType() *CollType { return l.typ }

// Len reports the number of items.
func (l *List) Len() int { return len(l.values) }

// Append adds an item at the end.
func (l *List) Append(v any) { l.values = append(l.values, v) }

// At returns the item at position i.
func (l *List) At(i int) (any, bool) {
	if i < 0 || i >= len(l.values) {
		return nil, false
	}
	return l.values[i], true
}

// Items yields (position, item) pairs, or (nil, item) for set-kinded lists.
func (l *List) Items() iter.Seq2[any, any] {
	return func(yield func(any, any) bool) {
		for i, v := range l.values {
			var key any = i
			if l.typ.kind == SetColl {
				key = nil
			}
			if !yield(key, v) {
				return
			}
		}
	}
}

func (l *List) String() string {
	return fmt.Sprintf("<%s: %d item(s)>", l.typ.name, len(l.values))
}

// Dict is a mapping-shaped Collection with stable insertion order.
type Dict struct {
	typ     *CollType
	entries *linkedhashmap.Map
}

// NewDict builds an empty dict collection.
func NewDict(typ *CollType) *Dict {
	return &Dict{typ: typ, entries: linkedhashmap.New()}
}

// CollType returns the declared collection type.
func (d *Dict) CollType() *CollType { return d.typ }

// Len reports the number of entries.
func (d *Dict) Len() int { return d.entries.Size() }

// Set stores an entry, preserving first-insertion order.
func (d *Dict) Set(key string, v any) { d.entries.Put(key, v) }

// Get returns the entry under key.
func (d *Dict) Get(key string) (any, bool) { return d.entries.Get(key) }

// Items yields (key, value) pairs in insertion order.
func (d *Dict) Items() iter.Seq2[any, any] {
	return func(yield func(any, any) bool) {
		for _, k := range d.entries.Keys() {
			v, _ := d.entries.Get(k)
			if !yield(k, v) {
				return
			}
		}
	}
}

func (d *Dict) String() string {
	return fmt.Sprintf("<%s: %d item(s)>", d.typ.name, d.entries.Size())
}
