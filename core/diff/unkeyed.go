package diff

import (
	"sort"

	"github.com/contour-labs/recdiff/core/selector"
)

// valueMultiset indexes plain (non-identity-bearing) items by their own
// normalized value. Items normalized to absence are dropped entirely; the
// surviving items keep their original keys for path reporting. Filters
// restrict record fields and identity extraction, never collection
// membership, so items are not filtered here.
func valueMultiset(items func(yield func(any, any) bool), o *Options) *multiset {
	ms := newMultiset()
	items(func(key, item any) bool {
		v := o.normalizeValue(item)
		if v == any(absent) {
			return true
		}
		ms.add(canonicalKey(v), key, v)
		return true
	})
	return ms
}

// yieldReconciled emits the outcome of a value-keyed reconciliation.
// Matched values are definitionally equal, so there is no recursive phase:
// removals first, then additions, then (under EmitUnchanged) the matched
// pairs.
func yieldReconciled(rec reconciliation, fsA, fsB selector.FieldSelector, o *Options, yield func(Entry, error) bool) {
	for _, occ := range rec.removed {
		if !yield(Entry{Kind: Removed, Base: fsA.With(selector.ComponentOf(occ.key)), Other: fsB}, nil) {
			return
		}
	}
	for _, occ := range rec.added {
		if !yield(Entry{Kind: Added, Base: fsA, Other: fsB.With(selector.ComponentOf(occ.key))}, nil) {
			return
		}
	}
	if !o.EmitUnchanged {
		return
	}
	for _, pair := range rec.matched {
		e := Entry{
			Kind:  Unchanged,
			Base:  fsA.With(selector.ComponentOf(pair[0].key)),
			Other: fsB.With(selector.ComponentOf(pair[1].key)),
		}
		if !yield(e, nil) {
			return
		}
	}
}

// compareSequence reconciles two plain slices as multisets of their
// normalized values, so reordering alone is not a difference and duplicate
// values pair up occurrence by occurrence. Positions survive only as the
// reported paths.
func compareSequence(a, b []any, fsA, fsB selector.FieldSelector, o *Options) entrySeq {
	return func(yield func(Entry, error) bool) {
		seqItems := func(s []any) func(yield func(any, any) bool) {
			return func(yield func(any, any) bool) {
				for i, v := range s {
					if !yield(i, v) {
						return
					}
				}
			}
		}
		rec := reconcile(valueMultiset(seqItems(a), o), valueMultiset(seqItems(b), o))
		yieldReconciled(rec, fsA, fsB, o, yield)
	}
}

// compareMapping reconciles two plain string-keyed maps the same way as
// compareSequence, with the map keys as reported paths. Keys are visited
// in sorted order so output is deterministic regardless of map iteration
// order.
func compareMapping(a, b map[string]any, fsA, fsB selector.FieldSelector, o *Options) entrySeq {
	return func(yield func(Entry, error) bool) {
		mapItems := func(m map[string]any) func(yield func(any, any) bool) {
			return func(yield func(any, any) bool) {
				keys := make([]string, 0, len(m))
				for k := range m {
					keys = append(keys, k)
				}
				sort.Strings(keys)
				for _, k := range keys {
					if !yield(k, m[k]) {
						return
					}
				}
			}
		}
		rec := reconcile(valueMultiset(mapItems(a), o), valueMultiset(mapItems(b), o))
		yieldReconciled(rec, fsA, fsB, o, yield)
	}
}
