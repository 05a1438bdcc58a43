package diff

import (
	"github.com/contour-labs/recdiff/core/record"
	"github.com/contour-labs/recdiff/core/selector"
)

// Identity-shape markers shared across both sides of one keyed comparison.
const (
	arityUnset = -1 // no item seen yet
	arityValue = -2 // items keyed by their own normalized value
)

// buildMultiset indexes one side of a keyed comparison by item identity.
// Record items are keyed by their derived identity, anything else by its
// normalized value. typ and sel are the shared identity arguments for the
// whole comparison; arity accumulates the identity shape across both
// sides, and a shape change is an IdentityArityError.
func buildMultiset(c record.Collection, typ *record.Type, sel *selector.MultiFieldSelector, o *Options, arity *int) (*multiset, error) {
	ms := newMultiset()
	for key, item := range c.Items() {
		v := o.normalizeItem(item, c.CollType())
		if v == any(absent) {
			continue
		}
		got := arityValue
		var canon string
		if id, ok := o.identityOf(v, typ, sel); ok {
			canon = canonicalKey(id)
			got = len(id)
		} else {
			canon = canonicalKey(v)
		}
		switch *arity {
		case arityUnset:
			*arity = got
		case got:
		default:
			return nil, &IdentityArityError{Want: *arity, Got: got}
		}
		ms.add(canon, key, v)
	}
	return ms, nil
}

// compareKeyed reconciles two typed collections as multisets keyed by item
// identity. Unmatched base occurrences are Removed, unmatched other
// occurrences Added, and matched pairs are compared by content: identity
// says "same item", not "equal item". Removals are reported first, then
// additions, then the matched pairs in identity order.
func compareKeyed(a, b record.Collection, fsA, fsB selector.FieldSelector, o *Options) entrySeq {
	return func(yield func(Entry, error) bool) {
		// Identity arguments are resolved once, from the base collection,
		// so both sides key items by the same declared type and filter
		// path even when the other side declares a different key.
		typ, sel := o.idArgs(a.CollType().ItemType(), fsA)
		arity := arityUnset
		msA, err := buildMultiset(a, typ, sel, o, &arity)
		if err != nil {
			yield(Entry{}, err)
			return
		}
		msB, err := buildMultiset(b, typ, sel, o, &arity)
		if err != nil {
			yield(Entry{}, err)
			return
		}
		rec := reconcile(msA, msB)
		for _, occ := range rec.removed {
			e := Entry{Kind: Removed, Base: fsA.With(selector.ComponentOf(occ.key)), Other: fsB}
			if !yield(e, nil) {
				return
			}
		}
		for _, occ := range rec.added {
			e := Entry{Kind: Added, Base: fsA, Other: fsB.With(selector.ComponentOf(occ.key))}
			if !yield(e, nil) {
				return
			}
		}
		for _, pair := range rec.matched {
			itemFsA := fsA.With(selector.ComponentOf(pair[0].key))
			itemFsB := fsB.With(selector.ComponentOf(pair[1].key))
			va, vb := pair[0].item, pair[1].item
			sa, sb := classify(va), classify(vb)
			switch {
			case sa != shapeScalar && sa == sb:
				differed := false
				ok := true
				subCompare(sa, va, vb, itemFsA, itemFsB, o)(func(e Entry, err error) bool {
					if err != nil || e.Kind != Unchanged {
						differed = true
					}
					if !yield(e, err) || err != nil {
						ok = false
						return false
					}
					return true
				})
				if !ok {
					return
				}
				// The pair itself counts as unchanged when the recursion
				// found no differences.
				if !differed && o.EmitUnchanged {
					if !yield(Entry{Kind: Unchanged, Base: itemFsA, Other: itemFsB}, nil) {
						return
					}
				}
			case !o.itemsEqual(va, vb):
				if !yield(Entry{Kind: Modified, Base: itemFsA, Other: itemFsB}, nil) {
					return
				}
			case o.EmitUnchanged:
				if !yield(Entry{Kind: Unchanged, Base: itemFsA, Other: itemFsB}, nil) {
					return
				}
			}
		}
	}
}
