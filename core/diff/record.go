package diff

import (
	"iter"

	"github.com/contour-labs/recdiff/core/record"
	"github.com/contour-labs/recdiff/core/selector"
)

// entrySeq is the internal push form of a comparer: a lazy sequence of
// entries terminated early by the consumer or by a traversal error. A
// non-nil error is the final element.
type entrySeq = iter.Seq2[Entry, error]

// forward re-yields every element of sub into yield. It reports false when
// the outer producer must stop: the consumer declined an entry, or the
// sub-sequence failed (the error has already been forwarded).
func forward(sub entrySeq, yield func(Entry, error) bool) bool {
	ok := true
	sub(func(e Entry, err error) bool {
		if !yield(e, err) || err != nil {
			ok = false
			return false
		}
		return true
	})
	return ok
}

// compareRecords compares two records field by field, in sorted field-name
// order, yielding one entry per difference. Nested compound values are
// delegated to their own comparers, so a changed nested record surfaces as
// precise nested entries, never as one blunt Modified for the subtree.
func compareRecords(a, b record.Record, fsA, fsB selector.FieldSelector, o *Options) entrySeq {
	return func(yield func(Entry, error) bool) {
		if !o.DuckType && a.RecordType() != b.RecordType() {
			yield(Entry{}, &TypeMismatchError{
				Base:  a.RecordType().Name(),
				Other: b.RecordType().Name(),
			})
			return
		}
		typ := a.RecordType()
		for _, name := range typ.FieldNames() {
			fieldFsA := fsA.WithField(name)
			if o.isFiltered(fieldFsA) {
				continue
			}
			f, _ := typ.Field(name)
			if f.Extraneous && !o.Extraneous {
				continue
			}
			fieldFsB := fsB.WithField(name)

			va := o.normalizeSlot(slotValue(a, name), f)
			vb := o.normalizeSlot(slotValue(b, name), f)
			if !comparePair(va, vb, fieldFsA, fieldFsB, o, yield) {
				return
			}
		}
	}
}

// comparePair applies the slot decision table to two normalized values at
// a pair of paths: absence decides Added/Removed, a shared compound shape
// delegates to the matching sub-comparer, and only scalar leaves can be
// Modified. It reports false when the consumer stopped the sequence.
func comparePair(va, vb any, fsA, fsB selector.FieldSelector, o *Options, yield func(Entry, error) bool) bool {
	switch {
	case va == any(absent) && vb == any(absent):
		return true
	case va == any(absent):
		return yield(Entry{Kind: Added, Base: fsA, Other: fsB}, nil)
	case vb == any(absent):
		return yield(Entry{Kind: Removed, Base: fsA, Other: fsB}, nil)
	}
	sa, sb := classify(va), classify(vb)
	if sa != shapeScalar && sa == sb {
		return forward(subCompare(sa, va, vb, fsA, fsB, o), yield)
	}
	// Under duck typing a record facing a non-record is still compared
	// field by field, with every field absent on the other side, instead
	// of one blunt Modified for the whole slot.
	if o.DuckType && (sa == shapeRecord) != (sb == shapeRecord) {
		if sa == shapeRecord {
			ra := va.(record.Record)
			return forward(compareRecords(ra, unsetRecord{ra.RecordType()}, fsA, fsB, o), yield)
		}
		rb := vb.(record.Record)
		return forward(compareRecords(unsetRecord{rb.RecordType()}, rb, fsA, fsB, o), yield)
	}
	if !o.itemsEqual(va, vb) {
		return yield(Entry{Kind: Modified, Base: fsA, Other: fsB}, nil)
	}
	if o.EmitUnchanged {
		return yield(Entry{Kind: Unchanged, Base: fsA, Other: fsB}, nil)
	}
	return true
}

// unsetRecord is a record view with every field unset. It stands in for
// the non-record side when duck typing pits a record against a plain
// value.
type unsetRecord struct {
	typ *record.Type
}

func (r unsetRecord) RecordType() *record.Type { return r.typ }

func (unsetRecord) Get(string) (any, bool) { return nil, false }

// slotValue fetches a field, mapping "not set" to the absent sentinel.
func slotValue(r record.Record, name string) any {
	v, ok := r.Get(name)
	if !ok {
		return absent
	}
	return v
}
