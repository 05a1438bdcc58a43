package record

import (
	"github.com/contour-labs/recdiff/core/selector"
)

// Identity is the derived comparison key of a record: the values of its
// primary-key fields (or of all fields, for types without a declared key),
// in key order. It is always composite, even for single-field keys.
type Identity []any

// Equal reports element-wise structural equality of two identities.
func (id Identity) Equal(other Identity) bool {
	if len(id) != len(other) {
		return false
	}
	for i, v := range id {
		if sub, ok := v.(Identity); ok {
			osub, ok := other[i].(Identity)
			if !ok || !sub.Equal(osub) {
				return false
			}
			continue
		}
		if v != other[i] {
			return false
		}
	}
	return true
}

// SlotNormalizer normalizes one field value before it enters an identity,
// so identity comparison respects the same whitespace/case/Unicode policy
// as value comparison. ok=false means the slot has no usable value.
type SlotNormalizer func(v any, f Field) (any, bool)

// IdentityOf derives the identity of v.
//
// typ overrides the record's own declared type; the engine passes the
// collection's declared item type here under duck typing so that alien
// records are keyed by the declared type's fields. sel, when non-nil,
// restricts the identity to the selected fields, so a filtered comparison
// keys items only on fields it will actually compare. ok=false is returned
// for values that are not records and therefore carry no derived identity.
func IdentityOf(v any, typ *Type, sel *selector.MultiFieldSelector, norm SlotNormalizer) (Identity, bool) {
	rec, ok := v.(Record)
	if !ok {
		return nil, false
	}
	if typ == nil {
		typ = rec.RecordType()
	}
	names := typ.PrimaryKey()
	if len(names) == 0 {
		names = typ.FieldNames()
	}
	id := make(Identity, 0, len(names))
	for _, name := range names {
		if sel != nil && !sel.Contains(selector.New(selector.Field(name))) {
			continue
		}
		f, _ := typ.Field(name)
		raw, present := rec.Get(name)
		if !present {
			id = append(id, nil)
			continue
		}
		id = append(id, identityValue(raw, f, sel, name, norm))
	}
	return id, true
}

func identityValue(raw any, f Field, sel *selector.MultiFieldSelector, name string, norm SlotNormalizer) any {
	switch v := raw.(type) {
	case Collection:
		items := Identity{}
		for _, item := range v.Items() {
			if sub, ok := IdentityOf(item, v.CollType().ItemType(), nil, norm); ok {
				items = append(items, sub)
			} else {
				items = append(items, normSlot(item, Field{}, norm))
			}
		}
		return items
	case Record:
		var itemSel *selector.MultiFieldSelector
		if sel != nil {
			itemSel = sel.Subtree(selector.New(selector.Field(name)))
		}
		sub, _ := IdentityOf(v, nil, itemSel, norm)
		return sub
	}
	return normSlot(raw, f, norm)
}

func normSlot(v any, f Field, norm SlotNormalizer) any {
	if norm == nil {
		return v
	}
	nv, ok := norm(v, f)
	if !ok {
		return nil
	}
	return nv
}
