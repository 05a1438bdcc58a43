package diff

import (
	"reflect"

	"github.com/contour-labs/recdiff/core/record"
	"github.com/contour-labs/recdiff/core/selector"
)

// EqualFunc overrides the value-equality policy for scalar comparison.
// It is called on already-normalized values.
type EqualFunc func(a, b any) bool

// IdentityFunc overrides identity extraction for keyed collections.
// itemType is the collection's declared item type (only passed under duck
// typing), sel the filter restriction applying to each item (only passed
// when a filter is configured). ok=false means the item has no derived
// identity and is matched by value instead.
type IdentityFunc func(item any, itemType *record.Type, sel *selector.MultiFieldSelector) (record.Identity, bool)

// Options is the configuration snapshot for one comparison run. It is
// read-only during a run: the engine never mutates it, so one instance may
// be shared by nested recursive calls and by concurrent runs.
type Options struct {
	// IgnoreWhitespace collapses runs of Unicode whitespace in strings to
	// single spaces and trims the ends before comparing. Default true.
	IgnoreWhitespace bool

	// IgnoreCase upper-folds strings before comparing. Default false.
	IgnoreCase bool

	// NormalizeUnicode reduces strings to Unicode canonical composition
	// (NFC) before comparing. Default true.
	NormalizeUnicode bool

	// EmitUnchanged yields an entry for every comparison, not just the
	// differences. Default false.
	EmitUnchanged bool

	// IgnoreEmptySlots treats empty values (zero-length strings and nil,
	// after normalization) as if the slot were not set. Default false.
	IgnoreEmptySlots bool

	// DuckType compares records of different declared types by the base
	// type's field names instead of failing with a type mismatch.
	DuckType bool

	// Extraneous includes fields marked extraneous in the comparison.
	Extraneous bool

	// Filter restricts the comparison to the selected paths. nil compares
	// everything.
	Filter *selector.MultiFieldSelector

	// Equal overrides scalar value equality. nil uses structural equality.
	Equal EqualFunc

	// Identity overrides identity extraction for keyed collections.
	Identity IdentityFunc
}

// Option adjusts an Options value during construction.
type Option func(*Options)

// IgnoreWhitespace toggles whitespace normalization.
func IgnoreWhitespace(on bool) Option { return func(o *Options) { o.IgnoreWhitespace = on } }

// IgnoreCase toggles case folding.
func IgnoreCase(on bool) Option { return func(o *Options) { o.IgnoreCase = on } }

// NormalizeUnicode toggles Unicode NFC normalization.
func NormalizeUnicode(on bool) Option { return func(o *Options) { o.NormalizeUnicode = on } }

// EmitUnchanged toggles reporting of equal comparisons.
func EmitUnchanged(on bool) Option { return func(o *Options) { o.EmitUnchanged = on } }

// IgnoreEmptySlots toggles treating empty values as unset.
func IgnoreEmptySlots(on bool) Option { return func(o *Options) { o.IgnoreEmptySlots = on } }

// DuckType toggles comparison across mismatched declared types.
func DuckType(on bool) Option { return func(o *Options) { o.DuckType = on } }

// Extraneous toggles inclusion of extraneous fields.
func Extraneous(on bool) Option { return func(o *Options) { o.Extraneous = on } }

// WithFilter restricts the comparison to the selected paths.
func WithFilter(m *selector.MultiFieldSelector) Option {
	return func(o *Options) { o.Filter = m }
}

// WithEqual installs a value-equality override.
func WithEqual(fn EqualFunc) Option { return func(o *Options) { o.Equal = fn } }

// WithIdentity installs an identity-extraction override.
func WithIdentity(fn IdentityFunc) Option { return func(o *Options) { o.Identity = fn } }

// NewOptions returns the default options adjusted by opts: whitespace and
// Unicode normalization on, everything else off.
func NewOptions(opts ...Option) *Options {
	o := &Options{IgnoreWhitespace: true, NormalizeUnicode: true}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// itemsEqual applies the configured value-equality policy to two
// normalized non-compound values.
func (o *Options) itemsEqual(a, b any) bool {
	if o.Equal != nil {
		return o.Equal(a, b)
	}
	return valuesEqual(a, b)
}

// valuesEqual is the default equality: direct comparison for the common
// scalar kinds, reflection only as a fallback.
func valuesEqual(a, b any) bool {
	switch va := a.(type) {
	case string:
		vb, ok := b.(string)
		return ok && va == vb
	case bool:
		vb, ok := b.(bool)
		return ok && va == vb
	case int:
		vb, ok := b.(int)
		return ok && va == vb
	case int64:
		vb, ok := b.(int64)
		return ok && va == vb
	case float64:
		vb, ok := b.(float64)
		return ok && va == vb
	case nil:
		return b == nil
	}
	return reflect.DeepEqual(a, b)
}

// isFiltered reports whether the configured filter excludes the path.
func (o *Options) isFiltered(fs selector.FieldSelector) bool {
	return o.Filter != nil && !o.Filter.Contains(fs)
}

// idArgs resolves the identity-extraction arguments for a collection at
// path fs: the declared item type is only forwarded under duck typing, and
// the per-item filter restriction only when a filter is configured.
func (o *Options) idArgs(itemType *record.Type, fs selector.FieldSelector) (*record.Type, *selector.MultiFieldSelector) {
	var typ *record.Type
	if o.DuckType {
		typ = itemType
	}
	var sel *selector.MultiFieldSelector
	if o.Filter != nil {
		sel = o.Filter.Subtree(fs).Any()
	}
	return typ, sel
}

// identityOf derives a collection item's identity under the configured
// policy.
func (o *Options) identityOf(item any, itemType *record.Type, sel *selector.MultiFieldSelector) (record.Identity, bool) {
	if o.Identity != nil {
		return o.Identity(item, itemType, sel)
	}
	return record.IdentityOf(item, itemType, sel, o.slotNormalizer())
}

// slotNormalizer adapts the normalization policy for identity extraction.
func (o *Options) slotNormalizer() record.SlotNormalizer {
	return func(v any, f record.Field) (any, bool) {
		nv := o.normalizeSlot(v, f)
		if nv == any(absent) {
			return nil, false
		}
		return nv, true
	}
}
