package diff

import (
	"strings"

	"golang.org/x/text/unicode/norm"

	"github.com/contour-labs/recdiff/core/record"
)

// absentValue marks a slot with no usable value: the field was never set,
// or normalization emptied it. It is distinct from nil, never equal to any
// real value, and never escapes into an Entry.
type absentValue struct{}

func (absentValue) String() string { return "(not set)" }

var absent absentValue

// normalizeText canonicalizes a string under the configured policy. The
// order is fixed: whitespace first, so case folding and composition act on
// already-trimmed text.
func (o *Options) normalizeText(s string) string {
	if o.IgnoreWhitespace {
		s = strings.Join(strings.Fields(s), " ")
	}
	if o.IgnoreCase {
		s = strings.ToUpper(s)
	}
	if o.NormalizeUnicode {
		s = norm.NFC.String(s)
	}
	return s
}

// valueIsEmpty decides whether a normalized value counts as "not set"
// under IgnoreEmptySlots. Only zero-length strings and nil are empty;
// zero numbers and empty containers are real values.
func (o *Options) valueIsEmpty(v any) bool {
	if v == nil {
		return true
	}
	s, ok := v.(string)
	return ok && s == ""
}

// normalizeValue canonicalizes a single value before comparison. It may
// return absent when empty-slot ignoring is enabled.
func (o *Options) normalizeValue(v any) any {
	if s, ok := v.(string); ok {
		v = o.normalizeText(s)
	}
	if o.IgnoreEmptySlots && v != any(absent) && o.valueIsEmpty(v) {
		return absent
	}
	return v
}

// normalizeSlot canonicalizes a record field value: the field's CompareAs
// hook first (never applied to absence), then normalizeValue.
func (o *Options) normalizeSlot(v any, f record.Field) any {
	if v != any(absent) && f.CompareAs != nil {
		v = f.CompareAs(v)
	}
	return o.normalizeValue(v)
}

// normalizeItem canonicalizes a collection item: the collection's
// CompareItemAs hook first (never applied to absence), then normalizeValue.
func (o *Options) normalizeItem(v any, ct *record.CollType) any {
	if v != any(absent) && ct != nil {
		if fn := ct.CompareItemAs(); fn != nil {
			v = fn(v)
		}
	}
	return o.normalizeValue(v)
}
