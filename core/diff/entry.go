package diff

import (
	"fmt"

	"github.com/contour-labs/recdiff/core/selector"
)

// Entry is one reported difference: what changed and where it lives in
// each operand. Both selectors are always meaningful — for an Added entry
// in a collection, Base addresses the parent collection in the base tree
// since no item key exists there, and symmetrically for Removed.
//
// Entries are immutable once yielded.
type Entry struct {
	Kind  Kind
	Base  selector.FieldSelector
	Other selector.FieldSelector
}

// String renders the entry for humans, e.g. "MODIFIED .phone_number". When
// the two paths differ, the deeper one is shown if it extends the other;
// otherwise both are shown.
func (e Entry) String() string {
	pathinfo := e.Other.Path()
	if !e.Base.Equal(e.Other) {
		switch {
		case e.Base.Len() > e.Other.Len() && e.Base.StartsWith(e.Other):
			pathinfo = e.Base.Path()
		case e.Other.Len() > e.Base.Len() && e.Other.StartsWith(e.Base):
			pathinfo = e.Other.Path()
		default:
			pathinfo = fmt.Sprintf("(%s/%s)", e.Base.Path(), e.Other.Path())
		}
	}
	return fmt.Sprintf("%s %s", e.Kind, pathinfo)
}

// Result is the eagerly collected outcome of a comparison, tagged with the
// two operands' type names for display. It wraps the entries without
// altering them.
type Result struct {
	BaseType  string
	OtherType string
	Entries   []Entry
}

// Len reports the number of collected entries.
func (r *Result) Len() int {
	return len(r.Entries)
}

// String summarizes the result, e.g. "Person vs Employee: 3 item(s)", or
// "Person: 3 item(s)" when both operands share a type name.
func (r *Result) String() string {
	what := r.BaseType
	if r.BaseType != r.OtherType {
		what = fmt.Sprintf("%s vs %s", r.BaseType, r.OtherType)
	}
	return fmt.Sprintf("%s: %d item(s)", what, len(r.Entries))
}
