package diff

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/contour-labs/recdiff/core/record"
)

// occurrence is one collection item together with the key it was found
// under (an int position, a string key, or nil for set items).
type occurrence struct {
	key  any
	item any
}

// multiset indexes a collection side by a canonical identity encoding.
// Per-identity occurrences keep collection order, and identities keep
// first-seen order, so reconciliation output is deterministic. Two items
// that legitimately share an identity become two distinct occurrences,
// each independently matchable against the other side.
type multiset struct {
	order []string
	occs  map[string][]occurrence
}

func newMultiset() *multiset {
	return &multiset{occs: make(map[string][]occurrence)}
}

func (m *multiset) add(canon string, key, item any) {
	if _, ok := m.occs[canon]; !ok {
		m.order = append(m.order, canon)
	}
	m.occs[canon] = append(m.occs[canon], occurrence{key: key, item: item})
}

// reconciliation is the outcome of matching two multisets: occurrences
// only in the base side, only in the other side, and pairs present in
// both (matched occurrence-by-occurrence, so duplicates pair up in order).
type reconciliation struct {
	removed []occurrence
	added   []occurrence
	matched [][2]occurrence
}

// reconcile matches two multisets. Identities are visited in the base
// side's first-seen order, then the other side's.
func reconcile(a, b *multiset) reconciliation {
	var rec reconciliation
	seen := make(map[string]bool, len(a.order))
	visit := func(canon string) {
		if seen[canon] {
			return
		}
		seen[canon] = true
		as, bs := a.occs[canon], b.occs[canon]
		n := min(len(as), len(bs))
		for i := 0; i < n; i++ {
			rec.matched = append(rec.matched, [2]occurrence{as[i], bs[i]})
		}
		rec.removed = append(rec.removed, as[n:]...)
		rec.added = append(rec.added, bs[n:]...)
	}
	for _, canon := range a.order {
		visit(canon)
	}
	for _, canon := range b.order {
		visit(canon)
	}
	return rec
}

// canonicalKey encodes a normalized value or identity as a comparable
// string. The encoding is type-tagged so values of different kinds never
// collide ("1" vs 1, int vs int64 — widths stay apart, matching the
// default equality policy), and composite identities are length-prefixed so
// element boundaries are unambiguous. This avoids hashing arbitrary
// values: anything without a scalar encoding falls back to its printed
// form, which is deterministic for the value kinds the engine normalizes.
func canonicalKey(v any) string {
	switch v := v.(type) {
	case nil:
		return "n:"
	case absentValue:
		return "a:"
	case string:
		return "s:" + v
	case bool:
		return "b:" + strconv.FormatBool(v)
	case int:
		return "i:" + strconv.FormatInt(int64(v), 10)
	case int32:
		return "i32:" + strconv.FormatInt(int64(v), 10)
	case int64:
		return "i64:" + strconv.FormatInt(v, 10)
	case uint64:
		return "u64:" + strconv.FormatUint(v, 10)
	case float32:
		return "f32:" + strconv.FormatFloat(float64(v), 'g', -1, 32)
	case float64:
		return "f64:" + strconv.FormatFloat(v, 'g', -1, 64)
	case record.Identity:
		var b strings.Builder
		fmt.Fprintf(&b, "t%d:", len(v))
		for _, elem := range v {
			part := canonicalKey(elem)
			fmt.Fprintf(&b, "%d:%s", len(part), part)
		}
		return b.String()
	}
	return fmt.Sprintf("x:%T:%v", v, v)
}
