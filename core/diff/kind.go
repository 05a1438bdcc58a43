// Package diff computes structural differences between two instances of
// the same (or duck-type-compatible) record tree. It yields an ordered,
// lazily-produced sequence of change entries: a change kind plus the
// location of the change in each operand. The engine is pure: it performs
// no I/O, never mutates its inputs, and a shared *Options value is safe for
// concurrent runs.
package diff

import "fmt"

// Kind classifies one reported difference. The values are ordered by
// severity; that order is stable and safe to sort or compare on.
type Kind int

const (
	// Unchanged entries are only emitted when Options.EmitUnchanged is set.
	Unchanged Kind = iota + 1
	Added
	Removed
	Modified
)

var kindTokens = [...]string{"none", "added", "removed", "modified"}
var kindNames = [...]string{"UNCHANGED", "ADDED", "REMOVED", "MODIFIED"}

func (k Kind) valid() bool {
	return k >= Unchanged && k <= Modified
}

// String returns the display name, e.g. "MODIFIED".
func (k Kind) String() string {
	if !k.valid() {
		return fmt.Sprintf("Kind(%d)", int(k))
	}
	return kindNames[k-1]
}

// Token returns the canonical token, e.g. "modified".
func (k Kind) Token() string {
	if !k.valid() {
		return fmt.Sprintf("kind(%d)", int(k))
	}
	return kindTokens[k-1]
}

// KindOfIndex converts an enumeration index (1-based, Unchanged..Modified)
// to a Kind. Out-of-range indexes are a construction error.
func KindOfIndex(i int) (Kind, error) {
	k := Kind(i)
	if !k.valid() {
		return 0, fmt.Errorf("diff: no change kind with index %d", i)
	}
	return k, nil
}

// ParseKind converts a canonical token ("modified") or a display name
// ("MODIFIED") to a Kind. Unknown input is a construction error; there is
// no fallback value.
func ParseKind(s string) (Kind, error) {
	for i, tok := range kindTokens {
		if s == tok || s == kindNames[i] {
			return Kind(i + 1), nil
		}
	}
	return 0, fmt.Errorf("diff: unknown change kind %q", s)
}

// MarshalText encodes the kind as its canonical token.
func (k Kind) MarshalText() ([]byte, error) {
	if !k.valid() {
		return nil, fmt.Errorf("diff: cannot marshal invalid kind %d", int(k))
	}
	return []byte(k.Token()), nil
}

// UnmarshalText decodes a canonical token or display name.
func (k *Kind) UnmarshalText(text []byte) error {
	parsed, err := ParseKind(string(text))
	if err != nil {
		return err
	}
	*k = parsed
	return nil
}
