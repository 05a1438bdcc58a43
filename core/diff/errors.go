package diff

import (
	"errors"
	"fmt"
)

// ErrOptionsConflict is returned when a caller supplies both a pre-built
// *Options and inline option overrides; the two are mutually exclusive.
var ErrOptionsConflict = errors.New("diff: pre-built options cannot be combined with inline overrides")

// TypeMismatchError is returned when two record values of different
// declared types are compared without duck typing. It aborts the
// comparison; it is never reported as a change entry.
type TypeMismatchError struct {
	Base  string
	Other string
}

func (e *TypeMismatchError) Error() string {
	return fmt.Sprintf("diff: cannot compare %s with %s", e.Base, e.Other)
}

// IdentityArityError is returned when the items of a keyed collection do
// not all derive identities of the same shape, for example a three-field
// composite key on one side and a two-field key on the other. Matching
// across mixed arities is ambiguous, so it is rejected rather than guessed.
type IdentityArityError struct {
	Want int
	Got  int
}

func (e *IdentityArityError) Error() string {
	want := fmt.Sprintf("%d-part", e.Want)
	if e.Want < 0 {
		want = "value-keyed"
	}
	got := fmt.Sprintf("%d-part", e.Got)
	if e.Got < 0 {
		got = "value-keyed"
	}
	return fmt.Sprintf("diff: mixed identity shapes in keyed collection: %s vs %s", want, got)
}
