package diff

import (
	"github.com/contour-labs/recdiff/core/record"
	"github.com/contour-labs/recdiff/core/selector"
)

// resolveOptions reconciles the two ways of configuring a run: a pre-built
// *Options, or inline overrides on the defaults. Supplying both is
// ambiguous and rejected.
func resolveOptions(options *Options, inline []Option) (*Options, error) {
	if options != nil {
		if len(inline) > 0 {
			return nil, ErrOptionsConflict
		}
		return options, nil
	}
	return NewOptions(inline...), nil
}

// rootCompare selects the comparer families that structurally apply to the
// root pair. A type may implement both Record and Collection, so every
// matching family contributes, concatenated in a fixed order. No matching
// family at all is a type mismatch.
func rootCompare(base, other any, o *Options) (entrySeq, error) {
	root := selector.Empty()
	var seqs []entrySeq
	if ra, ok := base.(record.Record); ok {
		if rb, ok := other.(record.Record); ok {
			seqs = append(seqs, compareRecords(ra, rb, root, root, o))
		}
	}
	if ca, ok := base.(record.Collection); ok {
		if cb, ok := other.(record.Collection); ok {
			seqs = append(seqs, compareKeyed(ca, cb, root, root, o))
		}
	}
	if sa, ok := base.([]any); ok {
		if sb, ok := other.([]any); ok {
			seqs = append(seqs, compareSequence(sa, sb, root, root, o))
		}
	}
	if ma, ok := base.(map[string]any); ok {
		if mb, ok := other.(map[string]any); ok {
			seqs = append(seqs, compareMapping(ma, mb, root, root, o))
		}
	}
	if len(seqs) == 0 {
		return nil, &TypeMismatchError{Base: typeNameOf(base), Other: typeNameOf(other)}
	}
	if len(seqs) == 1 {
		return seqs[0], nil
	}
	return func(yield func(Entry, error) bool) {
		for _, seq := range seqs {
			if !forward(seq, yield) {
				return
			}
		}
	}, nil
}

// Iter lazily compares two record trees and returns a Stream of change
// entries. Configure the run either with a pre-built options value or with
// inline overrides, not both:
//
//	diff.Iter(a, b, opts)
//	diff.Iter(a, b, nil, diff.IgnoreCase(true))
//
// An error is returned before any traversal when the configuration
// conflicts or the roots share no comparable shape; errors inside the tree
// surface through Stream.Err.
func Iter(base, other any, options *Options, inline ...Option) (*Stream, error) {
	o, err := resolveOptions(options, inline)
	if err != nil {
		return nil, err
	}
	seq, err := rootCompare(base, other, o)
	if err != nil {
		return nil, err
	}
	return newStream(seq), nil
}

// Compare eagerly compares two record trees and collects every entry into
// a Result tagged with the operands' type names. It accepts the same
// configuration forms as Iter.
func Compare(base, other any, options *Options, inline ...Option) (*Result, error) {
	s, err := Iter(base, other, options, inline...)
	if err != nil {
		return nil, err
	}
	defer s.Close()
	res := &Result{BaseType: typeNameOf(base), OtherType: typeNameOf(other)}
	for s.Next() {
		res.Entries = append(res.Entries, s.Entry())
	}
	if err := s.Err(); err != nil {
		return nil, err
	}
	return res, nil
}
