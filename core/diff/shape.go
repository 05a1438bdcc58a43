package diff

import (
	"fmt"

	"github.com/contour-labs/recdiff/core/record"
	"github.com/contour-labs/recdiff/core/selector"
)

// shape is the closed set of comparable value shapes. Every field value is
// classified exactly once, and each compound shape has one sub-comparer.
type shape int

const (
	shapeScalar shape = iota
	shapeRecord
	shapeKeyed
	shapeSequence
	shapeMapping
)

// classify decides which comparer family handles a value. Typed
// collections are checked before records because a type may implement
// both interfaces.
func classify(v any) shape {
	switch v.(type) {
	case record.Collection:
		return shapeKeyed
	case record.Record:
		return shapeRecord
	case []any:
		return shapeSequence
	case map[string]any:
		return shapeMapping
	}
	return shapeScalar
}

// subCompare dispatches one classified compound pair to its comparer. The
// caller guarantees both values share the shape s.
func subCompare(s shape, a, b any, fsA, fsB selector.FieldSelector, o *Options) entrySeq {
	switch s {
	case shapeRecord:
		return compareRecords(a.(record.Record), b.(record.Record), fsA, fsB, o)
	case shapeKeyed:
		return compareKeyed(a.(record.Collection), b.(record.Collection), fsA, fsB, o)
	case shapeSequence:
		return compareSequence(a.([]any), b.([]any), fsA, fsB, o)
	case shapeMapping:
		return compareMapping(a.(map[string]any), b.(map[string]any), fsA, fsB, o)
	}
	panic(fmt.Sprintf("diff: no comparer for shape %d", int(s)))
}

// typeNameOf names a value for error messages and result tagging.
func typeNameOf(v any) string {
	switch t := v.(type) {
	case record.Collection:
		return t.CollType().Name()
	case record.Record:
		return t.RecordType().Name()
	case nil:
		return "nil"
	}
	return fmt.Sprintf("%T", v)
}
