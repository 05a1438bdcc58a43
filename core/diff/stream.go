package diff

import "iter"

// Stream is a forward-only, single-pass iterator over change entries.
// Consuming it drives the comparison on demand, so stopping after the
// first interesting entry skips the rest of the traversal:
//
//	s, err := diff.Iter(a, b, nil)
//	if err != nil { ... }
//	defer s.Close()
//	for s.Next() {
//		fmt.Println(s.Entry())
//	}
//	if err := s.Err(); err != nil { ... }
//
// A Stream is not safe for concurrent use and cannot be restarted.
type Stream struct {
	next func() (Entry, error, bool)
	stop func()
	cur  Entry
	err  error
	done bool
}

func newStream(seq entrySeq) *Stream {
	next, stop := iter.Pull2(seq)
	return &Stream{next: next, stop: stop}
}

// Next advances to the next entry. It returns false when the sequence is
// exhausted or a traversal error occurred; check Err afterwards.
func (s *Stream) Next() bool {
	if s.done {
		return false
	}
	e, err, ok := s.next()
	if !ok {
		s.Close()
		return false
	}
	if err != nil {
		s.err = err
		s.Close()
		return false
	}
	s.cur = e
	return true
}

// Entry returns the entry Next advanced to.
func (s *Stream) Entry() Entry { return s.cur }

// Err returns the traversal error that ended the stream, if any.
func (s *Stream) Err() error { return s.err }

// Close releases the underlying traversal. It is safe to call more than
// once and after exhaustion.
func (s *Stream) Close() {
	if !s.done {
		s.done = true
		s.stop()
	}
}
