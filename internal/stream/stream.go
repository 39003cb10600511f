// Package stream implements the doubly linked token stream used only
// during training: three parallel arrays over the same index space, with
// -1 as the sentinel for "no link".
package stream

// Stream is a doubly linked list of token ids realized as three parallel
// arrays. Positions are never reallocated; once a position becomes
// unreachable (no live predecessor points to it) it stays allocated but
// dead.
type Stream struct {
	Val  []uint32
	Next []int32
	Prev []int32
}

// New builds a stream from segmenter output: val holds the initial
// (per-byte) token ids, next encodes within-segment links exactly as
// produced by segment.Split. Prev is derived by inverting next.
func New(val []uint32, next []int32) *Stream {
	n := len(val)
	s := &Stream{
		Val:  val,
		Next: next,
		Prev: make([]int32, n),
	}
	for i := range s.Prev {
		s.Prev[i] = -1
	}
	for i := 0; i < n; i++ {
		if j := s.Next[i]; j != -1 {
			s.Prev[j] = int32(i)
		}
	}
	return s
}

// Len returns the number of positions in the stream, including dead ones.
func (s *Stream) Len() int { return len(s.Val) }
