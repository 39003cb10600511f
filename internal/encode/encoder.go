// Package encode implements greedy lowest-rank-merge inference over the
// segments produced by internal/segment, plus the trivial byte-concatenation
// decoder.
package encode

import (
	"github.com/bpetok/internal/pairmap"
	"github.com/bpetok/internal/segment"
	"github.com/bpetok/internal/vocab"
)

// Table maps a (a,b) token pair to its merge rank (lower wins), using the
// same open-addressed layout the training pair map uses so that a single
// mental model covers both (spec requires this explicitly).
type Table struct {
	pairs *pairmap.Map
	rules []vocab.Rule // rules[rank] is the winning rule for that rank
}

// BuildTable constructs a rank lookup table from an ordered rule list. Rank
// is the rule's index, stored in the slot's Head field.
func BuildTable(rules []vocab.Rule) *Table {
	size := 2 * len(rules)
	if size < 1 {
		size = 1
	}
	pairs := pairmap.NewMap(size)
	for rank, r := range rules {
		key := pairmap.Pack(r.A, r.B)
		slot := pairs.Lookup(key)
		entry := pairs.At(slot)
		entry.Key = key
		entry.Head = int32(rank)
	}
	return &Table{pairs: pairs, rules: rules}
}

// rank returns the merge rank of (a,b), and whether it exists at all.
func (t *Table) rank(a, b uint32) (int32, bool) {
	key := pairmap.Pack(a, b)
	slot := t.pairs.Lookup(key)
	entry := t.pairs.At(slot)
	if entry.Key != key {
		return 0, false
	}
	return entry.Head, true
}

// Encode segments text with internal/segment and runs greedy lowest-rank
// merge independently within each segment, concatenating the results in
// original order. No merge ever considers a pair that spans a segment
// boundary.
func Encode(text []byte, table *Table) []uint32 {
	n := len(text)
	if n == 0 {
		return nil
	}

	seg := segment.Split(text)
	out := make([]uint32, 0, n)

	work := make([]uint32, 0, 32)
	for i := 0; i < n; i++ {
		work = append(work, seg.Val[i])
		if seg.Next[i] == -1 {
			out = append(out, mergeSegment(work, table)...)
			work = work[:0]
		}
	}
	return out
}

// mergeSegment repeatedly replaces the adjacent pair with the smallest rank
// until no pair in the segment has a rank, scanning left to right each
// pass so that equal ranks resolve to the left-most occurrence. This is
// quadratic per segment, which is fine because segmentation keeps segments
// short; spec explicitly forbids switching to a priority-queue scheme here
// because it would change the tie-break.
func mergeSegment(seg []uint32, table *Table) []uint32 {
	if len(seg) < 2 {
		out := make([]uint32, len(seg))
		copy(out, seg)
		return out
	}

	buf := make([]uint32, len(seg))
	copy(buf, seg)

	for len(buf) >= 2 {
		bestRank := int32(-1)
		bestI := -1
		for i := 0; i+1 < len(buf); i++ {
			r, ok := table.rank(buf[i], buf[i+1])
			if !ok {
				continue
			}
			if bestI == -1 || r < bestRank {
				bestRank = r
				bestI = i
			}
		}
		if bestI == -1 {
			break
		}

		newID := table.rules[bestRank].NewID
		buf[bestI] = newID
		buf = append(buf[:bestI+1], buf[bestI+2:]...)
	}

	return buf
}
