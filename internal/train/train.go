// Package train implements the byte pair encoding training engine: seeding
// pair statistics over a doubly linked token stream, then repeatedly
// merging the highest-frequency pair and incrementally repairing the
// statistics it touched.
//
// This is the core of the system. Every other package is interface-level by
// comparison: the engineering budget lives in making a single merge step
// cost O(affected positions), not O(n).
package train

import (
	"sort"

	"github.com/bpetok/internal/pairmap"
	"github.com/bpetok/internal/segment"
	"github.com/bpetok/internal/stream"
	"github.com/bpetok/internal/vocab"
)

// Options configures a training run.
type Options struct {
	TargetVocab int // final vocabulary size, must be >= 256
	MinFreq     int // minimum pair count to be eligible for a merge, must be >= 1
}

// Train learns an ordered list of merge rules from text and returns the
// resulting vocabulary. Training is deterministic: identical (text,
// options) always produce an identical vocabulary.
func Train(text []byte, opts Options) *vocab.Vocabulary {
	v := vocab.NewByteLevel()
	if opts.TargetVocab <= 256 {
		return v
	}
	if opts.MinFreq < 1 {
		opts.MinFreq = 1
	}

	seg := segment.Split(text)
	st := stream.New(seg.Val, seg.Next)
	n := st.Len()
	if n == 0 {
		return v
	}

	pairs := pairmap.NewMap(max(16, 4*opts.TargetVocab))
	pool := pairmap.NewIndexPool(n / 2)
	heap := newMaxHeap(1024)

	seedStatistics(st, pairs, pool, heap, opts.MinFreq)

	currentVocab := 256
	var scratch []int32 // reused position-drain buffer

	for currentVocab < opts.TargetVocab {
		cand, ok := heap.Pop()
		if !ok {
			break
		}

		slot := pairs.Lookup(cand.key)
		entry := pairs.At(slot)
		if entry.Key == pairmap.EmptyKey || entry.Count != cand.count {
			// stale heap entry: the pair map moved on since this was pushed.
			continue
		}
		if entry.Count < uint32(opts.MinFreq) {
			// The reference implementation this was distilled from breaks
			// here rather than skipping: once the max-heap's current top
			// falls below the threshold, no pair in the corpus can still
			// qualify, so there is nothing left to find by continuing.
			break
		}

		a, b := pairmap.Unpack(cand.key)
		newID := v.AddMerge(a, b)
		currentVocab++

		head := entry.Head
		entry.Key = pairmap.EmptyKey
		entry.Count = 0
		entry.Head = -1

		scratch = pool.Walk(head, scratch[:0])
		sort.Slice(scratch, func(i, j int) bool { return scratch[i] < scratch[j] })
		scratch = dedupSorted(scratch)

		applyMerge(st, pairs, pool, heap, scratch, a, b, newID, uint32(opts.MinFreq))
	}

	return v
}

// seedStatistics populates the pair map and heap from every adjacent pair
// in the token stream (Phase 1).
func seedStatistics(st *stream.Stream, pairs *pairmap.Map, pool *pairmap.IndexPool, heap *maxHeap, minFreq int) {
	n := st.Len()
	for i := 0; i < n; i++ {
		j := st.Next[i]
		if j == -1 {
			continue
		}
		key := pairmap.Pack(st.Val[i], st.Val[j])
		slot := pairs.Lookup(key)
		entry := pairs.At(slot)
		if entry.Key == pairmap.EmptyKey {
			entry.Key = key
			entry.Count = 0
			entry.Head = -1
		}
		entry.Count++
		pool.Push(&entry.Head, int32(i))
	}

	for i := 0; i < pairs.Cap(); i++ {
		entry := pairs.At(i)
		if entry.Key != pairmap.EmptyKey && entry.Count >= uint32(minFreq) {
			heap.Push(candidate{count: entry.Count, key: entry.Key})
		}
	}
}

// applyMerge walks every candidate position for the winning pair, validates
// it against the live stream, and rewrites the ones still valid (Phase 2,
// steps 5-6).
func applyMerge(st *stream.Stream, pairs *pairmap.Map, pool *pairmap.IndexPool, heap *maxHeap, positions []int32, a, b, newID uint32, minFreq uint32) {
	for _, pos32 := range positions {
		pos := int(pos32)
		if st.Val[pos] != a {
			continue
		}
		nextPos := st.Next[pos]
		if nextPos == -1 || int(nextPos) >= st.Len() || st.Val[nextPos] != b {
			continue
		}

		p := st.Prev[pos]
		nn := st.Next[nextPos]

		if p != -1 && st.Next[p] != int32(pos) {
			continue
		}
		if nn != -1 && st.Prev[nn] != nextPos {
			continue
		}

		if p != -1 {
			decrementPair(pairs, st.Val[p], a)
		}
		if nn != -1 {
			decrementPair(pairs, b, st.Val[nn])
		}

		st.Val[pos] = newID
		st.Next[pos] = nn
		if nn != -1 {
			st.Prev[nn] = int32(pos)
		}
		// The old right-hand position (formerly at nextPos) is now
		// unreachable: no live predecessor's Next still points to it.

		if p != -1 {
			incrementPair(pairs, pool, heap, st.Val[p], newID, p, minFreq)
		}
		if nn != -1 {
			incrementPair(pairs, pool, heap, newID, st.Val[nn], int32(pos), minFreq)
		}
	}
}

func decrementPair(pairs *pairmap.Map, a, b uint32) {
	key := pairmap.Pack(a, b)
	slot := pairs.Lookup(key)
	entry := pairs.At(slot)
	if entry.Key == pairmap.EmptyKey || entry.Count == 0 {
		return
	}
	entry.Count--
}

func incrementPair(pairs *pairmap.Map, pool *pairmap.IndexPool, heap *maxHeap, a, b uint32, pos int32, minFreq uint32) {
	key := pairmap.Pack(a, b)
	slot := pairs.Lookup(key)
	entry := pairs.At(slot)
	if entry.Key == pairmap.EmptyKey {
		entry.Key = key
		entry.Count = 0
		entry.Head = -1
	}
	entry.Count++
	pool.Push(&entry.Head, pos)

	if entry.Count >= minFreq {
		heap.Push(candidate{count: entry.Count, key: key})
	}
}

func dedupSorted(s []int32) []int32 {
	if len(s) == 0 {
		return s
	}
	out := s[:1]
	for _, v := range s[1:] {
		if v != out[len(out)-1] {
			out = append(out, v)
		}
	}
	return out
}
