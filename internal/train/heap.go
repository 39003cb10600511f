package train

// candidate is one entry in the training priority queue: a pair key and the
// count it had when it was pushed. Entries may go stale (the pair map's
// live count diverges after later decrements) and are detected, not
// prevented — see the stale-entry check after Pop in Train (train.go).
type candidate struct {
	count uint32
	key   uint64
}

// maxHeap is an array-based binary max-heap ordered lexicographically by
// (count, key): higher count wins, and on a tie the larger packed key wins
// (spec requires this exact tie-break for reproducible merge order).
//
// Adapted from the teacher's array-based MergeHeap shape (push/pop via
// sift-up/sift-down on a flat slice) rather than wrapping
// container/heap, avoiding the any-boxing container/heap's Push/Pop
// would otherwise impose in the hot loop.
type maxHeap struct {
	items []candidate
}

func newMaxHeap(prealloc int) *maxHeap {
	return &maxHeap{items: make([]candidate, 0, prealloc)}
}

func (h *maxHeap) Len() int { return len(h.items) }

func (h *maxHeap) less(a, b candidate) bool {
	if a.count != b.count {
		return a.count > b.count
	}
	return a.key > b.key
}

func (h *maxHeap) Push(c candidate) {
	h.items = append(h.items, c)
	h.up(len(h.items) - 1)
}

func (h *maxHeap) Pop() (candidate, bool) {
	if len(h.items) == 0 {
		return candidate{}, false
	}
	n := len(h.items) - 1
	h.items[0], h.items[n] = h.items[n], h.items[0]
	top := h.items[n]
	h.items = h.items[:n]
	if len(h.items) > 0 {
		h.down(0)
	}
	return top, true
}

func (h *maxHeap) up(i int) {
	for i > 0 {
		parent := (i - 1) / 2
		if !h.less(h.items[i], h.items[parent]) {
			break
		}
		h.items[parent], h.items[i] = h.items[i], h.items[parent]
		i = parent
	}
}

func (h *maxHeap) down(i int) {
	n := len(h.items)
	for {
		left, right := 2*i+1, 2*i+2
		best := i
		if left < n && h.less(h.items[left], h.items[best]) {
			best = left
		}
		if right < n && h.less(h.items[right], h.items[best]) {
			best = right
		}
		if best == i {
			break
		}
		h.items[i], h.items[best] = h.items[best], h.items[i]
		i = best
	}
}
