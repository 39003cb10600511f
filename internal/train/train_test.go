package train

import (
	"bytes"
	"testing"
)

func TestTrainBelowByteLevelIsNoOp(t *testing.T) {
	v := Train([]byte("abcabc"), Options{TargetVocab: 200, MinFreq: 1})
	if v.Len() != 256 {
		t.Fatalf("expected no merges below byte level, got vocab len %d", v.Len())
	}
}

func TestTrainEmptyInput(t *testing.T) {
	v := Train(nil, Options{TargetVocab: 300, MinFreq: 1})
	if v.Len() != 256 {
		t.Fatalf("empty input should yield no merges, got %d", v.Len())
	}
}

func TestTrainVocabularyInvariants(t *testing.T) {
	text := bytes.Repeat([]byte("abab cdcd "), 50)
	v := Train(text, Options{TargetVocab: 270, MinFreq: 1})

	if v.Len() != 256+len(v.Rules) {
		t.Fatalf("V1 violated: vocab len %d, rules %d", v.Len(), len(v.Rules))
	}
	for k, r := range v.Rules {
		if int(r.NewID) != 256+k {
			t.Fatalf("V2 violated at rule %d: newID=%d", k, r.NewID)
		}
		want := append(append([]byte{}, v.Tokens[r.A]...), v.Tokens[r.B]...)
		if !bytes.Equal(v.Tokens[r.NewID], want) {
			t.Fatalf("vocab[%d] = %q, want %q", r.NewID, v.Tokens[r.NewID], want)
		}
	}
}

func TestTrainMergesMostFrequentPairFirst(t *testing.T) {
	// "ab" occurs far more often than anything else.
	text := bytes.Repeat([]byte("ab"), 100)
	v := Train(text, Options{TargetVocab: 257, MinFreq: 1})

	if len(v.Rules) != 1 {
		t.Fatalf("expected exactly one merge, got %d", len(v.Rules))
	}
	r := v.Rules[0]
	if v.Tokens[r.A][0] != 'a' || v.Tokens[r.B][0] != 'b' {
		t.Fatalf("expected merge of a,b first, got %q,%q", v.Tokens[r.A], v.Tokens[r.B])
	}
}

func TestTrainDeterministic(t *testing.T) {
	text := bytes.Repeat([]byte("the quick brown fox jumps over the lazy dog "), 30)
	opts := Options{TargetVocab: 320, MinFreq: 1}

	v1 := Train(text, opts)
	v2 := Train(text, opts)

	if len(v1.Rules) != len(v2.Rules) {
		t.Fatalf("rule count differs: %d vs %d", len(v1.Rules), len(v2.Rules))
	}
	for i := range v1.Rules {
		if v1.Rules[i] != v2.Rules[i] {
			t.Fatalf("rule %d differs: %+v vs %+v", i, v1.Rules[i], v2.Rules[i])
		}
	}
	for i := range v1.Tokens {
		if !bytes.Equal(v1.Tokens[i], v2.Tokens[i]) {
			t.Fatalf("token %d differs", i)
		}
	}
}

func TestTrainRespectsMinFreq(t *testing.T) {
	// "xy" occurs exactly once; min_freq=2 must reject it.
	text := []byte("xy ab ab ab ab")
	v := Train(text, Options{TargetVocab: 260, MinFreq: 2})

	for _, r := range v.Rules {
		if v.Tokens[r.A][0] == 'x' {
			t.Fatalf("merge of rare pair 'xy' should not have happened")
		}
	}
}

func TestTrainStopsWhenHeapEmpty(t *testing.T) {
	// single repeated byte: after merging it down to one token, no pair remains.
	text := bytes.Repeat([]byte("a"), 8)
	v := Train(text, Options{TargetVocab: 100000, MinFreq: 1})
	if v.Len() >= 100000 {
		t.Fatalf("expected early stop well below target, got vocab len %d", v.Len())
	}
}

func TestTrainNoMergeCrossesSegmentBoundary(t *testing.T) {
	text := []byte("ab ab ab ab")
	v := Train(text, Options{TargetVocab: 260, MinFreq: 1})
	for _, r := range v.Rules {
		// a merge that crossed "b "+"a" would fuse whitespace with alpha.
		tok := v.Tokens[r.NewID]
		if bytes.Contains(tok, []byte(" a")) || bytes.Contains(tok, []byte("b ")) {
			// only flag if it's actually a cross-class fusion, not e.g. "ab" itself
			if !bytes.Equal(tok, []byte("ab")) {
				t.Fatalf("merge rule produced token crossing segment boundary: %q", tok)
			}
		}
	}
}
