// Package bpetok is the public facade over the byte-level BPE tokenizer
// core: train a model from a corpus, save/load it, and encode or decode
// with it. The package is intentionally small; all the interesting
// engineering lives in the internal packages it wires together.
package bpetok

import (
	"github.com/bpetok/internal/codec"
	"github.com/bpetok/internal/encode"
	"github.com/bpetok/internal/train"
	"github.com/bpetok/internal/vocab"
)

// Model is a trained (or loaded) tokenizer: an ordered list of merge rules
// and the byte string for every token id. Per spec.md §5 the core has no
// concurrency model: a single Model is owned by one caller at a time, and
// the lazily built rank table in ensureTable assumes no concurrent
// NewEncoder calls.
type Model struct {
	v     *vocab.Vocabulary
	table *encode.Table // built lazily, once, on first NewEncoder call
}

// Encoder turns text into token ids.
type Encoder interface {
	// Encode returns the token ids for text. The returned slice may alias
	// internal memory; callers that want to mutate it must copy first.
	Encode(text []byte) []uint32
}

// Decoder turns token ids back into bytes.
type Decoder interface {
	// Decode returns the bytes for ids. Ids outside the vocabulary are
	// silently skipped.
	Decode(ids []uint32) []byte
}

// Train learns merge rules from text until the vocabulary reaches
// targetVocab or no remaining pair meets minFreq occurrences, whichever
// comes first. minFreq below 1 is treated as 1.
func Train(text []byte, targetVocab, minFreq int) *Model {
	v := train.Train(text, train.Options{TargetVocab: targetVocab, MinFreq: minFreq})
	return &Model{v: v}
}

// Save writes m to path in the fixed binary model layout.
func Save(path string, m *Model) error {
	return codec.Save(path, m.v)
}

// Load reads a model previously written by Save.
func Load(path string) (*Model, error) {
	v, err := codec.Load(path)
	if err != nil {
		return nil, err
	}
	return &Model{v: v}, nil
}

// VocabSize reports how many token ids m defines.
func (m *Model) VocabSize() int { return m.v.Len() }

// MergeCount reports how many merge rules m learned.
func (m *Model) MergeCount() int { return len(m.v.Rules) }

func (m *Model) ensureTable() *encode.Table {
	if m.table == nil {
		m.table = encode.BuildTable(m.v.Rules)
	}
	return m.table
}

// NewEncoder returns an Encoder bound to m. The rank lookup table is built
// once, on first use, and reused for every subsequent Encode call.
func (m *Model) NewEncoder() Encoder {
	return &encoder{table: m.ensureTable()}
}

// NewDecoder returns a Decoder bound to m.
func (m *Model) NewDecoder() Decoder {
	return &decoder{v: m.v}
}

type encoder struct {
	table *encode.Table
}

func (e *encoder) Encode(text []byte) []uint32 {
	return encode.Encode(text, e.table)
}

type decoder struct {
	v *vocab.Vocabulary
}

func (d *decoder) Decode(ids []uint32) []byte {
	return encode.Decode(ids, d.v)
}
