// Package codec implements the fixed binary layout used to persist a
// trained model: a magic/version header, bounds-checked size fields, the
// merge rule table, and the vocabulary.
package codec

import (
	"bufio"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/bpetok/internal/vocab"
)

const (
	magic   uint32 = 0x42504521
	version uint32 = 1

	maxVocabSize  = 1_000_000
	maxMergeCount = 1_000_000
	maxTokenLen   = 1000
)

// Sentinel errors for the codec's distinct failure kinds (spec §7). IoError
// is deliberately not one of these: it's whatever the os/io call returned,
// wrapped with %w at the call site, same as the teacher's file-loading code.
var (
	ErrBadMagic           = errors.New("bpetok: bad magic")
	ErrUnsupportedVersion = errors.New("bpetok: unsupported version")
	ErrCorrupted          = errors.New("bpetok: corrupted model file")
)

// Save writes v to path in the model's fixed binary layout.
func Save(path string, v *vocab.Vocabulary) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("bpetok: create %s: %w", path, err)
	}
	defer f.Close()

	w := bufio.NewWriter(f)
	if err := Write(w, v); err != nil {
		return fmt.Errorf("bpetok: write %s: %w", path, err)
	}
	if err := w.Flush(); err != nil {
		return fmt.Errorf("bpetok: flush %s: %w", path, err)
	}
	return nil
}

// Write serializes v onto w in the model's fixed binary layout.
func Write(w io.Writer, v *vocab.Vocabulary) error {
	var hdr [16]byte
	binary.LittleEndian.PutUint32(hdr[0:4], magic)
	binary.LittleEndian.PutUint32(hdr[4:8], version)
	binary.LittleEndian.PutUint32(hdr[8:12], uint32(v.Len()))
	binary.LittleEndian.PutUint32(hdr[12:16], uint32(len(v.Rules)))
	if _, err := w.Write(hdr[:]); err != nil {
		return err
	}

	var rule [12]byte
	for _, r := range v.Rules {
		binary.LittleEndian.PutUint32(rule[0:4], r.A)
		binary.LittleEndian.PutUint32(rule[4:8], r.B)
		binary.LittleEndian.PutUint32(rule[8:12], r.NewID)
		if _, err := w.Write(rule[:]); err != nil {
			return err
		}
	}

	var lenBuf [4]byte
	for _, tok := range v.Tokens {
		binary.LittleEndian.PutUint32(lenBuf[:], uint32(len(tok)))
		if _, err := w.Write(lenBuf[:]); err != nil {
			return err
		}
		if _, err := w.Write(tok); err != nil {
			return err
		}
	}

	return nil
}

// Load reads a model previously written by Save, verifying magic, version,
// and bounds before trusting any size field.
func Load(path string) (*vocab.Vocabulary, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("bpetok: open %s: %w", path, err)
	}
	defer f.Close()

	v, err := Read(bufio.NewReader(f))
	if err != nil {
		return nil, fmt.Errorf("bpetok: read %s: %w", path, err)
	}
	return v, nil
}

// Read deserializes a model from r, the inverse of Write.
func Read(r io.Reader) (*vocab.Vocabulary, error) {
	var hdr [16]byte
	if _, err := io.ReadFull(r, hdr[:]); err != nil {
		return nil, wrapEOF(err)
	}

	gotMagic := binary.LittleEndian.Uint32(hdr[0:4])
	if gotMagic != magic {
		return nil, ErrBadMagic
	}
	gotVersion := binary.LittleEndian.Uint32(hdr[4:8])
	if gotVersion != version {
		return nil, ErrUnsupportedVersion
	}

	vocabSize := binary.LittleEndian.Uint32(hdr[8:12])
	mergeCount := binary.LittleEndian.Uint32(hdr[12:16])
	if vocabSize > maxVocabSize {
		return nil, fmt.Errorf("%w: vocab_size %d exceeds limit", ErrCorrupted, vocabSize)
	}
	if mergeCount > maxMergeCount {
		return nil, fmt.Errorf("%w: merge_count %d exceeds limit", ErrCorrupted, mergeCount)
	}

	rules := make([]vocab.Rule, mergeCount)
	var ruleBuf [12]byte
	for i := range rules {
		if _, err := io.ReadFull(r, ruleBuf[:]); err != nil {
			return nil, wrapEOF(err)
		}
		rules[i] = vocab.Rule{
			A:     binary.LittleEndian.Uint32(ruleBuf[0:4]),
			B:     binary.LittleEndian.Uint32(ruleBuf[4:8]),
			NewID: binary.LittleEndian.Uint32(ruleBuf[8:12]),
		}
	}

	tokens := make([][]byte, vocabSize)
	var lenBuf [4]byte
	maxByte := 0
	for i := range tokens {
		if _, err := io.ReadFull(r, lenBuf[:]); err != nil {
			return nil, wrapEOF(err)
		}
		tokLen := binary.LittleEndian.Uint32(lenBuf[:])
		if tokLen > maxTokenLen {
			return nil, fmt.Errorf("%w: token %d length %d exceeds limit", ErrCorrupted, i, tokLen)
		}

		tok := make([]byte, tokLen)
		if _, err := io.ReadFull(r, tok); err != nil {
			return nil, wrapEOF(err)
		}
		tokens[i] = tok
		if len(tok) > maxByte {
			maxByte = len(tok)
		}
	}

	return &vocab.Vocabulary{Rules: rules, Tokens: tokens, MaxByte: maxByte}, nil
}

func wrapEOF(err error) error {
	if errors.Is(err, io.ErrUnexpectedEOF) || errors.Is(err, io.EOF) {
		return fmt.Errorf("%w: %v", ErrCorrupted, err)
	}
	return err
}
