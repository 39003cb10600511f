package bpetok

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
)

func TestTrainEncodeDecodeEmpty(t *testing.T) {
	m := Train(nil, 300, 1)
	enc := m.NewEncoder()
	dec := m.NewDecoder()

	if ids := enc.Encode(nil); ids != nil {
		t.Fatalf("Encode(\"\") = %v, want nil", ids)
	}
	if out := dec.Decode(nil); out != nil {
		t.Fatalf("Decode(nil) = %v, want nil", out)
	}
}

func TestTrainEncodeDecodeRoundTrip(t *testing.T) {
	corpus := bytes.Repeat([]byte("To be, or not to be: that is the question. "), 60)
	m := Train(corpus, 5000, 1)
	enc := m.NewEncoder()
	dec := m.NewDecoder()

	text := "To be, or not to be: that is the question."
	ids := enc.Encode([]byte(text))
	got := dec.Decode(ids)
	if string(got) != text {
		t.Fatalf("round trip mismatch: got %q, want %q", got, text)
	}
}

func TestTrainEncodeAllASCIIRoundTrip(t *testing.T) {
	corpus := bytes.Repeat([]byte("the quick brown fox jumps over 0123456789 "), 50)
	m := Train(corpus, 4000, 1)
	enc := m.NewEncoder()
	dec := m.NewDecoder()

	var all []byte
	for b := 0; b < 128; b++ {
		all = append(all, byte(b))
	}
	ids := enc.Encode(all)
	got := dec.Decode(ids)
	if !bytes.Equal(got, all) {
		t.Fatalf("128-ASCII round trip failed")
	}
}

func TestSaveLoadIdentity(t *testing.T) {
	corpus := bytes.Repeat([]byte("lorem ipsum dolor sit amet "), 40)
	m := Train(corpus, 2000, 1)

	path := filepath.Join(t.TempDir(), "model.bpe")
	if err := Save(path, m); err != nil {
		t.Fatalf("Save: %v", err)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if loaded.VocabSize() != m.VocabSize() || loaded.MergeCount() != m.MergeCount() {
		t.Fatalf("loaded model shape differs: vocab %d/%d merges %d/%d",
			loaded.VocabSize(), m.VocabSize(), loaded.MergeCount(), m.MergeCount())
	}

	text := "lorem ipsum dolor sit amet"
	before := m.NewEncoder().Encode([]byte(text))
	after := loaded.NewEncoder().Encode([]byte(text))
	if len(before) != len(after) {
		t.Fatalf("re-encode after reload length differs: %d vs %d", len(before), len(after))
	}
	for i := range before {
		if before[i] != after[i] {
			t.Fatalf("re-encode after reload differs at %d: %d vs %d", i, before[i], after[i])
		}
	}
}

func TestLoadBadMagicFails(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.bpe")
	corpus := bytes.Repeat([]byte("ab"), 10)
	m := Train(corpus, 260, 1)
	if err := Save(path, m); err != nil {
		t.Fatal(err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	data[0], data[1], data[2], data[3] = 0, 0, 0, 0

	corruptPath := filepath.Join(t.TempDir(), "corrupt.bpe")
	if err := os.WriteFile(corruptPath, data, 0o644); err != nil {
		t.Fatal(err)
	}

	if _, err := Load(corruptPath); err == nil {
		t.Fatal("expected Load to fail on corrupted magic")
	}
}
