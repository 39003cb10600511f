package encode

import "github.com/bpetok/internal/vocab"

// Decode concatenates the byte string for each token id. Ids outside the
// vocabulary are skipped in release builds; in a debug build the caller can
// additionally wrap this with an assertion, but decode itself never panics
// on a bare out-of-range id.
func Decode(ids []uint32, v *vocab.Vocabulary) []byte {
	if len(ids) == 0 {
		return nil
	}

	total := 0
	for _, id := range ids {
		if int(id) < len(v.Tokens) {
			total += len(v.Tokens[id])
		}
	}

	out := make([]byte, 0, total)
	for _, id := range ids {
		if int(id) >= len(v.Tokens) {
			continue
		}
		out = append(out, v.Tokens[id]...)
	}
	return out
}
