// Package vocab holds the persistent output of training: the ordered merge
// rule list and the byte string represented by each token id.
package vocab

// Rule records that the pair (A, B) merges into NewID. The rule list's
// index is the rule's rank: lower rank means higher merge priority.
type Rule struct {
	A     uint32
	B     uint32
	NewID uint32
}

// Vocabulary is the full set of learned tokens: ids 0..255 are the 256 byte
// literals, ids 256.. are merge outputs in creation order.
type Vocabulary struct {
	Rules   []Rule
	Tokens  [][]byte // Tokens[id] is the byte string for id
	MaxByte int      // longest token in bytes
}

// NewByteLevel seeds a fresh vocabulary with the 256 single-byte tokens and
// no merges yet.
func NewByteLevel() *Vocabulary {
	v := &Vocabulary{
		Tokens:  make([][]byte, 256),
		MaxByte: 1,
	}
	for b := 0; b < 256; b++ {
		v.Tokens[b] = []byte{byte(b)}
	}
	return v
}

// AddMerge appends a new rule and its concatenated token, returning the
// freshly allocated token id. Callers must call this in rank order: the
// k-th call must produce NewID == 256+k (invariant V2).
func (v *Vocabulary) AddMerge(a, b uint32) uint32 {
	newID := uint32(len(v.Tokens))
	tok := make([]byte, 0, len(v.Tokens[a])+len(v.Tokens[b]))
	tok = append(tok, v.Tokens[a]...)
	tok = append(tok, v.Tokens[b]...)

	v.Tokens = append(v.Tokens, tok)
	v.Rules = append(v.Rules, Rule{A: a, B: b, NewID: newID})

	if len(tok) > v.MaxByte {
		v.MaxByte = len(tok)
	}
	return newID
}

// Len reports the vocabulary size, 256 + number of merges (invariant V1).
func (v *Vocabulary) Len() int { return len(v.Tokens) }
