package router

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
)

// UnknownToken is the vocabulary entry every unseen token maps to.
const UnknownToken = "<UNK>"

// Vocab maps tokens to the integer ids a sequence model was trained on.
// Id 0 is reserved for UnknownToken.
type Vocab map[string]int

// LoadVocab reads a vocabulary JSON object from path.
func LoadVocab(path string) (Vocab, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open vocab: %w", err)
	}
	defer f.Close()
	return ReadVocab(f)
}

// ReadVocab decodes a vocabulary JSON object such as {"Add": 1, "<UNK>": 0}.
func ReadVocab(r io.Reader) (Vocab, error) {
	var v Vocab
	if err := json.NewDecoder(r).Decode(&v); err != nil {
		return nil, fmt.Errorf("decode vocab: %w", err)
	}
	if id, ok := v[UnknownToken]; ok && id != 0 {
		return nil, fmt.Errorf("decode vocab: %s must map to 0, got %d", UnknownToken, id)
	}
	if v == nil {
		v = Vocab{}
	}
	v[UnknownToken] = 0
	return v, nil
}

// Save writes v to path as JSON.
func (v Vocab) Save(path string) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode vocab: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write vocab: %w", err)
	}
	return nil
}

// Encode maps tokens to ids, using 0 for tokens not in v.
func (v Vocab) Encode(tokens []string) []int {
	ids := make([]int, len(tokens))
	for i, t := range tokens {
		ids[i] = v[t]
	}
	return ids
}

// Size is the embedding table size a model needs for v: the largest id plus
// one.
func (v Vocab) Size() int {
	max := 0
	for _, id := range v {
		if id > max {
			max = id
		}
	}
	return max + 1
}
