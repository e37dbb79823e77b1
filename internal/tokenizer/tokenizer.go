// Package tokenizer wraps the token-counting capability used to measure
// file contents.
package tokenizer

import (
	"fmt"

	"github.com/pkoukk/tiktoken-go"
)

// Tokenizer encodes text into integer token ids and back. Implementations
// must be deterministic for identical input.
type Tokenizer interface {
	Encode(text string) ([]int, error)
	Decode(ids []int) (string, error)
}

const encodingName = "cl100k_base"

// Tiktoken is a Tokenizer backed by the cl100k_base BPE encoding.
type Tiktoken struct {
	enc *tiktoken.Tiktoken
}

// NewTiktoken loads the cl100k_base encoding.
func NewTiktoken() (*Tiktoken, error) {
	enc, err := tiktoken.GetEncoding(encodingName)
	if err != nil {
		return nil, fmt.Errorf("load %s encoding: %w", encodingName, err)
	}
	return &Tiktoken{enc: enc}, nil
}

// Encode returns the token id sequence for text.
func (t *Tiktoken) Encode(text string) ([]int, error) {
	return t.enc.Encode(text, nil, nil), nil
}

// Decode reconstructs text from token ids.
func (t *Tiktoken) Decode(ids []int) (string, error) {
	return t.enc.Decode(ids), nil
}

// Unavailable is a Tokenizer whose encoding failed to load. Every call
// reports the load failure, so each file record carries the diagnostic
// instead of the whole run aborting.
type Unavailable struct {
	Reason error
}

func (u Unavailable) Encode(string) ([]int, error) { return nil, u.Reason }
func (u Unavailable) Decode([]int) (string, error) { return "", u.Reason }
