package domain

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// LexicalEntry is a dictionary headword as returned by the lookup backend.
type LexicalEntry struct {
	ID          string            `json:"id"`
	LexicalUnit string            `json:"lexical_unit"`
	Definition  string            `json:"definition,omitempty"`
	Traits      map[string]string `json:"traits,omitempty"`
	Senses      OneOrMany[Sense]  `json:"senses,omitempty"`
}

// MorphType returns the morphological trait of the entry, if any.
func (e *LexicalEntry) MorphType() string {
	return e.Traits["morph-type"]
}

// Sense is one meaning of a lexical entry.
type Sense struct {
	Definition      string             `json:"definition"`
	Gloss           string             `json:"gloss"`
	GrammaticalInfo string             `json:"grammatical_info"`
	Examples        OneOrMany[Example] `json:"examples,omitempty"`
	Note            string             `json:"note,omitempty"`
}

// Example is a usage example attached to a sense.
type Example struct {
	Form        string `json:"form"`
	Translation string `json:"translation"`
}

// SentenceEntry is a standalone example sentence from the sentence search.
type SentenceEntry struct {
	Sentence    string `json:"sentence"`
	Translation string `json:"translation"`
	Note        string `json:"note,omitempty"`
}

// OneOrMany is a JSON sequence that tolerates the backend's inconsistent
// shapes. It decodes null, a bare object, an array of objects, and an array
// whose elements are themselves arrays, always into a flat slice.
type OneOrMany[T any] []T

// UnmarshalJSON implements json.Unmarshaler.
func (s *OneOrMany[T]) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*s = nil
		return nil
	}

	if data[0] != '[' {
		var v T
		if err := json.Unmarshal(data, &v); err != nil {
			return fmt.Errorf("decode single value: %w", err)
		}
		*s = OneOrMany[T]{v}
		return nil
	}

	var raw []json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("decode sequence: %w", err)
	}

	out := make(OneOrMany[T], 0, len(raw))
	for _, item := range raw {
		var nested OneOrMany[T]
		if err := nested.UnmarshalJSON(item); err != nil {
			return err
		}
		out = append(out, nested...)
	}
	*s = out
	return nil
}
