package moderation

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Lexicon is an immutable, case-insensitive set of flagged tokens. It is
// built once at startup and injected into the gate; there is no global
// word list.
type Lexicon struct {
	words map[string]struct{}
}

// NewLexicon builds a lexicon from a word list. Words are lowercased;
// blanks are dropped.
func NewLexicon(words []string) Lexicon {
	set := make(map[string]struct{}, len(words))
	for _, w := range words {
		w = strings.ToLower(strings.TrimSpace(w))
		if w == "" {
			continue
		}
		set[w] = struct{}{}
	}
	return Lexicon{words: set}
}

// LoadLexicon reads a YAML word list (a flat sequence of strings).
func LoadLexicon(path string) (Lexicon, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return Lexicon{}, fmt.Errorf("read lexicon: %w", err)
	}
	var words []string
	if err := yaml.Unmarshal(b, &words); err != nil {
		return Lexicon{}, fmt.Errorf("parse lexicon: %w", err)
	}
	return NewLexicon(words), nil
}

// DefaultLexicon returns the built-in word list, used when no lexicon file
// is configured.
func DefaultLexicon() Lexicon {
	return NewLexicon([]string{
		"damn", "dammit", "hell", "crap", "bastard", "bloody",
		"idiot", "moron", "stupid", "dumbass", "jackass", "screw",
		"suck", "sucks", "freaking", "frigging", "bullcrap", "piss",
	})
}

// Contains reports whether the word is flagged. Matching is
// case-insensitive.
func (l Lexicon) Contains(word string) bool {
	_, ok := l.words[strings.ToLower(word)]
	return ok
}

// Len returns the number of flagged tokens.
func (l Lexicon) Len() int {
	return len(l.words)
}
