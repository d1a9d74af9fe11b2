// Package textproc turns free-form headline text into the token stream the
// fitted vectorizer expects.
package textproc

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/aaaton/golem/v4"
	"github.com/aaaton/golem/v4/dicts/en"
	"github.com/jdkato/prose/tokenize"
)

// Lemmatizer reduces a word to its dictionary base form.
type Lemmatizer interface {
	Lemma(word string) string
}

// Tokenizer splits text into word tokens.
type Tokenizer interface {
	Tokenize(text string) []string
}

// Normalizer is safe for concurrent use; its resources are read-only after
// construction.
type Normalizer struct {
	tokenizer  Tokenizer
	lemmatizer Lemmatizer
}

// NewNormalizer builds a Normalizer backed by the Treebank word tokenizer and
// a noun lemmatizer over the English golem dictionary.
func NewNormalizer() (*Normalizer, error) {
	dict, err := golem.New(en.New())
	if err != nil {
		return nil, fmt.Errorf("failed to load english lemma dictionary: %w", err)
	}
	return NewNormalizerWith(tokenize.NewTreebankWordTokenizer(), NewNounLemmatizer(dict)), nil
}

// NewNormalizerWith builds a Normalizer from explicit resources.
func NewNormalizerWith(tokenizer Tokenizer, lemmatizer Lemmatizer) *Normalizer {
	return &Normalizer{tokenizer: tokenizer, lemmatizer: lemmatizer}
}

// Normalize never fails. Input made only of punctuation, digits or
// whitespace yields an empty, non-nil slice.
func (n *Normalizer) Normalize(text string) []string {
	cleaned := strings.ToLower(StripNonLetters(text))

	tokens := make([]string, 0, 16)
	for _, tok := range n.tokenizer.Tokenize(cleaned) {
		if tok == "" || IsStopword(tok) {
			continue
		}
		tokens = append(tokens, n.lemmatizer.Lemma(tok))
	}
	return tokens
}

// StripNonLetters keeps ASCII letters and whitespace and drops everything
// else, including non-ASCII letters.
func StripNonLetters(text string) string {
	var b strings.Builder
	b.Grow(len(text))
	for _, r := range text {
		switch {
		case r <= unicode.MaxASCII && unicode.IsLetter(r):
			b.WriteRune(r)
		case unicode.IsSpace(r):
			b.WriteRune(r)
		}
	}
	return b.String()
}

// Join rebuilds the single-space separated document the vectorizer consumes.
func Join(tokens []string) string {
	return strings.Join(tokens, " ")
}
