package markov

import (
	"bufio"
	"fmt"
	"io"
	"iter"
	"os"
	"strings"
)

// Tokenizer defines the contract for turning raw text into tokens and
// turning generated tokens back into text. This keeps the chain itself
// independent of the tokenization strategy.
type Tokenizer interface {
	// Split breaks text into tokens. It must never produce empty tokens.
	Split(text string) []string
	// Join renders generated tokens back into a single string.
	Join(tokens []string) string
}

// WordTokenizer is the default implementation of the Tokenizer interface.
// It splits text around runs of Unicode whitespace and joins generated
// words with a configurable separator.
type WordTokenizer struct {
	separator string
}

// TokenizerOption is a function that configures a WordTokenizer.
type TokenizerOption func(*WordTokenizer)

// WithSeparator sets the string used for joining tokens during generation.
// Default: " "
func WithSeparator(sep string) TokenizerOption {
	return func(t *WordTokenizer) { t.separator = sep }
}

// NewWordTokenizer creates a new word tokenizer with default settings,
// which can be overridden by providing one or more TokenizerOption
// functions.
func NewWordTokenizer(opts ...TokenizerOption) *WordTokenizer {
	t := &WordTokenizer{separator: " "}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// Split breaks text around whitespace. Leading, trailing, and repeated
// whitespace yield no empty tokens.
func (t *WordTokenizer) Split(text string) []string {
	return strings.Fields(text)
}

// Join concatenates tokens with the configured separator.
func (t *WordTokenizer) Join(tokens []string) string {
	return strings.Join(tokens, t.separator)
}

// TextChain layers a Tokenizer over a word chain so whole strings, readers,
// and files can be fed and generated directly. The embedded chain remains
// fully usable; TextChain only adds the text-level entry points.
type TextChain struct {
	*Chain[string]
	tok Tokenizer
}

// NewTextChain wraps a chain with a tokenizer. A nil chain gets a fresh
// empty one and a nil tokenizer gets the default WordTokenizer.
func NewTextChain(c *Chain[string], tok Tokenizer) *TextChain {
	if c == nil {
		c = New[string]()
	}
	if tok == nil {
		tok = NewWordTokenizer()
	}
	return &TextChain{Chain: c, tok: tok}
}

// FeedText trains the chain on one complete text, treating the whole
// string as a single sequence. It returns the TextChain so calls can be
// chained.
func (tc *TextChain) FeedText(text string) *TextChain {
	tc.Feed(tc.tok.Split(text))
	return tc
}

// FeedReader trains the chain on r line by line, treating every line as
// one independent sequence. Lines with no tokens are skipped.
func (tc *TextChain) FeedReader(r io.Reader) error {
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		tc.Feed(tc.tok.Split(scanner.Text()))
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("could not read training text: %w", err)
	}
	return nil
}

// FeedFile trains the chain on the named file, one line per sequence.
func (tc *TextChain) FeedFile(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("could not open training file: %w", err)
	}
	defer func(f *os.File) {
		_ = f.Close()
	}(f)
	if err = tc.FeedReader(f); err != nil {
		return fmt.Errorf("could not train from %s: %w", path, err)
	}
	return nil
}

// GenerateText produces one new text starting from the beginning of a
// sequence. An empty chain produces an empty string.
func (tc *TextChain) GenerateText() string {
	return tc.tok.Join(tc.Generate())
}

// GenerateTextFrom produces a text that begins with the given token. The
// result is empty when the token has never been fed.
func (tc *TextChain) GenerateTextFrom(token string) string {
	return tc.tok.Join(tc.GenerateFrom(token))
}

// Texts returns an iterator that yields n freshly generated texts.
func (tc *TextChain) Texts(n int) iter.Seq[string] {
	return func(yield func(string) bool) {
		for seq := range tc.Sequences(n) {
			if !yield(tc.tok.Join(seq)) {
				return
			}
		}
	}
}

// EndlessTexts returns an iterator that yields generated texts until the
// consumer stops pulling.
func (tc *TextChain) EndlessTexts() iter.Seq[string] {
	return func(yield func(string) bool) {
		for seq := range tc.Endless() {
			if !yield(tc.tok.Join(seq)) {
				return
			}
		}
	}
}
