package markov

import (
	"maps"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"testing"
)

func TestWordTokenizerSplit(t *testing.T) {
	tok := NewWordTokenizer()

	testCases := []struct {
		name string
		text string
		want []string
	}{
		{"plain words", "I like cats", []string{"I", "like", "cats"}},
		{"repeated and mixed whitespace", "  one\tfish\n two   fish ", []string{"one", "fish", "two", "fish"}},
		{"empty string", "", nil},
		{"only whitespace", " \t\n ", nil},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if got := tok.Split(tc.text); !slices.Equal(got, tc.want) {
				t.Errorf("Split(%q) = %v, want %v", tc.text, got, tc.want)
			}
		})
	}
}

func TestGenerateText(t *testing.T) {
	tc := NewTextChain(New[string](WithSource(seededSource(5))), nil)
	tc.FeedText("I like cats").FeedText("I hate cats")

	expected1 := "I like cats"
	expected2 := "I hate cats"
	for range 50 {
		output := tc.GenerateText()
		if output != expected1 && output != expected2 {
			t.Fatalf("GenerateText() got = %v, want one of [%q, %q]", output, expected1, expected2)
		}
	}
}

func TestGenerateTextFrom(t *testing.T) {
	chain := NewTextChain(nil, nil)
	chain.FeedText("I like cats").FeedText("I hate cats")

	testCases := []struct {
		name string
		seed string
		want string
	}{
		{"token that always ends the sequence", "cats", "cats"},
		{"token with a single continuation", "like", "like cats"},
		{"unknown token", "dogs", ""},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if got := chain.GenerateTextFrom(tc.seed); got != tc.want {
				t.Errorf("GenerateTextFrom(%q) = %q, want %q", tc.seed, got, tc.want)
			}
		})
	}
}

func TestFeedReaderTreatsLinesAsSequences(t *testing.T) {
	tc := NewTextChain(nil, nil)
	input := "one fish two fish\nred fish blue fish\n\n"
	if err := tc.FeedReader(strings.NewReader(input)); err != nil {
		t.Fatalf("FeedReader() error = %v", err)
	}

	snap := tc.Snapshot()
	if want := []string{"one", "fish", "two", "red", "blue"}; !slices.Equal(snap.Tokens, want) {
		t.Fatalf("Tokens = %v, want %v", snap.Tokens, want)
	}

	got := make(map[[2]int]int)
	for _, tr := range snap.Transitions {
		got[[2]int{tr.From, tr.To}] = tr.Count
	}
	// Two lines means two starts and two ends; "fish" ends both lines, so
	// it transitions to the boundary twice and never into "red".
	want := map[[2]int]int{
		{0, 1}: 1, // one
		{1, 2}: 1, // one -> fish
		{2, 3}: 1, // fish -> two
		{3, 2}: 1, // two -> fish
		{2, 0}: 2, // fish ends each line
		{0, 4}: 1, // red
		{4, 2}: 1, // red -> fish
		{2, 5}: 1, // fish -> blue
		{5, 2}: 1, // blue -> fish
	}
	if !maps.Equal(got, want) {
		t.Errorf("transition counts = %v, want %v", got, want)
	}
}

func TestFeedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "corpus.txt")
	lines := "one fish two fish\nred fish blue fish\n"
	if err := os.WriteFile(path, []byte(lines), 0o644); err != nil {
		t.Fatalf("failed to write corpus: %v", err)
	}

	tc := NewTextChain(nil, nil)
	if err := tc.FeedFile(path); err != nil {
		t.Fatalf("FeedFile() error = %v", err)
	}
	if tc.IsEmpty() {
		t.Error("chain should not be empty after FeedFile")
	}
	if out := tc.GenerateText(); out == "" {
		t.Error("GenerateText() = empty string from a trained chain")
	}

	if err := tc.FeedFile(filepath.Join(t.TempDir(), "missing.txt")); err == nil {
		t.Error("expected an error for a missing file but got none")
	}
}

func TestWithSeparatorOption(t *testing.T) {
	tok := NewWordTokenizer(WithSeparator("_"))
	tc := NewTextChain(nil, tok)
	tc.FeedText("a b c")

	if got := tc.GenerateText(); got != "a_b_c" {
		t.Errorf("GenerateText() = %q, want %q", got, "a_b_c")
	}
}

func TestNewTextChainDefaults(t *testing.T) {
	tc := NewTextChain(nil, nil)
	if !tc.IsEmpty() {
		t.Error("a fresh TextChain should be empty")
	}
	if got := tc.FeedText("x y").GenerateText(); got != "x y" {
		t.Errorf("GenerateText() = %q, want %q", got, "x y")
	}
}

func TestTextChainWrapsExistingChain(t *testing.T) {
	c := New[string]().Feed([]string{"already", "trained"})
	tc := NewTextChain(c, nil)

	if got := tc.GenerateTextFrom("already"); got != "already trained" {
		t.Errorf("GenerateTextFrom() = %q, want %q", got, "already trained")
	}
}

func TestTexts(t *testing.T) {
	tc := NewTextChain(New[string](WithSource(seededSource(23))), nil)
	tc.FeedText("I like cats").FeedText("I hate cats")

	got := 0
	for text := range tc.Texts(3) {
		if text != "I like cats" && text != "I hate cats" {
			t.Errorf("Texts yielded %q, want one of [%q, %q]", text, "I like cats", "I hate cats")
		}
		got++
	}
	if got != 3 {
		t.Errorf("Texts(3) yielded %d texts, want 3", got)
	}
}

func TestEndlessTexts(t *testing.T) {
	tc := NewTextChain(New[string](WithSource(seededSource(29))), nil)
	tc.FeedText("round and round")

	got := 0
	for range tc.EndlessTexts() {
		got++
		if got == 4 {
			break
		}
	}
	if got != 4 {
		t.Errorf("broke after 4 texts but saw %d", got)
	}
}

func BenchmarkGenerateText(b *testing.B) {
	corpus := createBenchmarkCorpus()
	tc := NewTextChain(New[string](WithSource(seededSource(1)), WithMaxLen(64)), nil)
	if err := tc.FeedReader(strings.NewReader(corpus)); err != nil {
		b.Fatalf("FeedReader() setup for benchmark failed: %v", err)
	}

	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		s := tc.GenerateText()
		b.SetBytes(int64(len(s)))
	}
}
