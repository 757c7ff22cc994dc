package markov

import (
	"maps"
	"slices"
	"strings"
	"testing"
)

func TestNewChainIsEmpty(t *testing.T) {
	ints := New[int]()
	if !ints.IsEmpty() {
		t.Error("New[int]() should be empty")
	}
	if out := ints.Generate(); len(out) != 0 {
		t.Errorf("Generate() on empty chain = %v, want empty", out)
	}

	words := New[string]()
	if !words.IsEmpty() {
		t.Error("New[string]() should be empty")
	}
	if out := words.GenerateFrom("anything"); len(out) != 0 {
		t.Errorf("GenerateFrom() on empty chain = %v, want empty", out)
	}
}

func TestFeedEmptySequence(t *testing.T) {
	c := New[string]()
	c.Feed(nil).Feed([]string{})

	if !c.IsEmpty() {
		t.Error("feeding empty sequences should leave the chain empty")
	}
	snap := c.Snapshot()
	if len(snap.Tokens) != 0 || len(snap.Transitions) != 0 {
		t.Errorf("empty feeds changed the table: %+v", snap)
	}
}

func TestFeedRegistersTokens(t *testing.T) {
	c := New[string]().Feed([]string{"a", "b", "c"})

	if c.IsEmpty() {
		t.Error("chain should not be empty after feeding")
	}
	if got := c.Snapshot().Tokens; !slices.Equal(got, []string{"a", "b", "c"}) {
		t.Errorf("Snapshot().Tokens = %v, want [a b c]", got)
	}
}

func TestFeedCountsEveryPair(t *testing.T) {
	c := New[string]().Feed([]string{"a", "b", "b", "a"})

	got := make(map[[2]int]int)
	for _, tr := range c.Snapshot().Transitions {
		got[[2]int{tr.From, tr.To}] = tr.Count
	}

	// a and b intern to ids 1 and 2; id 0 bounds the sequence.
	want := map[[2]int]int{
		{0, 1}: 1,
		{1, 2}: 1,
		{2, 2}: 1,
		{2, 1}: 1,
		{1, 0}: 1,
	}
	if !maps.Equal(got, want) {
		t.Errorf("transition counts = %v, want %v", got, want)
	}
}

func TestRepeatedFeedAccumulates(t *testing.T) {
	c := New[string]()
	seq := []string{"one", "fish", "two", "fish"}

	c.Feed(seq)
	before := c.Snapshot()
	c.Feed(seq)
	after := c.Snapshot()

	if len(after.Transitions) != len(before.Transitions) {
		t.Fatalf("repeat feed changed transition set size: before %d, after %d",
			len(before.Transitions), len(after.Transitions))
	}
	for i, tr := range before.Transitions {
		got := after.Transitions[i]
		if got.From != tr.From || got.To != tr.To {
			t.Fatalf("transition %d changed identity: %+v -> %+v", i, tr, got)
		}
		if got.Count != 2*tr.Count {
			t.Errorf("transition %d -> %d count = %d, want %d", tr.From, tr.To, got.Count, 2*tr.Count)
		}
	}
}

func TestFeedReturnsReceiver(t *testing.T) {
	c := New[int]()
	if got := c.Feed([]int{1}).Feed([]int{2}); got != c {
		t.Error("Feed should return its receiver for chaining")
	}
}

func TestEqualTokensShareOneEntry(t *testing.T) {
	c := New[string]().Feed([]string{"go", "go", "go"})
	if n := len(c.Snapshot().Tokens); n != 1 {
		t.Errorf("chain registered %d tokens, want 1", n)
	}
}

func TestZeroValueTokenIsDistinctFromBoundary(t *testing.T) {
	c := New[int](WithSource(seededSource(7)))
	c.Feed([]int{0, 0, 0})

	if got := c.Snapshot().Tokens; !slices.Equal(got, []int{0}) {
		t.Fatalf("Snapshot().Tokens = %v, want [0]", got)
	}
	out := c.Generate()
	if len(out) == 0 {
		t.Fatal("Generate() = empty, want at least one token")
	}
	for _, tok := range out {
		if tok != 0 {
			t.Errorf("Generate() produced %d, want only zeros", tok)
		}
	}
}

func TestStructTokens(t *testing.T) {
	type point struct{ X, Y int }
	c := New[point]().Feed([]point{{1, 2}, {3, 4}})

	// Every state has a single successor, so the walk is deterministic.
	want := []point{{1, 2}, {3, 4}}
	if got := c.Generate(); !slices.Equal(got, want) {
		t.Errorf("Generate() = %v, want %v", got, want)
	}
}

func BenchmarkFeed(b *testing.B) {
	words := strings.Fields(createBenchmarkCorpus())
	const seqLen = 16
	if len(words) < 2*seqLen {
		b.Skip("benchmark corpus unavailable")
	}

	c := New[string]()
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		start := (i * seqLen) % (len(words) - seqLen)
		c.Feed(words[start : start+seqLen])
	}
}
