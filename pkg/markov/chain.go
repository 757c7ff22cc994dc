package markov

import (
	"fmt"
	"math/rand/v2"
)

// Source supplies the randomness used to choose successors during
// generation. It is satisfied by *math/rand/v2.Rand, so tests can inject a
// seeded generator for reproducible output.
type Source interface {
	// IntN returns a uniformly random int in [0, n). It follows the
	// math/rand/v2 contract: n must be greater than zero.
	IntN(n int) int
}

// processSource defers to the process-wide math/rand/v2 generator, which
// is safe for concurrent use.
type processSource struct{}

func (processSource) IntN(n int) int { return rand.IntN(n) }

// config holds the construction-time settings of a Chain.
type config struct {
	src    Source
	maxLen int
}

// Option configures a Chain at construction time. Options are accepted by
// New and by the snapshot loading functions.
type Option func(*config)

// WithSource sets the randomness source used during generation. By default
// a chain draws from the process-wide math/rand/v2 generator. A nil source
// leaves the default in place.
func WithSource(src Source) Option {
	return func(c *config) {
		if src != nil {
			c.src = src
		}
	}
}

// WithMaxLen caps the number of tokens a single generation may produce.
// Zero, the default, means unbounded: a walk then ends only when it
// reaches the end of a sequence or a state with no recorded successors.
func WithMaxLen(n int) Option {
	return func(c *config) { c.maxLen = n }
}

// Chain is a first-order Markov chain over tokens of type T. It records
// how often each token follows another and generates new sequences with
// the same local statistics.
//
// Each distinct token value is interned once: the chain stores one owned
// copy and refers to it by a dense integer id everywhere else, including
// in generated output. Id 0 is reserved for the boundary marker that
// starts and ends every sequence.
//
// A Chain is not safe for concurrent mutation. Concurrent Generate calls
// are fine as long as the configured Source is itself safe for concurrent
// use; the default process-wide source is.
type Chain[T comparable] struct {
	ids    map[T]int // token value -> state id
	tokens []T       // state id -> token value; index 0 is the boundary marker
	table  []distribution
	src    Source
	maxLen int
}

// New returns an empty chain. The boundary state is registered
// immediately, so a freshly constructed chain can generate (yielding
// nothing) and snapshot without special cases.
func New[T comparable](opts ...Option) *Chain[T] {
	cfg := config{src: processSource{}}
	for _, opt := range opts {
		opt(&cfg)
	}
	return &Chain[T]{
		ids:    make(map[T]int),
		tokens: make([]T, 1),
		table:  make([]distribution, 1),
		src:    cfg.src,
		maxLen: cfg.maxLen,
	}
}

// IsEmpty reports whether the chain has been fed any tokens.
func (c *Chain[T]) IsEmpty() bool {
	return c.table[sentinelID].total == 0
}

// Feed trains the chain on one complete sequence. Every consecutive pair
// of tokens, plus the leading and trailing boundary, adds one observation;
// repeated feeds accumulate counts rather than replacing them. Feeding an
// empty slice changes nothing. It returns the chain so calls can be
// chained.
func (c *Chain[T]) Feed(tokens []T) *Chain[T] {
	if len(tokens) == 0 {
		return c
	}
	prev := sentinelID
	for _, tok := range tokens {
		id := c.intern(tok)
		c.dist(prev).record(id)
		prev = id
	}
	c.dist(prev).record(sentinelID)
	return c
}

// intern returns the state id for tok, registering the token and its empty
// distribution slot on first sight. Equal values always map to the same id.
func (c *Chain[T]) intern(tok T) int {
	if id, ok := c.ids[tok]; ok {
		return id
	}
	id := len(c.tokens)
	c.ids[tok] = id
	c.tokens = append(c.tokens, tok)
	c.table = append(c.table, distribution{})
	return id
}

// dist returns the distribution slot for a registered state. Every state
// the chain can reach is registered by construction, so an out-of-range id
// means internal corruption and panics rather than guessing.
func (c *Chain[T]) dist(id int) *distribution {
	if id < 0 || id >= len(c.table) {
		panic(fmt.Sprintf("markov: unknown state %d", id))
	}
	return &c.table[id]
}
