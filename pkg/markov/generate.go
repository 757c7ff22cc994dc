package markov

// Generate produces one new sequence by walking the chain from the start
// boundary, sampling a successor at each step, until the walk reaches the
// end boundary or a state with no recorded successors. The returned slice
// holds the chain's interned token values and is empty for an empty chain.
func (c *Chain[T]) Generate() []T {
	return c.walk(sentinelID, nil)
}

// GenerateFrom produces a sequence that starts with the given token and
// continues as Generate does. A token the chain has never been fed yields
// an empty result; that is an expected outcome, not an error, and the
// chain is left unchanged.
func (c *Chain[T]) GenerateFrom(tok T) []T {
	id, ok := c.ids[tok]
	if !ok {
		return nil
	}
	return c.walk(id, []T{c.tokens[id]})
}

// walk samples successors starting from cur, appending interned tokens to
// out until the boundary recurs, a dead end is reached, or the optional
// length cap fills up.
func (c *Chain[T]) walk(cur int, out []T) []T {
	for c.maxLen == 0 || len(out) < c.maxLen {
		next, ok := c.dist(cur).pick(c.src)
		if !ok || next == sentinelID {
			break
		}
		out = append(out, c.tokens[next])
		cur = next
	}
	return out
}
