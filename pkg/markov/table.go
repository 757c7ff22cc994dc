package markov

// sentinelID is the reserved state id that marks both the start and the
// end of every sequence. It is registered at construction and never
// corresponds to a token value.
const sentinelID = 0

// transition is a single observed successor of a state, with the number
// of times it was seen.
type transition struct {
	to    int
	count int
}

// distribution holds every observed successor of one state. Entries keep
// first-insertion order so that cumulative sampling visits them
// deterministically; the index gives O(1) count updates by successor id.
type distribution struct {
	entries []transition
	index   map[int]int // successor id -> position in entries
	total   int
}

// record adds one observation of a transition to the given successor.
func (d *distribution) record(to int) {
	d.recordN(to, 1)
}

// recordN adds n observations at once, as when merging snapshot counts.
func (d *distribution) recordN(to, n int) {
	if i, ok := d.index[to]; ok {
		d.entries[i].count += n
	} else {
		if d.index == nil {
			d.index = make(map[int]int)
		}
		d.index[to] = len(d.entries)
		d.entries = append(d.entries, transition{to: to, count: n})
	}
	d.total += n
}

// pick draws one successor with probability proportional to its observed
// count. It reports false when the state has no recorded successors, which
// ends a generation walk.
func (d *distribution) pick(src Source) (int, bool) {
	if d.total == 0 {
		return sentinelID, false
	}
	r := src.IntN(d.total)
	for _, t := range d.entries {
		r -= t.count
		if r < 0 {
			return t.to, true
		}
	}
	// Unreachable while total matches the sum of entry counts.
	panic("markov: corrupt distribution")
}
